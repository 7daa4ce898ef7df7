package core

import "errors"

// Lifecycle errors returned by services on redundant transitions.
var (
	ErrAlreadyStarted = errors.New("already started")
	ErrNotStarted     = errors.New("not started")
)

// Lifecycle tracks the started flag shared by every engine service.
// It is not safe for concurrent use; services that are touched from other
// goroutines guard it with their own lock.
type Lifecycle struct {
	started bool
}

// MarkStarted flips the flag on, failing if it already was.
func (l *Lifecycle) MarkStarted() error {
	if l.started {
		return ErrAlreadyStarted
	}
	l.started = true
	return nil
}

// MarkStopped flips the flag off, failing if it already was.
func (l *Lifecycle) MarkStopped() error {
	if !l.started {
		return ErrNotStarted
	}
	l.started = false
	return nil
}

// IsStarted reports the flag.
func (l *Lifecycle) IsStarted() bool {
	return l.started
}
