// Package engine drives the simulation: it starts the collaborating
// services in order, runs the fixed-cadence game loop and shuts everything
// down again.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/polygove/internal/core"
)

// Service is the start/stop contract shared by every engine service.
// A redundant StartUp returns core.ErrAlreadyStarted and a redundant
// ShutDown returns core.ErrNotStarted, leaving the service unchanged.
type Service interface {
	Name() string
	StartUp() error
	ShutDown() error
	IsStarted() bool
}

// Stack starts services in declared order and stops them in reverse.
type Stack struct {
	services []Service
	log      *log.Logger
}

// NewStack creates a stack over services, in start-up order. Nil entries
// are skipped.
func NewStack(logger *log.Logger, services ...Service) *Stack {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Stack{log: logger}
	for _, svc := range services {
		if svc != nil {
			s.services = append(s.services, svc)
		}
	}
	return s
}

// Services returns the managed services in start-up order.
func (s *Stack) Services() []Service {
	out := make([]Service, len(s.services))
	copy(out, s.services)
	return out
}

// StartUp starts every service. A service that is already running counts
// as started. On failure the services started so far are shut down in
// reverse order and the error is returned.
func (s *Stack) StartUp() error {
	for i, svc := range s.services {
		err := svc.StartUp()
		if err == nil || errors.Is(err, core.ErrAlreadyStarted) {
			s.log.Debug("service started", "service", svc.Name())
			continue
		}
		for j := i - 1; j >= 0; j-- {
			if serr := s.services[j].ShutDown(); serr != nil && !errors.Is(serr, core.ErrNotStarted) {
				s.log.Warn("rollback failed", "service", s.services[j].Name(), "err", serr)
			}
		}
		return fmt.Errorf("engine: cannot start %s: %w", svc.Name(), err)
	}
	return nil
}

// ShutDown stops every running service in reverse order and returns the
// first error encountered. Services already stopped are skipped.
func (s *Stack) ShutDown() error {
	var first error
	for i := len(s.services) - 1; i >= 0; i-- {
		svc := s.services[i]
		if !svc.IsStarted() {
			continue
		}
		if err := svc.ShutDown(); err != nil {
			s.log.Warn("service shutdown failed", "service", svc.Name(), "err", err)
			if first == nil {
				first = fmt.Errorf("engine: cannot stop %s: %w", svc.Name(), err)
			}
			continue
		}
		s.log.Debug("service stopped", "service", svc.Name())
	}
	return first
}
