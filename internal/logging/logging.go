// Package logging provides the log service. Every component shares one
// *log.Logger whose output is switched on at start-up and back to
// io.Discard at shutdown.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/polygove/internal/config"
	"github.com/vovakirdan/polygove/internal/core"
)

// Service is the log service.
type Service struct {
	mu        sync.Mutex
	lifecycle core.Lifecycle
	cfg       config.LoggingConfig
	console   io.Writer
	file      *lumberjack.Logger
	logger    *log.Logger
}

// New creates a stopped log service. Without a configured file, output
// goes to console (stderr when nil).
func New(cfg config.LoggingConfig, console io.Writer) *Service {
	if console == nil {
		console = os.Stderr
	}
	return &Service{
		cfg:     cfg,
		console: console,
		logger: log.NewWithOptions(io.Discard, log.Options{
			ReportTimestamp: true,
			Prefix:          "polygove",
		}),
	}
}

// Name identifies the service.
func (s *Service) Name() string { return "log" }

// Logger returns the shared logger. It writes nowhere while the service
// is stopped.
func (s *Service) Logger() *log.Logger { return s.logger }

// StartUp opens the configured output and applies the level.
func (s *Service) StartUp() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lifecycle.IsStarted() {
		return core.ErrAlreadyStarted
	}

	level := log.InfoLevel
	if s.cfg.Level != "" {
		lvl, err := log.ParseLevel(s.cfg.Level)
		if err != nil {
			return fmt.Errorf("logging: %w", err)
		}
		level = lvl
	}

	out := s.console
	if s.cfg.File != "" {
		path := config.ExpandHome(s.cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		s.file = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    s.cfg.MaxSizeMB, // megabytes
			MaxBackups: s.cfg.MaxBackups,
			MaxAge:     s.cfg.MaxAgeDays,
		}
		out = s.file
	}

	s.logger.SetLevel(level)
	s.logger.SetOutput(out)
	return s.lifecycle.MarkStarted()
}

// ShutDown silences the logger and closes the log file.
func (s *Service) ShutDown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.lifecycle.MarkStopped(); err != nil {
		return err
	}
	s.logger.SetOutput(io.Discard)
	if s.file != nil {
		err := s.file.Close()
		s.file = nil
		if err != nil {
			return fmt.Errorf("logging: cannot close log file: %w", err)
		}
	}
	return nil
}

// IsStarted reports whether the logger writes anywhere.
func (s *Service) IsStarted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lifecycle.IsStarted()
}
