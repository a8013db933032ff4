package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	ErrAlreadyConfigured = errors.New("logging already configured")
	ErrUnknownFacility   = errors.New("unknown syslog facility")
)

// Config selects verbosity and log destinations. Records always go to
// stderr; Logfile and Syslog add destinations.
type Config struct {
	Verbose bool
	Debug   bool
	Syslog  string // facility name, e.g. "user" or "local0"
	Logfile string
}

var (
	setupMu sync.Mutex
	setup   bool
	closers []io.Closer
)

// Setup configures the process-wide logger. It may be called once.
func Setup(cfg Config) error {
	setupMu.Lock()
	defer setupMu.Unlock()

	if setup {
		return ErrAlreadyConfigured
	}

	switch {
	case cfg.Debug:
		Level.Set(slog.LevelDebug)
	case cfg.Verbose:
		Level.Set(slog.LevelInfo)
	}

	handlers := fanoutHandler{stderrHandler()}
	var opened []io.Closer

	if cfg.Logfile != "" {
		f, err := os.OpenFile(cfg.Logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		opened = append(opened, f)
		handlers = append(handlers, newTextHandler(f))
	}

	if cfg.Syslog != "" {
		w, err := openSyslog(cfg.Syslog)
		if err != nil {
			closeAll(opened)
			return err
		}
		opened = append(opened, w)
		handlers = append(handlers, newSyslogHandler(w))
	}

	if len(handlers) == 1 {
		defaultLogger = &Logger{sl: slog.New(handlers[0])}
	} else {
		defaultLogger = &Logger{sl: slog.New(handlers)}
	}
	closers = opened
	setup = true
	return nil
}

// Close releases the log file and syslog connection opened by Setup.
func Close() error {
	setupMu.Lock()
	defer setupMu.Unlock()
	err := closeAll(closers)
	closers = nil
	return err
}

func closeAll(cs []io.Closer) error {
	var errs []error
	for _, c := range cs {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
