package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetSetup restores the package state Setup mutates.
func resetSetup(t *testing.T) {
	t.Helper()
	prevLogger, prevLevel := defaultLogger, Level.lvl.Level()
	t.Cleanup(func() {
		_ = Close()
		setupMu.Lock()
		setup = false
		setupMu.Unlock()
		defaultLogger = prevLogger
		Level.Set(prevLevel)
	})
}

type fakeSyslog struct {
	sent []string
}

func (f *fakeSyslog) Err(m string) error { f.sent = append(f.sent, "err: "+m); return nil }
func (f *fakeSyslog) Warning(m string) error { f.sent = append(f.sent, "warning: "+m); return nil }
func (f *fakeSyslog) Info(m string) error { f.sent = append(f.sent, "info: "+m); return nil }
func (f *fakeSyslog) Debug(m string) error { f.sent = append(f.sent, "debug: "+m); return nil }
func (f *fakeSyslog) Close() error { return nil }

func TestSyslogHandlerSeverity(t *testing.T) {
	resetSetup(t)
	Level.Set(slog.LevelDebug)

	w := &fakeSyslog{}
	l := &Logger{sl: slog.New(newSyslogHandler(w))}
	l.Error("inventory failed")
	l.Warning("no items")
	l.Info("building")
	l.With("component", "resolver").Debug("executing")

	require.Len(t, w.sent, 4)
	assert.Equal(t, `err: level=error msg="inventory failed"`, w.sent[0])
	assert.Equal(t, `warning: level=warn msg="no items"`, w.sent[1])
	assert.Equal(t, `info: level=info msg=building`, w.sent[2])
	assert.Equal(t, `debug: level=debug msg=executing component=resolver`, w.sent[3])
}

func TestSyslogHandlerRespectsLevel(t *testing.T) {
	resetSetup(t)
	Level.Set(slog.LevelWarn)

	w := &fakeSyslog{}
	l := &Logger{sl: slog.New(newSyslogHandler(w))}
	l.Info("hidden")
	l.Warning("shown")

	assert.Equal(t, []string{`warning: level=warn msg=shown`}, w.sent)
}

func TestLoggerWritesThroughHandler(t *testing.T) {
	resetSetup(t)
	Level.Set(slog.LevelDebug)

	var buf bytes.Buffer
	l := &Logger{sl: slog.New(newTextHandler(&buf))}
	l.With("component", "test").Debugf("resolved %d item(s)", 3)

	out := buf.String()
	assert.Contains(t, out, "level=debug")
	assert.Contains(t, out, `msg="resolved 3 item(s)"`)
	assert.Contains(t, out, "component=test")
}

func TestLoggerRespectsLevel(t *testing.T) {
	resetSetup(t)
	Level.Set(slog.LevelWarn)

	var buf bytes.Buffer
	l := &Logger{sl: slog.New(newTextHandler(&buf))}
	l.Info("hidden")
	l.Warning("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	resetSetup(t)
	Level.Set(slog.LevelInfo)

	var buf bytes.Buffer
	defaultLogger = &Logger{sl: slog.New(newTextHandler(&buf))}

	var l *Logger
	l.Info("from nil")
	assert.Contains(t, buf.String(), "from nil")
}

func TestFanoutHandler(t *testing.T) {
	resetSetup(t)
	Level.Set(slog.LevelInfo)

	var a, b bytes.Buffer
	l := &Logger{sl: slog.New(fanoutHandler{newTextHandler(&a), newTextHandler(&b)})}
	l.Info("both")

	assert.Contains(t, a.String(), "both")
	assert.Contains(t, b.String(), "both")
}

func TestSetupLevels(t *testing.T) {
	t.Run("verbose", func(t *testing.T) {
		resetSetup(t)
		require.NoError(t, Setup(Config{Verbose: true}))
		assert.Equal(t, slog.LevelInfo, Level.lvl.Level())
	})
	t.Run("debug wins over verbose", func(t *testing.T) {
		resetSetup(t)
		require.NoError(t, Setup(Config{Verbose: true, Debug: true}))
		assert.Equal(t, slog.LevelDebug, Level.lvl.Level())
	})
}

func TestSetupOnlyOnce(t *testing.T) {
	resetSetup(t)
	require.NoError(t, Setup(Config{}))
	assert.ErrorIs(t, Setup(Config{}), ErrAlreadyConfigured)
}

func TestSetupLogfile(t *testing.T) {
	resetSetup(t)
	path := filepath.Join(t.TempDir(), "zgraph.log")

	require.NoError(t, Setup(Config{Verbose: true, Logfile: path}))
	Infof("building graph for %s", "cpu_load")
	require.NoError(t, Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "building graph for cpu_load")
	assert.Contains(t, string(data), "level=info")
}

func TestSetupLogfileUnwritable(t *testing.T) {
	resetSetup(t)
	err := Setup(Config{Logfile: filepath.Join(t.TempDir(), "missing", "zgraph.log")})
	require.Error(t, err)

	// a failed setup can be retried
	assert.NoError(t, Setup(Config{}))
}

func TestSetupUnknownSyslogFacility(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("syslog not available")
	}
	resetSetup(t)
	err := Setup(Config{Syslog: "nope"})
	assert.ErrorIs(t, err, ErrUnknownFacility)
}
