package logger

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestNew tests the New function.
func TestNew(t *testing.T) {
	t.Parallel()

	for _, level := range []zapcore.LevelEnabler{zapcore.DebugLevel, zapcore.ErrorLevel, nil} {
		assert.NotNil(t, New(level))
	}
}

// TestParseLogLevel tests the ParseLogLevel function.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zapcore.Level
		valid    bool
	}{
		{input: "debug", expected: zapcore.DebugLevel, valid: true},
		{input: "info", expected: zapcore.InfoLevel, valid: true},
		{input: "warn", expected: zapcore.WarnLevel, valid: true},
		{input: "error", expected: zapcore.ErrorLevel, valid: true},
		{input: "fatal", expected: zapcore.FatalLevel, valid: true},
		{input: "DEBUG", expected: zapcore.DebugLevel, valid: true},
		{input: " Warn ", expected: zapcore.WarnLevel, valid: true},
		{input: "verbose", expected: zapcore.InfoLevel, valid: false},
		{input: "", expected: zapcore.InfoLevel, valid: false},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			t.Parallel()

			level, valid := ParseLogLevel(tt.input)
			assert.Equal(t, tt.expected, level)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

// TestSetLogger tests that the global logger can be replaced and restored.
//
//nolint:paralleltest // It changes the global logger.
func TestSetLogger(t *testing.T) {
	originalLogger := Logger()
	require.NotNil(t, originalLogger, "the logger is initialized in init")

	defer SetLogger(originalLogger)

	newLogger := New(zapcore.DebugLevel)
	SetLogger(newLogger)

	assert.Same(t, newLogger, Logger())
}

// TestSetLevel tests the shared atomic level.
//
//nolint:paralleltest // It changes the global level.
func TestSetLevel(t *testing.T) {
	originalLevel := Level()
	defer SetLevel(originalLevel)

	SetLevel(zapcore.DebugLevel)
	assert.Equal(t, zapcore.DebugLevel, Level())
	assert.True(t, IsDebugLevel())

	SetLevel(zapcore.ErrorLevel)
	assert.Equal(t, zapcore.ErrorLevel, Level())
	assert.False(t, IsDebugLevel())
}

// TestContextLoggingFunctions tests that the context helpers do not panic.
// Fatal helpers exit the process and are not called.
func TestContextLoggingFunctions(t *testing.T) {
	t.Parallel()

	ctx := WithName(WithKV(context.Background(), "input", "doc.json"), "test")

	assert.NotPanics(t, func() {
		Debug(ctx, "debug message")
		Debugf(ctx, "debug message: %s", "formatted")
		DebugKV(ctx, "debug message", "key", "value")
		Info(ctx, "info message")
		Infof(ctx, "info message: %s", "formatted")
		InfoKV(ctx, "info message", "key", "value")
		Warn(ctx, "warn message")
		Warnf(ctx, "warn message: %s", "formatted")
		WarnKV(ctx, "warn message", "key", "value")
		Error(ctx, "error message")
		Errorf(ctx, "error message: %s", "formatted")
		ErrorKV(ctx, "error message", "key", "value")
	})
}

// TestLoggerThreadSafety tests concurrent logging through the global logger.
func TestLoggerThreadSafety(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup

	for i := range 10 {
		wg.Go(func() {
			InfoKV(t.Context(), "concurrent message", "worker", i)
		})
	}

	wg.Wait()
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	assert.Equal(t, Logger(), FromContext(ctx))

	custom := New(zapcore.WarnLevel)
	ctx = ToContext(ctx, custom)
	assert.Equal(t, custom, FromContext(ctx))

	named := WithName(ctx, "document")
	assert.NotEqual(t, custom, FromContext(named))

	withKV := WithKV(ctx, "file", "data.json")
	assert.NotEqual(t, custom, FromContext(withKV))

	// Logging through derived contexts must not panic.
	InfoKV(withKV, "processed", "format", "json")
	WarnKV(named, "skipped", "reason", "undetermined")
}

// TestNewWithFileSink tests that log records reach the rotating file.
func TestNewWithFileSink(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "docformat.log")

	l, closeSink, err := NewWithFileSink(zapcore.InfoLevel, FileSinkConfig{
		Path:       path,
		MaxSizeMB:  1,
		MaxBackups: 1,
		MaxAgeDays: 1,
	})
	require.NoError(t, err)

	l.Infow("file sink message", "key", "value")
	_ = l.Sync()

	require.NoError(t, closeSink())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file sink message")
	assert.Contains(t, string(content), `"key":"value"`)
}
