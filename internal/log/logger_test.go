package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dua/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapLogger points the package-level logger at buf for the rest of the test
func swapLogger(t *testing.T, opts ...Option) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	original := logger
	Configure(append([]Option{WithOutput(&buf)}, opts...)...)
	t.Cleanup(func() {
		Close()
		logger = original
	})
	return &buf
}

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	assert.Contains(t, buf.String(), "warn message")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	assert.Contains(t, buf.String(), "error message")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))
	t.Cleanup(func() { SetDebug(false) })

	SetDebug(false)
	l.Debug("debug message")
	l.Debugf("formatted %s", "debug")
	assert.Empty(t, buf.String())

	SetDebug(true)
	l.Debug("debug message")
	assert.Contains(t, buf.String(), "level=debug")
	assert.Contains(t, buf.String(), "debug message")
	buf.Reset()

	l.Debugf("formatted %s", "debug")
	assert.Contains(t, buf.String(), "formatted debug")
}

func TestStructuredLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.With(F("key1", "value1"), F("key2", 123)).Info("structured message")
	output := buf.String()
	assert.Contains(t, output, "structured message")
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.With(F("key1", "value1")).With(F("key2", 123)).Info("chained fields")
	output = buf.String()
	assert.Contains(t, output, "key1=value1")
	assert.Contains(t, output, "key2=123")
	buf.Reset()

	l.Info("plain")
	assert.NotContains(t, buf.String(), "key1", "With does not modify the receiver")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("entries", 42)).Info("json message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "json message", entry["message"])
	assert.Equal(t, float64(42), entry["entries"])
	assert.Contains(t, entry, "timestamp")
}

func TestErrorLogging(t *testing.T) {
	buf := swapLogger(t)

	tests := []struct {
		name string
		err  error
		want []string
	}{
		{
			name: "plain error",
			err:  fmt.Errorf("standard error"),
			want: []string{`error="standard error"`},
		},
		{
			name: "application error",
			err:  errors.New("application error"),
			want: []string{`error="application error"`, "error_kind=0"},
		},
		{
			name: "file error",
			err:  errors.NewFileError("cannot read", "/data/x", errors.FileAccessDenied, nil),
			want: []string{"path=/data/x", "error_kind=2"},
		},
		{
			name: "scan error",
			err:  errors.NewScanError("scan failed", "/data", errors.ScanFailed, nil),
			want: []string{"path=/data", "error_kind=4"},
		},
		{
			name: "scan error without path",
			err:  errors.NewScanError("scan canceled", "", errors.ScanCanceled, nil),
			want: []string{"error_kind=5"},
		},
		{
			name: "config error",
			err:  errors.NewConfigError("invalid value", "display.sorting", errors.InvalidConfig, nil),
			want: []string{"param=display.sorting", "error_kind=8"},
		},
		{
			name: "render error",
			err:  errors.ErrRendererClosed,
			want: []string{"error_kind=7"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			LogError(tt.err, "something failed")
			output := buf.String()
			assert.Contains(t, output, "something failed")
			for _, want := range tt.want {
				assert.Contains(t, output, want)
			}
		})
	}
}

func TestNestedErrors(t *testing.T) {
	buf := swapLogger(t)

	base := fmt.Errorf("permission denied")
	fileErr := errors.NewFileError("cannot open", "/etc/dua.yaml", errors.FileAccessDenied, base)
	wrapped := errors.Wrap(fileErr, "loading config")

	LogWithError(wrapped).Error("nested error occurred")
	output := buf.String()
	assert.Contains(t, output, "loading config: cannot open: /etc/dua.yaml: permission denied")
	assert.Contains(t, output, "path=/etc/dua.yaml")
	assert.Contains(t, output, "error_kind=2")
}

func TestNilErrorHandling(t *testing.T) {
	buf := swapLogger(t)

	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
	assert.Contains(t, buf.String(), `error="<nil>"`)
}

func TestConfigure(t *testing.T) {
	buf := swapLogger(t, WithJSON())

	Info("global config test")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "global config test", entry["message"])
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dua.log")
	original := logger
	t.Cleanup(func() { logger = original })

	Configure(WithFile(path))
	Warnf("scanned %d entries", 3)
	Close()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "scanned 3 entries")
}

func TestFileOutputUnwritable(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithFile(filepath.Join(t.TempDir(), "missing", "dua.log")))

	l.Info("still here")
	assert.Contains(t, buf.String(), "cannot open log file")
	assert.Contains(t, buf.String(), "still here")
}

func TestDiscard(t *testing.T) {
	original := logger
	t.Cleanup(func() { logger = original })

	Discard()
	assert.NotPanics(t, func() { Error("dropped") })
}
