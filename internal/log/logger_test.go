package log

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"comicsort/internal/errors"

	alsrt "github.com/alecthomas/assert"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("info message")
	assert.Contains(t, buf.String(), "level=info")
	assert.Contains(t, buf.String(), "info message")
	buf.Reset()

	l.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")
	buf.Reset()

	l.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
	buf.Reset()

	l.Infof("formatted %s", "message")
	assert.Contains(t, buf.String(), "formatted message")
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	SetDebug(false)
	l.Debug("debug message")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
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

	l.With(F("mapping", "Daily"), F("count", 3)).Info("structured message")
	output := buf.String()
	alsrt.Contains(t, output, "structured message")
	alsrt.Contains(t, output, "mapping=Daily")
	alsrt.Contains(t, output, "count=3")
	buf.Reset()

	l.With(F("mapping", "Daily")).With(F("count", 3)).Info("chained fields")
	output = buf.String()
	alsrt.Contains(t, output, "mapping=Daily")
	alsrt.Contains(t, output, "count=3")
}

func TestJSONLogging(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON())

	l.With(F("mapping", "Daily"), F("count", 3)).Info("json message")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))

	alsrt.Equal(t, "info", entry["level"])
	alsrt.Equal(t, "json message", entry["message"])
	alsrt.Equal(t, "Daily", entry["mapping"])
	alsrt.Equal(t, float64(3), entry["count"])
	assert.Contains(t, entry, "timestamp")
	assert.Contains(t, entry, "caller")
}

func TestCallerInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.Info("caller test")
	assert.Contains(t, buf.String(), "logger_test.go:")

	original := logger
	Configure(WithOutput(&buf))
	defer func() { logger = original }()
	buf.Reset()

	Info("package caller test")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestErrorLogging(t *testing.T) {
	var buf bytes.Buffer
	original := logger
	Configure(WithOutput(&buf))
	defer func() { logger = original }()

	LogWithFields(F("error", fmt.Errorf("standard error").Error())).Error("error occurred")
	assert.Contains(t, buf.String(), "standard error")
	buf.Reset()

	fileErr := errors.NewFileError("cannot create directory", "/srv/comics", errors.DirectoryCreateFailed, nil)
	LogWithError(fileErr).Error("file error occurred")
	output := buf.String()
	assert.Contains(t, output, "file error occurred")
	assert.Contains(t, output, "path=/srv/comics")
	assert.Contains(t, output, "error_kind=directory_create")
	buf.Reset()

	configErr := errors.NewConfigError("bad slice", "directory", errors.InvalidConfig, nil)
	LogWithError(configErr).Error("config error occurred")
	output = buf.String()
	assert.Contains(t, output, "param=directory")
	assert.Contains(t, output, "error_kind=invalid_config")
	buf.Reset()

	mappingErr := errors.NewMappingError("derive name", "Daily", "a.jpg", errors.PatternMismatch, nil)
	LogError(mappingErr, "convenient error log")
	output = buf.String()
	assert.Contains(t, output, "convenient error log")
	assert.Contains(t, output, "mapping=Daily")
	assert.Contains(t, output, "file=a.jpg")
	assert.Contains(t, output, "error_kind=pattern_mismatch")
}

func TestNilErrorHandling(t *testing.T) {
	var buf bytes.Buffer
	original := logger
	Configure(WithOutput(&buf))
	defer func() { logger = original }()

	LogWithError(nil).Error("nil error test")
	assert.Contains(t, buf.String(), "nil error test")
	assert.Contains(t, buf.String(), `error="<nil>"`)
}

func TestFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comicsort.log")
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithFile(path))
	defer l.Close()

	l.Info("file test message")

	assert.Contains(t, buf.String(), "file test message")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "file test message")
}

func TestWithContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf))

	l.WithContext(nil).Info("context message") //nolint:staticcheck
	assert.Contains(t, buf.String(), "context message")
}

func TestDefaultFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(WithOutput(&buf), WithJSON(), WithFields(F("run", "abc123")))

	l.Info("first")
	l.With(F("file", "comic_1.jpg")).Info("second")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		alsrt.Equal(t, "abc123", entry["run"])
	}
}
