package observability

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "warn", "json")
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("action failed", "target", "post-1")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "action failed", entry["msg"])
	assert.Equal(t, "post-1", entry["target"])
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewLogger(&buf, "DEBUG", "")
	require.NoError(t, err)

	logger.Debug("pause", "seconds", 3)
	assert.Contains(t, buf.String(), "msg=pause")
	assert.Contains(t, buf.String(), "seconds=3")
}

func TestNewLoggerRejectsUnknownSettings(t *testing.T) {
	_, err := NewLogger(&bytes.Buffer{}, "loud", "text")
	require.Error(t, err)

	_, err = NewLogger(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}
