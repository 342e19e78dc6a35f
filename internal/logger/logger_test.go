package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-tagger/internal/logger"
)

func TestNewWithWriterText(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "tagger", "warn", "")

	log.Info("hidden")
	log.Warn("shown", "files", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=shown")
	require.Contains(t, out, "service=tagger")
	require.Contains(t, out, "files=3")
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&buf, "api", "debug", "JSON")

	log.Debug("hello")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "api", line["service"])
	require.Equal(t, "DEBUG", line["level"])
}
