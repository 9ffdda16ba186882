package logger_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/qcatools/qcamap.go/pkg/logger"
)

func TestLog(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.New().FromBuffer(buff).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger)
	// Get Stats Before
	require.Equal(t, buff.Len(), 0)
	templogger.Info("Test", "marker", 10)
	// Get Stats After
	require.Contains(t, buff.String(), "Test")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buff.Bytes(), &line))
	require.Equal(t, "info", line["level"])
	require.EqualValues(t, 10, line["marker"])
}

func TestLogLevel(t *testing.T) {
	buff := bytes.NewBuffer([]byte{})
	templogger, err := logger.New().FromBuffer(buff).Make()
	require.NoError(t, err)

	templogger.Debug("hidden")
	require.Equal(t, 0, buff.Len())

	templogger, err = logger.New().FromBuffer(buff).WithLevel(zerolog.DebugLevel).Make()
	require.NoError(t, err)
	templogger.Debug("shown")
	require.Contains(t, buff.String(), "shown")
}

func TestLogFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qcamap.log")
	templogger, err := logger.New().FromPath(path).Make()
	require.NoError(t, err)
	require.NotNil(t, templogger.LogFile)

	templogger.Warn("written")
	require.NoError(t, templogger.Close())
}

func TestNop(t *testing.T) {
	l := logger.Nop()
	l.Error("nothing")
	l.Debug("nothing")
}
