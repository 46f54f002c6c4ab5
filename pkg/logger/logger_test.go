package logger_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/zllibrary/library-service/pkg/logger"
)

func TestNewLogger_UnwritableSink(t *testing.T) {
	t.Parallel()
	sink := filepath.Join(t.TempDir(), "missing", "library.log")

	log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "library")
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Contains(t, err.Error(), "open log sink")
	require.Nil(t, log)
}

func TestNewLogger_FileSink(t *testing.T) {
	t.Parallel()
	sink := filepath.Join(t.TempDir(), "library.log")

	log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel, Sink: sink}, "library")
	require.NoError(t, err)
	log.Debug("dropped")
	log.Info("book borrowed")
	_ = log.Sync()

	data, err := os.ReadFile(sink)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"book borrowed"`)
	require.Contains(t, string(data), `"logger":"library"`)
	require.NotContains(t, string(data), "dropped")
}

func TestNewLogger_Stdout(t *testing.T) {
	t.Parallel()
	log, err := logger.NewLogger(logger.Log{LogLevel: zapcore.InfoLevel}, "library")
	require.NoError(t, err)
	require.NotNil(t, log)
}
