package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"mumbaisim/config"
)

func TestSetupStdoutOnly(t *testing.T) {
	closer, err := Setup(config.LoggingConfig{Level: "info"})
	require.NoError(t, err)
	require.Nil(t, closer)
}

func TestSetupCreatesRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")

	closer, err := Setup(config.LoggingConfig{Level: "debug", Dir: dir, MaxSizeMB: 1})
	require.NoError(t, err)
	require.NotNil(t, closer)
	defer func() { _ = closer.Close() }()

	slog.Info("probe")

	_, err = os.Stat(filepath.Join(dir, logFileName))
	require.NoError(t, err)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"ERROR":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range cases {
		require.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}
