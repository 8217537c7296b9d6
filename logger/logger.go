// Package logger installs the process-wide slog logger: text output
// on stdout plus, when a log directory is configured, a rotating file
// managed by lumberjack.
package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lj "gopkg.in/natefinch/lumberjack.v2"

	"mumbaisim/config"
)

const logFileName = "simulation.log"

// Setup configures the default slog logger from cfg. The returned
// closer owns the rotating file writer and is nil when logging goes
// to stdout only.
func Setup(cfg config.LoggingConfig) (io.Closer, error) {
	writers := []io.Writer{os.Stdout}
	var closer io.Closer

	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return nil, err
		}
		file := &lj.Logger{
			Filename:   filepath.Join(cfg.Dir, logFileName),
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		writers = append(writers, file)
		closer = file
	}

	handler := slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	})
	slog.SetDefault(slog.New(handler))

	return closer, nil
}

// ParseLevel maps a config string to a slog level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
