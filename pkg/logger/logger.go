// Package logger configures the global logrus logger.
package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logger configuration options.
type Config struct {
	// Level is a logrus level name. Unknown names fall back to info.
	Level string

	// JSON enables the JSON formatter. If false, the text formatter is used.
	JSON bool

	// Dir is where rotated log files are written.
	// If empty, only stdout logging is enabled.
	Dir string
}

// Init applies cfg to the standard logrus logger.
func Init(cfg Config) error {
	return Configure(logrus.StandardLogger(), cfg)
}

// Configure applies cfg to log.
func Configure(log *logrus.Logger, cfg Config) error {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.JSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var writer io.Writer = os.Stdout
	if cfg.Dir != "" {
		if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
			return err
		}

		logFile := &lumberjack.Logger{
			Filename:   filepath.Join(cfg.Dir, "drive-rag.log"),
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
		writer = io.MultiWriter(os.Stdout, logFile)
	}
	log.SetOutput(writer)

	return nil
}
