// Package logging builds the zap loggers used by the commands.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config selects the encoder, level and optional rotating file sink.
type Config struct {
	Level      string `long:"log-level" env:"LOG_LEVEL" default:"info" description:"log level (debug, info, warn, error)"`
	JSON       bool   `long:"log-json" env:"LOG_JSON" description:"encode console logs as JSON"`
	File       string `long:"log-file" env:"LOG_FILE" description:"also write JSON logs to this rotating file"`
	MaxSizeMB  int    `long:"log-max-size-mb" env:"LOG_MAX_SIZE_MB" default:"100" description:"rotate the log file after this many megabytes"`
	MaxBackups int    `long:"log-max-backups" env:"LOG_MAX_BACKUPS" default:"5" description:"rotated log files to keep"`
}

// New builds a logger writing to stderr and, when cfg.File is set, to a
// rotating file.
func New(cfg Config) (*zap.Logger, error) {
	level := zap.InfoLevel
	if cfg.Level != "" {
		parsed, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("parse log level: %w", err)
		}
		level = parsed
	}

	consoleEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	if cfg.JSON {
		consoleEncoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), level),
	}

	if cfg.File != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), sink, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}
