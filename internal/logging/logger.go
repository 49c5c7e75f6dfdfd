// Package logging builds the zap loggers used across the game.
// The terminal belongs to the game, so logs always go to a rotating file.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tomz197/invaders/internal/config"
)

// Options configures the file logger.
type Options struct {
	File       string // Log file path
	Level      string // debug, info, warn, error
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// OptionsFromEnv reads logger options from INVADERS_LOG_* variables.
func OptionsFromEnv() Options {
	return Options{
		File:       config.GetEnv("INVADERS_LOG_FILE", "invaders.log"),
		Level:      config.GetEnv("INVADERS_LOG_LEVEL", "info"),
		MaxSizeMB:  config.GetEnvInt("INVADERS_LOG_MAX_SIZE_MB", 10),
		MaxBackups: config.GetEnvInt("INVADERS_LOG_MAX_BACKUPS", 3),
		MaxAgeDays: config.GetEnvInt("INVADERS_LOG_MAX_AGE_DAYS", 7),
	}
}

// New creates a sugared logger writing to a size-rotated file.
func New(opts Options) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	lj := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:       "ts",
		LevelKey:      "level",
		NameKey:       "logger",
		CallerKey:     "caller",
		MessageKey:    "msg",
		StacktraceKey: "stack",
		LineEnding:    zapcore.DefaultLineEnding,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeCaller:  zapcore.ShortCallerEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(lj), level)

	return zap.New(core, zap.AddCaller()).Sugar(), nil
}

// Nop returns a logger that discards everything.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// Sync flushes buffered entries, ignoring the error some sinks return on close.
func Sync(log *zap.SugaredLogger) {
	if log != nil {
		_ = log.Sync()
	}
}
