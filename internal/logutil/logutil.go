// SPDX-License-Identifier: MIT

// Package logutil builds the zap loggers used by the command line tools.
// Numerical packages never log; only cmd/ code receives a *zap.Logger.
package logutil

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ErrInvalidConfig is returned for an unknown level or format.
var ErrInvalidConfig = errors.New("logutil: invalid config")

// Config describes the logger. An empty Filename logs to stderr; otherwise the
// file is rotated by lumberjack once it exceeds MaxSize megabytes.
type Config struct {
	Level      string `toml:"level"`
	Format     string `toml:"format"`
	Filename   string `toml:"filename"`
	MaxSize    int    `toml:"max-size"`
	MaxDays    int    `toml:"max-days"`
	MaxBackups int    `toml:"max-backups"`
}

// Default logs info and above to stderr in console format.
func Default() Config {
	return Config{Level: "info", Format: FormatConsole, MaxSize: 64, MaxDays: 7, MaxBackups: 4}
}

func (c Config) level() (zap.AtomicLevel, error) {
	if c.Level == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel), nil
	}
	lvl, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return lvl, fmt.Errorf("level %q: %w", c.Level, ErrInvalidConfig)
	}

	return lvl, nil
}

func (c Config) encoder() (zapcore.Encoder, error) {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	switch strings.ToLower(c.Format) {
	case "", FormatConsole:
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(ec), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(ec), nil
	default:
		return nil, fmt.Errorf("format %q: %w", c.Format, ErrInvalidConfig)
	}
}

func (c Config) syncer() zapcore.WriteSyncer {
	if c.Filename == "" {
		return zapcore.Lock(os.Stderr)
	}

	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   c.Filename,
		MaxSize:    c.MaxSize,
		MaxAge:     c.MaxDays,
		MaxBackups: c.MaxBackups,
	})
}

// Validate checks level and format without building anything.
func (c Config) Validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	_, err := c.encoder()

	return err
}

// New builds a logger from cfg.
func New(cfg Config) (*zap.Logger, error) {
	lvl, err := cfg.level()
	if err != nil {
		return nil, err
	}
	enc, err := cfg.encoder()
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(enc, cfg.syncer(), lvl)

	return zap.New(core, zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))), nil
}
