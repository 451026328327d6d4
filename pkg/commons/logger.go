// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.
package commons

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logging contract. Every component receives a
// Logger in its constructor; there is no ambient/global logger.
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

type applicationLogger struct {
	*zap.SugaredLogger
}

type LoggerOption func(*loggerConfig)

type loggerConfig struct {
	level   zapcore.Level
	logFile string
}

// WithLogFile mirrors log output into a rotating file.
func WithLogFile(path string) LoggerOption {
	return func(c *loggerConfig) {
		c.logFile = path
	}
}

// WithDebug lowers the log level to debug.
func WithDebug() LoggerOption {
	return func(c *loggerConfig) {
		c.level = zapcore.DebugLevel
	}
}

// NewApplicationLogger builds the zap-backed application logger.
func NewApplicationLogger(opts ...LoggerOption) (Logger, error) {
	cfg := &loggerConfig{level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(cfg)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.Lock(os.Stdout),
			cfg.level,
		),
	}
	if cfg.logFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.logFile,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(rotator),
			cfg.level,
		))
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &applicationLogger{logger.Sugar()}, nil
}
