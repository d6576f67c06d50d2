package cmd

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var ErrUnknownEnvironment = errors.New("logger environment must be either development or production")

// LoggerConfig selects the log level through the environment
// ("development" logs at debug level, "production" at info level), an
// optional file to log to in addition to stderr, and stack traces.
type LoggerConfig struct {
	EnableStacktrace bool   `toml:"enable_stacktrace,omitempty"`
	Environment      string `toml:"env"`
	Path             string `toml:"path,omitempty"`
}

// NewLogger builds a console logger writing to stderr and to conf.Path, if
// set. debug forces the debug level regardless of the environment.
func NewLogger(conf *LoggerConfig, debug bool) (*zap.SugaredLogger, error) {
	level := zap.NewAtomicLevel()
	switch {
	case strings.EqualFold("development", conf.Environment):
		level.SetLevel(zap.DebugLevel)
	case strings.EqualFold("production", conf.Environment):
		level.SetLevel(zap.InfoLevel)
	default:
		return nil, ErrUnknownEnvironment
	}
	if debug {
		level.SetLevel(zap.DebugLevel)
	}

	outputs := []string{"stderr"}
	if conf.Path != "" {
		outputs = append(outputs, conf.Path)
	}

	zconf := zap.Config{
		Level:             level,
		Encoding:          "console",
		DisableStacktrace: !conf.EnableStacktrace,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "msg",
			StacktraceKey:  "stack",
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := zconf.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
