package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

type zapLogger struct {
	log *zap.SugaredLogger
}

// New creates a Logger backed by zap at the given level ("debug", "info", "warn",
// "error"). An unknown level falls back to info.
func New(level string) (Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &zapLogger{log: l.Sugar()}, nil
}

// NewNop creates a Logger that discards everything. Used in tests.
func NewNop() Logger {
	return &zapLogger{log: zap.NewNop().Sugar()}
}

func (l *zapLogger) Error(msg string, err error) {
	l.log.Errorw(msg, "error", err)
}

func (l *zapLogger) Warn(msg string) {
	l.log.Warn(msg)
}

func (l *zapLogger) Info(msg string) {
	l.log.Info(msg)
}

func (l *zapLogger) Debug(msg string) {
	l.log.Debug(msg)
}
