package logx

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level mirrors zap levels with a narrower surface.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

var (
	mu     sync.RWMutex
	atom   = zap.NewAtomicLevelAt(LevelInfo)
	logger = newLogger()
)

func newLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Level = atom
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	return l.Sugar()
}

// SetLevel changes the global log level.
func SetLevel(l Level) {
	atom.SetLevel(l)
}

// ReplaceLogger swaps the underlying logger (used by tests).
func ReplaceLogger(l *zap.SugaredLogger) {
	mu.Lock()
	defer mu.Unlock()
	logger = l
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

func Debug(args ...any)                 { get().Debug(args...) }
func Debugf(format string, args ...any) { get().Debugf(format, args...) }
func Info(args ...any)                  { get().Info(args...) }
func Infof(format string, args ...any)  { get().Infof(format, args...) }
func Warn(args ...any)                  { get().Warn(args...) }
func Warnf(format string, args ...any)  { get().Warnf(format, args...) }
func Error(args ...any)                 { get().Error(args...) }
func Errorf(format string, args ...any) { get().Errorf(format, args...) }
func Fatalf(format string, args ...any) { get().Fatalf(format, args...) }

// Sync flushes buffered log entries. Safe to call on shutdown.
func Sync() {
	_ = get().Sync()
}
