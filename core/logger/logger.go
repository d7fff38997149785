package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	sugar *zap.SugaredLogger
)

// Init builds the global logger. env is "production" or anything else for
// development output. Safe to call more than once; the last call wins.
func Init(env string) {
	var l *zap.Logger
	var err error

	if env == "production" {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build(zap.AddCallerSkip(1))
	} else {
		cfg := zap.NewDevelopmentConfig()
		l, err = cfg.Build(zap.AddCallerSkip(1))
	}
	if err != nil {
		l = zap.NewNop()
	}

	mu.Lock()
	sugar = l.Sugar()
	mu.Unlock()
}

func base() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s == nil {
		Init("development")
		mu.RLock()
		s = sugar
		mu.RUnlock()
	}
	return s
}

func Debug(msg string, keysAndValues ...any) {
	base().Debugw(msg, normalize(keysAndValues)...)
}

func Info(msg string, keysAndValues ...any) {
	base().Infow(msg, normalize(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...any) {
	base().Warnw(msg, normalize(keysAndValues)...)
}

func Error(msg string, keysAndValues ...any) {
	base().Errorw(msg, normalize(keysAndValues)...)
}

// normalize tolerates the shorthand Error("Repo:Method", err) call form by
// pairing the dangling first value under the "error" key.
func normalize(kv []any) []any {
	if len(kv)%2 == 1 {
		return append([]any{"error"}, kv...)
	}
	return kv
}

// Sync flushes buffered log entries. Call before process exit.
func Sync() {
	_ = base().Sync()
}
