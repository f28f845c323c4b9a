// Package logger wraps a process-wide structured logger.
//
// kolabpad's own pkg/logger is a hand-rolled log.Printf wrapper gated
// by a LOG_LEVEL env var. This repo keeps that same Init/Debug/Info/
// Error call shape but backs it with go.uber.org/zap (the structured
// logger used by spencerandtheteagues-apex-build-platform and
// zfogg-sidechain) so call sites can attach structured fields
// (room_id, session_id, revision) instead of baking them into a
// format string.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger

func init() {
	log = mustBuild(zapcore.InfoLevel).Sugar()
}

// Init (re)initializes the logger at the named level ("debug", "info",
// or "error"; anything else defaults to "info"). Callers should pass
// config.Config.LogLevel, assembled after dotenv has populated the
// environment, rather than reading LOG_LEVEL here directly.
func Init(levelName string) {
	level := zapcore.InfoLevel
	switch strings.ToLower(levelName) {
	case "debug":
		level = zapcore.DebugLevel
	case "error":
		level = zapcore.ErrorLevel
	}
	log = mustBuild(level).Sugar()
}

func mustBuild(level zapcore.Level) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	l, err := cfg.Build()
	if err != nil {
		// Falling back to a no-op logger would hide every subsequent
		// log line silently; failing loudly at startup is preferable.
		panic("logger: build zap logger: " + err.Error())
	}
	return l
}

// Debug logs at debug level with structured key/value pairs.
func Debug(msg string, kv ...interface{}) { log.Debugw(msg, kv...) }

// Info logs at info level with structured key/value pairs.
func Info(msg string, kv ...interface{}) { log.Infow(msg, kv...) }

// Error logs at error level with structured key/value pairs.
func Error(msg string, kv ...interface{}) { log.Errorw(msg, kv...) }

// Sync flushes any buffered log entries. Call before process exit.
func Sync() {
	_ = log.Sync()
}
