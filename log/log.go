// Package log wraps zap with the key-value call convention used throughout
// the indexer: Info(msg, "key", val, "key2", val2, ...).
package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a structured logger accepting alternating key/value pairs.
type Logger struct {
	z *zap.SugaredLogger
}

// Options configures file rotation for New.
type Options struct {
	// Path is the log file; empty means stderr only.
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Level      zapcore.Level
}

// New builds a Logger writing to stderr, and additionally to a rotating
// file at opts.Path when set.
func New(opts Options) (*Logger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), opts.Level),
	}
	if opts.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    nonZero(opts.MaxSizeMB, 100),
			MaxBackups: nonZero(opts.MaxBackups, 5),
			MaxAge:     nonZero(opts.MaxAgeDays, 28),
			Compress:   opts.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), opts.Level))
	}

	core := zapcore.NewTee(cores...)
	z := zap.New(core).Sugar()
	return &Logger{z: z}, nil
}

func nonZero(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

// Info logs msg at info level with alternating key/value args.
func (l *Logger) Info(msg string, kv ...any) { l.z.Infow(msg, kv...) }

// Warn logs msg at warn level with alternating key/value args.
func (l *Logger) Warn(msg string, kv ...any) { l.z.Warnw(msg, kv...) }

// Error logs msg at error level with alternating key/value args.
func (l *Logger) Error(msg string, kv ...any) { l.z.Errorw(msg, kv...) }

// Debug logs msg at debug level with alternating key/value args.
func (l *Logger) Debug(msg string, kv ...any) { l.z.Debugw(msg, kv...) }

// Sync flushes any buffered log entries; call before process exit.
func (l *Logger) Sync() error { return l.z.Sync() }

// With returns a Logger that always includes the given key/value pairs,
// for request-scoped fields like a trace id.
func (l *Logger) With(kv ...any) *Logger { return &Logger{z: l.z.With(kv...)} }
