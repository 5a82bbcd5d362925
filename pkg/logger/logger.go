// Package logger wraps a zap sugared logger with key/value helpers.
package logger

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Modes.
const (
	ModeDev  = "dev"
	ModeProd = "prod"
)

// Logger is a structured logger.
type Logger struct {
	SugaredLogger *zap.SugaredLogger
}

// New builds a logger. "prod" and "production" log JSON at info level;
// anything else logs human-readable output at debug level.
func New(mode string) (log *Logger, err error) {
	var cfg zap.Config
	switch strings.ToLower(mode) {
	case ModeProd, "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	zapLogger, err := cfg.Build()
	if err != nil {
		err = errors.Wrap(err, "failed to build logger")
		return log, err
	}

	log = &Logger{SugaredLogger: zapLogger.Sugar()}
	return log, err
}

// Nop returns a logger that discards everything.
func Nop() (log *Logger) {
	log = &Logger{SugaredLogger: zap.NewNop().Sugar()}
	return log
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.SugaredLogger.Sync()
}

// Debug logs msg with key/value pairs at debug level.
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Debugw(msg, keysAndValues...)
}

// Info logs msg with key/value pairs at info level.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Infow(msg, keysAndValues...)
}

// Warn logs msg with key/value pairs at warn level.
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Warnw(msg, keysAndValues...)
}

// Error logs msg with key/value pairs at error level.
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.SugaredLogger.Errorw(msg, keysAndValues...)
}

// With returns a child logger that adds keysAndValues to every entry.
func (l *Logger) With(keysAndValues ...interface{}) (child *Logger) {
	child = &Logger{SugaredLogger: l.SugaredLogger.With(keysAndValues...)}
	return child
}
