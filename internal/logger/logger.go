// Package logger provides structured logging for the aideon-tools CLI.
// Logs go to stderr so command output stays pipeable. The minimum level
// comes from the --log-level flag; the AIDEON_LOG environment variable
// overrides the flag when set.
package logger

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvVar is the environment variable that overrides the configured level.
const EnvVar = "AIDEON_LOG"

var (
	mu  sync.RWMutex
	log = zap.NewNop()
)

// Init configures the global logger at the given level name
// (error, warn, info, debug). AIDEON_LOG takes precedence when set.
func Init(levelName string) error {
	if env := os.Getenv(EnvVar); env != "" {
		levelName = env
	}

	level, err := zapcore.ParseLevel(levelName)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", levelName, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}

	mu.Lock()
	log = built
	mu.Unlock()
	return nil
}

// Replace swaps the global logger. Useful for testing.
func Replace(l *zap.Logger) {
	mu.Lock()
	log = l
	mu.Unlock()
}

// Sync flushes buffered log entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	_ = log.Sync()
}

// Debug logs at debug level.
func Debug(msg string, fields ...zap.Field) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug(msg, fields...)
}

// Info logs at info level.
func Info(msg string, fields ...zap.Field) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info(msg, fields...)
}

// Warn logs at warn level.
func Warn(msg string, fields ...zap.Field) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn(msg, fields...)
}

// Error logs at error level.
func Error(msg string, fields ...zap.Field) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error(msg, fields...)
}
