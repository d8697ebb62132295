// Package logger holds the process-wide zap logger. vex owns the terminal
// while it runs, so records only ever go to a file.
package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	L       *zap.Logger
	S       *zap.SugaredLogger
	level   = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	logFile *os.File
)

// Init truncates the log file at Path and installs L and S. With debug
// set, per-keystroke records (page changes, byte commits) are kept too.
func Init(debug bool) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	logFile = f

	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "ts"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeDuration = zapcore.StringDurationEncoder

	SetDebug(debug)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(f), level)
	L = zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).Named("vex")
	S = L.Sugar()

	S.Infow("log opened", "path", path, "debug", debug, "pid", os.Getpid())
	return nil
}

// SetDebug switches between Info and Debug without reopening the file.
func SetDebug(debug bool) {
	if debug {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// Close flushes and releases the log file. Helpers are no-ops afterwards.
func Close() {
	if L != nil {
		_ = L.Sync()
	}
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
	L, S = nil, nil
}

// Path returns $VEX_LOG_FILE, or vex.log in the config directory
// ($VEX_CONFIG_HOME, $XDG_CONFIG_HOME/vex, ~/.config/vex).
func Path() (string, error) {
	if v := os.Getenv("VEX_LOG_FILE"); v != "" {
		return v, nil
	}
	if v := os.Getenv("VEX_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vex.log"), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "vex", "vex.log"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "vex", "vex.log"), nil
}

func Debug(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Debugw(msg, keysAndValues...)
	}
}

func Info(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Infow(msg, keysAndValues...)
	}
}

func Warn(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Warnw(msg, keysAndValues...)
	}
}

func Error(msg string, keysAndValues ...interface{}) {
	if S != nil {
		S.Errorw(msg, keysAndValues...)
	}
}
