package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/dayplan/internal/constants"
)

var (
	// Logger is shared by every package. It stays nil until Init, and the
	// helpers below are no-ops until then, so tests need no setup.
	Logger *log.Logger

	// seen records the causes already reported through WarnOnce.
	seen sync.Map
)

// Config selects the log level and where the log directory lives.
type Config struct {
	Debug     bool
	ConfigDir string
}

// Init opens <ConfigDir>/logs/dayplan.log with rotation. Only warnings
// and errors are kept unless Debug is set.
func Init(cfg Config) error {
	logDir := filepath.Join(cfg.ConfigDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.AppName+".log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	// In debug mode mirror everything to stderr, otherwise stay silent on the terminal.
	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           level,
		Prefix:          constants.AppName,
	})

	return nil
}

func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// WarnOnce logs a warning the first time a given cause is reported and drops
// every later report of the same cause for the life of the process.
// It returns true when the message was emitted.
func WarnOnce(cause string, msg string, keyvals ...interface{}) bool {
	if _, loaded := seen.LoadOrStore(cause, struct{}{}); loaded {
		return false
	}
	Warn(msg, append([]interface{}{"cause", cause}, keyvals...)...)
	return true
}

func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs msg and exits with status 1, even before Init.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
	}
	os.Exit(1)
}
