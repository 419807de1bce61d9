// Package log provides a structured logging facade persisted to daily files under the logs directory.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/beachcam-al/beachcam/filesystem"
	"github.com/beachcam-al/beachcam/key"
	"github.com/beachcam-al/beachcam/where"
	logrus "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is an alias so callers don't need to import logrus directly.
type Fields = logrus.Fields

var (
	logger = newDiscarding()
	path   string
	errOut io.Writer = os.Stderr
)

func newDiscarding() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// RedirectErrors sets where error entries go while file logging is off. It applies from the next Setup.
func RedirectErrors(w io.Writer) {
	errOut = w
}

// Setup initializes the file handle, formatter and severity level from the global configuration.
// When logs.write is false only error entries are kept, written to stderr.
func Setup() error {
	logger = newDiscarding()
	path = ""

	if !viper.GetBool(key.LogsWrite) {
		logger.SetOutput(errOut)
		logger.SetLevel(logrus.ErrorLevel)
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	target := filepath.Join(dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
	f, err := filesystem.API().OpenFile(target, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	path = target

	if viper.GetBool(key.LogsJson) {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	}

	level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return nil
}

// CheckLevel reports whether level names a known severity.
func CheckLevel(level string) error {
	_, err := logrus.ParseLevel(level)
	return err
}

// Record writes err to the log file. It does nothing while file logging is off,
// for callers that already print err to the terminal.
func Record(fields Fields, err error) {
	if path == "" {
		return
	}
	logger.WithFields(fields).Error(err)
}

// Path returns the file currently written to, or an empty string when logging is disabled.
func Path() string {
	return path
}

// WithFields returns an entry carrying structured context.
func WithFields(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...interface{}) {
	logger.Error(args...)
}
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
func Warn(args ...interface{}) {
	logger.Warn(args...)
}
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
func Info(args ...interface{}) {
	logger.Info(args...)
}
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}
func Debug(args ...interface{}) {
	logger.Debug(args...)
}
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}
