// Package logger wraps go-logging with the backend and format used by the
// plaintext services.
package logger

import (
	"os"
	"strings"

	"github.com/op/go-logging"
)

const (
	module     = "plaintext"
	timeFormat = "2006/01/02 15:04:05"
)

var logger = logging.MustGetLogger(module)

// InitLogger installs a stderr backend at the given level.
// Unknown level names fall back to INFO.
func InitLogger(level string) {
	lvl, err := logging.LogLevel(strings.ToUpper(level))
	if err != nil {
		lvl = logging.INFO
	}

	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend, logging.MustStringFormatter(
		`%{time:`+timeFormat+`} %{level:.4s} - %{message}`,
	))
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(lvl, module)

	logger.SetBackend(leveled)
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Warning(args ...any) {
	logger.Warning(args...)
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

// Fatalf logs at CRITICAL and exits the process.
func Fatalf(format string, args ...any) {
	logger.Fatalf(format, args...)
}
