// Package logger is the process-wide leveled logger used by the dlvr CLI.
// Library packages never log; they return data for the CLI to report.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var log = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	return l
}

// Init sets the log level by name ("debug", "info", "warn", ...). An empty
// or unknown level leaves the current level in place and reports false.
func Init(level string) bool {
	if level == "" {
		return false
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, keeping %s", level, log.GetLevel())
		return false
	}
	log.SetLevel(lvl)
	return true
}

// SetOutput redirects log output, typically for tests.
func SetOutput(w io.Writer) { log.SetOutput(w) }

// Level returns the current level name.
func Level() string { return log.GetLevel().String() }

// WithFields returns an entry carrying structured fields.
func WithFields(fields logrus.Fields) *logrus.Entry { return log.WithFields(fields) }

func Debugf(format string, args ...any) { log.Debugf(format, args...) }
func Infof(format string, args ...any)  { log.Infof(format, args...) }
func Warnf(format string, args ...any)  { log.Warnf(format, args...) }
func Errorf(format string, args ...any) { log.Errorf(format, args...) }
