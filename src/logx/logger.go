// Package logx is the leveled diagnostic logger shared by the plotter packages.
// Console messages meant for the user go to stdout elsewhere; everything here goes to stderr.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

var levelNames = map[string]logrus.Level{
	"debug":   logrus.DebugLevel,
	"info":    logrus.InfoLevel,
	"warn":    logrus.WarnLevel,
	"warning": logrus.WarnLevel,
	"error":   logrus.ErrorLevel,
}

var baseLogger = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000",
	})
	return l
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	baseLogger.SetLevel(l)
}

// ValidLevel reports whether s names a level SetLogLevel understands.
func ValidLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Logger exposes the underlying logrus logger for callers that want fields.
func Logger() *logrus.Logger { return baseLogger }

func logf(l logrus.Level, format string, args ...interface{}) {
	if !baseLogger.IsLevelEnabled(l) {
		return
	}
	// Only format when there are args so literal % in prebuilt messages survives.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	baseLogger.Log(l, msg)
}

func Debugf(format string, a ...interface{}) { logf(logrus.DebugLevel, format, a...) }
func Infof(format string, a ...interface{})  { logf(logrus.InfoLevel, format, a...) }
func Warnf(format string, a ...interface{})  { logf(logrus.WarnLevel, format, a...) }
func Errorf(format string, a ...interface{}) { logf(logrus.ErrorLevel, format, a...) }

// TimeTrack logs how long a phase took, at debug level.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
