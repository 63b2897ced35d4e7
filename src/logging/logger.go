// Package logging is the levelled logger shared by the viewer, the shell and
// the render driver. Lines look like "[WARN] [render] message"; the component
// tag is omitted for the package-level helpers.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return fmt.Sprintf("LogLevel(%d)", int32(l))
	}
	return levelTags[l]
}

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var threshold atomic.Int32

func init() { threshold.Store(int32(LevelInfo)) }

var baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)

// ParseLevel maps a level name ("debug", "info", "warn", "error") to its level.
func ParseLevel(s string) (LogLevel, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored
// and reported as false.
func SetLogLevel(s string) bool {
	l, ok := ParseLevel(s)
	if ok {
		threshold.Store(int32(l))
	}
	return ok
}

// GetLogLevel returns the current global log level.
func GetLogLevel() LogLevel { return LogLevel(threshold.Load()) }

// Enabled reports whether lines at l are currently written.
func Enabled(l LogLevel) bool { return GetLogLevel() <= l }

// SetOutput redirects log lines (tests capture diagnostics this way).
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

// Logger writes lines tagged with a component name.
type Logger struct {
	component string
}

// New returns a logger tagging its lines with component.
func New(component string) Logger { return Logger{component: component} }

func (lg Logger) write(l LogLevel, format string, args []interface{}) {
	if !Enabled(l) {
		return
	}
	msg := format
	// Plain messages skip Sprintf so literal % (hover templates) survive.
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if lg.component == "" {
		baseLogger.Printf("[%s] %s", l, msg)
		return
	}
	baseLogger.Printf("[%s] [%s] %s", l, lg.component, msg)
}

func (lg Logger) Debugf(format string, a ...interface{}) { lg.write(LevelDebug, format, a) }
func (lg Logger) Infof(format string, a ...interface{})  { lg.write(LevelInfo, format, a) }
func (lg Logger) Warnf(format string, a ...interface{})  { lg.write(LevelWarn, format, a) }
func (lg Logger) Errorf(format string, a ...interface{}) { lg.write(LevelError, format, a) }

// TimeTrack logs the duration of a phase at debug level.
func (lg Logger) TimeTrack(start time.Time, label string) {
	lg.Debugf("%s took %s", label, time.Since(start))
}

var std Logger

func Debugf(format string, a ...interface{}) { std.write(LevelDebug, format, a) }
func Infof(format string, a ...interface{})  { std.write(LevelInfo, format, a) }
func Warnf(format string, a ...interface{})  { std.write(LevelWarn, format, a) }
func Errorf(format string, a ...interface{}) { std.write(LevelError, format, a) }

// TimeTrack logs the duration of a phase at debug level.
func TimeTrack(start time.Time, label string) { std.TimeTrack(start, label) }
