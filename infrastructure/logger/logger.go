package logger

import (
	"bytes"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"
)

// Logger writes leveled messages tagged with its subsystem to a Backend.
type Logger struct {
	level   Level
	tag     string
	backend *Backend
}

// Level returns the current logging level.
func (l *Logger) Level() Level {
	return Level(atomic.LoadUint32((*uint32)(&l.level)))
}

// SetLevel changes the logging level to the passed level.
func (l *Logger) SetLevel(level Level) {
	atomic.StoreUint32((*uint32)(&l.level), uint32(level))
}

// Backend returns the backend this logger writes to.
func (l *Logger) Backend() *Backend {
	return l.backend
}

// Tracef formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelTrace.
func (l *Logger) Tracef(format string, params ...interface{}) {
	l.Writef(LevelTrace, format, params...)
}

// Debugf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelDebug.
func (l *Logger) Debugf(format string, params ...interface{}) {
	l.Writef(LevelDebug, format, params...)
}

// Infof formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelInfo.
func (l *Logger) Infof(format string, params ...interface{}) {
	l.Writef(LevelInfo, format, params...)
}

// Warnf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelWarn.
func (l *Logger) Warnf(format string, params ...interface{}) {
	l.Writef(LevelWarn, format, params...)
}

// Errorf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelError.
func (l *Logger) Errorf(format string, params ...interface{}) {
	l.Writef(LevelError, format, params...)
}

// Criticalf formats message according to format specifier, prepends the prefix as
// necessary, and writes to log with LevelCritical.
func (l *Logger) Criticalf(format string, params ...interface{}) {
	l.Writef(LevelCritical, format, params...)
}

// Writef formats message according to format specifier and writes it to the
// backend at the given level. Messages below the logger's level, and all
// messages while the backend isn't running, are dropped.
func (l *Logger) Writef(level Level, format string, params ...interface{}) {
	if level < l.Level() || !l.backend.IsRunning() {
		return
	}
	entry := logEntry{
		log:   l.formatHeader(level, fmt.Sprintf(format, params...)),
		level: level,
	}
	l.backend.write(entry)
}

// callsiteDepth skips formatHeader, Writef and the level helper.
const callsiteDepth = 3

func (l *Logger) formatHeader(level Level, message string) []byte {
	buf := &bytes.Buffer{}
	buf.WriteString(time.Now().Format("2006-01-02 15:04:05.000"))
	buf.WriteString(" [")
	buf.WriteString(level.String())
	buf.WriteString("] ")
	buf.WriteString(l.tag)

	if l.backend.flag&(LogFlagShortFile|LogFlagLongFile) != 0 {
		_, file, line, ok := runtime.Caller(callsiteDepth)
		if !ok {
			file, line = "???", 0
		} else if l.backend.flag&LogFlagShortFile != 0 {
			file = file[strings.LastIndex(file, "/")+1:]
		}
		fmt.Fprintf(buf, " %s:%d", file, line)
	}

	buf.WriteString(": ")
	buf.WriteString(message)
	if !strings.HasSuffix(message, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// consoleWriter adapts os.Stderr to io.WriteCloser without closing it, which
// leaves stdout to command output.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	return os.Stderr.Write(p)
}

func (consoleWriter) Close() error {
	return nil
}
