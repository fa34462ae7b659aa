// Package logging is a small leveled logger shared by the dashboard, the desktop app and the
// command line tools. Output goes to stderr through a standard log.Logger with a [LEVEL] prefix.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var currentLevel int32 = int32(LevelInfo)

var (
	mu         sync.RWMutex
	baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

// ParseLevel maps a level name (case-insensitive) to a Level.
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	_, ok := ParseLevel(s)
	return ok
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := ParseLevel(s)
	if !ok {
		return
	}
	atomic.StoreInt32(&currentLevel, int32(l))
}

// GetLogLevel returns the current global log level.
func GetLogLevel() Level { return Level(atomic.LoadInt32(&currentLevel)) }

// SetOutput redirects all log output and returns a func restoring the previous writer.
func SetOutput(w io.Writer, flags int) (restore func()) {
	mu.Lock()
	saved := baseLogger
	baseLogger = log.New(w, "", flags)
	mu.Unlock()
	return func() {
		mu.Lock()
		baseLogger = saved
		mu.Unlock()
	}
}

func logf(l Level, format string, args ...interface{}) {
	if GetLogLevel() > l {
		return
	}
	mu.RLock()
	lg := baseLogger
	mu.RUnlock()
	// Plain messages are printed as-is so literal % characters survive.
	if len(args) == 0 {
		lg.Printf("[%s] %s", l, format)
		return
	}
	lg.Printf("[%s] %s", l, fmt.Sprintf(format, args...))
}

func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the elapsed time since start at debug level. Use with defer.
func TimeTrack(start time.Time, label string) {
	Debugf("%s took %s", label, time.Since(start))
}
