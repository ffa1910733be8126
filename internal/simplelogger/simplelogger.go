package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"time"
)

// EnvLogFile names the environment variable FromEnv reads the log path from.
const EnvLogFile = "FAILDIFF_LOG_FILE"

var mu sync.Mutex

// Logger appends printf-style lines to a file. Each line is prefixed with a UTC timestamp. A nil Logger, or one with an empty path, discards everything.
type Logger struct {
	path string
	now  func() time.Time
}

// New returns a Logger appending to path.
func New(path string) *Logger {
	return &Logger{path: path, now: time.Now}
}

// FromEnv returns a Logger appending to the file named by EnvLogFile. If the variable is unset, the Logger discards everything.
func FromEnv() *Logger {
	return New(os.Getenv(EnvLogFile))
}

// Enabled reports whether l writes anywhere.
func (l *Logger) Enabled() bool {
	return l != nil && l.path != ""
}

// Log formats a line and appends it to l's file. A trailing newline is added if missing. Failures to open or write the file are ignored.
func (l *Logger) Log(format string, args ...any) {
	if !l.Enabled() {
		return
	}

	var b bytes.Buffer
	b.WriteString(l.now().UTC().Format(time.RFC3339))
	b.WriteByte(' ')
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}

	// Serialize open/write/close so lines from concurrent callers don't interleave.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.Write(b.Bytes())
}
