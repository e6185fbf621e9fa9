// Package oplog writes the append-only record of every change applied to
// the replica.
package oplog

import (
	"fmt"
	"io"
	"os"
)

// Operation identifies the kind of change applied to the replica.
type Operation int

const (
	Create Operation = iota + 1
	Copy
	Delete
)

var operationNames = [...]string{
	Create: "CREATE",
	Copy:   "COPY",
	Delete: "DELETE",
}

func (o Operation) String() string {
	if o > 0 && int(o) < len(operationNames) {
		return operationNames[o]
	}
	return "UNKNOWN"
}

// Entry is a single operation log record. Src is empty for deletes.
type Entry struct {
	Op  Operation
	Src string
	Dst string
}

// String renders the entry as one log line, trailing newline included.
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s -> %s\n", e.Op, e.Src, e.Dst)
}

// Logger appends entries to the log file and mirrors them to a console
// writer. It is not safe for concurrent use; the sync loop is its only
// caller.
type Logger struct {
	console io.Writer
	path    string
}

// New returns a Logger appending to path. console may be nil.
func New(path string, console io.Writer) *Logger {
	return &Logger{path: path, console: console}
}

// Path returns the log file path.
func (l *Logger) Path() string { return l.path }

// Log appends one entry. The file is opened in append mode for every call
// and created if absent, so a log removed while running is recreated.
func (l *Logger) Log(op Operation, src, dst string) error {
	line := Entry{Op: op, Src: src, Dst: dst}.String()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log %s: %w", l.path, err)
	}
	if _, err := io.WriteString(f, line); err != nil {
		f.Close()
		return fmt.Errorf("write log %s: %w", l.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log %s: %w", l.path, err)
	}

	if l.console != nil {
		fmt.Fprint(l.console, line)
	}
	return nil
}
