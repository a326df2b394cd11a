// Package logger writes the run's structured, leveled log: one JSON line
// per file processed, plus one line for run totals. It follows the
// teacher's AuditLogger exactly — O_APPEND|O_CREATE discipline, a
// size-triggered rotation to a single ".1" backup, 0600 permissions — but
// the record shape is a run summary rather than a security audit trail.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// defaultMaxLogBytes is the file size at which the log is rotated (10 MB).
const defaultMaxLogBytes = 10 * 1024 * 1024

// FileEvent is one JSON line logged per file the driver processes.
type FileEvent struct {
	Timestamp   string `json:"timestamp"`
	Path        string `json:"path"`
	Overlay     string `json:"overlay"`
	Diagnostics int    `json:"diagnostics"`
	ElapsedMS   int64  `json:"elapsed_ms"`
	Error       string `json:"error,omitempty"`
}

// RunEvent is the single line logged once a run finishes, summarizing the
// whole pass: files read, diagnostics emitted by severity, total elapsed
// time, and the active game variant.
type RunEvent struct {
	Timestamp      string         `json:"timestamp"`
	GameVariant    string         `json:"game_variant"`
	FilesProcessed int            `json:"files_processed"`
	DiagnosticsBySeverity map[string]int `json:"diagnostics_by_severity"`
	ElapsedMS      int64          `json:"elapsed_ms"`
	ExitNonZero    bool           `json:"exit_non_zero"`
}

// RunLogger is an append-only, rotating JSON-lines writer shared by every
// FileEvent and the closing RunEvent of one analyzer run.
type RunLogger struct {
	path string
	file *os.File
	mu   sync.Mutex
}

// New opens (creating if absent) the log file at path for appending.
func New(path string) (*RunLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &RunLogger{path: path, file: file}, nil
}

// rotateIfNeeded rotates the log file if it has reached defaultMaxLogBytes.
// It renames the current file to <path>.1 (dropping any existing .1) and
// opens a fresh log file. Must be called with l.mu held.
func (l *RunLogger) rotateIfNeeded() error {
	info, err := l.file.Stat()
	if err != nil {
		return fmt.Errorf("stat log file: %w", err)
	}
	if info.Size() < defaultMaxLogBytes {
		return nil
	}

	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close log before rotation: %w", err)
	}

	rotated := l.path + ".1"
	_ = os.Remove(rotated)
	if err := os.Rename(l.path, rotated); err != nil {
		return fmt.Errorf("rotate log: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open fresh log after rotation: %w", err)
	}
	l.file = f
	return nil
}

func (l *RunLogger) write(v any) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rotateIfNeeded(); err != nil {
		fmt.Fprintf(os.Stderr, "[scriptguard] warning: log rotation failed: %v\n", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

// LogFile appends one FileEvent line.
func (l *RunLogger) LogFile(e FileEvent) error { return l.write(e) }

// LogRun appends the closing RunEvent line.
func (l *RunLogger) LogRun(e RunEvent) error { return l.write(e) }

func (l *RunLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
