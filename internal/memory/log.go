// Package memory implements the durable conversation log for the chat
// assistant. Turns are stored as newline-delimited JSON in a single file:
// append-only, replayed in full at startup, tolerant of partial corruption.
package memory

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
)

// Turn roles. These match the values written to disk, so changing them
// invalidates existing history files.
const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Turn is one message in a conversation. Turns are immutable once created:
// the log only ever appends, and loaded turns are never rewritten.
//
// Meta carries provider-specific fields (token counts, model name, ...) as
// raw JSON so they round-trip through the file byte-for-byte without this
// package knowing their shape.
type Turn struct {
	Role    string                     `json:"role"`
	Content string                     `json:"content"`
	Meta    map[string]json.RawMessage `json:"meta,omitempty"`
}

// HumanTurn builds a human-role turn for the given prompt.
func HumanTurn(content string) Turn {
	return Turn{Role: RoleHuman, Content: content}
}

// AssistantTurn builds an assistant-role turn for the given reply.
func AssistantTurn(content string) Turn {
	return Turn{Role: RoleAssistant, Content: content}
}

// maxLineSize bounds a single serialized turn on reload. Turns are chat
// messages; 1 MiB is far beyond anything a completion provider returns.
const maxLineSize = 1 << 20

// Log is a file-backed, append-only store of conversation turns.
//
// It is not safe for concurrent use on its own — the chat service serializes
// all access behind its own lock, and the file is assumed single-writer.
type Log struct {
	path string
}

// NewLog returns a Log backed by the file at path.
// Call Initialize before LoadAll so a missing file is created rather than
// reported as a read failure.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Path returns the backing file path.
func (l *Log) Path() string { return l.path }

// Initialize ensures the backing file exists, creating it empty if absent.
// Calling it again is a no-op: an existing file — empty or not — is never
// touched.
func (l *Log) Initialize() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("memory.Log.Initialize: %w", err)
	}
	return f.Close()
}

// LoadAll reads every turn from the file in original write order.
//
// Each line is parsed independently; a line that fails to parse is skipped
// with a warning, never treated as fatal. If the file cannot be read at all,
// LoadAll logs a warning and returns an empty slice — startup must never
// fail because of a damaged history file. Callers cannot distinguish "empty
// history" from "unreadable history" by the return value; the warning log is
// the only signal.
func (l *Log) LoadAll() []Turn {
	f, err := os.Open(l.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("conversation log unreadable, starting with fresh memory",
				"path", l.path, "error", err)
		}
		return []Turn{}
	}
	defer f.Close()

	turns := []Turn{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var t Turn
		if err := json.Unmarshal(line, &t); err != nil || t.Role == "" {
			slog.Warn("skipping unparseable conversation log line",
				"path", l.path, "line", lineNo)
			continue
		}
		turns = append(turns, t)
	}
	if err := sc.Err(); err != nil {
		// Keep whatever parsed before the read error — partial history is
		// better than none.
		slog.Warn("conversation log read interrupted",
			"path", l.path, "error", err)
	}
	return turns
}

// Append writes the given turns to the end of the file, one JSON record per
// line, without reading or rewriting existing content. Callers must pass
// only the turns produced since the last append — never the full history.
// An empty slice is a no-op.
func (l *Log) Append(turns []Turn) error {
	if len(turns) == 0 {
		return nil
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("memory.Log.Append: open: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			f.Close()
			return fmt.Errorf("memory.Log.Append: marshal: %w", err)
		}
		w.Write(b)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("memory.Log.Append: write: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("memory.Log.Append: close: %w", err)
	}
	return nil
}
