package terminal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// LogEntry represents a single log message with metadata
type LogEntry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

// LogBuffer is a thread-safe circular buffer for log entries. It holds log
// output while the terminal is owned by the screen.
type LogBuffer struct {
	entries []LogEntry
	size    int
	index   int
	count   int
	mutex   sync.RWMutex
}

// NewLogBuffer creates a new log buffer with the specified capacity
func NewLogBuffer(size int) *LogBuffer {
	if size < 1 {
		size = 1
	}
	return &LogBuffer{
		entries: make([]LogEntry, size),
		size:    size,
	}
}

// Add inserts a new log entry into the buffer, overwriting the oldest one when full
func (lb *LogBuffer) Add(entry LogEntry) {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.entries[lb.index] = entry
	lb.index = (lb.index + 1) % lb.size
	if lb.count < lb.size {
		lb.count++
	}
}

// Entries returns the buffered entries, oldest first
func (lb *LogBuffer) Entries() []LogEntry {
	lb.mutex.RLock()
	defer lb.mutex.RUnlock()

	result := make([]LogEntry, lb.count)
	start := (lb.index - lb.count + lb.size) % lb.size
	for i := 0; i < lb.count; i++ {
		result[i] = lb.entries[(start+i)%lb.size]
	}
	return result
}

// Clear removes all entries from the buffer
func (lb *LogBuffer) Clear() {
	lb.mutex.Lock()
	defer lb.mutex.Unlock()

	lb.count = 0
	lb.index = 0
}

// Replay writes every entry at or above minLevel to w, oldest first
func (lb *LogBuffer) Replay(w io.Writer, minLevel slog.Level) error {
	for _, entry := range lb.Entries() {
		if entry.Level < minLevel {
			continue
		}
		if _, err := fmt.Fprintln(w, FormatLogEntry(entry)); err != nil {
			return err
		}
	}
	return nil
}

// LogBufferHandler is a slog.Handler that captures logs to a LogBuffer
type LogBufferHandler struct {
	buffer *LogBuffer
	level  slog.Level
	attrs  []slog.Attr
}

// NewLogBufferHandler creates a new handler that writes to the given buffer
func NewLogBufferHandler(buffer *LogBuffer, level slog.Level) *LogBufferHandler {
	return &LogBufferHandler{
		buffer: buffer,
		level:  level,
	}
}

// Enabled reports whether the handler handles records at the given level
func (h *LogBufferHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle processes a log record
func (h *LogBufferHandler) Handle(_ context.Context, record slog.Record) error {
	message := record.Message

	for _, a := range h.attrs {
		message += fmt.Sprintf(" %s=%v", a.Key, a.Value)
	}
	record.Attrs(func(a slog.Attr) bool {
		message += fmt.Sprintf(" %s=%v", a.Key, a.Value)
		return true
	})

	h.buffer.Add(LogEntry{
		Time:    record.Time,
		Level:   record.Level,
		Message: message,
	})
	return nil
}

// WithAttrs returns a new handler that prefixes every record with attrs
func (h *LogBufferHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogBufferHandler{buffer: h.buffer, level: h.level, attrs: merged}
}

// WithGroup returns the same handler; groups are flattened
func (h *LogBufferHandler) WithGroup(name string) slog.Handler {
	return h
}

// FormatLogEntry formats a log entry for display
func FormatLogEntry(entry LogEntry) string {
	levelStr := ""
	switch entry.Level {
	case slog.LevelDebug:
		levelStr = "DBG"
	case slog.LevelInfo:
		levelStr = "INF"
	case slog.LevelWarn:
		levelStr = "WRN"
	case slog.LevelError:
		levelStr = "ERR"
	default:
		levelStr = "???"
	}

	timeStr := entry.Time.Format("15:04:05")
	return fmt.Sprintf("%s [%s] %s", timeStr, levelStr, entry.Message)
}
