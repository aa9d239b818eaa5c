package app

import (
	"log/slog"
	"sync"
	"time"

	"mindlink/internal/bus"
)

// Severity classifies a session log entry.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// LogEntry is one user-visible session log line.
type LogEntry struct {
	At       time.Time
	Severity Severity
	Message  string
}

// Recorder persists log entries outside the bounded in-memory buffer.
type Recorder interface {
	Record(at time.Time, severity, message string)
}

// maxLogEntries bounds the in-memory log so long sessions do not grow
// without limit; older history lives in the journal when enabled.
const maxLogEntries = 500

// EventLog collects user-visible session events. Every entry is mirrored
// to the structured logger, published on the bus for live views, and
// handed to the recorder when one is attached.
type EventLog struct {
	logger   *slog.Logger
	bus      bus.MessageBus
	recorder Recorder
	now      func() time.Time

	mu      sync.Mutex
	entries []LogEntry
}

func NewEventLog(logger *slog.Logger, b bus.MessageBus, recorder Recorder) *EventLog {
	if logger == nil {
		logger = slog.Default()
	}

	return &EventLog{
		logger:   logger,
		bus:      b,
		recorder: recorder,
		now:      time.Now,
	}
}

func (l *EventLog) Info(message string) {
	l.append(SeverityInfo, message)
}

func (l *EventLog) Warn(message string) {
	l.append(SeverityWarning, message)
}

func (l *EventLog) Error(message string) {
	l.append(SeverityError, message)
}

// Recent returns the buffered entries newest first.
func (l *EventLog) Recent() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]LogEntry, len(l.entries))
	for i, entry := range l.entries {
		out[len(l.entries)-1-i] = entry
	}

	return out
}

func (l *EventLog) append(severity Severity, message string) {
	entry := LogEntry{At: l.now(), Severity: severity, Message: message}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	if overflow := len(l.entries) - maxLogEntries; overflow > 0 {
		l.entries = append(l.entries[:0], l.entries[overflow:]...)
	}
	l.mu.Unlock()

	switch severity {
	case SeverityWarning:
		l.logger.Warn(message)
	case SeverityError:
		l.logger.Error(message)
	default:
		l.logger.Info(message)
	}

	if l.bus != nil {
		l.bus.Publish(TopicLogEntry, entry)
	}
	if l.recorder != nil {
		l.recorder.Record(entry.At, string(severity), message)
	}
}
