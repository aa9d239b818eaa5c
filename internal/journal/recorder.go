package journal

import (
	"context"
	"time"
)

// Recorder funnels event-log entries through the writer queue into the
// events table. It satisfies the app event log's sink interface.
type Recorder struct {
	repo   *EventRepo
	writer *WriterQueue
}

func NewRecorder(repo *EventRepo, writer *WriterQueue) *Recorder {
	return &Recorder{repo: repo, writer: writer}
}

func (r *Recorder) Record(at time.Time, severity, message string) {
	if r == nil || r.repo == nil || r.writer == nil {
		return
	}
	r.writer.Enqueue("append_event", func(ctx context.Context) error {
		return r.repo.Append(ctx, at, severity, message)
	})
}
