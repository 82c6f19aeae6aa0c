package logging

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
)

// EntryWriter appends one log row to durable storage.
type EntryWriter interface {
	SaveLogEntry(ctx context.Context, entry domain.LogEntry) error
}

// StoreHandler is the asynchronous persistence sink. Entries are queued on a
// buffered channel and written by a single background goroutine, so a slow or
// failing write never delays the caller. When the queue is full the entry is
// dropped and counted. Write failures are reported once through the fallback
// function and never propagate into the caller's control flow.
type StoreHandler struct {
	writer   EntryWriter
	level    slog.Leveler
	fallback func(error)
	attrs    []slog.Attr
	group    string

	queue   chan domain.LogEntry
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	dropped int64
}

const defaultQueueSize = 256

// NewStoreHandler starts the background writer. fallback receives persistence
// failures; pass nil to discard them.
func NewStoreHandler(writer EntryWriter, level slog.Leveler, fallback func(error)) *StoreHandler {
	if fallback == nil {
		fallback = func(error) {}
	}
	h := &StoreHandler{
		writer:   writer,
		level:    level,
		fallback: fallback,
		queue:    make(chan domain.LogEntry, defaultQueueSize),
		done:     make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *StoreHandler) run() {
	defer close(h.done)
	for entry := range h.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := h.writer.SaveLogEntry(ctx, entry); err != nil {
			h.fallback(err)
		}
		cancel()
	}
}

// Enabled implements slog.Handler.
func (h *StoreHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler. It never blocks: a full queue drops the
// entry rather than stalling request handling.
func (h *StoreHandler) Handle(_ context.Context, r slog.Record) error {
	entry := domain.LogEntry{
		Level:     LevelName(r.Level),
		Message:   r.Message,
		Timestamp: r.Time,
	}
	if details := collectAttrs(h.attrs, h.group, r); len(details) > 0 {
		entry.Details = details
	}

	select {
	case h.queue <- entry:
	default:
		h.mu.Lock()
		h.dropped++
		h.mu.Unlock()
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *StoreHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.shallowClone()
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return clone
}

// WithGroup implements slog.Handler.
func (h *StoreHandler) WithGroup(name string) slog.Handler {
	clone := h.shallowClone()
	clone.group = joinGroup(h.group, name)
	return clone
}

// shallowClone shares the queue and writer goroutine between derived handlers.
func (h *StoreHandler) shallowClone() *StoreHandler {
	return &StoreHandler{
		writer:   h.writer,
		level:    h.level,
		fallback: h.fallback,
		attrs:    h.attrs,
		group:    h.group,
		queue:    h.queue,
		done:     h.done,
	}
}

// Dropped reports how many entries were discarded because the queue was full.
func (h *StoreHandler) Dropped() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dropped
}

// Close drains queued entries and stops the writer goroutine. Only the
// handler returned by NewStoreHandler may be closed.
func (h *StoreHandler) Close() {
	h.once.Do(func() {
		close(h.queue)
		<-h.done
	})
}

var _ slog.Handler = (*StoreHandler)(nil)
