package logging_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	"github.com/fintrackr/finance_tracker_app/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter captures persisted entries; block and err simulate a slow
// or failing store.
type recordingWriter struct {
	mu      sync.Mutex
	entries []domain.LogEntry
	err     error
	block   chan struct{}
}

func (w *recordingWriter) SaveLogEntry(_ context.Context, entry domain.LogEntry) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.entries = append(w.entries, entry)
	return nil
}

func (w *recordingWriter) all() []domain.LogEntry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.LogEntry(nil), w.entries...)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace": logging.LevelTrace,
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"fatal": logging.LevelFatal,
	}
	for name, want := range cases {
		got, err := logging.ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := logging.ParseLevel("verbose")
	assert.Error(t, err)
}

func TestLevelName(t *testing.T) {
	assert.Equal(t, "trace", logging.LevelName(logging.LevelTrace))
	assert.Equal(t, "info", logging.LevelName(slog.LevelInfo))
	assert.Equal(t, "fatal", logging.LevelName(logging.LevelFatal))
}

func TestConsoleHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := logging.NewConsoleHandler(&buf, slog.LevelInfo, false)

	ts := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "Server started", 0)
	r.AddAttrs(slog.Int("port", 3000))

	require.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "2024/03/15-10:30:45 - info   Server started {\"port\":3000}\n", buf.String())
}

func TestConsoleHandler_NoDetails(t *testing.T) {
	var buf bytes.Buffer
	h := logging.NewConsoleHandler(&buf, slog.LevelInfo, false)

	ts := time.Date(2024, 3, 15, 10, 30, 45, 0, time.UTC)
	r := slog.NewRecord(ts, slog.LevelWarn, "Low disk space", 0)

	require.NoError(t, h.Handle(context.Background(), r))

	assert.Equal(t, "2024/03/15-10:30:45 - warn   Low disk space\n", buf.String())
}

func TestConsoleHandler_Color(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewConsoleHandler(&buf, slog.LevelInfo, true))

	logger.Error("boom")

	assert.Contains(t, buf.String(), "\x1b[31m")
	assert.Contains(t, buf.String(), "\x1b[0m")
}

func TestConsoleHandler_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(logging.NewConsoleHandler(&buf, slog.LevelWarn, false))

	logger.Info("ignored")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "ignored")
	assert.Contains(t, buf.String(), "kept")
}

func TestStoreHandler_PersistsEntries(t *testing.T) {
	writer := &recordingWriter{}
	h := logging.NewStoreHandler(writer, slog.LevelInfo, nil)
	logger := slog.New(h)

	logger.Info("Account created", slog.Int64("account_id", 7))
	h.Close()

	entries := writer.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "Account created", entries[0].Message)
	assert.Equal(t, int64(7), entries[0].Details["account_id"])
}

func TestStoreHandler_LevelFilter(t *testing.T) {
	writer := &recordingWriter{}
	h := logging.NewStoreHandler(writer, slog.LevelWarn, nil)
	logger := slog.New(h)

	logger.Info("below threshold")
	logger.Warn("at threshold")
	h.Close()

	entries := writer.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "warn", entries[0].Message)
}

func TestStoreHandler_WriteFailureNeverPropagates(t *testing.T) {
	writer := &recordingWriter{err: errors.New("connection lost")}
	var mu sync.Mutex
	var got []error
	h := logging.NewStoreHandler(writer, slog.LevelInfo, func(err error) {
		mu.Lock()
		got = append(got, err)
		mu.Unlock()
	})

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "audit", 0)
	err := h.Handle(context.Background(), r)
	h.Close()

	assert.NoError(t, err)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Error(), "connection lost")
}

func TestStoreHandler_DropsWhenQueueFull(t *testing.T) {
	writer := &recordingWriter{block: make(chan struct{})}
	h := logging.NewStoreHandler(writer, slog.LevelInfo, nil)

	// One entry occupies the writer goroutine, the rest fill the queue.
	for i := 0; i < 300; i++ {
		r := slog.NewRecord(time.Now(), slog.LevelInfo, "flood", 0)
		require.NoError(t, h.Handle(context.Background(), r))
	}

	assert.Greater(t, h.Dropped(), int64(0))

	close(writer.block)
	h.Close()
}

func TestFanout_RoutesPerSinkLevel(t *testing.T) {
	var consoleBuf bytes.Buffer
	console := logging.NewConsoleHandler(&consoleBuf, slog.LevelDebug, false)
	writer := &recordingWriter{}
	store := logging.NewStoreHandler(writer, slog.LevelWarn, nil)

	logger := logging.New(console, store)
	logger.Debug("console only")
	logger.Warn("both sinks")
	store.Close()

	assert.Contains(t, consoleBuf.String(), "console only")
	assert.Contains(t, consoleBuf.String(), "both sinks")

	entries := writer.all()
	require.Len(t, entries, 1)
	assert.Equal(t, "both sinks", entries[0].Message)
}
