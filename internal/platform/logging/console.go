package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// ANSI escape sequences per level name.
var levelColors = map[string]string{
	"trace": "\x1b[90m",
	"debug": "\x1b[34m",
	"info":  "\x1b[32m",
	"warn":  "\x1b[33m",
	"error": "\x1b[31m",
	"fatal": "\x1b[41;37m",
}

const colorReset = "\x1b[0m"

// ConsoleHandler is the synchronous human-readable sink: timestamp prefix,
// level-colored fixed-width level column, message, then any structured
// details as compact JSON.
type ConsoleHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	color bool
	attrs []slog.Attr
	group string
}

// NewConsoleHandler writes formatted lines to out, filtering below level.
func NewConsoleHandler(out io.Writer, level slog.Leveler, color bool) *ConsoleHandler {
	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		color: color,
	}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	name := LevelName(r.Level)
	level := fmt.Sprintf("%-7s", name)
	if h.color {
		if c, ok := levelColors[name]; ok {
			level = c + level + colorReset
		}
	}

	details := collectAttrs(h.attrs, h.group, r)
	line := fmt.Sprintf("%s - %s%s", r.Time.Format("2006/01/02-15:04:05"), level, r.Message)
	if len(details) > 0 {
		encoded, err := json.Marshal(details)
		if err == nil {
			line += " " + string(encoded)
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.out, line)
	return err
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &clone
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.group = joinGroup(h.group, name)
	return &clone
}

// collectAttrs flattens pre-bound and per-record attributes into a map
// suitable for compact JSON encoding.
func collectAttrs(bound []slog.Attr, group string, r slog.Record) map[string]any {
	details := make(map[string]any, len(bound)+r.NumAttrs())
	for _, a := range bound {
		addAttr(details, group, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(details, group, a)
		return true
	})
	return details
}

func addAttr(dst map[string]any, group string, a slog.Attr) {
	key := a.Key
	if key == "" {
		return
	}
	if group != "" {
		key = group + "." + key
	}
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, member := range v.Group() {
			addAttr(dst, key, member)
		}
		return
	}
	dst[key] = v.Any()
}

func joinGroup(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "." + name
}

var _ slog.Handler = (*ConsoleHandler)(nil)
