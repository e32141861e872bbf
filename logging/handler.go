// Package logging provides the slog handler used by the questmgr binary:
// one line per record with a colored level and key=value attributes.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Handler is a slog.Handler writing human-oriented lines.
type Handler struct {
	mu     *sync.Mutex
	out    io.Writer
	level  slog.Leveler
	colors bool
	attrs  []slog.Attr
	group  string
}

// NewHandler creates a handler writing to out. Colors should be disabled
// when out is not a terminal.
func NewHandler(out io.Writer, level slog.Leveler, colors bool) *Handler {
	return &Handler{
		mu:     &sync.Mutex{},
		out:    out,
		level:  level,
		colors: colors,
	}
}

// ParseLevel converts "debug", "info", "warn" or "error" to a level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	b.WriteString(r.Time.Format("15:04:05.000"))
	b.WriteByte(' ')
	b.WriteString(h.paint(levelColor(r.Level), r.Level.String()+":"))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), h.qualify(attrs)...)
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

// qualify prefixes attribute keys with the current group.
func (h *Handler) qualify(attrs []slog.Attr) []slog.Attr {
	if h.group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: h.group + "." + a.Key, Value: a.Value}
	}
	return out
}

func (h *Handler) writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	b.WriteByte(' ')
	b.WriteString(h.paint(color.FgGreen, key))
	b.WriteByte('=')
	fmt.Fprint(b, a.Value.Any())
}

func (h *Handler) paint(attr color.Attribute, s string) string {
	if !h.colors {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func levelColor(level slog.Level) color.Attribute {
	switch {
	case level >= slog.LevelError:
		return color.FgRed
	case level >= slog.LevelWarn:
		return color.FgYellow
	case level >= slog.LevelInfo:
		return color.FgHiBlue
	default:
		return color.FgMagenta
	}
}
