// Package logging provides the console slog handler used by the CLI.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// TimeFormat is the timestamp layout of console lines.
const TimeFormat = "15:04"

// Palette colors used for console output.
var (
	ColorDebug = lipgloss.Color("8")
	ColorInfo  = lipgloss.Color("12")
	ColorWarn  = lipgloss.Color("11")
	ColorError = lipgloss.Color("9")
	ColorBad   = lipgloss.Color("9")
	ColorGood  = lipgloss.Color("10")
)

// Options configures a ConsoleHandler.
type Options struct {
	Level slog.Leveler
	// Color enables ANSI colors regardless of the terminal detection.
	Color bool
	// Now is the clock used for timestamps; defaults to time.Now.
	Now func() time.Time
}

// ConsoleHandler writes records as "[15:04, INFO] message key=value".
type ConsoleHandler struct {
	out      io.Writer
	mu       *sync.Mutex
	level    slog.Leveler
	now      func() time.Time
	renderer *lipgloss.Renderer
	groups   []string

	// preformatted holds attrs added through WithAttrs, already qualified
	// with the groups open at the time.
	preformatted string
}

// NewConsoleHandler returns a handler writing to w.
func NewConsoleHandler(w io.Writer, opts Options) *ConsoleHandler {
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ConsoleHandler{
		out:      w,
		mu:       &sync.Mutex{},
		level:    level,
		now:      now,
		renderer: NewRenderer(w, opts.Color),
	}
}

// NewRenderer returns a lipgloss renderer for w. Colors are forced to ANSI256
// when color is true and disabled otherwise.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	if !color {
		r := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.Ascii))
		r.SetColorProfile(termenv.Ascii)
		return r
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(termenv.ANSI256))
	r.SetColorProfile(termenv.ANSI256)
	return r
}

// Enabled reports whether level is at or above the handler's minimum.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes one record.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time
	if ts.IsZero() {
		ts = h.now()
	}

	var b strings.Builder
	b.WriteString("[")
	b.WriteString(ts.Format(TimeFormat))
	b.WriteString(", ")
	b.WriteString(h.renderer.NewStyle().Foreground(levelColor(r.Level)).Render(r.Level.String()))
	b.WriteString("] ")
	b.WriteString(r.Message)

	b.WriteString(h.preformatted)
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, prefix, a)
		return true
	})
	b.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// WithAttrs returns a handler that always writes attrs.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	prefix := strings.Join(h.groups, ".")
	for _, a := range attrs {
		writeAttr(&b, prefix, a)
	}
	clone := *h
	clone.preformatted = h.preformatted + b.String()
	return &clone
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(append([]string{}, h.groups...), name)
	return &clone
}

// Paint renders text in color using the handler's renderer.
func (h *ConsoleHandler) Paint(text string, color lipgloss.Color) string {
	return h.renderer.NewStyle().Foreground(color).Render(text)
}

func writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			writeAttr(b, key, ga)
		}
		return
	}
	fmt.Fprintf(b, " %s=%s", key, quoteIfNeeded(a.Value.String()))
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

func levelColor(level slog.Level) lipgloss.Color {
	switch {
	case level >= slog.LevelError:
		return ColorError
	case level >= slog.LevelWarn:
		return ColorWarn
	case level >= slog.LevelInfo:
		return ColorInfo
	default:
		return ColorDebug
	}
}
