package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/thoreinstein/aibridge/internal/doctor"
)

// TextHandler writes one line per record:
//
//	15:04:05 WARN  skipping adapter platform=zed err="..."
//
// Colors are used only when ColorEnabled reports true for the writer.
type TextHandler struct {
	level  slog.Leveler
	out    io.Writer
	mu     *sync.Mutex
	prefix string // dotted group path, with trailing dot
	attrs  []byte // preformatted WithAttrs output
	colors *palette
}

type palette struct {
	time, key *color.Color
	levels    map[slog.Level]*color.Color
}

func newPalette() *palette {
	p := &palette{
		time: color.New(color.FgHiBlack),
		key:  color.New(color.FgCyan),
		levels: map[slog.Level]*color.Color{
			LevelTrace:      color.New(color.FgHiBlack),
			slog.LevelDebug: color.New(color.FgMagenta),
			slog.LevelInfo:  color.New(color.FgGreen),
			slog.LevelWarn:  color.New(color.FgYellow),
			slog.LevelError: color.New(color.FgRed, color.Bold),
		},
	}
	// fatih/color decides on its own whether stdout is a terminal
	for _, c := range append([]*color.Color{p.time, p.key}, valuesOf(p.levels)...) {
		c.EnableColor()
	}
	return p
}

func valuesOf(m map[slog.Level]*color.Color) []*color.Color {
	out := make([]*color.Color, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

// NewTextHandler returns a TextHandler writing records at or above level.
// A nil level means Info.
func NewTextHandler(out io.Writer, level slog.Leveler) *TextHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	h := &TextHandler{level: level, out: out, mu: &sync.Mutex{}}
	if ColorEnabled(out) {
		h.colors = newPalette()
	}
	return h
}

// Enabled implements slog.Handler.
func (h *TextHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *TextHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		buf.WriteString(h.paint(h.timeColor(), r.Time.Format(time.TimeOnly)))
		buf.WriteByte(' ')
	}

	name := LevelName(r.Level)
	pad := strings.Repeat(" ", max(0, 5-len(name)))
	buf.WriteString(h.paint(h.levelColor(r.Level), name))
	buf.WriteString(pad)
	buf.WriteByte(' ')
	buf.WriteString(r.Message)

	buf.Write(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

// WithAttrs implements slog.Handler.
func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	buf := bytes.NewBuffer(append([]byte(nil), h.attrs...))
	for _, a := range attrs {
		h.writeAttr(buf, h.prefix, a)
	}
	clone := *h
	clone.attrs = buf.Bytes()
	return &clone
}

// WithGroup implements slog.Handler. Groups become dotted key prefixes.
func (h *TextHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func (h *TextHandler) writeAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		inner := prefix
		if a.Key != "" {
			inner += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, inner, ga)
		}
		return
	}

	a = redactAttr(nil, a)
	buf.WriteByte(' ')
	buf.WriteString(h.paint(h.keyColor(), prefix+a.Key))
	buf.WriteByte('=')
	buf.WriteString(quoteIfNeeded(a.Value.String()))
}

func (h *TextHandler) paint(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}

func (h *TextHandler) timeColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.time
}

func (h *TextHandler) keyColor() *color.Color {
	if h.colors == nil {
		return nil
	}
	return h.colors.key
}

func (h *TextHandler) levelColor(l slog.Level) *color.Color {
	if h.colors == nil {
		return nil
	}
	switch {
	case l >= slog.LevelError:
		return h.colors.levels[slog.LevelError]
	case l >= slog.LevelWarn:
		return h.colors.levels[slog.LevelWarn]
	case l >= slog.LevelInfo:
		return h.colors.levels[slog.LevelInfo]
	case l >= slog.LevelDebug:
		return h.colors.levels[slog.LevelDebug]
	default:
		return h.colors.levels[LevelTrace]
	}
}

func quoteIfNeeded(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}

// redactAttr masks values under secret-looking keys and string values that
// carry a known token prefix. It doubles as a slog ReplaceAttr func.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	switch {
	case a.Value.Kind() == slog.KindGroup:
		return a
	case doctor.ShouldMask(a.Key):
		return slog.String(a.Key, doctor.MaskValue(fmt.Sprint(a.Value.Any())))
	case a.Value.Kind() == slog.KindString && doctor.ContainsTokenPrefix(a.Value.String()):
		return slog.String(a.Key, doctor.MaskValue(a.Value.String()))
	}
	return a
}
