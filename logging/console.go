package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

var (
	colorGray   = lipgloss.Color("#888888")
	colorWhite  = lipgloss.Color("#FFFFFF")
	colorPurple = lipgloss.Color("#8524a6")
	colorBlue   = lipgloss.Color("#3b82f6")
	colorGreen  = lipgloss.Color("#00AA00")
	colorYellow = lipgloss.Color("#FFFF00")
	colorRed    = lipgloss.Color("#FF0000")
	colorBlack  = lipgloss.Color("#000001")
)

// consoleStyles are built per writer so colors follow that writer's profile
type consoleStyles struct {
	levels map[string]lipgloss.Style
	time   lipgloss.Style
	key    lipgloss.Style
	stack  lipgloss.Style
}

func newConsoleStyles(r *lipgloss.Renderer) consoleStyles {
	badge := func(fg, bg lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Bold(true).Foreground(fg).Background(bg).Padding(0, 1)
	}

	return consoleStyles{
		levels: map[string]lipgloss.Style{
			"TRACE": badge(colorWhite, colorGray),
			"DEBUG": badge(colorWhite, colorPurple),
			"INFO":  badge(colorWhite, colorBlue),
			"WARN":  badge(colorBlack, colorYellow),
			"ERROR": badge(colorWhite, colorRed),
			"FATAL": badge(colorWhite, colorRed).Underline(true),
		},
		time:  r.NewStyle().Foreground(colorGray),
		key:   r.NewStyle().Foreground(colorGreen),
		stack: r.NewStyle().Foreground(colorGray),
	}
}

// ConsoleHandler is a human-readable slog.Handler for development. Level
// badges and keys are colored when the writer is a terminal; multi-line
// values (stacks) are printed indented below the record.
type ConsoleHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	color  bool
	styles consoleStyles

	// preformatted attrs from WithAttrs, and the current group prefix
	attrs  []string
	blocks []string
	prefix string
}

// creates a console handler; opts may be nil
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &ConsoleHandler{
		w:      w,
		mu:     &sync.Mutex{},
		level:  level,
		color:  isTerminal(w),
		styles: newConsoleStyles(lipgloss.NewRenderer(w)),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(f.Fd())
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var line bytes.Buffer

	if !r.Time.IsZero() {
		line.WriteString(h.paint(h.styles.time, r.Time.Format(time.TimeOnly)))
		line.WriteByte(' ')
	}

	name := LevelName(r.Level)
	line.WriteString(h.paint(h.styles.levels[name], fmt.Sprintf("%-5s", name)))
	line.WriteByte(' ')
	line.WriteString(r.Message)

	fields := append([]string(nil), h.attrs...)
	blocks := append([]string(nil), h.blocks...)

	r.Attrs(func(a slog.Attr) bool {
		fields, blocks = h.appendAttr(fields, blocks, h.prefix, a)
		return true
	})

	for _, f := range fields {
		line.WriteByte(' ')
		line.WriteString(f)
	}
	line.WriteByte('\n')

	for _, b := range blocks {
		line.WriteString(b)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(line.Bytes())
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := h.clone()
	for _, a := range attrs {
		h2.attrs, h2.blocks = h2.appendAttr(h2.attrs, h2.blocks, h2.prefix, a)
	}

	return h2
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	h2 := h.clone()
	h2.prefix = h.prefix + name + "."
	return h2
}

func (h *ConsoleHandler) clone() *ConsoleHandler {
	h2 := *h
	h2.attrs = append([]string(nil), h.attrs...)
	h2.blocks = append([]string(nil), h.blocks...)
	return &h2
}

// flattens groups into dotted keys; multi-line strings become blocks
func (h *ConsoleHandler) appendAttr(fields, blocks []string, prefix string, a slog.Attr) ([]string, []string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields, blocks
	}

	if a.Value.Kind() == slog.KindGroup {
		groupPrefix := prefix
		if a.Key != "" {
			groupPrefix = prefix + a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			fields, blocks = h.appendAttr(fields, blocks, groupPrefix, ga)
		}

		return fields, blocks
	}

	key := prefix + a.Key
	val := a.Value.String()

	if strings.Contains(val, "\n") {
		var b strings.Builder
		b.WriteString("  " + h.paint(h.styles.key, key) + ":\n")
		for _, l := range strings.Split(val, "\n") {
			b.WriteString("    " + h.paint(h.styles.stack, l) + "\n")
		}

		return fields, append(blocks, b.String())
	}

	if strings.ContainsAny(val, " \t\"=") {
		val = fmt.Sprintf("%q", val)
	}

	return append(fields, h.paint(h.styles.key, key)+"="+val), blocks
}

func (h *ConsoleHandler) paint(s lipgloss.Style, text string) string {
	if !h.color {
		return text
	}

	return s.Render(text)
}
