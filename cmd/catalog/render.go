package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"codeberg.org/algorave/errhandler/registry"
	"codeberg.org/algorave/errhandler/variant"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#8524a6"))

// one row of the variants table
type entry struct {
	Name          string `json:"name"`
	Parent        string `json:"parent,omitempty"`
	Severity      string `json:"severity"`
	Status        int    `json:"status"`
	PublicMessage string `json:"public_message,omitempty"`
}

type rule struct {
	Source  string `json:"source"`
	Wrapper string `json:"wrapper"`
}

type document struct {
	Variants []entry `json:"variants"`
	Wraps    []rule  `json:"wraps"`
}

func newDocument(reg *registry.Registry) document {
	doc := document{}

	for _, def := range reg.Variants() {
		e := entry{
			Name:          def.Name(),
			Severity:      def.Severity().String(),
			Status:        def.StatusCode(),
			PublicMessage: def.PublicMessage(),
		}
		if p := def.Parent(); p != nil {
			e.Parent = p.Name()
		}

		doc.Variants = append(doc.Variants, e)
	}

	for _, w := range reg.Wraps() {
		doc.Wraps = append(doc.Wraps, rule{Source: w.Source, Wrapper: w.Wrapper.Name()})
	}

	return doc
}

func writeJSON(w io.Writer, doc document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// renders the catalog as two markdown tables
func markdown(doc document) string {
	var b strings.Builder

	b.WriteString("# Error catalog\n\n")
	b.WriteString("## Variants\n\n")
	b.WriteString("| Variant | Extends | Severity | Status | Public message |\n")
	b.WriteString("|---|---|---|---|---|\n")

	for _, e := range doc.Variants {
		fmt.Fprintf(&b, "| %s | %s | %s | %d %s | %s |\n",
			e.Name, orDash(e.Parent), e.Severity, e.Status, http.StatusText(e.Status), orDash(e.PublicMessage))
	}

	b.WriteString("\n## Wrap rules\n\n")
	b.WriteString("| Raw error type | Handled as |\n")
	b.WriteString("|---|---|\n")

	for _, r := range doc.Wraps {
		fmt.Fprintf(&b, "| `%s` | %s |\n", r.Source, r.Wrapper)
	}

	fmt.Fprintf(&b, "\nErrors matching neither table render as `%s` (500).\n", variant.UnknownCode)

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

// renders markdown for a terminal of the given width
func renderTerminal(md string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return titleStyle.Render("errhandler") + "\n" + out, nil
}
