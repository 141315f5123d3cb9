package renderer

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// HTML converts a markdown report into an HTML fragment.
func HTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("converting markdown to html: %w", err)
	}
	return buf.Bytes(), nil
}

// Terminal renders a markdown report for display in a terminal of the given
// width. style is a glamour style name, empty picks one from the terminal.
func Terminal(markdown, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating terminal renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
