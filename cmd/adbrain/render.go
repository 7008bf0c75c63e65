package main

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

const defaultWrapWidth = 100

// markdownFunc turns reply markdown into printable text.
type markdownFunc func(md string) string

func plainMarkdown(md string) string { return md }

// newMarkdownRenderer returns a glamour renderer wrapped at width. Rendering
// errors fall back to the raw markdown.
func newMarkdownRenderer(width int) markdownFunc {
	if width <= 0 {
		width = defaultWrapWidth
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return plainMarkdown
	}
	return func(md string) string {
		if md == "" {
			return ""
		}
		out, err := r.Render(md)
		if err != nil {
			return md
		}
		return strings.Trim(out, "\n")
	}
}

// stdoutMarkdown picks rich rendering only when stdout is a terminal.
func stdoutMarkdown(plain bool) markdownFunc {
	fd := int(os.Stdout.Fd())
	if plain || !term.IsTerminal(fd) {
		return plainMarkdown
	}
	width := defaultWrapWidth
	if w, _, err := term.GetSize(fd); err == nil && w > 0 && w-4 < width {
		width = w - 4
	}
	return newMarkdownRenderer(width)
}
