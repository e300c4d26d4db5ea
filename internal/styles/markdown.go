package styles

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders markdown for the terminal. It falls back to the
// raw markdown when rendering is unavailable.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 120
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}

// RenderDiff renders a unified diff inside a diff code fence.
func RenderDiff(unified string) string {
	return RenderMarkdown(fmt.Sprintf("```diff\n%s```\n", unified), 0)
}
