package notify

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the text styles used in warnings. They render as plain text
// when the writer is not a color terminal.
type styles struct {
	name    lipgloss.Style
	message lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		name:    r.NewStyle().Bold(true),
		message: r.NewStyle().Bold(true),
	}
}
