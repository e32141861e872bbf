package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders CLI output. Colors follow the capabilities of the writer,
// so piped output stays plain.
type styles struct {
	system    lipgloss.Style
	errorText lipgloss.Style
	heading   lipgloss.Style
	selected  lipgloss.Style
	done      lipgloss.Style
	notice    lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		system:    r.NewStyle().Foreground(lipgloss.Color("243")),
		errorText: r.NewStyle().Foreground(lipgloss.Color("196")),
		heading:   r.NewStyle().Foreground(lipgloss.Color("255")).Underline(true),
		selected:  r.NewStyle().Foreground(lipgloss.Color("34")),
		done:      r.NewStyle().Foreground(lipgloss.Color("240")),
		notice:    r.NewStyle().Foreground(lipgloss.Color("228")),
	}
}
