package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"repolens/internal/analysis"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	criticalStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Term renders the report for terminal output: a styled summary line
// followed by the Markdown body rendered through glamour. Falls back to
// plain Markdown if the renderer cannot be constructed.
func Term(res *analysis.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("repolens · %s", res.Root)))
	b.WriteString("\n")

	crit, imp, enh := res.Counts()
	summary := fmt.Sprintf("%s · %d critical, %d important, %d enhancement",
		res.Classification.Label, crit, imp, enh)
	if crit > 0 {
		b.WriteString(criticalStyle.Render(summary))
	} else {
		b.WriteString(okStyle.Render(summary))
	}
	b.WriteString("\n\n")

	md := Markdown(res)
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		b.WriteString(md)
		return b.String()
	}
	out, err := r.Render(md)
	if err != nil {
		b.WriteString(md)
		return b.String()
	}
	b.WriteString(out)
	return b.String()
}
