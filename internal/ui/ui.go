package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#DC2626")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CA8A04"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#16A34A"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Italic(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))
)

// FormatError returns a styled multi-line error message.
func FormatError(title, detail, suggestion string) string {
	out := errorStyle.Render("Error: "+title) + "\n"
	if detail != "" {
		out += "  " + detail + "\n"
	}
	if suggestion != "" {
		out += "  " + hintStyle.Render("Hint: "+suggestion) + "\n"
	}
	return out
}

// Summary writes the end-of-run counts. The line is green when every file
// parsed and yellow otherwise.
func Summary(w io.Writer, files, failed, services int) {
	msg := fmt.Sprintf("Scanned %d compose files, %d exposed services", files, services)
	if failed == 0 {
		fmt.Fprintln(w, successStyle.Render(msg))
		return
	}
	fmt.Fprintln(w, warnStyle.Render(msg)+" "+dimStyle.Render(fmt.Sprintf("(%d failed)", failed)))
}

// ValidationErr writes a red error line for an invalid config field.
func ValidationErr(w io.Writer, field, message, suggestion string) {
	fmt.Fprintf(w, "  %s %s: %s\n", errorStyle.Render("ERR"), field, message)
	if suggestion != "" {
		fmt.Fprintf(w, "      %s\n", hintStyle.Render("Hint: "+suggestion))
	}
}
