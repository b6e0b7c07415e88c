// Package cli holds the terminal styling shared by the pitchstair commands.
package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	primaryColor = lipgloss.Color("#1E6FD9")
	accentColor  = lipgloss.Color("#FFA500")
	mutedColor   = lipgloss.Color("#888888")
	textColor    = lipgloss.Color("#FFFFFF")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginBottom(1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#A40000"))

	WarnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	KeyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)
)

func PrintVersion(version string) {
	fmt.Println(TitleStyle.Render("pitchstair"))
	fmt.Printf("%s %s\n", KeyStyle.Render("Version:"), ValueStyle.Render(version))
	fmt.Println()
}

func PrintError(message string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", ErrorStyle.Render("Error:"), message)
}

// Field is one labelled line of a summary block.
type Field struct {
	Key   string
	Value string
}

// FormatSummary renders a title followed by aligned key/value lines.
func FormatSummary(title string, fields []Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, len(f.Key))
	}

	out := TitleStyle.Render(title) + "\n"
	for _, f := range fields {
		key := KeyStyle.Width(width + 2).Render(f.Key + ":")
		out += key + ValueStyle.Render(f.Value) + "\n"
	}
	return out
}
