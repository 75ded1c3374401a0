package output

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals elsewhere.
var (
	// ColorCyan is used for identifiable nouns: package names, file paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "added" dependency status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "replaced" dependency status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "removed" dependency status.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (package names, file paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome (step prefixes, separators).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Dependency status constants.
const (
	StatusAdded    = "added"
	StatusReplaced = "replaced"
	StatusRemoved  = "removed"
)

// StatusStyle returns the style for a dependency status. Unknown statuses
// return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusAdded:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusReplaced:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusRemoved:
		return lipgloss.NewStyle().Foreground(ColorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
