// Package style holds the colors, icons and text styles shared by the CLI
// and the logger.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)

// Text styles for report headings and labels.
var (
	Heading = lipgloss.NewStyle().Bold(true).Foreground(Iris)
	Label   = lipgloss.NewStyle().Foreground(Slate)
	Good    = lipgloss.NewStyle().Foreground(Green)
	Bad     = lipgloss.NewStyle().Foreground(Red)
)
