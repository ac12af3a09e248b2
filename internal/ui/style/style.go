// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Ember = lipgloss.Color("#E4572E")
	Slate = lipgloss.Color("#667085")
	Ash   = lipgloss.Color("#98A2B3")
	Green = lipgloss.Color("#22A06B")
	Red   = lipgloss.Color("#D93025")
	Amber = lipgloss.Color("#F59E0B")
	Sky   = lipgloss.Color("#2E90FA")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
)
