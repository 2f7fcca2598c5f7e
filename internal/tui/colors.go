package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/palette"
)

// Color constants for the Jess TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#111827" // Dark slate
	ColorBorder         = "#374151" // Grey

	// Text Colors
	ColorPrimaryText   = "#F3F4F6" // Titles, input
	ColorSecondaryText = "#9CA3AF" // Labels, empty cells
	ColorDisabledText  = "#6B7280" // Muted text
	ColorPlaceholder   = "#9CA3AF"
	ColorHelpText      = "240" // Dark grey for help text

	// Accent Colors
	ColorAccentMain   = "#3B82F6" // Logo, active borders
	ColorAccentBright = "#93C5FD" // Highlights, current step

	// State Colors
	ColorError   = "#EF4444"
	ColorSuccess = "#22C55E"
	ColorWarning = "#F59E0B"
)

// blockStyle paints a class block in its course colour
func blockStyle(pal palette.Palette, code string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color(pal.ColorFor(code))).
		Bold(true)
}

// eventStyle colours an event title by category, or by type for
// assignment and completed entries
func eventStyle(ev models.CalendarEvent) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(palette.CategoryColor(ev.Category, ev.Type)))
}
