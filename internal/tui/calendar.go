package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/jess/internal/layout"
	"github.com/balkashynov/jess/internal/models"
)

var weekdayHeaders = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// RenderCalendar draws month or two-week calendar days as a seven column
// table. Events are colour coded by category.
func RenderCalendar(days []layout.CalendarDay, view layout.View, selected time.Time, width int) string {
	colWidth := (width - 2) / 7
	if colWidth < 12 {
		colWidth = 12
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Width(colWidth)

	var b strings.Builder
	title := selected.Format("January 2006")
	if view == layout.ViewTwoWeek && len(days) > 0 {
		title = fmt.Sprintf("%s to %s", days[0].Date, days[len(days)-1].Date)
	}
	b.WriteString(titleStyle.Render("🗓  " + title))
	b.WriteString("\n\n")

	header := make([]string, len(weekdayHeaders))
	for i, h := range weekdayHeaders {
		header[i] = headerStyle.Render(h)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	for start := 0; start < len(days); start += 7 {
		end := start + 7
		if end > len(days) {
			end = len(days)
		}
		cells := make([]string, 0, 7)
		for _, day := range days[start:end] {
			cells = append(cells, renderDay(day, colWidth))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return b.String()
}

func renderDay(day layout.CalendarDay, width int) string {
	numStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
	switch {
	case day.IsToday:
		numStyle = numStyle.Bold(true).Foreground(lipgloss.Color(ColorAccentMain))
	case !day.InMonth:
		numStyle = numStyle.Foreground(lipgloss.Color(ColorDisabledText))
	}

	lines := []string{numStyle.Render(day.Date[8:])}
	for _, ev := range day.Events {
		lines = append(lines, eventStyle(ev).Render(eventLabel(ev, width-1)))
	}
	if day.Hidden > 0 {
		lines = append(lines, lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorHelpText)).
			Render(fmt.Sprintf("+%d more", day.Hidden)))
	}
	return lipgloss.NewStyle().Width(width).PaddingBottom(1).Render(strings.Join(lines, "\n"))
}

func eventLabel(ev models.CalendarEvent, width int) string {
	label := ev.Title
	if ev.Time != "" {
		label = ev.Time + " " + label
	}
	if ev.Type == models.EventCompleted {
		label = "✓ " + label
	}
	if r := []rune(label); len(r) > width && width > 3 {
		label = string(r[:width-3]) + "..."
	}
	return label
}
