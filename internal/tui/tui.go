package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/balkashynov/jess/internal/layout"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/palette"
)

// RunTimetable starts the interactive timetable viewer
func RunTimetable(classes []models.ClassSession, pal palette.Palette, w layout.Window, vertical bool) error {
	p := tea.NewProgram(NewTimetableModel(classes, pal, w, vertical), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunEventForm starts the event form. ok is false when the user cancelled.
func RunEventForm(ev models.CalendarEvent, editMode bool, save SaveFunc) (models.CalendarEvent, bool, error) {
	p := tea.NewProgram(NewEventFormModel(ev, editMode, save), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return models.CalendarEvent{}, false, err
	}

	m, ok := finalModel.(EventFormModel)
	if !ok {
		return models.CalendarEvent{}, false, fmt.Errorf("unexpected model %T", finalModel)
	}
	saved, completed, err := m.Result()
	if err != nil {
		return models.CalendarEvent{}, false, err
	}
	if !completed {
		fmt.Println("❌ Event creation cancelled.")
	}
	return saved, completed, nil
}

// RunBusy runs fn while showing an inline progress line
func RunBusy(ctx context.Context, label string, fn BusyFunc) (string, error) {
	p := tea.NewProgram(NewBusyModel(ctx, label, fn))
	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := finalModel.(BusyModel)
	if !ok {
		return "", fmt.Errorf("unexpected model %T", finalModel)
	}
	return m.Result()
}
