package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/parser"
)

// Step represents the current step in the wizard
type Step int

const (
	StepTitle Step = iota
	StepDate
	StepTime
	StepCategory
	StepDescription
	StepRecurring
	StepReminder
	StepSave
)

var stepLabels = []string{"Title", "Date", "Time", "Category", "Description", "Repeat weekly", "Reminder", "Save"}

// SaveFunc persists the event built by the form and returns the stored copy
type SaveFunc func(models.CalendarEvent) (models.CalendarEvent, error)

// EventFormModel is the step-by-step event editor
type EventFormModel struct {
	currentStep Step
	inputs      []textinput.Model
	width       int
	height      int

	base     models.CalendarEvent
	save     SaveFunc
	now      func() time.Time
	editMode bool

	// State
	err           error
	completed     bool
	cancelled     bool
	validationErr string
	saved         models.CalendarEvent

	// Save confirmation modal
	showSaveModal   bool
	saveModalChoice bool // true for Yes, false for No
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// NewEventFormModel creates a form prefilled from ev. With editMode the
// saved event keeps ev's identity.
func NewEventFormModel(ev models.CalendarEvent, editMode bool, save SaveFunc) EventFormModel {
	inputs := make([]textinput.Model, int(StepSave))
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 60
		inputs[i].TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		inputs[i].PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPlaceholder))
		inputs[i].Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	}

	inputs[StepTitle].Placeholder = "Event title (required)"
	inputs[StepTitle].CharLimit = 200
	inputs[StepDate].Placeholder = "YYYY-MM-DD, dd/mm/yyyy, today, tomorrow, 3 days (Enter for today)"
	inputs[StepDate].CharLimit = 20
	inputs[StepTime].Placeholder = "14:00, 2pm (Enter for all day)"
	inputs[StepTime].CharLimit = 10
	inputs[StepCategory].Placeholder = "study/work/personal/other (Enter for study)"
	inputs[StepCategory].CharLimit = 10
	inputs[StepDescription].Placeholder = "Notes (Enter to skip)"
	inputs[StepDescription].CharLimit = 500
	inputs[StepRecurring].Placeholder = "yes/no (Enter for no)"
	inputs[StepRecurring].CharLimit = 3
	inputs[StepReminder].Placeholder = "yes/no (Enter for no)"
	inputs[StepReminder].CharLimit = 3

	inputs[StepTitle].SetValue(ev.Title)
	inputs[StepDate].SetValue(ev.Date)
	inputs[StepTime].SetValue(ev.Time)
	inputs[StepCategory].SetValue(string(ev.Category))
	inputs[StepDescription].SetValue(ev.Description)
	inputs[StepRecurring].SetValue(yesNo(ev.IsRecurring))
	inputs[StepReminder].SetValue(yesNo(ev.Reminder))
	inputs[StepTitle].Focus()

	return EventFormModel{
		currentStep: StepTitle,
		inputs:      inputs,
		base:        ev,
		save:        save,
		now:         time.Now,
		editMode:    editMode,
	}
}

// Init initializes the model
func (m EventFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m EventFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputWidth := m.width - 20
		if inputWidth < 30 {
			inputWidth = 30
		}
		if inputWidth > 80 {
			inputWidth = 80
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case tea.KeyMsg:
		if m.showSaveModal {
			switch msg.String() {
			case "left", "right":
				m.saveModalChoice = !m.saveModalChoice
				return m, nil
			case "y", "Y":
				m.saveModalChoice = true
				return m.handleSaveChoice()
			case "n", "N":
				m.saveModalChoice = false
				return m.handleSaveChoice()
			case "enter":
				return m.handleSaveChoice()
			case "esc":
				m.showSaveModal = false
				return m, nil
			case "ctrl+c":
				m.cancelled = true
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			m.cancelled = true
			return m, tea.Quit

		case "esc":
			if m.currentStep == StepSave {
				return m.prevStep()
			}
			if !m.hasChanges() {
				m.cancelled = true
				return m, tea.Quit
			}
			m.showSaveModal = true
			m.saveModalChoice = true
			return m, nil

		case "enter":
			return m.handleEnter()

		case "tab", "down":
			if m.currentStep == StepTitle && strings.TrimSpace(m.value(StepTitle)) == "" {
				m.validationErr = "Event title is required"
				return m, nil
			}
			return m.nextStep()

		case "shift+tab", "up":
			return m.prevStep()
		}
	}

	var cmd tea.Cmd
	if m.currentStep < StepSave {
		m.inputs[m.currentStep], cmd = m.inputs[m.currentStep].Update(msg)
	}
	return m, cmd
}

func (m EventFormModel) value(s Step) string {
	return strings.TrimSpace(m.inputs[s].Value())
}

// checkStep validates the input of one step, returning a message for the
// user or ""
func (m EventFormModel) checkStep(s Step) string {
	v := m.value(s)
	switch s {
	case StepTitle:
		if v == "" {
			return "Event title is required"
		}
	case StepDate:
		if v != "" {
			if _, err := parser.ParseDate(v, m.now()); err != nil {
				return err.Error()
			}
		}
	case StepTime:
		if v != "" {
			if _, err := parser.NormalizeClockTime(v); err != nil {
				return err.Error()
			}
		}
	case StepCategory:
		if v != "" && !models.Category(strings.ToLower(v)).Valid() {
			return "Invalid category. Use: study, work, personal, other"
		}
	case StepRecurring, StepReminder:
		if _, ok := parseYesNo(v); !ok {
			return "Answer yes or no"
		}
	}
	return ""
}

func parseYesNo(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "", "n", "no":
		return false, true
	case "y", "yes":
		return true, true
	}
	return false, false
}

func (m EventFormModel) handleEnter() (EventFormModel, tea.Cmd) {
	m.validationErr = ""
	if m.currentStep == StepSave {
		return m.submit()
	}
	if msg := m.checkStep(m.currentStep); msg != "" {
		m.validationErr = msg
		return m, nil
	}
	return m.nextStep()
}

// nextStep moves to the next step
func (m EventFormModel) nextStep() (EventFormModel, tea.Cmd) {
	if m.currentStep < StepSave {
		m.inputs[m.currentStep].Blur()
		m.currentStep++
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Focus()
		}
	}
	return m, textinput.Blink
}

// prevStep moves to the previous step
func (m EventFormModel) prevStep() (EventFormModel, tea.Cmd) {
	if m.currentStep > StepTitle {
		if m.currentStep < StepSave {
			m.inputs[m.currentStep].Blur()
		}
		m.currentStep--
		m.inputs[m.currentStep].Focus()
	}
	return m, textinput.Blink
}

// hasChanges reports whether any input differs from the prefilled event
func (m EventFormModel) hasChanges() bool {
	orig := NewEventFormModel(m.base, m.editMode, nil)
	for i := range m.inputs {
		if m.value(Step(i)) != orig.value(Step(i)) {
			return true
		}
	}
	return false
}

// Event builds the event from the form inputs
func (m EventFormModel) Event() (models.CalendarEvent, error) {
	for s := StepTitle; s < StepSave; s++ {
		if msg := m.checkStep(s); msg != "" {
			return models.CalendarEvent{}, &models.ValidationError{Field: strings.ToLower(stepLabels[s]), Message: msg}
		}
	}

	ev := m.base
	if !m.editMode {
		ev.ID = ""
	}
	ev.Title = m.value(StepTitle)
	ev.Description = m.value(StepDescription)

	ev.Date = m.now().Format(models.DateLayout)
	if v := m.value(StepDate); v != "" {
		ev.Date, _ = parser.ParseDate(v, m.now())
	}
	ev.Time = ""
	if v := m.value(StepTime); v != "" {
		ev.Time, _ = parser.NormalizeClockTime(v)
	}
	ev.Category = models.CategoryStudy
	if v := m.value(StepCategory); v != "" {
		ev.Category = models.Category(strings.ToLower(v))
	}
	ev.IsRecurring, _ = parseYesNo(m.value(StepRecurring))
	ev.Reminder, _ = parseYesNo(m.value(StepReminder))
	ev.Normalize()
	return ev, nil
}

// submit validates every step, then hands the event to the save callback
func (m EventFormModel) submit() (EventFormModel, tea.Cmd) {
	ev, err := m.Event()
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	saved, err := m.save(ev)
	if err != nil {
		m.err = err
		m.validationErr = err.Error()
		return m, nil
	}
	m.saved = saved
	m.completed = true
	return m, tea.Quit
}

// handleSaveChoice handles the save confirmation modal response
func (m EventFormModel) handleSaveChoice() (EventFormModel, tea.Cmd) {
	m.showSaveModal = false
	if m.saveModalChoice {
		return m.submit()
	}
	m.cancelled = true
	return m, tea.Quit
}

// View renders the TUI
func (m EventFormModel) View() string {
	if m.cancelled || m.completed {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	title := "📝 New Event"
	if m.editMode {
		title = "📝 Edit Event"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	current := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
	done := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess))
	future := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	for i, label := range stepLabels {
		s := Step(i)
		if s == StepSave {
			b.WriteString("\n")
		}
		switch {
		case s == m.currentStep:
			b.WriteString(current.Render("▶ " + label))
		case s < StepSave && m.value(s) != "":
			b.WriteString(done.Render("✓ " + label))
		default:
			b.WriteString(future.Render("  " + label))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.currentStep == StepSave {
		if ev, err := m.Event(); err == nil {
			b.WriteString(m.renderPreview(ev))
		}
		b.WriteString("\nPress Enter to save event")
	} else {
		b.WriteString(stepLabels[m.currentStep] + "\n")
		b.WriteString(m.inputs[m.currentStep].View())
	}

	if m.validationErr != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true).
			MarginTop(1)
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("❌ " + m.validationErr))
	}

	b.WriteString("\n\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true)
	b.WriteString(helpStyle.Render("Enter: Next | Tab/↓: Next | Shift+Tab/↑: Back | Esc: Cancel"))

	form := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1).
		Render(b.String())

	if m.showSaveModal {
		return m.renderSaveModal()
	}
	return form
}

func (m EventFormModel) renderPreview(ev models.CalendarEvent) string {
	when := ev.Date + " " + parser.FormatRelativeDate(ev.Date, m.now())
	if ev.Time != "" {
		when += " at " + ev.Time
	}
	var flags []string
	if ev.IsRecurring {
		flags = append(flags, "repeats weekly")
	}
	if ev.Reminder {
		flags = append(flags, "reminder")
	}
	lines := []string{
		eventStyle(ev).Bold(true).Render(ev.Title),
		when,
		"#" + string(ev.Category),
	}
	if len(flags) > 0 {
		lines = append(lines, strings.Join(flags, ", "))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderSaveModal renders the save confirmation modal
func (m EventFormModel) renderSaveModal() string {
	yesStyle := lipgloss.NewStyle().Padding(0, 2)
	noStyle := lipgloss.NewStyle().Padding(0, 2)
	if m.saveModalChoice {
		yesStyle = yesStyle.
			Background(lipgloss.Color(ColorAccentBright)).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)
	} else {
		noStyle = noStyle.
			Background(lipgloss.Color(ColorError)).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)
	}

	content := "Save changes?\n\n" +
		lipgloss.JoinHorizontal(lipgloss.Center, yesStyle.Render("Yes"), "   ", noStyle.Render("No")) +
		"\n\n← → or Y/N to choose, Enter to confirm\nEsc to go back"

	modal := lipgloss.NewStyle().
		Width(50).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentBright)).
		Background(lipgloss.Color(ColorCardBackground)).
		Padding(1).
		Align(lipgloss.Center).
		Render(content)

	if m.width == 0 || m.height == 0 {
		return modal
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// Result reports what happened when the form closed
func (m EventFormModel) Result() (models.CalendarEvent, bool, error) {
	if m.cancelled {
		return models.CalendarEvent{}, false, nil
	}
	return m.saved, m.completed, m.err
}
