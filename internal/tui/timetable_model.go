package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/balkashynov/jess/internal/layout"
	"github.com/balkashynov/jess/internal/models"
	"github.com/balkashynov/jess/internal/palette"
)

// TimetableModel is the interactive weekly timetable viewer
type TimetableModel struct {
	width  int
	height int

	classes []models.ClassSession
	palette palette.Palette
	window  layout.Window

	// UI state
	vertical   bool
	rangeIdx   int // index into layout.RangePresets, -1 for a custom window
	selected   int // index into visible()
	showDetail bool

	// Shimmer effect for the selected block
	shimmer *ShimmerState
}

// shimmerTickMsg is sent when shimmer should update
type shimmerTickMsg struct{}

// NewTimetableModel creates a viewer over classes
func NewTimetableModel(classes []models.ClassSession, pal palette.Palette, w layout.Window, vertical bool) TimetableModel {
	m := TimetableModel{
		classes:  classes,
		palette:  pal,
		window:   w,
		vertical: vertical,
		rangeIdx: -1,
		shimmer:  NewShimmerState(DefaultShimmerConfig()),
	}
	for i, p := range layout.RangePresets {
		if p.Start == w.StartHour && p.End == w.EndHour {
			m.rangeIdx = i
			break
		}
	}
	return m
}

func shimmerTick(s *ShimmerState) tea.Cmd {
	return tea.Tick(s.Config.Interval, func(time.Time) tea.Msg {
		return shimmerTickMsg{}
	})
}

// Init initializes the model
func (m TimetableModel) Init() tea.Cmd {
	if m.shimmer.ShouldTick() {
		return shimmerTick(m.shimmer)
	}
	return nil
}

// Update handles messages
func (m TimetableModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shimmerTickMsg:
		m.shimmer.Advance()
		if m.shimmer.ShouldTick() {
			return m, shimmerTick(m.shimmer)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
			return m, tea.Quit

		case "enter":
			if _, ok := m.Selected(); ok {
				m.showDetail = !m.showDetail
			}
			return m, nil

		case "v":
			m.vertical = !m.vertical
			return m.clampSelection(), nil

		case "w":
			m.window.ShowWeekends = !m.window.ShowWeekends
			return m.clampSelection(), nil

		case "r":
			m.rangeIdx = (m.rangeIdx + 1) % len(layout.RangePresets)
			preset := layout.RangePresets[m.rangeIdx]
			m.window.StartHour, m.window.EndHour = preset.Start, preset.End
			return m.clampSelection(), nil

		case "up", "k", "left", "h":
			return m.moveSelection(-1), nil

		case "down", "j", "right", "l":
			return m.moveSelection(1), nil
		}
	}

	return m, nil
}

// visible returns the classes shown in the current layout, in reading
// order
func (m TimetableModel) visible() []models.ClassSession {
	var out []models.ClassSession
	if m.vertical {
		for _, g := range layout.Vertical(m.classes, m.window) {
			out = append(out, g.Classes...)
		}
		return out
	}
	grid := layout.Horizontal(m.classes, m.window)
	for _, row := range grid.Rows {
		for _, cell := range row.Cells {
			for _, b := range cell.Blocks {
				out = append(out, b.Class)
			}
		}
	}
	return out
}

// Selected returns the highlighted class
func (m TimetableModel) Selected() (models.ClassSession, bool) {
	vis := m.visible()
	if m.selected < 0 || m.selected >= len(vis) {
		return models.ClassSession{}, false
	}
	return vis[m.selected], true
}

func (m TimetableModel) moveSelection(delta int) TimetableModel {
	n := len(m.visible())
	if n == 0 {
		return m
	}
	next := m.selected + delta
	if next < 0 || next >= n {
		return m
	}
	m.selected = next
	m.shimmer.Reset()
	return m
}

// clampSelection keeps the cursor on a visible class after the layout
// changes, following the same class when it is still shown
func (m TimetableModel) clampSelection() TimetableModel {
	vis := m.visible()
	if len(vis) == 0 {
		m.selected = 0
		m.showDetail = false
		return m
	}
	if m.selected >= len(vis) {
		m.selected = len(vis) - 1
	}
	return m
}

// View renders the TUI
func (m TimetableModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	mainWidth := m.width - 2
	var detail string
	if m.showDetail {
		detailWidth := 36
		mainWidth = m.width - detailWidth - 3
		detail = m.renderDetails(detailWidth)
	}

	var body string
	if m.vertical {
		body = m.renderList(mainWidth)
	} else {
		body = m.renderGrid(mainWidth)
	}

	content := body
	if detail != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, body, " ", detail)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		"",
		m.renderHelpBar(),
	)
}

func (m TimetableModel) renderHeader() string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))

	rangeLabel := fmt.Sprintf("%d:00 - %d:00", m.window.StartHour, m.window.EndHour)
	if m.rangeIdx >= 0 {
		rangeLabel = layout.RangePresets[m.rangeIdx].Label
	}
	weekends := "weekdays"
	if m.window.ShowWeekends {
		weekends = "full week"
	}
	meta := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(fmt.Sprintf("  %s · %s · %d classes", rangeLabel, weekends, len(m.classes)))
	return headerStyle.Render("📅 Timetable") + meta
}

// renderGrid draws the hour-by-day table
func (m TimetableModel) renderGrid(width int) string {
	grid := layout.Horizontal(m.classes, m.window)
	if len(m.classes) == 0 {
		return m.renderEmpty(width)
	}

	labelWidth := 6
	colWidth := (width - labelWidth - 4) / len(grid.Days)
	if colWidth < 8 {
		colWidth = 8
	}

	dayStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright)).
		Width(colWidth)
	hourStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Width(labelWidth)
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDisabledText)).
		Width(colWidth)

	var b strings.Builder
	header := []string{hourStyle.Render("")}
	for _, day := range grid.Days {
		header = append(header, dayStyle.Render(day[:3]))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, header...))
	b.WriteString("\n")

	index := 0
	for _, row := range grid.Rows {
		cells := []string{hourStyle.Render(row.Label)}
		for _, cell := range row.Cells {
			if len(cell.Blocks) == 0 {
				cells = append(cells, emptyStyle.Render("·"))
				continue
			}
			var parts []string
			for _, blk := range cell.Blocks {
				parts = append(parts, m.renderBlock(blk.Class, index, colWidth-1))
				index++
			}
			cells = append(cells, lipgloss.NewStyle().Width(colWidth).Render(strings.Join(parts, "\n")))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}

	if hidden := len(m.classes) - grid.Blocks(); hidden > 0 {
		note := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHelpText)).Italic(true).
			Render(fmt.Sprintf("%d classes outside this window", hidden))
		b.WriteString(note)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

func (m TimetableModel) renderBlock(c models.ClassSession, index, width int) string {
	label := c.CourseCode
	if label == "" {
		label = c.CourseName
	}
	if index == m.selected {
		return "▶" + m.shimmer.Render(label, width-1)
	}
	if r := []rune(label); len(r) > width && width > 3 {
		label = string(r[:width-3]) + "..."
	}
	return blockStyle(m.palette, c.CourseCode).Render(label)
}

// renderList draws one section per day, earliest class first
func (m TimetableModel) renderList(width int) string {
	groups := layout.Vertical(m.classes, m.window)
	if len(groups) == 0 {
		return m.renderEmpty(width)
	}

	dayStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	timeStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Width(14)
	metaStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText))

	var b strings.Builder
	index := 0
	for gi, g := range groups {
		if gi > 0 {
			b.WriteString("\n")
		}
		b.WriteString(dayStyle.Render(g.Day))
		b.WriteString("\n")
		for _, c := range g.Classes {
			marker := "  "
			if index == m.selected {
				marker = "▶ "
			}
			line := marker +
				timeStyle.Render(c.TimeStart+" - "+c.TimeEnd) +
				blockStyle(m.palette, c.CourseCode).Render(" "+c.CourseCode+" ") + " " +
				c.CourseName + metaStyle.Render(fmt.Sprintf("  %s · %s", c.Type, c.Location))
			b.WriteString(line)
			b.WriteString("\n")
			index++
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width).
		Render(b.String())
}

func (m TimetableModel) renderEmpty(width int) string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Italic(true).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Width(width)
	return emptyStyle.Render("No classes in this view. Try w for weekends or r for a wider range.")
}

// renderDetails renders the side panel for the selected class
func (m TimetableModel) renderDetails(width int) string {
	c, ok := m.Selected()
	if !ok {
		return ""
	}

	var b strings.Builder
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorPrimaryText)).
		Width(width - 2)
	b.WriteString(blockStyle(m.palette, c.CourseCode).Render(" " + c.CourseCode + " "))
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(c.CourseName))
	b.WriteString("\n\n")

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
	field := func(label, value string) {
		if strings.TrimSpace(value) == "" {
			return
		}
		b.WriteString(labelStyle.Render(label + ": "))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("Day", c.Day)
	field("Time", c.TimeStart+" - "+c.TimeEnd)
	field("Type", c.Type)
	field("Location", c.Location)
	field("Instructor", c.Instructor)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccentMain)).
		Padding(0, 1).
		Width(width).
		Render(b.String())
}

// renderHelpBar renders the help bar with hotkey hints
func (m TimetableModel) renderHelpBar() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width)

	return helpStyle.Render("↑/↓ select · enter details · v view · w weekends · r hours · q/esc quit")
}
