package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// BusyFunc is the slow call a BusyModel waits on
type BusyFunc func(ctx context.Context) (string, error)

// BusyModel shows a shimmering label and elapsed time while an AI request
// runs. Esc cancels the request through its context.
type BusyModel struct {
	label   string
	started time.Time
	elapsed time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	run    BusyFunc

	shimmer *ShimmerState

	result    string
	err       error
	done      bool
	cancelled bool
}

// busyTickMsg is sent every second to update the elapsed time
type busyTickMsg struct{}

// busyDoneMsg carries the outcome of the call
type busyDoneMsg struct {
	result string
	err    error
}

// NewBusyModel creates a model that runs fn once it starts
func NewBusyModel(ctx context.Context, label string, fn BusyFunc) BusyModel {
	ctx, cancel := context.WithCancel(ctx)
	return BusyModel{
		label:   label,
		started: time.Now(),
		ctx:     ctx,
		cancel:  cancel,
		run:     fn,
		shimmer: NewShimmerState(DefaultShimmerConfig()),
	}
}

// Init starts the call and the tickers
func (m BusyModel) Init() tea.Cmd {
	ctx, run := m.ctx, m.run
	cmds := []tea.Cmd{
		func() tea.Msg {
			result, err := run(ctx)
			return busyDoneMsg{result: result, err: err}
		},
		tea.Tick(time.Second, func(time.Time) tea.Msg {
			return busyTickMsg{}
		}),
	}
	if m.shimmer.ShouldTick() {
		cmds = append(cmds, shimmerTick(m.shimmer))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m BusyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case busyDoneMsg:
		m.result, m.err = msg.result, msg.err
		m.done = true
		m.cancel()
		return m, tea.Quit

	case busyTickMsg:
		m.elapsed = time.Since(m.started)
		if !m.done && !m.cancelled {
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return busyTickMsg{}
			})
		}
		return m, nil

	case shimmerTickMsg:
		m.shimmer.Advance()
		if !m.done && !m.cancelled && m.shimmer.ShouldTick() {
			return m, shimmerTick(m.shimmer)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.cancelled = true
			m.cancel()
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the label and elapsed time
func (m BusyModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	elapsed := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(fmt.Sprintf(" %s", formatDuration(m.elapsed)))
	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("  esc to cancel")
	return "✨ " + m.shimmer.Render(m.label, 60) + elapsed + help + "\n"
}

// Result returns the call outcome; a cancelled call reports
// context.Canceled
func (m BusyModel) Result() (string, error) {
	if m.cancelled {
		return "", context.Canceled
	}
	return m.result, m.err
}

// formatDuration formats a duration as MM:SS, or HH:MM:SS past an hour
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	mins := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
