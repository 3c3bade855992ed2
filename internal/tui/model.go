// Package tui is the interactive terminal front end for the stopwatch.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cloudposse/stopwatch/pkg/stopwatch"
)

// refreshMsg carries a snapshot pushed by the tracker's periodic refresh.
type refreshMsg stopwatch.Snapshot

// Model renders a Tracker and maps keys onto its operations.
//
// The displayed time is read from the tracker on every render, so a late or
// dropped refresh only delays the next repaint.
type Model struct {
	tracker  *stopwatch.Tracker
	updates  <-chan stopwatch.Snapshot
	keys     keyMap
	help     help.Model
	width    int
	quitting bool
}

// NewModel returns a model for tracker. updates is the channel fed by Notifier.
func NewModel(tracker *stopwatch.Tracker, updates <-chan stopwatch.Snapshot) Model {
	m := Model{
		tracker: tracker,
		updates: updates,
		keys:    newKeyMap(),
		help:    help.New(),
	}
	m.syncKeys()
	return m
}

// Notifier returns a refresh function for stopwatch.WithRefresh that never blocks
// the scheduler: when the UI hasn't drained the previous snapshot, the new one is dropped.
func Notifier(ch chan<- stopwatch.Snapshot) func(stopwatch.Snapshot) {
	return func(s stopwatch.Snapshot) {
		select {
		case ch <- s:
		default:
		}
	}
}

// Init starts listening for refreshes.
//
//nolint:gocritic // bubbletea models must be passed by value
func (m Model) Init() tea.Cmd {
	return waitForRefresh(m.updates)
}

func waitForRefresh(updates <-chan stopwatch.Snapshot) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-updates
		if !ok {
			return nil
		}
		return refreshMsg(snap)
	}
}

// Update handles messages.
//
//nolint:gocritic // bubbletea models must be passed by value
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case refreshMsg:
		// Nothing to store: View reads the tracker directly.
		return m, waitForRefresh(m.updates)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Start):
			m.tracker.Start()
		case key.Matches(msg, m.keys.Stop):
			m.tracker.Stop()
		case key.Matches(msg, m.keys.Reset):
			m.tracker.Reset()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		m.syncKeys()
		return m, nil
	}

	return m, nil
}

// syncKeys enables only the actions valid in the tracker's current state.
func (m *Model) syncKeys() {
	snap := m.tracker.Snapshot()
	m.keys.Start.SetEnabled(snap.CanStart())
	m.keys.Stop.SetEnabled(snap.CanStop())
	m.keys.Reset.SetEnabled(snap.CanReset())
}

// View renders the UI.
//
//nolint:gocritic // bubbletea models must be passed by value
func (m Model) View() string {
	snap := m.tracker.Snapshot()

	if m.quitting {
		return "Elapsed " + snap.Formatted() + "\n"
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center,
		timeStyle.Render(snap.Formatted()),
		"  ",
		stateLabel(snap.State),
	))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")

	return b.String()
}

func stateLabel(s stopwatch.State) string {
	switch s {
	case stopwatch.Running:
		return runningStyle.Render(s.String())
	case stopwatch.Stopped:
		return stoppedStyle.Render(s.String())
	default:
		return idleStyle.Render(s.String())
	}
}

// Snapshot exposes the tracker state for callers inspecting the final model.
//
//nolint:gocritic // bubbletea models must be passed by value
func (m Model) Snapshot() stopwatch.Snapshot {
	return m.tracker.Snapshot()
}
