package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Handle state-specific keys
	switch m.State {
	case StateHelp:
		m.State = StateBrowsing
		return m, nil

	case StateConfirmDelete:
		switch {
		case key.Matches(msg, Keys.Confirm):
			m.State = StateBrowsing
			return m.confirmDelete()
		case key.Matches(msg, Keys.Deny):
			m.Ctrl.CancelDelete()
			m.State = StateBrowsing
			m.syncFromController()
		}
		return m, nil
	}

	switch m.Focus {
	case PaneInput:
		return m.handleInputKey(msg)
	case PaneSaved:
		if m.Saved.IsFiltering() {
			return m, m.Saved.Update(msg)
		}
	}

	// Global keys
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Focus):
		next := PaneSaved
		if m.Focus == PaneSaved {
			next = PaneInput
		}
		m.setFocus(next)
		return m, nil

	case key.Matches(msg, Keys.Input):
		m.setFocus(PaneInput)
		return m, nil

	case key.Matches(msg, Keys.Bookmark):
		return m.toggleBookmark()
	}

	if m.Focus == PaneSaved {
		return m.handleSavedKey(msg)
	}

	// Result pane
	if key.Matches(msg, Keys.Open) {
		if cur := m.Ctrl.Current(); cur != nil {
			if link, ok := cur.DetailURL(); ok {
				return m, OpenURLCmd(m.Opener, link)
			}
		}
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.setFocus(PaneResult)
		return m, nil
	case "esc":
		m.setFocus(PaneResult)
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.Input, cmd, submitted = m.Input.Update(msg)
	if submitted {
		return m.submit()
	}
	return m, cmd
}

func (m Model) handleSavedKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Delete):
		if i, ok := m.Saved.SelectedIndex(); ok && m.Ctrl.RequestDelete(i) {
			m.State = StateConfirmDelete
			m.syncFromController()
		}
		return m, nil

	case key.Matches(msg, Keys.Open), msg.String() == "enter":
		if movie, ok := m.Saved.SelectedMovie(); ok {
			if link, ok := movie.DetailURL(); ok {
				return m, OpenURLCmd(m.Opener, link)
			}
		}
		return m, nil
	}

	return m, m.Saved.Update(msg)
}

func (m Model) toggleBookmark() (tea.Model, tea.Cmd) {
	cur := m.Ctrl.Current()
	if cur == nil || !cur.CanBookmark() {
		return m, nil
	}

	_, err := m.Ctrl.ToggleBookmark()
	m.syncFromController()
	if err != nil {
		return m, func() tea.Msg { return ErrMsg{Err: err, Context: "saving movie"} }
	}

	status := "Saved " + cur.Title
	if !m.Ctrl.IsBookmarked() {
		status = "Removed " + cur.Title
	}
	m.StatusMsg = status
	m.StatusIsErr = false
	return m, ClearStatusCmd(3 * time.Second)
}

func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	i, _ := m.Ctrl.PendingDelete()
	var title string
	if i >= 0 && i < len(m.Ctrl.Saved()) {
		title = m.Ctrl.Saved()[i].Title
	}

	_, err := m.Ctrl.ConfirmDelete()
	m.syncFromController()
	if err != nil {
		return m, func() tea.Msg { return ErrMsg{Err: err, Context: "deleting movie"} }
	}

	m.StatusMsg = "Removed " + title
	m.StatusIsErr = false
	return m, ClearStatusCmd(3 * time.Second)
}
