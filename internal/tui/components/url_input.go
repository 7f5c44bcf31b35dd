package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reelfind/internal/tui/styles"
)

// URLInput is the clip URL entry box
type URLInput struct {
	input   textinput.Model
	width   int
	focused bool
}

// NewURLInput creates a new URL input
func NewURLInput() URLInput {
	ti := textinput.New()
	ti.Placeholder = "Paste a TikTok, Reels or Shorts link..."
	ti.CharLimit = 2048
	ti.Prompt = "› "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return URLInput{input: ti}
}

// Focus gives the input keyboard focus
func (u *URLInput) Focus() tea.Cmd {
	u.focused = true
	return u.input.Focus()
}

// Blur removes keyboard focus
func (u *URLInput) Blur() {
	u.focused = false
	u.input.Blur()
}

// Focused returns whether the input has focus
func (u URLInput) Focused() bool {
	return u.focused
}

// SetValue replaces the input text
func (u *URLInput) SetValue(s string) {
	u.input.SetValue(s)
}

// Value returns the current input text
func (u URLInput) Value() string {
	return u.input.Value()
}

// SetWidth updates the component width
func (u *URLInput) SetWidth(width int) {
	u.width = width
	// Border and prompt
	u.input.Width = max(width-6, 10)
}

// Update handles input events, returns (input, cmd, submitted)
func (u URLInput) Update(msg tea.Msg) (URLInput, tea.Cmd, bool) {
	if !u.focused {
		return u, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		return u, nil, true
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return u, cmd, false
}

// View renders the input box
func (u URLInput) View() string {
	style := styles.InactiveBorder
	if u.focused {
		style = styles.ActiveBorder
	}
	return style.Width(max(u.width-2, 10)).Render(u.input.View())
}
