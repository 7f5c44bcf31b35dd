package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reelfind/internal/controller"
	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/service"
	"github.com/mmcdole/reelfind/internal/tui/components"
	"github.com/mmcdole/reelfind/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
	StateConfirmDelete
)

// Pane identifies the part of the screen with keyboard focus
type Pane int

const (
	PaneInput Pane = iota
	PaneResult
	PaneSaved
)

// spinnerInterval is the animation frame delay
const spinnerInterval = 100 * time.Millisecond

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool
	Focus Pane

	// Services
	Ctrl      *controller.Controller
	Poller    *service.JobPoller
	Previewer domain.ClipPreviewer // nil disables clip previews
	Opener    domain.URLOpener

	// UI Components
	Input     components.URLInput
	Inspector components.Inspector
	Saved     *components.SavedList

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model
func NewModel(
	ctrl *controller.Controller,
	poller *service.JobPoller,
	previewer domain.ClipPreviewer,
	opener domain.URLOpener,
) Model {
	m := Model{
		State:     StateBrowsing,
		Focus:     PaneInput,
		Ctrl:      ctrl,
		Poller:    poller,
		Previewer: previewer,
		Opener:    opener,
		Input:     components.NewURLInput(),
		Inspector: components.NewInspector(),
		Saved:     components.NewSavedList(),
	}
	m.Input.Focus()
	ctrl.LoadSaved()
	m.syncFromController()
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		TickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		m.Inspector.SetLoading(m.Ctrl.Loading(), m.SpinnerFrame)
		return m, TickCmd(spinnerInterval)

	case JobStartedMsg:
		ok := m.Ctrl.JobStarted(msg.Job, msg.Err)
		m.syncFromController()
		if !ok {
			return m, nil
		}
		return m, CheckJobCmd(m.Poller, m.Ctrl.Job())

	case PollDueMsg:
		// The chain for a superseded job ends here
		if msg.Job.Token != m.Ctrl.Job().Token {
			slog.Debug("dropping poll for stale job", "jobID", msg.Job.ID)
			return m, nil
		}
		return m, CheckJobCmd(m.Poller, msg.Job)

	case StepMsg:
		more := m.Ctrl.ApplyStep(msg.Job, msg.Step, msg.Err)
		m.syncFromController()
		if !more {
			return m, nil
		}
		// Next check is scheduled only now that this one is handled
		return m, SchedulePollCmd(msg.Job, m.Poller.Interval())

	case PreviewLoadedMsg:
		if m.Ctrl.Loading() && msg.URL == m.Ctrl.Job().URL {
			m.Inspector.SetPreview(msg.Preview)
		}
		return m, nil

	case URLOpenedMsg:
		m.StatusMsg = "Opened " + msg.URL
		m.StatusIsErr = false
		return m, ClearStatusCmd(3 * time.Second)

	case ErrMsg:
		m.StatusMsg = msg.Error()
		m.StatusIsErr = true
		return m, ClearStatusCmd(5 * time.Second)

	case StatusMsg:
		m.StatusMsg = msg.Message
		m.StatusIsErr = msg.IsError
		return m, ClearStatusCmd(3 * time.Second)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	// Cursor blink and other component messages
	var cmd tea.Cmd
	m.Input, cmd, _ = m.Input.Update(msg)
	return m, cmd
}

// submit starts identification of the URL in the input box
func (m Model) submit() (tea.Model, tea.Cmd) {
	job, err := m.Ctrl.BeginSubmit(m.Input.Value())
	m.Inspector.SetPreview(domain.ClipPreview{})
	m.syncFromController()
	if err != nil {
		return m, nil
	}

	m.setFocus(PaneResult)
	return m, tea.Batch(
		StartJobCmd(m.Poller, job),
		FetchPreviewCmd(m.Previewer, job.URL),
	)
}

// syncFromController copies controller state into the components
func (m *Model) syncFromController() {
	m.Inspector.SetLoading(m.Ctrl.Loading(), m.SpinnerFrame)
	m.Inspector.SetError(m.Ctrl.Err())
	m.Inspector.SetResult(m.Ctrl.Current(), m.Ctrl.IsBookmarked())
	m.Saved.SetMovies(m.Ctrl.Saved())

	if i, ok := m.Ctrl.PendingDelete(); ok {
		m.Saved.SetPending(i)
	} else {
		m.Saved.SetPending(-1)
	}
}

func (m *Model) setFocus(p Pane) {
	m.Focus = p
	m.Saved.SetFocused(p == PaneSaved)
	if p == PaneInput {
		m.Input.Focus()
	} else {
		m.Input.Blur()
	}
}

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	if m.State == StateConfirmDelete {
		return m.renderDeleteConfirmation()
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.Inspector.View(),
		m.Saved.View(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.Input.View(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderFooter() string {
	// Left side: spinner while working, otherwise the status message
	var left string
	if m.Ctrl.Loading() {
		left = styles.RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Identifying...")
	} else if m.StatusMsg != "" {
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	}

	// Center section: hints for the focused pane
	var hints []string
	hint := func(k, desc string) {
		hints = append(hints, styles.HelpKeyStyle.Render(k)+styles.HelpDescStyle.Render(" "+desc))
	}
	switch m.Focus {
	case PaneInput:
		hint("enter", "identify")
		hint("tab", "result")
	case PaneResult:
		if cur := m.Ctrl.Current(); cur != nil && cur.CanBookmark() {
			hint("b", "save")
			hint("o", "open")
		}
		hint("tab", "saved")
	case PaneSaved:
		hint("/", "filter")
		hint("o", "open")
		hint("d", "delete")
		hint("tab", "link")
	}
	center := strings.Join(hints, "  ")

	right := styles.HelpKeyStyle.Render("?") + styles.HelpDescStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	if leftWidth+centerWidth+rightWidth >= m.Width {
		gap := max(m.Width-leftWidth-rightWidth, 0)
		return left + strings.Repeat(" ", gap) + right
	}

	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
LINK                            SAVED MOVIES
  enter      Identify movie       j/k        Up/down
  i          Edit link            /          Filter
  tab        Switch pane          o/enter    Open page
                                  d          Delete
RESULT
  b          Save / unsave      OTHER
  o          Open page            q          Quit
                                  ?          This help

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}

// renderDeleteConfirmation renders the delete confirmation modal
func (m Model) renderDeleteConfirmation() string {
	title := "this movie"
	if i, ok := m.Ctrl.PendingDelete(); ok && i < len(m.Ctrl.Saved()) {
		saved := m.Ctrl.Saved()[i]
		title = fmt.Sprintf("%s (%s)", saved.Title, saved.Year)
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		styles.ModalTitleStyle.Render("Remove from saved?"),
		styles.SubtitleStyle.Render(styles.Truncate(title, 40)),
		"",
		"[Y] Yes      [N] No",
	)

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(content))
}
