package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/tui/styles"
	"github.com/sahilm/fuzzy"
)

// Layout constants for the saved list
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title line plus blank line
	headerLines = 2
)

// SavedList is the scrollable, filterable list of saved movies
type SavedList struct {
	movies []domain.SavedMovie

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Index of the movie awaiting delete confirmation, -1 for none
	pending int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	matches      fuzzy.Matches // nil when no filter applies
}

// NewSavedList creates an empty saved list
func NewSavedList() *SavedList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle

	return &SavedList{
		filterInput: ti,
		pending:     -1,
	}
}

// SetMovies replaces the list contents, keeping the cursor in range
func (l *SavedList) SetMovies(movies []domain.SavedMovie) {
	l.movies = movies
	l.applyFilter()
	l.clampCursor()
}

// SetSize updates the component dimensions
func (l *SavedList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.recalcMaxVisible()
}

// SetFocused sets whether the list has keyboard focus
func (l *SavedList) SetFocused(focused bool) {
	l.focused = focused
}

// SetPending marks the movie at original index i for deletion, -1 clears
func (l *SavedList) SetPending(i int) {
	l.pending = i
}

// IsFiltering returns true while the filter input has focus
func (l *SavedList) IsFiltering() bool {
	return l.filterActive
}

// ClearFilter drops the filter and shows all movies
func (l *SavedList) ClearFilter() {
	l.filterActive = false
	l.filterInput.SetValue("")
	l.filterInput.Blur()
	l.matches = nil
	l.recalcMaxVisible()
	l.clampCursor()
}

// ItemCount returns the number of visible rows
func (l *SavedList) ItemCount() int {
	if l.matches != nil {
		return len(l.matches)
	}
	return len(l.movies)
}

// SelectedIndex returns the index of the selected movie in the unfiltered list
func (l *SavedList) SelectedIndex() (int, bool) {
	if l.ItemCount() == 0 {
		return -1, false
	}
	return l.mapIndex(l.cursor), true
}

// SelectedMovie returns the selected movie
func (l *SavedList) SelectedMovie() (domain.SavedMovie, bool) {
	i, ok := l.SelectedIndex()
	if !ok {
		return domain.SavedMovie{}, false
	}
	return l.movies[i], true
}

// Update handles navigation and filter input
func (l *SavedList) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if l.filterActive {
		switch keyMsg.String() {
		case "esc":
			l.ClearFilter()
			return nil
		case "enter":
			// Keep the filter, return keys to the list
			l.filterActive = false
			l.filterInput.Blur()
			return nil
		case "up", "down":
			// Navigation works while typing
		default:
			var cmd tea.Cmd
			l.filterInput, cmd = l.filterInput.Update(msg)
			l.applyFilter()
			l.cursor = 0
			l.offset = 0
			return cmd
		}
	}

	switch {
	case key.Matches(keyMsg, SavedListKeys.Up):
		l.moveCursor(-1)
	case key.Matches(keyMsg, SavedListKeys.Down):
		l.moveCursor(1)
	case key.Matches(keyMsg, SavedListKeys.Home):
		l.cursor = 0
		l.ensureVisible()
	case key.Matches(keyMsg, SavedListKeys.End):
		l.cursor = max(l.ItemCount()-1, 0)
		l.ensureVisible()
	case key.Matches(keyMsg, SavedListKeys.Filter):
		l.filterActive = true
		l.recalcMaxVisible()
		return l.filterInput.Focus()
	case key.Matches(keyMsg, SavedListKeys.Escape):
		if l.matches != nil {
			l.ClearFilter()
		}
	}
	return nil
}

func (l *SavedList) moveCursor(delta int) {
	l.cursor += delta
	l.clampCursor()
}

func (l *SavedList) clampCursor() {
	l.cursor = max(0, min(l.cursor, l.ItemCount()-1))
	l.ensureVisible()
}

func (l *SavedList) ensureVisible() {
	if l.maxVisible <= 0 {
		return
	}
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxVisible {
		l.offset = l.cursor - l.maxVisible + 1
	}
}

func (l *SavedList) recalcMaxVisible() {
	l.maxVisible = l.height - BorderHeight - headerLines
	if l.filterActive || l.filterInput.Value() != "" {
		l.maxVisible--
	}
	l.maxVisible = max(l.maxVisible, 1)
}

func (l *SavedList) applyFilter() {
	query := strings.TrimSpace(l.filterInput.Value())
	if query == "" {
		l.matches = nil
		return
	}

	titles := make([]string, len(l.movies))
	for i, m := range l.movies {
		titles[i] = strings.ToLower(m.Title)
	}
	l.matches = fuzzy.Find(strings.ToLower(query), titles)
	if l.matches == nil {
		l.matches = fuzzy.Matches{}
	}
}

func (l *SavedList) mapIndex(i int) int {
	if l.matches != nil && i < len(l.matches) {
		return l.matches[i].Index
	}
	return i
}

// View renders the list
func (l *SavedList) View() string {
	style := styles.InactiveBorder
	if l.focused {
		style = styles.ActiveBorder
	}

	itemWidth := max(l.width-BorderWidth, 10)

	var b strings.Builder
	b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("Saved (%d)", len(l.movies))))
	b.WriteString("\n")

	if l.filterActive || l.filterInput.Value() != "" {
		b.WriteString(l.filterInput.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	count := l.ItemCount()
	if count == 0 {
		if l.matches != nil {
			b.WriteString(styles.DimStyle.Render("No matches"))
		} else {
			b.WriteString(styles.DimStyle.Render("Nothing saved yet"))
		}
	}

	end := min(l.offset+l.maxVisible, count)
	for i := l.offset; i < end; i++ {
		b.WriteString(l.renderRow(i, itemWidth))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return style.
		Width(max(l.width-BorderWidth, 10)).
		Height(max(l.height-BorderHeight, 1)).
		Render(b.String())
}

func (l *SavedList) renderRow(i, width int) string {
	idx := l.mapIndex(i)
	m := l.movies[idx]
	selected := i == l.cursor && l.focused

	year := " (" + m.Year + ")"
	title := styles.Truncate(m.Title, max(width-len(year)-2, 4))

	if idx == l.pending {
		return styles.PendingDeleteStyle.Render(title + year)
	}

	var matched []int
	if l.matches != nil {
		matched = l.matches[i].MatchedIndexes
	}
	return highlightMatches(title, matched, selected) + styles.DimStyle.Render(year)
}

// highlightMatches renders text with fuzzy-matched characters emphasized
func highlightMatches(text string, matchedIndexes []int, selected bool) string {
	base := styles.NormalItemStyle.UnsetPadding()
	match := styles.MatchHighlightStyle
	if selected {
		base = styles.SelectedItemStyle.UnsetPadding()
		match = styles.MatchHighlightSelectedStyle
	}

	if len(matchedIndexes) == 0 {
		return base.Render(text)
	}

	matchSet := make(map[int]bool, len(matchedIndexes))
	for _, idx := range matchedIndexes {
		matchSet[idx] = true
	}

	// Batch consecutive characters with the same style. Indexes are byte
	// offsets into the title.
	var out strings.Builder
	var run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			out.WriteString(match.Render(run.String()))
		} else {
			out.WriteString(base.Render(run.String()))
		}
		run.Reset()
	}

	for byteIdx, r := range text {
		isMatch := matchSet[byteIdx]
		if isMatch != runMatched {
			flush()
			runMatched = isMatch
		}
		run.WriteRune(r)
	}
	flush()

	return out.String()
}
