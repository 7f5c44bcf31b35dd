package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mmcdole/reelfind/internal/domain"
	"github.com/mmcdole/reelfind/internal/tui/styles"
)

// Inspector shows the identification result, or what the job is doing
type Inspector struct {
	width  int
	height int

	loading    bool
	frame      int
	err        string
	result     *domain.MovieRecord
	bookmarked bool
	preview    domain.ClipPreview
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// SetLoading toggles the working state
func (i *Inspector) SetLoading(loading bool, frame int) {
	i.loading = loading
	i.frame = frame
}

// SetError sets the single error slot, "" clears it
func (i *Inspector) SetError(err string) {
	i.err = err
}

// SetResult sets the movie to display
func (i *Inspector) SetResult(result *domain.MovieRecord, bookmarked bool) {
	i.result = result
	i.bookmarked = bookmarked
}

// SetPreview sets the clip caption shown while loading
func (i *Inspector) SetPreview(p domain.ClipPreview) {
	i.preview = p
}

// View renders the component
func (i Inspector) View() string {
	contentWidth := max(i.width-6, 10)

	var body string
	switch {
	case i.loading:
		body = i.renderLoading(contentWidth)
	case i.err != "":
		body = styles.ErrorStyle.Render(wordWrap(i.err, contentWidth))
	case i.result != nil:
		body = i.renderResult(contentWidth)
	default:
		body = styles.DimStyle.Render("Paste a clip link and press enter to find the movie.")
	}

	titleLine := styles.AccentStyle.Render("Result")
	content := titleLine + "\n\n" + body

	return styles.InactiveBorder.
		Width(max(i.width-2, 10)).
		Height(max(i.height-2, 1)).
		Padding(0, 1).
		Render(content)
}

func (i Inspector) renderLoading(width int) string {
	var b strings.Builder
	b.WriteString(styles.RenderSpinner(i.frame))
	b.WriteString(" ")
	b.WriteString(styles.SubtitleStyle.Render("Analyzing video..."))

	if !i.preview.IsEmpty() {
		b.WriteString("\n\n")
		if i.preview.Title != "" {
			b.WriteString(styles.TitleStyle.Render(styles.Truncate(i.preview.Title, width)))
			b.WriteString("\n")
		}
		if i.preview.Description != "" {
			b.WriteString(styles.DimStyle.Render(wordWrap(i.preview.Description, width)))
		}
	}
	return b.String()
}

func (i Inspector) renderResult(width int) string {
	r := i.result
	var lines []string

	title := styles.TitleStyle.Render(r.Title)
	title += " " + styles.SubtitleStyle.Render("("+r.Year+")")
	if i.bookmarked {
		title += " " + styles.BadgeStyle.Render("SAVED")
	}
	lines = append(lines, title)

	if r.OriginalTitle != "" && r.OriginalTitle != r.Title {
		lines = append(lines, styles.DimStyle.Render(r.OriginalTitle))
	}

	var facts []string
	if rt := r.FormattedRuntime(); rt != "" {
		facts = append(facts, rt)
	}
	if rating := r.FormattedRating(); rating != "" {
		facts = append(facts, styles.RatingStyle.Render("★ "+rating))
	}
	if len(r.Genres) > 0 {
		facts = append(facts, strings.Join(r.Genres, ", "))
	}
	if len(facts) > 0 {
		lines = append(lines, styles.SubtitleStyle.Render(strings.Join(facts, " · ")))
	}

	if r.Tagline != nil && *r.Tagline != "" {
		lines = append(lines, "", lipgloss.NewStyle().Italic(true).Foreground(styles.LightGray).
			Render(wordWrap(*r.Tagline, width)))
	}

	if pct, ok := r.ConfidencePercent(); ok {
		bar := styles.RenderProgressBar(float64(pct), min(20, width))
		lines = append(lines, "", fmt.Sprintf("%s %s %d%%", styles.DimStyle.Render("Match"), bar, pct))
	}

	if r.Overview != "" {
		lines = append(lines, "", wordWrap(r.Overview, width))
	}

	lines = append(lines, "", styles.AccentStyle.Render("Where to watch"))
	if len(r.Providers) == 0 {
		lines = append(lines, styles.DimStyle.Render("No streaming data"))
	} else {
		badges := make([]string, len(r.Providers))
		for idx, p := range r.Providers {
			badges[idx] = styles.ProviderBadge(p)
		}
		lines = append(lines, strings.Join(badges, " "))
	}

	if link, ok := r.DetailURL(); ok {
		lines = append(lines, "", styles.DimStyle.Render(styles.Truncate(link, width)))
	}

	return strings.Join(lines, "\n")
}

// wordWrap wraps text at word boundaries to fit within width
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	lineLen := 0

	for i, word := range strings.Fields(text) {
		wordLen := lipgloss.Width(word)

		if lineLen+wordLen+1 > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}

		if i > 0 && lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}

		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
