package tui

// Layout proportions
const (
	InspectorPercent = 60
	MinColumnWidth   = 24

	// URL input box with its border
	InputHeight = 3

	// Single footer line
	ChromeHeight = 1
)

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := max(m.Height-InputHeight-ChromeHeight, 3)

	inspectorWidth := max(m.Width*InspectorPercent/100, MinColumnWidth)
	savedWidth := max(m.Width-inspectorWidth, MinColumnWidth)

	m.Input.SetWidth(m.Width)
	m.Inspector.SetSize(inspectorWidth, contentHeight)
	m.Saved.SetSize(savedWidth, contentHeight)
}
