package controller

import "github.com/charmbracelet/lipgloss"

// animateScroll returns a width-wide window sliding over text once offset
// passes a short pause. Text that fits is returned unchanged.
func animateScroll(text string, width int, offset int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const pause = 5

	if offset < pause {
		return truncate(text, width)
	}

	runes := []rune(text + "   ")
	start := (offset - pause) % len(runes)

	window := make([]rune, 0, width)
	for i := range width {
		window = append(window, runes[(start+i)%len(runes)])
	}

	return string(window)
}

// truncate cuts text to width display cells, ending in an ellipsis when cut.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}
