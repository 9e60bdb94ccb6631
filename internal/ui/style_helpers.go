package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// titledBox draws body inside a rounded border with title set into the top
// edge, the way both views frame their panels. width is the outer width.
func titledBox(title, body string, width int, border lipgloss.Color, titleStyle lipgloss.Style) string {
	if width < 4 {
		width = 4
	}
	inner := width - 2
	b := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(border)

	label := ""
	if title != "" {
		label = titleStyle.Render(truncate(" "+title+" ", inner-1))
	}
	rest := max(inner-1-lipgloss.Width(label), 0)
	top := edge.Render(b.TopLeft+b.Top) + label + edge.Render(strings.Repeat(b.Top, rest)+b.TopRight)

	content := lipgloss.NewStyle().
		Border(b, false, true, true, true).
		BorderForeground(border).
		Width(inner).
		Render(body)
	return top + "\n" + content
}

// truncate cuts s to at most width terminal cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(s)
}

// fillLine renders text in style, padded or cut to exactly width cells so
// the style's background covers the whole span.
func fillLine(text string, width int, style lipgloss.Style) string {
	if width <= 0 {
		return ""
	}
	return style.Width(width).MaxWidth(width).Render(truncate(text, width))
}

// spread places left and right on one line of the given width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return truncate(left+" "+right, width)
	}
	return left + strings.Repeat(" ", gap) + right
}
