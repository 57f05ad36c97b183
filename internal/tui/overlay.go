package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const resetSGR = "\x1b[0m"

// renderOverlay draws box centered over a dimmed copy of screen. The screen
// keeps its size; rows below it are not added.
func renderOverlay(screen, box string, width, height int) string {
	rows := strings.Split(screen, "\n")
	for i := range rows {
		rows[i] = overlayDimStyle.Render(ansi.Strip(rows[i]))
	}

	boxRows := strings.Split(box, "\n")
	row := max(1, (height-len(boxRows))/2)
	col := max(1, (width-lipgloss.Width(box))/2)

	for i, line := range boxRows {
		if row+i >= len(rows) {
			break
		}
		rows[row+i] = splice(rows[row+i], line, col)
	}
	return strings.Join(rows, "\n")
}

// splice replaces the cells of bg starting at column col with fg.
func splice(bg, fg string, col int) string {
	end := col + ansi.StringWidth(fg)
	right := ""
	if w := ansi.StringWidth(bg); end < w {
		right = ansi.Cut(bg, end, w)
	}
	return ansi.Truncate(bg, col, "") + resetSGR + fg + resetSGR + right
}
