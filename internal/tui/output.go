package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/x/ansi"
)

// OutputView displays the text of the last command in a read-only viewport.
type OutputView struct {
	viewport viewport.Model
	title    string
	content  string
	width    int
}

// NewOutputView creates an empty output view.
func NewOutputView() *OutputView {
	return &OutputView{viewport: viewport.New(80, 10)}
}

// SetContent replaces the title and text.
func (o *OutputView) SetContent(title, content string) {
	o.title = title
	o.content = content
	o.refresh()
	o.viewport.GotoTop()
}

// SetTitle replaces only the title.
func (o *OutputView) SetTitle(title string) {
	o.title = title
}

// HasContent reports whether any text is shown.
func (o *OutputView) HasContent() bool {
	return o.content != ""
}

// SetSize updates dimensions.
func (o *OutputView) SetSize(width, height int) {
	o.width = width
	o.viewport.Width = width
	o.viewport.Height = height
	o.refresh()
}

// ScrollUp scrolls the viewport up.
func (o *OutputView) ScrollUp() {
	o.viewport.ScrollUp(1)
}

// ScrollDown scrolls the viewport down.
func (o *OutputView) ScrollDown() {
	o.viewport.ScrollDown(1)
}

// refresh truncates long lines to the view width; CLI output may carry
// its own colors, so truncation has to be escape-aware.
func (o *OutputView) refresh() {
	if o.width <= 0 {
		o.viewport.SetContent(o.content)
		return
	}
	lines := strings.Split(o.content, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, o.width, "…")
	}
	o.viewport.SetContent(strings.Join(lines, "\n"))
}

// View renders the title rule and the text.
func (o *OutputView) View(width int) string {
	title := o.title
	if title == "" {
		title = "Output"
	}
	rule := " " + sectionHeaderStyle.Render(title) + " "
	if pad := width - ansi.StringWidth(rule) - 2; pad > 0 {
		rule = dimStyle.Render("──") + rule + dimStyle.Render(strings.Repeat("─", pad))
	}
	if o.content == "" {
		return rule + "\n" + dimStyle.Render(" No command run yet.")
	}
	return rule + "\n" + o.viewport.View()
}
