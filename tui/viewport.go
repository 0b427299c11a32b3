// viewport.go provides a scrollable transcript area.
//
// The chat transcript always wraps long lines; only vertical scrolling
// is supported, which keeps the key map small.
package tui

import (
	"fmt"
	"strings"
)

// Viewport is a scrollable, wrapping text area.
type Viewport struct {
	width   int
	height  int
	content []string // logical lines, pre-wrap
	scrollY int      // offset into wrapped lines
}

// NewViewport creates a viewport with the given dimensions.
func NewViewport(width, height int) *Viewport {
	return &Viewport{width: width, height: height}
}

// SetContentLines replaces the viewport content.
func (v *Viewport) SetContentLines(lines []string) {
	v.content = lines
	v.clampScroll()
}

// SetSize updates viewport dimensions.
func (v *Viewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// ScrollUp moves the viewport up by n lines.
func (v *Viewport) ScrollUp(n int) {
	v.scrollY -= n
	v.clampScroll()
}

// ScrollDown moves the viewport down by n lines.
func (v *Viewport) ScrollDown(n int) {
	v.scrollY += n
	v.clampScroll()
}

// PageUp scrolls up by one page.
func (v *Viewport) PageUp() { v.ScrollUp(v.height) }

// PageDown scrolls down by one page.
func (v *Viewport) PageDown() { v.ScrollDown(v.height) }

// End scrolls to the bottom.
func (v *Viewport) End() {
	v.scrollY = v.maxScrollY()
}

// Render returns the visible portion of the content.
func (v *Viewport) Render() string {
	wrapped := v.wrapped()

	end := v.scrollY + v.height
	if end > len(wrapped) {
		end = len(wrapped)
	}
	var visible []string
	if v.scrollY < len(wrapped) {
		visible = wrapped[v.scrollY:end]
	}

	// Pad to fill viewport height
	out := make([]string, 0, v.height+1)
	out = append(out, visible...)
	for len(out) < v.height {
		out = append(out, "")
	}
	if ind := v.scrollIndicator(len(wrapped)); ind != "" {
		out = append(out, ind)
	}
	return strings.Join(out, "\n")
}

func (v *Viewport) wrapped() []string {
	if v.width <= 0 {
		return v.content
	}
	var wrapped []string
	for _, line := range v.content {
		for len(line) > v.width {
			wrapped = append(wrapped, line[:v.width])
			line = line[v.width:]
		}
		wrapped = append(wrapped, line)
	}
	return wrapped
}

func (v *Viewport) clampScroll() {
	if max := v.maxScrollY(); v.scrollY > max {
		v.scrollY = max
	}
	if v.scrollY < 0 {
		v.scrollY = 0
	}
}

func (v *Viewport) maxScrollY() int {
	max := len(v.wrapped()) - v.height
	if max < 0 {
		return 0
	}
	return max
}

func (v *Viewport) scrollIndicator(total int) string {
	if total <= v.height {
		return ""
	}
	pct := 0
	if total > 0 {
		pct = (v.scrollY * 100) / total
	}
	rule := v.width - 20
	if rule < 0 {
		rule = 0
	}
	return StyleDimmed.Render(fmt.Sprintf("%s %d%% (%d/%d)",
		strings.Repeat("─", rule), pct, v.scrollY+1, total))
}
