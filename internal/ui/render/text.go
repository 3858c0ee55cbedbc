package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawTextLine writes text at (x, y) clipped to maxWidth cells and returns
// the x position after the last written cell.
func (r *Renderer) drawTextLine(x, y, maxWidth int, text string, style tcell.Style) int {
	pos := x
	for _, ru := range truncateToWidth(text, maxWidth) {
		w := runewidth.RuneWidth(ru)
		if w <= 0 {
			continue
		}
		r.screen.SetContent(pos, y, ru, nil, style)
		pos += w
	}
	return pos
}

// truncateToWidth shortens text to maxWidth cells, ending with an ellipsis
// when anything was cut.
func truncateToWidth(text string, maxWidth int) string {
	if maxWidth <= 0 || text == "" {
		return ""
	}
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}

	width := 0
	out := make([]rune, 0, maxWidth)
	for _, ru := range text {
		w := runewidth.RuneWidth(ru)
		if width+w > maxWidth-1 {
			break
		}
		out = append(out, ru)
		width += w
	}
	return string(out) + "…"
}
