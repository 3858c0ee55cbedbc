package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	statepkg "github.com/kk-code-lab/vsheet/internal/state"
)

// Renderer handles all UI rendering
type Renderer struct {
	screen tcell.Screen
	theme  ColorTheme
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
	}
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state *statepkg.AppState) {
	r.screen.Clear()

	w, h := r.screen.Size()
	rows := h - 2
	if rows < 0 {
		rows = 0
	}

	r.drawHeader(state, w)

	switch {
	case state.InitialCount == 0:
		r.drawCentered(w, rows, "Nothing to process", r.theme.WarnFg)
	case len(state.Pairs) == 0:
		r.drawCentered(w, rows, "All files processed!", r.theme.HeaderFg)
	case state.LoadFailed:
		r.drawCentered(w, rows, "No images could be loaded", r.theme.WarnFg)
	default:
		r.drawViewport(state, w, rows)
	}

	r.drawStatusLine(state, w, h)
	r.screen.Show()
}

func (r *Renderer) drawViewport(state *statepkg.AppState, w, rows int) {
	if img := state.CurrentImage(); img != nil {
		r.drawImage(img, w, 1, rows)
		return
	}

	if !state.Displayed && !state.LoadingDone {
		msg := fmt.Sprintf("Loading images… (%d/%d)", state.LoadedCount(), len(state.Pairs))
		r.drawCentered(w, rows, msg, r.theme.PlaceholdFg)
		return
	}
	// This position never decoded, or is waiting to be refitted.
	r.drawCentered(w, rows, "Loading…", r.theme.PlaceholdFg)
}

func (r *Renderer) drawHeader(state *statepkg.AppState, w int) {
	style := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)
	endX := r.drawTextLine(0, 0, w, "vsheet", style.Bold(true))
	if endX < w {
		endX = r.drawTextLine(endX, 0, w-endX, " "+state.RootPath, style)
	}
	for x := endX; x < w; x++ {
		r.screen.SetContent(x, 0, ' ', nil, style)
	}
}

func (r *Renderer) drawCentered(w, rows int, text string, fg tcell.Color) {
	if rows <= 0 {
		return
	}
	y := 1 + rows/2
	x := (w - runewidth.StringWidth(text)) / 2
	if x < 0 {
		x = 0
	}
	r.drawTextLine(x, y, w-x, text, tcell.StyleDefault.Foreground(fg))
}

func (r *Renderer) drawStatusLine(state *statepkg.AppState, w, h int) {
	y := h - 1
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.StatusBg).Foreground(r.theme.StatusFg)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}

	text := r.statusText(state)
	r.drawTextLine(0, y, w, " "+text, style)
}

func (r *Renderer) statusText(state *statepkg.AppState) string {
	if state.QuitArmed {
		return "Quit? Press y to confirm, any other key to cancel"
	}

	var parts []string
	if pair := state.CurrentPair(); pair != nil {
		parts = append(parts,
			fmt.Sprintf("Remaining: %d", state.Remaining()),
			filepath.Base(pair.VideoPath))
	}
	if s := state.LastSummary; s != nil {
		parts = append(parts, fmt.Sprintf("→%s moved %d failed %d", s.Destination, s.Moved, s.Failed))
	}
	if state.StatusMessage != "" {
		parts = append(parts, state.StatusMessage)
	}
	if len(parts) == 0 {
		return "q to quit"
	}
	return strings.Join(parts, " | ")
}
