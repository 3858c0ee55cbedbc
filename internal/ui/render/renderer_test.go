package render

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/kk-code-lab/vsheet/internal/config"
	"github.com/kk-code-lab/vsheet/internal/loader"
	"github.com/kk-code-lab/vsheet/internal/logging"
	statepkg "github.com/kk-code-lab/vsheet/internal/state"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func screenText(screen tcell.SimulationScreen) string {
	cells, w, h := screen.GetContents()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := cells[y*w+x]
			if len(cell.Runes) > 0 {
				sb.WriteRune(cell.Runes[0])
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func pairState(n int) *statepkg.AppState {
	pairs := make([]statepkg.Pair, n)
	for i := range pairs {
		name := string(rune('a'+i)) + ".mp4"
		pairs[i] = statepkg.Pair{
			VideoPath: "/lib/" + name,
			ImagePath: "/lib/screens/" + name + ".jpg",
		}
	}
	return statepkg.NewAppState("/lib", "/lib/screens", pairs)
}

func TestRenderNothingToProcess(t *testing.T) {
	screen := simScreen(t, 40, 10)
	r := NewRenderer(screen)

	r.Render(pairState(0))

	if !strings.Contains(screenText(screen), "Nothing to process") {
		t.Error("expected empty-folder terminal state")
	}
}

func TestRenderLoadingBanner(t *testing.T) {
	screen := simScreen(t, 40, 10)
	r := NewRenderer(screen)

	r.Render(pairState(3))

	if !strings.Contains(screenText(screen), "Loading images… (0/3)") {
		t.Errorf("expected loading banner, got:\n%s", screenText(screen))
	}
}

func TestRenderImageAsHalfBlocks(t *testing.T) {
	screen := simScreen(t, 40, 12)
	r := NewRenderer(screen)

	state := pairState(1)
	state.BeginSession(uuid.New())
	state.BoxW, state.BoxH = ImageBox(40, 12)

	src := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 10, B: 10, A: 255})
		}
	}
	reducer := statepkg.NewStateReducer(config.Default(), logging.Discard(), nil, nil)
	if _, err := reducer.Reduce(state, statepkg.DeliveriesAction{Items: []loader.Delivery{{
		Session:   state.Session,
		Position:  0,
		VideoPath: state.Pairs[0].VideoPath,
		Raw:       src,
	}}}); err != nil {
		t.Fatal(err)
	}

	r.Render(state)

	if !strings.ContainsRune(screenText(screen), '▀') {
		t.Errorf("expected half-block cells, got:\n%s", screenText(screen))
	}
	if !strings.Contains(screenText(screen), "Remaining: 1") {
		t.Errorf("expected status line, got:\n%s", screenText(screen))
	}
}

func TestRenderAllProcessed(t *testing.T) {
	screen := simScreen(t, 40, 10)
	r := NewRenderer(screen)

	state := pairState(1)
	state.Pairs = nil

	r.Render(state)

	if !strings.Contains(screenText(screen), "All files processed!") {
		t.Error("expected all-processed terminal state")
	}
}

func TestRenderTotalLoadFailure(t *testing.T) {
	screen := simScreen(t, 40, 10)
	r := NewRenderer(screen)

	state := pairState(2)
	state.LoadingDone = true
	state.LoadFailed = true

	r.Render(state)

	if !strings.Contains(screenText(screen), "No images could be loaded") {
		t.Error("expected total-failure terminal state")
	}
}

func TestRenderQuitConfirmation(t *testing.T) {
	screen := simScreen(t, 60, 10)
	r := NewRenderer(screen)

	state := pairState(1)
	state.QuitArmed = true

	r.Render(state)

	if !strings.Contains(screenText(screen), "Press y to confirm") {
		t.Error("expected quit confirmation prompt")
	}
}

func TestImageBoxReservesChrome(t *testing.T) {
	w, h := ImageBox(80, 26)
	if w != 80 || h != 48 {
		t.Errorf("got %dx%d, want 80x48", w, h)
	}
	if _, h := ImageBox(80, 1); h != 0 {
		t.Errorf("tiny screens should yield an empty box, got height %d", h)
	}
}

func TestTruncateToWidth(t *testing.T) {
	cases := []struct {
		text   string
		width  int
		expect string
	}{
		{"file.mp4", 20, "file.mp4"},
		{"verylongname", 6, "veryl…"},
		{"anything", 0, ""},
	}
	for _, tc := range cases {
		if got := truncateToWidth(tc.text, tc.width); got != tc.expect {
			t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tc.text, tc.width, got, tc.expect)
		}
	}
}
