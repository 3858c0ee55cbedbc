package app

import (
	"fmt"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/kk-code-lab/vsheet/internal/config"
	"github.com/kk-code-lab/vsheet/internal/fsops"
	"github.com/kk-code-lab/vsheet/internal/loader"
	"github.com/kk-code-lab/vsheet/internal/logging"
	statepkg "github.com/kk-code-lab/vsheet/internal/state"
	renderui "github.com/kk-code-lab/vsheet/internal/ui/render"
)

func testPairs(n int) []statepkg.Pair {
	pairs := make([]statepkg.Pair, n)
	for i := range pairs {
		pairs[i] = statepkg.Pair{
			VideoPath: fmt.Sprintf("/library/clip%02d.mp4", i),
			ImagePath: fmt.Sprintf("/library/screens/clip%02d.mp4.jpg", i),
		}
	}
	return pairs
}

func newTestApp(t *testing.T, pairs []statepkg.Pair) *Application {
	t.Helper()
	cfg := config.Default()
	log := logging.Discard()

	state := statepkg.NewAppState("/library", "/library/screens", pairs)
	state.ScreenWidth = 80
	state.ScreenHeight = 26
	state.BoxW, state.BoxH = renderui.ImageBox(80, 26)

	return &Application{
		cfg:      cfg,
		log:      log,
		state:    state,
		reducer:  statepkg.NewStateReducer(cfg, log, fsops.Mover{}, nil),
		actionCh: make(chan statepkg.Action, 10),
	}
}

func TestQuitActionStopsLoop(t *testing.T) {
	app := newTestApp(t, testPairs(2))

	if app.handleAction(statepkg.QuitAction{}) {
		t.Error("Expected no redraw for quit")
	}
	if !app.shouldQuit {
		t.Error("Expected shouldQuit to be set")
	}
}

func TestStateActionsReachTheReducer(t *testing.T) {
	app := newTestApp(t, testPairs(3))

	if !app.handleAction(statepkg.StepAction{Delta: 1}) {
		t.Fatal("Expected redraw after step")
	}
	if app.state.Selected != 1 {
		t.Errorf("Expected selection 1, got %d", app.state.Selected)
	}
}

func TestReducerErrorSurfacesInStatusLine(t *testing.T) {
	app := newTestApp(t, testPairs(1))

	app.handleAction(statepkg.RelocateAction{Key: "Z"})

	if app.state.StatusMessage == "" {
		t.Error("Expected error to land in the status line")
	}
}

func TestPlayWithEmptyListSetsStatus(t *testing.T) {
	app := newTestApp(t, nil)

	app.handleAction(statepkg.PlayAction{})

	if app.state.StatusMessage != "nothing to play" {
		t.Errorf("Unexpected status %q", app.state.StatusMessage)
	}
}

func TestPlayLaunchFailureSetsStatus(t *testing.T) {
	app := newTestApp(t, testPairs(1))
	app.cfg.PlayerCommand = []string{"/nonexistent/player-binary"}

	app.handleAction(statepkg.PlayAction{})

	if !strings.HasPrefix(app.state.StatusMessage, "player failed") {
		t.Errorf("Unexpected status %q", app.state.StatusMessage)
	}
}

func TestDrainDeliveriesAppliesBatch(t *testing.T) {
	pairs := testPairs(2)
	app := newTestApp(t, pairs)

	scheduler := loader.New(logging.Discard())
	scheduler.SetDecoder(func(path string) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 8, 4)), nil
	})
	app.session = scheduler.Start(pairs, app.state.BoxW, app.state.BoxH)
	app.state.BeginSession(app.session.ID)

	deadline := time.Now().Add(2 * time.Second)
	for !app.state.LoadingDone {
		if time.Now().After(deadline) {
			t.Fatal("Timed out waiting for deliveries")
		}
		if !app.drainDeliveries() {
			time.Sleep(5 * time.Millisecond)
		}
	}

	if got := app.state.LoadedCount(); got != 2 {
		t.Errorf("Expected 2 loaded pairs, got %d", got)
	}
	if !app.state.Displayed {
		t.Error("Expected current pair to be displayed")
	}
}
