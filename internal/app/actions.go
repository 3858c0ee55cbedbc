package app

import (
	"fmt"
	"path/filepath"

	"github.com/kk-code-lab/vsheet/internal/fsops"
	statepkg "github.com/kk-code-lab/vsheet/internal/state"
)

func (app *Application) handleAction(action statepkg.Action) bool {
	if action == nil {
		return false
	}

	switch action.(type) {
	case statepkg.QuitAction:
		app.shouldQuit = true
		return false
	case statepkg.PlayAction:
		return app.handlePlay()
	}

	if _, err := app.reducer.Reduce(app.state, action); err != nil {
		app.log.Error("action failed", "action", fmt.Sprintf("%T", action), "error", err)
		app.state.StatusMessage = err.Error()
	}
	return true
}

// handlePlay fires the external player and returns immediately; the viewer
// runs detached so triage can continue.
func (app *Application) handlePlay() bool {
	pair := app.state.CurrentPair()
	if pair == nil {
		app.state.StatusMessage = "nothing to play"
		return true
	}
	if err := fsops.LaunchPlayer(app.cfg.PlayerCommand, pair.VideoPath); err != nil {
		app.log.Error("player launch failed", "video", pair.VideoPath, "error", err)
		app.state.StatusMessage = fmt.Sprintf("player failed: %v", err)
		return true
	}
	app.state.StatusMessage = "playing " + filepath.Base(pair.VideoPath)
	return true
}
