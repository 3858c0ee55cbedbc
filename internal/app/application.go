package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/gofrs/flock"

	"github.com/kk-code-lab/vsheet/internal/config"
	"github.com/kk-code-lab/vsheet/internal/fsops"
	"github.com/kk-code-lab/vsheet/internal/journal"
	"github.com/kk-code-lab/vsheet/internal/loader"
	"github.com/kk-code-lab/vsheet/internal/match"
	statepkg "github.com/kk-code-lab/vsheet/internal/state"
	inputui "github.com/kk-code-lab/vsheet/internal/ui/input"
	renderui "github.com/kk-code-lab/vsheet/internal/ui/render"
)

// workDirName holds the instance lock and the relocation journal, created
// under the scanned root.
const workDirName = ".vsheet"

// JournalPath returns where the relocation journal lives for a root.
func JournalPath(root string) string {
	return filepath.Join(root, workDirName, "journal.db")
}

// Application represents the running app.
type Application struct {
	cfg       *config.Config
	log       *slog.Logger
	screen    tcell.Screen
	state     *statepkg.AppState
	reducer   *statepkg.StateReducer
	renderer  *renderui.Renderer
	input     *inputui.InputHandler
	actionCh  chan statepkg.Action
	scheduler *loader.Scheduler
	session   *loader.Session
	journal   *journal.Store
	lock      *flock.Flock

	shouldQuit bool
}

// NewApplication scans root, starts the image loader and takes over the
// terminal. The root must contain the screens folder somewhere beneath it;
// videos are paired from that folder's parent.
func NewApplication(cfg *config.Config, log *slog.Logger, root string) (*Application, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	workDir := filepath.Join(root, workDirName)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", workDir, err)
	}

	lock := flock.New(filepath.Join(workDir, "lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire instance lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another instance is already running on %s", root)
	}

	screensDir, err := match.FindScreensDir(root, cfg.ScreensDirName)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}
	videosDir := filepath.Dir(screensDir)

	pairs, err := match.Pairs(videosDir, screensDir, cfg.VideoExtensions, cfg.ImageExtensions, log)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	store, err := journal.Open(JournalPath(root))
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		_ = store.Close()
		_ = lock.Unlock()
		return nil, err
	}
	if err := screen.Init(); err != nil {
		_ = store.Close()
		_ = lock.Unlock()
		return nil, err
	}

	state := statepkg.NewAppState(videosDir, screensDir, pairs)
	w, h := screen.Size()
	state.ScreenWidth = w
	state.ScreenHeight = h
	state.BoxW, state.BoxH = renderui.ImageBox(w, h)

	actionCh := make(chan statepkg.Action, 10)

	reducer := statepkg.NewStateReducer(cfg, log, fsops.Mover{}, store)
	renderer := renderui.NewRenderer(screen)
	inputHandler := inputui.NewInputHandler(actionCh, cfg.DestinationKeys)
	inputHandler.SetState(state)

	scheduler := loader.New(log)
	session := scheduler.Start(pairs, state.BoxW, state.BoxH)
	state.BeginSession(session.ID)

	log.Info("session started",
		"root", root,
		"screens_dir", screensDir,
		"pairs", len(pairs),
		"session", session.ID.String())

	return &Application{
		cfg:       cfg,
		log:       log,
		screen:    screen,
		state:     state,
		reducer:   reducer,
		renderer:  renderer,
		input:     inputHandler,
		actionCh:  actionCh,
		scheduler: scheduler,
		session:   session,
		journal:   store,
		lock:      lock,
	}, nil
}

// Close cleans up resources.
func (app *Application) Close() error {
	app.screen.Fini()
	err := app.journal.Close()
	if unlockErr := app.lock.Unlock(); err == nil {
		err = unlockErr
	}
	return err
}

// Totals returns the moved and failed counts accumulated over the run.
func (app *Application) Totals() (moved, failed int) {
	return app.state.TotalMoved, app.state.TotalFailed
}
