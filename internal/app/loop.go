package app

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kk-code-lab/vsheet/internal/loader"
	statepkg "github.com/kk-code-lab/vsheet/internal/state"
)

// Run drives the interactive loop until the user quits. Renders are
// coalesced: any number of state changes between blocking points produce a
// single redraw.
func (app *Application) Run() {
	app.renderer.Render(app.state)
	renderPending := false

	eventChan := make(chan tcell.Event)
	go func() {
		for {
			eventChan <- app.screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(time.Duration(app.cfg.PollIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	for !app.shouldQuit {
		if renderPending {
			app.renderer.Render(app.state)
			renderPending = false
		}

		select {
		case ev := <-eventChan:
			if app.handleEvent(ev) {
				renderPending = true
			}
		case <-ticker.C:
			if app.drainDeliveries() {
				renderPending = true
			}
		case action := <-app.actionCh:
			if app.handleAction(action) {
				renderPending = true
			}
		}

		if app.processActions() {
			renderPending = true
		}
	}
}

func (app *Application) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventResize:
		if !app.input.ProcessEvent(ev) {
			app.shouldQuit = true
		}
	case *tcell.EventInterrupt:
		return true
	default:
		return false
	}
	return true
}

// drainDeliveries hands everything the loader produced since the last tick
// to the reducer in one batch.
func (app *Application) drainDeliveries() bool {
	items := loader.Drain(app.session.Deliveries)
	if len(items) == 0 {
		return false
	}
	return app.handleAction(statepkg.DeliveriesAction{Items: items})
}

func (app *Application) processActions() bool {
	changed := false
	for {
		select {
		case action := <-app.actionCh:
			if app.handleAction(action) {
				changed = true
			}
		default:
			return changed
		}
	}
}
