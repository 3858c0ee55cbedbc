package state

import (
	"context"
	"log/slog"

	"github.com/kk-code-lab/vsheet/internal/config"
	"github.com/kk-code-lab/vsheet/internal/imaging"
	"github.com/kk-code-lab/vsheet/internal/journal"
	"github.com/kk-code-lab/vsheet/internal/loader"
)

// Mover is the file-move collaborator: an atomic rename of src into dstDir.
// Per-file failures come back as errors; they are counted, never fatal.
type Mover interface {
	Move(src, dstDir string) error
}

// Recorder persists relocations for later review. Optional.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// StateReducer applies actions to AppState. All mutation of the pair list,
// the cache, the selection and the moved set happens here, on the
// interactive goroutine.
type StateReducer struct {
	cfg      *config.Config
	log      *slog.Logger
	mover    Mover
	recorder Recorder
}

// NewStateReducer wires the reducer with its collaborators. recorder may be
// nil.
func NewStateReducer(cfg *config.Config, log *slog.Logger, mover Mover, recorder Recorder) *StateReducer {
	return &StateReducer{cfg: cfg, log: log, mover: mover, recorder: recorder}
}

// Reduce applies one action and returns the updated state.
func (r *StateReducer) Reduce(state *AppState, action Action) (*AppState, error) {
	switch a := action.(type) {

	// ===== NAVIGATION =====

	case StepAction:
		if len(state.Pairs) == 0 {
			return state, nil
		}
		idx := state.Selected + a.Delta
		if idx < 0 {
			idx = 0
		}
		if idx > len(state.Pairs)-1 {
			idx = len(state.Pairs) - 1
		}
		state.Selected = idx
		state.StatusMessage = ""
		r.ensureFitted(state)
		return state, nil

	case ShowAction:
		if a.Index < 0 || a.Index >= len(state.Pairs) {
			return state, nil
		}
		state.Selected = a.Index
		r.ensureFitted(state)
		return state, nil

	// ===== VIEWPORT =====

	case ResizeViewportAction:
		state.ScreenWidth = a.ScreenWidth
		state.ScreenHeight = a.ScreenHeight
		state.BoxW = a.BoxW
		state.BoxH = a.BoxH
		// Fitted forms are sized for the old box; raw decodes stay usable.
		for _, entry := range state.cache {
			entry.fitted = nil
			entry.boxW = 0
			entry.boxH = 0
		}
		r.ensureFitted(state)
		return state, nil

	// ===== LOADER DELIVERIES =====

	case DeliveriesAction:
		for _, item := range a.Items {
			r.applyDelivery(state, item)
		}
		return state, nil

	// ===== RELOCATION =====

	case RelocateAction:
		return state, r.relocate(state, a.Key, a.IncludePreceding)

	// ===== APPLICATION =====

	case ArmQuitAction:
		state.QuitArmed = true
		return state, nil

	case CancelQuitAction:
		state.QuitArmed = false
		return state, nil

	case StatusAction:
		state.StatusMessage = a.Message
		return state, nil
	}

	return state, nil
}

// applyDelivery folds one loader delivery into the cache. Deliveries from a
// stale session and deliveries for already-relocated pairs are dropped.
func (r *StateReducer) applyDelivery(state *AppState, item loader.Delivery) {
	if item.Session != state.Session {
		r.log.Debug("discarding stale delivery", "session", item.Session, "position", item.Position)
		return
	}

	if item.Done {
		state.LoadingDone = true
		if state.LoadedCount() == 0 {
			state.LoadFailed = true
			r.log.Error("load finished with zero decoded images")
		}
		return
	}

	if state.pairIndex(item.VideoPath) < 0 {
		// Relocated while the loader was still working on it.
		return
	}

	entry := state.entryFor(item.VideoPath)
	entry.raw = item.Raw
	if item.Fitted != nil && item.BoxW == state.BoxW && item.BoxH == state.BoxH {
		entry.fitted = item.Fitted
		entry.boxW = item.BoxW
		entry.boxH = item.BoxH
	}

	// Show the very first usable image immediately instead of waiting for
	// the whole batch.
	if pair := state.CurrentPair(); pair != nil && pair.VideoPath == item.VideoPath {
		r.ensureFitted(state)
	}
}

// ensureFitted makes sure the selected pair has a fitted image for the
// current box, resizing the raw decode on demand and caching the result.
func (r *StateReducer) ensureFitted(state *AppState) {
	pair := state.CurrentPair()
	if pair == nil {
		return
	}
	entry := state.cache[pair.VideoPath]
	if entry == nil || entry.raw == nil {
		return
	}
	if entry.fitted == nil || entry.boxW != state.BoxW || entry.boxH != state.BoxH {
		fitted, ok := imaging.Fit(entry.raw, state.BoxW, state.BoxH)
		if !ok {
			// Box not laid out yet; retry after the next resize event.
			return
		}
		entry.fitted = fitted
		entry.boxW = state.BoxW
		entry.boxH = state.BoxH
	}
	state.Displayed = true
}
