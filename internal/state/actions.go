package state

import "github.com/kk-code-lab/vsheet/internal/loader"

// Action is the base interface for all state mutations
type Action interface{}

// ===== NAVIGATION ACTIONS =====

// StepAction moves the selection by Delta, clamped to the list. No
// wraparound.
type StepAction struct {
	Delta int
}

// ShowAction selects an absolute index. Out-of-range indices are ignored.
type ShowAction struct {
	Index int
}

// ===== VIEWPORT ACTIONS =====

// ResizeViewportAction records a new screen size and image box. Cached
// fitted images are invalidated; raw decodes are kept.
type ResizeViewportAction struct {
	ScreenWidth  int
	ScreenHeight int
	BoxW         int
	BoxH         int
}

// ===== LOADER ACTIONS =====

// DeliveriesAction carries everything drained from the loader channel on one
// poll tick.
type DeliveriesAction struct {
	Items []loader.Delivery
}

// ===== RELOCATION ACTIONS =====

// RelocateAction moves the current pair (or the current pair and everything
// before it) into the destination-key folder and drops the moved pairs from
// the list.
type RelocateAction struct {
	Key              string
	IncludePreceding bool
}

// ===== APPLICATION ACTIONS =====

// PlayAction asks the app layer to launch the external player; it never
// reaches the reducer.
type PlayAction struct{}

// QuitAction ends the run; handled by the app layer.
type QuitAction struct{}

// ArmQuitAction puts the UI into quit-confirmation mode.
type ArmQuitAction struct{}

// CancelQuitAction leaves quit-confirmation mode.
type CancelQuitAction struct{}

// StatusAction sets a transient status-line message.
type StatusAction struct {
	Message string
}
