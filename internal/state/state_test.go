package state

import (
	"fmt"

	"github.com/kk-code-lab/vsheet/internal/config"
	"github.com/kk-code-lab/vsheet/internal/logging"
)

// Shared fixtures for the reducer tests.

type moveCall struct {
	src    string
	dstDir string
}

// fakeMover counts moves without touching a filesystem. Failures are keyed
// by source path.
type fakeMover struct {
	calls []moveCall
	fail  map[string]error
}

func (m *fakeMover) Move(src, dstDir string) error {
	if err, ok := m.fail[src]; ok {
		return err
	}
	m.calls = append(m.calls, moveCall{src: src, dstDir: dstDir})
	return nil
}

func (m *fakeMover) moved(src string) bool {
	for _, c := range m.calls {
		if c.src == src {
			return true
		}
	}
	return false
}

func testState(n int) *AppState {
	pairs := make([]Pair, n)
	for i := range pairs {
		name := fmt.Sprintf("clip%02d.mp4", i)
		pairs[i] = Pair{
			VideoPath: "/library/" + name,
			ImagePath: "/library/screens/" + name + ".jpg",
		}
	}
	state := NewAppState("/library", "/library/screens", pairs)
	state.ScreenWidth = 80
	state.ScreenHeight = 26
	state.BoxW = 80
	state.BoxH = 48
	return state
}

func testReducer(mover Mover) *StateReducer {
	return NewStateReducer(config.Default(), logging.Discard(), mover, nil)
}
