package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	statepkg "github.com/kk-code-lab/vsheet/internal/state"
)

func newHandler(t *testing.T, state *statepkg.AppState) (*InputHandler, chan statepkg.Action) {
	t.Helper()
	actionChan := make(chan statepkg.Action, 1)
	handler := NewInputHandler(actionChan, []string{"K", "D"})
	handler.SetState(state)
	return handler, actionChan
}

func emitted(t *testing.T, actionChan chan statepkg.Action) statepkg.Action {
	t.Helper()
	select {
	case action := <-actionChan:
		return action
	default:
		t.Fatal("Expected an action to be emitted")
		return nil
	}
}

func TestArrowKeysStep(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRight, 0, 0))
	if step, ok := emitted(t, actionChan).(statepkg.StepAction); !ok || step.Delta != 1 {
		t.Fatalf("Expected StepAction{Delta: 1} for right arrow")
	}

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyLeft, 0, 0))
	if step, ok := emitted(t, actionChan).(statepkg.StepAction); !ok || step.Delta != -1 {
		t.Fatalf("Expected StepAction{Delta: -1} for left arrow")
	}
}

func TestLowercaseDestinationKeyRelocatesCurrent(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'k', 0))

	relocate, ok := emitted(t, actionChan).(statepkg.RelocateAction)
	if !ok {
		t.Fatalf("Expected RelocateAction for 'k'")
	}
	if relocate.Key != "K" || relocate.IncludePreceding {
		t.Errorf("Expected Key=K IncludePreceding=false, got %+v", relocate)
	}
}

func TestUppercaseDestinationKeyIncludesPreceding(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'D', 0))

	relocate, ok := emitted(t, actionChan).(statepkg.RelocateAction)
	if !ok {
		t.Fatalf("Expected RelocateAction for 'D'")
	}
	if relocate.Key != "D" || !relocate.IncludePreceding {
		t.Errorf("Expected Key=D IncludePreceding=true, got %+v", relocate)
	}
}

func TestUnboundRuneEmitsNothing(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'x', 0))

	select {
	case action := <-actionChan:
		t.Fatalf("Expected no action for unbound rune, got %T", action)
	default:
	}
}

func TestQArmsQuitConfirmation(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'q', 0))

	if _, ok := emitted(t, actionChan).(statepkg.ArmQuitAction); !ok {
		t.Fatal("Expected ArmQuitAction for 'q'")
	}
}

func TestYConfirmsArmedQuit(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{QuitArmed: true})

	cont := handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'y', 0))

	if _, ok := emitted(t, actionChan).(statepkg.QuitAction); !ok {
		t.Fatal("Expected QuitAction for 'y' while armed")
	}
	if cont {
		t.Error("Expected ProcessEvent to report shutdown")
	}
}

func TestOtherKeyCancelsArmedQuit(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{QuitArmed: true})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'k', 0))

	if _, ok := emitted(t, actionChan).(statepkg.CancelQuitAction); !ok {
		t.Fatal("Expected CancelQuitAction for non-confirming key while armed")
	}
}

func TestCtrlCQuitsWithoutConfirmation(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	cont := handler.ProcessEvent(tcell.NewEventKey(tcell.KeyCtrlC, 0, 0))

	if _, ok := emitted(t, actionChan).(statepkg.QuitAction); !ok {
		t.Fatal("Expected QuitAction for Ctrl-C")
	}
	if cont {
		t.Error("Expected ProcessEvent to report shutdown")
	}
}

func TestPEmitsPlay(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventKey(tcell.KeyRune, 'p', 0))

	if _, ok := emitted(t, actionChan).(statepkg.PlayAction); !ok {
		t.Fatal("Expected PlayAction for 'p'")
	}
}

func TestResizeEmitsViewportAction(t *testing.T) {
	handler, actionChan := newHandler(t, &statepkg.AppState{})

	handler.ProcessEvent(tcell.NewEventResize(120, 40))

	resize, ok := emitted(t, actionChan).(statepkg.ResizeViewportAction)
	if !ok {
		t.Fatal("Expected ResizeViewportAction for resize event")
	}
	if resize.ScreenWidth != 120 || resize.ScreenHeight != 40 {
		t.Errorf("Unexpected screen size %dx%d", resize.ScreenWidth, resize.ScreenHeight)
	}
	if resize.BoxW != 120 || resize.BoxH != 76 {
		t.Errorf("Unexpected box %dx%d", resize.BoxW, resize.BoxH)
	}
}
