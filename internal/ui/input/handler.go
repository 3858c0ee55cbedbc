package input

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	renderui "github.com/kk-code-lab/vsheet/internal/ui/render"

	statepkg "github.com/kk-code-lab/vsheet/internal/state"
)

// InputHandler converts tcell events to Actions. Destination keys come from
// configuration: the lowercase rune relocates the current pair, the
// uppercase rune relocates the current pair and everything before it.
type InputHandler struct {
	actionChan chan statepkg.Action
	state      *statepkg.AppState
	destKeys   map[rune]string
}

// NewInputHandler creates a new input handler for the configured
// destination keys.
func NewInputHandler(actionChan chan statepkg.Action, destinationKeys []string) *InputHandler {
	destKeys := make(map[rune]string, len(destinationKeys))
	for _, key := range destinationKeys {
		destKeys[unicode.ToLower(rune(key[0]))] = key
	}
	return &InputHandler{
		actionChan: actionChan,
		destKeys:   destKeys,
	}
}

// SetState sets the state reference for mode checking
func (ih *InputHandler) SetState(state *statepkg.AppState) {
	ih.state = state
}

// ProcessEvent converts a tcell event into an Action
func (ih *InputHandler) ProcessEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.processKeyEvent(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		boxW, boxH := renderui.ImageBox(w, h)
		ih.actionChan <- statepkg.ResizeViewportAction{
			ScreenWidth:  w,
			ScreenHeight: h,
			BoxW:         boxW,
			BoxH:         boxH,
		}
		return true
	default:
		return true
	}
}

// processKeyEvent handles keyboard input
func (ih *InputHandler) processKeyEvent(ev *tcell.EventKey) bool {
	quitArmed := ih.state != nil && ih.state.QuitArmed

	if quitArmed {
		if ev.Key() == tcell.KeyRune && unicode.ToLower(ev.Rune()) == 'y' {
			ih.actionChan <- statepkg.QuitAction{}
			return false
		}
		if ev.Key() == tcell.KeyCtrlC {
			ih.actionChan <- statepkg.QuitAction{}
			return false
		}
		ih.actionChan <- statepkg.CancelQuitAction{}
		return true
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		ih.actionChan <- statepkg.QuitAction{}
		return false

	case tcell.KeyEscape:
		ih.actionChan <- statepkg.ArmQuitAction{}
		return true

	case tcell.KeyLeft:
		ih.actionChan <- statepkg.StepAction{Delta: -1}
		return true

	case tcell.KeyRight:
		ih.actionChan <- statepkg.StepAction{Delta: 1}
		return true

	case tcell.KeyHome:
		ih.actionChan <- statepkg.ShowAction{Index: 0}
		return true

	case tcell.KeyRune:
		return ih.processRune(ev.Rune())
	}

	return true
}

func (ih *InputHandler) processRune(r rune) bool {
	switch r {
	case 'q':
		ih.actionChan <- statepkg.ArmQuitAction{}
		return true
	case 'p':
		ih.actionChan <- statepkg.PlayAction{}
		return true
	case 'h':
		ih.actionChan <- statepkg.StepAction{Delta: -1}
		return true
	case 'l':
		ih.actionChan <- statepkg.StepAction{Delta: 1}
		return true
	}

	if dest, ok := ih.destKeys[unicode.ToLower(r)]; ok {
		ih.actionChan <- statepkg.RelocateAction{
			Key:              dest,
			IncludePreceding: unicode.IsUpper(r),
		}
		return true
	}

	return true
}
