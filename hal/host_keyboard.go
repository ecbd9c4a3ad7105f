//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hostKeyBindings maps desktop keys onto the four watch buttons.
var hostKeyBindings = []struct {
	key  ebiten.Key
	code KeyCode
}{
	{ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyW, KeyUp},
	{ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyS, KeyDown},
	{ebiten.KeyEnter, KeySelect},
	{ebiten.KeyArrowRight, KeySelect},
	{ebiten.KeyEscape, KeyBack},
	{ebiten.KeyBackspace, KeyBack},
	{ebiten.KeyArrowLeft, KeyBack},
}

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

func (k *hostKeyboard) inject(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

// poll forwards edge transitions only; hold-to-repeat is the click
// recognizer's job.
func (k *hostKeyboard) poll() {
	for _, b := range hostKeyBindings {
		if inpututil.IsKeyJustPressed(b.key) {
			k.inject(KeyEvent{Code: b.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(b.key) {
			k.inject(KeyEvent{Code: b.code, Press: false})
		}
	}
}
