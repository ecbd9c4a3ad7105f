//go:build tinygo && baremetal && !picocalc

package hal

import (
	"machine"
	"time"
)

type tinyGoHAL struct {
	logger *uartLogger
	fb     Framebuffer
	kbd    Keyboard
	t      *msClock
	flash  Flash
}

// New returns a Pico-class (RP2040/RP2350) HAL implementation.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// Buttons: active-low on GP2 (back), GP3 (up), GP4 (select), GP5 (down).
func New() HAL {
	return &tinyGoHAL{
		logger: newUARTLogger(),
		fb:     &stubFramebuffer{w: 144, h: 168, format: PixelFormatRGB565},
		kbd: newGPIOButtons([]gpioButton{
			{pin: machine.GP2, code: KeyBack},
			{pin: machine.GP3, code: KeyUp},
			{pin: machine.GP4, code: KeySelect},
			{pin: machine.GP5, code: KeyDown},
		}),
		t:     newMsClock(),
		flash: newRP2Flash(),
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *tinyGoHAL) Flash() Flash     { return h.flash }
func (h *tinyGoHAL) Time() Time       { return h.t }

type gpioButton struct {
	pin  machine.Pin
	code KeyCode
	down bool
}

type gpioButtons struct {
	ch      chan KeyEvent
	buttons []gpioButton
}

// newGPIOButtons polls the pins every 5 ms, which also debounces them.
func newGPIOButtons(buttons []gpioButton) *gpioButtons {
	b := &gpioButtons{ch: make(chan KeyEvent, 16), buttons: buttons}
	for i := range b.buttons {
		b.buttons[i].pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	go func() {
		for {
			for i := range b.buttons {
				btn := &b.buttons[i]
				down := !btn.pin.Get()
				if down == btn.down {
					continue
				}
				btn.down = down
				select {
				case b.ch <- KeyEvent{Code: btn.code, Press: down}:
				default:
				}
			}
			time.Sleep(5 * time.Millisecond)
		}
	}()
	return b
}

func (b *gpioButtons) Events() <-chan KeyEvent { return b.ch }
