//go:build tinygo && baremetal && picocalc

package hal

import (
	"bytes"
	"time"
)

const (
	picoCalcPanelSize = 320
	picoCalcWatchSize = 240
)

type picoCalcHAL struct {
	logger *uartLogger
	fb     Framebuffer
	kbd    Keyboard
	t      *msClock
	flash  Flash
}

// New returns a PicoCalc HAL implementation (Pico/Pico2 on the PicoCalc carrier).
//
// The watch face is a 240x240 viewport centered on the 320x320 panel.
func New() HAL {
	logger := newUARTLogger()

	var fb Framebuffer
	if disp, err := newPicoCalcDisplay(); err == nil {
		fb = disp
	} else {
		logger.WriteLineString("hal: display: " + err.Error())
		fb = &stubFramebuffer{w: picoCalcWatchSize, h: picoCalcWatchSize, format: PixelFormatRGB565}
	}

	var kbd Keyboard
	if kb, err := newPicoCalcKeyboard(); err == nil {
		kbd = kb
	} else {
		logger.WriteLineString("hal: keyboard: " + err.Error())
		kbd = &stubKeyboard{}
	}

	return &picoCalcHAL{
		logger: logger,
		fb:     fb,
		kbd:    kbd,
		t:      newMsClock(),
		flash:  newRP2Flash(),
	}
}

func (h *picoCalcHAL) Logger() Logger   { return h.logger }
func (h *picoCalcHAL) Display() Display { return tinyGoDisplay{fb: h.fb} }
func (h *picoCalcHAL) Input() Input     { return tinyGoInput{kbd: h.kbd} }
func (h *picoCalcHAL) Flash() Flash     { return h.flash }
func (h *picoCalcHAL) Time() Time       { return h.t }

// picoCalcFramebuffer keeps a copy of what the panel shows and sends only
// the band of rows that changed.
type picoCalcFramebuffer struct {
	*MemFramebuffer
	lcd    *ili9488
	shown  []byte
	x0, y0 int
}

func (f *picoCalcFramebuffer) Present() error {
	buf := f.Buffer()
	stride := f.StrideBytes()
	from, to := -1, 0
	for y := 0; y < f.Height(); y++ {
		row := buf[y*stride : (y+1)*stride]
		if bytes.Equal(row, f.shown[y*stride:(y+1)*stride]) {
			continue
		}
		if from < 0 {
			from = y
		}
		to = y + 1
	}
	if from < 0 {
		return nil
	}
	if err := f.lcd.blitRows(buf, f.Width(), f.x0, f.y0, from, to); err != nil {
		return err
	}
	copy(f.shown[from*stride:to*stride], buf[from*stride:to*stride])
	return nil
}

func newPicoCalcDisplay() (*picoCalcFramebuffer, error) {
	lcd, err := initILI9488()
	if err != nil {
		return nil, err
	}
	lcd.clear(0x0000, picoCalcPanelSize)

	off := (picoCalcPanelSize - picoCalcWatchSize) / 2
	mem := NewMemFramebuffer(picoCalcWatchSize, picoCalcWatchSize)
	return &picoCalcFramebuffer{
		MemFramebuffer: mem,
		lcd:            lcd,
		shown:          make([]byte, len(mem.Buffer())),
		x0:             off,
		y0:             off,
	}, nil
}

type picoCalcKeyboard struct {
	ch chan KeyEvent
}

func (k *picoCalcKeyboard) Events() <-chan KeyEvent { return k.ch }

func newPicoCalcKeyboard() (*picoCalcKeyboard, error) {
	dev := &picoCalcKeyboard{ch: make(chan KeyEvent, 64)}
	kbd, err := initI2CKeyboard()
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			if ev, ok := kbd.readEvent(); ok {
				select {
				case dev.ch <- ev:
				default:
				}
			}
			time.Sleep(2 * time.Millisecond)
		}
	}()

	return dev, nil
}
