//go:build tinygo && baremetal && picocalc

package hal

import (
	"errors"
	"machine"
	"time"
)

const (
	picoCalcKbdAddr uint16 = 0x1F
	picoCalcKbdCmd         = 0x09
)

const (
	picoCalcKeyBackspace byte = 0x08
	picoCalcKeyEnter     byte = '\r'
	picoCalcKeyEsc       byte = 0xB1
	picoCalcKeyLeft      byte = 0xB4
	picoCalcKeyUp        byte = 0xB5
	picoCalcKeyDown      byte = 0xB6
	picoCalcKeyRight     byte = 0xB7
)

const (
	picoCalcEvPress   = 0x01
	picoCalcEvRelease = 0x03
)

type i2cKeyboard struct {
	i2c   *machine.I2C
	write [1]byte
	read  [2]byte
}

func initI2CKeyboard() (*i2cKeyboard, error) {
	write := [1]byte{picoCalcKbdCmd}

	// Prefer I2C1 (stock PicoCalc wiring), but some TinyGo targets expose only I2C0.
	for _, bus := range []*machine.I2C{machine.I2C1, machine.I2C0} {
		if bus == nil {
			continue
		}
		for _, freq := range []uint32{100_000, 400_000} {
			if err := bus.Configure(machine.I2CConfig{
				SCL:       machine.GP7,
				SDA:       machine.GP6,
				Frequency: freq,
			}); err != nil {
				continue
			}

			k := &i2cKeyboard{i2c: bus, write: write}

			// The keyboard MCU can be slow to answer right after boot.
			const probeTries = 50
			for i := 0; i < probeTries; i++ {
				if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err == nil {
					return k, nil
				}
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	return nil, errors.New("keyboard: I2C unavailable")
}

func (k *i2cKeyboard) readEvent() (KeyEvent, bool) {
	if err := k.i2c.Tx(picoCalcKbdAddr, k.write[:], k.read[:]); err != nil {
		return KeyEvent{}, false
	}
	var press bool
	switch k.read[0] {
	case picoCalcEvPress:
		press = true
	case picoCalcEvRelease:
		press = false
	default:
		// Idle or "held": the click recognizer does its own repeat.
		return KeyEvent{}, false
	}
	code := picoCalcButton(k.read[1])
	if code == KeyUnknown {
		return KeyEvent{}, false
	}
	return KeyEvent{Code: code, Press: press}, true
}

// picoCalcButton folds the full keyboard onto the four watch buttons.
func picoCalcButton(key byte) KeyCode {
	switch key {
	case picoCalcKeyUp, '+', '=':
		return KeyUp
	case picoCalcKeyDown, '-', '_':
		return KeyDown
	case picoCalcKeyEnter, '\n', picoCalcKeyRight, ' ':
		return KeySelect
	case picoCalcKeyEsc, picoCalcKeyBackspace, picoCalcKeyLeft, 'q':
		return KeyBack
	default:
		return KeyUnknown
	}
}
