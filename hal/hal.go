package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// ErrExit is returned by App.Step once the foreground app has quit.
var ErrExit = errors.New("app exited")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode identifies one of the four watch buttons.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyBack
	KeyUp
	KeySelect
	KeyDown
)

func (k KeyCode) String() string {
	switch k {
	case KeyBack:
		return "back"
	case KeyUp:
		return "up"
	case KeySelect:
		return "select"
	case KeyDown:
		return "down"
	default:
		return "unknown"
	}
}

// KeyEvent is a button press or release.
type KeyEvent struct {
	Code  KeyCode
	Press bool
}

// Keyboard provides button events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Flash provides raw access to non-volatile memory.
//
// Access is by address and erase block only.
// Writes may only clear bits; setting a bit back to 1 requires Erase.
type Flash interface {
	SizeBytes() uint32
	EraseBlockBytes() uint32
	ReadAt(p []byte, off uint32) (int, error)
	WriteAt(p []byte, off uint32) (int, error)
	Erase(off, size uint32) error
}

// Time provides a base tick stream. One tick is one millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	Display() Display
	Input() Input
	Flash() Flash
	Time() Time
}

// App is what the runners drive. Step and Close are only ever called from
// the runner's goroutine.
type App interface {
	// Step advances the system; it returns ErrExit once the app has quit.
	Step() error
	// Close shuts the app down (persisting state) and releases the system.
	Close() error
}
