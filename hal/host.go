//go:build !tinygo

package hal

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// HostConfig describes the emulated watch on a desktop host.
type HostConfig struct {
	Width     int
	Height    int
	FlashPath string
	// Log receives log lines; nil means stdout.
	Log io.Writer
}

func DefaultHostConfig() HostConfig {
	return HostConfig{
		Width:     240,
		Height:    240,
		FlashPath: FlashPathFromEnv(),
	}
}

type hostHAL struct {
	logger *hostLogger
	fb     *MemFramebuffer
	kbd    *hostKeyboard
	t      *hostClock
	flash  Flash
}

// New returns a host HAL with the default configuration.
func New() HAL {
	return NewHost(DefaultHostConfig())
}

// NewHost returns a host HAL implementation.
//
// If the flash image cannot be opened the HAL falls back to RAM flash, so
// the app still runs but nothing survives a restart.
func NewHost(cfg HostConfig) HAL {
	return newHostHAL(cfg)
}

func newHostHAL(cfg HostConfig) *hostHAL {
	def := DefaultHostConfig()
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	if cfg.FlashPath == "" {
		cfg.FlashPath = def.FlashPath
	}
	var w io.Writer = os.Stdout
	if cfg.Log != nil {
		w = cfg.Log
	}
	logger := &hostLogger{w: w}

	var flash Flash
	if hf, err := openHostFlash(cfg.FlashPath); err == nil {
		flash = hf
	} else {
		logger.WriteLineString(fmt.Sprintf("hal: %v; using RAM flash", err))
		flash = NewMemFlash(hostFlashDefaultSizeBytes, hostFlashEraseBlockBytes)
	}

	return &hostHAL{
		logger: logger,
		fb:     NewMemFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		t:      newHostClock(),
		flash:  flash,
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Flash() Flash     { return h.flash }
func (h *hostHAL) Time() Time       { return h.t }

func (h *hostHAL) close() error {
	if c, ok := h.flash.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

type hostDisplay struct {
	fb *MemFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
