//go:build !tinygo

package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host  HostConfig
	Hz    int
	Ticks uint64
	// Script is replayed one event per frame, starting at the first frame.
	Script []KeyEvent
	// Virtual advances the tick clock by exactly one frame period per frame
	// instead of sleeping on a wall-clock ticker.
	Virtual bool
}

// RunHeadless runs the app without opening a window. It returns when the
// app exits, the tick limit is reached or ctx is done; the app is closed in
// every case.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp func(HAL) (App, error)) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	period := uint64(d / time.Millisecond)
	if period == 0 {
		period = 1
	}

	h := newHostHAL(cfg.Host)
	defer h.close()

	app, err := newApp(h)
	if err != nil {
		return fmt.Errorf("start app: %w", err)
	}

	runErr := runFrames(ctx, h, app, cfg, d, period)
	if errors.Is(runErr, ErrExit) {
		runErr = nil
	}
	if err := app.Close(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

func runFrames(ctx context.Context, h *hostHAL, app App, cfg HeadlessConfig, d time.Duration, period uint64) error {
	var frames <-chan time.Time
	if !cfg.Virtual {
		t := time.NewTicker(d)
		defer t.Stop()
		frames = t.C
	}

	script := cfg.Script
	var frame uint64
	for {
		if cfg.Virtual {
			if err := ctx.Err(); err != nil {
				return err
			}
			h.t.advance(period)
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-frames:
				h.t.sync()
			}
		}

		if len(script) > 0 {
			h.kbd.inject(script[0])
			script = script[1:]
		}
		if err := app.Step(); err != nil {
			return err
		}
		frame++
		if cfg.Ticks > 0 && frame >= cfg.Ticks {
			return nil
		}
	}
}
