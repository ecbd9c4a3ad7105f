//go:build tinygo

package app

import (
	"fmt"
	"io"

	"modcalc/hal"
	"modcalc/watch/persist"
)

func openStore(h hal.HAL, cfg Config) (persist.Store, io.Closer, error) {
	if cfg.Store != StoreFlash {
		return nil, nil, fmt.Errorf("store %q not available on this target", cfg.Store)
	}
	s, err := openFlashStore(h)
	return s, nil, err
}
