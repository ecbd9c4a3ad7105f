package app

import (
	"fmt"

	"modcalc/hal"
	"modcalc/watch/persist"
)

// openFlashStore opens the record log kept in the last erase block.
func openFlashStore(h hal.HAL) (*persist.FlashStore, error) {
	f := h.Flash()
	if f == nil {
		return nil, fmt.Errorf("no flash")
	}
	off, size := persist.LastBlock(f)
	if size == 0 {
		return nil, fmt.Errorf("flash too small (%d bytes, erase block %d)", f.SizeBytes(), f.EraseBlockBytes())
	}
	s, err := persist.OpenFlash(f, off, size)
	if err != nil {
		return nil, err
	}
	if n := s.Skipped(); n > 0 {
		if l := h.Logger(); l != nil {
			l.WriteLineString(fmt.Sprintf("persist: skipped %d corrupt records", n))
		}
	}
	return s, nil
}
