package hal

import (
	"errors"
	"fmt"
	"os"
)

var ErrFlashWriteRequiresErase = errors.New("flash write requires erase")

// checkFlashOffset rejects an access starting past the end of a flash of
// size bytes.
func checkFlashOffset(op string, off, size uint32) error {
	if off >= size {
		return fmt.Errorf("flash %s at %d: %w", op, off, os.ErrInvalid)
	}
	return nil
}

// checkFlashErase rejects erases that are unaligned to block or overrun size.
func checkFlashErase(off, n, block, size uint32) error {
	if block == 0 || off%block != 0 || n%block != 0 || off >= size || n > size-off {
		return fmt.Errorf("flash erase off=%d size=%d: %w", off, n, os.ErrInvalid)
	}
	return nil
}
