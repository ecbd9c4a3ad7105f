//go:build tinygo && baremetal && (rp2040 || rp2350)

package hal

import (
	"bytes"
	"fmt"
	"machine"
)

// rp2Flash exposes the flash area TinyGo reserves after the firmware image.
// Writes are read back so a write over unerased bits fails the same way it
// does on the host images.
type rp2Flash struct {
	verify []byte
}

func newRP2Flash() Flash {
	return &rp2Flash{}
}

func toUint32(v int64) uint32 {
	switch {
	case v <= 0:
		return 0
	case v > int64(^uint32(0)):
		return ^uint32(0)
	}
	return uint32(v)
}

func (*rp2Flash) SizeBytes() uint32       { return toUint32(machine.Flash.Size()) }
func (*rp2Flash) EraseBlockBytes() uint32 { return toUint32(machine.Flash.EraseBlockSize()) }

func (f *rp2Flash) ReadAt(p []byte, off uint32) (int, error) {
	if err := checkFlashOffset("read", off, f.SizeBytes()); err != nil {
		return 0, err
	}
	n, err := machine.Flash.ReadAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash read at %d: %w", off, err)
	}
	return n, nil
}

func (f *rp2Flash) WriteAt(p []byte, off uint32) (int, error) {
	if err := checkFlashOffset("write", off, f.SizeBytes()); err != nil {
		return 0, err
	}
	n, err := machine.Flash.WriteAt(p, int64(off))
	if err != nil {
		return n, fmt.Errorf("flash write at %d: %w", off, err)
	}
	if cap(f.verify) < n {
		f.verify = make([]byte, n)
	}
	got := f.verify[:n]
	if _, err := machine.Flash.ReadAt(got, int64(off)); err != nil {
		return n, fmt.Errorf("flash verify at %d: %w", off, err)
	}
	if !bytes.Equal(got, p[:n]) {
		return n, ErrFlashWriteRequiresErase
	}
	return n, nil
}

func (f *rp2Flash) Erase(off, size uint32) error {
	if size == 0 {
		return nil
	}
	bs := f.EraseBlockBytes()
	if bs == 0 {
		return ErrNotImplemented
	}
	if err := checkFlashErase(off, size, bs, f.SizeBytes()); err != nil {
		return err
	}
	return machine.Flash.EraseBlocks(int64(off/bs), int64(size/bs))
}
