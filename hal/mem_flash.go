package hal

import "sync"

// MemFlash emulates NOR flash in RAM: erased bytes read 0xFF, writes can
// only clear bits, erase works on whole blocks.
type MemFlash struct {
	mu    sync.Mutex
	buf   []byte
	block uint32
}

// NewMemFlash returns an erased flash of size bytes. size must be a
// multiple of block.
func NewMemFlash(size, block uint32) *MemFlash {
	f := &MemFlash{buf: make([]byte, size), block: block}
	for i := range f.buf {
		f.buf[i] = 0xFF
	}
	return f
}

func (f *MemFlash) SizeBytes() uint32       { return uint32(len(f.buf)) }
func (f *MemFlash) EraseBlockBytes() uint32 { return f.block }

func (f *MemFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := checkFlashOffset("read", off, uint32(len(f.buf))); err != nil {
		return 0, err
	}
	return copy(p, f.buf[off:]), nil
}

func (f *MemFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := checkFlashOffset("write", off, uint32(len(f.buf))); err != nil {
		return 0, err
	}
	dst := f.buf[off:]
	if len(p) > len(dst) {
		p = p[:len(dst)]
	}
	for i := range p {
		if dst[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	return copy(dst, p), nil
}

func (f *MemFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size == 0 {
		return nil
	}
	if err := checkFlashErase(off, size, f.block, uint32(len(f.buf))); err != nil {
		return err
	}
	for i := off; i < off+size; i++ {
		f.buf[i] = 0xFF
	}
	return nil
}
