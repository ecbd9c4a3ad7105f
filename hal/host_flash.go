//go:build !tinygo

package hal

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

const (
	hostFlashDefaultPath      = "modcalc.flash"
	hostFlashDefaultSizeBytes = 64 * 1024
	hostFlashEraseBlockBytes  = 4096
)

// FlashPathFromEnv returns the flash image path from MODCALC_FLASH_PATH,
// or the default next to the working directory.
func FlashPathFromEnv() string {
	if p := os.Getenv("MODCALC_FLASH_PATH"); p != "" {
		return p
	}
	return hostFlashDefaultPath
}

// FlashImage is a flash image file on the host.
type FlashImage interface {
	Flash
	io.Closer
}

// OpenFlashImage opens (or creates and erases) the flash image at path, as
// the host runners do.
func OpenFlashImage(path string) (FlashImage, error) {
	return openHostFlash(path)
}

// hostFlash is a flash image stored in a regular file.
type hostFlash struct {
	mu      sync.Mutex
	f       *os.File
	size    uint32
	erased  [hostFlashEraseBlockBytes]byte
	scratch []byte
}

func openHostFlash(path string) (*hostFlash, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open flash image %s: %w", path, err)
	}

	hf := &hostFlash{f: f, size: hostFlashDefaultSizeBytes}
	for i := range hf.erased {
		hf.erased[i] = 0xFF
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat flash image %s: %w", path, err)
	}
	if st.Size() > 0 {
		if st.Size() > int64(^uint32(0)) || st.Size()%hostFlashEraseBlockBytes != 0 {
			_ = f.Close()
			return nil, fmt.Errorf("flash image %s: bad size %d", path, st.Size())
		}
		hf.size = uint32(st.Size())
		return hf, nil
	}

	// A fresh image reads as erased flash.
	for off := uint32(0); off < hf.size; off += hostFlashEraseBlockBytes {
		if _, err := f.WriteAt(hf.erased[:], int64(off)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("format flash image %s: %w", path, err)
		}
	}
	return hf, nil
}

func (f *hostFlash) SizeBytes() uint32       { return f.size }
func (f *hostFlash) EraseBlockBytes() uint32 { return hostFlashEraseBlockBytes }

func (f *hostFlash) ReadAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := checkFlashOffset("read", off, f.size); err != nil {
		return 0, err
	}
	maxN := int(f.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}
	n, err := f.f.ReadAt(p, int64(off))
	if errors.Is(err, io.EOF) && n == len(p) {
		err = nil
	}
	return n, err
}

func (f *hostFlash) WriteAt(p []byte, off uint32) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := checkFlashOffset("write", off, f.size); err != nil {
		return 0, err
	}
	maxN := int(f.size - off)
	if len(p) > maxN {
		p = p[:maxN]
	}

	if cap(f.scratch) < len(p) {
		f.scratch = make([]byte, len(p))
	}
	cur := f.scratch[:len(p)]
	if _, err := f.f.ReadAt(cur, int64(off)); err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("flash read before write at %d: %w", off, err)
	}
	for i := range p {
		if cur[i]&p[i] != p[i] {
			return 0, ErrFlashWriteRequiresErase
		}
	}
	n, err := f.f.WriteAt(p, int64(off))
	if err != nil {
		return n, err
	}
	return n, f.f.Sync()
}

func (f *hostFlash) Erase(off, size uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if size == 0 {
		return nil
	}
	if err := checkFlashErase(off, size, hostFlashEraseBlockBytes, f.size); err != nil {
		return err
	}

	for size > 0 {
		if _, err := f.f.WriteAt(f.erased[:], int64(off)); err != nil {
			return fmt.Errorf("flash erase block at %d: %w", off, err)
		}
		off += hostFlashEraseBlockBytes
		size -= hostFlashEraseBlockBytes
	}
	return f.f.Sync()
}

func (f *hostFlash) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.Close()
}
