package hal

import (
	"errors"
	"testing"
)

func TestMemFlashWriteRequiresErase(t *testing.T) {
	f := NewMemFlash(8192, 4096)

	if _, err := f.WriteAt([]byte{0x0F}, 10); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := f.WriteAt([]byte{0x07}, 10); err != nil {
		t.Fatalf("clearing bits should be allowed: %v", err)
	}
	if _, err := f.WriteAt([]byte{0xF0}, 10); !errors.Is(err, ErrFlashWriteRequiresErase) {
		t.Fatalf("setting bits: err=%v, want ErrFlashWriteRequiresErase", err)
	}

	if err := f.Erase(0, 4096); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	var b [1]byte
	if _, err := f.ReadAt(b[:], 10); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if b[0] != 0xFF {
		t.Fatalf("erased byte=%#x, want 0xff", b[0])
	}
}

func TestMemFlashEraseAlignment(t *testing.T) {
	f := NewMemFlash(8192, 4096)
	if err := f.Erase(100, 4096); err == nil {
		t.Fatalf("unaligned erase: expected error")
	}
	if err := f.Erase(4096, 8192); err == nil {
		t.Fatalf("erase past end: expected error")
	}
	if err := f.Erase(4096, 4096); err != nil {
		t.Fatalf("aligned erase: %v", err)
	}
}

func TestMemFlashReadOutOfRange(t *testing.T) {
	f := NewMemFlash(4096, 4096)
	var b [4]byte
	if _, err := f.ReadAt(b[:], 4096); err == nil {
		t.Fatalf("expected error")
	}
	n, err := f.ReadAt(b[:], 4094)
	if err != nil {
		t.Fatalf("ReadAt tail: %v", err)
	}
	if n != 2 {
		t.Fatalf("n=%d, want 2", n)
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	cases := []struct{ r, g, b uint8 }{
		{0, 0, 0},
		{255, 255, 255},
		{255, 0, 0},
		{0, 255, 0},
		{0, 0, 255},
	}
	for _, c := range cases {
		r, g, b := rgb888From565(rgb565(c.r, c.g, c.b))
		if r != c.r || g != c.g || b != c.b {
			t.Fatalf("round trip %v -> (%d,%d,%d)", c, r, g, b)
		}
	}
}
