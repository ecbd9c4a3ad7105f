package persist

import (
	"testing"

	"modcalc/hal"

	"github.com/stretchr/testify/require"
)

func newTestFlash() *hal.MemFlash {
	return hal.NewMemFlash(4*4096, 4096)
}

func TestFlashStoreRoundTrip(t *testing.T) {
	f := newTestFlash()
	off, size := LastBlock(f)
	require.Equal(t, uint32(3*4096), off)
	require.Equal(t, uint32(4096), size)

	s, err := OpenFlash(f, off, size)
	require.NoError(t, err)
	require.False(t, s.Exists(1))

	_, err = s.ReadInt(1)
	require.True(t, IsNotFound(err), "err=%v", err)

	require.NoError(t, s.WriteInt(1, 42))
	require.True(t, s.Exists(1))
	v, err := s.ReadInt(1)
	require.NoError(t, err)
	require.Equal(t, int32(42), v)
}

func TestFlashStoreNewestWinsAcrossReopen(t *testing.T) {
	f := newTestFlash()
	off, size := LastBlock(f)

	s, err := OpenFlash(f, off, size)
	require.NoError(t, err)
	require.NoError(t, s.WriteInt(1, 21))
	require.NoError(t, s.WriteInt(2, -7))
	require.NoError(t, s.WriteInt(1, 100))

	s, err = OpenFlash(f, off, size)
	require.NoError(t, err)
	v, err := s.ReadInt(1)
	require.NoError(t, err)
	require.Equal(t, int32(100), v)
	v, err = s.ReadInt(2)
	require.NoError(t, err)
	require.Equal(t, int32(-7), v)
	require.Zero(t, s.Skipped())
}

func TestFlashStoreCompactsWhenFull(t *testing.T) {
	f := newTestFlash()
	off, size := LastBlock(f)

	s, err := OpenFlash(f, off, size)
	require.NoError(t, err)
	require.NoError(t, s.WriteInt(7, 1))

	// Two full regions' worth of writes forces at least one compaction.
	n := int(2 * size / recordSize)
	for i := 0; i < n; i++ {
		require.NoError(t, s.WriteInt(1, int32(i)))
	}

	s, err = OpenFlash(f, off, size)
	require.NoError(t, err)
	v, err := s.ReadInt(1)
	require.NoError(t, err)
	require.Equal(t, int32(n-1), v)
	v, err = s.ReadInt(7)
	require.NoError(t, err)
	require.Equal(t, int32(1), v)
}

func TestFlashStoreFullOfDistinctKeys(t *testing.T) {
	f := hal.NewMemFlash(4096, 4096)
	s, err := OpenFlash(f, 0, 4096)
	require.NoError(t, err)

	slots := 4096 / recordSize
	for i := 0; i < slots; i++ {
		require.NoError(t, s.WriteInt(Key(i), int32(i)))
	}
	require.Error(t, s.WriteInt(Key(slots), 1))
	require.Error(t, s.WriteInt(0, 5), "compaction cannot free a slot when every key is live")

	v, err := s.ReadInt(0)
	require.NoError(t, err)
	require.Equal(t, int32(0), v)
}

func TestFlashStoreSkipsCorruptRecord(t *testing.T) {
	f := newTestFlash()
	off, size := LastBlock(f)

	s, err := OpenFlash(f, off, size)
	require.NoError(t, err)
	require.NoError(t, s.WriteInt(1, 30))
	require.NoError(t, s.WriteInt(1, 31))

	// Clear bits in the second record's value so its checksum no longer matches.
	_, err = f.WriteAt([]byte{0x00}, off+recordSize+8)
	require.NoError(t, err)

	s, err = OpenFlash(f, off, size)
	require.NoError(t, err)
	require.Equal(t, 1, s.Skipped())
	v, err := s.ReadInt(1)
	require.NoError(t, err)
	require.Equal(t, int32(30), v)

	// The log continues after the corrupt slot.
	require.NoError(t, s.WriteInt(1, 32))
	s, err = OpenFlash(f, off, size)
	require.NoError(t, err)
	v, err = s.ReadInt(1)
	require.NoError(t, err)
	require.Equal(t, int32(32), v)
}

func TestOpenFlashRejectsBadRegion(t *testing.T) {
	f := newTestFlash()

	_, err := OpenFlash(nil, 0, 4096)
	require.Error(t, err)
	_, err = OpenFlash(f, 100, 4096)
	require.Error(t, err)
	_, err = OpenFlash(f, 0, 100)
	require.Error(t, err)
	_, err = OpenFlash(f, 3*4096, 2*4096)
	require.Error(t, err)
}

func TestReadIntOr(t *testing.T) {
	f := newTestFlash()
	off, size := LastBlock(f)
	s, err := OpenFlash(f, off, size)
	require.NoError(t, err)

	require.Equal(t, int32(21), ReadIntOr(s, 1, 21))
	require.NoError(t, s.WriteInt(1, 50))
	require.Equal(t, int32(50), ReadIntOr(s, 1, 21))
	require.Equal(t, int32(9), ReadIntOr(nil, 1, 9))
}
