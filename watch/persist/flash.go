package persist

import (
	"encoding/binary"
	"hash/crc32"
	"sort"

	"modcalc/hal"

	"github.com/juju/errors"
)

// Record layout (little-endian, 16 bytes):
//
//	u16 magic | u16 reserved (0xFFFF) | u32 key | i32 value | u32 crc32(bytes 0..11)
const (
	recordSize         = 16
	recordMagic uint16 = 0x5043
)

// FlashStore keeps an append-only log of records in one flash region.
//
// The newest record for a key wins. Erased slots read as 0xFF and mark the
// end of the log. When the region is full the live values are rewritten
// into the freshly erased region; a power cut during that rewrite loses
// the store's contents.
type FlashStore struct {
	flash hal.Flash
	off   uint32
	size  uint32

	values  map[Key]int32
	next    uint32
	skipped int

	rec [recordSize]byte
}

// LastBlock returns the final erase block of f, the default store region.
func LastBlock(f hal.Flash) (off, size uint32) {
	bs := f.EraseBlockBytes()
	total := f.SizeBytes()
	if bs == 0 || total < bs {
		return 0, 0
	}
	return total - total%bs - bs, bs
}

// OpenFlash loads the store kept in [off, off+size) of f.
func OpenFlash(f hal.Flash, off, size uint32) (*FlashStore, error) {
	if f == nil {
		return nil, errors.NotValidf("nil flash")
	}
	bs := f.EraseBlockBytes()
	if bs == 0 {
		return nil, errors.NotSupportedf("flash without erase blocks")
	}
	if size == 0 || off%bs != 0 || size%bs != 0 || size%recordSize != 0 {
		return nil, errors.NotValidf("store region off=%d size=%d (erase block %d)", off, size, bs)
	}
	if uint64(off)+uint64(size) > uint64(f.SizeBytes()) {
		return nil, errors.NotValidf("store region off=%d size=%d beyond flash size %d", off, size, f.SizeBytes())
	}

	s := &FlashStore{flash: f, off: off, size: size, values: make(map[Key]int32)}
	if err := s.scan(); err != nil {
		return nil, errors.Trace(err)
	}
	return s, nil
}

func (s *FlashStore) scan() error {
	for pos := uint32(0); pos+recordSize <= s.size; pos += recordSize {
		if _, err := s.flash.ReadAt(s.rec[:], s.off+pos); err != nil {
			return errors.Annotatef(err, "read record at %d", s.off+pos)
		}
		if erased(s.rec[:]) {
			s.next = pos
			return nil
		}
		key, value, ok := decodeRecord(s.rec[:])
		if !ok {
			s.skipped++
			continue
		}
		s.values[key] = value
	}
	s.next = s.size
	return nil
}

// Exists reports whether key has been written.
func (s *FlashStore) Exists(key Key) bool {
	_, ok := s.values[key]
	return ok
}

// ReadInt returns the newest value for key.
func (s *FlashStore) ReadInt(key Key) (int32, error) {
	v, ok := s.values[key]
	if !ok {
		return 0, notFound(key)
	}
	return v, nil
}

// WriteInt appends a record for key, compacting the region first when it
// is full. Every call writes, even when the value is unchanged.
func (s *FlashStore) WriteInt(key Key, value int32) error {
	if s.next+recordSize > s.size {
		if err := s.compact(); err != nil {
			return errors.Annotate(err, "compact store")
		}
		if s.next+recordSize > s.size {
			return errors.Errorf("persist store full (%d keys)", len(s.values))
		}
	}
	if err := s.append(key, value); err != nil {
		return errors.Annotatef(err, "write key %d", key)
	}
	s.values[key] = value
	return nil
}

// Skipped reports how many corrupt records the last scan ignored.
func (s *FlashStore) Skipped() int { return s.skipped }

func (s *FlashStore) compact() error {
	if err := s.flash.Erase(s.off, s.size); err != nil {
		return errors.Trace(err)
	}
	s.next = 0
	s.skipped = 0

	keys := make([]Key, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		if s.next+recordSize > s.size {
			return errors.Errorf("persist store full (%d keys)", len(keys))
		}
		if err := s.append(k, s.values[k]); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func (s *FlashStore) append(key Key, value int32) error {
	encodeRecord(s.rec[:], key, value)
	n, err := s.flash.WriteAt(s.rec[:], s.off+s.next)
	if err != nil {
		return errors.Trace(err)
	}
	if n != recordSize {
		return errors.Errorf("short flash write: %d of %d bytes", n, recordSize)
	}
	s.next += recordSize
	return nil
}

func encodeRecord(b []byte, key Key, value int32) {
	binary.LittleEndian.PutUint16(b[0:2], recordMagic)
	binary.LittleEndian.PutUint16(b[2:4], 0xFFFF)
	binary.LittleEndian.PutUint32(b[4:8], uint32(key))
	binary.LittleEndian.PutUint32(b[8:12], uint32(value))
	binary.LittleEndian.PutUint32(b[12:16], crc32.ChecksumIEEE(b[0:12]))
}

func decodeRecord(b []byte) (Key, int32, bool) {
	if binary.LittleEndian.Uint16(b[0:2]) != recordMagic {
		return 0, 0, false
	}
	if binary.LittleEndian.Uint32(b[12:16]) != crc32.ChecksumIEEE(b[0:12]) {
		return 0, 0, false
	}
	return Key(binary.LittleEndian.Uint32(b[4:8])), int32(binary.LittleEndian.Uint32(b[8:12])), true
}

func erased(b []byte) bool {
	for _, c := range b {
		if c != 0xFF {
			return false
		}
	}
	return true
}
