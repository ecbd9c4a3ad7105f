// Package persist is the watch's key-value store for small integers.
//
// Apps see only Exists/ReadInt/WriteInt on numeric keys; the backends
// decide how values reach non-volatile storage.
package persist

import "github.com/juju/errors"

// Key identifies a persisted slot.
type Key uint32

// Store is the persistence contract offered to apps.
type Store interface {
	Exists(key Key) bool
	ReadInt(key Key) (int32, error)
	WriteInt(key Key, value int32) error
}

// ReadIntOr returns the stored value, or def when the key is absent or
// cannot be read.
func ReadIntOr(s Store, key Key, def int32) int32 {
	if s == nil || !s.Exists(key) {
		return def
	}
	v, err := s.ReadInt(key)
	if err != nil {
		return def
	}
	return v
}

func notFound(key Key) error {
	return errors.NotFoundf("persist key %d", key)
}

// IsNotFound reports whether err means the key has never been written.
func IsNotFound(err error) bool {
	return errors.IsNotFound(errors.Cause(err))
}
