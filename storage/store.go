// Package storage is the key/value persistence layer. The ledger treats
// it as an abstract get/put capability; BadgerDB is the default engine
// and LevelDB remains available as a drop-in alternative.
package storage

import "errors"

// ErrNotFound is returned by Get for keys that were never written.
var ErrNotFound = errors.New("storage: key not found")

// Store is a minimal key/value capability. Values are opaque blobs;
// callers own the encoding.
type Store interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Delete(key string) error
	Close() error
}

// Open opens the store backend named by engine ("badger" or "leveldb")
// at path. Unknown names fall back to badger.
func Open(engine, path string) (Store, error) {
	if engine == "leveldb" {
		return OpenLevelDB(path)
	}
	return OpenBadger(path)
}
