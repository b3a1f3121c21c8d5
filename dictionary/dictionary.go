// Package dictionary is the key/value dictionary abstraction the storage
// backends plug into. The canonical backend is the flat file store, an
// in-memory ordered backend exists for stores that do not need to survive a
// restart.
package dictionary

import (
	"fmt"

	"flatdb/flatfile"
	"flatdb/keys"
)

const (
	BackendFlatFile = "flatfile"
	BackendBTree    = "btree"
)

// ErrNotFound is shared by every backend for a key with no live entry.
var ErrNotFound = flatfile.ErrNotFound

// Dictionary is the operation surface common to all backends. Duplicate
// keys are permitted: Insert of an existing key adds another entry, Update
// and Delete act on every entry of the key and report how many they touched.
type Dictionary interface {
	Insert(key, value []byte) (int, error)
	Get(key []byte) ([]byte, error)
	Update(key, value []byte) (int, error)
	Delete(key []byte) (int, error)

	// Close releases resources keeping persisted data, Drop destroys the
	// dictionary including its backing storage.
	Close() error
	Drop() error
}

// Config describes one dictionary instance.
type Config struct {
	ID         int
	KeyType    keys.Type
	KeySize    int
	ValueSize  int
	BufferRows int
	Backend    string
}

// New opens the backend selected by config inside dir. An empty backend
// name selects the flat file store.
func New(dir string, config Config) (Dictionary, error) {
	switch config.Backend {
	case "", BackendFlatFile:
		return flatfile.Open(dir, config.ID, flatfile.Options{
			KeySize:    config.KeySize,
			ValueSize:  config.ValueSize,
			BufferRows: config.BufferRows,
			Compare:    keys.ForType(config.KeyType),
		})
	case BackendBTree:
		return NewBTree(config)
	}
	return nil, fmt.Errorf("unknown backend '%s'", config.Backend)
}
