// Package flatfile implements a fixed-row record store backed by a single
// binary file. Each row holds a status byte, a fixed-width key and a
// fixed-width value. Lookups and mutations are variations of one buffered
// linear scan over a pluggable match predicate. Deleted rows become
// tombstones that later inserts reuse, the file never shrinks while the
// store exists.
package flatfile

import (
	"fmt"
	"os"
	"path"

	"flatdb/keys"
)

const (
	statusSize = 1

	// maxFilename mirrors the historical limit of the on-disk format, the
	// store refuses to initialize with a longer path.
	maxFilename = 4096
)

// Options fixes the geometry and capabilities of a store at open time.
type Options struct {
	KeySize   int
	ValueSize int

	// BufferRows is how many rows a single scan batch reads at once.
	// Values below 1 are clamped to 1 (unbuffered row-at-a-time scanning).
	BufferRows int

	// Compare reports the order of two keys of KeySize bytes. Defaults to
	// keys.BytesCompare.
	Compare keys.Compare

	// Sorted reserves the key-ordered layout. It is accepted but not
	// implemented, every operation on a sorted store returns ErrSortedMode.
	Sorted bool
}

// Store owns the open data file, the row geometry and one scan buffer shared
// by every operation on the instance. A Store must be driven by a single
// caller at a time, operations reuse the buffer and are not safe to run
// concurrently.
type Store struct {
	id       int
	filename string
	file     *os.File

	keySize   int
	valueSize int
	rowSize   int

	// startOfData is the byte offset of row 0. Reserved space for a future
	// file header, currently always 0.
	startOfData int64

	bufferRows int
	buffer     []byte

	sorted  bool
	compare keys.Compare
}

// Filename returns the backing file path for the store with the given
// numeric id.
func Filename(dir string, id int) string {
	return path.Join(dir, fmt.Sprintf("%d.ffs", id))
}

// Open opens the backing file for the given id inside dir, creating it if it
// does not exist, and fixes the store geometry for its whole lifetime.
func Open(dir string, id int, options Options) (*Store, error) {

	if options.KeySize <= 0 {
		return nil, fmt.Errorf("flatfile: key size %d must be positive", options.KeySize)
	}
	if options.ValueSize <= 0 {
		return nil, fmt.Errorf("flatfile: value size %d must be positive", options.ValueSize)
	}
	if options.BufferRows <= 0 {
		// Always buffer at least one row
		options.BufferRows = 1
	}
	if options.Compare == nil {
		options.Compare = keys.BytesCompare
	}

	filename := Filename(dir, id)
	if len(filename) >= maxFilename {
		return nil, ErrFilenameTooLong
	}

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}

	s := &Store{
		id:          id,
		filename:    filename,
		file:        file,
		keySize:     options.KeySize,
		valueSize:   options.ValueSize,
		rowSize:     statusSize + options.KeySize + options.ValueSize,
		startOfData: 0,
		bufferRows:  options.BufferRows,
		buffer:      make([]byte, options.BufferRows*(statusSize+options.KeySize+options.ValueSize)),
		sorted:      options.Sorted,
		compare:     options.Compare,
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat data file: %w", err)
	}
	if (info.Size()-s.startOfData)%int64(s.rowSize) != 0 {
		file.Close()
		return nil, fmt.Errorf("flatfile: data file size %d is not a multiple of row size %d", info.Size(), s.rowSize)
	}

	return s, nil
}

// ID returns the numeric id the store was opened with.
func (s *Store) ID() int {
	return s.id
}

// KeySize returns the fixed key width in bytes.
func (s *Store) KeySize() int {
	return s.keySize
}

// ValueSize returns the fixed value width in bytes.
func (s *Store) ValueSize() int {
	return s.valueSize
}

// BufferRows returns how many rows one scan batch holds.
func (s *Store) BufferRows() int {
	return s.bufferRows
}

// Rows returns the current number of row slots in the file, occupied and
// empty alike.
func (s *Store) Rows() (int64, error) {
	info, err := s.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat data file: %w", err)
	}
	return (info.Size() - s.startOfData) / int64(s.rowSize), nil
}

// Close releases the scan buffer and closes the data file. The file itself
// is kept on disk, use Drop to destroy the store.
func (s *Store) Close() error {
	s.buffer = nil
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close data file: %w", err)
	}
	return nil
}

// Drop closes the store and deletes its backing file.
func (s *Store) Drop() error {
	if err := s.Close(); err != nil {
		return err
	}
	if err := os.Remove(s.filename); err != nil {
		return fmt.Errorf("delete data file: %w", err)
	}
	return nil
}

func (s *Store) rowOffset(index int64) int64 {
	return s.startOfData + index*int64(s.rowSize)
}
