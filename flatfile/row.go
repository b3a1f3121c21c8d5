package flatfile

import "fmt"

// RowStatus marks a row slot as reusable or in use.
type RowStatus byte

const (
	StatusEmpty    RowStatus = 0
	StatusOccupied RowStatus = 1
)

// Row is the transient view of one slot. Key and Value alias the store's
// scan buffer and are only valid until the next operation on the store,
// callers that keep row contents must copy them.
type Row struct {
	Status RowStatus
	Key    []byte
	Value  []byte
}

// KV couples a key with its value for WriteRow. Writing a value without its
// key would leave the row misaligned, so the pair is the only way to supply
// either.
type KV struct {
	Key   []byte
	Value []byte
}

// WriteRow writes a row at the given index: the status byte always, then the
// key and value if kv is not nil. A nil kv performs a status-only write,
// which is how delete tombstones a slot without touching its old bytes.
//
// The sub-writes are not atomic. A failure after the status write leaves the
// slot inconsistent, callers must treat a non-nil error as a possibly
// corrupted row, not as a no-op.
func (s *Store) WriteRow(index int64, status RowStatus, kv *KV) error {

	if index < 0 {
		return fmt.Errorf("flatfile: row index %d out of range", index)
	}
	if kv != nil {
		if len(kv.Key) != s.keySize {
			return fmt.Errorf("flatfile: key length %d, want %d", len(kv.Key), s.keySize)
		}
		if len(kv.Value) != s.valueSize {
			return fmt.Errorf("flatfile: value length %d, want %d", len(kv.Value), s.valueSize)
		}
	}

	offset := s.rowOffset(index)

	n, err := s.file.WriteAt([]byte{byte(status)}, offset)
	if err != nil {
		return fmt.Errorf("write row status: %w", err)
	}
	if n != statusSize {
		return ErrIncompleteWrite
	}

	if kv == nil {
		return nil
	}

	n, err = s.file.WriteAt(kv.Key, offset+statusSize)
	if err != nil {
		return fmt.Errorf("write row key: %w", err)
	}
	if n != s.keySize {
		return ErrIncompleteWrite
	}

	n, err = s.file.WriteAt(kv.Value, offset+statusSize+int64(s.keySize))
	if err != nil {
		return fmt.Errorf("write row value: %w", err)
	}
	if n != s.valueSize {
		return ErrIncompleteWrite
	}

	return nil
}

// rowAt slices row i out of the scan buffer. The returned row aliases the
// buffer.
func (s *Store) rowAt(i int) Row {
	base := i * s.rowSize
	return Row{
		Status: RowStatus(s.buffer[base]),
		Key:    s.buffer[base+statusSize : base+statusSize+s.keySize],
		Value:  s.buffer[base+statusSize+s.keySize : base+s.rowSize],
	}
}
