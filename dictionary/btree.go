package dictionary

import (
	"fmt"

	"github.com/google/btree"

	"flatdb/keys"
)

// entry is one live key/value pair. seq disambiguates duplicate keys so the
// tree can hold all of them, lower seq means inserted earlier.
type entry struct {
	key   []byte
	value []byte
	seq   uint64
}

// BTree is the in-memory ordered backend. It mirrors the flat file's
// duplicate-key semantics but keeps nothing on disk, Drop and Close just
// release the tree.
type BTree struct {
	tree      *btree.BTreeG[*entry]
	compare   keys.Compare
	keySize   int
	valueSize int
	seq       uint64
}

// NewBTree builds an empty ordered dictionary for the given geometry.
func NewBTree(config Config) (*BTree, error) {

	if config.KeySize <= 0 {
		return nil, fmt.Errorf("dictionary: key size %d must be positive", config.KeySize)
	}
	if config.ValueSize <= 0 {
		return nil, fmt.Errorf("dictionary: value size %d must be positive", config.ValueSize)
	}

	compare := keys.ForType(config.KeyType)

	tree := btree.NewG(32, func(a, b *entry) bool {
		if c := compare(a.key, b.key); c != 0 {
			return c < 0
		}
		return a.seq < b.seq
	})

	return &BTree{
		tree:      tree,
		compare:   compare,
		keySize:   config.KeySize,
		valueSize: config.ValueSize,
	}, nil
}

func (b *BTree) check(key, value []byte) error {
	if len(key) != b.keySize {
		return fmt.Errorf("dictionary: key length %d, want %d", len(key), b.keySize)
	}
	if value != nil && len(value) != b.valueSize {
		return fmt.Errorf("dictionary: value length %d, want %d", len(value), b.valueSize)
	}
	return nil
}

// matching collects every live entry sharing key, in insertion order.
func (b *BTree) matching(key []byte) []*entry {
	found := []*entry{}
	b.tree.AscendGreaterOrEqual(&entry{key: key}, func(e *entry) bool {
		if b.compare(key, e.key) != 0 {
			return false
		}
		found = append(found, e)
		return true
	})
	return found
}

func (b *BTree) Insert(key, value []byte) (int, error) {
	if err := b.check(key, value); err != nil {
		return 0, err
	}

	b.seq++
	e := &entry{
		key:   append([]byte{}, key...),
		value: append([]byte{}, value...),
		seq:   b.seq,
	}
	b.tree.ReplaceOrInsert(e)

	return 1, nil
}

func (b *BTree) Get(key []byte) ([]byte, error) {
	if err := b.check(key, nil); err != nil {
		return nil, err
	}

	found := b.matching(key)
	if len(found) == 0 {
		return nil, ErrNotFound
	}

	return append([]byte{}, found[0].value...), nil
}

func (b *BTree) Update(key, value []byte) (int, error) {
	if err := b.check(key, value); err != nil {
		return 0, err
	}

	found := b.matching(key)
	if len(found) == 0 {
		// Upsert, same as the flat file
		return b.Insert(key, value)
	}

	for _, e := range found {
		// Values do not participate in the ordering, mutate in place
		copy(e.value, value)
	}

	return len(found), nil
}

func (b *BTree) Delete(key []byte) (int, error) {
	if err := b.check(key, nil); err != nil {
		return 0, err
	}

	found := b.matching(key)
	if len(found) == 0 {
		return 0, ErrNotFound
	}

	for _, e := range found {
		b.tree.Delete(e)
	}

	return len(found), nil
}

func (b *BTree) Close() error {
	b.tree.Clear(false)
	return nil
}

func (b *BTree) Drop() error {
	return b.Close()
}
