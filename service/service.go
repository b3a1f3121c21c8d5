package service

import (
	"errors"
	"fmt"
	"strings"

	"flatdb/database"
	"flatdb/dictionary"
	"flatdb/keys"
)

// CreateStoreOptions carries the geometry of a new store. KeySize and
// ValueSize are mandatory, KeyType defaults to "bytes", Backend to
// "flatfile" and BufferRows to 1.
type CreateStoreOptions struct {
	KeyType    string `json:"keyType"`
	KeySize    int    `json:"keySize"`
	ValueSize  int    `json:"valueSize"`
	BufferRows int    `json:"bufferRows"`
	Backend    string `json:"backend"`
}

type StoreInfo struct {
	Name       string `json:"name"`
	KeyType    string `json:"keyType"`
	KeySize    int    `json:"keySize"`
	ValueSize  int    `json:"valueSize"`
	BufferRows int    `json:"bufferRows"`
	Backend    string `json:"backend"`
	Rows       int64  `json:"rows"`
}

type Service struct {
	db *database.Database
}

func NewService(db *database.Database) *Service {
	return &Service{
		db: db,
	}
}

func (s *Service) CreateStore(name string, options CreateStoreOptions) (*StoreInfo, error) {

	if s.db.GetStore(name) != nil {
		return nil, ErrorStoreAlreadyExists
	}

	keyType := keys.Bytes
	if options.KeyType != "" {
		var err error
		keyType, err = keys.ParseType(options.KeyType)
		if err != nil {
			return nil, err
		}
	}

	store, err := s.db.CreateStore(name, database.StoreOptions{
		KeyType:    keyType,
		KeySize:    options.KeySize,
		ValueSize:  options.ValueSize,
		BufferRows: options.BufferRows,
		Backend:    options.Backend,
	})
	if err != nil {
		return nil, err
	}

	return storeInfo(store)
}

func (s *Service) GetStore(name string) (*StoreInfo, error) {
	store := s.db.GetStore(name)
	if store == nil {
		return nil, ErrorStoreNotFound
	}
	return storeInfo(store)
}

func (s *Service) ListStores() ([]*StoreInfo, error) {
	result := []*StoreInfo{}
	for _, entry := range s.db.ListStores() {
		store := s.db.GetStore(entry.Name)
		if store == nil {
			continue
		}
		info, err := storeInfo(store)
		if err != nil {
			return nil, err
		}
		result = append(result, info)
	}
	return result, nil
}

func (s *Service) DropStore(name string) error {
	if s.db.GetStore(name) == nil {
		return ErrorStoreNotFound
	}
	return s.db.DropStore(name)
}

func (s *Service) Insert(storeName, key, value string) (int, error) {
	store := s.db.GetStore(storeName)
	if store == nil {
		return 0, ErrorStoreNotFound
	}

	k, err := fit(key, store.Entry.KeySize, "key")
	if err != nil {
		return 0, err
	}
	v, err := fit(value, store.Entry.ValueSize, "value")
	if err != nil {
		return 0, err
	}

	return store.Insert(k, v)
}

func (s *Service) Get(storeName, key string) (string, error) {
	store := s.db.GetStore(storeName)
	if store == nil {
		return "", ErrorStoreNotFound
	}

	k, err := fit(key, store.Entry.KeySize, "key")
	if err != nil {
		return "", err
	}

	value, err := store.Get(k)
	if errors.Is(err, dictionary.ErrNotFound) {
		return "", ErrorKeyNotFound
	}
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(value), "\x00"), nil
}

func (s *Service) Update(storeName, key, value string) (int, error) {
	store := s.db.GetStore(storeName)
	if store == nil {
		return 0, ErrorStoreNotFound
	}

	k, err := fit(key, store.Entry.KeySize, "key")
	if err != nil {
		return 0, err
	}
	v, err := fit(value, store.Entry.ValueSize, "value")
	if err != nil {
		return 0, err
	}

	return store.Update(k, v)
}

func (s *Service) Delete(storeName, key string) (int, error) {
	store := s.db.GetStore(storeName)
	if store == nil {
		return 0, ErrorStoreNotFound
	}

	k, err := fit(key, store.Entry.KeySize, "key")
	if err != nil {
		return 0, err
	}

	count, err := store.Delete(k)
	if errors.Is(err, dictionary.ErrNotFound) {
		return 0, ErrorKeyNotFound
	}

	return count, err
}

// fit pads s with zero bytes up to size. Input longer than the fixed width
// is rejected rather than truncated.
func fit(s string, size int, what string) ([]byte, error) {
	if len(s) > size {
		return nil, fmt.Errorf("%s length %d exceeds %s size %d", what, len(s), what, size)
	}
	b := make([]byte, size)
	copy(b, s)
	return b, nil
}

func storeInfo(store *database.Store) (*StoreInfo, error) {
	rows, err := store.Rows()
	if err != nil {
		return nil, err
	}
	return &StoreInfo{
		Name:       store.Entry.Name,
		KeyType:    store.Entry.KeyType.String(),
		KeySize:    store.Entry.KeySize,
		ValueSize:  store.Entry.ValueSize,
		BufferRows: store.Entry.BufferRows,
		Backend:    backendName(store.Entry.Backend),
		Rows:       rows,
	}, nil
}

func backendName(backend string) string {
	if backend == "" {
		return dictionary.BackendFlatFile
	}
	return backend
}
