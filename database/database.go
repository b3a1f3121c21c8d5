// Package database owns a data directory full of stores. The master catalog
// records every store's geometry so the directory can be reopened, the
// stores themselves live in per-id flat files next to it.
package database

import (
	"fmt"
	"log"
	"os"
	"path"
	"sync"
	"time"

	"flatdb/dictionary"
	"flatdb/keys"
)

const (
	StatusOpening   = "opening"
	StatusOperating = "operating"
	StatusClosing   = "closing"
)

type Config struct {
	Dir string
}

// StoreOptions is the caller-supplied part of a new store's catalog entry.
type StoreOptions struct {
	KeyType    keys.Type
	KeySize    int
	ValueSize  int
	BufferRows int
	Backend    string
}

// Store couples a catalog entry with its open dictionary. Operations are
// serialized per store, the storage engines are single-caller by design.
type Store struct {
	Entry CatalogEntry

	mu   sync.Mutex
	dict dictionary.Dictionary
}

func (s *Store) Insert(key, value []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Insert(key, value)
}

func (s *Store) Get(key []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Get(key)
}

func (s *Store) Update(key, value []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Update(key, value)
}

func (s *Store) Delete(key []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dict.Delete(key)
}

// Rows reports the number of row slots for backends that track them, 0
// otherwise.
func (s *Store) Rows() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if counter, ok := s.dict.(interface{ Rows() (int64, error) }); ok {
		return counter.Rows()
	}
	return 0, nil
}

type Database struct {
	config *Config
	status string

	mu     sync.Mutex
	Stores map[string]*Store
	nextID int

	exit chan struct{}
}

func NewDatabase(config *Config) *Database {
	return &Database{
		config: config,
		status: StatusOpening,
		Stores: map[string]*Store{},
		nextID: 1,
		exit:   make(chan struct{}),
	}
}

func (db *Database) GetStatus() string {
	return db.status
}

func (db *Database) Dir() string {
	return db.config.Dir
}

// CreateStore allocates the next numeric id, persists the catalog entry and
// opens the store.
func (db *Database) CreateStore(name string, options StoreOptions) (*Store, error) {

	db.mu.Lock()
	defer db.mu.Unlock()

	_, exists := db.Stores[name]
	if exists {
		return nil, fmt.Errorf("store '%s' already exists", name)
	}

	if options.BufferRows <= 0 {
		// Same clamp the flat file applies, keep the catalog honest
		options.BufferRows = 1
	}

	entry := newCatalogEntry(db.nextID, name)
	entry.KeyType = options.KeyType
	entry.KeySize = options.KeySize
	entry.ValueSize = options.ValueSize
	entry.BufferRows = options.BufferRows
	entry.Backend = options.Backend

	dict, err := dictionary.New(db.config.Dir, dictionaryConfig(entry))
	if err != nil {
		return nil, err
	}

	err = appendCatalog(db.catalogFilename(), entry)
	if err != nil {
		dict.Drop()
		return nil, err
	}

	db.nextID++

	store := &Store{Entry: entry, dict: dict}
	db.Stores[name] = store

	return store, nil
}

// GetStore returns the open store registered under name, or nil.
func (db *Database) GetStore(name string) *Store {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.Stores[name]
}

// ListStores returns the catalog entries of every open store.
func (db *Database) ListStores() []CatalogEntry {
	db.mu.Lock()
	defer db.mu.Unlock()

	entries := []CatalogEntry{}
	for _, store := range db.Stores {
		entries = append(entries, store.Entry)
	}
	return entries
}

// DropStore destroys the store's backing storage and removes it from the
// catalog.
func (db *Database) DropStore(name string) error {

	db.mu.Lock()
	defer db.mu.Unlock()

	store, exists := db.Stores[name]
	if !exists {
		return fmt.Errorf("store '%s' not found", name)
	}

	err := store.dict.Drop()
	if err != nil {
		return err
	}

	delete(db.Stores, name)

	remaining := []CatalogEntry{}
	for _, s := range db.Stores {
		remaining = append(remaining, s.Entry)
	}

	return writeCatalog(db.catalogFilename(), remaining)
}

// Load replays the master catalog and reopens every store it lists.
func (db *Database) Load() error {

	log.Printf("Loading database %s...", db.config.Dir)

	err := os.MkdirAll(db.config.Dir, 0755)
	if err != nil {
		db.status = StatusClosing
		return err
	}

	entries, err := loadCatalog(db.catalogFilename())
	if err != nil {
		db.status = StatusClosing
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	for _, entry := range entries {
		t0 := time.Now()
		dict, err := dictionary.New(db.config.Dir, dictionaryConfig(entry))
		if err != nil {
			db.status = StatusClosing
			return fmt.Errorf("open store '%s': %w", entry.Name, err)
		}

		db.Stores[entry.Name] = &Store{Entry: entry, dict: dict}
		if entry.ID >= db.nextID {
			db.nextID = entry.ID + 1
		}

		log.Println(entry.Name, entry.Backend, time.Since(t0))
	}

	db.status = StatusOperating

	return nil
}

// Start loads the database in the background and blocks until Stop.
func (db *Database) Start() error {

	go db.Load()

	<-db.exit

	return nil
}

// Stop closes every open store, keeping their data on disk.
func (db *Database) Stop() error {

	defer close(db.exit)

	db.status = StatusClosing

	db.mu.Lock()
	defer db.mu.Unlock()

	var lastErr error
	for name, store := range db.Stores {
		err := store.dict.Close()
		if err != nil {
			log.Printf("ERROR: close(%s): %s", name, err.Error())
			lastErr = err
		}
	}

	return lastErr
}

func (db *Database) catalogFilename() string {
	return path.Join(db.config.Dir, CatalogFilename)
}

func dictionaryConfig(entry CatalogEntry) dictionary.Config {
	return dictionary.Config{
		ID:         entry.ID,
		KeyType:    entry.KeyType,
		KeySize:    entry.KeySize,
		ValueSize:  entry.ValueSize,
		BufferRows: entry.BufferRows,
		Backend:    entry.Backend,
	}
}
