package database

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/google/uuid"

	"flatdb/keys"
)

// CatalogFilename is the master catalog inside the data directory, one JSON
// line per store.
const CatalogFilename = "master.jsonl"

// CatalogEntry is the persisted description of one store: everything needed
// to reopen it after a restart.
type CatalogEntry struct {
	UUID       string    `json:"uuid"`
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	KeyType    keys.Type `json:"key_type"`
	KeySize    int       `json:"key_size"`
	ValueSize  int       `json:"value_size"`
	BufferRows int       `json:"buffer_rows"`
	Backend    string    `json:"backend"`
	CreatedAt  time.Time `json:"created_at"`
}

func newCatalogEntry(id int, name string) CatalogEntry {
	return CatalogEntry{
		UUID:      uuid.New().String(),
		ID:        id,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func loadCatalog(filename string) ([]CatalogEntry, error) {

	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	entries := []CatalogEntry{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		entry := CatalogEntry{}
		if err := json.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("decode catalog entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return entries, nil
}

func appendCatalog(filename string, entry CatalogEntry) error {

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode catalog entry: %w", err)
	}

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("open catalog for append: %w", err)
	}

	_, err = f.Write(append(line, '\n'))
	if err != nil {
		f.Close()
		return fmt.Errorf("append catalog entry: %w", err)
	}

	return f.Close()
}

// writeCatalog rewrites the whole catalog, used after dropping a store. The
// new content lands in a temp file first and replaces the old catalog with
// a rename.
func writeCatalog(filename string, entries []CatalogEntry) error {

	tmp := filename + ".tmp"

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return fmt.Errorf("open catalog temp file: %w", err)
	}

	for _, entry := range entries {
		line, err := json.Marshal(entry)
		if err != nil {
			f.Close()
			return fmt.Errorf("encode catalog entry: %w", err)
		}
		if _, err := f.Write(append(line, '\n')); err != nil {
			f.Close()
			return fmt.Errorf("write catalog entry: %w", err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close catalog temp file: %w", err)
	}

	if err := os.Rename(tmp, filename); err != nil {
		return fmt.Errorf("replace catalog: %w", err)
	}

	return nil
}
