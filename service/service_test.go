package service

import (
	"errors"
	"testing"

	"flatdb/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db := database.NewDatabase(&database.Config{Dir: t.TempDir()})
	if err := db.Load(); err != nil {
		t.Fatalf("load database: %v", err)
	}
	t.Cleanup(func() {
		db.Stop()
	})

	return NewService(db)
}

func TestCreateStore(t *testing.T) {

	s := newTestService(t)

	info, err := s.CreateStore("users", CreateStoreOptions{
		KeySize:   8,
		ValueSize: 16,
	})
	if err != nil {
		t.Fatalf("create store: %v", err)
	}

	if info.Name != "users" {
		t.Fatalf("name = %q, want %q", info.Name, "users")
	}
	if info.KeyType != "bytes" {
		t.Fatalf("key type = %q, want default %q", info.KeyType, "bytes")
	}
	if info.Backend != "flatfile" {
		t.Fatalf("backend = %q, want default %q", info.Backend, "flatfile")
	}
	if info.Rows != 0 {
		t.Fatalf("rows = %d, want 0", info.Rows)
	}

	if _, err := s.CreateStore("users", CreateStoreOptions{KeySize: 8, ValueSize: 16}); !errors.Is(err, ErrorStoreAlreadyExists) {
		t.Fatalf("duplicate create error = %v, want ErrorStoreAlreadyExists", err)
	}

	if _, err := s.CreateStore("bad", CreateStoreOptions{KeyType: "float", KeySize: 8, ValueSize: 16}); err == nil {
		t.Fatal("unknown key type accepted")
	}
}

func TestGetStore(t *testing.T) {

	s := newTestService(t)

	if _, err := s.GetStore("none"); !errors.Is(err, ErrorStoreNotFound) {
		t.Fatalf("get absent store error = %v, want ErrorStoreNotFound", err)
	}

	s.CreateStore("users", CreateStoreOptions{KeySize: 8, ValueSize: 16})

	info, err := s.GetStore("users")
	if err != nil {
		t.Fatalf("get store: %v", err)
	}
	if info.KeySize != 8 || info.ValueSize != 16 {
		t.Fatalf("geometry = %d/%d, want 8/16", info.KeySize, info.ValueSize)
	}
}

func TestCrud(t *testing.T) {

	s := newTestService(t)

	s.CreateStore("users", CreateStoreOptions{KeySize: 8, ValueSize: 16, BufferRows: 2})

	count, err := s.Insert("users", "alice", "madrid")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if count != 1 {
		t.Fatalf("insert count = %d, want 1", count)
	}

	// Values come back without their zero padding
	value, err := s.Get("users", "alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if value != "madrid" {
		t.Fatalf("get = %q, want %q", value, "madrid")
	}

	count, err = s.Update("users", "alice", "bilbao")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if count != 1 {
		t.Fatalf("update count = %d, want 1", count)
	}
	value, _ = s.Get("users", "alice")
	if value != "bilbao" {
		t.Fatalf("get after update = %q, want %q", value, "bilbao")
	}

	count, err = s.Delete("users", "alice")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if count != 1 {
		t.Fatalf("delete count = %d, want 1", count)
	}

	if _, err := s.Get("users", "alice"); !errors.Is(err, ErrorKeyNotFound) {
		t.Fatalf("get after delete error = %v, want ErrorKeyNotFound", err)
	}
	if _, err := s.Delete("users", "alice"); !errors.Is(err, ErrorKeyNotFound) {
		t.Fatalf("delete absent error = %v, want ErrorKeyNotFound", err)
	}
}

func TestCrudStoreNotFound(t *testing.T) {

	s := newTestService(t)

	if _, err := s.Insert("none", "k", "v"); !errors.Is(err, ErrorStoreNotFound) {
		t.Fatalf("insert error = %v, want ErrorStoreNotFound", err)
	}
	if _, err := s.Get("none", "k"); !errors.Is(err, ErrorStoreNotFound) {
		t.Fatalf("get error = %v, want ErrorStoreNotFound", err)
	}
	if _, err := s.Update("none", "k", "v"); !errors.Is(err, ErrorStoreNotFound) {
		t.Fatalf("update error = %v, want ErrorStoreNotFound", err)
	}
	if _, err := s.Delete("none", "k"); !errors.Is(err, ErrorStoreNotFound) {
		t.Fatalf("delete error = %v, want ErrorStoreNotFound", err)
	}
}

func TestOversizeRejected(t *testing.T) {

	s := newTestService(t)

	s.CreateStore("users", CreateStoreOptions{KeySize: 4, ValueSize: 4})

	if _, err := s.Insert("users", "toolongkey", "v"); err == nil {
		t.Fatal("oversize key accepted")
	}
	if _, err := s.Insert("users", "k", "toolongvalue"); err == nil {
		t.Fatal("oversize value accepted")
	}
}

func TestListStores(t *testing.T) {

	s := newTestService(t)

	infos, err := s.ListStores()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("listed %d stores, want 0", len(infos))
	}

	s.CreateStore("users", CreateStoreOptions{KeySize: 4, ValueSize: 4})
	s.CreateStore("orders", CreateStoreOptions{KeySize: 4, ValueSize: 4, Backend: "btree"})

	infos, err = s.ListStores()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("listed %d stores, want 2", len(infos))
	}
}

func TestDropStore(t *testing.T) {

	s := newTestService(t)

	if err := s.DropStore("none"); !errors.Is(err, ErrorStoreNotFound) {
		t.Fatalf("drop absent store error = %v, want ErrorStoreNotFound", err)
	}

	s.CreateStore("users", CreateStoreOptions{KeySize: 4, ValueSize: 4})

	if err := s.DropStore("users"); err != nil {
		t.Fatalf("drop store: %v", err)
	}
	if _, err := s.GetStore("users"); !errors.Is(err, ErrorStoreNotFound) {
		t.Fatalf("get dropped store error = %v, want ErrorStoreNotFound", err)
	}
}
