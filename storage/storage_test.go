package storage

import (
	"errors"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, open func(path string) (Store, error)) {
	t.Helper()
	store, err := open(filepath.Join(t.TempDir(), "db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if _, err := store.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := store.Put("balances", []byte(`{"alice":100}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := store.Get("balances")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"alice":100}` {
		t.Fatalf("Get = %q", got)
	}

	// overwrite
	if err := store.Put("balances", []byte(`{}`)); err != nil {
		t.Fatal(err)
	}
	got, err = store.Get("balances")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{}` {
		t.Fatalf("after overwrite Get = %q", got)
	}

	if err := store.Delete("balances"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get("balances"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
}

func TestBadgerStore(t *testing.T) {
	testStore(t, func(path string) (Store, error) { return OpenBadger(path) })
}

func TestLevelDBStore(t *testing.T) {
	testStore(t, func(path string) (Store, error) { return OpenLevelDB(path) })
}

func TestOpenSelectsEngine(t *testing.T) {
	dir := t.TempDir()

	s, err := Open("leveldb", filepath.Join(dir, "ldb"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*LevelDBStore); !ok {
		t.Fatalf("Open(leveldb) = %T", s)
	}
	s.Close()

	s, err = Open("badger", filepath.Join(dir, "bdg"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*BadgerStore); !ok {
		t.Fatalf("Open(badger) = %T", s)
	}
	s.Close()
}
