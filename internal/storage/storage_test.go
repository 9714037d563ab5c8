package storage

import (
	"bytes"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)

	t.Run("absent key -> not found", func(t *testing.T) {
		_, ok, err := store.Get(KeyToken)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if ok {
			t.Fatal("expected absent key")
		}
	})

	t.Run("put then get", func(t *testing.T) {
		if err := store.Put(KeyToken, []byte("abc")); err != nil {
			t.Fatalf("Put: %v", err)
		}
		value, ok, err := store.Get(KeyToken)
		if err != nil || !ok {
			t.Fatalf("Get: ok=%v err=%v", ok, err)
		}
		if !bytes.Equal(value, []byte("abc")) {
			t.Fatalf("got %q", value)
		}
	})

	t.Run("delete removes the entry", func(t *testing.T) {
		if err := store.Delete(KeyToken); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		_, ok, err := store.Get(KeyToken)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if ok {
			t.Fatal("expected entry to be gone")
		}
	})

	t.Run("delete of absent key succeeds", func(t *testing.T) {
		if err := store.Delete("never-written"); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})
}

func TestStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Put(KeyCart, []byte(`[]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	value, ok, err := reopened.Get(KeyCart)
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if string(value) != `[]` {
		t.Fatalf("got %q", value)
	}
}
