package memory

import (
	"path/filepath"
	"testing"
)

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer store.Close()

	if _, ok := store.Get("Hello", "de"); ok {
		t.Error("Expected miss on fresh database")
	}

	if err := store.Put("Hello", "de", "Hallo"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok := store.Get("Hello", "de")
	if !ok || got != "Hallo" {
		t.Errorf("Get = %q, %v, want 'Hallo', true", got, ok)
	}
}

func TestSQLiteStoreUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	defer store.Close()

	if err := store.Put("Hello", "de", "Hallo"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("Hello", "de", "Hallo zusammen"); err != nil {
		t.Fatalf("Second put failed: %v", err)
	}

	got, _ := store.Get("Hello", "de")
	if got != "Hallo zusammen" {
		t.Errorf("Expected upsert to replace value, got %q", got)
	}
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := store.Put("Hello", "de", "Hallo"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer reopened.Close()

	got, ok := reopened.Get("Hello", "de")
	if !ok || got != "Hallo" {
		t.Errorf("Expected persisted entry, got %q, %v", got, ok)
	}
}

func TestOpenSQLiteCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "memory.db")

	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	store.Close()
}
