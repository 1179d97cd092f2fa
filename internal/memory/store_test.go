package memory

import "testing"

func TestMemStore(t *testing.T) {
	store := NewMemStore()

	if _, ok := store.Get("Hello", "de"); ok {
		t.Error("Expected miss on empty store")
	}

	if err := store.Put("Hello", "de", "Hallo"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, ok := store.Get("Hello", "de")
	if !ok || got != "Hallo" {
		t.Errorf("Get = %q, %v, want 'Hallo', true", got, ok)
	}

	// Same text under a different language is a separate entry.
	if _, ok := store.Get("Hello", "fr"); ok {
		t.Error("Expected miss for different language")
	}

	if err := store.Put("Hello", "de", "Hallo!"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	got, _ = store.Get("Hello", "de")
	if got != "Hallo!" {
		t.Errorf("Expected replacement value, got %q", got)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 entry after replace, got %d", store.Len())
	}

	if err := store.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
