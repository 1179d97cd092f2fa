package memory

import "sync"

// Store looks up and records translations keyed on source text and target
// language.
type Store interface {
	Get(sourceText, targetLang string) (string, bool)
	Put(sourceText, targetLang, translation string) error
	Close() error
}

// MemStore is the in-process translation memory used for one-shot runs and
// tests.
type MemStore struct {
	mu sync.RWMutex
	m  map[memKey]string
}

type memKey struct {
	text string
	lang string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[memKey]string)}
}

func (s *MemStore) Get(sourceText, targetLang string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[memKey{sourceText, targetLang}]
	return v, ok
}

func (s *MemStore) Put(sourceText, targetLang, translation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[memKey{sourceText, targetLang}] = translation
	return nil
}

func (s *MemStore) Close() error { return nil }

// Len returns the number of stored translations.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.m)
}
