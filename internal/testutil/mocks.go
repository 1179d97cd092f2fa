package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/siyan12/csvtranslator/internal/translate"
)

// MockTranslator mocks the translation client. Responses and errors are
// keyed on the source text; unscripted texts get a deterministic default.
type MockTranslator struct {
	mu           sync.Mutex
	Translations map[string]string // text -> translated text
	Errors       map[string]error  // text -> error for every call
	LangErrors   map[string]error  // target lang -> error for every call
	Calls        []string
}

// NewMockTranslator creates an empty scripted translator.
func NewMockTranslator() *MockTranslator {
	return &MockTranslator{
		Translations: make(map[string]string),
		Errors:       make(map[string]error),
		LangErrors:   make(map[string]error),
	}
}

// Translate mocks translating text.
func (m *MockTranslator) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, fmt.Sprintf("%s (%s->%s)", text, fromLang, toLang))

	if err, ok := m.LangErrors[toLang]; ok {
		return "", err
	}
	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if translation, ok := m.Translations[text]; ok {
		return translation, nil
	}

	// Default deterministic mock translation
	return fmt.Sprintf("%s[%s]", text, toLang), nil
}

// CallCount returns how many translation calls were made.
func (m *MockTranslator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// AuthError builds a credential failure the way the real client reports it.
func AuthError() error {
	return &translate.Error{Kind: translate.KindAuth, Message: "invalid API key"}
}

// RateLimitError builds an exhausted-retries rate limit failure.
func RateLimitError() error {
	return &translate.Error{Kind: translate.KindRateLimit, Message: "too many requests", Attempts: 3}
}

// UnsupportedLanguageError builds a provider language rejection.
func UnsupportedLanguageError() error {
	return &translate.Error{Kind: translate.KindUnsupportedLanguage, Message: "target_lang not supported"}
}
