package translate

import (
	"errors"
	"fmt"
)

// Kind classifies a translation failure. The orchestrator treats Auth as
// job-fatal, UnsupportedLanguage as fatal for that target language, and the
// rest as cell-level failures.
type Kind int

const (
	// KindAuth means the credential was rejected by the provider.
	KindAuth Kind = iota
	// KindRateLimit means the provider refused the call for quota or
	// throughput reasons. Retryable.
	KindRateLimit
	// KindTransientNetwork covers transport failures and provider 5xx
	// responses. Retryable.
	KindTransientNetwork
	// KindUnsupportedLanguage means the provider does not know the
	// requested source or target language. Never retried.
	KindUnsupportedLanguage
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindRateLimit:
		return "rate_limit"
	case KindTransientNetwork:
		return "transient_network"
	case KindUnsupportedLanguage:
		return "unsupported_language"
	default:
		return "unknown"
	}
}

// Error is a classified translation failure.
type Error struct {
	Kind     Kind
	Message  string
	Attempts int // network attempts made before giving up
	Err      error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Attempts > 1 {
		return fmt.Sprintf("%s: %s (after %d attempts)", e.Kind, msg, e.Attempts)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the failure kind may succeed on a later attempt.
func (e *Error) Retryable() bool {
	return e.Kind == KindRateLimit || e.Kind == KindTransientNetwork
}

// KindOf extracts the failure kind from an error chain. The second return
// is false when the error is not a classified translation failure.
func KindOf(err error) (Kind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// IsAuth reports whether the error chain contains a credential failure.
func IsAuth(err error) bool {
	k, ok := KindOf(err)
	return ok && k == KindAuth
}
