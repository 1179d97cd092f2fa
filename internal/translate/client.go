package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"
)

// Translator is the single operation the batch pipeline needs from the
// translation provider.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

const (
	proEndpoint  = "https://api.deepl.com"
	freeEndpoint = "https://api-free.deepl.com"
)

// Options tunes the client's retry behavior. Retries apply only to rate
// limit and transient network failures.
type Options struct {
	MaxAttempts int           // network attempts per call (default 3)
	BaseDelay   time.Duration // first backoff delay, doubled per attempt (default 1s)
	Timeout     time.Duration // per-request timeout (default 30s)
	BaseURL     string        // override endpoint, used by tests
}

// Client calls the DeepL REST API. Free-tier keys (suffix ":fx") are routed
// to the free endpoint automatically.
type Client struct {
	apiKey  string
	opts    Options
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a DeepL client for the given API key.
func NewClient(apiKey string, opts Options) *Client {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = time.Second
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.BaseURL == "" {
		if strings.HasSuffix(apiKey, ":fx") {
			opts.BaseURL = freeEndpoint
		} else {
			opts.BaseURL = proEndpoint
		}
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "deepl",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		apiKey:  apiKey,
		opts:    opts,
		http:    resty.New().SetTimeout(opts.Timeout).SetBaseURL(opts.BaseURL),
		breaker: breaker,
	}
}

type translateRequest struct {
	Text               []string `json:"text"`
	SourceLang         string   `json:"source_lang,omitempty"`
	TargetLang         string   `json:"target_lang"`
	PreserveFormatting bool     `json:"preserve_formatting"`
	SplitSentences     string   `json:"split_sentences"`
	Formality          string   `json:"formality"`
}

type translateResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

type apiError struct {
	Message string `json:"message"`
}

// Translate sends one text to DeepL and returns the translation. Language
// arguments accept bare codes or Unity column headers. Rate limit and
// transient failures are retried with exponential backoff up to the
// configured attempt count; the returned error is a classified *Error.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if c.apiKey == "" {
		return "", &Error{Kind: KindAuth, Message: "DeepL API key not set"}
	}

	var lastErr *Error
	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.opts.BaseDelay << (attempt - 2)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		translated, err := c.translateOnce(ctx, text, sourceLang, targetLang)
		if err == nil {
			return translated, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var te *Error
		if !errors.As(err, &te) {
			te = &Error{Kind: KindTransientNetwork, Err: err}
		}
		te.Attempts = attempt
		if !te.Retryable() {
			return "", te
		}
		lastErr = te
	}
	return "", lastErr
}

func (c *Client) translateOnce(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	body := translateRequest{
		Text:               []string{text},
		SourceLang:         DeepLCode(sourceLang),
		TargetLang:         DeepLCode(targetLang),
		PreserveFormatting: true,
		SplitSentences:     "nonewlines",
		Formality:          "default",
	}

	result, err := c.breaker.Execute(func() (any, error) {
		var resp translateResponse
		var apiErr apiError
		r, err := c.http.R().
			SetContext(ctx).
			SetHeader("Authorization", "DeepL-Auth-Key "+c.apiKey).
			SetHeader("Content-Type", "application/json").
			SetBody(body).
			SetResult(&resp).
			SetError(&apiErr).
			Post("/v2/translate")
		if err != nil {
			return nil, &Error{Kind: KindTransientNetwork, Err: err}
		}
		if r.IsError() {
			return nil, classifyStatus(r.StatusCode(), apiErr.Message)
		}
		if len(resp.Translations) == 0 {
			return nil, &Error{Kind: KindTransientNetwork, Message: "empty response from provider"}
		}
		return resp.Translations[0].Text, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return "", &Error{Kind: KindTransientNetwork, Message: "provider circuit open", Err: err}
		}
		return "", err
	}
	return result.(string), nil
}

// classifyStatus maps a DeepL HTTP status to a failure kind. 456 is DeepL's
// "quota exceeded" status.
func classifyStatus(status int, message string) *Error {
	msg := message
	if msg == "" {
		msg = fmt.Sprintf("provider returned HTTP %d", status)
	}
	switch {
	case status == 401 || status == 403:
		return &Error{Kind: KindAuth, Message: msg}
	case status == 429 || status == 456:
		return &Error{Kind: KindRateLimit, Message: msg}
	case status == 400 && mentionsLanguage(message):
		return &Error{Kind: KindUnsupportedLanguage, Message: msg}
	default:
		return &Error{Kind: KindTransientNetwork, Message: msg}
	}
}

func mentionsLanguage(message string) bool {
	m := strings.ToLower(message)
	return strings.Contains(m, "target_lang") || strings.Contains(m, "source_lang") ||
		strings.Contains(m, "language")
}

// TestKey checks the credential with a one-word probe translation, the same
// check the original tool runs before a batch.
func (c *Client) TestKey(ctx context.Context) error {
	_, err := c.Translate(ctx, "Hello", "en", "de")
	return err
}
