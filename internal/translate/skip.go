package translate

import (
	"regexp"
	"strings"
)

var (
	urlRE        = regexp.MustCompile(`(?i)^(https?://|www\.)`)
	onlyDigitsRE = regexp.MustCompile(`^\d+(\.\d+)?$`)
	onlyPunctRE  = regexp.MustCompile(`^[\W_]+$`)
)

// SkippableSource reports whether a source cell should never be sent to the
// translation provider: empty text, URLs, bare numbers, and cells that are
// punctuation only. Skipped cells translate to empty output.
func SkippableSource(text string) bool {
	t := strings.TrimSpace(text)
	if t == "" {
		return true
	}
	if urlRE.MatchString(t) {
		return true
	}
	if onlyDigitsRE.MatchString(t) {
		return true
	}
	if onlyPunctRE.MatchString(t) {
		return true
	}
	return false
}
