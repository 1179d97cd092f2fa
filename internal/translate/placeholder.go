package translate

import (
	"fmt"
	"regexp"
	"strings"
)

// Format placeholders that must survive translation untouched: {0}/{name},
// printf-style verbs, and $1-style markers.
var placeholderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{[^}]*\}`),
	regexp.MustCompile(`%[sdif]`),
	regexp.MustCompile(`\$\d+`),
}

const (
	tokenPrefix = "§§PH_"
	tokenSuffix = "§§"
)

// TokenizePlaceholders replaces format placeholders with opaque tokens the
// provider will pass through verbatim. The returned mapping restores the
// originals via DetokenizePlaceholders.
func TokenizePlaceholders(text string) (string, map[string]string) {
	mapping := map[string]string{}
	index := 0
	out := text
	for _, pattern := range placeholderPatterns {
		out = pattern.ReplaceAllStringFunc(out, func(match string) string {
			token := fmt.Sprintf("%s%d%s", tokenPrefix, index, tokenSuffix)
			mapping[token] = match
			index++
			return token
		})
	}
	return out, mapping
}

// DetokenizePlaceholders restores the placeholders captured by
// TokenizePlaceholders in the translated text.
func DetokenizePlaceholders(text string, mapping map[string]string) string {
	out := text
	for token, original := range mapping {
		out = strings.ReplaceAll(out, token, original)
	}
	return out
}
