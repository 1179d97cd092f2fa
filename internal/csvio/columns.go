package csvio

import (
	"fmt"
	"strings"
)

// ColumnForLang resolves the column holding text for a language code. A
// header matches when it equals the code (case-insensitively) or carries it
// as a parenthesized suffix, the way Unity Localization names its columns:
// "English(en)" matches "en". The Key and Id columns never match.
func ColumnForLang(t *Table, code string) (string, bool) {
	suffix := "(" + strings.ToLower(code) + ")"
	for _, c := range t.Columns {
		if c == KeyColumn || c == IDColumn {
			continue
		}
		lc := strings.ToLower(strings.TrimSpace(c))
		if lc == strings.ToLower(code) || strings.HasSuffix(lc, suffix) {
			return c, true
		}
	}
	return "", false
}

// SourceColumn resolves the column containing source-language text.
func SourceColumn(t *Table, code string) (string, error) {
	col, ok := ColumnForLang(t, code)
	if !ok {
		return "", fmt.Errorf("source column for language %q not found in header %v", code, t.Columns)
	}
	return col, nil
}

// TargetColumn resolves where translations for a target language go. An
// existing matching column is overwritten in place; otherwise a new column
// named by the bare language code is appended to the table.
func TargetColumn(t *Table, code string) string {
	if col, ok := ColumnForLang(t, code); ok {
		return col
	}
	t.AddColumn(code)
	return code
}
