package job

import (
	"fmt"
	"strings"

	"github.com/siyan12/csvtranslator/internal/translate"
)

// CellFailure records one (row, target language) cell that could not be
// translated. The cell keeps its prior value in the output.
type CellFailure struct {
	Key    string
	Lang   string
	Kind   translate.Kind
	Reason string
}

// Summary aggregates the outcome of a completed job.
type Summary struct {
	Files           int // folder mode: files successfully processed
	Rows            int
	TranslatedCells int
	FailedCells     int
	SkippedEmpty    int // cells whose source text was empty or not translatable
	SkippedExisting int // cells left alone in preserve-existing mode
	CacheHits       int // translations served from the translation memory
	FailuresByKind  map[translate.Kind]int
	Failures        []CellFailure
}

// NewSummary returns an empty summary ready to record results.
func NewSummary() *Summary {
	return &Summary{FailuresByKind: make(map[translate.Kind]int)}
}

func (s *Summary) recordFailure(key, lang string, kind translate.Kind, reason string) {
	s.FailedCells++
	s.FailuresByKind[kind]++
	s.Failures = append(s.Failures, CellFailure{Key: key, Lang: lang, Kind: kind, Reason: reason})
}

// Merge folds another file's summary into this one (folder mode).
func (s *Summary) Merge(other *Summary) {
	s.Files += other.Files
	s.Rows += other.Rows
	s.TranslatedCells += other.TranslatedCells
	s.FailedCells += other.FailedCells
	s.SkippedEmpty += other.SkippedEmpty
	s.SkippedExisting += other.SkippedExisting
	s.CacheHits += other.CacheHits
	for kind, n := range other.FailuresByKind {
		s.FailuresByKind[kind] += n
	}
	s.Failures = append(s.Failures, other.Failures...)
}

// String renders the summary the way the CLI and GUI log print it.
func (s *Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rows %d, translated cells %d", s.Rows, s.TranslatedCells)
	if s.CacheHits > 0 {
		fmt.Fprintf(&b, " (%d from memory)", s.CacheHits)
	}
	fmt.Fprintf(&b, ", skipped %d", s.SkippedEmpty+s.SkippedExisting)
	if s.FailedCells > 0 {
		fmt.Fprintf(&b, ", failed %d (", s.FailedCells)
		first := true
		for kind, n := range s.FailuresByKind {
			if !first {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %d", kind, n)
			first = false
		}
		b.WriteString(")")
	}
	return b.String()
}
