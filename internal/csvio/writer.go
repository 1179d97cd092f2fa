package csvio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
)

// Write serializes the table to path, fully overwriting any existing file.
// The output starts with a UTF-8 BOM so Excel opens it correctly, matching
// the files the localization exporter produces.
func Write(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	bw := bufio.NewWriter(f)
	if _, err := bw.Write(utf8BOM); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	w := csv.NewWriter(bw)
	if err := w.Write(t.Columns); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, c := range t.Columns {
			rec[i] = row[c]
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
