package csvio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMissingKeyColumn is returned when the header has no "Key" column.
var ErrMissingKeyColumn = errors.New("csv missing 'Key' column")

// ErrEmptyFile is returned when the file contains no header record.
var ErrEmptyFile = errors.New("csv file is empty")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Read parses a CSV file into a Table. The file must be UTF-8 (a leading
// BOM is stripped), comma-delimited, with the header in the first record.
// Rows shorter than the header are padded with empty cells.
func Read(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	t, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

func parse(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	r := csv.NewReader(bufio.NewReader(bytes.NewReader(data)))
	r.FieldsPerRecord = -1 // pad short rows ourselves

	header, err := r.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, err
	}

	t := &Table{Columns: append([]string(nil), header...)}
	if !t.HasColumn(KeyColumn) {
		return nil, ErrMissingKeyColumn
	}
	seen := make(map[string]struct{}, len(header))
	for _, c := range header {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
		seen[c] = struct{}{}
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(Row, len(header))
		for i, c := range header {
			if i < len(rec) {
				row[c] = rec[i]
			} else {
				row[c] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
