package csvio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}
	return path
}

func TestReadBasic(t *testing.T) {
	path := writeFixture(t, "strings.csv",
		"Key,Id,English(en),German(de)\n"+
			"GREETING,1,Hello,Hallo\n"+
			"FAREWELL,2,Goodbye,\n")

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	wantCols := []string{"Key", "Id", "English(en)", "German(de)"}
	if len(table.Columns) != len(wantCols) {
		t.Fatalf("Expected %d columns, got %d", len(wantCols), len(table.Columns))
	}
	for i, c := range wantCols {
		if table.Columns[i] != c {
			t.Errorf("Column %d = %q, want %q", i, table.Columns[i], c)
		}
	}

	if len(table.Rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0]["Key"] != "GREETING" {
		t.Errorf("Expected key 'GREETING', got %q", table.Rows[0]["Key"])
	}
	if table.Rows[0]["German(de)"] != "Hallo" {
		t.Errorf("Expected 'Hallo', got %q", table.Rows[0]["German(de)"])
	}
	if table.Rows[1]["German(de)"] != "" {
		t.Errorf("Expected empty German cell, got %q", table.Rows[1]["German(de)"])
	}
}

func TestReadStripsBOM(t *testing.T) {
	path := writeFixture(t, "bom.csv",
		"\xEF\xBB\xBFKey,English(en)\nGREETING,Hello\n")

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if table.Columns[0] != "Key" {
		t.Errorf("Expected first column 'Key' after BOM strip, got %q", table.Columns[0])
	}
}

func TestReadMissingKeyColumn(t *testing.T) {
	path := writeFixture(t, "nokey.csv", "Id,English(en)\n1,Hello\n")

	_, err := Read(path)
	if !errors.Is(err, ErrMissingKeyColumn) {
		t.Errorf("Expected ErrMissingKeyColumn, got %v", err)
	}
}

func TestReadEmptyFile(t *testing.T) {
	path := writeFixture(t, "empty.csv", "")

	_, err := Read(path)
	if !errors.Is(err, ErrEmptyFile) {
		t.Errorf("Expected ErrEmptyFile, got %v", err)
	}
}

func TestReadDuplicateColumn(t *testing.T) {
	path := writeFixture(t, "dup.csv", "Key,English(en),English(en)\n")

	_, err := Read(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate column") {
		t.Errorf("Expected duplicate column error, got %v", err)
	}
}

func TestReadPadsShortRows(t *testing.T) {
	path := writeFixture(t, "short.csv",
		"Key,English(en),German(de)\nGREETING,Hello\n")

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := table.Rows[0]["German(de)"]; got != "" {
		t.Errorf("Expected padded empty cell, got %q", got)
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestReadQuotedFields(t *testing.T) {
	path := writeFixture(t, "quoted.csv",
		"Key,English(en)\nGREETING,\"Hello, world\"\n")

	table, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got := table.Rows[0]["English(en)"]; got != "Hello, world" {
		t.Errorf("Expected 'Hello, world', got %q", got)
	}
}
