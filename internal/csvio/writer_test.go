package csvio

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteRoundTrip(t *testing.T) {
	table := &Table{
		Columns: []string{"Key", "English(en)", "German(de)"},
		Rows: []Row{
			{"Key": "GREETING", "English(en)": "Hello", "German(de)": "Hallo"},
			{"Key": "COMMA", "English(en)": "Hello, world", "German(de)": ""},
		},
	}
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := Write(path, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read back failed: %v", err)
	}
	if !reflect.DeepEqual(got.Columns, table.Columns) {
		t.Errorf("Columns = %v, want %v", got.Columns, table.Columns)
	}
	if !reflect.DeepEqual(got.Rows, table.Rows) {
		t.Errorf("Rows = %v, want %v", got.Rows, table.Rows)
	}
}

func TestWriteEmitsBOM(t *testing.T) {
	table := &Table{Columns: []string{"Key"}}
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := Write(path, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("Expected output to start with a UTF-8 BOM")
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := os.WriteFile(path, []byte("stale content that is longer than the new file"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}

	table := &Table{
		Columns: []string{"Key"},
		Rows:    []Row{{"Key": "A"}},
	}
	if err := Write(path, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read back failed: %v", err)
	}
	if len(got.Rows) != 1 || got.Rows[0]["Key"] != "A" {
		t.Errorf("Expected fully replaced content, got %v", got.Rows)
	}
}

func TestWriteDeterministic(t *testing.T) {
	table := &Table{
		Columns: []string{"Key", "English(en)"},
		Rows: []Row{
			{"Key": "A", "English(en)": "one"},
			{"Key": "B", "English(en)": "two"},
		},
	}
	dir := t.TempDir()
	first := filepath.Join(dir, "first.csv")
	second := filepath.Join(dir, "second.csv")

	if err := Write(first, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := Write(second, table); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if !bytes.Equal(a, b) {
		t.Error("Expected identical output for identical tables")
	}
}
