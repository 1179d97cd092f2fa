package csvio

import "testing"

func TestColumnForLang(t *testing.T) {
	table := &Table{Columns: []string{"Key", "Id", "English(en)", "German(de)", "fr"}}

	tests := []struct {
		code    string
		wantCol string
		wantOK  bool
	}{
		{"en", "English(en)", true},
		{"de", "German(de)", true},
		{"DE", "German(de)", true},
		{"fr", "fr", true},
		{"FR", "fr", true},
		{"ja", "", false},
		// Key and Id never match a language lookup.
		{"id", "", false},
		{"key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			col, ok := ColumnForLang(table, tt.code)
			if ok != tt.wantOK {
				t.Fatalf("ColumnForLang(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			}
			if col != tt.wantCol {
				t.Errorf("ColumnForLang(%q) = %q, want %q", tt.code, col, tt.wantCol)
			}
		})
	}
}

func TestSourceColumn(t *testing.T) {
	table := &Table{Columns: []string{"Key", "English(en)"}}

	col, err := SourceColumn(table, "en")
	if err != nil {
		t.Fatalf("SourceColumn failed: %v", err)
	}
	if col != "English(en)" {
		t.Errorf("Expected 'English(en)', got %q", col)
	}

	if _, err := SourceColumn(table, "de"); err == nil {
		t.Error("Expected error for missing source column")
	}
}

func TestTargetColumnExisting(t *testing.T) {
	table := &Table{Columns: []string{"Key", "English(en)", "German(de)"}}

	col := TargetColumn(table, "de")
	if col != "German(de)" {
		t.Errorf("Expected existing column 'German(de)', got %q", col)
	}
	if len(table.Columns) != 3 {
		t.Errorf("Expected no new column, header is %v", table.Columns)
	}
}

func TestTargetColumnAppends(t *testing.T) {
	table := &Table{Columns: []string{"Key", "English(en)"}}

	col := TargetColumn(table, "ja")
	if col != "ja" {
		t.Errorf("Expected new column 'ja', got %q", col)
	}
	if !table.HasColumn("ja") {
		t.Errorf("Expected 'ja' appended to header, got %v", table.Columns)
	}
	if table.Columns[len(table.Columns)-1] != "ja" {
		t.Errorf("Expected 'ja' appended last, got %v", table.Columns)
	}
}

func TestTableKeys(t *testing.T) {
	table := &Table{
		Columns: []string{"Key"},
		Rows:    []Row{{"Key": "A"}, {"Key": "B"}},
	}

	keys := table.Keys()
	if len(keys) != 2 || keys[0] != "A" || keys[1] != "B" {
		t.Errorf("Keys() = %v, want [A B]", keys)
	}
}
