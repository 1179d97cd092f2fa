package csvio

// KeyColumn is the exact header of the column that uniquely identifies a
// row. It is matched case-sensitively and is never translated.
const KeyColumn = "Key"

// IDColumn is an optional numeric identifier column emitted by the Unity
// Localization exporter. Like the key it is never translated.
const IDColumn = "Id"

// Row maps column name to cell value. Cell order is defined by the owning
// table's Columns slice, not by the map.
type Row map[string]string

// Table is an ordered localization table: a header and its rows.
type Table struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table header contains the exact name.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column to the header unless it already exists. Rows
// are left untouched; missing cells read as empty strings.
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.Columns = append(t.Columns, name)
	}
}

// Keys returns the key cell of every row in table order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		keys = append(keys, row[KeyColumn])
	}
	return keys
}
