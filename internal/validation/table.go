package validation

// Value is a single cell. Present is false when the cell was empty in the
// source or absent because its record was shorter than the header.
type Value struct {
	Text    string
	Present bool
}

// Missing is the value of an absent cell.
var Missing = Value{}

// Row is one data row with its 1-based position among the data rows.
type Row struct {
	Index  int
	values []Value
	lookup map[string]int
}

// Get returns the value of the named column, or Missing when the table has
// no such column.
func (r Row) Get(column string) Value {
	idx, ok := r.lookup[column]
	if !ok || idx >= len(r.values) {
		return Missing
	}
	return r.values[idx]
}

// Values returns the row's cells in column order.
func (r Row) Values() []Value {
	return r.values
}

// Table is a parsed CSV file: the header's column names and the data rows.
type Table struct {
	Columns []string
	Rows    []Row

	lookup map[string]int
}

// NewTable builds a table from a header and raw records. Empty strings become
// Missing and short records are padded with Missing.
func NewTable(columns []string, records [][]string) Table {
	lookup := make(map[string]int, len(columns))
	for idx, name := range columns {
		if _, seen := lookup[name]; !seen {
			lookup[name] = idx
		}
	}

	rows := make([]Row, 0, len(records))
	for i, record := range records {
		values := make([]Value, len(columns))
		for col := range columns {
			if col < len(record) && record[col] != "" {
				values[col] = Value{Text: record[col], Present: true}
			}
		}
		rows = append(rows, Row{Index: i + 1, values: values, lookup: lookup})
	}

	return Table{Columns: columns, Rows: rows, lookup: lookup}
}

// HasColumn reports whether the header contains name.
func (t Table) HasColumn(name string) bool {
	_, ok := t.lookup[name]
	return ok
}
