package entity

// Row is one numbered record in a Table. Seq is 1-based.
type Row struct {
	Seq      int
	Key      string
	Value    string
	Comments string
}

// Cells returns the row in column order (#, Key, Value, Comments).
func (r Row) Cells() []any {
	return []any{r.Seq, r.Key, r.Value, r.Comments}
}

// Table is the ordered, numbered form of a record list.
// Row i always carries Seq i+1; a Table is rebuilt, never edited in place.
type Table struct {
	Rows []Row
}

// BuildTable numbers records in input order. An empty input yields an empty table.
func BuildTable(records []Record) Table {
	if len(records) == 0 {
		return Table{}
	}
	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = Row{
			Seq:      i + 1,
			Key:      rec.Key,
			Value:    rec.Value,
			Comments: rec.Comments,
		}
	}
	return Table{Rows: rows}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// IsEmpty reports whether the table has no rows. Callers check this before exporting.
func (t Table) IsEmpty() bool { return len(t.Rows) == 0 }

// Head returns at most n leading rows.
func (t Table) Head(n int) []Row {
	if n < 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}

// Records returns the table's records without sequence numbers.
func (t Table) Records() []Record {
	out := make([]Record, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = Record{Key: r.Key, Value: r.Value, Comments: r.Comments}
	}
	return out
}
