// Package tablescrape extracts structured rows from wiki stat tables. The
// extractors are pure functions over a Reader so they can run against a
// synthetic in-memory table as easily as a parsed page.
package tablescrape

// Cell is one table cell as the extractors see it.
type Cell struct {
	Text        string
	AnchorTitle string
	AnchorText  string
	Header      bool
}

// Row is the cells of one table row in document order.
type Row []Cell

// Table is the rows of one table body in document order.
type Table []Row

// Reader enumerates the stat tables of a page.
type Reader interface {
	Tables() []Table
}

// Document is an in-memory Reader.
type Document []Table

// Tables implements Reader.
func (d Document) Tables() []Table {
	return d
}

// RowCount returns the number of rows across all tables.
func (d Document) RowCount() int {
	n := 0
	for _, t := range d {
		n += len(t)
	}
	return n
}

// dataCells returns the non-header cells of r.
func (r Row) dataCells() Row {
	out := make(Row, 0, len(r))
	for _, c := range r {
		if !c.Header {
			out = append(out, c)
		}
	}
	return out
}
