// Package index derives read-only query structures from registry records.
package index

import (
	"github.com/FlyingWorkshop/Map-LDS-Temples/internal/temple"
)

// Forward is a columnar view of the records: one value per record per
// attribute, position-aligned with the record order. Absent values are nil.
type Forward struct {
	columns map[temple.Attribute][]any
	n       int
}

// BuildForward computes every column from records. There is no incremental
// path; rebuild whenever the records change.
func BuildForward(records []temple.Record) *Forward {
	f := &Forward{
		columns: make(map[temple.Attribute][]any, len(temple.Attributes)),
		n:       len(records),
	}
	for _, attr := range temple.Attributes {
		f.columns[attr] = make([]any, 0, len(records))
	}
	for _, rec := range records {
		for _, attr := range temple.Attributes {
			v, ok := rec.Value(attr)
			if !ok {
				v = nil
			}
			f.columns[attr] = append(f.columns[attr], v)
		}
	}
	return f
}

// Get returns a copy of the column for attr.
func (f *Forward) Get(attr temple.Attribute) ([]any, bool) {
	col, ok := f.columns[attr]
	if !ok {
		return nil, false
	}
	out := make([]any, len(col))
	copy(out, col)
	return out, true
}

// Len returns the number of records.
func (f *Forward) Len() int {
	return f.n
}

// Attributes returns the column names in catalogue order.
func (f *Forward) Attributes() []temple.Attribute {
	out := make([]temple.Attribute, len(temple.Attributes))
	copy(out, temple.Attributes)
	return out
}

// Row returns record i as attribute → value.
func (f *Forward) Row(i int) map[temple.Attribute]any {
	if i < 0 || i >= f.n {
		return nil
	}
	row := make(map[temple.Attribute]any, len(f.columns))
	for attr, col := range f.columns {
		row[attr] = col[i]
	}
	return row
}
