package xlextract

import "github.com/ukaji3/xlextract-go/pkg/xlextract/parser"

// ColumnExtractor stores the value of one column of the data row in a field
// of the row object.
type ColumnExtractor[TRow, V any] struct {
	column string
	col    int
	setter *FieldSetter[TRow, V]
}

// NewColumnExtractor binds the field addressed by sel to column, e.g. "A".
func NewColumnExtractor[TRow, V any](sel func(*TRow) *V, column string, opts ...Option) (*ColumnExtractor[TRow, V], error) {
	field, err := Select(sel)
	if err != nil {
		return nil, err
	}
	return NewColumnExtractorFor(field, column, opts...)
}

// NewColumnExtractorFor is like NewColumnExtractor for a bound field.
func NewColumnExtractorFor[TRow, V any](field Field[TRow, V], column string, opts ...Option) (*ColumnExtractor[TRow, V], error) {
	label, err := columnLabel(column)
	if err != nil {
		return nil, err
	}
	col, err := parser.ColumnNumber(label)
	if err != nil {
		return nil, err
	}

	setter, err := NewFieldSetterFor(field, opts...)
	if err != nil {
		return nil, err
	}
	return &ColumnExtractor[TRow, V]{column: label, col: col, setter: setter}, nil
}

// Column returns the column label.
func (e *ColumnExtractor[TRow, V]) Column() string {
	return e.column
}

// SetPropertyValue reads the cell at (rowNumber, column) into row.
func (e *ColumnExtractor[TRow, V]) SetPropertyValue(row *TRow, rowNumber int, rng Range) error {
	cell, err := rng.Cell(rowNumber, e.col)
	if err != nil {
		return err
	}
	return e.setter.SetPropertyValue(row, cell)
}

// RowNumberExtractor stores the 1-based worksheet row number in an int field.
type RowNumberExtractor[TRow any] struct {
	field Field[TRow, int]
}

// NewRowNumberExtractor binds the int field addressed by sel.
func NewRowNumberExtractor[TRow any](sel func(*TRow) *int) (*RowNumberExtractor[TRow], error) {
	field, err := Select(sel)
	if err != nil {
		return nil, err
	}
	return &RowNumberExtractor[TRow]{field: field}, nil
}

// SetPropertyValue sets the row number. It never reads from rng.
func (e *RowNumberExtractor[TRow]) SetPropertyValue(row *TRow, rowNumber int, _ Range) error {
	e.field.Set(row, rowNumber)
	return nil
}
