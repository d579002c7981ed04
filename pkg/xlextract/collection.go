package xlextract

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/tiendc/go-deepcopy"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/parser"
)

// CollectionColumnExtractor builds a TCollection from the cells of one data
// row between two columns. Each cell becomes one TItem whose header field is
// read from the fixed header row at the cell's column and whose value field
// is read from the cell itself. The finished collection is assigned to the
// row object's collection field.
//
// If the header row equals the data row, both fields read the same cell.
// Callers should avoid configuring that.
type CollectionColumnExtractor[TRow any, TCollection ~[]TItem, TItem, THead, TValue any] struct {
	headerRow     int
	initialColumn string
	finalColumn   string

	collection Field[TRow, TCollection]
	head       *FieldSetter[TItem, THead]
	value      *FieldSetter[TItem, TValue]
	newItem    func() (TItem, error)
}

// NewCollectionColumnExtractor binds the collection field of TRow and the
// header and value fields of TItem through selectors:
//
//	ex, err := xlextract.NewCollectionColumnExtractor(
//		func(i *Invoice) *[]LineItem { return &i.LineItems },
//		func(l *LineItem) *string { return &l.ProductName }, 1,
//		func(l *LineItem) *float64 { return &l.Amount },
//		"B", "D")
func NewCollectionColumnExtractor[TRow any, TCollection ~[]TItem, TItem, THead, TValue any](
	collection func(*TRow) *TCollection,
	header func(*TItem) *THead, headerRow int,
	value func(*TItem) *TValue,
	initialColumn, finalColumn string,
	opts ...Option,
) (*CollectionColumnExtractor[TRow, TCollection, TItem, THead, TValue], error) {
	collectionField, err := Select(collection)
	if err != nil {
		return nil, err
	}
	headField, err := Select(header)
	if err != nil {
		return nil, err
	}
	valueField, err := Select(value)
	if err != nil {
		return nil, err
	}
	return NewCollectionColumnExtractorFor(collectionField, headField, headerRow, valueField, initialColumn, finalColumn, opts...)
}

// NewCollectionColumnExtractorFor is like NewCollectionColumnExtractor but
// takes fields bound with Select or Lookup.
func NewCollectionColumnExtractorFor[TRow any, TCollection ~[]TItem, TItem, THead, TValue any](
	collection Field[TRow, TCollection],
	header Field[TItem, THead], headerRow int,
	value Field[TItem, TValue],
	initialColumn, finalColumn string,
	opts ...Option,
) (*CollectionColumnExtractor[TRow, TCollection, TItem, THead, TValue], error) {
	if !collection.bound() {
		return nil, newBindingError(reflect.TypeFor[TRow](), "", "unbound collection field")
	}
	if headerRow < 1 {
		return nil, fmt.Errorf("%w: header row %d", ErrInvalidBand, headerRow)
	}
	initial, err := columnLabel(initialColumn)
	if err != nil {
		return nil, err
	}
	final, err := columnLabel(finalColumn)
	if err != nil {
		return nil, err
	}

	head, err := NewFieldSetterFor(header, opts...)
	if err != nil {
		return nil, err
	}
	val, err := NewFieldSetterFor(value, opts...)
	if err != nil {
		return nil, err
	}
	newItem, err := itemFactory[TItem](newConfig(opts).prototype)
	if err != nil {
		return nil, err
	}

	return &CollectionColumnExtractor[TRow, TCollection, TItem, THead, TValue]{
		headerRow:     headerRow,
		initialColumn: initial,
		finalColumn:   final,
		collection:    collection,
		head:          head,
		value:         val,
		newItem:       newItem,
	}, nil
}

func columnLabel(label string) (string, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if _, err := parser.ColumnNumber(label); err != nil {
		return "", fmt.Errorf("%w: column %q: %v", ErrInvalidBand, label, err)
	}
	return label, nil
}

// itemFactory returns the constructor for fresh items: the zero value, or a
// deep copy of prototype.
func itemFactory[TItem any](prototype interface{}) (func() (TItem, error), error) {
	if prototype == nil {
		return func() (TItem, error) {
			var item TItem
			return item, nil
		}, nil
	}

	var proto TItem
	switch p := prototype.(type) {
	case TItem:
		proto = p
	case *TItem:
		if p == nil {
			return nil, newBindingError(reflect.TypeFor[TItem](), "", "nil item prototype")
		}
		proto = *p
	default:
		return nil, newBindingError(reflect.TypeFor[TItem](), "", "item prototype has type %T", prototype)
	}

	return func() (TItem, error) {
		var item TItem
		if err := deepcopy.Copy(&item, &proto); err != nil {
			return item, fmt.Errorf("copy item prototype: %w", err)
		}
		return item, nil
	}, nil
}

// HeaderRow returns the row header values are read from.
func (e *CollectionColumnExtractor[TRow, TCollection, TItem, THead, TValue]) HeaderRow() int {
	return e.headerRow
}

// Columns returns the first and last column of the band.
func (e *CollectionColumnExtractor[TRow, TCollection, TItem, THead, TValue]) Columns() (initial, final string) {
	return e.initialColumn, e.finalColumn
}

// BandRef returns the reference of the band for rowNumber, e.g. "B5:D5".
func (e *CollectionColumnExtractor[TRow, TCollection, TItem, THead, TValue]) BandRef(rowNumber int) string {
	r := strconv.Itoa(rowNumber)
	return e.initialColumn + r + ":" + e.finalColumn + r
}

// SetPropertyValue walks the band of rowNumber left to right and assigns the
// resulting collection to row. On error row is left untouched.
func (e *CollectionColumnExtractor[TRow, TCollection, TItem, THead, TValue]) SetPropertyValue(row *TRow, rowNumber int, rng Range) error {
	cells, err := rng.Cells(e.BandRef(rowNumber))
	if err != nil {
		return err
	}

	collection := make(TCollection, 0, len(cells))
	for _, cell := range cells {
		item, err := e.newItem()
		if err != nil {
			return err
		}

		// header lookup uses the data cell's column against the fixed header row
		header, err := rng.Cell(e.headerRow, cell.Col)
		if err != nil {
			return err
		}
		if err := e.head.SetPropertyValue(&item, header); err != nil {
			return err
		}
		if err := e.value.SetPropertyValue(&item, cell); err != nil {
			return err
		}

		collection = append(collection, item)
	}

	e.collection.Set(row, collection)
	return nil
}
