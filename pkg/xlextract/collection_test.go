package xlextract

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/parser"
)

type LineItem struct {
	ProductName string
	Amount      float64
	Currency    string
	Tags        []string
}

type Invoice struct {
	Number    string
	Row       int
	LineItems []LineItem
	Notes     string
}

func invoiceGrid() *parser.Grid {
	rows := make([][]interface{}, 5)
	rows[0] = []interface{}{"Invoice", "Widget", "Gadget", "Gizmo"}
	rows[1] = []interface{}{"INV-1", 1, 2, 3}
	rows[4] = []interface{}{"INV-4", 10, 20, 30}
	return parser.NewGrid("Invoices", rows)
}

func newLineItemsExtractor(t *testing.T, initial, final string, opts ...Option) *CollectionColumnExtractor[Invoice, []LineItem, LineItem, string, float64] {
	t.Helper()
	ex, err := NewCollectionColumnExtractor(
		func(i *Invoice) *[]LineItem { return &i.LineItems },
		func(l *LineItem) *string { return &l.ProductName }, 1,
		func(l *LineItem) *float64 { return &l.Amount },
		initial, final, opts...)
	require.NoError(t, err)
	return ex
}

func TestCollectionColumnExtractorInvoice(t *testing.T) {
	ex := newLineItemsExtractor(t, "B", "D")

	inv := Invoice{Number: "keep", Notes: "keep"}
	require.NoError(t, ex.SetPropertyValue(&inv, 5, invoiceGrid()))

	assert.Equal(t, []LineItem{
		{ProductName: "Widget", Amount: 10},
		{ProductName: "Gadget", Amount: 20},
		{ProductName: "Gizmo", Amount: 30},
	}, inv.LineItems)
	assert.Equal(t, "keep", inv.Number)
	assert.Equal(t, "keep", inv.Notes)
	assert.Equal(t, 0, inv.Row)
}

func TestCollectionColumnExtractorHeaderFollowsColumn(t *testing.T) {
	// a narrower band must still pick headers from its own columns
	ex := newLineItemsExtractor(t, "C", "D")

	var inv Invoice
	require.NoError(t, ex.SetPropertyValue(&inv, 2, invoiceGrid()))

	require.Len(t, inv.LineItems, 2)
	assert.Equal(t, LineItem{ProductName: "Gadget", Amount: 2}, inv.LineItems[0])
	assert.Equal(t, LineItem{ProductName: "Gizmo", Amount: 3}, inv.LineItems[1])
}

func TestCollectionColumnExtractorItemCount(t *testing.T) {
	header := make([]interface{}, 27)
	data := make([]interface{}, 27)
	for i := range header {
		header[i] = fmt.Sprintf("h%d", i+1)
		data[i] = i + 1
	}
	grid := parser.NewGrid("Wide", [][]interface{}{header, data})

	ex := newLineItemsExtractor(t, "A", "AA")

	var inv Invoice
	require.NoError(t, ex.SetPropertyValue(&inv, 2, grid))

	require.Len(t, inv.LineItems, 27)
	for i, item := range inv.LineItems {
		assert.Equal(t, fmt.Sprintf("h%d", i+1), item.ProductName)
		assert.Equal(t, float64(i+1), item.Amount)
	}
}

func TestCollectionColumnExtractorIdempotent(t *testing.T) {
	ex := newLineItemsExtractor(t, "B", "D")
	grid := invoiceGrid()

	var inv Invoice
	require.NoError(t, ex.SetPropertyValue(&inv, 5, grid))
	first := inv.LineItems
	require.NoError(t, ex.SetPropertyValue(&inv, 5, grid))
	second := inv.LineItems

	assert.Equal(t, first, second)
	assert.NotSame(t, &first[0], &second[0])
}

func TestCollectionColumnExtractorNoPartialAssignment(t *testing.T) {
	rows := [][]interface{}{
		{nil, "Widget", "Gadget", "Gizmo"},
		{nil, 10, "n/a", 30},
	}
	grid := parser.NewGrid("Bad", rows)
	ex := newLineItemsExtractor(t, "B", "D")

	previous := []LineItem{{ProductName: "old"}}
	inv := Invoice{LineItems: previous}
	err := ex.SetPropertyValue(&inv, 2, grid)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.ErrorIs(t, err, ErrConversion)
	assert.Equal(t, "C2", convErr.Address)
	assert.Equal(t, "Amount", convErr.Field)
	assert.Equal(t, reflect.TypeFor[float64](), convErr.Type)
	assert.Equal(t, "n/a", convErr.Value)
	assert.Equal(t, previous, inv.LineItems)
	assert.Same(t, &previous[0], &inv.LineItems[0])
}

func TestCollectionColumnExtractorEmptyBand(t *testing.T) {
	ex := newLineItemsExtractor(t, "D", "B")

	inv := Invoice{LineItems: []LineItem{{ProductName: "old"}}}
	require.NoError(t, ex.SetPropertyValue(&inv, 5, invoiceGrid()))

	assert.NotNil(t, inv.LineItems)
	assert.Empty(t, inv.LineItems)
}

func TestCollectionColumnExtractorHeaderRowIsDataRow(t *testing.T) {
	grid := parser.NewGrid("Same", [][]interface{}{{"7", "8"}})

	ex, err := NewCollectionColumnExtractor(
		func(i *Invoice) *[]LineItem { return &i.LineItems },
		func(l *LineItem) *string { return &l.ProductName }, 1,
		func(l *LineItem) *float64 { return &l.Amount },
		"A", "B")
	require.NoError(t, err)

	var inv Invoice
	require.NoError(t, ex.SetPropertyValue(&inv, 1, grid))
	assert.Equal(t, []LineItem{{ProductName: "7", Amount: 7}, {ProductName: "8", Amount: 8}}, inv.LineItems)
}

type failingRange struct {
	*parser.Grid
	failCells bool
	failRow   int
}

var errRangeBroken = errors.New("range broken")

func (r failingRange) Cells(ref string) ([]models.Cell, error) {
	if r.failCells {
		return nil, errRangeBroken
	}
	return r.Grid.Cells(ref)
}

func (r failingRange) Cell(row, col int) (models.Cell, error) {
	if row == r.failRow {
		return models.Cell{}, errRangeBroken
	}
	return r.Grid.Cell(row, col)
}

func TestCollectionColumnExtractorRangeErrorsPropagate(t *testing.T) {
	ex := newLineItemsExtractor(t, "B", "D")

	inv := Invoice{}
	err := ex.SetPropertyValue(&inv, 5, failingRange{Grid: invoiceGrid(), failCells: true})
	assert.Same(t, errRangeBroken, err)
	assert.Nil(t, inv.LineItems)

	err = ex.SetPropertyValue(&inv, 5, failingRange{Grid: invoiceGrid(), failRow: 1})
	assert.Same(t, errRangeBroken, err)
	assert.Nil(t, inv.LineItems)
}

func TestCollectionColumnExtractorItemPrototype(t *testing.T) {
	proto := LineItem{Currency: "EUR", Tags: []string{"imported"}}
	ex := newLineItemsExtractor(t, "B", "C", WithItemPrototype(&proto))

	var inv Invoice
	require.NoError(t, ex.SetPropertyValue(&inv, 5, invoiceGrid()))

	require.Len(t, inv.LineItems, 2)
	for _, item := range inv.LineItems {
		assert.Equal(t, "EUR", item.Currency)
		assert.Equal(t, []string{"imported"}, item.Tags)
	}

	inv.LineItems[0].Tags[0] = "changed"
	assert.Equal(t, "imported", inv.LineItems[1].Tags[0])
	assert.Equal(t, "imported", proto.Tags[0])
}

func TestCollectionColumnExtractorConverter(t *testing.T) {
	calls := 0
	conv := ConverterFunc(func(raw interface{}, target reflect.Type) (interface{}, error) {
		calls++
		if target.Kind() == reflect.Float64 {
			v, err := parser.Convert(raw, target)
			if err != nil {
				return nil, err
			}
			return v.(float64) * 100, nil
		}
		return parser.Convert(raw, target)
	})
	ex := newLineItemsExtractor(t, "B", "B", WithConverter(conv))

	var inv Invoice
	require.NoError(t, ex.SetPropertyValue(&inv, 5, invoiceGrid()))
	assert.Equal(t, []LineItem{{ProductName: "Widget", Amount: 1000}}, inv.LineItems)
	assert.Equal(t, 2, calls)
}

func TestCollectionColumnExtractorConcurrent(t *testing.T) {
	ex := newLineItemsExtractor(t, "B", "D")
	grid := invoiceGrid()

	var wg sync.WaitGroup
	invoices := make([]Invoice, 8)
	errs := make([]error, len(invoices))
	for i := range invoices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			row := 2
			if i%2 == 1 {
				row = 5
			}
			errs[i] = ex.SetPropertyValue(&invoices[i], row, grid)
		}(i)
	}
	wg.Wait()

	for i, inv := range invoices {
		require.NoError(t, errs[i])
		require.Len(t, inv.LineItems, 3)
		if i%2 == 1 {
			assert.Equal(t, 30.0, inv.LineItems[2].Amount)
		} else {
			assert.Equal(t, 3.0, inv.LineItems[2].Amount)
		}
	}
}

func TestNewCollectionColumnExtractorErrors(t *testing.T) {
	collection := func(i *Invoice) *[]LineItem { return &i.LineItems }
	header := func(l *LineItem) *string { return &l.ProductName }
	value := func(l *LineItem) *float64 { return &l.Amount }

	_, err := NewCollectionColumnExtractor(collection, header, 0, value, "B", "D")
	assert.ErrorIs(t, err, ErrInvalidBand)

	_, err = NewCollectionColumnExtractor(collection, header, 1, value, "B5", "D")
	assert.ErrorIs(t, err, ErrInvalidBand)

	_, err = NewCollectionColumnExtractor(collection, header, 1, value, "B", "")
	assert.ErrorIs(t, err, ErrInvalidBand)

	computed := func(l *LineItem) *float64 {
		v := l.Amount * 2
		return &v
	}
	_, err = NewCollectionColumnExtractor(collection, header, 1, computed, "B", "D")
	assert.ErrorIs(t, err, ErrBinding)

	_, err = NewCollectionColumnExtractor(collection, header, 1, value, "B", "D", WithItemPrototype(Invoice{}))
	assert.ErrorIs(t, err, ErrBinding)

	_, err = NewCollectionColumnExtractorFor(Field[Invoice, []LineItem]{}, Field[LineItem, string]{}, 1, Field[LineItem, float64]{}, "B", "D")
	assert.ErrorIs(t, err, ErrBinding)
}

func TestNewCollectionColumnExtractorFor(t *testing.T) {
	collection, err := Lookup[Invoice, []LineItem]("LineItems")
	require.NoError(t, err)
	header, err := Lookup[LineItem, string]("ProductName")
	require.NoError(t, err)
	value, err := Lookup[LineItem, float64]("Amount")
	require.NoError(t, err)

	ex, err := NewCollectionColumnExtractorFor(collection, header, 1, value, "b", "d")
	require.NoError(t, err)

	initial, final := ex.Columns()
	assert.Equal(t, "B", initial)
	assert.Equal(t, "D", final)
	assert.Equal(t, 1, ex.HeaderRow())
	assert.Equal(t, "B5:D5", ex.BandRef(5))

	var inv Invoice
	require.NoError(t, ex.SetPropertyValue(&inv, 5, invoiceGrid()))
	assert.Len(t, inv.LineItems, 3)
	assert.Equal(t, "Gizmo", inv.LineItems[2].ProductName)
}

type stockLevel struct {
	Warehouse string
	Quantity  int64
}

type stockRow struct {
	Levels []stockLevel
}

func TestCollectionColumnExtractorLargeIntegers(t *testing.T) {
	grid := parser.NewGrid("Stock", [][]interface{}{
		{"north", "south"},
		{"3000000000", "-3000000000"},
		{"9223372036854775808", "1"},
	})

	ex, err := NewCollectionColumnExtractor(
		func(r *stockRow) *[]stockLevel { return &r.Levels },
		func(l *stockLevel) *string { return &l.Warehouse }, 1,
		func(l *stockLevel) *int64 { return &l.Quantity },
		"A", "B")
	require.NoError(t, err)

	var row stockRow
	require.NoError(t, ex.SetPropertyValue(&row, 2, grid))
	assert.Equal(t, []stockLevel{
		{Warehouse: "north", Quantity: 3000000000},
		{Warehouse: "south", Quantity: -3000000000},
	}, row.Levels)

	err = ex.SetPropertyValue(&row, 3, grid)
	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "A3", convErr.Address)
	assert.Len(t, row.Levels, 2)
}
