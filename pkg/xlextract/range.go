package xlextract

import "github.com/ukaji3/xlextract-go/pkg/xlextract/models"

// Range resolves cells of a worksheet. parser.Sheet and parser.Grid implement
// it. Errors returned by a Range are passed to callers unchanged.
type Range interface {
	// Cells returns the cells of an A1:B2 style reference in row-major order.
	// A reference whose end precedes its start yields no cells.
	Cells(ref string) ([]models.Cell, error)
	// Cell returns the cell at 1-based coordinates.
	Cell(row, col int) (models.Cell, error)
}

// RowCounter is implemented by ranges that know their last data row.
type RowCounter interface {
	LastRow() (int, error)
}

// RowExtractor populates part of a row object from one worksheet row.
type RowExtractor[TRow any] interface {
	SetPropertyValue(row *TRow, rowNumber int, rng Range) error
}

// rangeName returns the sheet name of rng, if it has one.
func rangeName(rng Range) string {
	if n, ok := rng.(interface{ Name() string }); ok {
		return n.Name()
	}
	return ""
}
