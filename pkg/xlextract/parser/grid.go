package parser

import (
	"fmt"

	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
)

// Grid is an in-memory range anchored at A1. rows[0] is row 1 and rows[i][0]
// is column A. Missing cells read as nil. A Grid is never modified after
// construction.
type Grid struct {
	name string
	rows [][]interface{}
}

// NewGrid returns a Grid holding rows.
func NewGrid(name string, rows [][]interface{}) *Grid {
	return &Grid{name: name, rows: rows}
}

// Name returns the grid name used as its sheet qualifier.
func (g *Grid) Name() string {
	return g.name
}

// Cells returns the cells of ref in row-major order.
func (g *Grid) Cells(ref string) ([]models.Cell, error) {
	sheet, area, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}
	if sheet != "" && sheet != g.name {
		return nil, newRangeError(ref, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet))
	}

	cells := make([]models.Cell, 0, area.Len())
	err = walkArea(area, func(row, col int) error {
		cell, err := g.Cell(row, col)
		if err != nil {
			return err
		}
		cells = append(cells, cell)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cells, nil
}

// Cell returns the cell at the 1-based coordinates.
func (g *Grid) Cell(row, col int) (models.Cell, error) {
	cellName, err := CellName(row, col)
	if err != nil {
		return models.Cell{}, err
	}
	cell := models.Cell{Address: cellName, Row: row, Col: col}
	if row <= len(g.rows) && col <= len(g.rows[row-1]) {
		cell.Value = g.rows[row-1][col-1]
	}
	return cell, nil
}

// LastRow returns the number of rows held by the grid.
func (g *Grid) LastRow() (int, error) {
	return len(g.rows), nil
}
