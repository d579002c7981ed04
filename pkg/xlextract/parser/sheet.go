package parser

import (
	"fmt"

	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
	"github.com/xuri/excelize/v2"
)

// Sheet resolves cells of one worksheet of an excelize workbook. Values are
// read raw, without number formatting, so dates come back as serial numbers.
//
// Sheet only reads from the workbook and is safe for concurrent use as long as
// nothing writes to the underlying file at the same time.
type Sheet struct {
	f    *excelize.File
	name string
}

// NewSheet returns a Sheet for sheetName. An empty name selects the first
// sheet of the workbook.
func NewSheet(f *excelize.File, sheetName string) (*Sheet, error) {
	if sheetName == "" {
		sheetName = f.GetSheetName(0)
	}
	idx, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, sheetName)
	}
	return &Sheet{f: f, name: sheetName}, nil
}

// Name returns the worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// Cells returns the cells of ref in row-major order. ref may carry a sheet
// qualifier, which must name this sheet.
func (s *Sheet) Cells(ref string) ([]models.Cell, error) {
	sheet, area, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}
	if sheet != "" && sheet != s.name {
		return nil, newRangeError(ref, fmt.Errorf("%w: %s", ErrSheetNotFound, sheet))
	}

	cells := make([]models.Cell, 0, area.Len())
	err = walkArea(area, func(row, col int) error {
		cell, err := s.Cell(row, col)
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
func (s *Sheet) Cell(row, col int) (models.Cell, error) {
	cellName, err := CellName(row, col)
	if err != nil {
		return models.Cell{}, err
	}
	value, err := s.f.GetCellValue(s.name, cellName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.Cell{}, newRangeError(cellName, err)
	}
	return models.Cell{Address: cellName, Row: row, Col: col, Value: value}, nil
}

// LastRow returns the last row holding a non-empty cell, or 0 for an empty
// sheet.
func (s *Sheet) LastRow() (int, error) {
	rows, err := s.f.GetRows(s.name, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, err
	}
	return LastDataRow(rows), nil
}
