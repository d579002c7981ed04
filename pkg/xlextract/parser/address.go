package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
	"github.com/xuri/excelize/v2"
)

// ParseRef parses a reference such as B5:D5, $A$1:$D$10, 'Sheet 1'!A1:C3 or a
// single cell A1 into an Area. The optional sheet qualifier is returned
// separately with its quotes removed. Bounds are kept in the order given, so
// a reversed reference yields an empty Area.
func ParseRef(ref string) (sheet string, area models.Area, err error) {
	rangeStr := strings.TrimSpace(ref)

	// Split by ! to separate sheet name and range
	if idx := strings.LastIndex(rangeStr, "!"); idx >= 0 {
		sheet = strings.Trim(rangeStr[:idx], "'")
		rangeStr = rangeStr[idx+1:]
	}

	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) > 2 || parts[0] == "" {
		return "", models.Area{}, newRangeError(ref, ErrInvalidRef)
	}
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", models.Area{}, newRangeError(ref, fmt.Errorf("%w: %v", ErrInvalidRef, err))
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return "", models.Area{}, newRangeError(ref, fmt.Errorf("%w: %v", ErrInvalidRef, err))
	}

	return sheet, models.Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

// ColumnNumber converts a column label such as "B" or "AA" to its 1-based
// index.
func ColumnNumber(label string) (int, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(label))
	if err != nil {
		return 0, newRangeError(label, fmt.Errorf("%w: %v", ErrInvalidRef, err))
	}
	return n, nil
}

// CellName converts 1-based coordinates to an A1 style reference.
func CellName(row, col int) (string, error) {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return "", newRangeError(fmt.Sprintf("R%dC%d", row, col), fmt.Errorf("%w: %v", ErrOutOfBounds, err))
	}
	return name, nil
}

// walkArea calls fn for each coordinate of area in row-major order.
func walkArea(area models.Area, fn func(row, col int) error) error {
	if area.Empty() {
		return nil
	}
	for r := area.R1; r <= area.R2; r++ {
		for c := area.C1; c <= area.C2; c++ {
			if err := fn(r, c); err != nil {
				return err
			}
		}
	}
	return nil
}
