package parser

// LastDataRow returns the 1-based index of the last row holding a non-empty
// cell, or 0 when every cell is empty.
func LastDataRow(rows [][]string) int {
	for rowIdx := len(rows) - 1; rowIdx >= 0; rowIdx-- {
		for _, cell := range rows[rowIdx] {
			if cell != "" {
				return rowIdx + 1
			}
		}
	}
	return 0
}
