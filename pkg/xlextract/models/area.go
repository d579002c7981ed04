package models

// Area represents cell coordinate bounds of a rectangular range.
type Area struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Empty reports whether the area spans no cells, which is the case for
// reversed bounds such as D5:B5.
func (a Area) Empty() bool {
	return a.R2 < a.R1 || a.C2 < a.C1
}

// Len returns the number of cells inside the area.
func (a Area) Len() int {
	if a.Empty() {
		return 0
	}
	return (a.R2 - a.R1 + 1) * (a.C2 - a.C1 + 1)
}
