// Package models defines data structures for spreadsheet extraction.
package models

// Cell represents a single worksheet cell and its raw stored value.
type Cell struct {
	// Address is the A1 style reference of the cell.
	Address string `json:"address"`
	// Row is the row index (1-based).
	Row int `json:"r"`
	// Col is the column index (1-based).
	Col int `json:"c"`
	// Value is the raw stored value. Empty cells hold nil or "".
	Value interface{} `json:"value,omitempty"`
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	if c.Value == nil {
		return true
	}
	s, ok := c.Value.(string)
	return ok && s == ""
}
