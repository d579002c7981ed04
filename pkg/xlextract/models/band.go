package models

// BandEntry is one column of a band, labelled by its header cell.
type BandEntry struct {
	// Header is the header row value at the entry's column.
	Header string `json:"header"`
	// Value is the data row value at the entry's column.
	Value string `json:"value"`
}

// BandRow is the collection of entries extracted from one data row.
type BandRow struct {
	// R is the data row index (1-based).
	R int `json:"r"`
	// Entries holds one entry per band column, left to right.
	Entries []BandEntry `json:"entries"`
}

// BandData is the result of extracting a band from every row of a sheet.
type BandData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// SheetName is the sheet the band was read from.
	SheetName string `json:"sheet_name"`
	// HeaderRow is the row holding the header labels (1-based).
	HeaderRow int `json:"header_row"`
	// Columns is the band reference, e.g. "B:D".
	Columns string `json:"columns"`
	// Rows contains one entry per extracted data row.
	Rows []BandRow `json:"rows"`
}
