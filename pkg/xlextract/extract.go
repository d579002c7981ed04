package xlextract

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/xlextract-go/pkg/xlextract/parser"
	"github.com/xuri/excelize/v2"
)

// preallocRows bounds the initial capacity of Extract's result so that a
// large explicit ToRow with an early Stop does not reserve memory up front.
const preallocRows = 1024

// Extract builds one TRow per worksheet row in [opts.FirstRow(), last row],
// applying extractors in order. A failing extractor stops extraction; the
// error is returned as an *ExtractionError wrapping the cause.
func Extract[TRow any](rng Range, opts Options, extractors ...RowExtractor[TRow]) ([]TRow, error) {
	log := opts.Logger
	sheetName := rangeName(rng)

	first := opts.FirstRow()
	last, err := opts.LastRow(rng)
	if err != nil {
		return nil, err
	}

	result := make([]TRow, 0, min(max(last-first+1, 0), preallocRows))
	for r := first; r <= last; r++ {
		if opts.Stop != nil {
			stop, err := opts.Stop(r, rng)
			if err != nil {
				return nil, NewExtractionError(sheetName, r, err)
			}
			if stop {
				log.V(1).Info("stop condition met", "sheet", sheetName, "row", r)
				break
			}
		}

		var data TRow
		for _, x := range extractors {
			if err := x.SetPropertyValue(&data, r, rng); err != nil {
				return nil, NewExtractionError(sheetName, r, err)
			}
		}
		result = append(result, data)
		log.V(1).Info("extracted row", "sheet", sheetName, "row", r)
	}

	log.V(1).Info("extraction finished", "sheet", sheetName, "rows", len(result))
	return result, nil
}

// ExtractFile opens the workbook at path and runs Extract on sheetName, or on
// the first sheet when sheetName is empty.
func ExtractFile[TRow any](path, sheetName string, opts Options, extractors ...RowExtractor[TRow]) ([]TRow, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	defer f.Close()

	sheet, err := parser.NewSheet(f, sheetName)
	if err != nil {
		return nil, err
	}
	return Extract(sheet, opts, extractors...)
}
