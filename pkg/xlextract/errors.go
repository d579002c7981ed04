package xlextract

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/ukaji3/xlextract-go/pkg/xlextract/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates the requested worksheet does not exist.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrInvalidBand indicates a header row or column label that cannot bound a
// band of cells.
var ErrInvalidBand = errors.New("invalid column band")

// ErrUnboundedRange indicates that no last row was configured and the range
// cannot report one.
var ErrUnboundedRange = errors.New("range has no last row")

// ErrBinding matches every *BindingError with errors.Is.
var ErrBinding = errors.New("field binding failed")

// ErrConversion matches every *ConversionError with errors.Is.
var ErrConversion = errors.New("cell conversion failed")

// BindingError reports a field selector that does not denote a directly
// assignable field.
type BindingError struct {
	Type   reflect.Type
	Field  string
	Reason string
}

func (e *BindingError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("bind field of %v: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("bind field %v.%s: %s", e.Type, e.Field, e.Reason)
}

func (e *BindingError) Is(target error) bool {
	return target == ErrBinding
}

func newBindingError(t reflect.Type, field, format string, args ...interface{}) *BindingError {
	return &BindingError{Type: t, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// ConversionError reports a cell value that could not be converted to the
// declared type of the field it was meant for.
type ConversionError struct {
	Address string
	Field   string
	Type    reflect.Type
	Value   interface{}
	Err     error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert cell %s value %q to %v for field %s: %v", e.Address, fmt.Sprint(e.Value), e.Type, e.Field, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// ExtractionError represents an error while extracting one data row.
type ExtractionError struct {
	SheetName string
	Row       int
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error in row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q row %d: %v", e.SheetName, e.Row, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName string, row int, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Row:       row,
		Err:       err,
	}
}
