// Package xlextract maps bands of spreadsheet cells onto typed Go structs.
//
// A CollectionColumnExtractor turns the cells of one data row between two
// columns into a slice of items, reading each item's header field from a
// fixed header row at the same column. Extractors are configured once and
// are immutable afterwards, so one extractor may serve many goroutines as
// long as the Range it reads from is safe for concurrent reads.
package xlextract

import (
	"reflect"

	"github.com/go-logr/logr"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/parser"
)

// Converter converts a raw cell value to a field's declared type. The
// returned value must have dynamic type target, or be nil for the zero value.
type Converter interface {
	Convert(raw interface{}, target reflect.Type) (interface{}, error)
}

// ConverterFunc adapts a function to the Converter interface.
type ConverterFunc func(raw interface{}, target reflect.Type) (interface{}, error)

// Convert calls fn(raw, target).
func (fn ConverterFunc) Convert(raw interface{}, target reflect.Type) (interface{}, error) {
	return fn(raw, target)
}

// DefaultConverter converts values with parser.Convert.
var DefaultConverter Converter = ConverterFunc(parser.Convert)

// Option configures an extractor or a FieldSetter.
type Option func(*config)

type config struct {
	converter Converter
	prototype interface{}
}

func newConfig(opts []Option) config {
	cfg := config{converter: DefaultConverter}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithConverter replaces DefaultConverter.
func WithConverter(c Converter) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.converter = c
		}
	}
}

// WithItemPrototype makes a collection extractor start every item as a deep
// copy of item instead of the zero value. item must be of the extractor's
// item type or a pointer to it. Other extractors ignore it.
func WithItemPrototype(item interface{}) Option {
	return func(cfg *config) {
		cfg.prototype = item
	}
}

// Options configures row extraction.
type Options struct {
	// FromRow is the first data row (1-based). Values below 1 mean 1.
	FromRow int
	// ToRow is the last data row, inclusive. If 0, the last row reported by
	// a RowCounter range is used.
	ToRow int
	// Stop, if set, is consulted before each row; extraction ends without
	// error on the first row it reports true for.
	Stop func(row int, rng Range) (bool, error)
	// Logger receives per-row progress at V(1).
	Logger logr.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		FromRow: 1,
		Logger:  logr.Discard(),
	}
}

// FirstRow returns the first row to extract.
func (o Options) FirstRow() int {
	if o.FromRow < 1 {
		return 1
	}
	return o.FromRow
}

// LastRow returns the last row to extract from rng.
func (o Options) LastRow(rng Range) (int, error) {
	if o.ToRow > 0 {
		return o.ToRow, nil
	}
	if rc, ok := rng.(RowCounter); ok {
		return rc.LastRow()
	}
	return 0, ErrUnboundedRange
}
