package xlextract

import (
	"fmt"
	"reflect"

	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
)

// FieldSetter reads one cell and writes the converted value into one field of
// a T. It holds no per-call state.
type FieldSetter[T, V any] struct {
	field     Field[T, V]
	converter Converter
}

// NewFieldSetter binds the field addressed by sel.
func NewFieldSetter[T, V any](sel func(*T) *V, opts ...Option) (*FieldSetter[T, V], error) {
	field, err := Select(sel)
	if err != nil {
		return nil, err
	}
	return NewFieldSetterFor(field, opts...)
}

// NewFieldSetterFor returns a FieldSetter for an already bound field.
func NewFieldSetterFor[T, V any](field Field[T, V], opts ...Option) (*FieldSetter[T, V], error) {
	if !field.bound() {
		return nil, newBindingError(reflect.TypeFor[T](), "", "unbound field")
	}
	cfg := newConfig(opts)
	return &FieldSetter[T, V]{field: field, converter: cfg.converter}, nil
}

// Field returns the bound field.
func (s *FieldSetter[T, V]) Field() Field[T, V] {
	return s.field
}

// SetPropertyValue converts cell's raw value and stores it in item. item is
// left untouched when conversion fails.
func (s *FieldSetter[T, V]) SetPropertyValue(item *T, cell models.Cell) error {
	raw, err := s.converter.Convert(cell.Value, s.field.Type())
	if err != nil {
		return s.conversionError(cell, err)
	}

	var value V
	if raw != nil {
		v, ok := raw.(V)
		if !ok {
			return s.conversionError(cell, fmt.Errorf("converter returned %T", raw))
		}
		value = v
	}
	s.field.Set(item, value)
	return nil
}

func (s *FieldSetter[T, V]) conversionError(cell models.Cell, err error) *ConversionError {
	return &ConversionError{
		Address: cell.Address,
		Field:   s.field.Name(),
		Type:    s.field.Type(),
		Value:   cell.Value,
		Err:     err,
	}
}
