package xlextract

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlextract-go/pkg/xlextract/models"
)

type reading struct {
	Value   *float64
	Taken   time.Time
	Comment interface{}
}

func TestFieldSetter(t *testing.T) {
	setter, err := NewFieldSetter(func(r *reading) **float64 { return &r.Value })
	require.NoError(t, err)
	assert.Equal(t, "Value", setter.Field().Name())

	var r reading
	require.NoError(t, setter.SetPropertyValue(&r, models.Cell{Address: "A1", Value: "2.5"}))
	require.NotNil(t, r.Value)
	assert.Equal(t, 2.5, *r.Value)

	require.NoError(t, setter.SetPropertyValue(&r, models.Cell{Address: "A2"}))
	assert.Nil(t, r.Value)
}

func TestFieldSetterInterfaceField(t *testing.T) {
	setter, err := NewFieldSetter(func(r *reading) *interface{} { return &r.Comment })
	require.NoError(t, err)

	r := reading{Comment: "old"}
	require.NoError(t, setter.SetPropertyValue(&r, models.Cell{Value: 42}))
	assert.Equal(t, 42, r.Comment)

	require.NoError(t, setter.SetPropertyValue(&r, models.Cell{}))
	assert.Nil(t, r.Comment)
}

func TestFieldSetterConversionError(t *testing.T) {
	setter, err := NewFieldSetter(func(r *reading) *time.Time { return &r.Taken })
	require.NoError(t, err)

	taken := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	r := reading{Taken: taken}
	err = setter.SetPropertyValue(&r, models.Cell{Address: "C3", Value: "not a date at all"})

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "C3", convErr.Address)
	assert.Equal(t, "Taken", convErr.Field)
	assert.NotNil(t, errors.Unwrap(err))
	assert.Equal(t, taken, r.Taken)
}

func TestFieldSetterConverterTypeMismatch(t *testing.T) {
	wrong := ConverterFunc(func(raw interface{}, target reflect.Type) (interface{}, error) {
		return "text", nil
	})
	setter, err := NewFieldSetter(func(r *reading) *time.Time { return &r.Taken }, WithConverter(wrong))
	require.NoError(t, err)

	var r reading
	err = setter.SetPropertyValue(&r, models.Cell{Address: "A1", Value: 1})
	assert.ErrorIs(t, err, ErrConversion)
	assert.True(t, r.Taken.IsZero())
}

func TestNewFieldSetterErrors(t *testing.T) {
	_, err := NewFieldSetter(func(r *reading) *float64 {
		f := 1.0
		return &f
	})
	assert.ErrorIs(t, err, ErrBinding)

	_, err = NewFieldSetterFor(Field[reading, time.Time]{})
	assert.ErrorIs(t, err, ErrBinding)
}
