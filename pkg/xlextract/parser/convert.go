package parser

import (
	"encoding"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mmgreiner/go-utils/str2"
	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedType indicates a target type Convert has no rule for.
var ErrUnsupportedType = errors.New("unsupported target type")

var (
	timeType            = reflect.TypeOf(time.Time{})
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// Convert converts a raw cell value to target. Empty cells convert to the
// zero value of target. The returned value always has dynamic type target,
// except for interface targets, which receive the raw value unchanged.
func Convert(raw interface{}, target reflect.Type) (interface{}, error) {
	if target.Kind() == reflect.Interface {
		return raw, nil
	}
	if isBlank(raw, target) {
		return reflect.Zero(target).Interface(), nil
	}

	v, err := convertValue(raw, target)
	if err != nil {
		return nil, err
	}
	return v.Interface(), nil
}

// isBlank reports whether raw is an empty cell. Whitespace only counts as
// empty for non-string targets.
func isBlank(raw interface{}, target reflect.Type) bool {
	if raw == nil {
		return true
	}
	s, ok := raw.(string)
	if !ok {
		return false
	}
	if target.Kind() == reflect.String {
		return s == ""
	}
	return strings.TrimSpace(s) == ""
}

func convertValue(raw interface{}, target reflect.Type) (reflect.Value, error) {
	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(target) {
		out := reflect.New(target).Elem()
		out.Set(rv)
		return out, nil
	}

	switch {
	case target == timeType:
		return convertTime(raw)
	case target.Kind() == reflect.Pointer:
		elem, err := convertValue(raw, target.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		ptr := reflect.New(target.Elem())
		ptr.Elem().Set(elem)
		return ptr, nil
	case reflect.PointerTo(target).Implements(textUnmarshalerType):
		ptr := reflect.New(target)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(text(raw))); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}

	out := reflect.New(target).Elem()
	switch target.Kind() {
	case reflect.String:
		out.SetString(text(raw))
	case reflect.Bool:
		b, err := parseBool(text(raw))
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := parseInt(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowInt(n) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", n, target)
		}
		out.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := parseUint(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowUint(u) {
			return reflect.Value{}, fmt.Errorf("value %d overflows %s", u, target)
		}
		out.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := parseFloat(rv)
		if err != nil {
			return reflect.Value{}, err
		}
		if out.OverflowFloat(f) {
			return reflect.Value{}, fmt.Errorf("value %g overflows %s", f, target)
		}
		out.SetFloat(f)
	default:
		if rv.Type().ConvertibleTo(target) {
			return rv.Convert(target), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedType, target)
	}
	return out, nil
}

// text renders a raw value the way it would appear in the cell.
func text(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case time.Time:
		return v.Format(time.RFC3339)
	default:
		return fmt.Sprint(v)
	}
}

func parseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	// excelize reports boolean cells as "1" and "0"
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	if str2.IsBool(s) {
		return str2.TraceToBool(s, "bool"), nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", s)
}

func parseInt(rv reflect.Value) (int64, error) {
	switch {
	case rv.CanInt():
		return rv.Int(), nil
	case rv.CanUint():
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, fmt.Errorf("value %d overflows int64", u)
		}
		return int64(u), nil
	case rv.CanFloat():
		return wholeNumber(rv.Float())
	}

	s := strings.TrimSpace(text(rv.Interface()))
	switch {
	case str2.IsInt(s):
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as integer: %w", s, err)
		}
		return n, nil
	case str2.IsFloat(s):
		// whole numbers stored as 1.0E+3 and the like
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as integer: %w", s, err)
		}
		return wholeNumber(f)
	}
	return 0, fmt.Errorf("cannot parse %q as integer", s)
}

func parseUint(rv reflect.Value) (uint64, error) {
	switch {
	case rv.CanUint():
		return rv.Uint(), nil
	case rv.CanInt():
		n := rv.Int()
		if n < 0 {
			return 0, fmt.Errorf("value %d is negative", n)
		}
		return uint64(n), nil
	case rv.CanFloat():
		return wholeUnsigned(rv.Float())
	}

	s := strings.TrimSpace(text(rv.Interface()))
	u, err := strconv.ParseUint(s, 10, 64)
	switch {
	case err == nil:
		return u, nil
	case errors.Is(err, strconv.ErrRange):
		return 0, fmt.Errorf("cannot parse %q as unsigned integer: %w", s, err)
	case str2.IsInt(s) || str2.IsFloat(s):
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as unsigned integer: %w", s, err)
		}
		return wholeUnsigned(f)
	}
	return 0, fmt.Errorf("cannot parse %q as unsigned integer", s)
}

// wholeNumber accepts floats in [-2^63, 2^63) without a fractional part.
func wholeNumber(f float64) (int64, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("value %g is not a whole number", f)
	}
	if f >= 1<<63 || f < -1<<63 {
		return 0, fmt.Errorf("value %g overflows int64", f)
	}
	return int64(f), nil
}

func wholeUnsigned(f float64) (uint64, error) {
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("value %g is not a whole number", f)
	}
	if f >= 1<<64 || f < 0 {
		return 0, fmt.Errorf("value %g overflows uint64", f)
	}
	return uint64(f), nil
}

func parseFloat(rv reflect.Value) (float64, error) {
	switch {
	case rv.CanFloat():
		return rv.Float(), nil
	case rv.CanInt():
		return float64(rv.Int()), nil
	case rv.CanUint():
		return float64(rv.Uint()), nil
	}

	s := strings.TrimSpace(text(rv.Interface()))
	if str2.IsFloat(s) || str2.IsInt(s) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot parse %q as number: %w", s, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("cannot parse %q as number", s)
}

// convertTime reads Excel serial dates, numeric or textual, and falls back to
// date strings.
func convertTime(raw interface{}) (reflect.Value, error) {
	rv := reflect.ValueOf(raw)
	var serial float64
	switch {
	case rv.CanFloat():
		serial = rv.Float()
	case rv.CanInt():
		serial = float64(rv.Int())
	default:
		s := strings.TrimSpace(text(raw))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			if str2.IsTime(s) {
				return reflect.ValueOf(str2.TraceToTime(s, "time")), nil
			}
			return reflect.Value{}, fmt.Errorf("cannot parse %q as time", s)
		}
		serial = f
	}

	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(t), nil
}
