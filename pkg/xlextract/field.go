package xlextract

import (
	"fmt"
	"reflect"
	"strings"
)

// Field is a top-level, directly assignable field of struct type T whose
// declared type is V. A Field is resolved once and then reused for any
// number of T values.
type Field[T, V any] struct {
	name string
	typ  reflect.Type
	ptr  func(*T) *V
}

// Name returns the Go name of the field.
func (f Field[T, V]) Name() string {
	return f.name
}

// Type returns the declared type of the field.
func (f Field[T, V]) Type() reflect.Type {
	return f.typ
}

// Set writes v into obj's field.
func (f Field[T, V]) Set(obj *T, v V) {
	*f.ptr(obj) = v
}

// Get reads obj's field.
func (f Field[T, V]) Get(obj *T) V {
	return *f.ptr(obj)
}

func (f Field[T, V]) bound() bool {
	return f.ptr != nil
}

// Select binds the field addressed by sel, for example
//
//	xlextract.Select(func(i *Invoice) *[]LineItem { return &i.LineItems })
//
// sel is called once on a probe value and must return the address of a
// top-level field of T. Selectors that compute a value, follow a nested path
// or return nil yield a *BindingError.
func Select[T, V any](sel func(*T) *V) (Field[T, V], error) {
	rt := reflect.TypeFor[T]()
	vt := reflect.TypeFor[V]()

	if sel == nil {
		return Field[T, V]{}, newBindingError(rt, "", "nil selector")
	}
	if rt.Kind() != reflect.Struct {
		return Field[T, V]{}, newBindingError(rt, "", "%v is not a struct", rt)
	}

	probe := new(T)
	p, err := probeSelector(sel, probe)
	if err != nil {
		return Field[T, V]{}, newBindingError(rt, "", "%v", err)
	}
	if p == nil {
		return Field[T, V]{}, newBindingError(rt, "", "selector returned nil")
	}

	addr := reflect.ValueOf(p).Pointer()
	base := reflect.ValueOf(probe).Elem()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.Type != vt {
			continue
		}
		if base.Field(i).Addr().Pointer() == addr {
			return Field[T, V]{name: sf.Name, typ: vt, ptr: sel}, nil
		}
	}
	return Field[T, V]{}, newBindingError(rt, "", "selector does not address a %v field of %v", vt, rt)
}

// probeSelector calls sel, turning a panic (nil pointer in a nested path)
// into an error.
func probeSelector[T, V any](sel func(*T) *V, probe *T) (p *V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("selector panicked: %v", r)
		}
	}()
	return sel(probe), nil
}

// Lookup binds the exported field called name. Dotted paths, promoted fields
// and fields whose type is not exactly V yield a *BindingError.
func Lookup[T, V any](name string) (Field[T, V], error) {
	rt := reflect.TypeFor[T]()
	vt := reflect.TypeFor[V]()

	if rt.Kind() != reflect.Struct {
		return Field[T, V]{}, newBindingError(rt, name, "%v is not a struct", rt)
	}
	if strings.Contains(name, ".") {
		return Field[T, V]{}, newBindingError(rt, name, "nested paths are not assignable")
	}

	sf, ok := rt.FieldByName(name)
	switch {
	case !ok:
		return Field[T, V]{}, newBindingError(rt, name, "no such field")
	case len(sf.Index) != 1:
		return Field[T, V]{}, newBindingError(rt, name, "promoted fields are not assignable")
	case !sf.IsExported():
		return Field[T, V]{}, newBindingError(rt, name, "field is not exported")
	case sf.Type != vt:
		return Field[T, V]{}, newBindingError(rt, name, "field has type %v, not %v", sf.Type, vt)
	}

	idx := sf.Index[0]
	ptr := func(obj *T) *V {
		return reflect.ValueOf(obj).Elem().Field(idx).Addr().Interface().(*V)
	}
	return Field[T, V]{name: sf.Name, typ: vt, ptr: ptr}, nil
}
