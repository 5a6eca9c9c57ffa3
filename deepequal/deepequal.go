// Package deepequal compares plain values structurally: scalars, slices,
// arrays and maps, nested to any depth. Numbers compare by value across Go
// numeric kinds, so decoded JSON compares equal to literal Go values.
// NaN equals NaN, keeping Equal reflexive.
package deepequal

import (
	"errors"
	"fmt"
	"math"
	"reflect"
)

var ErrUnhandledType = errors.New("unhandled type")

type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
	kindOther
)

// Equal reports whether left and right are structurally equal.
// Maps are equal when they hold the same key set with equal values.
// Kinds other than scalars, slices, arrays and maps return ErrUnhandledType
// unless the two values are identical.
func Equal(left, right any) (bool, error) {
	return equal(reflect.ValueOf(left), reflect.ValueOf(right))
}

// MustEqual is like Equal but panics on an unhandled type
func MustEqual(left, right any) bool {
	eq, err := Equal(left, right)
	if err != nil {
		panic(err)
	}
	return eq
}

func equal(l, r reflect.Value) (bool, error) {
	l, r = unwrap(l), unwrap(r)

	if identical(l, r) {
		return true, nil
	}

	lk, rk := kindOf(l), kindOf(r)
	if lk != rk {
		return false, nil
	}

	switch lk {
	case kindNull:
		return true, nil
	case kindBool:
		return l.Bool() == r.Bool(), nil
	case kindString:
		return l.String() == r.String(), nil
	case kindNumber:
		return numbersEqual(l, r), nil
	case kindArray:
		if l.Len() != r.Len() {
			return false, nil
		}
		for i := 0; i < l.Len(); i++ {
			eq, err := equal(l.Index(i), r.Index(i))
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	case kindObject:
		if l.Len() != r.Len() {
			return false, nil
		}
		if l.Type().Key() != r.Type().Key() {
			return l.Len() == 0, nil
		}
		iter := l.MapRange()
		for iter.Next() {
			rv := r.MapIndex(iter.Key())
			if !rv.IsValid() {
				return false, nil
			}
			eq, err := equal(iter.Value(), rv)
			if err != nil || !eq {
				return false, err
			}
		}
		return true, nil
	}

	return false, fmt.Errorf("%w %s", ErrUnhandledType, l.Type())
}

// unwrap follows interfaces and non-nil pointers down to the value they hold
func unwrap(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func identical(l, r reflect.Value) bool {
	if !l.IsValid() || !r.IsValid() {
		return !l.IsValid() && !r.IsValid()
	}
	if l.Type() != r.Type() {
		return false
	}

	switch l.Kind() {
	case reflect.Map, reflect.Slice:
		if l.IsNil() || r.IsNil() {
			return l.IsNil() && r.IsNil()
		}
		return l.Pointer() == r.Pointer() && l.Len() == r.Len()
	case reflect.Func:
		return l.IsNil() && r.IsNil()
	}

	return l.Comparable() && r.Comparable() && l.Equal(r)
}

func kindOf(v reflect.Value) kind {
	if !v.IsValid() {
		return kindNull
	}

	switch v.Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.String:
		return kindString
	case reflect.Slice, reflect.Array:
		return kindArray
	case reflect.Map:
		return kindObject
	}

	return kindOther
}

func numbersEqual(l, r reflect.Value) bool {
	switch {
	case l.CanInt() && r.CanInt():
		return l.Int() == r.Int()
	case l.CanUint() && r.CanUint():
		return l.Uint() == r.Uint()
	case l.CanInt() && r.CanUint():
		return l.Int() >= 0 && uint64(l.Int()) == r.Uint()
	case l.CanUint() && r.CanInt():
		return r.Int() >= 0 && uint64(r.Int()) == l.Uint()
	}

	lf, rf := toFloat(l), toFloat(r)
	return lf == rf || (math.IsNaN(lf) && math.IsNaN(rf))
}

func toFloat(v reflect.Value) float64 {
	switch {
	case v.CanInt():
		return float64(v.Int())
	case v.CanUint():
		return float64(v.Uint())
	}
	return v.Float()
}
