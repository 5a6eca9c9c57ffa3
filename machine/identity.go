package machine

import "reflect"

// identical reports whether a and b are the same value: the same reference
// for pointers, maps, slices, channels and funcs, or == for comparable
// values. Structs, arrays and interfaces are walked one level at a time, so
// a struct copy holding the same slice and map headers is identical.
func identical(a, b any) bool {
	return identicalValues(reflect.ValueOf(a), reflect.ValueOf(b))
}

func identicalValues(va, vb reflect.Value) bool {
	if !va.IsValid() || !vb.IsValid() {
		return !va.IsValid() && !vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() && vb.IsNil()
		}
		return identicalValues(va.Elem(), vb.Elem())
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !identicalValues(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < va.Len(); i++ {
			if !identicalValues(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	}

	return va.Comparable() && vb.Comparable() && va.Equal(vb)
}
