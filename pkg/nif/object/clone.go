package object

import "reflect"

// Clone returns a deep copy of o. Value members are copied, references stay
// index based, so the clone points at the same blocks as the original.
// Cloning referenced blocks is the caller's job.
func Clone[T NiObject](o T) T {
	src := reflect.ValueOf(o)
	if src.Kind() != reflect.Pointer || src.IsNil() {
		return o
	}

	dst := reflect.New(src.Elem().Type())
	dst.Elem().Set(src.Elem())
	deepCopy(dst.Elem())
	return dst.Interface().(T)
}

// deepCopy replaces every reachable settable slice, map and pointer in v
// with a fresh copy. Plain values were already copied by the struct Set.
func deepCopy(v reflect.Value) {
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			f := v.Field(i)
			if f.CanSet() {
				deepCopy(f)
			}
		}
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			deepCopy(v.Index(i))
		}
	case reflect.Slice:
		if v.IsNil() {
			return
		}
		c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		reflect.Copy(c, v)
		for i := 0; i < c.Len(); i++ {
			deepCopy(c.Index(i))
		}
		v.Set(c)
	case reflect.Map:
		if v.IsNil() {
			return
		}
		c := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			val := reflect.New(iter.Value().Type()).Elem()
			val.Set(iter.Value())
			deepCopy(val)
			c.SetMapIndex(iter.Key(), val)
		}
		v.Set(c)
	case reflect.Pointer:
		if v.IsNil() {
			return
		}
		c := reflect.New(v.Elem().Type())
		c.Elem().Set(v.Elem())
		deepCopy(c.Elem())
		v.Set(c)
	}
}
