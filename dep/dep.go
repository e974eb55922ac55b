/*
package dep provides utilities for dependency injection.

okay, just the one.
*/
package dep

import (
	"fmt"
	"reflect"
	"runtime"
)

// Required returns t, or panics naming the caller if t is missing.  Missing
// means a nil interface, or a nil pointer, map, slice, func, or channel
// hiding inside one.
func Required[T any](t T) T {
	if !missing(reflect.ValueOf(&t).Elem()) {
		return t
	}
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		panic(fmt.Sprintf("missing required dependency of type %T", t))
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		panic(fmt.Sprintf("missing required dependency of type %s in %s (%s:%d)", typeName[T](), fn.Name(), file, line))
	}
	panic(fmt.Sprintf("missing required dependency of type %s (%s:%d)", typeName[T](), file, line))
}

func missing(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		return v.IsNil() || missing(v.Elem())
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
