/*
varz provides helpers to create expvar variables with package-qualified names,
and serves them at /varz.
*/
package varz

import (
	"expvar"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// callerPackage returns the import path of the package that called our
// caller.  If the variable is declared in a var block, this will remove the
// "init" bit.
func callerPackage() string {
	pc, _, _, ok := runtime.Caller(2)
	if !ok {
		return "varz.unknown"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "varz.unknown"
	}
	return packageOf(fn.Name())
}

// packageOf trims a fully qualified function name ("a/b/pkg.Func",
// "a/b/pkg.(*T).Method", "a/b/pkg.init") down to "a/b/pkg".
func packageOf(funcName string) string {
	slash := strings.LastIndex(funcName, "/")
	dot := strings.Index(funcName[slash+1:], ".")
	if dot == -1 {
		return funcName
	}
	return funcName[:slash+1+dot]
}

func NewInt(name string) *expvar.Int {
	return expvar.NewInt(fmt.Sprintf("%s.%s", callerPackage(), name))
}

func NewMap(name string) *expvar.Map {
	return expvar.NewMap(fmt.Sprintf("%s.%s", callerPackage(), name))
}

// Handler serves every published variable as JSON.
func Handler() http.Handler {
	return expvar.Handler()
}
