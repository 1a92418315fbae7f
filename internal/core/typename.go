package core

import (
	"reflect"
	"strings"
)

// TypeName returns the fully qualified name of t, e.g. "github.com/acme/store.Repo" or
// "*github.com/acme/store.Client". Unnamed types fall back to their Go syntax.
func TypeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	var prefix strings.Builder

	for t.Kind() == reflect.Pointer && t.Name() == "" {
		prefix.WriteString("*")

		t = t.Elem()
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return prefix.String() + t.String()
	}

	return prefix.String() + t.PkgPath() + "." + t.Name()
}

// isObjectType reports whether t is a declared class-like type: a named interface with
// methods, a named struct or func, or a pointer to a named struct.
func isObjectType(t reflect.Type) bool {
	if t == nil {
		return false
	}

	if t.Kind() == reflect.Pointer {
		elem := t.Elem()

		return elem.Name() != "" && elem.Kind() == reflect.Struct
	}

	if t.Name() == "" {
		return false
	}

	switch t.Kind() { //nolint:exhaustive // everything else is a primitive
	case reflect.Interface:
		return t.NumMethod() > 0
	case reflect.Struct, reflect.Func:
		return true
	default:
		return false
	}
}

// isObjectValue reports whether v can be held as a mock handle.
func isObjectValue(v any) bool {
	if v == nil {
		return false
	}

	value := reflect.ValueOf(v)

	switch value.Kind() { //nolint:exhaustive // everything else is a primitive
	case reflect.Pointer, reflect.Func:
		return !value.IsNil()
	case reflect.Struct:
		return true
	default:
		return false
	}
}
