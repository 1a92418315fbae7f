// Package enum emulates enumerations as struct values whose exported fields are the
// named constants:
//
//	var Color = struct {
//	    Red   int
//	    Green int
//	    Blue  int `enum:"BLUE"`
//	}{1, 2, 3}
//
//	values, _ := enum.Of[int](Color).Values() // {"Red": 1, "Green": 2, "BLUE": 3}
package enum

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// ErrNotEnumerable is returned for sets that are not structs, or whose constants do
// not fit the requested value type.
var ErrNotEnumerable = errors.New("not enumerable")

// Enum reads the constants of a set. Nothing is cached: every call reflects again.
type Enum[V any] struct {
	set any
}

// Of wraps set, a struct or pointer to struct, as an enumeration of V values.
func Of[V any](set any) Enum[V] {
	return Enum[V]{set: set}
}

// Keys returns the sorted constant names.
func (e Enum[V]) Keys() ([]string, error) {
	values, err := e.Values()
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	return keys, nil
}

// Values returns the constants by name.
func (e Enum[V]) Values() (map[string]V, error) {
	value := reflect.ValueOf(e.set)
	for value.Kind() == reflect.Pointer && !value.IsNil() {
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %T is not a struct", ErrNotEnumerable, e.set)
	}

	valueType := reflect.TypeFor[V]()
	setType := value.Type()
	values := make(map[string]V, setType.NumField())

	for i := range setType.NumField() {
		field := setType.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name

		if tag, ok := field.Tag.Lookup("enum"); ok {
			if tag == "-" {
				continue
			}

			name = tag
		}

		if !field.Type.AssignableTo(valueType) {
			return nil, fmt.Errorf("%w: %s is %s, not %s", ErrNotEnumerable, field.Name, field.Type, valueType)
		}

		if _, dup := values[name]; dup {
			return nil, fmt.Errorf("%w: duplicate constant %q", ErrNotEnumerable, name)
		}

		constant, _ := value.Field(i).Interface().(V)
		values[name] = constant
	}

	return values, nil
}
