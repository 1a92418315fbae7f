package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// MockRegistry maps a type to the mock provided for it.
// At most one mock is held per type; inserting again replaces the previous one.
type MockRegistry struct {
	mocks map[reflect.Type]any
}

// NewMockRegistry creates an empty registry.
func NewMockRegistry() *MockRegistry {
	return &MockRegistry{mocks: make(map[reflect.Type]any)}
}

// Insert associates mock with every type in types.
// Nothing is written unless mock is an object that is assignable to all of them.
func (r *MockRegistry) Insert(mock any, types []reflect.Type) error {
	if !isObjectValue(mock) {
		return &InvalidMockError{Mock: mock, Reason: "primitive values cannot be indexed by type"}
	}

	mockType := reflect.TypeOf(mock)

	for _, t := range types {
		if t == nil {
			return &InvalidMockError{Mock: mock, Reason: "nil type"}
		}

		if !mockType.AssignableTo(t) {
			return &InvalidMockError{
				Mock:   mock,
				Reason: fmt.Sprintf("%s does not satisfy %s", TypeName(mockType), TypeName(t)),
			}
		}
	}

	for _, t := range types {
		r.mocks[t] = mock
	}

	return nil
}

// Len returns the number of indexed types.
func (r *MockRegistry) Len() int {
	return len(r.mocks)
}

// Lookup returns the mock registered for exactly t.
func (r *MockRegistry) Lookup(t reflect.Type) (any, bool) {
	mock, ok := r.mocks[t]

	return mock, ok
}

// Types returns the indexed types sorted by name.
func (r *MockRegistry) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(r.mocks))
	for t := range r.mocks {
		types = append(types, t)
	}

	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(TypeName(a), TypeName(b))
	})

	return types
}
