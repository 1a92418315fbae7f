package core

import (
	"fmt"
	"reflect"
	"sync"
)

// TestReporter is the minimal interface impersonate needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// For returns the Impersonator for the given test, creating one with opts if needed.
// Multiple calls with the same TestReporter return the same Impersonator, so helpers
// deep in a test can reach the mocks provided at its top.
//
// If the TestReporter supports Cleanup (like *testing.T), the Impersonator is
// dropped when the test completes.
func For(t TestReporter, opts ...Option) *Impersonator {
	instancesMu.Lock()
	defer instancesMu.Unlock()

	if imp, ok := instances[t]; ok {
		return imp
	}

	imp := New(opts...)
	instances[t] = imp

	if cr, ok := t.(cleanupRegistrar); ok {
		cr.Cleanup(func() {
			instancesMu.Lock()
			delete(instances, t)
			instancesMu.Unlock()
		})
	}

	return imp
}

// MustMake is Make for T that fails the test instead of returning an error.
func MustMake[T any](t TestReporter, imp *Impersonator, target any) T {
	t.Helper()

	instance, err := MakeAs[T](imp, target)
	if err != nil {
		t.Fatalf("impersonate: %v", err)
	}

	return instance
}

// MakeAs is Make with the result asserted to T.
func MakeAs[T any](imp *Impersonator, target any) (T, error) {
	var zero T

	instance, err := imp.Make(target)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, &NotConstructibleError{
			Target: target,
			Reason: fmt.Sprintf("constructor returned %T, not %s", instance, TypeName(reflect.TypeFor[T]())),
		}
	}

	return typed, nil
}

// ProvideAs provides mock under T in addition to its dynamic type.
func ProvideAs[T any](imp *Impersonator, mock T) error {
	return imp.Provide(mock, reflect.TypeFor[T]())
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Per-test lookup; each entry is owned by exactly one test
	instances = make(map[TestReporter]*Impersonator)
	//nolint:gochecknoglobals // Mutex for instances
	instancesMu sync.Mutex
)

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
