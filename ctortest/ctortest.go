// Package ctortest checks that a fixture's factory constructs what it promises.
//
//	func TestNewService(t *testing.T) {
//	    ctortest.Spec{
//	        Make:  func() any { return service.New(repo) },
//	        Types: []reflect.Type{impersonate.TypeOf[io.Closer]()},
//	    }.Test(t)
//	}
package ctortest

import (
	"reflect"

	"github.com/onsi/gomega"
	"github.com/toejough/impersonate/internal/core"
	"github.com/toejough/impersonate/match"
)

// Spec describes a constructor check.
type Spec struct {
	// Make produces the instance under test.
	Make func() any
	// Types the instance must satisfy, all of them. May be empty.
	Types []reflect.Type

	// build is set by FromFixture for a Make method that also returns an error.
	build func() (any, error)
}

// FromFixture builds a Spec from a fixture's zero-argument Make method, returning
// either the instance or the instance and an error. A non-nil error fails Test.
// When the fixture has no such method, the Spec's Make is left nil and Test fails.
func FromFixture(fixture any, types ...reflect.Type) Spec {
	build := factoryOf(fixture)
	if build == nil {
		return Spec{Types: types}
	}

	return Spec{
		Make: func() any {
			instance, _ := build()

			return instance
		},
		Types: types,
		build: build,
	}
}

// Test runs the constructor check, failing t on any mismatch.
func (s Spec) Test(t core.TestReporter) {
	t.Helper()

	if s.Make == nil {
		t.Fatalf("ctortest: fixture defines no Make() factory")

		return
	}

	instance, err := s.instance()
	if err != nil {
		t.Fatalf("ctortest: Make() failed: %v", err)

		return
	}

	g := gomega.NewWithT(t)

	g.Expect(instance).To(match.BeObject(), "Make() must return an object")

	if len(s.Types) > 0 {
		g.Expect(instance).To(match.Implement(s.Types...), "Make() result must satisfy every expected type")
	}
}

// Verify is shorthand for FromFixture(fixture, types...).Test(t).
func Verify(t core.TestReporter, fixture any, types ...reflect.Type) {
	t.Helper()

	FromFixture(fixture, types...).Test(t)
}

func (s Spec) instance() (any, error) {
	if s.build != nil {
		return s.build()
	}

	return s.Make(), nil
}

func factoryOf(fixture any) func() (any, error) {
	if fixture == nil {
		return nil
	}

	method := reflect.ValueOf(fixture).MethodByName("Make")
	if !method.IsValid() {
		return nil
	}

	methodType := method.Type()
	if methodType.NumIn() != 0 {
		return nil
	}

	switch {
	case methodType.NumOut() == 1:
		return func() (any, error) {
			return method.Call(nil)[0].Interface(), nil
		}
	case methodType.NumOut() == 2 && methodType.Out(1) == reflect.TypeFor[error](): //nolint:mnd // instance plus error
		return func() (any, error) {
			results := method.Call(nil)
			err, _ := results[1].Interface().(error)

			return results[0].Interface(), err
		}
	default:
		return nil
	}
}
