// Package match provides gomega matchers for checking constructed instances.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/impersonate/match"
//	)
//
//	g.Expect(svc).To(BeObject())
//	g.Expect(svc).To(Implement(impersonate.TypeOf[io.Closer]()))
package match

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/davecgh/go-spew/spew"
)

// Matcher defines the interface for value matching.
// It is identical to gomega's types.GomegaMatcher, so matchers here can be passed to
// Expect(...).To directly.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
	NegatedFailureMessage(actual any) string
}

// BeObject returns a matcher that succeeds for non-nil object-like values: pointers,
// structs, funcs, and non-empty interface values holding one of those.
func BeObject() Matcher {
	return objectMatcher{}
}

// Implement returns a matcher that succeeds when the value satisfies every one of
// types. Interface types must be implemented; other types must be assignable.
func Implement(types ...reflect.Type) Matcher {
	return &implementMatcher{types: types}
}

// unexported variables.
var (
	errNilType = errors.New("nil type")
)

type implementMatcher struct {
	types   []reflect.Type
	missing []string
}

func (m *implementMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf(
		"Expected\n%s\nto satisfy all of its expected types, but it does not satisfy: %s",
		dump(actual), strings.Join(m.missing, ", "),
	)
}

func (m *implementMatcher) Match(actual any) (bool, error) {
	m.missing = nil

	if actual == nil {
		for _, t := range m.types {
			m.missing = append(m.missing, typeString(t))
		}

		return len(m.types) == 0, nil
	}

	actualType := reflect.TypeOf(actual)

	for _, t := range m.types {
		if t == nil {
			return false, fmt.Errorf("Implement: %w", errNilType)
		}

		if !actualType.AssignableTo(t) {
			m.missing = append(m.missing, typeString(t))
		}
	}

	return len(m.missing) == 0, nil
}

func (m *implementMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n%s\nnot to satisfy all of its expected types", dump(actual))
}

type objectMatcher struct{}

func (objectMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n%s\nto be an object", dump(actual))
}

func (objectMatcher) Match(actual any) (bool, error) {
	if actual == nil {
		return false, nil
	}

	value := reflect.ValueOf(actual)

	switch value.Kind() { //nolint:exhaustive // everything else is a primitive
	case reflect.Pointer, reflect.Func:
		return !value.IsNil(), nil
	case reflect.Struct:
		return true, nil
	default:
		return false, nil
	}
}

func (objectMatcher) NegatedFailureMessage(actual any) string {
	return fmt.Sprintf("Expected\n%s\nnot to be an object", dump(actual))
}

func dump(actual any) string {
	return strings.TrimSuffix(spew.Sdump(actual), "\n")
}

func typeString(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}

	return t.String()
}
