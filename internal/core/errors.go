package core

import (
	"errors"
	"fmt"
	"reflect"
)

// Sentinel errors. Every detailed error below unwraps to one of these so callers can
// branch with errors.Is without caring about the details.
var (
	ErrInvalidMock           = errors.New("invalid mock")
	ErrNotConstructible      = errors.New("target is not constructible")
	ErrUnresolvableParameter = errors.New("unresolvable constructor parameter")
	ErrUnsynthesizable       = errors.New("cannot synthesize mock")
)

// ConstructionError reports that the target constructor itself returned an error.
type ConstructionError struct {
	Target reflect.Type
	Err    error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("constructing via %s: %v", TypeName(e.Target), e.Err)
}

func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// InvalidMockError reports a value that cannot be indexed as a mock.
type InvalidMockError struct {
	Mock   any
	Reason string
}

func (e *InvalidMockError) Error() string {
	return fmt.Sprintf("%v: %T: %s", ErrInvalidMock, e.Mock, e.Reason)
}

func (e *InvalidMockError) Unwrap() error {
	return ErrInvalidMock
}

// NotConstructibleError reports a target that has no usable constructor.
type NotConstructibleError struct {
	Target any
	Reason string
}

func (e *NotConstructibleError) Error() string {
	return fmt.Sprintf("%v: %T: %s", ErrNotConstructible, e.Target, e.Reason)
}

func (e *NotConstructibleError) Unwrap() error {
	return ErrNotConstructible
}

// UnresolvableParameterError reports a constructor parameter that no mock can stand in for.
type UnresolvableParameterError struct {
	Target   reflect.Type
	Position int
	Type     reflect.Type
}

func (e *UnresolvableParameterError) Error() string {
	return fmt.Sprintf(
		"%v: parameter %d of %s has non-object type %s",
		ErrUnresolvableParameter, e.Position, TypeName(e.Target), TypeName(e.Type),
	)
}

func (e *UnresolvableParameterError) Unwrap() error {
	return ErrUnresolvableParameter
}

// UnsynthesizableTypeError reports a type the synthesizer has no way to build.
type UnsynthesizableTypeError struct {
	Type reflect.Type
}

func (e *UnsynthesizableTypeError) Error() string {
	return fmt.Sprintf("%v: no factory registered for %s", ErrUnsynthesizable, TypeName(e.Type))
}

func (e *UnsynthesizableTypeError) Unwrap() error {
	return ErrUnsynthesizable
}
