// Package impersonate builds objects under test with mocks standing in for every
// dependency their constructor asks for.
//
//	imp := impersonate.For(t)
//	_ = impersonate.Provide[store.Repo](imp, fakeRepo)
//	svc := impersonate.MustMake[*service.Service](t, imp, service.New)
//
// Parameters whose type has a provided mock receive it; the rest receive a fresh mock
// from the synthesizer. Non-object parameters (ints, strings, slices, ...) cannot be
// impersonated and make construction fail.
//
// This is the public API entry point. Implementation lives in internal/core.
package impersonate

import (
	"reflect"

	"github.com/toejough/impersonate/internal/core"
)

// ConstructionError reports that the target constructor itself returned an error.
type ConstructionError = core.ConstructionError

// Factories is the default Synthesizer, building mocks from registered factories.
type Factories = core.Factories

// Impersonating is implemented by mocks that declare which types they stand in for.
type Impersonating = core.Impersonating

// Impersonator resolves constructor parameters to mocks and builds targets.
type Impersonator = core.Impersonator

// InvalidMockError reports a value that cannot be indexed as a mock.
type InvalidMockError = core.InvalidMockError

// MockRegistry maps types to provided mocks.
type MockRegistry = core.MockRegistry

// NotConstructibleError reports a target that has no usable constructor.
type NotConstructibleError = core.NotConstructibleError

// Option configures an Impersonator.
type Option = core.Option

// ParameterSpec describes one positional constructor parameter.
type ParameterSpec = core.ParameterSpec

// Synthesizer builds default mocks on demand.
type Synthesizer = core.Synthesizer

// TestReporter is the minimal interface impersonate needs from test frameworks.
type TestReporter = core.TestReporter

// UnresolvableParameterError reports a constructor parameter no mock can stand in for.
type UnresolvableParameterError = core.UnresolvableParameterError

// UnsynthesizableTypeError reports a type the synthesizer cannot build.
type UnsynthesizableTypeError = core.UnsynthesizableTypeError

// Sentinel errors, for use with errors.Is.
var (
	ErrInvalidMock           = core.ErrInvalidMock
	ErrNotConstructible      = core.ErrNotConstructible
	ErrUnresolvableParameter = core.ErrUnresolvableParameter
	ErrUnsynthesizable       = core.ErrUnsynthesizable
)

// For returns the Impersonator for the given test, creating one if needed.
func For(t TestReporter, opts ...Option) *Impersonator {
	return core.For(t, opts...)
}

// Make builds target and asserts the result to T.
func Make[T any](imp *Impersonator, target any) (T, error) {
	return core.MakeAs[T](imp, target)
}

// MustMake builds target and asserts the result to T, failing the test on error.
func MustMake[T any](t TestReporter, imp *Impersonator, target any) T {
	t.Helper()

	return core.MustMake[T](t, imp, target)
}

// New creates an Impersonator with an empty registry.
func New(opts ...Option) *Impersonator {
	return core.New(opts...)
}

// NewFactories creates an empty Factories synthesizer.
func NewFactories() *Factories {
	return core.NewFactories(nil)
}

// ParameterTypes lists the parameters of target's constructor.
func ParameterTypes(target any) ([]ParameterSpec, error) {
	return core.ParameterTypes(target)
}

// Provide registers mock under T as well as under its dynamic type.
func Provide[T any](imp *Impersonator, mock T) error {
	return core.ProvideAs(imp, mock)
}

// RegisterFactory registers build as the way to synthesize T.
func RegisterFactory[T any](f *Factories, build func() T) {
	core.RegisterFactory(f, build)
}

// TypeName returns the fully qualified name of t.
func TypeName(t reflect.Type) string {
	return core.TypeName(t)
}

// TypeOf returns the reflect.Type of T, which may be an interface.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// WithLogger sets the logger used to trace provisions and resolutions.
var WithLogger = core.WithLogger

// WithSynthesizer replaces the default Factories synthesizer.
var WithSynthesizer = core.WithSynthesizer
