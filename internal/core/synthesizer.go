package core

import (
	"reflect"

	"go.uber.org/zap"
)

// Synthesizer builds default, behaviorless mocks on demand.
type Synthesizer interface {
	// Build returns a fresh mock for t. A non-nil configure is applied to it first.
	Build(t reflect.Type, configure func(any)) (any, error)
}

// Factories is the default Synthesizer. Types with a registered factory use it;
// otherwise pointers to structs, structs and func types get zero-behavior values.
// Interfaces need a factory, since their method sets cannot be created at runtime.
type Factories struct {
	factories map[reflect.Type]func() any
	logger    *zap.Logger
}

// NewFactories creates a Factories with no registered types. A nil logger is replaced
// with a no-op one.
func NewFactories(logger *zap.Logger) *Factories {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Factories{
		factories: make(map[reflect.Type]func() any),
		logger:    logger,
	}
}

// Build implements Synthesizer.
func (f *Factories) Build(t reflect.Type, configure func(any)) (any, error) {
	mock, err := f.build(t)
	if err != nil {
		return nil, err
	}

	if configure != nil {
		configure(mock)
	}

	return mock, nil
}

// Register sets the factory used for t, replacing any earlier one.
func (f *Factories) Register(t reflect.Type, build func() any) {
	f.factories[t] = build
}

// Types lists the types with a registered factory.
func (f *Factories) Types() []reflect.Type {
	types := make([]reflect.Type, 0, len(f.factories))
	for t := range f.factories {
		types = append(types, t)
	}

	return types
}

func (f *Factories) build(t reflect.Type) (any, error) {
	if t == nil {
		return nil, &UnsynthesizableTypeError{Type: t}
	}

	if factory, ok := f.factories[t]; ok {
		f.logger.Debug("synthesizing from factory", zap.String("type", TypeName(t)))

		return factory(), nil
	}

	switch t.Kind() { //nolint:exhaustive // interfaces and primitives have no default
	case reflect.Pointer:
		if t.Elem().Kind() == reflect.Struct {
			return reflect.New(t.Elem()).Interface(), nil
		}
	case reflect.Struct:
		return reflect.New(t).Elem().Interface(), nil
	case reflect.Func:
		return zeroFunc(t).Interface(), nil
	}

	return nil, &UnsynthesizableTypeError{Type: t}
}

// RegisterFactory registers build as the factory for T.
func RegisterFactory[T any](f *Factories, build func() T) {
	f.Register(reflect.TypeFor[T](), func() any { return build() })
}

// zeroFunc makes a func of type t that returns zero values.
func zeroFunc(t reflect.Type) reflect.Value {
	return reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value {
		out := make([]reflect.Value, 0, t.NumOut())
		for i := range t.NumOut() {
			out = append(out, reflect.New(t.Out(i)).Elem())
		}

		return out
	})
}
