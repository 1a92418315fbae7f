package core

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Impersonator builds constructor targets, standing in mocks for their dependencies.
// Mocks handed to Provide win over synthesized ones; for a type claimed by several
// provided mocks, the most recent one wins.
//
// An Impersonator belongs to a single test and is not safe for concurrent use.
type Impersonator struct {
	registry    *MockRegistry
	synthesizer Synthesizer
	logger      *zap.Logger
}

// Option configures an Impersonator.
type Option func(*config)

// New creates an Impersonator with an empty registry.
func New(opts ...Option) *Impersonator {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if cfg.synthesizer == nil {
		cfg.synthesizer = NewFactories(cfg.logger)
	}

	return &Impersonator{
		registry:    NewMockRegistry(),
		synthesizer: cfg.synthesizer,
		logger:      cfg.logger,
	}
}

// WithLogger sets the logger used to trace provisions and resolutions.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithSynthesizer replaces the default Factories synthesizer.
func WithSynthesizer(s Synthesizer) Option {
	return func(c *config) {
		c.synthesizer = s
	}
}

// Make calls target's constructor with a mock for every parameter and returns the
// constructed instance.
func (i *Impersonator) Make(target any) (any, error) {
	inspected, err := Inspect(target)
	if err != nil {
		return nil, err
	}

	// Untyped parameters fail construction before any mock is looked up or built.
	for _, param := range inspected.Params {
		if !param.Typed {
			return nil, &UnresolvableParameterError{
				Target:   inspected.Type(),
				Position: param.Position,
				Type:     param.Type,
			}
		}
	}

	args := make([]reflect.Value, 0, len(inspected.Params))

	for _, param := range inspected.Params {
		arg, err := i.resolve(inspected, param)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	results := inspected.Func.Call(args)

	if inspected.ReturnsError && !results[1].IsNil() {
		ctorErr, _ := results[1].Interface().(error)

		return nil, &ConstructionError{Target: inspected.Type(), Err: ctorErr}
	}

	return results[0].Interface(), nil
}

// Mock synthesizes a mock for t, applies configure to it, and provides it under t.
func (i *Impersonator) Mock(t reflect.Type, configure func(any)) (any, error) {
	mock, err := i.synthesizer.Build(t, configure)
	if err != nil {
		return nil, err
	}

	err = i.Provide(mock, t)
	if err != nil {
		return nil, err
	}

	return mock, nil
}

// Provide registers mock for its own dynamic type, for every type in as, for the types
// it reports through Impersonates, and for every interface the synthesizer knows that
// it implements.
func (i *Impersonator) Provide(mock any, as ...reflect.Type) error {
	if !isObjectValue(mock) {
		return &InvalidMockError{Mock: mock, Reason: "primitive values cannot be provided"}
	}

	types := i.typeSet(mock, as)

	err := i.registry.Insert(mock, types)
	if err != nil {
		return fmt.Errorf("providing %s: %w", TypeName(reflect.TypeOf(mock)), err)
	}

	for _, t := range types {
		i.logger.Debug("provided mock",
			zap.String("type", TypeName(t)),
			zap.String("mock", TypeName(reflect.TypeOf(mock))),
		)
	}

	return nil
}

// Registry exposes the provided mocks.
func (i *Impersonator) Registry() *MockRegistry {
	return i.registry
}

// Synthesizer returns the synthesizer used for unprovided types.
func (i *Impersonator) Synthesizer() Synthesizer {
	return i.synthesizer
}

// Impersonating is implemented by mocks that declare which types they stand in for.
type Impersonating interface {
	Impersonates() []reflect.Type
}

type config struct {
	logger      *zap.Logger
	synthesizer Synthesizer
}

// typeLister is implemented by synthesizers that know which types they can build.
type typeLister interface {
	Types() []reflect.Type
}

func (i *Impersonator) resolve(target *Target, param ParameterSpec) (reflect.Value, error) {
	source := "provided"

	mock, ok := i.registry.Lookup(param.Type)
	if !ok {
		source = "synthesized"

		built, err := i.synthesizer.Build(param.Type, nil)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("parameter %d of %s: %w", param.Position, TypeName(target.Type()), err)
		}

		mock = built
	}

	i.logger.Debug("resolved parameter",
		zap.Int("position", param.Position),
		zap.String("type", TypeName(param.Type)),
		zap.String("source", source),
	)

	if !isObjectValue(mock) {
		return reflect.Value{}, fmt.Errorf(
			"parameter %d of %s: %w",
			param.Position, TypeName(target.Type()),
			&InvalidMockError{Mock: mock, Reason: source + " mock is not an object"},
		)
	}

	value := reflect.ValueOf(mock)
	if !value.Type().AssignableTo(param.Type) {
		return reflect.Value{}, fmt.Errorf(
			"parameter %d of %s: %w",
			param.Position, TypeName(target.Type()),
			&InvalidMockError{Mock: mock, Reason: "not assignable to " + TypeName(param.Type)},
		)
	}

	return value, nil
}

func (i *Impersonator) typeSet(mock any, as []reflect.Type) []reflect.Type {
	mockType := reflect.TypeOf(mock)
	seen := map[reflect.Type]bool{}
	types := make([]reflect.Type, 0, 1+len(as))

	add := func(t reflect.Type) {
		if !seen[t] {
			seen[t] = true

			types = append(types, t)
		}
	}

	add(mockType)

	for _, t := range as {
		add(t)
	}

	if declaring, ok := mock.(Impersonating); ok {
		for _, t := range declaring.Impersonates() {
			add(t)
		}
	}

	if lister, ok := i.synthesizer.(typeLister); ok {
		for _, t := range lister.Types() {
			if t.Kind() == reflect.Interface && mockType.Implements(t) {
				add(t)
			}
		}
	}

	return types
}
