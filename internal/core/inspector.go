package core

import (
	"reflect"
)

// ParameterSpec describes one positional constructor parameter.
type ParameterSpec struct {
	Position int
	Type     reflect.Type
	// Typed is false for parameters without a class-like declared type. Those are kept
	// in place rather than dropped so positions stay aligned with the constructor.
	Typed bool
}

// Target is an inspected constructor.
type Target struct {
	Func         reflect.Value
	Params       []ParameterSpec
	ReturnsError bool
}

// Type returns the constructor's func type.
func (t *Target) Type() reflect.Type {
	return t.Func.Type()
}

// Inspect validates target as a constructor and lists its parameters.
//
// A constructor is a func returning the instance, optionally followed by an error.
// Anything else, including a struct value or a reflect.Type, has no constructor.
// A variadic tail is not listed: constructors are always called without it.
func Inspect(target any) (*Target, error) {
	if target == nil {
		return nil, &NotConstructibleError{Target: target, Reason: "target is nil"}
	}

	if _, ok := target.(reflect.Type); ok {
		return nil, &NotConstructibleError{
			Target: target,
			Reason: "a type has no constructor; pass its constructor func instead",
		}
	}

	fn := reflect.ValueOf(target)
	if fn.Kind() != reflect.Func {
		return nil, &NotConstructibleError{Target: target, Reason: "target has no constructor func"}
	}

	if fn.IsNil() {
		return nil, &NotConstructibleError{Target: target, Reason: "constructor func is nil"}
	}

	fnType := fn.Type()

	returnsError, err := checkResults(target, fnType)
	if err != nil {
		return nil, err
	}

	numParams := fnType.NumIn()
	if fnType.IsVariadic() {
		numParams--
	}

	params := make([]ParameterSpec, 0, numParams)

	for i := range numParams {
		paramType := fnType.In(i)
		params = append(params, ParameterSpec{
			Position: i,
			Type:     paramType,
			Typed:    isObjectType(paramType),
		})
	}

	return &Target{Func: fn, Params: params, ReturnsError: returnsError}, nil
}

// ParameterTypes returns the ordered parameter specs of target's constructor.
func ParameterTypes(target any) ([]ParameterSpec, error) {
	inspected, err := Inspect(target)
	if err != nil {
		return nil, err
	}

	return inspected.Params, nil
}

// unexported variables.
var (
	//nolint:gochecknoglobals // type handle, not state
	errorType = reflect.TypeFor[error]()
)

func checkResults(target any, fnType reflect.Type) (bool, error) {
	switch fnType.NumOut() {
	case 1:
		return false, nil
	case 2: //nolint:mnd // instance plus error
		if fnType.Out(1) != errorType {
			return false, &NotConstructibleError{
				Target: target,
				Reason: "second result must be error, got " + fnType.Out(1).String(),
			}
		}

		return true, nil
	case 0:
		return false, &NotConstructibleError{Target: target, Reason: "constructor returns nothing"}
	default:
		return false, &NotConstructibleError{Target: target, Reason: "constructor returns too many values"}
	}
}
