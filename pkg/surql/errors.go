package surql

import "errors"

var (
	// ErrUnknownOperator is returned when an operator token cannot be resolved.
	ErrUnknownOperator = errors.New("surql: unknown operator")

	// ErrMalformedCondition is returned when a condition token stream does
	// not alternate values and operators.
	ErrMalformedCondition = errors.New("surql: malformed condition")

	// ErrUnsupportedValue is returned when a Go value has no SurrealQL form.
	ErrUnsupportedValue = errors.New("surql: unsupported value")

	// ErrNoIndexNames is returned when a WITH INDEX clause names no index.
	ErrNoIndexNames = errors.New("surql: WITH INDEX needs at least one index")
)

// IsMalformedConditionErr returns true if err is or wraps ErrMalformedCondition.
func IsMalformedConditionErr(err error) bool {
	return errors.Is(err, ErrMalformedCondition)
}

// IsUnknownOperatorErr returns true if err is or wraps ErrUnknownOperator.
func IsUnknownOperatorErr(err error) bool {
	return errors.Is(err, ErrUnknownOperator)
}
