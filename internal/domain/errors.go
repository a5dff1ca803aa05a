package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation     = errors.New("invalid simulation input")
	ErrDivisionByZero = errors.New("division by zero efficiency")
	ErrUnknownVariant = errors.New("unknown model variant")
	ErrNonFinite      = errors.New("simulation result overflowed")
)

// ValidationError names one input field that is out of its declared range.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s=%g: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ValidationErrors collects every failing field of one input.
type ValidationErrors []*ValidationError

func (es ValidationErrors) Error() string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.Error()
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (es ValidationErrors) Is(target error) bool { return target == ErrValidation }

// Fields lists the failing field names in order.
func (es ValidationErrors) Fields() []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.Field
	}
	return out
}
