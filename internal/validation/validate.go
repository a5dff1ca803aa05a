// Package validation is the input collector's gate in front of the model:
// it rejects out-of-range parameters and never clamps them.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

// Upper limits of the operator sliders on the original prototype.
const (
	MaxSliderIrradiance  = 1200.0 // W/m²
	MaxSliderWaterInflow = 50.0   // L/s
)

type Validator struct {
	v            *validator.Validate
	sliderBounds bool
}

type Option func(*Validator)

// WithSliderBounds also enforces the operator slider ranges.
func WithSliderBounds() Option {
	return func(v *Validator) { v.sliderBounds = true }
}

func New(opts ...Option) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})

	out := &Validator{v: v}
	for _, opt := range opts {
		opt(out)
	}
	return out
}

var std = New()

// Validate checks in with the default validator.
func Validate(in domain.SimulationInput) error { return std.Validate(in) }

// Validate returns nil or a domain.ValidationErrors listing every bad field.
func (v *Validator) Validate(in domain.SimulationInput) error {
	var out domain.ValidationErrors

	err := v.v.Struct(in)
	var fieldErrs validator.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &fieldErrs):
		for _, fe := range fieldErrs {
			val, _ := fe.Value().(float64)
			out = append(out, &domain.ValidationError{Field: fe.Field(), Value: val, Reason: reason(fe.Tag(), fe.Param())})
		}
	default:
		return fmt.Errorf("validate input: %w", err)
	}

	if v.sliderBounds {
		for _, c := range []struct {
			field string
			value float64
			tag   string
		}{
			{"solar_irradiance", in.SolarIrradiance, fmt.Sprintf("lte=%g", MaxSliderIrradiance)},
			{"water_inflow", in.WaterInflow, fmt.Sprintf("lte=%g", MaxSliderWaterInflow)},
		} {
			if err := v.v.Var(c.value, c.tag); err != nil {
				tag, param, _ := strings.Cut(c.tag, "=")
				out = append(out, &domain.ValidationError{Field: c.field, Value: c.value, Reason: reason(tag, param)})
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func reason(tag, param string) string {
	switch tag {
	case "gte":
		return "must be at least " + param
	case "lte":
		return "must be at most " + param
	case "gt":
		return "must be greater than " + param
	case "finite":
		return "must be a finite number"
	}
	return "failed " + tag
}
