// Package simulation holds the energy-balance model of a solar pumping
// installation. Compute is pure apart from the noise source handed to it.
package simulation

import (
	"fmt"
	"math"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

// Noise supplies standard normal samples. *rand.Rand from math/rand/v2 satisfies it.
type Noise interface {
	NormFloat64() float64
}

// Model is one variant of the energy balance.
type Model interface {
	Variant() domain.Variant
	Compute(in domain.SimulationInput, noise Noise) (domain.SimulationOutput, error)
}

// DefaultNoiseStdDev is the spread of hydraulic pump-profile samples, in kW.
const DefaultNoiseStdDev = 0.2

// New returns the model for v. noiseStdDev only affects the hydraulic variant.
func New(v domain.Variant, noiseStdDev float64) (Model, error) {
	switch v {
	case domain.VariantIrradiance:
		return IrradianceModel{}, nil
	case domain.VariantHydraulic:
		return HydraulicModel{NoiseStdDev: noiseStdDev}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownVariant, v)
}

// Compute runs the variant v with the default noise spread.
func Compute(v domain.Variant, in domain.SimulationInput, noise Noise) (domain.SimulationOutput, error) {
	m, err := New(v, DefaultNoiseStdDev)
	if err != nil {
		return domain.SimulationOutput{}, err
	}
	return m.Compute(in, noise)
}

// checkFinite rejects a result in which any figure overflowed float64.
func checkFinite(out domain.SimulationOutput) error {
	type figure struct {
		name  string
		value float64
	}
	fields := []figure{
		{"pv_power_kw", out.PVPowerKW},
		{"pump_power_kw", out.PumpPowerKW},
		{"diesel_equivalent", out.DieselEquivalent},
		{"co2_reduction_kgh", out.CO2ReductionKgh},
	}
	if out.WaterPumpedM3h != nil {
		fields = append(fields, figure{"water_pumped_m3h", *out.WaterPumpedM3h})
	}
	if out.CostSavingPerH != nil {
		fields = append(fields, figure{"cost_saving_per_hour", *out.CostSavingPerH})
	}
	for _, f := range fields {
		if !finite(f.value) {
			return fmt.Errorf("%w: %s", domain.ErrNonFinite, f.name)
		}
	}
	for h := range out.Profile.Solar {
		if !finite(out.Profile.Solar[h]) || !finite(out.Profile.Pump[h]) {
			return fmt.Errorf("%w: diurnal profile hour %d", domain.ErrNonFinite, h)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
