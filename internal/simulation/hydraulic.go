package simulation

import "github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"

const (
	gravity = 9.81
	// kg of CO2 avoided per kWh of solar displacing diesel
	co2KgPerSolarKWh = 0.27
	// pump runs only at or above this sump level (percent)
	pumpOnWaterLevel = 30
	// smallest normal float64; efficiencies below it are treated as zero
	minNormal = 0x1p-1022
)

// HydraulicModel derives pump power from the lift work it has to do.
type HydraulicModel struct {
	NoiseStdDev float64
}

func (HydraulicModel) Variant() domain.Variant { return domain.VariantHydraulic }

func (m HydraulicModel) Compute(in domain.SimulationInput, noise Noise) (domain.SimulationOutput, error) {
	eff := in.PumpEfficiency / 100
	// a subnormal efficiency overflows the quotient just like a zero one
	if eff < minNormal {
		return domain.SimulationOutput{}, domain.ErrDivisionByZero
	}
	pump := in.FlowRate * in.Head * gravity / eff
	solar := (in.SolarIrradiance * in.PanelArea * in.PanelEfficiency / 100) / 1000
	saving := (in.DieselCostPerKWh - in.SolarOpexPerKWh) * solar

	state := domain.StatePumpOff
	if in.WaterLevel >= pumpOnWaterLevel {
		state = domain.StatePumpOn
	}

	out := domain.SimulationOutput{
		Variant:          m.Variant(),
		PVPowerKW:        solar,
		PumpPowerKW:      pump,
		DieselEquivalent: solar,
		CO2ReductionKgh:  solar * co2KgPerSolarKWh,
		CostSavingPerH:   &saving,
		State:            state,
	}
	out.Profile.Solar = solarProfile(solar)
	out.Profile.Pump = noisyProfile(pump, m.NoiseStdDev, noise)
	if err := checkFinite(out); err != nil {
		return domain.SimulationOutput{}, err
	}
	return out, nil
}
