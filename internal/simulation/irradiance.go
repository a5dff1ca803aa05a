package simulation

import "github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"

const (
	// litres of diesel displaced per kWh of pump work
	dieselLitresPerKWh = 0.27
	// kg of CO2 per litre of diesel burned
	co2KgPerDieselLitre = 2.68
	// L/s to m³/hr
	litresPerSecondToM3h = 3.6
	// below this PV output the pump falls back to grid/diesel
	solarActiveThresholdKW = 0.2
)

// IrradianceModel derives pump power from the PV array output.
type IrradianceModel struct{}

func (IrradianceModel) Variant() domain.Variant { return domain.VariantIrradiance }

func (m IrradianceModel) Compute(in domain.SimulationInput, _ Noise) (domain.SimulationOutput, error) {
	if in.PanelEfficiency == 0 || in.PumpEfficiency == 0 {
		return domain.SimulationOutput{}, domain.ErrDivisionByZero
	}
	irradianceKW := in.SolarIrradiance / 1000
	panelEff := in.PanelEfficiency / 100
	pumpEff := in.PumpEfficiency / 100
	duty := in.DutyCycle / 100

	pv := irradianceKW * in.PanelArea * panelEff
	pump := pv * duty * pumpEff
	water := in.WaterInflow * duty * litresPerSecondToM3h
	diesel := pump * dieselLitresPerKWh

	state := domain.StateLowSolarFallback
	if pv > solarActiveThresholdKW {
		state = domain.StateSolarActive
	}

	out := domain.SimulationOutput{
		Variant:          m.Variant(),
		PVPowerKW:        pv,
		PumpPowerKW:      pump,
		WaterPumpedM3h:   &water,
		DieselEquivalent: diesel,
		CO2ReductionKgh:  diesel * co2KgPerDieselLitre,
		State:            state,
	}
	out.Profile.Solar = solarProfile(irradianceKW)
	for h, s := range out.Profile.Solar {
		out.Profile.Pump[h] = s * in.PanelArea * panelEff * duty * pumpEff
	}
	if err := checkFinite(out); err != nil {
		return domain.SimulationOutput{}, err
	}
	return out, nil
}
