package domain

import (
	"fmt"
	"time"
)

// Variant selects which energy-balance model a run uses.
type Variant string

const (
	// VariantIrradiance drives pump power from PV output (irradiance * area * efficiency).
	VariantIrradiance Variant = "irradiance"
	// VariantHydraulic drives pump power from hydraulic demand (flow * head * g).
	VariantHydraulic Variant = "hydraulic"
)

func Variants() []Variant { return []Variant{VariantIrradiance, VariantHydraulic} }

func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case VariantIrradiance, VariantHydraulic:
		return Variant(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

type OperatingState string

const (
	StateSolarActive      OperatingState = "SOLAR_ACTIVE"
	StateLowSolarFallback OperatingState = "LOW_SOLAR_FALLBACK"
	StatePumpOn           OperatingState = "PUMP_ON"
	StatePumpOff          OperatingState = "PUMP_OFF"
)

// Fallback reports whether the installation is not running on solar as intended.
func (s OperatingState) Fallback() bool {
	return s == StateLowSolarFallback || s == StatePumpOff
}

// Banner is the operator-facing status line for s.
func (s OperatingState) Banner() string {
	switch s {
	case StateSolarActive:
		return "Pump operating on solar power"
	case StateLowSolarFallback:
		return "Low solar power, switching to grid/diesel backup"
	case StatePumpOn:
		return "Water level sufficient, pump running"
	case StatePumpOff:
		return "Water level low, pump stopped"
	}
	return "Unknown operating state"
}

// SimulationInput carries one set of operator parameters.
// Irradiance is W/m² and both efficiencies are percent for every variant.
type SimulationInput struct {
	SolarIrradiance  float64 `json:"solar_irradiance" validate:"finite,gte=0"`
	DutyCycle        float64 `json:"duty_cycle" validate:"finite,gte=0,lte=100"`
	WaterInflow      float64 `json:"water_inflow" validate:"finite,gte=0"`
	FlowRate         float64 `json:"flow_rate" validate:"finite,gte=0"`
	Head             float64 `json:"head" validate:"finite,gte=0"`
	PumpEfficiency   float64 `json:"pump_efficiency" validate:"finite,gt=0,lte=100"`
	PanelArea        float64 `json:"panel_area" validate:"finite,gt=0"`
	PanelEfficiency  float64 `json:"panel_efficiency" validate:"finite,gt=0,lte=100"`
	WaterLevel       float64 `json:"water_level" validate:"finite,gte=0,lte=100"`
	DieselCostPerKWh float64 `json:"diesel_cost_per_kwh" validate:"finite,gte=0"`
	SolarOpexPerKWh  float64 `json:"solar_opex_per_kwh" validate:"finite,gte=0"`
}

// HoursPerDay is the length of every diurnal profile.
const HoursPerDay = 24

// DiurnalProfile holds two aligned hourly series, index = hour of day.
type DiurnalProfile struct {
	Solar [HoursPerDay]float64 `json:"solar"`
	Pump  [HoursPerDay]float64 `json:"pump"`
}

// SimulationOutput is recomputed on every run. Fields that only one variant
// produces are nil for the other.
type SimulationOutput struct {
	Variant          Variant        `json:"variant"`
	PVPowerKW        float64        `json:"pv_power_kw"`
	PumpPowerKW      float64        `json:"pump_power_kw"`
	WaterPumpedM3h   *float64       `json:"water_pumped_m3h,omitempty"`
	DieselEquivalent float64        `json:"diesel_equivalent"`
	CO2ReductionKgh  float64        `json:"co2_reduction_kgh"`
	CostSavingPerH   *float64       `json:"cost_saving_per_hour,omitempty"`
	State            OperatingState `json:"operating_state"`
	Profile          DiurnalProfile `json:"diurnal_profile"`
}

type ProfileSummary struct {
	PeakHour       int     `json:"peak_hour"`
	PeakPumpKW     float64 `json:"peak_pump_kw"`
	MeanPumpKW     float64 `json:"mean_pump_kw"`
	DailyPumpKWh   float64 `json:"daily_pump_kwh"`
	DaylightHours  int     `json:"daylight_hours"`
	DailySolarPeak float64 `json:"daily_solar_peak"`
}

// Run is what the service hands to presentation collaborators.
type Run struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Input     SimulationInput  `json:"input"`
	Output    SimulationOutput `json:"output"`
	Summary   ProfileSummary   `json:"summary"`
}
