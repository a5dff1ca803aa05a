// Package report renders a simulation run as plain text for terminals and logs.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

// Metric is one formatted headline figure.
type Metric struct {
	Label string
	Value string
}

// Metrics lists the headline figures of out, formatted to two decimals.
func Metrics(out domain.SimulationOutput) []Metric {
	pvLabel := "PV Power Generated"
	if out.Variant == domain.VariantHydraulic {
		pvLabel = "Solar Power Available"
	}
	m := []Metric{
		{pvLabel, fmt.Sprintf("%.2f kW", out.PVPowerKW)},
		{"Pump Power Utilized", fmt.Sprintf("%.2f kW", out.PumpPowerKW)},
	}
	if out.WaterPumpedM3h != nil {
		m = append(m, Metric{"Water Pumped", fmt.Sprintf("%.2f m³/hr", *out.WaterPumpedM3h)})
	}
	switch out.Variant {
	case domain.VariantHydraulic:
		m = append(m, Metric{"Diesel Equivalent", fmt.Sprintf("%.2f kW", out.DieselEquivalent)})
	default:
		m = append(m, Metric{"Diesel Saved", fmt.Sprintf("%.2f L/hr", out.DieselEquivalent)})
	}
	m = append(m, Metric{"CO₂ Emission Reduction", fmt.Sprintf("%.2f kg/hr", out.CO2ReductionKgh)})
	if out.CostSavingPerH != nil {
		m = append(m, Metric{"Cost Saving", fmt.Sprintf("%.2f /hr", *out.CostSavingPerH)})
	}
	return m
}

// Render writes metrics, the status banner and the hourly profile table.
func Render(w io.Writer, run *domain.Run) error {
	out := run.Output
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Simulation %s (%s model)\n\n", run.ID, out.Variant)
	for _, m := range Metrics(out) {
		fmt.Fprintf(tw, "%s\t%s\n", m.Label, m.Value)
	}

	marker := "OK"
	if out.State.Fallback() {
		marker = "WARN"
	}
	fmt.Fprintf(tw, "\nStatus\t[%s] %s\n\n", marker, out.State.Banner())

	solarUnit := "kW/m²"
	if out.Variant == domain.VariantHydraulic {
		solarUnit = "kW"
	}
	fmt.Fprintf(tw, "Hour\tSolar (%s)\tPump (kW)\t\n", solarUnit)
	for h := 0; h < domain.HoursPerDay; h++ {
		fmt.Fprintf(tw, "%02d\t%.3f\t%.3f\t%s\n", h, out.Profile.Solar[h], out.Profile.Pump[h], bar(out.Profile.Solar[h], run.Summary.DailySolarPeak))
	}

	s := run.Summary
	fmt.Fprintf(tw, "\nPeak pump hour\t%02d:00 (%.2f kW)\n", s.PeakHour, s.PeakPumpKW)
	fmt.Fprintf(tw, "Daily pump energy\t%.2f kWh\n", s.DailyPumpKWh)
	fmt.Fprintf(tw, "Sun hours\t%d\n", s.DaylightHours)
	return tw.Flush()
}

const barWidth = 20

func bar(v, peak float64) string {
	if peak <= 0 || v <= 0 {
		return ""
	}
	n := int(v / peak * barWidth)
	return strings.Repeat("#", n)
}
