package service

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

// Summarize condenses a diurnal profile. Samples are one hour apart, so the
// sum of the kW series is the day's energy in kWh.
func Summarize(p domain.DiurnalProfile) domain.ProfileSummary {
	pump := p.Pump[:]
	solar := p.Solar[:]

	peak := floats.MaxIdx(pump)
	daylight := 0
	for _, s := range solar {
		if s > 0 {
			daylight++
		}
	}
	return domain.ProfileSummary{
		PeakHour:       peak,
		PeakPumpKW:     pump[peak],
		MeanPumpKW:     stat.Mean(pump, nil),
		DailyPumpKWh:   floats.Sum(pump),
		DaylightHours:  daylight,
		DailySolarPeak: floats.Max(solar),
	}
}
