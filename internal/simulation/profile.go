package simulation

import (
	"math"

	"github.com/ANIKETSHETTY47/solar-pumping-simulator/internal/domain"
)

const (
	sunriseHour = 6
	sunsetHour  = 18
)

// DaylightFactor is a half-sine bell over daylight hours: 0 up to sunrise and
// from sunset on, 1 at noon.
func DaylightFactor(hour int) float64 {
	if hour <= sunriseHour || hour >= sunsetHour {
		return 0
	}
	return math.Max(0, math.Sin(float64(hour-sunriseHour)/12*math.Pi))
}

// solarProfile scales the daylight bell by reference.
func solarProfile(reference float64) [domain.HoursPerDay]float64 {
	var out [domain.HoursPerDay]float64
	for h := range out {
		out[h] = DaylightFactor(h) * reference
	}
	return out
}

// noisyProfile draws one independent sample per hour around mean.
// A nil source yields a flat series.
func noisyProfile(mean, stddev float64, noise Noise) [domain.HoursPerDay]float64 {
	var out [domain.HoursPerDay]float64
	for h := range out {
		out[h] = mean
		if noise != nil {
			out[h] += stddev * noise.NormFloat64()
		}
	}
	return out
}
