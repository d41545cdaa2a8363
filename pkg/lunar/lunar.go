// Package lunar derives the Moon's phase in a chart from the Sun and Moon
// longitudes the chart already holds.
package lunar

import (
	"math"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
)

// SynodicMonth is the average length of the lunar cycle in days
const SynodicMonth = 29.530588853

// Phase describes the Moon's phase at a moment
type Phase struct {
	Elongation   float64 `json:"elongation" msgpack:"elongation"`     // Sun→Moon angle in degrees [0,360)
	Illumination float64 `json:"illumination" msgpack:"illumination"` // Illuminated fraction [0,1]
	AgeDays      float64 `json:"age_days" msgpack:"age_days"`         // Mean days since new moon
	Waxing       bool    `json:"waxing" msgpack:"waxing"`
	Name         string  `json:"name" msgpack:"name"`
}

// PhaseOf computes the phase from the ecliptic longitudes of the Sun and
// Moon. Illumination ignores the Moon's latitude.
func PhaseOf(sunLongitude, moonLongitude float64) Phase {
	elongation := zodiac.Normalize(moonLongitude - sunLongitude)
	illumination := (1 - math.Cos(elongation*math.Pi/180)) / 2
	waxing := elongation < 180

	return Phase{
		Elongation:   elongation,
		Illumination: illumination,
		AgeDays:      elongation / 360 * SynodicMonth,
		Waxing:       waxing,
		Name:         phaseName(illumination, waxing),
	}
}

// phaseName returns the 8-phase name based on illumination and direction
func phaseName(illumination float64, waxing bool) string {
	switch {
	case illumination < 0.01:
		return "New Moon"
	case illumination > 0.99:
		return "Full Moon"
	case illumination >= 0.49 && illumination <= 0.51:
		if waxing {
			return "First Quarter"
		}
		return "Third Quarter"
	case illumination < 0.50:
		if waxing {
			return "Waxing Crescent"
		}
		return "Waning Crescent"
	default:
		if waxing {
			return "Waxing Gibbous"
		}
		return "Waning Gibbous"
	}
}
