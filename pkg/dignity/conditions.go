package dignity

import (
	"math"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
)

const (
	// CombustOrb is the distance from the Sun, in degrees, inside which a
	// planet in the Sun's sign is combust
	CombustOrb = 8.5

	// CazimiOrb is 17.5 arcminutes
	CazimiOrb = 0.2916667
)

// IsDayChart reports whether the Sun lies in the half-open arc running from
// the Ascendant to the Descendant, i.e. above the horizon
func IsDayChart(sunLongitude, ascendantLongitude float64) bool {
	sunLongitude = zodiac.Normalize(sunLongitude)
	ascendantLongitude = zodiac.Normalize(ascendantLongitude)
	descendant := zodiac.Normalize(ascendantLongitude + 180)

	if ascendantLongitude < descendant {
		return ascendantLongitude <= sunLongitude && sunLongitude < descendant
	}
	return sunLongitude < descendant || sunLongitude >= ascendantLongitude
}

// PolarityOf returns the chart sect for the given Sun and Ascendant
func PolarityOf(sunLongitude, ascendantLongitude float64) Polarity {
	return Polarity(IsDayChart(sunLongitude, ascendantLongitude))
}

// IsCombust reports whether a planet shares the Sun's sign and lies within
// CombustOrb of it, measured along the shorter arc
func IsCombust(planetLongitude float64, planetSign zodiac.Sign, sunLongitude float64, sunSign zodiac.Sign) bool {
	if planetSign != sunSign {
		return false
	}
	d := math.Abs(zodiac.Normalize(planetLongitude) - zodiac.Normalize(sunLongitude))
	if d > 180 {
		d = 360 - d
	}
	return d < CombustOrb
}

// IsCazimi reports whether a planet shares the Sun's sign and lies within
// CazimiOrb of it. Unlike IsCombust the distance is the plain difference of
// the two longitudes with no wraparound correction.
func IsCazimi(planetLongitude float64, planetSign zodiac.Sign, sunLongitude float64, sunSign zodiac.Sign) bool {
	if planetSign != sunSign {
		return false
	}
	return math.Abs(planetLongitude-sunLongitude) <= CazimiOrb
}
