package ephemeris

import (
	"math"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
	"gonum.org/v1/gonum/spatial/r3"
)

// generalPrecession is the precession in ecliptic longitude, degrees per
// Julian century
const generalPrecession = 1.3969713

// orbitalElements are mean elements at J2000 and their rates per Julian
// century, referred to the mean ecliptic and equinox of J2000 (Standish,
// "Keplerian Elements for Approximate Positions of the Major Planets").
type orbitalElements struct {
	a, aDot       float64 // semi-major axis, AU
	e, eDot       float64 // eccentricity
	i, iDot       float64 // inclination, degrees
	l, lDot       float64 // mean longitude, degrees
	peri, periDot float64 // longitude of perihelion, degrees
	node, nodeDot float64 // longitude of ascending node, degrees
}

var earthMoonBarycenter = orbitalElements{
	1.00000261, 0.00000562,
	0.01671123, -0.00004392,
	-0.00001531, -0.01294668,
	100.46457166, 35999.37244981,
	102.93768193, 0.32327364,
	0.0, 0.0,
}

var keplerElements = map[zodiac.Planet]orbitalElements{
	zodiac.Mercury: {
		0.38709927, 0.00000037,
		0.20563593, 0.00001906,
		7.00497902, -0.00594749,
		252.25032350, 149472.67411175,
		77.45779628, 0.16047689,
		48.33076593, -0.12534081,
	},
	zodiac.Venus: {
		0.72333566, 0.00000390,
		0.00677672, -0.00004107,
		3.39467605, -0.00078890,
		181.97909950, 58517.81538729,
		131.60246718, 0.00268329,
		76.67984255, -0.27769418,
	},
	zodiac.Mars: {
		1.52371034, 0.00001847,
		0.09339410, 0.00007882,
		1.84969142, -0.00813131,
		-4.55343205, 19140.30268499,
		-23.94362959, 0.44441088,
		49.55953891, -0.29257343,
	},
	zodiac.Jupiter: {
		5.20288700, -0.00011607,
		0.04838624, -0.00013253,
		1.30439695, -0.00183714,
		34.39644051, 3034.74612775,
		14.72847983, 0.21252668,
		100.47390909, 0.20469106,
	},
	zodiac.Saturn: {
		9.53667594, -0.00125060,
		0.05386179, -0.00050991,
		2.48599187, 0.00193609,
		49.95424423, 1222.49362201,
		92.59887831, -0.41897216,
		113.66242448, -0.28867794,
	},
}

// heliocentric returns the J2000 ecliptic rectangular position in AU
func (el orbitalElements) heliocentric(T float64) r3.Vec {
	a := el.a + el.aDot*T
	e := el.e + el.eDot*T
	i := degToRad(el.i + el.iDot*T)
	l := el.l + el.lDot*T
	peri := el.peri + el.periDot*T
	node := el.node + el.nodeDot*T

	M := degToRad(zodiac.Normalize(l - peri))
	ω := degToRad(peri - node)
	Ω := degToRad(node)

	E := solveKepler(M, e)
	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	sω, cω := math.Sincos(ω)
	sΩ, cΩ := math.Sincos(Ω)
	si, ci := math.Sincos(i)

	return r3.Vec{
		X: (cω*cΩ-sω*sΩ*ci)*xp + (-sω*cΩ-cω*sΩ*ci)*yp,
		Y: (cω*sΩ+sω*cΩ*ci)*xp + (-sω*sΩ+cω*cΩ*ci)*yp,
		Z: (sω*si)*xp + (cω*si)*yp,
	}
}

// solveKepler solves M = E - e sin E for the eccentric anomaly, radians
func solveKepler(M, e float64) float64 {
	E := M + e*math.Sin(M)
	for n := 0; n < 30; n++ {
		ΔE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= ΔE
		if math.Abs(ΔE) < 1e-12 {
			break
		}
	}
	return E
}

// keplerLongitude returns the geometric geocentric longitude of body
// referred to the J2000 equinox, degrees
func keplerLongitude(body zodiac.Planet, T float64) float64 {
	geo := r3.Sub(keplerElements[body].heliocentric(T), earthMoonBarycenter.heliocentric(T))
	return zodiac.Normalize(radToDeg(math.Atan2(geo.Y, geo.X)))
}
