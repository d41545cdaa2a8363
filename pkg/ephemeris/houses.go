package ephemeris

import (
	"math"
	"strings"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// HouseSystem is the one-letter code conventionally used for a house system
type HouseSystem byte

const (
	Placidus      HouseSystem = 'P'
	WholeSign     HouseSystem = 'W'
	Regiomontanus HouseSystem = 'R'
	Koch          HouseSystem = 'K'
	Porphyry      HouseSystem = 'O'
	EqualMC       HouseSystem = 'E'
	AxialRotation HouseSystem = 'X'
	Horizontal    HouseSystem = 'H'
)

var houseSystemNames = []struct {
	name   string
	system HouseSystem
}{
	{"Placidus", Placidus},
	{"Whole Sign", WholeSign},
	{"Regiomontanus", Regiomontanus},
	{"Koch", Koch},
	{"Porphyry", Porphyry},
	{"Equal (MC)", EqualMC},
	{"Axial Rotation", AxialRotation},
	{"Horizontal System", Horizontal},
}

// HouseSystems returns the recognized systems in menu order
func HouseSystems() []HouseSystem {
	out := make([]HouseSystem, len(houseSystemNames))
	for i, hs := range houseSystemNames {
		out[i] = hs.system
	}
	return out
}

func (h HouseSystem) String() string {
	for _, hs := range houseSystemNames {
		if hs.system == h {
			return hs.name
		}
	}
	return string(rune(h))
}

// Code returns the one-letter code as a string
func (h HouseSystem) Code() string { return string(rune(h)) }

// Supported reports whether Houses can compute cusps for h
func (h HouseSystem) Supported() bool {
	switch h {
	case Placidus, WholeSign, Regiomontanus, Porphyry, EqualMC:
		return true
	}
	return false
}

func (h HouseSystem) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HouseSystem) UnmarshalText(b []byte) error {
	hs, err := ParseHouseSystem(string(b))
	if err != nil {
		return err
	}
	*h = hs
	return nil
}

// HouseSystemCode maps a house system's display name to its code. Unknown
// names fall back to Placidus.
func HouseSystemCode(name string) HouseSystem {
	hs, err := ParseHouseSystem(name)
	if err != nil {
		return Placidus
	}
	return hs
}

// ParseHouseSystem accepts a display name or a one-letter code, ignoring case
func ParseHouseSystem(s string) (HouseSystem, error) {
	s = strings.TrimSpace(s)
	for _, hs := range houseSystemNames {
		if strings.EqualFold(s, hs.name) || strings.EqualFold(s, hs.system.Code()) {
			return hs.system, nil
		}
	}
	return 0, zodiac.NewDomainError("house system", s, "unknown house system")
}

// Houses holds the angles and the twelve cusps of a chart. Cusps[0] is the
// first house cusp.
type Houses struct {
	System     HouseSystem `json:"system" msgpack:"system"`
	Ascendant  float64     `json:"ascendant" msgpack:"ascendant"`
	Midheaven  float64     `json:"midheaven" msgpack:"midheaven"`
	Descendant float64     `json:"descendant" msgpack:"descendant"`
	ImumCoeli  float64     `json:"imum_coeli" msgpack:"imum_coeli"`
	Cusps      [12]float64 `json:"cusps" msgpack:"cusps"`
}

// HouseOf returns the house, 1 through 12, containing longitude
func (h Houses) HouseOf(longitude float64) int {
	l := zodiac.Normalize(longitude)
	for i := 0; i < 12; i++ {
		start := h.Cusps[i]
		width := zodiac.Normalize(h.Cusps[(i+1)%12] - start)
		if zodiac.Normalize(l-start) < width {
			return i + 1
		}
	}
	return 1
}

// Houses computes the angles and cusps for jd at the given geographic
// latitude and longitude (degrees, east positive)
func (e *Ephemeris) Houses(jd, latitude, longitude float64, system HouseSystem) (Houses, error) {
	if math.IsNaN(latitude) || math.Abs(latitude) > 90 {
		return Houses{}, zodiac.NewDomainError("latitude", latitude, "must be within ±90°")
	}
	if math.IsNaN(longitude) || math.Abs(longitude) > 180 {
		return Houses{}, zodiac.NewDomainError("longitude", longitude, "must be within ±180°")
	}
	if !system.Supported() {
		return Houses{}, zodiac.NewDomainError("house system", system.String(), "unsupported")
	}

	_, Δε := nutation.Nutation(jd)
	ε := nutation.MeanObliquity(jd).Rad() + Δε.Rad()
	ramc := zodiac.Normalize(sidereal.Apparent(jd).Angle().Deg() + longitude)

	return computeHouses(ramc, latitude, ε, system)
}

func computeHouses(ramc, latitude, ε float64, system HouseSystem) (Houses, error) {
	φ := degToRad(latitude)
	tanφ := math.Tan(φ)

	h := Houses{
		System:    system,
		Ascendant: cusp(ramc+90, tanφ, ε),
		Midheaven: cusp(ramc, 0, ε),
	}
	h.Descendant = zodiac.Normalize(h.Ascendant + 180)
	h.ImumCoeli = zodiac.Normalize(h.Midheaven + 180)

	// quadrant systems fill 11, 12, 2 and 3 and mirror them
	var q [4]float64
	switch system {
	case WholeSign:
		start := math.Floor(h.Ascendant/zodiac.SignWidth) * zodiac.SignWidth
		for i := range h.Cusps {
			h.Cusps[i] = zodiac.Normalize(start + float64(i)*zodiac.SignWidth)
		}
		return h, nil
	case EqualMC:
		for i := range h.Cusps {
			h.Cusps[i] = zodiac.Normalize(h.Ascendant + float64(i)*zodiac.SignWidth)
		}
		return h, nil
	case Porphyry:
		upper := zodiac.Normalize(h.Ascendant - h.Midheaven)
		lower := zodiac.Normalize(h.ImumCoeli - h.Ascendant)
		q = [4]float64{
			h.Midheaven + upper/3,
			h.Midheaven + 2*upper/3,
			h.Ascendant + lower/3,
			h.Ascendant + 2*lower/3,
		}
	case Regiomontanus:
		for i, o := range []float64{30, 60, 120, 150} {
			q[i] = cusp(ramc+o, tanφ*math.Sin(degToRad(o)), ε)
		}
	case Placidus:
		var err error
		if q, err = placidus(ramc, tanφ, ε); err != nil {
			return Houses{}, err
		}
	}

	h.Cusps[0] = h.Ascendant
	h.Cusps[3] = h.ImumCoeli
	h.Cusps[6] = h.Descendant
	h.Cusps[9] = h.Midheaven
	for i, house := range []int{11, 12, 2, 3} {
		l := zodiac.Normalize(q[i])
		h.Cusps[house-1] = l
		h.Cusps[(house+5)%12] = zodiac.Normalize(l + 180)
	}
	return h, nil
}

// cusp intersects the ecliptic with the great circle through the north and
// south points of the horizon at right ascension ra, whose pole height has
// tangent tanP. With tanP = tan φ and ra = RAMC+90 this is the Ascendant.
func cusp(ra, tanP, ε float64) float64 {
	sr, cr := math.Sincos(degToRad(ra))
	se, ce := math.Sincos(ε)
	return zodiac.Normalize(radToDeg(math.Atan2(sr, cr*ce-tanP*se)))
}

// placidus trisects the semi-arcs of each cusp's own declination, iterating
// until the right ascension settles
func placidus(ramc, tanφ, ε float64) ([4]float64, error) {
	var q [4]float64
	fractions := []struct {
		above bool
		f     float64
	}{
		{true, 1.0 / 3}, {true, 2.0 / 3}, {false, 2.0 / 3}, {false, 1.0 / 3},
	}

	for i, fr := range fractions {
		ra := ramc + 30*float64(i+1)
		if !fr.above {
			ra = ramc + 30*float64(i+2)
		}
		for n := 0; n < 50; n++ {
			sr, cr := math.Sincos(degToRad(ra))
			λ := math.Atan2(sr, cr*math.Cos(ε))
			δ := math.Asin(math.Sin(ε) * math.Sin(λ))
			x := tanφ * math.Tan(δ)
			if math.Abs(x) > 1 {
				return q, zodiac.NewDomainError("latitude", radToDeg(math.Atan(tanφ)),
					"Placidus cusps are undefined where ecliptic degrees are circumpolar")
			}
			ad := radToDeg(math.Asin(x))

			var next float64
			if fr.above {
				next = ramc + fr.f*(90+ad)
			} else {
				next = ramc + 180 - fr.f*(90-ad)
			}
			if math.Abs(next-ra) < 1e-9 {
				ra = next
				break
			}
			ra = next
		}
		sr, cr := math.Sincos(degToRad(ra))
		q[i] = radToDeg(math.Atan2(sr, cr*math.Cos(ε)))
	}
	return q, nil
}
