package dignity

import (
	"slices"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
)

// Polarity is the sect of a chart: Day when the Sun is above the horizon
type Polarity bool

const (
	Night Polarity = false
	Day   Polarity = true
)

func (p Polarity) String() string {
	if p == Day {
		return "Day"
	}
	return "Night"
}

func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Polarity) UnmarshalText(b []byte) error {
	switch string(b) {
	case "Day", "day":
		*p = Day
	case "Night", "night":
		*p = Night
	default:
		return zodiac.NewDomainError("polarity", string(b), "expected Day or Night")
	}
	return nil
}

// Profile is the essential dignity record of one planet in one position.
// It is derived on demand and never stored.
type Profile struct {
	Planet        zodiac.Planet `json:"planet" msgpack:"planet"`
	Sign          zodiac.Sign   `json:"sign" msgpack:"sign"`
	SignDegree    float64       `json:"sign_degree" msgpack:"sign_degree"`
	Polarity      Polarity      `json:"polarity" msgpack:"polarity"`
	Domicile      bool          `json:"domicile" msgpack:"domicile"`
	Exaltation    bool          `json:"exaltation" msgpack:"exaltation"`
	SuperExalted  bool          `json:"super_exalted" msgpack:"super_exalted"`
	Triplicity    bool          `json:"triplicity" msgpack:"triplicity"`
	BoundRuler    zodiac.Planet `json:"bound_ruler" msgpack:"bound_ruler"`
	DecanRuler    zodiac.Planet `json:"decan_ruler" msgpack:"decan_ruler"`
	Detriment     bool          `json:"detriment" msgpack:"detriment"`
	Fall          bool          `json:"fall" msgpack:"fall"`
	PeregrineFlag bool          `json:"peregrine" msgpack:"peregrine"`
}

// InOwnBound reports whether the planet rules the bound it occupies
func (p Profile) InOwnBound() bool { return p.BoundRuler == p.Planet }

// InOwnDecan reports whether the planet rules the decan it occupies
func (p Profile) InOwnDecan() bool { return p.DecanRuler == p.Planet }

// Peregrine reports whether none of the dignities or debilities apply.
// A planet in detriment or fall is therefore not peregrine.
func (p Profile) Peregrine() bool {
	return !(p.Domicile || p.Exaltation || p.SuperExalted || p.Triplicity ||
		p.InOwnBound() || p.InOwnDecan() || p.Detriment || p.Fall)
}

// Evaluate computes the full dignity profile of planet at degree within sign
// for a chart of the given polarity
func Evaluate(planet zodiac.Planet, sign zodiac.Sign, degree float64, polarity Polarity) (Profile, error) {
	if err := checkPlanet(planet); err != nil {
		return Profile{}, err
	}
	if err := checkSign(sign); err != nil {
		return Profile{}, err
	}

	boundRuler, err := BoundRuler(sign, degree)
	if err != nil {
		return Profile{}, err
	}
	decanRuler, err := DecanRuler(sign, degree)
	if err != nil {
		return Profile{}, err
	}

	p := Profile{
		Planet:       planet,
		Sign:         sign,
		SignDegree:   degree,
		Polarity:     polarity,
		Domicile:     slices.Contains(domiciles[planet], sign),
		Exaltation:   exaltations[planet].sign == sign,
		SuperExalted: isSuperExalted(planet, sign, degree),
		Triplicity:   triplicityRuler(sign, polarity) == planet,
		BoundRuler:   boundRuler,
		DecanRuler:   decanRuler,
		Detriment:    slices.Contains(detriments[planet], sign),
		Fall:         falls[planet] == sign,
	}
	p.PeregrineFlag = p.Peregrine()
	return p, nil
}

// EvaluateLongitude locates the longitude and evaluates the planet there
func EvaluateLongitude(planet zodiac.Planet, longitude float64, polarity Polarity) (Profile, error) {
	sign, degree, err := zodiac.Locate(longitude)
	if err != nil {
		return Profile{}, err
	}
	return Evaluate(planet, sign, degree, polarity)
}

// InDomicile reports whether planet rules sign
func InDomicile(planet zodiac.Planet, sign zodiac.Sign) (bool, error) {
	if err := checkPlanetSign(planet, sign); err != nil {
		return false, err
	}
	return slices.Contains(domiciles[planet], sign), nil
}

// InExaltation reports whether sign is planet's exaltation
func InExaltation(planet zodiac.Planet, sign zodiac.Sign) (bool, error) {
	if err := checkPlanetSign(planet, sign); err != nil {
		return false, err
	}
	return exaltations[planet].sign == sign, nil
}

// IsSuperExalted reports whether planet sits in the exact degree of its
// exaltation. Only the whole-degree part counts: 18.99° Aries is not the
// Sun's 19th degree.
func IsSuperExalted(planet zodiac.Planet, sign zodiac.Sign, degree float64) (bool, error) {
	if err := checkPlanetSign(planet, sign); err != nil {
		return false, err
	}
	if err := checkDegree(degree); err != nil {
		return false, err
	}
	return isSuperExalted(planet, sign, degree), nil
}

// InTriplicity reports whether planet is the triplicity ruler of sign for
// the chart's sect
func InTriplicity(planet zodiac.Planet, sign zodiac.Sign, polarity Polarity) (bool, error) {
	if err := checkPlanetSign(planet, sign); err != nil {
		return false, err
	}
	return triplicityRuler(sign, polarity) == planet, nil
}

// InDetriment reports whether sign is opposite one of planet's domiciles
func InDetriment(planet zodiac.Planet, sign zodiac.Sign) (bool, error) {
	if err := checkPlanetSign(planet, sign); err != nil {
		return false, err
	}
	return slices.Contains(detriments[planet], sign), nil
}

// InFall reports whether sign is opposite planet's exaltation
func InFall(planet zodiac.Planet, sign zodiac.Sign) (bool, error) {
	if err := checkPlanetSign(planet, sign); err != nil {
		return false, err
	}
	return falls[planet] == sign, nil
}

func isSuperExalted(planet zodiac.Planet, sign zodiac.Sign, degree float64) bool {
	e := exaltations[planet]
	return e.sign == sign && int(degree) == e.degree
}

func triplicityRuler(sign zodiac.Sign, polarity Polarity) zodiac.Planet {
	if polarity == Day {
		return triplicities[sign].day
	}
	return triplicities[sign].night
}

func checkPlanetSign(planet zodiac.Planet, sign zodiac.Sign) error {
	if err := checkPlanet(planet); err != nil {
		return err
	}
	return checkSign(sign)
}
