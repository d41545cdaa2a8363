// Package zodiac locates ecliptic longitudes within the twelve tropical signs
// and defines the bodies a chart is built from. Everything here is pure and
// safe for concurrent use.
package zodiac

import (
	"math"
	"strconv"
	"strings"
)

// SignWidth is the width of every zodiac sign in degrees
const SignWidth = 30.0

// Sign is one of the twelve tropical zodiac signs, in zodiacal order
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// NumSigns is the number of signs in the zodiac
const NumSigns = 12

var signNames = [NumSigns]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// Signs returns all twelve signs in zodiacal order
func Signs() []Sign {
	out := make([]Sign, NumSigns)
	for i := range out {
		out[i] = Sign(i)
	}
	return out
}

// Valid reports whether s is one of the twelve signs
func (s Sign) Valid() bool {
	return s >= Aries && s <= Pisces
}

func (s Sign) String() string {
	if !s.Valid() {
		return "Sign(" + strconv.Itoa(int(s)) + ")"
	}
	return signNames[s]
}

// Start returns the ecliptic longitude at which the sign begins
func (s Sign) Start() float64 {
	return float64(s) * SignWidth
}

// Opposite returns the sign 180° away
func (s Sign) Opposite() Sign {
	return Sign((int(s) + 6) % NumSigns)
}

// ParseSign resolves a sign by name, ignoring case and surrounding space
func ParseSign(name string) (Sign, error) {
	n := strings.TrimSpace(name)
	for i, sn := range signNames {
		if strings.EqualFold(n, sn) {
			return Sign(i), nil
		}
	}
	return 0, NewDomainError("sign", name, "not a zodiac sign")
}

// MarshalText encodes the sign by name so reports carry "Leo", not 4
func (s Sign) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, NewDomainError("sign", int(s), "out of range")
	}
	return []byte(s.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (s *Sign) UnmarshalText(b []byte) error {
	parsed, err := ParseSign(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Normalize wraps a longitude to [0, 360). Negative inputs and inputs of
// 360 or more map to the same point on the circle.
func Normalize(longitude float64) float64 {
	l := math.Mod(longitude, 360)
	if l < 0 {
		l += 360
	}
	// -1e-18 + 360 rounds to 360
	if l >= 360 {
		l = 0
	}
	return l
}

// SignOf returns the sign containing the given ecliptic longitude
func SignOf(longitude float64) (Sign, error) {
	l := Normalize(longitude)
	if math.IsNaN(l) || l < 0 || l >= 360 {
		return 0, NewDomainError("ecliptic longitude", longitude, "cannot be normalized to [0, 360)")
	}
	s := Sign(int(l / SignWidth))
	// guard against float rounding right under a boundary
	if s > Pisces {
		s = Pisces
	}
	return s, nil
}

// DegreeWithinSign returns the offset of the longitude from the start of its
// sign, in [0, 30)
func DegreeWithinSign(longitude float64) (float64, error) {
	s, err := SignOf(longitude)
	if err != nil {
		return 0, err
	}
	return Normalize(longitude) - s.Start(), nil
}

// Locate returns both the sign and the degree within it
func Locate(longitude float64) (Sign, float64, error) {
	s, err := SignOf(longitude)
	if err != nil {
		return 0, 0, err
	}
	return s, Normalize(longitude) - s.Start(), nil
}
