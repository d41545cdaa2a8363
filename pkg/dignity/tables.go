// Package dignity classifies a planet's zodiacal placement by the
// traditional essential dignities (domicile, exaltation, triplicity, bound,
// decan) and debilities (detriment, fall), and the Sun-relative conditions
// combust and cazimi. All tables are immutable package-level values and
// every function is pure, so evaluations may run concurrently.
package dignity

import "github.com/chrissnell/ptolemy/pkg/zodiac"

// domiciles lists the sign(s) each classical planet rules
var domiciles = [...][]zodiac.Sign{
	zodiac.Sun:     {zodiac.Leo},
	zodiac.Moon:    {zodiac.Cancer},
	zodiac.Mercury: {zodiac.Gemini, zodiac.Virgo},
	zodiac.Venus:   {zodiac.Taurus, zodiac.Libra},
	zodiac.Mars:    {zodiac.Aries, zodiac.Scorpio},
	zodiac.Jupiter: {zodiac.Sagittarius, zodiac.Pisces},
	zodiac.Saturn:  {zodiac.Capricorn, zodiac.Aquarius},
}

// detriments are the signs opposite each planet's domicile(s), in the same order
var detriments = [...][]zodiac.Sign{
	zodiac.Sun:     {zodiac.Aquarius},
	zodiac.Moon:    {zodiac.Capricorn},
	zodiac.Mercury: {zodiac.Sagittarius, zodiac.Pisces},
	zodiac.Venus:   {zodiac.Scorpio, zodiac.Aries},
	zodiac.Mars:    {zodiac.Libra, zodiac.Taurus},
	zodiac.Jupiter: {zodiac.Gemini, zodiac.Virgo},
	zodiac.Saturn:  {zodiac.Cancer, zodiac.Leo},
}

type exaltation struct {
	sign   zodiac.Sign
	degree int // super-exaltation degree, compared against the truncated sign degree
}

var exaltations = [...]exaltation{
	zodiac.Sun:     {zodiac.Aries, 19},
	zodiac.Moon:    {zodiac.Taurus, 3},
	zodiac.Mercury: {zodiac.Virgo, 15},
	zodiac.Venus:   {zodiac.Pisces, 27},
	zodiac.Mars:    {zodiac.Capricorn, 28},
	zodiac.Jupiter: {zodiac.Cancer, 15},
	zodiac.Saturn:  {zodiac.Libra, 21},
}

// falls are the signs opposite each planet's exaltation
var falls = [...]zodiac.Sign{
	zodiac.Sun:     zodiac.Libra,
	zodiac.Moon:    zodiac.Scorpio,
	zodiac.Mercury: zodiac.Pisces,
	zodiac.Venus:   zodiac.Virgo,
	zodiac.Mars:    zodiac.Cancer,
	zodiac.Jupiter: zodiac.Capricorn,
	zodiac.Saturn:  zodiac.Aries,
}

type triplicityRulers struct {
	day, night zodiac.Planet
}

// Dorothean day/night rulers, repeating by element: fire, earth, air, water
var triplicities = [zodiac.NumSigns]triplicityRulers{
	zodiac.Aries:       {zodiac.Sun, zodiac.Jupiter},
	zodiac.Taurus:      {zodiac.Venus, zodiac.Moon},
	zodiac.Gemini:      {zodiac.Saturn, zodiac.Mercury},
	zodiac.Cancer:      {zodiac.Mars, zodiac.Mars},
	zodiac.Leo:         {zodiac.Sun, zodiac.Jupiter},
	zodiac.Virgo:       {zodiac.Venus, zodiac.Moon},
	zodiac.Libra:       {zodiac.Saturn, zodiac.Mercury},
	zodiac.Scorpio:     {zodiac.Mars, zodiac.Mars},
	zodiac.Sagittarius: {zodiac.Sun, zodiac.Jupiter},
	zodiac.Capricorn:   {zodiac.Venus, zodiac.Moon},
	zodiac.Aquarius:    {zodiac.Saturn, zodiac.Mercury},
	zodiac.Pisces:      {zodiac.Mars, zodiac.Mars},
}

// Domiciles returns a copy of the signs ruled by p
func Domiciles(p zodiac.Planet) ([]zodiac.Sign, error) {
	if err := checkPlanet(p); err != nil {
		return nil, err
	}
	return append([]zodiac.Sign(nil), domiciles[p]...), nil
}

// Detriments returns a copy of the signs in which p is in detriment
func Detriments(p zodiac.Planet) ([]zodiac.Sign, error) {
	if err := checkPlanet(p); err != nil {
		return nil, err
	}
	return append([]zodiac.Sign(nil), detriments[p]...), nil
}

// Exaltation returns p's exaltation sign and super-exaltation degree
func Exaltation(p zodiac.Planet) (zodiac.Sign, int, error) {
	if err := checkPlanet(p); err != nil {
		return 0, 0, err
	}
	e := exaltations[p]
	return e.sign, e.degree, nil
}

// Fall returns the sign of p's fall
func Fall(p zodiac.Planet) (zodiac.Sign, error) {
	if err := checkPlanet(p); err != nil {
		return 0, err
	}
	return falls[p], nil
}

// TriplicityRuler returns the triplicity ruler of s for the given sect
func TriplicityRuler(s zodiac.Sign, polarity Polarity) (zodiac.Planet, error) {
	if err := checkSign(s); err != nil {
		return 0, err
	}
	return triplicityRuler(s, polarity), nil
}

func checkPlanet(p zodiac.Planet) error {
	if !p.IsClassical() {
		return zodiac.NewDomainError("planet", p, "dignities are defined for the seven classical planets only")
	}
	return nil
}

func checkSign(s zodiac.Sign) error {
	if !s.Valid() {
		return zodiac.NewDomainError("sign", int(s), "not a zodiac sign")
	}
	return nil
}
