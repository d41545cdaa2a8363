package dignity

import (
	"fmt"
	"math"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
)

// Band is a sub-range [Lower, Upper) of a sign's 30 degrees and the planet
// that rules it
type Band struct {
	Lower float64       `json:"lower" msgpack:"lower"`
	Upper float64       `json:"upper" msgpack:"upper"`
	Ruler zodiac.Planet `json:"ruler" msgpack:"ruler"`
}

// Ptolemaic bounds (terms): five unequal bands per sign
var bounds = [zodiac.NumSigns][5]Band{
	zodiac.Aries: {
		{0, 6, zodiac.Jupiter},
		{6, 14, zodiac.Venus},
		{14, 21, zodiac.Mercury},
		{21, 26, zodiac.Mars},
		{26, 30, zodiac.Saturn},
	},
	zodiac.Taurus: {
		{0, 8, zodiac.Venus},
		{8, 15, zodiac.Mercury},
		{15, 22, zodiac.Jupiter},
		{22, 26, zodiac.Saturn},
		{26, 30, zodiac.Mars},
	},
	zodiac.Gemini: {
		{0, 7, zodiac.Mercury},
		{7, 14, zodiac.Jupiter},
		{14, 21, zodiac.Venus},
		{21, 25, zodiac.Saturn},
		{25, 30, zodiac.Mars},
	},
	zodiac.Cancer: {
		{0, 6, zodiac.Mars},
		{6, 13, zodiac.Jupiter},
		{13, 20, zodiac.Mercury},
		{20, 27, zodiac.Venus},
		{27, 30, zodiac.Saturn},
	},
	zodiac.Leo: {
		{0, 6, zodiac.Saturn},
		{6, 13, zodiac.Mercury},
		{13, 19, zodiac.Venus},
		{19, 25, zodiac.Jupiter},
		{25, 30, zodiac.Mars},
	},
	zodiac.Virgo: {
		{0, 7, zodiac.Mercury},
		{7, 13, zodiac.Venus},
		{13, 18, zodiac.Jupiter},
		{18, 24, zodiac.Saturn},
		{24, 30, zodiac.Mars},
	},
	zodiac.Libra: {
		{0, 6, zodiac.Saturn},
		{6, 11, zodiac.Venus},
		{11, 19, zodiac.Jupiter},
		{19, 24, zodiac.Mercury},
		{24, 30, zodiac.Mars},
	},
	zodiac.Scorpio: {
		{0, 6, zodiac.Mars},
		{6, 14, zodiac.Jupiter},
		{14, 21, zodiac.Venus},
		{21, 27, zodiac.Mercury},
		{27, 30, zodiac.Saturn},
	},
	zodiac.Sagittarius: {
		{0, 8, zodiac.Jupiter},
		{8, 14, zodiac.Venus},
		{14, 19, zodiac.Mercury},
		{19, 25, zodiac.Saturn},
		{25, 30, zodiac.Mars},
	},
	zodiac.Capricorn: {
		{0, 6, zodiac.Venus},
		{6, 12, zodiac.Mercury},
		{12, 19, zodiac.Jupiter},
		{19, 25, zodiac.Mars},
		{25, 30, zodiac.Saturn},
	},
	zodiac.Aquarius: {
		{0, 6, zodiac.Saturn},
		{6, 12, zodiac.Mercury},
		{12, 20, zodiac.Venus},
		{20, 25, zodiac.Jupiter},
		{25, 30, zodiac.Mars},
	},
	zodiac.Pisces: {
		{0, 8, zodiac.Venus},
		{8, 14, zodiac.Jupiter},
		{14, 20, zodiac.Mercury},
		{20, 26, zodiac.Mars},
		{26, 30, zodiac.Saturn},
	},
}

// Chaldean decans (faces): three 10° bands per sign. The rulers run through
// Mars, Sun, Venus, Mercury, Moon, Saturn, Jupiter and repeat, beginning with
// Mars at 0° Aries.
var decans = [zodiac.NumSigns][3]Band{
	zodiac.Aries:       {{0, 10, zodiac.Mars}, {10, 20, zodiac.Sun}, {20, 30, zodiac.Venus}},
	zodiac.Taurus:      {{0, 10, zodiac.Mercury}, {10, 20, zodiac.Moon}, {20, 30, zodiac.Saturn}},
	zodiac.Gemini:      {{0, 10, zodiac.Jupiter}, {10, 20, zodiac.Mars}, {20, 30, zodiac.Sun}},
	zodiac.Cancer:      {{0, 10, zodiac.Venus}, {10, 20, zodiac.Mercury}, {20, 30, zodiac.Moon}},
	zodiac.Leo:         {{0, 10, zodiac.Saturn}, {10, 20, zodiac.Jupiter}, {20, 30, zodiac.Mars}},
	zodiac.Virgo:       {{0, 10, zodiac.Sun}, {10, 20, zodiac.Venus}, {20, 30, zodiac.Mercury}},
	zodiac.Libra:       {{0, 10, zodiac.Moon}, {10, 20, zodiac.Saturn}, {20, 30, zodiac.Jupiter}},
	zodiac.Scorpio:     {{0, 10, zodiac.Mars}, {10, 20, zodiac.Sun}, {20, 30, zodiac.Venus}},
	zodiac.Sagittarius: {{0, 10, zodiac.Mercury}, {10, 20, zodiac.Moon}, {20, 30, zodiac.Saturn}},
	zodiac.Capricorn:   {{0, 10, zodiac.Jupiter}, {10, 20, zodiac.Mars}, {20, 30, zodiac.Sun}},
	zodiac.Aquarius:    {{0, 10, zodiac.Venus}, {10, 20, zodiac.Mercury}, {20, 30, zodiac.Moon}},
	zodiac.Pisces:      {{0, 10, zodiac.Saturn}, {10, 20, zodiac.Jupiter}, {20, 30, zodiac.Mars}},
}

// Bounds returns the five Ptolemaic bounds of s in ascending order
func Bounds(s zodiac.Sign) ([]Band, error) {
	if err := checkSign(s); err != nil {
		return nil, err
	}
	b := bounds[s]
	return b[:], nil
}

// Decans returns the three decans of s in ascending order
func Decans(s zodiac.Sign) ([]Band, error) {
	if err := checkSign(s); err != nil {
		return nil, err
	}
	d := decans[s]
	return d[:], nil
}

// BoundRuler returns the planet ruling the Ptolemaic bound that contains
// degree within sign s
func BoundRuler(s zodiac.Sign, degree float64) (zodiac.Planet, error) {
	if err := checkSign(s); err != nil {
		return 0, err
	}
	return lookupBand(bounds[s][:], s, degree)
}

// DecanRuler returns the planet ruling the decan that contains degree within
// sign s
func DecanRuler(s zodiac.Sign, degree float64) (zodiac.Planet, error) {
	if err := checkSign(s); err != nil {
		return 0, err
	}
	return lookupBand(decans[s][:], s, degree)
}

func lookupBand(bands []Band, s zodiac.Sign, degree float64) (zodiac.Planet, error) {
	if err := checkDegree(degree); err != nil {
		return 0, err
	}
	for _, b := range bands {
		if b.Lower <= degree && degree < b.Upper {
			return b.Ruler, nil
		}
	}
	// unreachable while the tables cover [0, 30)
	return 0, fmt.Errorf("no band of %s contains %v°", s, degree)
}

func checkDegree(degree float64) error {
	if math.IsNaN(degree) || degree < 0 || degree >= zodiac.SignWidth {
		return zodiac.NewDomainError("sign degree", degree, "must be in [0, 30)")
	}
	return nil
}
