package zodiac

import (
	"strconv"
	"strings"
)

// Planet identifies a chart body. The first seven are the classical planets
// used for dignities; the lunar nodes only ever carry a longitude.
type Planet int

const (
	Sun Planet = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	NorthNode
	SouthNode
)

var planetNames = [...]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn",
	"North Node", "South Node",
}

// ClassicalPlanets returns the seven visible planets, Sun first
func ClassicalPlanets() []Planet {
	return []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}
}

// Bodies returns every body a chart reports on
func Bodies() []Planet {
	return []Planet{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, NorthNode, SouthNode}
}

// Valid reports whether p is a known body
func (p Planet) Valid() bool {
	return p >= Sun && p <= SouthNode
}

// IsClassical reports whether p takes part in dignity evaluation
func (p Planet) IsClassical() bool {
	return p >= Sun && p <= Saturn
}

// IsNode reports whether p is one of the lunar nodes
func (p Planet) IsNode() bool {
	return p == NorthNode || p == SouthNode
}

func (p Planet) String() string {
	if !p.Valid() {
		return "Planet(" + strconv.Itoa(int(p)) + ")"
	}
	return planetNames[p]
}

// ParsePlanet resolves a body by name. "NorthNode" and "north-node" are
// accepted alongside "North Node".
func ParsePlanet(name string) (Planet, error) {
	n := normalizeName(name)
	for i, pn := range planetNames {
		if n == normalizeName(pn) {
			return Planet(i), nil
		}
	}
	return 0, NewDomainError("planet", name, "not a supported body")
}

func (p Planet) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, NewDomainError("planet", int(p), "out of range")
	}
	return []byte(p.String()), nil
}

func (p *Planet) UnmarshalText(b []byte) error {
	parsed, err := ParsePlanet(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(s)
}
