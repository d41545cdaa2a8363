// Package ephemeris computes the geocentric apparent ecliptic longitudes of
// the chart bodies and the house cusps for a moment and place. The Sun, Moon
// and lunar node come from the Meeus series. The five planets come from
// VSOP87 when a data directory is configured and from mean Keplerian
// elements otherwise, which is good to a few arcminutes over 1800-2050.
package ephemeris

import (
	"fmt"
	"math"
	"time"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// Config selects the planetary theory
type Config struct {
	// VSOP87Path is a directory holding the VSOP87B.* files. Empty means
	// use the built-in Keplerian elements.
	VSOP87Path string
}

// Ephemeris answers position queries. It is read-only after New and safe
// for concurrent use.
type Ephemeris struct {
	vsop   map[zodiac.Planet]*pp.V87Planet
	earth  *pp.V87Planet
	logger *zap.SugaredLogger
}

var vsopBodies = map[zodiac.Planet]int{
	zodiac.Mercury: pp.Mercury,
	zodiac.Venus:   pp.Venus,
	zodiac.Mars:    pp.Mars,
	zodiac.Jupiter: pp.Jupiter,
	zodiac.Saturn:  pp.Saturn,
}

// New builds an Ephemeris, loading the VSOP87 theory when cfg asks for it
func New(cfg Config, logger *zap.SugaredLogger) (*Ephemeris, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	e := &Ephemeris{logger: logger}

	if cfg.VSOP87Path == "" {
		logger.Debug("no VSOP87 path configured, using Keplerian elements for the planets")
		return e, nil
	}

	earth, err := pp.LoadPlanetPath(pp.Earth, cfg.VSOP87Path)
	if err != nil {
		return nil, fmt.Errorf("error loading VSOP87 Earth from %s: %w", cfg.VSOP87Path, err)
	}
	e.earth = earth
	e.vsop = make(map[zodiac.Planet]*pp.V87Planet, len(vsopBodies))
	for body, ibody := range vsopBodies {
		p, err := pp.LoadPlanetPath(ibody, cfg.VSOP87Path)
		if err != nil {
			return nil, fmt.Errorf("error loading VSOP87 %s from %s: %w", body, cfg.VSOP87Path, err)
		}
		e.vsop[body] = p
	}
	logger.Infof("loaded VSOP87 theory from %s", cfg.VSOP87Path)
	return e, nil
}

// JulianDay converts a time to a Julian Day number on the UT scale
func JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// Longitude returns the apparent geocentric ecliptic longitude of body in
// degrees, in [0, 360), referred to the true equinox of date.
//
// jd is used directly as dynamical time; the ~70 s difference from UT moves
// the Moon by under 0.04°.
func (e *Ephemeris) Longitude(body zodiac.Planet, jd float64) (float64, error) {
	T := base.J2000Century(jd)

	switch body {
	case zodiac.Sun:
		return zodiac.Normalize(solar.ApparentLongitude(T).Deg()), nil
	case zodiac.Moon:
		λ, _, _ := moonposition.Position(jd)
		Δψ, _ := nutation.Nutation(jd)
		return zodiac.Normalize(λ.Deg() + Δψ.Deg()), nil
	case zodiac.NorthNode:
		return zodiac.Normalize(moonposition.Node(jd).Deg()), nil
	case zodiac.SouthNode:
		return zodiac.Normalize(moonposition.Node(jd).Deg() + 180), nil
	}

	if _, ok := vsopBodies[body]; !ok {
		return 0, zodiac.NewDomainError("planet", body, "no ephemeris for this body")
	}

	Δψ, _ := nutation.Nutation(jd)
	if e.vsop != nil {
		return zodiac.Normalize(e.vsopLongitude(body, jd) + Δψ.Deg()), nil
	}
	// mean elements are referred to J2000; precess in longitude to date
	return zodiac.Normalize(keplerLongitude(body, T) + generalPrecession*T + Δψ.Deg()), nil
}

// IsRetrograde reports whether body's longitude decreases over the day
// following jd
func (e *Ephemeris) IsRetrograde(body zodiac.Planet, jd float64) (bool, error) {
	l1, err := e.Longitude(body, jd)
	if err != nil {
		return false, err
	}
	l2, err := e.Longitude(body, jd+1)
	if err != nil {
		return false, err
	}
	return zodiac.Normalize(l2-l1) > 180, nil
}

// lightTimeDays is the light travel time per AU
const lightTimeDays = 0.0057755183

func (e *Ephemeris) vsopLongitude(body zodiac.Planet, jde float64) float64 {
	earth := sphericalToVec(e.earth.Position(jde))
	planet := e.vsop[body]

	geo := r3.Sub(sphericalToVec(planet.Position(jde)), earth)
	τ := lightTimeDays * r3.Norm(geo)
	geo = r3.Sub(sphericalToVec(planet.Position(jde-τ)), earth)

	return radToDeg(math.Atan2(geo.Y, geo.X))
}

func sphericalToVec(l, b unit.Angle, r float64) r3.Vec {
	sl, cl := l.Sincos()
	sb, cb := b.Sincos()
	return r3.Vec{X: r * cb * cl, Y: r * cb * sl, Z: r * sb}
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
