// Package chart casts a natal chart: it places the birth on the map, turns
// the local birth time into a Julian Day, asks the ephemeris for positions and
// angles, and classifies every body with the dignity engine.
package chart

import (
	"context"
	"fmt"
	"time"

	"github.com/chrissnell/ptolemy/pkg/birthtime"
	"github.com/chrissnell/ptolemy/pkg/dignity"
	"github.com/chrissnell/ptolemy/pkg/ephemeris"
	"github.com/chrissnell/ptolemy/pkg/geocode"
	"github.com/chrissnell/ptolemy/pkg/lunar"
	"github.com/chrissnell/ptolemy/pkg/zodiac"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ephemeris supplies positions and house cusps
type Ephemeris interface {
	Longitude(body zodiac.Planet, jd float64) (float64, error)
	IsRetrograde(body zodiac.Planet, jd float64) (bool, error)
	Houses(jd, latitude, longitude float64, system ephemeris.HouseSystem) (ephemeris.Houses, error)
}

// Geocoder resolves place names
type Geocoder interface {
	Lookup(ctx context.Context, city, country string) ([]geocode.Location, error)
}

// Request describes the chart to cast
type Request struct {
	City    string `json:"city" msgpack:"city"`
	Country string `json:"country" msgpack:"country"`

	// Location skips geocoding when set
	Location *geocode.Location `json:"-" msgpack:"-"`
	// Match picks among several geocoder results, zero based
	Match int `json:"match,omitempty" msgpack:"match,omitempty"`

	Time birthtime.BirthTime `json:"time" msgpack:"time"`
	// Instant, when non-zero, is used instead of Time, and Time is filled in
	// from it
	Instant time.Time `json:"-" msgpack:"-"`

	HouseSystem ephemeris.HouseSystem `json:"house_system" msgpack:"house_system"`
}

// Placement is one body's position and classification
type Placement struct {
	Body       zodiac.Planet    `json:"body" msgpack:"body"`
	Longitude  float64          `json:"longitude" msgpack:"longitude"`
	Sign       zodiac.Sign      `json:"sign" msgpack:"sign"`
	SignDegree float64          `json:"sign_degree" msgpack:"sign_degree"`
	DMS        zodiac.DMS       `json:"dms" msgpack:"dms"`
	Retrograde bool             `json:"retrograde" msgpack:"retrograde"`
	House      int              `json:"house" msgpack:"house"`
	Profile    *dignity.Profile `json:"dignity,omitempty" msgpack:"dignity,omitempty"`
	Combust    bool             `json:"combust" msgpack:"combust"`
	Cazimi     bool             `json:"cazimi" msgpack:"cazimi"`
}

// Angle is a chart angle located in the zodiac
type Angle struct {
	Name       string      `json:"name" msgpack:"name"`
	Longitude  float64     `json:"longitude" msgpack:"longitude"`
	Sign       zodiac.Sign `json:"sign" msgpack:"sign"`
	SignDegree float64     `json:"sign_degree" msgpack:"sign_degree"`
	DMS        zodiac.DMS  `json:"dms" msgpack:"dms"`
}

// Chart is a cast chart
type Chart struct {
	ID         string           `json:"id" msgpack:"id"`
	Request    Request          `json:"request" msgpack:"request"`
	Location   geocode.Location `json:"location" msgpack:"location"`
	Zone       string           `json:"zone" msgpack:"zone"`
	Local      time.Time        `json:"local_time" msgpack:"local_time"`
	UTC        time.Time        `json:"utc_time" msgpack:"utc_time"`
	JulianDay  float64          `json:"julian_day" msgpack:"julian_day"`
	Polarity   dignity.Polarity `json:"polarity" msgpack:"polarity"`
	MoonPhase  lunar.Phase      `json:"moon_phase" msgpack:"moon_phase"`
	Houses     ephemeris.Houses `json:"houses" msgpack:"houses"`
	Angles     []Angle          `json:"angles" msgpack:"angles"`
	Placements []Placement      `json:"placements" msgpack:"placements"`
}

// Placement returns the placement of body, if the chart has one
func (c *Chart) Placement(body zodiac.Planet) (Placement, bool) {
	for _, p := range c.Placements {
		if p.Body == body {
			return p, true
		}
	}
	return Placement{}, false
}

// Builder casts charts. It holds no per-chart state.
type Builder struct {
	ephemeris Ephemeris
	geocoder  Geocoder
	logger    *zap.SugaredLogger
	newID     func() string
}

// NewBuilder creates a Builder. geocoder may be nil when every request
// carries its own Location.
func NewBuilder(eph Ephemeris, geocoder Geocoder, logger *zap.SugaredLogger) *Builder {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Builder{
		ephemeris: eph,
		geocoder:  geocoder,
		logger:    logger,
		newID:     func() string { return uuid.New().String() },
	}
}

// Locate returns every geocoder match for the request's place
func (b *Builder) Locate(ctx context.Context, city, country string) ([]geocode.Location, error) {
	if b.geocoder == nil {
		return nil, fmt.Errorf("no geocoder configured")
	}
	locs, err := b.geocoder.Lookup(ctx, city, country)
	if err != nil {
		return nil, fmt.Errorf("error locating %s, %s: %w", city, country, err)
	}
	if len(locs) == 0 {
		return nil, fmt.Errorf("error locating %s, %s: %w", city, country, geocode.ErrNotFound)
	}
	return locs, nil
}

// Build casts the chart for req
func (b *Builder) Build(ctx context.Context, req Request) (*Chart, error) {
	if req.HouseSystem == 0 {
		req.HouseSystem = ephemeris.Placidus
	}

	loc, err := b.location(ctx, req)
	if err != nil {
		return nil, err
	}
	if !req.Instant.IsZero() {
		// record the wall clock at the birthplace
		if req.Time, err = birthtime.FromTime(req.Instant, loc.Latitude, loc.Longitude); err != nil {
			return nil, err
		}
	}

	local, err := b.instant(req, loc)
	if err != nil {
		return nil, err
	}
	utc := local.UTC()
	jd := ephemeris.JulianDay(utc)
	zone, _ := local.Zone()

	b.logger.Debugf("casting chart for %s at %s (JD %.5f)", loc.DisplayName, utc.Format(time.RFC3339), jd)

	houses, err := b.ephemeris.Houses(jd, loc.Latitude, loc.Longitude, req.HouseSystem)
	if err != nil {
		return nil, fmt.Errorf("error computing %s houses: %w", req.HouseSystem, err)
	}

	longitudes := make(map[zodiac.Planet]float64, len(zodiac.Bodies()))
	for _, body := range zodiac.Bodies() {
		l, err := b.ephemeris.Longitude(body, jd)
		if err != nil {
			return nil, fmt.Errorf("error computing %s longitude: %w", body, err)
		}
		longitudes[body] = l
	}

	polarity := dignity.PolarityOf(longitudes[zodiac.Sun], houses.Ascendant)
	sunSign, err := zodiac.SignOf(longitudes[zodiac.Sun])
	if err != nil {
		return nil, err
	}

	c := &Chart{
		ID:        b.newID(),
		Request:   req,
		Location:  loc,
		Zone:      zone,
		Local:     local,
		UTC:       utc,
		JulianDay: jd,
		Polarity:  polarity,
		MoonPhase: lunar.PhaseOf(longitudes[zodiac.Sun], longitudes[zodiac.Moon]),
		Houses:    houses,
	}

	for _, a := range []struct {
		name string
		lon  float64
	}{
		{"Ascendant", houses.Ascendant},
		{"Midheaven", houses.Midheaven},
		{"Descendant", houses.Descendant},
		{"Imum Coeli", houses.ImumCoeli},
	} {
		sign, deg, err := zodiac.Locate(a.lon)
		if err != nil {
			return nil, fmt.Errorf("error locating %s: %w", a.name, err)
		}
		c.Angles = append(c.Angles, Angle{
			Name:       a.name,
			Longitude:  a.lon,
			Sign:       sign,
			SignDegree: deg,
			DMS:        zodiac.ToDMS(deg),
		})
	}

	for _, body := range zodiac.Bodies() {
		p, err := b.place(body, longitudes[body], jd, polarity, houses, longitudes[zodiac.Sun], sunSign)
		if err != nil {
			return nil, err
		}
		c.Placements = append(c.Placements, p)
	}

	return c, nil
}

func (b *Builder) place(body zodiac.Planet, lon, jd float64, polarity dignity.Polarity, houses ephemeris.Houses, sunLon float64, sunSign zodiac.Sign) (Placement, error) {
	sign, deg, err := zodiac.Locate(lon)
	if err != nil {
		return Placement{}, fmt.Errorf("error locating %s: %w", body, err)
	}
	retro, err := b.ephemeris.IsRetrograde(body, jd)
	if err != nil {
		return Placement{}, fmt.Errorf("error computing %s motion: %w", body, err)
	}

	p := Placement{
		Body:       body,
		Longitude:  lon,
		Sign:       sign,
		SignDegree: deg,
		DMS:        zodiac.ToDMS(deg),
		Retrograde: retro,
		House:      houses.HouseOf(lon),
	}

	if !body.IsClassical() {
		return p, nil
	}

	profile, err := dignity.Evaluate(body, sign, deg, polarity)
	if err != nil {
		return Placement{}, fmt.Errorf("error evaluating %s: %w", body, err)
	}
	p.Profile = &profile

	if body != zodiac.Sun {
		p.Combust = dignity.IsCombust(lon, sign, sunLon, sunSign)
		p.Cazimi = dignity.IsCazimi(lon, sign, sunLon, sunSign)
	}
	return p, nil
}

func (b *Builder) location(ctx context.Context, req Request) (geocode.Location, error) {
	if req.Location != nil {
		return *req.Location, nil
	}
	locs, err := b.Locate(ctx, req.City, req.Country)
	if err != nil {
		return geocode.Location{}, err
	}
	if req.Match < 0 || req.Match >= len(locs) {
		return geocode.Location{}, fmt.Errorf("match %d requested but the geocoder returned %d", req.Match+1, len(locs))
	}
	if len(locs) > 1 {
		b.logger.Debugf("using match %d of %d: %s", req.Match+1, len(locs), locs[req.Match].DisplayName)
	}
	return locs[req.Match], nil
}

func (b *Builder) instant(req Request, loc geocode.Location) (time.Time, error) {
	if !req.Instant.IsZero() {
		zone, err := birthtime.ZoneFor(loc.Latitude, loc.Longitude)
		if err != nil {
			return time.Time{}, err
		}
		return req.Instant.In(zone), nil
	}
	t, err := birthtime.Resolve(req.Time, loc.Latitude, loc.Longitude)
	if err != nil {
		return time.Time{}, fmt.Errorf("error resolving birth time %s: %w", req.Time, err)
	}
	return t, nil
}
