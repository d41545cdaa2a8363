package chart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chrissnell/ptolemy/pkg/birthtime"
	"github.com/chrissnell/ptolemy/pkg/dignity"
	"github.com/chrissnell/ptolemy/pkg/ephemeris"
	"github.com/chrissnell/ptolemy/pkg/geocode"
	"github.com/chrissnell/ptolemy/pkg/zodiac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEphemeris struct {
	longitudes map[zodiac.Planet]float64
	retrograde map[zodiac.Planet]bool
	ascendant  float64
	lastJD     float64
	lastSystem ephemeris.HouseSystem
	housesErr  error
}

func (f *fakeEphemeris) Longitude(body zodiac.Planet, jd float64) (float64, error) {
	f.lastJD = jd
	l, ok := f.longitudes[body]
	if !ok {
		return 0, zodiac.NewDomainError("planet", body, "no position")
	}
	return l, nil
}

func (f *fakeEphemeris) IsRetrograde(body zodiac.Planet, jd float64) (bool, error) {
	return f.retrograde[body], nil
}

func (f *fakeEphemeris) Houses(jd, lat, lon float64, system ephemeris.HouseSystem) (ephemeris.Houses, error) {
	f.lastSystem = system
	if f.housesErr != nil {
		return ephemeris.Houses{}, f.housesErr
	}
	h := ephemeris.Houses{
		System:     system,
		Ascendant:  f.ascendant,
		Descendant: zodiac.Normalize(f.ascendant + 180),
		Midheaven:  zodiac.Normalize(f.ascendant - 90),
		ImumCoeli:  zodiac.Normalize(f.ascendant + 90),
	}
	for i := range h.Cusps {
		h.Cusps[i] = zodiac.Normalize(f.ascendant + 30*float64(i))
	}
	return h, nil
}

type fakeGeocoder struct {
	locations []geocode.Location
	err       error
}

func (f *fakeGeocoder) Lookup(ctx context.Context, city, country string) ([]geocode.Location, error) {
	return f.locations, f.err
}

var london = geocode.Location{DisplayName: "London, England, United Kingdom", Latitude: 51.5074, Longitude: -0.1278}

func newFakeEphemeris() *fakeEphemeris {
	return &fakeEphemeris{
		longitudes: map[zodiac.Planet]float64{
			zodiac.Sun:       130,   // 10° Leo
			zodiac.Moon:      45,    // 15° Taurus
			zodiac.Mercury:   135,   // 15° Leo, 5° from the Sun
			zodiac.Venus:     130.1, // heart of the Sun
			zodiac.Mars:      62,    // 2° Gemini
			zodiac.Jupiter:   250,
			zodiac.Saturn:    200,
			zodiac.NorthNode: 10,
			zodiac.SouthNode: 190,
		},
		retrograde: map[zodiac.Planet]bool{
			zodiac.Saturn:    true,
			zodiac.NorthNode: true,
			zodiac.SouthNode: true,
		},
		ascendant: 100,
	}
}

func newTestBuilder(eph Ephemeris, geo Geocoder) *Builder {
	b := NewBuilder(eph, geo, nil)
	b.newID = func() string { return "test-chart" }
	return b
}

func TestBuild(t *testing.T) {
	eph := newFakeEphemeris()
	b := newTestBuilder(eph, &fakeGeocoder{locations: []geocode.Location{london}})

	c, err := b.Build(context.Background(), Request{
		City:    "London",
		Country: "UK",
		Time:    birthtime.BirthTime{Year: 2000, Month: 1, Day: 1, Hour: 12, Minute: 0},
	})
	require.NoError(t, err)

	assert.Equal(t, "test-chart", c.ID)
	assert.Equal(t, london, c.Location)
	assert.Equal(t, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), c.UTC)
	assert.InDelta(t, 2451545.0, c.JulianDay, 1e-6)
	assert.InDelta(t, 2451545.0, eph.lastJD, 1e-6)
	assert.Equal(t, ephemeris.Placidus, eph.lastSystem, "house system should default to Placidus")
	assert.Equal(t, dignity.Day, c.Polarity)
	assert.Equal(t, "Waning Crescent", c.MoonPhase.Name)
	require.Len(t, c.Placements, len(zodiac.Bodies()))
	require.Len(t, c.Angles, 4)
	assert.Equal(t, "Ascendant", c.Angles[0].Name)
	assert.Equal(t, zodiac.Cancer, c.Angles[0].Sign)
	assert.InDelta(t, 10, c.Angles[0].SignDegree, 1e-9)

	sun, ok := c.Placement(zodiac.Sun)
	require.True(t, ok)
	assert.Equal(t, zodiac.Leo, sun.Sign)
	assert.Equal(t, 2, sun.House)
	require.NotNil(t, sun.Profile)
	assert.True(t, sun.Profile.Domicile)
	assert.True(t, sun.Profile.Triplicity, "the Sun rules fire by day")
	assert.False(t, sun.Combust, "the Sun is never combust")
	assert.False(t, sun.Cazimi)

	moon, _ := c.Placement(zodiac.Moon)
	require.NotNil(t, moon.Profile)
	assert.True(t, moon.Profile.Exaltation)
	assert.False(t, moon.Profile.SuperExalted)
	assert.Equal(t, 11, moon.House)

	mercury, _ := c.Placement(zodiac.Mercury)
	assert.True(t, mercury.Combust)
	assert.False(t, mercury.Cazimi)

	venus, _ := c.Placement(zodiac.Venus)
	assert.True(t, venus.Cazimi)
	assert.True(t, venus.Combust)

	mars, _ := c.Placement(zodiac.Mars)
	require.NotNil(t, mars.Profile)
	assert.True(t, mars.Profile.Peregrine())
	assert.Equal(t, zodiac.DMS{Degrees: 2}, mars.DMS)

	saturn, _ := c.Placement(zodiac.Saturn)
	assert.True(t, saturn.Retrograde)

	node, _ := c.Placement(zodiac.NorthNode)
	assert.Nil(t, node.Profile, "nodes get no dignity profile")
	assert.Equal(t, zodiac.Aries, node.Sign)
	assert.True(t, node.Retrograde)
}

func TestBuildNightChart(t *testing.T) {
	eph := newFakeEphemeris()
	eph.ascendant = 300 // Sun at 130 is below the horizon
	b := newTestBuilder(eph, nil)

	c, err := b.Build(context.Background(), Request{
		Location: &london,
		Instant:  time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, dignity.Night, c.Polarity)
	assert.Equal(t, birthtime.BirthTime{Year: 2000, Month: 1, Day: 1, Hour: 12, Minute: 0}, c.Request.Time)

	moon, _ := c.Placement(zodiac.Moon)
	assert.True(t, moon.Profile.Triplicity, "the Moon rules earth by night")
}

func TestBuildPicksMatch(t *testing.T) {
	ontario := geocode.Location{DisplayName: "London, Ontario, Canada", Latitude: 42.9832, Longitude: -81.2434}
	geo := &fakeGeocoder{locations: []geocode.Location{london, ontario}}
	b := newTestBuilder(newFakeEphemeris(), geo)

	req := Request{
		City:        "London",
		Match:       1,
		Time:        birthtime.BirthTime{Year: 2000, Month: 1, Day: 1, Hour: 7, Minute: 0},
		HouseSystem: ephemeris.WholeSign,
	}
	c, err := b.Build(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ontario, c.Location)
	assert.Equal(t, time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), c.UTC)

	req.Match = 2
	_, err = b.Build(context.Background(), req)
	assert.Error(t, err)
}

func TestBuildErrors(t *testing.T) {
	t.Run("geocoder failure", func(t *testing.T) {
		b := newTestBuilder(newFakeEphemeris(), &fakeGeocoder{err: geocode.ErrNotFound})
		_, err := b.Build(context.Background(), Request{City: "Atlantis"})
		assert.ErrorIs(t, err, geocode.ErrNotFound)
	})

	t.Run("geocoder returns nothing", func(t *testing.T) {
		b := newTestBuilder(newFakeEphemeris(), &fakeGeocoder{})
		_, err := b.Locate(context.Background(), "Atlantis", "")
		assert.ErrorIs(t, err, geocode.ErrNotFound)
		_, err = b.Build(context.Background(), Request{City: "Atlantis"})
		assert.ErrorIs(t, err, geocode.ErrNotFound)
	})

	t.Run("no geocoder", func(t *testing.T) {
		b := newTestBuilder(newFakeEphemeris(), nil)
		_, err := b.Build(context.Background(), Request{City: "London"})
		assert.Error(t, err)
	})

	t.Run("bad birth time", func(t *testing.T) {
		b := newTestBuilder(newFakeEphemeris(), nil)
		_, err := b.Build(context.Background(), Request{
			Location: &london,
			Time:     birthtime.BirthTime{Year: 2001, Month: 2, Day: 29},
		})
		assert.ErrorIs(t, err, zodiac.ErrDomain)
	})

	t.Run("house failure", func(t *testing.T) {
		eph := newFakeEphemeris()
		eph.housesErr = zodiac.NewDomainError("house system", "Koch", "unsupported")
		b := newTestBuilder(eph, nil)
		_, err := b.Build(context.Background(), Request{Location: &london, Instant: time.Now()})
		var de *zodiac.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, "house system", de.Kind)
	})

	t.Run("missing body", func(t *testing.T) {
		eph := newFakeEphemeris()
		delete(eph.longitudes, zodiac.Jupiter)
		b := newTestBuilder(eph, nil)
		_, err := b.Build(context.Background(), Request{Location: &london, Instant: time.Now()})
		assert.ErrorIs(t, err, zodiac.ErrDomain)
	})
}
