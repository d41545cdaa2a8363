// Package birthtime turns a wall-clock birth date and time entered at a place
// into an absolute instant, looking up the place's time zone from its
// coordinates.
package birthtime

import (
	"fmt"
	"math"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/bradfitz/latlong"
	"github.com/chrissnell/ptolemy/pkg/zodiac"
)

// BirthTime is a local wall-clock time. Hour is 0-23 unless AMPM is set, in
// which case it is 1-12.
type BirthTime struct {
	Year   int    `json:"year" msgpack:"year" yaml:"year"`
	Month  int    `json:"month" msgpack:"month" yaml:"month"`
	Day    int    `json:"day" msgpack:"day" yaml:"day"`
	Hour   int    `json:"hour" msgpack:"hour" yaml:"hour"`
	Minute int    `json:"minute" msgpack:"minute" yaml:"minute"`
	AMPM   string `json:"ampm,omitempty" msgpack:"ampm,omitempty" yaml:"ampm,omitempty"`
}

func (b BirthTime) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d", b.Year, b.Month, b.Day, b.Hour, b.Minute)
	if b.AMPM != "" {
		s += " " + strings.ToUpper(b.AMPM)
	}
	return s
}

// To24Hour converts a 12-hour clock reading to 0-23. 12 AM is midnight and
// 12 PM is noon.
func To24Hour(hour int, ampm string) (int, error) {
	if hour < 1 || hour > 12 {
		return 0, zodiac.NewDomainError("hour", hour, "12-hour clock hour must be 1-12")
	}
	switch strings.ToUpper(strings.TrimSpace(ampm)) {
	case "AM":
		if hour == 12 {
			return 0, nil
		}
		return hour, nil
	case "PM":
		if hour == 12 {
			return 12, nil
		}
		return hour + 12, nil
	}
	return 0, zodiac.NewDomainError("meridiem", ampm, "expected AM or PM")
}

// Hour24 returns the hour on the 24-hour clock
func (b BirthTime) Hour24() (int, error) {
	if b.AMPM != "" {
		return To24Hour(b.Hour, b.AMPM)
	}
	if b.Hour < 0 || b.Hour > 23 {
		return 0, zodiac.NewDomainError("hour", b.Hour, "must be 0-23")
	}
	return b.Hour, nil
}

// Validate checks that the fields name a real calendar date and clock time
func (b BirthTime) Validate() error {
	if _, err := b.Hour24(); err != nil {
		return err
	}
	if b.Minute < 0 || b.Minute > 59 {
		return zodiac.NewDomainError("minute", b.Minute, "must be 0-59")
	}
	if b.Month < 1 || b.Month > 12 {
		return zodiac.NewDomainError("month", b.Month, "must be 1-12")
	}
	d := time.Date(b.Year, time.Month(b.Month), b.Day, 0, 0, 0, 0, time.UTC)
	if b.Day < 1 || d.Day() != b.Day {
		return zodiac.NewDomainError("day", b.Day, fmt.Sprintf("not a day of %04d-%02d", b.Year, b.Month))
	}
	return nil
}

// ZoneFor returns the IANA time zone containing the coordinates. Points with
// no zone, such as the open sea, get a fixed nautical zone of
// round(longitude/15) hours.
func ZoneFor(latitude, longitude float64) (*time.Location, error) {
	if name := latlong.LookupZoneName(latitude, longitude); name != "" {
		loc, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("error loading time zone %s: %w", name, err)
		}
		return loc, nil
	}

	offset := int(math.Round(longitude / 15))
	return time.FixedZone(fmt.Sprintf("UTC%+d", offset), offset*3600), nil
}

// Resolve interprets b as wall-clock time at the given coordinates and
// returns the instant in that zone. Call UTC() on the result for the
// universal time.
func Resolve(b BirthTime, latitude, longitude float64) (time.Time, error) {
	if err := b.Validate(); err != nil {
		return time.Time{}, err
	}
	hour, _ := b.Hour24()

	loc, err := ZoneFor(latitude, longitude)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(b.Year, time.Month(b.Month), b.Day, hour, b.Minute, 0, 0, loc), nil
}

// FromTime returns the wall-clock reading of t at the given coordinates, for
// casting a chart for the present moment
func FromTime(t time.Time, latitude, longitude float64) (BirthTime, error) {
	loc, err := ZoneFor(latitude, longitude)
	if err != nil {
		return BirthTime{}, err
	}
	local := t.In(loc)
	return BirthTime{
		Year:   local.Year(),
		Month:  int(local.Month()),
		Day:    local.Day(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
	}, nil
}
