package birthtime

import (
	"errors"
	"testing"
	"time"

	"github.com/chrissnell/ptolemy/pkg/zodiac"
)

func TestTo24Hour(t *testing.T) {
	tests := []struct {
		hour     int
		ampm     string
		expected int
		wantErr  bool
	}{
		{12, "AM", 0, false},
		{1, "AM", 1, false},
		{11, "am", 11, false},
		{12, "PM", 12, false},
		{1, "PM", 13, false},
		{11, " pm ", 23, false},
		{0, "AM", 0, true},
		{13, "PM", 0, true},
		{5, "XM", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.ampm, func(t *testing.T) {
			got, err := To24Hour(tt.hour, tt.ampm)
			if tt.wantErr {
				if !errors.Is(err, zodiac.ErrDomain) {
					t.Errorf("To24Hour(%d, %q) error = %v, expected a domain error", tt.hour, tt.ampm, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("To24Hour(%d, %q) error = %v", tt.hour, tt.ampm, err)
			}
			if got != tt.expected {
				t.Errorf("To24Hour(%d, %q) = %d, expected %d", tt.hour, tt.ampm, got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		b       BirthTime
		wantErr bool
	}{
		{"ok 24h", BirthTime{1990, 6, 15, 14, 30, ""}, false},
		{"ok 12h", BirthTime{1990, 6, 15, 2, 30, "PM"}, false},
		{"leap day", BirthTime{2000, 2, 29, 0, 0, ""}, false},
		{"not a leap year", BirthTime{1900, 2, 29, 0, 0, ""}, true},
		{"bad month", BirthTime{1990, 13, 1, 0, 0, ""}, true},
		{"bad day", BirthTime{1990, 4, 31, 0, 0, ""}, true},
		{"bad hour", BirthTime{1990, 4, 1, 24, 0, ""}, true},
		{"bad minute", BirthTime{1990, 4, 1, 10, 60, ""}, true},
		{"bad 12h hour", BirthTime{1990, 4, 1, 0, 0, "AM"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		b        BirthTime
		lat, lon float64
		expected time.Time
	}{
		{
			name:     "New York summer",
			b:        BirthTime{1990, 7, 4, 9, 15, "PM"},
			lat:      40.7128,
			lon:      -74.0060,
			expected: time.Date(1990, 7, 5, 1, 15, 0, 0, time.UTC),
		},
		{
			name:     "London winter",
			b:        BirthTime{2000, 1, 1, 12, 0, ""},
			lat:      51.5074,
			lon:      -0.1278,
			expected: time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:     "Tokyo",
			b:        BirthTime{1985, 3, 10, 6, 0, ""},
			lat:      35.6762,
			lon:      139.6503,
			expected: time.Date(1985, 3, 9, 21, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.b, tt.lat, tt.lon)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if !got.UTC().Equal(tt.expected) {
				t.Errorf("Resolve() = %v, expected %v", got.UTC(), tt.expected)
			}
		})
	}
}

func TestResolveRejectsBadDate(t *testing.T) {
	if _, err := Resolve(BirthTime{1990, 2, 30, 0, 0, ""}, 0, 0); err == nil {
		t.Error("Resolve() expected an error for February 30")
	}
}

func TestZoneForOpenSea(t *testing.T) {
	// mid Pacific, south of any land
	loc, err := ZoneFor(-45, -135)
	if err != nil {
		t.Fatalf("ZoneFor() error = %v", err)
	}
	_, offset := time.Date(2000, 1, 1, 0, 0, 0, 0, loc).Zone()
	if offset != -9*3600 {
		t.Errorf("ZoneFor() offset = %d, expected %d", offset, -9*3600)
	}
}

func TestFromTime(t *testing.T) {
	now := time.Date(2024, 3, 1, 3, 30, 0, 0, time.UTC)
	b, err := FromTime(now, 40.7128, -74.0060)
	if err != nil {
		t.Fatalf("FromTime() error = %v", err)
	}
	expected := BirthTime{2024, 2, 29, 22, 30, ""}
	if b != expected {
		t.Errorf("FromTime() = %+v, expected %+v", b, expected)
	}

	back, err := Resolve(b, 40.7128, -74.0060)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !back.Equal(now) {
		t.Errorf("Resolve(FromTime()) = %v, expected %v", back.UTC(), now)
	}
}
