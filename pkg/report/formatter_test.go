package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chrissnell/ptolemy/internal/chart"
	"github.com/chrissnell/ptolemy/pkg/dignity"
	"github.com/chrissnell/ptolemy/pkg/ephemeris"
	"github.com/chrissnell/ptolemy/pkg/geocode"
	"github.com/chrissnell/ptolemy/pkg/lunar"
	"github.com/chrissnell/ptolemy/pkg/zodiac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func sampleChart(t *testing.T) *chart.Chart {
	t.Helper()

	mars, err := dignity.Evaluate(zodiac.Mars, zodiac.Gemini, 2, dignity.Day)
	require.NoError(t, err)
	sun, err := dignity.Evaluate(zodiac.Sun, zodiac.Aries, 19.5, dignity.Day)
	require.NoError(t, err)

	utc := time.Date(2000, 4, 9, 12, 0, 0, 0, time.UTC)
	houses := ephemeris.Houses{System: ephemeris.WholeSign, Ascendant: 95, Midheaven: 5, Descendant: 275, ImumCoeli: 185}
	for i := range houses.Cusps {
		houses.Cusps[i] = zodiac.Normalize(90 + 30*float64(i))
	}

	return &chart.Chart{
		ID:        "3f1c2d9e-0000-4000-8000-000000000001",
		Request:   chart.Request{City: "London", Country: "UK"},
		Location:  geocode.Location{DisplayName: "London, England", Latitude: 51.5074, Longitude: -0.1278},
		Zone:      "BST",
		Local:     utc.In(time.FixedZone("BST", 3600)),
		UTC:       utc,
		JulianDay: 2451644.0,
		Polarity:  dignity.Day,
		MoonPhase: lunar.PhaseOf(19.5, 200),
		Houses:    houses,
		Angles: []chart.Angle{
			{Name: "Ascendant", Longitude: 95, Sign: zodiac.Cancer, SignDegree: 5, DMS: zodiac.ToDMS(5)},
		},
		Placements: []chart.Placement{
			{Body: zodiac.Sun, Longitude: 19.5, Sign: zodiac.Aries, SignDegree: 19.5, DMS: zodiac.ToDMS(19.5), House: 10, Profile: &sun},
			{Body: zodiac.Mars, Longitude: 62, Sign: zodiac.Gemini, SignDegree: 2, DMS: zodiac.ToDMS(2), House: 12, Profile: &mars, Retrograde: true},
			{Body: zodiac.Mercury, Longitude: 22, Sign: zodiac.Aries, SignDegree: 22, DMS: zodiac.ToDMS(22), House: 10, Combust: true},
			{Body: zodiac.NorthNode, Longitude: 124, Sign: zodiac.Leo, SignDegree: 4, DMS: zodiac.ToDMS(4), House: 2, Retrograde: true},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"text", Text, false},
		{"JSON", JSON, false},
		{" msgpack ", MsgPack, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter().Write(&buf, sampleChart(t), Text))
	out := buf.String()

	assert.Contains(t, out, "Sect:       Day chart")
	assert.Contains(t, out, "Moon phase: Full Moon, 100% illuminated")
	assert.Contains(t, out, "Ecliptic longitude of the Sun: 19.50 degrees.")
	assert.Contains(t, out, "The Sun is 19.50 degrees in Aries (19°30′00″), house 10.")
	assert.Contains(t, out, "exalted in its own degree")
	assert.Contains(t, out, "Mars is 2.00 degrees in Gemini (2°00′00″), house 12, retrograde.")
	assert.Contains(t, out, "Dignity:   peregrine")
	assert.Contains(t, out, "Combust.")
	assert.Contains(t, out, "The North Node is 4.00 degrees in Leo")
	assert.NotContains(t, out, "Leo (4°00′00″), house 2, retrograde", "node motion is not reported")
	assert.Contains(t, out, "Your house system: Whole Sign.")
	assert.Equal(t, 13, strings.Count(out, " degrees, "), "twelve cusps and one angle expected")
}

func TestWriteDefaultsToText(t *testing.T) {
	var a, b bytes.Buffer
	f := NewFormatter()
	c := sampleChart(t)
	require.NoError(t, f.Write(&a, c, ""))
	require.NoError(t, f.Write(&b, c, Text))
	assert.Equal(t, b.String(), a.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter().Write(&buf, sampleChart(t), JSON))

	var decoded struct {
		ID         string `json:"id"`
		Polarity   string `json:"polarity"`
		Placements []struct {
			Body    string `json:"body"`
			Sign    string `json:"sign"`
			House   int    `json:"house"`
			Dignity *struct {
				SuperExalted bool `json:"super_exalted"`
				Peregrine    bool `json:"peregrine"`
			} `json:"dignity"`
		} `json:"placements"`
		Houses struct {
			System string      `json:"system"`
			Cusps  [12]float64 `json:"cusps"`
		} `json:"houses"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "3f1c2d9e-0000-4000-8000-000000000001", decoded.ID)
	assert.Equal(t, "Day", decoded.Polarity)
	require.Len(t, decoded.Placements, 4)
	assert.Equal(t, "Sun", decoded.Placements[0].Body)
	assert.Equal(t, "Aries", decoded.Placements[0].Sign)
	require.NotNil(t, decoded.Placements[0].Dignity)
	assert.True(t, decoded.Placements[0].Dignity.SuperExalted)
	assert.True(t, decoded.Placements[1].Dignity.Peregrine)
	assert.Nil(t, decoded.Placements[3].Dignity)
	assert.Equal(t, "North Node", decoded.Placements[3].Body)
	assert.Equal(t, "Whole Sign", decoded.Houses.System)
	assert.InDelta(t, 90, decoded.Houses.Cusps[0], 1e-9)
}

func TestWriteMsgPack(t *testing.T) {
	var buf bytes.Buffer
	c := sampleChart(t)
	require.NoError(t, NewFormatter().Write(&buf, c, MsgPack))

	var decoded map[string]any
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, c.ID, decoded["id"])
	assert.Equal(t, c.JulianDay, decoded["julian_day"])
	placements, ok := decoded["placements"].([]any)
	require.True(t, ok, "placements should decode as a list")
	assert.Len(t, placements, len(c.Placements))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewFormatter().Write(&buf, sampleChart(t), Format("yaml")))
}
