// Package report renders a cast chart as plain text, JSON or MessagePack.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/chrissnell/ptolemy/internal/chart"
	"github.com/chrissnell/ptolemy/pkg/dignity"
	"github.com/chrissnell/ptolemy/pkg/zodiac"
	"github.com/vmihailenco/msgpack/v5"
)

// Format names an output encoding
type Format string

const (
	Text    Format = "text"
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Text, JSON, MsgPack:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q: expected text, json or msgpack", s)
}

// Formatter handles encoding and writing chart reports
type Formatter struct{}

// NewFormatter creates a new report formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Write renders c to w in the requested format. Text is the default for an
// empty format.
func (f *Formatter) Write(w io.Writer, c *chart.Chart, format Format) error {
	switch format {
	case Text, "":
		return f.writeText(w, c)
	case JSON:
		return f.writeJSON(w, c)
	case MsgPack:
		return f.writeMsgPack(w, c)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func (f *Formatter) writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (f *Formatter) writeMsgPack(w io.Writer, data any) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}

func (f *Formatter) writeText(w io.Writer, c *chart.Chart) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Chart %s\n", c.ID)
	fmt.Fprintf(&b, "Location:   %s (%.4f, %.4f)\n", c.Location.DisplayName, c.Location.Latitude, c.Location.Longitude)
	fmt.Fprintf(&b, "Local time: %s\n", c.Local.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "UTC:        %s\n", c.UTC.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "Julian Day: %.5f\n", c.JulianDay)
	fmt.Fprintf(&b, "Sect:       %s chart\n", c.Polarity)
	fmt.Fprintf(&b, "Moon phase: %s, %.0f%% illuminated\n", c.MoonPhase.Name, c.MoonPhase.Illumination*100)

	for _, p := range c.Placements {
		name := displayName(p.Body)
		fmt.Fprintf(&b, "\nEcliptic longitude of %s: %.2f degrees.\n", name, p.Longitude)
		fmt.Fprintf(&b, "%s is %.2f degrees in %s (%s), house %d",
			capitalize(name), p.SignDegree, p.Sign, p.DMS, p.House)
		if p.Retrograde && !p.Body.IsNode() {
			b.WriteString(", retrograde")
		}
		b.WriteString(".\n")

		if p.Profile != nil {
			fmt.Fprintf(&b, "  Dignity:   %s\n", describeProfile(*p.Profile))
			fmt.Fprintf(&b, "  Bound of %s, decan of %s.\n", p.Profile.BoundRuler, p.Profile.DecanRuler)
		}
		switch {
		case p.Cazimi:
			b.WriteString("  Cazimi.\n")
		case p.Combust:
			b.WriteString("  Combust.\n")
		}
	}

	fmt.Fprintf(&b, "\nYour house system: %s.\n", c.Houses.System)
	for _, a := range c.Angles {
		fmt.Fprintf(&b, "%-11s %6.2f degrees, %s %s\n", a.Name+":", a.Longitude, a.DMS, a.Sign)
	}
	b.WriteString("\nHouse cusps:\n")
	for i, cusp := range c.Houses.Cusps {
		sign, deg, err := zodiac.Locate(cusp)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "  %2d: %6.2f degrees, %s %s\n", i+1, cusp, zodiac.ToDMS(deg), sign)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func describeProfile(p dignity.Profile) string {
	var parts []string
	if p.Domicile {
		parts = append(parts, "domicile")
	}
	if p.SuperExalted {
		parts = append(parts, "exalted in its own degree")
	} else if p.Exaltation {
		parts = append(parts, "exalted")
	}
	if p.Triplicity {
		parts = append(parts, "triplicity ruler")
	}
	if p.InOwnBound() {
		parts = append(parts, "in own bound")
	}
	if p.InOwnDecan() {
		parts = append(parts, "in own decan")
	}
	if p.Detriment {
		parts = append(parts, "in detriment")
	}
	if p.Fall {
		parts = append(parts, "in fall")
	}
	if p.Peregrine() {
		return "peregrine"
	}
	return strings.Join(parts, ", ")
}

func displayName(p zodiac.Planet) string {
	switch p {
	case zodiac.Sun, zodiac.Moon, zodiac.NorthNode, zodiac.SouthNode:
		return "the " + p.String()
	}
	return p.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
