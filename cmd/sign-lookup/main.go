package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/chrissnell/ptolemy/pkg/dignity"
	"github.com/chrissnell/ptolemy/pkg/ephemeris"
	"github.com/chrissnell/ptolemy/pkg/zodiac"
)

func main() {
	var (
		longitude float64
		bodyName  string
		planet    string
		timeStr   string
		day       bool
		vsop87    string
	)
	flag.Float64Var(&longitude, "longitude", math.NaN(), "Ecliptic longitude in degrees to look up")
	flag.StringVar(&bodyName, "body", "", "Look up this body's longitude at -time instead (e.g. Mars, North Node)")
	flag.StringVar(&planet, "planet", "", "Evaluate this classical planet's dignity at the longitude")
	flag.StringVar(&timeStr, "time", "", "UTC time for -body (RFC3339 format, e.g., 2024-01-15T12:00:00Z); default now")
	flag.BoolVar(&day, "day", true, "Evaluate triplicity for a day chart; -day=false for night")
	flag.StringVar(&vsop87, "vsop87", "", "Directory of VSOP87B files for the planets")
	flag.Parse()

	if bodyName != "" {
		body, err := zodiac.ParsePlanet(bodyName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		t := time.Now().UTC()
		if timeStr != "" {
			t, err = time.Parse(time.RFC3339, timeStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error parsing time: %v\n", err)
				os.Exit(1)
			}
		}

		eph, err := ephemeris.New(ephemeris.Config{VSOP87Path: vsop87}, nil)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		jd := ephemeris.JulianDay(t)
		if longitude, err = eph.Longitude(body, jd); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		retro, _ := eph.IsRetrograde(body, jd)

		fmt.Printf("%s at %s (JD %.5f)\n", body, t.Format(time.RFC3339), jd)
		if retro && !body.IsNode() {
			fmt.Printf("  Motion:       Retrograde\n")
		}
		if planet == "" && body.IsClassical() {
			planet = body.String()
		}
	} else if math.IsNaN(longitude) {
		fmt.Fprintln(os.Stderr, "Error: give -longitude or -body")
		flag.Usage()
		os.Exit(1)
	}

	sign, degree, err := zodiac.Locate(longitude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	bound, _ := dignity.BoundRuler(sign, degree)
	decan, _ := dignity.DecanRuler(sign, degree)
	triplicity, _ := dignity.TriplicityRuler(sign, dignity.Polarity(day))

	fmt.Printf("  Longitude:    %.4f°\n", zodiac.Normalize(longitude))
	fmt.Printf("  Sign:         %s\n", sign)
	fmt.Printf("  Sign degree:  %.4f (%s)\n", degree, zodiac.ToDMS(degree))
	fmt.Printf("  Bound ruler:  %s\n", bound)
	fmt.Printf("  Decan ruler:  %s\n", decan)
	fmt.Printf("  Trip. ruler:  %s (%s)\n", triplicity, dignity.Polarity(day))

	if planet == "" {
		return
	}
	p, err := zodiac.ParsePlanet(planet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	profile, err := dignity.Evaluate(p, sign, degree, dignity.Polarity(day))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%s in a %s chart\n", p, profile.Polarity)
	fmt.Printf("  Domicile:     %v\n", profile.Domicile)
	fmt.Printf("  Exaltation:   %v (own degree: %v)\n", profile.Exaltation, profile.SuperExalted)
	fmt.Printf("  Triplicity:   %v\n", profile.Triplicity)
	fmt.Printf("  Own bound:    %v\n", profile.InOwnBound())
	fmt.Printf("  Own decan:    %v\n", profile.InOwnDecan())
	fmt.Printf("  Detriment:    %v\n", profile.Detriment)
	fmt.Printf("  Fall:         %v\n", profile.Fall)
	fmt.Printf("  Peregrine:    %v\n", profile.Peregrine())
}
