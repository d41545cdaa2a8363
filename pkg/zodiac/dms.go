package zodiac

import (
	"fmt"
	"math"
)

// DMS is an angle split into degrees, minutes and seconds
type DMS struct {
	Degrees int     `json:"degrees" msgpack:"degrees"`
	Minutes int     `json:"minutes" msgpack:"minutes"`
	Seconds float64 `json:"seconds" msgpack:"seconds"`
}

// ToDMS converts decimal degrees to degrees, minutes and seconds. Degrees and
// minutes are truncated toward zero; the remainder is carried in seconds.
func ToDMS(decimal float64) DMS {
	deg := math.Trunc(decimal)
	minutesFull := (decimal - deg) * 60
	m := math.Trunc(minutesFull)
	return DMS{
		Degrees: int(deg),
		Minutes: int(m),
		Seconds: (minutesFull - m) * 60,
	}
}

func (d DMS) String() string {
	return fmt.Sprintf("%d°%02d′%02.0f″", d.Degrees, abs(d.Minutes), math.Abs(d.Seconds))
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
