// Package zeitgeber converts wall-clock timestamps to Zeitgeber Time, hours
// since lights-on. ZT0 is lights-on, ZT12 is lights-off under the standard
// 12:12 cycle.
package zeitgeber

import (
	"time"

	"somnoseg/internal/errors"
)

// Period labels a sample as belonging to the light or dark phase.
type Period string

const (
	Light Period = "light"
	Dark  Period = "dark"
)

// Clock holds the facility light schedule as hours on a 24h clock.
type Clock struct {
	LightsOn  int // hour of lights-on, ZT0
	LightsOff int // hour of lights-off, ZT12
}

// DefaultClock is the reference animal-facility schedule: lights on 09:00,
// off 21:00.
func DefaultClock() Clock {
	return Clock{LightsOn: 9, LightsOff: 21}
}

// Validate checks the schedule hours are on the clock
func (c Clock) Validate() error {
	if c.LightsOn < 0 || c.LightsOn > 23 || c.LightsOff < 0 || c.LightsOff > 23 {
		return errors.ConfigInvalid("light schedule hours must be in [0,23]")
	}
	if c.LightsOn == c.LightsOff {
		return errors.ConfigInvalid("lights-on and lights-off hours must differ")
	}
	return nil
}

// ZT returns the Zeitgeber time of a timestamp as fractional hours in [0,24).
func (c Clock) ZT(ts time.Time) float64 {
	hours := float64(ts.Hour()) + float64(ts.Minute())/60 + float64(ts.Second())/3600
	zt := hours - float64(c.LightsOn)
	if zt < 0 {
		zt += 24
	}
	return zt
}

// PeriodOf classifies a timestamp as light or dark phase.
func (c Clock) PeriodOf(ts time.Time) Period {
	h := ts.Hour()
	if c.LightsOn < c.LightsOff {
		if h >= c.LightsOn && h < c.LightsOff {
			return Light
		}
		return Dark
	}
	// Inverted schedule (lights on overnight).
	if h >= c.LightsOn || h < c.LightsOff {
		return Light
	}
	return Dark
}
