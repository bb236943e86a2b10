// Package lunar computes the apparent phase of the Moon from the number of
// days since new moon.
//
// Angles are in degrees: 0 is new moon, 90 first quarter, 180 full moon and
// 270 last quarter.
package lunar

import (
	"math"
)

// DefaultPeriod is the synodic month in days.
const DefaultPeriod = 29.5

type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// TurnAngle returns the phase angle in [0, 360) after days of a cycle with
// the given period.
func TurnAngle(days, period float64) float64 {
	angle := math.Mod(360/period*days, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// DarkSide is the limb that is unlit: left while waxing, right while waning.
func DarkSide(angle float64) Side {
	if angle < 180 {
		return Left
	}
	return Right
}

// TerminatorSide is the side of the disk the terminator bulges toward.
// At new moon (0) the terminator lies on the right limb.
func TerminatorSide(angle float64) Side {
	switch {
	case angle == 0:
		return Right
	case angle > 0 && angle <= 90:
		return Right
	case angle > 90 && angle <= 180:
		return Left
	case angle > 180 && angle <= 270:
		return Right
	default:
		return Left
	}
}

// PhaseName returns the conventional name for angle.
func PhaseName(angle float64) string {
	switch {
	case angle == 0 || angle == 360:
		return "New Moon"
	case angle == 90:
		return "First Quarter"
	case angle == 180:
		return "Full Moon"
	case angle == 270:
		return "Last Quarter"
	case angle > 0 && angle < 90:
		return "Waxing Crescent"
	case angle > 90 && angle < 180:
		return "Waxing Gibbous"
	case angle > 180 && angle < 270:
		return "Waning Gibbous"
	default:
		return "Waning Crescent"
	}
}

// TerminatorX is the unsigned horizontal offset of the terminator at height
// y on a disk of radius r.
func TerminatorX(y, r, angle float64) float64 {
	rad := angle * math.Pi / 180
	return math.Abs(r * math.Cos(rad) * math.Sqrt(1-(y/r)*(y/r)))
}

// Illuminated reports whether the point (x, y) on a disk of radius r
// centred at the origin is sunlit at the given phase angle. Points outside
// the disk are never lit.
func Illuminated(x, y, r, angle float64) bool {
	if x*x+y*y > r*r {
		return false
	}
	limb := math.Sqrt(r*r - y*y)
	c := math.Cos(angle * math.Pi / 180)
	if DarkSide(angle) == Left {
		return x > limb*c
	}
	return x < -limb*c
}

// IlluminatedFraction is the lit fraction of the disk, (1 − cos θ)/2.
func IlluminatedFraction(angle float64) float64 {
	return (1 - math.Cos(angle*math.Pi/180)) / 2
}

// Day describes the Moon on one day of a cycle.
type Day struct {
	Day      float64
	Angle    float64
	Phase    string
	Fraction float64
}

// Cycle lists the phase for each whole day in [0, days). It returns nil
// for days <= 0.
func Cycle(days int, period float64) []Day {
	if days <= 0 {
		return nil
	}
	out := make([]Day, days)
	for d := 0; d < days; d++ {
		angle := TurnAngle(float64(d), period)
		out[d] = Day{
			Day:      float64(d),
			Angle:    angle,
			Phase:    PhaseName(angle),
			Fraction: IlluminatedFraction(angle),
		}
	}
	return out
}
