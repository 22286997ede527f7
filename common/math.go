package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Arctan returns the angle of the vector (adjacent, opposite). The zero
// vector has angle 0.
func Arctan(opposite, adjacent float64) float64 {
	if adjacent == 0 && opposite == 0 {
		return 0
	}
	return math.Atan2(opposite, adjacent)
}

func Magnitude(dx, dy, dz float64) float64 {
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// DirIsLeft reports whether an angle points into the left half plane.
func DirIsLeft(dir float64) bool {
	return math.Cos(dir) < 0
}

// Polar converts a speed and direction into a velocity vector.
func Polar(speed, dir float64) cp.Vector {
	return cp.ForAngle(dir).Mult(speed)
}

// ClampToBox pins v inside bb.
func ClampToBox(bb cp.BB, v cp.Vector) cp.Vector {
	return cp.Vector{X: cp.Clamp(v.X, bb.L, bb.R), Y: cp.Clamp(v.Y, bb.B, bb.T)}
}
