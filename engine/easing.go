package engine

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/script"
)

// SpeedEasing scales a peak speed by progress p through a move. Easing both
// ways traces a half sine whose area matches the constant speed.
func SpeedEasing(speed, p float64, easeIn, easeOut bool) float64 {
	p = cp.Clamp01(p)
	switch {
	case easeIn && easeOut:
		return speed * math.Sin(p*math.Pi) * math.Pi / 2
	case easeIn:
		return speed * 2 * p
	case easeOut:
		return speed * 2 * (1 - p)
	}
	return speed
}

// moveStep drives a character to a target by setting its motion each tick
// and lets the integrator do the moving. It snaps to the target at the end.
type moveStep struct {
	e               ecs.Entity
	start, seconds  float64
	target          cp.Vector
	targetZ         float64
	speed, zSpeed   float64
	easeIn, easeOut bool
}

func newMoveStep(sc *Scene, e ecs.Entity, a *script.Move) *moveStep {
	tr, _ := sc.Transform(e)
	from := cp.Vector{X: tr.X, Y: tr.Y}

	delta := cp.Vector{X: a.X, Y: a.Y}
	if a.Absolute {
		delta = sc.ToLocal(delta).Sub(from)
	}

	m := &moveStep{
		e:       e,
		start:   sc.Time,
		seconds: a.Seconds,
		target:  from.Add(delta),
		targetZ: tr.Z + a.Z,
		speed:   common.Magnitude(delta.X, delta.Y, 0) / a.Seconds,
		zSpeed:  a.Z / a.Seconds,
		easeIn:  a.EaseIn,
		easeOut: a.EaseOut,
	}
	if delta.X != 0 || delta.Y != 0 {
		if motion, ok := sc.Motion(e); ok {
			motion.Direction = common.Arctan(delta.Y, delta.X)
		}
	}
	return m
}

func (m *moveStep) Step(sc *Scene) Status {
	tr, ok := sc.Transform(m.e)
	if !ok {
		return Finished
	}
	motion, _ := sc.Motion(m.e)

	p := (sc.Time - m.start) / m.seconds
	if p < 1 {
		motion.Speed = SpeedEasing(m.speed, p, m.easeIn, m.easeOut)
		motion.ZSpeed = SpeedEasing(m.zSpeed, p, m.easeIn, m.easeOut)
		return Running
	}
	tr.X, tr.Y, tr.Z = m.target.X, m.target.Y, m.targetZ
	motion.Speed = 0
	motion.ZSpeed = 0
	return Finished
}
