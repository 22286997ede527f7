package engine

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/ecs"
)

const halfPi = math.Pi / 2

// View is where the camera looks, in scene coordinates.
type View struct {
	X, Y float64
	Zoom float64
}

// CameraTarget is what the scripts ask of the camera. The live View eases
// toward it each tick.
type CameraTarget struct {
	Target View
	Speed  float64
	// ShowHero makes the camera follow the hero.
	ShowHero bool
	// Subtarget is a second character kept in frame with the hero, or 0.
	Subtarget ecs.Entity
	// Absolute pins the camera to Target regardless of the hero.
	Absolute bool
}

// JumpCamera makes the next AdjustCamera snap instead of ease.
func (sc *Scene) JumpCamera() {
	sc.jumpCamera = true
}

// AdjustCamera moves the live view toward the camera target.
func (sc *Scene) AdjustCamera() {
	want := sc.desiredView()
	sc.Camera.Target = want

	k := sc.Camera.Speed * sc.StepSize
	if sc.jumpCamera || sc.Camera.Speed <= 0 || k >= 1 {
		sc.View = want
		sc.jumpCamera = false
		return
	}
	sc.View = View{
		X:    sc.View.X*(1-k) + want.X*k,
		Y:    sc.View.Y*(1-k) + want.Y*k,
		Zoom: sc.View.Zoom*(1-k) + want.Zoom*k,
	}
}

func (sc *Scene) desiredView() View {
	cam := sc.Camera
	if cam.Absolute {
		return cam.Target
	}
	want := cam.Target
	if want.Zoom <= 0 {
		want.Zoom = 1
	}
	halfW, halfH := sc.halfView(want.Zoom)

	if cam.ShowHero {
		hero := sc.HeroPosition()
		focus := hero
		if cam.Subtarget != 0 {
			if sub, ok := sc.Position(cam.Subtarget); ok {
				mid := hero.Lerp(sub, 0.5)
				inner := sc.Tuning().Camera.InnerMargin
				focus = cp.Vector{
					X: keepWithin(mid.X, hero.X, halfW-inner),
					Y: keepWithin(mid.Y, hero.Y, halfH-inner),
				}
			}
		}
		want.X, want.Y = focus.X, focus.Y
	}

	margin := sc.Tuning().Camera.Margin
	bounds := cp.BB{
		L: sc.Box.L + halfW - margin,
		R: sc.Box.R - halfW + margin,
		B: sc.Box.B + halfH - margin,
		T: sc.Box.T - halfH + margin,
	}
	want.X = clampOrCenter(want.X, bounds.L, bounds.R)
	want.Y = clampOrCenter(want.Y, bounds.B, bounds.T)
	return want
}

func (sc *Scene) halfView(zoom float64) (float64, float64) {
	c := sc.Tuning().Camera
	return c.ViewWidth / 2 / zoom, c.ViewHeight / 2 / zoom
}

// keepWithin moves v toward center until it is no further than reach away.
func keepWithin(v, center, reach float64) float64 {
	if reach < 0 {
		return center
	}
	return cp.Clamp(v, center-reach, center+reach)
}

// clampOrCenter clamps v into [lo, hi], or centers it when the range is empty.
func clampOrCenter(v, lo, hi float64) float64 {
	if lo > hi {
		return (lo + hi) / 2
	}
	return cp.Clamp(v, lo, hi)
}
