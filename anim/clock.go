// Package anim keeps sprite animation clocks in scene time.
package anim

import "fmt"

// Clock tracks which frame of a sprite is showing. It never looks at a wall
// clock: callers pass scene time to Update and Reset.
type Clock struct {
	name        string
	frameTimes  []float64
	targetLoops int
	currentLoop int
	frame       int
	// nextFrame is the scene time of the next frame change, or -1 once the
	// last frame of the last loop is showing.
	nextFrame float64
}

// NewClock starts a clock at scene time t. loops is the number of extra
// passes through the frames; -1 repeats forever.
func NewClock(name string, frameTimes []float64, loops int, t float64) *Clock {
	if len(frameTimes) == 0 {
		panic(fmt.Sprintf("anim: sprite %q has no frames", name))
	}
	c := &Clock{name: name, frameTimes: frameTimes, targetLoops: loops}
	c.Reset(t)
	return c
}

func (c *Clock) Name() string {
	return c.name
}

func (c *Clock) Frame() int {
	return c.frame
}

func (c *Clock) Frames() int {
	return len(c.frameTimes)
}

// Finished reports whether the animation reached its final frame. Clocks
// that loop forever never finish.
func (c *Clock) Finished() bool {
	return c.nextFrame == -1
}

func (c *Clock) Reset(t float64) {
	c.currentLoop = 0
	c.frame = 0
	c.nextFrame = t + c.frameTimes[0]
}

// Update advances the clock to t, stepping through as many frames as have
// elapsed. It reports whether the frame changed, including the change into
// the finished state.
func (c *Clock) Update(t float64) bool {
	changed := false
	for c.nextFrame != -1 && c.nextFrame <= t {
		changed = true
		next := c.frame + 1
		if next < len(c.frameTimes) {
			c.frame = next
			c.nextFrame = t + c.frameTimes[next]
			continue
		}
		// targetLoops of -1 never equals currentLoop, so infinite clocks wrap.
		if c.currentLoop == c.targetLoops {
			c.nextFrame = -1
			continue
		}
		c.currentLoop++
		c.frame = 0
		c.nextFrame = t + c.frameTimes[0]
	}
	return changed
}

func (c *Clock) String() string {
	return "Sprite/" + c.name
}
