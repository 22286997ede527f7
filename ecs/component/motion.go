package component

// Motion is polar per-second movement. Scripts, input and AI all steer a
// character by writing Speed, Direction and ZSpeed; the scene integrates it.
type Motion struct {
	Speed     float64
	Direction float64
	ZSpeed    float64
}

var MotionComponent = NewComponent[Motion]()
