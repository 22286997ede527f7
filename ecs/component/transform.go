package component

// Transform is a character's scene-local position. Z is the height above the
// ground plane and only affects drawing and jump arcs.
type Transform struct {
	X float64
	Y float64
	Z float64
}

var TransformComponent = NewComponent[Transform]()
