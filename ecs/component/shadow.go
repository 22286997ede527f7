package component

// Shadow is the ground ellipse under a character. Only characters with a
// shadow take part in collision.
type Shadow struct {
	RX float64
	RY float64
}

var ShadowComponent = NewComponent[Shadow]()
