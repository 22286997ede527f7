package component

// Sprite is an animation handle owned by the render collaborator.
type Sprite interface {
	Name() string
	// Update advances the animation to scene time t and reports whether the
	// visible frame changed.
	Update(t float64) bool
	Finished() bool
	Reset(t float64)
	Frame() int
}

type Appearance struct {
	Sprite Sprite
	Mirror bool
	Hidden bool
}

var AppearanceComponent = NewComponent[Appearance]()
