package component

// Limb is an extra sprite drawn relative to its character, e.g. a rotating arm.
type Limb struct {
	Sprite   Sprite
	OffsetX  float64
	OffsetZ  float64
	Rotation float64
}

// RenderOverride replaces a character's default single-sprite drawing.
type RenderOverride struct {
	Limbs []Limb
}

var RenderOverrideComponent = NewComponent[RenderOverride]()
