package engine

import "github.com/milk9111/scenescript/ecs/component"

// Input action names the hero reads.
const (
	ActionLeft  = "left"
	ActionRight = "right"
	ActionUp    = "up"
	ActionDown  = "down"
	ActionJump  = "jump"
)

type Sprite = component.Sprite

// SpriteFactory starts a named sprite's animation at scene time t.
type SpriteFactory interface {
	NewSprite(name string, t float64) Sprite
}

// Audio plays sounds attributed to a source. A new sound from a source
// interrupts the one it was already playing.
type Audio interface {
	PlayNamedSound(source any, name string)
	PlayOneOf(source any, names []string)
	// PlayMusic switches the background track. An empty path stops it.
	PlayMusic(path string)
}

type Input interface {
	// SignOf returns -1, 0 or 1 depending on which of the two actions is held.
	SignOf(neg, pos string) float64
	Pressed(name string) bool
	// Presses counts the presses of name since the last poll.
	Presses(name string) int
	// Pointer is the aim position in the active scene's coordinates.
	Pointer() (x, y float64)
}

// Clock reports monotonic time in seconds.
type Clock interface {
	Now() float64
}

// Kernel is what every scene shares: the collaborators and the tuning.
type Kernel struct {
	Audio     Audio
	Input     Input
	Sprites   SpriteFactory
	Clock     Clock
	Behaviors *Registry
	Tuning    Tuning
}
