package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/scenescript/engine"
)

const stickDeadzone = 0.3

var keyBindings = map[string][]ebiten.Key{
	engine.ActionLeft:  {ebiten.KeyA, ebiten.KeyArrowLeft},
	engine.ActionRight: {ebiten.KeyD, ebiten.KeyArrowRight},
	engine.ActionUp:    {ebiten.KeyW, ebiten.KeyArrowUp},
	engine.ActionDown:  {ebiten.KeyS, ebiten.KeyArrowDown},
	engine.ActionJump:  {ebiten.KeySpace},
}

// Input polls the keyboard, the first gamepad and the mouse once per frame
// and answers the engine's queries from that snapshot.
type Input struct {
	held     map[string]bool
	presses  map[string]int
	pointerX float64
	pointerY float64
}

func NewInput() *Input {
	return &Input{
		held:    make(map[string]bool),
		presses: make(map[string]int),
	}
}

// Update takes the frame's snapshot. vp maps the cursor into the active
// scene.
func (in *Input) Update(vp viewport) {
	for action, keys := range keyBindings {
		held := false
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				held = true
			}
			if inpututil.IsKeyJustPressed(k) {
				in.presses[action]++
			}
		}
		in.held[action] = held
	}

	if ids := ebiten.GamepadIDs(); len(ids) > 0 {
		id := ids[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		in.held[engine.ActionLeft] = in.held[engine.ActionLeft] || lx < -stickDeadzone
		in.held[engine.ActionRight] = in.held[engine.ActionRight] || lx > stickDeadzone
		in.held[engine.ActionUp] = in.held[engine.ActionUp] || ly < -stickDeadzone
		in.held[engine.ActionDown] = in.held[engine.ActionDown] || ly > stickDeadzone
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			in.held[engine.ActionJump] = true
		}
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom) {
			in.presses[engine.ActionJump]++
		}
	}

	mx, my := ebiten.CursorPosition()
	in.pointerX, in.pointerY = vp.toScene(float64(mx), float64(my))
}

func (in *Input) SignOf(neg, pos string) float64 {
	return signOf(in.held[neg], in.held[pos])
}

func (in *Input) Pressed(name string) bool {
	return in.held[name]
}

func (in *Input) Presses(name string) int {
	n := in.presses[name]
	in.presses[name] = 0
	return n
}

func (in *Input) Pointer() (float64, float64) {
	return in.pointerX, in.pointerY
}

func signOf(neg, pos bool) float64 {
	switch {
	case neg == pos:
		return 0
	case neg:
		return -1
	default:
		return 1
	}
}
