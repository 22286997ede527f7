package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/scenescript/engine"
)

// holdTime is how long a key counts as held after its last press. Terminals
// report presses and repeats but never releases.
const holdTime = 0.2

type keyInput struct {
	lastPress map[string]float64
	presses   map[string]int
	now       float64
	pointerX  float64
	pointerY  float64
}

func newKeyInput() *keyInput {
	return &keyInput{
		lastPress: make(map[string]float64),
		presses:   make(map[string]int),
	}
}

// actionFor maps a terminal key to an input action.
func actionFor(ev *tcell.EventKey) (string, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return engine.ActionLeft, true
	case tcell.KeyRight:
		return engine.ActionRight, true
	case tcell.KeyUp:
		return engine.ActionUp, true
	case tcell.KeyDown:
		return engine.ActionDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return engine.ActionLeft, true
		case 'd', 'D':
			return engine.ActionRight, true
		case 'w', 'W':
			return engine.ActionUp, true
		case 's', 'S':
			return engine.ActionDown, true
		case ' ':
			return engine.ActionJump, true
		}
	}
	return "", false
}

func (in *keyInput) press(action string, now float64) {
	in.lastPress[action] = now
	in.presses[action]++
}

// advance moves the input's notion of time forward.
func (in *keyInput) advance(now float64) {
	in.now = now
}

func (in *keyInput) aim(x, y float64) {
	in.pointerX, in.pointerY = x, y
}

func (in *keyInput) Pressed(name string) bool {
	t, ok := in.lastPress[name]
	return ok && in.now-t <= holdTime
}

func (in *keyInput) SignOf(neg, pos string) float64 {
	n, p := in.Pressed(neg), in.Pressed(pos)
	switch {
	case n == p:
		return 0
	case n:
		return -1
	default:
		return 1
	}
}

func (in *keyInput) Presses(name string) int {
	n := in.presses[name]
	in.presses[name] = 0
	return n
}

func (in *keyInput) Pointer() (float64, float64) {
	return in.pointerX, in.pointerY
}
