package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/engine"
)

func TestGridCorners(t *testing.T) {
	g := grid{box: cp.BB{L: -640, B: -360, R: 640, T: 360}, w: 81, h: 42}
	tests := []struct {
		name     string
		x, y     float64
		col, row int
	}{
		{"top_left", -640, 360, 0, 0},
		{"bottom_right", 640, -360, 80, 40},
		{"center", 0, 0, 40, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, row := g.cell(tc.x, tc.y)
			if col != tc.col || row != tc.row {
				t.Fatalf("cell(%v, %v) = (%d, %d), want (%d, %d)", tc.x, tc.y, col, row, tc.col, tc.row)
			}
			if !g.inside(col, row) {
				t.Fatalf("(%d, %d) should be inside", col, row)
			}
		})
	}
	if g.inside(0, 41) {
		t.Fatalf("the status row is not part of the scene")
	}
}

func TestGridSceneRoundTrip(t *testing.T) {
	g := grid{box: cp.BB{L: -640, B: -360, R: 640, T: 360}, w: 81, h: 42}
	for _, c := range [][2]int{{0, 0}, {10, 5}, {79, 39}} {
		x, y := g.scene(c[0], c[1])
		col, row := g.cell(x, y)
		if col != c[0] || row != c[1] {
			t.Fatalf("round trip of %v gave (%d, %d)", c, col, row)
		}
	}
}

func TestGlyphOf(t *testing.T) {
	tests := map[string]rune{"guard": 'G', "big bad": 'B', "_2nd": '2', "": '?'}
	for name, want := range tests {
		if got := glyphOf(name); got != want {
			t.Fatalf("glyphOf(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestActionFor(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), engine.ActionLeft, true},
		{tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), engine.ActionRight, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), engine.ActionJump, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "", false},
	}
	for _, tc := range tests {
		got, ok := actionFor(tc.ev)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("actionFor(%v) = %q, %v", tc.ev.Name(), got, ok)
		}
	}
}

func TestKeyHoldExpires(t *testing.T) {
	in := newKeyInput()
	in.press(engine.ActionRight, 1)
	in.advance(1.1)
	if in.SignOf(engine.ActionLeft, engine.ActionRight) != 1 {
		t.Fatalf("right should still be held")
	}
	in.advance(1 + holdTime + 0.01)
	if in.Pressed(engine.ActionRight) {
		t.Fatalf("hold should expire without repeats")
	}
	if n := in.Presses(engine.ActionRight); n != 1 {
		t.Fatalf("expected one press, got %d", n)
	}
	if n := in.Presses(engine.ActionRight); n != 0 {
		t.Fatalf("presses should drain, got %d", n)
	}
}

func TestPitchOf(t *testing.T) {
	if pitchOf("Thud") != pitchOf("Thud") {
		t.Fatalf("pitch should be stable")
	}
	for _, name := range []string{"", "Thud", "BigBadGuyHit1"} {
		p := pitchOf(name)
		if p < lowestPitch || p >= lowestPitch+pitchSpread {
			t.Fatalf("pitch %v out of range", p)
		}
	}
}
