package anim

import (
	"testing"

	"github.com/milk9111/scenescript/prefabs"
	"github.com/milk9111/scenescript/script"
)

func TestClockPlaysOnce(t *testing.T) {
	c := NewClock("Jump", []float64{0.25, 0.25, 0.5}, 0, 10)

	if c.Update(10.1) {
		t.Fatalf("frame should not change before its time")
	}
	if !c.Update(10.25) || c.Frame() != 1 {
		t.Fatalf("expected frame 1, got %d", c.Frame())
	}
	if c.Finished() {
		t.Fatalf("finished too early")
	}
	// frame times count from the update that showed the frame
	c.Update(20)
	if c.Finished() || c.Frame() != 2 {
		t.Fatalf("expected last frame still showing, got frame %d", c.Frame())
	}
	c.Update(20.5)
	if !c.Finished() || c.Frame() != 2 {
		t.Fatalf("expected finished on last frame, got frame %d finished=%v", c.Frame(), c.Finished())
	}
	if c.Update(30) {
		t.Fatalf("finished clocks do not change")
	}
}

func TestClockLoops(t *testing.T) {
	tests := []struct {
		name      string
		loops     int
		at        float64
		wantFrame int
		finished  bool
	}{
		{"first_pass", 1, 0.1875, 1, false},
		{"second_pass", 1, 0.3125, 0, false},
		{"done_after_two_passes", 1, 0.5, 1, true},
		{"forever", -1, 100.0625, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewClock("Cage", []float64{0.125, 0.125}, tc.loops, 0)
			for now := 0.0625; now <= tc.at; now += 0.0625 {
				c.Update(now)
			}
			if c.Frame() != tc.wantFrame || c.Finished() != tc.finished {
				t.Fatalf("expected frame %d finished=%v, got frame %d finished=%v",
					tc.wantFrame, tc.finished, c.Frame(), c.Finished())
			}
		})
	}
}

func TestClockReset(t *testing.T) {
	c := NewClock("Hit", []float64{0.1}, 0, 0)
	c.Update(1)
	if !c.Finished() {
		t.Fatalf("expected finished")
	}
	c.Reset(5)
	if c.Finished() || c.Frame() != 0 {
		t.Fatalf("reset should restart the clock")
	}
	if c.Update(5.05) {
		t.Fatalf("reset clock should measure from the reset time")
	}
}

func TestLibrary(t *testing.T) {
	spec := prefabs.SpritesSpec{
		DefaultFrameTime: 0.2,
		Sprites: map[string]prefabs.SpriteDefSpec{
			"Run":  {Frames: 4, FrameTime: 0.1, Loops: -1},
			"Dead": {FrameTimes: []float64{0.1, 1}},
		},
	}
	doc := &script.Document{Assets: []script.Asset{
		{Name: "Run", Kind: script.AssetAnimated, Source: "run.png"},
		{Name: "Flag", Kind: script.AssetAnimated, Source: "flag.png", Loops: true},
		{Name: "Dead", Kind: script.AssetAudio, Source: "dead.wav"},
	}}
	lib := NewLibrary(spec, doc)

	run, ok := lib.Definition("Run")
	if !ok || len(run.FrameTimes) != 4 || run.Source != "run.png" || run.Loops != -1 {
		t.Fatalf("unexpected Run definition %+v", run)
	}
	flag, ok := lib.Definition("Flag")
	if !ok || flag.Loops != -1 || len(flag.FrameTimes) != 1 || flag.FrameTimes[0] != 0.2 {
		t.Fatalf("unexpected Flag definition %+v", flag)
	}
	if dead, _ := lib.Definition("Dead"); dead.Source != "" {
		t.Fatalf("sound assets must not attach to sprites")
	}
	if _, ok := lib.Definition("Missing"); ok {
		t.Fatalf("unknown sprite reported as declared")
	}

	s := lib.NewSprite("Missing", 3)
	s.Update(4)
	if !s.Finished() || s.Name() != "Missing" {
		t.Fatalf("fallback sprite should finish after one frame")
	}
}
