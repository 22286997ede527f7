package main

import (
	"math"
	"strings"
	"testing"

	"github.com/milk9111/scenescript/engine"
)

func TestViewportRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		vp   viewport
	}{
		{"origin", viewport{view: engine.View{Zoom: 1}, w: 1280, h: 720}},
		{"offset_zoomed", viewport{view: engine.View{X: 300, Y: -120, Zoom: 0.8}, w: 1280, h: 720}},
		{"zero_zoom", viewport{view: engine.View{X: 5, Y: 5}, w: 640, h: 360}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sx, sy := tc.vp.toScreen(123, -45, 0)
			x, y := tc.vp.toScene(sx, sy)
			if math.Abs(x-123) > 1e-9 || math.Abs(y+45) > 1e-9 {
				t.Fatalf("round trip gave (%v, %v)", x, y)
			}
		})
	}
}

func TestViewportOrientation(t *testing.T) {
	vp := viewport{view: engine.View{X: 100, Y: 50, Zoom: 2}, w: 1280, h: 720}
	if x, y := vp.toScreen(100, 50, 0); x != 640 || y != 360 {
		t.Fatalf("view center should map to screen center, got (%v, %v)", x, y)
	}
	_, ground := vp.toScreen(100, 50, 0)
	_, lifted := vp.toScreen(100, 50, 10)
	if lifted != ground-20 {
		t.Fatalf("height should move up the screen by zoom, got %v vs %v", lifted, ground)
	}
	_, above := vp.toScreen(100, 60, 0)
	if above >= ground {
		t.Fatalf("larger y should be higher on screen")
	}
}

func TestSignOf(t *testing.T) {
	tests := []struct {
		neg, pos bool
		want     float64
	}{
		{false, false, 0},
		{true, true, 0},
		{true, false, -1},
		{false, true, 1},
	}
	for _, tc := range tests {
		if got := signOf(tc.neg, tc.pos); got != tc.want {
			t.Fatalf("signOf(%v, %v) = %v, want %v", tc.neg, tc.pos, got, tc.want)
		}
	}
}

func TestInputPressesDrain(t *testing.T) {
	in := NewInput()
	in.presses[engine.ActionJump] = 2
	if n := in.Presses(engine.ActionJump); n != 2 {
		t.Fatalf("expected 2 presses, got %d", n)
	}
	if n := in.Presses(engine.ActionJump); n != 0 {
		t.Fatalf("presses should drain, got %d", n)
	}
	in.held[engine.ActionLeft] = true
	if in.SignOf(engine.ActionLeft, engine.ActionRight) != -1 {
		t.Fatalf("left held should read -1")
	}
}

func TestDecodeSettings(t *testing.T) {
	def := Settings{Volume: 0.8}
	tests := []struct {
		name    string
		data    string
		want    Settings
		wantErr bool
	}{
		{"overlay", "fullscreen: true\nlast_scene: cell\n", Settings{Volume: 0.8, Fullscreen: true, LastScene: "cell"}, false},
		{"clamp", "volume: 3\n", Settings{Volume: 1}, false},
		{"negative", "volume: -1\n", Settings{Volume: 0}, false},
		{"garbage", "volume: [", def, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := decodeSettings([]byte(tc.data), def)
			if (err != nil) != tc.wantErr {
				t.Fatalf("unexpected error state: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSettingsWithoutStorage(t *testing.T) {
	st := &settingsStore{Settings: Settings{Volume: 0.5}}
	if err := st.Save(); err != nil {
		t.Fatalf("save without a manager should be a no-op: %v", err)
	}
	if err := st.load(); err != nil {
		t.Fatalf("load without a manager should be a no-op: %v", err)
	}
	if st.Volume != 0.5 {
		t.Fatalf("settings changed: %+v", st.Settings)
	}
}

func TestWrapLines(t *testing.T) {
	lines := wrapLines("scripts.yard.actions[2].seconds is supposed to be a number\nsecond line", 20)
	for _, l := range lines {
		if len(l) > 20 {
			t.Fatalf("line too long: %q", l)
		}
	}
	joined := strings.Join(lines, " ")
	if !strings.Contains(joined, "second line") || !strings.HasPrefix(joined, "scripts.yard.actions") {
		t.Fatalf("unexpected wrap %q", lines)
	}
}
