package engine

import (
	"math"
	"testing"

	"github.com/milk9111/scenescript/anim"
	"github.com/milk9111/scenescript/script"
)

type fakeClock struct {
	now float64
}

func (c *fakeClock) Now() float64 {
	return c.now
}

type fakeAudio struct {
	sounds []string
	music  []string
}

func (a *fakeAudio) PlayNamedSound(_ any, name string) {
	a.sounds = append(a.sounds, name)
}

func (a *fakeAudio) PlayOneOf(_ any, names []string) {
	a.sounds = append(a.sounds, names[0])
}

func (a *fakeAudio) PlayMusic(path string) {
	a.music = append(a.music, path)
}

func (a *fakeAudio) played(name string) bool {
	for _, s := range a.sounds {
		if s == name {
			return true
		}
	}
	return false
}

type fakeInput struct {
	held   map[string]bool
	px, py float64
}

func (in *fakeInput) SignOf(neg, pos string) float64 {
	var s float64
	if in.held[neg] {
		s--
	}
	if in.held[pos] {
		s++
	}
	return s
}

func (in *fakeInput) Pressed(name string) bool {
	return in.held[name]
}

func (in *fakeInput) Presses(string) int {
	return 0
}

func (in *fakeInput) Pointer() (float64, float64) {
	return in.px, in.py
}

// fakeSprites plays every sprite once. Sprites without listed frame times
// get a single half-second frame.
type fakeSprites map[string][]float64

func (f fakeSprites) NewSprite(name string, t float64) Sprite {
	frames, ok := f[name]
	if !ok {
		frames = []float64{0.5}
	}
	return anim.NewClock(name, frames, 0, t)
}

type harness struct {
	t      *testing.T
	world  *World
	clock  *fakeClock
	audio  *fakeAudio
	input  *fakeInput
	kernel *Kernel
}

func newKernel(reg *Registry, sprites fakeSprites) *Kernel {
	tuning := DefaultTuning()
	tuning.Engine.MaxStep = 100
	return &Kernel{
		Audio:     &fakeAudio{},
		Input:     &fakeInput{held: make(map[string]bool)},
		Sprites:   sprites,
		Clock:     &fakeClock{},
		Behaviors: reg,
		Tuning:    tuning,
	}
}

func newHarness(t *testing.T, doc string, reg *Registry, sprites fakeSprites) *harness {
	t.Helper()
	return newHarnessWith(t, doc, newKernel(reg, sprites))
}

func newHarnessWith(t *testing.T, doc string, k *Kernel) *harness {
	t.Helper()
	var states script.StateSet
	if k.Behaviors != nil {
		states = k.Behaviors
	}
	d, err := script.Load([]byte(doc), script.Options{States: states})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return &harness{
		t:      t,
		world:  NewWorld(d, k),
		clock:  k.Clock.(*fakeClock),
		audio:  k.Audio.(*fakeAudio),
		input:  k.Input.(*fakeInput),
		kernel: k,
	}
}

func (h *harness) scene() *Scene {
	return h.world.Active()
}

func (h *harness) tick(dt float64) {
	h.clock.now += dt
	h.world.Update()
}

func (h *harness) run(seconds, dt float64) {
	for end := h.clock.now + seconds; h.clock.now < end-1e-9; {
		h.tick(dt)
	}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// sceneDoc wraps scripts in a one-scene document. The scene box spans
// -640..640 by -360..360.
func sceneDoc(scripts string) string {
	return `{
		"assets": [
			{"type": "animated", "name": "Guard", "src": "guard.png"},
			{"type": "animated", "name": "GuardDie", "src": "guard_die.png"},
			{"type": "audio", "name": "Thud", "src": "thud.wav"}
		],
		"scenes": {
			"yard": {"location": {"x": 0, "y": 0, "width": 640, "height": 360}, "hero health": 5}
		},
		"scripts": ` + scripts + `,
		"opening scene": "yard"
	}`
}
