package engine

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/ecs/component"
	"github.com/milk9111/scenescript/script"
)

const noScripts = `{}`

func TestSpeedEasing(t *testing.T) {
	tests := []struct {
		name            string
		p               float64
		easeIn, easeOut bool
		want            float64
	}{
		{"constant", 0.3, false, false, 10},
		{"ease_in", 0.25, true, false, 5},
		{"ease_out", 0.25, false, true, 15},
		{"both_peak", 0.5, true, true, 10 * math.Pi / 2},
		{"both_start", 0, true, true, 0},
		{"clamped", 2, true, false, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SpeedEasing(10, tc.p, tc.easeIn, tc.easeOut); !approx(got, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSpeedEasingCoversDistance(t *testing.T) {
	const n = 10000
	for _, flags := range [][2]bool{{false, false}, {true, false}, {false, true}, {true, true}} {
		var dist float64
		for i := 0; i < n; i++ {
			p := (float64(i) + 0.5) / n
			dist += SpeedEasing(1, p, flags[0], flags[1]) / n
		}
		if math.Abs(dist-1) > 1e-3 {
			t.Fatalf("easing %v covers %v instead of 1", flags, dist)
		}
	}
}

func TestMoveAlongAxis(t *testing.T) {
	h := newHarness(t, sceneDoc(`{
		"yard": {"characters": ["guard"], "actions": [
			{"type": "add", "name": "guard", "sprite": "Guard", "x": 0, "y": 0},
			{"type": "move", "name": "guard", "seconds": 1, "x": 100, "y": 0, "easeIn": true, "easeOut": true}
		]}
	}`), nil, nil)
	sc := h.scene()
	e := sc.MustCharacter("guard")

	h.run(0.5, 0.1)
	pos, _ := sc.Position(e)
	if pos.Y != 0 || pos.X <= 0 || pos.X >= 100 {
		t.Fatalf("expected guard part way along the x axis, got %v", pos)
	}

	h.run(0.7, 0.1)
	pos, _ = sc.Position(e)
	if pos.X != 100 || pos.Y != 0 {
		t.Fatalf("expected guard snapped to target, got %v", pos)
	}
	if m, _ := sc.Motion(e); m.Speed != 0 || m.ZSpeed != 0 {
		t.Fatalf("expected motion zeroed, got %+v", m)
	}
	if len(sc.Runners) != 0 {
		t.Fatalf("runner should finish with the move")
	}
}

func TestScriptedHeroMove(t *testing.T) {
	h := newHarness(t, sceneDoc(`{
		"yard": {"actions": [
			{"type": "move", "name": "hero", "seconds": 1, "x": 200, "y": 0},
			{"type": "wait", "seconds": null},
			{"type": "fight"}
		]}
	}`), nil, nil)
	sc := h.scene()

	if got := sc.Hero.State().Name(); got != "scripted" {
		t.Fatalf("expected scripted hero, got %s", got)
	}
	h.run(1.2, 0.1)
	if got := sc.Hero.State().Name(); got != "normal" {
		t.Fatalf("expected hero back to normal, got %s", got)
	}
	if pos := sc.HeroPosition(); pos.X != 200 || pos.Y != 0 {
		t.Fatalf("unexpected hero position %v", pos)
	}
	if sc.InFight != 1 {
		t.Fatalf("script should continue once the hero is released")
	}
}

func TestHeroJump(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, fakeSprites{"HeroJump": {0.875}})
	sc := h.scene()

	h.input.held[ActionJump] = true
	h.tick(0.1)
	h.input.held[ActionJump] = false
	if got := sc.Hero.State().Name(); got != "jump" {
		t.Fatalf("expected jump, got %s", got)
	}
	if !h.audio.played("JumpSound") {
		t.Fatalf("jump sound not played")
	}
	if sc.Hero.Body(sc).Name() != "HeroJump" {
		t.Fatalf("jump should draw its own sprite")
	}
	tr, _ := sc.Transform(sc.Hero.Entity)
	if tr.Z <= 0 {
		t.Fatalf("hero should be in the air, z=%v", tr.Z)
	}

	h.run(1, 0.1)
	if got := sc.Hero.State().Name(); got != "normal" {
		t.Fatalf("expected landing, got %s", got)
	}
	if tr.Z != 0 {
		t.Fatalf("expected hero on the ground, z=%v", tr.Z)
	}
	if sc.Hero.JumpCooldown <= sc.Time {
		t.Fatalf("jump cooldown not armed on landing")
	}
}

func TestHeroDiesAndSceneResets(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	h.tick(0.1)

	health, _ := sc.Health(sc.Hero.Entity)
	health.Damage = 5
	h.tick(0.1)
	if got := sc.Hero.State().Name(); got != "dying" {
		t.Fatalf("expected dying, got %s", got)
	}
	if health.ShowDamageUntil != -1 || !h.audio.played("HeroDying1") {
		t.Fatalf("dying should stop the flash and play a death sound")
	}

	h.tick(5)
	if h.scene() != sc {
		t.Fatalf("scene reset too early")
	}
	h.tick(6.5)
	if h.scene() == sc || h.scene().Name != "yard" {
		t.Fatalf("expected yard to be rebuilt")
	}
	if h.scene().Hero.State().Name() != "unstarted" {
		t.Fatalf("rebuilt scene should have a fresh hero")
	}
}

func TestHeroRunsWithInput(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	h.input.held[ActionRight] = true
	h.input.px = -500
	h.tick(0.1)
	h.tick(0.1)

	pos := sc.HeroPosition()
	if !approx(pos.X, 600*sc.Time) || pos.Y != 0 {
		t.Fatalf("expected hero to run right, got %v", pos)
	}
	if sc.Hero.Body(sc).Name() != "HeroRunningBackwards" {
		t.Fatalf("aiming left while running right should run backwards, got %s", sc.Hero.Body(sc).Name())
	}

	h.tick(5)
	if pos := sc.HeroPosition(); pos.X != sc.Box.R {
		t.Fatalf("hero should be clamped to the box, got %v", pos)
	}
}

func TestUpdateTimeClamp(t *testing.T) {
	k := newKernel(nil, nil)
	k.Tuning.Engine.MaxStep = 0.05
	h := newHarnessWith(t, sceneDoc(noScripts), k)
	sc := h.scene()

	h.tick(1)
	if !approx(sc.StepSize, 0.05) || !approx(sc.Time, 0.05) {
		t.Fatalf("expected a clamped step, got step=%v time=%v", sc.StepSize, sc.Time)
	}
	h.tick(0.02)
	if !approx(sc.StepSize, 0.02) || !approx(sc.Time, 0.07) {
		t.Fatalf("dropped time must not be caught up, got step=%v time=%v", sc.StepSize, sc.Time)
	}
}

func TestOffsetAFrameFrom(t *testing.T) {
	if got := OffsetAFrameFrom(10, 2); !approx(got, 10-1.0/60-2) {
		t.Fatalf("unexpected offset %v", got)
	}
}

func TestCamera(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	sc.Box = cp.BB{L: -1280, R: 1280, B: -360, T: 360}
	tr, _ := sc.Transform(sc.Hero.Entity)

	t.Run("clamped_to_box", func(t *testing.T) {
		tr.X = 1000
		sc.JumpCamera()
		sc.AdjustCamera()
		if sc.View.X != 640 || sc.View.Y != 0 {
			t.Fatalf("unexpected view %+v", sc.View)
		}
	})
	t.Run("eases", func(t *testing.T) {
		tr.X = 300
		sc.View = View{Zoom: 1}
		sc.Camera.Speed = 4
		sc.StepSize = 0.1
		sc.AdjustCamera()
		if !approx(sc.View.X, 120) {
			t.Fatalf("expected eased view at 120, got %v", sc.View.X)
		}
	})
	t.Run("snaps_without_speed", func(t *testing.T) {
		sc.Camera.Speed = 0
		sc.AdjustCamera()
		if sc.View.X != 300 {
			t.Fatalf("expected snap, got %v", sc.View.X)
		}
	})
	t.Run("subtarget", func(t *testing.T) {
		tr.X = 0
		boss := sc.AddCharacter(CharacterSpec{Name: "boss", Pos: cp.Vector{X: 1000}})
		sc.Camera.Subtarget = boss
		sc.JumpCamera()
		sc.AdjustCamera()
		if sc.View.X != 480 {
			t.Fatalf("hero should stay inside the inner margin, got %v", sc.View.X)
		}
		sc.Camera.Subtarget = 0
	})
	t.Run("absolute", func(t *testing.T) {
		sc.Camera.Absolute = true
		sc.Camera.Target = View{X: 5000, Y: 1, Zoom: 2}
		sc.JumpCamera()
		sc.AdjustCamera()
		if sc.View != sc.Camera.Target {
			t.Fatalf("absolute camera should ignore bounds, got %+v", sc.View)
		}
	})
}

func addTarget(sc *Scene) *component.Health {
	e := sc.AddCharacter(CharacterSpec{
		Name:   "target",
		Sprite: "Guard",
		Pos:    cp.Vector{X: 300},
		Shadow: &component.Shadow{RX: 40, RY: 20},
	})
	health, _ := sc.Health(e)
	return health
}

func TestBulletHitsEnemy(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	health := addTarget(sc)

	FireBullet(sc, BulletSpec{Height: 70, Speed: 1000, Friendly: true})
	h.tick(0.3)
	if health.Damage != 1 || !approx(health.ShowDamageUntil, sc.Time+0.1) {
		t.Fatalf("expected a hit, got %+v", health)
	}
	if len(sc.Bullets) != 0 {
		t.Fatalf("spent bullet should be dropped")
	}
	if !sc.Flashing(sc.MustCharacter("target")) {
		t.Fatalf("target should flash")
	}
}

func TestBulletHitsHero(t *testing.T) {
	tests := []struct {
		name    string
		heroZ   float64
		wantHit bool
	}{
		{"grounded", 0, true},
		{"above_bullet", 100, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, sceneDoc(noScripts), nil, nil)
			sc := h.scene()
			h.tick(0.1)
			tr, _ := sc.Transform(sc.Hero.Entity)
			tr.Z = tc.heroZ

			FireBullet(sc, BulletSpec{From: cp.Vector{X: 300}, Height: 70, Speed: 1000, Dir: math.Pi})
			h.tick(0.3)
			health, _ := sc.Health(sc.Hero.Entity)
			if hit := health.Damage == 1; hit != tc.wantHit {
				t.Fatalf("expected hit=%v, damage=%v", tc.wantHit, health.Damage)
			}
			if tc.wantHit != h.audio.played("HeroHit1") {
				t.Fatalf("hit sound mismatch")
			}
		})
	}
}

func TestDeadCharactersIgnoreBullets(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	health := addTarget(sc)
	health.ShowDamageUntil = -1

	FireBullet(sc, BulletSpec{Speed: 1000, Friendly: true})
	h.tick(0.3)
	if health.Damage != 0 || len(sc.Bullets) != 1 {
		t.Fatalf("dead characters must not be hit")
	}
}

func TestBulletsSortedAndCulled(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	for _, x := range []float64{50, -20, 10} {
		FireBullet(sc, BulletSpec{From: cp.Vector{X: x, Y: 300}})
	}
	FireBullet(sc, BulletSpec{From: cp.Vector{X: 600, Y: 300}, Speed: 1000})
	h.tick(0.3)

	if len(sc.Bullets) != 3 {
		t.Fatalf("expected the fast bullet culled, got %d bullets", len(sc.Bullets))
	}
	for i, want := range []float64{-20, 10, 50} {
		if sc.Bullets[i].Pos.X != want {
			t.Fatalf("bullets not sorted by x: %v", sc.Bullets[i].Pos)
		}
	}

	h.tick(5)
	if len(sc.Bullets) != 0 {
		t.Fatalf("expected old bullets to expire")
	}
}

func TestKillOff(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, fakeSprites{"GuardDie": {0.5}})
	sc := h.scene()
	addTarget(sc)
	e := sc.MustCharacter("target")
	m, _ := sc.Motion(e)
	m.Speed = 50
	sc.InFight = 1
	sc.Music = "fight.ogg"

	step := KillOff(sc, e, "GuardDie", "Thud")
	if sc.InFight != 0 || sc.Music != "" || len(h.audio.music) != 1 || h.audio.music[0] != "" {
		t.Fatalf("last enemy down should end the fight music")
	}
	if m.Speed != 0 || !h.audio.played("Thud") {
		t.Fatalf("dying enemy should stop and cry out")
	}
	if step.Step(sc) != Running {
		t.Fatalf("corpse should wait for its animation")
	}

	h.tick(0.6)
	if step.Step(sc) != Finished {
		t.Fatalf("expected death sequence to finish")
	}
	if _, ok := sc.Character("target"); ok {
		t.Fatalf("corpse should be removed")
	}
	if len(sc.Remnants) != 1 || sc.Remnants[0].Name != "target" || sc.Remnants[0].Position.X != 300 {
		t.Fatalf("unexpected remnants %+v", sc.Remnants)
	}
}

func TestKillOffFloorsFight(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	addTarget(sc)
	KillOff(sc, sc.MustCharacter("target"), "GuardDie", "Thud")
	if sc.InFight != 0 {
		t.Fatalf("in-fight counter must not go negative, got %d", sc.InFight)
	}
}

func TestRemnantCap(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	sc.kernel.Tuning.Engine.Remnants = 2
	for _, name := range []string{"a", "b", "c"} {
		sc.addRemnant(Remnant{Name: name})
	}
	if len(sc.Remnants) != 2 || sc.Remnants[0].Name != "b" || sc.Remnants[1].Name != "c" {
		t.Fatalf("unexpected remnants %+v", sc.Remnants)
	}
}

func TestNameOf(t *testing.T) {
	h := newHarness(t, sceneDoc(noScripts), nil, nil)
	sc := h.scene()
	addTarget(sc)
	e := sc.MustCharacter("target")
	if got := sc.NameOf(e); got != "target" {
		t.Fatalf("NameOf = %q, want target", got)
	}
	if got := sc.NameOf(sc.Hero.Entity); got != script.HeroName {
		t.Fatalf("hero name = %q, want %q", got, script.HeroName)
	}
}
