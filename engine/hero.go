package engine

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/ecs/component"
	"github.com/milk9111/scenescript/script"
)

// HeroState is one state of the hero's machine. Step runs once per tick
// while the state is installed.
type HeroState interface {
	Name() string
	Step(sc *Scene)
}

// Exiter is implemented by states that clean up when replaced.
type Exiter interface {
	Exit(sc *Scene)
}

// SpriteRenderer is implemented by states that draw the hero as a single
// sprite instead of the head, arm and body composition.
type SpriteRenderer interface {
	Sprite() Sprite
}

// HeroStateBuilder constructs the next state once the old one has exited.
type HeroStateBuilder func(h *Hero, sc *Scene) HeroState

type Hero struct {
	Entity       ecs.Entity
	ArmDirection float64
	JumpCooldown float64
	// ShootCooldown is the earliest scene time of the next shot.
	ShootCooldown float64
	// Freed heroes may leave the scene box.
	Freed bool

	state HeroState
	head  Sprite
	// headOverride plays once in place of the head, then reverts.
	headOverride    Sprite
	arm             Sprite
	bodyStatic      Sprite
	bodyRunning     Sprite
	bodyRunningBack Sprite
}

func newHero(sc *Scene) *Hero {
	t := sc.Tuning().Hero
	h := &Hero{
		state:           unstartedState{},
		head:            sc.NewSprite(t.Sprites.Head),
		arm:             sc.NewSprite(t.Sprites.Arm),
		bodyStatic:      sc.NewSprite(t.Sprites.Static),
		bodyRunning:     sc.NewSprite(t.Sprites.Running),
		bodyRunningBack: sc.NewSprite(t.Sprites.RunningBackward),
	}
	h.Entity = sc.AddCharacter(CharacterSpec{
		Name:   script.HeroName,
		Shadow: &component.Shadow{RX: t.ShadowX, RY: t.ShadowY},
	})
	return h
}

func (h *Hero) State() HeroState {
	return h.state
}

// ChangeState exits the current state, installs the one build returns and
// steps it once, so the change takes effect this tick.
func (h *Hero) ChangeState(sc *Scene, build HeroStateBuilder) {
	if ex, ok := h.state.(Exiter); ok {
		ex.Exit(sc)
	}
	next := build(h, sc)
	h.state = next
	next.Step(sc)
}

// Script hands the hero to step until it finishes, then returns control to
// the player. The returned func reports when the hero is free again.
func (h *Hero) Script(sc *Scene, step Step) func() bool {
	st := &scriptedState{step: step}
	h.ChangeState(sc, func(*Hero, *Scene) HeroState { return st })
	return func() bool { return st.finished || h.state != HeroState(st) }
}

// OverrideHead shows the named sprite as the hero's head until it finishes.
func (h *Hero) OverrideHead(sc *Scene, name string) {
	h.headOverride = sc.NewSprite(name)
}

// Head is the sprite currently drawn as the hero's head.
func (h *Hero) Head() Sprite {
	if h.headOverride != nil {
		return h.headOverride
	}
	return h.head
}

func (h *Hero) Arm() Sprite {
	return h.arm
}

// Body picks the body sprite for the hero's current motion: the state's own
// sprite if it has one, otherwise static, running or running backwards.
func (h *Hero) Body(sc *Scene) Sprite {
	if r, ok := h.state.(SpriteRenderer); ok {
		return r.Sprite()
	}
	m, _ := sc.Motion(h.Entity)
	app, _ := sc.Appearance(h.Entity)
	if m == nil || m.Speed == 0 {
		return h.bodyStatic
	}
	mirror := app != nil && app.Mirror
	if m.Direction != halfPi && mirror != common.DirIsLeft(m.Direction) {
		return h.bodyRunningBack
	}
	return h.bodyRunning
}

// OwnSprite reports whether the current state draws the hero by itself.
func (h *Hero) OwnSprite() bool {
	_, ok := h.state.(SpriteRenderer)
	return ok
}

func (h *Hero) update(sc *Scene) {
	t := sc.Time
	h.head.Update(t)
	h.arm.Update(t)
	h.bodyStatic.Update(t)
	h.bodyRunning.Update(t)
	h.bodyRunningBack.Update(t)
	if h.headOverride != nil {
		h.headOverride.Update(t)
		if h.headOverride.Finished() {
			h.headOverride = nil
		}
	}

	tr, _ := sc.Transform(h.Entity)
	px, py := sc.Input().Pointer()
	h.ArmDirection = common.Arctan(py-(tr.Y+sc.Tuning().Hero.BulletHeight), px-tr.X)

	h.state.Step(sc)

	m, _ := sc.Motion(h.Entity)
	integrate(tr, m, sc.StepSize)
	if !h.Freed {
		pos := common.ClampToBox(sc.Box, cp.Vector{X: tr.X, Y: tr.Y})
		tr.X, tr.Y = pos.X, pos.Y
	}
}

func (h *Hero) setMirror(sc *Scene, dir float64) {
	if app, ok := sc.Appearance(h.Entity); ok {
		app.Mirror = common.DirIsLeft(dir)
	}
}

type unstartedState struct{}

func (unstartedState) Name() string { return "unstarted" }

func (unstartedState) Step(sc *Scene) {
	sc.Hero.ChangeState(sc, newNormalState)
}

type normalState struct {
	h *Hero
}

func newNormalState(h *Hero, _ *Scene) HeroState {
	return normalState{h: h}
}

func (normalState) Name() string { return "normal" }

func (s normalState) Step(sc *Scene) {
	h := s.h
	t := sc.Tuning().Hero
	health, _ := sc.Health(h.Entity)
	if health.Damage >= sc.Info.HeroHealth {
		h.ChangeState(sc, newDyingState)
		return
	}

	in := sc.Input()
	m, _ := sc.Motion(h.Entity)
	dx := in.SignOf(ActionLeft, ActionRight)
	dy := in.SignOf(ActionDown, ActionUp)
	if dx != 0 || dy != 0 {
		m.Direction = common.Arctan(dy, dx)
		m.Speed = t.Speed
	} else {
		m.Speed = 0
	}

	if sc.Time >= h.JumpCooldown && in.Pressed(ActionJump) {
		h.ChangeState(sc, newJumpState)
		return
	}

	h.setMirror(sc, h.ArmDirection)

	if sc.InFight > 0 && sc.Time >= h.ShootCooldown {
		h.ShootCooldown = sc.Time + t.ShootCooldown
		FireBullet(sc, BulletSpec{
			From:      sc.HeroPosition(),
			Height:    t.BulletHeight,
			ArmLength: sc.Tuning().armLength(),
			ArmDir:    h.ArmDirection,
			Speed:     t.BulletSpeed,
			Friendly:  true,
			Dir:       h.ArmDirection,
		})
	}
}

type jumpState struct {
	h      *Hero
	start  float64
	sprite Sprite
}

func newJumpState(h *Hero, sc *Scene) HeroState {
	t := sc.Tuning().Hero
	s := &jumpState{h: h, start: sc.Time, sprite: sc.NewSprite(t.Sprites.Jump)}
	m, _ := sc.Motion(h.Entity)
	m.Direction = h.ArmDirection
	m.Speed = t.Speed / 2
	h.setMirror(sc, m.Direction)
	sc.Audio().PlayNamedSound(h, t.Sounds.Jump)
	return s
}

func (*jumpState) Name() string { return "jump" }

func (s *jumpState) Sprite() Sprite { return s.sprite }

func (s *jumpState) Step(sc *Scene) {
	t := sc.Tuning().Hero
	s.sprite.Update(sc.Time)
	p := (sc.Time - s.start) / t.JumpDuration
	m, _ := sc.Motion(s.h.Entity)
	m.ZSpeed = t.BulletHeight * 4 * (0.5 - p)
	if s.sprite.Finished() {
		s.h.ChangeState(sc, newNormalState)
	}
}

func (s *jumpState) Exit(sc *Scene) {
	tr, _ := sc.Transform(s.h.Entity)
	m, _ := sc.Motion(s.h.Entity)
	tr.Z = 0
	m.ZSpeed = 0
	s.h.JumpCooldown = sc.Time + sc.Tuning().Hero.JumpCooldown
}

type dyingState struct {
	sprite  Sprite
	resetAt float64
}

func newDyingState(h *Hero, sc *Scene) HeroState {
	t := sc.Tuning().Hero
	if health, ok := sc.Health(h.Entity); ok {
		health.ShowDamageUntil = -1
	}
	m, _ := sc.Motion(h.Entity)
	m.Speed = 0
	m.ZSpeed = 0
	sc.Audio().PlayOneOf(h, t.Sounds.Dying)
	return &dyingState{sprite: sc.NewSprite(t.Sprites.Dying), resetAt: sc.Time + t.DyingDelay}
}

func (*dyingState) Name() string { return "dying" }

func (s *dyingState) Sprite() Sprite { return s.sprite }

func (s *dyingState) Step(sc *Scene) {
	s.sprite.Update(sc.Time)
	if sc.Time >= s.resetAt {
		sc.Exiting = sc.Name
	}
}

type scriptedState struct {
	step     Step
	finished bool
}

func (*scriptedState) Name() string { return "scripted" }

func (s *scriptedState) Step(sc *Scene) {
	if s.finished {
		return
	}
	if s.step.Step(sc) == Finished {
		s.finished = true
		sc.Hero.ChangeState(sc, newNormalState)
	}
}
