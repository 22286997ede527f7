package enemy

import (
	"math"

	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/ecs/component"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/prefabs"
)

// BossState is the payload a boss keeps on its character.
type BossState struct {
	HeroDirection float64
}

func newBossState(*engine.Scene) any {
	return &BossState{}
}

type bossPhase int

const (
	phaseMarch bossPhase = iota
	phaseBlast
	phaseWait
	phaseRegroup
)

// boss marches up and down the scene, keeping away from the hero, and stops
// to fire fans of bullets at it. Damage taken during a volley earns another
// volley. With scaled set the boss fires faster the more it is hurt.
type boss struct {
	spec   prefabs.BossSpec
	scaled bool
	e      ecs.Entity
	state  *BossState
	hits   hitTracker

	phase      bossPhase
	goingUp    bool
	biasRight  bool
	cooldown   float64
	blastCount int

	dying engine.Step
}

func newBoss(ctx engine.BehaviorContext, spec prefabs.BossSpec, scaled bool) engine.Step {
	sc, e := ctx.Scene, ctx.Entity
	sc.InFight++

	state, ok := sc.Payload(e).(*BossState)
	if !ok {
		state = &BossState{}
		sc.SetPayload(e, state)
	}
	health, _ := sc.Health(e)
	pos, _ := sc.Position(e)

	b := &boss{
		spec:      spec,
		scaled:    scaled,
		e:         e,
		state:     state,
		hits:      hitTracker{last: health.Damage},
		phase:     phaseMarch,
		goingUp:   true,
		biasRight: sc.HeroPosition().X < pos.X,
		cooldown:  sc.Time + spec.FirstBlast,
	}
	sc.SetSprite(e, spec.Shooting)
	_ = ecs.Add(sc.Arena, e, component.RenderOverrideComponent.Kind(), &component.RenderOverride{
		Limbs: []component.Limb{{OffsetZ: spec.ArmHeight}},
	})
	return b
}

func (b *boss) Step(sc *engine.Scene) engine.Status {
	if b.dying != nil {
		return b.dying.Step(sc)
	}
	health, ok := sc.Health(b.e)
	if !ok {
		return engine.Finished
	}
	if health.Damage >= b.spec.Health {
		b.dying = engine.KillOff(sc, b.e, b.spec.Dying, b.spec.DyingSound)
		return b.dying.Step(sc)
	}
	if b.hits.hit(health.Damage) {
		sc.Audio().PlayOneOf(b.e, b.spec.HitSounds)
	}

	pos, _ := sc.Position(b.e)
	hero := sc.HeroPosition()
	b.state.HeroDirection = common.Arctan(hero.Y-pos.Y, hero.X-pos.X)
	if app, ok := sc.Appearance(b.e); ok {
		app.Mirror = hero.X < pos.X
	}
	if ro, ok := ecs.Get(sc.Arena, b.e, component.RenderOverrideComponent.Kind()); ok && len(ro.Limbs) > 0 {
		ro.Limbs[0].Rotation = b.state.HeroDirection
	}

	next := b.run(sc, b.phase)
	for next != b.phase {
		b.phase = next
		next = b.run(sc, next)
	}
	return engine.Running
}

func (b *boss) run(sc *engine.Scene, p bossPhase) bossPhase {
	switch p {
	case phaseBlast:
		return b.blast(sc)
	case phaseWait:
		return b.wait(sc)
	case phaseRegroup:
		sc.SetSprite(b.e, b.spec.Sprite)
		return phaseMarch
	}
	return b.march(sc)
}

func (b *boss) march(sc *engine.Scene) bossPhase {
	box := sc.Box
	pos, _ := sc.Position(b.e)
	margin := b.spec.Margin

	if b.goingUp && pos.Y > box.T-margin {
		b.goingUp = false
	} else if !b.goingUp && pos.Y < box.B+margin {
		b.goingUp = true
	}
	dy := b.spec.MarchSpeedY
	if !b.goingUp {
		dy = -dy
	}

	hero := sc.HeroPosition()
	if b.biasRight && hero.X > box.R-b.spec.Hysteresis {
		b.biasRight = false
	} else if !b.biasRight && hero.X < box.L+b.spec.Hysteresis {
		b.biasRight = true
	}
	var dx float64
	if b.biasRight && pos.X < box.R-margin {
		dx = b.spec.MarchSpeedX
	} else if !b.biasRight && pos.X > box.L+margin {
		dx = -b.spec.MarchSpeedX
	}

	if m, ok := sc.Motion(b.e); ok {
		m.Speed = common.Magnitude(dx, dy, 0)
		m.Direction = common.Arctan(dy, dx)
	}
	b.blastCount = 0
	if b.cooldown < sc.Time {
		return phaseBlast
	}
	return phaseMarch
}

func (b *boss) blast(sc *engine.Scene) bossPhase {
	b.blastCount++
	sc.SetSprite(b.e, b.spec.Shooting)
	if m, ok := sc.Motion(b.e); ok {
		m.Speed = 0
	}
	b.cooldown = sc.Time + b.cooldownTime(sc)

	pos, _ := sc.Position(b.e)
	gunDir := 0.0
	if app, ok := sc.Appearance(b.e); ok && app.Mirror {
		gunDir = math.Pi
	}
	rays := max(b.spec.Rays, 1)
	start := b.state.HeroDirection - b.spec.Arc/2
	step := b.spec.Arc / float64(rays)
	for i := range rays {
		engine.FireBullet(sc, engine.BulletSpec{
			From:      pos,
			Height:    b.spec.ArmHeight,
			ArmLength: b.spec.ArmLength,
			ArmDir:    gunDir,
			Speed:     b.spec.BulletSpeed,
			Dir:       start + float64(i)*step,
		})
	}
	return phaseWait
}

func (b *boss) cooldownTime(sc *engine.Scene) float64 {
	if !b.scaled {
		return b.spec.Cooldown
	}
	health, _ := sc.Health(b.e)
	left := 1 - health.Damage/b.spec.Health
	return b.spec.Cooldown * max(0.25, left)
}

func (b *boss) wait(sc *engine.Scene) bossPhase {
	app, ok := sc.Appearance(b.e)
	if ok && app.Sprite != nil && !app.Sprite.Finished() {
		return phaseWait
	}
	health, _ := sc.Health(b.e)
	if b.spec.Reblast > 0 && health.Damage >= float64(b.blastCount)*b.spec.Reblast {
		return phaseBlast
	}
	return phaseRegroup
}
