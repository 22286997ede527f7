package enemy

import (
	"log"

	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/prefabs"
)

// prisoner rattles its cage until the hero comes close, then takes the game
// to the next scene.
type prisoner struct {
	spec prefabs.PrisonerSpec
	e    ecs.Entity
}

func newPrisoner(ctx engine.BehaviorContext, spec prefabs.PrisonerSpec) engine.Step {
	p := &prisoner{spec: spec, e: ctx.Entity}
	p.rattle(ctx.Scene)
	return p
}

func (p *prisoner) rattle(sc *engine.Scene) {
	if app, ok := sc.Appearance(p.e); ok && app.Sprite != nil {
		app.Sprite.Reset(sc.Time)
	}
	sc.Audio().PlayNamedSound(p.e, p.spec.Sound)
}

func (p *prisoner) Step(sc *engine.Scene) engine.Status {
	pos, ok := sc.Position(p.e)
	if !ok {
		return engine.Finished
	}
	if app, ok := sc.Appearance(p.e); ok && app.Sprite != nil && app.Sprite.Finished() {
		p.rattle(sc)
	}
	hero := sc.HeroPosition()
	if common.Magnitude(hero.X-pos.X, hero.Y-pos.Y, 0) < p.spec.Reach {
		sc.Exiting = p.spec.ExitTo
	}
	return engine.Running
}

func newFirstVillain(engine.BehaviorContext) engine.Step {
	log.Print("first villain: START")
	return engine.StepFunc(func(*engine.Scene) engine.Status {
		log.Print("first villain: END")
		return engine.Finished
	})
}
