package engine

import (
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/ecs/component"
)

// KillOff starts an enemy's death. It ends the enemy's part in the fight
// right away, then waits out the death animation before leaving the corpse
// behind as a remnant.
func KillOff(sc *Scene, e ecs.Entity, deathSprite, sound string) Step {
	sc.InFight = max(0, sc.InFight-1)
	if sc.InFight == 0 {
		sc.Music = ""
		sc.Audio().PlayMusic("")
	}

	sc.SetSprite(e, deathSprite)
	ecs.Remove(sc.Arena, e, component.RenderOverrideComponent.Kind())
	if m, ok := sc.Motion(e); ok {
		m.Speed = 0
		m.ZSpeed = 0
	}
	if tr, ok := sc.Transform(e); ok {
		tr.Z = 0
	}
	if h, ok := sc.Health(e); ok {
		h.ShowDamageUntil = -1
	}
	sc.Audio().PlayNamedSound(e, sound)

	return StepFunc(func(sc *Scene) Status {
		app, ok := sc.Appearance(e)
		if !ok {
			return Finished
		}
		if app.Sprite != nil && !app.Sprite.Finished() {
			return Running
		}
		name, _ := ecs.Get(sc.Arena, e, component.NameComponent.Kind())
		pos, _ := sc.Position(e)
		sc.addRemnant(Remnant{
			Name:     name.Value,
			Sprite:   app.Sprite,
			Position: pos,
			Mirror:   app.Mirror,
		})
		sc.RemoveCharacter(e)
		return Finished
	})
}

// addRemnant keeps at most the tuned number of remnants, oldest dropped first.
func (sc *Scene) addRemnant(r Remnant) {
	sc.Remnants = append(sc.Remnants, r)
	if limit := sc.Tuning().Engine.Remnants; limit > 0 && len(sc.Remnants) > limit {
		sc.Remnants = append(sc.Remnants[:0], sc.Remnants[len(sc.Remnants)-limit:]...)
	}
}
