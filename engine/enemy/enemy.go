// Package enemy holds the enemy behaviors a script can hand a character to
// with "change state".
package enemy

import (
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/prefabs"
)

const (
	BigBadName       = "big bad"
	MainBossName     = "main boss"
	PrisonerName     = "prisoner"
	FirstVillainName = "first villain main"
)

// LoadSpec reads enemies.yaml.
func LoadSpec() (prefabs.EnemiesSpec, error) {
	return prefabs.LoadSpec[prefabs.EnemiesSpec]("enemies.yaml")
}

// Register adds the built-in behaviors and every scripted behavior under
// prefabs/behaviors to reg.
func Register(reg *engine.Registry, spec prefabs.EnemiesSpec) error {
	reg.Register(BigBadName, engine.Behavior{Build: func(ctx engine.BehaviorContext) engine.Step {
		return newBoss(ctx, spec.BigBad, false)
	}})
	reg.Register(MainBossName, engine.Behavior{Build: func(ctx engine.BehaviorContext) engine.Step {
		return newBoss(ctx, spec.MainBoss, true)
	}})
	reg.Register(PrisonerName, engine.Behavior{Build: func(ctx engine.BehaviorContext) engine.Step {
		return newPrisoner(ctx, spec.Prisoner)
	}})
	reg.Register(FirstVillainName, engine.Behavior{Build: newFirstVillain})

	reg.RegisterPayload(BigBadName, newBossState)
	reg.RegisterPayload(MainBossName, newBossState)

	return registerScripted(reg)
}

// hitTracker notices damage taken since the last tick.
type hitTracker struct {
	last float64
}

func (h *hitTracker) hit(damage float64) bool {
	if damage == h.last {
		return false
	}
	h.last = damage
	return true
}
