package engine

import (
	"slices"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/ecs/component"
)

// Bullet is a projectile on the ground plane, drawn Height above it.
type Bullet struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Height   float64
	Friendly bool
	// Dead bullets are dropped after collision.
	Dead  bool
	Start float64
}

// BulletSpec describes a shot from a gun held at Height above From. The arm
// points along ArmDir and the bullet flies along Dir.
type BulletSpec struct {
	From      cp.Vector
	Height    float64
	ArmLength float64
	ArmDir    float64
	Speed     float64
	Friendly  bool
	Dir       float64
}

// FireBullet spawns a bullet at the gun's nozzle.
func FireBullet(sc *Scene, s BulletSpec) *Bullet {
	nozzle := common.Polar(s.ArmLength, s.ArmDir)
	b := &Bullet{
		Pos:      cp.Vector{X: s.From.X + nozzle.X, Y: s.From.Y},
		Vel:      common.Polar(s.Speed, s.Dir),
		Height:   s.Height + nozzle.Y,
		Friendly: s.Friendly,
		Start:    sc.Time,
	}
	sc.Bullets = append(sc.Bullets, b)
	return b
}

func (sc *Scene) updateBullets() {
	eng := sc.Tuning().Engine
	m := eng.BulletMargin
	bounds := cp.BB{L: sc.Box.L - m, B: sc.Box.B - m, R: sc.Box.R + m, T: sc.Box.T + m}
	for _, b := range sc.Bullets {
		b.Pos = b.Pos.Add(b.Vel.Mult(sc.StepSize))
		if !bounds.ContainsVect(b.Pos) || (eng.BulletLifetime > 0 && sc.Time-b.Start > eng.BulletLifetime) {
			b.Dead = true
		}
	}
	slices.SortStableFunc(sc.Bullets, func(a, b *Bullet) int {
		switch {
		case a.Pos.X < b.Pos.X:
			return -1
		case a.Pos.X > b.Pos.X:
			return 1
		}
		return 0
	})
}

// collide resolves bullet hits against every character with a shadow, then
// drops dead bullets.
func (sc *Scene) collide() {
	ecs.ForEach3(sc.Arena, component.ShadowComponent.Kind(), component.TransformComponent.Kind(), component.HealthComponent.Kind(),
		func(e ecs.Entity, sh *component.Shadow, tr *component.Transform, health *component.Health) {
			if health.ShowDamageUntil == -1 || sh.RX <= 0 || sh.RY <= 0 {
				return
			}
			isHero := e == sc.Hero.Entity
			lo := sort.Search(len(sc.Bullets), func(i int) bool {
				return sc.Bullets[i].Pos.X >= tr.X-sh.RX
			})
			for _, b := range sc.Bullets[lo:] {
				if b.Pos.X > tr.X+sh.RX {
					break
				}
				if b.Dead || b.Friendly == isHero {
					continue
				}
				if isHero && tr.Z > b.Height {
					continue
				}
				dx := (b.Pos.X - tr.X) / sh.RX
				dy := (b.Pos.Y - tr.Y) / sh.RY
				if dx*dx+dy*dy > 1 {
					continue
				}
				b.Dead = true
				sc.hit(e, health, isHero)
			}
		})

	n := 0
	for _, b := range sc.Bullets {
		if !b.Dead {
			sc.Bullets[n] = b
			n++
		}
	}
	clear(sc.Bullets[n:])
	sc.Bullets = sc.Bullets[:n]
}

func (sc *Scene) hit(e ecs.Entity, h *component.Health, isHero bool) {
	h.Damage++
	if h.ShowDamageUntil != -1 {
		h.ShowDamageUntil = sc.Time + sc.Tuning().Engine.FlashTime
	}
	if isHero {
		sc.Audio().PlayOneOf(sc.Hero, sc.Tuning().Hero.Sounds.Hit)
	}
}

// Flashing reports whether a character should be drawn with its hit flash.
func (sc *Scene) Flashing(e ecs.Entity) bool {
	h, ok := sc.Health(e)
	return ok && h.ShowDamageUntil != -1 && sc.Time < h.ShowDamageUntil
}
