package engine

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/ecs/component"
	"github.com/milk9111/scenescript/script"
)

const frameTime = 1.0 / 60

// Scene is one room of the game: its clock, its characters and bullets, and
// the scripts running in it. All mutation happens inside Tick.
type Scene struct {
	Name string
	Info *script.SceneInfo
	// Box is the playable area in scene coordinates.
	Box cp.BB
	// Origin places scene coordinates in world space.
	Origin cp.Vector

	Time     float64
	StepSize float64
	offset   float64

	Arena   *ecs.World
	names   map[string]ecs.Entity
	Hero    *Hero
	Bullets []*Bullet
	Runners []*Runner

	// InFight counts the encounters in progress. Zero means ambient music.
	InFight int
	// Exiting requests a switch to the named scene once the tick ends.
	Exiting  string
	Music    string
	Remnants []Remnant

	Camera     CameraTarget
	View       View
	jumpCamera bool

	world  *World
	kernel *Kernel
}

// Remnant is a dead character left behind as scenery.
type Remnant struct {
	Name     string
	Sprite   Sprite
	Position cp.Vector
	Mirror   bool
}

func newScene(w *World, info *script.SceneInfo) *Scene {
	k := w.kernel
	sc := &Scene{
		Name:   info.Name,
		Info:   info,
		Box:    info.Box.BB,
		Origin: info.Box.Origin,
		Arena:  ecs.NewWorld(),
		names:  make(map[string]ecs.Entity),
		world:  w,
		kernel: k,
	}
	sc.offset = OffsetAFrameFrom(k.Clock.Now(), 0)
	sc.Camera = CameraTarget{
		Target:   View{Zoom: k.Tuning.Camera.Zoom, X: sc.Box.Center().X, Y: sc.Box.Center().Y},
		Speed:    k.Tuning.Camera.Speed,
		ShowHero: true,
	}
	sc.View = sc.Camera.Target
	sc.jumpCamera = true
	sc.Hero = newHero(sc)
	return sc
}

// OffsetAFrameFrom returns the clock offset that makes scene time read t one
// frame after now.
func OffsetAFrameFrom(now, t float64) float64 {
	return now - frameTime - t
}

func (sc *Scene) Kernel() *Kernel {
	return sc.kernel
}

func (sc *Scene) World() *World {
	return sc.world
}

func (sc *Scene) Audio() Audio {
	return sc.kernel.Audio
}

func (sc *Scene) Input() Input {
	return sc.kernel.Input
}

func (sc *Scene) Tuning() Tuning {
	return sc.kernel.Tuning
}

func (sc *Scene) NewSprite(name string) Sprite {
	return sc.kernel.Sprites.NewSprite(name, sc.Time)
}

// UpdateTime moves scene time to the clock reading now. A step longer than
// the tuned maximum is cut short and the remainder is dropped for good.
func (sc *Scene) UpdateTime(now float64) {
	newTime := now - sc.offset
	step := newTime - sc.Time
	if limit := sc.kernel.Tuning.Engine.MaxStep; limit > 0 && step > limit {
		step = limit
		newTime = sc.Time + step
		sc.offset = now - newTime
	}
	sc.StepSize = step
	sc.Time = newTime
}

// resume re-anchors the clock after the scene sat idle.
func (sc *Scene) resume(now float64) {
	sc.offset = OffsetAFrameFrom(now, sc.Time)
}

// Tick advances the scene by one frame.
func (sc *Scene) Tick() {
	sc.UpdateTime(sc.kernel.Clock.Now())
	sc.Hero.update(sc)
	sc.updateCharacters()
	sc.updateBullets()
	sc.collide()
	sc.RunScripts()
	sc.AdjustCamera()
}

func (sc *Scene) updateCharacters() {
	ecs.ForEach2(sc.Arena, component.TransformComponent.Kind(), component.MotionComponent.Kind(),
		func(e ecs.Entity, tr *component.Transform, m *component.Motion) {
			if e == sc.Hero.Entity {
				return
			}
			if app, ok := ecs.Get(sc.Arena, e, component.AppearanceComponent.Kind()); ok && app.Sprite != nil {
				app.Sprite.Update(sc.Time)
			}
			integrate(tr, m, sc.StepSize)
		})
}

func integrate(tr *component.Transform, m *component.Motion, step float64) {
	d := common.Polar(step*m.Speed, m.Direction)
	tr.X += d.X
	tr.Y += d.Y
	tr.Z += step * m.ZSpeed
}

// Character looks up a live character, the hero included, by name.
func (sc *Scene) Character(name string) (ecs.Entity, bool) {
	e, ok := sc.names[name]
	if !ok || !ecs.IsAlive(sc.Arena, e) {
		return 0, false
	}
	return e, true
}

// NameOf returns a character's script name, or "" for an unknown entity.
func (sc *Scene) NameOf(e ecs.Entity) string {
	if n, ok := ecs.Get(sc.Arena, e, component.NameComponent.Kind()); ok {
		return n.Value
	}
	return ""
}

// MustCharacter is Character for names a validated script guarantees exist.
func (sc *Scene) MustCharacter(name string) ecs.Entity {
	e, ok := sc.Character(name)
	if !ok {
		panic(fmt.Sprintf("engine: scene %q: no character named %q", sc.Name, name))
	}
	return e
}

// Characters returns every live character except the hero.
func (sc *Scene) Characters() []ecs.Entity {
	var out []ecs.Entity
	for _, e := range ecs.Entities(sc.Arena) {
		if e != sc.Hero.Entity {
			out = append(out, e)
		}
	}
	return out
}

// CharacterSpec is everything needed to put a character on screen.
type CharacterSpec struct {
	Name    string
	Sprite  string
	Pos     cp.Vector
	Z       float64
	Shadow  *component.Shadow
	Payload any
}

// AddCharacter creates a character. Names are unique among live characters.
func (sc *Scene) AddCharacter(spec CharacterSpec) ecs.Entity {
	if _, taken := sc.Character(spec.Name); taken {
		panic(fmt.Sprintf("engine: scene %q: %q is already on screen", sc.Name, spec.Name))
	}
	e := ecs.CreateEntity(sc.Arena)
	sc.mustAdd(ecs.Add(sc.Arena, e, component.NameComponent.Kind(), &component.Name{Value: spec.Name}))
	sc.mustAdd(ecs.Add(sc.Arena, e, component.TransformComponent.Kind(), &component.Transform{X: spec.Pos.X, Y: spec.Pos.Y, Z: spec.Z}))
	sc.mustAdd(ecs.Add(sc.Arena, e, component.MotionComponent.Kind(), &component.Motion{}))
	sc.mustAdd(ecs.Add(sc.Arena, e, component.HealthComponent.Kind(), &component.Health{}))
	app := &component.Appearance{}
	if spec.Sprite != "" {
		app.Sprite = sc.NewSprite(spec.Sprite)
	}
	sc.mustAdd(ecs.Add(sc.Arena, e, component.AppearanceComponent.Kind(), app))
	if spec.Shadow != nil {
		shadow := *spec.Shadow
		sc.mustAdd(ecs.Add(sc.Arena, e, component.ShadowComponent.Kind(), &shadow))
	}
	payload := spec.Payload
	if payload == nil {
		if fn, ok := sc.kernel.Behaviors.Payload(spec.Name); ok {
			payload = fn(sc)
		}
	}
	if payload != nil {
		sc.mustAdd(ecs.Add(sc.Arena, e, component.PayloadComponent.Kind(), &component.Payload{Value: payload}))
	}
	sc.names[spec.Name] = e
	return e
}

func (sc *Scene) mustAdd(err error) {
	if err != nil {
		panic(fmt.Sprintf("engine: scene %q: %v", sc.Name, err))
	}
}

// RemoveCharacter deletes a character. Handles to it go stale, so behaviors
// still holding one see it as gone.
func (sc *Scene) RemoveCharacter(e ecs.Entity) bool {
	name, ok := ecs.Get(sc.Arena, e, component.NameComponent.Kind())
	if !ok {
		return false
	}
	if sc.names[name.Value] == e {
		delete(sc.names, name.Value)
	}
	return ecs.DestroyEntity(sc.Arena, e)
}

func (sc *Scene) Transform(e ecs.Entity) (*component.Transform, bool) {
	return ecs.Get(sc.Arena, e, component.TransformComponent.Kind())
}

func (sc *Scene) Motion(e ecs.Entity) (*component.Motion, bool) {
	return ecs.Get(sc.Arena, e, component.MotionComponent.Kind())
}

func (sc *Scene) Health(e ecs.Entity) (*component.Health, bool) {
	return ecs.Get(sc.Arena, e, component.HealthComponent.Kind())
}

func (sc *Scene) Appearance(e ecs.Entity) (*component.Appearance, bool) {
	return ecs.Get(sc.Arena, e, component.AppearanceComponent.Kind())
}

func (sc *Scene) Shadow(e ecs.Entity) (*component.Shadow, bool) {
	return ecs.Get(sc.Arena, e, component.ShadowComponent.Kind())
}

// Payload returns the behavior data attached to a character, or nil.
func (sc *Scene) Payload(e ecs.Entity) any {
	p, ok := ecs.Get(sc.Arena, e, component.PayloadComponent.Kind())
	if !ok {
		return nil
	}
	return p.Value
}

func (sc *Scene) SetPayload(e ecs.Entity, v any) {
	if p, ok := ecs.Get(sc.Arena, e, component.PayloadComponent.Kind()); ok {
		p.Value = v
		return
	}
	_ = ecs.Add(sc.Arena, e, component.PayloadComponent.Kind(), &component.Payload{Value: v})
}

// Position returns a character's ground position in scene coordinates.
func (sc *Scene) Position(e ecs.Entity) (cp.Vector, bool) {
	tr, ok := sc.Transform(e)
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{X: tr.X, Y: tr.Y}, true
}

func (sc *Scene) HeroPosition() cp.Vector {
	pos, _ := sc.Position(sc.Hero.Entity)
	return pos
}

// SetSprite swaps a character's sprite, starting its animation now.
func (sc *Scene) SetSprite(e ecs.Entity, name string) {
	if app, ok := sc.Appearance(e); ok {
		app.Sprite = sc.NewSprite(name)
	}
}

// ToLocal converts world coordinates into this scene's coordinates.
func (sc *Scene) ToLocal(v cp.Vector) cp.Vector {
	return v.Sub(sc.Origin)
}

func (sc *Scene) ToWorld(v cp.Vector) cp.Vector {
	return v.Add(sc.Origin)
}
