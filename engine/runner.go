package engine

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/ecs/component"
	"github.com/milk9111/scenescript/script"
)

// Runner executes one script. Its cursor walks the action list, eagerly
// running instantaneous actions and stopping only at a closed gate. Long
// effects tick in its pending pool alongside the cursor.
type Runner struct {
	Script  *script.Script
	cursor  *cursor
	pending []Step
}

type cursor struct {
	index int
	until Gate
}

func newRunner(s *script.Script) *Runner {
	return &Runner{Script: s, cursor: &cursor{index: -1}}
}

func (r *Runner) Name() string {
	return r.Script.Name
}

// Finished reports whether both the cursor and the pending pool are spent.
func (r *Runner) Finished() bool {
	return r.cursor == nil && len(r.pending) == 0
}

// Pending is the number of steps in the pool.
func (r *Runner) Pending() int {
	return len(r.pending)
}

// Index is the position of the cursor, or -1 once the script is exhausted.
func (r *Runner) Index() int {
	if r.cursor == nil {
		return -1
	}
	return r.cursor.index
}

// Advance runs one tick: the pending pool, then the cursor.
func (r *Runner) Advance(sc *Scene) Status {
	r.sweepPending(sc)
	r.advanceCursor(sc)
	if r.Finished() {
		return Finished
	}
	return Running
}

// AddPending puts step in the pool. With runNow it gets its first tick
// immediately and is only pooled if it keeps running.
func (r *Runner) AddPending(sc *Scene, step Step, runNow bool) {
	if runNow && step.Step(sc) == Finished {
		return
	}
	r.pending = append(r.pending, step)
}

func (r *Runner) sweepPending(sc *Scene) {
	// Steps pooled during the sweep wait for the next one.
	n := len(r.pending)
	removed := false
	for i := 0; i < n; i++ {
		if r.pending[i].Step(sc) == Finished {
			r.pending[i] = nil
			removed = true
		}
	}
	if removed {
		r.pending = compact(r.pending)
	}
}

func (r *Runner) advanceCursor(sc *Scene) {
	c := r.cursor
	if c == nil || (c.until != nil && !c.until(sc)) {
		return
	}
	actions := r.Script.Actions
	index := c.index
	var until Gate
	for {
		if until != nil && !until(sc) {
			break
		}
		index++
		out := r.next(sc, index)
		if out.IsDone() {
			break
		}
		until = out.gate
	}
	if index < len(actions) {
		r.cursor = &cursor{index: index, until: until}
		return
	}
	r.cursor = nil
}

// next runs the action at index, or reports Done past the end of the list.
func (r *Runner) next(sc *Scene, index int) Outcome {
	if index >= len(r.Script.Actions) {
		return Done()
	}
	return r.run(sc, r.Script.Actions[index])
}

func (r *Runner) run(sc *Scene, a script.Action) Outcome {
	debugf("%s: running %s action", r.Script.Name, a.Kind())
	ex := executor{sc: sc, r: r}
	a.Accept(&ex)
	return ex.out
}

func compact[T comparable](items []T) []T {
	var zero T
	out := items[:0]
	for _, it := range items {
		if it != zero {
			out = append(out, it)
		}
	}
	clear(items[len(out):])
	return out
}

// StartScript starts the named script and gives it its first tick now.
func (sc *Scene) StartScript(name string) *Runner {
	s, ok := sc.world.Doc.Scripts[name]
	if !ok {
		panic(fmt.Sprintf("engine: no script named %q", name))
	}
	r := newRunner(s)
	if r.Advance(sc) == Running {
		sc.Runners = append(sc.Runners, r)
	}
	return r
}

// RunScripts ticks every runner once. Runners started during the sweep get
// their first tick from StartScript; finished runners are dropped afterwards.
func (sc *Scene) RunScripts() {
	n := len(sc.Runners)
	removed := false
	for i := 0; i < n; i++ {
		if sc.Runners[i].Advance(sc) == Finished {
			sc.Runners[i] = nil
			removed = true
		}
	}
	if removed {
		sc.Runners = compact(sc.Runners)
	}
}

// executor applies one action to a scene on behalf of a runner.
type executor struct {
	sc  *Scene
	r   *Runner
	out Outcome
}

func (ex *executor) local(x, y float64, absolute bool) cp.Vector {
	v := cp.Vector{X: x, Y: y}
	if absolute {
		return ex.sc.ToLocal(v)
	}
	return v
}

func (ex *executor) VisitDo(a *script.Do) {
	sub, ok := ex.sc.world.Doc.Scripts[a.Script]
	if !ok {
		panic(fmt.Sprintf("engine: no script named %q", a.Script))
	}
	child := newRunner(sub)
	ex.r.AddPending(ex.sc, StepFunc(child.Advance), true)
}

func (ex *executor) VisitAdd(a *script.Add) {
	spec := CharacterSpec{
		Name:   a.Name,
		Sprite: a.Sprite,
		Pos:    ex.local(a.X, a.Y, a.Absolute),
		Z:      a.Z,
	}
	if a.Shadow != nil {
		spec.Shadow = &component.Shadow{RX: a.Shadow.X, RY: a.Shadow.Y}
	}
	ex.sc.AddCharacter(spec)
}

func (ex *executor) VisitRemove(a *script.Remove) {
	ex.sc.RemoveCharacter(ex.sc.MustCharacter(a.Name))
}

func (ex *executor) VisitPlaySound(a *script.PlaySound) {
	ex.sc.Audio().PlayNamedSound(a, a.Sound)
}

func (ex *executor) VisitPlayMusic(a *script.PlayMusic) {
	ex.sc.Music = a.Path
	ex.sc.Audio().PlayMusic(a.Path)
}

func (ex *executor) VisitWait(a *script.Wait) {
	if a.Seconds == nil {
		r := ex.r
		ex.out = Suspend(func(*Scene) bool { return len(r.pending) == 0 })
		return
	}
	end := ex.sc.Time + *a.Seconds
	ex.out = Suspend(func(sc *Scene) bool { return sc.Time >= end })
}

func (ex *executor) VisitWaitUntilWithin(a *script.WaitUntilWithin) {
	e := ex.sc.MustCharacter(a.Name)
	ex.out = Suspend(func(sc *Scene) bool {
		pos, ok := sc.Position(e)
		if !ok {
			return false
		}
		hero := sc.HeroPosition()
		return math.Abs(hero.X-pos.X) <= a.X && math.Abs(hero.Y-pos.Y) <= a.Y
	})
}

func (ex *executor) VisitChangeSprite(a *script.ChangeSprite) {
	ex.sc.SetSprite(ex.sc.MustCharacter(a.Name), a.Sprite)
}

func (ex *executor) VisitChangeState(a *script.ChangeState) {
	e := ex.sc.MustCharacter(a.Name)
	step := ex.sc.kernel.Behaviors.Build(a.State, BehaviorContext{
		Scene:  ex.sc,
		Runner: ex.r,
		Entity: e,
		Name:   a.Name,
	})
	ex.r.AddPending(ex.sc, step, true)
}

func (ex *executor) VisitChangeHeroHead(a *script.ChangeHeroHead) {
	ex.sc.Hero.OverrideHead(ex.sc, a.Sprite)
}

func (ex *executor) VisitFreeHero(*script.FreeHero) {
	ex.sc.Hero.Freed = true
}

func (ex *executor) VisitMove(a *script.Move) {
	sc := ex.sc
	e := sc.MustCharacter(a.Name)
	move := newMoveStep(sc, e, a)
	if e != sc.Hero.Entity {
		ex.r.AddPending(sc, move, true)
		return
	}
	done := sc.Hero.Script(sc, move)
	ex.r.AddPending(sc, StepFunc(func(*Scene) Status {
		if done() {
			return Finished
		}
		return Running
	}), true)
}

func (ex *executor) VisitCamera(a *script.Camera) {
	cam := &ex.sc.Camera
	cam.Target.Zoom = a.Zoom
	cam.Speed = a.Speed
	cam.Absolute = false
	cam.Subtarget = 0
	if a.Name != nil {
		cam.Subtarget = ex.sc.MustCharacter(*a.Name)
	}
}

func (ex *executor) VisitAbsoluteCamera(a *script.AbsoluteCamera) {
	cam := &ex.sc.Camera
	local := ex.sc.ToLocal(cp.Vector{X: a.X, Y: a.Y})
	cam.Absolute = true
	cam.Target = View{X: local.X, Y: local.Y, Zoom: a.Zoom}
	cam.Speed = a.Speed
}

func (ex *executor) VisitChangeHeroVisibility(a *script.ChangeHeroVisibility) {
	ex.sc.Camera.ShowHero = a.Visible
	if app, ok := ex.sc.Appearance(ex.sc.Hero.Entity); ok {
		app.Hidden = !a.Visible
	}
}

func (ex *executor) VisitTransition(a *script.Transition) {
	ex.sc.Exiting = a.NextScreen
}

func (ex *executor) VisitFight(*script.Fight) {
	ex.sc.InFight++
}

var _ script.Visitor = (*executor)(nil)
