package engine

import (
	"fmt"
	"log"

	"github.com/milk9111/scenescript/script"
)

// World caches every scene visited this session and tracks the active one.
type World struct {
	Doc    *script.Document
	kernel *Kernel
	scenes map[string]*Scene
	active *Scene
}

// NewWorld builds the opening scene and makes it active.
func NewWorld(doc *script.Document, k *Kernel) *World {
	return NewWorldAt(doc, k, doc.OpeningScene)
}

// NewWorldAt starts a world in the named scene instead of the opening one.
func NewWorldAt(doc *script.Document, k *Kernel, scene string) *World {
	w := &World{
		Doc:    doc,
		kernel: k,
		scenes: make(map[string]*Scene),
	}
	w.active = w.Scene(scene)
	return w
}

func (w *World) Kernel() *Kernel {
	return w.kernel
}

func (w *World) Active() *Scene {
	return w.active
}

// Scene returns the named scene, building it on first use. A new scene starts
// the script that shares its name, if there is one.
func (w *World) Scene(name string) *Scene {
	if sc, ok := w.scenes[name]; ok {
		return sc
	}
	info, ok := w.Doc.Scenes[name]
	if !ok {
		panic(fmt.Sprintf("engine: no scene named %q", name))
	}
	sc := newScene(w, info)
	w.scenes[name] = sc
	if _, ok := w.Doc.Scripts[name]; ok {
		sc.StartScript(name)
	}
	return sc
}

// Discard drops a cached scene so the next visit rebuilds it.
func (w *World) Discard(name string) {
	delete(w.scenes, name)
}

// SwitchTo makes the named scene active. The hero keeps its world position
// and the camera snaps to its new place.
func (w *World) SwitchTo(name string) *Scene {
	from := w.active
	if from != nil && from.Name == name {
		return from
	}
	to := w.Scene(name)
	if from != nil {
		pos := to.ToLocal(from.ToWorld(from.HeroPosition()))
		if tr, ok := to.Transform(to.Hero.Entity); ok {
			tr.X, tr.Y = pos.X, pos.Y
		}
		log.Printf("world: %s -> %s", from.Name, name)
	}
	to.resume(w.kernel.Clock.Now())
	to.JumpCamera()
	w.active = to
	return to
}

// Reset rebuilds the named scene from scratch. Resetting the active scene
// makes the rebuilt one active.
func (w *World) Reset(name string) *Scene {
	w.Discard(name)
	if w.active != nil && w.active.Name == name {
		w.active = nil
		sc := w.Scene(name)
		sc.resume(w.kernel.Clock.Now())
		w.active = sc
		log.Printf("world: reset %s", name)
		return sc
	}
	return w.Scene(name)
}

// Resume re-anchors the active scene's clock so time spent paused does not
// count.
func (w *World) Resume() {
	w.active.resume(w.kernel.Clock.Now())
}

// Update ticks the active scene, then follows any transition it requested.
func (w *World) Update() {
	sc := w.active
	sc.Tick()
	next := sc.Exiting
	if next == "" {
		return
	}
	sc.Exiting = ""
	if next == sc.Name {
		w.Reset(next)
		return
	}
	w.SwitchTo(next)
}
