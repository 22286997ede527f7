package engine

import (
	"fmt"
	"sort"

	"github.com/milk9111/scenescript/ecs"
)

// BehaviorContext is what a behavior is built against: the character it
// drives and the runner that asked for it.
type BehaviorContext struct {
	Scene  *Scene
	Runner *Runner
	Entity ecs.Entity
	Name   string
}

type BuildFunc func(ctx BehaviorContext) Step

type Behavior struct {
	Build BuildFunc
}

// PayloadFunc creates the initial behavior data for a character when it is
// added to a scene.
type PayloadFunc func(sc *Scene) any

// Registry maps behavior names to builders and character names to initial
// payloads. A nil Registry knows nothing.
type Registry struct {
	behaviors map[string]Behavior
	payloads  map[string]PayloadFunc
}

func NewRegistry() *Registry {
	return &Registry{
		behaviors: make(map[string]Behavior),
		payloads:  make(map[string]PayloadFunc),
	}
}

// Register adds a behavior. Registering a name twice replaces it.
func (r *Registry) Register(name string, b Behavior) {
	r.behaviors[name] = b
}

func (r *Registry) RegisterPayload(character string, fn PayloadFunc) {
	r.payloads[character] = fn
}

// Has reports whether name is a registered behavior.
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.behaviors[name]
	return ok
}

func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.behaviors))
	for name := range r.behaviors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build creates a running instance of the named behavior.
func (r *Registry) Build(name string, ctx BehaviorContext) Step {
	if r != nil {
		if b, ok := r.behaviors[name]; ok {
			debugf("%s: entering %s", ctx.Name, name)
			return b.Build(ctx)
		}
	}
	panic(fmt.Sprintf("engine: no behavior named %q", name))
}

func (r *Registry) Payload(character string) (PayloadFunc, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.payloads[character]
	return fn, ok
}
