package anim

import (
	"github.com/milk9111/scenescript/ecs/component"
	"github.com/milk9111/scenescript/prefabs"
	"github.com/milk9111/scenescript/script"
)

const fallbackFrameTime = 0.5

// Definition is everything needed to start a clock for one sprite, plus the
// sheet geometry the renderer slices frames with.
type Definition struct {
	FrameTimes  []float64
	Loops       int
	Source      string
	FrameWidth  int
	FrameHeight int
}

// Library resolves sprite names to definitions. Names it was never told
// about get a single non-looping frame.
type Library struct {
	defs             map[string]Definition
	defaultFrameTime float64
}

// LoadLibrary builds a library from prefabs/sprites.yaml and the sprites a
// script document declares.
func LoadLibrary(doc *script.Document) (*Library, error) {
	spec, err := prefabs.LoadSpec[prefabs.SpritesSpec]("sprites.yaml")
	if err != nil {
		return nil, err
	}
	return NewLibrary(spec, doc), nil
}

func NewLibrary(spec prefabs.SpritesSpec, doc *script.Document) *Library {
	l := &Library{
		defs:             make(map[string]Definition),
		defaultFrameTime: spec.DefaultFrameTime,
	}
	if l.defaultFrameTime <= 0 {
		l.defaultFrameTime = fallbackFrameTime
	}

	for name, s := range spec.Sprites {
		l.defs[name] = l.fromSpec(s)
	}

	if doc == nil {
		return l
	}
	for _, a := range doc.Assets {
		if !a.IsSprite() {
			continue
		}
		def, ok := l.defs[a.Name]
		if !ok {
			def = l.single()
			if a.Loops {
				def.Loops = -1
			}
		}
		def.Source = a.Source
		l.defs[a.Name] = def
	}
	return l
}

func (l *Library) fromSpec(s prefabs.SpriteDefSpec) Definition {
	def := Definition{
		Loops:       s.Loops,
		FrameWidth:  s.FrameWidth,
		FrameHeight: s.FrameHeight,
	}
	switch {
	case len(s.FrameTimes) > 0:
		def.FrameTimes = append([]float64(nil), s.FrameTimes...)
	default:
		n := max(s.Frames, 1)
		ft := s.FrameTime
		if ft <= 0 {
			ft = l.defaultFrameTime
		}
		def.FrameTimes = make([]float64, n)
		for i := range def.FrameTimes {
			def.FrameTimes[i] = ft
		}
	}
	return def
}

func (l *Library) single() Definition {
	return Definition{FrameTimes: []float64{l.defaultFrameTime}}
}

// Definition returns the definition for name and whether it was declared.
func (l *Library) Definition(name string) (Definition, bool) {
	def, ok := l.defs[name]
	if !ok {
		return l.single(), false
	}
	return def, true
}

// NewSprite starts a clock for name at scene time t.
func (l *Library) NewSprite(name string, t float64) component.Sprite {
	def, _ := l.Definition(name)
	return NewClock(name, def.FrameTimes, def.Loops, t)
}
