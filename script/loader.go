package script

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/parser"
)

// DefaultCameraSpeed is the easing rate of camera actions that omit "speed".
const DefaultCameraSpeed = 4.0

var spriteNamePattern = regexp.MustCompile(`^[A-Z][a-z0-9]*(?:[A-Z][a-z0-9]*)*$`)

// StateSet reports which behavior names "change state" may use.
type StateSet interface {
	Has(name string) bool
}

type Options struct {
	// States validates behavior names. A nil set accepts any name.
	States StateSet
}

// Load validates a JSON script document. It either returns a complete
// document or the first defect found, never a partial document.
func Load(data []byte, opts Options) (*Document, error) {
	return parser.Parse(data, func(p *parser.Parser) *Document { return parseDocument(p, opts) })
}

// LoadYAML validates a script document authored in YAML.
func LoadYAML(data []byte, opts Options) (*Document, error) {
	return parser.ParseYAML(data, func(p *parser.Parser) *Document { return parseDocument(p, opts) })
}

// LoadFile reads path and validates it as JSON or YAML depending on its
// extension.
func LoadFile(path string, opts Options) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	return LoadBytes(path, data, opts)
}

// LoadBytes validates data, choosing the format from name's extension.
func LoadBytes(name string, data []byte, opts Options) (*Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return LoadYAML(data, opts)
	}
	return Load(data, opts)
}

type loader struct {
	opts        Options
	doc         *Document
	spriteNames map[string]bool
	soundNames  map[string]bool
	scriptNames []string
}

func parseDocument(p *parser.Parser, opts Options) *Document {
	l := &loader{
		opts: opts,
		doc: &Document{
			Scenes:  make(map[string]*SceneInfo),
			Scripts: make(map[string]*Script),
		},
		spriteNames: make(map[string]bool),
		soundNames:  make(map[string]bool),
	}
	doc := l.doc

	doc.Assets = parser.ObjectArrayOf(p, "assets", l.asset)

	p.Map("scenes", func(p *parser.Parser, name string) {
		doc.Scenes[name] = l.scene(p, name)
		doc.SceneOrder = append(doc.SceneOrder, name)
	})

	l.scriptNames = p.MapKeys("scripts")
	p.Map("scripts", func(p *parser.Parser, name string) {
		doc.Scripts[name] = l.script(p, name)
	})

	doc.OpeningScene, _ = p.Validate("opening scene", func(v any) string {
		s, ok := v.(string)
		if !ok {
			return "is supposed to be text"
		}
		if _, ok := doc.Scenes[s]; !ok {
			return "is not one of the given scenes"
		}
		return ""
	}).(string)

	return doc
}

func (l *loader) asset(p *parser.Parser, _ int) Asset {
	kind := AssetKind(p.OneOf("type", []string{string(AssetAnimated), string(AssetStatic), string(AssetAudio)}))
	sprite := kind != AssetAudio

	name := p.ValidateString("name", func(s string) string {
		if sprite {
			if !spriteNamePattern.MatchString(s) {
				return "must be written in CapitalCamelCase"
			}
			if l.spriteNames[s] {
				return "is already the name of another sprite"
			}
			return ""
		}
		if l.soundNames[s] {
			return "is already the name of another sound"
		}
		return ""
	})
	if p.Failed() {
		return Asset{}
	}
	if sprite {
		l.spriteNames[name] = true
		l.doc.SpriteNames = append(l.doc.SpriteNames, name)
	} else {
		l.soundNames[name] = true
		l.doc.SoundNames = append(l.doc.SoundNames, name)
	}

	a := Asset{
		Name:   name,
		Kind:   kind,
		Source: p.String("src"),
		Loops:  p.OptBool("loops", false),
	}
	if p.Has("origin") {
		origin := parser.ObjectOf(p, "origin", func(p *parser.Parser) cp.Vector {
			return cp.Vector{X: p.Num("x"), Y: p.Num("y")}
		})
		a.Origin = &origin
	}
	return a
}

func (l *loader) scene(p *parser.Parser, name string) *SceneInfo {
	box := parser.ObjectOf(p, "location", func(p *parser.Parser) Box {
		x := p.Num("x")
		y := p.Num("y")
		width := positive(p, "width")
		height := positive(p, "height")
		return Box{
			BB:     cp.NewBBForExtents(cp.Vector{}, width*PixelScale/2, height*PixelScale/2),
			Origin: cp.Vector{X: x * PixelScale, Y: y * PixelScale},
		}
	})
	health := DefaultHeroHealth
	if p.Has("hero health") {
		health = positive(p, "hero health")
	}
	return &SceneInfo{Name: name, Box: box, HeroHealth: health}
}

func (l *loader) script(p *parser.Parser, name string) *Script {
	s := &Script{Name: name}
	known := map[string]bool{HeroName: true}

	if p.Has("characters") {
		p.Array("characters", func(p *parser.Parser, _ int) {
			c := p.AsString()
			if p.Failed() {
				return
			}
			if known[c] {
				p.Fail("is already a declared character")
				return
			}
			known[c] = true
			s.Characters = append(s.Characters, c)
		})
	}

	live := make(map[string]bool)
	s.Actions = parser.ObjectArrayOf(p, "actions", func(p *parser.Parser, _ int) Action {
		return l.action(p, known, live)
	})
	return s
}

// action reads one entry of an action list. live tracks the characters this
// script has added and not yet removed.
func (l *loader) action(p *parser.Parser, known, live map[string]bool) Action {
	character := func(key string) string {
		return p.ValidateString(key, func(s string) string {
			if !known[s] {
				return "is trying to modify an unrecognized character"
			}
			return ""
		})
	}
	sprite := func(key string) string {
		return p.OneOf(key, l.doc.SpriteNames)
	}

	switch p.OneOf("type", ActionKinds) {
	case KindDo:
		return &Do{Script: p.OneOf("script", l.scriptNames)}
	case KindAdd:
		a := &Add{
			Name: p.ValidateString("name", func(s string) string {
				if s == HeroName {
					return "is trying to add the hero"
				}
				if !known[s] {
					return "is trying to modify an unrecognized character"
				}
				if live[s] {
					return "is already on screen"
				}
				return ""
			}),
			Sprite:   sprite("sprite"),
			X:        p.Num("x"),
			Y:        p.Num("y"),
			Z:        p.OptNum("z", 0),
			Absolute: p.OptBool("absolute", false),
		}
		if p.Has("shadow") && !p.IsNull("shadow") {
			shadow := parser.ObjectOf(p, "shadow", func(p *parser.Parser) Shadow {
				return Shadow{X: positive(p, "x"), Y: positive(p, "y")}
			})
			a.Shadow = &shadow
		}
		live[a.Name] = true
		return a
	case KindRemove:
		r := &Remove{Name: character("name")}
		delete(live, r.Name)
		return r
	case KindPlaySound:
		return &PlaySound{Sound: p.OneOf("sound", l.doc.SoundNames)}
	case KindPlayMusic:
		return &PlayMusic{Path: p.String("music")}
	case KindWait:
		w := &Wait{}
		if !p.IsNull("seconds") {
			secs := p.NumRange("seconds", 0, math.Inf(1), false)
			w.Seconds = &secs
		}
		return w
	case KindWaitUntilWithin:
		return &WaitUntilWithin{
			Name: character("name"),
			X:    p.NumRange("x", 0, math.Inf(1), false),
			Y:    p.NumRange("y", 0, math.Inf(1), false),
		}
	case KindChangeSprite:
		return &ChangeSprite{Name: character("name"), Sprite: sprite("sprite")}
	case KindChangeState:
		return &ChangeState{
			Name: character("name"),
			State: p.ValidateString("state", func(s string) string {
				if l.opts.States != nil && !l.opts.States.Has(s) {
					return "is not a recognized behavior"
				}
				return ""
			}),
		}
	case KindChangeHeroHead:
		return &ChangeHeroHead{Sprite: sprite("sprite")}
	case KindFreeHero:
		return &FreeHero{}
	case KindMove:
		return &Move{
			Name:     character("name"),
			Seconds:  positive(p, "seconds"),
			X:        p.Num("x"),
			Y:        p.Num("y"),
			Z:        p.OptNum("z", 0),
			Absolute: p.OptBool("absolute", false),
			EaseIn:   p.OptBool("easeIn", false),
			EaseOut:  p.OptBool("easeOut", false),
		}
	case KindCamera:
		c := &Camera{}
		if p.Has("name") && !p.IsNull("name") {
			name := character("name")
			c.Name = &name
		}
		c.Zoom = positive(p, "zoom")
		c.Speed = p.OptNum("speed", DefaultCameraSpeed)
		return c
	case KindAbsoluteCamera:
		return &AbsoluteCamera{
			X:     p.Num("x"),
			Y:     p.Num("y"),
			Zoom:  positive(p, "zoom"),
			Speed: p.OptNum("speed", DefaultCameraSpeed),
		}
	case KindChangeHeroVisibility:
		return &ChangeHeroVisibility{Visible: p.Bool("visible")}
	case KindTransition:
		return &Transition{NextScreen: p.OneOf("nextScreen", l.doc.SceneOrder)}
	case KindFight:
		return &Fight{}
	}
	return nil
}

func positive(p *parser.Parser, key string) float64 {
	v, _ := p.Validate(key, func(v any) string {
		n, ok := v.(float64)
		if !ok {
			return "is supposed to be a number"
		}
		if n <= 0 {
			return "must be above 0"
		}
		return ""
	}).(float64)
	return v
}
