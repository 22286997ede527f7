package enemy

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/prefabs"
)

const scriptedDispatch = `
__result = update(__engine, __state)
`

// BehaviorName is the behavior a script file registers as: its base name
// with underscores read as spaces.
func BehaviorName(file string) string {
	name := strings.TrimSuffix(file, ".tengo")
	return strings.ReplaceAll(name, "_", " ")
}

func registerScripted(reg *engine.Registry) error {
	for _, file := range prefabs.BehaviorFiles() {
		src, err := prefabs.LoadBehavior(file)
		if err != nil {
			return fmt.Errorf("enemy: read behavior %s: %w", file, err)
		}
		compiled, err := CompileBehavior(src)
		if err != nil {
			return fmt.Errorf("enemy: compile behavior %s: %w", file, err)
		}
		name := BehaviorName(file)
		reg.Register(name, engine.Behavior{Build: func(ctx engine.BehaviorContext) engine.Step {
			return newScripted(ctx, name, compiled.Clone())
		}})
	}
	return nil
}

// CompileBehavior compiles a behavior script. The script must define
// update(engine, state); a true result ends the behavior.
func CompileBehavior(src []byte) (*tengo.Compiled, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptedDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__result", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return script.Compile()
}

// scripted drives one character from a compiled behavior script. Each
// instance owns its clone of the script and its own state map.
type scripted struct {
	name     string
	e        ecs.Entity
	compiled *tengo.Compiled
	state    *tengo.Map
	api      *tengo.ImmutableMap
	sc       *engine.Scene
}

func newScripted(ctx engine.BehaviorContext, name string, compiled *tengo.Compiled) engine.Step {
	s := &scripted{
		name:     name,
		e:        ctx.Entity,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.api = s.buildAPI()
	return s
}

func (s *scripted) Step(sc *engine.Scene) engine.Status {
	if _, ok := sc.Position(s.e); !ok {
		return engine.Finished
	}
	s.sc = sc
	done, err := s.run()
	if err != nil {
		log.Printf("enemy: behavior %q: %v", s.name, err)
		return engine.Finished
	}
	if done {
		return engine.Finished
	}
	return engine.Running
}

func (s *scripted) run() (bool, error) {
	if err := s.compiled.Set("__engine", s.api); err != nil {
		return false, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return false, err
	}
	if err := s.compiled.Set("__result", false); err != nil {
		return false, err
	}
	if err := s.compiled.Run(); err != nil {
		return false, err
	}
	return s.compiled.Get("__result").Bool(), nil
}

func (s *scripted) buildAPI() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	fn := func(name string, f tengo.CallableFunc) {
		values[name] = &tengo.UserFunction{Name: name, Value: f}
	}

	fn("time", func(...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: s.sc.Time}, nil
	})
	fn("position", func(...tengo.Object) (tengo.Object, error) {
		pos, _ := s.sc.Position(s.e)
		return vec(pos.X, pos.Y), nil
	})
	fn("hero_position", func(...tengo.Object) (tengo.Object, error) {
		pos := s.sc.HeroPosition()
		return vec(pos.X, pos.Y), nil
	})
	fn("damage", func(...tengo.Object) (tengo.Object, error) {
		h, ok := s.sc.Health(s.e)
		if !ok {
			return &tengo.Float{}, nil
		}
		return &tengo.Float{Value: h.Damage}, nil
	})
	fn("move", func(args ...tengo.Object) (tengo.Object, error) {
		n, err := floats("move", args, 3)
		if err != nil {
			return nil, err
		}
		if m, ok := s.sc.Motion(s.e); ok {
			m.Direction = common.Arctan(n[1], n[0])
			m.Speed = n[2]
		}
		return tengo.UndefinedValue, nil
	})
	fn("stop", func(...tengo.Object) (tengo.Object, error) {
		if m, ok := s.sc.Motion(s.e); ok {
			m.Speed = 0
			m.ZSpeed = 0
		}
		return tengo.UndefinedValue, nil
	})
	fn("fire", func(args ...tengo.Object) (tengo.Object, error) {
		n, err := floats("fire", args, 2)
		if err != nil {
			return nil, err
		}
		pos, _ := s.sc.Position(s.e)
		engine.FireBullet(s.sc, engine.BulletSpec{
			From:   pos,
			Height: s.sc.Tuning().Hero.BulletHeight,
			ArmDir: n[0],
			Speed:  n[1],
			Dir:    n[0],
		})
		return tengo.UndefinedValue, nil
	})
	fn("play", func(args ...tengo.Object) (tengo.Object, error) {
		name, err := str("play", args)
		if err != nil {
			return nil, err
		}
		s.sc.Audio().PlayNamedSound(s.e, name)
		return tengo.UndefinedValue, nil
	})
	fn("set_sprite", func(args ...tengo.Object) (tengo.Object, error) {
		name, err := str("set_sprite", args)
		if err != nil {
			return nil, err
		}
		s.sc.SetSprite(s.e, name)
		return tengo.UndefinedValue, nil
	})
	fn("sprite_finished", func(...tengo.Object) (tengo.Object, error) {
		if app, ok := s.sc.Appearance(s.e); ok && app.Sprite != nil && app.Sprite.Finished() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	})
	fn("face_hero", func(...tengo.Object) (tengo.Object, error) {
		pos, _ := s.sc.Position(s.e)
		if app, ok := s.sc.Appearance(s.e); ok {
			app.Mirror = s.sc.HeroPosition().X < pos.X
		}
		return tengo.UndefinedValue, nil
	})
	fn("exit_to", func(args ...tengo.Object) (tengo.Object, error) {
		name, err := str("exit_to", args)
		if err != nil {
			return nil, err
		}
		if _, ok := s.sc.World().Doc.Scenes[name]; !ok {
			return nil, fmt.Errorf("exit_to: no scene named %q", name)
		}
		s.sc.Exiting = name
		return tengo.UndefinedValue, nil
	})

	return &tengo.ImmutableMap{Value: values}
}

func vec(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: x}, &tengo.Float{Value: y}}}
}

func floats(name string, args []tengo.Object, n int) ([]float64, error) {
	if len(args) != n {
		return nil, tengo.ErrWrongNumArguments
	}
	out := make([]float64, n)
	for i, a := range args {
		v, ok := tengo.ToFloat64(a)
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{
				Name:     fmt.Sprintf("%s argument %d", name, i+1),
				Expected: "number",
				Found:    a.TypeName(),
			}
		}
		out[i] = v
	}
	return out, nil
}

func str(name string, args []tengo.Object) (string, error) {
	if len(args) != 1 {
		return "", tengo.ErrWrongNumArguments
	}
	v, ok := tengo.ToString(args[0])
	if !ok {
		return "", tengo.ErrInvalidArgumentType{Name: name, Expected: "string", Found: args[0].TypeName()}
	}
	return v, nil
}
