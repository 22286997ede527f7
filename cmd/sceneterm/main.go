// Command sceneterm plays a script document in the terminal. Characters are
// letters, the hero is @, and sounds are tones.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/scenescript/anim"
	"github.com/milk9111/scenescript/assets"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/engine/enemy"
	"github.com/milk9111/scenescript/script"
)

const frame = time.Second / 60

type wallClock struct {
	start time.Time
}

func (c wallClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

func main() {
	scriptPath := flag.String("script", "", "script document to play; the built-in one if empty")
	logPath := flag.String("log", "sceneterm.log", "file to write the log to while the screen is in use")
	mute := flag.Bool("mute", false, "disable tones")
	flag.Parse()

	if f, err := os.Create(*logPath); err == nil {
		log.SetOutput(f)
		defer f.Close()
	}

	world, audio, err := setup(*scriptPath, *mute)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if audio != nil {
		defer audio.Close()
	}

	if err := run(world); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(scriptPath string, mute bool) (*engine.World, *toneAudio, error) {
	tuning, err := engine.LoadTuning()
	if err != nil {
		return nil, nil, err
	}
	spec, err := enemy.LoadSpec()
	if err != nil {
		return nil, nil, err
	}
	reg := engine.NewRegistry()
	if err := enemy.Register(reg, spec); err != nil {
		return nil, nil, err
	}

	var doc *script.Document
	if scriptPath == "" {
		doc, err = script.Load(assets.DefaultDocument(), script.Options{States: reg})
	} else {
		doc, err = script.LoadFile(scriptPath, script.Options{States: reg})
	}
	if err != nil {
		return nil, nil, err
	}
	lib, err := anim.LoadLibrary(doc)
	if err != nil {
		return nil, nil, err
	}

	var audio engine.Audio = silence{}
	var tones *toneAudio
	if !mute {
		tones = newToneAudio()
		audio = tones
	}
	k := &engine.Kernel{
		Audio:     audio,
		Input:     newKeyInput(),
		Sprites:   lib,
		Clock:     wallClock{start: time.Now()},
		Behaviors: reg,
		Tuning:    tuning,
	}
	return engine.NewWorld(doc, k), tones, nil
}

func run(world *engine.World) (err error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()
	defer screen.Fini()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	k := world.Kernel()
	in := k.Input.(*keyInput)
	aimAhead(world.Active(), in)

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
					return nil
				}
				if action, ok := actionFor(ev); ok {
					in.press(action, k.Clock.Now())
				}
			case *tcell.EventMouse:
				w, h := screen.Size()
				sc := world.Active()
				col, row := ev.Position()
				in.aim(grid{box: sc.Box, w: w, h: h}.scene(col, row))
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			in.advance(k.Clock.Now())
			before := world.Active()
			world.Update()
			if world.Active() != before {
				aimAhead(world.Active(), in)
			}
			draw(screen, world.Active())
		}
	}
}

// aimAhead points the hero's gun to the right until the mouse moves.
func aimAhead(sc *engine.Scene, in *keyInput) {
	pos := sc.HeroPosition()
	in.aim(sc.Box.R, pos.Y+sc.Tuning().Hero.BulletHeight)
}

type silence struct{}

func (silence) PlayNamedSound(any, string) {}
func (silence) PlayOneOf(any, []string)    {}
func (silence) PlayMusic(string)           {}
