package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/scenescript/engine"
	"golang.design/x/clipboard"
)

const appName = "scenescript"

func main() {
	scriptPath := flag.String("script", "", "script document to play (.json or .yaml); the built-in one if empty")
	scene := flag.String("scene", "", "scene to start in instead of the opening scene")
	watch := flag.Bool("watch", false, "reload the script document, prefabs and behaviors when they change")
	debug := flag.Bool("debug", false, "enable debug mode")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	flag.Parse()

	engine.Debug = *debug

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	settings := openSettings(appName)

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle(appName)
	ebiten.SetFullscreen(settings.Fullscreen)

	game, err := NewGame(options{
		scriptPath: *scriptPath,
		scene:      *scene,
		watch:      *watch,
		debug:      *debug,
	}, settings)
	if err != nil {
		log.Fatal(err)
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard init: %v", err)
	} else {
		game.clipboardOK = true
	}

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
