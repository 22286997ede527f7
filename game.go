package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/scenescript/anim"
	"github.com/milk9111/scenescript/assets"
	"github.com/milk9111/scenescript/common"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/engine/enemy"
	"github.com/milk9111/scenescript/prefabs"
	"github.com/milk9111/scenescript/script"
)

const (
	baseWidth  = common.BaseWidth
	baseHeight = common.BaseHeight
)

type options struct {
	scriptPath string
	scene      string
	watch      bool
	debug      bool
}

// wallClock reads seconds since the game started.
type wallClock struct {
	start time.Time
}

func (c wallClock) Now() float64 {
	return time.Since(c.start).Seconds()
}

type Game struct {
	opts     options
	loader   assets.Loader
	settings *settingsStore

	clock    wallClock
	input    *Input
	audio    *Audio
	renderer *Renderer
	world    *engine.World
	watcher  *prefabs.Watcher

	paused      bool
	pauseUI     *ebitenui.UI
	errorUI     *ebitenui.UI
	clipboardOK bool
	quit        bool
	lastScene   string
}

// NewGame loads everything the game needs. A bad script document is not
// fatal: the game starts with the error on screen.
func NewGame(opts options, settings *settingsStore) (*Game, error) {
	g := &Game{
		opts:     opts,
		settings: settings,
		clock:    wallClock{start: time.Now()},
		input:    NewInput(),
	}
	if opts.scriptPath != "" {
		g.loader.Root = filepath.Dir(opts.scriptPath)
	}
	g.pauseUI = NewPauseUI(g)

	tuning, registry, err := loadRules()
	if err != nil {
		return nil, err
	}
	g.audio = NewAudio(g.loader, nil, settings.Volume)
	g.renderer = NewRenderer(g.loader, nil, nil)
	g.renderer.Debug = opts.debug

	doc, err := g.loadDocument(registry)
	if err != nil {
		g.showError(err)
	} else if err := g.start(doc, tuning, registry, g.startScene(doc)); err != nil {
		g.showError(err)
	}

	if opts.watch {
		if err := g.watch(); err != nil {
			log.Printf("watch: %v", err)
		}
	}
	return g, nil
}

// loadRules reads the tuning files and registers every behavior.
func loadRules() (engine.Tuning, *engine.Registry, error) {
	tuning, err := engine.LoadTuning()
	if err != nil {
		return engine.Tuning{}, nil, fmt.Errorf("tuning: %w", err)
	}
	spec, err := enemy.LoadSpec()
	if err != nil {
		return engine.Tuning{}, nil, fmt.Errorf("enemies: %w", err)
	}
	registry := engine.NewRegistry()
	if err := enemy.Register(registry, spec); err != nil {
		return engine.Tuning{}, nil, err
	}
	return tuning, registry, nil
}

func (g *Game) loadDocument(registry *engine.Registry) (*script.Document, error) {
	opts := script.Options{States: registry}
	if g.opts.scriptPath == "" {
		return script.Load(assets.DefaultDocument(), opts)
	}
	return script.LoadFile(g.opts.scriptPath, opts)
}

// startScene picks the -scene flag, then the saved scene, then the opening
// scene.
func (g *Game) startScene(doc *script.Document) string {
	for _, name := range []string{g.opts.scene, g.settings.LastScene} {
		if _, ok := doc.Scenes[name]; ok && name != "" {
			return name
		}
	}
	return doc.OpeningScene
}

func (g *Game) start(doc *script.Document, tuning engine.Tuning, registry *engine.Registry, scene string) (err error) {
	lib, err := anim.LoadLibrary(doc)
	if err != nil {
		return fmt.Errorf("sprites: %w", err)
	}
	g.audio.SetDocument(doc)
	g.renderer.SetDocument(doc, lib)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	kernel := &engine.Kernel{
		Audio:     g.audio,
		Input:     g.input,
		Sprites:   lib,
		Clock:     g.clock,
		Behaviors: registry,
		Tuning:    tuning,
	}
	g.world = engine.NewWorldAt(doc, kernel, scene)
	g.lastScene = scene
	return nil
}

// reload rebuilds the world from the files on disk, staying in the current
// scene. On failure the old world keeps running.
func (g *Game) reload() {
	if err := g.tryReload(); err != nil {
		g.showError(err)
	}
}

func (g *Game) tryReload() error {
	tuning, registry, err := loadRules()
	if err != nil {
		return err
	}
	doc, err := g.loadDocument(registry)
	if err != nil {
		return err
	}
	scene := g.lastScene
	if _, ok := doc.Scenes[scene]; !ok {
		scene = doc.OpeningScene
	}
	old := g.world
	if err := g.start(doc, tuning, registry, scene); err != nil {
		g.world = old
		if old != nil {
			lib, _ := old.Kernel().Sprites.(*anim.Library)
			g.audio.SetDocument(old.Doc)
			g.renderer.SetDocument(old.Doc, lib)
		}
		return err
	}
	g.errorUI = nil
	log.Printf("reload: %s", scene)
	return nil
}

func (g *Game) watch() error {
	var dirs []string
	for _, dir := range []string{g.loader.Root, "prefabs", filepath.Join("prefabs", "behaviors")} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() && dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(dirs) == 0 {
		return errors.New("nothing to watch")
	}
	w, err := prefabs.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	g.watcher = w
	return nil
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	changed := false
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch: %s changed", path)
			changed = true
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("watch: %v", err)
			}
		default:
			if changed {
				g.reload()
			}
			return
		}
	}
}

func (g *Game) showError(err error) {
	log.Printf("script: %v", err)
	g.errorUI = NewErrorUI(g, err.Error(), g.world != nil)
}

func (g *Game) dismissError() {
	g.errorUI = nil
	if g.world != nil {
		g.world.Resume()
	}
}

func (g *Game) resume() {
	g.paused = false
	if g.world != nil {
		g.world.Resume()
	}
}

func (g *Game) changeVolume(delta float64) {
	g.settings.Volume = min(max(g.settings.Volume+delta, 0), 1)
	g.audio.SetVolume(g.settings.Volume)
	g.saveSettings()
}

func (g *Game) toggleFullscreen() {
	g.settings.Fullscreen = !ebiten.IsFullscreen()
	ebiten.SetFullscreen(g.settings.Fullscreen)
	g.saveSettings()
}

func (g *Game) restartScene() {
	if g.world == nil {
		return
	}
	g.world.Reset(g.world.Active().Name)
	g.resume()
}

func (g *Game) saveSettings() {
	if err := g.settings.Save(); err != nil {
		log.Printf("settings: %v", err)
	}
}

func (g *Game) viewport() viewport {
	vp := viewport{w: baseWidth, h: baseHeight}
	if g.world != nil {
		vp.view = g.world.Active().View
	}
	return vp
}

func (g *Game) Update() error {
	if g.quit {
		g.saveSettings()
		if g.watcher != nil {
			_ = g.watcher.Close()
		}
		return ebiten.Termination
	}
	g.pollWatcher()

	if g.errorUI != nil {
		g.errorUI.Update()
		return nil
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		if g.paused {
			g.resume()
		} else {
			g.paused = true
		}
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}
	if g.world == nil {
		return nil
	}

	g.input.Update(g.viewport())
	g.audio.Update()
	if err := g.tick(); err != nil {
		g.world = nil
		g.showError(err)
		return nil
	}
	if name := g.world.Active().Name; name != g.lastScene {
		g.lastScene = name
		g.settings.LastScene = name
		g.saveSettings()
	}
	return nil
}

// tick runs one world update, turning an engine panic into an error.
func (g *Game) tick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	g.world.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.world != nil {
		g.renderer.Draw(screen, g.world.Active(), g.viewport())
	}
	if g.paused {
		g.pauseUI.Draw(screen)
	}
	if g.errorUI != nil {
		g.errorUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
