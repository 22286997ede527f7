// Command spriteview plays a script document's sprites one at a time, with
// the frame timing the game would use.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/scenescript/anim"
	"github.com/milk9111/scenescript/assets"
	"github.com/milk9111/scenescript/script"
)

const viewSize = 512

type viewer struct {
	loader assets.Loader
	lib    *anim.Library
	names  []string
	index  int
	start  time.Time

	clock  *anim.Clock
	frames []*ebiten.Image
	err    error
}

func (v *viewer) now() float64 {
	return time.Since(v.start).Seconds()
}

// show starts the sprite at index i from its first frame.
func (v *viewer) show(i int) {
	n := len(v.names)
	v.index = (i%n + n) % n
	name := v.names[v.index]
	def, _ := v.lib.Definition(name)
	v.clock = anim.NewClock(name, def.FrameTimes, def.Loops, v.now())
	v.frames, v.err = loadFrames(v.loader, def)
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		v.show(v.index + 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		v.show(v.index - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.clock.Reset(v.now())
	}
	v.clock.Update(v.now())
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x00, 0x00, 0x00, 0xff})
	status := fmt.Sprintf("%s  (%d/%d)  frame %d/%d  finished=%v\nleft/right: sprite  r: restart",
		v.names[v.index], v.index+1, len(v.names), v.clock.Frame()+1, v.clock.Frames(), v.clock.Finished())
	ebitenutil.DebugPrint(screen, status)
	if v.err != nil {
		ebitenutil.DebugPrintAt(screen, v.err.Error(), 8, 48)
		return
	}
	i := v.clock.Frame()
	if i >= len(v.frames) {
		return
	}
	f := v.frames[i]
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64((viewSize-f.Bounds().Dx())/2), float64((viewSize-f.Bounds().Dy())/2))
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(f, op)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewSize, viewSize
}

// loadFrames cuts a sheet into def's frames, row by row. Without a frame
// size the sheet is one row of equal frames.
func loadFrames(loader assets.Loader, def anim.Definition) ([]*ebiten.Image, error) {
	if def.Source == "" {
		return nil, fmt.Errorf("sprite has no source file")
	}
	sheet, err := loader.LoadImage(def.Source)
	if err != nil {
		return nil, err
	}
	count := max(len(def.FrameTimes), 1)
	frameW, frameH := def.FrameWidth, def.FrameHeight
	if frameW <= 0 {
		frameW = sheet.Bounds().Dx() / count
	}
	if frameH <= 0 {
		frameH = sheet.Bounds().Dy()
	}
	if frameW <= 0 || frameH <= 0 {
		return nil, fmt.Errorf("%s is too small for %d frames", def.Source, count)
	}
	cols := max(sheet.Bounds().Dx()/frameW, 1)
	frames := make([]*ebiten.Image, count)
	for i := range frames {
		col := i % cols
		row := i / cols
		r := image.Rect(col*frameW, row*frameH, col*frameW+frameW, row*frameH+frameH)
		frames[i] = sheet.SubImage(r).(*ebiten.Image)
	}
	return frames, nil
}

func main() {
	scriptPath := flag.String("script", "", "script document whose sprites to show; the built-in one if empty")
	flag.Parse()

	var (
		doc    *script.Document
		err    error
		loader assets.Loader
	)
	if *scriptPath == "" {
		doc, err = script.Load(assets.DefaultDocument(), script.Options{})
	} else {
		loader.Root = filepath.Dir(*scriptPath)
		doc, err = script.LoadFile(*scriptPath, script.Options{})
	}
	if err != nil {
		log.Fatal(err)
	}
	if len(doc.SpriteNames) == 0 {
		log.Fatal("document declares no sprites")
	}
	lib, err := anim.LoadLibrary(doc)
	if err != nil {
		log.Fatal(err)
	}

	v := &viewer{loader: loader, lib: lib, names: doc.SpriteNames, start: time.Now()}
	v.show(0)
	ebiten.SetWindowSize(viewSize, viewSize)
	ebiten.SetWindowTitle("spriteview")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
