package main

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"log"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/scenescript/anim"
	"github.com/milk9111/scenescript/assets"
	"github.com/milk9111/scenescript/ecs"
	"github.com/milk9111/scenescript/ecs/component"
	"github.com/milk9111/scenescript/engine"
	"github.com/milk9111/scenescript/script"
)

const (
	placeholderWidth  = 32
	placeholderHeight = 64
	shadowRadius      = 32
	bulletRadius      = 4
)

var (
	backgroundColor = color.NRGBA{R: 0x1a, G: 0x1c, B: 0x22, A: 0xff}
	boxColor        = color.NRGBA{R: 0x44, G: 0x48, B: 0x55, A: 0xff}
	friendlyColor   = color.NRGBA{R: 0xff, G: 0xe0, B: 0x60, A: 0xff}
	hostileColor    = color.NRGBA{R: 0xff, G: 0x50, B: 0x40, A: 0xff}
)

// viewport maps scene coordinates, with y up and z lifting off the ground,
// onto a screen of the given size.
type viewport struct {
	view engine.View
	w, h float64
}

func (vp viewport) zoom() float64 {
	if vp.view.Zoom <= 0 {
		return 1
	}
	return vp.view.Zoom
}

func (vp viewport) toScreen(x, y, z float64) (float64, float64) {
	k := vp.zoom()
	return (x-vp.view.X)*k + vp.w/2, vp.h/2 - (y+z-vp.view.Y)*k
}

func (vp viewport) toScene(sx, sy float64) (float64, float64) {
	k := vp.zoom()
	return vp.view.X + (sx-vp.w/2)/k, vp.view.Y + (vp.h/2-sy)/k
}

// drawable is one thing sorted into the painter's order.
type drawable struct {
	depth float64
	draw  func(screen *ebiten.Image)
}

// Renderer draws the active scene from the document's sprite sheets. A
// sprite whose sheet cannot be loaded is drawn as a labeled box.
type Renderer struct {
	loader  assets.Loader
	lib     *anim.Library
	doc     *script.Document
	sheets  map[string]*ebiten.Image
	missing map[string]bool
	shadow  *ebiten.Image
	Debug   bool
}

func NewRenderer(loader assets.Loader, lib *anim.Library, doc *script.Document) *Renderer {
	shadow := ebiten.NewImage(shadowRadius*2, shadowRadius*2)
	vector.FillCircle(shadow, shadowRadius, shadowRadius, shadowRadius, color.NRGBA{A: 0x60}, true)
	return &Renderer{
		loader:  loader,
		lib:     lib,
		doc:     doc,
		sheets:  make(map[string]*ebiten.Image),
		missing: make(map[string]bool),
		shadow:  shadow,
	}
}

// SetDocument switches to a reloaded document and its sprite library.
func (r *Renderer) SetDocument(doc *script.Document, lib *anim.Library) {
	r.doc = doc
	r.lib = lib
	r.sheets = make(map[string]*ebiten.Image)
	r.missing = make(map[string]bool)
}

func (r *Renderer) Draw(screen *ebiten.Image, sc *engine.Scene, vp viewport) {
	screen.Fill(backgroundColor)
	r.drawBox(screen, sc, vp)

	var items []drawable
	for _, rem := range sc.Remnants {
		items = append(items, drawable{depth: rem.Position.Y, draw: func(screen *ebiten.Image) {
			r.drawSprite(screen, vp, rem.Sprite, rem.Position.X, rem.Position.Y, 0, rem.Mirror, 0, false)
		}})
	}
	for _, e := range sc.Characters() {
		if item, ok := r.character(sc, vp, e); ok {
			items = append(items, item)
		}
	}
	if item, ok := r.hero(sc, vp); ok {
		items = append(items, item)
	}
	for _, b := range sc.Bullets {
		items = append(items, drawable{depth: b.Pos.Y, draw: func(screen *ebiten.Image) {
			x, y := vp.toScreen(b.Pos.X, b.Pos.Y, b.Height)
			c := hostileColor
			if b.Friendly {
				c = friendlyColor
			}
			vector.FillCircle(screen, float32(x), float32(y), bulletRadius*float32(vp.zoom()), c, true)
		}})
	}

	// Higher y is further away.
	slices.SortStableFunc(items, func(a, b drawable) int {
		switch {
		case a.depth > b.depth:
			return -1
		case a.depth < b.depth:
			return 1
		}
		return 0
	})
	for _, it := range items {
		it.draw(screen)
	}

	if r.Debug {
		r.drawDebug(screen, sc)
	}
}

func (r *Renderer) drawBox(screen *ebiten.Image, sc *engine.Scene, vp viewport) {
	x0, y0 := vp.toScreen(sc.Box.L, sc.Box.T, 0)
	x1, y1 := vp.toScreen(sc.Box.R, sc.Box.B, 0)
	vector.StrokeRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, boxColor, false)
}

func (r *Renderer) character(sc *engine.Scene, vp viewport, e ecs.Entity) (drawable, bool) {
	tr, ok := sc.Transform(e)
	if !ok {
		return drawable{}, false
	}
	app, ok := sc.Appearance(e)
	if !ok || app.Hidden {
		return drawable{}, false
	}
	shadow, hasShadow := sc.Shadow(e)
	override, hasOverride := ecs.Get(sc.Arena, e, component.RenderOverrideComponent.Kind())
	flash := sc.Flashing(e)
	x, y, z, mirror := tr.X, tr.Y, tr.Z, app.Mirror
	sprite := app.Sprite

	return drawable{depth: y, draw: func(screen *ebiten.Image) {
		if hasShadow {
			r.drawShadow(screen, vp, x, y, shadow)
		}
		r.drawSprite(screen, vp, sprite, x, y, z, mirror, 0, flash)
		if hasOverride {
			for _, limb := range override.Limbs {
				dx := limb.OffsetX
				if mirror {
					dx = -dx
				}
				r.drawSprite(screen, vp, limb.Sprite, x+dx, y, z+limb.OffsetZ, mirror, limb.Rotation, flash)
			}
		}
	}}, true
}

func (r *Renderer) hero(sc *engine.Scene, vp viewport) (drawable, bool) {
	h := sc.Hero
	tr, ok := sc.Transform(h.Entity)
	if !ok {
		return drawable{}, false
	}
	app, ok := sc.Appearance(h.Entity)
	if !ok || app.Hidden {
		return drawable{}, false
	}
	shadow, hasShadow := sc.Shadow(h.Entity)
	flash := sc.Flashing(h.Entity)
	x, y, z, mirror := tr.X, tr.Y, tr.Z, app.Mirror
	armHeight := sc.Tuning().Hero.BulletHeight

	var parts []engine.Sprite
	own := h.OwnSprite()
	if own {
		parts = append(parts, h.State().(engine.SpriteRenderer).Sprite())
	} else {
		parts = append(parts, h.Body(sc), h.Head())
	}
	arm := h.Arm()
	armDir := h.ArmDirection

	return drawable{depth: y, draw: func(screen *ebiten.Image) {
		if hasShadow {
			r.drawShadow(screen, vp, x, y, shadow)
		}
		for _, s := range parts {
			r.drawSprite(screen, vp, s, x, y, z, mirror, 0, flash)
		}
		if !own {
			rot := armDir
			if mirror {
				rot -= math.Pi
			}
			r.drawSprite(screen, vp, arm, x, y, z+armHeight, mirror, rot, flash)
		}
	}}, true
}

func (r *Renderer) drawShadow(screen *ebiten.Image, vp viewport, x, y float64, s *component.Shadow) {
	sx, sy := vp.toScreen(x, y, 0)
	k := vp.zoom()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-shadowRadius, -shadowRadius)
	op.GeoM.Scale(s.RX*k/shadowRadius, s.RY*k/shadowRadius)
	op.GeoM.Translate(sx, sy)
	screen.DrawImage(r.shadow, op)
}

// drawSprite draws the current frame of s with its origin at the given scene
// point. rotation is counterclockwise in scene terms.
func (r *Renderer) drawSprite(screen *ebiten.Image, vp viewport, s engine.Sprite, x, y, z float64, mirror bool, rotation float64, flash bool) {
	if s == nil {
		return
	}
	sx, sy := vp.toScreen(x, y, z)
	k := vp.zoom() * script.PixelScale

	frame, ox, oy := r.frame(s)
	if frame == nil {
		w, h := placeholderWidth*k, placeholderHeight*k
		vector.FillRect(screen, float32(sx-w/2), float32(sy-h), float32(w), float32(h), placeholderColor(s.Name(), flash), false)
		ebitenutil.DebugPrintAt(screen, s.Name(), int(sx-w/2), int(sy-h)-16)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-ox, -oy)
	if mirror {
		op.GeoM.Scale(-1, 1)
	}
	op.GeoM.Rotate(-rotation)
	op.GeoM.Scale(k, k)
	op.GeoM.Translate(sx, sy)
	if flash {
		op.ColorScale.Scale(1, 0.35, 0.35, 1)
	}
	screen.DrawImage(frame, op)
}

// frame slices the current frame out of s's sheet and returns it with its
// origin. Sheets are a single row of equal frames unless the library gives a
// frame size.
func (r *Renderer) frame(s engine.Sprite) (*ebiten.Image, float64, float64) {
	def, _ := r.lib.Definition(s.Name())
	sheet := r.sheet(s.Name(), def.Source)
	if sheet == nil {
		return nil, 0, 0
	}
	b := sheet.Bounds()
	fw, fh := def.FrameWidth, def.FrameHeight
	if fw <= 0 {
		fw = b.Dx() / max(len(def.FrameTimes), 1)
	}
	if fh <= 0 {
		fh = b.Dy()
	}
	perRow := max(b.Dx()/max(fw, 1), 1)
	i := s.Frame()
	x0 := b.Min.X + (i%perRow)*fw
	y0 := b.Min.Y + (i/perRow)*fh
	frame := sheet.SubImage(image.Rect(x0, y0, x0+fw, y0+fh)).(*ebiten.Image)

	ox, oy := float64(fw)/2, float64(fh)
	if a, ok := r.doc.Asset(s.Name(), true); ok && a.Origin != nil {
		ox, oy = a.Origin.X, a.Origin.Y
	}
	return frame, ox, oy
}

func (r *Renderer) sheet(name, src string) *ebiten.Image {
	if img, ok := r.sheets[name]; ok {
		return img
	}
	if r.missing[name] {
		return nil
	}
	if src == "" {
		r.missing[name] = true
		return nil
	}
	img, err := r.loader.LoadImage(src)
	if err != nil {
		r.missing[name] = true
		log.Printf("render: sprite %s: %v", name, err)
		return nil
	}
	r.sheets[name] = img
	return img
}

func (r *Renderer) drawDebug(screen *ebiten.Image, sc *engine.Scene) {
	pending := 0
	for _, run := range sc.Runners {
		pending += run.Pending()
	}
	msg := fmt.Sprintf("FPS: %.1f  scene: %s  t=%.2f  step=%.4f\nhero: %s  characters: %d  bullets: %d\nscripts: %d  pending: %d  fight: %d",
		ebiten.ActualFPS(), sc.Name, sc.Time, sc.StepSize,
		sc.Hero.State().Name(), len(sc.Characters()), len(sc.Bullets),
		len(sc.Runners), pending, sc.InFight)
	ebitenutil.DebugPrint(screen, msg)
}

// placeholderColor gives each sprite name a stable color.
func placeholderColor(name string, flash bool) color.NRGBA {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	v := h.Sum32()
	c := color.NRGBA{R: uint8(v>>16) | 0x40, G: uint8(v>>8) | 0x40, B: uint8(v) | 0x40, A: 0xff}
	if flash {
		c = color.NRGBA{R: 0xff, G: 0x60, B: 0x60, A: 0xff}
	}
	return c
}
