package main

import (
	"fmt"
	"math"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/scenescript/engine"
)

// statusRows are the terminal rows kept for the status line.
const statusRows = 1

var (
	boxStyle      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	heroStyle     = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	enemyStyle    = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	flashStyle    = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	remnantStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	friendlyStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	hostileStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	statusStyle   = tcell.StyleDefault.Reverse(true)
)

// grid maps a scene box onto a terminal of w by h cells, with y up.
type grid struct {
	box  cp.BB
	w, h int
}

func (g grid) cell(x, y float64) (int, int) {
	rows := g.h - statusRows
	col := int(math.Floor((x - g.box.L) / (g.box.R - g.box.L) * float64(g.w-1)))
	row := int(math.Floor((g.box.T - y) / (g.box.T - g.box.B) * float64(rows-1)))
	return col, row
}

func (g grid) scene(col, row int) (float64, float64) {
	rows := g.h - statusRows
	x := g.box.L + (float64(col)+0.5)/float64(g.w-1)*(g.box.R-g.box.L)
	y := g.box.T - (float64(row)+0.5)/float64(rows-1)*(g.box.T-g.box.B)
	return x, y
}

func (g grid) inside(col, row int) bool {
	return col >= 0 && col < g.w && row >= 0 && row < g.h-statusRows
}

// glyphOf picks a character's glyph: its name's first letter.
func glyphOf(name string) rune {
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
	}
	return '?'
}

func draw(screen tcell.Screen, sc *engine.Scene) {
	w, h := screen.Size()
	screen.Clear()
	if w < 4 || h < 4 {
		screen.Show()
		return
	}
	g := grid{box: sc.Box, w: w, h: h}

	for col := 0; col < w; col++ {
		screen.SetContent(col, 0, '-', nil, boxStyle)
		screen.SetContent(col, h-statusRows-1, '-', nil, boxStyle)
	}

	put := func(x, y float64, r rune, style tcell.Style) {
		col, row := g.cell(x, y)
		if g.inside(col, row) {
			screen.SetContent(col, row, r, nil, style)
		}
	}

	for _, rem := range sc.Remnants {
		put(rem.Position.X, rem.Position.Y, '%', remnantStyle)
	}
	for _, e := range sc.Characters() {
		tr, ok := sc.Transform(e)
		if !ok {
			continue
		}
		if app, ok := sc.Appearance(e); ok && app.Hidden {
			continue
		}
		style := enemyStyle
		if sc.Flashing(e) {
			style = flashStyle
		}
		put(tr.X, tr.Y, glyphOf(sc.NameOf(e)), style)
	}
	for _, b := range sc.Bullets {
		style := hostileStyle
		if b.Friendly {
			style = friendlyStyle
		}
		put(b.Pos.X, b.Pos.Y, '*', style)
	}
	if app, ok := sc.Appearance(sc.Hero.Entity); !ok || !app.Hidden {
		style := heroStyle
		if sc.Flashing(sc.Hero.Entity) {
			style = flashStyle
		}
		pos := sc.HeroPosition()
		put(pos.X, pos.Y, '@', style)
	}

	damage := 0.0
	if health, ok := sc.Health(sc.Hero.Entity); ok {
		damage = health.Damage
	}
	status := fmt.Sprintf(" %s  t=%.1f  hero:%s  hits %g/%g  fight:%d  bullets:%d  [q quits]",
		sc.Name, sc.Time, sc.Hero.State().Name(), damage, sc.Info.HeroHealth, sc.InFight, len(sc.Bullets))
	for col := 0; col < w; col++ {
		r := ' '
		if col < len(status) {
			r = rune(status[col])
		}
		screen.SetContent(col, h-1, r, nil, statusStyle)
	}
	screen.Show()
}
