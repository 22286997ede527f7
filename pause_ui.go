package main

import (
	"image/color"
	"strings"

	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
)

// overlayLineWidth is how many characters of an error fit on one line.
const overlayLineWidth = 110

var (
	textColor    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	errorColor   = color.NRGBA{R: 0xff, G: 0x90, B: 0x80, A: 0xff}
	panelColor   = color.NRGBA{A: 200}
	buttonColor  = color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	buttonActive = color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
)

func uiFace() *ebtext.Face {
	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	return &face
}

func newButton(face *ebtext.Face, label string, onClick func()) *widget.Button {
	idle := imageui.NewNineSliceColor(buttonColor)
	pressed := imageui.NewNineSliceColor(buttonActive)
	return widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Pressed: pressed}),
		widget.ButtonOpts.Text(label, face, &widget.ButtonTextColor{Idle: textColor}),
		widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

func newLabel(face *ebtext.Face, s string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, face, c),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

// centeredPanel returns a root container with a vertical panel centered in
// it.
func centeredPanel(minW, minH int) (*widget.Container, *widget.Container) {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(imageui.NewNineSliceColor(panelColor)),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, minH),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return root, panel
}

// NewPauseUI builds the pause menu.
func NewPauseUI(g *Game) *ebitenui.UI {
	face := uiFace()
	root, panel := centeredPanel(baseWidth/2, baseHeight/2)

	panel.AddChild(newLabel(face, "Paused", textColor))
	panel.AddChild(newButton(face, "Resume", g.resume))
	panel.AddChild(newButton(face, "Volume +", func() { g.changeVolume(0.1) }))
	panel.AddChild(newButton(face, "Volume -", func() { g.changeVolume(-0.1) }))
	panel.AddChild(newButton(face, "Toggle fullscreen", g.toggleFullscreen))
	panel.AddChild(newButton(face, "Restart scene", g.restartScene))
	panel.AddChild(newButton(face, "Quit", func() { g.quit = true }))

	return &ebitenui.UI{Container: root}
}

// NewErrorUI shows a script error with a button that copies it. dismissable
// is false when there is no world to go back to.
func NewErrorUI(g *Game, msg string, dismissable bool) *ebitenui.UI {
	face := uiFace()
	root, panel := centeredPanel(baseWidth*3/4, baseHeight/3)

	panel.AddChild(newLabel(face, "Script error", textColor))
	for _, line := range wrapLines(msg, overlayLineWidth) {
		panel.AddChild(newLabel(face, line, errorColor))
	}
	panel.AddChild(newButton(face, "Copy", func() {
		if g.clipboardOK {
			clipboard.Write(clipboard.FmtText, []byte(msg))
		}
	}))
	if dismissable {
		panel.AddChild(newButton(face, "Dismiss", g.dismissError))
	} else {
		panel.AddChild(newButton(face, "Quit", func() { g.quit = true }))
	}

	return &ebitenui.UI{Container: root}
}

// wrapLines splits s on newlines and breaks long lines at spaces where it can.
func wrapLines(s string, width int) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		for len(line) > width {
			cut := strings.LastIndexByte(line[:width], ' ')
			if cut <= 0 {
				cut = width
			}
			out = append(out, line[:cut])
			line = strings.TrimLeft(line[cut:], " ")
		}
		out = append(out, line)
	}
	return out
}
