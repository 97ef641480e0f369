package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/leonelquinteros/gotext"

	"dottap/pkg/engine/surface"
)

// drawColoredText draws a translated string with its top-left at (x, y).
func (e *EbitenRenderer) drawColoredText(screen *ebiten.Image, key string, x, y float64, col color.Color) {
	face := e.getSansFontFace()

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(col)

	text.Draw(screen, gotext.Get(key), face, op)
}

// drawCenteredText draws a translated string centred in r.
func (e *EbitenRenderer) drawCenteredText(screen *ebiten.Image, key string, r surface.Rect, col color.Color) {
	face := e.getSansFontFace()
	str := gotext.Get(key)
	w, h := text.Measure(str, face, 0)

	op := &text.DrawOptions{}
	op.GeoM.Translate(r.X+(r.W-w)/2, r.Y+(r.H-h)/2)
	op.ColorScale.ScaleWithColor(col)

	text.Draw(screen, str, face, op)
}

// drawButton draws the Next button, greyed out while disabled.
func (e *EbitenRenderer) drawButton(screen *ebiten.Image, enabled bool) {
	r := e.view.surface.ButtonRect()
	bg := colorButtonDisabled
	if enabled {
		bg = colorButton
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), bg, true)
	e.drawCenteredText(screen, "NEXT", r, colorButtonText)
}
