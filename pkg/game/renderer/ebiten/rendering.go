package ebiten

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"dottap/pkg/engine/surface"
	"dottap/pkg/game/trial"
)

// Draw renders the current trial (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	v := e.view
	if v == nil {
		return
	}

	r := v.surface.CanvasRect()
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colorCanvas, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, colorCanvasBorder, false)

	if !v.ready {
		e.drawCenteredText(screen, "LOADING", r, colorSubtle)
		return
	}

	e.renderCanvas()
	op := &ebiten.DrawImageOptions{}
	sc := v.surface.Scale()
	op.GeoM.Scale(sc.X, sc.Y)
	op.GeoM.Translate(r.X, r.Y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(v.canvas, op)

	if v.shown == trial.PhaseFeedback {
		e.drawOverlays(screen)
	}

	e.drawButton(screen, v.session.NextEnabled())

	prompt := "TAP_PROMPT"
	if v.shown == trial.PhaseFeedback {
		prompt = "FEEDBACK_PROMPT"
	}
	b := v.surface.ButtonRect()
	e.drawColoredText(screen, prompt, r.X, b.Y+b.H+float64(surface.ButtonGap)/2, colorText)
}

// renderCanvas clears the logical canvas and draws every loaded image at its
// logical position, rotating wiggling ones about their centre.
func (e *EbitenRenderer) renderCanvas() {
	v := e.view
	if v.canvas == nil {
		size := v.surface.Logical
		v.canvas = ebiten.NewImage(size, size)
	}
	v.canvas.Clear()

	now := e.now()
	elapsed := now.Sub(v.started)
	if v.shown == trial.PhaseFeedback {
		elapsed = now.Sub(v.session.FeedbackStart())
	}

	v.images.Each(func(en surface.Entry[*sprite]) {
		img := en.Image.frame(elapsed)
		if img == nil {
			return
		}
		b := img.Bounds()
		half := float64(trial.CellSize) / 2

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(trial.CellSize)/float64(b.Dx()), float64(trial.CellSize)/float64(b.Dy()))
		op.GeoM.Translate(-half, -half)
		if angle := v.wiggleAngle(en.Index, now); angle != 0 {
			op.GeoM.Rotate(angle)
		}
		op.GeoM.Translate(en.X+half, en.Y+half)
		op.Filter = ebiten.FilterLinear
		v.canvas.DrawImage(img, op)
	})
}

// drawOverlays draws tapped positions' feedback images at the screen
// placement fixed on entering feedback. Animations run from that moment.
func (e *EbitenRenderer) drawOverlays(screen *ebiten.Image) {
	v := e.view
	elapsed := e.now().Sub(v.session.FeedbackStart())

	for _, o := range v.overlays {
		if o == nil || o.sprite == nil {
			continue
		}
		img := o.sprite.frame(elapsed)
		if img == nil {
			continue
		}
		b := img.Bounds()

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(o.rect.W/float64(b.Dx()), o.rect.H/float64(b.Dy()))
		op.GeoM.Translate(o.rect.X, o.rect.Y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}
