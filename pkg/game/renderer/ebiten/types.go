// Package ebiten provides the windowed Ebiten renderer for tap trials.
package ebiten

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"dottap/pkg/engine/assets"
	"dottap/pkg/engine/surface"
	"dottap/pkg/game/anim"
	"dottap/pkg/game/session"
	"dottap/pkg/game/trial"
)

// Options configure the window.
type Options struct {
	Title  string
	Width  int
	Height int
	Logger *zap.Logger
}

// sprite is a decoded image or animation uploaded to the GPU. Frames are
// uploaded lazily on first draw.
type sprite struct {
	anim   *assets.Animation
	frames []*ebiten.Image
}

// overlaySprite is a tapped position's feedback image, fixed in screen space
// at the placement computed on entering feedback.
type overlaySprite struct {
	overlay trial.Overlay
	rect    surface.Rect
	sprite  *sprite
}

// trialView is the per-trial presentation state. It is only touched from
// Update and Draw.
type trialView struct {
	session *session.Session
	surface *surface.Surface

	// shown is the phase the view last set itself up for.
	shown trial.Phase

	posDone chan error

	// ready is set once positions have loaded. The session itself is
	// mutated by the loader goroutine, so Draw checks this instead.
	ready   bool
	started time.Time

	// images are the loaded test-phase images (or the untapped feedback
	// images once in feedback), drawn onto the canvas.
	images  surface.DrawList[*sprite]
	loaded  <-chan assets.Loaded
	loadErr <-chan error

	wiggles []anim.Wiggle

	// overlays are indexed like session.Overlays(); nil until loaded or for
	// untapped positions.
	overlays []*overlaySprite

	canvas *ebiten.Image
}

// EbitenRenderer is the Ebiten-based graphical renderer
type EbitenRenderer struct {
	opts   Options
	logger *zap.Logger
	now    func() time.Time

	ctx      context.Context
	sessions []*session.Session
	current  int
	view     *trialView
	err      error
	finished bool

	// Window dimensions from the last Layout
	windowWidth  int
	windowHeight int

	// Font source for UI text
	sansFontSource *text.GoTextFaceSource

	// Cached font face (recreated when the size changes)
	cachedUIFontSize float64
	cachedSansFace   *text.GoTextFace

	touchIDs []ebiten.TouchID

	// Flag to track if we've logged window opening
	windowOpenedLogged bool
}
