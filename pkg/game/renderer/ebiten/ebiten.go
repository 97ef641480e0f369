package ebiten

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"dottap/pkg/engine/assets"
	"dottap/pkg/engine/surface"
	"dottap/pkg/game/renderer"
	"dottap/pkg/game/session"
	"dottap/pkg/game/trial"
)

// New creates a new Ebiten renderer
func New(opts Options) *EbitenRenderer {
	if opts.Width <= 0 {
		opts.Width = surface.DefaultMaxDisplay + 2*surface.DefaultMargin
	}
	if opts.Height <= 0 {
		opts.Height = opts.Width + surface.ButtonGap + surface.ButtonHeight + 2*surface.DefaultMargin
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &EbitenRenderer{
		opts:         opts,
		logger:       opts.Logger,
		now:          time.Now,
		windowWidth:  opts.Width,
		windowHeight: opts.Height,
	}
}

// Run opens the window and presents each session in order. It blocks until
// the last trial finishes, the window is closed, or an error occurs. It must
// be called from the main goroutine.
func (e *EbitenRenderer) Run(ctx context.Context, sessions []*session.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	if err := e.loadFonts(); err != nil {
		return err
	}

	e.ctx = ctx
	e.sessions = sessions
	e.current = 0
	e.beginTrial()

	ebiten.SetWindowSize(e.opts.Width, e.opts.Height)
	ebiten.SetWindowTitle(e.opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(e); err != nil {
		return err
	}
	if e.err != nil {
		return e.err
	}
	if !e.finished {
		return renderer.ErrAborted
	}
	return nil
}

// beginTrial sets up the view for the current session and starts loading
// its positions in the background.
func (e *EbitenRenderer) beginTrial() {
	s := e.sessions[e.current]
	v := &trialView{
		session: s,
		surface: e.newSurface(),
		shown:   trial.PhaseTest,
		posDone: make(chan error, 1),
		started: e.now(),
	}
	e.view = v

	go func() {
		v.posDone <- s.Load(e.ctx)
	}()
	e.logger.Debug("Trial starting", zap.Int("trial", e.current), zap.String("trial_id", s.ID()))
}

// newSurface creates a fresh surface laid out for the current window.
func (e *EbitenRenderer) newSurface() *surface.Surface {
	s := surface.New()
	s.Layout(e.windowWidth, e.windowHeight)
	return s
}

// startImageLoads loads the test-phase images once positions are known.
func (e *EbitenRenderer) startImageLoads() {
	v := e.view
	v.loaded, v.loadErr = assets.LoadEach(e.ctx, v.session.Fetcher(), v.session.ImageRefs())
}

// enterFeedback swaps in a fresh surface and starts loading every overlay.
// Tapped overlays are placed in screen space now and stay there.
func (e *EbitenRenderer) enterFeedback() {
	v := e.view
	v.shown = trial.PhaseFeedback
	v.surface = e.newSurface()
	v.images = surface.DrawList[*sprite]{}
	v.wiggles = nil

	overlays := v.session.Overlays()
	v.overlays = make([]*overlaySprite, len(overlays))
	refs := make([]string, len(overlays))
	for i, o := range overlays {
		refs[i] = o.Image
		if o.Tapped {
			v.overlays[i] = &overlaySprite{
				overlay: o,
				rect:    v.surface.CellRect(o.Position.X, o.Position.Y, trial.CellSize),
			}
		}
	}
	v.loaded, v.loadErr = assets.LoadEach(e.ctx, v.session.Fetcher(), refs)
}

// finishTrial moves on to the next session, or ends the run.
func (e *EbitenRenderer) finishTrial() {
	e.logger.Debug("Trial done", zap.Int("trial", e.current))
	e.current++
	if e.current >= len(e.sessions) {
		e.finished = true
		return
	}
	e.beginTrial()
}

// fail records the first error; Update then terminates the game loop.
func (e *EbitenRenderer) fail(err error) {
	if e.err == nil {
		e.err = fmt.Errorf("trial %d: %w", e.current, err)
	}
}

// pollLoads drains finished loads without blocking.
func (e *EbitenRenderer) pollLoads() {
	v := e.view

	select {
	case err := <-v.posDone:
		if err != nil {
			e.fail(err)
			return
		}
		v.ready = true
		e.startImageLoads()
	default:
	}

drain:
	for v.loaded != nil {
		select {
		case l, ok := <-v.loaded:
			if !ok {
				v.loaded = nil
				break drain
			}
			e.placeLoaded(l)
		default:
			break drain
		}
	}

	if v.loaded == nil && v.loadErr != nil {
		select {
		case err := <-v.loadErr:
			if err != nil && !errors.Is(err, context.Canceled) {
				e.fail(err)
			}
			v.loadErr = nil
		default:
		}
	}
}

// placeLoaded puts a finished image where the current phase wants it.
func (e *EbitenRenderer) placeLoaded(l assets.Loaded) {
	v := e.view
	sp := &sprite{anim: l.Image}

	if v.shown == trial.PhaseTest {
		p := v.session.State().Positions[l.Index]
		v.images.Append(surface.Entry[*sprite]{Index: l.Index, Image: sp, X: p.X, Y: p.Y})
		return
	}

	if o := v.overlays[l.Index]; o != nil {
		o.sprite = sp
		return
	}
	o := v.session.Overlays()[l.Index]
	v.images.Append(surface.Entry[*sprite]{Index: o.Index, Image: sp, X: o.Position.X, Y: o.Position.Y})
}

// Layout tracks the window size; the screen is drawn at device size.
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.windowWidth = outsideWidth
	e.windowHeight = outsideHeight
	if e.view != nil {
		e.view.surface.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
