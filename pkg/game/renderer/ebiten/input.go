package ebiten

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	engineinput "dottap/pkg/engine/input"
	"dottap/pkg/game/anim"
	"dottap/pkg/game/session"
	"dottap/pkg/game/trial"
)

// Update handles input and trial logic (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		e.logger.Info("Window opened", zap.Int("width", w), zap.Int("height", h))
	}

	if e.finished || e.err != nil {
		return ebiten.Termination
	}
	if err := e.ctx.Err(); err != nil {
		e.err = err
		return ebiten.Termination
	}

	e.pollLoads()
	if e.err != nil {
		return ebiten.Termination
	}

	v := e.view
	v.wiggles = anim.Prune(v.wiggles, e.now())

	for _, raw := range e.checkInput() {
		intent := engineinput.Resolve(raw)
		if quit := e.handleIntent(intent); quit {
			return ebiten.Termination
		}
		if e.view != v {
			// The trial changed; remaining input belongs to the old one.
			break
		}
	}

	if e.finished || e.err != nil {
		return ebiten.Termination
	}
	return nil
}

// checkInput collects this tick's raw events (1st layer).
func (e *EbitenRenderer) checkInput() []engineinput.RawInput {
	now := e.now()
	var raws []engineinput.RawInput

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		raws = append(raws, engineinput.RawInput{
			Device: engineinput.DeviceMouse, Code: "mouse_left",
			X: float64(x), Y: float64(y), Timestamp: now,
		})
	}

	e.touchIDs = inpututil.AppendJustPressedTouchIDs(e.touchIDs[:0])
	for _, id := range e.touchIDs {
		x, y := ebiten.TouchPosition(id)
		raws = append(raws, engineinput.RawInput{
			Device: engineinput.DeviceTouch, Code: "touch",
			X: float64(x), Y: float64(y), Timestamp: now,
		})
	}

	keys := []struct {
		key  ebiten.Key
		code string
	}{
		{ebiten.KeyEnter, "enter"},
		{ebiten.KeyNumpadEnter, "numpad_enter"},
		{ebiten.KeyEscape, "escape"},
		{ebiten.KeyF12, "f12"},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			raws = append(raws, engineinput.RawInput{Device: engineinput.DeviceKeyboard, Code: k.code, Timestamp: now})
		}
	}

	return raws
}

// handleIntent applies one intent. It reports whether the run should stop.
func (e *EbitenRenderer) handleIntent(intent engineinput.Intent) bool {
	v := e.view

	switch intent.Action {
	case engineinput.ActionQuit:
		e.logger.Info("Aborted by participant")
		return true

	case engineinput.ActionConfirm:
		e.confirm()

	case engineinput.ActionSnapshot:
		e.saveSnapshot()

	case engineinput.ActionPointerDown:
		if !v.ready {
			return false
		}
		if v.surface.ButtonRect().Contains(intent.X, intent.Y) {
			e.confirm()
			return false
		}
		if v.shown != trial.PhaseTest || !v.surface.InCanvas(intent.X, intent.Y) {
			return false
		}
		lx, ly := v.surface.ToLogical(intent.X, intent.Y)
		now := e.now()
		for _, i := range v.session.Tap(lx, ly) {
			// Images still loading are tallied but not animated.
			if _, ok := v.images.Find(i); ok {
				v.startWiggle(i, now)
			}
		}
	}
	return false
}

// confirm activates the Next button.
func (e *EbitenRenderer) confirm() {
	v := e.view
	if !v.ready {
		return
	}
	err := v.session.Confirm()
	if errors.Is(err, session.ErrNextDisabled) {
		return
	}
	if err != nil {
		e.fail(err)
		return
	}

	switch v.session.Phase() {
	case trial.PhaseFeedback:
		e.enterFeedback()
	case trial.PhaseDone:
		e.finishTrial()
	}
}
