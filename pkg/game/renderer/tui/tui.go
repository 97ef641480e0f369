// Package tui is the headless renderer: it reads a tap script and reports
// each trial's progress as coloured terminal text.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"dottap/pkg/engine/input"
	"dottap/pkg/engine/surface"
	"dottap/pkg/game/devtools"
	"dottap/pkg/game/renderer"
	"dottap/pkg/game/session"
	"dottap/pkg/game/trial"
)

// ErrScriptExhausted is returned when the script ends before every trial
// has finished.
var ErrScriptExhausted = errors.New("tui: tap script ended before the trial finished")

// DefaultDisplayWidth is the simulated on-screen canvas width.
const DefaultDisplayWidth = surface.DefaultMaxDisplay

// Options configure the headless renderer.
type Options struct {
	// Script supplies participant input.
	Script io.Reader

	// Out receives progress output.
	Out io.Writer

	// Interactive prompts before each script line.
	Interactive bool

	// DisplayWidth is the width, in device pixels, the canvas is displayed
	// at. Script coordinates are relative to the simulated window.
	DisplayWidth int

	// Width is the terminal width used for rules.
	Width int

	// SnapshotPath, when set, receives an HTML snapshot on every feedback
	// phase entry.
	SnapshotPath string

	Logger *zap.Logger
}

// TUIRenderer is the terminal-based renderer implementation
type TUIRenderer struct {
	opts   Options
	script *input.Script
	logger *zap.Logger
}

// New creates a new TUI renderer
func New(opts Options) *TUIRenderer {
	if opts.DisplayWidth <= 0 {
		opts.DisplayWidth = DefaultDisplayWidth
	}
	if opts.Width <= 0 {
		opts.Width = 60
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	var prompt io.Writer
	if opts.Interactive {
		prompt = opts.Out
	}

	return &TUIRenderer{
		opts:   opts,
		script: input.NewScript(opts.Script, prompt),
		logger: opts.Logger,
	}
}

// Surface returns the simulated surface: a window just wide enough to show
// the canvas at DisplayWidth.
func (t *TUIRenderer) Surface() *surface.Surface {
	s := surface.New()
	w := t.opts.DisplayWidth + 2*s.Margin
	s.Layout(w, w+surface.ButtonGap+surface.ButtonHeight+s.Margin)
	return s
}

// Run plays each session in order against the script.
func (t *TUIRenderer) Run(ctx context.Context, sessions []*session.Session) error {
	for i, s := range sessions {
		if err := t.runTrial(ctx, i, len(sessions), s); err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
	}
	return nil
}

func (t *TUIRenderer) runTrial(ctx context.Context, n, total int, s *session.Session) error {
	out := t.opts.Out

	fmt.Fprintln(out, renderer.Rule(t.opts.Width, gotext.Get("TRIAL_HEADER", n+1, total)))
	renderer.PrintBullet(out, "GT{LOADING}")
	if err := s.Load(ctx); err != nil {
		return err
	}
	t.printPositions(s)
	renderer.PrintBullet(out, "GT{TAP_PROMPT}")

	surf := t.Surface()

	for s.Phase() != trial.PhaseDone {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, err := t.script.Next(gotext.Get("SCRIPT_PROMPT"))
		if errors.Is(err, io.EOF) {
			return ErrScriptExhausted
		}
		if err != nil {
			return err
		}

		intent := input.Resolve(raw)
		t.logger.Debug("Intent", zap.String("action", input.ActionName(intent.Action)), zap.Int("line", t.script.Line()))

		switch intent.Action {
		case input.ActionPointerDown:
			t.tap(s, surf, intent.X, intent.Y)
		case input.ActionConfirm:
			if err := t.confirm(s, surf, n, total); err != nil {
				return err
			}
		case input.ActionSnapshot:
			t.snapshot(s, surf, t.opts.SnapshotPath, n, total)
		case input.ActionQuit:
			return renderer.ErrAborted
		}
	}

	renderer.PrintBullet(out, "%s", gotext.Get("TRIAL_DONE", n+1))
	return nil
}

func (t *TUIRenderer) printPositions(s *session.Session) {
	for i, p := range s.State().Positions {
		renderer.PrintBullet(t.opts.Out, "IMG{%d} %s (%.0f, %.0f)", i, p.Image, p.X, p.Y)
	}
}

func (t *TUIRenderer) tap(s *session.Session, surf *surface.Surface, x, y float64) {
	if !surf.InCanvas(x, y) || s.Phase() != trial.PhaseTest {
		return
	}

	lx, ly := surf.ToLogical(x, y)
	hits := s.Tap(lx, ly)
	if len(hits) == 0 {
		renderer.PrintBullet(t.opts.Out, "%s", renderer.StyleText(gotext.Get("MISSED", lx, ly), renderer.StyleSubtle))
		return
	}
	for _, i := range hits {
		renderer.PrintBullet(t.opts.Out, "%s", gotext.Get("TAPPED", i, s.State().Clicks[i]))
	}
}

func (t *TUIRenderer) confirm(s *session.Session, surf *surface.Surface, n, total int) error {
	err := s.Confirm()
	if errors.Is(err, session.ErrNextDisabled) {
		renderer.PrintBullet(t.opts.Out, "DENIED{%s}", gotext.Get("NEXT_DISABLED"))
		return nil
	}
	if err != nil {
		return err
	}

	if s.Phase() == trial.PhaseFeedback {
		t.printFeedback(s)
		if t.opts.SnapshotPath != "" {
			t.snapshot(s, surf, t.opts.SnapshotPath, n, total)
		}
	}
	return nil
}

func (t *TUIRenderer) printFeedback(s *session.Session) {
	out := t.opts.Out
	fmt.Fprintln(out, renderer.Rule(t.opts.Width, gotext.Get("FEEDBACK_PROMPT")))

	if s.Outcome() == trial.OutcomeBad {
		renderer.PrintBullet(out, "%s", renderer.StyleText(gotext.Get("OUTCOME_BAD"), renderer.StyleBad))
	} else {
		renderer.PrintBullet(out, "%s", renderer.StyleText(gotext.Get("OUTCOME_HAPPY"), renderer.StyleHappy))
	}
	for _, o := range s.Overlays() {
		style := renderer.StyleSubtle
		if o.Tapped {
			style = renderer.StyleImage
		}
		renderer.PrintBullet(out, "%s", renderer.StyleText(gotext.Get("OVERLAY_LINE", o.Index, o.Variant.String()), style))
	}
}

func (t *TUIRenderer) snapshot(s *session.Session, surf *surface.Surface, path string, n, total int) {
	if s.Phase() != trial.PhaseFeedback {
		return
	}
	if total > 1 {
		path = devtools.IndexedPath(path, n)
	}
	name, err := devtools.SaveFeedbackHTML(path, s, surf.Scale(), time.Now())
	if err != nil {
		t.logger.Warn("Snapshot failed", zap.Error(err))
		return
	}
	renderer.PrintBullet(t.opts.Out, "%s", gotext.Get("SNAPSHOT_WRITTEN", name))
}
