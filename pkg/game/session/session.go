// Package session drives one trial through its test and feedback phases.
// It is backend neutral: renderers feed it logical taps and confirmations and
// draw whatever it reports.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dottap/pkg/engine/assets"
	"dottap/pkg/game/config"
	"dottap/pkg/game/positions"
	"dottap/pkg/game/trial"
)

// ErrNextDisabled is returned by Confirm while the Next button is disabled.
var ErrNextDisabled = errors.New("session: next is disabled")

// FinishFunc receives a trial's result record.
type FinishFunc func(trial.Result) error

// Deps are the collaborators a session needs. Audio is shared by every
// session of a run.
type Deps struct {
	Fetcher *assets.Fetcher
	Audio   *assets.AudioCache
	Logger  *zap.Logger
	Finish  FinishFunc
	Now     func() time.Time
}

// Session is one trial. All methods except Load must be called from the
// goroutine that owns the session (the game loop).
type Session struct {
	id     string
	cfg    config.Trial
	deps   Deps
	logger *zap.Logger

	state *trial.State

	feedbackStart time.Time
	overlays      []trial.Overlay
}

// New creates an unloaded session.
func New(cfg config.Trial, deps Deps) *Session {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Audio == nil {
		deps.Audio = assets.NewAudioCache(assets.FuncSoundFactory(nil))
	}
	id := uuid.NewString()
	return &Session{
		id:     id,
		cfg:    cfg,
		deps:   deps,
		logger: deps.Logger.With(zap.String("trial_id", id)),
	}
}

// ID returns the trial id written into the result record.
func (s *Session) ID() string {
	return s.id
}

// Config returns the trial's options.
func (s *Session) Config() config.Trial {
	return s.cfg
}

// Fetcher returns the fetcher assets are resolved with.
func (s *Session) Fetcher() *assets.Fetcher {
	return s.deps.Fetcher
}

// Load fetches the position file and starts preloading the trial's sounds.
func (s *Session) Load(ctx context.Context) error {
	ps, err := positions.Load(ctx, s.deps.Fetcher, s.cfg.ImagePositions)
	if err != nil {
		return err
	}

	for _, url := range []string{s.cfg.NoFeedbackSound, s.cfg.HappySound, s.cfg.BadSound} {
		s.deps.Audio.Get(url)
	}

	s.state = trial.NewState(ps)
	s.logger.Debug("Positions loaded", zap.Int("count", len(ps)))
	return nil
}

// Loaded reports whether Load has succeeded.
func (s *Session) Loaded() bool {
	return s.state != nil
}

// State returns the trial state, nil before Load.
func (s *Session) State() *trial.State {
	return s.state
}

// Phase returns the current phase. An unloaded session is in the test phase.
func (s *Session) Phase() trial.Phase {
	if s.state == nil {
		return trial.PhaseTest
	}
	return s.state.Phase()
}

// ImageRefs returns the test-phase image of every position, in index order.
func (s *Session) ImageRefs() []string {
	if s.state == nil {
		return nil
	}
	refs := make([]string, len(s.state.Positions))
	for i, p := range s.state.Positions {
		refs[i] = p.Image
	}
	return refs
}

// Tap registers a pointer-down at logical coordinates and returns the
// tapped indices. Each tapped position plays the in-test tap sound.
func (s *Session) Tap(lx, ly float64) []int {
	if s.state == nil {
		return nil
	}

	hits := s.state.TapAt(lx, ly)
	for _, i := range hits {
		s.deps.Audio.Play(s.cfg.NoFeedbackSound)
		s.logger.Debug("Image tapped", zap.Int("index", i), zap.Int("count", s.state.Clicks[i]))
	}
	return hits
}

// NextEnabled reports whether the Next button accepts activation.
func (s *Session) NextEnabled() bool {
	switch s.Phase() {
	case trial.PhaseTest:
		return s.state != nil && s.state.HasTapped()
	case trial.PhaseFeedback:
		return true
	default:
		return false
	}
}

// Confirm activates the Next button: the test phase moves to feedback, the
// feedback phase finishes the trial. The result is delivered at most once;
// if Finish fails the trial stays done and the result is not retried.
func (s *Session) Confirm() error {
	if !s.NextEnabled() {
		return ErrNextDisabled
	}

	switch s.state.Phase() {
	case trial.PhaseTest:
		return s.enterFeedback()
	case trial.PhaseFeedback:
		return s.finish()
	}
	return nil
}

func (s *Session) enterFeedback() error {
	if err := s.state.EnterFeedback(); err != nil {
		return err
	}
	s.feedbackStart = s.deps.Now()

	outcome := s.state.Outcome()
	sound := s.cfg.HappySound
	if outcome == trial.OutcomeBad {
		sound = s.cfg.BadSound
	}
	s.deps.Audio.Play(sound)

	s.overlays = s.state.Overlays(s.cfg.FeedbackImages.Images())
	for i := range s.overlays {
		if s.overlays[i].Tapped {
			s.overlays[i].Image = assets.CacheBust(s.overlays[i].Image, s.feedbackStart)
		}
	}

	s.logger.Info("Feedback", zap.Stringer("outcome", outcome), zap.Int("tapped", len(s.state.Clicks)))
	return nil
}

func (s *Session) finish() error {
	result, err := s.state.Finish(s.id)
	if err != nil {
		return err
	}
	s.logger.Info("Trial finished", zap.Int("taps", len(result.TapOrder)))

	if s.deps.Finish == nil {
		return nil
	}
	if err := s.deps.Finish(result); err != nil {
		return fmt.Errorf("finish trial: %w", err)
	}
	return nil
}

// Outcome classifies the taps so far.
func (s *Session) Outcome() trial.Outcome {
	if s.state == nil {
		return trial.OutcomeHappy
	}
	return s.state.Outcome()
}

// Overlays returns the feedback overlays computed on entering feedback.
// Tapped overlays carry a cache-busted image reference.
func (s *Session) Overlays() []trial.Overlay {
	return s.overlays
}

// FeedbackStart is when the feedback phase began; overlay animations are
// timed from it.
func (s *Session) FeedbackStart() time.Time {
	return s.feedbackStart
}
