package trial

import (
	"errors"
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// ErrPhase is returned when a transition is requested from the wrong phase.
var ErrPhase = errors.New("trial: wrong phase for transition")

// Phase is the stage a trial is in.
type Phase int

const (
	PhaseTest Phase = iota
	PhaseFeedback
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseTest:
		return "test"
	case PhaseFeedback:
		return "feedback"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Tap is one entry of the tap order log. An entry with Count == 0 is the
// index-only marker written on a position's first tap.
type Tap struct {
	Index int
	Count int
}

// IsMarker reports whether the entry is a first-tap marker.
func (t Tap) IsMarker() bool {
	return t.Count == 0
}

// State is the trial-state value object threaded from the test phase into
// the feedback phase. Clicks and Order are shared by reference with the
// result record.
type State struct {
	Positions []Position

	// Clicks maps position index to tap count. Entries are only ever created
	// with a positive count and incremented.
	Clicks map[int]int

	// Order is the append-only tap order log.
	Order []Tap

	phase  Phase
	tapped bool
}

// NewState creates a trial in the test phase.
func NewState(positions []Position) *State {
	return &State{
		Positions: positions,
		Clicks:    make(map[int]int),
		Order:     make([]Tap, 0),
		phase:     PhaseTest,
	}
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	return s.phase
}

// HasTapped reports whether any tap has happened in this trial.
func (s *State) HasTapped() bool {
	return s.tapped
}

// TapAt registers a pointer-down at logical (px, py) and returns the indices
// of the positions that were tapped. Outside the test phase nothing happens.
func (s *State) TapAt(px, py float64) []int {
	if s.phase != PhaseTest {
		return nil
	}

	hits := HitTest(s.Positions, px, py)
	for _, i := range hits {
		s.tap(i)
	}
	return hits
}

// tap records a single tap on position i.
func (s *State) tap(i int) {
	if _, ok := s.Clicks[i]; !ok {
		s.Clicks[i] = 0
		s.Order = append(s.Order, Tap{Index: i})
	}
	s.Clicks[i]++
	s.Order = append(s.Order, Tap{Index: i, Count: s.Clicks[i]})
	s.tapped = true
}

// EnterFeedback moves the trial from the test phase to the feedback phase.
func (s *State) EnterFeedback() error {
	if s.phase != PhaseTest {
		return fmt.Errorf("enter feedback from %s: %w", s.phase, ErrPhase)
	}
	s.phase = PhaseFeedback
	return nil
}

// Finish completes the trial and returns its result record. The phase is
// Done on return, so a result is produced at most once.
func (s *State) Finish(id string) (Result, error) {
	if s.phase != PhaseFeedback {
		return Result{}, fmt.Errorf("finish from %s: %w", s.phase, ErrPhase)
	}
	s.phase = PhaseDone
	return Result{
		TrialID:     id,
		ImageClicks: s.Clicks,
		TapOrder:    s.Order,
	}, nil
}

// TappedIndices returns the set of indices that appear in the order log in
// either entry form.
func (s *State) TappedIndices() mapset.Set[int] {
	tapped := mapset.New[int]()
	for _, t := range s.Order {
		tapped.Put(t.Index)
	}
	return tapped
}
