package trial

// Outcome is the aggregate classification of a trial's taps.
type Outcome int

const (
	OutcomeHappy Outcome = iota
	OutcomeBad
)

func (o Outcome) String() string {
	if o == OutcomeBad {
		return "bad"
	}
	return "happy"
}

// Outcome classifies the tally: any position tapped more than once is bad,
// everything else (including no taps at all) is happy.
func (s *State) Outcome() Outcome {
	for _, n := range s.Clicks {
		if n > 1 {
			return OutcomeBad
		}
	}
	return OutcomeHappy
}

// Variant selects which feedback image a position gets.
type Variant int

const (
	VariantNoTap Variant = iota
	VariantSingleTap
	VariantMultipleTaps
)

func (v Variant) String() string {
	switch v {
	case VariantSingleTap:
		return "single_tap"
	case VariantMultipleTaps:
		return "multiple_taps"
	default:
		return "no_tap"
	}
}

// FeedbackImages are the image references for each variant.
type FeedbackImages struct {
	SingleTap    string
	MultipleTaps string
	NoTap        string
}

// For returns the image reference for a variant.
func (f FeedbackImages) For(v Variant) string {
	switch v {
	case VariantSingleTap:
		return f.SingleTap
	case VariantMultipleTaps:
		return f.MultipleTaps
	default:
		return f.NoTap
	}
}

// Overlay describes what the feedback screen shows at one position.
// Tapped overlays are drawn as screen-space sprites; untapped ones are drawn
// onto the canvas itself.
type Overlay struct {
	Index    int
	Position Position
	Variant  Variant
	Image    string
	Tapped   bool
}

// Overlays computes the feedback overlay for every position, in index order.
// Tapped membership comes from the order log; the variant from the tally.
func (s *State) Overlays(images FeedbackImages) []Overlay {
	tapped := s.TappedIndices()
	out := make([]Overlay, 0, len(s.Positions))

	for i, p := range s.Positions {
		o := Overlay{Index: i, Position: p, Variant: VariantNoTap}
		if tapped.Has(i) {
			o.Tapped = true
			switch n := s.Clicks[i]; {
			case n == 1:
				o.Variant = VariantSingleTap
			case n > 1:
				o.Variant = VariantMultipleTaps
			default:
				// In the order log but not tallied: nothing to overlay.
				continue
			}
		}
		o.Image = images.For(o.Variant)
		out = append(out, o)
	}

	return out
}
