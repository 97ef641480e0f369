package trial

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/sjson"
)

// Result is the record emitted to the host when the trial completes.
type Result struct {
	TrialID     string
	ImageClicks map[int]int
	TapOrder    []Tap
}

type tapEntry struct {
	Index int `json:"index"`
	Count int `json:"tap_count"`
}

// MarshalJSON encodes the result as
//
//	{"trial_id": "...", "image_clicks": {"0": 1}, "tap_order": [0, {"index": 0, "tap_count": 1}]}
//
// Markers in the tap order are bare indices; the other entries are objects.
func (r Result) MarshalJSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error

	if r.TrialID != "" {
		if out, err = sjson.SetBytes(out, "trial_id", r.TrialID); err != nil {
			return nil, fmt.Errorf("trial_id: %w", err)
		}
	}

	clicks := make(map[string]int, len(r.ImageClicks))
	for idx, n := range r.ImageClicks {
		clicks[strconv.Itoa(idx)] = n
	}
	raw, err := json.Marshal(clicks)
	if err != nil {
		return nil, fmt.Errorf("image_clicks: %w", err)
	}
	if out, err = sjson.SetRawBytes(out, "image_clicks", raw); err != nil {
		return nil, fmt.Errorf("image_clicks: %w", err)
	}

	order := make([]any, 0, len(r.TapOrder))
	for _, t := range r.TapOrder {
		if t.IsMarker() {
			order = append(order, t.Index)
			continue
		}
		order = append(order, tapEntry{Index: t.Index, Count: t.Count})
	}
	if raw, err = json.Marshal(order); err != nil {
		return nil, fmt.Errorf("tap_order: %w", err)
	}
	if out, err = sjson.SetRawBytes(out, "tap_order", raw); err != nil {
		return nil, fmt.Errorf("tap_order: %w", err)
	}

	return out, nil
}
