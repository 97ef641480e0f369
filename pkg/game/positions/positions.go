// Package positions loads the JSON document describing where each image of
// a trial is placed.
package positions

import (
	"context"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"dottap/pkg/engine/assets"
	"dottap/pkg/game/trial"
)

// ErrMalformed is wrapped by every validation failure.
var ErrMalformed = errors.New("malformed position data")

// Load fetches ref and parses it.
func Load(ctx context.Context, f *assets.Fetcher, ref string) ([]trial.Position, error) {
	data, err := f.ReadAll(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("load positions: %w", err)
	}
	ps, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load positions %s: %w", ref, err)
	}
	return ps, nil
}

// Parse validates a document of the form
//
//	{"positions": [{"image": "a.png", "x": 0, "y": 0}, ...]}
func Parse(data []byte) ([]trial.Position, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON: %w", ErrMalformed)
	}

	list := gjson.GetBytes(data, "positions")
	if !list.IsArray() {
		return nil, fmt.Errorf("positions is not an array: %w", ErrMalformed)
	}

	var (
		out []trial.Position
		err error
	)
	list.ForEach(func(key, entry gjson.Result) bool {
		i := int(key.Int())
		if !entry.IsObject() {
			err = fmt.Errorf("entry %d is not an object: %w", i, ErrMalformed)
			return false
		}

		image := entry.Get("image")
		if image.Type != gjson.String || image.String() == "" {
			err = fmt.Errorf("entry %d: image must be a non-empty string: %w", i, ErrMalformed)
			return false
		}
		x, y := entry.Get("x"), entry.Get("y")
		if x.Type != gjson.Number || y.Type != gjson.Number {
			err = fmt.Errorf("entry %d: x and y must be numbers: %w", i, ErrMalformed)
			return false
		}

		out = append(out, trial.Position{
			Image: image.String(),
			X:     x.Float(),
			Y:     y.Float(),
		})
		return true
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
