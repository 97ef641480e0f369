package plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"dottap/pkg/game/trial"
)

// Host receives each finished trial's result record.
type Host interface {
	FinishTrial(result trial.Result) error
}

// HostFunc adapts a function to Host.
type HostFunc func(result trial.Result) error

// FinishTrial calls f.
func (f HostFunc) FinishTrial(result trial.Result) error {
	return f(result)
}

// JSONLinesHost writes one JSON object per line.
type JSONLinesHost struct {
	mu sync.Mutex
	w  io.Writer
	n  int
}

// NewJSONLinesHost creates a host writing to w.
func NewJSONLinesHost(w io.Writer) *JSONLinesHost {
	return &JSONLinesHost{w: w}
}

// FinishTrial appends result as a line.
func (h *JSONLinesHost) FinishTrial(result trial.Result) error {
	line, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.w.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	h.n++
	return nil
}

// Count returns the number of results written.
func (h *JSONLinesHost) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.n
}
