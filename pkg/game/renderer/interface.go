package renderer

import (
	"context"
	"errors"

	"dottap/pkg/game/session"
)

// ErrAborted is returned by Run when the participant quits before every
// trial has finished.
var ErrAborted = errors.New("renderer: aborted by participant")

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleImage
	StyleAction
	StyleActionShort
	StyleDenied
	StyleSubtle
	StyleHappy
	StyleBad
)

// Renderer is a presentation backend. Implementations include a windowed
// Ebiten backend and a scripted terminal backend.
type Renderer interface {
	// Run presents each session in order. It returns once every session has
	// finished, the context is cancelled, or the participant aborts.
	Run(ctx context.Context, sessions []*session.Session) error
}
