// Package anim computes the transient animations shown on taps.
package anim

import (
	"math"
	"time"
)

// Wiggle parameters: a short sinusoidal rotation about the image centre.
const (
	WiggleDuration  = 275 * time.Millisecond
	WiggleAmplitude = 3.0
	// WiggleSpeed is the angular frequency in radians per millisecond.
	WiggleSpeed = 0.9
)

// MaxWiggleAngle is the largest rotation a wiggle reaches, in radians.
const MaxWiggleAngle = WiggleAmplitude * math.Pi / 60

// Wiggle is one running rotation animation on a position.
type Wiggle struct {
	Index int
	Start time.Time
}

// NewWiggle starts a wiggle on a position.
func NewWiggle(index int, start time.Time) Wiggle {
	return Wiggle{Index: index, Start: start}
}

// Angle returns the rotation in radians at now.
func (w Wiggle) Angle(now time.Time) float64 {
	return WiggleAngle(now.Sub(w.Start))
}

// Settled reports whether the wiggle has run its course at now.
func (w Wiggle) Settled(now time.Time) bool {
	return now.Sub(w.Start) >= WiggleDuration
}

// WiggleAngle returns the rotation in radians after elapsed time.
func WiggleAngle(elapsed time.Duration) float64 {
	if elapsed <= 0 || elapsed >= WiggleDuration {
		return 0
	}
	ms := float64(elapsed) / float64(time.Millisecond)
	return math.Sin(ms*WiggleSpeed) * MaxWiggleAngle
}

// Prune drops settled wiggles, keeping order.
func Prune(ws []Wiggle, now time.Time) []Wiggle {
	live := ws[:0]
	for _, w := range ws {
		if !w.Settled(now) {
			live = append(live, w)
		}
	}
	return live
}
