// Package trial holds the state of one tap/feedback trial: the positions,
// the tap tally, the tap order log and the phase the trial is in.
package trial

// Logical canvas and cell dimensions. All positions are expressed in this
// fixed coordinate space regardless of the on-screen size.
const (
	CanvasSize = 600
	CellSize   = 60
)

// Position is one image placed on the canvas. The image occupies a
// CellSize x CellSize square whose top-left corner is (X, Y).
type Position struct {
	Image string
	X     float64
	Y     float64
}

// Contains reports whether the logical point (px, py) falls inside the
// position's square. All four edges are inclusive.
func (p Position) Contains(px, py float64) bool {
	return px >= p.X && px <= p.X+CellSize &&
		py >= p.Y && py <= p.Y+CellSize
}

// Center returns the logical centre of the position's square.
func (p Position) Center() (float64, float64) {
	return p.X + CellSize/2, p.Y + CellSize/2
}

// HitTest returns the indices of every position containing (px, py), in
// index order. Overlapping squares all match.
func HitTest(positions []Position, px, py float64) []int {
	var hits []int
	for i, p := range positions {
		if p.Contains(px, py) {
			hits = append(hits, i)
		}
	}
	return hits
}
