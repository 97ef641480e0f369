package ebiten

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"dottap/pkg/game/anim"
)

// frame returns the GPU image for the animation frame at elapsed, uploading
// it on first use.
func (s *sprite) frame(elapsed time.Duration) *ebiten.Image {
	if len(s.anim.Frames) == 0 {
		return nil
	}
	if s.frames == nil {
		s.frames = make([]*ebiten.Image, len(s.anim.Frames))
	}
	i := s.anim.FrameAt(elapsed)
	if s.frames[i] == nil {
		s.frames[i] = ebiten.NewImageFromImage(s.anim.Frames[i])
	}
	return s.frames[i]
}

// wiggleAngle returns the current rotation for a position, or 0.
func (v *trialView) wiggleAngle(index int, now time.Time) float64 {
	for _, w := range v.wiggles {
		if w.Index == index {
			return w.Angle(now)
		}
	}
	return 0
}

// startWiggle restarts the wiggle on a position.
func (v *trialView) startWiggle(index int, now time.Time) {
	for i, w := range v.wiggles {
		if w.Index == index {
			v.wiggles[i] = anim.NewWiggle(index, now)
			return
		}
	}
	v.wiggles = append(v.wiggles, anim.NewWiggle(index, now))
}
