package anim

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWiggleAngle_ZeroAtStartAndAfterSettle(t *testing.T) {
	assert.Equal(t, 0.0, WiggleAngle(0))
	assert.Equal(t, 0.0, WiggleAngle(WiggleDuration))
	assert.Equal(t, 0.0, WiggleAngle(time.Second))
}

func TestWiggleAngle_Bounded(t *testing.T) {
	for ms := 1; ms < 275; ms++ {
		a := WiggleAngle(time.Duration(ms) * time.Millisecond)
		if math.Abs(a) > MaxWiggleAngle+1e-12 {
			t.Fatalf("WiggleAngle(%dms) = %v, exceeds %v", ms, a, MaxWiggleAngle)
		}
	}
}

func TestWiggleAngle_MatchesSine(t *testing.T) {
	got := WiggleAngle(10 * time.Millisecond)
	want := math.Sin(9) * 3 * math.Pi / 60
	assert.InDelta(t, want, got, 1e-12)
}

func TestWiggle_SettledAndPrune(t *testing.T) {
	start := time.Unix(100, 0)
	ws := []Wiggle{NewWiggle(0, start), NewWiggle(1, start.Add(200*time.Millisecond))}

	now := start.Add(300 * time.Millisecond)
	assert.True(t, ws[0].Settled(now))
	assert.False(t, ws[1].Settled(now))

	live := Prune(ws, now)
	assert.Len(t, live, 1)
	assert.Equal(t, 1, live[0].Index)
}
