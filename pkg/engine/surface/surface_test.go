package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanvasRect_CapsAtMaxDisplay(t *testing.T) {
	s := New()
	s.Layout(1000, 800)

	r := s.CanvasRect()
	assert.Equal(t, Rect{X: 200, Y: 20, W: 600, H: 600}, r)
	assert.Equal(t, Scale{X: 1, Y: 1}, s.Scale())
}

func TestCanvasRect_ShrinksWithWindow(t *testing.T) {
	s := New()
	s.Layout(340, 800)

	r := s.CanvasRect()
	assert.Equal(t, 300.0, r.W)
	assert.Equal(t, 300.0, r.H)
	assert.Equal(t, Scale{X: 0.5, Y: 0.5}, s.Scale())
}

func TestCanvasRect_NeverZero(t *testing.T) {
	s := New()
	s.Layout(10, 10)
	assert.Equal(t, 1.0, s.CanvasRect().W)
}

func TestScale_RecomputedAfterLayout(t *testing.T) {
	s := New()
	s.Layout(640, 700)
	before := s.Scale()
	s.Layout(340, 700)
	after := s.Scale()

	assert.Equal(t, 1.0, before.X)
	assert.Equal(t, 0.5, after.X)
}

func TestToLogical_RoundTrip(t *testing.T) {
	s := New()
	s.Layout(340, 800)

	x, y := s.ToLogical(20+15, 20+15)
	assert.InDelta(t, 30, x, 1e-9)
	assert.InDelta(t, 30, y, 1e-9)

	sx, sy := s.ToScreen(130, 130)
	lx, ly := s.ToLogical(sx, sy)
	assert.InDelta(t, 130, lx, 1e-9)
	assert.InDelta(t, 130, ly, 1e-9)
}

func TestInCanvas(t *testing.T) {
	s := New()
	s.Layout(640, 800)

	assert.True(t, s.InCanvas(20, 20))
	assert.True(t, s.InCanvas(620, 620))
	assert.False(t, s.InCanvas(19, 100))
	assert.False(t, s.InCanvas(100, 621))
}

func TestButtonRect_ClampedAndBelowCanvas(t *testing.T) {
	s := New()
	s.Layout(640, 800)
	b := s.ButtonRect()
	assert.Equal(t, 240.0, b.W)
	assert.Equal(t, 640.0, b.Y)

	s.Layout(200, 800)
	assert.Equal(t, float64(ButtonMinWidth), s.ButtonRect().W)
}

func TestDrawList_NeverDropsEntries(t *testing.T) {
	var d DrawList[string]
	d.Append(Entry[string]{Index: 2, Image: "c"})
	d.Append(Entry[string]{Index: 0, Image: "a"})

	var seen []int
	d.Each(func(e Entry[string]) { seen = append(seen, e.Index) })
	assert.Equal(t, []int{2, 0}, seen)

	d.Append(Entry[string]{Index: 1, Image: "b"})
	assert.Equal(t, 3, d.Len())

	e, ok := d.Find(0)
	assert.True(t, ok)
	assert.Equal(t, "a", e.Image)
	_, ok = d.Find(9)
	assert.False(t, ok)
}

func TestCellRect_ScaledFromLogical(t *testing.T) {
	s := New()
	s.Layout(340, 800)

	assert.Equal(t, Rect{X: 70, Y: 70, W: 30, H: 30}, s.CellRect(100, 100, 60))
}
