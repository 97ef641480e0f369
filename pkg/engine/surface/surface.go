// Package surface manages the fixed-size logical canvas and where it is
// displayed inside the window.
package surface

import "math"

// Layout constants, in screen pixels.
const (
	DefaultLogicalSize = 600
	DefaultMaxDisplay  = 600
	DefaultMargin      = 20

	ButtonGap       = 20
	ButtonHeight    = 52
	ButtonMinWidth  = 150
	ButtonMaxWidth  = 300
	buttonWidthFrac = 0.4
)

// Rect is an axis-aligned rectangle in screen pixels.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether (px, py) lies inside the rectangle, edges included.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Scale is displayed size divided by logical size.
type Scale struct {
	X, Y float64
}

// Surface is a logical canvas plus its current on-screen placement.
type Surface struct {
	Logical    int
	MaxDisplay int
	Margin     int

	outsideW int
}

// New creates a surface with the default 600x600 logical size. Each phase
// creates its own surface; the previous one is simply dropped.
func New() *Surface {
	return &Surface{
		Logical:    DefaultLogicalSize,
		MaxDisplay: DefaultMaxDisplay,
		Margin:     DefaultMargin,
		outsideW:   DefaultMaxDisplay + 2*DefaultMargin,
	}
}

// Layout records the current window size. The canvas is square and sized
// from the width alone, so the height is not kept.
func (s *Surface) Layout(outsideW, _ int) {
	s.outsideW = outsideW
}

// CanvasRect returns where the canvas is displayed: full width up to
// MaxDisplay, square, centred horizontally, Margin from the top.
func (s *Surface) CanvasRect() Rect {
	w := float64(s.outsideW - 2*s.Margin)
	if w > float64(s.MaxDisplay) {
		w = float64(s.MaxDisplay)
	}
	if w < 1 {
		w = 1
	}
	return Rect{
		X: math.Floor((float64(s.outsideW) - w) / 2),
		Y: float64(s.Margin),
		W: w,
		H: w,
	}
}

// ButtonRect returns the placement of the confirmation button under the canvas.
func (s *Surface) ButtonRect() Rect {
	canvas := s.CanvasRect()
	w := canvas.W * buttonWidthFrac
	if w < ButtonMinWidth {
		w = ButtonMinWidth
	}
	if w > ButtonMaxWidth {
		w = ButtonMaxWidth
	}
	return Rect{
		X: math.Floor(canvas.X + (canvas.W-w)/2),
		Y: canvas.Y + canvas.H + ButtonGap,
		W: w,
		H: ButtonHeight,
	}
}

// Scale is recomputed on every call because the window can change size
// between calls.
func (s *Surface) Scale() Scale {
	r := s.CanvasRect()
	return Scale{
		X: r.W / float64(s.Logical),
		Y: r.H / float64(s.Logical),
	}
}

// InCanvas reports whether the device point lies on the displayed canvas.
func (s *Surface) InCanvas(px, py float64) bool {
	return s.CanvasRect().Contains(px, py)
}

// ToLogical converts device coordinates to logical canvas coordinates.
func (s *Surface) ToLogical(px, py float64) (float64, float64) {
	r := s.CanvasRect()
	sc := s.Scale()
	return (px - r.X) / sc.X, (py - r.Y) / sc.Y
}

// ToScreen converts logical canvas coordinates to device coordinates.
func (s *Surface) ToScreen(lx, ly float64) (float64, float64) {
	r := s.CanvasRect()
	sc := s.Scale()
	return r.X + lx*sc.X, r.Y + ly*sc.Y
}

// CellRect returns the screen rectangle of a size x size logical square
// whose top-left corner is (lx, ly).
func (s *Surface) CellRect(lx, ly, size float64) Rect {
	x, y := s.ToScreen(lx, ly)
	sc := s.Scale()
	return Rect{X: x, Y: y, W: size * sc.X, H: size * sc.Y}
}
