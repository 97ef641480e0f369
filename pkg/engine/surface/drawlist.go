package surface

// Entry is one image placed on the logical canvas.
type Entry[T any] struct {
	Index int
	Image T
	X, Y  float64
}

// DrawList holds the images loaded so far. It only ever grows, so a
// re-render after a partial load still draws everything drawn before.
type DrawList[T any] struct {
	entries []Entry[T]
}

// Append adds a loaded image.
func (d *DrawList[T]) Append(e Entry[T]) {
	d.entries = append(d.entries, e)
}

// Len returns the number of entries.
func (d *DrawList[T]) Len() int {
	return len(d.entries)
}

// Each calls fn for every entry in load order.
func (d *DrawList[T]) Each(fn func(e Entry[T])) {
	for _, e := range d.entries {
		fn(e)
	}
}

// Find returns the entry for a position index.
func (d *DrawList[T]) Find(index int) (Entry[T], bool) {
	for _, e := range d.entries {
		if e.Index == index {
			return e, true
		}
	}
	var zero Entry[T]
	return zero, false
}
