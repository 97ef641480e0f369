// Package terminal queries the terminal the headless renderer writes to.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the width and height of the terminal behind f.
// Falls back to defaults if the size cannot be determined.
func GetSize(f *os.File) (width, height int) {
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// GetWidth returns the width of the terminal behind f.
func GetWidth(f *os.File) int {
	width, _ := GetSize(f)
	return width
}

// SupportsColor reports whether f is a terminal and NO_COLOR is unset.
func SupportsColor(f *os.File) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
