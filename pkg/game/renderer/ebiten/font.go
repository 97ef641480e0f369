package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// loadFonts parses the embedded Go Regular font.
func (e *EbitenRenderer) loadFonts() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	e.sansFontSource = src
	return nil
}

// getUIFontSize scales the UI font with the displayed canvas.
func (e *EbitenRenderer) getUIFontSize() float64 {
	if e.view == nil {
		return baseFontSize
	}
	size := baseFontSize * e.view.surface.Scale().X
	if size < minFontSize {
		size = minFontSize
	}
	return size
}

// getSansFontFace returns a cached sans-serif font face for UI text
func (e *EbitenRenderer) getSansFontFace() *text.GoTextFace {
	size := e.getUIFontSize()
	if e.cachedSansFace == nil || e.cachedUIFontSize != size {
		e.cachedUIFontSize = size
		e.cachedSansFace = &text.GoTextFace{
			Source: e.sansFontSource,
			Size:   size,
		}
	}
	return e.cachedSansFace
}
