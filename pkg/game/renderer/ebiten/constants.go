package ebiten

import "image/color"

// Color palette
var (
	colorBackground     = color.RGBA{245, 245, 245, 255} // Light gray page
	colorCanvas         = color.RGBA{255, 255, 255, 255} // White canvas
	colorCanvasBorder   = color.RGBA{210, 210, 215, 255}
	colorText           = color.RGBA{40, 40, 48, 255}
	colorSubtle         = color.RGBA{130, 130, 145, 255}
	colorButton         = color.RGBA{70, 110, 200, 255}  // Enabled Next
	colorButtonDisabled = color.RGBA{190, 195, 205, 255} // Disabled Next
	colorButtonText     = color.RGBA{255, 255, 255, 255}
)

const (
	baseFontSize = 18.0
	minFontSize  = 12.0
)
