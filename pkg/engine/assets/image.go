package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"time"

	// Registered decoders for image.Decode.
	_ "image/jpeg"
	_ "image/png"
)

// defaultFrameDelay is used for GIF frames that declare no delay.
const defaultFrameDelay = 100 * time.Millisecond

// Animation is a decoded image with one or more frames. Still images have a
// single frame and no delays.
type Animation struct {
	Frames []image.Image
	Delays []time.Duration

	// Once is set for GIFs that play a single time and then hold the last frame.
	Once bool
}

// Duration returns the length of one pass through all frames.
func (a *Animation) Duration() time.Duration {
	var total time.Duration
	for _, d := range a.Delays {
		total += d
	}
	return total
}

// FrameAt returns the index of the frame shown after elapsed time.
func (a *Animation) FrameAt(elapsed time.Duration) int {
	if len(a.Frames) <= 1 {
		return 0
	}
	total := a.Duration()
	if total <= 0 || elapsed < 0 {
		return 0
	}
	if elapsed >= total {
		if a.Once {
			return len(a.Frames) - 1
		}
		elapsed %= total
	}
	for i, d := range a.Delays {
		if elapsed < d {
			return i
		}
		elapsed -= d
	}
	return len(a.Frames) - 1
}

// LoadAnimation fetches ref and decodes every frame when it is a GIF.
func LoadAnimation(ctx context.Context, f *Fetcher, ref string) (*Animation, error) {
	data, err := f.ReadAll(ctx, ref)
	if err != nil {
		return nil, err
	}
	return DecodeAnimation(data, ref)
}

// DecodeAnimation decodes data, compositing GIF frames onto a full-size
// canvas so every frame can be drawn on its own. name is used in errors.
func DecodeAnimation(data []byte, name string) (*Animation, error) {
	if Ext(name) != ".gif" {
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return &Animation{Frames: []image.Image{img}}, nil
	}

	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("decode %s: no frames", name)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	anim := &Animation{Once: g.LoopCount == -1}
	for i, frame := range g.Image {
		var previous *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			previous = cloneRGBA(canvas)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		anim.Frames = append(anim.Frames, cloneRGBA(canvas))

		delay := defaultFrameDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			delay = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		anim.Delays = append(anim.Delays, delay)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = previous
		}
	}

	return anim, nil
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
