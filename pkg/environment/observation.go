package environment

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"

	"github.com/agentsim/thorgym/pkg/core"
)

// An Imager converts raw simulator frames into the processed observation:
// resized to the configured resolution and optionally collapsed to a single
// grayscale channel.
type Imager struct {
	height    int
	width     int
	grayscale bool
}

// NewImager creates an Imager producing height x width observations.
func NewImager(height, width int, grayscale bool) *Imager {
	return &Imager{height: height, width: width, grayscale: grayscale}
}

// Channels returns the channel count of produced observations.
func (im *Imager) Channels() int {
	if im.grayscale {
		return 1
	}
	return 3
}

// Observation resizes and converts one frame. Pixel values stay in the
// 0..255 range of the source frame.
func (im *Imager) Observation(frame image.Image) core.Observation {
	resized := transform.Resize(frame, im.width, im.height, transform.Linear)
	if im.grayscale {
		resized = effect.Grayscale(resized)
	}

	channels := im.Channels()
	pixels := make([]uint8, 0, im.height*im.width*channels)
	bounds := resized.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			offset := resized.PixOffset(x, y)
			if im.grayscale {
				// Grayscale RGBA has R == G == B.
				pixels = append(pixels, resized.Pix[offset])
			} else {
				pixels = append(pixels, resized.Pix[offset], resized.Pix[offset+1], resized.Pix[offset+2])
			}
		}
	}

	return core.Observation{
		Height:   im.height,
		Width:    im.width,
		Channels: channels,
		Pixels:   pixels,
	}
}
