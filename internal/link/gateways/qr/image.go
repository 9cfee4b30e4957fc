package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/haukened/linkcheck/internal/link/domain"
)

// DefaultMaxPixels bounds decoded image size (roughly an 8K square).
const DefaultMaxPixels = 8192 * 8192

// ImageLoader decodes PNG, JPEG and GIF images into RGBA pixels.
type ImageLoader struct {
	maxPixels int
}

// NewImageLoader returns a loader rejecting images above maxPixels pixels.
// maxPixels <= 0 selects DefaultMaxPixels.
func NewImageLoader(maxPixels int) *ImageLoader {
	if maxPixels <= 0 {
		maxPixels = DefaultMaxPixels
	}
	return &ImageLoader{maxPixels: maxPixels}
}

// Load checks the image header against the pixel limit before decoding the body.
func (l *ImageLoader) Load(data []byte) (domain.Pixels, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.Pixels{}, fmt.Errorf("read image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width*cfg.Height > l.maxPixels {
		return domain.Pixels{}, fmt.Errorf("%s image %dx%d exceeds limit of %d pixels", format, cfg.Width, cfg.Height, l.maxPixels)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.Pixels{}, fmt.Errorf("decode %s image: %w", format, err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return domain.Pixels{Width: b.Dx(), Height: b.Dy(), RGBA: rgba.Pix}, nil
}
