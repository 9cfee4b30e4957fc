// Package qr adapts image decoding and the gozxing QR reader to the checker's
// collaborator interfaces.
package qr

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/haukened/linkcheck/internal/link/domain"
	"github.com/haukened/linkcheck/internal/link/services/checker"
)

// Decoder reads QR codes with gozxing. A Decoder is safe for concurrent use: each
// call gets its own reader.
type Decoder struct {
	hints map[gozxing.DecodeHintType]interface{}
}

func NewDecoder() *Decoder {
	return &Decoder{hints: map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}}
}

// Decode returns the QR payload, checker.ErrNoCode when the image has no
// readable code, or another error for invalid input.
func (d *Decoder) Decode(px domain.Pixels) (string, error) {
	if err := px.Validate(); err != nil {
		return "", err
	}
	img := &image.RGBA{
		Pix:    px.RGBA,
		Stride: px.Width * 4,
		Rect:   image.Rect(0, 0, px.Width, px.Height),
	}
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("binarize image: %w", err)
	}

	res, err := qrcode.NewQRCodeReader().Decode(bmp, d.hints)
	if err != nil {
		if isNoCode(err) {
			return "", fmt.Errorf("%w: %v", checker.ErrNoCode, err)
		}
		return "", fmt.Errorf("decode QR code: %w", err)
	}
	return res.GetText(), nil
}

// isNoCode reports whether gozxing failed because nothing decodable was found,
// as opposed to an internal failure.
func isNoCode(err error) bool {
	var (
		notFound gozxing.NotFoundException
		format   gozxing.FormatException
		checksum gozxing.ChecksumException
	)
	return errors.As(err, &notFound) || errors.As(err, &format) || errors.As(err, &checksum)
}

var (
	_ checker.QRDecoder   = (*Decoder)(nil)
	_ checker.ImageLoader = (*ImageLoader)(nil)
)
