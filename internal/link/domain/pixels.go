package domain

import "fmt"

// Pixels is a decoded image handed to a QR decoder: row-major RGBA, 4 bytes per
// pixel, no padding between rows.
type Pixels struct {
	Width  int
	Height int
	RGBA   []byte
}

// Validate checks the buffer length against the dimensions.
func (p Pixels) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", p.Width, p.Height)
	}
	if want := p.Width * p.Height * 4; len(p.RGBA) != want {
		return fmt.Errorf("pixel buffer has %d bytes, want %d", len(p.RGBA), want)
	}
	return nil
}
