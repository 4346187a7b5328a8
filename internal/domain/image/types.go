package image

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput marks a missing or empty upload payload.
	ErrInvalidInput = errors.New("no image payload supplied")
	// ErrDecode marks bytes that cannot be parsed as a supported raster image.
	ErrDecode = errors.New("image decode failed")
)

// PixelBuffer is the flat raster handed to the analysis core: one byte per
// channel in fixed R, G, B, A order, stride 4, row-major. The alpha channel
// is always present even when the source image had none.
type PixelBuffer struct {
	Pix    []uint8
	Width  int
	Height int
}

// Validate checks the stride invariant: len(Pix) == Width*Height*4 with
// positive dimensions.
func (b *PixelBuffer) Validate() error {
	if b == nil {
		return fmt.Errorf("nil pixel buffer")
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", b.Width, b.Height)
	}
	if expected := b.Width * b.Height * 4; len(b.Pix) != expected {
		return fmt.Errorf("pixel data length %d does not match %dx%dx4=%d",
			len(b.Pix), b.Width, b.Height, expected)
	}
	return nil
}

// PixelCount returns the number of pixels in the buffer.
func (b *PixelBuffer) PixelCount() int {
	return b.Width * b.Height
}

// ValidationResult captures the outcome of payload validation.
type ValidationResult struct {
	IsValid  bool
	Format   string
	Width    int
	Height   int
	FileSize int64
	Err      error
}
