package capture

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/benedict-anokye-davies/glance/internal/models"
)

// Encode serializes img in the requested format. Quality applies to jpeg
// only; png is always lossless.
func Encode(img image.Image, format models.CaptureFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case models.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("png encode failed: %w", err)
		}
	case models.FormatJPEG:
		if quality < 1 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("jpeg encode failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported capture format %q", format)
	}

	return buf.Bytes(), nil
}
