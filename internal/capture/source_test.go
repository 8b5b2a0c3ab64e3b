package capture

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/window"
)

func twoDisplays() []Display {
	return []Display{
		{ID: "display-0", Primary: true, Bounds: window.Bounds{Width: 1920, Height: 1080}},
		{ID: "display-1", Bounds: window.Bounds{X: 1920, Width: 2560, Height: 1440}},
	}
}

func TestResolveDisplay(t *testing.T) {
	tests := []struct {
		name      string
		displays  []Display
		target    string
		wantID    string
		wantFound bool
	}{
		{"empty target picks primary", twoDisplays(), "", "display-0", true},
		{"explicit target found", twoDisplays(), "display-1", "display-1", true},
		{"missing target falls back to primary", twoDisplays(), "display-9", "display-0", false},
		{"no displays", nil, "display-0", "", false},
		{
			name: "no primary flag falls back to first",
			displays: []Display{
				{ID: "a"},
				{ID: "b"},
			},
			target:    "",
			wantID:    "a",
			wantFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ResolveDisplay(tt.displays, tt.target)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantFound, found)
		})
	}
}

func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodePNG(t *testing.T) {
	data, err := Encode(testImage(), models.FormatPNG, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "png magic bytes expected")
}

func TestEncodeJPEG(t *testing.T) {
	data, err := Encode(testImage(), models.FormatJPEG, 80)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte{0xFF, 0xD8}), "jpeg magic bytes expected")
}

func TestEncodeJPEGClampsQuality(t *testing.T) {
	// Out-of-range quality falls back to the codec default instead of
	// failing the capture.
	_, err := Encode(testImage(), models.FormatJPEG, 0)
	assert.NoError(t, err)

	_, err = Encode(testImage(), models.FormatJPEG, 400)
	assert.NoError(t, err)
}

func TestEncodeUnknownFormat(t *testing.T) {
	_, err := Encode(testImage(), models.CaptureFormat("bmp"), 80)
	assert.Error(t, err)
}
