package models

import (
	"time"

	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// CaptureFormat is the encoding of captured screen images.
type CaptureFormat string

const (
	FormatPNG  CaptureFormat = "png"
	FormatJPEG CaptureFormat = "jpeg"
)

// ScreenCapture is one accepted capture cycle's image. Immutable after
// creation and discarded after analysis; not persisted by default.
type ScreenCapture struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	DisplayID string        `json:"display_id"`
	Bounds    window.Bounds `json:"bounds"`
	Data      []byte        `json:"-"`
	Format    CaptureFormat `json:"format"`
	Quality   int           `json:"quality"`
}

// TextRegion is one line of recognized text with its confidence and
// position on screen.
type TextRegion struct {
	Text       string        `json:"text"`
	Confidence float64       `json:"confidence"`
	Bounds     window.Bounds `json:"bounds"`
}
