// Package ocr wraps an external text-recognition engine. Recognition is
// strictly best-effort: unreadable input yields an empty list, never an
// error that could abort a capture cycle.
package ocr

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/benedict-anokye-davies/glance/internal/models"
	"github.com/benedict-anokye-davies/glance/pkg/window"
)

// Engine recognizes text in an encoded image.
type Engine interface {
	Recognize(ctx context.Context, imageData []byte) ([]models.TextRegion, error)
}

// Tesseract shells out to the tesseract CLI and parses its TSV output.
type Tesseract struct {
	available bool
	warned    bool
}

// NewTesseract probes for the tesseract binary once.
func NewTesseract() *Tesseract {
	_, err := exec.LookPath("tesseract")
	return &Tesseract{available: err == nil}
}

// Available reports whether the tesseract binary was found.
func (t *Tesseract) Available() bool {
	return t.available
}

// Recognize runs tesseract over the image. Any failure -- missing binary,
// unreadable image, killed process -- produces an empty list.
func (t *Tesseract) Recognize(ctx context.Context, imageData []byte) ([]models.TextRegion, error) {
	if !t.available {
		if !t.warned {
			log.Printf("tesseract not found, OCR disabled")
			t.warned = true
		}
		return nil, nil
	}

	tmp := filepath.Join(os.TempDir(), fmt.Sprintf("glance-ocr-%d.png", os.Getpid()))
	if err := os.WriteFile(tmp, imageData, 0600); err != nil {
		log.Printf("OCR temp file write failed: %v", err)
		return nil, nil
	}
	defer os.Remove(tmp)

	out, err := exec.CommandContext(ctx, "tesseract", tmp, "stdout", "--psm", "3", "tsv").Output()
	if err != nil {
		log.Printf("tesseract failed: %v", err)
		return nil, nil
	}

	return ParseTSV(string(out)), nil
}

// ParseTSV groups tesseract's word-level TSV rows back into lines. Rows
// are "level page block par line word left top width height conf text";
// words with negative confidence are separators and skipped.
func ParseTSV(output string) []models.TextRegion {
	type lineKey struct{ block, par, line int }

	type lineAccum struct {
		words   []string
		conf    float64
		n       int
		minX    int
		minY    int
		maxX    int
		maxY    int
	}

	accums := make(map[lineKey]*lineAccum)
	var order []lineKey

	rows := strings.Split(strings.TrimSpace(output), "\n")
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		fields := strings.Split(row, "\t")
		if len(fields) < 12 {
			continue
		}

		level, _ := strconv.Atoi(fields[0])
		if level != 5 { // word rows only
			continue
		}

		conf, err := strconv.ParseFloat(fields[10], 64)
		if err != nil || conf < 0 {
			continue
		}

		text := strings.TrimSpace(fields[11])
		if text == "" {
			continue
		}

		block, _ := strconv.Atoi(fields[2])
		par, _ := strconv.Atoi(fields[3])
		line, _ := strconv.Atoi(fields[4])
		left, _ := strconv.Atoi(fields[6])
		top, _ := strconv.Atoi(fields[7])
		width, _ := strconv.Atoi(fields[8])
		height, _ := strconv.Atoi(fields[9])

		key := lineKey{block, par, line}
		acc, ok := accums[key]
		if !ok {
			acc = &lineAccum{minX: left, minY: top, maxX: left + width, maxY: top + height}
			accums[key] = acc
			order = append(order, key)
		}

		acc.words = append(acc.words, text)
		acc.conf += conf
		acc.n++
		if left < acc.minX {
			acc.minX = left
		}
		if top < acc.minY {
			acc.minY = top
		}
		if left+width > acc.maxX {
			acc.maxX = left + width
		}
		if top+height > acc.maxY {
			acc.maxY = top + height
		}
	}

	regions := make([]models.TextRegion, 0, len(order))
	for _, key := range order {
		acc := accums[key]
		regions = append(regions, models.TextRegion{
			Text:       strings.Join(acc.words, " "),
			Confidence: acc.conf / float64(acc.n) / 100.0,
			Bounds: window.Bounds{
				X:      acc.minX,
				Y:      acc.minY,
				Width:  acc.maxX - acc.minX,
				Height: acc.maxY - acc.minY,
			},
		})
	}
	return regions
}
