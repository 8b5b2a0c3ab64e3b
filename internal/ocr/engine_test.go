package ocr

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tsvHeader = "level\tpage_num\tblock_num\tpar_num\tline_num\tword_num\tleft\ttop\twidth\theight\tconf\ttext"

func tsvRow(level, block, par, line, word, left, top, width, height int, conf, text string) string {
	cols := []string{
		strconv.Itoa(level), "1", strconv.Itoa(block), strconv.Itoa(par),
		strconv.Itoa(line), strconv.Itoa(word), strconv.Itoa(left),
		strconv.Itoa(top), strconv.Itoa(width), strconv.Itoa(height), conf, text,
	}
	return strings.Join(cols, "\t")
}

func TestParseTSVGroupsWordsIntoLines(t *testing.T) {
	output := strings.Join([]string{
		tsvHeader,
		tsvRow(5, 1, 1, 1, 1, 10, 20, 40, 12, "96.5", "package"),
		tsvRow(5, 1, 1, 1, 2, 55, 20, 30, 12, "93.5", "main"),
		tsvRow(5, 1, 1, 2, 1, 10, 40, 50, 12, "88.0", "import"),
	}, "\n")

	regions := ParseTSV(output)
	require.Len(t, regions, 2)

	first := regions[0]
	assert.Equal(t, "package main", first.Text)
	assert.InDelta(t, 0.95, first.Confidence, 0.001) // (96.5+93.5)/2/100
	assert.Equal(t, 10, first.Bounds.X)
	assert.Equal(t, 20, first.Bounds.Y)
	assert.Equal(t, 75, first.Bounds.Width) // 55+30-10
	assert.Equal(t, 12, first.Bounds.Height)

	assert.Equal(t, "import", regions[1].Text)
}

func TestParseTSVSkipsNonWordRows(t *testing.T) {
	output := strings.Join([]string{
		tsvHeader,
		tsvRow(1, 1, 0, 0, 0, 0, 0, 100, 100, "-1", ""),  // page row
		tsvRow(4, 1, 1, 1, 1, 0, 0, 100, 12, "-1", ""),   // line row
		tsvRow(5, 1, 1, 1, 1, 0, 0, 40, 12, "-1.0", "x"), // separator word
		tsvRow(5, 1, 1, 1, 2, 0, 0, 40, 12, "90", "  "),  // whitespace text
		tsvRow(5, 1, 1, 1, 3, 0, 0, 40, 12, "90", "real"),
	}, "\n")

	regions := ParseTSV(output)
	require.Len(t, regions, 1)
	assert.Equal(t, "real", regions[0].Text)
}

func TestParseTSVEmptyAndMalformed(t *testing.T) {
	assert.Empty(t, ParseTSV(""))
	assert.Empty(t, ParseTSV(tsvHeader))
	assert.Empty(t, ParseTSV(tsvHeader+"\nshort\trow"))
}

func TestNewTesseractProbeDoesNotPanic(t *testing.T) {
	// The binary may or may not exist on the test machine; either way the
	// constructor must settle without error.
	eng := NewTesseract()
	t.Logf("tesseract available: %v", eng.Available())
}
