package io

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/lgraph/pkg/geom"
)

// DefaultFontSize is the point size labels without an explicit size are
// measured at.
const DefaultFontSize = 12

// Measurer sizes label text set in the Go Regular font at 72 DPI.
type Measurer struct {
	face font.Face
}

// NewMeasurer returns a measurer for the given point size.
func NewMeasurer(size float64) (*Measurer, error) {
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	return &Measurer{face: face}, nil
}

var defaultMeasurer = sync.OnceValues(func() (*Measurer, error) {
	return NewMeasurer(DefaultFontSize)
})

// Measure returns the size of the box text occupies. Each line adds one
// line height; the width is that of the widest line.
func (m *Measurer) Measure(text string) geom.Vector {
	if text == "" {
		return geom.Vector{}
	}
	lines := strings.Split(text, "\n")
	width := 0.0
	for _, line := range lines {
		w := float64(font.MeasureString(m.face, line)) / 64
		width = max(width, w)
	}
	height := float64(m.face.Metrics().Height) / 64
	return geom.V(width, height*float64(len(lines)))
}
