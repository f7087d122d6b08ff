package faceframe

import (
	"bytes"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	fontOnce   sync.Once
	fontSource *text.GoTextFaceSource
	fontErr    error
)

// DefaultFace returns the built-in Go Regular face at size pixels.
// Panics if the embedded font cannot be parsed.
func DefaultFace(size float64) text.Face {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	})
	if fontErr != nil {
		panic("faceframe: parse embedded font: " + fontErr.Error())
	}
	return &text.GoTextFace{Source: fontSource, Size: size}
}
