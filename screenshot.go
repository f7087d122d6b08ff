package faceframe

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot queues a labeled capture of the next drawn frame. The PNG is
// written to ScreenshotDir as <timestamp>_<label>.png.
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshotQueue) == 0 {
		return
	}
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)

	var buf bytes.Buffer
	if err := png.Encode(&buf, unpremultiply(pixels, b.Dx(), b.Dy())); err != nil {
		s.logger.Error("screenshot encode", zap.Error(err))
		return
	}
	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.logger.Error("screenshot dir", zap.String("dir", s.ScreenshotDir), zap.Error(err))
		return
	}

	stamp := time.Now().Format("20060102_150405")
	for _, label := range labels {
		name := stamp + "_" + sanitizeLabel(label) + ".png"
		path := filepath.Join(s.ScreenshotDir, name)
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			s.logger.Error("screenshot write", zap.String("label", label), zap.Error(err))
			continue
		}
		s.logger.Info("screenshot saved", zap.String("path", path), zap.Int("bytes", buf.Len()))
	}
}

// unpremultiply converts the premultiplied pixels read back from the GPU to
// straight alpha for PNG encoding.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		c := color.NRGBAModel.Convert(color.RGBA{R: pixels[i], G: pixels[i+1], B: pixels[i+2], A: pixels[i+3]}).(color.NRGBA)
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. Blank labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '.' {
			return r
		}
		return '_'
	}, label)
}
