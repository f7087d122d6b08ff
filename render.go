package faceframe

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// whitePixel backs solid color sprites. It is created on first draw so that
// building a tree never touches the GPU.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// renderStats counts the work done by one Draw call.
type renderStats struct {
	visited   int
	sprites   int
	texts     int
	traversal time.Duration
}

// Draw renders the scene tree to screen in painter order.
func (s *Scene) Draw(screen *ebiten.Image) {
	var start time.Time
	if s.debug {
		start = time.Now()
	}
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	updateWorldTransform(s.root, identityTransform, 1.0, false)

	var stats renderStats
	s.drawNode(screen, s.root, &stats)

	if s.debug {
		stats.traversal = time.Since(start)
		s.debugLog(stats)
	}
	s.flushScreenshots(screen)
}

func (s *Scene) drawNode(screen *ebiten.Image, n *Node, stats *renderStats) {
	if !n.Visible || n.disposed {
		return
	}
	stats.visited++
	if n.Renderable && n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeSprite:
			drawSprite(screen, n)
			stats.sprites++
		case NodeTypeText:
			if n.Face != nil && n.Text != "" {
				drawText(screen, n)
				stats.texts++
			}
		}
	}
	for _, child := range n.orderedChildren() {
		s.drawNode(screen, child, stats)
	}
}

// geoM converts a world transform into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// colorScale returns a premultiplied scale for tint c at alpha a.
func colorScale(c Color, a float64) ebiten.ColorScale {
	var cs ebiten.ColorScale
	alpha := float32(c.A * a)
	cs.Scale(float32(c.R)*alpha, float32(c.G)*alpha, float32(c.B)*alpha, alpha)
	return cs
}

func drawSprite(screen *ebiten.Image, n *Node) {
	img := n.customImage
	if img == nil {
		img = ensureWhitePixel()
	} else if !n.Crop.IsZero() {
		b := img.Bounds()
		r := image.Rect(
			b.Min.X+int(n.Crop.X), b.Min.Y+int(n.Crop.Y),
			b.Min.X+int(n.Crop.X+n.Crop.Width), b.Min.Y+int(n.Crop.Y+n.Crop.Height),
		).Intersect(b)
		if r.Empty() {
			return
		}
		img = img.SubImage(r).(*ebiten.Image)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(n.worldTransform)
	op.ColorScale = colorScale(n.Color, n.worldAlpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}

func drawText(screen *ebiten.Image, n *Node) {
	op := &text.DrawOptions{}
	op.GeoM = geoM(n.worldTransform)
	op.ColorScale = colorScale(n.Color, n.worldAlpha)
	text.Draw(screen, n.Text, n.Face, op)
}
