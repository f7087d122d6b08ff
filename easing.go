package faceframe

import (
	"math"

	"github.com/tanema/gween/ease"
)

// CubicBezier returns an easing function equivalent to the CSS
// cubic-bezier(x1, y1, x2, y2) timing function, usable anywhere a gween
// ease.TweenFunc is accepted. x1 and x2 are clamped to [0, 1].
func CubicBezier(x1, y1, x2, y2 float64) ease.TweenFunc {
	c := bezier{x1: clampUnit(x1), y1: y1, x2: clampUnit(x2), y2: y2}
	return func(t, b, change, d float32) float32 {
		if d <= 0 {
			return b + change
		}
		p := float64(t / d)
		if p <= 0 {
			return b
		}
		if p >= 1 {
			return b + change
		}
		return b + change*float32(c.at(p))
	}
}

type bezier struct {
	x1, y1, x2, y2 float64
}

// curve evaluates one axis of the curve with endpoints fixed at 0 and 1.
func curve(p1, p2, u float64) float64 {
	iu := 1 - u
	return 3*iu*iu*u*p1 + 3*iu*u*u*p2 + u*u*u
}

func curveSlope(p1, p2, u float64) float64 {
	iu := 1 - u
	return 3*iu*iu*p1 + 6*iu*u*(p2-p1) + 3*u*u*(1-p2)
}

// at maps progress x in [0, 1] to eased progress.
func (c bezier) at(x float64) float64 {
	return curve(c.y1, c.y2, c.solveX(x))
}

// solveX finds the curve parameter whose x coordinate equals x. Newton
// iterations first, bisection when the slope is too flat to trust.
func (c bezier) solveX(x float64) float64 {
	const epsilon = 1e-7

	u := x
	for i := 0; i < 8; i++ {
		dx := curve(c.x1, c.x2, u) - x
		if math.Abs(dx) < epsilon {
			return u
		}
		slope := curveSlope(c.x1, c.x2, u)
		if math.Abs(slope) < 1e-6 {
			break
		}
		u = clampUnit(u - dx/slope)
	}

	lo, hi := 0.0, 1.0
	u = x
	for i := 0; i < 64; i++ {
		v := curve(c.x1, c.x2, u)
		if math.Abs(v-x) < epsilon {
			return u
		}
		if v < x {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return u
}
