package faceframe

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type tweenField struct {
	tween *gween.Tween
	dst   *float64
}

// TweenGroup drives one or two float64 fields of a Node with gween tweens.
// Call Update each frame; the group writes the values and marks the node
// dirty. It stops as soon as the node is disposed.
type TweenGroup struct {
	fields [2]tweenField
	n      int
	target *Node
	Done   bool
}

func (g *TweenGroup) add(dst *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.fields[g.n] = tweenField{tween: gween.New(float32(*dst), float32(to), duration, fn), dst: dst}
	g.n++
}

// Update advances the group by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	done := true
	for i := 0; i < g.n; i++ {
		v, finished := g.fields[i].tween.Update(dt)
		*g.fields[i].dst = float64(v)
		done = done && finished
	}
	g.Done = done
	if g.target != nil {
		g.target.MarkDirty()
	}
}

// Stop freezes the fields at their current values.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// TweenAlpha fades node.Alpha to the given value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, to, duration, fn)
	return g
}

// TweenScale animates node.ScaleX and node.ScaleY to sx, sy.
func TweenScale(node *Node, sx, sy float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, sx, duration, fn)
	g.add(&node.ScaleY, sy, duration, fn)
	return g
}
