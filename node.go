package faceframe

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// HitShape is used for custom hit testing regions.
type HitShape interface {
	Contains(x, y float64) bool
}

// PointerContext describes a hover, press, move or release. Scene is the
// scene that dispatched the event.
type PointerContext struct {
	Node      *Node
	Scene     *Scene
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// ClickContext describes a completed click.
type ClickContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	PointerID int
}

// DragContext describes one step of a drag gesture.
type DragContext struct {
	Node      *Node
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	PointerID int
}

// nodeIDCounter is a plain counter (no atomic: scenes are single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is one element of the widget tree. Containers, sprites and text share
// this struct and are told apart by Type.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Drawing and hit testing
	Alpha        float64
	Visible      bool
	Renderable   bool
	Interactable bool

	ZIndex int

	UserData any

	// Sprite fields (NodeTypeSprite). A sprite without a custom image draws
	// the shared white pixel, so ScaleX/ScaleY act as width/height.
	Color       Color
	customImage *ebiten.Image

	// Crop limits the drawn part of the custom image, in source pixels.
	// The zero Rect draws the whole image.
	Crop Rect

	// NodeTypeText only
	Text string
	Face text.Face

	HitShape HitShape

	// OnUpdate is called once per scene step with the step duration in seconds.
	OnUpdate func(dt float64)

	// Per-node callbacks (nil by default)
	OnPointerDown  func(PointerContext)
	OnPointerUp    func(PointerContext)
	OnPointerMove  func(PointerContext)
	OnClick        func(ClickContext)
	OnDragStart    func(DragContext)
	OnDrag         func(DragContext)
	OnDragEnd      func(DragContext)
	OnPointerEnter func(PointerContext)
	OnPointerLeave func(PointerContext)

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer returns an empty grouping node.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite node. Pass a nil image for a solid color
// rectangle sized through ScaleX and ScaleY.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, customImage: img}
	nodeDefaults(n)
	return n
}

// NewRect creates a solid color sprite of the given size.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewSprite(name, nil)
	n.ScaleX = w
	n.ScaleY = h
	n.Color = c
	return n
}

// NewText creates a text node drawn with face.
func NewText(name, content string, face text.Face) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Text: content, Face: face}
	nodeDefaults(n)
	return n
}

// SetCustomImage replaces the image a sprite draws.
func (n *Node) SetCustomImage(img *ebiten.Image) {
	n.customImage = img
}

// CustomImage returns the sprite image, or nil if not set.
func (n *Node) CustomImage() *ebiten.Image {
	return n.customImage
}

// AddChild attaches child as the last child of n, detaching it from any
// previous parent. It panics on nil or when child is an ancestor of n.
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("faceframe: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("faceframe: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveChild detaches child. It panics when n is not child's parent.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("faceframe: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches n, if attached.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns n's children in insertion order. Do not modify the slice.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren reports len(Children()).
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex changes draw order among siblings.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// Dispose detaches n and disposes its whole subtree. Disposed nodes are
// skipped by drawing, input and tweens.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.customImage = nil
	n.Face = nil
	n.UserData = nil
	n.OnUpdate = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnClick = nil
	n.OnDragStart = nil
	n.OnDrag = nil
	n.OnDragEnd = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
}

// IsDisposed reports whether Dispose was called.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr drops child from the slice, leaving child.Parent set.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// orderedChildren returns the children in ZIndex order, rebuilding the
// cached order with a stable insertion sort when needed.
func (n *Node) orderedChildren() []*Node {
	if n.childrenSorted {
		if n.sortedChildren != nil && len(n.sortedChildren) == len(n.children) {
			return n.sortedChildren
		}
		return n.children
	}
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
	return n.sortedChildren
}

// nodeDimensions returns the local-space size of a node's visual.
func nodeDimensions(n *Node) (w, h float64) {
	switch n.Type {
	case NodeTypeSprite:
		if n.customImage == nil {
			return 1, 1
		}
		if !n.Crop.IsZero() {
			return n.Crop.Width, n.Crop.Height
		}
		b := n.customImage.Bounds()
		return float64(b.Dx()), float64(b.Dy())
	case NodeTypeText:
		if n.Face == nil || n.Text == "" {
			return 0, 0
		}
		return text.Measure(n.Text, n.Face, 0)
	}
	return 0, 0
}
