package faceframe

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
)

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Touch is one active touch point in screen coordinates.
type Touch struct {
	ID   ebiten.TouchID
	X, Y float64
}

// PointerSource supplies raw pointer state once per frame.
type PointerSource interface {
	// Mouse returns the cursor position and whether a button is held.
	Mouse() (x, y float64, pressed bool, button MouseButton)
	// AppendTouches appends the active touches to buf.
	AppendTouches(buf []Touch) []Touch
}

// ebitenPointers reads the live Ebitengine input state.
type ebitenPointers struct{}

func (ebitenPointers) Mouse() (float64, float64, bool, MouseButton) {
	mx, my := ebiten.CursorPosition()
	switch {
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		return float64(mx), float64(my), true, MouseButtonLeft
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
		return float64(mx), float64(my), true, MouseButtonRight
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle):
		return float64(mx), float64(my), true, MouseButtonMiddle
	}
	return float64(mx), float64(my), false, MouseButtonLeft
}

func (ebitenPointers) AppendTouches(buf []Touch) []Touch {
	for _, id := range ebiten.AppendTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		buf = append(buf, Touch{ID: id, X: float64(x), Y: float64(y)})
	}
	return buf
}

// SetPointerSource replaces the input source. A nil source disables real
// input; injected events still flow.
func (s *Scene) SetPointerSource(src PointerSource) {
	s.source = src
}

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
}

// CapturePointer routes every event for pointerID to node, bypassing hit
// testing, until the pointer goes up or ReleasePointer is called.
func (s *Scene) CapturePointer(pointerID int, node *Node) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = node
	}
}

// ReleasePointer stops routing events for pointerID to a captured node.
func (s *Scene) ReleasePointer(pointerID int) {
	if pointerID >= 0 && pointerID < maxPointers {
		s.captured[pointerID] = nil
	}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Containers with no HitShape are not hit-testable.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order, appending
// interactable nodes to buf. Skips Visible=false or Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	if n.HitShape != nil || n.Type != NodeTypeContainer {
		buf = append(buf, n)
	}
	for _, child := range n.orderedChildren() {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, s.hitBuf[:0])

	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// processInput handles one frame of pointer input. An injected event, when
// queued, replaces the real mouse for this frame.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.source == nil {
		return
	}
	mx, my, pressed, button := s.source.Mouse()
	s.processPointer(0, mx, my, pressed, button)
	s.processTouchPointers()
}

func (s *Scene) processTouchPointers() {
	s.touchBuf = s.source.AppendTouches(s.touchBuf[:0])

	var activeSlots [maxPointers]bool
	for _, t := range s.touchBuf {
		slot := s.touchSlot(t.ID)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		s.processPointer(slot, t.X, t.Y, true, MouseButtonLeft)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && !activeSlots[i] {
			ps := &s.pointers[i]
			if ps.down {
				s.processPointer(i, ps.lastX, ps.lastY, false, MouseButtonLeft)
			}
			s.touchUsed[i] = false
			s.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns -1 if all slots are taken.
func (s *Scene) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if s.touchUsed[i] && s.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !s.touchUsed[i] {
			s.touchUsed[i] = true
			s.touchMap[i] = tid
			return i
		}
	}
	return -1
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]

	var target *Node
	if s.captured[pointerID] != nil {
		target = s.captured[pointerID]
	} else {
		target = s.hitTest(wx, wy)
	}

	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.disposed {
			s.firePointer(EventPointerLeave, ps.hoverNode, pointerID, wx, wy, button)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, pointerID, wx, wy, button)
		}
		ps.hoverNode = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.dragging = false
		s.firePointer(EventPointerDown, target, pointerID, wx, wy, ps.button)

	case !pressed && ps.down:
		// Downstream handlers see the node captured during the press.
		if s.captured[pointerID] != nil {
			target = s.captured[pointerID]
		}
		if ps.dragging {
			s.fireDrag(EventDragEnd, ps.hitNode, pointerID, wx, wy, ps.startX, ps.startY,
				wx-ps.lastX, wy-ps.lastY, ps.button)
		} else if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, pointerID, wx, wy, ps.button)
		}
		s.firePointer(EventPointerUp, target, pointerID, wx, wy, ps.button)

		s.captured[pointerID] = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
		ps.lastX, ps.lastY = wx, wy

	case pressed && ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			if !ps.dragging {
				dx := wx - ps.startX
				dy := wy - ps.startY
				if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
					ps.dragging = true
					s.fireDrag(EventDragStart, ps.hitNode, pointerID, wx, wy, ps.startX, ps.startY,
						wx-ps.startX, wy-ps.startY, ps.button)
				}
			}
			if ps.dragging {
				s.fireDrag(EventDrag, ps.hitNode, pointerID, wx, wy, ps.startX, ps.startY,
					wx-ps.lastX, wy-ps.lastY, ps.button)
			}
		}
		ps.lastX, ps.lastY = wx, wy

	default:
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointer(EventPointerMove, target, pointerID, wx, wy, button)
			ps.lastX, ps.lastY = wx, wy
		}
	}
}

func (s *Scene) firePointer(event EventType, node *Node, pointerID int, wx, wy float64, button MouseButton) {
	if node == nil {
		return
	}
	var fn func(PointerContext)
	switch event {
	case EventPointerDown:
		fn = node.OnPointerDown
	case EventPointerUp:
		fn = node.OnPointerUp
	case EventPointerEnter:
		fn = node.OnPointerEnter
	case EventPointerLeave:
		fn = node.OnPointerLeave
	case EventPointerMove:
		fn = node.OnPointerMove
	}
	if fn == nil {
		return
	}
	lx, ly := node.WorldToLocal(wx, wy)
	fn(PointerContext{
		Node: node, Scene: s, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID,
	})
}

func (s *Scene) fireClick(node *Node, pointerID int, wx, wy float64, button MouseButton) {
	if node == nil || node.OnClick == nil {
		return
	}
	lx, ly := node.WorldToLocal(wx, wy)
	node.OnClick(ClickContext{
		Node: node, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		Button: button, PointerID: pointerID,
	})
}

func (s *Scene) fireDrag(event EventType, node *Node, pointerID int, wx, wy, startX, startY, deltaX, deltaY float64, button MouseButton) {
	if node == nil {
		return
	}
	var fn func(DragContext)
	switch event {
	case EventDragStart:
		fn = node.OnDragStart
	case EventDrag:
		fn = node.OnDrag
	case EventDragEnd:
		fn = node.OnDragEnd
	}
	if fn == nil {
		return
	}
	lx, ly := node.WorldToLocal(wx, wy)
	fn(DragContext{
		Node: node, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly,
		StartX: startX, StartY: startY, DeltaX: deltaX, DeltaY: deltaY,
		Button: button, PointerID: pointerID,
	})
}
