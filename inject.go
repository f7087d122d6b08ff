package faceframe

// syntheticPointerEvent represents a single injected pointer event in screen
// coordinates, fed through the same state machine as real mouse input.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

func (s *Scene) inject(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		x: x, y: y,
		pressed: pressed,
		button:  MouseButtonLeft,
	})
}

// InjectHover queues a button-up pointer move to (x, y). Moving onto a node
// fires its enter callback; moving off it fires leave.
func (s *Scene) InjectHover(x, y float64) {
	s.inject(x, y, false)
}

// InjectPress queues a pointer press event at the given screen coordinates
// (left button). The event is consumed on the next step.
func (s *Scene) InjectPress(x, y float64) {
	s.inject(x, y, true)
}

// InjectMove queues a pointer move event with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.inject(x, y, true)
}

// InjectRelease queues a pointer release event at the given screen coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.inject(x, y, false)
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two steps.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate steps, and release at
// (toX, toY). Minimum frames is 2 (press + release).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// PendingInjections returns the number of queued synthetic events.
func (s *Scene) PendingInjections() int {
	return len(s.injectQueue)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Reports whether an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	s.processPointer(0, evt.x, evt.y, evt.pressed, evt.button)
	return true
}
