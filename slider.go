package faceframe

import (
	"github.com/tanema/gween/ease"
)

// Phase is the interaction phase of a comparison slider.
type Phase uint8

const (
	PhaseIdle           Phase = iota // resting, accepts hover and press
	PhaseAutoPreviewing              // one-time guided sweep in progress
	PhaseHintShown                   // "drag to compare" affordance visible
	PhaseDragging                    // pointer held on the slider
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAutoPreviewing:
		return "auto-previewing"
	case PhaseHintShown:
		return "hint-shown"
	case PhaseDragging:
		return "dragging"
	}
	return "unknown"
}

// SliderState is a snapshot of a comparison slider. Position is the share of
// the width, in percent, covered by the before image.
type SliderState struct {
	Position        float64
	Phase           Phase
	HasAnimated     bool
	RecentlyDragged bool
}

// IsDragging reports whether a drag gesture is active.
func (s SliderState) IsDragging() bool { return s.Phase == PhaseDragging }

// IsAnimating reports whether the guided preview is running.
func (s SliderState) IsAnimating() bool { return s.Phase == PhaseAutoPreviewing }

// ShowHint reports whether the drag hint is visible.
func (s SliderState) ShowHint() bool { return s.Phase == PhaseHintShown }

// PreviewTiming holds the slider's presentation timings, in seconds.
type PreviewTiming struct {
	Delay        float32 // wait after first hover before the sweep starts
	Sweep        float32 // duration of the sweep to SweepTarget
	SweepTarget  float64 // position reached by the sweep, in percent
	Hold         float32 // pause at SweepTarget
	Return       float32 // duration of the sweep back to the initial position
	Hint         float32 // how long the hint stays up
	DragDecay    float32 // how long RecentlyDragged stays set after a drag
	LoadFallback float32 // reveal content after this long even if images are pending
}

// DefaultPreviewTiming returns the standard timings.
func DefaultPreviewTiming() PreviewTiming {
	return PreviewTiming{
		Delay:        0.3,
		Sweep:        2,
		SweepTarget:  75,
		Hold:         0.8,
		Return:       2,
		Hint:         3,
		DragDecay:    0.3,
		LoadFallback: 1,
	}
}

type sliderEventKind uint8

const (
	sliderEnter sliderEventKind = iota
	sliderLeave
	sliderPress
	sliderMove
	sliderRelease
	sliderPreviewDone
	sliderHintExpired
	sliderDecayExpired
)

type sliderEvent struct {
	kind sliderEventKind
	pos  float64 // percent, for press and move
}

// sliderMachine owns the slider state and every pending timeline. All state
// changes go through dispatch.
type sliderMachine struct {
	state       SliderState
	initial     float64
	autoPreview bool
	timing      PreviewTiming
	ease        ease.TweenFunc

	preview *Timeline
	hint    *Timeline
	decay   *Timeline

	disposed bool

	onSlideComplete   func(position float64)
	onDragStateChange func(isDragging, wasRecentlyDragging bool)
}

func newSliderMachine(initial float64, autoPreview bool, timing PreviewTiming, fn ease.TweenFunc) *sliderMachine {
	initial = clampPercent(initial)
	if fn == nil {
		fn = EaseLuxury
	}
	return &sliderMachine{
		state:       SliderState{Position: initial, Phase: PhaseIdle},
		initial:     initial,
		autoPreview: autoPreview,
		timing:      timing,
		ease:        fn,
	}
}

// dispatch applies one event. It is a no-op once the machine is disposed.
func (m *sliderMachine) dispatch(ev sliderEvent) {
	if m.disposed {
		return
	}
	switch ev.kind {
	case sliderEnter:
		if !m.autoPreview || m.state.HasAnimated || m.state.RecentlyDragged || m.state.Phase != PhaseIdle {
			return
		}
		m.state.Phase = PhaseAutoPreviewing
		t := m.timing
		m.preview = NewTimeline(
			Delay(t.Delay),
			Animate(&m.state.Position, t.SweepTarget, t.Sweep, m.ease),
			Delay(t.Hold),
			Animate(&m.state.Position, m.initial, t.Return, m.ease),
			Call(func() { m.dispatch(sliderEvent{kind: sliderPreviewDone}) }),
		)

	case sliderPreviewDone:
		if m.state.Phase != PhaseAutoPreviewing {
			return
		}
		m.preview = nil
		m.state.HasAnimated = true
		m.state.Phase = PhaseHintShown
		m.hint = NewTimeline(
			Delay(m.timing.Hint),
			Call(func() { m.dispatch(sliderEvent{kind: sliderHintExpired}) }),
		)
		if m.onSlideComplete != nil {
			m.onSlideComplete(m.state.Position)
		}

	case sliderHintExpired:
		if m.state.Phase != PhaseHintShown {
			return
		}
		m.hint = nil
		m.state.Phase = PhaseIdle

	case sliderLeave:
		if m.state.Phase != PhaseAutoPreviewing {
			return
		}
		m.preview.Cancel()
		m.preview = nil
		m.state.Position = m.initial
		m.state.Phase = PhaseIdle
		if m.onSlideComplete != nil {
			m.onSlideComplete(m.state.Position)
		}

	case sliderPress:
		m.preview.Cancel()
		m.hint.Cancel()
		m.decay.Cancel()
		m.preview, m.hint, m.decay = nil, nil, nil
		// A drag shows the interaction was found, so the preview never runs later.
		m.state.HasAnimated = true
		m.state.RecentlyDragged = false
		m.state.Phase = PhaseDragging
		m.state.Position = clampPercent(ev.pos)
		if m.onDragStateChange != nil {
			m.onDragStateChange(true, false)
		}

	case sliderMove:
		if m.state.Phase != PhaseDragging {
			return
		}
		m.state.Position = clampPercent(ev.pos)

	case sliderRelease:
		if m.state.Phase != PhaseDragging {
			return
		}
		m.state.Phase = PhaseIdle
		m.state.RecentlyDragged = true
		m.decay = NewTimeline(
			Delay(m.timing.DragDecay),
			Call(func() { m.dispatch(sliderEvent{kind: sliderDecayExpired}) }),
		)
		if m.onDragStateChange != nil {
			m.onDragStateChange(false, true)
		}
		if m.onSlideComplete != nil {
			m.onSlideComplete(m.state.Position)
		}

	case sliderDecayExpired:
		if !m.state.RecentlyDragged {
			return
		}
		m.decay = nil
		m.state.RecentlyDragged = false
		if m.onDragStateChange != nil {
			m.onDragStateChange(m.state.Phase == PhaseDragging, false)
		}
	}
}

// update advances every pending timeline by dt seconds.
func (m *sliderMachine) update(dt float32) {
	if m.disposed {
		return
	}
	// Only timelines that existed before this frame get the full dt.
	for _, tl := range m.timelines() {
		m.advance(tl, dt)
	}
}

// advance runs tl for dt. A timeline started by tl's callbacks is then
// advanced by the time tl left unused, not by the whole frame.
func (m *sliderMachine) advance(tl *Timeline, dt float32) {
	if tl == nil || m.disposed {
		return
	}
	before := m.timelines()
	left := tl.Update(dt)
	for i, next := range m.timelines() {
		if next != nil && next != before[i] {
			m.advance(next, left)
		}
	}
}

func (m *sliderMachine) timelines() [3]*Timeline {
	return [3]*Timeline{m.preview, m.hint, m.decay}
}

// pending reports how many timelines are still scheduled.
func (m *sliderMachine) pending() int {
	n := 0
	for _, t := range m.timelines() {
		if t.Active() {
			n++
		}
	}
	return n
}

func (m *sliderMachine) dispose() {
	m.preview.Cancel()
	m.hint.Cancel()
	m.decay.Cancel()
	m.preview, m.hint, m.decay = nil, nil, nil
	m.disposed = true
	m.onSlideComplete = nil
	m.onDragStateChange = nil
}
