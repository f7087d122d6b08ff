package faceframe

import (
	"math"
	"testing"
)

const frame = float32(1.0 / 60)

func newTestMachine(initial float64) *sliderMachine {
	return newSliderMachine(initial, true, DefaultPreviewTiming(), nil)
}

// advance runs the machine for roughly seconds of simulated time.
func advance(m *sliderMachine, seconds float64) {
	for i := 0; i < int(math.Ceil(seconds*60)); i++ {
		m.update(frame)
	}
}

func TestSliderMountState(t *testing.T) {
	for _, p := range []float64{0, 25, 50, 100, -10, 140} {
		m := newTestMachine(p)
		want := clampPercent(p)
		if m.state.Position != want || m.state.Phase != PhaseIdle || m.state.HasAnimated {
			t.Errorf("mount(%v) = %+v, want idle at %v", p, m.state, want)
		}
	}
}

func TestSliderPreviewSequence(t *testing.T) {
	m := newTestMachine(50)
	completes := 0
	m.onSlideComplete = func(float64) { completes++ }

	m.dispatch(sliderEvent{kind: sliderEnter})
	if !m.state.IsAnimating() {
		t.Fatal("enter should start the preview")
	}

	advance(m, 0.3)
	if math.Abs(m.state.Position-50) > 0.01 {
		t.Errorf("position moved during the initial delay: %v", m.state.Position)
	}
	advance(m, 2)
	if math.Abs(m.state.Position-75) > 0.5 {
		t.Errorf("after sweep position = %v, want ~75", m.state.Position)
	}
	advance(m, 0.8)
	if math.Abs(m.state.Position-75) > 0.5 {
		t.Errorf("during hold position = %v, want ~75", m.state.Position)
	}
	advance(m, 2.1)
	if m.state.Position != 50 {
		t.Errorf("after return position = %v, want 50", m.state.Position)
	}
	if !m.state.HasAnimated || !m.state.ShowHint() {
		t.Fatalf("state = %+v, want animated with hint shown", m.state)
	}
	if completes != 1 {
		t.Errorf("slide complete fired %d times, want 1", completes)
	}

	advance(m, 3)
	if m.state.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle after the hint", m.state.Phase)
	}
}

func TestSliderRepeatEnterIsNoOp(t *testing.T) {
	m := newTestMachine(50)
	m.dispatch(sliderEvent{kind: sliderEnter})
	first := m.preview
	advance(m, 1)
	m.dispatch(sliderEvent{kind: sliderEnter})

	if m.preview != first {
		t.Error("second enter replaced the running preview")
	}
	if m.pending() != 1 {
		t.Errorf("pending timelines = %d, want 1", m.pending())
	}
}

func TestSliderPreviewRunsOnce(t *testing.T) {
	m := newTestMachine(50)
	m.dispatch(sliderEvent{kind: sliderEnter})
	advance(m, 9)
	m.dispatch(sliderEvent{kind: sliderLeave})
	m.dispatch(sliderEvent{kind: sliderEnter})

	if m.state.Phase != PhaseIdle || m.preview != nil {
		t.Errorf("re-hover after the preview restarted it: %+v", m.state)
	}
}

func TestSliderLeaveCancelsPreview(t *testing.T) {
	m := newTestMachine(40)
	var settled []float64
	m.onSlideComplete = func(p float64) { settled = append(settled, p) }
	m.dispatch(sliderEvent{kind: sliderEnter})
	advance(m, 1.2)
	if m.state.Position <= 40 {
		t.Fatalf("preview should have moved the handle, got %v", m.state.Position)
	}
	m.dispatch(sliderEvent{kind: sliderLeave})

	if m.state.Position != 40 || m.state.Phase != PhaseIdle || m.state.HasAnimated {
		t.Errorf("after leave = %+v, want idle at 40 without the latch", m.state)
	}
	if len(settled) != 1 || settled[0] != 40 {
		t.Errorf("slide complete calls = %v, want [40] for the snap back", settled)
	}
	m.dispatch(sliderEvent{kind: sliderLeave})
	if len(settled) != 1 {
		t.Errorf("a leave outside the preview reported again: %v", settled)
	}
	advance(m, 6)
	if m.state.Position != 40 {
		t.Errorf("cancelled preview kept moving: %v", m.state.Position)
	}

	// Hovering again starts a fresh preview.
	m.dispatch(sliderEvent{kind: sliderEnter})
	if !m.state.IsAnimating() || m.pending() != 1 {
		t.Errorf("re-enter after leave = %+v pending %d", m.state, m.pending())
	}
}

func TestSliderPressPreemptsPreview(t *testing.T) {
	m := newTestMachine(50)
	m.dispatch(sliderEvent{kind: sliderEnter})
	advance(m, 1)
	m.dispatch(sliderEvent{kind: sliderPress, pos: 10})

	if !m.state.IsDragging() || m.state.IsAnimating() {
		t.Fatalf("state = %+v, want dragging only", m.state)
	}
	if m.state.Position != 10 {
		t.Errorf("position = %v, want 10", m.state.Position)
	}
	advance(m, 5)
	if m.state.Position != 10 {
		t.Errorf("residual motion after press: %v", m.state.Position)
	}
	if m.pending() != 0 {
		t.Errorf("pending timelines = %d, want 0", m.pending())
	}
}

func TestSliderPressHidesHint(t *testing.T) {
	m := newTestMachine(50)
	m.dispatch(sliderEvent{kind: sliderEnter})
	advance(m, 5.2)
	if !m.state.ShowHint() {
		t.Fatal("hint should be up")
	}
	m.dispatch(sliderEvent{kind: sliderPress, pos: 50})
	if m.state.ShowHint() {
		t.Error("press should hide the hint")
	}
}

func TestSliderDragLifecycle(t *testing.T) {
	m := newTestMachine(50)
	type change struct{ dragging, recent bool }
	var changes []change
	var completes []float64
	m.onDragStateChange = func(d, r bool) { changes = append(changes, change{d, r}) }
	m.onSlideComplete = func(p float64) { completes = append(completes, p) }

	m.dispatch(sliderEvent{kind: sliderPress, pos: 25})
	for _, x := range []float64{-40, 30, 180, 80} {
		m.dispatch(sliderEvent{kind: sliderMove, pos: x})
		if p := m.state.Position; p < 0 || p > 100 {
			t.Fatalf("position %v escaped [0, 100]", p)
		}
	}
	m.dispatch(sliderEvent{kind: sliderRelease})
	m.dispatch(sliderEvent{kind: sliderRelease})

	if len(completes) != 1 || completes[0] != 80 {
		t.Errorf("completes = %v, want [80]", completes)
	}
	if m.state.IsDragging() || !m.state.RecentlyDragged {
		t.Errorf("after release = %+v", m.state)
	}

	// Hover during the decay does not start the preview.
	m.dispatch(sliderEvent{kind: sliderEnter})
	if m.state.IsAnimating() {
		t.Error("preview started right after a drag")
	}

	advance(m, 0.35)
	if m.state.RecentlyDragged {
		t.Error("RecentlyDragged should decay")
	}
	want := []change{{true, false}, {false, true}, {false, false}}
	if len(changes) != len(want) {
		t.Fatalf("changes = %v, want %v", changes, want)
	}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("changes = %v, want %v", changes, want)
		}
	}
}

func TestSliderMoveIgnoredWhenNotDragging(t *testing.T) {
	m := newTestMachine(50)
	m.dispatch(sliderEvent{kind: sliderMove, pos: 90})
	if m.state.Position != 50 {
		t.Errorf("move without press changed position to %v", m.state.Position)
	}
}

func TestSliderAutoPreviewDisabled(t *testing.T) {
	m := newSliderMachine(50, false, DefaultPreviewTiming(), nil)
	m.dispatch(sliderEvent{kind: sliderEnter})
	if m.state.Phase != PhaseIdle {
		t.Errorf("phase = %v, want idle", m.state.Phase)
	}
}

func TestSliderDisposeStopsEverything(t *testing.T) {
	m := newTestMachine(50)
	calls := 0
	m.onSlideComplete = func(float64) { calls++ }
	m.onDragStateChange = func(bool, bool) { calls++ }

	m.dispatch(sliderEvent{kind: sliderEnter})
	advance(m, 1)
	m.dispose()
	snapshot := m.state

	advance(m, 10)
	m.dispatch(sliderEvent{kind: sliderPress, pos: 5})
	m.dispatch(sliderEvent{kind: sliderRelease})

	if calls != 0 {
		t.Errorf("callbacks fired %d times after dispose", calls)
	}
	if m.state != snapshot {
		t.Errorf("state changed after dispose: %+v -> %+v", snapshot, m.state)
	}
}

func TestSliderHintDurationWithCoarseSteps(t *testing.T) {
	// Delay, sweep, hold and return add up to 5.1s; the hint runs 3s after that.
	tests := []struct {
		name  string
		steps []float32
		hint  bool
	}{
		{"preview and hint start in one step", []float32{5.2}, true},
		{"just before hint expiry", []float32{5.0, 3.05}, true},
		{"just after hint expiry", []float32{5.0, 3.15}, false},
		{"whole sequence in one step", []float32{8.2}, false},
		{"hint starts at a step boundary", []float32{5.1, 2.9}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(50)
			var settled []float64
			m.onSlideComplete = func(p float64) { settled = append(settled, p) }

			m.dispatch(sliderEvent{kind: sliderEnter})
			for _, dt := range tt.steps {
				m.update(dt)
			}
			if got := m.state.ShowHint(); got != tt.hint {
				t.Errorf("ShowHint = %v, want %v (state %+v)", got, tt.hint, m.state)
			}
			if !m.state.HasAnimated || m.state.Position != 50 {
				t.Errorf("state = %+v, want animated back at 50", m.state)
			}
			if len(settled) != 1 || settled[0] != 50 {
				t.Errorf("slide complete calls = %v, want [50]", settled)
			}
		})
	}
}

func TestSliderHintLastsThreeSecondsAtFrameRate(t *testing.T) {
	m := newTestMachine(50)
	m.dispatch(sliderEvent{kind: sliderEnter})

	var elapsed, shown float32
	for elapsed < 10 {
		m.update(frame)
		elapsed += frame
		if m.state.ShowHint() {
			shown += frame
		}
	}
	if math.Abs(float64(shown)-3) > 2*float64(frame) {
		t.Errorf("hint visible for %.3fs, want ~3s", shown)
	}
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseIdle:           "idle",
		PhaseAutoPreviewing: "auto-previewing",
		PhaseHintShown:      "hint-shown",
		PhaseDragging:       "dragging",
		Phase(99):           "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, got, want)
		}
	}
}
