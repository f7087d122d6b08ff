package faceframe

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTimelineRunsStepsInOrder(t *testing.T) {
	var got []string
	tl := NewTimeline(
		Call(func() { got = append(got, "a") }),
		Delay(0.5),
		Call(func() { got = append(got, "b") }),
		Delay(0.5),
		Call(func() { got = append(got, "c") }),
	)

	tl.Update(0)
	if len(got) != 1 {
		t.Fatalf("after 0s got %v, want [a]", got)
	}
	tl.Update(0.25)
	tl.Update(0.25)
	if len(got) != 2 {
		t.Fatalf("after 0.5s got %v, want [a b]", got)
	}
	tl.Update(0.5)
	if len(got) != 3 || got[2] != "c" {
		t.Fatalf("after 1s got %v, want [a b c]", got)
	}
	if !tl.Done() || tl.Active() {
		t.Error("timeline should be done")
	}
}

func TestTimelineCarriesLeftoverTime(t *testing.T) {
	v := 0.0
	tl := NewTimeline(
		Delay(0.25),
		Animate(&v, 100, 1, ease.Linear),
	)
	// 0.25s finishes the delay, 0.5s goes into the tween.
	tl.Update(0.75)
	if math.Abs(v-50) > 0.01 {
		t.Errorf("v = %v, want ~50", v)
	}
	tl.Update(10)
	if v != 100 {
		t.Errorf("v = %v, want exactly 100", v)
	}
}

func TestTimelineUpdateReturnsUnusedTime(t *testing.T) {
	tests := []struct {
		name   string
		cancel bool
		steps  []float32
		want   float32
	}{
		{"still running", false, []float32{0.5}, 0},
		{"finishes mid step", false, []float32{0.75, 0.5}, 0.25},
		{"finishes in one update", false, []float32{3}, 2},
		{"already done", false, []float32{1, 0.4}, 0.4},
		{"cancelled", true, []float32{3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl := NewTimeline(Delay(0.5), Delay(0.5))
			if tt.cancel {
				tl.Cancel()
			}
			var got float32
			for _, dt := range tt.steps {
				got = tl.Update(dt)
			}
			if math.Abs(float64(got-tt.want)) > 1e-5 {
				t.Errorf("Update returned %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimelineAnimateCapturesStartLazily(t *testing.T) {
	v := 0.0
	tl := NewTimeline(
		Delay(1),
		Animate(&v, 10, 1, ease.Linear),
	)
	tl.Update(0.5)
	v = 20 // moved by someone else before the tween begins
	tl.Update(0.5)
	tl.Update(0.5)
	if math.Abs(v-15) > 0.01 {
		t.Errorf("v = %v, want ~15 (halfway from 20 to 10)", v)
	}
}

func TestTimelineCancel(t *testing.T) {
	v := 0.0
	called := false
	tl := NewTimeline(
		Animate(&v, 100, 1, ease.Linear),
		Call(func() { called = true }),
	)
	tl.Update(0.5)
	before := v
	tl.Cancel()
	tl.Update(5)

	if v != before {
		t.Errorf("v changed after cancel: %v -> %v", before, v)
	}
	if called {
		t.Error("callback ran after cancel")
	}
	if !tl.Cancelled() || tl.Done() || tl.Active() {
		t.Error("cancelled timeline should be neither done nor active")
	}
}

func TestTimelineNilSafety(t *testing.T) {
	var tl *Timeline
	tl.Cancel()
	if tl.Active() || tl.Done() || tl.Cancelled() {
		t.Error("nil timeline should report inactive")
	}
}

func TestTimelineZeroDurationAnimate(t *testing.T) {
	v := 3.0
	tl := NewTimeline(Animate(&v, 7, 0, nil))
	tl.Update(0)
	if v != 7 || !tl.Done() {
		t.Errorf("v = %v done = %v, want 7 true", v, tl.Done())
	}
}

func TestTimelineCallbackMayCancelItself(t *testing.T) {
	var tl *Timeline
	after := false
	tl = NewTimeline(
		Call(func() { tl.Cancel() }),
		Call(func() { after = true }),
	)
	tl.Update(1)
	if after {
		t.Error("steps after a self-cancel should not run")
	}
}
