package faceframe

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Step is one segment of a Timeline. A step waits for Duration seconds,
// optionally tweening *Target towards To, then runs Call.
type Step struct {
	Duration float32
	Target   *float64
	To       float64
	Ease     ease.TweenFunc
	Call     func()
}

// Delay returns a step that waits for d seconds.
func Delay(d float32) Step {
	return Step{Duration: d}
}

// Animate returns a step that tweens *target to `to` over d seconds. The
// start value is read when the step begins, not when it is built.
func Animate(target *float64, to float64, d float32, fn ease.TweenFunc) Step {
	if fn == nil {
		fn = ease.Linear
	}
	return Step{Duration: d, Target: target, To: to, Ease: fn}
}

// Call returns a zero-length step that runs fn.
func Call(fn func()) Step {
	return Step{Call: fn}
}

// Timeline runs a fixed sequence of steps, advanced by Update. Cancel is the
// only way to stop it early; once cancelled no step writes its target or
// runs its callback again.
type Timeline struct {
	steps     []Step
	cursor    int
	elapsed   float32
	tween     *gween.Tween
	cancelled bool
}

// NewTimeline creates a timeline that starts with the first step on the next
// Update.
func NewTimeline(steps ...Step) *Timeline {
	return &Timeline{steps: steps}
}

// Update advances the timeline by dt seconds. Time left over after a step
// finishes carries into the following steps, so one large dt can complete
// several steps. Once the last step has run, Update returns the part of dt
// it did not consume; it returns 0 while steps remain or after Cancel.
func (t *Timeline) Update(dt float32) float32 {
	for t.cursor < len(t.steps) {
		if t.cancelled {
			return 0
		}
		st := &t.steps[t.cursor]
		if st.Target != nil && t.tween == nil {
			t.tween = gween.New(float32(*st.Target), float32(st.To), st.Duration, st.Ease)
		}

		remaining := st.Duration - t.elapsed
		if dt < remaining {
			t.elapsed += dt
			if t.tween != nil {
				v, _ := t.tween.Update(dt)
				*st.Target = float64(v)
			}
			return 0
		}

		dt -= remaining
		if st.Target != nil {
			// Land exactly on the target regardless of float32 drift.
			*st.Target = st.To
		}
		t.cursor++
		t.elapsed = 0
		t.tween = nil
		if st.Call != nil {
			st.Call()
		}
	}
	if t.cancelled {
		return 0
	}
	return dt
}

// Cancel stops the timeline permanently. Safe on a nil timeline.
func (t *Timeline) Cancel() {
	if t == nil {
		return
	}
	t.cancelled = true
	t.tween = nil
}

// Cancelled reports whether Cancel was called.
func (t *Timeline) Cancelled() bool {
	return t != nil && t.cancelled
}

// Done reports whether every step has run.
func (t *Timeline) Done() bool {
	return t != nil && !t.cancelled && t.cursor >= len(t.steps)
}

// Active reports whether the timeline still has steps left to run. A nil
// timeline is inactive.
func (t *Timeline) Active() bool {
	return t != nil && !t.cancelled && t.cursor < len(t.steps)
}
