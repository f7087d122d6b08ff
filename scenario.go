package faceframe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ScenarioStep is a single action in a scripted scenario.
type ScenarioStep struct {
	Action  string  `json:"action" yaml:"action"`
	Label   string  `json:"label,omitempty" yaml:"label,omitempty"`
	X       float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y       float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	Seconds float64 `json:"seconds,omitempty" yaml:"seconds,omitempty"`
}

type scenarioScript struct {
	Steps []ScenarioStep `json:"steps" yaml:"steps"`
}

var errNoSteps = errors.New("no steps")

// offscreen is where "leave" moves the pointer when no coordinates are given.
const offscreen = -1e6

// Scenario sequences injected input, waits and screenshots across frames.
// Attach it with Scene.SetScenario.
type Scenario struct {
	steps     []ScenarioStep
	cursor    int
	waitCount int
	pause     float64
	done      bool
}

// LoadScenario parses a JSON or YAML script. Documents starting with '{'
// are read as JSON.
func LoadScenario(data []byte) (*Scenario, error) {
	var script scenarioScript
	trimmed := bytes.TrimSpace(data)
	var err error
	if len(trimmed) > 0 && trimmed[0] == '{' {
		err = json.Unmarshal(trimmed, &script)
	} else {
		err = yaml.Unmarshal(trimmed, &script)
	}
	if err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse scenario: %w", errNoSteps)
	}
	for i, st := range script.Steps {
		if !knownAction(st.Action) {
			return nil, fmt.Errorf("parse scenario: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Scenario{steps: script.Steps}, nil
}

func knownAction(a string) bool {
	switch a {
	case "hover", "leave", "press", "move", "release", "click", "drag", "wait", "pause", "screenshot":
		return true
	}
	return false
}

// SetScenario attaches a scenario. It advances at the start of every Step.
func (s *Scene) SetScenario(sc *Scenario) {
	s.scenario = sc
}

// Done reports whether every step has been executed.
func (r *Scenario) Done() bool {
	return r.done
}

// Steps returns the number of steps in the script.
func (r *Scenario) Steps() int {
	return len(r.steps)
}

func (r *Scenario) step(s *Scene, dt float64) {
	if r.done {
		return
	}
	// Injected events drain one per frame before the next action.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.pause > 0 {
		r.pause -= dt
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	s.logger.Debug("scenario step", zap.Int("index", r.cursor-1), zap.String("action", st.Action))

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "hover":
		s.InjectHover(st.X, st.Y)
	case "leave":
		if st.X == 0 && st.Y == 0 {
			s.InjectHover(offscreen, offscreen)
		} else {
			s.InjectHover(st.X, st.Y)
		}
	case "press":
		s.InjectPress(st.X, st.Y)
	case "move":
		s.InjectMove(st.X, st.Y)
	case "release":
		s.InjectRelease(st.X, st.Y)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "pause":
		r.pause = st.Seconds - dt
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && r.pause <= 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
