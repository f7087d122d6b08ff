package faceframe

import (
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const defaultScreenshotDir = "screenshots"

// Scene is the top-level object that owns the node tree, input state and
// per-frame update hooks.
type Scene struct {
	root   *Node
	debug  bool
	logger *zap.Logger

	// ClearColor fills the screen before the tree is drawn. The zero value
	// leaves the screen untouched.
	ClearColor Color

	// ScreenshotDir is where Screenshot writes its PNG files.
	ScreenshotDir string

	updateFunc func() error
	updateBuf  []*Node

	// Input state
	source       PointerSource
	captured     [maxPointers]*Node
	pointers     [maxPointers]pointerState
	hitBuf       []*Node
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	touchBuf     []Touch

	injectQueue     []syntheticPointerEvent
	screenshotQueue []string
	scenario        *Scenario
}

// NewScene creates a new scene with a pre-created root container reading
// pointer input from Ebitengine.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	return &Scene{
		root:          root,
		logger:        zap.NewNop(),
		source:        ebitenPointers{},
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: defaultScreenshotDir,
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// SetLogger routes scene diagnostics to logger. A nil logger disables them.
func (s *Scene) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// Logger returns the scene's logger.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetUpdateFunc registers fn to run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Update advances the scene by one Ebitengine tick.
func (s *Scene) Update() error {
	return s.Step(1.0 / float64(ebiten.TPS()))
}

// Step advances the scene by dt seconds: it runs the attached scenario,
// processes one frame of input and calls every node's OnUpdate hook.
func (s *Scene) Step(dt float64) error {
	if s.scenario != nil {
		s.scenario.step(s, dt)
	}

	// Refresh world transforms first so hit testing has accurate positions.
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.processInput()

	s.updateBuf = collectUpdatable(s.root, s.updateBuf[:0])
	for i, n := range s.updateBuf {
		// Hooks may dispose nodes later in the buffer.
		if !n.disposed && n.OnUpdate != nil {
			n.OnUpdate(dt)
		}
		s.updateBuf[i] = nil
	}

	if s.updateFunc != nil {
		return s.updateFunc()
	}
	return nil
}

func collectUpdatable(n *Node, buf []*Node) []*Node {
	if n.OnUpdate != nil {
		buf = append(buf, n)
	}
	for _, child := range n.children {
		buf = collectUpdatable(child, buf)
	}
	return buf
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and per-frame draw stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
