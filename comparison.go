package faceframe

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/tanema/gween/ease"
)

// LabelStyle selects how the before/after captions are drawn.
type LabelStyle uint8

const (
	LabelMinimal  LabelStyle = iota // plain caption text
	LabelStandard                   // caption on a translucent pill
	LabelElegant                    // spaced uppercase gold caption with an underline
)

func (s LabelStyle) String() string {
	switch s {
	case LabelMinimal:
		return "minimal"
	case LabelStandard:
		return "standard"
	case LabelElegant:
		return "elegant"
	}
	return "unknown"
}

// ParseLabelStyle maps a style name to a LabelStyle. Unknown names report false.
func ParseLabelStyle(name string) (LabelStyle, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "minimal":
		return LabelMinimal, true
	case "", "standard":
		return LabelStandard, true
	case "elegant":
		return LabelElegant, true
	}
	return LabelStandard, false
}

const (
	defaultComparisonWidth  = 600.0
	defaultComparisonHeight = 400.0
	dividerWidth            = 2.0
	handleSize              = 40.0
	handleGrabScale         = 1.1
	hintText                = "Drag to compare"
)

type comparisonConfig struct {
	width, height float64
	aspect        float64
	initial       float64
	autoPreview   bool
	labelStyle    LabelStyle
	alt           string
	timing        PreviewTiming
	ease          ease.TweenFunc
	beforeLabel   string
	afterLabel    string
	face          text.Face

	onSlideComplete   func(float64)
	onDragStateChange func(bool, bool)
}

// ComparisonOption configures NewComparison.
type ComparisonOption func(*comparisonConfig)

// WithSize sets the widget size in pixels.
func WithSize(w, h float64) ComparisonOption {
	return func(c *comparisonConfig) {
		if w > 0 {
			c.width = w
		}
		if h > 0 {
			c.height = h
		}
	}
}

// WithAspectRatio derives the height from the width (width / height = r).
// It takes precedence over the height given to WithSize.
func WithAspectRatio(r float64) ComparisonOption {
	return func(c *comparisonConfig) {
		if r > 0 {
			c.aspect = r
		}
	}
}

// WithInitialPosition sets the resting divider position in percent.
// Values outside [0, 100] are clamped.
func WithInitialPosition(p float64) ComparisonOption {
	return func(c *comparisonConfig) { c.initial = clampPercent(p) }
}

// WithAutoPreview enables or disables the guided sweep on first hover.
func WithAutoPreview(enabled bool) ComparisonOption {
	return func(c *comparisonConfig) { c.autoPreview = enabled }
}

// WithLabelStyle selects the caption style.
func WithLabelStyle(s LabelStyle) ComparisonOption {
	return func(c *comparisonConfig) { c.labelStyle = s }
}

// WithAlt sets the description of the image pair.
func WithAlt(alt string) ComparisonOption {
	return func(c *comparisonConfig) { c.alt = alt }
}

// WithTiming overrides the preview timings.
func WithTiming(t PreviewTiming) ComparisonOption {
	return func(c *comparisonConfig) { c.timing = t }
}

// WithEase overrides the easing used for programmatic movement.
func WithEase(fn ease.TweenFunc) ComparisonOption {
	return func(c *comparisonConfig) {
		if fn != nil {
			c.ease = fn
		}
	}
}

// WithLabels overrides the caption texts. Empty strings hide a caption.
func WithLabels(before, after string) ComparisonOption {
	return func(c *comparisonConfig) {
		c.beforeLabel = before
		c.afterLabel = after
	}
}

// WithFace sets the face used for captions and the hint.
func WithFace(face text.Face) ComparisonOption {
	return func(c *comparisonConfig) { c.face = face }
}

// WithSlideComplete registers fn to receive the settled position after every
// drag and after the guided preview.
func WithSlideComplete(fn func(position float64)) ComparisonOption {
	return func(c *comparisonConfig) { c.onSlideComplete = fn }
}

// WithDragStateChange registers fn to observe drag transitions, for example
// to pause a surrounding carousel.
func WithDragStateChange(fn func(isDragging, wasRecentlyDragging bool)) ComparisonOption {
	return func(c *comparisonConfig) { c.onDragStateChange = fn }
}

// Comparison is a before/after image slider. The before image is drawn on
// top, cropped from the left edge to the divider position.
type Comparison struct {
	node        *Node
	placeholder *Node
	after       *Node
	before      *Node
	divider     *Node
	handle      *Node
	hint        *Node
	beforeLabel *Node
	afterLabel  *Node

	beforeSrc ImageSource
	afterSrc  ImageSource

	machine    *sliderMachine
	hintFade   *TweenGroup
	hintUp     bool
	handleGrow *TweenGroup
	handleUp   bool
	grabScene  *Scene
	grabID     int

	width, height float64
	alt           string
	fallback      float32
	loadElapsed   float32
	revealed      bool
}

// NewComparison builds the slider. Add Node() to a scene to show it.
func NewComparison(name string, before, after ImageSource, opts ...ComparisonOption) *Comparison {
	cfg := comparisonConfig{
		width:       defaultComparisonWidth,
		height:      defaultComparisonHeight,
		initial:     50,
		autoPreview: true,
		labelStyle:  LabelStandard,
		timing:      DefaultPreviewTiming(),
		ease:        EaseLuxury,
		beforeLabel: "Before",
		afterLabel:  "After",
	}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.aspect > 0 {
		cfg.height = cfg.width / cfg.aspect
	}
	if cfg.face == nil {
		cfg.face = DefaultFace(TypeLabel)
	}

	c := &Comparison{
		beforeSrc: before,
		afterSrc:  after,
		width:     cfg.width,
		height:    cfg.height,
		alt:       cfg.alt,
		fallback:  cfg.timing.LoadFallback,
	}
	c.machine = newSliderMachine(cfg.initial, cfg.autoPreview, cfg.timing, cfg.ease)
	c.machine.onSlideComplete = cfg.onSlideComplete
	c.machine.onDragStateChange = cfg.onDragStateChange

	c.build(name, cfg)
	c.layout()
	return c
}

func (c *Comparison) build(name string, cfg comparisonConfig) {
	root := NewContainer(name)
	root.Interactable = true
	root.HitShape = HitRect{Width: c.width, Height: c.height}
	root.UserData = c
	c.node = root

	c.placeholder = NewRect(name+"_placeholder", c.width, c.height, Palette.Cream)
	c.after = NewSprite(name+"_after", nil)
	c.after.Visible = false
	c.before = NewSprite(name+"_before", nil)
	c.before.Visible = false
	c.divider = NewRect(name+"_divider", dividerWidth, c.height, Palette.Ivory)

	c.handle = NewContainer(name + "_handle")
	ring := NewRect(name+"_handle_ring", handleSize, handleSize, Palette.Ivory)
	ring.SetPosition(-handleSize/2, -handleSize/2)
	core := NewRect(name+"_handle_core", handleSize-8, handleSize-8, Palette.Gold)
	core.SetPosition(-handleSize/2+4, -handleSize/2+4)
	arrows := NewText(name+"_handle_arrows", "< >", cfg.face)
	arrows.Color = Palette.Ivory
	aw, ah := text.Measure(arrows.Text, cfg.face, 0)
	arrows.SetPosition(-aw/2, -ah/2)
	c.handle.AddChild(ring)
	c.handle.AddChild(core)
	c.handle.AddChild(arrows)

	c.hint = newPill(name+"_hint", hintText, cfg.face, Palette.Overlay, Palette.Ivory)
	c.hint.Alpha = 0
	c.hint.Visible = false

	root.AddChild(c.placeholder)
	root.AddChild(c.after)
	root.AddChild(c.before)
	if cfg.beforeLabel != "" {
		c.beforeLabel = newCaption(name+"_before_label", cfg.beforeLabel, cfg.labelStyle, cfg.face)
		root.AddChild(c.beforeLabel)
	}
	if cfg.afterLabel != "" {
		c.afterLabel = newCaption(name+"_after_label", cfg.afterLabel, cfg.labelStyle, cfg.face)
		root.AddChild(c.afterLabel)
	}
	root.AddChild(c.divider)
	root.AddChild(c.handle)
	root.AddChild(c.hint)

	root.OnPointerEnter = func(PointerContext) {
		c.machine.dispatch(sliderEvent{kind: sliderEnter})
	}
	root.OnPointerLeave = func(PointerContext) {
		c.machine.dispatch(sliderEvent{kind: sliderLeave})
	}
	root.OnPointerDown = func(ctx PointerContext) {
		c.grab(ctx)
		c.machine.dispatch(sliderEvent{kind: sliderPress, pos: c.percentAt(ctx.LocalX)})
	}
	root.OnDragStart = func(ctx DragContext) {
		c.machine.dispatch(sliderEvent{kind: sliderMove, pos: c.percentAt(ctx.LocalX)})
	}
	root.OnDrag = func(ctx DragContext) {
		c.machine.dispatch(sliderEvent{kind: sliderMove, pos: c.percentAt(ctx.LocalX)})
	}
	// The pointer is captured on press, so PointerUp lands here even when
	// the release happens outside the widget.
	root.OnPointerUp = func(ctx PointerContext) {
		if ctx.PointerID == c.grabID {
			c.grabScene = nil
		}
		c.machine.dispatch(sliderEvent{kind: sliderRelease})
	}
	root.OnUpdate = c.update
}

func (c *Comparison) grab(ctx PointerContext) {
	if ctx.Scene == nil {
		return
	}
	ctx.Scene.CapturePointer(ctx.PointerID, c.node)
	c.grabScene, c.grabID = ctx.Scene, ctx.PointerID
}

func (c *Comparison) percentAt(localX float64) float64 {
	if c.width <= 0 {
		return 0
	}
	return clampPercent(localX / c.width * 100)
}

func (c *Comparison) update(dt float64) {
	c.pollImages(float32(dt))
	c.machine.update(float32(dt))
	c.syncHint(float32(dt))
	c.syncHandle(float32(dt))
	c.layout()
}

func (c *Comparison) pollImages(dt float32) {
	beforeImg, beforeStatus := pollSource(c.beforeSrc)
	afterImg, afterStatus := pollSource(c.afterSrc)
	c.before.SetCustomImage(beforeImg)
	c.after.SetCustomImage(afterImg)

	if c.revealed {
		return
	}
	c.loadElapsed += dt
	if (beforeStatus != LoadPending && afterStatus != LoadPending) || c.loadElapsed >= c.fallback {
		c.revealed = true
	}
}

func pollSource(src ImageSource) (*ebiten.Image, LoadStatus) {
	if src == nil {
		return nil, LoadFailed
	}
	img, status := src.Poll()
	if status != LoadReady {
		return nil, status
	}
	return img, status
}

func (c *Comparison) syncHint(dt float32) {
	show := c.machine.state.ShowHint()
	if show != c.hintUp {
		c.hintUp = show
		if show {
			c.hint.Visible = true
			c.hintFade = TweenAlpha(c.hint, 1, DurationFast, EaseLuxury)
		} else {
			c.hintFade = TweenAlpha(c.hint, 0, DurationFast, EaseLuxury)
		}
	}
	if c.hintFade == nil {
		return
	}
	c.hintFade.Update(dt)
	if c.hintFade.Done {
		c.hintFade = nil
		if !c.hintUp {
			c.hint.Visible = false
		}
	}
}

// syncHandle grows the handle while a drag is active.
func (c *Comparison) syncHandle(dt float32) {
	if grab := c.machine.state.IsDragging(); grab != c.handleUp {
		c.handleUp = grab
		scale := 1.0
		if grab {
			scale = handleGrabScale
		}
		c.handleGrow = TweenScale(c.handle, scale, scale, DurationFast, EaseLuxury)
	}
	if c.handleGrow == nil {
		return
	}
	c.handleGrow.Update(dt)
	if c.handleGrow.Done {
		c.handleGrow = nil
	}
}

// layout positions every child from the current state.
func (c *Comparison) layout() {
	pos := c.machine.state.Position
	clip := c.width * pos / 100

	c.placeholder.Visible = !c.revealed
	fitImage(c.after, c.width, c.height, 100)
	fitImage(c.before, c.width, c.height, pos)

	c.divider.SetPosition(clip-dividerWidth/2, 0)
	c.handle.SetPosition(clip, c.height/2)

	hw, _ := pillSize(c.hint)
	hx := clip - hw/2
	hx = max(SpaceSM, min(hx, c.width-hw-SpaceSM))
	c.hint.SetPosition(hx, c.height/2+handleSize/2+SpaceSM)

	if c.beforeLabel != nil {
		lw, _ := pillSize(c.beforeLabel)
		c.beforeLabel.SetPosition(SpaceMD, SpaceMD)
		c.beforeLabel.Visible = clip >= SpaceMD+lw
	}
	if c.afterLabel != nil {
		lw, _ := pillSize(c.afterLabel)
		x := c.width - SpaceMD - lw
		c.afterLabel.SetPosition(x, SpaceMD)
		c.afterLabel.Visible = clip <= x
	}
}

// fitImage scales a sprite's image to w x h and crops it to the leftmost
// percent of its width. A sprite with nothing to show is hidden.
func fitImage(n *Node, w, h, percent float64) {
	img := n.CustomImage()
	if img == nil || percent <= 0 {
		n.Visible = false
		return
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		n.Visible = false
		return
	}
	n.Visible = true
	n.SetScale(w/iw, h/ih)
	n.Crop = Rect{Width: iw * percent / 100, Height: ih}
}

// Node returns the root node of the widget.
func (c *Comparison) Node() *Node {
	return c.node
}

// State returns a snapshot of the slider state.
func (c *Comparison) State() SliderState {
	return c.machine.state
}

// Alt returns the description of the image pair.
func (c *Comparison) Alt() string {
	return c.alt
}

// Size returns the widget size in pixels.
func (c *Comparison) Size() (w, h float64) {
	return c.width, c.height
}

// Revealed reports whether the loading placeholder has been dismissed.
func (c *Comparison) Revealed() bool {
	return c.revealed
}

// ClipWidth returns the on-screen width of the before image in pixels.
func (c *Comparison) ClipWidth() float64 {
	return c.width * c.machine.state.Position / 100
}

// Dispose cancels every pending timeline and removes the widget from its
// scene. No callback fires afterwards.
func (c *Comparison) Dispose() {
	if c.grabScene != nil {
		c.grabScene.ReleasePointer(c.grabID)
		c.grabScene = nil
	}
	c.machine.dispose()
	if c.handleGrow != nil {
		c.handleGrow.Stop()
		c.handleGrow = nil
	}
	if c.hintFade != nil {
		c.hintFade.Stop()
		c.hintFade = nil
	}
	c.node.Dispose()
}

// newPill builds a caption on a filled background.
func newPill(name, content string, face text.Face, bg, fg Color) *Node {
	pill := NewContainer(name)
	tw, th := text.Measure(content, face, 0)
	box := NewRect(name+"_bg", tw+2*SpaceMD, th+2*SpaceSM, bg)
	label := NewText(name+"_text", content, face)
	label.Color = fg
	label.SetPosition(SpaceMD, SpaceSM)
	pill.AddChild(box)
	pill.AddChild(label)
	pill.UserData = Vec2{X: tw + 2*SpaceMD, Y: th + 2*SpaceSM}
	return pill
}

// newCaption builds a before/after caption in the given style.
func newCaption(name, content string, style LabelStyle, face text.Face) *Node {
	switch style {
	case LabelMinimal:
		caption := NewContainer(name)
		label := NewText(name+"_text", content, face)
		label.Color = Palette.Ivory
		caption.AddChild(label)
		tw, th := text.Measure(content, face, 0)
		caption.UserData = Vec2{X: tw, Y: th}
		return caption

	case LabelElegant:
		caption := NewContainer(name)
		spaced := letterSpace(strings.ToUpper(content))
		label := NewText(name+"_text", spaced, face)
		label.Color = Palette.Gold
		tw, th := text.Measure(spaced, face, 0)
		rule := NewRect(name+"_rule", tw, 1, Palette.Gold)
		rule.SetPosition(0, th+SpaceXS)
		caption.AddChild(label)
		caption.AddChild(rule)
		caption.UserData = Vec2{X: tw, Y: th + SpaceXS + 1}
		return caption
	}
	return newPill(name, content, face, Palette.Overlay, Palette.Ivory)
}

func letterSpace(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}

// pillSize returns the measured size stored on a caption or pill container.
func pillSize(n *Node) (w, h float64) {
	if v, ok := n.UserData.(Vec2); ok {
		return v.X, v.Y
	}
	return 0, 0
}
