// Package faceframe is the interactive widget kit behind the FaceFrame
// Beauty site, built on [Ebitengine].
//
// It provides a small retained-mode scene graph with affine transforms,
// pointer and touch input, synthetic input injection for headless tests,
// cancellable timelines, tweens (via [gween]) and the brand's design tokens.
// On top of these sits [Comparison], the before/after image slider.
//
// # Quick start
//
//	scene := faceframe.NewScene()
//	slider := faceframe.NewComparison("makeover",
//		faceframe.LoadImage(ctx, "before.jpg"),
//		faceframe.LoadImage(ctx, "after.jpg"),
//		faceframe.WithSize(600, 400),
//		faceframe.WithLabelStyle(faceframe.LabelElegant),
//	)
//	scene.Root().AddChild(slider.Node())
//	faceframe.Run(scene, faceframe.RunConfig{Title: "Preview", Width: 640, Height: 440})
//
// # Driving a scene without a window
//
// [Scene.Step] advances the scene by an explicit duration, so widgets can be
// exercised in tests:
//
//	scene.SetPointerSource(nil)
//	scene.InjectHover(300, 200)
//	for i := 0; i < 60; i++ {
//		scene.Step(1.0 / 60)
//	}
//
// # Timelines
//
// A [Timeline] replaces chains of timers with a declarative list of steps.
// Cancelling it is the only way to stop it, and no step runs afterwards:
//
//	tl := faceframe.NewTimeline(
//		faceframe.Delay(0.3),
//		faceframe.Animate(&pos, 75, 2, faceframe.EaseLuxury),
//		faceframe.Call(done),
//	)
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package faceframe
