// Package dropbubble implements the drag-to-dismiss elastic bubble for
// [Ebitengine] programs.
//
// Pressing a bound element lifts a snapshot of it into a floating bubble that
// follows the pointer. The bubble is tethered to the element's center by an
// elastic band: two filled circles joined by a quadratic-Bezier outline. The
// anchor circle shrinks as the bubble moves away. Released while the anchor is
// still large enough, the bubble springs back with an overshoot and the element
// reappears; released past the threshold, the band snaps and the element is
// dismissed.
//
// # Quick start
//
//	host := dropbubble.NewHost()
//	badge := dropbubble.NewWidget("badge", dropbubble.Rect{X: 300, Y: 200, Width: 48, Height: 48})
//	badge.Color = dropbubble.Color{R: 0.9, G: 0.2, B: 0.2, A: 1}
//	host.AddWidget(badge)
//
//	host.Attach(badge, dropbubble.ListenerFuncs{
//		Dismiss: func(el dropbubble.Element) { log.Println("dismissed") },
//	})
//
//	dropbubble.Run(host, dropbubble.RunConfig{Title: "Bubble", Width: 640, Height: 480})
//
// For full control, implement [ebiten.Game] yourself and call [Host.Update]
// and [Host.Draw] directly.
//
// # Engine
//
// [Engine] is the state machine behind a single bound element. It knows
// nothing about windows: the overlay surface, the element and the snapshot
// capture are injected ([Overlay], [Element], [SnapshotFunc]), and rendering
// goes through the small [Canvas] interface. [ScreenCanvas] draws onto an
// ebiten image; [RasterCanvas] draws with gogpu/gg into a plain image.Image,
// which is handy for tests and offline frame export.
//
// There is no global animation clock. [Engine.Update] advances the fade,
// spring-back and overlay removal tasks by dt seconds; [Host.Update] does
// this once per tick.
//
// [Ebitengine]: https://ebitengine.org
package dropbubble
