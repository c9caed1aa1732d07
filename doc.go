// Package shaderview renders graphics tutorial samples on a GPU-backed
// drawing surface.
//
// # Overview
//
// A sample is a small named tutorial unit (a triangle, a rotating cube)
// identified by an integer ID. Selecting a sample activates the native
// renderer registered for that ID and lets it produce frames on a drawing
// surface whose lifetime follows the host application.
//
// # Architecture
//
// The library is organized bottom-up:
//   - sample: the read-only sample registry
//   - native: the render bridge, the renderer contract and the runtime
//     that owns renderer instances keyed by sample ID
//   - samples: the closed set of built-in renderers
//   - surface: drawing surfaces and GPU context backends
//   - host: the drawing surface host with its dedicated render thread
//   - renderer: the surface lifecycle controller that maps host and
//     surface events onto bridge calls in order
//   - screen: glue that forwards host lifecycle events
//   - display: frame presenters (terminal, snapshot files)
//
// # Quick Start
//
//	rt := native.NewRuntime()
//	defer rt.Close()
//	samples.Install(rt)
//
//	h, _ := host.New(host.WithPresenter(presenter))
//	defer h.Close()
//
//	s, _ := sample.Default().ByID(sample.TriangleID)
//	d, _ := screen.NewDetail(s, rt, h, nil)
//	d.HandleEvent(lifecycle.Event{From: lifecycle.StageDead, To: lifecycle.StageVisible})
//	d.HandleEvent(size.Event{WidthPx: 320, HeightPx: 240})
//
// # Threading
//
// Surface callbacks (created, changed, draw) run only on the host's render
// thread. Controller creation and destruction come from the caller's
// goroutine; destruction is handed to the render thread so native
// resources are never released under an in-flight frame.
//
// # Logging
//
// shaderview is silent by default. Call SetLogger to enable structured
// logging for all sub-packages.
package shaderview

// Version is the current version of the library.
const Version = "0.1.0"
