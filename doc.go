// Package golcms binds the Little CMS 2 colour management engine.
//
// Every exported object (Profile, Transform, ToneCurve, Pipeline, Stage, MLU,
// NamedColorList, Dict, IT8, GamutBoundary, CIECAM02) wraps one native handle.
// Close releases it exactly once; any later call fails with ErrClosed. A
// finalizer releases objects that are never closed.
//
// Objects created with a Context belong to it, and closing the context closes
// them. A nil *Context selects the engine's global context.
//
// Some objects are views into memory owned by another object: a curve read from
// a profile tag, a stage held by a pipeline, the display strings of a
// dictionary. Closing a view never frees native memory; closing the owner, or
// overwriting the tag, invalidates the view.
//
// Lifetime is safe across goroutines. Mutating one object from several
// goroutines at once is not; transforms may be shared once built.
//
//	ctx, _ := golcms.NewContext(nil)
//	defer ctx.Close()
//	srgb, _ := golcms.NewSRGBProfile(ctx)
//	lab, _ := golcms.NewLab4Profile(ctx, nil)
//	t, _ := golcms.NewTransform(ctx, srgb, golcms.TypeRGB8, lab, golcms.TypeLabDbl,
//		golcms.IntentPerceptual, 0)
//	out := make([]float64, 3)
//	_ = golcms.DoSlice(t, []uint8{255, 0, 0}, out, 1)
package golcms
