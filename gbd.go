package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// GamutBoundary describes a gamut as the hull of the Lab points added to it,
// using the segment maxima method.
type GamutBoundary struct {
	h *handle
}

func NewGamutBoundary(ctx *Context) (*GamutBoundary, error) {
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := C.cmsGBDAlloc(c)
	if ptr == nil {
		return nil, errorsOf(ctx).fail("cmsGBDAlloc", ErrNullHandle)
	}
	g := &GamutBoundary{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsGBDFree(C.cmsHANDLE(x))
	})}
	runtime.SetFinalizer(g, (*GamutBoundary).Close)
	return g, nil
}

func (g *GamutBoundary) Close() error {
	g.h.close()
	runtime.SetFinalizer(g, nil)
	return nil
}

func (g *GamutBoundary) IsClosed() bool { return g.h.closed() }

func (g *GamutBoundary) native() *handle { return g.h }

// AddPoint extends the boundary with v.
func (g *GamutBoundary) AddPoint(v CIELab) error {
	lab := v.c()
	return do(g.h, func(x unsafe.Pointer) error {
		if C.cmsGDBAddPoint(C.cmsHANDLE(x), &lab) == 0 {
			return g.h.fail("cmsGDBAddPoint", ErrFailed)
		}
		return nil
	})
}

// Compute fills the sectors no point landed in. It must run before
// CheckPoint.
func (g *GamutBoundary) Compute(flags Flags) error {
	return do(g.h, func(x unsafe.Pointer) error {
		if C.cmsGDBCompute(C.cmsHANDLE(x), C.cmsUInt32Number(flags)) == 0 {
			return g.h.fail("cmsGDBCompute", ErrFailed)
		}
		return nil
	})
}

// CheckPoint reports whether v lies inside the boundary.
func (g *GamutBoundary) CheckPoint(v CIELab) (bool, error) {
	lab := v.c()
	return use(g.h, func(x unsafe.Pointer) bool {
		return C.cmsGDBCheckPoint(C.cmsHANDLE(x), &lab) != 0
	})
}
