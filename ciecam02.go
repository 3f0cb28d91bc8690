package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// Surround is the CIECAM02 surround condition.
type Surround uint32

const (
	SurroundAverage  Surround = 1
	SurroundDim      Surround = 2
	SurroundDark     Surround = 3
	SurroundCutsheet Surround = 4
)

// DCalculate asks the model to derive the degree of adaptation from La.
const DCalculate = -1

// ViewingConditions configures a CIECAM02 model.
type ViewingConditions struct {
	WhitePoint CIEXYZ
	Yb         float64 // relative background luminance
	La         float64 // adapting field luminance, cd/m2
	Surround   Surround
	D          float64 // degree of adaptation, or DCalculate
}

// CIECAM02 converts between XYZ and appearance correlates under fixed viewing
// conditions.
type CIECAM02 struct {
	h *handle
}

func NewCIECAM02(ctx *Context, vc ViewingConditions) (*CIECAM02, error) {
	if vc.Surround < SurroundAverage || vc.Surround > SurroundCutsheet {
		return nil, invalidArg("surround %d", vc.Surround)
	}
	cvc := C.cmsViewingConditions{
		whitePoint: vc.WhitePoint.c(),
		Yb:         C.cmsFloat64Number(vc.Yb),
		La:         C.cmsFloat64Number(vc.La),
		surround:   C.cmsUInt32Number(vc.Surround),
		D_value:    C.cmsFloat64Number(vc.D),
	}
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := C.cmsCIECAM02Init(c, &cvc)
	if ptr == nil {
		return nil, errorsOf(ctx).fail("cmsCIECAM02Init", ErrNullHandle)
	}
	m := &CIECAM02{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsCIECAM02Done(C.cmsHANDLE(x))
	})}
	runtime.SetFinalizer(m, (*CIECAM02).Close)
	return m, nil
}

func (m *CIECAM02) Close() error {
	m.h.close()
	runtime.SetFinalizer(m, nil)
	return nil
}

func (m *CIECAM02) IsClosed() bool { return m.h.closed() }

func (m *CIECAM02) native() *handle { return m.h }

// Forward returns the appearance of v.
func (m *CIECAM02) Forward(v CIEXYZ) (JCh, error) {
	in := v.c()
	return use(m.h, func(x unsafe.Pointer) JCh {
		var out C.cmsJCh
		C.cmsCIECAM02Forward(C.cmsHANDLE(x), &in, &out)
		return JCh{J: float64(out.J), C: float64(out.C), H: float64(out.h)}
	})
}

// Reverse returns the XYZ that has appearance v.
func (m *CIECAM02) Reverse(v JCh) (CIEXYZ, error) {
	in := C.cmsJCh{J: C.cmsFloat64Number(v.J), C: C.cmsFloat64Number(v.C), h: C.cmsFloat64Number(v.H)}
	return use(m.h, func(x unsafe.Pointer) CIEXYZ {
		var out C.cmsCIEXYZ
		C.cmsCIECAM02Reverse(C.cmsHANDLE(x), &in, &out)
		return goXYZ(out)
	})
}
