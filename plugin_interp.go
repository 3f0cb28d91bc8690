package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"slices"
	"unsafe"
)

// InterpParams describes the lookup table being evaluated. Samples holds the
// grid points per input, Domain the largest grid index per input and Opta the
// table stride per input in entries. The table aliases engine memory and is
// only valid during the call.
type InterpParams struct {
	Inputs     int
	Outputs    int
	Samples    []uint32
	Domain     []uint32
	Opta       []uint32
	Table16    []uint16
	TableFloat []float32
}

// Interpolator evaluates lookup tables in place of the engine's routines.
type Interpolator interface {
	// Handles reports whether tables with in inputs and out outputs are
	// served, of float samples when isFloat is set.
	Handles(in, out int, isFloat bool) bool
	Eval16(p *InterpParams, in, out []uint16)
	EvalFloat(p *InterpParams, in, out []float32)
}

// InterpolationPlugin replaces the interpolation of the tables a context
// builds, for the shapes its Interpolator handles. The engine does not say
// which context asks for a routine, so one plug-in value serves at a time and
// it applies to every context it is registered in.
type InterpolationPlugin struct {
	Interpolator Interpolator
}

func (p *InterpolationPlugin) Base() PluginBase { return baseOf(PluginInterpolation) }

var interpolators registry[struct{}, Interpolator]

func (p *InterpolationPlugin) build(m *pluginMemory) (unsafe.Pointer, error) {
	if p.Interpolator == nil {
		return nil, invalidArg("interpolation plug-in without interpolator")
	}
	release, ok := interpolators.take(struct{}{}, p, p.Interpolator)
	if !ok {
		return nil, invalidArg("another interpolation plug-in is registered")
	}
	m.onRelease(release)

	ptr := C.golcms_new_interp_plugin()
	if ptr == nil {
		return nil, ErrNullHandle
	}
	return ptr, nil
}

//export golcmsInterpHandles
func golcmsInterpHandles(nIn, nOut C.cmsUInt32Number, isFloat C.int) C.int {
	ip, ok := interpolators.get(struct{}{})
	if ok && ip.Handles(int(nIn), int(nOut), isFloat != 0) {
		return 1
	}
	return 0
}

func interpParams(nIn, nOut C.cmsUInt32Number, samples, domain, opta *C.cmsUInt32Number) (*InterpParams, int) {
	p := &InterpParams{
		Inputs:  int(nIn),
		Outputs: int(nOut),
		Samples: slices.Clone(unsafe.Slice((*uint32)(unsafe.Pointer(samples)), int(nIn))),
		Domain:  slices.Clone(unsafe.Slice((*uint32)(unsafe.Pointer(domain)), int(nIn))),
		Opta:    slices.Clone(unsafe.Slice((*uint32)(unsafe.Pointer(opta)), int(nIn))),
	}
	n := p.Outputs
	for _, s := range p.Samples {
		n *= int(s)
	}
	return p, n
}

//export golcmsLerp16
func golcmsLerp16(in, out *C.cmsUInt16Number, nIn, nOut C.cmsUInt32Number, samples, domain, opta *C.cmsUInt32Number, table unsafe.Pointer) {
	o := unsafe.Slice((*uint16)(unsafe.Pointer(out)), int(nOut))
	ip, ok := interpolators.get(struct{}{})
	if !ok {
		clear(o)
		return
	}
	p, n := interpParams(nIn, nOut, samples, domain, opta)
	p.Table16 = unsafe.Slice((*uint16)(table), n)
	ip.Eval16(p, unsafe.Slice((*uint16)(unsafe.Pointer(in)), int(nIn)), o)
}

//export golcmsLerpFloat
func golcmsLerpFloat(in, out *C.cmsFloat32Number, nIn, nOut C.cmsUInt32Number, samples, domain, opta *C.cmsUInt32Number, table unsafe.Pointer) {
	o := unsafe.Slice((*float32)(unsafe.Pointer(out)), int(nOut))
	ip, ok := interpolators.get(struct{}{})
	if !ok {
		clear(o)
		return
	}
	p, n := interpParams(nIn, nOut, samples, domain, opta)
	p.TableFloat = unsafe.Slice((*float32)(table), n)
	ip.EvalFloat(p, unsafe.Slice((*float32)(unsafe.Pointer(in)), int(nIn)), o)
}
