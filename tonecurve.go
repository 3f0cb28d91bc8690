package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"math"
	"runtime"
	"unsafe"
)

// ToneCurve is a one-dimensional transfer function.
type ToneCurve struct {
	h     *handle
	owner any
}

// CurveSegment is one piece of a segmented curve, covering (X0, X1]. Type 0
// means the segment is sampled at Sampled points, any other type is
// parametric with Params.
type CurveSegment struct {
	X0, X1  float32
	Type    int32
	Params  [10]float64
	Sampled []float32
}

// Infinite bounds for the first and last segment of a segmented curve.
var (
	MinusInf = float32(math.Inf(-1))
	PlusInf  = float32(math.Inf(1))
)

func newToneCurve(ctx *Context, ptr *C.cmsToneCurve) *ToneCurve {
	t := &ToneCurve{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsFreeToneCurve((*C.cmsToneCurve)(x))
	})}
	runtime.SetFinalizer(t, (*ToneCurve).Close)
	return t
}

func toneCurveView(parent *handle, owner any, ptr unsafe.Pointer) *ToneCurve {
	t := &ToneCurve{h: parent.borrow(ptr), owner: owner}
	runtime.SetFinalizer(t, (*ToneCurve).Close)
	return t
}

func createToneCurve(ctx *Context, op string, fn func(C.cmsContext) *C.cmsToneCurve) (*ToneCurve, error) {
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := fn(c)
	if ptr == nil {
		return nil, errorsOf(ctx).fail(op, ErrNullHandle)
	}
	return newToneCurve(ctx, ptr), nil
}

// NewParametricToneCurve builds a curve of one of the engine's parametric
// types, or one added by a plug-in. Negative types build the inverse.
func NewParametricToneCurve(ctx *Context, typ int32, params ...float64) (*ToneCurve, error) {
	if typ == 0 || len(params) > 10 {
		return nil, invalidArg("parametric curve type %d with %d parameters", typ, len(params))
	}
	var p [10]C.cmsFloat64Number
	for i, v := range params {
		p[i] = C.cmsFloat64Number(v)
	}
	return createToneCurve(ctx, "cmsBuildParametricToneCurve", func(c C.cmsContext) *C.cmsToneCurve {
		return C.cmsBuildParametricToneCurve(c, C.cmsInt32Number(typ), &p[0])
	})
}

// NewGammaToneCurve builds y = x^gamma.
func NewGammaToneCurve(ctx *Context, gamma float64) (*ToneCurve, error) {
	return createToneCurve(ctx, "cmsBuildGamma", func(c C.cmsContext) *C.cmsToneCurve {
		return C.cmsBuildGamma(c, C.cmsFloat64Number(gamma))
	})
}

// NewTabulatedToneCurve16 builds a curve from evenly spaced 16-bit samples.
func NewTabulatedToneCurve16(ctx *Context, values []uint16) (*ToneCurve, error) {
	if len(values) < 2 {
		return nil, invalidArg("tabulated curve needs at least 2 entries, got %d", len(values))
	}
	return createToneCurve(ctx, "cmsBuildTabulatedToneCurve16", func(c C.cmsContext) *C.cmsToneCurve {
		return C.cmsBuildTabulatedToneCurve16(c, C.cmsUInt32Number(len(values)), (*C.cmsUInt16Number)(unsafe.Pointer(&values[0])))
	})
}

// NewTabulatedToneCurveFloat builds a curve from evenly spaced samples in
// [0, 1].
func NewTabulatedToneCurveFloat(ctx *Context, values []float32) (*ToneCurve, error) {
	if len(values) < 2 {
		return nil, invalidArg("tabulated curve needs at least 2 entries, got %d", len(values))
	}
	return createToneCurve(ctx, "cmsBuildTabulatedToneCurveFloat", func(c C.cmsContext) *C.cmsToneCurve {
		return C.cmsBuildTabulatedToneCurveFloat(c, C.cmsUInt32Number(len(values)), (*C.cmsFloat32Number)(unsafe.Pointer(&values[0])))
	})
}

// NewSegmentedToneCurve builds a curve out of consecutive segments.
func NewSegmentedToneCurve(ctx *Context, segments []CurveSegment) (*ToneCurve, error) {
	if len(segments) == 0 {
		return nil, invalidArg("segmented curve without segments")
	}
	size := C.size_t(unsafe.Sizeof(C.cmsCurveSegment{}))
	segs := (*C.cmsCurveSegment)(C.calloc(C.size_t(len(segments)), size))
	defer C.free(unsafe.Pointer(segs))
	cs := unsafe.Slice(segs, len(segments))
	for i, s := range segments {
		if s.Type == 0 && len(s.Sampled) < 2 {
			return nil, invalidArg("sampled segment %d needs at least 2 points", i)
		}
		cs[i].x0 = C.cmsFloat32Number(s.X0)
		cs[i].x1 = C.cmsFloat32Number(s.X1)
		cs[i].Type = C.cmsInt32Number(s.Type)
		for j, v := range s.Params {
			cs[i].Params[j] = C.cmsFloat64Number(v)
		}
		if s.Type == 0 {
			pts := C.malloc(C.size_t(len(s.Sampled)) * C.size_t(unsafe.Sizeof(C.cmsFloat32Number(0))))
			defer C.free(pts)
			sp := unsafe.Slice((*C.cmsFloat32Number)(pts), len(s.Sampled))
			for j, v := range s.Sampled {
				sp[j] = C.cmsFloat32Number(v)
			}
			cs[i].nGridPoints = C.cmsUInt32Number(len(s.Sampled))
			cs[i].SampledPoints = (*C.cmsFloat32Number)(pts)
		}
	}
	return createToneCurve(ctx, "cmsBuildSegmentedToneCurve", func(c C.cmsContext) *C.cmsToneCurve {
		return C.cmsBuildSegmentedToneCurve(c, C.cmsUInt32Number(len(segments)), segs)
	})
}

// Close frees the curve. On a view it only drops the view.
func (t *ToneCurve) Close() error {
	t.h.close()
	runtime.SetFinalizer(t, nil)
	return nil
}

func (t *ToneCurve) IsClosed() bool { return t.h.closed() }

func (t *ToneCurve) native() *handle { return t.h }

// derive builds a new owned curve out of t under its context.
func (t *ToneCurve) derive(op string, fn func(*C.cmsToneCurve) *C.cmsToneCurve) (*ToneCurve, error) {
	var out *ToneCurve
	err := withContext(t.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		ptr := fn((*C.cmsToneCurve)(x))
		if ptr == nil {
			return t.h.fail(op, ErrNullHandle)
		}
		out = newToneCurve(t.h.ctx, ptr)
		return nil
	})
	return out, err
}

// Dup returns an owned copy of t.
func (t *ToneCurve) Dup() (*ToneCurve, error) {
	return t.derive("cmsDupToneCurve", func(x *C.cmsToneCurve) *C.cmsToneCurve {
		return C.cmsDupToneCurve(x)
	})
}

// Reverse returns the inverse of t.
func (t *ToneCurve) Reverse() (*ToneCurve, error) {
	return t.derive("cmsReverseToneCurve", func(x *C.cmsToneCurve) *C.cmsToneCurve {
		return C.cmsReverseToneCurve(x)
	})
}

// ReverseEx returns the inverse of t tabulated with n samples.
func (t *ToneCurve) ReverseEx(n int) (*ToneCurve, error) {
	if n < 2 || n > math.MaxUint16 {
		return nil, invalidArg("reverse curve with %d samples", n)
	}
	return t.derive("cmsReverseToneCurveEx", func(x *C.cmsToneCurve) *C.cmsToneCurve {
		return C.cmsReverseToneCurveEx(C.cmsUInt32Number(n), x)
	})
}

// Join returns the curve that applies t and then the inverse of y, tabulated
// with n points.
func (t *ToneCurve) Join(y *ToneCurve, n int) (*ToneCurve, error) {
	if y == nil || n < 2 {
		return nil, invalidArg("joined curve with %d points", n)
	}
	c, unlock, err := t.h.ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptrs, release, err := lockAll(t.h, y.h)
	if err != nil {
		return nil, err
	}
	defer release()
	ptr := C.cmsJoinToneCurve(c, (*C.cmsToneCurve)(ptrs[0]), (*C.cmsToneCurve)(ptrs[1]), C.cmsUInt32Number(n))
	if ptr == nil {
		return nil, t.h.fail("cmsJoinToneCurve", ErrNullHandle)
	}
	return newToneCurve(t.h.ctx, ptr), nil
}

// Smooth applies a smoothing filter of strength lambda to the table of t in
// place.
func (t *ToneCurve) Smooth(lambda float64) error {
	return do(t.h, func(x unsafe.Pointer) error {
		if C.cmsSmoothToneCurve((*C.cmsToneCurve)(x), C.cmsFloat64Number(lambda)) == 0 {
			return t.h.fail("cmsSmoothToneCurve", ErrFailed)
		}
		return nil
	})
}

func (t *ToneCurve) Eval16(v uint16) (uint16, error) {
	return use(t.h, func(x unsafe.Pointer) uint16 {
		return uint16(C.cmsEvalToneCurve16((*C.cmsToneCurve)(x), C.cmsUInt16Number(v)))
	})
}

func (t *ToneCurve) EvalFloat(v float32) (float32, error) {
	return use(t.h, func(x unsafe.Pointer) float32 {
		return float32(C.cmsEvalToneCurveFloat((*C.cmsToneCurve)(x), C.cmsFloat32Number(v)))
	})
}

func (t *ToneCurve) IsLinear() (bool, error) {
	return use(t.h, func(x unsafe.Pointer) bool {
		return C.cmsIsToneCurveLinear((*C.cmsToneCurve)(x)) != 0
	})
}

func (t *ToneCurve) IsMonotonic() (bool, error) {
	return use(t.h, func(x unsafe.Pointer) bool {
		return C.cmsIsToneCurveMonotonic((*C.cmsToneCurve)(x)) != 0
	})
}

func (t *ToneCurve) IsDescending() (bool, error) {
	return use(t.h, func(x unsafe.Pointer) bool {
		return C.cmsIsToneCurveDescending((*C.cmsToneCurve)(x)) != 0
	})
}

func (t *ToneCurve) IsMultisegment() (bool, error) {
	return use(t.h, func(x unsafe.Pointer) bool {
		return C.cmsIsToneCurveMultisegment((*C.cmsToneCurve)(x)) != 0
	})
}

// EstimateGamma fits a gamma exponent to t. It fails when the curve is not
// close enough to a power function.
func (t *ToneCurve) EstimateGamma(precision float64) (float64, error) {
	var g float64
	err := do(t.h, func(x unsafe.Pointer) error {
		g = float64(C.cmsEstimateGamma((*C.cmsToneCurve)(x), C.cmsFloat64Number(precision)))
		if g < 0 {
			return t.h.fail("cmsEstimateGamma", ErrFailed)
		}
		return nil
	})
	return g, err
}

// TableEntries is the number of entries of the 16-bit table of t.
func (t *ToneCurve) TableEntries() (int, error) {
	return use(t.h, func(x unsafe.Pointer) int {
		return int(C.cmsGetToneCurveEstimatedTableEntries((*C.cmsToneCurve)(x)))
	})
}

// Table returns a copy of the 16-bit table of t.
func (t *ToneCurve) Table() ([]uint16, error) {
	return use(t.h, func(x unsafe.Pointer) []uint16 {
		c := (*C.cmsToneCurve)(x)
		n := int(C.cmsGetToneCurveEstimatedTableEntries(c))
		p := C.cmsGetToneCurveEstimatedTable(c)
		if n == 0 || p == nil {
			return nil
		}
		out := make([]uint16, n)
		for i, v := range unsafe.Slice(p, n) {
			out[i] = uint16(v)
		}
		return out
	})
}

// ParametricType is the parametric type of a single segment curve, 0 for
// tabulated curves.
func (t *ToneCurve) ParametricType() (int32, error) {
	if err := requireEngine("ParametricType", ">= 2.9"); err != nil {
		return 0, err
	}
	return use(t.h, func(x unsafe.Pointer) int32 {
		return int32(C.golcms_curve_parametric_type((*C.cmsToneCurve)(x)))
	})
}

// Params returns the parameters of a parametric curve.
func (t *ToneCurve) Params() ([10]float64, error) {
	var out [10]float64
	if err := requireEngine("Params", ">= 2.14"); err != nil {
		return out, err
	}
	err := do(t.h, func(x unsafe.Pointer) error {
		var p [10]C.cmsFloat64Number
		if C.golcms_curve_params((*C.cmsToneCurve)(x), &p[0]) == 0 {
			return invalidArg("curve is not parametric")
		}
		for i, v := range p {
			out[i] = float64(v)
		}
		return nil
	})
	return out, err
}
