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

// StageType identifies the kind of a pipeline stage.
type StageType uint32

const (
	StageCurveSet   StageType = 0x63767374 // 'cvst'
	StageMatrix     StageType = 0x6D617466 // 'matf'
	StageCLut       StageType = 0x636C7574 // 'clut'
	StageBAcs       StageType = 0x62414353 // 'bACS'
	StageEAcs       StageType = 0x65414353 // 'eACS'
	StageXYZ2Lab    StageType = 0x6C327820 // 'l2x '
	StageLab2XYZ    StageType = 0x78326C20 // 'x2l '
	StageNamedColor StageType = 0x6E636C20 // 'ncl '
	StageLabV2toV4  StageType = 0x32203420 // '2 4 '
	StageLabV4toV2  StageType = 0x34203220 // '4 2 '
	StageIdentity   StageType = 0x69646E20 // 'idn '
	StageClipNeg    StageType = 0x636C7020 // 'clp '
)

func (t StageType) String() string { return Signature(t).String() }

// maxStageChannels bounds the channels of a stage.
const maxStageChannels = 128

// Stage is one processing element of a Pipeline. A new stage is owned by the
// caller until it is inserted into a pipeline; from then on it is a view owned
// by the pipeline.
type Stage struct {
	h     *handle
	owner any
}

func newStage(ctx *Context, ptr *C.cmsStage) *Stage {
	s := &Stage{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsStageFree((*C.cmsStage)(x))
	})}
	runtime.SetFinalizer(s, (*Stage).Close)
	return s
}

func stageView(parent *handle, owner any, ptr unsafe.Pointer) *Stage {
	s := &Stage{h: parent.borrow(ptr), owner: owner}
	runtime.SetFinalizer(s, (*Stage).Close)
	return s
}

func createStage(ctx *Context, op string, fn func(C.cmsContext) *C.cmsStage) (*Stage, error) {
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := fn(c)
	if ptr == nil {
		return nil, errorsOf(ctx).fail(op, ErrNullHandle)
	}
	return newStage(ctx, ptr), nil
}

func checkChannels(n ...int) error {
	for _, c := range n {
		if c < 1 || c > maxStageChannels {
			return invalidArg("%d channels out of [1, %d]", c, maxStageChannels)
		}
	}
	return nil
}

// NewIdentityStage creates a stage passing n channels through.
func NewIdentityStage(ctx *Context, n int) (*Stage, error) {
	if err := checkChannels(n); err != nil {
		return nil, err
	}
	return createStage(ctx, "cmsStageAllocIdentity", func(c C.cmsContext) *C.cmsStage {
		return C.cmsStageAllocIdentity(c, C.cmsUInt32Number(n))
	})
}

// NewToneCurvesStage creates a stage applying one curve per channel. The
// curves are copied.
func NewToneCurvesStage(ctx *Context, curves []*ToneCurve) (*Stage, error) {
	if err := checkChannels(len(curves)); err != nil {
		return nil, err
	}
	hs := make([]*handle, len(curves))
	for i, t := range curves {
		if t == nil {
			return nil, invalidArg("nil curve %d", i)
		}
		hs[i] = t.h
	}
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptrs, release, err := lockAll(hs...)
	if err != nil {
		return nil, err
	}
	defer release()

	cs := make([]*C.cmsToneCurve, len(ptrs))
	for i, p := range ptrs {
		cs[i] = (*C.cmsToneCurve)(p)
	}
	ptr := C.cmsStageAllocToneCurves(c, C.cmsUInt32Number(len(cs)), &cs[0])
	if ptr == nil {
		return nil, errorsOf(ctx).fail("cmsStageAllocToneCurves", ErrNullHandle)
	}
	return newStage(ctx, ptr), nil
}

// NewMatrixStage creates a stage multiplying by a rows x cols matrix, stored
// row by row, and adding offset. offset may be nil.
func NewMatrixStage(ctx *Context, rows, cols int, matrix, offset []float64) (*Stage, error) {
	if err := checkChannels(rows, cols); err != nil {
		return nil, err
	}
	if len(matrix) != rows*cols {
		return nil, invalidArg("%dx%d matrix with %d values", rows, cols, len(matrix))
	}
	if offset != nil && len(offset) != rows {
		return nil, invalidArg("%d offsets for %d rows", len(offset), rows)
	}
	var po *C.cmsFloat64Number
	if offset != nil {
		po = (*C.cmsFloat64Number)(unsafe.Pointer(&offset[0]))
	}
	return createStage(ctx, "cmsStageAllocMatrix", func(c C.cmsContext) *C.cmsStage {
		return C.cmsStageAllocMatrix(c, C.cmsUInt32Number(rows), C.cmsUInt32Number(cols),
			(*C.cmsFloat64Number)(unsafe.Pointer(&matrix[0])), po)
	})
}

// clutSize is the number of table entries of a lookup table with grid points
// per input and out outputs.
func clutSize(grid, in, out int) (int, error) {
	if grid < 2 || grid > math.MaxUint8 {
		return 0, invalidArg("%d grid points", grid)
	}
	if in < 1 || in > MaxChannels {
		return 0, invalidArg("%d lookup table inputs", in)
	}
	if err := checkChannels(out); err != nil {
		return 0, err
	}
	n := out
	for i := 0; i < in; i++ {
		if n > math.MaxInt32/grid {
			return 0, invalidArg("lookup table too large")
		}
		n *= grid
	}
	return n, nil
}

// NewCLut16Stage creates a lookup table stage with grid points per input.
// table holds the outputs of every node with the last input varying fastest;
// nil leaves the table zeroed.
func NewCLut16Stage(ctx *Context, grid, in, out int, table []uint16) (*Stage, error) {
	n, err := clutSize(grid, in, out)
	if err != nil {
		return nil, err
	}
	var pt *C.cmsUInt16Number
	if table != nil {
		if len(table) != n {
			return nil, invalidArg("lookup table needs %d entries, got %d", n, len(table))
		}
		pt = (*C.cmsUInt16Number)(unsafe.Pointer(&table[0]))
	}
	return createStage(ctx, "cmsStageAllocCLut16bit", func(c C.cmsContext) *C.cmsStage {
		return C.cmsStageAllocCLut16bit(c, C.cmsUInt32Number(grid), C.cmsUInt32Number(in), C.cmsUInt32Number(out), pt)
	})
}

// NewCLutFloatStage is NewCLut16Stage with float samples in [0, 1].
func NewCLutFloatStage(ctx *Context, grid, in, out int, table []float32) (*Stage, error) {
	n, err := clutSize(grid, in, out)
	if err != nil {
		return nil, err
	}
	var pt *C.cmsFloat32Number
	if table != nil {
		if len(table) != n {
			return nil, invalidArg("lookup table needs %d entries, got %d", n, len(table))
		}
		pt = (*C.cmsFloat32Number)(unsafe.Pointer(&table[0]))
	}
	return createStage(ctx, "cmsStageAllocCLutFloat", func(c C.cmsContext) *C.cmsStage {
		return C.cmsStageAllocCLutFloat(c, C.cmsUInt32Number(grid), C.cmsUInt32Number(in), C.cmsUInt32Number(out), pt)
	})
}

// Close frees a stage the caller owns. On a stage held by a pipeline it only
// drops the view.
func (s *Stage) Close() error {
	s.h.close()
	runtime.SetFinalizer(s, nil)
	return nil
}

func (s *Stage) IsClosed() bool { return s.h.closed() }

func (s *Stage) native() *handle { return s.h }

// Dup returns an owned copy of s.
func (s *Stage) Dup() (*Stage, error) {
	var out *Stage
	err := withContext(s.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		ptr := C.cmsStageDup((*C.cmsStage)(x))
		if ptr == nil {
			return s.h.fail("cmsStageDup", ErrNullHandle)
		}
		out = newStage(s.h.ctx, ptr)
		return nil
	})
	return out, err
}

func (s *Stage) InputChannels() (int, error) {
	return use(s.h, func(x unsafe.Pointer) int {
		return int(C.cmsStageInputChannels((*C.cmsStage)(x)))
	})
}

func (s *Stage) OutputChannels() (int, error) {
	return use(s.h, func(x unsafe.Pointer) int {
		return int(C.cmsStageOutputChannels((*C.cmsStage)(x)))
	})
}

func (s *Stage) Type() (StageType, error) {
	return use(s.h, func(x unsafe.Pointer) StageType {
		return StageType(C.cmsStageType((*C.cmsStage)(x)))
	})
}
