package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// Pipeline is an ordered list of stages evaluated one after another.
type Pipeline struct {
	h     *handle
	owner any
}

// NewPipeline creates an empty pipeline with in input and out output
// channels.
func NewPipeline(ctx *Context, in, out int) (*Pipeline, error) {
	if err := checkChannels(in, out); err != nil {
		return nil, err
	}
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := C.cmsPipelineAlloc(c, C.cmsUInt32Number(in), C.cmsUInt32Number(out))
	if ptr == nil {
		return nil, errorsOf(ctx).fail("cmsPipelineAlloc", ErrNullHandle)
	}
	return newPipeline(ctx, ptr), nil
}

func newPipeline(ctx *Context, ptr *C.cmsPipeline) *Pipeline {
	p := &Pipeline{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsPipelineFree((*C.cmsPipeline)(x))
	})}
	runtime.SetFinalizer(p, (*Pipeline).Close)
	return p
}

func pipelineView(parent *handle, owner any, ptr unsafe.Pointer) *Pipeline {
	p := &Pipeline{h: parent.borrow(ptr), owner: owner}
	runtime.SetFinalizer(p, (*Pipeline).Close)
	return p
}

// Close frees the pipeline and every stage in it.
func (p *Pipeline) Close() error {
	p.h.close()
	runtime.SetFinalizer(p, nil)
	return nil
}

func (p *Pipeline) IsClosed() bool { return p.h.closed() }

func (p *Pipeline) native() *handle { return p.h }

// Dup returns an owned copy of p.
func (p *Pipeline) Dup() (*Pipeline, error) {
	var out *Pipeline
	err := withContext(p.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		ptr := C.cmsPipelineDup((*C.cmsPipeline)(x))
		if ptr == nil {
			return p.h.fail("cmsPipelineDup", ErrNullHandle)
		}
		out = newPipeline(p.h.ctx, ptr)
		return nil
	})
	return out, err
}

// Cat appends copies of the stages of other to p.
func (p *Pipeline) Cat(other *Pipeline) error {
	if other == nil {
		return invalidArg("nil pipeline")
	}
	_, unlock, err := p.h.ctx.lock()
	if err != nil {
		return err
	}
	defer unlock()
	ptrs, release, err := lockAll(p.h, other.h)
	if err != nil {
		return err
	}
	defer release()
	dst, src := (*C.cmsPipeline)(ptrs[0]), (*C.cmsPipeline)(ptrs[1])
	// The engine walks src while appending to dst, so a pipeline is never
	// concatenated onto itself directly.
	if dst == src {
		src = C.cmsPipelineDup(dst)
		if src == nil {
			return p.h.fail("cmsPipelineDup", ErrNullHandle)
		}
		defer C.cmsPipelineFree(src)
	}
	if C.cmsPipelineCat(dst, src) == 0 {
		return p.h.fail("cmsPipelineCat", ErrFailed)
	}
	return nil
}

func (p *Pipeline) InputChannels() (int, error) {
	return use(p.h, func(x unsafe.Pointer) int {
		return int(C.cmsPipelineInputChannels((*C.cmsPipeline)(x)))
	})
}

func (p *Pipeline) OutputChannels() (int, error) {
	return use(p.h, func(x unsafe.Pointer) int {
		return int(C.cmsPipelineOutputChannels((*C.cmsPipeline)(x)))
	})
}

func (p *Pipeline) StageCount() (int, error) {
	return use(p.h, func(x unsafe.Pointer) int {
		return int(C.cmsPipelineStageCount((*C.cmsPipeline)(x)))
	})
}

// Eval16 evaluates p on 16-bit values. in must hold one value per input
// channel.
func (p *Pipeline) Eval16(in []uint16) ([]uint16, error) {
	var out []uint16
	err := do(p.h, func(x unsafe.Pointer) error {
		lut := (*C.cmsPipeline)(x)
		nin, nout := int(C.cmsPipelineInputChannels(lut)), int(C.cmsPipelineOutputChannels(lut))
		if len(in) != nin {
			return invalidArg("pipeline takes %d channels, got %d", nin, len(in))
		}
		cin := make([]C.cmsUInt16Number, nin)
		for i, v := range in {
			cin[i] = C.cmsUInt16Number(v)
		}
		cout := make([]C.cmsUInt16Number, nout)
		C.cmsPipelineEval16(&cin[0], &cout[0], lut)
		out = make([]uint16, nout)
		for i, v := range cout {
			out[i] = uint16(v)
		}
		return nil
	})
	return out, err
}

// EvalFloat evaluates p on float values.
func (p *Pipeline) EvalFloat(in []float32) ([]float32, error) {
	var out []float32
	err := do(p.h, func(x unsafe.Pointer) error {
		lut := (*C.cmsPipeline)(x)
		nin, nout := int(C.cmsPipelineInputChannels(lut)), int(C.cmsPipelineOutputChannels(lut))
		if len(in) != nin {
			return invalidArg("pipeline takes %d channels, got %d", nin, len(in))
		}
		out = make([]float32, nout)
		C.cmsPipelineEvalFloat((*C.cmsFloat32Number)(unsafe.Pointer(&in[0])),
			(*C.cmsFloat32Number)(unsafe.Pointer(&out[0])), lut)
		return nil
	})
	return out, err
}

// EvalReverseFloat searches the input that p maps to target. Only pipelines
// with 3 outputs and 3 or 4 inputs can be reversed; with 4 inputs target[3]
// fixes the last input. hint seeds the search and may be nil.
func (p *Pipeline) EvalReverseFloat(target, hint []float32) ([]float32, error) {
	var out []float32
	err := do(p.h, func(x unsafe.Pointer) error {
		lut := (*C.cmsPipeline)(x)
		nin, nout := int(C.cmsPipelineInputChannels(lut)), int(C.cmsPipelineOutputChannels(lut))
		if nout != 3 || (nin != 3 && nin != 4) {
			return invalidArg("cannot reverse a %d to %d pipeline", nin, nout)
		}
		if len(target) != 3 && !(nin == 4 && len(target) == 4) {
			return invalidArg("%d target values", len(target))
		}
		if hint != nil && len(hint) != nin {
			return invalidArg("hint needs %d values, got %d", nin, len(hint))
		}
		var t [4]C.cmsFloat32Number
		for i, v := range target {
			t[i] = C.cmsFloat32Number(v)
		}
		var ph *C.cmsFloat32Number
		if hint != nil {
			ph = (*C.cmsFloat32Number)(unsafe.Pointer(&hint[0]))
		}
		res := make([]float32, nin)
		if C.cmsPipelineEvalReverseFloat(&t[0], (*C.cmsFloat32Number)(unsafe.Pointer(&res[0])), ph, lut) == 0 {
			return p.h.fail("cmsPipelineEvalReverseFloat", ErrFailed)
		}
		out = res
		return nil
	})
	return out, err
}

// InsertStage moves s into p at loc. On success p owns s and s becomes a view
// that is closed with p.
func (p *Pipeline) InsertStage(loc StageLoc, s *Stage) error {
	if s == nil {
		return invalidArg("nil stage")
	}
	err := s.h.transfer(p.h, func(x, o unsafe.Pointer) error {
		if C.cmsPipelineInsertStage((*C.cmsPipeline)(o), C.cmsStageLoc(loc), (*C.cmsStage)(x)) == 0 {
			return p.h.fail("cmsPipelineInsertStage", ErrFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.owner = p
	return nil
}

// UnlinkStage removes the stage at loc and returns it, owned by the caller.
// Views of that stage are closed.
func (p *Pipeline) UnlinkStage(loc StageLoc) (*Stage, error) {
	var out *Stage
	err := withContext(p.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		lut := (*C.cmsPipeline)(x)
		if C.cmsPipelineStageCount(lut) == 0 {
			return invalidArg("pipeline has no stages")
		}
		var mpe *C.cmsStage
		C.cmsPipelineUnlinkStage(lut, C.cmsStageLoc(loc), &mpe)
		if mpe == nil {
			return p.h.fail("cmsPipelineUnlinkStage", ErrFailed)
		}
		p.h.invalidate(unsafe.Pointer(mpe))
		out = newStage(p.h.ctx, mpe)
		return nil
	})
	return out, err
}

// Stages returns views of the stages of p, first to last.
func (p *Pipeline) Stages() ([]*Stage, error) {
	var out []*Stage
	err := do(p.h, func(x unsafe.Pointer) error {
		for s := C.cmsPipelineGetPtrToFirstStage((*C.cmsPipeline)(x)); s != nil; s = C.cmsStageNext(s) {
			out = append(out, stageView(p.h, p, unsafe.Pointer(s)))
		}
		return nil
	})
	return out, err
}
