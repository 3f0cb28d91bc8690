package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"sync/atomic"
	"unsafe"
)

// MemHandler allocates the native memory of a context. Blocks must live
// outside the Go heap, for instance come from the C allocator, since the
// engine keeps them across calls.
type MemHandler interface {
	Malloc(size uint32) unsafe.Pointer
	Free(p unsafe.Pointer)
	Realloc(p unsafe.Pointer, size uint32) unsafe.Pointer
}

// MemHandlerPlugin routes the allocations of a context through Handler. It is
// only accepted by NewContext, and contexts duplicated from that context use
// the same handler.
type MemHandlerPlugin struct {
	Handler MemHandler
}

func (p *MemHandlerPlugin) Base() PluginBase { return baseOf(PluginMemHandler) }

func (p *MemHandlerPlugin) build(m *pluginMemory) (unsafe.Pointer, error) {
	if p.Handler == nil {
		return nil, invalidArg("memory plug-in without handler")
	}
	if m.mem != nil {
		return nil, invalidArg("more than one memory plug-in")
	}
	ptr := C.golcms_new_mem_plugin()
	if ptr == nil {
		return nil, ErrNullHandle
	}
	m.mem = p.Handler
	return ptr, nil
}

func memHandlerFor(ctx C.cmsContext) MemHandler {
	if s := stateFor(ctx); s != nil {
		return s.mem
	}
	return nil
}

//export golcmsMalloc
func golcmsMalloc(ctx C.cmsContext, size C.cmsUInt32Number) unsafe.Pointer {
	if m := memHandlerFor(ctx); m != nil {
		return m.Malloc(uint32(size))
	}
	return C.malloc(C.size_t(size))
}

//export golcmsFree
func golcmsFree(ctx C.cmsContext, p unsafe.Pointer) {
	if m := memHandlerFor(ctx); m != nil {
		m.Free(p)
		return
	}
	C.free(p)
}

//export golcmsRealloc
func golcmsRealloc(ctx C.cmsContext, p unsafe.Pointer, size C.cmsUInt32Number) unsafe.Pointer {
	if m := memHandlerFor(ctx); m != nil {
		return m.Realloc(p, uint32(size))
	}
	return C.realloc(p, C.size_t(size))
}

// CountingMemHandler allocates with the C allocator and counts blocks. A
// context that released everything it allocated has no live blocks once it is
// closed.
type CountingMemHandler struct {
	allocs atomic.Int64
	frees  atomic.Int64
}

func (m *CountingMemHandler) Malloc(size uint32) unsafe.Pointer {
	p := C.malloc(C.size_t(size))
	if p != nil {
		m.allocs.Add(1)
	}
	return p
}

func (m *CountingMemHandler) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}
	m.frees.Add(1)
	C.free(p)
}

func (m *CountingMemHandler) Realloc(p unsafe.Pointer, size uint32) unsafe.Pointer {
	q := C.realloc(p, C.size_t(size))
	if p == nil && q != nil {
		m.allocs.Add(1)
	}
	return q
}

// Allocs is the number of blocks allocated so far.
func (m *CountingMemHandler) Allocs() int64 { return m.allocs.Load() }

// Frees is the number of blocks freed so far.
func (m *CountingMemHandler) Frees() int64 { return m.frees.Load() }

// Live is the number of blocks allocated and not yet freed.
func (m *CountingMemHandler) Live() int64 { return m.allocs.Load() - m.frees.Load() }
