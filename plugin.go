package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"sync"
	"unsafe"
)

// PluginMagicNumber marks every plug-in descriptor ('acpp').
const PluginMagicNumber uint32 = 0x61637070

// PluginType identifies the kind of a plug-in descriptor.
type PluginType uint32

const (
	PluginMemHandler          PluginType = 0x6D656D48 // 'memH'
	PluginInterpolation       PluginType = 0x696E7048 // 'inpH'
	PluginParametricCurve     PluginType = 0x70617248 // 'parH'
	PluginFormatters          PluginType = 0x66726D48 // 'frmH'
	PluginTagType             PluginType = 0x74797048 // 'typH'
	PluginTag                 PluginType = 0x74616748 // 'tagH'
	PluginRenderingIntent     PluginType = 0x696E7448 // 'intH'
	PluginMultiProcessElement PluginType = 0x6D706548 // 'mpeH'
	PluginOptimization        PluginType = 0x6F707448 // 'optH'
	PluginTransform           PluginType = 0x7A666D48 // 'xfmH'
	PluginMutex               PluginType = 0x6D747A48 // 'mtxH'
	PluginParallelization     PluginType = 0x70726C48 // 'prlH'
)

func (t PluginType) String() string { return Signature(t).String() }

// MaxTypesInPlugin bounds the entries of a single descriptor.
const MaxTypesInPlugin = 20

// PluginBase is the header shared by all plug-in descriptors.
type PluginBase struct {
	Magic           uint32
	ExpectedVersion uint32
	Type            PluginType
}

// Plugin is a descriptor the engine accepts at context creation or through
// RegisterPlugins.
type Plugin interface {
	Base() PluginBase
	build(m *pluginMemory) (unsafe.Pointer, error)
}

// HeaderVersion is the engine version golcms was compiled against.
const HeaderVersion = int(C.LCMS_VERSION)

func baseOf(t PluginType) PluginBase {
	return PluginBase{Magic: PluginMagicNumber, ExpectedVersion: uint32(HeaderVersion), Type: t}
}

// registry holds what plug-ins contribute on the Go side of the engine
// callbacks. A key belongs to one owner at a time: the owner may claim it
// again, other owners are refused until every claim has been released.
type registry[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]*claim[V]
}

type claim[V any] struct {
	owner any
	v     V
	refs  int
}

// take claims k for owner. The returned func releases the claim; calling it
// more than once has no further effect.
func (r *registry[K, V]) take(k K, owner any, v V) (func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.m == nil {
		r.m = make(map[K]*claim[V])
	}
	c, ok := r.m[k]
	if ok && c.owner != owner {
		return nil, false
	}
	if !ok {
		c = &claim[V]{owner: owner, v: v}
		r.m[k] = c
	}
	c.refs++

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			c.refs--
			if c.refs == 0 && r.m[k] == c {
				delete(r.m, k)
			}
		})
	}, true
}

func (r *registry[K, V]) get(k K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.m[k]
	if !ok {
		var zero V
		return zero, false
	}
	return c.v, true
}

// ParametricEvaluator evaluates a parametric curve of type typ at r. Negative
// types ask for the inverse of the curve.
type ParametricEvaluator func(typ int32, params [10]float64, r float64) float64

// ParametricFunction declares one curve type handled by a plug-in.
type ParametricFunction struct {
	Type           int32
	ParameterCount int
}

// ParametricCurvesPlugin adds parametric curve types to the engine.
//
// The engine calls evaluators without saying which context they serve, so a
// curve type is bound to one plug-in value at a time: the same
// *ParametricCurvesPlugin may be registered in any number of contexts, while a
// different one declaring the same type is refused until the contexts using
// the first are closed.
type ParametricCurvesPlugin struct {
	Functions []ParametricFunction
	Evaluator ParametricEvaluator
}

func (p *ParametricCurvesPlugin) Base() PluginBase { return baseOf(PluginParametricCurve) }

var evaluators registry[int32, ParametricEvaluator]

func (p *ParametricCurvesPlugin) build(m *pluginMemory) (unsafe.Pointer, error) {
	n := len(p.Functions)
	if n == 0 || n > MaxTypesInPlugin {
		return nil, invalidArg("parametric plug-in needs 1 to %d functions, got %d", MaxTypesInPlugin, n)
	}
	if p.Evaluator == nil {
		return nil, invalidArg("parametric plug-in without evaluator")
	}
	types := make([]C.cmsUInt32Number, n)
	counts := make([]C.cmsUInt32Number, n)
	for i, f := range p.Functions {
		if f.Type <= 0 || f.ParameterCount < 0 || f.ParameterCount > 10 {
			return nil, invalidArg("parametric function %d: type %d with %d parameters", i, f.Type, f.ParameterCount)
		}
		types[i] = C.cmsUInt32Number(f.Type)
		counts[i] = C.cmsUInt32Number(f.ParameterCount)
	}
	for _, f := range p.Functions {
		release, ok := evaluators.take(f.Type, p, p.Evaluator)
		if !ok {
			return nil, invalidArg("curve type %d is handled by another plug-in", f.Type)
		}
		m.onRelease(release)
	}
	ptr := C.golcms_new_parametric_plugin(C.cmsUInt32Number(n), &types[0], &counts[0])
	if ptr == nil {
		return nil, ErrNullHandle
	}
	return ptr, nil
}

//export golcmsEvalParametric
func golcmsEvalParametric(typ C.cmsInt32Number, params *C.cmsFloat64Number, r C.cmsFloat64Number) C.cmsFloat64Number {
	t := int32(typ)
	key := t
	if key < 0 {
		key = -key
	}
	fn, ok := evaluators.get(key)
	if !ok {
		return 0
	}
	var p [10]float64
	for i, v := range unsafe.Slice(params, 10) {
		p[i] = float64(v)
	}
	return C.cmsFloat64Number(fn(t, p, float64(r)))
}

// TagPlugin declares a private tag: which tag types it may hold and how many
// elements it carries. A tag signature keeps the types it was declared with
// until every context declaring it is closed.
type TagPlugin struct {
	Signature      TagSignature
	ElemCount      uint32
	SupportedTypes []TagTypeSignature
}

func (p *TagPlugin) Base() PluginBase { return baseOf(PluginTag) }

func (p *TagPlugin) build(m *pluginMemory) (unsafe.Pointer, error) {
	n := len(p.SupportedTypes)
	if n == 0 || n > MaxTypesInPlugin {
		return nil, invalidArg("tag plug-in needs 1 to %d types, got %d", MaxTypesInPlugin, n)
	}
	if p.ElemCount == 0 {
		return nil, invalidArg("tag plug-in %s with zero elements", p.Signature)
	}
	release, err := registerTagKind(p.Signature, p.SupportedTypes)
	if err != nil {
		return nil, err
	}
	m.onRelease(release)

	types := make([]C.cmsTagTypeSignature, n)
	for i, t := range p.SupportedTypes {
		types[i] = C.cmsTagTypeSignature(t)
	}
	ptr := C.golcms_new_tag_plugin(C.cmsTagSignature(p.Signature), C.cmsUInt32Number(p.ElemCount), C.cmsUInt32Number(n), &types[0])
	if ptr == nil {
		return nil, ErrNullHandle
	}
	return ptr, nil
}

// pluginMemory owns the native descriptors of a plug-in chain and the Go side
// claims of its plug-ins. The engine keeps pointers into some descriptors, so
// they live as long as every context sharing them.
type pluginMemory struct {
	mu       sync.Mutex
	refs     int
	blocks   []unsafe.Pointer
	releases []func()
	mem      MemHandler
}

func buildPlugins(plugins []Plugin, atCreation bool) (*pluginMemory, error) {
	m := &pluginMemory{refs: 1}
	for _, p := range plugins {
		if p == nil {
			m.release()
			return nil, invalidArg("nil plug-in")
		}
		if _, ok := p.(*MemHandlerPlugin); ok && !atCreation {
			m.release()
			return nil, invalidArg("memory handlers are only accepted when a context is created")
		}
		ptr, err := p.build(m)
		if err != nil {
			m.release()
			return nil, err
		}
		if n := len(m.blocks); n > 0 {
			C.golcms_chain_plugin(m.blocks[n-1], ptr)
		}
		m.blocks = append(m.blocks, ptr)
	}
	return m, nil
}

// onRelease runs fn when the plug-ins are freed.
func (m *pluginMemory) onRelease(fn func()) {
	m.releases = append(m.releases, fn)
}

func (m *pluginMemory) head() unsafe.Pointer {
	if len(m.blocks) == 0 {
		return nil
	}
	return m.blocks[0]
}

func (m *pluginMemory) retain() *pluginMemory {
	m.mu.Lock()
	m.refs++
	m.mu.Unlock()
	return m
}

// adopt moves the blocks and claims of o into m.
func (m *pluginMemory) adopt(o *pluginMemory) {
	m.mu.Lock()
	m.blocks = append(m.blocks, o.blocks...)
	m.releases = append(m.releases, o.releases...)
	m.mu.Unlock()
	o.blocks, o.releases = nil, nil
}

func (m *pluginMemory) release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs--
	if m.refs > 0 {
		return
	}
	m.free()
}

// free drops the claims and the descriptors. m.mu must be held.
func (m *pluginMemory) free() {
	for _, fn := range m.releases {
		fn()
	}
	for _, b := range m.blocks {
		C.free(b)
	}
	m.blocks, m.releases = nil, nil
}

var globalPlugins = &pluginMemory{refs: 1}

// RegisterPlugins registers plug-ins in ctx, or globally when ctx is nil.
// Global plug-ins apply to contexts created afterwards. Memory handlers can
// only be given to NewContext.
func RegisterPlugins(ctx *Context, plugins ...Plugin) error {
	if len(plugins) == 0 {
		return nil
	}
	mem, err := buildPlugins(plugins, false)
	if err != nil {
		return err
	}
	if ctx == nil {
		globalErrors.clear()
		if C.cmsPlugin(mem.head()) == 0 {
			mem.release()
			return globalErrors.fail("cmsPlugin", ErrFailed)
		}
		globalPlugins.adopt(mem)
		return nil
	}

	p, err := ctx.h.lock()
	if err != nil {
		mem.release()
		return err
	}
	defer ctx.h.unlock()
	if C.cmsPluginTHR(C.cmsContext(p), mem.head()) == 0 {
		mem.release()
		return ctx.errs.fail("cmsPluginTHR", ErrFailed)
	}
	ctx.plugins.adopt(mem)
	return nil
}

// UnregisterPlugins removes every plug-in from ctx, or from the global context
// when ctx is nil. A memory handler given to NewContext stays in use.
func UnregisterPlugins(ctx *Context) error {
	if ctx == nil {
		C.cmsUnregisterPlugins()
		globalPlugins.mu.Lock()
		globalPlugins.free()
		globalPlugins.mu.Unlock()
		return nil
	}
	p, err := ctx.h.lock()
	if err != nil {
		return err
	}
	defer ctx.h.unlock()
	C.cmsUnregisterPluginsTHR(C.cmsContext(p))
	return nil
}
