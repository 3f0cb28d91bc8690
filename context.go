package golcms

/*
#cgo pkg-config: lcms2
#include "lcms_bridge.h"
*/
import "C"

import (
	"fmt"
	"runtime"
	"runtime/cgo"
	"unsafe"
)

func init() {
	C.golcms_install_global_error_handler()
}

//export golcmsLogError
func golcmsLogError(ctx C.cmsContext, code C.cmsUInt32Number, text *C.char) {
	errorsFor(ctx).report(ErrorCode(code), C.GoString(text))
}

// nativeState is what the user data of an engine context refers to. Engine
// callbacks that only receive the context find their Go side through it.
type nativeState struct {
	errs *errorState
	mem  MemHandler
}

// stateFor returns the state of ctx, or nil for the global context and for
// contexts golcms did not create.
func stateFor(ctx C.cmsContext) *nativeState {
	if ctx == nil {
		return nil
	}
	ref := C.golcms_context_handle(ctx)
	if ref == 0 {
		return nil
	}
	s, _ := cgo.Handle(ref).Value().(*nativeState)
	return s
}

func errorsFor(ctx C.cmsContext) *errorState {
	if s := stateFor(ctx); s != nil {
		return s.errs
	}
	return globalErrors
}

// Context scopes engine state: registered plug-ins, error reporting, adaptation
// state and alarm codes. Every object created with a Context belongs to it and
// is closed when the Context is closed.
//
// A nil *Context stands for the engine's global context; methods that make
// sense for it accept a nil receiver.
type Context struct {
	h       *handle
	errs    *errorState
	ref     cgo.Handle
	user    any
	plugins *pluginMemory
}

// NewContext creates a context carrying userData with the given plug-ins
// registered.
func NewContext(userData any, plugins ...Plugin) (*Context, error) {
	mem, err := buildPlugins(plugins, true)
	if err != nil {
		return nil, err
	}
	c := &Context{errs: &errorState{}, user: userData, plugins: mem}
	c.ref = cgo.NewHandle(&nativeState{errs: c.errs, mem: mem.mem})
	globalErrors.clear()

	ptr := C.golcms_create_context(mem.head(), C.uintptr_t(c.ref))
	if ptr == nil {
		c.ref.Delete()
		mem.release()
		return nil, globalErrors.fail("cmsCreateContext", ErrNullHandle)
	}
	c.init(ptr)
	return c, nil
}

func (c *Context) init(ptr C.cmsContext) {
	c.errs.name = fmt.Sprintf("%p", unsafe.Pointer(ptr))
	C.golcms_install_error_handler(ptr)

	ref, mem := c.ref, c.plugins
	c.h = newHandle(nil, unsafe.Pointer(ptr), func(p unsafe.Pointer) {
		C.cmsDeleteContext(C.cmsContext(p))
		ref.Delete()
		mem.release()
	})
	c.h.errs = c.errs
	runtime.SetFinalizer(c, (*Context).Close)
}

// Dup creates a copy of c, with its plug-ins and settings, carrying userData.
func (c *Context) Dup(userData any) (*Context, error) {
	if c == nil {
		return NewContext(userData)
	}
	p, err := c.h.lock()
	if err != nil {
		return nil, err
	}
	defer c.h.unlock()

	d := &Context{errs: &errorState{}, user: userData, plugins: c.plugins.retain()}
	d.ref = cgo.NewHandle(&nativeState{errs: d.errs, mem: c.plugins.mem})
	ptr := C.golcms_dup_context(C.cmsContext(p), C.uintptr_t(d.ref))
	if ptr == nil {
		d.ref.Delete()
		d.plugins.release()
		return nil, c.errs.fail("cmsDupContext", ErrNullHandle)
	}
	d.init(ptr)
	return d, nil
}

// Close closes every object still open under c, then deletes the context.
// Close is idempotent.
func (c *Context) Close() error {
	if c == nil {
		return nil
	}
	c.h.close()
	runtime.SetFinalizer(c, nil)
	return nil
}

// IsClosed reports whether c has been closed.
func (c *Context) IsClosed() bool {
	return c != nil && c.h.closed()
}

// UserData returns the value c was created with.
func (c *Context) UserData() any {
	if c == nil {
		return nil
	}
	return c.user
}

// SetErrorHandler routes engine error reports for c to fn. A nil fn restores
// logging through the package logger.
func (c *Context) SetErrorHandler(fn ErrorHandler) {
	errorsOf(c).setHandler(fn)
}

// lock returns the native context for a creation call. A nil c yields the
// global context.
func (c *Context) lock() (C.cmsContext, func(), error) {
	if c == nil {
		globalErrors.clear()
		return nil, func() {}, nil
	}
	p, err := c.h.lock()
	if err != nil {
		return nil, nil, err
	}
	return C.cmsContext(p), c.h.unlock, nil
}

// SetAdaptationState sets the degree of adaptation of the observer used by
// absolute colorimetric transforms (1 is complete adaptation, 0 none) and
// returns the previous value.
func (c *Context) SetAdaptationState(d float64) (float64, error) {
	if d < 0 || d > 1 {
		return 0, invalidArg("adaptation state %v out of [0, 1]", d)
	}
	ctx, unlock, err := c.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return float64(C.cmsSetAdaptationStateTHR(ctx, C.cmsFloat64Number(d))), nil
}

// AdaptationState returns the current adaptation state.
func (c *Context) AdaptationState() (float64, error) {
	ctx, unlock, err := c.lock()
	if err != nil {
		return 0, err
	}
	defer unlock()
	return float64(C.cmsSetAdaptationStateTHR(ctx, -1)), nil
}

// SetAlarmCodes sets the values written for out-of-gamut pixels by transforms
// created with FlagGamutCheck.
func (c *Context) SetAlarmCodes(codes [MaxChannels]uint16) error {
	ctx, unlock, err := c.lock()
	if err != nil {
		return err
	}
	defer unlock()
	var cc [MaxChannels]C.cmsUInt16Number
	for i, v := range codes {
		cc[i] = C.cmsUInt16Number(v)
	}
	C.cmsSetAlarmCodesTHR(ctx, &cc[0])
	return nil
}

// AlarmCodes returns the out-of-gamut alarm values.
func (c *Context) AlarmCodes() ([MaxChannels]uint16, error) {
	var codes [MaxChannels]uint16
	ctx, unlock, err := c.lock()
	if err != nil {
		return codes, err
	}
	defer unlock()
	var cc [MaxChannels]C.cmsUInt16Number
	C.cmsGetAlarmCodesTHR(ctx, &cc[0])
	for i, v := range cc {
		codes[i] = uint16(v)
	}
	return codes, nil
}

// IntentInfo describes a rendering intent known to a context.
type IntentInfo struct {
	Intent      Intent
	Description string
}

// SupportedIntents lists the rendering intents available in c, including
// intents added by plug-ins.
func (c *Context) SupportedIntents() ([]IntentInfo, error) {
	ctx, unlock, err := c.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	n := C.cmsGetSupportedIntentsTHR(ctx, 0, nil, nil)
	if n == 0 {
		return nil, nil
	}
	codes := make([]C.cmsUInt32Number, n)
	descs := make([]*C.char, n)
	n = C.cmsGetSupportedIntentsTHR(ctx, n, &codes[0], &descs[0])

	out := make([]IntentInfo, 0, n)
	for i := 0; i < int(n); i++ {
		out = append(out, IntentInfo{Intent: Intent(codes[i]), Description: C.GoString(descs[i])})
	}
	return out, nil
}

// withContext read-locks the context of h and then h, the order Close takes
// them, and runs fn. Calls that make the engine allocate under the context of an
// existing object go through it.
func withContext(h *handle, fn func(c C.cmsContext, x unsafe.Pointer) error) error {
	c, unlock, err := h.ctx.lock()
	if err != nil {
		return err
	}
	defer unlock()
	return do(h, func(x unsafe.Pointer) error { return fn(c, x) })
}
