package golcms

import (
	"sort"
	"sync"
	"unsafe"
)

// handle guards a single native pointer.
//
// Native calls run under the read lock, release runs under the write lock, so a
// pointer is never freed while a call is using it and never freed twice.
// A handle may own children: objects created under a context, or borrowed views
// into memory owned by the parent (a tag read from a profile, a stage held by a
// pipeline). Children are closed before their parent releases its pointer.
// Children are only attached while the parent is read-locked, so a parent never
// gains a child after it was shut down.
type handle struct {
	mu      sync.RWMutex
	ptr     unsafe.Pointer
	release func(unsafe.Pointer)
	ctx     *Context
	errs    *errorState

	parent *handle

	cmu      sync.Mutex
	children map[*handle]struct{}
}

// wrapper is implemented by the exported types built on a handle.
type wrapper interface {
	native() *handle
}

// newHandle wraps ptr. A nil release makes the handle a borrowed view. When ctx
// is not nil the handle is attached to it and closed with it.
func newHandle(ctx *Context, ptr unsafe.Pointer, release func(unsafe.Pointer)) *handle {
	h := &handle{ptr: ptr, release: release, ctx: ctx, errs: errorsOf(ctx)}
	if ctx != nil {
		ctx.h.attach(h)
	}
	return h
}

// borrow returns a non-owning child view of ptr that is invalidated when h is
// closed.
func (h *handle) borrow(ptr unsafe.Pointer) *handle {
	c := &handle{ptr: ptr, ctx: h.ctx, errs: h.errs}
	h.attach(c)
	return c
}

func (h *handle) attach(c *handle) {
	h.cmu.Lock()
	if h.children == nil {
		h.children = make(map[*handle]struct{})
	}
	h.children[c] = struct{}{}
	h.cmu.Unlock()

	c.mu.Lock()
	c.parent = h
	c.mu.Unlock()
}

func (h *handle) detach(c *handle) {
	h.cmu.Lock()
	delete(h.children, c)
	h.cmu.Unlock()
}

// lock read-locks h and returns its pointer. On success the caller must call
// unlock. Engine reports left over from earlier calls are dropped.
func (h *handle) lock() (unsafe.Pointer, error) {
	if h == nil {
		return nil, ErrClosed
	}
	h.mu.RLock()
	if h.ptr == nil {
		h.mu.RUnlock()
		return nil, ErrClosed
	}
	h.errs.clear()
	return h.ptr, nil
}

func (h *handle) unlock() {
	h.mu.RUnlock()
}

// closed reports whether h has been released.
func (h *handle) closed() bool {
	if h == nil {
		return true
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ptr == nil
}

// close releases the native pointer once. Later calls are no-ops.
func (h *handle) close() {
	if h == nil {
		return
	}
	if parent := h.shutdown(); parent != nil {
		parent.detach(h)
	}
}

// shutdown closes the children of h, then releases h itself. It returns the
// parent h was attached to, if any.
func (h *handle) shutdown() *handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ptr == nil {
		return nil
	}

	h.cmu.Lock()
	kids := make([]*handle, 0, len(h.children))
	for c := range h.children {
		kids = append(kids, c)
	}
	h.children = nil
	h.cmu.Unlock()
	for _, c := range kids {
		c.shutdown()
	}

	ptr := h.ptr
	h.ptr = nil
	if h.release != nil {
		h.release(ptr)
	}
	parent := h.parent
	h.parent = nil
	return parent
}

// transfer runs fn with h write-locked and owner read-locked. When fn succeeds
// the engine owns the pointer of h and h becomes a borrowed child of owner (a
// stage inserted into a pipeline).
func (h *handle) transfer(owner *handle, fn func(x, o unsafe.Pointer) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ptr == nil {
		return ErrClosed
	}
	if h.release == nil {
		return invalidArg("object is owned by another object")
	}
	o, err := owner.lock()
	if err != nil {
		return err
	}
	defer owner.unlock()
	if err := fn(h.ptr, o); err != nil {
		return err
	}

	h.release = nil
	if h.parent != nil {
		h.parent.detach(h)
	}
	owner.cmu.Lock()
	if owner.children == nil {
		owner.children = make(map[*handle]struct{})
	}
	owner.children[h] = struct{}{}
	owner.cmu.Unlock()
	h.parent = owner
	return nil
}

// invalidate closes every borrowed child of h that points at ptr. Nothing is
// released.
func (h *handle) invalidate(ptr unsafe.Pointer) {
	h.invalidateWhere(func(c *handle) bool { return c.ptr == ptr })
}

// invalidateWhere closes the borrowed children of h matched by hit, together
// with their own views. hit runs with the child read-locked.
func (h *handle) invalidateWhere(hit func(c *handle) bool) {
	h.cmu.Lock()
	kids := make([]*handle, 0, len(h.children))
	for c := range h.children {
		kids = append(kids, c)
	}
	h.cmu.Unlock()

	for _, c := range kids {
		c.mu.RLock()
		matched := c.release == nil && c.ptr != nil && hit(c)
		c.mu.RUnlock()
		if matched {
			c.close()
		}
	}
}

// use runs fn with the pointer of h read-locked.
func use[T any](h *handle, fn func(unsafe.Pointer) T) (T, error) {
	p, err := h.lock()
	if err != nil {
		var zero T
		return zero, err
	}
	defer h.unlock()
	return fn(p), nil
}

// do runs fn with the pointer of h read-locked.
func do(h *handle, fn func(unsafe.Pointer) error) error {
	p, err := h.lock()
	if err != nil {
		return err
	}
	defer h.unlock()
	return fn(p)
}

// exclusive runs fn with the pointer of h write-locked, for calls that change
// state other calls read.
func exclusive(h *handle, fn func(unsafe.Pointer) error) error {
	if h == nil {
		return ErrClosed
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.ptr == nil {
		return ErrClosed
	}
	h.errs.clear()
	return fn(h.ptr)
}

// lockAll read-locks several handles in address order, locking each distinct
// handle once. The returned pointers follow the order of hs.
func lockAll(hs ...*handle) ([]unsafe.Pointer, func(), error) {
	uniq := make([]*handle, 0, len(hs))
	seen := make(map[*handle]bool, len(hs))
	for _, h := range hs {
		if h == nil {
			return nil, nil, ErrClosed
		}
		if !seen[h] {
			seen[h] = true
			uniq = append(uniq, h)
		}
	}
	sort.Slice(uniq, func(i, j int) bool {
		return uintptr(unsafe.Pointer(uniq[i])) < uintptr(unsafe.Pointer(uniq[j]))
	})

	locked := make([]*handle, 0, len(uniq))
	unlock := func() {
		for _, h := range locked {
			h.unlock()
		}
	}
	for _, h := range uniq {
		if _, err := h.lock(); err != nil {
			unlock()
			return nil, nil, err
		}
		locked = append(locked, h)
	}

	ptrs := make([]unsafe.Pointer, len(hs))
	for i, h := range hs {
		ptrs[i] = h.ptr
	}
	return ptrs, unlock, nil
}
