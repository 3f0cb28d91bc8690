package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// Dict is a metadata dictionary, as stored in the 'meta' tag.
type Dict struct {
	h     *handle
	owner any
}

// DictEntry is one name/value pair of a Dict. The display strings are views
// owned by the Dict and may be nil.
type DictEntry struct {
	Name         string
	Value        string
	DisplayName  *MLU
	DisplayValue *MLU
}

// NewDict creates an empty dictionary.
func NewDict(ctx *Context) (*Dict, error) {
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := C.cmsDictAlloc(c)
	if ptr == nil {
		return nil, errorsOf(ctx).fail("cmsDictAlloc", ErrNullHandle)
	}
	return newDict(ctx, unsafe.Pointer(ptr)), nil
}

func newDict(ctx *Context, ptr unsafe.Pointer) *Dict {
	d := &Dict{h: newHandle(ctx, ptr, func(x unsafe.Pointer) {
		C.cmsDictFree(C.cmsHANDLE(x))
	})}
	runtime.SetFinalizer(d, (*Dict).Close)
	return d
}

func dictView(parent *handle, owner any, ptr unsafe.Pointer) *Dict {
	d := &Dict{h: parent.borrow(ptr), owner: owner}
	runtime.SetFinalizer(d, (*Dict).Close)
	return d
}

// Close frees the dictionary and invalidates the display strings read from it.
func (d *Dict) Close() error {
	d.h.close()
	runtime.SetFinalizer(d, nil)
	return nil
}

func (d *Dict) IsClosed() bool { return d.h.closed() }

func (d *Dict) native() *handle { return d.h }

// Dup returns an owned copy of d.
func (d *Dict) Dup() (*Dict, error) {
	var out *Dict
	err := withContext(d.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		ptr := C.cmsDictDup(C.cmsHANDLE(x))
		if ptr == nil {
			return d.h.fail("cmsDictDup", ErrNullHandle)
		}
		out = newDict(d.h.ctx, unsafe.Pointer(ptr))
		return nil
	})
	return out, err
}

// Add appends an entry. displayName and displayValue are copied and may be
// nil.
func (d *Dict) Add(name, value string, displayName, displayValue *MLU) error {
	if name == "" {
		return invalidArg("empty dictionary name")
	}
	cn, err := cWide(name)
	if err != nil {
		return invalidArg("name %q: %v", name, err)
	}
	defer C.free(unsafe.Pointer(cn))
	cv, err := cWide(value)
	if err != nil {
		return invalidArg("value %q: %v", value, err)
	}
	defer C.free(unsafe.Pointer(cv))

	hs := []*handle{d.h}
	if displayName != nil {
		hs = append(hs, displayName.h)
	}
	if displayValue != nil {
		hs = append(hs, displayValue.h)
	}
	ptrs, unlock, err := lockAll(hs...)
	if err != nil {
		return err
	}
	defer unlock()

	var dn, dv *C.cmsMLU
	i := 1
	if displayName != nil {
		dn = (*C.cmsMLU)(ptrs[i])
		i++
	}
	if displayValue != nil {
		dv = (*C.cmsMLU)(ptrs[i])
	}
	if C.cmsDictAddEntry(C.cmsHANDLE(ptrs[0]), cn, cv, dn, dv) == 0 {
		return d.h.fail("cmsDictAddEntry", ErrFailed)
	}
	return nil
}

// Entries lists the entries of d in storage order.
func (d *Dict) Entries() ([]DictEntry, error) {
	var out []DictEntry
	err := do(d.h, func(x unsafe.Pointer) error {
		for e := C.cmsDictGetEntryList(C.cmsHANDLE(x)); e != nil; e = C.cmsDictNextEntry(e) {
			name, err := goWideZ(e.Name)
			if err != nil {
				return err
			}
			value, err := goWideZ(e.Value)
			if err != nil {
				return err
			}
			entry := DictEntry{Name: name, Value: value}
			if e.DisplayName != nil {
				entry.DisplayName = mluView(d.h, d, unsafe.Pointer(e.DisplayName))
			}
			if e.DisplayValue != nil {
				entry.DisplayValue = mluView(d.h, d, unsafe.Pointer(e.DisplayValue))
			}
			out = append(out, entry)
		}
		return nil
	})
	return out, err
}
