package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"
)

const maxAffixLen = 32

// NamedColor is one entry of a named colour list.
type NamedColor struct {
	Name     string
	Prefix   string
	Suffix   string
	PCS      [3]uint16
	Colorant []uint16
}

// NamedColorList is a palette of named colours with their PCS and device
// values.
type NamedColorList struct {
	h     *handle
	owner any

	colorants int
}

// NewNamedColorList creates a list with room for n colours of colorants device
// channels each. Names are printed as prefix, name, suffix.
func NewNamedColorList(ctx *Context, n, colorants int, prefix, suffix string) (*NamedColorList, error) {
	if n < 0 || colorants < 0 || colorants > MaxChannels {
		return nil, invalidArg("named colour list of %d colours with %d colorants", n, colorants)
	}
	if len(prefix) > maxAffixLen || len(suffix) > maxAffixLen {
		return nil, invalidArg("prefix and suffix are limited to %d bytes", maxAffixLen)
	}
	cp := C.CString(prefix)
	defer C.free(unsafe.Pointer(cp))
	cs := C.CString(suffix)
	defer C.free(unsafe.Pointer(cs))

	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := C.cmsAllocNamedColorList(c, C.cmsUInt32Number(n), C.cmsUInt32Number(colorants), cp, cs)
	if ptr == nil {
		return nil, errorsOf(ctx).fail("cmsAllocNamedColorList", ErrNullHandle)
	}
	return newNamedColorList(ctx, ptr, colorants), nil
}

func newNamedColorList(ctx *Context, ptr *C.cmsNAMEDCOLORLIST, colorants int) *NamedColorList {
	l := &NamedColorList{colorants: colorants}
	l.h = newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsFreeNamedColorList((*C.cmsNAMEDCOLORLIST)(x))
	})
	runtime.SetFinalizer(l, (*NamedColorList).Close)
	return l
}

// namedColorListView wraps a list owned by parent. colorants 0 means unknown.
func namedColorListView(parent *handle, owner any, ptr unsafe.Pointer, colorants int) *NamedColorList {
	l := &NamedColorList{h: parent.borrow(ptr), owner: owner, colorants: colorants}
	runtime.SetFinalizer(l, (*NamedColorList).Close)
	return l
}

// Close frees the list. On a view it only drops the view.
func (l *NamedColorList) Close() error {
	l.h.close()
	runtime.SetFinalizer(l, nil)
	return nil
}

func (l *NamedColorList) IsClosed() bool { return l.h.closed() }

func (l *NamedColorList) native() *handle { return l.h }

// Dup returns an owned copy of l.
func (l *NamedColorList) Dup() (*NamedColorList, error) {
	var out *NamedColorList
	err := withContext(l.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		ptr := C.cmsDupNamedColorList((*C.cmsNAMEDCOLORLIST)(x))
		if ptr == nil {
			return l.h.fail("cmsDupNamedColorList", ErrNullHandle)
		}
		out = newNamedColorList(l.h.ctx, ptr, l.colorants)
		return nil
	})
	return out, err
}

// Append adds a colour. Missing colorant values are zero.
func (l *NamedColorList) Append(name string, pcs [3]uint16, colorant []uint16) error {
	if len(name) >= MaxPath {
		return invalidArg("colour name longer than %d bytes", MaxPath-1)
	}
	if len(colorant) > MaxChannels {
		return invalidArg("%d colorants, at most %d", len(colorant), MaxChannels)
	}
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	var cpcs [3]C.cmsUInt16Number
	for i, v := range pcs {
		cpcs[i] = C.cmsUInt16Number(v)
	}
	var cc [MaxChannels]C.cmsUInt16Number
	for i, v := range colorant {
		cc[i] = C.cmsUInt16Number(v)
	}
	return do(l.h, func(x unsafe.Pointer) error {
		if C.cmsAppendNamedColor((*C.cmsNAMEDCOLORLIST)(x), cn, &cpcs[0], &cc[0]) == 0 {
			return l.h.fail("cmsAppendNamedColor", ErrFailed)
		}
		return nil
	})
}

// Count is the number of colours in l.
func (l *NamedColorList) Count() (int, error) {
	return use(l.h, func(x unsafe.Pointer) int {
		return int(C.cmsNamedColorCount((*C.cmsNAMEDCOLORLIST)(x)))
	})
}

// Index returns the position of the colour called name, or -1.
func (l *NamedColorList) Index(name string) (int, error) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	return use(l.h, func(x unsafe.Pointer) int {
		return int(C.cmsNamedColorIndex((*C.cmsNAMEDCOLORLIST)(x), cn))
	})
}

// Info returns colour i. Colorant holds as many values as the list has device
// channels, or MaxChannels when that is unknown.
func (l *NamedColorList) Info(i int) (NamedColor, error) {
	var out NamedColor
	if i < 0 {
		return out, invalidArg("named colour index %d", i)
	}
	var (
		name           [MaxPath]C.char
		prefix, suffix [maxAffixLen + 1]C.char
		pcs            [3]C.cmsUInt16Number
		colorant       [MaxChannels]C.cmsUInt16Number
	)
	err := do(l.h, func(x unsafe.Pointer) error {
		if C.cmsNamedColorInfo((*C.cmsNAMEDCOLORLIST)(x), C.cmsUInt32Number(i),
			&name[0], &prefix[0], &suffix[0], &pcs[0], &colorant[0]) == 0 {
			return invalidArg("named colour index %d out of range", i)
		}
		return nil
	})
	if err != nil {
		return out, err
	}
	out.Name = C.GoString(&name[0])
	out.Prefix = C.GoString(&prefix[0])
	out.Suffix = C.GoString(&suffix[0])
	for j, v := range pcs {
		out.PCS[j] = uint16(v)
	}
	n := l.colorants
	if n == 0 {
		n = MaxChannels
	}
	out.Colorant = make([]uint16, n)
	for j := range out.Colorant {
		out.Colorant[j] = uint16(colorant[j])
	}
	return out, nil
}
