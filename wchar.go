package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"unsafe"
)

// wcharSize is the size of the engine's wchar_t.
var wcharSize = int(C.sizeof_wchar_t)

// cWide copies s into a NUL-terminated wchar_t string allocated with malloc.
// The caller frees it.
func cWide(s string) (*C.wchar_t, error) {
	b, err := wideEncoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	b = append(b, make([]byte, wcharSize)...)
	return (*C.wchar_t)(C.CBytes(b)), nil
}

// goWide decodes n wchar_t units at p, stopping at the first NUL.
func goWide(p *C.wchar_t, n int) (string, error) {
	if p == nil || n <= 0 {
		return "", nil
	}
	units := unsafe.Slice(p, n)
	for i, u := range units {
		if u == 0 {
			n = i
			break
		}
	}
	b := C.GoBytes(unsafe.Pointer(p), C.int(n*wcharSize))
	out, err := wideEncoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// goWideZ decodes a NUL-terminated wchar_t string.
func goWideZ(p *C.wchar_t) (string, error) {
	if p == nil {
		return "", nil
	}
	return goWide(p, int(C.wcslen(p)))
}
