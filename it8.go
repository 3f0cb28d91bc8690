package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"
)

// it8MaxStr bounds the strings the engine copies out of an IT8 table.
const it8MaxStr = 1024

// IT8 is a CGATS.17 / IT8.7 measurement file: one or more tables of patches
// with named data fields and header properties.
type IT8 struct {
	h *handle
}

func newIT8(ctx *Context, ptr C.cmsHANDLE) *IT8 {
	t := &IT8{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsIT8Free(C.cmsHANDLE(x))
	})}
	runtime.SetFinalizer(t, (*IT8).Close)
	return t
}

func createIT8(ctx *Context, op string, fn func(C.cmsContext) C.cmsHANDLE) (*IT8, error) {
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := fn(c)
	if ptr == nil {
		return nil, errorsOf(ctx).fail(op, ErrNullHandle)
	}
	return newIT8(ctx, ptr), nil
}

// NewIT8 creates an empty IT8 with a single table.
func NewIT8(ctx *Context) (*IT8, error) {
	return createIT8(ctx, "cmsIT8Alloc", func(c C.cmsContext) C.cmsHANDLE {
		return C.cmsIT8Alloc(c)
	})
}

// LoadIT8File parses the IT8 file at path.
func LoadIT8File(ctx *Context, path string) (*IT8, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return createIT8(ctx, "cmsIT8LoadFromFile", func(c C.cmsContext) C.cmsHANDLE {
		return C.cmsIT8LoadFromFile(c, cpath)
	})
}

// LoadIT8Mem parses an IT8 held in data.
func LoadIT8Mem(ctx *Context, data []byte) (*IT8, error) {
	if len(data) == 0 {
		return nil, invalidArg("empty IT8 data")
	}
	return createIT8(ctx, "cmsIT8LoadFromMem", func(c C.cmsContext) C.cmsHANDLE {
		return C.cmsIT8LoadFromMem(c, unsafe.Pointer(&data[0]), C.cmsUInt32Number(len(data)))
	})
}

func (t *IT8) Close() error {
	t.h.close()
	runtime.SetFinalizer(t, nil)
	return nil
}

func (t *IT8) IsClosed() bool { return t.h.closed() }

func (t *IT8) native() *handle { return t.h }

func (t *IT8) SaveFile(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return do(t.h, func(x unsafe.Pointer) error {
		if C.cmsIT8SaveToFile(C.cmsHANDLE(x), cpath) == 0 {
			return t.h.fail("cmsIT8SaveToFile", ErrFailed)
		}
		return nil
	})
}

// Bytes serializes t.
func (t *IT8) Bytes() ([]byte, error) {
	var out []byte
	err := do(t.h, func(x unsafe.Pointer) error {
		var n C.cmsUInt32Number
		if C.cmsIT8SaveToMem(C.cmsHANDLE(x), nil, &n) == 0 || n == 0 {
			return t.h.fail("cmsIT8SaveToMem", ErrFailed)
		}
		buf := make([]byte, n)
		if C.cmsIT8SaveToMem(C.cmsHANDLE(x), unsafe.Pointer(&buf[0]), &n) == 0 {
			return t.h.fail("cmsIT8SaveToMem", ErrFailed)
		}
		buf = buf[:n]
		for len(buf) > 0 && buf[len(buf)-1] == 0 {
			buf = buf[:len(buf)-1]
		}
		out = buf
		return nil
	})
	return out, err
}

func (t *IT8) TableCount() (int, error) {
	return use(t.h, func(x unsafe.Pointer) int {
		return int(C.cmsIT8TableCount(C.cmsHANDLE(x)))
	})
}

// SetTable selects table n. Selecting the table right after the last one
// appends a new table.
func (t *IT8) SetTable(n int) error {
	if n < 0 {
		return invalidArg("table %d", n)
	}
	return do(t.h, func(x unsafe.Pointer) error {
		if C.cmsIT8SetTable(C.cmsHANDLE(x), C.cmsUInt32Number(n)) < 0 {
			return t.h.fail("cmsIT8SetTable", ErrFailed)
		}
		return nil
	})
}

func (t *IT8) SheetType() (string, error) {
	return use(t.h, func(x unsafe.Pointer) string {
		return C.GoString(C.cmsIT8GetSheetType(C.cmsHANDLE(x)))
	})
}

func (t *IT8) SetSheetType(typ string) error {
	cs := C.CString(typ)
	defer C.free(unsafe.Pointer(cs))
	return t.check("cmsIT8SetSheetType", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetSheetType(h, cs)
	})
}

// SetComment adds a comment line to the header.
func (t *IT8) SetComment(comment string) error {
	cs := C.CString(comment)
	defer C.free(unsafe.Pointer(cs))
	return t.check("cmsIT8SetComment", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetComment(h, cs)
	})
}

func (t *IT8) check(op string, fn func(C.cmsHANDLE) C.cmsBool) error {
	return do(t.h, func(x unsafe.Pointer) error {
		if fn(C.cmsHANDLE(x)) == 0 {
			return t.h.fail(op, ErrFailed)
		}
		return nil
	})
}

// Property returns the header property key of the current table.
func (t *IT8) Property(key string) (string, error) {
	ck := C.CString(key)
	defer C.free(unsafe.Pointer(ck))
	var out string
	err := do(t.h, func(x unsafe.Pointer) error {
		v := C.cmsIT8GetProperty(C.cmsHANDLE(x), ck)
		if v == nil {
			return fmt.Errorf("%w: property %s", ErrNotFound, key)
		}
		out = C.GoString(v)
		return nil
	})
	return out, err
}

// PropertyFloat returns a numeric header property.
func (t *IT8) PropertyFloat(key string) (float64, error) {
	ck := C.CString(key)
	defer C.free(unsafe.Pointer(ck))
	var out float64
	err := do(t.h, func(x unsafe.Pointer) error {
		h := C.cmsHANDLE(x)
		if C.cmsIT8GetProperty(h, ck) == nil {
			return fmt.Errorf("%w: property %s", ErrNotFound, key)
		}
		out = float64(C.cmsIT8GetPropertyDbl(h, ck))
		return nil
	})
	return out, err
}

// SetProperty sets a string property. The engine quotes it when saving.
func (t *IT8) SetProperty(key, value string) error {
	ck := C.CString(key)
	defer C.free(unsafe.Pointer(ck))
	cv := C.CString(value)
	defer C.free(unsafe.Pointer(cv))
	return t.check("cmsIT8SetPropertyStr", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetPropertyStr(h, ck, cv)
	})
}

// SetPropertyFloat sets a numeric property.
func (t *IT8) SetPropertyFloat(key string, value float64) error {
	ck := C.CString(key)
	defer C.free(unsafe.Pointer(ck))
	return t.check("cmsIT8SetPropertyDbl", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetPropertyDbl(h, ck, C.cmsFloat64Number(value))
	})
}

// SetPropertyUncooked sets a property written as is, without quotes.
func (t *IT8) SetPropertyUncooked(key, value string) error {
	ck := C.CString(key)
	defer C.free(unsafe.Pointer(ck))
	cv := C.CString(value)
	defer C.free(unsafe.Pointer(cv))
	return t.check("cmsIT8SetPropertyUncooked", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetPropertyUncooked(h, ck, cv)
	})
}

// Properties lists the header property keys of the current table.
func (t *IT8) Properties() ([]string, error) {
	return use(t.h, func(x unsafe.Pointer) []string {
		var names **C.char
		n := int(C.cmsIT8EnumProperties(C.cmsHANDLE(x), &names))
		return goStrings(names, n)
	})
}

// DataFormat lists the data field names of the current table.
func (t *IT8) DataFormat() ([]string, error) {
	return use(t.h, func(x unsafe.Pointer) []string {
		var names **C.char
		n := int(C.cmsIT8EnumDataFormat(C.cmsHANDLE(x), &names))
		return goStrings(names, n)
	})
}

// SetDataFormat names data field n. NUMBER_OF_FIELDS must be set first.
func (t *IT8) SetDataFormat(n int, sample string) error {
	if n < 0 {
		return invalidArg("data field %d", n)
	}
	cs := C.CString(sample)
	defer C.free(unsafe.Pointer(cs))
	return t.check("cmsIT8SetDataFormat", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetDataFormat(h, C.int(n), cs)
	})
}

// FindDataFormat returns the column of a data field.
func (t *IT8) FindDataFormat(sample string) (int, error) {
	cs := C.CString(sample)
	defer C.free(unsafe.Pointer(cs))
	var col int
	err := do(t.h, func(x unsafe.Pointer) error {
		col = int(C.cmsIT8FindDataFormat(C.cmsHANDLE(x), cs))
		if col < 0 {
			return fmt.Errorf("%w: data field %s", ErrNotFound, sample)
		}
		return nil
	})
	return col, err
}

// Data returns field sample of patch.
func (t *IT8) Data(patch, sample string) (string, error) {
	cp := C.CString(patch)
	defer C.free(unsafe.Pointer(cp))
	cs := C.CString(sample)
	defer C.free(unsafe.Pointer(cs))
	var out string
	err := do(t.h, func(x unsafe.Pointer) error {
		v := C.cmsIT8GetData(C.cmsHANDLE(x), cp, cs)
		if v == nil {
			return fmt.Errorf("%w: %s of patch %s", ErrNotFound, sample, patch)
		}
		out = C.GoString(v)
		return nil
	})
	return out, err
}

// DataFloat returns field sample of patch as a number.
func (t *IT8) DataFloat(patch, sample string) (float64, error) {
	cp := C.CString(patch)
	defer C.free(unsafe.Pointer(cp))
	cs := C.CString(sample)
	defer C.free(unsafe.Pointer(cs))
	var out float64
	err := do(t.h, func(x unsafe.Pointer) error {
		h := C.cmsHANDLE(x)
		if C.cmsIT8GetData(h, cp, cs) == nil {
			return fmt.Errorf("%w: %s of patch %s", ErrNotFound, sample, patch)
		}
		out = float64(C.cmsIT8GetDataDbl(h, cp, cs))
		return nil
	})
	return out, err
}

// SetData stores field sample of patch, adding the patch when it is new.
func (t *IT8) SetData(patch, sample, value string) error {
	cp := C.CString(patch)
	defer C.free(unsafe.Pointer(cp))
	cs := C.CString(sample)
	defer C.free(unsafe.Pointer(cs))
	cv := C.CString(value)
	defer C.free(unsafe.Pointer(cv))
	return t.check("cmsIT8SetData", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetData(h, cp, cs, cv)
	})
}

func (t *IT8) SetDataFloat(patch, sample string, value float64) error {
	cp := C.CString(patch)
	defer C.free(unsafe.Pointer(cp))
	cs := C.CString(sample)
	defer C.free(unsafe.Pointer(cs))
	return t.check("cmsIT8SetDataDbl", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetDataDbl(h, cp, cs, C.cmsFloat64Number(value))
	})
}

// DataRowCol returns the cell at row and col of the current table.
func (t *IT8) DataRowCol(row, col int) (string, error) {
	var out string
	err := do(t.h, func(x unsafe.Pointer) error {
		v := C.cmsIT8GetDataRowCol(C.cmsHANDLE(x), C.int(row), C.int(col))
		if v == nil {
			return fmt.Errorf("%w: cell %d,%d", ErrNotFound, row, col)
		}
		out = C.GoString(v)
		return nil
	})
	return out, err
}

func (t *IT8) DataRowColFloat(row, col int) (float64, error) {
	var out float64
	err := do(t.h, func(x unsafe.Pointer) error {
		h := C.cmsHANDLE(x)
		if C.cmsIT8GetDataRowCol(h, C.int(row), C.int(col)) == nil {
			return fmt.Errorf("%w: cell %d,%d", ErrNotFound, row, col)
		}
		out = float64(C.cmsIT8GetDataRowColDbl(h, C.int(row), C.int(col)))
		return nil
	})
	return out, err
}

// SetDataRowCol stores a cell. NUMBER_OF_SETS and NUMBER_OF_FIELDS bound row
// and col.
func (t *IT8) SetDataRowCol(row, col int, value string) error {
	cv := C.CString(value)
	defer C.free(unsafe.Pointer(cv))
	return t.check("cmsIT8SetDataRowCol", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetDataRowCol(h, C.int(row), C.int(col), cv)
	})
}

func (t *IT8) SetDataRowColFloat(row, col int, value float64) error {
	return t.check("cmsIT8SetDataRowColDbl", func(h C.cmsHANDLE) C.cmsBool {
		return C.cmsIT8SetDataRowColDbl(h, C.int(row), C.int(col), C.cmsFloat64Number(value))
	})
}

// PatchName returns the name of patch n of the current table.
func (t *IT8) PatchName(n int) (string, error) {
	var buf [it8MaxStr]C.char
	var out string
	err := do(t.h, func(x unsafe.Pointer) error {
		if C.cmsIT8GetPatchName(C.cmsHANDLE(x), C.int(n), &buf[0]) == nil {
			return fmt.Errorf("%w: patch %d", ErrNotFound, n)
		}
		out = C.GoString(&buf[0])
		return nil
	})
	return out, err
}

// PatchIndex returns the row of the patch called name.
func (t *IT8) PatchIndex(name string) (int, error) {
	cn := C.CString(name)
	defer C.free(unsafe.Pointer(cn))
	var n int
	err := do(t.h, func(x unsafe.Pointer) error {
		n = int(C.cmsIT8GetPatchByName(C.cmsHANDLE(x), cn))
		if n < 0 {
			return fmt.Errorf("%w: patch %s", ErrNotFound, name)
		}
		return nil
	})
	return n, err
}

// SetDoubleFormat sets the printf format used to write numbers, "%.10g" by
// default.
func (t *IT8) SetDoubleFormat(format string) error {
	cf := C.CString(format)
	defer C.free(unsafe.Pointer(cf))
	return do(t.h, func(x unsafe.Pointer) error {
		C.cmsIT8DefineDblFormat(C.cmsHANDLE(x), cf)
		return nil
	})
}

func goStrings(p **C.char, n int) []string {
	if p == nil || n <= 0 {
		return nil
	}
	out := make([]string, n)
	for i, s := range unsafe.Slice(p, n) {
		out[i] = C.GoString(s)
	}
	return out
}
