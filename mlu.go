package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"

	"golang.org/x/text/language"
)

// MLU is a multi-localized unicode string: one text per language and country.
type MLU struct {
	h     *handle
	owner any
}

// NewMLU creates an empty MLU with room for n translations. It grows as needed.
func NewMLU(ctx *Context, n int) (*MLU, error) {
	if n < 0 {
		return nil, invalidArg("negative MLU size %d", n)
	}
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := C.cmsMLUalloc(c, C.cmsUInt32Number(n))
	if ptr == nil {
		return nil, errorsOf(ctx).fail("cmsMLUalloc", ErrNullHandle)
	}
	return newMLU(ctx, ptr), nil
}

func newMLU(ctx *Context, ptr *C.cmsMLU) *MLU {
	m := &MLU{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsMLUfree((*C.cmsMLU)(x))
	})}
	runtime.SetFinalizer(m, (*MLU).Close)
	return m
}

// mluView wraps an MLU owned by parent.
func mluView(parent *handle, owner any, ptr unsafe.Pointer) *MLU {
	m := &MLU{h: parent.borrow(ptr), owner: owner}
	runtime.SetFinalizer(m, (*MLU).Close)
	return m
}

// Close frees the MLU. On a view it only drops the view.
func (m *MLU) Close() error {
	m.h.close()
	runtime.SetFinalizer(m, nil)
	return nil
}

func (m *MLU) IsClosed() bool { return m.h.closed() }

func (m *MLU) native() *handle { return m.h }

// Dup returns an owned copy of m.
func (m *MLU) Dup() (*MLU, error) {
	var out *MLU
	err := withContext(m.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		ptr := C.cmsMLUdup((*C.cmsMLU)(x))
		if ptr == nil {
			return m.h.fail("cmsMLUdup", ErrNullHandle)
		}
		out = newMLU(m.h.ctx, ptr)
		return nil
	})
	return out, err
}

// SetASCII stores a 7-bit text for language and country. A translation that
// is already present cannot be replaced.
func (m *MLU) SetASCII(lang, country, text string) error {
	l, c, err := mluCodes(lang, country)
	if err != nil {
		return err
	}
	s := C.CString(text)
	defer C.free(unsafe.Pointer(s))
	return do(m.h, func(x unsafe.Pointer) error {
		if C.cmsMLUsetASCII((*C.cmsMLU)(x), &l[0], &c[0], s) == 0 {
			return m.h.fail("cmsMLUsetASCII", ErrFailed)
		}
		return nil
	})
}

// SetWide stores a unicode text for language and country.
func (m *MLU) SetWide(lang, country, text string) error {
	l, c, err := mluCodes(lang, country)
	if err != nil {
		return err
	}
	w, err := cWide(text)
	if err != nil {
		return invalidArg("text %q: %v", text, err)
	}
	defer C.free(unsafe.Pointer(w))
	return do(m.h, func(x unsafe.Pointer) error {
		if C.cmsMLUsetWide((*C.cmsMLU)(x), &l[0], &c[0], w) == 0 {
			return m.h.fail("cmsMLUsetWide", ErrFailed)
		}
		return nil
	})
}

// ASCII returns the text for language and country as 7-bit ASCII. When there
// is no exact match the engine falls back to the closest translation. An empty
// MLU yields "".
func (m *MLU) ASCII(lang, country string) (string, error) {
	l, c, err := mluCodes(lang, country)
	if err != nil {
		return "", err
	}
	var out string
	err = do(m.h, func(x unsafe.Pointer) error {
		mlu := (*C.cmsMLU)(x)
		n := C.cmsMLUgetASCII(mlu, &l[0], &c[0], nil, 0)
		if n == 0 {
			return nil
		}
		buf := (*C.char)(C.malloc(C.size_t(n)))
		defer C.free(unsafe.Pointer(buf))
		C.cmsMLUgetASCII(mlu, &l[0], &c[0], buf, n)
		out = C.GoString(buf)
		return nil
	})
	return out, err
}

// Wide returns the text for language and country.
func (m *MLU) Wide(lang, country string) (string, error) {
	l, c, err := mluCodes(lang, country)
	if err != nil {
		return "", err
	}
	var out string
	err = do(m.h, func(x unsafe.Pointer) error {
		mlu := (*C.cmsMLU)(x)
		n := C.cmsMLUgetWide(mlu, &l[0], &c[0], nil, 0)
		if n == 0 {
			return nil
		}
		buf := (*C.wchar_t)(C.malloc(C.size_t(n)))
		defer C.free(unsafe.Pointer(buf))
		n = C.cmsMLUgetWide(mlu, &l[0], &c[0], buf, n)
		s, err := goWide(buf, int(n)/wcharSize)
		out = s
		return err
	})
	return out, err
}

// Translation returns the language and country of the entry the engine would
// use for the requested codes.
func (m *MLU) Translation(lang, country string) (string, string, error) {
	l, c, err := mluCodes(lang, country)
	if err != nil {
		return "", "", err
	}
	var ol, oc [3]C.char
	err = do(m.h, func(x unsafe.Pointer) error {
		if C.cmsMLUgetTranslation((*C.cmsMLU)(x), &l[0], &c[0], &ol[0], &oc[0]) == 0 {
			return m.h.fail("cmsMLUgetTranslation", ErrFailed)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return codeString(ol), codeString(oc), nil
}

// TranslationsCount is the number of stored translations.
func (m *MLU) TranslationsCount() (int, error) {
	return use(m.h, func(x unsafe.Pointer) int {
		return int(C.cmsMLUtranslationsCount((*C.cmsMLU)(x)))
	})
}

// TranslationCodes returns the language and country of translation i.
func (m *MLU) TranslationCodes(i int) (string, string, error) {
	if i < 0 {
		return "", "", invalidArg("translation index %d", i)
	}
	var l, c [3]C.char
	err := do(m.h, func(x unsafe.Pointer) error {
		if C.cmsMLUtranslationsCodes((*C.cmsMLU)(x), C.cmsUInt32Number(i), &l[0], &c[0]) == 0 {
			return invalidArg("translation index %d out of range", i)
		}
		return nil
	})
	if err != nil {
		return "", "", err
	}
	return codeString(l), codeString(c), nil
}

// mluCodes validates an ISO 639-1 language and ISO 3166 country code and
// packs them the way the engine expects. Empty codes stay zero.
func mluCodes(lang, country string) ([3]C.char, [3]C.char, error) {
	var l, c [3]C.char
	if lang != "" {
		b, err := language.ParseBase(lang)
		if err != nil || len(b.String()) != 2 {
			return l, c, invalidArg("language code %q", lang)
		}
		s := b.String()
		l[0], l[1] = C.char(s[0]), C.char(s[1])
	}
	if country != "" {
		r, err := language.ParseRegion(country)
		if err != nil || len(r.String()) != 2 {
			return l, c, invalidArg("country code %q", country)
		}
		s := r.String()
		c[0], c[1] = C.char(s[0]), C.char(s[1])
	}
	return l, c, nil
}

func codeString(code [3]C.char) string {
	b := make([]byte, 0, 2)
	for _, ch := range code[:2] {
		if ch == 0 {
			break
		}
		b = append(b, byte(ch))
	}
	return string(b)
}
