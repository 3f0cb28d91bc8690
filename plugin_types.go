package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"fmt"
	"runtime/cgo"
	"strings"
	"unsafe"
)

// TagTypeHandler converts the body of a private tag type, the bytes after the
// type signature and its reserved field, to and from a Go value. Handlers run
// inside engine calls and must not use the profile being read or saved.
type TagTypeHandler interface {
	Decode(body []byte) (any, error)
	Encode(v any) ([]byte, error)
}

// TagTypePlugin adds a tag type whose data is decoded and encoded in Go.
// Types the engine reads natively cannot be replaced, and a type signature is
// bound to one plug-in value at a time. A private tag declared with such types
// only is read with ReadCustomTag.
type TagTypePlugin struct {
	Signature TagTypeSignature
	Handler   TagTypeHandler
}

func (p *TagTypePlugin) Base() PluginBase { return baseOf(PluginTagType) }

var tagTypes registry[TagTypeSignature, TagTypeHandler]

var engineTagTypes = func() map[TagTypeSignature]bool {
	m := make(map[TagTypeSignature]bool)
	for _, s := range strings.Fields("bfd chrm cicp clro clrt crdi curv data desc dict dtim mAB mBA meas mft1 mft2 mhc2 mluc mmod mpet ncl2 ncol para pseq psid rcs2 scrn sf32 sig text uf32 ui08 ui16 ui32 ui64 vcgt view vued XYZ") {
		sig, _ := ParseSignature(s)
		m[TagTypeSignature(sig)] = true
	}
	return m
}()

func (p *TagTypePlugin) build(m *pluginMemory) (unsafe.Pointer, error) {
	if p.Handler == nil {
		return nil, invalidArg("tag type plug-in %s without handler", p.Signature)
	}
	if engineTagTypes[p.Signature] {
		return nil, invalidArg("tag type %s is built in", p.Signature)
	}
	release, ok := tagTypes.take(p.Signature, p, p.Handler)
	if !ok {
		return nil, invalidArg("tag type %s is handled by another plug-in", p.Signature)
	}
	m.onRelease(release)

	ptr := C.golcms_new_tag_type_plugin(C.cmsTagTypeSignature(p.Signature))
	if ptr == nil {
		return nil, ErrNullHandle
	}
	return ptr, nil
}

func isCustomType(t TagTypeSignature) bool {
	_, ok := tagTypes.get(t)
	return ok
}

//export golcmsDecodeTag
func golcmsDecodeTag(ctx C.cmsContext, typ C.cmsTagTypeSignature, body unsafe.Pointer, size C.cmsUInt32Number) C.uintptr_t {
	sig := TagTypeSignature(typ)
	h, ok := tagTypes.get(sig)
	if !ok {
		errorsFor(ctx).report(ErrorUnknownExtension, fmt.Sprintf("no handler for tag type %s", sig))
		return 0
	}
	v, err := h.Decode(C.GoBytes(body, C.int(size)))
	if err != nil {
		errorsFor(ctx).report(ErrorCorruptionDetected, fmt.Sprintf("tag type %s: %v", sig, err))
		return 0
	}
	return C.uintptr_t(cgo.NewHandle(v))
}

// golcmsEncodeTag hands the encoded body back in C memory the caller frees.
//
//export golcmsEncodeTag
func golcmsEncodeTag(ctx C.cmsContext, typ C.cmsTagTypeSignature, ref C.uintptr_t, out *unsafe.Pointer, size *C.cmsUInt32Number) C.int {
	sig := TagTypeSignature(typ)
	h, ok := tagTypes.get(sig)
	if !ok {
		errorsFor(ctx).report(ErrorUnknownExtension, fmt.Sprintf("no handler for tag type %s", sig))
		return 0
	}
	body, err := h.Encode(cgo.Handle(ref).Value())
	if err != nil {
		errorsFor(ctx).report(ErrorWrite, fmt.Sprintf("tag type %s: %v", sig, err))
		return 0
	}
	if len(body) > 0 {
		*out = C.CBytes(body)
	}
	*size = C.cmsUInt32Number(len(body))
	return 1
}

//export golcmsDupTag
func golcmsDupTag(ref C.uintptr_t) C.uintptr_t {
	return C.uintptr_t(cgo.NewHandle(cgo.Handle(ref).Value()))
}

//export golcmsReleaseTag
func golcmsReleaseTag(ref C.uintptr_t) {
	cgo.Handle(ref).Delete()
}
