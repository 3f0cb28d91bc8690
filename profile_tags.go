package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

// TagCount is the number of tags in p.
func (p *Profile) TagCount() (int, error) {
	return use(p.h, func(x unsafe.Pointer) int {
		return int(C.cmsGetTagCount(C.cmsHPROFILE(x)))
	})
}

// TagSignature returns the signature of tag i.
func (p *Profile) TagSignature(i int) (TagSignature, error) {
	var sig TagSignature
	err := do(p.h, func(x unsafe.Pointer) error {
		h := C.cmsHPROFILE(x)
		if i < 0 || i >= int(C.cmsGetTagCount(h)) {
			return invalidArg("tag index %d out of range", i)
		}
		sig = TagSignature(C.cmsGetTagSignature(h, C.cmsUInt32Number(i)))
		return nil
	})
	return sig, err
}

// Tags lists the signatures of every tag in p.
func (p *Profile) Tags() ([]TagSignature, error) {
	var out []TagSignature
	err := do(p.h, func(x unsafe.Pointer) error {
		h := C.cmsHPROFILE(x)
		n := int(C.cmsGetTagCount(h))
		out = make([]TagSignature, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, TagSignature(C.cmsGetTagSignature(h, C.cmsUInt32Number(i))))
		}
		return nil
	})
	return out, err
}

func (p *Profile) HasTag(sig TagSignature) (bool, error) {
	return use(p.h, func(x unsafe.Pointer) bool {
		return C.cmsIsTag(C.cmsHPROFILE(x), C.cmsTagSignature(sig)) != 0
	})
}

// readTag returns the engine's object for sig after checking that sig holds
// the expected kind of data.
func (p *Profile) readTag(sig TagSignature, kind tagKind, fn func(h C.cmsHPROFILE, ptr unsafe.Pointer)) error {
	if err := checkTagKind(sig, kind); err != nil {
		return err
	}
	return do(p.h, func(x unsafe.Pointer) error {
		h := C.cmsHPROFILE(x)
		ptr := C.cmsReadTag(h, C.cmsTagSignature(sig))
		if ptr == nil {
			return p.h.fail("cmsReadTag "+sig.String(), ErrNullHandle)
		}
		fn(h, ptr)
		return nil
	})
}

// ReadXYZTag reads an XYZ tag such as the media white point.
func (p *Profile) ReadXYZTag(sig TagSignature) (CIEXYZ, error) {
	var v CIEXYZ
	err := p.readTag(sig, kindXYZ, func(_ C.cmsHPROFILE, ptr unsafe.Pointer) {
		v = goXYZ(*(*C.cmsCIEXYZ)(ptr))
	})
	return v, err
}

// ReadSignatureTag reads a tag holding a single signature, such as 'tech'.
func (p *Profile) ReadSignatureTag(sig TagSignature) (Signature, error) {
	var v Signature
	err := p.readTag(sig, kindSignature, func(_ C.cmsHPROFILE, ptr unsafe.Pointer) {
		v = Signature(*(*C.cmsSignature)(ptr))
	})
	return v, err
}

// ReadMLUTag reads a text tag. The result is a view owned by p.
func (p *Profile) ReadMLUTag(sig TagSignature) (*MLU, error) {
	var v *MLU
	err := p.readTag(sig, kindMLU, func(_ C.cmsHPROFILE, ptr unsafe.Pointer) {
		v = mluView(p.h, p, ptr)
	})
	return v, err
}

// ReadToneCurveTag reads a TRC tag. The result is a view owned by p.
func (p *Profile) ReadToneCurveTag(sig TagSignature) (*ToneCurve, error) {
	var v *ToneCurve
	err := p.readTag(sig, kindToneCurve, func(_ C.cmsHPROFILE, ptr unsafe.Pointer) {
		v = toneCurveView(p.h, p, ptr)
	})
	return v, err
}

// ReadPipelineTag reads a lookup table tag such as 'A2B0'. The result is a
// view owned by p.
func (p *Profile) ReadPipelineTag(sig TagSignature) (*Pipeline, error) {
	var v *Pipeline
	err := p.readTag(sig, kindPipeline, func(_ C.cmsHPROFILE, ptr unsafe.Pointer) {
		v = pipelineView(p.h, p, ptr)
	})
	return v, err
}

// ReadDictTag reads the metadata dictionary. The result is a view owned by p.
func (p *Profile) ReadDictTag(sig TagSignature) (*Dict, error) {
	var v *Dict
	err := p.readTag(sig, kindDict, func(_ C.cmsHPROFILE, ptr unsafe.Pointer) {
		v = dictView(p.h, p, ptr)
	})
	return v, err
}

// ReadNamedColorListTag reads a named colour or colorant table tag. The result
// is a view owned by p.
func (p *Profile) ReadNamedColorListTag(sig TagSignature) (*NamedColorList, error) {
	var v *NamedColorList
	err := p.readTag(sig, kindNamedColorList, func(h C.cmsHPROFILE, ptr unsafe.Pointer) {
		n := 0
		if sig == TagNamedColor2 {
			n = int(C.cmsChannelsOf(C.cmsGetColorSpace(h)))
		}
		v = namedColorListView(p.h, p, ptr, n)
	})
	return v, err
}

// writeTag stores data for sig. src is the handle data came from, or nil for
// plain values. If src is the very object currently stored under sig it is
// copied first with dup, since the engine frees the old object before storing
// the new one. Views of the replaced object are closed.
func (p *Profile) writeTag(sig TagSignature, src wrapper, dup func(unsafe.Pointer) unsafe.Pointer, free func(unsafe.Pointer), write func(h C.cmsHPROFILE, data unsafe.Pointer) C.cmsBool) error {
	hs := []*handle{p.h}
	if src != nil {
		hs = append(hs, src.native())
	}
	old, err := func() (unsafe.Pointer, error) {
		ptrs, unlock, err := lockAll(hs...)
		if err != nil {
			return nil, err
		}
		defer unlock()

		h := C.cmsHPROFILE(ptrs[0])
		old := p.storedTag(h, sig)
		var data unsafe.Pointer
		if src != nil {
			data = ptrs[1]
			if data == old && dup != nil {
				data = dup(data)
				if data == nil {
					return nil, p.h.fail("write tag "+sig.String(), ErrNullHandle)
				}
				defer free(data)
			}
		}
		if write(h, data) == 0 {
			return nil, p.h.fail("cmsWriteTag "+sig.String(), ErrFailed)
		}
		return old, nil
	}()
	if err != nil {
		return err
	}
	if old != nil {
		p.h.invalidate(old)
	}
	return nil
}

// storedTag returns the object the engine frees when sig is overwritten, nil
// when sig is absent or a link to another tag.
func (p *Profile) storedTag(h C.cmsHPROFILE, sig TagSignature) unsafe.Pointer {
	s := C.cmsTagSignature(sig)
	if C.cmsIsTag(h, s) == 0 || C.cmsTagLinkedTo(h, s) != 0 {
		return nil
	}
	return C.cmsReadTag(h, s)
}

func writeValue(sig TagSignature, data unsafe.Pointer) func(C.cmsHPROFILE, unsafe.Pointer) C.cmsBool {
	return func(h C.cmsHPROFILE, _ unsafe.Pointer) C.cmsBool {
		return C.cmsWriteTag(h, C.cmsTagSignature(sig), data)
	}
}

func writeObject(sig TagSignature) func(C.cmsHPROFILE, unsafe.Pointer) C.cmsBool {
	return func(h C.cmsHPROFILE, data unsafe.Pointer) C.cmsBool {
		return C.cmsWriteTag(h, C.cmsTagSignature(sig), data)
	}
}

// WriteXYZTag stores an XYZ value under sig.
func (p *Profile) WriteXYZTag(sig TagSignature, v CIEXYZ) error {
	if err := checkTagKind(sig, kindXYZ); err != nil {
		return err
	}
	cv := (*C.cmsCIEXYZ)(C.malloc(C.size_t(unsafe.Sizeof(C.cmsCIEXYZ{}))))
	defer C.free(unsafe.Pointer(cv))
	*cv = v.c()
	return p.writeTag(sig, nil, nil, nil, writeValue(sig, unsafe.Pointer(cv)))
}

// WriteSignatureTag stores a signature under sig.
func (p *Profile) WriteSignatureTag(sig TagSignature, v Signature) error {
	if err := checkTagKind(sig, kindSignature); err != nil {
		return err
	}
	cv := (*C.cmsSignature)(C.malloc(C.size_t(unsafe.Sizeof(C.cmsSignature(0)))))
	defer C.free(unsafe.Pointer(cv))
	*cv = C.cmsSignature(v)
	return p.writeTag(sig, nil, nil, nil, writeValue(sig, unsafe.Pointer(cv)))
}

// WriteMLUTag stores a copy of m under sig.
func (p *Profile) WriteMLUTag(sig TagSignature, m *MLU) error {
	if err := checkTagKind(sig, kindMLU); err != nil {
		return err
	}
	if m == nil {
		return invalidArg("nil MLU")
	}
	return p.writeTag(sig, m, func(x unsafe.Pointer) unsafe.Pointer {
		return unsafe.Pointer(C.cmsMLUdup((*C.cmsMLU)(x)))
	}, func(x unsafe.Pointer) {
		C.cmsMLUfree((*C.cmsMLU)(x))
	}, writeObject(sig))
}

// WriteToneCurveTag stores a copy of t under sig.
func (p *Profile) WriteToneCurveTag(sig TagSignature, t *ToneCurve) error {
	if err := checkTagKind(sig, kindToneCurve); err != nil {
		return err
	}
	if t == nil {
		return invalidArg("nil tone curve")
	}
	return p.writeTag(sig, t, func(x unsafe.Pointer) unsafe.Pointer {
		return unsafe.Pointer(C.cmsDupToneCurve((*C.cmsToneCurve)(x)))
	}, func(x unsafe.Pointer) {
		C.cmsFreeToneCurve((*C.cmsToneCurve)(x))
	}, writeObject(sig))
}

// WritePipelineTag stores a copy of l under sig.
func (p *Profile) WritePipelineTag(sig TagSignature, l *Pipeline) error {
	if err := checkTagKind(sig, kindPipeline); err != nil {
		return err
	}
	if l == nil {
		return invalidArg("nil pipeline")
	}
	return p.writeTag(sig, l, func(x unsafe.Pointer) unsafe.Pointer {
		return unsafe.Pointer(C.cmsPipelineDup((*C.cmsPipeline)(x)))
	}, func(x unsafe.Pointer) {
		C.cmsPipelineFree((*C.cmsPipeline)(x))
	}, writeObject(sig))
}

// WriteDictTag stores a copy of d under sig.
func (p *Profile) WriteDictTag(sig TagSignature, d *Dict) error {
	if err := checkTagKind(sig, kindDict); err != nil {
		return err
	}
	if d == nil {
		return invalidArg("nil dictionary")
	}
	return p.writeTag(sig, d, func(x unsafe.Pointer) unsafe.Pointer {
		return unsafe.Pointer(C.cmsDictDup(C.cmsHANDLE(x)))
	}, func(x unsafe.Pointer) {
		C.cmsDictFree(C.cmsHANDLE(x))
	}, writeObject(sig))
}

// WriteNamedColorListTag stores a copy of l under sig.
func (p *Profile) WriteNamedColorListTag(sig TagSignature, l *NamedColorList) error {
	if err := checkTagKind(sig, kindNamedColorList); err != nil {
		return err
	}
	if l == nil {
		return invalidArg("nil named colour list")
	}
	return p.writeTag(sig, l, func(x unsafe.Pointer) unsafe.Pointer {
		return unsafe.Pointer(C.cmsDupNamedColorList((*C.cmsNAMEDCOLORLIST)(x)))
	}, func(x unsafe.Pointer) {
		C.cmsFreeNamedColorList((*C.cmsNAMEDCOLORLIST)(x))
	}, writeObject(sig))
}

// RemoveTag deletes sig from p. Views of its data are closed.
func (p *Profile) RemoveTag(sig TagSignature) error {
	return p.writeTag(sig, nil, nil, nil, writeValue(sig, nil))
}

// LinkTag makes sig share the data of dest. Views of the data sig held before
// are closed.
func (p *Profile) LinkTag(sig, dest TagSignature) error {
	return p.writeTag(sig, nil, nil, nil, func(h C.cmsHPROFILE, _ unsafe.Pointer) C.cmsBool {
		return C.cmsLinkTag(h, C.cmsTagSignature(sig), C.cmsTagSignature(dest))
	})
}

// TagLinkedTo returns the tag sig is linked to, or 0.
func (p *Profile) TagLinkedTo(sig TagSignature) (TagSignature, error) {
	return use(p.h, func(x unsafe.Pointer) TagSignature {
		return TagSignature(C.cmsTagLinkedTo(C.cmsHPROFILE(x), C.cmsTagSignature(sig)))
	})
}

// ReadRawTag returns the serialized bytes of sig.
func (p *Profile) ReadRawTag(sig TagSignature) ([]byte, error) {
	var out []byte
	err := do(p.h, func(x unsafe.Pointer) error {
		h := C.cmsHPROFILE(x)
		n := C.cmsReadRawTag(h, C.cmsTagSignature(sig), nil, 0)
		if n == 0 {
			return p.h.fail("cmsReadRawTag "+sig.String(), ErrFailed)
		}
		buf := make([]byte, n)
		n = C.cmsReadRawTag(h, C.cmsTagSignature(sig), unsafe.Pointer(&buf[0]), n)
		out = buf[:n]
		return nil
	})
	return out, err
}

// WriteRawTag stores data under sig as is. The engine does not interpret it.
func (p *Profile) WriteRawTag(sig TagSignature, data []byte) error {
	if len(data) == 0 {
		return invalidArg("empty raw tag")
	}
	return p.writeTag(sig, nil, nil, nil, func(h C.cmsHPROFILE, _ unsafe.Pointer) C.cmsBool {
		return C.cmsWriteRawTag(h, C.cmsTagSignature(sig), unsafe.Pointer(&data[0]), C.cmsUInt32Number(len(data)))
	})
}

// ReadCustomTag returns the value the TagTypePlugin handler of the tag's type
// decoded for sig.
func (p *Profile) ReadCustomTag(sig TagSignature) (any, error) {
	var v any
	err := p.readTag(sig, kindCustom, func(_ C.cmsHPROFILE, ptr unsafe.Pointer) {
		v = cgo.Handle((*C.golcms_custom_tag)(ptr).value).Value()
	})
	return v, err
}

// WriteCustomTag stores v under sig. It is encoded by the handler of the
// tag's first declared type when the profile is saved.
func (p *Profile) WriteCustomTag(sig TagSignature, v any) error {
	if err := checkTagKind(sig, kindCustom); err != nil {
		return err
	}
	ref := cgo.NewHandle(v)
	defer ref.Delete()
	tag := (*C.golcms_custom_tag)(C.malloc(C.size_t(unsafe.Sizeof(C.golcms_custom_tag{}))))
	defer C.free(unsafe.Pointer(tag))
	tag.value = C.uintptr_t(ref)
	return p.writeTag(sig, nil, nil, nil, writeValue(sig, unsafe.Pointer(tag)))
}
