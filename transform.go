package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"unsafe"
)

// Transform converts pixels from one colour encoding to another. A Transform
// may be used from several goroutines at once.
type Transform struct {
	h *handle
}

func newTransform(ctx *Context, ptr C.cmsHTRANSFORM) *Transform {
	t := &Transform{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsDeleteTransform(C.cmsHTRANSFORM(x))
	})}
	runtime.SetFinalizer(t, (*Transform).Close)
	return t
}

// profileHandles collects the handles of profiles. A nil profile is allowed
// where the engine accepts one, marked by a nil handle.
func profileHandles(profiles []*Profile, allowNil bool) ([]*handle, error) {
	hs := make([]*handle, len(profiles))
	for i, p := range profiles {
		if p == nil {
			if !allowNil {
				return nil, invalidArg("nil profile %d", i)
			}
			continue
		}
		hs[i] = p.h
	}
	return hs, nil
}

// createTransform locks ctx and the profiles, then runs a constructor.
func createTransform(ctx *Context, op string, profiles []*Profile, allowNil bool, fn func(C.cmsContext, []C.cmsHPROFILE) C.cmsHTRANSFORM) (*Transform, error) {
	hs, err := profileHandles(profiles, allowNil)
	if err != nil {
		return nil, err
	}
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	var live []*handle
	for _, h := range hs {
		if h != nil {
			live = append(live, h)
		}
	}
	ptrs, release, err := lockAll(live...)
	if err != nil {
		return nil, err
	}
	defer release()

	cs := make([]C.cmsHPROFILE, len(hs))
	j := 0
	for i, h := range hs {
		if h != nil {
			cs[i] = C.cmsHPROFILE(ptrs[j])
			j++
		}
	}
	ptr := fn(c, cs)
	if ptr == nil {
		return nil, errorsOf(ctx).fail(op, ErrNullHandle)
	}
	return newTransform(ctx, ptr), nil
}

// NewTransform creates a transform from input to output. output may be nil
// with FlagNullTransform or when input is a device link.
func NewTransform(ctx *Context, input *Profile, inFormat PixelFormat, output *Profile, outFormat PixelFormat, intent Intent, flags Flags) (*Transform, error) {
	if input == nil {
		return nil, invalidArg("nil input profile")
	}
	return createTransform(ctx, "cmsCreateTransformTHR", []*Profile{input, output}, true, func(c C.cmsContext, ps []C.cmsHPROFILE) C.cmsHTRANSFORM {
		return C.cmsCreateTransformTHR(c, ps[0], C.cmsUInt32Number(inFormat), ps[1], C.cmsUInt32Number(outFormat),
			C.cmsUInt32Number(intent), C.cmsUInt32Number(flags))
	})
}

// NewMultiprofileTransform chains profiles, first to last, with a single
// intent.
func NewMultiprofileTransform(ctx *Context, profiles []*Profile, inFormat, outFormat PixelFormat, intent Intent, flags Flags) (*Transform, error) {
	if len(profiles) == 0 || len(profiles) > 255 {
		return nil, invalidArg("%d profiles in transform", len(profiles))
	}
	return createTransform(ctx, "cmsCreateMultiprofileTransformTHR", profiles, false, func(c C.cmsContext, ps []C.cmsHPROFILE) C.cmsHTRANSFORM {
		return C.cmsCreateMultiprofileTransformTHR(c, &ps[0], C.cmsUInt32Number(len(ps)),
			C.cmsUInt32Number(inFormat), C.cmsUInt32Number(outFormat), C.cmsUInt32Number(intent), C.cmsUInt32Number(flags))
	})
}

// NewProofingTransform creates a transform from input to output that
// simulates proofing on proof. With FlagSoftProofing the output shows what the
// proofing device would render; with FlagGamutCheck colours out of its gamut
// are replaced by the alarm codes.
func NewProofingTransform(ctx *Context, input *Profile, inFormat PixelFormat, output *Profile, outFormat PixelFormat, proof *Profile, intent, proofIntent Intent, flags Flags) (*Transform, error) {
	if input == nil || output == nil || proof == nil {
		return nil, invalidArg("proofing transform needs input, output and proofing profiles")
	}
	return createTransform(ctx, "cmsCreateProofingTransformTHR", []*Profile{input, output, proof}, false, func(c C.cmsContext, ps []C.cmsHPROFILE) C.cmsHTRANSFORM {
		return C.cmsCreateProofingTransformTHR(c, ps[0], C.cmsUInt32Number(inFormat), ps[1], C.cmsUInt32Number(outFormat),
			ps[2], C.cmsUInt32Number(intent), C.cmsUInt32Number(proofIntent), C.cmsUInt32Number(flags))
	})
}

// TransformStep is one profile of an extended transform with the settings
// used to link it to the next.
type TransformStep struct {
	Profile         *Profile
	Intent          Intent
	BPC             bool
	AdaptationState float64
}

// NewExtendedTransform chains profiles with per-profile intent, black point
// compensation and adaptation state. gamut and gamutIndex select the profile
// used for gamut checking and may be nil and 0.
func NewExtendedTransform(ctx *Context, steps []TransformStep, gamut *Profile, gamutIndex int, inFormat, outFormat PixelFormat, flags Flags) (*Transform, error) {
	n := len(steps)
	if n == 0 || n > 255 {
		return nil, invalidArg("%d profiles in transform", n)
	}
	profiles := make([]*Profile, 0, n+1)
	for _, s := range steps {
		profiles = append(profiles, s.Profile)
	}
	if gamut != nil {
		profiles = append(profiles, gamut)
		if gamutIndex < 0 || gamutIndex >= n {
			return nil, invalidArg("gamut check index %d out of range", gamutIndex)
		}
	}
	bpc := make([]C.cmsBool, n)
	intents := make([]C.cmsUInt32Number, n)
	adapt := make([]C.cmsFloat64Number, n)
	for i, s := range steps {
		if s.BPC {
			bpc[i] = 1
		}
		intents[i] = C.cmsUInt32Number(s.Intent)
		if s.AdaptationState < 0 || s.AdaptationState > 1 {
			return nil, invalidArg("adaptation state %v out of [0, 1]", s.AdaptationState)
		}
		adapt[i] = C.cmsFloat64Number(s.AdaptationState)
	}
	return createTransform(ctx, "cmsCreateExtendedTransform", profiles, false, func(c C.cmsContext, ps []C.cmsHPROFILE) C.cmsHTRANSFORM {
		var g C.cmsHPROFILE
		if gamut != nil {
			g = ps[n]
		}
		return C.cmsCreateExtendedTransform(c, C.cmsUInt32Number(n), &ps[0], &bpc[0], &intents[0], &adapt[0],
			g, C.cmsUInt32Number(gamutIndex), C.cmsUInt32Number(inFormat), C.cmsUInt32Number(outFormat), C.cmsUInt32Number(flags))
	})
}

// Close frees the transform. Views of its named colour list become invalid.
func (t *Transform) Close() error {
	t.h.close()
	runtime.SetFinalizer(t, nil)
	return nil
}

func (t *Transform) IsClosed() bool { return t.h.closed() }

func (t *Transform) native() *handle { return t.h }

// Context returns the context t was created with, nil for the global one.
func (t *Transform) Context() *Context { return t.h.ctx }

func (t *Transform) InputFormat() (PixelFormat, error) {
	return use(t.h, func(x unsafe.Pointer) PixelFormat {
		return PixelFormat(C.cmsGetTransformInputFormat(C.cmsHTRANSFORM(x)))
	})
}

func (t *Transform) OutputFormat() (PixelFormat, error) {
	return use(t.h, func(x unsafe.Pointer) PixelFormat {
		return PixelFormat(C.cmsGetTransformOutputFormat(C.cmsHTRANSFORM(x)))
	})
}

// ChangeBuffersFormat switches the pixel formats of a transform built from
// 16-bit formats, keeping its precalculated data.
func (t *Transform) ChangeBuffersFormat(in, out PixelFormat) error {
	return exclusive(t.h, func(x unsafe.Pointer) error {
		if C.cmsChangeBuffersFormat(C.cmsHTRANSFORM(x), C.cmsUInt32Number(in), C.cmsUInt32Number(out)) == 0 {
			return t.h.fail("cmsChangeBuffersFormat", ErrFailed)
		}
		return nil
	})
}

// Do transforms pixels from in to out. Both buffers must hold pixels
// entries in the transform's formats. in and out may be the same buffer when
// the formats have the same size.
func (t *Transform) Do(in, out []byte, pixels int) error {
	if pixels < 0 {
		return invalidArg("negative pixel count %d", pixels)
	}
	return do(t.h, func(x unsafe.Pointer) error {
		h := C.cmsHTRANSFORM(x)
		if err := checkBuffer("input", in, PixelFormat(C.cmsGetTransformInputFormat(h)), pixels); err != nil {
			return err
		}
		if err := checkBuffer("output", out, PixelFormat(C.cmsGetTransformOutputFormat(h)), pixels); err != nil {
			return err
		}
		if pixels == 0 {
			return nil
		}
		C.cmsDoTransform(h, unsafe.Pointer(unsafe.SliceData(in)), unsafe.Pointer(unsafe.SliceData(out)), C.cmsUInt32Number(pixels))
		return nil
	})
}

// DoLineStride transforms lines of pixels. Strides are in bytes; for planar
// formats planeStride separates the planes of a line.
func (t *Transform) DoLineStride(in, out []byte, pixelsPerLine, lines, inLineStride, outLineStride, inPlaneStride, outPlaneStride int) error {
	if pixelsPerLine < 0 || lines < 0 || inLineStride < 0 || outLineStride < 0 || inPlaneStride < 0 || outPlaneStride < 0 {
		return invalidArg("negative line geometry")
	}
	return do(t.h, func(x unsafe.Pointer) error {
		h := C.cmsHTRANSFORM(x)
		inFmt := PixelFormat(C.cmsGetTransformInputFormat(h))
		outFmt := PixelFormat(C.cmsGetTransformOutputFormat(h))
		if err := checkLines("input", in, inFmt, pixelsPerLine, lines, inLineStride, inPlaneStride); err != nil {
			return err
		}
		if err := checkLines("output", out, outFmt, pixelsPerLine, lines, outLineStride, outPlaneStride); err != nil {
			return err
		}
		if pixelsPerLine == 0 || lines == 0 {
			return nil
		}
		C.cmsDoTransformLineStride(h, unsafe.Pointer(unsafe.SliceData(in)), unsafe.Pointer(unsafe.SliceData(out)),
			C.cmsUInt32Number(pixelsPerLine), C.cmsUInt32Number(lines),
			C.cmsUInt32Number(inLineStride), C.cmsUInt32Number(outLineStride),
			C.cmsUInt32Number(inPlaneStride), C.cmsUInt32Number(outPlaneStride))
		return nil
	})
}

func checkBuffer(name string, buf []byte, f PixelFormat, pixels int) error {
	if f == 0 && pixels > 0 {
		return invalidArg("transform has no %s format; set one with ChangeBuffersFormat", name)
	}
	if need := f.PixelSize() * pixels; len(buf) < need {
		return invalidArg("%s buffer holds %d bytes, %d pixels need %d", name, len(buf), pixels, need)
	}
	return nil
}

func checkLines(name string, buf []byte, f PixelFormat, pixelsPerLine, lines, lineStride, planeStride int) error {
	if pixelsPerLine == 0 || lines == 0 {
		return nil
	}
	if f == 0 {
		return invalidArg("transform has no %s format; set one with ChangeBuffersFormat", name)
	}
	var need int
	if f.Planar() {
		planes := f.Channels() + f.Extra()
		need = (lines-1)*lineStride + (planes-1)*planeStride + pixelsPerLine*f.SampleSize()
	} else {
		if lines > 1 && lineStride < pixelsPerLine*f.PixelSize() {
			return invalidArg("%s line stride %d shorter than a line", name, lineStride)
		}
		need = (lines-1)*lineStride + pixelsPerLine*f.PixelSize()
	}
	if len(buf) < need {
		return invalidArg("%s buffer holds %d bytes, need %d", name, len(buf), need)
	}
	return nil
}

// Sample is an element type pixel buffers can be made of.
type Sample interface {
	~uint8 | ~uint16 | ~float32 | ~float64
}

// DoSlice transforms pixels held in typed slices, such as []uint16 for 16-bit
// formats.
func DoSlice[S, D Sample](t *Transform, in []S, out []D, pixels int) error {
	return t.Do(sampleBytes(in), sampleBytes(out), pixels)
}

func sampleBytes[T Sample](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// DeviceLink converts t into a device link profile of ICC version.
func (t *Transform) DeviceLink(version float64, flags Flags) (*Profile, error) {
	var out *Profile
	err := withContext(t.h, func(_ C.cmsContext, x unsafe.Pointer) error {
		ptr := C.cmsTransform2DeviceLink(C.cmsHTRANSFORM(x), C.cmsFloat64Number(version), C.cmsUInt32Number(flags))
		if ptr == nil {
			return t.h.fail("cmsTransform2DeviceLink", ErrNullHandle)
		}
		out = newProfile(t.h.ctx, ptr)
		return nil
	})
	return out, err
}

// NamedColorList returns the named colour list of a transform whose input is
// a named colour profile, as a view owned by t.
func (t *Transform) NamedColorList() (*NamedColorList, error) {
	var out *NamedColorList
	err := do(t.h, func(x unsafe.Pointer) error {
		ptr := C.cmsGetNamedColorList(C.cmsHTRANSFORM(x))
		if ptr == nil {
			return invalidArg("transform has no named colour list")
		}
		out = namedColorListView(t.h, t, unsafe.Pointer(ptr), 0)
		return nil
	})
	return out, err
}
