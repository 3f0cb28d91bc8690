package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"runtime"
	"time"
	"unsafe"
)

// Profile is an ICC profile held by the engine.
type Profile struct {
	h *handle
}

func newProfile(ctx *Context, ptr C.cmsHPROFILE) *Profile {
	p := &Profile{h: newHandle(ctx, unsafe.Pointer(ptr), func(x unsafe.Pointer) {
		C.cmsCloseProfile(C.cmsHPROFILE(x))
	})}
	runtime.SetFinalizer(p, (*Profile).Close)
	return p
}

// createProfile runs a profile constructor against the native context of ctx.
func createProfile(ctx *Context, op string, fn func(C.cmsContext) C.cmsHPROFILE) (*Profile, error) {
	c, unlock, err := ctx.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	ptr := fn(c)
	if ptr == nil {
		return nil, errorsOf(ctx).fail(op, ErrNullHandle)
	}
	return newProfile(ctx, ptr), nil
}

// OpenProfileFile opens the profile at path. mode is "r" to read or "w" to
// create a profile written to path when closed.
func OpenProfileFile(ctx *Context, path, mode string) (*Profile, error) {
	if mode != "r" && mode != "w" {
		return nil, invalidArg("profile access mode %q", mode)
	}
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	cmode := C.CString(mode)
	defer C.free(unsafe.Pointer(cmode))
	return createProfile(ctx, "cmsOpenProfileFromFileTHR", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsOpenProfileFromFileTHR(c, cpath, cmode)
	})
}

// OpenProfileMem opens a profile serialized in data.
func OpenProfileMem(ctx *Context, data []byte) (*Profile, error) {
	if len(data) == 0 {
		return nil, invalidArg("empty profile data")
	}
	return createProfile(ctx, "cmsOpenProfileFromMemTHR", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsOpenProfileFromMemTHR(c, unsafe.Pointer(&data[0]), C.cmsUInt32Number(len(data)))
	})
}

// Close releases the profile. Views read from its tags become invalid.
// Close is idempotent.
func (p *Profile) Close() error {
	p.h.close()
	runtime.SetFinalizer(p, nil)
	return nil
}

// IsClosed reports whether p has been closed.
func (p *Profile) IsClosed() bool { return p.h.closed() }

func (p *Profile) native() *handle { return p.h }

// Context returns the context p was created with, nil for the global one.
func (p *Profile) Context() *Context { return p.h.ctx }

// SaveFile writes p to path.
func (p *Profile) SaveFile(path string) error {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	return do(p.h, func(x unsafe.Pointer) error {
		if C.cmsSaveProfileToFile(C.cmsHPROFILE(x), cpath) == 0 {
			return p.h.fail("cmsSaveProfileToFile", ErrFailed)
		}
		return nil
	})
}

// Bytes serializes p.
func (p *Profile) Bytes() ([]byte, error) {
	var out []byte
	err := do(p.h, func(x unsafe.Pointer) error {
		var n C.cmsUInt32Number
		if C.cmsSaveProfileToMem(C.cmsHPROFILE(x), nil, &n) == 0 || n == 0 {
			return p.h.fail("cmsSaveProfileToMem", ErrFailed)
		}
		buf := make([]byte, n)
		if C.cmsSaveProfileToMem(C.cmsHPROFILE(x), unsafe.Pointer(&buf[0]), &n) == 0 {
			return p.h.fail("cmsSaveProfileToMem", ErrFailed)
		}
		out = buf[:n]
		return nil
	})
	return out, err
}

func (p *Profile) DeviceClass() (ProfileClass, error) {
	return use(p.h, func(x unsafe.Pointer) ProfileClass {
		return ProfileClass(C.cmsGetDeviceClass(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetDeviceClass(c ProfileClass) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetDeviceClass(C.cmsHPROFILE(x), C.cmsProfileClassSignature(c))
		return nil
	})
}

// ColorSpace is the colour space of the device side of p.
func (p *Profile) ColorSpace() (ColorSpace, error) {
	return use(p.h, func(x unsafe.Pointer) ColorSpace {
		return ColorSpace(C.cmsGetColorSpace(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetColorSpace(cs ColorSpace) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetColorSpace(C.cmsHPROFILE(x), C.cmsColorSpaceSignature(cs))
		return nil
	})
}

// PCS is the profile connection space of p.
func (p *Profile) PCS() (ColorSpace, error) {
	return use(p.h, func(x unsafe.Pointer) ColorSpace {
		return ColorSpace(C.cmsGetPCS(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetPCS(cs ColorSpace) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetPCS(C.cmsHPROFILE(x), C.cmsColorSpaceSignature(cs))
		return nil
	})
}

// Channels is the number of device channels of p.
func (p *Profile) Channels() (int, error) {
	return use(p.h, func(x unsafe.Pointer) int {
		return int(C.cmsChannelsOf(C.cmsGetColorSpace(C.cmsHPROFILE(x))))
	})
}

// Version is the ICC version of p, such as 4.3.
func (p *Profile) Version() (float64, error) {
	return use(p.h, func(x unsafe.Pointer) float64 {
		return float64(C.cmsGetProfileVersion(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetVersion(v float64) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetProfileVersion(C.cmsHPROFILE(x), C.cmsFloat64Number(v))
		return nil
	})
}

// EncodedICCVersion is the version field exactly as stored in the header.
func (p *Profile) EncodedICCVersion() (uint32, error) {
	return use(p.h, func(x unsafe.Pointer) uint32 {
		return uint32(C.cmsGetEncodedICCversion(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetEncodedICCVersion(v uint32) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetEncodedICCversion(C.cmsHPROFILE(x), C.cmsUInt32Number(v))
		return nil
	})
}

// RenderingIntent is the intent recorded in the header.
func (p *Profile) RenderingIntent() (Intent, error) {
	return use(p.h, func(x unsafe.Pointer) Intent {
		return Intent(C.cmsGetHeaderRenderingIntent(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetRenderingIntent(i Intent) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetHeaderRenderingIntent(C.cmsHPROFILE(x), C.cmsUInt32Number(i))
		return nil
	})
}

func (p *Profile) HeaderFlags() (uint32, error) {
	return use(p.h, func(x unsafe.Pointer) uint32 {
		return uint32(C.cmsGetHeaderFlags(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetHeaderFlags(f uint32) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetHeaderFlags(C.cmsHPROFILE(x), C.cmsUInt32Number(f))
		return nil
	})
}

func (p *Profile) Manufacturer() (Signature, error) {
	return use(p.h, func(x unsafe.Pointer) Signature {
		return Signature(C.cmsGetHeaderManufacturer(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetManufacturer(s Signature) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetHeaderManufacturer(C.cmsHPROFILE(x), C.cmsUInt32Number(s))
		return nil
	})
}

func (p *Profile) Model() (Signature, error) {
	return use(p.h, func(x unsafe.Pointer) Signature {
		return Signature(C.cmsGetHeaderModel(C.cmsHPROFILE(x)))
	})
}

func (p *Profile) SetModel(s Signature) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetHeaderModel(C.cmsHPROFILE(x), C.cmsUInt32Number(s))
		return nil
	})
}

// Attributes holds the device attribute bits of the header.
func (p *Profile) Attributes() (uint64, error) {
	return use(p.h, func(x unsafe.Pointer) uint64 {
		var a C.cmsUInt64Number
		C.cmsGetHeaderAttributes(C.cmsHPROFILE(x), &a)
		return uint64(a)
	})
}

func (p *Profile) SetAttributes(a uint64) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetHeaderAttributes(C.cmsHPROFILE(x), C.cmsUInt64Number(a))
		return nil
	})
}

// CreationDate is the creation time recorded in the header, in UTC.
func (p *Profile) CreationDate() (time.Time, error) {
	var t time.Time
	err := do(p.h, func(x unsafe.Pointer) error {
		var tm C.struct_tm
		if C.cmsGetHeaderCreationDateTime(C.cmsHPROFILE(x), &tm) == 0 {
			return p.h.fail("cmsGetHeaderCreationDateTime", ErrFailed)
		}
		t = time.Date(int(tm.tm_year)+1900, time.Month(tm.tm_mon+1), int(tm.tm_mday),
			int(tm.tm_hour), int(tm.tm_min), int(tm.tm_sec), 0, time.UTC)
		return nil
	})
	return t, err
}

// ProfileID is the MD5 profile identifier stored in the header.
func (p *Profile) ProfileID() ([16]byte, error) {
	return use(p.h, func(x unsafe.Pointer) [16]byte {
		var id [16]byte
		C.cmsGetHeaderProfileID(C.cmsHPROFILE(x), (*C.cmsUInt8Number)(unsafe.Pointer(&id[0])))
		return id
	})
}

func (p *Profile) SetProfileID(id [16]byte) error {
	return do(p.h, func(x unsafe.Pointer) error {
		C.cmsSetHeaderProfileID(C.cmsHPROFILE(x), (*C.cmsUInt8Number)(unsafe.Pointer(&id[0])))
		return nil
	})
}

// ComputeMD5 computes the profile identifier and stores it in the header.
func (p *Profile) ComputeMD5() error {
	return do(p.h, func(x unsafe.Pointer) error {
		if C.cmsMD5computeID(C.cmsHPROFILE(x)) == 0 {
			return p.h.fail("cmsMD5computeID", ErrFailed)
		}
		return nil
	})
}

// Info returns a descriptive string in the requested language. Empty codes
// select the first translation available. A missing string yields "".
func (p *Profile) Info(info InfoType, language, country string) (string, error) {
	lang, cntry, err := mluCodes(language, country)
	if err != nil {
		return "", err
	}
	var out string
	err = do(p.h, func(x unsafe.Pointer) error {
		h := C.cmsHPROFILE(x)
		n := C.cmsGetProfileInfo(h, C.cmsInfoType(info), &lang[0], &cntry[0], nil, 0)
		if n == 0 {
			return nil
		}
		buf := (*C.wchar_t)(C.malloc(C.size_t(n)))
		defer C.free(unsafe.Pointer(buf))
		n = C.cmsGetProfileInfo(h, C.cmsInfoType(info), &lang[0], &cntry[0], buf, n)
		s, err := goWide(buf, int(n)/wcharSize)
		out = s
		return err
	})
	return out, err
}

// InfoASCII is Info restricted to 7-bit ASCII.
func (p *Profile) InfoASCII(info InfoType, language, country string) (string, error) {
	lang, cntry, err := mluCodes(language, country)
	if err != nil {
		return "", err
	}
	var out string
	err = do(p.h, func(x unsafe.Pointer) error {
		h := C.cmsHPROFILE(x)
		n := C.cmsGetProfileInfoASCII(h, C.cmsInfoType(info), &lang[0], &cntry[0], nil, 0)
		if n == 0 {
			return nil
		}
		buf := (*C.char)(C.malloc(C.size_t(n)))
		defer C.free(unsafe.Pointer(buf))
		C.cmsGetProfileInfoASCII(h, C.cmsInfoType(info), &lang[0], &cntry[0], buf, n)
		out = C.GoString(buf)
		return nil
	})
	return out, err
}

// IsMatrixShaper reports whether p is built from a matrix and curves.
func (p *Profile) IsMatrixShaper() (bool, error) {
	return use(p.h, func(x unsafe.Pointer) bool {
		return C.cmsIsMatrixShaper(C.cmsHPROFILE(x)) != 0
	})
}

// IsCLUT reports whether p implements intent in direction dir with a lookup
// table.
func (p *Profile) IsCLUT(intent Intent, dir UsedDirection) (bool, error) {
	return use(p.h, func(x unsafe.Pointer) bool {
		return C.cmsIsCLUT(C.cmsHPROFILE(x), C.cmsUInt32Number(intent), C.cmsUInt32Number(dir)) != 0
	})
}

// IsIntentSupported reports whether p can be used with intent in direction
// dir.
func (p *Profile) IsIntentSupported(intent Intent, dir UsedDirection) (bool, error) {
	return use(p.h, func(x unsafe.Pointer) bool {
		return C.cmsIsIntentSupported(C.cmsHPROFILE(x), C.cmsUInt32Number(intent), C.cmsUInt32Number(dir)) != 0
	})
}

// DetectBlackPoint estimates the black point of p used as input.
func (p *Profile) DetectBlackPoint(intent Intent, flags Flags) (CIEXYZ, error) {
	return p.blackPoint("cmsDetectBlackPoint", intent, flags, false)
}

// DetectDestinationBlackPoint estimates the black point of p used as output.
func (p *Profile) DetectDestinationBlackPoint(intent Intent, flags Flags) (CIEXYZ, error) {
	return p.blackPoint("cmsDetectDestinationBlackPoint", intent, flags, true)
}

func (p *Profile) blackPoint(op string, intent Intent, flags Flags, dest bool) (CIEXYZ, error) {
	var bp C.cmsCIEXYZ
	err := do(p.h, func(x unsafe.Pointer) error {
		var ok C.cmsBool
		if dest {
			ok = C.cmsDetectDestinationBlackPoint(C.cmsHPROFILE(x), &bp, C.cmsUInt32Number(intent), C.cmsUInt32Number(flags))
		} else {
			ok = C.cmsDetectBlackPoint(C.cmsHPROFILE(x), &bp, C.cmsUInt32Number(intent), C.cmsUInt32Number(flags))
		}
		if ok == 0 {
			return p.h.fail(op, ErrFailed)
		}
		return nil
	})
	return goXYZ(bp), err
}

// DetectTAC estimates the total area coverage of an output profile, in
// percent.
func (p *Profile) DetectTAC() (float64, error) {
	return use(p.h, func(x unsafe.Pointer) float64 {
		return float64(C.cmsDetectTAC(C.cmsHPROFILE(x)))
	})
}

// DetectRGBProfileGamma estimates the gamma of an RGB profile. Curves
// deviating from a pure gamma by more than threshold are rejected.
func (p *Profile) DetectRGBProfileGamma(threshold float64) (float64, error) {
	if err := requireEngine("DetectRGBProfileGamma", ">= 2.14"); err != nil {
		return 0, err
	}
	var g float64
	err := do(p.h, func(x unsafe.Pointer) error {
		g = float64(C.golcms_detect_rgb_gamma(C.cmsHPROFILE(x), C.cmsFloat64Number(threshold)))
		if g <= 0 {
			return p.h.fail("cmsDetectRGBProfileGamma", ErrFailed)
		}
		return nil
	})
	return g, err
}
