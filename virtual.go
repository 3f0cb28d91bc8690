package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

// Built-in profiles created by the engine without reading any data.

// NewSRGBProfile creates the standard sRGB profile.
func NewSRGBProfile(ctx *Context) (*Profile, error) {
	return createProfile(ctx, "cmsCreate_sRGBProfileTHR", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsCreate_sRGBProfileTHR(c)
	})
}

// NewLab2Profile creates a v2 Lab identity profile. A nil white point means
// D50.
func NewLab2Profile(ctx *Context, wp *CIExyY) (*Profile, error) {
	return createProfile(ctx, "cmsCreateLab2ProfileTHR", func(c C.cmsContext) C.cmsHPROFILE {
		if wp == nil {
			return C.cmsCreateLab2ProfileTHR(c, nil)
		}
		w := wp.c()
		return C.cmsCreateLab2ProfileTHR(c, &w)
	})
}

// NewLab4Profile creates a v4 Lab identity profile. A nil white point means
// D50.
func NewLab4Profile(ctx *Context, wp *CIExyY) (*Profile, error) {
	return createProfile(ctx, "cmsCreateLab4ProfileTHR", func(c C.cmsContext) C.cmsHPROFILE {
		if wp == nil {
			return C.cmsCreateLab4ProfileTHR(c, nil)
		}
		w := wp.c()
		return C.cmsCreateLab4ProfileTHR(c, &w)
	})
}

// NewXYZProfile creates an XYZ identity profile.
func NewXYZProfile(ctx *Context) (*Profile, error) {
	return createProfile(ctx, "cmsCreateXYZProfileTHR", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsCreateXYZProfileTHR(c)
	})
}

// NewNULLProfile creates an output profile that discards its input.
func NewNULLProfile(ctx *Context) (*Profile, error) {
	return createProfile(ctx, "cmsCreateNULLProfileTHR", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsCreateNULLProfileTHR(c)
	})
}

// NewPlaceholderProfile creates an empty profile to be filled with tags.
func NewPlaceholderProfile(ctx *Context) (*Profile, error) {
	return createProfile(ctx, "cmsCreateProfilePlaceholder", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsCreateProfilePlaceholder(c)
	})
}

// createWithCurves locks curves for the duration of a profile constructor.
func createWithCurves(ctx *Context, op string, curves []*ToneCurve, fn func(C.cmsContext, []*C.cmsToneCurve) C.cmsHPROFILE) (*Profile, error) {
	hs := make([]*handle, len(curves))
	for i, t := range curves {
		if t == nil {
			return nil, invalidArg("nil curve %d", i)
		}
		hs[i] = t.h
	}
	var lockErr error
	p, err := createProfile(ctx, op, func(c C.cmsContext) C.cmsHPROFILE {
		ptrs, unlock, err := lockAll(hs...)
		if err != nil {
			lockErr = err
			return nil
		}
		defer unlock()
		cs := make([]*C.cmsToneCurve, len(ptrs))
		for i, p := range ptrs {
			cs[i] = (*C.cmsToneCurve)(p)
		}
		return fn(c, cs)
	})
	if lockErr != nil {
		return nil, lockErr
	}
	return p, err
}

// NewGrayProfile creates a gray profile with white point wp and transfer
// function trc.
func NewGrayProfile(ctx *Context, wp CIExyY, trc *ToneCurve) (*Profile, error) {
	w := wp.c()
	return createWithCurves(ctx, "cmsCreateGrayProfileTHR", []*ToneCurve{trc}, func(c C.cmsContext, cs []*C.cmsToneCurve) C.cmsHPROFILE {
		return C.cmsCreateGrayProfileTHR(c, &w, cs[0])
	})
}

// NewRGBProfile creates a matrix-shaper RGB profile from a white point,
// primaries and one transfer function per channel.
func NewRGBProfile(ctx *Context, wp CIExyY, primaries CIExyYTriple, trc [3]*ToneCurve) (*Profile, error) {
	w, pr := wp.c(), primaries.c()
	return createWithCurves(ctx, "cmsCreateRGBProfileTHR", trc[:], func(c C.cmsContext, cs []*C.cmsToneCurve) C.cmsHPROFILE {
		return C.cmsCreateRGBProfileTHR(c, &w, &pr, &cs[0])
	})
}

// NewLinearizationDeviceLink creates a device link applying one curve per
// channel of space.
func NewLinearizationDeviceLink(ctx *Context, space ColorSpace, curves []*ToneCurve) (*Profile, error) {
	n := int(C.cmsChannelsOf(C.cmsColorSpaceSignature(space)))
	if len(curves) != n {
		return nil, invalidArg("%s needs %d curves, got %d", space, n, len(curves))
	}
	return createWithCurves(ctx, "cmsCreateLinearizationDeviceLinkTHR", curves, func(c C.cmsContext, cs []*C.cmsToneCurve) C.cmsHPROFILE {
		return C.cmsCreateLinearizationDeviceLinkTHR(c, C.cmsColorSpaceSignature(space), &cs[0])
	})
}

// NewInkLimitingDeviceLink creates a CMYK device link limiting total ink
// coverage to limit percent.
func NewInkLimitingDeviceLink(ctx *Context, space ColorSpace, limit float64) (*Profile, error) {
	if limit < 0 || limit > 400 {
		return nil, invalidArg("ink limit %v out of [0, 400]", limit)
	}
	return createProfile(ctx, "cmsCreateInkLimitingDeviceLinkTHR", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsCreateInkLimitingDeviceLinkTHR(c, C.cmsColorSpaceSignature(space), C.cmsFloat64Number(limit))
	})
}

// BCHSW holds the adjustments of an abstract Lab profile. The white point is
// adapted from TempSrc to TempDest, both in kelvin between 4000 and 25000;
// equal temperatures leave it alone.
type BCHSW struct {
	Points     int
	Bright     float64
	Contrast   float64
	Hue        float64
	Saturation float64
	TempSrc    int
	TempDest   int
}

// NewBCHSWabstractProfile creates an abstract profile adjusting brightness,
// contrast, hue, saturation and white point.
func NewBCHSWabstractProfile(ctx *Context, adj BCHSW) (*Profile, error) {
	if adj.Points < 2 || adj.Points > 255 {
		return nil, invalidArg("%d lookup table points", adj.Points)
	}
	if adj.TempSrc != adj.TempDest {
		for _, k := range []int{adj.TempSrc, adj.TempDest} {
			if k < 4000 || k > 25000 {
				return nil, invalidArg("white point temperature %dK out of [4000, 25000]", k)
			}
		}
	}
	return createProfile(ctx, "cmsCreateBCHSWabstractProfileTHR", func(c C.cmsContext) C.cmsHPROFILE {
		return C.cmsCreateBCHSWabstractProfileTHR(c, C.cmsUInt32Number(adj.Points),
			C.cmsFloat64Number(adj.Bright), C.cmsFloat64Number(adj.Contrast),
			C.cmsFloat64Number(adj.Hue), C.cmsFloat64Number(adj.Saturation),
			C.cmsUInt32Number(adj.TempSrc), C.cmsUInt32Number(adj.TempDest))
	})
}
