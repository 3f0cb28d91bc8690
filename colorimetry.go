package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

// CIEXYZ is a tristimulus value, Y normalized to 1.
type CIEXYZ struct {
	X, Y, Z float64
}

// CIExyY is a chromaticity plus luminance.
type CIExyY struct {
	X, Y, YY float64
}

// CIELab is a CIE L*a*b* colour.
type CIELab struct {
	L, A, B float64
}

// CIELCh is a CIE L*C*h colour.
type CIELCh struct {
	L, C, H float64
}

// JCh is a colour in CIECAM02 appearance correlates.
type JCh struct {
	J, C, H float64
}

// CIExyYTriple holds the primaries of an RGB space.
type CIExyYTriple struct {
	Red, Green, Blue CIExyY
}

func (v CIEXYZ) c() C.cmsCIEXYZ {
	return C.cmsCIEXYZ{X: C.cmsFloat64Number(v.X), Y: C.cmsFloat64Number(v.Y), Z: C.cmsFloat64Number(v.Z)}
}

func goXYZ(v C.cmsCIEXYZ) CIEXYZ {
	return CIEXYZ{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func (v CIExyY) c() C.cmsCIExyY {
	return C.cmsCIExyY{x: C.cmsFloat64Number(v.X), y: C.cmsFloat64Number(v.Y), Y: C.cmsFloat64Number(v.YY)}
}

func goxyY(v C.cmsCIExyY) CIExyY {
	return CIExyY{X: float64(v.x), Y: float64(v.y), YY: float64(v.Y)}
}

func (v CIELab) c() C.cmsCIELab {
	return C.cmsCIELab{L: C.cmsFloat64Number(v.L), a: C.cmsFloat64Number(v.A), b: C.cmsFloat64Number(v.B)}
}

func goLab(v C.cmsCIELab) CIELab {
	return CIELab{L: float64(v.L), A: float64(v.a), B: float64(v.b)}
}

func (v CIELCh) c() C.cmsCIELCh {
	return C.cmsCIELCh{L: C.cmsFloat64Number(v.L), C: C.cmsFloat64Number(v.C), h: C.cmsFloat64Number(v.H)}
}

func goLCh(v C.cmsCIELCh) CIELCh {
	return CIELCh{L: float64(v.L), C: float64(v.C), H: float64(v.h)}
}

func (t CIExyYTriple) c() C.cmsCIExyYTRIPLE {
	return C.cmsCIExyYTRIPLE{Red: t.Red.c(), Green: t.Green.c(), Blue: t.Blue.c()}
}

// D50XYZ returns the D50 white point as XYZ.
func D50XYZ() CIEXYZ {
	return goXYZ(*C.cmsD50_XYZ())
}

// D50xyY returns the D50 white point as xyY.
func D50xyY() CIExyY {
	return goxyY(*C.cmsD50_xyY())
}

// XYZToxyY converts XYZ to xyY.
func XYZToxyY(v CIEXYZ) CIExyY {
	var out C.cmsCIExyY
	src := v.c()
	C.cmsXYZ2xyY(&out, &src)
	return goxyY(out)
}

// XyYToXYZ converts xyY to XYZ.
func XyYToXYZ(v CIExyY) CIEXYZ {
	var out C.cmsCIEXYZ
	src := v.c()
	C.cmsxyY2XYZ(&out, &src)
	return goXYZ(out)
}

// XYZToLab converts XYZ to Lab relative to white point wp. A nil wp means D50.
func XYZToLab(wp *CIEXYZ, v CIEXYZ) CIELab {
	var out C.cmsCIELab
	src := v.c()
	if wp == nil {
		C.cmsXYZ2Lab(nil, &out, &src)
	} else {
		w := wp.c()
		C.cmsXYZ2Lab(&w, &out, &src)
	}
	return goLab(out)
}

// LabToXYZ converts Lab to XYZ relative to white point wp. A nil wp means D50.
func LabToXYZ(wp *CIEXYZ, v CIELab) CIEXYZ {
	var out C.cmsCIEXYZ
	src := v.c()
	if wp == nil {
		C.cmsLab2XYZ(nil, &out, &src)
	} else {
		w := wp.c()
		C.cmsLab2XYZ(&w, &out, &src)
	}
	return goXYZ(out)
}

// LabToLCh converts Lab to LCh.
func LabToLCh(v CIELab) CIELCh {
	var out C.cmsCIELCh
	src := v.c()
	C.cmsLab2LCh(&out, &src)
	return goLCh(out)
}

// LChToLab converts LCh to Lab.
func LChToLab(v CIELCh) CIELab {
	var out C.cmsCIELab
	src := v.c()
	C.cmsLCh2Lab(&out, &src)
	return goLab(out)
}

// DeltaE is the CIE76 colour difference.
func DeltaE(a, b CIELab) float64 {
	x, y := a.c(), b.c()
	return float64(C.cmsDeltaE(&x, &y))
}

// CIE94DeltaE is the CIE94 colour difference.
func CIE94DeltaE(a, b CIELab) float64 {
	x, y := a.c(), b.c()
	return float64(C.cmsCIE94DeltaE(&x, &y))
}

// BFDDeltaE is the BFD colour difference.
func BFDDeltaE(a, b CIELab) float64 {
	x, y := a.c(), b.c()
	return float64(C.cmsBFDdeltaE(&x, &y))
}

// CMCDeltaE is the CMC(l:c) colour difference.
func CMCDeltaE(a, b CIELab, l, c float64) float64 {
	x, y := a.c(), b.c()
	return float64(C.cmsCMCdeltaE(&x, &y, C.cmsFloat64Number(l), C.cmsFloat64Number(c)))
}

// CIE2000DeltaE is the CIEDE2000 colour difference with weights kl, kc, kh.
func CIE2000DeltaE(a, b CIELab, kl, kc, kh float64) float64 {
	x, y := a.c(), b.c()
	return float64(C.cmsCIE2000DeltaE(&x, &y, C.cmsFloat64Number(kl), C.cmsFloat64Number(kc), C.cmsFloat64Number(kh)))
}

// WhitePointFromTemp returns the daylight white point of a correlated colour
// temperature in kelvin.
func WhitePointFromTemp(kelvin float64) (CIExyY, error) {
	var out C.cmsCIExyY
	if C.cmsWhitePointFromTemp(&out, C.cmsFloat64Number(kelvin)) == 0 {
		return CIExyY{}, globalErrors.fail("cmsWhitePointFromTemp", ErrFailed)
	}
	return goxyY(out), nil
}

// TempFromWhitePoint returns the correlated colour temperature of wp.
func TempFromWhitePoint(wp CIExyY) (float64, error) {
	var out C.cmsFloat64Number
	src := wp.c()
	if C.cmsTempFromWhitePoint(&out, &src) == 0 {
		return 0, globalErrors.fail("cmsTempFromWhitePoint", ErrFailed)
	}
	return float64(out), nil
}

// AdaptToIlluminant adapts v from the source white point to illuminant with a
// Bradford transform.
func AdaptToIlluminant(srcWhite, illuminant, v CIEXYZ) (CIEXYZ, error) {
	var out C.cmsCIEXYZ
	s, i, x := srcWhite.c(), illuminant.c(), v.c()
	if C.cmsAdaptToIlluminant(&out, &s, &i, &x) == 0 {
		return CIEXYZ{}, globalErrors.fail("cmsAdaptToIlluminant", ErrFailed)
	}
	return goXYZ(out), nil
}
