package golcms

// PixelType is the colour space field of a PixelFormat.
type PixelType uint32

// Pixel types
const (
	PtAny   PixelType = 0 // Don't check colorspace
	PtGray  PixelType = 3
	PtRGB   PixelType = 4
	PtCMY   PixelType = 5
	PtCMYK  PixelType = 6
	PtYCbCr PixelType = 7
	PtYUV   PixelType = 8 // Lu'v'
	PtXYZ   PixelType = 9
	PtLab   PixelType = 10
	PtYUVK  PixelType = 11 // Lu'v'K
	PtHSV   PixelType = 12
	PtHLS   PixelType = 13
	PtYxy   PixelType = 14
	PtMCH1  PixelType = 15
	PtMCH2  PixelType = 16
	PtMCH3  PixelType = 17
	PtMCH4  PixelType = 18
	PtMCH5  PixelType = 19
	PtMCH6  PixelType = 20
	PtMCH7  PixelType = 21
	PtMCH8  PixelType = 22
	PtLabV2 PixelType = 30 // Identical to PtLab, but using the V2 old encoding
)

// PixelFormat describes the memory layout of pixels handed to a transform.
type PixelFormat uint32

func PremulSh(m uint32) PixelFormat { return PixelFormat(m << 23) }
func FloatSh(a uint32) PixelFormat { return PixelFormat(a << 22) }
func OptimizedSh(s uint32) PixelFormat { return PixelFormat(s << 21) }
func ColorspaceSh(s PixelType) PixelFormat { return PixelFormat(uint32(s) << 16) }
func SwapFirstSh(s uint32) PixelFormat { return PixelFormat(s << 14) }
func FlavorSh(s uint32) PixelFormat { return PixelFormat(s << 13) }
func PlanarSh(p uint32) PixelFormat { return PixelFormat(p << 12) }
func Endian16Sh(e uint32) PixelFormat { return PixelFormat(e << 11) }
func DoSwapSh(e uint32) PixelFormat { return PixelFormat(e << 10) }
func ExtraSh(e uint32) PixelFormat { return PixelFormat(e << 7) }
func ChannelsSh(c uint32) PixelFormat { return PixelFormat(c << 3) }
func BytesSh(b uint32) PixelFormat { return PixelFormat(b) }

// Bytes is the sample size in bytes. Zero means 8 (double).
func (f PixelFormat) Bytes() int { return int(f & 7) }

func (f PixelFormat) Channels() int { return int((f >> 3) & 15) }
func (f PixelFormat) Extra() int { return int((f >> 7) & 7) }
func (f PixelFormat) DoSwap() bool { return (f>>10)&1 != 0 }
func (f PixelFormat) Endian16() bool { return (f>>11)&1 != 0 }
func (f PixelFormat) Planar() bool { return (f>>12)&1 != 0 }
func (f PixelFormat) Flavor() bool { return (f>>13)&1 != 0 }
func (f PixelFormat) SwapFirst() bool { return (f>>14)&1 != 0 }
func (f PixelFormat) ColorSpace() PixelType { return PixelType((f >> 16) & 31) }
func (f PixelFormat) Optimized() bool { return (f>>21)&1 != 0 }
func (f PixelFormat) Float() bool { return (f>>22)&1 != 0 }
func (f PixelFormat) Premul() bool { return (f>>23)&1 != 0 }

// SampleSize is the size of one sample in bytes.
func (f PixelFormat) SampleSize() int {
	if b := f.Bytes(); b != 0 {
		return b
	}
	return 8
}

// PixelSize is the number of bytes one pixel occupies, extra channels
// included.
func (f PixelFormat) PixelSize() int {
	return (f.Channels() + f.Extra()) * f.SampleSize()
}

// Common pixel formats
var (
	TypeGray8     = ColorspaceSh(PtGray) | ChannelsSh(1) | BytesSh(1)
	TypeGray8Rev  = ColorspaceSh(PtGray) | ChannelsSh(1) | BytesSh(1) | FlavorSh(1)
	TypeGray16    = ColorspaceSh(PtGray) | ChannelsSh(1) | BytesSh(2)
	TypeGray16SE  = ColorspaceSh(PtGray) | ChannelsSh(1) | BytesSh(2) | Endian16Sh(1)
	TypeGrayA8    = ColorspaceSh(PtGray) | ExtraSh(1) | ChannelsSh(1) | BytesSh(1)
	TypeGrayA16   = ColorspaceSh(PtGray) | ExtraSh(1) | ChannelsSh(1) | BytesSh(2)
	TypeGrayFloat = FloatSh(1) | ColorspaceSh(PtGray) | ChannelsSh(1) | BytesSh(4)
	TypeGrayDbl   = FloatSh(1) | ColorspaceSh(PtGray) | ChannelsSh(1) | BytesSh(0)

	TypeRGB8        = ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(1)
	TypeRGB8Planar  = ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(1) | PlanarSh(1)
	TypeBGR8        = ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(1) | DoSwapSh(1)
	TypeRGB16       = ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(2)
	TypeRGB16Planar = ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(2) | PlanarSh(1)
	TypeRGB16SE     = ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(2) | Endian16Sh(1)
	TypeBGR16       = ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(2) | DoSwapSh(1)
	TypeRGBA8       = ColorspaceSh(PtRGB) | ExtraSh(1) | ChannelsSh(3) | BytesSh(1)
	TypeRGBA8Premul = ColorspaceSh(PtRGB) | ExtraSh(1) | ChannelsSh(3) | BytesSh(1) | PremulSh(1)
	TypeRGBA16      = ColorspaceSh(PtRGB) | ExtraSh(1) | ChannelsSh(3) | BytesSh(2)
	TypeARGB8       = ColorspaceSh(PtRGB) | ExtraSh(1) | ChannelsSh(3) | BytesSh(1) | SwapFirstSh(1)
	TypeABGR8       = ColorspaceSh(PtRGB) | ExtraSh(1) | ChannelsSh(3) | BytesSh(1) | DoSwapSh(1)
	TypeBGRA8       = ColorspaceSh(PtRGB) | ExtraSh(1) | ChannelsSh(3) | BytesSh(1) | DoSwapSh(1) | SwapFirstSh(1)
	TypeRGBFloat    = FloatSh(1) | ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(4)
	TypeRGBAFloat   = FloatSh(1) | ColorspaceSh(PtRGB) | ExtraSh(1) | ChannelsSh(3) | BytesSh(4)
	TypeRGBDbl      = FloatSh(1) | ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(0)
	TypeRGBHalf     = FloatSh(1) | ColorspaceSh(PtRGB) | ChannelsSh(3) | BytesSh(2)

	TypeCMY8        = ColorspaceSh(PtCMY) | ChannelsSh(3) | BytesSh(1)
	TypeCMY16       = ColorspaceSh(PtCMY) | ChannelsSh(3) | BytesSh(2)
	TypeCMYK8       = ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(1)
	TypeCMYK8Rev    = ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(1) | FlavorSh(1)
	TypeCMYK8Planar = ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(1) | PlanarSh(1)
	TypeCMYK16      = ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(2)
	TypeKYMC8       = ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(1) | DoSwapSh(1)
	TypeKCMY8       = ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(1) | SwapFirstSh(1)
	TypeCMYKFloat   = FloatSh(1) | ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(4)
	TypeCMYKDbl     = FloatSh(1) | ColorspaceSh(PtCMYK) | ChannelsSh(4) | BytesSh(0)

	TypeXYZ16    = ColorspaceSh(PtXYZ) | ChannelsSh(3) | BytesSh(2)
	TypeXYZFloat = FloatSh(1) | ColorspaceSh(PtXYZ) | ChannelsSh(3) | BytesSh(4)
	TypeXYZDbl   = FloatSh(1) | ColorspaceSh(PtXYZ) | ChannelsSh(3) | BytesSh(0)
	TypeLab8     = ColorspaceSh(PtLab) | ChannelsSh(3) | BytesSh(1)
	TypeLabV2_8  = ColorspaceSh(PtLabV2) | ChannelsSh(3) | BytesSh(1)
	TypeLab16    = ColorspaceSh(PtLab) | ChannelsSh(3) | BytesSh(2)
	TypeLabV2_16 = ColorspaceSh(PtLabV2) | ChannelsSh(3) | BytesSh(2)
	TypeLabFloat = FloatSh(1) | ColorspaceSh(PtLab) | ChannelsSh(3) | BytesSh(4)
	TypeLabDbl   = FloatSh(1) | ColorspaceSh(PtLab) | ChannelsSh(3) | BytesSh(0)
	TypeYxy16    = ColorspaceSh(PtYxy) | ChannelsSh(3) | BytesSh(2)

	TypeYCbCr8 = ColorspaceSh(PtYCbCr) | ChannelsSh(3) | BytesSh(1)
	TypeHSV8   = ColorspaceSh(PtHSV) | ChannelsSh(3) | BytesSh(1)
	TypeHLS8   = ColorspaceSh(PtHLS) | ChannelsSh(3) | BytesSh(1)

	// Index into a named colour list.
	TypeNamedColorIndex = ChannelsSh(1) | BytesSh(2)
)
