package golcms

import (
	"fmt"
	"slices"
	"strings"
)

// Signature is a four character ICC code stored big-endian in a uint32.
type Signature uint32

// String returns the four characters of s, trailing blanks trimmed. Zero is
// printed as "0000".
func (s Signature) String() string {
	if s == 0 {
		return "0000"
	}
	b := []byte{byte(s >> 24), byte(s >> 16), byte(s >> 8), byte(s)}
	for i, c := range b {
		if c < 0x20 || c > 0x7e {
			b[i] = '?'
		}
	}
	return strings.TrimRight(string(b), " ")
}

// ParseSignature packs up to four characters into a Signature, padding with
// blanks.
func ParseSignature(s string) (Signature, error) {
	if len(s) == 0 || len(s) > 4 {
		return 0, invalidArg("signature %q must have 1 to 4 characters", s)
	}
	var v uint32
	for i := 0; i < 4; i++ {
		c := byte(' ')
		if i < len(s) {
			c = s[i]
		}
		v = v<<8 | uint32(c)
	}
	return Signature(v), nil
}

// ColorSpace is the colour space signature of profile data.
type ColorSpace uint32

const (
	ColorSpaceXYZ   ColorSpace = 0x58595A20 // 'XYZ '
	ColorSpaceLab   ColorSpace = 0x4C616220 // 'Lab '
	ColorSpaceLuv   ColorSpace = 0x4C757620 // 'Luv '
	ColorSpaceYCbCr ColorSpace = 0x59436272 // 'YCbr'
	ColorSpaceYxy   ColorSpace = 0x59787920 // 'Yxy '
	ColorSpaceRGB   ColorSpace = 0x52474220 // 'RGB '
	ColorSpaceGray  ColorSpace = 0x47524159 // 'GRAY'
	ColorSpaceHSV   ColorSpace = 0x48535620 // 'HSV '
	ColorSpaceHLS   ColorSpace = 0x484C5320 // 'HLS '
	ColorSpaceCMYK  ColorSpace = 0x434D594B // 'CMYK'
	ColorSpaceCMY   ColorSpace = 0x434D5920 // 'CMY '
	ColorSpaceMCH5  ColorSpace = 0x4D434835 // 'MCH5'
	ColorSpaceMCH6  ColorSpace = 0x4D434836 // 'MCH6'
	ColorSpaceMCH7  ColorSpace = 0x4D434837 // 'MCH7'
	ColorSpaceMCH8  ColorSpace = 0x4D434838 // 'MCH8'
)

func (s ColorSpace) String() string { return Signature(s).String() }

// ProfileClass is the device class of a profile.
type ProfileClass uint32

const (
	ClassInput      ProfileClass = 0x73636E72 // 'scnr'
	ClassDisplay    ProfileClass = 0x6D6E7472 // 'mntr'
	ClassOutput     ProfileClass = 0x70727472 // 'prtr'
	ClassLink       ProfileClass = 0x6C696E6B // 'link'
	ClassAbstract   ProfileClass = 0x61627374 // 'abst'
	ClassColorSpace ProfileClass = 0x73706163 // 'spac'
	ClassNamedColor ProfileClass = 0x6E6D636C // 'nmcl'
)

func (c ProfileClass) String() string { return Signature(c).String() }

// TagTypeSignature is the type of data stored in a tag.
type TagTypeSignature uint32

const (
	TypeChromaticity       TagTypeSignature = 0x6368726D // 'chrm'
	TypeColorantTable      TagTypeSignature = 0x636C7274 // 'clrt'
	TypeCurve              TagTypeSignature = 0x63757276 // 'curv'
	TypeDateTime           TagTypeSignature = 0x6474696D // 'dtim'
	TypeDict               TagTypeSignature = 0x64696374 // 'dict'
	TypeLut16              TagTypeSignature = 0x6D667432 // 'mft2'
	TypeLut8               TagTypeSignature = 0x6D667431 // 'mft1'
	TypeLutAtoB            TagTypeSignature = 0x6D414220 // 'mAB '
	TypeLutBtoA            TagTypeSignature = 0x6D424120 // 'mBA '
	TypeMultiLocalizedText TagTypeSignature = 0x6D6C7563 // 'mluc'
	TypeNamedColor2        TagTypeSignature = 0x6E636C32 // 'ncl2'
	TypeParametricCurve    TagTypeSignature = 0x70617261 // 'para'
	TypeS15Fixed16Array    TagTypeSignature = 0x73663332 // 'sf32'
	TypeSignature          TagTypeSignature = 0x73696720 // 'sig '
	TypeText               TagTypeSignature = 0x74657874 // 'text'
	TypeTextDescription    TagTypeSignature = 0x64657363 // 'desc'
	TypeUInt8Array         TagTypeSignature = 0x75693038 // 'ui08'
	TypeUInt16Array        TagTypeSignature = 0x75693136 // 'ui16'
	TypeUInt32Array        TagTypeSignature = 0x75693332 // 'ui32'
	TypeXYZ                TagTypeSignature = 0x58595A20 // 'XYZ '
)

func (t TagTypeSignature) String() string { return Signature(t).String() }

// TagSignature names a tag of a profile.
type TagSignature uint32

const (
	TagAToB0                          TagSignature = 0x41324230 // 'A2B0'
	TagAToB1                          TagSignature = 0x41324231 // 'A2B1'
	TagAToB2                          TagSignature = 0x41324232 // 'A2B2'
	TagBToA0                          TagSignature = 0x42324130 // 'B2A0'
	TagBToA1                          TagSignature = 0x42324131 // 'B2A1'
	TagBToA2                          TagSignature = 0x42324132 // 'B2A2'
	TagGamut                          TagSignature = 0x67616D74 // 'gamt'
	TagPreview0                       TagSignature = 0x70726530 // 'pre0'
	TagBlueColorant                   TagSignature = 0x6258595A // 'bXYZ'
	TagGreenColorant                  TagSignature = 0x6758595A // 'gXYZ'
	TagRedColorant                    TagSignature = 0x7258595A // 'rXYZ'
	TagMediaWhitePoint                TagSignature = 0x77747074 // 'wtpt'
	TagMediaBlackPoint                TagSignature = 0x626B7074 // 'bkpt'
	TagLuminance                      TagSignature = 0x6C756D69 // 'lumi'
	TagBlueTRC                        TagSignature = 0x62545243 // 'bTRC'
	TagGreenTRC                       TagSignature = 0x67545243 // 'gTRC'
	TagRedTRC                         TagSignature = 0x72545243 // 'rTRC'
	TagGrayTRC                        TagSignature = 0x6B545243 // 'kTRC'
	TagCopyright                      TagSignature = 0x63707274 // 'cprt'
	TagProfileDescription             TagSignature = 0x64657363 // 'desc'
	TagDeviceMfgDesc                  TagSignature = 0x646D6E64 // 'dmnd'
	TagDeviceModelDesc                TagSignature = 0x646D6464 // 'dmdd'
	TagViewingCondDesc                TagSignature = 0x76756564 // 'vued'
	TagCharTarget                     TagSignature = 0x74617267 // 'targ'
	TagNamedColor2                    TagSignature = 0x6E636C32 // 'ncl2'
	TagColorantTable                  TagSignature = 0x636C7274 // 'clrt'
	TagColorantTableOut               TagSignature = 0x636C6F74 // 'clot'
	TagMeta                           TagSignature = 0x6D657461 // 'meta'
	TagTechnology                     TagSignature = 0x74656368 // 'tech'
	TagColorimetricIntentImageState   TagSignature = 0x63696973 // 'ciis'
	TagPerceptualRenderingIntentGamut TagSignature = 0x72696730 // 'rig0'
	TagSaturationRenderingIntentGamut TagSignature = 0x72696732 // 'rig2'
	TagChromaticAdaptation            TagSignature = 0x63686164 // 'chad'
)

func (t TagSignature) String() string { return Signature(t).String() }

// Technology signatures stored in the 'tech' tag.
const (
	TechDigitalCamera          Signature = 0x6463616D // 'dcam'
	TechFilmScanner            Signature = 0x6673636E // 'fscn'
	TechReflectiveScanner      Signature = 0x7273636E // 'rscn'
	TechInkJetPrinter          Signature = 0x696A6574 // 'ijet'
	TechThermalWaxPrinter      Signature = 0x74776178 // 'twax'
	TechElectrophotographic    Signature = 0x6570686F // 'epho'
	TechOffsetLithography      Signature = 0x6F666673 // 'offs'
	TechVideoMonitor           Signature = 0x7669646D // 'vidm'
	TechCRTDisplay             Signature = 0x43525420 // 'CRT '
	TechAMDisplay              Signature = 0x414D4420 // 'AMD '
	TechPMDisplay              Signature = 0x504D4420 // 'PMD '
	TechSceneColorimetry       Signature = 0x73636F65 // 'scoe' image state
	TechPictureReferenceMedium Signature = 0x70726D67 // 'prmg' image state
)

// tagKind is the Go view a well-known tag is read into.
type tagKind int

const (
	kindUnknown tagKind = iota
	kindXYZ
	kindMLU
	kindToneCurve
	kindNamedColorList
	kindPipeline
	kindDict
	kindSignature
	kindCustom
)

var tagKinds = map[TagSignature]tagKind{
	TagAToB0:                          kindPipeline,
	TagAToB1:                          kindPipeline,
	TagAToB2:                          kindPipeline,
	TagBToA0:                          kindPipeline,
	TagBToA1:                          kindPipeline,
	TagBToA2:                          kindPipeline,
	TagGamut:                          kindPipeline,
	TagPreview0:                       kindPipeline,
	TagBlueColorant:                   kindXYZ,
	TagGreenColorant:                  kindXYZ,
	TagRedColorant:                    kindXYZ,
	TagMediaWhitePoint:                kindXYZ,
	TagMediaBlackPoint:                kindXYZ,
	TagLuminance:                      kindXYZ,
	TagBlueTRC:                        kindToneCurve,
	TagGreenTRC:                       kindToneCurve,
	TagRedTRC:                         kindToneCurve,
	TagGrayTRC:                        kindToneCurve,
	TagCopyright:                      kindMLU,
	TagProfileDescription:             kindMLU,
	TagDeviceMfgDesc:                  kindMLU,
	TagDeviceModelDesc:                kindMLU,
	TagViewingCondDesc:                kindMLU,
	TagCharTarget:                     kindMLU,
	TagNamedColor2:                    kindNamedColorList,
	TagColorantTable:                  kindNamedColorList,
	TagColorantTableOut:               kindNamedColorList,
	TagMeta:                           kindDict,
	TagTechnology:                     kindSignature,
	TagColorimetricIntentImageState:   kindSignature,
	TagPerceptualRenderingIntentGamut: kindSignature,
	TagSaturationRenderingIntentGamut: kindSignature,
}

var typeKinds = map[TagTypeSignature]tagKind{
	TypeXYZ:                kindXYZ,
	TypeMultiLocalizedText: kindMLU,
	TypeText:               kindMLU,
	TypeTextDescription:    kindMLU,
	TypeCurve:              kindToneCurve,
	TypeParametricCurve:    kindToneCurve,
	TypeNamedColor2:        kindNamedColorList,
	TypeColorantTable:      kindNamedColorList,
	TypeLut8:               kindPipeline,
	TypeLut16:              kindPipeline,
	TypeLutAtoB:            kindPipeline,
	TypeLutBtoA:            kindPipeline,
	TypeDict:               kindDict,
	TypeSignature:          kindSignature,
}

// privateTags holds the types private tags were declared with by tag plug-ins.
var privateTags registry[TagSignature, []TagTypeSignature]

// registerTagKind declares the types a private tag may hold. Declaring a tag
// again with the same types is allowed; other types are refused until every
// earlier declaration is released.
func registerTagKind(sig TagSignature, types []TagTypeSignature) (func(), error) {
	if _, ok := tagKinds[sig]; ok {
		return nil, invalidArg("tag %s is built in", sig)
	}
	release, ok := privateTags.take(sig, fmt.Sprint(types), slices.Clone(types))
	if !ok {
		return nil, invalidArg("tag %s is already declared with other types", sig)
	}
	return release, nil
}

// tagKindOf returns the Go view of sig. A private tag has a view when all its
// types share one; tags of other types stay readable only as raw data.
func tagKindOf(sig TagSignature) tagKind {
	if k, ok := tagKinds[sig]; ok {
		return k
	}
	types, ok := privateTags.get(sig)
	if !ok {
		return kindUnknown
	}
	kind := kindUnknown
	for i, t := range types {
		k, ok := typeKinds[t]
		if !ok && isCustomType(t) {
			k = kindCustom
		}
		if i > 0 && k != kind {
			return kindUnknown
		}
		kind = k
	}
	return kind
}

func checkTagKind(sig TagSignature, want tagKind) error {
	if got := tagKindOf(sig); got == kindUnknown || got != want {
		return fmt.Errorf("%w: tag %s", ErrTagType, sig)
	}
	return nil
}
