package golcms

import "fmt"

// MaxChannels is the largest number of channels the engine handles.
const MaxChannels = 16

// MaxPath bounds names returned by the engine, such as named colours.
const MaxPath = 256

// Intent is an ICC or engine rendering intent.
type Intent uint32

// ICC intents
const (
	IntentPerceptual           Intent = 0
	IntentRelativeColorimetric Intent = 1
	IntentSaturation           Intent = 2
	IntentAbsoluteColorimetric Intent = 3
)

// Non-ICC intents
const (
	IntentPreserveKOnlyPerceptual            Intent = 10
	IntentPreserveKOnlyRelativeColorimetric  Intent = 11
	IntentPreserveKOnlySaturation            Intent = 12
	IntentPreserveKPlanePerceptual           Intent = 13
	IntentPreserveKPlaneRelativeColorimetric Intent = 14
	IntentPreserveKPlaneSaturation           Intent = 15
)

var intentNames = map[Intent]string{
	IntentPerceptual:                         "perceptual",
	IntentRelativeColorimetric:               "relative-colorimetric",
	IntentSaturation:                         "saturation",
	IntentAbsoluteColorimetric:               "absolute-colorimetric",
	IntentPreserveKOnlyPerceptual:            "preserve-k-only-perceptual",
	IntentPreserveKOnlyRelativeColorimetric:  "preserve-k-only-relative-colorimetric",
	IntentPreserveKOnlySaturation:            "preserve-k-only-saturation",
	IntentPreserveKPlanePerceptual:           "preserve-k-plane-perceptual",
	IntentPreserveKPlaneRelativeColorimetric: "preserve-k-plane-relative-colorimetric",
	IntentPreserveKPlaneSaturation:           "preserve-k-plane-saturation",
}

func (i Intent) String() string {
	if s, ok := intentNames[i]; ok {
		return s
	}
	return fmt.Sprintf("intent(%d)", uint32(i))
}

// ParseIntent returns the intent named s, as printed by Intent.String.
func ParseIntent(s string) (Intent, error) {
	for i, name := range intentNames {
		if name == s {
			return i, nil
		}
	}
	return 0, invalidArg("unknown intent %q", s)
}

// UsedDirection says how a profile takes part in a transform.
type UsedDirection uint32

const (
	UsedAsInput  UsedDirection = 0
	UsedAsOutput UsedDirection = 1
	UsedAsProof  UsedDirection = 2
)

// InfoType selects a descriptive string of a profile.
type InfoType uint32

const (
	InfoDescription InfoType = iota
	InfoManufacturer
	InfoModel
	InfoCopyright
)

// Flags alter how transforms are built.
type Flags uint32

const (
	FlagNoCache                Flags = 0x0040 // Inhibit 1-pixel cache
	FlagNoOptimize             Flags = 0x0100 // Inhibit optimizations
	FlagNullTransform          Flags = 0x0200 // Don't transform anyway
	FlagGamutCheck             Flags = 0x1000 // Out of Gamut alarm
	FlagSoftProofing           Flags = 0x4000 // Do softproofing
	FlagBlackPointCompensation Flags = 0x2000
	FlagNoWhiteOnWhiteFixup    Flags = 0x0004 // Don't fix scum dot
	FlagHighResPrecalc         Flags = 0x0400 // Use more memory for better accuracy
	FlagLowResPrecalc          Flags = 0x0800 // Use less memory to minimize resources
	Flag8BitsDeviceLink        Flags = 0x0008 // Create 8 bits devicelinks
	FlagGuessDeviceClass       Flags = 0x0020 // Guess device class (for transform2devicelink)
	FlagKeepSequence           Flags = 0x0080 // Keep profile sequence for devicelink creation
	FlagForceCLUT              Flags = 0x0002 // Force CLUT optimization
	FlagCLUTPostLinearization  Flags = 0x0001 // create postlinearization tables if possible
	FlagCLUTPreLinearization   Flags = 0x0010 // create prelinearization tables if possible
	FlagNoDefaultResourceDef   Flags = 0x01000000
	FlagCopyAlpha              Flags = 0x04000000 // Alpha channels are copied on transform
)

// GridPoints encodes a CLUT grid size into transform flags.
func GridPoints(n uint32) Flags {
	return Flags((n & 0xFF) << 16)
}

// StageLoc says where a stage is inserted into or removed from a pipeline.
type StageLoc int

const (
	AtBegin StageLoc = iota
	AtEnd
)

// Perceptual black of ICC v4.
var PerceptualBlack = CIEXYZ{X: 0.00336, Y: 0.0034731, Z: 0.00287}
