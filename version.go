package golcms

/*
#include "lcms_bridge.h"
*/
import "C"

import (
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"
)

var engineVersion = sync.OnceValue(func() *semver.Version {
	return encodedVersion(int(C.cmsGetEncodedCMMversion()))
})

// encodedVersion turns the engine's encoding (2160 for 2.16) into a version.
func encodedVersion(v int) *semver.Version {
	return semver.New(uint64(v/1000), uint64(v%1000/10), uint64(v%10), "", "")
}

// EngineVersion returns the version of the engine linked at run time.
func EngineVersion() *semver.Version {
	return engineVersion()
}

// CompiledVersion returns the version of the engine headers golcms was built
// against.
func CompiledVersion() *semver.Version {
	return encodedVersion(HeaderVersion)
}

// requireEngine fails with ErrUnsupported unless both the headers and the
// linked engine satisfy constraint.
func requireEngine(op, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return err
	}
	for _, v := range []*semver.Version{CompiledVersion(), EngineVersion()} {
		if !c.Check(v) {
			return fmt.Errorf("%w: %s needs engine %s, have %s", ErrUnsupported, op, constraint, v)
		}
	}
	return nil
}
