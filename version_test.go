package golcms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_Encoded(t *testing.T) {
	v := encodedVersion(2160)
	assert.Equal(t, "2.16.0", v.String())
	v = encodedVersion(2091)
	assert.Equal(t, "2.9.1", v.String())
}

func TestVersion_EngineAtLeastTwo(t *testing.T) {
	assert.EqualValues(t, 2, EngineVersion().Major())
	assert.EqualValues(t, 2, CompiledVersion().Major())
	assert.Equal(t, HeaderVersion, int(CompiledVersion().Major()*1000+CompiledVersion().Minor()*10+CompiledVersion().Patch()))
}

func TestVersion_RequireEngine(t *testing.T) {
	require.NoError(t, requireEngine("test", ">= 2.0"))
	err := requireEngine("test", ">= 99.0")
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "test needs engine >= 99.0")

	assert.Error(t, requireEngine("test", "not a constraint"))
}
