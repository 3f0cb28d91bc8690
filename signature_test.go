package golcms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignature_String(t *testing.T) {
	assert.Equal(t, "RGB", Signature(ColorSpaceRGB).String())
	assert.Equal(t, "mntr", ClassDisplay.String())
	assert.Equal(t, "A2B0", TagAToB0.String())
	assert.Equal(t, "mluc", TypeMultiLocalizedText.String())
	assert.Equal(t, "0000", Signature(0).String())
	assert.Equal(t, "a?b?", Signature(0x61016202).String())
}

func TestSignature_Parse(t *testing.T) {
	s, err := ParseSignature("XYZ")
	require.NoError(t, err)
	assert.Equal(t, Signature(ColorSpaceXYZ), s)

	s, err = ParseSignature("desc")
	require.NoError(t, err)
	assert.Equal(t, Signature(TagProfileDescription), s)

	_, err = ParseSignature("")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ParseSignature("toolong")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSignature_TagKinds(t *testing.T) {
	assert.NoError(t, checkTagKind(TagMediaWhitePoint, kindXYZ))
	assert.NoError(t, checkTagKind(TagCopyright, kindMLU))
	assert.ErrorIs(t, checkTagKind(TagCopyright, kindXYZ), ErrTagType)
	assert.ErrorIs(t, checkTagKind(TagSignature(0x7a7a7a7a), kindMLU), ErrTagType)
}

func TestSignature_RegisterTagKind(t *testing.T) {
	sig := TagSignature(0x7465737a) // 'tesz'
	text := []TagTypeSignature{TypeText, TypeMultiLocalizedText}
	release, err := registerTagKind(sig, text)
	require.NoError(t, err)
	assert.NoError(t, checkTagKind(sig, kindMLU))

	// The same declaration may repeat; other types wait for every release.
	again, err := registerTagKind(sig, text)
	require.NoError(t, err)
	_, err = registerTagKind(sig, []TagTypeSignature{TypeXYZ})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	release()
	release()
	assert.NoError(t, checkTagKind(sig, kindMLU))
	again()
	assert.ErrorIs(t, checkTagKind(sig, kindMLU), ErrTagType)

	xyz, err := registerTagKind(sig, []TagTypeSignature{TypeXYZ})
	require.NoError(t, err)
	assert.NoError(t, checkTagKind(sig, kindXYZ))
	xyz()

	mixed := TagSignature(0x7465737b)
	releaseMixed, err := registerTagKind(mixed, []TagTypeSignature{TypeText, TypeXYZ})
	require.NoError(t, err)
	defer releaseMixed()
	assert.ErrorIs(t, checkTagKind(mixed, kindMLU), ErrTagType)
	assert.ErrorIs(t, checkTagKind(mixed, kindXYZ), ErrTagType)

	// Built-in tags keep their kind.
	_, err = registerTagKind(TagCopyright, []TagTypeSignature{TypeXYZ})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NoError(t, checkTagKind(TagCopyright, kindMLU))
}

func TestIntent_StringAndParse(t *testing.T) {
	assert.Equal(t, "relative-colorimetric", IntentRelativeColorimetric.String())
	assert.Equal(t, "intent(99)", Intent(99).String())

	for i := range intentNames {
		got, err := ParseIntent(i.String())
		require.NoError(t, err)
		assert.Equal(t, i, got)
	}
	_, err := ParseIntent("vivid")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
