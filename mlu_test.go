package golcms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMLU_ASCII(t *testing.T) {
	m, err := NewMLU(newTestContext(t), 2)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.SetASCII("en", "US", "colour"))
	require.NoError(t, m.SetASCII("en", "GB", "colour (GB)"))

	s, err := m.ASCII("en", "GB")
	require.NoError(t, err)
	assert.Equal(t, "colour (GB)", s)
	s, err = m.ASCII("en", "US")
	require.NoError(t, err)
	assert.Equal(t, "colour", s)

	n, err := m.TranslationsCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	lang, country, err := m.TranslationCodes(1)
	require.NoError(t, err)
	assert.Equal(t, "en", lang)
	assert.Equal(t, "GB", country)
	_, _, err = m.TranslationCodes(2)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMLU_Wide(t *testing.T) {
	m, err := NewMLU(newTestContext(t), 1)
	require.NoError(t, err)
	defer m.Close()

	text := "Farbraum für Ölgemälde ✓"
	require.NoError(t, m.SetWide("de", "DE", text))
	s, err := m.Wide("de", "DE")
	require.NoError(t, err)
	assert.Equal(t, text, s)

	// Each rune becomes a single byte in the 7-bit rendition.
	ascii, err := m.ASCII("de", "DE")
	require.NoError(t, err)
	assert.Len(t, ascii, len([]rune(text)))
}

func TestMLU_FallbackAndTranslation(t *testing.T) {
	m, err := NewMLU(newTestContext(t), 2)
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.SetASCII("fr", "FR", "couleur"))

	s, err := m.ASCII("es", "ES")
	require.NoError(t, err)
	assert.Equal(t, "couleur", s)

	lang, country, err := m.Translation("es", "ES")
	require.NoError(t, err)
	assert.Equal(t, "fr", lang)
	assert.Equal(t, "FR", country)
}

func TestMLU_EmptyCodesAndEmptyMLU(t *testing.T) {
	m, err := NewMLU(newTestContext(t), 0)
	require.NoError(t, err)
	defer m.Close()

	s, err := m.ASCII("", "")
	require.NoError(t, err)
	assert.Empty(t, s)

	require.NoError(t, m.SetASCII("", "", "no language"))
	s, err = m.ASCII("en", "US")
	require.NoError(t, err)
	assert.Equal(t, "no language", s)
}

func TestMLU_SetExistingTranslationFails(t *testing.T) {
	m, err := NewMLU(newTestContext(t), 1)
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.SetASCII("en", "US", "first"))
	assert.ErrorIs(t, m.SetASCII("en", "US", "second"), ErrFailed)
}

func TestMLU_InvalidCodes(t *testing.T) {
	m, err := NewMLU(newTestContext(t), 1)
	require.NoError(t, err)
	defer m.Close()

	assert.ErrorIs(t, m.SetASCII("english", "US", "x"), ErrInvalidArgument)
	assert.ErrorIs(t, m.SetASCII("en", "U1", "x"), ErrInvalidArgument)
	assert.ErrorIs(t, m.SetWide("e", "", "x"), ErrInvalidArgument)
	_, err = NewMLU(nil, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMLU_Dup(t *testing.T) {
	m, err := NewMLU(newTestContext(t), 1)
	require.NoError(t, err)
	require.NoError(t, m.SetASCII("en", "US", "original"))

	d, err := m.Dup()
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, m.SetASCII("fr", "FR", "copie"))
	require.NoError(t, m.Close())

	n, err := d.TranslationsCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	s, err := d.ASCII("en", "US")
	require.NoError(t, err)
	assert.Equal(t, "original", s)

	_, err = m.ASCII("en", "US")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, m.SetASCII("en", "US", "x"), ErrClosed)
}
