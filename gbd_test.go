package golcms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// srgbBoundary fills a boundary with the Lab values of an sRGB cube.
func srgbBoundary(t *testing.T, ctx *Context) *GamutBoundary {
	t.Helper()
	x := newSRGBToLab(t, ctx)
	g, err := NewGamutBoundary(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })

	lab := make([]float64, 3)
	for r := 0; r < 256; r += 15 {
		for gr := 0; gr < 256; gr += 15 {
			for b := 0; b < 256; b += 15 {
				require.NoError(t, DoSlice(x, []uint8{uint8(r), uint8(gr), uint8(b)}, lab, 1))
				require.NoError(t, g.AddPoint(CIELab{L: lab[0], A: lab[1], B: lab[2]}))
			}
		}
	}
	require.NoError(t, g.Compute(0))
	return g
}

func TestGamutBoundary_CheckPoint(t *testing.T) {
	g := srgbBoundary(t, newTestContext(t))

	in, err := g.CheckPoint(CIELab{L: 50, A: 0, B: 0})
	require.NoError(t, err)
	assert.True(t, in)

	in, err = g.CheckPoint(CIELab{L: 50, A: 120, B: 120})
	require.NoError(t, err)
	assert.False(t, in)
}

func TestGamutBoundary_Closed(t *testing.T) {
	ctx := newTestContext(t)
	g, err := NewGamutBoundary(ctx)
	require.NoError(t, err)
	require.NoError(t, ctx.Close())
	assert.True(t, g.IsClosed())
	assert.ErrorIs(t, g.AddPoint(CIELab{L: 50}), ErrClosed)
	_, err = g.CheckPoint(CIELab{L: 50})
	assert.ErrorIs(t, err, ErrClosed)
}
