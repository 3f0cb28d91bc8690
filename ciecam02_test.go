package golcms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCAM(t *testing.T, ctx *Context) *CIECAM02 {
	t.Helper()
	d50 := D50XYZ()
	m, err := NewCIECAM02(ctx, ViewingConditions{
		WhitePoint: CIEXYZ{X: d50.X * 100, Y: d50.Y * 100, Z: d50.Z * 100},
		Yb:         20,
		La:         20,
		Surround:   SurroundAverage,
		D:          1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestCIECAM02_WhiteIsFullLightness(t *testing.T) {
	m := newTestCAM(t, newTestContext(t))
	d50 := D50XYZ()
	jch, err := m.Forward(CIEXYZ{X: d50.X * 100, Y: d50.Y * 100, Z: d50.Z * 100})
	require.NoError(t, err)
	assert.InDelta(t, 100, jch.J, 0.1)
	assert.InDelta(t, 0, jch.C, 1)
}

func TestCIECAM02_ForwardReverse(t *testing.T) {
	m := newTestCAM(t, newTestContext(t))
	for _, v := range []CIEXYZ{
		{X: 19.01, Y: 20, Z: 21.78},
		{X: 57.06, Y: 43.06, Z: 31.96},
		{X: 3.53, Y: 6.56, Z: 2.14},
	} {
		jch, err := m.Forward(v)
		require.NoError(t, err)
		back, err := m.Reverse(jch)
		require.NoError(t, err)
		assert.InDelta(t, v.X, back.X, 0.01)
		assert.InDelta(t, v.Y, back.Y, 0.01)
		assert.InDelta(t, v.Z, back.Z, 0.01)
	}
}

func TestCIECAM02_ComputedDegreeOfAdaptation(t *testing.T) {
	d50 := D50XYZ()
	m, err := NewCIECAM02(newTestContext(t), ViewingConditions{
		WhitePoint: CIEXYZ{X: d50.X * 100, Y: d50.Y * 100, Z: d50.Z * 100},
		Yb:         20,
		La:         64,
		Surround:   SurroundDim,
		D:          DCalculate,
	})
	require.NoError(t, err)
	defer m.Close()
	_, err = m.Forward(CIEXYZ{X: 19.01, Y: 20, Z: 21.78})
	assert.NoError(t, err)
}

func TestCIECAM02_InvalidSurround(t *testing.T) {
	_, err := NewCIECAM02(newTestContext(t), ViewingConditions{Surround: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCIECAM02(newTestContext(t), ViewingConditions{Surround: SurroundCutsheet + 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCIECAM02_Closed(t *testing.T) {
	m := newTestCAM(t, newTestContext(t))
	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())
	_, err := m.Forward(CIEXYZ{})
	assert.ErrorIs(t, err, ErrClosed)
}
