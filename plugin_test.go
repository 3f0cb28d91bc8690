package golcms

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Type 1000 is y = x^p0 + p1, clamped to [0, 1].
func testEvaluator(typ int32, params [10]float64, r float64) float64 {
	if typ < 0 {
		return math.Pow(math.Max(r-params[1], 0), 1/params[0])
	}
	return math.Min(math.Pow(r, params[0])+params[1], 1)
}

func newPluginContext(t *testing.T, plugins ...Plugin) *Context {
	t.Helper()
	ctx, err := NewContext(nil, plugins...)
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })
	return ctx
}

func TestPlugin_Base(t *testing.T) {
	b := (&ParametricCurvesPlugin{}).Base()
	assert.Equal(t, PluginMagicNumber, b.Magic)
	assert.Equal(t, PluginParametricCurve, b.Type)
	assert.Equal(t, uint32(HeaderVersion), b.ExpectedVersion)
	assert.Equal(t, "tagH", (&TagPlugin{}).Base().Type.String())
	assert.Equal(t, PluginMemHandler, (&MemHandlerPlugin{}).Base().Type)
	assert.Equal(t, PluginTagType, (&TagTypePlugin{}).Base().Type)
	assert.Equal(t, PluginInterpolation, (&InterpolationPlugin{}).Base().Type)
}

func TestPlugin_ParametricCurveAtCreation(t *testing.T) {
	ctx := newPluginContext(t, &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1000, ParameterCount: 2}},
		Evaluator: testEvaluator,
	})

	c, err := NewParametricToneCurve(ctx, 1000, 2, 0)
	require.NoError(t, err)
	defer c.Close()
	y, err := c.EvalFloat(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, y, 1e-4)
}

func TestPlugin_ParametricCurveRegisteredLater(t *testing.T) {
	ctx := newTestContext(t)
	_, err := NewParametricToneCurve(ctx, 1001, 3)
	require.Error(t, err)

	require.NoError(t, RegisterPlugins(ctx, &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1001, ParameterCount: 2}},
		Evaluator: testEvaluator,
	}))
	c, err := NewParametricToneCurve(ctx, 1001, 3, 0)
	require.NoError(t, err)
	defer c.Close()
	y, err := c.EvalFloat(0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.125, y, 1e-4)

	require.NoError(t, UnregisterPlugins(ctx))
	_, err = NewParametricToneCurve(ctx, 1001, 3, 0)
	assert.Error(t, err)
}

func TestPlugin_DupSharesPlugins(t *testing.T) {
	ctx := newPluginContext(t, &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1002, ParameterCount: 2}},
		Evaluator: testEvaluator,
	})
	d, err := ctx.Dup(nil)
	require.NoError(t, err)
	require.NoError(t, ctx.Close())
	defer d.Close()

	c, err := NewParametricToneCurve(d, 1002, 1, 0.5)
	require.NoError(t, err)
	defer c.Close()
	y, err := c.EvalFloat(0.9)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, y, 1e-4)
}

func TestPlugin_InvalidDescriptors(t *testing.T) {
	_, err := NewContext(nil, &ParametricCurvesPlugin{Evaluator: testEvaluator})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, &ParametricCurvesPlugin{Functions: []ParametricFunction{{Type: 1003, ParameterCount: 1}}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1003, ParameterCount: 11}},
		Evaluator: testEvaluator,
	})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, &TagPlugin{Signature: 0x70727631})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, &TagPlugin{Signature: 0x70727631, SupportedTypes: []TagTypeSignature{TypeText}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NoError(t, RegisterPlugins(nil))
}

func TestPlugin_PrivateTag(t *testing.T) {
	const priv TagSignature = 0x70727632 // 'prv2'
	ctx := newPluginContext(t, &TagPlugin{
		Signature:      priv,
		ElemCount:      1,
		SupportedTypes: []TagTypeSignature{TypeMultiLocalizedText},
	})

	p := newPlaceholder(t, ctx)
	require.NoError(t, p.SetDeviceClass(ClassDisplay))
	require.NoError(t, p.SetColorSpace(ColorSpaceRGB))
	require.NoError(t, p.SetPCS(ColorSpaceXYZ))
	require.NoError(t, p.SetVersion(4.3))

	m, err := NewMLU(ctx, 1)
	require.NoError(t, err)
	defer m.Close()
	require.NoError(t, m.SetASCII("en", "US", "private note"))
	require.NoError(t, p.WriteMLUTag(priv, m))

	data, err := p.Bytes()
	require.NoError(t, err)
	q, err := OpenProfileMem(ctx, data)
	require.NoError(t, err)
	defer q.Close()

	v, err := q.ReadMLUTag(priv)
	require.NoError(t, err)
	s, err := v.ASCII("en", "US")
	require.NoError(t, err)
	assert.Equal(t, "private note", s)

	_, err = q.ReadXYZTag(priv)
	assert.ErrorIs(t, err, ErrTagType)
}

func TestPlugin_ParametricTypeClaimedByOnePlugin(t *testing.T) {
	first := &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1004, ParameterCount: 2}},
		Evaluator: testEvaluator,
	}
	ctx, err := NewContext(nil, first)
	require.NoError(t, err)

	// The same descriptor may serve any number of contexts.
	newPluginContext(t, first)

	other := &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1004, ParameterCount: 2}},
		Evaluator: func(int32, [10]float64, float64) float64 { return 0 },
	}
	_, err = NewContext(nil, other)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, RegisterPlugins(newTestContext(t), other), ErrInvalidArgument)

	require.NoError(t, ctx.Close())
	_, err = NewContext(nil, other)
	assert.ErrorIs(t, err, ErrInvalidArgument, "still claimed by the second context")
}

func TestPlugin_ParametricTypeFreedOnClose(t *testing.T) {
	first := &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1005, ParameterCount: 2}},
		Evaluator: testEvaluator,
	}
	ctx, err := NewContext(nil, first)
	require.NoError(t, err)
	require.NoError(t, ctx.Close())

	half := func(int32, [10]float64, float64) float64 { return 0.5 }
	ctx = newPluginContext(t, &ParametricCurvesPlugin{
		Functions: []ParametricFunction{{Type: 1005, ParameterCount: 1}},
		Evaluator: half,
	})
	c, err := NewParametricToneCurve(ctx, 1005, 1)
	require.NoError(t, err)
	defer c.Close()
	y, err := c.EvalFloat(0.9)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, y, 1e-4)
}

func TestPlugin_PrivateTagTypesConflict(t *testing.T) {
	const priv TagSignature = 0x70727633 // 'prv3'
	newPluginContext(t, &TagPlugin{Signature: priv, ElemCount: 1, SupportedTypes: []TagTypeSignature{TypeText}})

	_, err := NewContext(nil, &TagPlugin{Signature: priv, ElemCount: 1, SupportedTypes: []TagTypeSignature{TypeXYZ}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	newPluginContext(t, &TagPlugin{Signature: priv, ElemCount: 1, SupportedTypes: []TagTypeSignature{TypeText}})
}

func TestPlugin_MemHandler(t *testing.T) {
	mem := &CountingMemHandler{}
	ctx, err := NewContext(nil, &MemHandlerPlugin{Handler: mem})
	require.NoError(t, err)

	p, err := NewSRGBProfile(ctx)
	require.NoError(t, err)
	before := mem.Allocs()
	assert.Positive(t, before)
	_, err = p.Bytes()
	require.NoError(t, err)
	assert.Greater(t, mem.Allocs(), before)
	require.NoError(t, p.Close())

	assert.ErrorIs(t, RegisterPlugins(ctx, &MemHandlerPlugin{Handler: mem}), ErrInvalidArgument)
	assert.ErrorIs(t, RegisterPlugins(nil, &MemHandlerPlugin{Handler: mem}), ErrInvalidArgument)

	require.NoError(t, ctx.Close())
	assert.Equal(t, mem.Allocs(), mem.Frees())
	assert.Zero(t, mem.Live())
}

func TestPlugin_MemHandlerInvalid(t *testing.T) {
	_, err := NewContext(nil, &MemHandlerPlugin{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, &MemHandlerPlugin{Handler: &CountingMemHandler{}}, &MemHandlerPlugin{Handler: &CountingMemHandler{}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// counterType stores an int as four big-endian bytes.
type counterType struct{}

func (counterType) Decode(body []byte) (any, error) {
	if len(body) != 4 {
		return nil, fmt.Errorf("counter needs 4 bytes, got %d", len(body))
	}
	return int(binary.BigEndian.Uint32(body)), nil
}

func (counterType) Encode(v any) ([]byte, error) {
	n, ok := v.(int)
	if !ok {
		return nil, fmt.Errorf("counter holds an int, not %T", v)
	}
	return binary.BigEndian.AppendUint32(nil, uint32(n)), nil
}

func TestPlugin_CustomTagType(t *testing.T) {
	const (
		cntType TagTypeSignature = 0x636E7472 // 'cntr'
		cntTag  TagSignature     = 0x636E7431 // 'cnt1'
	)
	ctx := newPluginContext(t,
		&TagTypePlugin{Signature: cntType, Handler: counterType{}},
		&TagPlugin{Signature: cntTag, ElemCount: 1, SupportedTypes: []TagTypeSignature{cntType}},
	)

	p := newPlaceholder(t, ctx)
	require.NoError(t, p.SetDeviceClass(ClassDisplay))
	require.NoError(t, p.SetColorSpace(ColorSpaceRGB))
	require.NoError(t, p.SetPCS(ColorSpaceXYZ))
	require.NoError(t, p.SetVersion(4.3))
	require.NoError(t, p.WriteCustomTag(cntTag, 42))

	v, err := p.ReadCustomTag(cntTag)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	data, err := p.Bytes()
	require.NoError(t, err)
	q, err := OpenProfileMem(ctx, data)
	require.NoError(t, err)
	defer q.Close()

	raw, err := q.ReadRawTag(cntTag)
	require.NoError(t, err)
	assert.Equal(t, []byte{'c', 'n', 't', 'r', 0, 0, 0, 0, 0, 0, 0, 42}, raw)

	q2, err := OpenProfileMem(ctx, data)
	require.NoError(t, err)
	defer q2.Close()
	v, err = q2.ReadCustomTag(cntTag)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	_, err = q2.ReadMLUTag(cntTag)
	assert.ErrorIs(t, err, ErrTagType)

	require.NoError(t, p.WriteCustomTag(cntTag, "not a number"))
	_, err = p.Bytes()
	assert.Error(t, err)
}

func TestPlugin_CustomTagTypeInvalid(t *testing.T) {
	const cntType TagTypeSignature = 0x636E7473 // 'cnts'
	_, err := NewContext(nil, &TagTypePlugin{Signature: TypeText, Handler: counterType{}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, &TagTypePlugin{Signature: cntType})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	newPluginContext(t, &TagTypePlugin{Signature: cntType, Handler: counterType{}})
	_, err = NewContext(nil, &TagTypePlugin{Signature: cntType, Handler: counterType{}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

// floorInterpolator returns the table entry at or below the input.
type floorInterpolator struct {
	calls atomic.Int32
}

func (f *floorInterpolator) Handles(in, out int, isFloat bool) bool {
	return in == 1 && out == 1 && !isFloat
}

func (f *floorInterpolator) Eval16(p *InterpParams, in, out []uint16) {
	f.calls.Add(1)
	out[0] = p.Table16[int(in[0])*int(p.Domain[0])/0xFFFF]
}

func (f *floorInterpolator) EvalFloat(p *InterpParams, in, out []float32) {}

func TestPlugin_Interpolation(t *testing.T) {
	table := []uint16{0, 0x8000, 0xFFFF}

	fi := &floorInterpolator{}
	ctx := newPluginContext(t, &InterpolationPlugin{Interpolator: fi})
	c, err := NewTabulatedToneCurve16(ctx, table)
	require.NoError(t, err)
	defer c.Close()
	for in, want := range map[uint16]uint16{0x7000: 0, 0xC000: 0x8000, 0xFFFF: 0xFFFF} {
		got, err := c.Eval16(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %#x", in)
	}
	assert.Positive(t, fi.calls.Load())

	linear, err := NewTabulatedToneCurve16(newTestContext(t), table)
	require.NoError(t, err)
	defer linear.Close()
	got, err := linear.Eval16(0x7000)
	require.NoError(t, err)
	assert.InDelta(t, 0x7000, got, 2)

	_, err = NewContext(nil, &InterpolationPlugin{Interpolator: &floorInterpolator{}})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewContext(nil, &InterpolationPlugin{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
