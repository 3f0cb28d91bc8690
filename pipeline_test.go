package golcms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_InsertTransfersOwnership(t *testing.T) {
	ctx := newTestContext(t)
	p, err := NewPipeline(ctx, 3, 3)
	require.NoError(t, err)

	s, err := NewMatrixStage(ctx, 3, 3, []float64{
		0, 0, 1,
		0, 1, 0,
		1, 0, 0,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, p.InsertStage(AtEnd, s))

	// A stage can only live in one pipeline.
	other, err := NewPipeline(ctx, 3, 3)
	require.NoError(t, err)
	defer other.Close()
	assert.ErrorIs(t, other.InsertStage(AtEnd, s), ErrInvalidArgument)

	n, err := p.StageCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	typ, err := s.Type()
	require.NoError(t, err)
	assert.Equal(t, StageMatrix, typ)

	out, err := p.EvalFloat([]float32{0.1, 0.2, 0.3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.3, 0.2, 0.1}, out, 1e-6)

	// Closing the pipeline frees the stage; the stage wrapper just goes stale.
	require.NoError(t, p.Close())
	assert.True(t, s.IsClosed())
	_, err = s.Type()
	assert.ErrorIs(t, err, ErrClosed)
	assert.NoError(t, s.Close())
}

func TestPipeline_UnlinkReturnsOwnedStage(t *testing.T) {
	ctx := newTestContext(t)
	p, err := NewPipeline(ctx, 3, 3)
	require.NoError(t, err)
	defer p.Close()

	id, err := NewIdentityStage(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, p.InsertStage(AtBegin, id))

	views, err := p.Stages()
	require.NoError(t, err)
	require.Len(t, views, 1)

	s, err := p.UnlinkStage(AtBegin)
	require.NoError(t, err)
	defer s.Close()
	assert.True(t, id.IsClosed())
	assert.True(t, views[0].IsClosed())

	typ, err := s.Type()
	require.NoError(t, err)
	assert.Equal(t, StageIdentity, typ)
	n, err := p.StageCount()
	require.NoError(t, err)
	assert.Zero(t, n)

	// The unlinked stage survives its old pipeline.
	require.NoError(t, p.Close())
	assert.False(t, s.IsClosed())

	_, err = p.UnlinkStage(AtEnd)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestPipeline_UnlinkEmpty(t *testing.T) {
	p, err := NewPipeline(newTestContext(t), 1, 1)
	require.NoError(t, err)
	defer p.Close()
	_, err = p.UnlinkStage(AtEnd)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPipeline_CurvesAndCat(t *testing.T) {
	ctx := newTestContext(t)
	g, err := NewGammaToneCurve(ctx, 2.0)
	require.NoError(t, err)
	defer g.Close()

	curves, err := NewToneCurvesStage(ctx, []*ToneCurve{g, g, g})
	require.NoError(t, err)
	a, err := NewPipeline(ctx, 3, 3)
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.InsertStage(AtEnd, curves))

	b, err := a.Dup()
	require.NoError(t, err)
	defer b.Close()
	require.NoError(t, a.Cat(b))

	n, err := a.StageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	out, err := a.EvalFloat([]float32{0.5, 0.5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.0625, out[0], 1e-3)

	out16, err := a.Eval16([]uint16{0xFFFF, 0, 0xFFFF})
	require.NoError(t, err)
	assert.Equal(t, []uint16{0xFFFF, 0, 0xFFFF}, out16)

	_, err = a.Eval16([]uint16{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, a.Cat(nil), ErrInvalidArgument)
}

func TestPipeline_CatWithItself(t *testing.T) {
	ctx := newTestContext(t)
	p, err := NewPipeline(ctx, 3, 3)
	require.NoError(t, err)
	defer p.Close()
	s, err := NewMatrixStage(ctx, 3, 3, []float64{
		0.5, 0, 0,
		0, 0.5, 0,
		0, 0, 0.5,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, p.InsertStage(AtEnd, s))

	require.NoError(t, p.Cat(p))
	n, err := p.StageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	out, err := p.EvalFloat([]float32{0.8, 0.4, 0.2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.2, 0.1, 0.05}, out, 1e-6)
}

func TestPipeline_CatTwoViewsOfOneTag(t *testing.T) {
	ctx := newTestContext(t)
	lab, err := NewLab4Profile(ctx, nil)
	require.NoError(t, err)
	defer lab.Close()

	a, err := lab.ReadPipelineTag(TagAToB0)
	require.NoError(t, err)
	b, err := lab.ReadPipelineTag(TagAToB0)
	require.NoError(t, err)
	before, err := a.StageCount()
	require.NoError(t, err)
	require.NotZero(t, before)

	require.NoError(t, a.Cat(b))
	after, err := b.StageCount()
	require.NoError(t, err)
	assert.Equal(t, 2*before, after)
}

func TestPipeline_EvalReverseFloat(t *testing.T) {
	ctx := newTestContext(t)
	p, err := NewPipeline(ctx, 3, 3)
	require.NoError(t, err)
	defer p.Close()
	s, err := NewMatrixStage(ctx, 3, 3, []float64{
		0.5, 0, 0,
		0, 0.5, 0,
		0, 0, 0.5,
	}, []float64{0.1, 0.1, 0.1})
	require.NoError(t, err)
	require.NoError(t, p.InsertStage(AtEnd, s))

	in, err := p.EvalReverseFloat([]float32{0.3, 0.35, 0.4}, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float32{0.4, 0.5, 0.6}, in, 1e-3)

	_, err = p.EvalReverseFloat([]float32{0.3}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStage_CLut(t *testing.T) {
	ctx := newTestContext(t)
	// 2 grid points, 1 input, 1 output: an inverting ramp.
	s, err := NewCLut16Stage(ctx, 2, 1, 1, []uint16{0xFFFF, 0})
	require.NoError(t, err)
	in, _ := s.InputChannels()
	out, _ := s.OutputChannels()
	assert.Equal(t, 1, in)
	assert.Equal(t, 1, out)

	p, err := NewPipeline(ctx, 1, 1)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.InsertStage(AtEnd, s))
	v, err := p.EvalFloat([]float32{0.25})
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v[0], 1e-3)

	f, err := NewCLutFloatStage(ctx, 3, 2, 1, nil)
	require.NoError(t, err)
	defer f.Close()
	typ, err := f.Type()
	require.NoError(t, err)
	assert.Equal(t, StageCLut, typ)

	_, err = NewCLut16Stage(ctx, 2, 1, 1, []uint16{1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCLutFloatStage(ctx, 1, 1, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewCLut16Stage(ctx, 2, MaxChannels+1, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestStage_DupAndValidation(t *testing.T) {
	ctx := newTestContext(t)
	s, err := NewIdentityStage(ctx, 4)
	require.NoError(t, err)
	d, err := s.Dup()
	require.NoError(t, err)
	require.NoError(t, s.Close())
	n, err := d.OutputChannels()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, d.Close())

	_, err = NewIdentityStage(ctx, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewMatrixStage(ctx, 2, 2, []float64{1, 0, 0}, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewToneCurvesStage(ctx, []*ToneCurve{nil})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, "matf", StageMatrix.String())
}

func TestPipeline_ReadFromProfile(t *testing.T) {
	ctx := newTestContext(t)
	lab, err := NewLab4Profile(ctx, nil)
	require.NoError(t, err)

	lut, err := lab.ReadPipelineTag(TagAToB0)
	require.NoError(t, err)
	in, err := lut.InputChannels()
	require.NoError(t, err)
	assert.Equal(t, 3, in)
	stages, err := lut.Stages()
	require.NoError(t, err)
	require.NotEmpty(t, stages)

	owned, err := lut.Dup()
	require.NoError(t, err)
	defer owned.Close()

	require.NoError(t, lab.Close())
	assert.True(t, lut.IsClosed())
	assert.True(t, stages[0].IsClosed())
	assert.False(t, owned.IsClosed())
}
