package framegraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/framegraphgo/internal/pool"
	"github.com/vk/framegraphgo/internal/rhi"
)

func newTestGraph(opts ...Option) (*Graph, *rhi.RecordingContext, *pool.Pool) {
	rec := rhi.NewRecordingContext()
	p := pool.New()
	return New(rec, p, opts...), rec, p
}

func colorDesc() TextureDesc {
	return TextureDesc{
		Width:  64,
		Height: 64,
		Format: rhi.FormatRGBA8,
		Usage:  rhi.UsageRenderTarget | rhi.UsageShaderResource,
	}
}

func noopPass(ctx context.Context, cmd rhi.CommandContext, res Resources) {}

func TestDeclarationsReturnSequentialHandles(t *testing.T) {
	g, _, _ := newTestGraph()

	a, err := g.CreateTexture(colorDesc(), "a")
	require.NoError(t, err)
	b, err := g.CreateBuffer(BufferDesc{ElementSize: 4, ElementCount: 16, Usage: rhi.UsageShaderResource}, "b")
	require.NoError(t, err)

	assert.Equal(t, Handle(0), a)
	assert.Equal(t, Handle(1), b)
}

func TestRegisterExternalTextureRequiresPhysical(t *testing.T) {
	g, _, _ := newTestGraph()

	_, err := g.RegisterExternalTexture(nil, "backbuffer")
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestViewCreation(t *testing.T) {
	t.Run("rejects missing usage flag", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateTexture(TextureDesc{Width: 8, Height: 8, Format: rhi.FormatRGBA8, Usage: rhi.UsageRenderTarget}, "rt_only")
		require.NoError(t, err)

		_, err = g.CreateTextureSRV(h)
		assert.ErrorIs(t, err, ErrCapabilityMismatch)
		_, err = g.CreateTextureUAV(h)
		assert.ErrorIs(t, err, ErrCapabilityMismatch)
	})

	t.Run("rejects kind mismatch", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateBuffer(BufferDesc{ElementSize: 4, ElementCount: 1, Usage: rhi.UsageShaderResource}, "buf")
		require.NoError(t, err)

		_, err = g.CreateTextureSRV(h)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("rejects out-of-range handle", func(t *testing.T) {
		g, _, _ := newTestGraph()
		_, err := g.CreateBufferSRV(Handle(7))
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("accepts matching resource", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateTexture(colorDesc(), "ok")
		require.NoError(t, err)

		v, err := g.CreateTextureSRV(h)
		require.NoError(t, err)
		assert.Equal(t, ViewHandle(0), v)
	})
}

func TestAddPassValidation(t *testing.T) {
	t.Run("rejects nil callback", func(t *testing.T) {
		g, _, _ := newTestGraph()
		err := g.AddPass(context.Background(), "nil_fn", nil, 0, nil)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("rejects undeclared handle", func(t *testing.T) {
		g, _, _ := newTestGraph()
		err := g.AddPass(context.Background(), "dangling", []Param{ReadTexture(Handle(3))}, 0, noopPass)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("rejects compute pass with render target", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateTexture(colorDesc(), "rt")
		require.NoError(t, err)

		err = g.AddPass(context.Background(), "bad_compute", []Param{RenderTarget(h)}, Compute, noopPass)
		assert.ErrorIs(t, err, ErrInvalidComputePass)
	})

	t.Run("rejects render target on buffer", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateBuffer(BufferDesc{ElementSize: 4, ElementCount: 1, Usage: rhi.UsageShaderResource}, "buf")
		require.NoError(t, err)

		err = g.AddPass(context.Background(), "buf_rt", []Param{RenderTarget(h)}, 0, noopPass)
		assert.ErrorIs(t, err, ErrCapabilityMismatch)
	})

	t.Run("rejects render target without usage flag", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateTexture(TextureDesc{Width: 8, Height: 8, Format: rhi.FormatRGBA8, Usage: rhi.UsageShaderResource}, "srv_only")
		require.NoError(t, err)

		err = g.AddPass(context.Background(), "no_rt_usage", []Param{RenderTarget(h)}, 0, noopPass)
		assert.ErrorIs(t, err, ErrCapabilityMismatch)
	})

	t.Run("rejects SRV bound for write", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateTexture(colorDesc(), "tex")
		require.NoError(t, err)
		v, err := g.CreateTextureSRV(h)
		require.NoError(t, err)

		err = g.AddPass(context.Background(), "srv_write", []Param{ViewParam(v, AccessWrite)}, 0, noopPass)
		assert.ErrorIs(t, err, ErrCapabilityMismatch)
	})
}

func TestQueueTextureExtractionValidation(t *testing.T) {
	t.Run("rejects nil output slot", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateTexture(colorDesc(), "tex")
		require.NoError(t, err)

		err = g.QueueTextureExtraction(h, nil, true)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})

	t.Run("rejects buffers", func(t *testing.T) {
		g, _, _ := newTestGraph()
		h, err := g.CreateBuffer(BufferDesc{ElementSize: 4, ElementCount: 1, Usage: rhi.UsageShaderResource}, "buf")
		require.NoError(t, err)

		err = g.QueueTextureExtraction(h, &ExtractedResource{}, true)
		assert.ErrorIs(t, err, ErrInvalidHandle)
	})
}

func TestGraphIsConsumedByExecute(t *testing.T) {
	g, _, _ := newTestGraph()
	h, err := g.CreateTexture(colorDesc(), "tex")
	require.NoError(t, err)
	require.NoError(t, g.AddPass(context.Background(), "clear", []Param{RenderTarget(h)}, 0, noopPass))
	require.NoError(t, g.Execute(context.Background()))

	_, err = g.CreateTexture(colorDesc(), "late")
	assert.ErrorIs(t, err, ErrUseAfterExecute)

	_, err = g.CreateTextureSRV(h)
	assert.ErrorIs(t, err, ErrUseAfterExecute)

	err = g.AddPass(context.Background(), "late", []Param{ReadTexture(h)}, 0, noopPass)
	assert.ErrorIs(t, err, ErrUseAfterExecute)

	err = g.QueueTextureExtraction(h, &ExtractedResource{}, true)
	assert.ErrorIs(t, err, ErrUseAfterExecute)

	_, err = g.PushScope("late")
	assert.ErrorIs(t, err, ErrUseAfterExecute)

	err = g.Execute(context.Background())
	assert.ErrorIs(t, err, ErrUseAfterExecute)
}

func TestReportSummarizesPasses(t *testing.T) {
	g, _, _ := newTestGraph()
	h, err := g.CreateTexture(colorDesc(), "tex")
	require.NoError(t, err)

	err = g.Scoped("frame", func() error {
		return g.AddPass(context.Background(), "clear", []Param{RenderTarget(h)}, 0, noopPass)
	})
	require.NoError(t, err)
	require.NoError(t, g.Execute(context.Background()))

	rep := g.Report()
	require.Len(t, rep.Passes, 1)
	assert.Equal(t, "clear", rep.Passes[0].Name)
	assert.Equal(t, "frame", rep.Passes[0].Scope)
	assert.False(t, rep.Passes[0].Compute)
	assert.Equal(t, 1, rep.Passes[0].Params)
	assert.Equal(t, 1, rep.Resources)
	assert.Equal(t, 0, rep.ExternalResources)
}
