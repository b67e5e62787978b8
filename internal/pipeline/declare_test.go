package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/pool"
	"github.com/vk/framegraphgo/internal/rhi"
)

// markerRunner records each invocation so tests can see which passes ran.
func markerRunner(invoked *[]string) RunnerFactory {
	return func(spec PassSpec) (framegraph.ExecuteFunc, error) {
		return func(ctx context.Context, cmd rhi.CommandContext, res framegraph.Resources) {
			*invoked = append(*invoked, spec.Name)
		}, nil
	}
}

func testRegistry(invoked *[]string) *Registry {
	reg := NewRegistry()
	reg.Register("marker", markerRunner(invoked))
	return reg
}

func newDeclareGraph() (*framegraph.Graph, *rhi.RecordingContext) {
	rec := rhi.NewRecordingContext()
	return framegraph.New(rec, pool.New()), rec
}

func TestDeclareEndToEnd(t *testing.T) {
	model := &Model{
		Textures: []*Texture{
			{Name: "color", Width: 64, Height: 64, Format: "rgba8", Usage: []string{"render_target", "shader_resource"}},
		},
		Buffers: []*Buffer{
			{Name: "particles", ElementSize: 16, ElementCount: 256},
		},
		Externals: []*External{
			{Name: "backbuffer", Width: 64, Height: 64, Format: "rgba8", Usage: []string{"render_target"}},
		},
		Passes: []*Pass{
			{
				Name:   "scene",
				Runner: "marker",
				Params: []*ParamSpec{{Resource: "color", Access: "write", Binding: "render_target"}},
			},
			{
				Name:   "sim",
				Runner: "marker",
				Params: []*ParamSpec{{Resource: "particles", Access: "read_write"}},
			},
		},
		Extracts: []*Extract{
			{Texture: "color", TransitionToRead: true},
		},
	}

	var invoked []string
	g, _ := newDeclareGraph()
	outs, err := Declare(context.Background(), model, g, testRegistry(&invoked))
	require.NoError(t, err)
	require.NoError(t, g.Execute(context.Background()))

	assert.Equal(t, []string{"scene", "sim"}, invoked)

	require.Contains(t, outs, "color")
	require.NotNil(t, outs["color"].Resource)
	assert.Equal(t, rhi.StateReadable, outs["color"].Resource.State())

	rep := g.Report()
	assert.Equal(t, 3, rep.Resources)
	assert.Equal(t, 1, rep.ExternalResources)
}

func TestDeclareNestsScopeSegments(t *testing.T) {
	model := &Model{
		Textures: []*Texture{
			{Name: "color", Width: 8, Height: 8, Format: "rgba8", Usage: []string{"render_target"}},
		},
		Passes: []*Pass{
			{
				Name:   "bloom",
				Scope:  "post/bloom",
				Runner: "marker",
				Params: []*ParamSpec{{Resource: "color", Access: "write", Binding: "render_target"}},
			},
		},
	}

	var invoked []string
	g, _ := newDeclareGraph()
	_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
	require.NoError(t, err)
	require.NoError(t, g.Execute(context.Background()))

	rep := g.Report()
	require.Len(t, rep.Passes, 1)
	assert.Equal(t, "post/bloom", rep.Passes[0].Scope)
}

func TestDeclareComputeFlag(t *testing.T) {
	model := &Model{
		Textures: []*Texture{
			{Name: "out", Width: 8, Height: 8, Format: "r32f", Usage: []string{"uav"}},
		},
		Passes: []*Pass{
			{
				Name:    "blur",
				Compute: true,
				Runner:  "marker",
				Params:  []*ParamSpec{{Resource: "out", Access: "write"}},
			},
		},
	}

	var invoked []string
	g, _ := newDeclareGraph()
	_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
	require.NoError(t, err)
	require.NoError(t, g.Execute(context.Background()))

	rep := g.Report()
	require.Len(t, rep.Passes, 1)
	assert.True(t, rep.Passes[0].Compute)
}

func TestDeclareErrors(t *testing.T) {
	var invoked []string

	t.Run("unknown runner", func(t *testing.T) {
		model := &Model{Passes: []*Pass{{Name: "p", Runner: "nope"}}}
		g, _ := newDeclareGraph()
		_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown runner")
	})

	t.Run("unknown param resource", func(t *testing.T) {
		model := &Model{Passes: []*Pass{{
			Name:   "p",
			Runner: "marker",
			Params: []*ParamSpec{{Resource: "ghost", Access: "read"}},
		}}}
		g, _ := newDeclareGraph()
		_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown resource")
	})

	t.Run("unknown extract resource", func(t *testing.T) {
		model := &Model{Extracts: []*Extract{{Texture: "ghost"}}}
		g, _ := newDeclareGraph()
		_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown resource")
	})

	t.Run("bad usage flag", func(t *testing.T) {
		model := &Model{Textures: []*Texture{{Name: "t", Width: 1, Height: 1, Format: "rgba8", Usage: []string{"bogus"}}}}
		g, _ := newDeclareGraph()
		_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown usage flag")
	})

	t.Run("bad access mode", func(t *testing.T) {
		model := &Model{
			Textures: []*Texture{{Name: "t", Width: 1, Height: 1, Format: "rgba8"}},
			Passes: []*Pass{{
				Name:   "p",
				Runner: "marker",
				Params: []*ParamSpec{{Resource: "t", Access: "peek"}},
			}},
		}
		g, _ := newDeclareGraph()
		_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown access mode")
	})

	t.Run("bad binding kind", func(t *testing.T) {
		model := &Model{
			Textures: []*Texture{{Name: "t", Width: 1, Height: 1, Format: "rgba8"}},
			Passes: []*Pass{{
				Name:   "p",
				Runner: "marker",
				Params: []*ParamSpec{{Resource: "t", Access: "read", Binding: "pixel"}},
			}},
		}
		g, _ := newDeclareGraph()
		_, err := Declare(context.Background(), model, g, testRegistry(&invoked))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown binding kind")
	})
}

func TestRegistryDuplicatePanics(t *testing.T) {
	reg := NewRegistry()
	factory := func(spec PassSpec) (framegraph.ExecuteFunc, error) { return nil, nil }
	reg.Register("once", factory)
	assert.Panics(t, func() { reg.Register("once", factory) })
}

func TestPassSpecParamFilters(t *testing.T) {
	spec := PassSpec{Params: []BoundParam{
		{Name: "rt", Binding: framegraph.BindRenderTarget},
		{Name: "tex", Binding: framegraph.BindShader, Slot: 2},
	}}

	rts := spec.RenderTargets()
	require.Len(t, rts, 1)
	assert.Equal(t, "rt", rts[0].Name)

	shader := spec.ShaderParams()
	require.Len(t, shader, 1)
	assert.Equal(t, "tex", shader[0].Name)
}
