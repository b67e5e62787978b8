package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/rhi"
)

// Declare turns a loaded model into declarations on the graph: resources
// first, then passes in declaration order, then extractions. It returns
// the extraction output slots keyed by resource name, populated once the
// graph executes.
func Declare(ctx context.Context, model *Model, g *framegraph.Graph, reg *Registry) (map[string]*framegraph.ExtractedResource, error) {
	logger := ctxlog.FromContext(ctx)

	handles := make(map[string]framegraph.Handle, len(model.Textures)+len(model.Buffers)+len(model.Externals))

	for _, t := range model.Textures {
		usage, err := parseUsage(t.Usage)
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", t.Name, err)
		}
		h, err := g.CreateTexture(framegraph.TextureDesc{
			Width:  t.Width,
			Height: t.Height,
			Format: rhi.Format(t.Format),
			Usage:  usage,
		}, t.Name)
		if err != nil {
			return nil, err
		}
		handles[t.Name] = h
	}

	for _, b := range model.Buffers {
		usage, err := parseUsage(b.Usage)
		if err != nil {
			return nil, fmt.Errorf("buffer %q: %w", b.Name, err)
		}
		h, err := g.CreateBuffer(framegraph.BufferDesc{
			ElementSize:  b.ElementSize,
			ElementCount: b.ElementCount,
			Usage:        usage,
		}, b.Name)
		if err != nil {
			return nil, err
		}
		handles[b.Name] = h
	}

	for _, e := range model.Externals {
		usage, err := parseUsage(e.Usage)
		if err != nil {
			return nil, fmt.Errorf("external %q: %w", e.Name, err)
		}
		phys := rhi.NewPhysicalResource(rhi.Desc{
			Kind:   rhi.KindTexture,
			Format: rhi.Format(e.Format),
			Width:  e.Width,
			Height: e.Height,
			Usage:  usage,
		}, e.Name)
		h, err := g.RegisterExternalTexture(phys, e.Name)
		if err != nil {
			return nil, err
		}
		handles[e.Name] = h
	}

	for _, p := range model.Passes {
		if err := declarePass(ctx, g, reg, handles, p); err != nil {
			return nil, err
		}
	}

	outs := make(map[string]*framegraph.ExtractedResource, len(model.Extracts))
	for _, e := range model.Extracts {
		h, ok := handles[e.Texture]
		if !ok {
			return nil, fmt.Errorf("extract: unknown resource %q", e.Texture)
		}
		out := &framegraph.ExtractedResource{}
		if err := g.QueueTextureExtraction(h, out, e.TransitionToRead); err != nil {
			return nil, err
		}
		outs[e.Texture] = out
	}

	logger.Debug("Pipeline declared onto graph.", "passes", len(model.Passes), "resources", len(handles))
	return outs, nil
}

// declarePass resolves one pass block and adds it inside its scope chain.
// A scope attribute like "post/bloom" nests one scope per segment.
func declarePass(ctx context.Context, g *framegraph.Graph, reg *Registry, handles map[string]framegraph.Handle, p *Pass) error {
	spec := PassSpec{Name: p.Name, Compute: p.Compute, Groups: p.Groups}
	params := make([]framegraph.Param, 0, len(p.Params))

	for _, par := range p.Params {
		h, ok := handles[par.Resource]
		if !ok {
			return fmt.Errorf("pass %q: unknown resource %q", p.Name, par.Resource)
		}
		access, err := parseAccess(par.Access)
		if err != nil {
			return fmt.Errorf("pass %q param %q: %w", p.Name, par.Resource, err)
		}
		binding, err := parseBinding(par.Binding)
		if err != nil {
			return fmt.Errorf("pass %q param %q: %w", p.Name, par.Resource, err)
		}
		params = append(params, framegraph.Param{
			Resource: h,
			View:     framegraph.NoView,
			Access:   access,
			Binding:  binding,
		})
		spec.Params = append(spec.Params, BoundParam{
			Name:    par.Resource,
			Handle:  h,
			Access:  access,
			Binding: binding,
			Slot:    par.Slot,
		})
	}

	factory, err := reg.Factory(p.Runner)
	if err != nil {
		return fmt.Errorf("pass %q: %w", p.Name, err)
	}
	fn, err := factory(spec)
	if err != nil {
		return fmt.Errorf("pass %q: runner %q: %w", p.Name, p.Runner, err)
	}

	var flags framegraph.PassFlags
	if p.Compute {
		flags |= framegraph.Compute
	}

	add := func() error {
		return g.AddPass(ctx, p.Name, params, flags, fn)
	}
	for _, segment := range scopeSegments(p.Scope) {
		inner := add
		name := segment
		add = func() error {
			return g.Scoped(name, inner)
		}
	}
	return add()
}

// scopeSegments splits a slash-separated scope path, innermost last, and
// returns it innermost first for the closure nesting above.
func scopeSegments(path string) []string {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, "/")
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return parts
}

func parseUsage(usage []string) (rhi.Usage, error) {
	var out rhi.Usage
	for _, u := range usage {
		switch u {
		case "render_target":
			out |= rhi.UsageRenderTarget
		case "shader_resource":
			out |= rhi.UsageShaderResource
		case "uav", "unordered_access":
			out |= rhi.UsageUnorderedAccess
		default:
			return 0, fmt.Errorf("unknown usage flag %q", u)
		}
	}
	if out == 0 {
		out = rhi.UsageShaderResource
	}
	return out, nil
}

func parseAccess(access string) (framegraph.Access, error) {
	switch access {
	case "read":
		return framegraph.AccessRead, nil
	case "write":
		return framegraph.AccessWrite, nil
	case "read_write":
		return framegraph.AccessReadWrite, nil
	default:
		return 0, fmt.Errorf("unknown access mode %q", access)
	}
}

func parseBinding(binding string) (framegraph.Binding, error) {
	switch binding {
	case "", "shader":
		return framegraph.BindShader, nil
	case "render_target":
		return framegraph.BindRenderTarget, nil
	default:
		return 0, fmt.Errorf("unknown binding kind %q", binding)
	}
}
