package framegraph

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/rhi"
)

// PassFlags annotate a declared pass.
type PassFlags uint8

const (
	// Compute marks a pass that uses compute only. Such a pass must not
	// declare render-target bindings.
	Compute PassFlags = 1 << iota
)

// Access is the declared access mode of one parameter-table entry.
type Access uint8

const (
	AccessRead Access = iota
	AccessWrite
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "read_write"
	default:
		return fmt.Sprintf("access(%d)", a)
	}
}

// Binding distinguishes shader bindings from render-target bindings.
type Binding uint8

const (
	BindShader Binding = iota
	BindRenderTarget
)

// Param is one entry in a pass's flat resource table: a resource (or a
// view over one) with its declared access mode and binding kind.
type Param struct {
	Resource Handle
	// View is an optional view handle; NoView when the entry references
	// the resource directly.
	View    ViewHandle
	Access  Access
	Binding Binding
}

// NoView marks a Param that references its resource directly.
const NoView ViewHandle = -1

// ReadTexture declares a shader read of a texture.
func ReadTexture(h Handle) Param {
	return Param{Resource: h, View: NoView, Access: AccessRead, Binding: BindShader}
}

// WriteTexture declares a shader (UAV) write of a texture.
func WriteTexture(h Handle) Param {
	return Param{Resource: h, View: NoView, Access: AccessWrite, Binding: BindShader}
}

// ReadBuffer declares a shader read of a buffer.
func ReadBuffer(h Handle) Param {
	return Param{Resource: h, View: NoView, Access: AccessRead, Binding: BindShader}
}

// WriteBuffer declares a shader (UAV) write of a buffer.
func WriteBuffer(h Handle) Param {
	return Param{Resource: h, View: NoView, Access: AccessWrite, Binding: BindShader}
}

// ReadWrite declares a combined read-write shader access.
func ReadWrite(h Handle) Param {
	return Param{Resource: h, View: NoView, Access: AccessReadWrite, Binding: BindShader}
}

// RenderTarget declares a render-target write of a texture.
func RenderTarget(h Handle) Param {
	return Param{Resource: h, View: NoView, Access: AccessWrite, Binding: BindRenderTarget}
}

// ViewParam declares an access through a previously created view. The
// access mode follows the view kind: SRVs read, UAVs write.
func ViewParam(v ViewHandle, access Access) Param {
	return Param{View: v, Access: access, Binding: BindShader}
}

// ExecuteFunc records a pass's GPU work. It receives the bound physical
// resources through res; it must not capture mutable state outside its
// parameter table, so a recorded graph replays deterministically.
type ExecuteFunc func(ctx context.Context, cmd rhi.CommandContext, res Resources)

// pass is one declared unit of GPU work.
type pass struct {
	name   string
	scope  int
	params []Param
	flags  PassFlags
	fn     ExecuteFunc

	// Filled by the lifetime scan.
	transitions []transitionOp
	releases    []Handle
}

func (p *pass) isCompute() bool { return p.flags&Compute != 0 }

// renderTargets returns the physical render targets declared by the pass.
func (p *pass) renderTargets(g *Graph) []*rhi.PhysicalResource {
	var targets []*rhi.PhysicalResource
	for _, par := range p.params {
		if par.Binding == BindRenderTarget {
			targets = append(targets, g.resources[par.Resource].phys)
		}
	}
	return targets
}

// AddPass appends a pass to the graph. Every referenced handle must have
// been declared already; a compute-flagged pass must declare zero
// render-target bindings. In immediate mode the pass also executes
// synchronously before AddPass returns.
func (g *Graph) AddPass(ctx context.Context, name string, params []Param, flags PassFlags, fn ExecuteFunc) error {
	if g.state != stateBuilding {
		return fmt.Errorf("add pass %q: %w", name, ErrUseAfterExecute)
	}
	if fn == nil {
		return fmt.Errorf("add pass %q: %w: nil execute callback", name, ErrInvalidHandle)
	}

	resolved := make([]Param, len(params))
	for i, par := range params {
		rp, err := g.resolveParam(par)
		if err != nil {
			return fmt.Errorf("add pass %q param %d: %w", name, i, err)
		}
		resolved[i] = rp
	}

	if flags&Compute != 0 {
		for _, par := range resolved {
			if par.Binding == BindRenderTarget {
				return fmt.Errorf("add pass %q: %w", name, ErrInvalidComputePass)
			}
		}
	}

	p := &pass{
		name:   name,
		scope:  g.currentScope,
		params: resolved,
		flags:  flags,
		fn:     fn,
	}
	g.passes = append(g.passes, p)

	if g.immediate {
		idx := len(g.passes) - 1
		g.scanPass(idx, p)
		if err := g.executePass(ctx, idx, p); err != nil {
			// Poison the graph; a failed immediate pass must not be
			// followed by more declarations.
			g.state = stateExecuted
			return fmt.Errorf("add pass %q (immediate): %w", name, err)
		}
	}
	return nil
}

// resolveParam validates a param and resolves view entries down to their
// underlying resource.
func (g *Graph) resolveParam(par Param) (Param, error) {
	if par.View != NoView {
		v, err := g.viewAt(par.View)
		if err != nil {
			return Param{}, err
		}
		par.Resource = v.res
		if v.kind == viewSRV && par.Access != AccessRead {
			return Param{}, fmt.Errorf("%w: SRV bound for %s access", ErrCapabilityMismatch, par.Access)
		}
		return par, nil
	}

	res, err := g.resourceAt(par.Resource)
	if err != nil {
		return Param{}, err
	}
	if par.Binding == BindRenderTarget {
		if res.desc.Kind != rhi.KindTexture {
			return Param{}, fmt.Errorf("%w: %s %q bound as render target", ErrCapabilityMismatch, res.desc.Kind, res.name)
		}
		if !res.desc.Usage.Has(rhi.UsageRenderTarget) {
			return Param{}, fmt.Errorf("%w: texture %q lacks render-target usage", ErrCapabilityMismatch, res.name)
		}
	}
	return par, nil
}

// Resources exposes the bound physical resources to a pass callback.
type Resources struct {
	g *Graph
}

// Physical returns the physical resource bound to a logical handle, or nil
// if the handle is out of range or the resource is unbound.
func (r Resources) Physical(h Handle) *rhi.PhysicalResource {
	if h < 0 || int(h) >= len(r.g.resources) {
		return nil
	}
	return r.g.resources[h].phys
}
