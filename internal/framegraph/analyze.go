package framegraph

import (
	"context"

	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/rhi"
)

// transitionOp is one precomputed barrier, applied immediately before the
// pass that needs it.
type transitionOp struct {
	res    Handle
	before rhi.ResourceState
	after  rhi.ResourceState
}

// stateTable maps a declared access to the resource state it requires.
// Keyed by (binding, access); the render-target binding dominates the
// access mode, since binding a render target is always a write.
var stateTable = map[[2]uint8]rhi.ResourceState{
	{uint8(BindRenderTarget), uint8(AccessWrite)}:     rhi.StateRenderTarget,
	{uint8(BindRenderTarget), uint8(AccessReadWrite)}: rhi.StateRenderTarget,
	{uint8(BindShader), uint8(AccessRead)}:            rhi.StateReadable,
	{uint8(BindShader), uint8(AccessWrite)}:           rhi.StateWritable,
	{uint8(BindShader), uint8(AccessReadWrite)}:       rhi.StateWritable,
}

// requiredState returns the state a param's access needs the resource in.
func requiredState(par Param) rhi.ResourceState {
	if s, ok := stateTable[[2]uint8{uint8(par.Binding), uint8(par.Access)}]; ok {
		return s
	}
	// BindRenderTarget with AccessRead has no table entry; treat the
	// binding as authoritative.
	if par.Binding == BindRenderTarget {
		return rhi.StateRenderTarget
	}
	return rhi.StateReadable
}

// scanPass advances the per-resource lifetime bookkeeping across one pass:
// first/last use indices, the written flag, and the barriers the pass must
// apply before executing. The resulting transition sequence for a resource
// depends only on the interleaving of its own accesses.
func (g *Graph) scanPass(idx int, p *pass) {
	for _, par := range p.params {
		r := &g.resources[par.Resource]
		if r.firstPass == -1 {
			r.firstPass = idx
		}
		r.lastPass = idx
		if par.Access != AccessRead {
			r.everWritten = true
		}

		need := requiredState(par)
		if r.state != need {
			p.transitions = append(p.transitions, transitionOp{res: par.Resource, before: r.state, after: need})
			r.state = need
		}
	}
}

// compile runs the single linear dependency-and-lifetime scan over the
// pass list, then attaches each pooled resource's release to its last
// using pass. Only deferred mode calls it; immediate mode scans each pass
// as it is added and releases at teardown instead.
func (g *Graph) compile() {
	for idx, p := range g.passes {
		g.scanPass(idx, p)
	}
	for i := range g.resources {
		r := &g.resources[i]
		if r.firstPass == -1 || r.external || r.extracted {
			continue
		}
		last := g.passes[r.lastPass]
		last.releases = append(last.releases, Handle(i))
	}
}

// warnUnwritten logs one diagnostic per resource that passes only ever
// read. Reading a transient resource nothing wrote is almost certainly a
// bug, but it is not fatal; external resources arrive initialized and are
// exempt. Resources no pass touched are inert and produce no warning.
func (g *Graph) warnUnwritten(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for i := range g.resources {
		r := &g.resources[i]
		if r.firstPass == -1 || r.everWritten {
			continue
		}
		logger.Warn("Resource is read but never written; passes will read uninitialized data.",
			"resource", r.name, "first_pass", g.passes[r.firstPass].name)
	}
}
