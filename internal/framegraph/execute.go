package framegraph

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/rhi"
)

// Execute runs the declared passes in declaration order, then resolves
// queued extractions and releases whatever the graph still holds. It is
// consumed: a second call, like any declaration after the first call,
// fails with ErrUseAfterExecute and changes nothing.
//
// An allocation failure aborts the run without rolling back transitions
// already recorded; the caller should treat the whole frame as failed for
// this graph's effects, and the graph lands in its terminal state either
// way.
func (g *Graph) Execute(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if g.state != stateBuilding {
		return fmt.Errorf("execute: %w", ErrUseAfterExecute)
	}
	g.state = stateExecuting

	if !g.immediate {
		g.compile()
	}
	g.warnUnwritten(ctx)

	if !g.immediate {
		logger.Debug("Executing pass list.", "passes", len(g.passes))
		for idx, p := range g.passes {
			if err := g.executePass(ctx, idx, p); err != nil {
				g.state = stateExecuted
				return fmt.Errorf("execute: %w", err)
			}
		}
	}

	g.closeScopes()
	if err := g.resolveExtractions(ctx); err != nil {
		g.state = stateExecuted
		return fmt.Errorf("execute: %w", err)
	}
	g.releaseRemaining()
	g.state = stateExecuted

	logger.Debug("Graph execution finished.",
		"passes", len(g.passes),
		"transitions", g.transitionsRecorded,
		"extractions", len(g.extractions))
	return nil
}

// executePass binds and transitions the pass's resources, brackets
// graphics work in a render-target scope, invokes the callback, and
// returns pooled resources whose last use this was.
func (g *Graph) executePass(ctx context.Context, idx int, p *pass) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Executing pass.", "pass", p.name, "index", idx, "compute", p.isCompute())

	for _, par := range p.params {
		r := &g.resources[par.Resource]
		if r.life != lifeDeclared {
			continue
		}
		phys, err := g.pool.Acquire(r.desc, r.name)
		if err != nil {
			return fmt.Errorf("pass %q: bind %q: %w: %v", p.name, r.name, ErrAllocationFailure, err)
		}
		r.phys = phys
		r.life = lifeAllocated
		logger.Debug("Bound logical resource.", "resource", r.name, "physical_id", phys.ID())
	}

	g.syncScopes(p.scope)

	for _, t := range p.transitions {
		g.cmd.TransitionResource(rhi.Transition{
			Resource: g.resources[t.res].phys,
			Before:   t.before,
			After:    t.after,
			Compute:  p.isCompute(),
		})
		g.transitionsRecorded++
		transitionsTotal.Inc()
	}

	targets := p.renderTargets(g)
	inRenderPass := !p.isCompute() && len(targets) > 0
	if inRenderPass {
		g.cmd.BeginRenderPass(rhi.RenderPassInfo{Name: p.name, Targets: targets})
	}
	p.fn(ctx, g.cmd, Resources{g: g})
	passesExecuted.WithLabelValues(passType(p)).Inc()
	if inRenderPass {
		g.cmd.EndRenderPass()
	}

	for _, h := range p.releases {
		g.releaseResource(h)
		logger.Debug("Released resource after last use.", "resource", g.resources[h].name, "pass", p.name)
	}
	return nil
}

// releaseResource returns a pooled physical resource. External resources
// are a no-op by contract, and extracted resources keep their physical for
// the caller.
func (g *Graph) releaseResource(h Handle) {
	r := &g.resources[h]
	if r.external || r.extracted || r.life != lifeAllocated {
		return
	}
	g.pool.Release(r.phys)
	r.phys = nil
	r.life = lifeReleased
}

// resolveExtractions copies the final physical reference of each queued
// extraction into its output slot, transitioning to readable first when
// requested. Runs at Execute in both modes so external consumers observe
// one contract.
func (g *Graph) resolveExtractions(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	for _, e := range g.extractions {
		r := &g.resources[e.res]

		// An extracted resource no pass touched still has to exist for
		// its consumer.
		if r.life == lifeDeclared && !r.external {
			phys, err := g.pool.Acquire(r.desc, r.name)
			if err != nil {
				return fmt.Errorf("extract %q: %w: %v", r.name, ErrAllocationFailure, err)
			}
			r.phys = phys
			r.life = lifeAllocated
		}

		if e.transitionToRead && r.state != rhi.StateReadable {
			g.cmd.TransitionResource(rhi.Transition{
				Resource: r.phys,
				Before:   r.state,
				After:    rhi.StateReadable,
			})
			r.state = rhi.StateReadable
			g.transitionsRecorded++
			transitionsTotal.Inc()
		}

		e.out.Resource = r.phys
		logger.Debug("Resolved deferred extraction.", "resource", r.name, "physical_id", r.phys.ID())
	}
	return nil
}

// releaseRemaining completes every lifecycle at teardown. Pooled resources
// still checked out go back to the pool; inert resources that no pass
// referenced move straight to released with zero transitions and no pool
// interaction.
func (g *Graph) releaseRemaining() {
	for i := range g.resources {
		r := &g.resources[i]
		if r.extracted {
			continue
		}
		switch {
		case r.external:
			r.life = lifeReleased
		case r.life == lifeAllocated:
			g.pool.Release(r.phys)
			r.phys = nil
			r.life = lifeReleased
		case r.life == lifeDeclared:
			r.life = lifeReleased
		}
	}
}

// syncScopes diffs the diagnostic scope chain open on the command context
// against the chain the next pass needs, ending and beginning scopes at
// the divergence point.
func (g *Graph) syncScopes(target int) {
	want := g.scopeChain(target)

	common := 0
	for common < len(g.openScopes) && common < len(want) && g.openScopes[common] == want[common] {
		common++
	}
	for i := len(g.openScopes) - 1; i >= common; i-- {
		g.cmd.EndScope()
	}
	g.openScopes = g.openScopes[:common]
	for _, idx := range want[common:] {
		g.cmd.BeginScope(g.scopes[idx].name)
		g.openScopes = append(g.openScopes, idx)
	}
}

// closeScopes ends any diagnostic scopes still open after the last pass.
func (g *Graph) closeScopes() {
	for i := len(g.openScopes) - 1; i >= 0; i-- {
		g.cmd.EndScope()
	}
	g.openScopes = nil
}
