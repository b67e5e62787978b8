package framegraph

import (
	"fmt"
	"log/slog"

	"github.com/vk/framegraphgo/internal/pool"
	"github.com/vk/framegraphgo/internal/rhi"
)

// graphState is the one-way lifecycle of a Graph instance.
type graphState uint8

const (
	stateBuilding graphState = iota
	stateExecuting
	stateExecuted
)

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithLogger sets the logger used for declaration-time diagnostics.
// Execution-time logging uses the logger carried by the Execute context.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Graph) { g.logger = logger }
}

// WithImmediateMode makes AddPass validate and execute each pass
// synchronously as it is declared, instead of deferring to Execute. This
// development-time mode produces the same transitions and callback
// invocations as deferred mode, reordered relative to other declarations;
// queued extractions still resolve at Execute so outside code observes one
// contract regardless of mode.
func WithImmediateMode() Option {
	return func(g *Graph) { g.immediate = true }
}

// ExtractedResource is the caller-supplied output slot of a deferred
// extraction. Resource is populated when the graph executes.
type ExtractedResource struct {
	Resource *rhi.PhysicalResource
}

// extraction is a queued request to expose a graph-internal resource to
// code outside the graph after execution completes.
type extraction struct {
	res              Handle
	out              *ExtractedResource
	transitionToRead bool
}

// Graph owns the ordered pass list and the logical resource set for one
// frame. It is built once, executed once, and then dead.
type Graph struct {
	cmd    rhi.CommandContext
	pool   *pool.Pool
	logger *slog.Logger

	resources []resource
	views     []view
	passes    []*pass
	scopes    []scope

	// currentScope indexes scopes, -1 at the root.
	currentScope int
	// openScopes tracks the scope chain currently begun on the command
	// context while executing.
	openScopes []int

	extractions []extraction

	state     graphState
	immediate bool

	transitionsRecorded int
}

// New constructs an empty graph recording into cmd and drawing physical
// resources from p.
func New(cmd rhi.CommandContext, p *pool.Pool, opts ...Option) *Graph {
	g := &Graph{
		cmd:          cmd,
		pool:         p,
		logger:       slog.Default(),
		currentScope: -1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// QueueTextureExtraction requests that out receive the physical resource
// backing h once the graph has executed. With transitionToRead set, a
// final transition to the readable state is recorded first. Extractions
// resolve at Execute even in immediate mode.
func (g *Graph) QueueTextureExtraction(h Handle, out *ExtractedResource, transitionToRead bool) error {
	if g.state != stateBuilding {
		return fmt.Errorf("queue extraction: %w", ErrUseAfterExecute)
	}
	if out == nil {
		return fmt.Errorf("queue extraction: %w: nil output slot", ErrInvalidHandle)
	}
	res, err := g.resourceAt(h)
	if err != nil {
		return fmt.Errorf("queue extraction: %w", err)
	}
	if res.desc.Kind != rhi.KindTexture {
		return fmt.Errorf("queue extraction of %q: %w: not a texture", res.name, ErrInvalidHandle)
	}
	res.extracted = true
	g.extractions = append(g.extractions, extraction{res: h, out: out, transitionToRead: transitionToRead})
	return nil
}

// PassReport describes one executed pass for diagnostics.
type PassReport struct {
	Name        string
	Scope       string
	Compute     bool
	Params      int
	Transitions int
	Releases    int
}

// Report summarizes a graph after execution.
type Report struct {
	Passes              []PassReport
	Resources           int
	ExternalResources   int
	TransitionsRecorded int
}

// Report returns per-pass and per-graph statistics. It is meaningful once
// the graph has executed.
func (g *Graph) Report() Report {
	rep := Report{TransitionsRecorded: g.transitionsRecorded}
	for _, r := range g.resources {
		rep.Resources++
		if r.external {
			rep.ExternalResources++
		}
	}
	for _, p := range g.passes {
		rep.Passes = append(rep.Passes, PassReport{
			Name:        p.name,
			Scope:       g.scopePath(p.scope),
			Compute:     p.isCompute(),
			Params:      len(p.params),
			Transitions: len(p.transitions),
			Releases:    len(p.releases),
		})
	}
	return rep
}
