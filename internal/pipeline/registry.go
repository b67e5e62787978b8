package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/vk/framegraphgo/internal/framegraph"
)

// BoundParam is one declared parameter resolved to its graph handle.
type BoundParam struct {
	Name    string
	Handle  framegraph.Handle
	Access  framegraph.Access
	Binding framegraph.Binding
	Slot    int
}

// PassSpec is the resolved declaration handed to a runner factory.
type PassSpec struct {
	Name    string
	Compute bool
	Groups  []int
	Params  []BoundParam
}

// RenderTargets returns the params bound as render targets.
func (s PassSpec) RenderTargets() []BoundParam {
	var out []BoundParam
	for _, p := range s.Params {
		if p.Binding == framegraph.BindRenderTarget {
			out = append(out, p)
		}
	}
	return out
}

// ShaderParams returns the params bound to shader slots.
func (s PassSpec) ShaderParams() []BoundParam {
	var out []BoundParam
	for _, p := range s.Params {
		if p.Binding == framegraph.BindShader {
			out = append(out, p)
		}
	}
	return out
}

// RunnerFactory turns a resolved pass declaration into its recording
// callback. Factories validate the declaration shape (for example, a draw
// runner requiring at least one render target) and must not capture state
// beyond the spec.
type RunnerFactory func(spec PassSpec) (framegraph.ExecuteFunc, error)

// Registry maps runner names used in pipeline files to Go factories.
// Registration happens at process startup; a duplicate name is a
// programmer error and panics.
type Registry struct {
	factories map[string]RunnerFactory
}

// NewRegistry returns an empty runner registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]RunnerFactory)}
}

// Register adds a runner factory under name.
func (r *Registry) Register(name string, factory RunnerFactory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("runner %q already registered", name))
	}
	slog.Debug("Registering pass runner.", "name", name)
	r.factories[name] = factory
}

// Factory looks up a registered runner.
func (r *Registry) Factory(name string) (RunnerFactory, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown runner %q", name)
	}
	return factory, nil
}

// Names returns the registered runner names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}
