package framegraph

import (
	"fmt"

	"github.com/vk/framegraphgo/internal/rhi"
)

// Handle identifies a logical resource within its owning Graph. Handles
// are stable for the graph's lifetime and mean nothing to any other graph.
type Handle int

// ViewHandle identifies an SRV or UAV view within its owning Graph.
type ViewHandle int

// lifecycle tracks where a logical resource is in its declared life.
type lifecycle uint8

const (
	lifeDeclared lifecycle = iota
	lifeAllocated
	lifeReleased
)

// resource is a graph-owned logical texture or buffer. It carries only a
// descriptor until execution binds it to a physical resource.
type resource struct {
	name     string
	desc     rhi.Desc
	external bool

	life lifecycle
	phys *rhi.PhysicalResource

	// Analysis results. Pass indices are -1 while unreferenced.
	state       rhi.ResourceState
	firstPass   int
	lastPass    int
	everWritten bool
	extracted   bool
}

// viewKind distinguishes shader-resource views from unordered-access views.
type viewKind uint8

const (
	viewSRV viewKind = iota
	viewUAV
)

func (k viewKind) String() string {
	if k == viewUAV {
		return "UAV"
	}
	return "SRV"
}

// view references exactly one logical resource and inherits its lifetime.
type view struct {
	res  Handle
	kind viewKind
}

// CreateTexture declares a logical texture. No physical storage is
// committed until a pass first uses it during execution.
func (g *Graph) CreateTexture(desc TextureDesc, name string) (Handle, error) {
	return g.declareResource(rhi.Desc{
		Kind:   rhi.KindTexture,
		Format: desc.Format,
		Width:  desc.Width,
		Height: desc.Height,
		Usage:  desc.Usage,
	}, name, false, nil)
}

// CreateBuffer declares a logical buffer.
func (g *Graph) CreateBuffer(desc BufferDesc, name string) (Handle, error) {
	return g.declareResource(rhi.Desc{
		Kind:         rhi.KindBuffer,
		ElementSize:  desc.ElementSize,
		ElementCount: desc.ElementCount,
		Usage:        desc.Usage,
	}, name, false, nil)
}

// RegisterExternalTexture tracks a caller-owned physical resource under a
// graph handle. External resources bypass the pool entirely: the graph
// shares the caller's reference and never releases it.
func (g *Graph) RegisterExternalTexture(phys *rhi.PhysicalResource, name string) (Handle, error) {
	if phys == nil {
		return 0, fmt.Errorf("register external texture %q: %w: nil physical resource", name, ErrInvalidHandle)
	}
	return g.declareResource(phys.Desc(), name, true, phys)
}

// TextureDesc describes a logical texture.
type TextureDesc struct {
	Width  int
	Height int
	Format rhi.Format
	Usage  rhi.Usage
}

// BufferDesc describes a logical buffer.
type BufferDesc struct {
	ElementSize  int
	ElementCount int
	Usage        rhi.Usage
}

func (g *Graph) declareResource(desc rhi.Desc, name string, external bool, phys *rhi.PhysicalResource) (Handle, error) {
	if g.state != stateBuilding {
		return 0, fmt.Errorf("create resource %q: %w", name, ErrUseAfterExecute)
	}

	for _, r := range g.resources {
		if r.name == name {
			g.logger.Warn("Duplicate resource debug name declared.", "name", name)
			break
		}
	}

	r := resource{
		name:      name,
		desc:      desc,
		external:  external,
		phys:      phys,
		firstPass: -1,
		lastPass:  -1,
	}
	if external {
		// Caller-owned contents are presumed initialized.
		r.state = phys.State()
		r.everWritten = true
		r.life = lifeAllocated
	}
	g.resources = append(g.resources, r)
	return Handle(len(g.resources) - 1), nil
}

// CreateTextureSRV declares a shader-resource view over a texture created
// with the shader-resource usage flag.
func (g *Graph) CreateTextureSRV(h Handle) (ViewHandle, error) {
	return g.declareView(h, viewSRV, rhi.KindTexture, rhi.UsageShaderResource)
}

// CreateTextureUAV declares an unordered-access view over a texture
// created with the unordered-access usage flag.
func (g *Graph) CreateTextureUAV(h Handle) (ViewHandle, error) {
	return g.declareView(h, viewUAV, rhi.KindTexture, rhi.UsageUnorderedAccess)
}

// CreateBufferSRV declares a shader-resource view over a buffer.
func (g *Graph) CreateBufferSRV(h Handle) (ViewHandle, error) {
	return g.declareView(h, viewSRV, rhi.KindBuffer, rhi.UsageShaderResource)
}

// CreateBufferUAV declares an unordered-access view over a buffer.
func (g *Graph) CreateBufferUAV(h Handle) (ViewHandle, error) {
	return g.declareView(h, viewUAV, rhi.KindBuffer, rhi.UsageUnorderedAccess)
}

func (g *Graph) declareView(h Handle, kind viewKind, wantKind rhi.ResourceKind, want rhi.Usage) (ViewHandle, error) {
	if g.state != stateBuilding {
		return 0, fmt.Errorf("create view: %w", ErrUseAfterExecute)
	}
	res, err := g.resourceAt(h)
	if err != nil {
		return 0, fmt.Errorf("create view: %w", err)
	}
	if res.desc.Kind != wantKind {
		return 0, fmt.Errorf("create %s view on %q: %w: resource is a %s, not a %s",
			kind, res.name, ErrInvalidHandle, res.desc.Kind, wantKind)
	}
	if !res.desc.Usage.Has(want) {
		return 0, fmt.Errorf("create %s view on %q: %w", kind, res.name, ErrCapabilityMismatch)
	}
	g.views = append(g.views, view{res: h, kind: kind})
	return ViewHandle(len(g.views) - 1), nil
}

// resourceAt bounds-checks a handle and returns the backing entry.
func (g *Graph) resourceAt(h Handle) (*resource, error) {
	if h < 0 || int(h) >= len(g.resources) {
		return nil, fmt.Errorf("%w: resource %d of %d", ErrInvalidHandle, h, len(g.resources))
	}
	return &g.resources[h], nil
}

func (g *Graph) viewAt(h ViewHandle) (*view, error) {
	if h < 0 || int(h) >= len(g.views) {
		return nil, fmt.Errorf("%w: view %d of %d", ErrInvalidHandle, h, len(g.views))
	}
	return &g.views[h], nil
}
