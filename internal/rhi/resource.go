package rhi

import (
	"fmt"
	"sync/atomic"
)

// ResourceKind distinguishes the two categories of physical resources the
// graph manages.
type ResourceKind uint8

const (
	KindTexture ResourceKind = iota
	KindBuffer
)

// String returns a human-readable name for the kind.
func (k ResourceKind) String() string {
	switch k {
	case KindTexture:
		return "texture"
	case KindBuffer:
		return "buffer"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Format identifies a texture pixel format. The graph core never interprets
// formats; they only participate in descriptor identity.
type Format string

const (
	FormatRGBA8   Format = "rgba8"
	FormatRGBA16F Format = "rgba16f"
	FormatR32F    Format = "r32f"
	FormatDepth32 Format = "depth32"
)

// Usage is a bitset of capabilities a resource is created with. A view or
// binding that needs a capability the resource was not created with is a
// contract violation.
type Usage uint8

const (
	UsageRenderTarget Usage = 1 << iota
	UsageShaderResource
	UsageUnorderedAccess
)

// Has reports whether all bits in want are set.
func (u Usage) Has(want Usage) bool { return u&want == want }

// Desc describes a physical resource. It is a comparable value so a
// normalized Desc can key a pool bucket directly.
type Desc struct {
	Kind   ResourceKind
	Format Format
	Width  int
	Height int

	// Buffer layout. Zero for textures.
	ElementSize  int
	ElementCount int

	Usage Usage
}

// Normalized returns a copy with fields that do not apply to the kind
// zeroed out, so equivalent descriptors compare equal as pool keys.
func (d Desc) Normalized() Desc {
	switch d.Kind {
	case KindTexture:
		d.ElementSize = 0
		d.ElementCount = 0
	case KindBuffer:
		d.Format = ""
		d.Width = 0
		d.Height = 0
	}
	return d
}

// ResourceState is the access state a resource is currently transitioned
// into. Consecutive uses under different states require a barrier.
type ResourceState uint8

const (
	StateUndefined ResourceState = iota
	StateReadable
	StateWritable
	StateRenderTarget
)

// String returns a human-readable name for the state.
func (s ResourceState) String() string {
	switch s {
	case StateUndefined:
		return "undefined"
	case StateReadable:
		return "readable"
	case StateWritable:
		return "writable"
	case StateRenderTarget:
		return "render_target"
	default:
		return fmt.Sprintf("state(%d)", s)
	}
}

// nextResourceID hands out process-wide unique physical resource identities.
var nextResourceID atomic.Uint64

// PhysicalResource is an actual backing allocation. Instances are created
// by the pool (or by callers registering external resources) and retain a
// stable identity for their whole life, across checkouts.
type PhysicalResource struct {
	id    uint64
	name  string
	desc  Desc
	state ResourceState
}

// NewPhysicalResource constructs a backing resource with a fresh identity
// in the undefined state.
func NewPhysicalResource(desc Desc, name string) *PhysicalResource {
	return &PhysicalResource{
		id:   nextResourceID.Add(1),
		name: name,
		desc: desc.Normalized(),
	}
}

// ID returns the stable identity of the resource.
func (r *PhysicalResource) ID() uint64 { return r.id }

// Name returns the debug name the resource was last handed out under.
func (r *PhysicalResource) Name() string { return r.name }

// Desc returns the normalized descriptor the resource was created from.
func (r *PhysicalResource) Desc() Desc { return r.desc }

// State returns the resource's current access state.
func (r *PhysicalResource) State() ResourceState { return r.state }

// SetName updates the debug name, used when a pooled resource is handed
// out to back a different logical resource.
func (r *PhysicalResource) SetName(name string) { r.name = name }

func (r *PhysicalResource) setState(s ResourceState) { r.state = s }
