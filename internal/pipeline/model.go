package pipeline

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// Model is the format-agnostic representation of a pipeline description,
// merged across all loaded files. Pass order is declaration order: within
// a file top to bottom, across files in sorted path order.
type Model struct {
	Variables map[string]cty.Value
	Textures  []*Texture
	Buffers   []*Buffer
	Externals []*External
	Passes    []*Pass
	Extracts  []*Extract
}

// Texture is the representation of a `texture` block.
type Texture struct {
	Name   string
	Width  int
	Height int
	Format string
	Usage  []string
}

// Buffer is the representation of a `buffer` block.
type Buffer struct {
	Name         string
	ElementSize  int
	ElementCount int
	Usage        []string
}

// External is the representation of an `external` block: a caller-owned
// texture registered with the graph rather than created by it.
type External struct {
	Name   string
	Width  int
	Height int
	Format string
	Usage  []string
}

// Pass is the representation of a `pass` block.
type Pass struct {
	Name    string
	Scope   string
	Compute bool
	Runner  string
	Groups  []int
	Params  []*ParamSpec
}

// ParamSpec is one `param` block inside a pass.
type ParamSpec struct {
	Resource string
	Access   string
	Binding  string
	Slot     int
}

// Extract is the representation of an `extract` block.
type Extract struct {
	Texture          string
	TransitionToRead bool
}

// --- gohcl decode targets ---

type fileConfig struct {
	Variables *variablesBlock  `hcl:"variables,block"`
	Textures  []*textureBlock  `hcl:"texture,block"`
	Buffers   []*bufferBlock   `hcl:"buffer,block"`
	Externals []*externalBlock `hcl:"external,block"`
	Passes    []*passBlock     `hcl:"pass,block"`
	Extracts  []*extractBlock  `hcl:"extract,block"`
}

type variablesBlock struct {
	Body hcl.Body `hcl:",remain"`
}

type textureBlock struct {
	Name   string   `hcl:"name,label"`
	Width  int      `hcl:"width"`
	Height int      `hcl:"height"`
	Format string   `hcl:"format"`
	Usage  []string `hcl:"usage,optional"`
}

type bufferBlock struct {
	Name         string   `hcl:"name,label"`
	ElementSize  int      `hcl:"element_size"`
	ElementCount int      `hcl:"element_count"`
	Usage        []string `hcl:"usage,optional"`
}

type externalBlock struct {
	Name   string   `hcl:"name,label"`
	Width  int      `hcl:"width"`
	Height int      `hcl:"height"`
	Format string   `hcl:"format"`
	Usage  []string `hcl:"usage,optional"`
}

type passBlock struct {
	Name    string        `hcl:"name,label"`
	Scope   string        `hcl:"scope,optional"`
	Compute bool          `hcl:"compute,optional"`
	Runner  string        `hcl:"runner"`
	Groups  []int         `hcl:"groups,optional"`
	Params  []*paramBlock `hcl:"param,block"`
}

type paramBlock struct {
	Resource string `hcl:"resource,label"`
	Access   string `hcl:"access"`
	Binding  string `hcl:"binding,optional"`
	Slot     int    `hcl:"slot,optional"`
}

type extractBlock struct {
	Texture          string `hcl:"texture"`
	TransitionToRead *bool  `hcl:"transition_to_read,optional"`
}
