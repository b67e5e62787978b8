package rhi

import "fmt"

// ValidationContext wraps another CommandContext and asserts that commands
// arrive in a valid order before forwarding them. Violations are programmer
// errors and panic immediately; the layer exists to surface bad call
// ordering during development, not to be handled at runtime.
type ValidationContext struct {
	inner CommandContext

	computeShaderSet bool
	insideRenderPass bool
	scopeDepth       int
}

// NewValidationContext wraps inner with call-ordering assertions.
func NewValidationContext(inner CommandContext) *ValidationContext {
	return &ValidationContext{inner: inner}
}

// TransitionResource implements CommandContext.
func (v *ValidationContext) TransitionResource(t Transition) {
	if v.insideRenderPass {
		panic("rhi validation: resource transition recorded inside a render pass")
	}
	if t.Resource == nil {
		panic("rhi validation: transition on nil resource")
	}
	v.inner.TransitionResource(t)
}

// BeginRenderPass implements CommandContext.
func (v *ValidationContext) BeginRenderPass(info RenderPassInfo) {
	if v.insideRenderPass {
		panic(fmt.Sprintf("rhi validation: render pass %q begun while another is open", info.Name))
	}
	if len(info.Targets) == 0 {
		panic(fmt.Sprintf("rhi validation: render pass %q begun with no render targets", info.Name))
	}
	v.insideRenderPass = true
	v.computeShaderSet = false
	v.inner.BeginRenderPass(info)
}

// EndRenderPass implements CommandContext.
func (v *ValidationContext) EndRenderPass() {
	if !v.insideRenderPass {
		panic("rhi validation: render pass ended without a matching begin")
	}
	v.insideRenderPass = false
	v.inner.EndRenderPass()
}

// BeginScope implements CommandContext.
func (v *ValidationContext) BeginScope(name string) {
	v.scopeDepth++
	v.inner.BeginScope(name)
}

// EndScope implements CommandContext.
func (v *ValidationContext) EndScope() {
	if v.scopeDepth == 0 {
		panic("rhi validation: scope ended without a matching begin")
	}
	v.scopeDepth--
	v.inner.EndScope()
}

// SetComputeShader implements CommandContext.
func (v *ValidationContext) SetComputeShader(name string) {
	v.computeShaderSet = true
	v.inner.SetComputeShader(name)
}

// DispatchCompute implements CommandContext.
func (v *ValidationContext) DispatchCompute(groupsX, groupsY, groupsZ int) {
	if !v.computeShaderSet {
		panic("rhi validation: compute dispatched before a compute shader was set")
	}
	v.inner.DispatchCompute(groupsX, groupsY, groupsZ)
}

// SetShaderTexture implements CommandContext.
func (v *ValidationContext) SetShaderTexture(slot int, res *PhysicalResource) {
	if !v.computeShaderSet && !v.insideRenderPass {
		panic("rhi validation: shader texture bound with no compute shader set and no render pass open")
	}
	v.inner.SetShaderTexture(slot, res)
}

// SetShaderBuffer implements CommandContext.
func (v *ValidationContext) SetShaderBuffer(slot int, res *PhysicalResource) {
	if !v.computeShaderSet && !v.insideRenderPass {
		panic("rhi validation: shader buffer bound with no compute shader set and no render pass open")
	}
	v.inner.SetShaderBuffer(slot, res)
}

// DrawPrimitive implements CommandContext.
func (v *ValidationContext) DrawPrimitive(vertexCount, instanceCount int) {
	if !v.insideRenderPass {
		panic("rhi validation: draw recorded outside a render pass")
	}
	v.inner.DrawPrimitive(vertexCount, instanceCount)
}
