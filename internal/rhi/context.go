package rhi

// Transition is a barrier recorded when a resource's access state changes
// between consecutive uses.
type Transition struct {
	Resource *PhysicalResource
	Before   ResourceState
	After    ResourceState
	// Compute marks barriers issued for compute-only passes, which some
	// backends route through a different queue.
	Compute bool
}

// RenderPassInfo describes the render-target binding scope opened around a
// graphics pass that declares render targets.
type RenderPassInfo struct {
	Name    string
	Targets []*PhysicalResource
}

// CommandContext accepts recorded GPU commands in declaration order.
// Ordering between passes is guaranteed only at the recording level:
// implementations may hand work to a submission thread and return before
// GPU completion, and all methods must be non-blocking.
type CommandContext interface {
	// TransitionResource records a state barrier and updates the
	// resource's tracked state.
	TransitionResource(t Transition)

	// BeginRenderPass opens a render-target binding scope. EndRenderPass
	// closes it. Scopes never nest.
	BeginRenderPass(info RenderPassInfo)
	EndRenderPass()

	// BeginScope and EndScope bracket diagnostic event scopes.
	BeginScope(name string)
	EndScope()

	// SetComputeShader binds a compute shader; compute resource bindings
	// and dispatches are only valid afterwards.
	SetComputeShader(name string)
	DispatchCompute(groupsX, groupsY, groupsZ int)

	// SetShaderTexture and SetShaderBuffer bind resources to shader slots.
	SetShaderTexture(slot int, res *PhysicalResource)
	SetShaderBuffer(slot int, res *PhysicalResource)

	// DrawPrimitive records a draw; only valid inside a render pass.
	DrawPrimitive(vertexCount, instanceCount int)
}
