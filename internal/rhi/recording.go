package rhi

// Op identifies a recorded command.
type Op string

const (
	OpTransition       Op = "transition"
	OpBeginRenderPass  Op = "begin_render_pass"
	OpEndRenderPass    Op = "end_render_pass"
	OpBeginScope       Op = "begin_scope"
	OpEndScope         Op = "end_scope"
	OpSetComputeShader Op = "set_compute_shader"
	OpDispatchCompute  Op = "dispatch_compute"
	OpSetShaderTexture Op = "set_shader_texture"
	OpSetShaderBuffer  Op = "set_shader_buffer"
	OpDrawPrimitive    Op = "draw_primitive"
)

// Command is one recorded entry in a RecordingContext's log.
type Command struct {
	Op       Op
	Name     string
	Resource *PhysicalResource
	Before   ResourceState
	After    ResourceState
	Compute  bool
	Slot     int
	X, Y, Z  int
	Targets  []*PhysicalResource
}

// RecordingContext is a CommandContext that appends every call to an
// ordered log. It backs tests and dry runs; it is not safe for concurrent
// use, matching the single-recording-thread contract.
type RecordingContext struct {
	commands []Command
}

// NewRecordingContext returns an empty recording context.
func NewRecordingContext() *RecordingContext {
	return &RecordingContext{}
}

// Commands returns the ordered log recorded so far.
func (c *RecordingContext) Commands() []Command { return c.commands }

// CommandsByOp returns the recorded commands matching op, in order.
func (c *RecordingContext) CommandsByOp(op Op) []Command {
	var out []Command
	for _, cmd := range c.commands {
		if cmd.Op == op {
			out = append(out, cmd)
		}
	}
	return out
}

// TransitionResource implements CommandContext. The resource's tracked
// state is advanced to the barrier's After state.
func (c *RecordingContext) TransitionResource(t Transition) {
	c.commands = append(c.commands, Command{
		Op:       OpTransition,
		Resource: t.Resource,
		Before:   t.Before,
		After:    t.After,
		Compute:  t.Compute,
	})
	t.Resource.setState(t.After)
}

// BeginRenderPass implements CommandContext.
func (c *RecordingContext) BeginRenderPass(info RenderPassInfo) {
	c.commands = append(c.commands, Command{
		Op:      OpBeginRenderPass,
		Name:    info.Name,
		Targets: info.Targets,
	})
}

// EndRenderPass implements CommandContext.
func (c *RecordingContext) EndRenderPass() {
	c.commands = append(c.commands, Command{Op: OpEndRenderPass})
}

// BeginScope implements CommandContext.
func (c *RecordingContext) BeginScope(name string) {
	c.commands = append(c.commands, Command{Op: OpBeginScope, Name: name})
}

// EndScope implements CommandContext.
func (c *RecordingContext) EndScope() {
	c.commands = append(c.commands, Command{Op: OpEndScope})
}

// SetComputeShader implements CommandContext.
func (c *RecordingContext) SetComputeShader(name string) {
	c.commands = append(c.commands, Command{Op: OpSetComputeShader, Name: name})
}

// DispatchCompute implements CommandContext.
func (c *RecordingContext) DispatchCompute(groupsX, groupsY, groupsZ int) {
	c.commands = append(c.commands, Command{Op: OpDispatchCompute, X: groupsX, Y: groupsY, Z: groupsZ})
}

// SetShaderTexture implements CommandContext.
func (c *RecordingContext) SetShaderTexture(slot int, res *PhysicalResource) {
	c.commands = append(c.commands, Command{Op: OpSetShaderTexture, Slot: slot, Resource: res})
}

// SetShaderBuffer implements CommandContext.
func (c *RecordingContext) SetShaderBuffer(slot int, res *PhysicalResource) {
	c.commands = append(c.commands, Command{Op: OpSetShaderBuffer, Slot: slot, Resource: res})
}

// DrawPrimitive implements CommandContext.
func (c *RecordingContext) DrawPrimitive(vertexCount, instanceCount int) {
	c.commands = append(c.commands, Command{Op: OpDrawPrimitive, X: vertexCount, Y: instanceCount})
}
