// Package dispatch provides the built-in "dispatch" pass runner: a
// compute pass that sets a compute shader named after the pass, binds its
// params, and dispatches the declared group counts.
package dispatch

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/pipeline"
	"github.com/vk/framegraphgo/internal/rhi"
)

// Register adds the dispatch runner to the registry.
func Register(r *pipeline.Registry) {
	r.Register("dispatch", newDispatchPass)
}

func newDispatchPass(spec pipeline.PassSpec) (framegraph.ExecuteFunc, error) {
	if !spec.Compute {
		return nil, fmt.Errorf("dispatch runner requires a compute pass")
	}

	groups := [3]int{1, 1, 1}
	if len(spec.Groups) > 0 {
		if len(spec.Groups) != 3 {
			return nil, fmt.Errorf("groups needs exactly 3 entries, got %d", len(spec.Groups))
		}
		copy(groups[:], spec.Groups)
	}
	shaderName := spec.Name
	shaderParams := spec.ShaderParams()

	return func(ctx context.Context, cmd rhi.CommandContext, res framegraph.Resources) {
		cmd.SetComputeShader(shaderName)
		for _, p := range shaderParams {
			phys := res.Physical(p.Handle)
			if phys.Desc().Kind == rhi.KindBuffer {
				cmd.SetShaderBuffer(p.Slot, phys)
			} else {
				cmd.SetShaderTexture(p.Slot, phys)
			}
		}
		cmd.DispatchCompute(groups[0], groups[1], groups[2])
	}, nil
}
