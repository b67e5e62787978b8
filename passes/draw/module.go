// Package draw provides the built-in "draw" pass runner: a graphics pass
// that binds its shader-visible params to their declared slots and records
// one draw.
package draw

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/pipeline"
	"github.com/vk/framegraphgo/internal/rhi"
)

// Register adds the draw runner to the registry.
func Register(r *pipeline.Registry) {
	r.Register("draw", newDrawPass)
}

func newDrawPass(spec pipeline.PassSpec) (framegraph.ExecuteFunc, error) {
	if spec.Compute {
		return nil, fmt.Errorf("draw runner is a graphics pass")
	}
	if len(spec.RenderTargets()) == 0 {
		return nil, fmt.Errorf("draw runner needs at least one render-target param")
	}
	shaderParams := spec.ShaderParams()

	return func(ctx context.Context, cmd rhi.CommandContext, res framegraph.Resources) {
		for _, p := range shaderParams {
			phys := res.Physical(p.Handle)
			if phys.Desc().Kind == rhi.KindBuffer {
				cmd.SetShaderBuffer(p.Slot, phys)
			} else {
				cmd.SetShaderTexture(p.Slot, phys)
			}
		}
		cmd.DrawPrimitive(3, 1)
	}, nil
}
