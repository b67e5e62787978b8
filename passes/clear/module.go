// Package clear provides the built-in "clear" pass runner: a graphics pass
// that clears its declared render targets by drawing a fullscreen
// triangle.
package clear

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/pipeline"
	"github.com/vk/framegraphgo/internal/rhi"
)

// Register adds the clear runner to the registry.
func Register(r *pipeline.Registry) {
	r.Register("clear", newClearPass)
}

func newClearPass(spec pipeline.PassSpec) (framegraph.ExecuteFunc, error) {
	if spec.Compute {
		return nil, fmt.Errorf("clear runner is a graphics pass")
	}
	if len(spec.RenderTargets()) == 0 {
		return nil, fmt.Errorf("clear runner needs at least one render-target param")
	}

	return func(ctx context.Context, cmd rhi.CommandContext, res framegraph.Resources) {
		// Fullscreen triangle; the render-target scope is already open.
		cmd.DrawPrimitive(3, 1)
	}, nil
}
