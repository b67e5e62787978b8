package app

import (
	"context"
	"fmt"

	"github.com/vk/framegraphgo/internal/ctxlog"
	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/pipeline"
	"github.com/vk/framegraphgo/internal/pool"
	"github.com/vk/framegraphgo/internal/rhi"
	"github.com/vk/framegraphgo/internal/summary"
)

// Run loads the pipeline description, declares it onto a fresh graph, and
// executes one frame against a validated recording context, printing the
// summary afterwards.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if cfg.MetricsPort > 0 {
		a.startMetricsServer(cfg.MetricsPort)
	}

	model, err := pipeline.Load(ctx, cfg.PipelinePath)
	if err != nil {
		return fmt.Errorf("failed to load pipeline: %w", err)
	}

	recorder := rhi.NewRecordingContext()
	resourcePool := pool.New(pool.WithCapacity(cfg.PoolCapacity))

	opts := []framegraph.Option{framegraph.WithLogger(a.logger)}
	if cfg.Immediate {
		a.logger.Info("Immediate mode enabled; passes execute as they are declared.")
		opts = append(opts, framegraph.WithImmediateMode())
	}
	graph := framegraph.New(rhi.NewValidationContext(recorder), resourcePool, opts...)

	a.logger.Info("🚀 Declaring frame graph...", "passes", len(model.Passes))
	extractions, err := pipeline.Declare(ctx, model, graph, a.runners)
	if err != nil {
		return fmt.Errorf("failed to declare pipeline: %w", err)
	}

	a.logger.Info("🎬 Executing frame graph...")
	if err := graph.Execute(ctx); err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	a.logger.Info("🏁 Execution finished.", "commands_recorded", len(recorder.Commands()))

	for name, out := range extractions {
		a.logger.Info("Extracted resource available.",
			"resource", name, "physical_id", out.Resource.ID(), "state", out.Resource.State().String())
	}

	summary.Print(a.outW, graph.Report(), resourcePool.Stats())
	a.logger.Debug("App.Run method finished.")
	return nil
}
