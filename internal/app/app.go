package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/vk/framegraphgo/internal/pipeline"
	"github.com/vk/framegraphgo/passes/clear"
	"github.com/vk/framegraphgo/passes/dispatch"
	"github.com/vk/framegraphgo/passes/draw"
)

// Config holds everything an App instance needs to run.
type Config struct {
	// PipelinePath is a single .hcl file or a directory of them.
	PipelinePath string

	LogFormat string
	LogLevel  string

	// Immediate selects the execute-as-you-declare debug mode.
	Immediate bool

	// MetricsPort exposes /metrics over HTTP when non-zero.
	MetricsPort int

	// PoolCapacity caps live physical resources. Zero is unlimited.
	PoolCapacity int
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PipelinePath == "" {
		return nil, errors.New("PipelinePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	runners *pipeline.Registry
}

// RegisterFunc adds a pass runner module to a registry.
type RegisterFunc func(*pipeline.Registry)

// coreRunners is the definitive list of pass runners compiled into the
// binary.
var coreRunners = []RegisterFunc{
	clear.Register,
	draw.Register,
	dispatch.Register,
}

// New constructs the application with its own isolated logger and runner
// registry. Passing no runners installs the built-in set.
func New(outW io.Writer, cfg *Config, runners ...RegisterFunc) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := pipeline.NewRegistry()
	if len(runners) == 0 {
		runners = coreRunners
	}
	for _, register := range runners {
		register(reg)
	}
	logger.Debug("Pass runners registered.", "count", len(reg.Names()), "names", reg.Names())

	return &App{
		outW:    outW,
		logger:  logger,
		runners: reg,
	}
}

// Runners returns the application's runner registry. Primarily for tests.
func (a *App) Runners() *pipeline.Registry {
	return a.runners
}
