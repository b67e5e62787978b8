package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/framegraphgo/internal/app"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an end-to-end pipeline run.
type HarnessResult struct {
	Output string
	Err    error
	App    *app.App
}

// HarnessOption tweaks the app configuration a harness run uses.
type HarnessOption func(*app.Config)

// WithImmediateMode runs the pipeline in execute-as-you-declare mode.
func WithImmediateMode() HarnessOption {
	return func(cfg *app.Config) { cfg.Immediate = true }
}

// WithPoolCapacity caps the run's physical resource pool.
func WithPoolCapacity(n int) HarnessOption {
	return func(cfg *app.Config) { cfg.PoolCapacity = n }
}

// RunPipelineTest writes the given pipeline files into a temporary
// directory, then builds and runs an app against it with the built-in
// runners. Keys of files are paths relative to the pipeline root, so
// subdirectories come for free.
func RunPipelineTest(t *testing.T, files map[string]string, opts ...HarnessOption) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	cfg, err := app.NewConfig(app.Config{
		PipelinePath: root,
		LogLevel:     "debug",
		LogFormat:    "text",
	})
	require.NoError(t, err)
	for _, opt := range opts {
		opt(cfg)
	}

	out := &SafeBuffer{}
	testApp := app.New(out, cfg)
	runErr := testApp.Run(context.Background(), cfg)

	if os.Getenv("FGGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
	}

	return &HarnessResult{
		Output: out.String(),
		Err:    runErr,
		App:    testApp,
	}
}
