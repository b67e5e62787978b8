package integrationtests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/framegraphgo/internal/testutil"
)

func TestRunComputeChain(t *testing.T) {
	files := map[string]string{
		"frame.hcl": `
texture "color" {
  width  = 64
  height = 64
  format = "rgba8"
  usage  = ["render_target", "shader_resource"]
}

texture "luminance" {
  width  = 64
  height = 64
  format = "r32f"
  usage  = ["uav", "shader_resource"]
}

buffer "histogram" {
  element_size  = 4
  element_count = 256
  usage         = ["uav"]
}

pass "geometry" {
  runner = "clear"

  param "color" {
    access  = "write"
    binding = "render_target"
  }
}

pass "reduce" {
  compute = true
  runner  = "dispatch"
  groups  = [8, 8, 1]

  param "color" {
    access = "read"
    slot   = 0
  }
  param "luminance" {
    access = "write"
    slot   = 1
  }
  param "histogram" {
    access = "read_write"
    slot   = 2
  }
}
`,
	}

	res := testutil.RunPipelineTest(t, files)
	require.NoError(t, res.Err)
	assert.Contains(t, res.Output, "Execution finished.")
	assert.Contains(t, res.Output, "reduce")
}
