package summary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/pool"
)

func TestPrintReport(t *testing.T) {
	rep := framegraph.Report{
		Passes: []framegraph.PassReport{
			{Name: "geometry", Scope: "scene", Compute: false, Params: 1, Transitions: 1, Releases: 0},
			{Name: "reduce", Scope: "", Compute: true, Params: 2, Transitions: 2, Releases: 1},
		},
		Resources:           3,
		ExternalResources:   1,
		TransitionsRecorded: 3,
	}
	stats := pool.Stats{Allocations: 2, Hits: 1, InUse: 0, Free: 2}

	var buf bytes.Buffer
	Print(&buf, rep, stats)
	out := buf.String()

	assert.Contains(t, out, "geometry")
	assert.Contains(t, out, "scene")
	assert.Contains(t, out, "compute")
	assert.Contains(t, out, "graphics")
	assert.Contains(t, out, "3 resources (1 external), 3 transitions recorded")
	assert.Contains(t, out, "pool: 2 allocated, 1 reused, 0 in use, 2 free")
}
