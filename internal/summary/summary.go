// Package summary renders a human-readable report of an executed frame
// graph: a per-pass table and a pool statistics line.
package summary

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/vk/framegraphgo/internal/framegraph"
	"github.com/vk/framegraphgo/internal/pool"
)

// Print writes the pass table and pool stats to w.
func Print(w io.Writer, rep framegraph.Report, stats pool.Stats) {
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	columnFmt := color.New(color.FgYellow).SprintfFunc()

	tbl := table.New("#", "Pass", "Scope", "Type", "Params", "Transitions", "Releases")
	tbl.WithWriter(w).WithHeaderFormatter(headerFmt).WithFirstColumnFormatter(columnFmt)

	for i, p := range rep.Passes {
		kind := "graphics"
		if p.Compute {
			kind = "compute"
		}
		scope := p.Scope
		if scope == "" {
			scope = "-"
		}
		tbl.AddRow(i, p.Name, scope, kind, p.Params, p.Transitions, p.Releases)
	}
	tbl.Print()

	fmt.Fprintf(w, "\n%d resources (%d external), %d transitions recorded\n",
		rep.Resources, rep.ExternalResources, rep.TransitionsRecorded)
	fmt.Fprintf(w, "pool: %d allocated, %d reused, %d in use, %d free\n",
		stats.Allocations, stats.Hits, stats.InUse, stats.Free)
}
