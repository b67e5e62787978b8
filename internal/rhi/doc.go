// Package rhi defines the narrow contracts the frame graph consumes from a
// rendering hardware interface: physical resources, resource-state
// transitions, and a command-recording context.
//
// No actual GPU backend lives here. A real backend implements
// CommandContext outside this module; the RecordingContext in this package
// is the in-process implementation used by tests and dry runs, and the
// ValidationContext wraps any CommandContext to assert correct call
// ordering.
package rhi
