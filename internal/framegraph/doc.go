// Package framegraph builds and executes per-frame render graphs.
//
// Rendering code declares logical textures, buffers and views, then adds
// passes with a flat table of declared resource accesses and a recording
// callback. Execute walks the pass list once in declaration order,
// binds each logical resource to a pooled physical resource just before
// its first use, records the state transitions required between
// consecutive uses, invokes each pass's callback, and returns physical
// resources to the pool immediately after their last use.
//
// A Graph is single-use: declarations are only accepted before Execute,
// and Execute runs at most once. One goroutine declares and executes;
// the Graph is not internally synchronized.
package framegraph
