// Package pool manages reusable physical GPU resources keyed by their
// normalized descriptor.
//
// The pool is the one collaborator shared across graphs, so unlike the
// graph itself it is safe for concurrent use. A resource is checked out to
// at most one logical resource at a time; Release returns it for reuse
// without destroying it.
package pool
