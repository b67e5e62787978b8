package framegraph

import (
	"fmt"
	"strings"
)

// maxScopeDepth caps scope nesting.
const maxScopeDepth = 8

// scope is a node in the diagnostic grouping tree. The parent relation is
// an index into the graph-owned scope table, never a pointer; the root is
// "no scope", index -1.
type scope struct {
	name   string
	parent int
}

// PushScope opens a named diagnostic scope around subsequently added
// passes and returns the function that closes it. Callers defer the pop so
// every exit path restores the enclosing scope:
//
//	pop, err := g.PushScope("shadows")
//	if err != nil { ... }
//	defer pop()
func (g *Graph) PushScope(name string) (func(), error) {
	if g.state != stateBuilding {
		return nil, fmt.Errorf("push scope %q: %w", name, ErrUseAfterExecute)
	}
	if g.scopeDepth() >= maxScopeDepth {
		return nil, fmt.Errorf("push scope %q: scope depth limit %d exceeded", name, maxScopeDepth)
	}

	g.scopes = append(g.scopes, scope{name: name, parent: g.currentScope})
	idx := len(g.scopes) - 1
	parent := g.currentScope
	g.currentScope = idx

	return func() { g.currentScope = parent }, nil
}

// Scoped runs fn with a scope pushed, guaranteeing the pop on every exit
// path including panics.
func (g *Graph) Scoped(name string, fn func() error) error {
	pop, err := g.PushScope(name)
	if err != nil {
		return err
	}
	defer pop()
	return fn()
}

// scopeDepth counts the ancestors of the current scope.
func (g *Graph) scopeDepth() int {
	depth := 0
	for idx := g.currentScope; idx != -1; idx = g.scopes[idx].parent {
		depth++
	}
	return depth
}

// scopeChain returns the scope indices from the root down to idx.
func (g *Graph) scopeChain(idx int) []int {
	var chain []int
	for ; idx != -1; idx = g.scopes[idx].parent {
		chain = append(chain, idx)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// scopePath renders the slash-joined path of a scope index for reports.
func (g *Graph) scopePath(idx int) string {
	chain := g.scopeChain(idx)
	parts := make([]string, len(chain))
	for i, s := range chain {
		parts[i] = g.scopes[s].name
	}
	return strings.Join(parts, "/")
}
