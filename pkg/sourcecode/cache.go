package sourcecode

import (
	"sync"

	"github.com/yaklabco/srcindex/pkg/ast"
)

// nodeCache memoizes a value per node identity for the lifetime of one
// SourceCode. Entries are written once and never invalidated. Two callers
// racing on the same node may both compute the value; the first insert wins.
type nodeCache[V any] struct {
	mu      sync.RWMutex
	entries map[*ast.Node]V
}

func newNodeCache[V any]() *nodeCache[V] {
	return &nodeCache[V]{entries: make(map[*ast.Node]V)}
}

func (c *nodeCache[V]) load(node *ast.Node) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[node]
	return v, ok
}

func (c *nodeCache[V]) store(node *ast.Node, v V) V {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[node]; ok {
		return existing
	}
	c.entries[node] = v
	return v
}

func (c *nodeCache[V]) loadOrCompute(node *ast.Node, compute func() V) V {
	if v, ok := c.load(node); ok {
		return v
	}
	return c.store(node, compute())
}
