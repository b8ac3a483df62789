/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package graph turns a declarative Manifest into a graph of items that the
// item package can evaluate.
//
// Nodes live in a single arena owned by the Graph and refer to their
// dependencies by index, so shared dependencies and cycles need no special
// ownership. Names are resolved in a second pass after every node exists,
// which is what makes cyclic declarations representable.
package graph

import (
	"io"
	"strings"

	"dirpx.dev/dxcap/dxcore/errors"
	"dirpx.dev/dxcap/dxcore/item"
	"dirpx.dev/dxcap/dxcore/metadata"
	"dirpx.dev/dxcap/dxcore/model/capability"
	"dirpx.dev/rxmerr"
	"github.com/charmbracelet/log"
)

// Graph is an immutable arena of nodes built from a Manifest.
type Graph struct {
	nodes []*Node
	index map[string]int
	roots []int
}

// Node is a graph member. It implements item.Item.
type Node struct {
	graph *Graph
	desc  item.Descriptor
	deps  []int
}

// Variant implements item.Item.
func (n *Node) Variant() string { return n.desc.Variant }

// Version implements item.Item.
func (n *Node) Version() string { return n.desc.Version }

// Capability implements item.Item.
func (n *Node) Capability() capability.Capability { return n.desc.Provides }

// Requirements implements item.Item.
func (n *Node) Requirements() capability.Requirements { return n.desc.Requires }

// Dependencies implements item.Item, resolving the node's edges in the
// arena.
func (n *Node) Dependencies() []item.Item {
	out := make([]item.Item, len(n.deps))
	for i, d := range n.deps {
		out[i] = n.graph.nodes[d]
	}
	return out
}

// String returns the identity.
func (n *Node) String() string { return item.Identity(n) }

var _ item.Item = (*Node)(nil)

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Lookup returns the node declared for variant.
func (g *Graph) Lookup(variant string) (*Node, bool) {
	i, ok := g.index[variant]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// Items returns every node in declaration order.
func (g *Graph) Items() []item.Item {
	out := make([]item.Item, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n
	}
	return out
}

// Roots returns the manifest roots. Without explicit roots these are the
// nodes no other node depends on, plus the first declared node of every
// cycle that is not reachable from them.
func (g *Graph) Roots() []item.Item {
	out := make([]item.Item, len(g.roots))
	for i, r := range g.roots {
		out[i] = g.nodes[r]
	}
	return out
}

// Cycles returns the strongly connected components that form cycles, each
// as a list of variants in declaration order. A node depending on itself is
// a cycle of one.
func (g *Graph) Cycles() [][]string {
	t := &tarjan{g: g, index: make([]int, len(g.nodes)), low: make([]int, len(g.nodes)), onStack: make([]bool, len(g.nodes))}
	for i := range t.index {
		t.index[i] = -1
	}
	for i := range g.nodes {
		if t.index[i] < 0 {
			t.connect(i)
		}
	}
	return t.cycles
}

type tarjan struct {
	g       *Graph
	next    int
	index   []int
	low     []int
	onStack []bool
	stack   []int
	cycles  [][]string
}

func (t *tarjan) connect(v int) {
	t.index[v], t.low[v] = t.next, t.next
	t.next++
	t.stack = append(t.stack, v)
	t.onStack[v] = true

	selfLoop := false
	for _, w := range t.g.nodes[v].deps {
		switch {
		case w == v:
			selfLoop = true
		case t.index[w] < 0:
			t.connect(w)
			t.low[v] = min(t.low[v], t.low[w])
		case t.onStack[w]:
			t.low[v] = min(t.low[v], t.index[w])
		}
	}

	if t.low[v] != t.index[v] {
		return
	}

	var scc []int
	for {
		w := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		t.onStack[w] = false
		scc = append(scc, w)
		if w == v {
			break
		}
	}
	if len(scc) == 1 && !selfLoop {
		return
	}

	marked := make([]bool, len(t.g.nodes))
	for _, w := range scc {
		marked[w] = true
	}
	names := make([]string, 0, len(scc))
	for i, n := range t.g.nodes {
		if marked[i] {
			names = append(names, n.desc.Variant)
		}
	}
	t.cycles = append(t.cycles, names)
}

// Option configures Build.
type Option func(*builder)

// WithCatalog supplies metadata for entries that do not carry it inline.
func WithCatalog(c metadata.Catalog) Option {
	return func(b *builder) { b.catalog = c }
}

// WithLogger sets the logger used for build diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(b *builder) { b.logger = l }
}

// WithStrictVersions rejects every version that is not a semantic version,
// whether it comes from the manifest or from the catalog.
func WithStrictVersions() Option {
	return func(b *builder) { b.strict = true }
}

type builder struct {
	catalog metadata.Catalog
	logger  *log.Logger
	strict  bool
}

// Build validates m and builds its graph.
//
// Metadata is taken from the entry itself when present and from the
// WithCatalog catalog otherwise. Every entry whose metadata is missing or
// malformed, and every dependency on an undeclared variant, is reported; the
// returned error aggregates all of them and the graph is nil. Cycles are not
// errors; they are logged at warn level.
func Build(m Manifest, opts ...Option) (*Graph, error) {
	b := &builder{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(b)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	var cat metadata.Catalog = m.Catalog()
	if b.catalog != nil {
		cat = metadata.Chain{cat, b.catalog}
	}
	if b.strict {
		cat = metadata.Strict(cat)
	}

	c := rxmerr.NewCollector()
	g := &Graph{index: make(map[string]int, len(m.Items))}

	for _, e := range m.Items {
		desc, err := item.Describe(e.Variant, cat, cat)
		if err != nil {
			b.logger.Warn("skipping item", "variant", e.Variant, "err", err)
			c.Append(err)
			continue
		}
		g.index[e.Variant] = len(g.nodes)
		g.nodes = append(g.nodes, &Node{graph: g, desc: desc})
	}

	declared := make(map[string]bool, len(m.Items))
	for _, e := range m.Items {
		declared[e.Variant] = true
	}
	for _, e := range m.Items {
		i, ok := g.index[e.Variant]
		if !ok {
			continue
		}
		for _, dep := range e.Dependencies {
			j, ok := g.index[dep]
			if !ok {
				if !declared[dep] {
					c.Append(&errors.ConfigurationError{
						Variant:  e.Variant,
						Resource: "dependencies",
						Reason:   "undeclared dependency " + dep,
						Err:      errors.ErrUnknownVariant,
					})
				}
				continue
			}
			g.nodes[i].deps = append(g.nodes[i].deps, j)
		}
	}

	if err := c.Err(); err != nil {
		return nil, err
	}

	g.roots = g.resolveRoots(m.Roots)
	for _, cycle := range g.Cycles() {
		b.logger.Warn("dependency cycle", "variants", strings.Join(cycle, ", "))
	}
	b.logger.Debug("graph built", "items", len(g.nodes), "roots", len(g.roots))

	return g, nil
}

func (g *Graph) resolveRoots(names []string) []int {
	if len(names) > 0 {
		roots := make([]int, len(names))
		for i, name := range names {
			roots[i] = g.index[name]
		}
		return roots
	}

	depended := make([]bool, len(g.nodes))
	for _, n := range g.nodes {
		for _, d := range n.deps {
			depended[d] = true
		}
	}
	var roots []int
	for i := range g.nodes {
		if !depended[i] {
			roots = append(roots, i)
		}
	}

	// Cover components only reachable through a cycle.
	reached := make([]bool, len(g.nodes))
	for _, r := range roots {
		g.mark(r, reached)
	}
	for i := range g.nodes {
		if !reached[i] {
			roots = append(roots, i)
			g.mark(i, reached)
		}
	}
	return roots
}

func (g *Graph) mark(i int, reached []bool) {
	if reached[i] {
		return
	}
	reached[i] = true
	for _, d := range g.nodes[i].deps {
		g.mark(d, reached)
	}
}
