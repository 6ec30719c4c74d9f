// Package kinship resolves how two people in a family tree are related and
// which Vietnamese kinship terms they use for each other.
//
// The engine is a pipeline of four pure steps:
//
//  1. Build turns a snapshot of people and edges into a Graph.
//  2. FindPath runs a breadth-first search between two people.
//  3. Classify reduces the path's shape to a Relation.
//  4. Resolve maps the Relation, both genders and a Region to a term pair.
//
// Relate runs all four. Every call builds its own Graph from caller-supplied
// data and never mutates its inputs, so concurrent queries against the same
// tree need no coordination.
package kinship

import "github.com/ersonp/xungho/internal/domain/entities"

// node is one arena slot of the graph. Adjacency is stored as arena indexes.
type node struct {
	person   *entities.Person
	parents  []int
	children []int
	spouses  []int
}

// Graph is the adjacency view of one family-tree snapshot.
// It is read-only after Build returns.
type Graph struct {
	nodes []node
	index map[string]int
}

// edgeKey identifies an edge after normalization. Spouse pairs are stored
// with a <= b so both orientations collapse to one key.
type edgeKey struct {
	kind entities.EdgeKind
	a, b int
}

// Build creates a Graph from people and edges.
//
// Edges that reference unknown people, self-loops, unknown kinds and
// duplicates are dropped silently: a malformed edge must not fail a
// read-only query. People with an empty or repeated ID are skipped.
func Build(people []entities.Person, edges []entities.Relationship) *Graph {
	g := &Graph{
		nodes: make([]node, 0, len(people)),
		index: make(map[string]int, len(people)),
	}

	for i := range people {
		p := &people[i]
		if p.ID == "" {
			continue
		}
		if _, dup := g.index[p.ID]; dup {
			continue
		}
		g.index[p.ID] = len(g.nodes)
		g.nodes = append(g.nodes, node{person: p})
	}

	seen := make(map[edgeKey]struct{}, len(edges))
	for i := range edges {
		e := &edges[i]
		from, okFrom := g.index[e.PersonID]
		to, okTo := g.index[e.RelatedPersonID]
		if !okFrom || !okTo || from == to {
			continue
		}

		key := edgeKey{kind: e.Kind, a: from, b: to}
		switch e.Kind {
		case entities.EdgeParentChild:
		case entities.EdgeSpouse:
			if key.a > key.b {
				key.a, key.b = key.b, key.a
			}
		default:
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if e.Kind == entities.EdgeParentChild {
			g.nodes[from].children = append(g.nodes[from].children, to)
			g.nodes[to].parents = append(g.nodes[to].parents, from)
			continue
		}
		g.nodes[from].spouses = append(g.nodes[from].spouses, to)
		g.nodes[to].spouses = append(g.nodes[to].spouses, from)
	}

	return g
}

// Len returns the number of people in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Person returns the person with the given ID.
func (g *Graph) Person(id string) (*entities.Person, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i].person, true
}

// ParentsOf returns the IDs of the person's parents in edge order.
func (g *Graph) ParentsOf(id string) []string {
	return g.ids(id, func(n *node) []int { return n.parents })
}

// ChildrenOf returns the IDs of the person's children in edge order.
func (g *Graph) ChildrenOf(id string) []string {
	return g.ids(id, func(n *node) []int { return n.children })
}

// SpousesOf returns the IDs of the person's spouses in edge order.
func (g *Graph) SpousesOf(id string) []string {
	return g.ids(id, func(n *node) []int { return n.spouses })
}

func (g *Graph) ids(id string, pick func(*node) []int) []string {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	adj := pick(&g.nodes[i])
	out := make([]string, len(adj))
	for j, k := range adj {
		out[j] = g.nodes[k].person.ID
	}
	return out
}

// neighbors returns the arena indexes reachable from i over one hop class.
func (g *Graph) neighbors(i int, h Hop) []int {
	switch h {
	case HopParent:
		return g.nodes[i].parents
	case HopChild:
		return g.nodes[i].children
	case HopSpouse:
		return g.nodes[i].spouses
	}
	return nil
}

// bitset is a fixed-size visited set over arena indexes.
type bitset []uint64

func newBitset(n int) bitset {
	return make(bitset, (n+63)/64)
}

func (b bitset) set(i int) {
	b[i/64] |= 1 << (uint(i) % 64)
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<(uint(i)%64)) != 0
}
