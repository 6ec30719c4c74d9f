package kinship

import (
	"fmt"
	"strings"
)

// Hop labels one step of a path by the edge class it followed.
type Hop uint8

const (
	// HopParent moves to a parent of the current person (one ascent).
	HopParent Hop = iota + 1
	// HopChild moves to a child of the current person (one descent).
	HopChild
	// HopSpouse moves to a spouse; the generation does not change.
	HopSpouse
)

// expansionOrder is the fixed order in which BFS expands edge classes.
// It decides ties between equally short paths.
var expansionOrder = [...]Hop{HopParent, HopChild, HopSpouse}

func (h Hop) String() string {
	switch h {
	case HopParent:
		return "parent"
	case HopChild:
		return "child"
	case HopSpouse:
		return "spouse"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (h Hop) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// reverse returns the label of the same edge walked the other way.
func (h Hop) reverse() Hop {
	switch h {
	case HopParent:
		return HopChild
	case HopChild:
		return HopParent
	default:
		return h
	}
}

// Path is an ordered walk from IDs[0] to IDs[len(IDs)-1].
// Hops[i] is the edge taken from IDs[i] to IDs[i+1].
type Path struct {
	IDs  []string
	Hops []Hop
}

// Len returns the number of hops.
func (p *Path) Len() int {
	return len(p.Hops)
}

// Reverse returns the same walk from the other end.
func (p *Path) Reverse() *Path {
	n := len(p.IDs)
	out := &Path{
		IDs:  make([]string, n),
		Hops: make([]Hop, len(p.Hops)),
	}
	for i, id := range p.IDs {
		out.IDs[n-1-i] = id
	}
	for i, h := range p.Hops {
		out.Hops[len(p.Hops)-1-i] = h.reverse()
	}
	return out
}

// Describe renders the walk with person names, e.g. "An -parent-> Bình".
// Unknown IDs are printed as-is.
func (p *Path) Describe(g *Graph) string {
	var b strings.Builder
	for i, id := range p.IDs {
		if i > 0 {
			fmt.Fprintf(&b, " -%s-> ", p.Hops[i-1])
		}
		if person, ok := g.Person(id); ok && person.Name != "" {
			b.WriteString(person.Name)
		} else {
			b.WriteString(id)
		}
	}
	return b.String()
}

// FindPath returns a shortest path from fromID to toID over parent, child and
// spouse edges.
//
// The search is a breadth-first walk that expands parents, then children,
// then spouses at every node, each in edge order, and enqueues a node at most
// once. The first path discovered is returned, which makes ties between equally
// short paths deterministic. Cycles from remarriage are harmless because of the
// visited set.
//
// FindPath returns ErrInvalidQuery when fromID == toID and ErrNotFound when
// either person is unknown or the two are not connected.
func FindPath(g *Graph, fromID, toID string) (*Path, error) {
	if fromID == toID {
		return nil, ErrInvalidQuery
	}
	from, ok := g.index[fromID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown person %s", ErrNotFound, fromID)
	}
	to, ok := g.index[toID]
	if !ok {
		return nil, fmt.Errorf("%w: unknown person %s", ErrNotFound, toID)
	}

	visited := newBitset(len(g.nodes))
	prev := make([]int, len(g.nodes))
	via := make([]Hop, len(g.nodes))

	visited.set(from)
	queue := make([]int, 1, len(g.nodes))
	queue[0] = from

	for head := 0; head < len(queue) && !visited.has(to); head++ {
		cur := queue[head]
		for _, hop := range expansionOrder {
			for _, next := range g.neighbors(cur, hop) {
				if visited.has(next) {
					continue
				}
				visited.set(next)
				prev[next] = cur
				via[next] = hop
				queue = append(queue, next)
			}
		}
	}

	if !visited.has(to) {
		return nil, ErrNotFound
	}

	// Walk predecessors back from the target, then flip.
	steps := make([]int, 0, 8)
	for n := to; n != from; n = prev[n] {
		steps = append(steps, n)
	}

	path := &Path{
		IDs:  make([]string, 0, len(steps)+1),
		Hops: make([]Hop, 0, len(steps)),
	}
	path.IDs = append(path.IDs, fromID)
	for i := len(steps) - 1; i >= 0; i-- {
		n := steps[i]
		path.IDs = append(path.IDs, g.nodes[n].person.ID)
		path.Hops = append(path.Hops, via[n])
	}
	return path, nil
}
