package kinship

import "github.com/ersonp/xungho/internal/domain/entities"

// Classification is the outcome of Classify, seen from the path's first person.
type Classification struct {
	Kind     Kind     `json:"kind"`
	Relation Relation `json:"-"`
	// Label is a readable form of Relation, e.g. "collateral(up=2, down=2)".
	Label     string    `json:"relation"`
	Ascents   int       `json:"ascents"`
	Descents  int       `json:"descents"`
	Side      Side      `json:"side"`
	Seniority Seniority `json:"seniority"`
	InLaw     bool      `json:"in_law"`
}

// Classify reduces a path to a Relation plus the flattened modifiers.
//
// Accepted shapes, with U an ascent, D a descent and S a spouse hop:
//
//	S            spouse
//	U^k D^m      blood relation
//	S U^k D^m    relative of the speaker's spouse
//	U^k D^m S    spouse of the speaker's relative
//	U^k S D^m    step relation through a couple at the turning point
//	S U^k D^m S  spouse of a relative of the speaker's spouse
//	D^a S U^b    parents of a married couple
//
// Anything else is Unclassified; the caller still gets the raw path.
func Classify(p *Path, g *Graph) Classification {
	nodes := make([]*entities.Person, len(p.IDs))
	for i, id := range p.IDs {
		person, ok := g.Person(id)
		if !ok {
			return newClassification(p, Unclassified{}, nil)
		}
		nodes[i] = person
	}
	if len(p.Hops) == 0 || len(nodes) != len(p.Hops)+1 {
		return newClassification(p, Unclassified{}, nodes)
	}
	return newClassification(p, classifyShape(p.Hops, nodes), nodes)
}

func newClassification(p *Path, rel Relation, nodes []*entities.Person) Classification {
	c := Classification{
		Kind:      rel.Kind(),
		Relation:  rel,
		Label:     rel.String(),
		Seniority: rel.seniority(),
		InLaw:     rel.Kind() == KindInLaw,
	}
	for _, h := range p.Hops {
		switch h {
		case HopParent:
			c.Ascents++
		case HopChild:
			c.Descents++
		}
	}
	// Side only means something once the path climbs to a grandparent. A
	// path opening on the spouse hop reports the spouse's side.
	start := 0
	if len(p.Hops) > 0 && p.Hops[0] == HopSpouse && c.InLaw {
		start = 1
	}
	if len(p.Hops) >= start+2 && p.Hops[start] == HopParent && p.Hops[start+1] == HopParent && len(nodes) > start+1 {
		c.Side = sideOf(nodes[start+1])
	}
	return c
}

func classifyShape(hops []Hop, nodes []*entities.Person) Relation {
	spouses := make([]int, 0, 2)
	for i, h := range hops {
		if h == HopSpouse {
			spouses = append(spouses, i)
		}
	}
	last := len(hops) - 1

	switch len(spouses) {
	case 0:
		if of := blood(hops, nodes); of != nil {
			return of
		}
	case 1:
		i := spouses[0]
		switch {
		case len(hops) == 1:
			return Spouse{}
		case i == 0:
			if of := blood(hops[1:], nodes[1:]); of != nil {
				return InLaw{Of: of, Position: PositionViaSpouse, Near: nodes[1].Gender}
			}
		case i == last:
			if of := blood(hops[:last], nodes[:last+1]); of != nil {
				return InLaw{Of: of, Position: PositionByMarriage, Far: nodes[last].Gender}
			}
		default:
			return turn(hops, nodes, i)
		}
	case 2:
		if spouses[0] == 0 && spouses[1] == last && last >= 2 {
			if of := blood(hops[1:last], nodes[1:last+1]); of != nil {
				return InLaw{
					Of:       of,
					Position: PositionBothSides,
					Near:     nodes[1].Gender,
					Far:      nodes[last].Gender,
				}
			}
		}
	}
	return Unclassified{}
}

// turn classifies a path with a single spouse hop strictly inside it.
func turn(hops []Hop, nodes []*entities.Person, i int) Relation {
	before, after := hops[:i], hops[i+1:]
	switch {
	case all(before, HopParent) && all(after, HopChild):
		// Treat the couple at the turn as one common ancestor.
		k := len(before)
		line := make([]*entities.Person, 0, len(nodes)-1)
		line = append(line, nodes[:k+1]...)
		line = append(line, nodes[k+2:]...)
		return InLaw{Of: bloodOf(k, len(after), line), Position: PositionStep}
	case all(before, HopChild) && all(after, HopParent):
		return CoParentInLaw{Down: len(before), Up: len(after)}
	default:
		return Unclassified{}
	}
}

// blood classifies an ascend-then-descend segment, or returns nil when the
// segment has any other shape.
func blood(hops []Hop, nodes []*entities.Person) Relation {
	up := 0
	for up < len(hops) && hops[up] == HopParent {
		up++
	}
	if !all(hops[up:], HopChild) || len(hops) == 0 {
		return nil
	}
	return bloodOf(up, len(hops)-up, nodes)
}

// bloodOf builds the blood relation for up ascents then down descents over
// nodes, where nodes[up] is the common ancestor.
func bloodOf(up, down int, nodes []*entities.Person) Relation {
	switch {
	case down == 0:
		return Ancestor{Degree: up, Side: lineage(nodes[1], up)}
	case up == 0:
		return Descendant{Degree: down, Side: lineage(nodes[down-1], down)}
	case up == 1 && down == 1:
		return Sibling{Seniority: compareSeniority(nodes[0], nodes[2])}
	default:
		c := Collateral{
			Up:        up,
			Down:      down,
			Seniority: compareSeniority(nodes[up-1], nodes[up+1]),
		}
		// The line is read off the ancestor standing in the other person's
		// generation: nodes[up-down] for the speaker, nodes[2*up] for the
		// addressee.
		if up > down {
			c.Near = sideOf(nodes[up-down])
		}
		if down > up {
			c.Far = sideOf(nodes[2*up])
		}
		return c
	}
}

func lineage(p *entities.Person, degree int) Side {
	if degree < 2 {
		return SideNone
	}
	return sideOf(p)
}

func all(hops []Hop, want Hop) bool {
	for _, h := range hops {
		if h != want {
			return false
		}
	}
	return true
}
