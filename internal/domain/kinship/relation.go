package kinship

import (
	"fmt"

	"github.com/ersonp/xungho/internal/domain/entities"
)

// Kind tags a Relation variant.
type Kind uint8

const (
	KindUnclassified Kind = iota
	KindSpouse
	KindAncestor
	KindDescendant
	KindSibling
	KindCollateral
	KindInLaw
	KindCoParentInLaw
)

func (k Kind) String() string {
	switch k {
	case KindSpouse:
		return "spouse"
	case KindAncestor:
		return "ancestor"
	case KindDescendant:
		return "descendant"
	case KindSibling:
		return "sibling"
	case KindCollateral:
		return "collateral"
	case KindInLaw:
		return "in_law"
	case KindCoParentInLaw:
		return "co_parent_in_law"
	default:
		return "unclassified"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Side tells whether a lineage runs through a man (nội) or a woman (ngoại).
type Side uint8

const (
	SideNone Side = iota
	SidePaternal
	SideMaternal
)

func (s Side) String() string {
	switch s {
	case SidePaternal:
		return "paternal"
	case SideMaternal:
		return "maternal"
	default:
		return "none"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func sideOf(p *entities.Person) Side {
	if p.Gender.IsFemale() {
		return SideMaternal
	}
	return SidePaternal
}

// Seniority is the speaker's rank relative to the other person.
type Seniority uint8

const (
	SeniorityUnknown Seniority = iota
	// SeniorityElder means the speaker is senior.
	SeniorityElder
	// SeniorityYounger means the other person is senior.
	SeniorityYounger
)

func (s Seniority) String() string {
	switch s {
	case SeniorityElder:
		return "elder"
	case SeniorityYounger:
		return "younger"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Seniority) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Invert returns the same ranking seen from the other person.
func (s Seniority) Invert() Seniority {
	switch s {
	case SeniorityElder:
		return SeniorityYounger
	case SeniorityYounger:
		return SeniorityElder
	default:
		return SeniorityUnknown
	}
}

// compareSeniority ranks a against b: birth dates first when both are known
// and differ, then birth order, otherwise unknown.
func compareSeniority(a, b *entities.Person) Seniority {
	if a.BirthDate != nil && b.BirthDate != nil && !a.BirthDate.Equal(*b.BirthDate) {
		if a.BirthDate.Before(*b.BirthDate) {
			return SeniorityElder
		}
		return SeniorityYounger
	}
	if a.BirthOrder != nil && b.BirthOrder != nil && *a.BirthOrder != *b.BirthOrder {
		if *a.BirthOrder < *b.BirthOrder {
			return SeniorityElder
		}
		return SeniorityYounger
	}
	return SeniorityUnknown
}

// Relation is the language-independent category of a path, always seen from
// the speaker (the path's first person) towards the addressee.
//
// The set of variants is closed: each implements its own addressing, so a new
// variant without terms does not compile.
type Relation interface {
	Kind() Kind
	// Invert returns the relation seen from the addressee.
	Invert() Relation
	// Gap is the generation distance checked against the term table depth.
	Gap() int
	String() string

	seniority() Seniority
	// address returns what the speaker calls the addressee.
	address(r resolver, speaker, addressee entities.Gender) (string, bool)
	// addressSpouse returns what the speaker calls the spouse of this
	// relation's target, given the target's gender.
	addressSpouse(r resolver, relative, addressee entities.Gender) (string, bool)
}

// Spouse is a direct marriage.
type Spouse struct{}

// Ancestor means the addressee is Degree generations above the speaker.
// Side is the lineage of the speaker's parent on the path, set from degree 2.
type Ancestor struct {
	Degree int
	Side   Side
}

// Descendant means the addressee is Degree generations below the speaker.
// Side is the lineage of the addressee's parent on the path, set from degree 2.
type Descendant struct {
	Degree int
	Side   Side
}

// Sibling shares a parent with the speaker.
type Sibling struct {
	Seniority Seniority
}

// Collateral is any other blood relative: Up generations to the common
// ancestor and Down generations back. Near is the lineage of the speaker's
// ancestor in the addressee's generation, set only when Up > Down; Far is
// the mirror for the addressee and set only when Down > Up. Seniority ranks
// the common ancestor's two children on the path.
type Collateral struct {
	Up, Down  int
	Near, Far Side
	Seniority Seniority
}

// Position tells where the marriage sits on an in-law path.
type Position uint8

const (
	// PositionViaSpouse: the addressee is a blood relative of the speaker's spouse.
	PositionViaSpouse Position = iota + 1
	// PositionByMarriage: the addressee married a blood relative of the speaker.
	PositionByMarriage
	// PositionStep: the path turns through a couple (step-kin).
	PositionStep
	// PositionBothSides: the addressee married a blood relative of the speaker's spouse.
	PositionBothSides
)

func (p Position) String() string {
	switch p {
	case PositionViaSpouse:
		return "via_spouse"
	case PositionByMarriage:
		return "by_marriage"
	case PositionStep:
		return "step"
	case PositionBothSides:
		return "both_sides"
	default:
		return "unknown"
	}
}

// InLaw wraps a blood relation reached through one or two marriages.
// Near is the gender of the speaker's spouse on the path and Far the gender
// of the blood relative the addressee married, when those people exist.
type InLaw struct {
	Of       Relation
	Position Position
	Near     entities.Gender
	Far      entities.Gender
}

// CoParentInLaw links the parents of a married couple (sui gia): Down
// generations from the speaker to one spouse, Up generations from the other
// spouse to the addressee.
type CoParentInLaw struct {
	Down, Up int
}

// Unclassified is a path whose shape does not reduce to a known relation.
type Unclassified struct{}

func (Spouse) Kind() Kind        { return KindSpouse }
func (Ancestor) Kind() Kind      { return KindAncestor }
func (Descendant) Kind() Kind    { return KindDescendant }
func (Sibling) Kind() Kind       { return KindSibling }
func (Collateral) Kind() Kind    { return KindCollateral }
func (InLaw) Kind() Kind         { return KindInLaw }
func (CoParentInLaw) Kind() Kind { return KindCoParentInLaw }
func (Unclassified) Kind() Kind  { return KindUnclassified }

func (s Spouse) Invert() Relation { return s }

func (a Ancestor) Invert() Relation { return Descendant(a) }

func (d Descendant) Invert() Relation { return Ancestor(d) }

func (s Sibling) Invert() Relation { return Sibling{Seniority: s.Seniority.Invert()} }

func (c Collateral) Invert() Relation {
	return Collateral{
		Up:        c.Down,
		Down:      c.Up,
		Near:      c.Far,
		Far:       c.Near,
		Seniority: c.Seniority.Invert(),
	}
}

func (l InLaw) Invert() Relation {
	inv := InLaw{Of: l.Of.Invert(), Position: l.Position, Near: l.Far, Far: l.Near}
	switch l.Position {
	case PositionViaSpouse:
		inv.Position = PositionByMarriage
	case PositionByMarriage:
		inv.Position = PositionViaSpouse
	}
	return inv
}

func (c CoParentInLaw) Invert() Relation { return CoParentInLaw{Down: c.Up, Up: c.Down} }

func (u Unclassified) Invert() Relation { return u }

func (Spouse) Gap() int          { return 0 }
func (a Ancestor) Gap() int      { return a.Degree }
func (d Descendant) Gap() int    { return d.Degree }
func (Sibling) Gap() int         { return 0 }
func (c Collateral) Gap() int    { return abs(c.Up - c.Down) }
func (l InLaw) Gap() int         { return l.Of.Gap() }
func (c CoParentInLaw) Gap() int { return abs(c.Up - c.Down) }
func (Unclassified) Gap() int    { return 0 }

func (Spouse) String() string       { return "spouse" }
func (a Ancestor) String() string   { return fmt.Sprintf("ancestor(degree=%d)", a.Degree) }
func (d Descendant) String() string { return fmt.Sprintf("descendant(degree=%d)", d.Degree) }
func (Sibling) String() string      { return "sibling" }
func (c Collateral) String() string {
	return fmt.Sprintf("collateral(up=%d, down=%d)", c.Up, c.Down)
}
func (l InLaw) String() string {
	return fmt.Sprintf("in_law(of=%s, %s)", l.Of, l.Position)
}
func (c CoParentInLaw) String() string {
	return fmt.Sprintf("co_parent_in_law(down=%d, up=%d)", c.Down, c.Up)
}
func (Unclassified) String() string { return "unclassified" }

func (Spouse) seniority() Seniority     { return SeniorityUnknown }
func (Ancestor) seniority() Seniority   { return SeniorityYounger }
func (Descendant) seniority() Seniority { return SeniorityElder }
func (s Sibling) seniority() Seniority  { return s.Seniority }
func (c Collateral) seniority() Seniority {
	switch {
	case c.Up > c.Down:
		return SeniorityYounger
	case c.Up < c.Down:
		return SeniorityElder
	default:
		return c.Seniority
	}
}
func (l InLaw) seniority() Seniority        { return l.Of.seniority() }
func (CoParentInLaw) seniority() Seniority { return SeniorityUnknown }
func (Unclassified) seniority() Seniority  { return SeniorityUnknown }

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
