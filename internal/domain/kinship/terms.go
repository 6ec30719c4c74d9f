package kinship

import "github.com/ersonp/xungho/internal/domain/entities"

const (
	// DefaultMaxGeneration is the default generation gap covered by the tables.
	DefaultMaxGeneration = 4
	// tableDepth is the deepest generation the term tables have words for.
	tableDepth = 4

	distantRelative = "họ hàng xa"
	genericRelative = "họ hàng"
)

// Options configures term resolution.
type Options struct {
	Region Region
	// MaxGeneration caps the generation gap that gets a specific term.
	// Zero means DefaultMaxGeneration; values above the table depth are clamped.
	MaxGeneration int
}

func (o Options) maxGeneration() int {
	switch {
	case o.MaxGeneration <= 0:
		return DefaultMaxGeneration
	case o.MaxGeneration > tableDepth:
		return tableDepth
	default:
		return o.MaxGeneration
	}
}

// Terms is the directional pair of kinship terms for a relation.
type Terms struct {
	AcallsB     string `json:"a_calls_b"`
	BcallsA     string `json:"b_calls_a"`
	Approximate bool   `json:"approximate"`
}

// Resolve maps a relation seen from A to the terms A and B use for each
// other. BcallsA is always derived from the inverted relation with the
// genders swapped, so resolving the reversed path swaps the pair exactly.
//
// Gaps beyond the configured maximum and unclassified relations degrade to a
// generic label with Approximate set.
func Resolve(rel Relation, genderA, genderB entities.Gender, opts Options) Terms {
	if rel == nil {
		rel = Unclassified{}
	}
	r := resolver{lex: &lexicons[opts.Region%regionCount]}

	if rel.Gap() > opts.maxGeneration() {
		return Terms{AcallsB: distantRelative, BcallsA: distantRelative, Approximate: true}
	}

	ab, approxAB := rel.address(r, genderA, genderB)
	ba, approxBA := rel.Invert().address(r, genderB, genderA)
	return Terms{AcallsB: ab, BcallsA: ba, Approximate: approxAB || approxBA}
}

type resolver struct {
	lex *lexicon
}

func genderIndex(g entities.Gender) int {
	if g.IsFemale() {
		return female
	}
	return male
}

func lineIndex(s Side) int {
	if s == SideMaternal {
		return lineMaternal
	}
	return linePaternal
}

// either joins two candidate words when seniority is unknown.
func either(younger, elder string) string {
	if younger == elder {
		return younger
	}
	return elder + "/" + younger
}

func withSide(term string, s Side) string {
	switch s {
	case SidePaternal:
		return term + " nội"
	case SideMaternal:
		return term + " ngoại"
	default:
		return term
	}
}

func elderPrefix(g entities.Gender) string {
	if g.IsFemale() {
		return "bà"
	}
	return "ông"
}

func spouseWord(g entities.Gender) string {
	if g.IsFemale() {
		return "vợ"
	}
	return "chồng"
}

func inLawSuffix(g entities.Gender) string {
	if g.IsFemale() {
		return "dâu"
	}
	return "rể"
}

func (r resolver) parent(g entities.Gender) string {
	if g.IsFemale() {
		return r.lex.mother
	}
	return r.lex.father
}

func (r resolver) ancestor(degree int, g entities.Gender, side Side) string {
	switch degree {
	case 1:
		return r.parent(g)
	case 2:
		return withSide(elderPrefix(g), side)
	case 3:
		return r.lex.greatGrandparent[genderIndex(g)]
	default:
		return r.lex.greatGreatGrandparent[genderIndex(g)]
	}
}

func descendant(degree int, side Side) string {
	switch degree {
	case 1:
		return "con"
	case 2:
		return withSide("cháu", side)
	case 3:
		return "chắt"
	default:
		return "chút"
	}
}

// peer is the same-generation word for the addressee; s ranks the speaker.
func peer(addressee entities.Gender, s Seniority) string {
	elder := "anh"
	if addressee.IsFemale() {
		elder = "chị"
	}
	switch s {
	case SeniorityElder:
		return "em"
	case SeniorityYounger:
		return elder
	default:
		return elder + "/em"
	}
}

// peerInLaw names the spouse of a same-generation relative; s ranks the
// speaker against that relative, not against the addressee.
func peerInLaw(addressee entities.Gender, s Seniority) string {
	return peer(addressee, s) + " " + inLawSuffix(addressee)
}

func (r resolver) rank(table *[2][2][2]string, line Side, g entities.Gender, s Seniority) string {
	row := table[lineIndex(line)][genderIndex(g)]
	switch s {
	case SeniorityYounger:
		return row[rankElder]
	case SeniorityElder:
		return row[rankYounger]
	default:
		return either(row[rankYounger], row[rankElder])
	}
}

// auntUncle names a sibling of the speaker's ancestor. line is the lineage of
// that ancestor and s ranks the ancestor against the sibling.
func (r resolver) auntUncle(line Side, g entities.Gender, s Seniority) string {
	return r.rank(&r.lex.auntUncle, line, g, s)
}

func (r resolver) auntUncleSpouse(line Side, relative entities.Gender, s Seniority) string {
	return r.rank(&r.lex.auntUncleSpouse, line, relative, s)
}

func (Spouse) address(_ resolver, _, addressee entities.Gender) (string, bool) {
	return spouseWord(addressee), false
}

func (a Ancestor) address(r resolver, _, addressee entities.Gender) (string, bool) {
	return r.ancestor(a.Degree, addressee, a.Side), false
}

func (d Descendant) address(_ resolver, _, _ entities.Gender) (string, bool) {
	return descendant(d.Degree, d.Side), false
}

func (s Sibling) address(_ resolver, _, addressee entities.Gender) (string, bool) {
	return peer(addressee, s.Seniority), false
}

func (c Collateral) address(r resolver, _, addressee entities.Gender) (string, bool) {
	switch d := c.Up - c.Down; {
	case d == 0:
		return peer(addressee, c.Seniority) + " họ", false
	case d == 1:
		return r.auntUncle(c.Near, addressee, c.Seniority), false
	case d == 2:
		return elderPrefix(addressee) + " " + r.auntUncle(c.Near, addressee, c.Seniority), false
	case d > 2:
		return r.ancestor(d, addressee, SideNone), false
	case d >= -2:
		return "cháu", false
	default:
		return descendant(-d, SideNone), false
	}
}

func (l InLaw) address(r resolver, speaker, addressee entities.Gender) (string, bool) {
	switch l.Position {
	case PositionViaSpouse:
		term, approx := l.Of.address(r, l.Near, addressee)
		return term + " " + spouseWord(l.Near), approx
	case PositionByMarriage:
		return l.Of.addressSpouse(r, l.Far, addressee)
	case PositionStep:
		return l.Of.address(r, speaker, addressee)
	case PositionBothSides:
		// Men married to sisters are anh/em cột chèo; women married to
		// brothers are chị/em dâu. Seniority follows the blood siblings.
		if sib, ok := l.Of.(Sibling); ok && speaker == addressee && l.Near == l.Far && l.Near != speaker {
			if addressee.IsFemale() {
				return peer(addressee, sib.Seniority) + " dâu", false
			}
			return peer(addressee, sib.Seniority) + " cột chèo", false
		}
		term, _ := l.Of.addressSpouse(r, l.Far, addressee)
		return term + " " + spouseWord(l.Near), true
	}
	return genericRelative, true
}

func (c CoParentInLaw) address(r resolver, _, addressee entities.Gender) (string, bool) {
	if c.Down == 1 && c.Up == 1 {
		return r.lex.coParent[genderIndex(addressee)], false
	}
	return r.lex.coParentGeneric, true
}

func (Unclassified) address(_ resolver, _, _ entities.Gender) (string, bool) {
	return genericRelative, true
}

// A married couple has no further "spouse of spouse" term.
func (Spouse) addressSpouse(_ resolver, _, _ entities.Gender) (string, bool) {
	return genericRelative, true
}

func (a Ancestor) addressSpouse(r resolver, _, addressee entities.Gender) (string, bool) {
	if a.Degree == 1 {
		if addressee.IsFemale() {
			return r.lex.stepMother, false
		}
		return r.lex.stepFather, false
	}
	return r.ancestor(a.Degree, addressee, a.Side), false
}

func (d Descendant) addressSpouse(_ resolver, _, addressee entities.Gender) (string, bool) {
	return descendant(d.Degree, SideNone) + " " + inLawSuffix(addressee), false
}

func (s Sibling) addressSpouse(_ resolver, _, addressee entities.Gender) (string, bool) {
	return peerInLaw(addressee, s.Seniority), false
}

func (c Collateral) addressSpouse(r resolver, relative, addressee entities.Gender) (string, bool) {
	switch d := c.Up - c.Down; {
	case d == 0:
		return peerInLaw(addressee, c.Seniority) + " họ", false
	case d == 1:
		return r.auntUncleSpouse(c.Near, relative, c.Seniority), false
	case d == 2:
		return elderPrefix(addressee) + " " + r.auntUncleSpouse(c.Near, relative, c.Seniority), false
	case d > 2:
		return r.ancestor(d, addressee, SideNone), false
	case d >= -2:
		return "cháu " + inLawSuffix(addressee), false
	default:
		return descendant(-d, SideNone) + " " + inLawSuffix(addressee), false
	}
}

func (InLaw) addressSpouse(_ resolver, _, _ entities.Gender) (string, bool) {
	return genericRelative, true
}

func (CoParentInLaw) addressSpouse(_ resolver, _, _ entities.Gender) (string, bool) {
	return genericRelative, true
}

func (Unclassified) addressSpouse(_ resolver, _, _ entities.Gender) (string, bool) {
	return genericRelative, true
}
