package kinship

import "github.com/ersonp/xungho/internal/domain/entities"

// Result is the answer to one relationship query from A to B.
type Result struct {
	Path           []string       `json:"path"`
	Hops           []Hop          `json:"hops"`
	Description    string         `json:"description"`
	Classification Classification `json:"classification"`
	Terms          Terms          `json:"terms"`
}

// Relate builds a graph from the snapshot and resolves how personA relates
// to personB.
//
// ErrInvalidQuery and ErrNotFound are returned unchanged. A path that cannot
// be classified still yields a Result carrying the path, a generic label and
// Terms.Approximate set.
func Relate(
	people []entities.Person,
	edges []entities.Relationship,
	personA, personB string,
	opts Options,
) (*Result, error) {
	g := Build(people, edges)

	path, err := FindPath(g, personA, personB)
	if err != nil {
		return nil, err
	}

	c := Classify(path, g)
	a, _ := g.Person(personA)
	b, _ := g.Person(personB)

	return &Result{
		Path:           path.IDs,
		Hops:           path.Hops,
		Description:    path.Describe(g),
		Classification: c,
		Terms:          Resolve(c.Relation, a.Gender, b.Gender, opts),
	}, nil
}
