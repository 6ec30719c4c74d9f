package kinship

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ersonp/xungho/internal/domain/entities"
)

// tree is a small builder for test snapshots.
type tree struct {
	people []entities.Person
	edges  []entities.Relationship
}

type personOpt func(*entities.Person)

func born(date string) personOpt {
	return func(p *entities.Person) {
		t, err := time.Parse(entities.DateLayout, date)
		if err != nil {
			panic(err)
		}
		p.BirthDate = &t
	}
}

func order(n int) personOpt {
	return func(p *entities.Person) {
		p.BirthOrder = &n
	}
}

func (t *tree) man(id string, opts ...personOpt) *tree {
	return t.add(id, entities.GenderMale, opts...)
}

func (t *tree) woman(id string, opts ...personOpt) *tree {
	return t.add(id, entities.GenderFemale, opts...)
}

func (t *tree) add(id string, g entities.Gender, opts ...personOpt) *tree {
	p := entities.Person{ID: id, Name: id, Gender: g, Alive: true}
	for _, opt := range opts {
		opt(&p)
	}
	t.people = append(t.people, p)
	return t
}

func (t *tree) parent(parentID string, childIDs ...string) *tree {
	for _, c := range childIDs {
		t.edges = append(t.edges, entities.Relationship{
			ID:              fmt.Sprintf("pc-%s-%s", parentID, c),
			PersonID:        parentID,
			RelatedPersonID: c,
			Kind:            entities.EdgeParentChild,
		})
	}
	return t
}

func (t *tree) marry(a, b string) *tree {
	t.edges = append(t.edges, entities.Relationship{
		ID:              fmt.Sprintf("sp-%s-%s", a, b),
		PersonID:        a,
		RelatedPersonID: b,
		Kind:            entities.EdgeSpouse,
	})
	return t
}

func (t *tree) graph() *Graph {
	return Build(t.people, t.edges)
}

// familyTree is a three-branch family used across classifier and term tests.
//
//	ong + ba            -> bac (1945), cha (1950), co (1955)
//	ongngoai + bangoai  -> di (1948), me (1952), cau (1955)
//	cha + me            -> an (1975), binh (1978)
//	bac + bacgai        -> cuong (1980)
//	co + duong          -> dung (1970)
//	an + hoa            -> khoa -> minh
//	ongsui              -> hoa (1976), lan (1979); lan + tuan
//	binh + son          -> thu
func familyTree() *tree {
	t := &tree{}
	t.man("ong", born("1920-01-01")).woman("ba", born("1922-01-01")).marry("ong", "ba")
	t.man("bac", born("1945-01-01")).man("cha", born("1950-01-01")).woman("co", born("1955-01-01"))
	t.parent("ong", "bac", "cha", "co").parent("ba", "bac", "cha", "co")

	t.man("ongngoai").woman("bangoai").marry("ongngoai", "bangoai")
	t.woman("di", born("1948-01-01")).woman("me", born("1952-01-01")).man("cau", born("1955-01-01"))
	t.parent("ongngoai", "di", "me", "cau").parent("bangoai", "di", "me", "cau")

	t.marry("cha", "me")
	t.man("an", born("1975-01-01")).woman("binh", born("1978-01-01"))
	t.parent("cha", "an", "binh").parent("me", "an", "binh")

	t.woman("bacgai").marry("bac", "bacgai")
	t.man("cuong", born("1980-01-01")).parent("bac", "cuong").parent("bacgai", "cuong")

	t.man("duong").marry("co", "duong")
	t.woman("dung", born("1970-01-01")).parent("co", "dung").parent("duong", "dung")

	t.woman("hoa", born("1976-01-01")).marry("an", "hoa")
	t.man("khoa").parent("an", "khoa").parent("hoa", "khoa")
	t.man("minh").parent("khoa", "minh")

	t.man("ongsui").woman("lan", born("1979-01-01")).parent("ongsui", "hoa", "lan")
	t.man("tuan").marry("lan", "tuan")

	t.man("son").marry("binh", "son")
	t.woman("thu").parent("binh", "thu").parent("son", "thu")
	return t
}

// parentsCousinsTree hangs the parents' cousins off a great-grandparent on each
// side, so the lineage word comes from the grandparent on the path.
//
//	cu       -> baco (1930), banoi (1935), ongtrai (1938)
//	baco     -> bacho
//	banoi    -> cha (1960)
//	ongtrai  -> chuho, coho
//	cungoai  -> ongca (1928), ongngoai (1932), ongem (1936)
//	ongca    -> bacngoai
//	ongngoai -> me (1962)
//	ongem    -> cauho, diho
//	cha + me -> an -> chau
func parentsCousinsTree() *tree {
	t := &tree{}
	t.man("cu")
	t.woman("baco", born("1930-01-01")).woman("banoi", born("1935-01-01")).man("ongtrai", born("1938-01-01"))
	t.parent("cu", "baco", "banoi", "ongtrai")
	t.man("bacho").parent("baco", "bacho")
	t.man("chuho").woman("coho").parent("ongtrai", "chuho", "coho")
	t.man("cha", born("1960-01-01")).parent("banoi", "cha")

	t.man("cungoai")
	t.man("ongca", born("1928-01-01")).man("ongngoai", born("1932-01-01")).man("ongem", born("1936-01-01"))
	t.parent("cungoai", "ongca", "ongngoai", "ongem")
	t.man("bacngoai").parent("ongca", "bacngoai")
	t.man("cauho").woman("diho").parent("ongem", "cauho", "diho")
	t.woman("me", born("1962-01-01")).parent("ongngoai", "me")

	t.marry("cha", "me")
	t.man("an", born("1990-01-01")).parent("cha", "an").parent("me", "an")
	t.man("chau").parent("an", "chau")
	return t
}

// randomTree generates an acyclic family: every person picks up to two
// parents among earlier people, plus a few random marriages.
func randomTree(rng *rand.Rand, n int) *tree {
	t := &tree{}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("p%02d", i)
		if rng.Intn(2) == 0 {
			t.man(id, order(rng.Intn(5)))
		} else {
			t.woman(id, order(rng.Intn(5)))
		}
		if i == 0 {
			continue
		}
		for k := rng.Intn(3); k > 0; k-- {
			t.parent(fmt.Sprintf("p%02d", rng.Intn(i)), id)
		}
	}
	for k := rng.Intn(n/3 + 1); k > 0; k-- {
		a, b := rng.Intn(n), rng.Intn(n)
		if a != b {
			t.marry(fmt.Sprintf("p%02d", a), fmt.Sprintf("p%02d", b))
		}
	}
	return t
}

// bruteDistance is an independent BFS over the undirected edge list.
func bruteDistance(t *tree, from, to string) int {
	adj := make(map[string][]string)
	for _, e := range t.edges {
		if e.PersonID == e.RelatedPersonID {
			continue
		}
		adj[e.PersonID] = append(adj[e.PersonID], e.RelatedPersonID)
		adj[e.RelatedPersonID] = append(adj[e.RelatedPersonID], e.PersonID)
	}
	dist := map[string]int{from: 0}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return dist[cur]
		}
		for _, next := range adj[cur] {
			if _, seen := dist[next]; !seen {
				dist[next] = dist[cur] + 1
				queue = append(queue, next)
			}
		}
	}
	return -1
}

func mustPath(t *testing.T, g *Graph, from, to string) *Path {
	t.Helper()
	p, err := FindPath(g, from, to)
	require.NoError(t, err)
	return p
}
