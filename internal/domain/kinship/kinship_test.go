package kinship

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parentsTree: 1 (male) and 2 (female) are married with children 3 (male,
// older) and 4 (female).
func parentsTree() *tree {
	tr := &tree{}
	tr.man("1").woman("2").marry("1", "2")
	tr.man("3", born("1980-05-01")).woman("4", born("1984-02-11"))
	tr.parent("1", "3", "4").parent("2", "3", "4")
	return tr
}

func TestRelate_DirectLineage(t *testing.T) {
	tr := &tree{}
	tr.man("1").man("3").parent("1", "3")

	res, err := Relate(tr.people, tr.edges, "1", "3", Options{Region: RegionNorth})
	require.NoError(t, err)
	assert.Equal(t, Descendant{Degree: 1}, res.Classification.Relation)
	assert.Equal(t, "con", res.Terms.AcallsB)

	res, err = Relate(tr.people, tr.edges, "3", "1", Options{Region: RegionNorth})
	require.NoError(t, err)
	assert.Equal(t, Ancestor{Degree: 1}, res.Classification.Relation)
	assert.Equal(t, "cha", res.Terms.AcallsB)
}

func TestRelate_SiblingsWithSeniority(t *testing.T) {
	tr := parentsTree()

	res, err := Relate(tr.people, tr.edges, "3", "4", Options{})
	require.NoError(t, err)

	assert.Equal(t, KindSibling, res.Classification.Kind)
	assert.Equal(t, SeniorityElder, res.Classification.Seniority)
	assert.Equal(t, "em", res.Terms.AcallsB)
	assert.Equal(t, "anh", res.Terms.BcallsA)
}

func TestRelate_PaternalCousins(t *testing.T) {
	tr := cousinsTree()

	res, err := Relate(tr.people, tr.edges, "5", "6", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"5", "3", "1", "4", "6"}, res.Path)
	c := res.Classification
	assert.Equal(t, KindCollateral, c.Kind)
	assert.Equal(t, 2, c.Ascents)
	assert.Equal(t, 2, c.Descents)
	assert.Equal(t, SidePaternal, c.Side)
	assert.Equal(t, "collateral(up=2, down=2)", c.Label)
	// 5 descends from the elder sibling.
	assert.Equal(t, "em họ", res.Terms.AcallsB)
	assert.Equal(t, "anh họ", res.Terms.BcallsA)
}

func TestRelate_InLaw(t *testing.T) {
	tr := parentsTree()
	tr.man("7").marry("4", "7")

	res, err := Relate(tr.people, tr.edges, "3", "7", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"3", "1", "4", "7"}, res.Path)
	assert.Equal(t, []Hop{HopParent, HopChild, HopSpouse}, res.Hops)
	assert.Equal(t, KindInLaw, res.Classification.Kind)
	assert.Equal(t, InLaw{
		Of:       Sibling{Seniority: SeniorityElder},
		Position: PositionByMarriage,
		Far:      f,
	}, res.Classification.Relation)
	assert.Equal(t, "em rể", res.Terms.AcallsB)
	assert.Equal(t, "anh vợ", res.Terms.BcallsA)
}

func TestRelate_Errors(t *testing.T) {
	tr := parentsTree()
	tr.man("9")

	_, err := Relate(tr.people, tr.edges, "3", "3", Options{})
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = Relate(tr.people, tr.edges, "3", "9", Options{})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidQuery)
}

func TestRelate_UnclassifiedKeepsPath(t *testing.T) {
	tr := &tree{}
	tr.man("p").woman("q").man("k")
	tr.parent("p", "k").parent("q", "k")

	res, err := Relate(tr.people, tr.edges, "p", "q", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"p", "k", "q"}, res.Path)
	assert.Equal(t, "p -child-> k -parent-> q", res.Description)
	assert.Equal(t, genericRelative, res.Terms.AcallsB)
	assert.True(t, res.Terms.Approximate)
}

func TestRelate_DoesNotMutateInput(t *testing.T) {
	tr := familyTree()
	before := fmt.Sprintf("%+v %+v", tr.people, tr.edges)

	_, err := Relate(tr.people, tr.edges, "an", "tuan", Options{Region: RegionSouth})
	require.NoError(t, err)

	assert.Equal(t, before, fmt.Sprintf("%+v %+v", tr.people, tr.edges))
}

func TestResult_JSON(t *testing.T) {
	tr := cousinsTree()
	res, err := Relate(tr.people, tr.edges, "5", "6", Options{})
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, []any{"parent", "parent", "child", "child"}, got["hops"])

	c := got["classification"].(map[string]any)
	assert.Equal(t, "collateral", c["kind"])
	assert.Equal(t, "paternal", c["side"])
	assert.Equal(t, "elder", c["seniority"])

	terms := got["terms"].(map[string]any)
	assert.Equal(t, "em họ", terms["a_calls_b"])
	assert.Equal(t, false, terms["approximate"])
}

func TestReciprocity_RandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 30; round++ {
		tr := randomTree(rng, 6+rng.Intn(20))
		g := tr.graph()
		region := Region(rng.Intn(int(regionCount)))

		for q := 0; q < 20; q++ {
			a := tr.people[rng.Intn(len(tr.people))]
			b := tr.people[rng.Intn(len(tr.people))]
			p, err := FindPath(g, a.ID, b.ID)
			if err != nil {
				continue
			}
			name := fmt.Sprintf("round %d %s->%s", round, a.ID, b.ID)

			fwd := Classify(p, g)
			back := Classify(p.Reverse(), g)
			assert.Equal(t, fwd.Relation.Invert(), back.Relation, name)
			assert.Equal(t, fwd.Ascents, back.Descents, name)

			opts := Options{Region: region}
			ab := Resolve(fwd.Relation, a.Gender, b.Gender, opts)
			ba := Resolve(back.Relation, b.Gender, a.Gender, opts)
			assert.Equal(t, ab.AcallsB, ba.BcallsA, name)
			assert.Equal(t, ab.BcallsA, ba.AcallsB, name)
			assert.Equal(t, ab.Approximate, ba.Approximate, name)
		}
	}
}

func TestReciprocity_FamilyTree(t *testing.T) {
	tr := familyTree()
	g := tr.graph()

	for _, a := range tr.people {
		for _, b := range tr.people {
			if a.ID == b.ID {
				continue
			}
			ab, err := Relate(tr.people, tr.edges, a.ID, b.ID, Options{})
			require.NoError(t, err)

			back := Classify(mustPath(t, g, a.ID, b.ID).Reverse(), g)
			ba := Resolve(back.Relation, b.Gender, a.Gender, Options{})
			assert.Equal(t, ab.Terms.AcallsB, ba.BcallsA, "%s->%s", a.ID, b.ID)
			assert.Equal(t, ab.Terms.BcallsA, ba.AcallsB, "%s->%s", a.ID, b.ID)
		}
	}
}
