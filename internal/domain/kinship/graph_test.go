package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/xungho/internal/domain/entities"
)

func TestBuild_Adjacency(t *testing.T) {
	tr := &tree{}
	tr.man("1").woman("2").man("3").woman("4")
	tr.marry("1", "2").parent("1", "3", "4").parent("2", "3", "4")

	g := tr.graph()

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, []string{"3", "4"}, g.ChildrenOf("1"))
	assert.Equal(t, []string{"1", "2"}, g.ParentsOf("3"))
	assert.Equal(t, []string{"2"}, g.SpousesOf("1"))
	assert.Equal(t, []string{"1"}, g.SpousesOf("2"))
	assert.Empty(t, g.ParentsOf("1"))
	assert.Nil(t, g.ChildrenOf("missing"))

	p, ok := g.Person("4")
	require.True(t, ok)
	assert.Equal(t, entities.GenderFemale, p.Gender)

	_, ok = g.Person("missing")
	assert.False(t, ok)
}

func TestBuild_DropsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		edges []entities.Relationship
	}{
		{
			name:  "unknown endpoint",
			edges: []entities.Relationship{{PersonID: "1", RelatedPersonID: "ghost", Kind: entities.EdgeParentChild}},
		},
		{
			name:  "self loop",
			edges: []entities.Relationship{{PersonID: "1", RelatedPersonID: "1", Kind: entities.EdgeSpouse}},
		},
		{
			name:  "unknown kind",
			edges: []entities.Relationship{{PersonID: "1", RelatedPersonID: "2", Kind: entities.EdgeKind("sibling")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := &tree{}
			tr.man("1").woman("2")
			g := Build(tr.people, tt.edges)

			assert.Equal(t, 2, g.Len())
			assert.Empty(t, g.ParentsOf("1"))
			assert.Empty(t, g.ChildrenOf("1"))
			assert.Empty(t, g.SpousesOf("1"))
			assert.Empty(t, g.SpousesOf("2"))
		})
	}
}

func TestBuild_CollapsesDuplicates(t *testing.T) {
	tr := &tree{}
	tr.man("1").woman("2").man("3")
	tr.parent("1", "3").parent("1", "3")
	tr.marry("1", "2").marry("2", "1")
	// Repeated ID: the first record wins.
	tr.woman("1")

	g := tr.graph()

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"3"}, g.ChildrenOf("1"))
	assert.Equal(t, []string{"1"}, g.ParentsOf("3"))
	assert.Equal(t, []string{"2"}, g.SpousesOf("1"))

	p, _ := g.Person("1")
	assert.Equal(t, entities.GenderMale, p.Gender)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	tr := familyTree()
	people := append([]entities.Person(nil), tr.people...)
	edges := append([]entities.Relationship(nil), tr.edges...)

	_ = Build(tr.people, tr.edges)

	assert.Equal(t, people, tr.people)
	assert.Equal(t, edges, tr.edges)
}

func TestBitset(t *testing.T) {
	b := newBitset(130)
	for _, i := range []int{0, 63, 64, 129} {
		assert.False(t, b.has(i))
		b.set(i)
		assert.True(t, b.has(i))
	}
	assert.False(t, b.has(65))
}
