package kinship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/xungho/internal/domain/entities"
)

func TestClassify_FamilyTree(t *testing.T) {
	g := familyTree().graph()

	tests := []struct {
		name string
		from string
		to   string
		want Relation
	}{
		{"parent", "an", "cha", Ancestor{Degree: 1}},
		{"child", "cha", "an", Descendant{Degree: 1}},
		{"paternal grandparent", "an", "ong", Ancestor{Degree: 2, Side: SidePaternal}},
		{"maternal grandparent", "an", "bangoai", Ancestor{Degree: 2, Side: SideMaternal}},
		{"great-great-grandchild", "ong", "minh", Descendant{Degree: 4, Side: SidePaternal}},
		{"younger sibling", "an", "binh", Sibling{Seniority: SeniorityElder}},
		{"elder sibling", "binh", "an", Sibling{Seniority: SeniorityYounger}},
		{
			"father's elder brother", "an", "bac",
			Collateral{Up: 2, Down: 1, Near: SidePaternal, Seniority: SeniorityYounger},
		},
		{
			"mother's younger brother", "an", "cau",
			Collateral{Up: 2, Down: 1, Near: SideMaternal, Seniority: SeniorityElder},
		},
		{
			"nephew through sister", "an", "thu",
			Collateral{Up: 1, Down: 2, Far: SideMaternal, Seniority: SeniorityElder},
		},
		{
			// Cuong is younger than An but descends from the senior branch.
			"cousin from senior branch", "an", "cuong",
			Collateral{Up: 2, Down: 2, Seniority: SeniorityYounger},
		},
		{
			"cousin from junior branch", "an", "dung",
			Collateral{Up: 2, Down: 2, Seniority: SeniorityElder},
		},
		{"spouse", "an", "hoa", Spouse{}},
		{
			"wife's father", "an", "ongsui",
			InLaw{Of: Ancestor{Degree: 1}, Position: PositionViaSpouse, Near: entities.GenderFemale},
		},
		{
			"son's wife", "cha", "hoa",
			InLaw{Of: Descendant{Degree: 1}, Position: PositionByMarriage, Far: entities.GenderMale},
		},
		{
			"brother's wife", "bac", "me",
			InLaw{Of: Sibling{Seniority: SeniorityElder}, Position: PositionByMarriage, Far: entities.GenderMale},
		},
		{
			"wife's younger sister", "an", "lan",
			InLaw{Of: Sibling{Seniority: SeniorityElder}, Position: PositionViaSpouse, Near: entities.GenderFemale},
		},
		{
			"wife's sister's husband", "an", "tuan",
			InLaw{
				Of:       Sibling{Seniority: SeniorityElder},
				Position: PositionBothSides,
				Near:     entities.GenderFemale,
				Far:      entities.GenderFemale,
			},
		},
		{"co-parents", "cha", "ongsui", CoParentInLaw{Down: 1, Up: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(mustPath(t, g, tt.from, tt.to), g)

			assert.Equal(t, tt.want, c.Relation)
			assert.Equal(t, tt.want.Kind(), c.Kind)
			assert.Equal(t, tt.want.String(), c.Label)
		})
	}
}

func TestClassify_Modifiers(t *testing.T) {
	g := familyTree().graph()

	c := Classify(mustPath(t, g, "an", "cuong"), g)
	assert.Equal(t, 2, c.Ascents)
	assert.Equal(t, 2, c.Descents)
	assert.Equal(t, SidePaternal, c.Side)
	assert.Equal(t, SeniorityYounger, c.Seniority)
	assert.False(t, c.InLaw)

	c = Classify(mustPath(t, g, "an", "di"), g)
	assert.Equal(t, SideMaternal, c.Side)
	assert.Equal(t, SeniorityYounger, c.Seniority)

	c = Classify(mustPath(t, g, "an", "binh"), g)
	assert.Equal(t, SideNone, c.Side, "a single ascent carries no side")

	c = Classify(mustPath(t, g, "bac", "me"), g)
	assert.True(t, c.InLaw)
	assert.Equal(t, KindInLaw, c.Kind)
}

func TestClassify_CollateralLine(t *testing.T) {
	g := parentsCousinsTree().graph()

	tests := []struct {
		name     string
		from, to string
		want     Relation
	}{
		{
			"father's cousin through grandmother", "an", "chuho",
			Collateral{Up: 3, Down: 2, Near: SidePaternal, Seniority: SeniorityElder},
		},
		{
			"mother's cousin through grandfather", "an", "bacngoai",
			Collateral{Up: 3, Down: 2, Near: SideMaternal, Seniority: SeniorityYounger},
		},
		{
			"grandfather's cousin through great-grandmother", "chau", "chuho",
			Collateral{Up: 4, Down: 2, Near: SidePaternal, Seniority: SeniorityElder},
		},
		{
			"child of grandmother's cousin", "chuho", "an",
			Collateral{Up: 2, Down: 3, Far: SidePaternal, Seniority: SeniorityYounger},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(mustPath(t, g, tt.from, tt.to), g)
			assert.Equal(t, tt.want, c.Relation)
		})
	}
}

func TestClassify_SpouseSide(t *testing.T) {
	tr := &tree{}
	tr.man("an").woman("hoa").marry("an", "hoa")
	tr.man("chavo").woman("mevo").parent("chavo", "hoa").parent("mevo", "hoa")
	tr.man("ongnoivo").parent("ongnoivo", "chavo")
	tr.woman("bangoaivo").parent("bangoaivo", "mevo")
	g := tr.graph()

	c := Classify(mustPath(t, g, "an", "ongnoivo"), g)
	assert.Equal(t, InLaw{Of: Ancestor{Degree: 2, Side: SidePaternal}, Position: PositionViaSpouse, Near: entities.GenderFemale}, c.Relation)
	assert.Equal(t, SidePaternal, c.Side)
	assert.True(t, c.InLaw)

	c = Classify(mustPath(t, g, "an", "bangoaivo"), g)
	assert.Equal(t, SideMaternal, c.Side)

	c = Classify(mustPath(t, g, "an", "chavo"), g)
	assert.Equal(t, SideNone, c.Side, "a single ascent past the spouse carries no side")

	res, err := Relate(tr.people, tr.edges, "an", "ongnoivo", Options{})
	require.NoError(t, err)
	assert.Equal(t, "ông nội vợ", res.Terms.AcallsB)
	assert.Equal(t, SidePaternal, res.Classification.Side)
}

func TestClassify_StepFamily(t *testing.T) {
	tr := &tree{}
	tr.man("f").woman("m1").woman("m2")
	tr.man("c1", born("2000-01-01")).man("c2", born("2005-01-01"))
	tr.marry("f", "m1").marry("f", "m2")
	tr.parent("f", "c1").parent("m1", "c1").parent("m2", "c2")
	g := tr.graph()

	c := Classify(mustPath(t, g, "c1", "c2"), g)
	assert.Equal(t, InLaw{Of: Sibling{Seniority: SeniorityElder}, Position: PositionStep}, c.Relation)

	c = Classify(mustPath(t, g, "c1", "m2"), g)
	assert.Equal(t, InLaw{Of: Ancestor{Degree: 1}, Position: PositionByMarriage, Far: entities.GenderMale}, c.Relation)
}

func TestClassify_Unclassified(t *testing.T) {
	// Two parents of the same child without a recorded marriage.
	tr := &tree{}
	tr.man("p").woman("q").man("k")
	tr.parent("p", "k").parent("q", "k")
	g := tr.graph()

	c := Classify(mustPath(t, g, "p", "q"), g)

	assert.Equal(t, KindUnclassified, c.Kind)
	assert.Equal(t, "unclassified", c.Label)
	assert.Equal(t, 1, c.Ascents)
	assert.Equal(t, 1, c.Descents)
}

func TestClassify_UnknownPersonOnPath(t *testing.T) {
	g := familyTree().graph()

	c := Classify(&Path{IDs: []string{"an", "ghost"}, Hops: []Hop{HopParent}}, g)
	assert.Equal(t, KindUnclassified, c.Kind)

	c = Classify(&Path{IDs: []string{"an"}}, g)
	assert.Equal(t, KindUnclassified, c.Kind)
}

func TestCompareSeniority(t *testing.T) {
	one, two := 1, 2
	early := (&tree{}).man("x", born("1990-01-01")).people[0].BirthDate
	late := (&tree{}).man("x", born("1995-01-01")).people[0].BirthDate

	tests := []struct {
		name string
		a, b entities.Person
		want Seniority
	}{
		{"birth date decides", entities.Person{BirthDate: early}, entities.Person{BirthDate: late}, SeniorityElder},
		{
			"birth date beats birth order",
			entities.Person{BirthDate: late, BirthOrder: &one},
			entities.Person{BirthDate: early, BirthOrder: &two},
			SeniorityYounger,
		},
		{
			"equal dates fall back to order",
			entities.Person{BirthDate: early, BirthOrder: &one},
			entities.Person{BirthDate: early, BirthOrder: &two},
			SeniorityElder,
		},
		{"order only", entities.Person{BirthOrder: &two}, entities.Person{BirthOrder: &one}, SeniorityYounger},
		{"one date missing", entities.Person{BirthDate: early}, entities.Person{}, SeniorityUnknown},
		{"nothing known", entities.Person{}, entities.Person{}, SeniorityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, compareSeniority(&tt.a, &tt.b))
		})
	}
}

func TestRelation_InvertRoundTrip(t *testing.T) {
	rels := []Relation{
		Spouse{},
		Ancestor{Degree: 3, Side: SideMaternal},
		Sibling{Seniority: SeniorityElder},
		Collateral{Up: 3, Down: 1, Near: SidePaternal, Seniority: SeniorityYounger},
		Collateral{Up: 1, Down: 3, Far: SideMaternal, Seniority: SeniorityElder},
		InLaw{Of: Sibling{Seniority: SeniorityYounger}, Position: PositionViaSpouse, Near: entities.GenderFemale},
		InLaw{Of: Ancestor{Degree: 1}, Position: PositionStep},
		CoParentInLaw{Down: 2, Up: 1},
		Unclassified{},
	}

	for _, rel := range rels {
		t.Run(rel.String(), func(t *testing.T) {
			assert.Equal(t, rel, rel.Invert().Invert())
			assert.Equal(t, rel.Gap(), rel.Invert().Gap())
		})
	}
}
