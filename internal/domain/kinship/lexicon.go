package kinship

import (
	"fmt"
	"strings"
)

// Region selects the dialect used for the region-dependent base terms.
type Region uint8

const (
	RegionNorth   Region = iota // Bắc
	RegionCentral               // Trung
	RegionSouth                 // Nam
	regionCount
)

func (r Region) String() string {
	switch r {
	case RegionCentral:
		return "trung"
	case RegionSouth:
		return "nam"
	default:
		return "bac"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Region) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ParseRegion converts a region code. An empty string selects RegionNorth.
func ParseRegion(s string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "bac", "bắc", "north":
		return RegionNorth, nil
	case "trung", "central":
		return RegionCentral, nil
	case "nam", "south":
		return RegionSouth, nil
	default:
		return RegionNorth, fmt.Errorf("invalid region: %q (valid: bac, trung, nam)", s)
	}
}

// Table indexes. Lineage: paternal, maternal. Gender: male, female.
// Rank: younger, elder than the connecting parent.
const (
	linePaternal = 0
	lineMaternal = 1

	male   = 0
	female = 1

	rankYounger = 0
	rankElder   = 1
)

// lexicon holds the only words that differ between regions. Everything
// structural (side, seniority, generation) is decided by the resolver.
type lexicon struct {
	father, mother string
	stepFather     string
	stepMother     string

	// auntUncle[line][gender][rank] is a parent's sibling.
	auntUncle [2][2][2]string
	// auntUncleSpouse is indexed by the blood aunt or uncle, not the spouse.
	auntUncleSpouse [2][2][2]string

	greatGrandparent      [2]string
	greatGreatGrandparent [2]string

	coParent        [2]string
	coParentGeneric string
}

var lexicons = [regionCount]lexicon{
	RegionNorth: {
		father:     "cha",
		mother:     "mẹ",
		stepFather: "bố dượng",
		stepMother: "mẹ kế",
		auntUncle: [2][2][2]string{
			linePaternal: {male: {"chú", "bác"}, female: {"cô", "bác"}},
			lineMaternal: {male: {"cậu", "bác"}, female: {"dì", "bác"}},
		},
		auntUncleSpouse: [2][2][2]string{
			linePaternal: {male: {"thím", "bác"}, female: {"chú", "bác"}},
			lineMaternal: {male: {"mợ", "bác"}, female: {"chú", "bác"}},
		},
		greatGrandparent:      [2]string{"cụ ông", "cụ bà"},
		greatGreatGrandparent: [2]string{"kỵ ông", "kỵ bà"},
		coParent:              [2]string{"ông thông gia", "bà thông gia"},
		coParentGeneric:       "thông gia",
	},
	RegionCentral: {
		father:     "ba",
		mother:     "mạ",
		stepFather: "ba dượng",
		stepMother: "mạ kế",
		auntUncle: [2][2][2]string{
			linePaternal: {male: {"chú", "bác"}, female: {"o", "o"}},
			lineMaternal: {male: {"cậu", "cậu"}, female: {"dì", "dì"}},
		},
		auntUncleSpouse: [2][2][2]string{
			linePaternal: {male: {"thím", "bác"}, female: {"dượng", "dượng"}},
			lineMaternal: {male: {"mự", "mự"}, female: {"dượng", "dượng"}},
		},
		greatGrandparent:      [2]string{"ông cố", "bà cố"},
		greatGreatGrandparent: [2]string{"ông sơ", "bà sơ"},
		coParent:              [2]string{"ông sui", "bà sui"},
		coParentGeneric:       "sui gia",
	},
	RegionSouth: {
		father:     "ba",
		mother:     "má",
		stepFather: "ba dượng",
		stepMother: "má kế",
		auntUncle: [2][2][2]string{
			linePaternal: {male: {"chú", "bác"}, female: {"cô", "cô"}},
			lineMaternal: {male: {"cậu", "cậu"}, female: {"dì", "dì"}},
		},
		auntUncleSpouse: [2][2][2]string{
			linePaternal: {male: {"thím", "bác"}, female: {"dượng", "dượng"}},
			lineMaternal: {male: {"mợ", "mợ"}, female: {"dượng", "dượng"}},
		},
		greatGrandparent:      [2]string{"ông cố", "bà cố"},
		greatGreatGrandparent: [2]string{"ông sơ", "bà sơ"},
		coParent:              [2]string{"ông sui", "bà sui"},
		coParentGeneric:       "sui gia",
	},
}
