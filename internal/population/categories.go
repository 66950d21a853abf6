package population

// AreaClassification is a rural/urban classification of an output area
type AreaClassification int

const (
	Total AreaClassification = iota
	UrbanTotal
	UrbanMajorConurbation
	UrbanMinorConurbation
	UrbanCity
	UrbanSparseTownCity
	RuralTotal
	RuralTown
	RuralSparseTown
	RuralVillage
	RuralSparseVillage
	RuralHamlet
	RuralSparseHamlet

	numAreaClassifications
)

var areaClassificationNames = [numAreaClassifications]string{
	Total:                 "Total",
	UrbanTotal:            "Urban (total)",
	UrbanMajorConurbation: "Urban major conurbation",
	UrbanMinorConurbation: "Urban minor conurbation",
	UrbanCity:             "Urban city and town",
	UrbanSparseTownCity:   "Urban city and town in a sparse setting",
	RuralTotal:            "Rural (total)",
	RuralTown:             "Rural town and fringe",
	RuralSparseTown:       "Rural town and fringe in a sparse setting",
	RuralVillage:          "Rural village",
	RuralSparseVillage:    "Rural village in a sparse setting",
	RuralHamlet:           "Rural hamlet and isolated dwellings",
	RuralSparseHamlet:     "Rural hamlet and isolated dwellings in a sparse setting",
}

// String returns the name used in the export
func (a AreaClassification) String() string {
	if a >= 0 && a < numAreaClassifications {
		return areaClassificationNames[a]
	}
	return "Unknown"
}

// ParseAreaClassification maps an export name to its classification
func ParseAreaClassification(s string) (AreaClassification, error) {
	for i, name := range areaClassificationNames {
		if name == s {
			return AreaClassification(i), nil
		}
	}
	return 0, &ParseError{Kind: s, Detail: "unknown area classification"}
}

// PersonType is a population cell of the table
type PersonType int

const (
	AllResidents PersonType = iota
	Male
	Female
	LivesInHousehold
	LivesInCommunalEstablishment
	Schoolchild

	numPersonTypes
)

var personTypeNames = [numPersonTypes]string{
	AllResidents:                 "All usual residents",
	Male:                         "Males",
	Female:                       "Females",
	LivesInHousehold:             "Lives in a household",
	LivesInCommunalEstablishment: "Lives in a communal establishment",
	Schoolchild:                  "Schoolchild or full-time student aged 4 and over at their non term-time address",
}

func (p PersonType) String() string {
	if p >= 0 && p < numPersonTypes {
		return personTypeNames[p]
	}
	return "Unknown"
}

// ParsePersonType maps an export cell name to its person type
func ParsePersonType(s string) (PersonType, error) {
	for i, name := range personTypeNames {
		if name == s {
			return PersonType(i), nil
		}
	}
	return 0, &ParseError{Kind: s, Detail: "unknown person type"}
}
