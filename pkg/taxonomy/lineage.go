package taxonomy

// Rank is one of the six ranks of a flattened lineage.
type Rank int

const (
	Kingdom Rank = iota
	Phylum
	Class
	Order
	Family
	Genus
)

// RanksNum is the number of ranks in a Lineage.
const RanksNum = 6

// Ranks lists all ranks of a Lineage from the highest to the lowest.
var Ranks = []Rank{Kingdom, Phylum, Class, Order, Family, Genus}

// String returns the column name of the rank.
func (r Rank) String() string {
	switch r {
	case Kingdom:
		return "Kingdom"
	case Phylum:
		return "Phylum"
	case Class:
		return "Class"
	case Order:
		return "Order"
	case Family:
		return "Family"
	case Genus:
		return "Genus"
	default:
		return ""
	}
}

// RankFromLabel maps a rank label of a nodes dump to a Rank.
// The Kingdom slot takes the "superkingdom" label, a literal "kingdom"
// label does not map to anything. All other labels except phylum, class,
// order, family and genus are ignored.
func RankFromLabel(label string) (Rank, bool) {
	switch label {
	case "superkingdom":
		return Kingdom, true
	case "phylum":
		return Phylum, true
	case "class":
		return Class, true
	case "order":
		return Order, true
	case "family":
		return Family, true
	case "genus":
		return Genus, true
	default:
		return 0, false
	}
}

// Lineage is a projection of a taxon's ancestry onto six ranks.
// Empty strings mean that the rank was not found.
type Lineage [RanksNum]string

// Get returns the name at the given rank.
func (l Lineage) Get(r Rank) string {
	return l[r]
}

// Values returns names of all ranks in Kingdom to Genus order.
func (l Lineage) Values() []string {
	return l[:]
}

// IsEmpty is true if no rank was resolved.
func (l Lineage) IsEmpty() bool {
	return l == Lineage{}
}

// Header returns column names for a Lineage.
func Header() []string {
	res := make([]string, len(Ranks))
	for i, r := range Ranks {
		res[i] = r.String()
	}
	return res
}
