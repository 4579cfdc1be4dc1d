package annotator

import (
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

// Stats accumulates per-row outcomes and distinct values of a run.
type Stats struct {
	TotalRows       int
	NonEmptySpecies int
	Matched         int
	Unmatched       int

	ranks   [taxonomy.RanksNum]map[string]struct{}
	species map[string]struct{}
}

// NewStats creates empty Stats.
func NewStats() *Stats {
	res := &Stats{species: make(map[string]struct{})}
	for i := range res.ranks {
		res.ranks[i] = make(map[string]struct{})
	}
	return res
}

// AddSpecies registers a non-empty species name.
func (s *Stats) AddSpecies(name string) {
	s.NonEmptySpecies++
	s.species[name] = struct{}{}
}

// AddLineage registers a resolved lineage.
func (s *Stats) AddLineage(l taxonomy.Lineage) {
	s.Matched++
	for _, r := range taxonomy.Ranks {
		if v := l.Get(r); v != "" {
			s.ranks[r][v] = struct{}{}
		}
	}
}

// Distinct returns the current number of distinct names at a rank.
func (s *Stats) Distinct(r taxonomy.Rank) int {
	return len(s.ranks[r])
}

// Summary collapses distinct-value sets into counts.
func (s *Stats) Summary() Summary {
	return Summary{
		TotalRows:       s.TotalRows,
		NonEmptySpecies: s.NonEmptySpecies,
		Matched:         s.Matched,
		Unmatched:       s.Unmatched,
		Kingdoms:        len(s.ranks[taxonomy.Kingdom]),
		Phyla:           len(s.ranks[taxonomy.Phylum]),
		Classes:         len(s.ranks[taxonomy.Class]),
		Orders:          len(s.ranks[taxonomy.Order]),
		Families:        len(s.ranks[taxonomy.Family]),
		Genera:          len(s.ranks[taxonomy.Genus]),
		Species:         len(s.species),
	}
}

// Summary is the final statistics of an annotation run.
type Summary struct {
	TotalRows       int `json:"totalRows"`
	NonEmptySpecies int `json:"nonEmptySpecies"`
	Matched         int `json:"matched"`
	Unmatched       int `json:"unmatched"`

	Kingdoms int `json:"kingdomCount"`
	Phyla    int `json:"phylumCount"`
	Classes  int `json:"classCount"`
	Orders   int `json:"orderCount"`
	Families int `json:"familyCount"`
	Genera   int `json:"genusCount"`
	Species  int `json:"speciesCount"`

	// Elapsed is the duration of the run in seconds.
	Elapsed float64 `json:"elapsedSec,omitempty"`
}

// Level is one line of the diversity report.
type Level struct {
	Name  string
	Count int
}

// Levels returns distinct counts from Kingdom down to Species.
func (s Summary) Levels() []Level {
	return []Level{
		{"Kingdom", s.Kingdoms},
		{"Phylum", s.Phyla},
		{"Class", s.Classes},
		{"Order", s.Orders},
		{"Family", s.Families},
		{"Genus", s.Genera},
		{"Species", s.Species},
	}
}
