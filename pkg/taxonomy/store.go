// Package taxonomy keeps an in-memory NCBI-style taxonomy and resolves
// names and lineages against it.
// This is a pure package, reading dump files is done by internal/iotaxdump.
package taxonomy

import (
	"log/slog"
	"strings"

	"github.com/gnames/gnlib"
)

// NameClass is the class of a name record in a names dump.
type NameClass int

const (
	OtherName NameClass = iota
	ScientificName
	Synonym
	EquivalentName
)

// NewNameClass converts a name-class tag of a names dump into NameClass.
// Unknown tags (authority, common name etc.) become OtherName.
func NewNameClass(tag string) NameClass {
	switch strings.TrimSpace(tag) {
	case "scientific name":
		return ScientificName
	case "synonym":
		return Synonym
	case "equivalent name":
		return EquivalentName
	default:
		return OtherName
	}
}

// String returns the tag of the class as it appears in a names dump.
func (nc NameClass) String() string {
	switch nc {
	case ScientificName:
		return "scientific name"
	case Synonym:
		return "synonym"
	case EquivalentName:
		return "equivalent name"
	default:
		return "other"
	}
}

// Indexed is true for classes that take part in name matching.
func (nc NameClass) Indexed() bool {
	return nc != OtherName
}

// Node is one record of a nodes dump.
type Node struct {
	ID       string
	ParentID string
	Rank     string
}

// NameRecord is one record of a names dump.
type NameRecord struct {
	TaxonID string
	Name    string
	Class   NameClass
}

type nameEntry struct {
	id    string
	class NameClass
}

// Store holds the taxonomy graph and the name index.
//
// AddNode and AddName modify disjoint parts of the Store, so nodes and
// names can be loaded by two different goroutines. Neither method may be
// called concurrently with itself. After loading the Store is read-only.
type Store struct {
	parents map[string]string
	ranks   map[string]string

	sciNames map[string]string
	index    map[string]nameEntry
	homonyms int
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		parents:  make(map[string]string),
		ranks:    make(map[string]string),
		sciNames: make(map[string]string),
		index:    make(map[string]nameEntry),
	}
}

// AddNode registers a node with its parent and rank.
func (s *Store) AddNode(n Node) {
	s.parents[n.ID] = n.ParentID
	s.ranks[n.ID] = n.Rank
}

// AddName registers a name record.
//
// Scientific names populate the ID to name map. Scientific names, synonyms
// and equivalent names populate the case-insensitive index. A scientific
// name replaces an indexed synonym or equivalent name with the same
// spelling. Otherwise the first indexed record wins. Two scientific names
// with the same spelling are homonyms, the first one is kept.
func (s *Store) AddName(nr NameRecord) {
	nr.Name = gnlib.FixUtf8(nr.Name)
	if nr.Class == ScientificName {
		s.sciNames[nr.TaxonID] = nr.Name
	}
	if !nr.Class.Indexed() {
		return
	}

	key := nameKey(nr.Name)
	prev, ok := s.index[key]
	switch {
	case !ok:
		s.index[key] = nameEntry{id: nr.TaxonID, class: nr.Class}
	case prev.class != ScientificName && nr.Class == ScientificName:
		s.index[key] = nameEntry{id: nr.TaxonID, class: nr.Class}
	case prev.class == ScientificName && nr.Class == ScientificName &&
		prev.id != nr.TaxonID:
		s.homonyms++
		slog.Debug("Homonym scientific name, keeping first taxon",
			"name", nr.Name,
			"kept_id", prev.id,
			"ignored_id", nr.TaxonID,
		)
	}
}

// Node returns a node by its ID.
func (s *Store) Node(id string) (Node, bool) {
	parent, ok := s.parents[id]
	if !ok {
		return Node{}, false
	}
	return Node{ID: id, ParentID: parent, Rank: s.ranks[id]}, true
}

// Name returns the scientific name of a taxon, or an empty string.
func (s *Store) Name(id string) string {
	return s.sciNames[id]
}

// NodesNum returns the number of loaded nodes.
func (s *Store) NodesNum() int {
	return len(s.parents)
}

// NamesNum returns the number of distinct indexed name strings.
func (s *Store) NamesNum() int {
	return len(s.index)
}

// Homonyms returns how many scientific names were ignored because
// the same spelling already belonged to another taxon.
func (s *Store) Homonyms() int {
	return s.homonyms
}

// nameKey normalizes a name for the index. Invalid UTF-8 is repaired
// the same way for stored names and for queries.
func nameKey(name string) string {
	return strings.ToLower(gnlib.FixUtf8(strings.TrimSpace(name)))
}
