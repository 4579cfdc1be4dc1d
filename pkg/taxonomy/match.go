package taxonomy

import "strings"

// MatchStatus is the outcome of matching a name against the index.
type MatchStatus int

const (
	// NoName means the name was empty after trimming.
	NoName MatchStatus = iota
	// Unmatched means the name is not in the index.
	Unmatched
	// Matched means the name was found.
	Matched
)

// String returns a human-readable form of the status.
func (ms MatchStatus) String() string {
	switch ms {
	case NoName:
		return "no name"
	case Unmatched:
		return "unmatched"
	case Matched:
		return "matched"
	default:
		return "unknown"
	}
}

// Match finds the taxon ID of a name. The comparison is exact
// and case-insensitive, surrounding whitespace is ignored. Invalid UTF-8
// is repaired before comparison, as it is for indexed names.
func (s *Store) Match(name string) (string, MatchStatus) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NoName
	}
	e, ok := s.index[nameKey(name)]
	if !ok {
		return "", Unmatched
	}
	return e.id, Matched
}
