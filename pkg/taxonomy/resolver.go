package taxonomy

import (
	"log/slog"
	"slices"
)

type badNodeType int

const (
	missingBadNode badNodeType = iota + 1
	circularBadNode
)

// Resolver walks parent links of a Store to build lineages.
// It remembers broken nodes to report each of them only once,
// so it is not safe for concurrent use.
type Resolver struct {
	store   *Store
	rootID  string
	maxHops int

	badNodes map[string]badNodeType
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// OptRootID sets the ID where the walk to the root stops.
func OptRootID(id string) ResolverOption {
	return func(r *Resolver) {
		if id != "" {
			r.rootID = id
		}
	}
}

// OptMaxHops sets how many nodes can be visited for one taxon.
func OptMaxHops(i int) ResolverOption {
	return func(r *Resolver) {
		if i > 0 {
			r.maxHops = i
		}
	}
}

// NewResolver creates a Resolver with root ID "1" and 1000 hops limit
// unless options say otherwise.
func NewResolver(store *Store, opts ...ResolverOption) *Resolver {
	res := &Resolver{
		store:    store,
		rootID:   "1",
		maxHops:  1000,
		badNodes: make(map[string]badNodeType),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Resolve projects the ancestry of a taxon onto six ranks.
// The most specific node of each rank wins. If the chain is broken or
// too long, ranks collected so far are returned.
func (r *Resolver) Resolve(id string) Lineage {
	var res Lineage
	var filled [RanksNum]bool
	r.walk(id, func(n Node) {
		rank, ok := RankFromLabel(n.Rank)
		if !ok || filled[rank] {
			return
		}
		filled[rank] = true
		res[rank] = r.store.Name(n.ID)
	})
	return res
}

// Path returns nodes from the highest ancestor below the root down to
// the taxon itself.
func (r *Resolver) Path(id string) []Node {
	var res []Node
	r.walk(id, func(n Node) {
		res = append(res, n)
	})
	slices.Reverse(res)
	return res
}

// walk visits the taxon and its ancestors up to, but not including,
// the root.
func (r *Resolver) walk(id string, fn func(Node)) {
	start := id
	for hops := 0; id != r.rootID; hops++ {
		if hops >= r.maxHops {
			r.reportBad(start, circularBadNode)
			return
		}

		node, ok := r.store.Node(id)
		if !ok {
			r.reportBad(id, missingBadNode)
			return
		}
		fn(node)
		id = node.ParentID
	}
}

func (r *Resolver) reportBad(id string, bt badNodeType) {
	if _, ok := r.badNodes[id]; ok {
		return
	}
	r.badNodes[id] = bt

	switch bt {
	case circularBadNode:
		slog.Warn("Lineage exceeds hops limit, taxonomy might be circular",
			"taxon_id", id,
			"max_hops", r.maxHops,
		)
	case missingBadNode:
		slog.Debug("Lineage is broken, node is missing", "taxon_id", id)
	}
}

// BrokenNodes returns the number of distinct missing nodes
// and the number of taxa that hit the hops limit.
func (r *Resolver) BrokenNodes() (missing, circular int) {
	for _, v := range r.badNodes {
		switch v {
		case missingBadNode:
			missing++
		case circularBadNode:
			circular++
		}
	}
	return missing, circular
}

// Ancestor is a node of a lineage path together with its scientific name.
type Ancestor struct {
	Node
	Name string
}

// LookupResult describes how a single name resolves.
type LookupResult struct {
	Name    string
	TaxonID string
	Status  MatchStatus
	Lineage Lineage
	Path    []Ancestor
}

// Lookup matches a name and resolves its lineage and ancestry path.
func (r *Resolver) Lookup(name string) LookupResult {
	res := LookupResult{Name: name}
	res.TaxonID, res.Status = r.store.Match(name)
	if res.Status != Matched {
		return res
	}
	res.Lineage = r.Resolve(res.TaxonID)
	for _, n := range r.Path(res.TaxonID) {
		res.Path = append(res.Path, Ancestor{Node: n, Name: r.store.Name(n.ID)})
	}
	return res
}
