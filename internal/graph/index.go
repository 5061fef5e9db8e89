// Package graph implements the static topology the punter reasons about:
// a dense-indexed incidence structure for O(log d) edge lookup, and a
// distance oracle built once from every mine at setup time.
package graph

import (
	"errors"
	"sort"
)

// SiteIdx is a dense, zero-based index assigned by enumeration order of
// the setup's site list. All internal indexing uses SiteIdx; SiteId
// (the referee's opaque identifier) only appears at the protocol
// boundary.
type SiteIdx int

// SiteID is the opaque, referee-assigned site identifier.
type SiteID uint64

// RiverIdx is a dense, zero-based index assigned in the order rivers
// appear in the setup payload.
type RiverIdx int

// ErrDuplicateSite is returned when the setup's site list names the
// same SiteID twice.
var ErrDuplicateSite = errors.New("graph: duplicate site id")

// ErrUnknownEndpoint is returned when a river references a site id
// absent from the setup's site list.
var ErrUnknownEndpoint = errors.New("graph: river endpoint not in site set")

// ErrNotFound is returned by Find when no river connects the two given
// sites in this graph.
var ErrNotFound = errors.New("graph: no river between sites")

// EdgeRef is one entry in a site's incidence list: the river reaching
// it and the SiteIdx of the far endpoint. Lists are kept sorted by
// Other so Find can binary-search them.
type EdgeRef struct {
	Other SiteIdx
	River RiverIdx
}

// River is an undirected edge between two sites, identified by the
// dense indices of its endpoints. Ownership lives in Board, not here;
// Index is immutable once built.
type River struct {
	A, B SiteIdx
}

// Index is the graph's incidence structure: one sorted incidence list
// per site, plus the SiteID<->SiteIdx mapping established at setup.
//
// Build once per match; never mutated afterward.
type Index struct {
	idOf  []SiteID          // SiteIdx -> SiteID
	idxOf map[SiteID]SiteIdx // SiteID -> SiteIdx

	Rivers     []River   // RiverIdx -> endpoints
	incidence  [][]EdgeRef // SiteIdx -> sorted incidence list
}

// Build constructs an Index from the setup's raw site and river lists.
// sites gives the enumeration order that defines SiteIdx assignment;
// rivers is a list of (source, target) SiteID pairs.
func Build(sites []SiteID, rivers [][2]SiteID) (*Index, error) {
	idx := &Index{
		idOf:  make([]SiteID, len(sites)),
		idxOf: make(map[SiteID]SiteIdx, len(sites)),
	}

	for i, id := range sites {
		if _, dup := idx.idxOf[id]; dup {
			return nil, ErrDuplicateSite
		}
		idx.idOf[i] = id
		idx.idxOf[id] = SiteIdx(i)
	}

	idx.Rivers = make([]River, 0, len(rivers))
	idx.incidence = make([][]EdgeRef, len(sites))

	for _, pair := range rivers {
		a, ok := idx.idxOf[pair[0]]
		if !ok {
			return nil, ErrUnknownEndpoint
		}
		b, ok := idx.idxOf[pair[1]]
		if !ok {
			return nil, ErrUnknownEndpoint
		}

		ri := RiverIdx(len(idx.Rivers))
		idx.Rivers = append(idx.Rivers, River{A: a, B: b})
		idx.incidence[a] = append(idx.incidence[a], EdgeRef{Other: b, River: ri})
		idx.incidence[b] = append(idx.incidence[b], EdgeRef{Other: a, River: ri})
	}

	for _, list := range idx.incidence {
		sort.Slice(list, func(i, j int) bool { return list[i].Other < list[j].Other })
	}

	return idx, nil
}

// NumSites returns the number of sites in the graph.
func (ix *Index) NumSites() int { return len(ix.idOf) }

// NumRivers returns the number of rivers in the graph.
func (ix *Index) NumRivers() int { return len(ix.Rivers) }

// SiteIdxOf translates a referee-assigned SiteID into its dense index.
// ok is false if the id was never part of the setup's site list.
func (ix *Index) SiteIdxOf(id SiteID) (SiteIdx, bool) {
	i, ok := ix.idxOf[id]
	return i, ok
}

// SiteIDOf translates a dense SiteIdx back into its referee-assigned
// SiteID, for emitting a Play at the protocol boundary.
func (ix *Index) SiteIDOf(i SiteIdx) SiteID { return ix.idOf[i] }

// Incident returns the sorted incidence list for site s: every
// (neighbour, river) pair touching it, ordered by neighbour SiteIdx.
func (ix *Index) Incident(s SiteIdx) []EdgeRef { return ix.incidence[s] }

// Degree reports how many rivers touch site s.
func (ix *Index) Degree(s SiteIdx) int { return len(ix.incidence[s]) }

// Find looks up the river connecting source and target by binary
// search in source's incidence list. Find is symmetric:
// Find(a,b) == Find(b,a), since both endpoints carry the same entry.
func (ix *Index) Find(source, target SiteIdx) (RiverIdx, error) {
	list := ix.incidence[source]
	i := sort.Search(len(list), func(i int) bool { return list[i].Other >= target })
	if i < len(list) && list[i].Other == target {
		return list[i].River, nil
	}
	return 0, ErrNotFound
}

// OtherEndpoint returns the far endpoint of river r as seen from site
// s, i.e. whichever of r's two endpoints is not s.
func (ix *Index) OtherEndpoint(r RiverIdx, s SiteIdx) SiteIdx {
	river := ix.Rivers[r]
	if river.A == s {
		return river.B
	}
	return river.A
}
