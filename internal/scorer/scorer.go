// Package scorer computes the per-player squared-distance-from-mine
// score over a player's owned subgraph, reusing its BFS buffers across
// calls so it can run once per MCTS playout without allocating.
package scorer

import (
	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/graph"
)

// Scorer evaluates an ownership snapshot against the static graph and
// distance oracle. A Scorer is not safe for concurrent use; the search
// driver is single-threaded, so one Scorer per harness suffices.
type Scorer struct {
	ix *graph.Index
	do *graph.DistanceOracle

	// visited and touched are reused across every (punter, mine) BFS
	// within a single Score call. touched records which indices of
	// visited were set, so resetting between BFS runs is O(visited
	// count) rather than O(|sites|).
	visited []bool
	touched []graph.SiteIdx
	queue   []graph.SiteIdx
}

// New builds a Scorer for the given static graph and distance oracle.
func New(ix *graph.Index, do *graph.DistanceOracle) *Scorer {
	return &Scorer{
		ix:      ix,
		do:      do,
		visited: make([]bool, ix.NumSites()),
		touched: make([]graph.SiteIdx, 0, ix.NumSites()),
		queue:   make([]graph.SiteIdx, 0, ix.NumSites()),
	}
}

// Score fills scores[p] with punter p's total squared-distance reward
// for every p in [0, numPunters), given the ownership snapshot.
// scores must already have length numPunters; Score zeroes it first.
// The mine itself always contributes 0 (distance zero), and a site
// unreachable in the owned subgraph contributes nothing.
func (s *Scorer) Score(ownership []board.Ownership, numPunters int, scores []float64) {
	for p := range scores[:numPunters] {
		scores[p] = 0
	}

	for p := 0; p < numPunters; p++ {
		punter := board.PunterID(p)
		for m := 0; m < s.do.MineCount(); m++ {
			scores[p] += s.bfsFromMine(ownership, punter, m)
		}
	}
}

// bfsFromMine traverses rivers owned or rented by punter, starting
// from the mineOrdinal-th mine, and returns the sum of squared static
// distances to every site reached.
func (s *Scorer) bfsFromMine(ownership []board.Ownership, punter board.PunterID, mineOrdinal int) float64 {
	mine := s.do.Mine(mineOrdinal)

	s.queue = s.queue[:0]
	s.markVisited(mine)
	s.queue = append(s.queue, mine)

	var total float64

	for head := 0; head < len(s.queue); head++ {
		cur := s.queue[head]

		for _, e := range s.ix.Incident(cur) {
			if s.visited[e.Other] {
				continue
			}

			own := ownership[e.River]
			if own.Owner != punter && own.Renter != punter {
				continue
			}

			s.markVisited(e.Other)
			s.queue = append(s.queue, e.Other)

			if d, ok := s.do.Distance(mineOrdinal, e.Other); ok {
				total += float64(d * d)
			}
		}
	}

	s.resetVisited()
	return total
}

func (s *Scorer) markVisited(site graph.SiteIdx) {
	s.visited[site] = true
	s.touched = append(s.touched, site)
}

func (s *Scorer) resetVisited() {
	for _, site := range s.touched {
		s.visited[site] = false
	}
	s.touched = s.touched[:0]
}
