// Package harness implements the restartable simulation state used by
// the MCTS search: a private, mutable snapshot of Board ownership plus
// the set of still-claimable rivers, reset from the authoritative
// Board before every iteration without allocating.
package harness

import (
	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/graph"
	"github.com/prxssh/punter/internal/scorer"
)

// Status is the harness's lifecycle state.
type Status int

const (
	NotStarted Status = iota
	Playing
	Finished
)

// Harness is a disposable, mutable view of the board used during
// search. It holds its own copy of ownership so the search tree can
// mutate freely without ever touching the authoritative Board.
//
// The harness's player-rotation assumption is that after our move,
// opponents play in order me+1, me+2, ... modulo numPunters. The
// referee's actual turn order is not known to the core; this
// preserves turn counts and parity, per spec §4.5.
type Harness struct {
	ix         *graph.Index
	scorer     *scorer.Scorer
	numPunters int
	me         board.PunterID

	ownership []board.Ownership
	available []graph.RiverIdx
	// riverPos maps a RiverIdx to its position in available, or -1 if
	// the river is claimed. Enables O(1) swap-remove instead of a
	// linear scan, per spec §9's guidance against iterator-based
	// nth-element lookups over a dynamic set.
	riverPos []int

	cursor board.PunterID
	status Status
	scores []float64
}

// New builds a Harness over ix and sc for a match of numPunters
// players, playing as punter me. Call Reset before first use.
func New(ix *graph.Index, sc *scorer.Scorer, numPunters int, me board.PunterID) *Harness {
	return &Harness{
		ix:         ix,
		scorer:     sc,
		numPunters: numPunters,
		me:         me,
		ownership:  make([]board.Ownership, ix.NumRivers()),
		available:  make([]graph.RiverIdx, 0, ix.NumRivers()),
		riverPos:   make([]int, ix.NumRivers()),
		scores:     make([]float64, numPunters),
	}
}

// Reset copies ownership from the authoritative board into the
// harness's private buffer, recomputes the available set, and rewinds
// the current-player cursor to us. It must not allocate after the
// first call — buffers are cleared and refilled in place.
func (h *Harness) Reset(b *board.Board) {
	h.ownership = b.CopyOwnershipInto(h.ownership)

	h.available = h.available[:0]
	for r, own := range h.ownership {
		if own.Owner == board.NoOwner {
			h.riverPos[r] = len(h.available)
			h.available = append(h.available, graph.RiverIdx(r))
		} else {
			h.riverPos[r] = -1
		}
	}

	h.cursor = h.me
	h.status = Playing
}

// Status reports the harness's current lifecycle state.
func (h *Harness) Status() Status { return h.status }

// Cursor reports which punter is to move next.
func (h *Harness) Cursor() board.PunterID { return h.cursor }

// AvailableActions returns the dense set of still-claimable rivers.
// Precondition: Status() != NotStarted.
func (h *Harness) AvailableActions() []graph.RiverIdx { return h.available }

// Apply claims action for the current player (or sets them as renter
// if the river is already owned within this simulation — the options
// rule applies inside simulations too), removes it from the available
// set, and advances the cursor. If the available set becomes empty,
// the harness transitions to Finished.
func (h *Harness) Apply(action graph.RiverIdx) {
	own := &h.ownership[action]
	if own.Owner == board.NoOwner {
		own.Owner = h.cursor
	} else {
		own.Renter = h.cursor
	}

	h.removeAvailable(action)
	h.cursor = (h.cursor + 1) % board.PunterID(h.numPunters)

	if len(h.available) == 0 {
		h.status = Finished
	}
}

func (h *Harness) removeAvailable(r graph.RiverIdx) {
	pos := h.riverPos[r]
	last := len(h.available) - 1

	moved := h.available[last]
	h.available[pos] = moved
	h.riverPos[moved] = pos

	h.available = h.available[:last]
	h.riverPos[r] = -1
}

// TerminalScore returns the mean over opponents of (myScore -
// theirScore). Precondition: Status() == Finished, or Playing if the
// simulation depth cap was hit before exhausting the available set.
func (h *Harness) TerminalScore() float64 {
	h.scorer.Score(h.ownership, h.numPunters, h.scores)

	if h.numPunters <= 1 {
		return 0
	}

	my := h.scores[h.me]
	var sumOthers float64
	for p, s := range h.scores {
		if board.PunterID(p) != h.me {
			sumOthers += s
		}
	}

	return (my*float64(h.numPunters-1) - sumOthers) / float64(h.numPunters-1)
}
