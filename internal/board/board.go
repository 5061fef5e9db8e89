// Package board holds the authoritative ownership state of every
// river in a match: who claimed it, and who (if anyone) rented the
// second slot under the options rule.
package board

import (
	"errors"

	"github.com/prxssh/punter/internal/graph"
)

// PunterID identifies a player in the match, zero-based.
type PunterID int

// NoOwner is the sentinel owner value meaning "unclaimed."
const NoOwner PunterID = -1

// ErrUnknownRiver is returned when a reported move references an
// endpoint pair absent from the setup graph. Fatal per spec §7.
var ErrUnknownRiver = errors.New("board: unknown river")

// ErrOwnershipConflict is returned when a reported claim would set an
// owner where one is already set, or a reported option where both
// owner and renter are already set. Fatal per spec §7.
var ErrOwnershipConflict = errors.New("board: ownership conflict")

// riverState is the ownership state of a single river.
type riverState struct {
	owner  PunterID
	renter PunterID
}

// Board is the authoritative ownership state of every river, mutated
// only by Claim (directly or through ApplyClaim/ApplySplurge, on
// referee-reported moves) and by RestoreOwnership when loading persisted
// state. The simulation harness works on its own copy of the ownership.
type Board struct {
	ix *graph.Index

	// OptionsEnabled gates whether a second claim on an already-owned
	// river is accepted as an Option (renter) or rejected as an
	// OwnershipConflict, per the original ruleset's settings.options
	// flag (see SPEC_FULL.md §14 — the distilled spec always allows a
	// second owner; this follows the original instead).
	OptionsEnabled bool

	rivers []riverState
}

// New builds an empty Board over ix: every river starts unclaimed.
func New(ix *graph.Index, optionsEnabled bool) *Board {
	rivers := make([]riverState, ix.NumRivers())
	for i := range rivers {
		rivers[i] = riverState{owner: NoOwner, renter: NoOwner}
	}
	return &Board{ix: ix, OptionsEnabled: optionsEnabled, rivers: rivers}
}

// Owner returns the owner of river r, or NoOwner if unclaimed.
func (b *Board) Owner(r graph.RiverIdx) PunterID { return b.rivers[r].owner }

// Renter returns the renter of river r, or NoOwner if there is none.
func (b *Board) Renter(r graph.RiverIdx) PunterID { return b.rivers[r].renter }

// Holds reports whether punter p may traverse river r, i.e. p is
// either the owner or the renter.
func (b *Board) Holds(r graph.RiverIdx, p PunterID) bool {
	s := b.rivers[r]
	return s.owner == p || s.renter == p
}

// IsClaimed reports whether river r has an owner.
func (b *Board) IsClaimed(r graph.RiverIdx) bool { return b.rivers[r].owner != NoOwner }

// NumRivers returns the number of rivers on the board.
func (b *Board) NumRivers() int { return len(b.rivers) }

// Claim assigns river r to punter p: sets owner if unset, else sets
// renter under the options rule. Returns ErrOwnershipConflict if
// owner is already set and either options are disabled or renter is
// already set too, matching the owner-set-once / renter-set-once /
// owner-ne-renter invariants of spec §3.
func (b *Board) Claim(r graph.RiverIdx, p PunterID) error {
	s := &b.rivers[r]

	if s.owner == NoOwner {
		s.owner = p
		return nil
	}
	if s.owner == p {
		return ErrOwnershipConflict
	}
	if !b.OptionsEnabled || s.renter != NoOwner {
		return ErrOwnershipConflict
	}

	s.renter = p
	return nil
}

// ApplyClaim applies a reported claim by endpoint pair, resolving the
// river via the graph index first. Returns ErrUnknownRiver if no such
// river exists.
func (b *Board) ApplyClaim(source, target graph.SiteIdx, p PunterID) error {
	r, err := b.ix.Find(source, target)
	if err != nil {
		return ErrUnknownRiver
	}
	return b.Claim(r, p)
}

// ApplySplurge applies a reported splurge: a route of sites claimed as
// consecutive hops. Every hop must resolve to an existing river.
func (b *Board) ApplySplurge(route []graph.SiteIdx, p PunterID) error {
	for i := 0; i+1 < len(route); i++ {
		if err := b.ApplyClaim(route[i], route[i+1], p); err != nil {
			return err
		}
	}
	return nil
}

// CopyOwnershipInto copies the current owner/renter pairs into dst,
// resizing it if necessary. Used by the simulation harness to seed a
// private, mutable snapshot without allocating on the hot path after
// the first call.
func (b *Board) CopyOwnershipInto(dst []Ownership) []Ownership {
	if cap(dst) < len(b.rivers) {
		dst = make([]Ownership, len(b.rivers))
	}
	dst = dst[:len(b.rivers)]
	for i, s := range b.rivers {
		dst[i] = Ownership{Owner: s.owner, Renter: s.renter}
	}
	return dst
}

// Ownership is the plain-data form of a river's ownership state,
// exposed so the harness can copy it without reaching into board's
// unexported riverState.
type Ownership struct {
	Owner, Renter PunterID
}

// RestoreOwnership overwrites every river's ownership from snapshot,
// bypassing the Claim invariants. Used only when rebuilding a Board
// from persisted session state, where the snapshot is already known to
// have satisfied those invariants when it was saved.
func (b *Board) RestoreOwnership(snapshot []Ownership) {
	for i, own := range snapshot {
		b.rivers[i] = riverState{owner: own.Owner, renter: own.Renter}
	}
}
