package punter

import (
	"math/rand"
	"time"

	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/graph"
	"github.com/prxssh/punter/internal/harness"
	"github.com/prxssh/punter/internal/scorer"
	"github.com/prxssh/punter/internal/search"
)

// Move is the abstract, protocol-agnostic shape of a move we report
// back to the referee (spec §6): exactly one of Claim or Pass is set.
type Move struct {
	Claim *ClaimMove
	Pass  bool
}

// ClaimMove names the two sites of the river we're claiming, as dense
// SiteIdx values; moveToEntry translates them to referee-assigned
// SiteIDs.
type ClaimMove struct {
	Source, Target graph.SiteIdx
}

// Turn runs one search-and-respond cycle against a Match's
// authoritative board.
type Turn struct {
	match *Match
	cfg   search.Config
	rng   *rand.Rand

	sc *scorer.Scorer
	hs *harness.Harness
}

// NewTurn builds a Turn over match using cfg's search tuning. A fresh
// scorer and harness are built once per match and reused across every
// turn, since both are pure functions of the static graph.
func NewTurn(match *Match, cfg search.Config) *Turn {
	sc := scorer.New(match.Index, match.Oracle)
	hs := harness.New(match.Index, sc, match.Punters, match.Me)

	return &Turn{
		match: match,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		sc:    sc,
		hs:    hs,
	}
}

// ApplyReportedMoves folds the referee's reported moves for the prior
// round into the authoritative board. A claim, option or splurge that
// names an unknown site or river, or that conflicts with existing
// ownership, is a fatal protocol error (spec §7); the punter id is not
// validated. Options go through the same claim path (accepted only when
// the board has options enabled), and passes change nothing.
func (t *Turn) ApplyReportedMoves(moves []moveEntry) error {
	for _, mv := range moves {
		switch {
		case mv.Claim != nil:
			if err := t.applyClaim(mv.Claim); err != nil {
				return err
			}
		case mv.Option != nil:
			if err := t.applyClaim(mv.Option); err != nil {
				return err
			}
		case mv.Splurge != nil:
			if err := t.applySplurge(mv.Splurge); err != nil {
				return err
			}
		case mv.Pass != nil:
			// No board mutation: a pass claims nothing.
		}
	}
	return nil
}

func (t *Turn) applyClaim(c *claimPayload) error {
	src, ok := t.match.Index.SiteIdxOf(graph.SiteID(c.Source))
	if !ok {
		return board.ErrUnknownRiver
	}
	dst, ok := t.match.Index.SiteIdxOf(graph.SiteID(c.Target))
	if !ok {
		return board.ErrUnknownRiver
	}
	return t.match.Board.ApplyClaim(src, dst, board.PunterID(c.Punter))
}

func (t *Turn) applySplurge(s *splurgePayload) error {
	route := make([]graph.SiteIdx, len(s.Route))
	for i, id := range s.Route {
		idx, ok := t.match.Index.SiteIdxOf(graph.SiteID(id))
		if !ok {
			return board.ErrUnknownRiver
		}
		route[i] = idx
	}
	return t.match.Board.ApplySplurge(route, board.PunterID(s.Punter))
}

// MakeMove runs the search driver until deadline and translates the
// selected action into a Move. deadline should already reflect the
// referee's advertised per-turn budget less the configured safety
// margin (spec §5, SPEC_FULL.md §13). If the deadline passes before
// the root ever expands a child, a uniformly random available river
// is claimed instead (spec §4.8); Pass is only returned when the
// board itself has no rivers left to claim.
func (t *Turn) MakeMove(deadline time.Time) (Move, error) {
	t.hs.Reset(t.match.Board)
	if len(t.hs.AvailableActions()) == 0 {
		return Move{Pass: true}, nil
	}

	driver := search.New(t.match.Board, t.hs, t.cfg, t.rng)
	driver.Run(deadline)

	action, ok := driver.SelectedAction()
	if !ok {
		// The deadline hit before the root ever expanded a child — a
		// tiny referee timeout, or a safety margin that eats the whole
		// budget. The board is not exhausted (we already returned a
		// Pass above if it were), so spec §4.8 requires falling back
		// to a uniformly random available river rather than failing
		// the turn.
		available := t.hs.AvailableActions()
		action = available[t.rng.Intn(len(available))]
	}

	river := t.match.Index.Rivers[action]
	return Move{Claim: &ClaimMove{Source: river.A, Target: river.B}}, nil
}
