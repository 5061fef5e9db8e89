package punter

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/search"
	"github.com/prxssh/punter/internal/wire"
)

// Run drives one full match over t: handshake, setup, then repeated
// move requests until the referee sends stop. name is our punter's
// display name; cfg tunes the search, safetyMargin is subtracted from
// every advertised per-turn budget (spec §5, SPEC_FULL.md §13). ctx
// cancellation is only observed between turns — a turn already
// in flight runs to completion, mirroring the driver's own soft
// deadline semantics.
func Run(ctx context.Context, t *wire.Transport, name string, safetyMargin, readTimeout time.Duration, cfg search.Config) error {
	if err := t.Send(handshakeMe{Me: name}); err != nil {
		return err
	}
	var you handshakeYou
	if err := t.Recv(&you); err != nil {
		return err
	}

	var setup setupMessage
	if err := t.Recv(&setup); err != nil {
		return err
	}

	match, err := newMatch(setup)
	if err != nil {
		return err
	}
	slog.Info("match started", "id", match.ID, "me", match.Me, "punters", match.Punters)

	encoded, err := EncodeState(match)
	if err != nil {
		return err
	}
	if err := t.Send(readyReply{Ready: int(match.Me), State: encoded}); err != nil {
		return err
	}

	turn := NewTurn(match, cfg)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var raw map[string]json.RawMessage
		if err := t.RecvDeadline(readTimeout, &raw); err != nil {
			return err
		}

		if stopRaw, isStop := raw["stop"]; isStop {
			var stop stopPayload
			if err := json.Unmarshal(stopRaw, &stop); err != nil {
				return err
			}
			logStop(match, stop)
			return nil
		}

		var mv movesPayload
		if err := json.Unmarshal(raw["move"], &mv); err != nil {
			return err
		}

		if err := turn.ApplyReportedMoves(mv.Moves); err != nil {
			return err
		}

		deadline := time.Now().Add(timeoutFromEnvelope(raw) - safetyMargin)
		move, err := turn.MakeMove(deadline)
		if err != nil {
			return err
		}

		reply := moveToEntry(match.Me, match, move)
		state, err := EncodeState(match)
		if err != nil {
			return err
		}

		if err := t.Send(moveReplyEnvelope{Move: reply, State: state}); err != nil {
			return err
		}
	}
}

// moveReplyEnvelope is our per-turn reply: a single move entry plus
// refreshed opaque state.
type moveReplyEnvelope struct {
	Move  moveEntry `json:"move"`
	State string    `json:"state,omitempty"`
}

// timeoutFromEnvelope extracts the referee's timeout hint, defaulting
// to 1 second if absent (SPEC_FULL.md §11: some referees fold timeout
// into the move envelope rather than sending it separately).
func timeoutFromEnvelope(raw map[string]json.RawMessage) time.Duration {
	if v, ok := raw["timeout"]; ok {
		var wrapper timeoutWrapper
		if json.Unmarshal(v, &wrapper) == nil && wrapper.Timeout > 0 {
			return time.Duration(wrapper.Timeout * float64(time.Second))
		}
	}
	return time.Second
}

// moveToEntry translates our abstract Move back into the referee's
// wire shape, resolving SiteIdx endpoints to referee-assigned SiteID
// values through match's graph index.
func moveToEntry(me board.PunterID, match *Match, move Move) moveEntry {
	if move.Pass {
		return moveEntry{Pass: &passPayload{Punter: int(me)}}
	}

	return moveEntry{Claim: &claimPayload{
		Punter: int(me),
		Source: uint64(match.Index.SiteIDOf(move.Claim.Source)),
		Target: uint64(match.Index.SiteIDOf(move.Claim.Target)),
	}}
}

func logStop(match *Match, stop stopPayload) {
	for _, s := range stop.Scores {
		slog.Info("final score", "match", match.ID, "punter", s.Punter, "score", s.Score)
	}
}
