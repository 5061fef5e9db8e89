// Package punter wires the referee's JSON protocol envelopes to the
// core search engine: handshake, setup, per-turn moves, and stop, plus
// gob+lz4 session persistence between re-invocations.
package punter

// handshakeMe is our half of the opening handshake.
type handshakeMe struct {
	Me string `json:"me"`
}

// handshakeYou is the referee's echo back.
type handshakeYou struct {
	You string `json:"you"`
}

// setupMessage is the referee's initial setup payload.
type setupMessage struct {
	Punter   int        `json:"punter"`
	Punters  int        `json:"punters"`
	Map      mapPayload `json:"map"`
	Settings settings   `json:"settings"`
}

type mapPayload struct {
	Sites  []sitePayload `json:"sites"`
	Rivers []riverPayload `json:"rivers"`
	Mines  []uint64      `json:"mines"`
}

type sitePayload struct {
	ID uint64 `json:"id"`
}

type riverPayload struct {
	Source uint64 `json:"source"`
	Target uint64 `json:"target"`
}

// settings carries the original ruleset flags (SPEC_FULL.md §14):
// futures and options are both off unless the referee turns them on
// for this match.
type settings struct {
	Futures bool `json:"futures"`
	Options bool `json:"options"`
}

// readyReply is our response to setup: our punter id plus our opaque,
// persisted state.
type readyReply struct {
	Ready int    `json:"ready"`
	State string `json:"state,omitempty"`
	Futures []futurePayload `json:"futures,omitempty"`
}

type futurePayload struct {
	Source uint64 `json:"source"`
	Target uint64 `json:"target"`
}

// moveEnvelope wraps the per-turn move list the referee reports before
// asking us to play. State round-trips for the offline/re-invoked
// deployment mode.
type moveEnvelope struct {
	Move  movesPayload `json:"move"`
	State string       `json:"state,omitempty"`
}

type movesPayload struct {
	Moves []moveEntry `json:"moves"`
}

// moveEntry is a tagged union over the four move shapes the referee
// emits. Exactly one of Claim/Pass/Splurge/Option is non-nil.
type moveEntry struct {
	Claim   *claimPayload   `json:"claim,omitempty"`
	Pass    *passPayload    `json:"pass,omitempty"`
	Splurge *splurgePayload `json:"splurge,omitempty"`
	Option  *claimPayload   `json:"option,omitempty"`
}

type claimPayload struct {
	Punter int    `json:"punter"`
	Source uint64 `json:"source"`
	Target uint64 `json:"target"`
}

type passPayload struct {
	Punter int `json:"punter"`
}

type splurgePayload struct {
	Punter int      `json:"punter"`
	Route  []uint64 `json:"route"`
}

// stopMessage is the referee's final message: the full move history
// and final scores. Scores are logged, not consumed by search (§11).
type stopMessage struct {
	Stop stopPayload `json:"stop"`
}

type stopPayload struct {
	Moves  []moveEntry   `json:"moves"`
	Scores []scorePayload `json:"scores"`
}

type scorePayload struct {
	Punter int     `json:"punter"`
	Score  float64 `json:"score"`
}

// timeoutWrapper folds the referee's occasional timeout-hint envelope,
// sent alongside a move request in some referee implementations, into
// a plain float64 of seconds.
type timeoutWrapper struct {
	Timeout float64 `json:"timeout"`
}
