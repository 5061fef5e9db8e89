package punter

import (
	"bytes"
	"encoding/base64"
	"encoding/gob"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/pierrec/lz4"

	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/graph"
)

// ErrCorruptState is returned when a persisted state blob fails to
// decompress or decode.
var ErrCorruptState = errors.New("punter: corrupt session state")

// snapshot is the gob-encodable form of a Match. Index and
// DistanceOracle are not stored: the setup inputs (sites, rivers,
// mines) are carried instead, and DecodeState rebuilds the graph and
// re-runs the per-mine BFS from them on load. Board ownership is stored
// directly.
type snapshot struct {
	ID      string
	Me      int
	Punters int

	Sites   []uint64
	Rivers  [][2]uint64
	Mines   []uint64
	Options bool

	Ownership []board.Ownership
	Futures   []futureSnapshot
}

type futureSnapshot struct {
	Source, Target uint64
}

// newSessionID stamps a fresh match identifier (grounded in the
// teacher's per-process ClientID, generalised here to a per-match id
// so log lines across re-invocations of the same match correlate).
func newSessionID() string { return uuid.NewString() }

// EncodeState gob-encodes m's snapshot, compresses it with lz4, and
// base64-wraps the result for embedding in a JSON envelope's opaque
// state field.
func EncodeState(m *Match) (string, error) {
	snap := snapshot{
		ID:        m.ID,
		Me:        int(m.Me),
		Punters:   m.Punters,
		Options:   m.Board.OptionsEnabled,
		Ownership: m.Board.CopyOwnershipInto(nil),
	}

	snap.Sites = make([]uint64, m.Index.NumSites())
	for i := range snap.Sites {
		snap.Sites[i] = uint64(m.Index.SiteIDOf(graph.SiteIdx(i)))
	}

	snap.Rivers = make([][2]uint64, m.Index.NumRivers())
	for i, r := range m.Index.Rivers {
		snap.Rivers[i] = [2]uint64{
			uint64(m.Index.SiteIDOf(r.A)),
			uint64(m.Index.SiteIDOf(r.B)),
		}
	}

	snap.Mines = make([]uint64, len(m.Mines))
	for i, mine := range m.Mines {
		snap.Mines[i] = uint64(m.Index.SiteIDOf(mine))
	}

	snap.Futures = make([]futureSnapshot, len(m.Futures))
	for i, f := range m.Futures {
		snap.Futures[i] = futureSnapshot{
			Source: uint64(m.Index.SiteIDOf(f.Source)),
			Target: uint64(m.Index.SiteIDOf(f.Target)),
		}
	}

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(snap); err != nil {
		return "", err
	}

	var compressed bytes.Buffer
	lw := lz4.NewWriter(&compressed)
	if _, err := lw.Write(raw.Bytes()); err != nil {
		return "", err
	}
	if err := lw.Close(); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(compressed.Bytes()), nil
}

// DecodeState reverses EncodeState, rebuilding a full Match: the
// static graph and distance oracle are rebuilt from the persisted
// setup inputs, and the board's ownership is restored directly from
// the persisted snapshot rather than replayed move-by-move.
func DecodeState(encoded string) (*Match, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Join(ErrCorruptState, err)
	}

	lr := lz4.NewReader(bytes.NewReader(compressed))
	raw, err := io.ReadAll(lr)
	if err != nil {
		return nil, errors.Join(ErrCorruptState, err)
	}

	var snap snapshot
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&snap); err != nil {
		return nil, errors.Join(ErrCorruptState, err)
	}

	sites := make([]graph.SiteID, len(snap.Sites))
	for i, id := range snap.Sites {
		sites[i] = graph.SiteID(id)
	}

	rivers := make([][2]graph.SiteID, len(snap.Rivers))
	for i, r := range snap.Rivers {
		rivers[i] = [2]graph.SiteID{graph.SiteID(r[0]), graph.SiteID(r[1])}
	}

	ix, err := graph.Build(sites, rivers)
	if err != nil {
		return nil, errors.Join(ErrCorruptState, err)
	}

	mines := make([]graph.SiteIdx, len(snap.Mines))
	for i, id := range snap.Mines {
		idx, ok := ix.SiteIdxOf(graph.SiteID(id))
		if !ok {
			return nil, ErrCorruptState
		}
		mines[i] = idx
	}

	oracle := graph.BuildDistanceOracle(ix, mines)

	b := board.New(ix, snap.Options)
	b.RestoreOwnership(snap.Ownership)

	futures := make([]Future, len(snap.Futures))
	for i, f := range snap.Futures {
		src, _ := ix.SiteIdxOf(graph.SiteID(f.Source))
		dst, _ := ix.SiteIdxOf(graph.SiteID(f.Target))
		futures[i] = Future{Source: src, Target: dst}
	}

	return &Match{
		ID:      snap.ID,
		Me:      board.PunterID(snap.Me),
		Punters: snap.Punters,
		Index:   ix,
		Oracle:  oracle,
		Board:   b,
		Mines:   mines,
		Futures: futures,
	}, nil
}
