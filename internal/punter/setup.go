package punter

import (
	"errors"

	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/graph"
)

// ErrMalformedSetup is returned when the referee's setup payload fails
// basic validation: an empty site list, a mine id absent from the site
// list, or a river whose endpoints fail to build a graph.Index. Fatal
// per spec §7.
var ErrMalformedSetup = errors.New("punter: malformed setup")

// Match holds everything derived from one setup message: the static
// graph, distance oracle, authoritative board, and our own identity
// within it. It is the root object a Turn is built against.
type Match struct {
	ID      string
	Me      board.PunterID
	Punters int

	Index    *graph.Index
	Oracle   *graph.DistanceOracle
	Board    *board.Board
	Mines    []graph.SiteIdx

	Futures []Future
}

// Future is a pre-commitment from a site to a mine. Futures are never
// scored or searched; Match.Futures is only carried through
// EncodeState/DecodeState, and newMatch leaves it empty.
type Future struct {
	Source, Target graph.SiteIdx
}

// newMatch validates a setup message and builds a Match from it.
func newMatch(msg setupMessage) (*Match, error) {
	if len(msg.Map.Sites) == 0 {
		return nil, ErrMalformedSetup
	}

	sites := make([]graph.SiteID, len(msg.Map.Sites))
	for i, s := range msg.Map.Sites {
		sites[i] = graph.SiteID(s.ID)
	}

	rivers := make([][2]graph.SiteID, len(msg.Map.Rivers))
	for i, r := range msg.Map.Rivers {
		rivers[i] = [2]graph.SiteID{graph.SiteID(r.Source), graph.SiteID(r.Target)}
	}

	ix, err := graph.Build(sites, rivers)
	if err != nil {
		return nil, errors.Join(ErrMalformedSetup, err)
	}

	mines := make([]graph.SiteIdx, len(msg.Map.Mines))
	for i, m := range msg.Map.Mines {
		idx, ok := ix.SiteIdxOf(graph.SiteID(m))
		if !ok {
			return nil, ErrMalformedSetup
		}
		mines[i] = idx
	}

	oracle := graph.BuildDistanceOracle(ix, mines)
	b := board.New(ix, msg.Settings.Options)

	return &Match{
		ID:      newSessionID(),
		Me:      board.PunterID(msg.Punter),
		Punters: msg.Punters,
		Index:   ix,
		Oracle:  oracle,
		Board:   b,
		Mines:   mines,
	}, nil
}
