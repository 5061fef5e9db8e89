package harness

import (
	"testing"

	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/graph"
	"github.com/prxssh/punter/internal/scorer"
)

// buildSample builds the worked example from the Concrete Scenarios
// section: sites 0..7, the given river set, mines at 1 and 5.
func buildSample(t *testing.T) (*graph.Index, *graph.DistanceOracle) {
	t.Helper()

	sites := make([]graph.SiteID, 8)
	for i := range sites {
		sites[i] = graph.SiteID(i)
	}

	rivers := [][2]graph.SiteID{
		{3, 4}, {0, 1}, {2, 3}, {1, 3},
		{5, 6}, {4, 5}, {3, 5}, {6, 7},
		{5, 7}, {1, 7}, {0, 7}, {1, 2},
	}

	ix, err := graph.Build(sites, rivers)
	if err != nil {
		t.Fatalf("graph.Build: %v", err)
	}

	mine1, _ := ix.SiteIdxOf(1)
	mine5, _ := ix.SiteIdxOf(5)
	do := graph.BuildDistanceOracle(ix, []graph.SiteIdx{mine1, mine5})

	return ix, do
}

func TestResetPopulatesAvailableActions(t *testing.T) {
	ix, do := buildSample(t)
	sc := scorer.New(ix, do)
	b := board.New(ix, false)

	h := New(ix, sc, 2, 0)
	h.Reset(b)

	if got, want := len(h.AvailableActions()), ix.NumRivers(); got != want {
		t.Fatalf("available = %d, want %d", got, want)
	}
	if h.Status() != Playing {
		t.Fatalf("status = %v, want Playing", h.Status())
	}
	if h.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", h.Cursor())
	}
}

func TestApplyRemovesFromAvailableAndAdvancesCursor(t *testing.T) {
	ix, do := buildSample(t)
	sc := scorer.New(ix, do)
	b := board.New(ix, false)

	h := New(ix, sc, 2, 0)
	h.Reset(b)

	before := len(h.AvailableActions())
	action := h.AvailableActions()[0]
	h.Apply(action)

	if got, want := len(h.AvailableActions()), before-1; got != want {
		t.Fatalf("available after Apply = %d, want %d", got, want)
	}
	if got, want := len(h.AvailableActions()), 11; got != want {
		t.Fatalf("available after one claim = %d, want 11", got)
	}
	if h.Cursor() != 1 {
		t.Fatalf("cursor = %d, want 1", h.Cursor())
	}

	for _, r := range h.AvailableActions() {
		if r == action {
			t.Fatalf("claimed river %d still present in available set", action)
		}
	}
}

func TestApplyUntilExhaustedMarksFinished(t *testing.T) {
	ix, do := buildSample(t)
	sc := scorer.New(ix, do)
	b := board.New(ix, false)

	h := New(ix, sc, 2, 0)
	h.Reset(b)

	for len(h.AvailableActions()) > 0 {
		h.Apply(h.AvailableActions()[0])
	}

	if h.Status() != Finished {
		t.Fatalf("status = %v, want Finished", h.Status())
	}
}

func TestResetIsIdempotentAcrossIterations(t *testing.T) {
	ix, do := buildSample(t)
	sc := scorer.New(ix, do)
	b := board.New(ix, false)
	_ = b.Claim(0, 0)

	h := New(ix, sc, 2, 0)

	h.Reset(b)
	first := len(h.AvailableActions())
	h.Apply(h.AvailableActions()[0])

	h.Reset(b)
	second := len(h.AvailableActions())

	if first != second {
		t.Fatalf("available set after Reset = %d, want stable %d across resets", second, first)
	}
}

func TestTerminalScoreSinglePunter(t *testing.T) {
	ix, do := buildSample(t)
	sc := scorer.New(ix, do)
	b := board.New(ix, false)

	h := New(ix, sc, 1, 0)
	h.Reset(b)

	if got := h.TerminalScore(); got != 0 {
		t.Fatalf("TerminalScore with one punter = %v, want 0", got)
	}
}
