package graph

import "testing"

// buildSample mirrors the Concrete Scenarios worked example: sites
// 0..7, the given river set, mines at 1 and 5.
func buildSample(t *testing.T) *Index {
	t.Helper()

	sites := make([]SiteID, 8)
	for i := range sites {
		sites[i] = SiteID(i)
	}

	rivers := [][2]SiteID{
		{3, 4}, {0, 1}, {2, 3}, {1, 3},
		{5, 6}, {4, 5}, {3, 5}, {6, 7},
		{5, 7}, {1, 7}, {0, 7}, {1, 2},
	}

	ix, err := Build(sites, rivers)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

func TestDistanceOracleMatchesWorkedExample(t *testing.T) {
	ix := buildSample(t)

	mine1, _ := ix.SiteIdxOf(1)
	mine5, _ := ix.SiteIdxOf(5)
	do := BuildDistanceOracle(ix, []SiteIdx{mine1, mine5})

	site3, _ := ix.SiteIdxOf(3)
	site7, _ := ix.SiteIdxOf(7)

	if d, ok := do.Distance(0, site3); !ok || d != 1 {
		t.Fatalf("dist[mine 1][3] = (%d, %v), want (1, true)", d, ok)
	}
	if d, ok := do.Distance(0, site7); !ok || d != 1 {
		t.Fatalf("dist[mine 1][7] = (%d, %v), want (1, true)", d, ok)
	}
	if d, ok := do.Distance(1, site3); !ok || d != 1 {
		t.Fatalf("dist[mine 5][3] = (%d, %v), want (1, true)", d, ok)
	}
}

func TestDistanceOracleMineIsZero(t *testing.T) {
	ix := buildSample(t)
	mine1, _ := ix.SiteIdxOf(1)
	do := BuildDistanceOracle(ix, []SiteIdx{mine1})

	if d, ok := do.Distance(0, mine1); !ok || d != 0 {
		t.Fatalf("dist[mine][mine] = (%d, %v), want (0, true)", d, ok)
	}
}

func TestDistanceOracleUnreachable(t *testing.T) {
	sites := []SiteID{0, 1, 2}
	rivers := [][2]SiteID{{0, 1}}
	ix, err := Build(sites, rivers)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	mine0, _ := ix.SiteIdxOf(0)
	do := BuildDistanceOracle(ix, []SiteIdx{mine0})

	site2, _ := ix.SiteIdxOf(2)
	if _, ok := do.Distance(0, site2); ok {
		t.Fatal("Distance to isolated site should be unreachable")
	}
}

func TestDistanceOracleMineCount(t *testing.T) {
	ix := buildSample(t)
	mine1, _ := ix.SiteIdxOf(1)
	mine5, _ := ix.SiteIdxOf(5)
	do := BuildDistanceOracle(ix, []SiteIdx{mine1, mine5})

	if do.MineCount() != 2 {
		t.Fatalf("MineCount = %d, want 2", do.MineCount())
	}
	if do.Mine(0) != mine1 || do.Mine(1) != mine5 {
		t.Fatal("Mine(ordinal) did not round-trip the mine list")
	}
}
