// Package search implements the bounded-time MCTS driver: the loop
// that repeatedly selects, expands, simulates, and backpropagates
// through the tree until a wall-clock deadline, then reports the move
// with the greatest root-child visit count.
package search

import (
	"math/rand"
	"time"

	"github.com/prxssh/punter/internal/board"
	"github.com/prxssh/punter/internal/graph"
	"github.com/prxssh/punter/internal/harness"
	"github.com/prxssh/punter/internal/mcts"
)

// Config tunes the search. Values follow spec §4.6-§4.7 and §9's
// explicit calibration notes: the exploration constant and safety
// margin are deliberately overridable rather than baked in.
type Config struct {
	// ExplorationConstant is the UCT1 constant C. Spec §9 calls out
	// 1.4 as a deliberate approximation of sqrt(2).
	ExplorationConstant float64

	// SimulationDepth caps the number of plies a single playout may
	// run before its score is taken as-is.
	SimulationDepth int
}

// DefaultConfig returns the search tuning spec.md specifies.
func DefaultConfig() Config {
	return Config{
		ExplorationConstant: mcts.DefaultExplorationConstant,
		SimulationDepth:     1000,
	}
}

// Driver owns one turn's search tree and harness. A fresh Driver is
// built per make_move call; the tree is discarded when the turn ends.
type Driver struct {
	board   *board.Board
	harness *harness.Harness
	tree    *mcts.Tree
	rng     *rand.Rand
	cfg     Config
}

// New builds a Driver over b (the authoritative board, read-only for
// the duration of the turn) and h (a harness already constructed for
// this match and punter).
func New(b *board.Board, h *harness.Harness, cfg Config, rng *rand.Rand) *Driver {
	return &Driver{board: b, harness: h, tree: mcts.New(), rng: rng, cfg: cfg}
}

// Run executes step()s until time.Now() reaches deadline. The
// in-flight step always completes before Run returns, even if it
// crosses the deadline — the timeout is a soft ceiling (spec §5).
func (d *Driver) Run(deadline time.Time) {
	for !time.Now().After(deadline) {
		d.step()
	}
}

// step performs one select -> expand -> simulate -> backpropagate
// cycle, per spec §4.7. The harness is reset to the authoritative
// board first, so every iteration is independent.
func (d *Driver) step() {
	d.harness.Reset(d.board)

	leaf := d.selectDescend()
	focus := d.expand(leaf)
	score := d.simulate()

	d.tree.Backpropagate(focus, score)
}

// selectDescend walks from the root, applying UCT1 to pick a child
// and mutating the harness with that child's action, as long as the
// current node is Expanded. It stops at the first non-Expanded node
// (Expandable or Terminal) — the leaf.
func (d *Driver) selectDescend() int {
	cur := d.tree.Root()

	for d.tree.Nodes[cur].Status == mcts.Expanded {
		child := d.tree.SelectChild(cur, d.cfg.ExplorationConstant)
		d.harness.Apply(d.tree.Nodes[child].Action)
		cur = child
	}

	return cur
}

// expand draws one untried action from leaf uniformly at random and
// creates a child for it, applying that action to the harness and
// returning the new child as the focus. If leaf has no available
// actions, it is marked Terminal and returned as its own focus.
func (d *Driver) expand(leaf int) int {
	d.tree.EnsureUntried(leaf, d.harness.AvailableActions())

	if d.tree.Nodes[leaf].Status == mcts.Terminal {
		return leaf
	}

	i := d.rng.Intn(d.tree.UntriedCount(leaf))
	action := d.tree.DrawUntried(leaf, i)

	child := d.tree.AddChild(leaf, action)
	d.harness.Apply(action)

	return child
}

// simulate runs a bounded-depth uniform-random playout from focus and
// returns the harness's terminal score. Every player, including
// opponents, is played as a plain Monte Carlo uniform-random policy
// (spec §9: strengthening to per-player heuristics is a future
// improvement, not required here).
func (d *Driver) simulate() float64 {
	for depth := 0; depth < d.cfg.SimulationDepth; depth++ {
		available := d.harness.AvailableActions()
		if len(available) == 0 {
			break
		}

		action := available[d.rng.Intn(len(available))]
		d.harness.Apply(action)
	}

	return d.harness.TerminalScore()
}

// SelectedAction returns the action of the root's most-visited child,
// per spec §4.8 (visit count, not mean score, breaking ties by first
// insertion). ok is false if the root has no children, meaning the
// deadline hit before any expansion succeeded.
func (d *Driver) SelectedAction() (graph.RiverIdx, bool) {
	child, ok := d.tree.MostVisitedChild(d.tree.Root())
	if !ok {
		return 0, false
	}
	return d.tree.Nodes[child].Action, true
}

// RootVisits returns the number of completed steps, equal to the
// root's visit count (spec §8).
func (d *Driver) RootVisits() int { return d.tree.Nodes[d.tree.Root()].N }
