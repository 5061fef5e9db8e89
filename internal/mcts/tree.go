// Package mcts implements the search tree: an arena of nodes addressed
// by integer index rather than pointer, per spec §9's guidance that an
// arena of nodes plus integer parent/child indices is preferable to
// reference-counted pointers in the hottest loop of the system. The
// parent link is a non-owning back-reference; a node's lifetime is
// owned by its parent's Children slice (or, for the root, by the Tree
// itself).
package mcts

import "github.com/prxssh/punter/internal/graph"

// Status is a node's position in the expansion lifecycle.
type Status int

const (
	// Expandable nodes still have untried actions (or have not yet
	// had their untried set computed).
	Expandable Status = iota
	// Expanded nodes have created a child for every action available
	// at their state; selection descends through them via UCT1.
	Expanded
	// Terminal nodes had zero available actions the moment they were
	// first visited: the game ends there in every playout.
	Terminal
)

// NoAction is the sentinel Action value for the root node, which was
// not reached by any action.
const NoAction graph.RiverIdx = -1

// Node is one vertex of the search tree: the action that led to it,
// its children, a non-owning back-reference to its parent, expansion
// status, visit count, and cumulative backpropagated score.
type Node struct {
	Parent   int
	Action   graph.RiverIdx
	Children []int

	// untried holds actions available at this node's state that have
	// not yet been expanded into a child. It is computed lazily, the
	// first time the node is visited as a select leaf, and persists
	// across every later step() within the same turn — see
	// EnsureUntried.
	untried  []graph.RiverIdx
	computed bool

	Status Status
	N      int
	S      float64
}

// Tree is the MCTS search tree for a single turn: an arena of nodes
// rooted at index 0, discarded wholesale when the turn ends.
type Tree struct {
	Nodes []Node
}

// New creates a tree with a fresh, not-yet-expanded root.
func New() *Tree {
	return &Tree{Nodes: []Node{{Parent: -1, Action: NoAction, Status: Expandable}}}
}

// Root returns the root node's index (always 0).
func (t *Tree) Root() int { return 0 }

// EnsureUntried computes node idx's untried-action set from available
// the first time idx is visited as a select leaf. Later calls for the
// same node are no-ops: the untried set (and any actions already
// consumed from it) persists across every step() in the turn, which is
// what lets the tree grow incrementally instead of being rebuilt per
// iteration. If available is empty, the node is marked Terminal.
func (t *Tree) EnsureUntried(idx int, available []graph.RiverIdx) {
	n := &t.Nodes[idx]
	if n.computed {
		return
	}

	n.untried = append([]graph.RiverIdx(nil), available...)
	n.computed = true
	if len(n.untried) == 0 {
		n.Status = Terminal
	}
}

// HasUntried reports whether node idx still has untried actions.
// Precondition: EnsureUntried has been called for idx.
func (t *Tree) HasUntried(idx int) bool { return len(t.Nodes[idx].untried) > 0 }

// DrawUntried removes one untried action from node idx, chosen by the
// caller-supplied index i (expected to be a uniform random draw in
// [0, len(untried))), and returns it. If that was the node's last
// untried action, the node transitions to Expanded.
func (t *Tree) DrawUntried(idx, i int) graph.RiverIdx {
	n := &t.Nodes[idx]

	action := n.untried[i]
	last := len(n.untried) - 1
	n.untried[i] = n.untried[last]
	n.untried = n.untried[:last]

	if len(n.untried) == 0 {
		n.Status = Expanded
	}
	return action
}

// UntriedCount reports how many untried actions remain at node idx.
func (t *Tree) UntriedCount(idx int) int { return len(t.Nodes[idx].untried) }

// AddChild creates a new child of parent reached by action, appends it
// to parent's Children, and returns its index.
func (t *Tree) AddChild(parent int, action graph.RiverIdx) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{Parent: parent, Action: action, Status: Expandable})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// MarkTerminal marks node idx Terminal: reached with zero available
// actions, so it cannot be expanded further.
func (t *Tree) MarkTerminal(idx int) { t.Nodes[idx].Status = Terminal }

// Backpropagate adds 1 visit and score to leaf and to every ancestor
// up to and including the root.
func (t *Tree) Backpropagate(leaf int, score float64) {
	for idx := leaf; idx != -1; idx = t.Nodes[idx].Parent {
		t.Nodes[idx].N++
		t.Nodes[idx].S += score
	}
}
