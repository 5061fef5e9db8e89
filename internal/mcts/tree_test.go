package mcts

import (
	"testing"

	"github.com/prxssh/punter/internal/graph"
)

func TestNewTreeHasFreshRoot(t *testing.T) {
	tree := New()
	root := tree.Root()

	if root != 0 {
		t.Fatalf("Root() = %d, want 0", root)
	}
	if tree.Nodes[root].Status != Expandable {
		t.Fatalf("root status = %v, want Expandable", tree.Nodes[root].Status)
	}
	if tree.Nodes[root].Action != NoAction {
		t.Fatalf("root action = %v, want NoAction", tree.Nodes[root].Action)
	}
}

func TestEnsureUntriedIsIdempotent(t *testing.T) {
	tree := New()
	root := tree.Root()

	available := []graph.RiverIdx{0, 1, 2}
	tree.EnsureUntried(root, available)
	if got := tree.UntriedCount(root); got != 3 {
		t.Fatalf("UntriedCount after first EnsureUntried = %d, want 3", got)
	}

	tree.DrawUntried(root, 0)
	tree.EnsureUntried(root, available) // should be a no-op now
	if got := tree.UntriedCount(root); got != 2 {
		t.Fatalf("UntriedCount after redundant EnsureUntried = %d, want 2 (untouched)", got)
	}
}

func TestEnsureUntriedEmptyMarksTerminal(t *testing.T) {
	tree := New()
	root := tree.Root()

	tree.EnsureUntried(root, nil)
	if tree.Nodes[root].Status != Terminal {
		t.Fatalf("status = %v, want Terminal", tree.Nodes[root].Status)
	}
}

func TestDrawUntriedExhaustionMarksExpanded(t *testing.T) {
	tree := New()
	root := tree.Root()

	tree.EnsureUntried(root, []graph.RiverIdx{5})
	tree.DrawUntried(root, 0)

	if tree.Nodes[root].Status != Expanded {
		t.Fatalf("status = %v, want Expanded", tree.Nodes[root].Status)
	}
}

func TestAddChildLinksParentAndChild(t *testing.T) {
	tree := New()
	root := tree.Root()

	child := tree.AddChild(root, 7)

	if tree.Nodes[child].Parent != root {
		t.Fatalf("child.Parent = %d, want %d", tree.Nodes[child].Parent, root)
	}
	if tree.Nodes[child].Action != 7 {
		t.Fatalf("child.Action = %d, want 7", tree.Nodes[child].Action)
	}
	if len(tree.Nodes[root].Children) != 1 || tree.Nodes[root].Children[0] != child {
		t.Fatalf("root.Children = %v, want [%d]", tree.Nodes[root].Children, child)
	}
}

func TestBackpropagateOneStep(t *testing.T) {
	tree := New()
	root := tree.Root()

	tree.EnsureUntried(root, []graph.RiverIdx{0})
	action := tree.DrawUntried(root, 0)
	child := tree.AddChild(root, action)

	tree.Backpropagate(child, 1.0)

	if tree.Nodes[root].N != 1 || tree.Nodes[root].S != 1.0 {
		t.Fatalf("root (N,S) = (%d,%v), want (1,1.0)", tree.Nodes[root].N, tree.Nodes[root].S)
	}
	if tree.Nodes[child].N != 1 || tree.Nodes[child].S != 1.0 {
		t.Fatalf("child (N,S) = (%d,%v), want (1,1.0)", tree.Nodes[child].N, tree.Nodes[child].S)
	}
}

func TestBackpropagateThroughMultipleLevels(t *testing.T) {
	tree := New()
	root := tree.Root()

	a := tree.AddChild(root, 0)
	b := tree.AddChild(a, 1)

	tree.Backpropagate(b, 2.0)
	tree.Backpropagate(b, -1.0)

	if tree.Nodes[root].N != 2 || tree.Nodes[root].S != 1.0 {
		t.Fatalf("root (N,S) = (%d,%v), want (2,1.0)", tree.Nodes[root].N, tree.Nodes[root].S)
	}
	if tree.Nodes[a].N != 2 {
		t.Fatalf("a.N = %d, want 2", tree.Nodes[a].N)
	}
	if tree.Nodes[b].N != 2 {
		t.Fatalf("b.N = %d, want 2", tree.Nodes[b].N)
	}
}
