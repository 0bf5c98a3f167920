package structure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func keysOf(nodes []*Node) []string {
	out := make([]string, 0, len(nodes))
	for _, node := range nodes {
		out = append(out, node.Key)
	}
	return out
}

func TestBuildTree_DefaultsIdentifiers(t *testing.T) {
	s := New(
		Entry{Key: "general", Descriptor: Descriptor{Type: TypeSection}},
		Entry{Key: "row", Descriptor: Descriptor{Type: TypeSettings, Parent: "general"}},
		Entry{Key: "name", Descriptor: Descriptor{Type: "text", Parent: "row", ID: "custom-id"}},
	)

	tree, err := BuildTree(s)
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}

	cases := map[string][2]string{
		"general": {"general", "general"},
		"row":     {"general-row", "general-row"},
		"name":    {"custom-id", "row-name"},
	}
	for key, want := range cases {
		node, ok := tree.Find(key)
		if !ok {
			t.Fatalf("node %q not found", key)
		}
		if node.Descriptor.ID != want[0] || node.Descriptor.Name != want[1] {
			t.Fatalf("%s: want id/name %v, got %q/%q", key, want, node.Descriptor.ID, node.Descriptor.Name)
		}
	}
}

func TestBuildTree_PromotesOrphans(t *testing.T) {
	s := New(
		Entry{Key: "a", Descriptor: Descriptor{}},
		Entry{Key: "orphan", Descriptor: Descriptor{Parent: "missing"}},
		Entry{Key: "child", Descriptor: Descriptor{Parent: "a"}},
	)

	tree, err := BuildTree(s)
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	if got := keysOf(tree); !cmp.Equal(got, []string{"a", "orphan"}) {
		t.Fatalf("unexpected roots: %v", got)
	}
	orphan, _ := tree.Find("orphan")
	if orphan.Descriptor.ID != "orphan" {
		t.Fatalf("orphan id should default to own key, got %q", orphan.Descriptor.ID)
	}
	if got := keysOf(tree[0].Children); !cmp.Equal(got, []string{"child"}) {
		t.Fatalf("unexpected children: %v", got)
	}
}

func TestBuildTree_SiblingOrderFollowsInsertion(t *testing.T) {
	s := New(
		Entry{Key: "z", Descriptor: Descriptor{Parent: "root"}},
		Entry{Key: "root", Descriptor: Descriptor{}},
		Entry{Key: "deep-b", Descriptor: Descriptor{Parent: "a"}},
		Entry{Key: "a", Descriptor: Descriptor{Parent: "root"}},
		Entry{Key: "deep-a", Descriptor: Descriptor{Parent: "a"}},
	)

	tree, err := BuildTree(s)
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	root, _ := tree.Find("root")
	if got := keysOf(root.Children); !cmp.Equal(got, []string{"z", "a"}) {
		t.Fatalf("unexpected sibling order: %v", got)
	}
	a, _ := tree.Find("a")
	if got := keysOf(a.Children); !cmp.Equal(got, []string{"deep-b", "deep-a"}) {
		t.Fatalf("unexpected nested order: %v", got)
	}
	if got := keysOf(tree.Flatten()); !cmp.Equal(got, []string{"root", "z", "a", "deep-b", "deep-a"}) {
		t.Fatalf("unexpected pre-order: %v", got)
	}
}

func TestBuildTree_ChildrenOmittedForLeaves(t *testing.T) {
	tree, err := BuildTree(New(Entry{Key: "leaf", Descriptor: Descriptor{}}))
	if err != nil {
		t.Fatalf("build tree: %v", err)
	}
	if tree[0].Children != nil || tree[0].HasChildren() {
		t.Fatalf("leaf should have no children: %#v", tree[0].Children)
	}
}

func TestBuildTree_NodeCountMatchesStructure(t *testing.T) {
	for size := 1; size <= 40; size += 3 {
		s := &Structure{}
		for idx := 0; idx < size; idx++ {
			parent := ""
			switch {
			case idx%5 == 4:
				parent = "missing"
			case idx > 0:
				parent = fmt.Sprintf("n%d", idx/2)
			}
			s.Set(fmt.Sprintf("n%d", idx), Descriptor{Parent: parent})
		}
		tree, err := BuildTree(s)
		if err != nil {
			t.Fatalf("size %d: %v", size, err)
		}
		if got := tree.Count(); got != size {
			t.Fatalf("size %d: expected %d nodes, got %d", size, size, got)
		}
	}
}

func TestBuildTree_ReportsCycles(t *testing.T) {
	s := New(
		Entry{Key: "root", Descriptor: Descriptor{}},
		Entry{Key: "a", Descriptor: Descriptor{Parent: "b"}},
		Entry{Key: "b", Descriptor: Descriptor{Parent: "a"}},
		Entry{Key: "self", Descriptor: Descriptor{Parent: "self"}},
		Entry{Key: "under-a", Descriptor: Descriptor{Parent: "a"}},
		Entry{Key: "ok", Descriptor: Descriptor{Parent: "root"}},
	)

	tree, err := BuildTree(s)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !errors.Is(err, ErrCyclicParent) {
		t.Fatalf("expected ErrCyclicParent, got %v", err)
	}
	var cycle *CycleError
	if !errors.As(err, &cycle) {
		t.Fatalf("expected *CycleError, got %T", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "self", "under-a"}, cycle.Keys); diff != "" {
		t.Fatalf("cycle keys mismatch (-want +got):\n%s", diff)
	}
	if got := keysOf(tree.Flatten()); !cmp.Equal(got, []string{"root", "ok"}) {
		t.Fatalf("acyclic part should survive, got %v", got)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	tree, err := BuildTree(nil)
	if err != nil || tree != nil {
		t.Fatalf("expected nil tree for nil structure, got %v %v", tree, err)
	}
}
