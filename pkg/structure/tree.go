package structure

// Node is one element of the built tree. Descriptor carries the defaulted
// id/name; Children preserve insertion order.
type Node struct {
	Key        string
	Descriptor Descriptor
	Children   []*Node
}

// HasChildren reports whether the node has at least one child.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Children) > 0
}

// Clone copies the node and its subtree.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Key: n.Key, Descriptor: n.Descriptor.Clone()}
	if len(n.Children) > 0 {
		out.Children = make([]*Node, len(n.Children))
		for idx, child := range n.Children {
			out.Children[idx] = child.Clone()
		}
	}
	return out
}

// Tree is the ordered sequence of root nodes.
type Tree []*Node

// Flatten returns every node in depth-first pre-order.
func (t Tree) Flatten() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, node := range nodes {
			out = append(out, node)
			walk(node.Children)
		}
	}
	walk(t)
	return out
}

// Count returns the number of nodes in the tree.
func (t Tree) Count() int {
	return len(t.Flatten())
}

// Find returns the node registered under key.
func (t Tree) Find(key string) (*Node, bool) {
	for _, node := range t.Flatten() {
		if node.Key == key {
			return node, true
		}
	}
	return nil, false
}

// BuildTree nests the structure's entries under their parents. Entries
// without a parent, or whose parent key is not part of the structure, are
// promoted to the root. Sibling order follows insertion order at every depth.
//
// Entries that can never be reached from a root (their parent chain loops)
// are left out and reported through a *CycleError; the returned tree still
// holds every acyclic entry.
func BuildTree(s *Structure) (Tree, error) {
	if s.Empty() {
		return nil, nil
	}

	var roots []string
	children := make(map[string][]string)
	for _, key := range s.keys {
		parent := s.entries[key].Parent
		if parent == "" || !s.Has(parent) {
			roots = append(roots, key)
			continue
		}
		children[parent] = append(children[parent], key)
	}

	b := treeBuilder{
		structure: s,
		children:  children,
		placed:    make(map[string]struct{}, len(s.keys)),
		path:      make(map[string]struct{}),
	}

	tree := make(Tree, 0, len(roots))
	for _, key := range roots {
		tree = append(tree, b.attach(key, ""))
	}

	if len(b.placed) == len(s.keys) {
		return tree, nil
	}

	cycle := &CycleError{}
	for _, key := range s.keys {
		if _, ok := b.placed[key]; !ok {
			cycle.Keys = append(cycle.Keys, key)
		}
	}
	return tree, cycle
}

type treeBuilder struct {
	structure *Structure
	children  map[string][]string
	placed    map[string]struct{}
	path      map[string]struct{}
}

func (b *treeBuilder) attach(key, parentKey string) *Node {
	d := b.structure.entries[key].Clone()
	if d.ID == "" {
		d.ID = defaultIdentifier(parentKey, key)
	}
	if d.Name == "" {
		d.Name = defaultIdentifier(parentKey, key)
	}

	node := &Node{Key: key, Descriptor: d}
	b.placed[key] = struct{}{}

	b.path[key] = struct{}{}
	defer delete(b.path, key)

	for _, child := range b.children[key] {
		if _, looping := b.path[child]; looping {
			continue
		}
		node.Children = append(node.Children, b.attach(child, key))
	}
	return node
}

func defaultIdentifier(parentKey, key string) string {
	if parentKey == "" {
		return key
	}
	return parentKey + "-" + key
}
