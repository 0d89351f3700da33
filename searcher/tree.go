package searcher

// NodeID addresses a node of a Tree. The root is always 0.
type NodeID int

const Root NodeID = 0

type entry[D any] struct {
	data     D
	parent   NodeID
	children []NodeID
}

// Tree is a growable arena of nodes carrying a payload D. Nodes are never
// removed; a tree is dropped as a whole once its search is over.
type Tree[D any] struct {
	nodes []*entry[D]
}

func NewTree[D any](root D) *Tree[D] {
	return &Tree[D]{nodes: []*entry[D]{{data: root, parent: -1}}}
}

// AddChild appends a child to parent and returns its id.
func (t *Tree[D]) AddChild(parent NodeID, data D) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &entry[D]{data: data, parent: parent})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// Children returns the children of id in the order they were added. The
// returned slice must not be modified.
func (t *Tree[D]) Children(id NodeID) []NodeID {
	children := t.nodes[id].children
	return children[:len(children):len(children)]
}

func (t *Tree[D]) Parent(id NodeID) (NodeID, bool) {
	parent := t.nodes[id].parent
	return parent, parent >= 0
}

// Data returns a pointer to the payload of id, valid for the life of the tree.
func (t *Tree[D]) Data(id NodeID) *D {
	return &t.nodes[id].data
}

func (t *Tree[D]) Len() int {
	return len(t.nodes)
}
