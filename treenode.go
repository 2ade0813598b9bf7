package atf

import "fmt"

// nodeIndex is an arena index into a Tree's node slice rather than a raw
// pointer. Per the framework's design notes, modeling the parent link and
// child list as indices into a per-tree contiguous slice (instead of
// pointers or a cyclic parent/child struct graph) keeps ownership simple:
// a Tree owns exactly one slice of nodes for its lifetime, and a node's
// "back-pointer" to its declaring parameter is an index into the tree's
// own parameter slice, not a raw pointer into user-owned storage.
type nodeIndex int32

const invalidNode nodeIndex = -1

// tpValueNode is one node in a constrained parameter tree: the value bound
// at this depth, a parent link, and an ordered, deduplicated list of
// children. The root node carries the zero Value; it is itself a leaf only
// in a tree built from zero parameters.
type tpValueNode struct {
	value    Value
	depth    int // index into the owning Tree's params slice; -1 for root
	parent   nodeIndex
	children []nodeIndex
}

// Tree holds one constrained tree: the enumerated, constraint-satisfying
// combinations of a single Group's parameters, compacted so that
// consecutive siblings carrying an equal value share one node.
type Tree struct {
	nodes  []tpValueNode
	root   nodeIndex
	leaves []nodeIndex
	params []*TuningParameter
}

func (t *Tree) newNode(v Value, parent nodeIndex, depth int) nodeIndex {
	t.nodes = append(t.nodes, tpValueNode{value: v, depth: depth, parent: parent})
	return nodeIndex(len(t.nodes) - 1)
}

// BuildTree enumerates every predicate-satisfying combination of params
// depth-first, left to right, binding each parameter's live storage before
// recursing into the next so that later predicates observe the current
// path's bindings (this is the source of inter-parameter constraints).
// Children at a given node are merged when consecutive siblings carry an
// equal value, which is the key compaction invariant that keeps the tree
// from blowing up when an early parameter's admissible values collapse a
// later parameter's subtree to the same shape repeatedly.
func BuildTree(params []*TuningParameter) (*Tree, error) {
	t := &Tree{params: params}
	t.root = t.newNode(Value{}, invalidNode, -1)
	if len(params) == 0 {
		t.leaves = []nodeIndex{t.root}
		return t, nil
	}
	t.dfs(0, t.root)
	if len(t.leaves) == 0 {
		return nil, fmt.Errorf("%w: BuildTree: no admissible configuration for group %v", ErrInternal, groupNames(params))
	}
	return t, nil
}

func groupNames(params []*TuningParameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

func (t *Tree) dfs(depth int, parent nodeIndex) {
	if depth == len(t.params) {
		t.leaves = append(t.leaves, parent)
		return
	}
	param := t.params[depth]
	var v Value
	param.Rng.Reset()
	for param.Rng.NextElem(&v) {
		if !param.admits(v) {
			continue
		}
		param.setCurrent(v)
		child := t.insertChild(parent, v, depth)
		t.dfs(depth+1, child)
	}
}

// insertChild appends a new child carrying v under parent, unless parent's
// last-inserted child already carries an equal value, in which case that
// existing child is reused (the consecutive-duplicate merge).
func (t *Tree) insertChild(parent nodeIndex, v Value, depth int) nodeIndex {
	node := &t.nodes[parent]
	if n := len(node.children); n > 0 {
		last := node.children[n-1]
		if t.nodes[last].value.Equal(v) {
			return last
		}
	}
	idx := t.newNode(v, parent, depth)
	t.nodes[parent].children = append(t.nodes[parent].children, idx)
	return idx
}

// Size returns the number of leaves, i.e. the number of distinct admissible
// parameter combinations this tree enumerates.
func (t *Tree) Size() BigInt { return NewBigIntFromInt64(int64(len(t.leaves))) }

// NumParams is the number of parameters (tree depth) in this group.
func (t *Tree) NumParams() int { return len(t.params) }

// MaxChilds returns the largest fan-out among nodes at the given layer
// (0-indexed; layer 0 is the root's direct children). It is exposed so
// abort-condition or debugging code can reason about branching factor
// without walking the tree by hand.
func (t *Tree) MaxChilds(layer int) (int, error) {
	if layer < 0 || layer >= len(t.params) {
		return 0, fmt.Errorf("%w: MaxChilds: layer %d out of [0,%d)", ErrOutOfRange, layer, len(t.params))
	}
	max := 0
	var walk func(n nodeIndex, curDepth int)
	walk = func(n nodeIndex, curDepth int) {
		node := &t.nodes[n]
		if curDepth == layer {
			if len(node.children) > max {
				max = len(node.children)
			}
			return
		}
		for _, c := range node.children {
			walk(c, curDepth+1)
		}
	}
	walk(t.root, -1)
	return max, nil
}

// bindingsForLeaf walks a leaf up to the root, returning its root-to-leaf
// path of Values in parameter-declaration order, and binds each parameter's
// live storage along the way.
func (t *Tree) bindingsForLeaf(leaf nodeIndex) []Value {
	values := make([]Value, len(t.params))
	cur := leaf
	for cur != t.root {
		node := &t.nodes[cur]
		values[node.depth] = node.value
		t.params[node.depth].setCurrent(node.value)
		cur = node.parent
	}
	return values
}

// leafByIndex returns the leaf node for the i-th leaf, 0-indexed.
func (t *Tree) leafByIndex(i int64) (nodeIndex, error) {
	if i < 0 || i >= int64(len(t.leaves)) {
		return invalidNode, fmt.Errorf("%w: leaf index %d out of [0,%d)", ErrOutOfRange, i, len(t.leaves))
	}
	return t.leaves[i], nil
}

// ByIndex returns the parameter bindings for the i-th leaf in this tree,
// 0-indexed, in parameter-declaration order.
func (t *Tree) ByIndex(i int64) ([]Value, error) {
	leaf, err := t.leafByIndex(i)
	if err != nil {
		return nil, err
	}
	return t.bindingsForLeaf(leaf), nil
}

// ByChildIndices descends the tree using one child index per layer and
// returns the resulting binding. idx must have exactly NumParams() entries.
func (t *Tree) ByChildIndices(idx []int) ([]Value, error) {
	if len(idx) != len(t.params) {
		return nil, fmt.Errorf("%w: ByChildIndices: expected %d indices, got %d", ErrInternal, len(t.params), len(idx))
	}
	cur := t.root
	for depth, ci := range idx {
		node := &t.nodes[cur]
		if ci < 0 || ci >= len(node.children) {
			return nil, fmt.Errorf("%w: ByChildIndices: index %d at depth %d out of [0,%d)", ErrOutOfRange, ci, depth, len(node.children))
		}
		cur = node.children[ci]
	}
	return t.bindingsForLeaf(cur), nil
}

// ByCoordinates descends the tree using one fractional coordinate per
// layer, c[k] in (0,1], selecting child index ceil(c[k]*numChildren)-1 at
// each depth. c must have exactly NumParams() entries.
func (t *Tree) ByCoordinates(c []float64) ([]Value, error) {
	if len(c) != len(t.params) {
		return nil, fmt.Errorf("%w: ByCoordinates: expected %d coordinates, got %d", ErrInternal, len(t.params), len(c))
	}
	cur := t.root
	for depth, coord := range c {
		if coord <= 0 || coord > 1 {
			return nil, fmt.Errorf("%w: ByCoordinates: coordinate %v at depth %d not in (0,1]", ErrOutOfRange, coord, depth)
		}
		node := &t.nodes[cur]
		n := len(node.children)
		if n == 0 {
			return nil, fmt.Errorf("%w: ByCoordinates: no children at depth %d", ErrOutOfRange, depth)
		}
		ci := int(ceilFloat(coord*float64(n))) - 1
		if ci >= n {
			ci = n - 1
		}
		if ci < 0 {
			ci = 0
		}
		cur = node.children[ci]
	}
	return t.bindingsForLeaf(cur), nil
}

// coordinateOfLeaf returns, for the i-th leaf, the coordinate vector that
// GetByCoordinates would need to reach the same node: at each depth, the
// 1-based index of the child taken divided by its parent's fan-out.
func (t *Tree) coordinateOfLeaf(i int64) ([]float64, error) {
	leaf, err := t.leafByIndex(i)
	if err != nil {
		return nil, err
	}
	coords := make([]float64, len(t.params))
	cur := leaf
	for cur != t.root {
		node := &t.nodes[cur]
		parent := &t.nodes[node.parent]
		childPos := -1
		for pos, c := range parent.children {
			if c == cur {
				childPos = pos
				break
			}
		}
		coords[node.depth] = float64(childPos+1) / float64(len(parent.children))
		cur = node.parent
	}
	return coords, nil
}

func ceilFloat(x float64) float64 {
	i := float64(int64(x))
	if i < x {
		return i + 1
	}
	return i
}
