package huffman

import (
	"container/heap"

	"github.com/chronos-tachyon/assert"
)

// noNode is the handle of a missing child or of the root of an empty Tree.
const noNode = int32(-1)

// Tree is a Huffman code tree.  Nodes live in an arena and refer to their
// children by handle; each internal node owns exactly its two children.
//
// Leaves are allocated first, in ascending Symbol order, and internal nodes
// after them in the order they are merged.  A node's handle is therefore also
// its creation sequence, which breaks ties between equal weights.
type Tree struct {
	nodes []treeNode
	root  int32
}

type treeNode struct {
	weight uint64
	symbol Symbol
	left   int32
	right  int32
}

func (node treeNode) isLeaf() bool {
	return node.left == noNode
}

// BuildTree constructs the Huffman tree for the given frequencies by
// repeatedly merging the two lightest nodes.  The first node popped becomes
// the left (0) child and the second the right (1) child.
//
// An empty frequency table yields an empty Tree.  A table with exactly one
// Symbol yields a Tree whose root is that Symbol's leaf.
//
func BuildTree(freqs Frequencies) Tree {
	numLeaves := freqs.Distinct()
	if numLeaves == 0 {
		log.Debug("empty frequency table; tree has no root")
		return Tree{root: noNode}
	}

	nodes := make([]treeNode, 0, 2*numLeaves-1)
	for _, sym := range freqs.Symbols() {
		nodes = append(nodes, treeNode{weight: freqs[sym], symbol: sym, left: noNode, right: noNode})
	}

	h := nodeHeap{nodes: &nodes, list: make([]int32, 0, numLeaves)}
	for index := range nodes {
		h.list = append(h.list, int32(index))
	}
	h.Init()

	for h.Len() > 1 {
		a := heap.Pop(&h).(int32)
		b := heap.Pop(&h).(int32)

		merged := int32(len(nodes))
		nodes = append(nodes, treeNode{
			weight: nodes[a].weight + nodes[b].weight,
			symbol: InvalidSymbol,
			left:   a,
			right:  b,
		})
		heap.Push(&h, merged)
	}

	root := heap.Pop(&h).(int32)
	assert.Assertf(int(root) == len(nodes)-1, "root %d is not the last node of %d", root, len(nodes))

	if numLeaves == 1 {
		log.Debugf("degenerate tree: single symbol %d", nodes[root].symbol)
	}
	return Tree{nodes: nodes, root: root}
}

// Len returns the number of nodes in the tree.
func (t Tree) Len() int {
	return len(t.nodes)
}

// IsEmpty returns true iff the tree has no root.
func (t Tree) IsEmpty() bool {
	return t.root == noNode
}

// IsDegenerate returns true iff the tree consists of a single leaf.
func (t Tree) IsDegenerate() bool {
	return len(t.nodes) == 1
}

// Weight returns the weight of the root, which is the length of the input
// the tree was built for.
func (t Tree) Weight() uint64 {
	if t.IsEmpty() {
		return 0
	}
	return t.nodes[t.root].weight
}

// Depth returns the length of the longest root-to-leaf path.  Unlike the
// code derivation, it has no limit on the depth it can report.
func (t Tree) Depth() int {
	if t.IsEmpty() {
		return 0
	}

	type stackItem struct {
		node  int32
		depth int
	}

	var maxDepth int
	stack := []stackItem{{node: t.root}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[top.node]
		if node.isLeaf() {
			if top.depth > maxDepth {
				maxDepth = top.depth
			}
			continue
		}
		stack = append(stack,
			stackItem{node: node.left, depth: top.depth + 1},
			stackItem{node: node.right, depth: top.depth + 1})
	}
	return maxDepth
}

// walk visits every leaf in left-to-right order, passing the path from the
// root to that leaf.  The root leaf of a degenerate tree is visited with the
// empty path.
//
// An explicit stack is used instead of recursion.  stackItem.x tracks where
// we are in the walk of each internal node:
//   x=0 → We just arrived at stackItem for the first time
//   x=1 → We have already processed the left child
//   x=2 → We have already processed both children
//
func (t Tree) walk(visit func(sym Symbol, hc Code)) {
	if t.IsEmpty() {
		return
	}

	rootNode := t.nodes[t.root]
	if rootNode.isLeaf() {
		visit(rootNode.symbol, Code{})
		return
	}

	type stackItem struct {
		node int32
		path Code
		x    byte
	}

	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{node: t.root})

	processChild := func(child int32, path Code) {
		assert.Assertf(path.Size <= maxBitsPerCode, "code for node %d exceeds %d bits", child, maxBitsPerCode)
		node := t.nodes[child]
		if node.isLeaf() {
			visit(node.symbol, path)
			return
		}
		stack = append(stack, stackItem{node: child, path: path})
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		node := t.nodes[top.node]
		path := top.path
		switch x {
		case 0:
			processChild(node.left, path.Append(0))
		case 1:
			processChild(node.right, path.Append(1))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}
}

// type nodeHeap {{{

// nodeHeap is a min-heap of node handles ordered by (weight, handle).
type nodeHeap struct {
	nodes *[]treeNode
	list  []int32
}

func (h *nodeHeap) Init() {
	heap.Init(h)
}

func (h *nodeHeap) Len() int {
	return len(h.list)
}

func (h *nodeHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	aw, bw := (*h.nodes)[a].weight, (*h.nodes)[b].weight
	if aw != bw {
		return aw < bw
	}
	return a < b
}

func (h *nodeHeap) Push(x interface{}) {
	h.list = append(h.list, x.(int32))
}

func (h *nodeHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap)(nil)

// }}}
