package huffman

import (
	"bytes"
	"container/heap"
	"fmt"
	"io"

	"github.com/chronos-tachyon/assert"
)

// Node is a node of a Huffman tree.  A Node is either a leaf, which carries
// a Symbol, or an internal node, which has exactly two children and whose
// Weight is the sum of its children's weights.
//
// Trees returned by BuildTree are never modified afterward.  Use NewLeaf and
// NewInternal to assemble a tree by hand.
type Node[T Symbol] struct {
	// Weight is the frequency of a leaf's Symbol, or the sum of the
	// weights of an internal node's children.
	Weight uint64

	// Symbol is only meaningful for leaves.
	Symbol T

	// Left and Right are nil for leaves.
	Left  *Node[T]
	Right *Node[T]

	leaf bool
	seq  uint64
}

// NewLeaf constructs a leaf Node.
func NewLeaf[T Symbol](symbol T, weight uint64) *Node[T] {
	return &Node[T]{Weight: weight, Symbol: symbol, leaf: true}
}

// NewInternal constructs an internal Node with the given children.
func NewInternal[T Symbol](left, right *Node[T]) *Node[T] {
	node := &Node[T]{Left: left, Right: right}
	if left != nil {
		node.Weight = saturatingAdd(node.Weight, left.Weight)
	}
	if right != nil {
		node.Weight = saturatingAdd(node.Weight, right.Weight)
	}
	return node
}

// IsLeaf returns true iff this Node is a leaf.
func (n *Node[T]) IsLeaf() bool {
	return n.leaf
}

// Walk visits every node of the tree in depth-first order, left child
// before right child, passing the code of the path that leads to it.  If fn
// returns false, the children of that node are skipped.
func (n *Node[T]) Walk(fn func(node *Node[T], path Code) bool) {
	type stackItem struct {
		node *Node[T]
		path Code
	}

	stack := []stackItem{{n, Code{}}}
	for len(stack) != 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.node == nil || !fn(top.node, top.path) || top.node.leaf {
			continue
		}
		stack = append(stack, stackItem{top.node.Right, top.path.Right()})
		stack = append(stack, stackItem{top.node.Left, top.path.Left()})
	}
}

// Dump writes a programmer-readable debugging dump of the tree to the given
// writer.
func (n *Node[T]) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	n.Walk(func(node *Node[T], path Code) bool {
		for i := byte(0); i < path.Size; i++ {
			buf.WriteString("  ")
		}
		if node.leaf {
			fmt.Fprintf(&buf, "Leaf{%v, %d} = %q\n", node.Symbol, node.Weight, path.String())
		} else {
			fmt.Fprintf(&buf, "Internal{%d}\n", node.Weight)
		}
		return true
	})
	return buf.WriteTo(w)
}

// BuildTree counts the symbols of the given sequence and builds a Huffman
// tree over their frequencies.  It returns the root of the tree and the
// number of distinct symbols.
//
// An empty sequence is rejected with ErrEmptyInput.
func BuildTree[T Symbol](symbols []T) (root *Node[T], distinct int, err error) {
	if len(symbols) == 0 {
		return nil, 0, ErrEmptyInput
	}
	return buildTree(CountFrequencies(symbols))
}

// BuildTreeFromFrequencies builds a Huffman tree over an existing frequency
// table.  It returns the root of the tree and the number of distinct
// symbols.
//
// An empty table is rejected with ErrEmptyInput, and a table with a zero
// count is rejected with ErrZeroFrequency.
func BuildTreeFromFrequencies[T Symbol](freqs Frequencies[T]) (root *Node[T], distinct int, err error) {
	if len(freqs) == 0 {
		return nil, 0, ErrEmptyInput
	}
	for symbol, n := range freqs {
		if n == 0 {
			return nil, 0, fmt.Errorf("symbol %v: %w", symbol, ErrZeroFrequency)
		}
	}
	return buildTree(freqs)
}

func buildTree[T Symbol](freqs Frequencies[T]) (*Node[T], int, error) {
	// Step 1: build a minheap of leaves.
	//
	// Leaves are numbered in ascending symbol order, so the shape of the
	// tree does not depend on map iteration order or on the order in
	// which symbols first appeared in the input.

	symbols := freqs.Symbols()
	numSymbols := len(symbols)
	nodes := make([]*Node[T], 0, numSymbols)
	for index, symbol := range symbols {
		leaf := NewLeaf(symbol, freqs[symbol])
		leaf.seq = uint64(index)
		nodes = append(nodes, leaf)
	}

	h := nodeHeap[T]{nodes}
	h.Init()

	// Step 2: pop the two lightest nodes, merge them into a new internal
	// node, and push it back until only the root remains.  The first node
	// popped becomes the left child.  Internal nodes continue the
	// numbering after the leaves.

	nextSeq := uint64(numSymbols)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*Node[T])
		b := heap.Pop(&h).(*Node[T])
		assert.Assertf(a.Weight <= b.Weight, "heap order violated: %d > %d", a.Weight, b.Weight)

		merged := NewInternal(a, b)
		merged.seq = nextSeq
		nextSeq++
		heap.Push(&h, merged)
	}

	root := heap.Pop(&h).(*Node[T])
	assert.Assertf(h.Len() == 0, "%d nodes left in heap after extracting root", h.Len())
	return root, numSymbols, nil
}

// type nodeHeap {{{

// nodeHeap is a minheap: lower weight means higher priority.  Equal weights
// are ordered by sequence number.
type nodeHeap[T Symbol] struct {
	list []*Node[T]
}

func (h *nodeHeap[T]) Init() {
	heap.Init(h)
}

func (h *nodeHeap[T]) Len() int {
	return len(h.list)
}

func (h *nodeHeap[T]) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *nodeHeap[T]) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.Weight != b.Weight {
		return a.Weight < b.Weight
	}
	return a.seq < b.seq
}

func (h *nodeHeap[T]) Push(x interface{}) {
	h.list = append(h.list, x.(*Node[T]))
}

func (h *nodeHeap[T]) Pop() interface{} {
	last := uint(len(h.list)) - 1
	x := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*nodeHeap[rune])(nil)

// }}}
