// Package huffman builds static Huffman prefix codes.  The symbols of an
// input sequence are counted, merged into a binary tree by repeatedly
// combining the two lightest nodes, and every leaf is then assigned the bit
// string of its root-to-leaf path (0 = left, 1 = right).
//
// The construction is deterministic.  Ties between nodes of equal weight are
// broken by a sequence number: leaves are numbered in ascending symbol order,
// internal nodes in order of creation, and leaves are numbered before any
// internal node.  The first node popped from the queue becomes the left
// child of the merged node.
//
// An input with only one distinct symbol produces a one-bit code ("0") for
// that symbol, never an empty one.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
