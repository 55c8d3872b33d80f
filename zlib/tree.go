// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"errors"
	"fmt"
)

// treeDesc describes a dynamic tree and its static counterpart.
type treeDesc struct {
	// the dynamic tree; it must provide space for 2*elems+1 nodes
	dyn []treeNode
	// largest code with non zero frequency
	maxCode int
	stat    *staticDesc
}

// treeBuilder holds the working storage for the construction of Huffman
// trees. The heap uses heap[1] as its top; heap[0] is unused. The nodes
// removed from the heap are stored from the end of the array in
// decreasing order of frequency, because gen is walking them in that
// order.
type treeBuilder struct {
	heap    [2*lCodes + 1]int
	heapLen int
	heapMax int

	// depth of each subtree, used as tie breaker for trees of equal
	// frequency
	depth [2*lCodes + 1]uint8

	// number of codes at each bit length
	blCount [maxBits + 1]uint16

	// optLen is the bit length of the current block with the
	// dynamic trees, staticLen with the static trees.
	optLen    int
	staticLen int
}

// smaller compares two subtrees using the tree depth as tie breaker
// when the subtrees have equal frequency. This minimizes the worst case
// length.
func (b *treeBuilder) smaller(tree []treeNode, n, m int) bool {
	fn, fm := tree[n].freq, tree[m].freq
	return fn < fm || (fn == fm && b.depth[n] <= b.depth[m])
}

// downHeap restores the heap property by moving down the tree starting
// at node k, exchanging a node with the smaller of its two sons if
// necessary.
func (b *treeBuilder) downHeap(tree []treeNode, k int) {
	v := b.heap[k]
	j := k << 1
	for j <= b.heapLen {
		if j < b.heapLen && b.smaller(tree, b.heap[j+1], b.heap[j]) {
			j++
		}
		if b.smaller(tree, v, b.heap[j]) {
			break
		}
		b.heap[k] = b.heap[j]
		k = j
		j <<= 1
	}
	b.heap[k] = v
}

// errKraft indicates that the code lengths don't form a complete prefix
// code.
var errKraft = errors.New("zlib: internal error: code lengths violate Kraft equality")

// genBitLen computes the optimal bit lengths for a tree and updates the
// total bit length for the current block. The fields freq and dad of
// the tree nodes must be set. Code lengths exceeding the maximum length
// of the tree are corrected; the tree is no longer optimal then.
func (b *treeBuilder) genBitLen(desc *treeDesc) {
	tree := desc.dyn
	maxCode := desc.maxCode
	stree := desc.stat.tree
	extra := desc.stat.extraBits
	base := desc.stat.extraBase
	maxLength := desc.stat.maxLength
	overflow := 0

	for i := range b.blCount {
		b.blCount[i] = 0
	}

	// In a first pass, compute the optimal bit lengths, which may
	// overflow in the case of the bit length tree.
	tree[b.heap[b.heapMax]].len = 0

	h := b.heapMax + 1
	for ; h < len(b.heap); h++ {
		n := b.heap[h]
		bits := int(tree[tree[n].dad].len) + 1
		if bits > maxLength {
			bits = maxLength
			overflow++
		}
		tree[n].len = uint8(bits)
		if n > maxCode {
			// not a leaf node
			continue
		}
		b.blCount[bits]++
		xbits := 0
		if n >= base && extra != nil {
			xbits = int(extra[n-base])
		}
		f := int(tree[n].freq)
		b.optLen += f * (bits + xbits)
		if stree != nil {
			b.staticLen += f * (int(stree[n].len) + xbits)
		}
	}
	if overflow == 0 {
		return
	}

	// Find the first bit length which could increase.
	for overflow > 0 {
		bits := maxLength - 1
		for b.blCount[bits] == 0 {
			bits--
		}
		// move one leaf down the tree
		b.blCount[bits]--
		// move one overflow item as its brother
		b.blCount[bits+1] += 2
		// The brother of the overflow item also moves one step up,
		// but this doesn't affect blCount[maxLength].
		b.blCount[maxLength]--
		overflow -= 2
	}

	// Now recompute all bit lengths, scanning in increasing frequency.
	// h is still equal to heapSize.
	for bits := maxLength; bits != 0; bits-- {
		n := int(b.blCount[bits])
		for n != 0 {
			h--
			m := b.heap[h]
			if m > maxCode {
				continue
			}
			if int(tree[m].len) != bits {
				b.optLen += (bits - int(tree[m].len)) *
					int(tree[m].freq)
				tree[m].len = uint8(bits)
			}
			n--
		}
	}
}

// checkKraft verifies that the bit length counts describe a complete
// prefix code. The builder always creates at least two leaves, so any
// other result indicates a bug in the overflow correction.
func (b *treeBuilder) checkKraft(maxLength int) error {
	sum := 0
	for bits := 1; bits <= maxLength; bits++ {
		sum += int(b.blCount[bits]) << uint(maxLength-bits)
	}
	if sum != 1<<uint(maxLength) {
		return fmt.Errorf("%w (sum %d; want %d)", errKraft, sum,
			1<<uint(maxLength))
	}
	return nil
}

// genCodes generates the codes for a given tree and bit counts. The
// codes are assigned canonically in order of increasing length and
// symbol value and are stored bit reversed, ready to be written least
// significant bit first.
func genCodes(tree []treeNode, maxCode int, blCount *[maxBits + 1]uint16) {
	var nextCode [maxBits + 1]uint16
	code := uint16(0)
	for bits := 1; bits <= maxBits; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}
	for n := 0; n <= maxCode; n++ {
		l := tree[n].len
		if l == 0 {
			continue
		}
		tree[n].code = reverse(nextCode[l], l)
		nextCode[l]++
	}
}

// buildTree constructs one Huffman tree and assigns the code bit
// strings and lengths. It updates the fields len and code of the leaves
// and sets desc.maxCode. The freq field of the leaves must be set.
func (b *treeBuilder) buildTree(desc *treeDesc) {
	tree := desc.dyn
	stree := desc.stat.tree
	elems := desc.stat.elems
	maxCode := -1

	// Construct the initial heap with the least frequent element in
	// heap[1].
	b.heapLen = 0
	b.heapMax = len(b.heap)
	for n := 0; n < elems; n++ {
		if tree[n].freq != 0 {
			b.heapLen++
			b.heap[b.heapLen] = n
			maxCode = n
			b.depth[n] = 0
		} else {
			tree[n].len = 0
		}
	}

	// The DEFLATE format requires at least one distance code, and a
	// tree with a single code can't be represented. So force at
	// least two codes of non zero frequency.
	for b.heapLen < 2 {
		var node int
		if maxCode < 2 {
			maxCode++
			node = maxCode
		}
		b.heapLen++
		b.heap[b.heapLen] = node
		tree[node].freq = 1
		b.depth[node] = 0
		b.optLen--
		if stree != nil {
			b.staticLen -= int(stree[node].len)
		}
	}
	desc.maxCode = maxCode

	// The elements heap[heapLen/2+1 .. heapLen] are leaves of the
	// tree; establish sub-heaps of increasing lengths.
	for n := b.heapLen / 2; n >= 1; n-- {
		b.downHeap(tree, n)
	}

	// Construct the Huffman tree by repeatedly combining the two
	// least frequent nodes.
	node := elems
	for {
		n := b.heap[1]
		b.heap[1] = b.heap[b.heapLen]
		b.heapLen--
		b.downHeap(tree, 1)
		m := b.heap[1]

		// keep the nodes sorted by frequency
		b.heapMax--
		b.heap[b.heapMax] = n
		b.heapMax--
		b.heap[b.heapMax] = m

		tree[node].freq = tree[n].freq + tree[m].freq
		d := b.depth[n]
		if b.depth[m] > d {
			d = b.depth[m]
		}
		b.depth[node] = d + 1
		tree[n].dad = uint16(node)
		tree[m].dad = uint16(node)

		// and insert the new node in the heap
		b.heap[1] = node
		node++
		b.downHeap(tree, 1)
		if b.heapLen < 2 {
			break
		}
	}
	b.heapMax--
	b.heap[b.heapMax] = b.heap[1]

	b.genBitLen(desc)
	if err := b.checkKraft(desc.stat.maxLength); err != nil {
		panic(err)
	}
	genCodes(tree, maxCode, &b.blCount)
}
