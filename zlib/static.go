// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import "math/bits"

// Sizes of the DEFLATE alphabets and limits of the format.
const (
	// maxBits is the maximum code length for literal/length and
	// distance codes.
	maxBits = 15
	// maxBLBits is the maximum code length of the bit length codes.
	maxBLBits = 7

	lengthCodes = 29
	literals    = 256
	endBlock    = 256
	// lCodes is the number of literal/length codes including the end
	// of block symbol.
	lCodes = literals + 1 + lengthCodes
	dCodes = 30
	// blCodes is the number of codes used to transfer the bit lengths.
	blCodes = 19
	// heapSize is the number of nodes of the largest tree.
	heapSize = 2*lCodes + 1

	// repeat previous bit length 3-6 times (2 bits of repeat count)
	rep3to6 = 16
	// repeat a zero length 3-10 times (3 bits of repeat count)
	repZero3to10 = 17
	// repeat a zero length 11-138 times (7 bits of repeat count)
	repZero11to138 = 18

	minMatch = 3
	maxMatch = 258
)

// Block types as written in the two type bits of a block header.
const (
	storedBlock  = 0
	staticTrees  = 1
	dynamicTrees = 2
)

// maxStoredLen is the maximum payload of a single stored block.
const maxStoredLen = 0xffff

// extra bits for each length code
var extraLBits = [lengthCodes]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 2, 2, 2, 2,
	3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 0}

// extra bits for each distance code
var extraDBits = [dCodes]uint8{
	0, 0, 0, 0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6,
	7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 12, 12, 13, 13}

// extra bits for each bit length code
var extraBLBits = [blCodes]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 2, 3, 7}

// blOrder is the order in which the bit lengths of the bit length tree
// are transmitted.
var blOrder = [blCodes]uint8{
	16, 17, 18, 0, 8, 7, 9, 6, 10, 5, 11, 4, 12, 3, 13, 2, 14, 1, 15}

// treeNode is an element of a Huffman tree. Leaves store the symbol
// frequencies and after construction the code and its length. Inner
// nodes are used only during construction.
type treeNode struct {
	freq uint32
	code uint16
	dad  uint16
	len  uint8
}

// staticDesc describes the parameters of a tree that don't change from
// block to block.
type staticDesc struct {
	// static tree or nil
	tree []treeNode
	// extra bits for each code or nil
	extraBits []uint8
	// base index for extraBits
	extraBase int
	// max number of elements in the tree
	elems int
	// max bit length for the codes
	maxLength int
}

// Tables computed once by init. They are never modified afterwards and
// are shared by all Deflater and Inflater values.
var (
	// staticLTree has 288 entries; the codes 286 and 287 are needed
	// to build a complete canonical tree but are never used.
	staticLTree [lCodes + 2]treeNode
	staticDTree [dCodes]treeNode

	// distCodes maps distance-1 to the distance code. The first 256
	// entries are for distances 1..256, the remaining entries are
	// indexed by (distance-1)>>7.
	distCodes [512]uint8
	// lengthCodeTab maps match length-3 to the length code.
	lengthCodeTab [maxMatch - minMatch + 1]uint8
	// baseLength contains the first normalized length for each code.
	baseLength [lengthCodes]int
	// baseDist contains the first normalized distance for each code.
	baseDist [dCodes]int

	// decoding bases: lengths and distances in their real value
	lenBase  [lengthCodes]int
	distBase [dCodes]int

	staticLDesc = staticDesc{
		tree:      staticLTree[:],
		extraBits: extraLBits[:],
		extraBase: literals + 1,
		elems:     lCodes,
		maxLength: maxBits,
	}
	staticDDesc = staticDesc{
		tree:      staticDTree[:],
		extraBits: extraDBits[:],
		elems:     dCodes,
		maxLength: maxBits,
	}
	staticBLDesc = staticDesc{
		extraBits: extraBLBits[:],
		elems:     blCodes,
		maxLength: maxBLBits,
	}
)

func init() {
	length := 0
	var code int
	for code = 0; code < lengthCodes-1; code++ {
		baseLength[code] = length
		for n := 0; n < 1<<extraLBits[code]; n++ {
			lengthCodeTab[length] = uint8(code)
			length++
		}
	}
	// The match length 258 can be represented by code 284 with 5
	// extra bits and code 285. The latter is shorter, so we
	// overwrite the entry.
	lengthCodeTab[length-1] = uint8(code)

	dist := 0
	for code = 0; code < 16; code++ {
		baseDist[code] = dist
		for n := 0; n < 1<<extraDBits[code]; n++ {
			distCodes[dist] = uint8(code)
			dist++
		}
	}
	dist >>= 7
	for ; code < dCodes; code++ {
		baseDist[code] = dist << 7
		for n := 0; n < 1<<(extraDBits[code]-7); n++ {
			distCodes[256+dist] = uint8(code)
			dist++
		}
	}

	for i := range lenBase {
		lenBase[i] = baseLength[i] + minMatch
	}
	lenBase[lengthCodes-1] = maxMatch
	for i := range distBase {
		distBase[i] = baseDist[i] + 1
	}

	var blCount [maxBits + 1]uint16
	n := 0
	for ; n <= 143; n++ {
		staticLTree[n].len = 8
	}
	blCount[8] += 144
	for ; n <= 255; n++ {
		staticLTree[n].len = 9
	}
	blCount[9] += 112
	for ; n <= 279; n++ {
		staticLTree[n].len = 7
	}
	blCount[7] += 24
	for ; n <= 287; n++ {
		staticLTree[n].len = 8
	}
	blCount[8] += 8
	genCodes(staticLTree[:], lCodes+1, &blCount)

	for n := range staticDTree {
		staticDTree[n].len = 5
		staticDTree[n].code = reverse(uint16(n), 5)
	}
}

// dCode maps the distance-1 to its distance code.
func dCode(dist int) int {
	if dist < 256 {
		return int(distCodes[dist])
	}
	return int(distCodes[256+(dist>>7)])
}

// reverse reverses the first n bits of code.
func reverse(code uint16, n uint8) uint16 {
	return bits.Reverse16(code) >> (16 - n)
}
