// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"github.com/ulikunitz/zlib/adler32"
	"github.com/ulikunitz/zlib/hash"
)

const (
	// minimum size of the window buffer half
	minWindowSize = 512
	// minLookahead is the number of bytes that must be available in
	// the window to find a match of maximum length and to hash the
	// next position.
	minLookahead = maxMatch + minMatch + 1
	// hashBits is the size of the hash table index.
	hashBits = 15
	// matches of length 3 are discarded if their distance exceeds
	// tooFar
	tooFar = 4096
)

// nilPos marks the end of a hash chain. Position 0 cannot be found.
const nilPos = 0

// window is the sliding window of the deflater. It holds the input in a
// buffer of twice the window size; the upper half is moved down if the
// current position approaches the end of the buffer. The hash chains
// head and prev contain positions in the buffer.
type window struct {
	buf     []byte
	wsize   int
	wmask   int
	maxDist int

	head []uint16
	prev []uint16
	rh   *hash.ShiftXor

	// current position
	strstart int
	// start of the current block; it may become negative after a
	// slide
	blockStart int
	// number of valid bytes after strstart
	lookahead int

	// input not yet copied into the buffer
	src []byte
	// number of input bytes consumed in the current Deflate call
	nSrc int

	adler   uint32
	totalIn int64
}

// init allocates the window for the window bits given.
func (w *window) init(wbits int) {
	wsize := 1 << uint(wbits)
	maxDist := wsize
	if wsize < minWindowSize {
		wsize = minWindowSize
	}
	if d := wsize - minLookahead; d < maxDist {
		maxDist = d
	}
	w.wsize = wsize
	w.wmask = wsize - 1
	w.maxDist = maxDist
	w.buf = make([]byte, 2*wsize)
	w.prev = make([]uint16, wsize)
	w.rh = hash.NewShiftXor(minMatch, hashBits)
	w.head = make([]uint16, w.rh.Size())
	w.reset()
}

// reset clears the window for a new stream.
func (w *window) reset() {
	w.clearHash()
	for i := range w.prev {
		w.prev[i] = nilPos
	}
	w.strstart = 0
	w.blockStart = 0
	w.lookahead = 0
	w.src = nil
	w.nSrc = 0
	w.adler = adler32.Init
	w.totalIn = 0
}

// clearHash removes all positions from the hash table.
func (w *window) clearHash() {
	for i := range w.head {
		w.head[i] = nilPos
	}
}

// hash3 computes the hash of the three bytes at position p.
func (w *window) hash3(p int) uint32 {
	h := w.rh.AddYoung(0, w.buf[p])
	h = w.rh.AddYoung(h, w.buf[p+1])
	return w.rh.AddYoung(h, w.buf[p+2])
}

// insertString inserts position p into the hash table and returns the
// previous head of the hash chain. The bytes p, p+1 and p+2 must be
// valid.
func (w *window) insertString(p int) int {
	return w.insertHash(p, w.hash3(p))
}

// insertHash inserts position p with hash h into the hash table and
// returns the previous head of the hash chain.
func (w *window) insertHash(p int, h uint32) int {
	m := w.head[h]
	w.prev[p&w.wmask] = m
	w.head[h] = uint16(p)
	return int(m)
}

// slide moves the upper half of the buffer to the lower half and
// rebases all positions.
func (w *window) slide() {
	copy(w.buf, w.buf[w.wsize:])
	w.strstart -= w.wsize
	w.blockStart -= w.wsize
	n := uint16(w.wsize)
	rebase := func(a []uint16) {
		for i, p := range a {
			if p >= n {
				a[i] = p - n
			} else {
				a[i] = nilPos
			}
		}
	}
	rebase(w.head)
	rebase(w.prev)
}

// fill reads input into the buffer until the lookahead reaches
// minLookahead or the input is exhausted. The buffer slides if the
// current position is too far from the start. It returns the number of
// bytes read.
func (w *window) fill() int {
	total := 0
	for {
		if w.strstart > w.wsize+w.maxDist {
			w.slide()
		}
		if len(w.src) == 0 {
			return total
		}
		n := copy(w.buf[w.strstart+w.lookahead:], w.src)
		w.adler = adler32.Update(w.adler, w.src[:n])
		w.src = w.src[n:]
		w.nSrc += n
		w.totalIn += int64(n)
		w.lookahead += n
		total += n
		if w.lookahead >= minLookahead {
			return total
		}
	}
}

// setDictionary copies the dictionary into the window and inserts all
// its positions into the hash table. Only the last maxDist bytes of the
// dictionary are used.
func (w *window) setDictionary(dict []byte) {
	if len(dict) > w.maxDist {
		dict = dict[len(dict)-w.maxDist:]
	}
	n := copy(w.buf, dict)
	w.strstart = n
	w.blockStart = n
	for p, h := range hash.ComputeHashes(w.rh, w.buf[:n]) {
		w.insertHash(p, h)
	}
}
