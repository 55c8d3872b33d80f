// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

// matchFinder adds the match state and the search parameters to the
// window.
type matchFinder struct {
	window

	// length and start of the best match found
	matchLength int
	matchStart  int

	// length and start of the match at the previous position, used by
	// the lazy evaluation
	prevLength     int
	prevMatch      int
	matchAvailable bool

	goodMatch int
	maxLazy   int
	niceMatch int
	maxChain  int
	strategy  Strategy
}

// lmInit prepares the match finder for a new stream.
func (f *matchFinder) lmInit(lc levelConfig, strategy Strategy) {
	f.goodMatch = lc.goodLength
	f.maxLazy = lc.maxLazy
	f.niceMatch = lc.niceLength
	f.maxChain = lc.maxChain
	f.strategy = strategy

	f.matchLength = minMatch - 1
	f.prevLength = minMatch - 1
	f.matchStart = 0
	f.prevMatch = 0
	f.matchAvailable = false
}

// longestMatch follows the hash chain starting at curMatch and returns
// the length of the longest match for the current position. The start
// of the match is stored in matchStart if a match longer than
// prevLength is found. Matches never extend beyond the lookahead.
func (f *matchFinder) longestMatch(curMatch int) int {
	buf := f.buf
	scan := f.strstart
	bestLen := f.prevLength
	chain := f.maxChain
	limit := nilPos
	if f.strstart > f.maxDist {
		limit = f.strstart - f.maxDist
	}

	maxLen := maxMatch
	if f.lookahead < maxLen {
		maxLen = f.lookahead
	}
	if bestLen >= maxLen {
		return bestLen
	}
	nice := f.niceMatch
	if nice > maxLen {
		nice = maxLen
	}
	// reduce the search if we already have a good match
	if bestLen >= f.goodMatch {
		chain >>= 2
	}

	for {
		m := curMatch
		// The bytes at the end of the best match and the first two
		// bytes must match.
		if buf[m+bestLen] == buf[scan+bestLen] &&
			buf[m+bestLen-1] == buf[scan+bestLen-1] &&
			buf[m] == buf[scan] && buf[m+1] == buf[scan+1] {
			n := 2
			for n < maxLen && buf[scan+n] == buf[m+n] {
				n++
			}
			if n > bestLen {
				f.matchStart = curMatch
				bestLen = n
				if n >= nice {
					break
				}
			}
		}
		curMatch = int(f.prev[curMatch&f.wmask])
		if curMatch <= limit {
			break
		}
		chain--
		if chain == 0 {
			break
		}
	}
	return bestLen
}
