// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import "github.com/ulikunitz/zlib/xlog"

// names of the Huffman tables used in format errors
const (
	treeCodeLens = "code length"
	treeLitLen   = "literal/length"
	treeDist     = "distance"
)

// stBlockHeader reads the three bits of the block header.
type stBlockHeader struct{}

func (s *stBlockHeader) step(f *Inflater) (istate, error) {
	if !f.br.need(3) {
		return s, ErrShortSrc
	}
	last := f.br.readBits(1) == 1
	switch f.br.readBits(2) {
	case storedBlock:
		f.br.align()
		return &stStoredLen{last: last}, nil
	case staticTrees:
		xlog.Printf(debug, "inflate: static block last %t", last)
		return &stCodes{last: last, lit: &fixedLit, dist: &fixedDist},
			nil
	case dynamicTrees:
		return &stTableCounts{last: last}, nil
	}
	return f.fail(BadBlockType, "")
}

// endOfBlock returns the state following a block.
func endOfBlock(last bool) istate {
	if last {
		return &stTrailer{}
	}
	return &stBlockHeader{}
}

// stStoredLen reads the length fields of a stored block.
type stStoredLen struct {
	last bool
}

func (s *stStoredLen) step(f *Inflater) (istate, error) {
	if !f.br.need(32) {
		return s, ErrShortSrc
	}
	n := f.br.readBits(16)
	nc := f.br.readBits(16)
	if n != ^nc&0xffff {
		return f.fail(BadStoredLength, "")
	}
	xlog.Printf(debug, "inflate: stored block %d bytes last %t",
		n, s.last)
	if n == 0 {
		return endOfBlock(s.last), nil
	}
	return &stStoredCopy{last: s.last, n: int(n)}, nil
}

// stStoredCopy copies the payload of a stored block.
type stStoredCopy struct {
	last bool
	// bytes remaining
	n int
}

func (s *stStoredCopy) step(f *Inflater) (istate, error) {
	var tmp [512]byte
	for s.n > 0 {
		k := f.out.avail()
		if k == 0 {
			return s, errWindowFull
		}
		if k > s.n {
			k = s.n
		}
		if k > len(tmp) {
			k = len(tmp)
		}
		k = f.br.readBytes(tmp[:k])
		if k == 0 {
			return s, ErrShortSrc
		}
		f.out.write(tmp[:k])
		s.n -= k
	}
	return endOfBlock(s.last), nil
}

// stTableCounts reads the number of code lengths of a dynamic block.
type stTableCounts struct {
	last bool
}

func (s *stTableCounts) step(f *Inflater) (istate, error) {
	if !f.br.need(14) {
		return s, ErrShortSrc
	}
	nlen := int(f.br.readBits(5)) + 257
	ndist := int(f.br.readBits(5)) + 1
	ncode := int(f.br.readBits(4)) + 4
	if nlen > lCodes || ndist > dCodes {
		return f.fail(BadCodeLengths, "")
	}
	return &stCodeLens{last: s.last, nlen: nlen, ndist: ndist,
		ncode: ncode}, nil
}

// stCodeLens reads the code lengths of the code length table.
type stCodeLens struct {
	last        bool
	nlen, ndist int
	ncode       int
	i           int
	lens        [blCodes]uint8
}

func (s *stCodeLens) step(f *Inflater) (istate, error) {
	for ; s.i < s.ncode; s.i++ {
		if !f.br.need(3) {
			return s, ErrShortSrc
		}
		s.lens[blOrder[s.i]] = uint8(f.br.readBits(3))
	}
	left := f.codeLens.init(s.lens[:])
	switch {
	case left < 0:
		return f.fail(OverSubscribed, treeCodeLens)
	case left > 0:
		return f.fail(IncompleteCode, treeCodeLens)
	}
	return &stTreeLens{last: s.last, nlen: s.nlen, ndist: s.ndist}, nil
}

// stTreeLens reads the run length encoded code lengths of the
// literal/length and the distance table.
type stTreeLens struct {
	last        bool
	nlen, ndist int
	i           int
	lens        [lCodes + dCodes]uint8
}

func (s *stTreeLens) step(f *Inflater) (istate, error) {
	n := s.nlen + s.ndist
	for s.i < n {
		sym, cl, err := f.br.decodeSym(&f.codeLens)
		switch err {
		case nil:
		case ErrShortSrc:
			return s, err
		default:
			return f.fail(BadCodeLengths, treeCodeLens)
		}
		if sym < rep3to6 {
			f.br.drop(cl)
			s.lens[s.i] = uint8(sym)
			s.i++
			continue
		}
		var xbits uint
		var base int
		switch sym {
		case rep3to6:
			xbits, base = 2, 3
		case repZero3to10:
			xbits, base = 3, 3
		default:
			xbits, base = 7, 11
		}
		if !f.br.need(cl + xbits) {
			return s, ErrShortSrc
		}
		f.br.drop(cl)
		rep := base + int(f.br.readBits(xbits))
		var l uint8
		if sym == rep3to6 {
			if s.i == 0 {
				return f.fail(BadRepeat, treeCodeLens)
			}
			l = s.lens[s.i-1]
		}
		if s.i+rep > n {
			return f.fail(BadRepeat, treeCodeLens)
		}
		for ; rep > 0; rep-- {
			s.lens[s.i] = l
			s.i++
		}
	}

	if s.lens[endBlock] == 0 {
		return f.fail(MissingEndOfBlock, treeLitLen)
	}
	left := f.lit.init(s.lens[:s.nlen])
	switch {
	case left < 0:
		return f.fail(OverSubscribed, treeLitLen)
	case left > 0 && !f.lit.single():
		return f.fail(IncompleteCode, treeLitLen)
	}
	left = f.dist.init(s.lens[s.nlen:n])
	switch {
	case left < 0:
		return f.fail(OverSubscribed, treeDist)
	case left > 0 && f.dist.n > 0 && !f.dist.single():
		return f.fail(IncompleteCode, treeDist)
	}
	xlog.Printf(debug, "inflate: dynamic block %d/%d codes last %t",
		s.nlen, s.ndist, s.last)
	return &stCodes{last: s.last, lit: &f.lit, dist: &f.dist}, nil
}
