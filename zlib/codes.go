// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

// codeMode is the sub state of the decoding of a Huffman coded block.
type codeMode int

const (
	// decode a literal/length code
	cmLit codeMode = iota
	// decode a distance code
	cmDist
	// copy a match
	cmCopy
)

// stCodes decodes the symbols of a fixed or dynamic block.
type stCodes struct {
	last      bool
	lit, dist *huffman

	mode codeMode
	// length of the match
	length int
	// distance of the match
	distance int
}

func (s *stCodes) step(f *Inflater) (istate, error) {
	for {
		switch s.mode {
		case cmLit:
			if f.out.avail() == 0 {
				return s, errWindowFull
			}
			sym, n, err := f.br.decodeSym(s.lit)
			switch err {
			case nil:
			case ErrShortSrc:
				return s, err
			default:
				return f.fail(BadLitLenCode, treeLitLen)
			}
			if sym < literals {
				f.br.drop(n)
				f.out.writeByte(byte(sym))
				continue
			}
			if sym == endBlock {
				f.br.drop(n)
				return endOfBlock(s.last), nil
			}
			code := sym - literals - 1
			if code >= lengthCodes {
				return f.fail(BadLitLenCode, treeLitLen)
			}
			xbits := uint(extraLBits[code])
			if !f.br.need(n + xbits) {
				return s, ErrShortSrc
			}
			f.br.drop(n)
			s.length = lenBase[code] + int(f.br.readBits(xbits))
			s.mode = cmDist
		case cmDist:
			sym, n, err := f.br.decodeSym(s.dist)
			switch err {
			case nil:
			case ErrShortSrc:
				return s, err
			default:
				return f.fail(BadDistCode, treeDist)
			}
			if sym >= dCodes {
				return f.fail(BadDistCode, treeDist)
			}
			xbits := uint(extraDBits[sym])
			if !f.br.need(n + xbits) {
				return s, ErrShortSrc
			}
			f.br.drop(n)
			s.distance = distBase[sym] + int(f.br.readBits(xbits))
			if s.distance > f.out.filled {
				return f.fail(DistTooFarBack, "")
			}
			s.mode = cmCopy
		case cmCopy:
			k := f.out.copyMatch(s.distance, s.length)
			s.length -= k
			if s.length > 0 {
				return s, errWindowFull
			}
			s.mode = cmLit
		}
	}
}
