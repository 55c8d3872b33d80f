// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"fmt"
	"io"

	"github.com/ulikunitz/zlib/adler32"
)

// deflateState describes the progress of a deflate stream.
type deflateState int

const (
	// header not yet written
	dsInit deflateState = iota
	// compressing input
	dsBusy
	// all input of a Finish call consumed; the final block or the trailer are
	// not yet written
	dsFinishing
	// trailer written
	dsDone
)

// blockState is the result of the block functions.
type blockState int

const (
	// more input is required
	bsNeedMore blockState = iota
	// a block has been flushed; the function must be called again
	bsContinue
	// the flush has been carried out
	bsBlockDone
	// the final block has been written
	bsFinishDone
)

// Deflater compresses data into the zlib format. Input and output
// buffers are provided by the caller for each call of Deflate; the
// Deflater keeps the sliding window and the pending output between the
// calls.
type Deflater struct {
	matchFinder
	blk blockWriter

	level int
	wbits int
	lc    levelConfig

	state  deflateState
	dict   bool
	dictID uint32
	// no input has been consumed since the last flush
	flushed bool

	// start of the pending output in blk.bw.out
	pendingStart int
	totalOut     int64
}

// NewDeflater creates a new deflater. The level must be in the range
// -1..9, the window bits in the range 8..15.
func NewDeflater(level, wbits int, strategy Strategy) (*Deflater, error) {
	level, err := verifyLevel(level)
	if err != nil {
		return nil, err
	}
	if err = verifyWindowBits(wbits); err != nil {
		return nil, err
	}
	if err = verifyStrategy(strategy); err != nil {
		return nil, err
	}
	d := &Deflater{
		level: level,
		wbits: wbits,
		lc:    levelConfigs[level],
	}
	d.window.init(wbits)
	d.strategy = strategy
	d.Reset()
	return d, nil
}

// Reset puts the deflater in the state of a new stream. Level, strategy
// and window size are kept; a dictionary must be set again.
func (d *Deflater) Reset() {
	d.window.reset()
	d.lmInit(d.lc, d.strategy)
	d.blk.init()
	d.state = dsInit
	d.dict = false
	d.dictID = 0
	d.flushed = false
	d.pendingStart = 0
	d.totalOut = 0
}

// SetDictionary sets the preset dictionary. It must be called before
// the first call of Deflate. The header of the stream will contain the
// Adler-32 checksum of the dictionary.
func (d *Deflater) SetDictionary(dict []byte) error {
	if d.state != dsInit || d.dict {
		return ErrDictionary
	}
	d.dict = true
	d.dictID = adler32.Checksum(dict)
	d.setDictionary(dict)
	return nil
}

// Checksum returns the Adler-32 checksum of the input consumed so far.
func (d *Deflater) Checksum() uint32 { return d.adler }

// TotalIn returns the number of input bytes consumed.
func (d *Deflater) TotalIn() int64 { return d.totalIn }

// TotalOut returns the number of bytes written to the destination
// buffers.
func (d *Deflater) TotalOut() int64 { return d.totalOut }

// pending returns the number of bytes waiting to be copied out.
func (d *Deflater) pending() int {
	return len(d.blk.bw.out) - d.pendingStart
}

// drain copies pending output into dst.
func (d *Deflater) drain(dst []byte) int {
	n := copy(dst, d.blk.bw.out[d.pendingStart:])
	d.pendingStart += n
	d.totalOut += int64(n)
	if d.pendingStart == len(d.blk.bw.out) {
		d.blk.bw.out = d.blk.bw.out[:0]
		d.pendingStart = 0
	}
	return n
}

// Deflate compresses src into dst. It returns the number of bytes
// written to dst and the number of bytes consumed from src.
//
// The error is nil if all of src has been consumed and the requested
// flush has been carried out. ErrShortDst asks for another call with
// more space in dst; the input not consumed must be provided again.
// After the Finish flush io.EOF is returned once the trailer has been
// written completely. A Finish call that returned ErrShortDst before
// consuming all of src must be repeated with the rest of src. Input
// provided after all input of the Finish call has been consumed returns
// ErrFinished. ErrShortBuffer is returned if dst has zero length and
// no output is pending.
func (d *Deflater) Deflate(dst, src []byte, flush Flush) (nDst, nSrc int, err error) {
	if !(NoFlush <= flush && flush <= Finish) {
		return 0, 0, fmt.Errorf("zlib: invalid flush mode %d",
			int(flush))
	}
	switch d.state {
	case dsDone:
		nDst = d.drain(dst)
		if d.pending() > 0 {
			return nDst, 0, ErrShortDst
		}
		if len(src) > 0 {
			return nDst, 0, ErrFinished
		}
		return nDst, 0, io.EOF
	case dsFinishing:
		if len(src) > 0 {
			return 0, 0, ErrFinished
		}
		flush = Finish
	}
	if len(dst) == 0 && d.pending() == 0 {
		return 0, 0, ErrShortBuffer
	}

	if d.state == dsInit {
		d.writeHeader()
		d.state = dsBusy
	}

	d.src = src
	d.nSrc = 0
	defer func() {
		nSrc = d.nSrc
		if flush == Finish && d.state == dsBusy && len(d.src) == 0 {
			d.state = dsFinishing
		}
		d.src = nil
	}()

	complete := false
	for {
		nDst += d.drain(dst[nDst:])
		if d.pending() > 0 {
			return nDst, nSrc, ErrShortDst
		}
		if d.state == dsDone {
			return nDst, nSrc, io.EOF
		}
		if complete {
			return nDst, nSrc, nil
		}
		if d.flushed && len(d.src) == 0 && flush != Finish {
			return nDst, nSrc, nil
		}
		switch d.compress(flush) {
		case bsNeedMore:
			complete = true
		case bsBlockDone:
			d.flushMarker(flush)
			d.flushed = true
			complete = true
		case bsFinishDone:
			d.writeTrailer()
			d.state = dsDone
		}
	}
}

// writeHeader writes the zlib header and the dictionary id.
func (d *Deflater) writeHeader() {
	h := header{
		windowBits: d.wbits,
		levelFlags: levelFlags(d.level, d.strategy),
		dict:       d.dict,
	}
	b := h.bytes()
	d.blk.bw.writeBytes(b[:])
	if d.dict {
		d.blk.bw.writeUint16BE(uint16(d.dictID >> 16))
		d.blk.bw.writeUint16BE(uint16(d.dictID))
	}
}

// writeTrailer writes the checksum of the input. The bit writer must be
// aligned.
func (d *Deflater) writeTrailer() {
	d.blk.bw.writeUint16BE(uint16(d.adler >> 16))
	d.blk.bw.writeUint16BE(uint16(d.adler))
}

// flushMarker writes the empty block that completes a flush.
func (d *Deflater) flushMarker(flush Flush) {
	switch flush {
	case PartialFlush:
		d.blk.alignBlock()
	case SyncFlush, FullFlush:
		d.blk.syncBlock()
		if flush == FullFlush {
			d.clearHash()
		}
	}
}

// compress calls the block function for the level.
func (d *Deflater) compress(flush Flush) blockState {
	switch d.lc.fn {
	case fnStored:
		return d.deflateStored(flush)
	case fnFast:
		return d.deflateFast(flush)
	}
	return d.deflateSlow(flush)
}

// fillWindow reads input into the window. A slide of the window
// rebases matchStart together with the other positions.
func (d *Deflater) fillWindow() {
	s := d.strstart
	n := d.fill()
	d.matchStart -= s - d.strstart
	if n > 0 {
		d.flushed = false
	}
}

// tallyLit adds a literal to the block. It returns true if the block
// should be flushed.
func (d *Deflater) tallyLit(c byte) bool {
	if d.blk.tallyLit(c) {
		return true
	}
	return d.level > 2 && d.blk.notCompressing(d.strstart-d.blockStart)
}

// tallyMatch adds a match to the block. It returns true if the block
// should be flushed.
func (d *Deflater) tallyMatch(dist, mlen int) bool {
	if d.blk.tallyMatch(dist, mlen) {
		return true
	}
	return d.level > 2 && d.blk.notCompressing(d.strstart-d.blockStart)
}

// flushBlock writes the current block. The input of the block is
// offered for a stored block only if it is not longer than the maximum
// distance, because only then it is guaranteed to be in the window
// regardless of the input chunks provided.
func (d *Deflater) flushBlock(last bool) {
	storedLen := d.strstart - d.blockStart
	var stored []byte
	if d.blockStart >= 0 && storedLen <= d.maxDist {
		stored = d.buf[d.blockStart:d.strstart]
	}
	d.blk.flushBlock(stored, storedLen, last, d.level)
	d.blockStart = d.strstart
}

// endBlock ends the current block for the flush requested. Empty
// blocks are only written for Finish.
func (d *Deflater) endBlock(flush Flush) blockState {
	if flush == Finish {
		d.flushBlock(true)
		return bsFinishDone
	}
	if d.blk.symbols > 0 || d.strstart > d.blockStart {
		d.flushBlock(false)
	}
	return bsBlockDone
}

// deflateStored copies the input into stored blocks. The block length is
// limited by the maximum distance, so the block input is always
// available in the window.
func (d *Deflater) deflateStored(flush Flush) blockState {
	blockLimit := d.maxDist
	if blockLimit > maxStoredLen {
		blockLimit = maxStoredLen
	}
	for {
		if d.lookahead == 0 {
			d.fillWindow()
			if d.lookahead == 0 {
				if flush == NoFlush {
					return bsNeedMore
				}
				break
			}
		}
		n := blockLimit - (d.strstart - d.blockStart)
		if n > d.lookahead {
			n = d.lookahead
		}
		d.strstart += n
		d.lookahead -= n
		if d.strstart-d.blockStart >= blockLimit {
			d.flushBlock(false)
			return bsContinue
		}
	}
	return d.endBlock(flush)
}

// deflateFast inserts new strings in the hash table only if no match
// has been found or the match is short. Matches are emitted without
// lazy evaluation.
func (d *Deflater) deflateFast(flush Flush) blockState {
	for {
		if d.lookahead < minLookahead {
			d.fillWindow()
			if d.lookahead < minLookahead && flush == NoFlush {
				return bsNeedMore
			}
			if d.lookahead == 0 {
				break
			}
		}

		hashHead := nilPos
		if d.lookahead >= minMatch {
			hashHead = d.insertString(d.strstart)
		}
		d.matchLength = minMatch - 1
		if hashHead != nilPos && d.strstart-hashHead <= d.maxDist &&
			d.strategy != HuffmanOnly {
			d.matchLength = d.longestMatch(hashHead)
		}

		var bflush bool
		if d.matchLength >= minMatch {
			bflush = d.tallyMatch(d.strstart-d.matchStart,
				d.matchLength)
			d.lookahead -= d.matchLength
			if d.matchLength <= d.maxLazy &&
				d.lookahead >= minMatch {
				for n := d.matchLength - 1; n > 0; n-- {
					d.strstart++
					d.insertString(d.strstart)
				}
				d.strstart++
			} else {
				d.strstart += d.matchLength
			}
		} else {
			bflush = d.tallyLit(d.buf[d.strstart])
			d.lookahead--
			d.strstart++
		}
		if bflush {
			d.flushBlock(false)
			return bsContinue
		}
	}
	return d.endBlock(flush)
}

// deflateSlow uses lazy evaluation of matches: a match is emitted only
// if there is no better match at the next position.
func (d *Deflater) deflateSlow(flush Flush) blockState {
	for {
		if d.lookahead < minLookahead {
			d.fillWindow()
			if d.lookahead < minLookahead && flush == NoFlush {
				return bsNeedMore
			}
			if d.lookahead == 0 {
				break
			}
		}

		hashHead := nilPos
		if d.lookahead >= minMatch {
			hashHead = d.insertString(d.strstart)
		}

		d.prevLength = d.matchLength
		d.prevMatch = d.matchStart
		d.matchLength = minMatch - 1

		if hashHead != nilPos && d.prevLength < d.maxLazy &&
			d.strstart-hashHead <= d.maxDist {
			if d.strategy != HuffmanOnly {
				d.matchLength = d.longestMatch(hashHead)
			}
			if d.matchLength <= 5 && (d.strategy == Filtered ||
				(d.matchLength == minMatch &&
					d.strstart-d.matchStart > tooFar)) {
				d.matchLength = minMatch - 1
			}
		}

		switch {
		case d.prevLength >= minMatch && d.matchLength <= d.prevLength:
			// positions beyond maxInsert don't have three valid
			// bytes
			maxInsert := d.strstart + d.lookahead - minMatch
			bflush := d.tallyMatch(d.strstart-1-d.prevMatch,
				d.prevLength)
			d.lookahead -= d.prevLength - 1
			for n := d.prevLength - 2; n > 0; n-- {
				d.strstart++
				if d.strstart <= maxInsert {
					d.insertString(d.strstart)
				}
			}
			d.matchAvailable = false
			d.matchLength = minMatch - 1
			d.strstart++
			if bflush {
				d.flushBlock(false)
				return bsContinue
			}
		case d.matchAvailable:
			// The previous match was not better; emit its first
			// byte as literal.
			bflush := d.tallyLit(d.buf[d.strstart-1])
			if bflush {
				d.flushBlock(false)
			}
			d.strstart++
			d.lookahead--
			if bflush {
				return bsContinue
			}
		default:
			d.matchAvailable = true
			d.strstart++
			d.lookahead--
		}
	}
	if d.matchAvailable {
		d.tallyLit(d.buf[d.strstart-1])
		d.matchAvailable = false
	}
	return d.endBlock(flush)
}
