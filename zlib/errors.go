// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"errors"
	"fmt"
)

var (
	// ErrShortDst reports that the destination buffer is full. The
	// call must be repeated with more space.
	ErrShortDst = errors.New("zlib: short destination buffer")
	// ErrShortSrc reports that all input has been consumed and more
	// input is required.
	ErrShortSrc = errors.New("zlib: short source buffer")
	// ErrShortBuffer is returned by Deflate if the destination buffer
	// has zero capacity and no output is pending.
	ErrShortBuffer = errors.New("zlib: zero length destination buffer")
	// ErrFinished is returned if input is provided after Finish.
	ErrFinished = errors.New("zlib: input after finish")
	// ErrClosed is returned for the use of a closed Writer or Reader.
	ErrClosed = errors.New("zlib: use of closed stream")
	// ErrNeedDictionary is returned by Inflate if the stream requires
	// a preset dictionary. Call SetDictionary and continue.
	ErrNeedDictionary = errors.New("zlib: need dictionary")
	// ErrDictionary indicates a wrong dictionary or a dictionary
	// provided at the wrong time.
	ErrDictionary = errors.New("zlib: invalid dictionary")

	// ErrHeader matches all format errors of the zlib header.
	ErrHeader = errors.New("zlib: invalid header")
	// ErrChecksum matches a trailer checksum mismatch.
	ErrChecksum = errors.New("zlib: invalid checksum")
)

// ErrorKind identifies the check that failed for a FormatError.
type ErrorKind int

// Kinds of format errors.
const (
	// zlib header
	BadMethod ErrorKind = iota + 1
	BadWindowSize
	BadHeaderCheck
	// deflate blocks
	BadBlockType
	BadStoredLength
	BadCodeLengths
	OverSubscribed
	IncompleteCode
	BadRepeat
	MissingEndOfBlock
	BadLitLenCode
	BadDistCode
	DistTooFarBack
	// zlib trailer
	BadChecksum
)

var kindNames = map[ErrorKind]string{
	BadMethod:         "unknown compression method",
	BadWindowSize:     "invalid window size",
	BadHeaderCheck:    "incorrect header check",
	BadBlockType:      "invalid block type",
	BadStoredLength:   "invalid stored block lengths",
	BadCodeLengths:    "too many length or distance symbols",
	OverSubscribed:    "over-subscribed code lengths",
	IncompleteCode:    "incomplete code lengths",
	BadRepeat:         "invalid bit length repeat",
	MissingEndOfBlock: "missing end-of-block code",
	BadLitLenCode:     "invalid literal/length code",
	BadDistCode:       "invalid distance code",
	DistTooFarBack:    "invalid distance too far back",
	BadChecksum:       "incorrect data check",
}

// String returns the description of the error kind.
func (k ErrorKind) String() string {
	s, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return s
}

// FormatError describes invalid compressed data.
type FormatError struct {
	Kind ErrorKind
	// Tree names the Huffman table for code errors; it may be empty.
	Tree string
	// Offset is the number of compressed bytes consumed when the error
	// has been detected.
	Offset int64
}

// Error returns the error message.
func (e *FormatError) Error() string {
	if e.Tree != "" {
		return fmt.Sprintf("zlib: %s in %s tree at offset %d",
			e.Kind, e.Tree, e.Offset)
	}
	return fmt.Sprintf("zlib: %s at offset %d", e.Kind, e.Offset)
}

// Is supports errors.Is for the ErrHeader and ErrChecksum sentinels and
// for FormatError values with the same kind.
func (e *FormatError) Is(target error) bool {
	switch target {
	case ErrHeader:
		return e.Kind == BadMethod || e.Kind == BadWindowSize ||
			e.Kind == BadHeaderCheck
	case ErrChecksum:
		return e.Kind == BadChecksum
	}
	t, ok := target.(*FormatError)
	return ok && t.Kind == e.Kind
}
