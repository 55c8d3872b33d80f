// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"errors"
	"fmt"
)

// Compression levels.
const (
	NoCompression      = 0
	BestSpeed          = 1
	BestCompression    = 9
	DefaultCompression = -1
)

// Window sizes are given as base 2 logarithm.
const (
	MinWindowBits     = 8
	MaxWindowBits     = 15
	DefaultWindowBits = MaxWindowBits
)

// Strategy tunes the match finder.
type Strategy int

// Compression strategies.
const (
	// DefaultStrategy uses the normal match finder.
	DefaultStrategy Strategy = iota
	// Filtered drops short matches that are far away. It helps for
	// data with small values and a random distribution.
	Filtered
	// HuffmanOnly disables the match finder. Only literals are
	// encoded.
	HuffmanOnly
)

// String returns the name of the strategy.
func (s Strategy) String() string {
	switch s {
	case DefaultStrategy:
		return "default"
	case Filtered:
		return "filtered"
	case HuffmanOnly:
		return "huffman-only"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Flush controls the block boundaries created by Deflate.
type Flush int

// Flush modes.
const (
	// NoFlush lets the deflater decide on the block boundaries.
	NoFlush Flush = iota
	// PartialFlush ends the current block and appends an empty fixed
	// block. Up to 7 bits may remain in the deflater.
	PartialFlush
	// SyncFlush ends the current block and appends an empty stored
	// block, which aligns the output to a byte boundary.
	SyncFlush
	// FullFlush works like SyncFlush but resets the match finder
	// history, so decoding can restart at this point.
	FullFlush
	// Finish completes the stream and writes the trailer.
	Finish
)

var flushNames = [...]string{
	NoFlush:      "NoFlush",
	PartialFlush: "PartialFlush",
	SyncFlush:    "SyncFlush",
	FullFlush:    "FullFlush",
	Finish:       "Finish",
}

// String returns the name of the flush mode.
func (f Flush) String() string {
	if 0 <= f && int(f) < len(flushNames) {
		return flushNames[f]
	}
	return fmt.Sprintf("Flush(%d)", int(f))
}

// compressFunc identifies the block function used for a level.
type compressFunc int

const (
	fnStored compressFunc = iota
	fnFast
	fnSlow
)

// levelConfig contains the match finder parameters for a compression
// level.
type levelConfig struct {
	// reduce lazy search above this match length
	goodLength int
	// do not perform lazy search above this match length
	maxLazy int
	// quit search above this match length
	niceLength int
	// maximum number of hash chain entries checked
	maxChain int
	fn       compressFunc
}

var levelConfigs = [10]levelConfig{
	{0, 0, 0, 0, fnStored},
	{4, 4, 8, 4, fnFast},
	{4, 5, 16, 8, fnFast},
	{4, 6, 32, 32, fnFast},
	{4, 4, 16, 16, fnSlow},
	{8, 16, 32, 32, fnSlow},
	{8, 16, 128, 128, fnSlow},
	{8, 32, 128, 256, fnSlow},
	{32, 128, 258, 1024, fnSlow},
	{32, 258, 258, 4096, fnSlow},
}

// verifyLevel checks the compression level and maps the default level
// to 6.
func verifyLevel(level int) (int, error) {
	if level == DefaultCompression {
		return 6, nil
	}
	if !(NoCompression <= level && level <= BestCompression) {
		return 0, fmt.Errorf("zlib: invalid compression level %d",
			level)
	}
	return level, nil
}

func verifyWindowBits(wbits int) error {
	if !(MinWindowBits <= wbits && wbits <= MaxWindowBits) {
		return fmt.Errorf("zlib: window bits %d out of range [%d,%d]",
			wbits, MinWindowBits, MaxWindowBits)
	}
	return nil
}

func verifyStrategy(s Strategy) error {
	if !(DefaultStrategy <= s && s <= HuffmanOnly) {
		return fmt.Errorf("zlib: unsupported strategy %d", int(s))
	}
	return nil
}

// defaultBufferSize is the size of the buffers used by Reader and Writer.
const defaultBufferSize = 32 << 10

// WriterConfig provides the parameters for a zlib writer.
type WriterConfig struct {
	// Level sets the compression level; 0 is NoCompression only if
	// ZeroLevel is set.
	Level int
	// ZeroLevel indicates that the level 0 is requested.
	ZeroLevel bool

	Strategy Strategy

	// WindowBits is the base 2 logarithm of the window size.
	WindowBits int

	// BufferSize is the size of the output buffer.
	BufferSize int

	// Dictionary is the preset dictionary; it is optional.
	Dictionary []byte
}

// SetDefaults replaces zero values with default values.
func (cfg *WriterConfig) SetDefaults() {
	if cfg.Level == 0 && !cfg.ZeroLevel {
		cfg.Level = DefaultCompression
	}
	if cfg.WindowBits == 0 {
		cfg.WindowBits = DefaultWindowBits
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = defaultBufferSize
	}
}

// Verify checks whether the configuration is consistent and correct.
// Usually call SetDefaults before this method.
func (cfg *WriterConfig) Verify() error {
	if cfg == nil {
		return errors.New("zlib: WriterConfig pointer must not be nil")
	}
	if _, err := verifyLevel(cfg.Level); err != nil {
		return err
	}
	if cfg.ZeroLevel && cfg.Level != 0 {
		return errors.New("zlib: ZeroLevel set for non-zero level")
	}
	if err := verifyStrategy(cfg.Strategy); err != nil {
		return err
	}
	if err := verifyWindowBits(cfg.WindowBits); err != nil {
		return err
	}
	if cfg.BufferSize < 1 {
		return errors.New("zlib: BufferSize must be positive")
	}
	return nil
}

// ReaderConfig provides the parameters for a zlib reader.
type ReaderConfig struct {
	// WindowBits is the largest window size accepted.
	WindowBits int

	// BufferSize is the size of the input buffer.
	BufferSize int

	// Dictionary is provided if the stream requests a preset
	// dictionary.
	Dictionary []byte
}

// SetDefaults replaces zero values with default values.
func (cfg *ReaderConfig) SetDefaults() {
	if cfg.WindowBits == 0 {
		cfg.WindowBits = DefaultWindowBits
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = defaultBufferSize
	}
}

// Verify checks the reader configuration.
func (cfg *ReaderConfig) Verify() error {
	if cfg == nil {
		return errors.New("zlib: ReaderConfig pointer must not be nil")
	}
	if err := verifyWindowBits(cfg.WindowBits); err != nil {
		return err
	}
	if cfg.BufferSize < 1 {
		return errors.New("zlib: BufferSize must be positive")
	}
	return nil
}
