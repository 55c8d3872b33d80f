// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bytes"
	"io"
	"math/rand"
	"testing"

	"github.com/ulikunitz/zlib/internal/randtxt"
)

// text returns n bytes of pseudo English text.
func text(t testing.TB, n int, seed int64) []byte {
	p := make([]byte, n)
	if _, err := io.ReadFull(randtxt.NewReader(rand.NewSource(seed)), p); err != nil {
		t.Fatalf("io.ReadFull error %s", err)
	}
	return p
}

// randomBytes returns n random bytes.
func randomBytes(n int, seed int64) []byte {
	p := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(p)
	return p
}

// testInputs provides the inputs for the round trip tests.
func testInputs(t testing.TB) []struct {
	name string
	data []byte
} {
	mixed := append(text(t, 20000, 3), randomBytes(20000, 4)...)
	mixed = append(mixed, make([]byte, 70000)...)
	mixed = append(mixed, text(t, 20000, 3)...)
	return []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"byte", []byte{'x'}},
		{"a30", []byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")},
		{"text", text(t, 100000, 1)},
		{"random", randomBytes(70000, 2)},
		{"zeros", make([]byte, 200000)},
		{"mixed", mixed},
	}
}

// deflateChunks compresses data providing inChunk bytes of input and
// outChunk bytes of output space per call of Deflate.
func deflateChunks(t testing.TB, d *Deflater, data []byte, inChunk, outChunk int) []byte {
	var out []byte
	buf := make([]byte, outChunk)
	for len(data) > 0 {
		k := min(inChunk, len(data))
		p := data[:k]
		data = data[k:]
		for {
			nd, ns, err := d.Deflate(buf, p, NoFlush)
			out = append(out, buf[:nd]...)
			p = p[ns:]
			if err == nil {
				if len(p) != 0 {
					t.Fatalf("Deflate returned nil with %d bytes left",
						len(p))
				}
				break
			}
			if err != ErrShortDst {
				t.Fatalf("Deflate error %s", err)
			}
		}
	}
	for {
		nd, _, err := d.Deflate(buf, nil, Finish)
		out = append(out, buf[:nd]...)
		if err == io.EOF {
			return out
		}
		if err != ErrShortDst {
			t.Fatalf("Deflate(Finish) error %s", err)
		}
	}
}

// compress compresses data in a single call sequence.
func compress(t testing.TB, data []byte, level, wbits int, s Strategy) []byte {
	d, err := NewDeflater(level, wbits, s)
	if err != nil {
		t.Fatalf("NewDeflater(%d, %d, %s) error %s", level, wbits, s, err)
	}
	return deflateChunks(t, d, data, len(data)+1, 1<<16)
}

// inflateChunks decompresses the stream providing inChunk bytes of input
// and outChunk bytes of output space per call.
func inflateChunks(f *Inflater, z []byte, inChunk, outChunk int) ([]byte, error) {
	var out []byte
	buf := make([]byte, outChunk)
	for {
		k := min(inChunk, len(z))
		nd, ns, err := f.Inflate(buf, z[:k])
		out = append(out, buf[:nd]...)
		z = z[ns:]
		switch err {
		case io.EOF:
			return out, nil
		case ErrShortDst:
		case ErrShortSrc:
			if len(z) == 0 {
				return out, io.ErrUnexpectedEOF
			}
		default:
			return out, err
		}
	}
}

// checkDecompress decompresses z and compares the result with want.
func checkDecompress(t testing.TB, z, want []byte) {
	t.Helper()
	out, err := Decompress(z)
	if err != nil {
		t.Fatalf("Decompress error %s", err)
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("Decompress output differs; got %d bytes, want %d",
			len(out), len(want))
	}
}
