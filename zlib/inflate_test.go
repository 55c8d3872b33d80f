// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"testing"

	"github.com/kr/pretty"
)

func TestRoundTrip(t *testing.T) {
	inputs := testInputs(t)
	levels := []int{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	wbitsList := []int{8, 9, 12, 15}
	strategies := []Strategy{DefaultStrategy, Filtered, HuffmanOnly}
	if testing.Short() {
		levels = []int{0, 1, 6, 9}
		wbitsList = []int{9, 15}
	}
	for _, in := range inputs {
		for _, wbits := range wbitsList {
			for _, level := range levels {
				for _, s := range strategies {
					name := fmt.Sprintf("%s/w%d/l%d/%s",
						in.name, wbits, level, s)
					t.Run(name, func(t *testing.T) {
						z := compress(t, in.data, level,
							wbits, s)
						f, err := NewInflater(wbits)
						if err != nil {
							t.Fatalf("NewInflater"+
								" error %s", err)
						}
						out, err := inflateChunks(f, z,
							len(z), 1<<16)
						if err != nil {
							t.Fatalf("inflate error %s",
								err)
						}
						if !bytes.Equal(out, in.data) {
							t.Fatalf("output differs")
						}
						if f.TotalIn() != int64(len(z)) {
							t.Fatalf("TotalIn %d; want %d",
								f.TotalIn(), len(z))
						}
					})
				}
			}
		}
	}
}

func TestRatio(t *testing.T) {
	data := text(t, 200000, 21)
	z1 := compress(t, data, BestSpeed, MaxWindowBits, DefaultStrategy)
	z9 := compress(t, data, BestCompression, MaxWindowBits,
		DefaultStrategy)
	if len(z9) > len(z1) {
		t.Fatalf("level 9 output %d bytes larger than level 1 output"+
			" %d bytes", len(z9), len(z1))
	}
	if 2*len(z9) > len(data) {
		t.Fatalf("text compressed only to %d of %d bytes", len(z9),
			len(data))
	}
	r := randomBytes(100000, 22)
	z := compress(t, r, DefaultCompression, MaxWindowBits, DefaultStrategy)
	// stored blocks add 5 bytes per 64 KiB
	if len(z) > len(r)+len(r)/1000+20 {
		t.Fatalf("random data expanded to %d bytes", len(z))
	}
}

func TestInflateChunks(t *testing.T) {
	data := append(text(t, 40000, 23), randomBytes(10000, 24)...)
	z := compress(t, data, DefaultCompression, MaxWindowBits,
		DefaultStrategy)
	chunks := []struct{ in, out int }{{1, 1}, {3, 1000}, {1000, 7}}
	for _, c := range chunks {
		f, err := NewInflater(MaxWindowBits)
		if err != nil {
			t.Fatalf("NewInflater error %s", err)
		}
		out, err := inflateChunks(f, z, c.in, c.out)
		if err != nil {
			t.Fatalf("chunks %d/%d: inflate error %s", c.in, c.out,
				err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("chunks %d/%d: output differs", c.in, c.out)
		}
	}
}

func TestInflateTrailingData(t *testing.T) {
	data := text(t, 5000, 25)
	z := compress(t, data, DefaultCompression, MaxWindowBits,
		DefaultStrategy)
	f, err := NewInflater(MaxWindowBits)
	if err != nil {
		t.Fatalf("NewInflater error %s", err)
	}
	buf := make([]byte, 2*len(data))
	src := append(append([]byte{}, z...), "trailing"...)
	nd, ns, err := f.Inflate(buf, src)
	if err != io.EOF {
		t.Fatalf("Inflate error %v; want %v", err, io.EOF)
	}
	if ns != len(z) {
		t.Fatalf("Inflate consumed %d bytes; want %d", ns, len(z))
	}
	if !bytes.Equal(buf[:nd], data) {
		t.Fatalf("Inflate output differs")
	}
	if _, _, err = f.Inflate(buf, nil); err != io.EOF {
		t.Fatalf("Inflate after end returned %v; want %v", err,
			io.EOF)
	}
	if f.TotalOut() != int64(len(data)) {
		t.Fatalf("TotalOut %d; want %d", f.TotalOut(), len(data))
	}

	f.Reset()
	nd, _, err = f.Inflate(buf, z)
	if err != io.EOF || !bytes.Equal(buf[:nd], data) {
		t.Fatalf("Inflate after Reset error %v", err)
	}
}

// badStream builds a stream from block bits written by fn. A trailer
// for empty data is appended.
func badStream(fn func(w *blockWriter)) []byte {
	var w blockWriter
	w.init()
	w.bw.writeBytes([]byte{0x78, 0x9c})
	fn(&w)
	w.bw.align()
	w.bw.writeBytes([]byte{0, 0, 0, 1})
	return w.bw.out
}

func TestInflateFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		z    []byte
		kind ErrorKind
	}{
		{"check", []byte{0x78, 0x9d, 3, 0}, BadHeaderCheck},
		{"method", []byte{0x77, 0x09, 3, 0}, BadMethod},
		{"window", []byte{0x88, 0x1c, 3, 0}, BadWindowSize},
		{"blockType", []byte{0x78, 0x9c, 0x07}, BadBlockType},
		{"storedLength", []byte{0x78, 0x9c, 1, 5, 0, 0, 0},
			BadStoredLength},
		{"checksum", []byte{0x78, 0x9c, 3, 0, 0, 0, 0, 2},
			BadChecksum},
		{"tooFar", badStream(func(w *blockWriter) {
			w.bw.writeBits(staticTrees<<1|1, 3)
			w.sendLit('a', staticLTree[:])
			w.sendMatch(2, 3, staticLTree[:], staticDTree[:])
			w.bw.writeCode(endBlock, staticLTree[:])
		}), DistTooFarBack},
		{"incomplete", badStream(func(w *blockWriter) {
			w.bw.writeBits(dynamicTrees<<1|1, 3)
			w.bw.writeBits(0, 5)
			w.bw.writeBits(0, 5)
			w.bw.writeBits(0, 4)
			for i := 0; i < 4; i++ {
				w.bw.writeBits(0, 3)
			}
		}), IncompleteCode},
		{"overSubscribed", badStream(func(w *blockWriter) {
			w.bw.writeBits(dynamicTrees<<1|1, 3)
			w.bw.writeBits(0, 5)
			w.bw.writeBits(0, 5)
			w.bw.writeBits(0, 4)
			for i := 0; i < 4; i++ {
				w.bw.writeBits(1, 3)
			}
		}), OverSubscribed},
		{"tooManyCodes", badStream(func(w *blockWriter) {
			w.bw.writeBits(dynamicTrees<<1|1, 3)
			w.bw.writeBits(30, 5)
			w.bw.writeBits(0, 5)
			w.bw.writeBits(0, 4)
		}), BadCodeLengths},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decompress(tc.z)
			want := &FormatError{Kind: tc.kind}
			if !errors.Is(err, want) {
				t.Fatalf("Decompress error %v; want %s", err,
					tc.kind)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("error %v is not a *FormatError", err)
			}
			if fe.Offset <= 0 || fe.Offset > int64(len(tc.z)) {
				t.Fatalf("offset %d outside of stream",
					fe.Offset)
			}

			// the error must persist
			f, err := NewInflater(MaxWindowBits)
			if err != nil {
				t.Fatalf("NewInflater error %s", err)
			}
			buf := make([]byte, 64)
			_, _, err1 := f.Inflate(buf, tc.z)
			_, _, err2 := f.Inflate(buf, nil)
			if diff := pretty.Diff(err1, err2); len(diff) > 0 {
				t.Fatalf("error changed: %v", diff)
			}
		})
	}
}

func TestFormatErrorIs(t *testing.T) {
	_, err := Decompress([]byte{0x78, 0x9d, 3, 0})
	if !errors.Is(err, ErrHeader) {
		t.Fatalf("errors.Is(%v, ErrHeader) returned false", err)
	}
	if errors.Is(err, ErrChecksum) {
		t.Fatalf("errors.Is(%v, ErrChecksum) returned true", err)
	}
	z := compress(t, []byte("checksum"), DefaultCompression,
		MaxWindowBits, DefaultStrategy)
	z[len(z)-1] ^= 1
	_, err = Decompress(z)
	if !errors.Is(err, ErrChecksum) {
		t.Fatalf("errors.Is(%v, ErrChecksum) returned false", err)
	}
	if s := err.Error(); s != "zlib: incorrect data check at offset "+
		fmt.Sprint(len(z)) {
		t.Fatalf("Error() returned %q", s)
	}
}

func TestInflateWindowLimit(t *testing.T) {
	z := compress(t, []byte("window"), DefaultCompression, 15,
		DefaultStrategy)
	f, err := NewInflater(12)
	if err != nil {
		t.Fatalf("NewInflater error %s", err)
	}
	_, err = inflateChunks(f, z, len(z), 100)
	if !errors.Is(err, &FormatError{Kind: BadWindowSize}) {
		t.Fatalf("inflate error %v; want %s", err, BadWindowSize)
	}
}

func TestTruncated(t *testing.T) {
	data := text(t, 30000, 26)
	z := compress(t, data, DefaultCompression, MaxWindowBits,
		DefaultStrategy)
	for _, n := range []int{0, 1, 2, 10, len(z) / 2, len(z) - 4,
		len(z) - 1} {
		if _, err := Decompress(z[:n]); err != io.ErrUnexpectedEOF {
			t.Fatalf("Decompress of %d bytes returned %v; want %v",
				n, err, io.ErrUnexpectedEOF)
		}
	}
}

func TestCorruption(t *testing.T) {
	data := text(t, 20000, 27)
	z := compress(t, data, DefaultCompression, MaxWindowBits,
		DefaultStrategy)
	rng := rand.New(rand.NewSource(28))
	n := 1000
	if testing.Short() {
		n = 100
	}
	silent := 0
	c := make([]byte, len(z))
	for i := 0; i < n; i++ {
		copy(c, z)
		k := rng.Intn(len(c) * 8)
		c[k/8] ^= 1 << uint(k%8)
		out, err := Decompress(c)
		if err == nil && !bytes.Equal(out, data) {
			silent++
		}
	}
	if silent*100 >= n {
		t.Fatalf("%d of %d corruptions not detected", silent, n)
	}
}

func TestDictionary(t *testing.T) {
	dict := text(t, 4000, 29)
	data := append(append([]byte{}, dict[1000:3000]...), text(t, 2000,
		30)...)

	var buf bytes.Buffer
	w, err := NewWriterConfig(&buf, WriterConfig{Dictionary: dict})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	if _, err = w.Write(data); err != nil {
		t.Fatalf("w.Write error %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	z := buf.Bytes()
	plain := compress(t, data, DefaultCompression, MaxWindowBits,
		DefaultStrategy)
	if len(z) >= len(plain) {
		t.Fatalf("dictionary stream %d bytes; plain stream %d bytes",
			len(z), len(plain))
	}
	if IsCompressed(z) {
		t.Fatalf("IsCompressed accepted a stream with dictionary")
	}

	if _, err = Decompress(z); err != ErrNeedDictionary {
		t.Fatalf("Decompress error %v; want %v", err,
			ErrNeedDictionary)
	}

	f, err := NewInflater(MaxWindowBits)
	if err != nil {
		t.Fatalf("NewInflater error %s", err)
	}
	if err = f.SetDictionary(dict); err != ErrDictionary {
		t.Fatalf("early SetDictionary returned %v; want %v", err,
			ErrDictionary)
	}
	out := make([]byte, 2*len(data))
	nd, ns, err := f.Inflate(out, z)
	if err != ErrNeedDictionary || nd != 0 {
		t.Fatalf("Inflate returned %d, %v; want %v", nd, err,
			ErrNeedDictionary)
	}
	if err = f.SetDictionary(dict[1:]); err != ErrDictionary {
		t.Fatalf("SetDictionary with wrong dictionary returned %v",
			err)
	}
	if err = f.SetDictionary(dict); err != nil {
		t.Fatalf("SetDictionary error %s", err)
	}
	nd, _, err = f.Inflate(out, z[ns:])
	if err != io.EOF {
		t.Fatalf("Inflate error %v; want %v", err, io.EOF)
	}
	if !bytes.Equal(out[:nd], data) {
		t.Fatalf("Inflate output differs")
	}

	r, err := NewReaderConfig(bytes.NewReader(z),
		ReaderConfig{Dictionary: dict})
	if err != nil {
		t.Fatalf("NewReaderConfig error %s", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("io.ReadAll error %s", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("reader output differs")
	}
}
