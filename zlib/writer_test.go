// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/kr/pretty"
	"github.com/ulikunitz/zlib/adler32"
)

func TestWriter(t *testing.T) {
	const text = "The quick brown fox jumps over the lazy dog."
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	n, err := io.WriteString(w, text)
	if err != nil {
		t.Fatalf("WriteString error %s", err)
	}
	if n != len(text) {
		t.Fatalf("WriteString wrote %d bytes; want %d", n, len(text))
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	if w.Checksum() != adler32.Checksum([]byte(text)) {
		t.Fatalf("w.Checksum() returned %#08x", w.Checksum())
	}
	var out bytes.Buffer
	r, err := NewReader(&buf)
	if err != nil {
		t.Fatalf("NewReader error %s", err)
	}
	if _, err = io.Copy(&out, r); err != nil {
		t.Fatalf("io.Copy error %s", err)
	}
	if s := out.String(); s != text {
		t.Fatalf("reader decompressed to %q; want %q", s, text)
	}
}

func TestWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	want := []byte{0x78, 0x9c, 3, 0, 0, 0, 0, 1}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("empty stream %x; want %x", buf.Bytes(), want)
	}
}

func TestWriterLevelZero(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterLevel(&buf, NoCompression)
	if err != nil {
		t.Fatalf("NewWriterLevel error %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	want := []byte{0x78, 0x01, 1, 0, 0, 0xff, 0xff, 0, 0, 0, 1}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("empty stream %x; want %x", buf.Bytes(), want)
	}
}

func TestWriterClose(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	if err != nil {
		t.Fatalf("NewWriter error %s", err)
	}
	if _, err = w.Write([]byte("abc")); err != nil {
		t.Fatalf("w.Write error %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	n := buf.Len()
	if err = w.Close(); err != nil {
		t.Fatalf("second w.Close error %s", err)
	}
	if buf.Len() != n {
		t.Fatalf("second w.Close wrote data")
	}
	if _, err = w.Write([]byte("x")); err != ErrClosed {
		t.Fatalf("w.Write after Close returned %v; want %v", err,
			ErrClosed)
	}
	if err = w.Flush(); err != ErrClosed {
		t.Fatalf("w.Flush after Close returned %v; want %v", err,
			ErrClosed)
	}

	var buf2 bytes.Buffer
	if err = w.Reset(&buf2); err != nil {
		t.Fatalf("w.Reset error %s", err)
	}
	if _, err = w.Write([]byte("abc")); err != nil {
		t.Fatalf("w.Write after Reset error %s", err)
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	if !bytes.Equal(buf.Bytes(), buf2.Bytes()) {
		t.Fatalf("stream after Reset %x; want %x", buf2.Bytes(),
			buf.Bytes())
	}
}

// failWriter fails after n bytes.
type failWriter struct {
	n int
}

var errWrite = errors.New("write failed")

func (w *failWriter) Write(p []byte) (n int, err error) {
	if len(p) > w.n {
		n = w.n
		w.n = 0
		return n, errWrite
	}
	w.n -= len(p)
	return len(p), nil
}

func TestWriterError(t *testing.T) {
	w, err := NewWriterConfig(&failWriter{n: 100},
		WriterConfig{BufferSize: 64})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	data := randomBytes(10000, 41)
	if _, err = w.Write(data); err != errWrite {
		t.Fatalf("w.Write returned %v; want %v", err, errWrite)
	}
	if err = w.Close(); err != errWrite {
		t.Fatalf("w.Close returned %v; want %v", err, errWrite)
	}
}

func TestWriterFlush(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriterConfig(&buf, WriterConfig{BufferSize: 10})
	if err != nil {
		t.Fatalf("NewWriterConfig error %s", err)
	}
	f, err := NewInflater(MaxWindowBits)
	if err != nil {
		t.Fatalf("NewInflater error %s", err)
	}
	out := make([]byte, 1000)
	for _, s := range []string{"first line\n", "second line\n",
		"first line\n"} {
		if _, err = io.WriteString(w, s); err != nil {
			t.Fatalf("WriteString error %s", err)
		}
		if err = w.Flush(); err != nil {
			t.Fatalf("w.Flush error %s", err)
		}
		nd, ns, err := f.Inflate(out, buf.Bytes())
		if err != ErrShortSrc {
			t.Fatalf("Inflate error %v; want %v", err, ErrShortSrc)
		}
		buf.Next(ns)
		if string(out[:nd]) != s {
			t.Fatalf("Inflate returned %q; want %q", out[:nd], s)
		}
	}
	if err = w.Close(); err != nil {
		t.Fatalf("w.Close error %s", err)
	}
	if _, _, err = f.Inflate(out, buf.Bytes()); err != io.EOF {
		t.Fatalf("Inflate error %v; want %v", err, io.EOF)
	}
}

func TestWriterConfig(t *testing.T) {
	var cfg WriterConfig
	cfg.SetDefaults()
	want := WriterConfig{
		Level:      DefaultCompression,
		WindowBits: DefaultWindowBits,
		BufferSize: defaultBufferSize,
	}
	if diff := pretty.Diff(cfg, want); len(diff) > 0 {
		t.Fatalf("SetDefaults diff %v", diff)
	}
	if err := cfg.Verify(); err != nil {
		t.Fatalf("Verify error %s", err)
	}

	bad := []WriterConfig{
		{Level: 10},
		{Level: 3, ZeroLevel: true},
		{WindowBits: 16},
		{Strategy: Strategy(5)},
		{BufferSize: -1},
	}
	for _, c := range bad {
		c.SetDefaults()
		if err := c.Verify(); err == nil {
			t.Errorf("Verify accepted %# v", pretty.Formatter(c))
		}
		if _, err := NewWriterConfig(io.Discard, c); err == nil {
			t.Errorf("NewWriterConfig accepted %# v",
				pretty.Formatter(c))
		}
	}
	if _, err := NewWriter(nil); err == nil {
		t.Fatalf("NewWriter accepted nil writer")
	}
}

func TestWriterWindowBits(t *testing.T) {
	data := text(t, 20000, 42)
	for wbits := MinWindowBits; wbits <= MaxWindowBits; wbits++ {
		var buf bytes.Buffer
		w, err := NewWriterConfig(&buf,
			WriterConfig{WindowBits: wbits, Strategy: Filtered})
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
		if got := int(z[0]>>4) + 8; got != wbits {
			t.Fatalf("header window bits %d; want %d", got, wbits)
		}
		r, err := NewReaderConfig(bytes.NewReader(z),
			ReaderConfig{WindowBits: wbits})
		if err != nil {
			t.Fatalf("NewReaderConfig error %s", err)
		}
		out, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("io.ReadAll error %s", err)
		}
		if !bytes.Equal(out, data) {
			t.Fatalf("wbits %d: output differs", wbits)
		}
	}
}
