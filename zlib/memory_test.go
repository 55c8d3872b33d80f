// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/zlib/adler32"
)

func TestCompress(t *testing.T) {
	data := text(t, 30000, 61)
	z, err := Compress(data)
	if err != nil {
		t.Fatalf("Compress error %s", err)
	}
	if !bytes.Equal(z, compress(t, data, DefaultCompression,
		MaxWindowBits, DefaultStrategy)) {
		t.Fatalf("Compress and Deflater outputs differ")
	}
	checkDecompress(t, z, data)

	z0, err := CompressLevel(data, NoCompression)
	if err != nil {
		t.Fatalf("CompressLevel error %s", err)
	}
	if len(z0) <= len(data) {
		t.Fatalf("level 0 stream has %d bytes; want more than %d",
			len(z0), len(data))
	}
	checkDecompress(t, z0, data)

	if _, err = CompressLevel(data, 11); err == nil {
		t.Fatalf("CompressLevel accepted level 11")
	}
}

func TestCompressWithChecksum(t *testing.T) {
	data := text(t, 1000, 62)
	z, sum, err := CompressWithChecksum(data, BestSpeed)
	if err != nil {
		t.Fatalf("CompressWithChecksum error %s", err)
	}
	if sum != adler32.Checksum(data) {
		t.Fatalf("checksum %#08x; want %#08x", sum,
			adler32.Checksum(data))
	}
	if compressChecksum(z) != sum {
		t.Fatalf("trailer %#08x; want %#08x", compressChecksum(z), sum)
	}
	var buf bytes.Buffer
	sum2, err := CompressTo(&buf, data, BestSpeed)
	if err != nil {
		t.Fatalf("CompressTo error %s", err)
	}
	if sum2 != sum || !bytes.Equal(buf.Bytes(), z) {
		t.Fatalf("CompressTo output differs")
	}
	var out bytes.Buffer
	if err = DecompressTo(&out, z); err != nil {
		t.Fatalf("DecompressTo error %s", err)
	}
	if !bytes.Equal(out.Bytes(), data) {
		t.Fatalf("DecompressTo output differs")
	}
}

func TestDecompressErrors(t *testing.T) {
	if _, err := Decompress(nil); err != io.ErrUnexpectedEOF {
		t.Fatalf("Decompress(nil) returned %v; want %v", err,
			io.ErrUnexpectedEOF)
	}
	if err := DecompressTo(&failWriter{n: 10}, compress(t,
		text(t, 1000, 63), 6, 15, DefaultStrategy)); err != errWrite {
		t.Fatalf("DecompressTo returned %v; want %v", err, errWrite)
	}
}

func TestIsCompressed(t *testing.T) {
	tests := []struct {
		p    []byte
		want bool
	}{
		{nil, false},
		{[]byte{0x78}, false},
		{[]byte{0x78, 0x01}, true},
		{[]byte{0x78, 0x5e}, true},
		{[]byte{0x78, 0x9c}, true},
		{[]byte{0x78, 0xda}, true},
		{[]byte{0x78, 0x9d}, false},
		{[]byte{0x58, 0x85}, false},
		{[]byte{0x78, 0xbb}, false},
		{[]byte("plain text"), false},
	}
	for _, tc := range tests {
		if got := IsCompressed(tc.p); got != tc.want {
			t.Errorf("IsCompressed(%x) returned %t; want %t", tc.p,
				got, tc.want)
		}
	}
	if !IsCompressedHeader(0x78, 0x9c) {
		t.Fatalf("IsCompressedHeader(0x78, 0x9c) returned false")
	}
}

func TestSniff(t *testing.T) {
	z := compress(t, []byte("sniff"), DefaultCompression, MaxWindowBits,
		DefaultStrategy)
	tests := []struct {
		p    []byte
		want bool
	}{
		{z, true},
		{[]byte("sniff"), false},
		{[]byte("s"), false},
		{nil, false},
	}
	for _, tc := range tests {
		ok, r, err := Sniff(bytes.NewReader(tc.p))
		if err != nil {
			t.Fatalf("Sniff error %s", err)
		}
		if ok != tc.want {
			t.Fatalf("Sniff(%q) returned %t; want %t", tc.p, ok,
				tc.want)
		}
		all, err := io.ReadAll(r)
		if err != nil {
			t.Fatalf("io.ReadAll error %s", err)
		}
		if !bytes.Equal(all, tc.p) {
			t.Fatalf("Sniff reader returned %q; want %q", all, tc.p)
		}
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "text")
	zfile := filepath.Join(dir, "text.zz")
	dst := filepath.Join(dir, "text.out")
	data := text(t, 100000, 64)
	if err := os.WriteFile(src, data, 0o644); err != nil {
		t.Fatalf("os.WriteFile error %s", err)
	}
	sum, err := CompressFile(zfile, src, BestCompression)
	if err != nil {
		t.Fatalf("CompressFile error %s", err)
	}
	if sum != adler32.Checksum(data) {
		t.Fatalf("CompressFile checksum %#08x", sum)
	}
	ok, err := IsCompressedFile(zfile)
	if err != nil {
		t.Fatalf("IsCompressedFile error %s", err)
	}
	if !ok {
		t.Fatalf("IsCompressedFile(%q) returned false", zfile)
	}
	if ok, _ = IsCompressedFile(src); ok {
		t.Fatalf("IsCompressedFile(%q) returned true", src)
	}
	if err = DecompressFile(dst, zfile); err != nil {
		t.Fatalf("DecompressFile error %s", err)
	}
	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("os.ReadFile error %s", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("file round trip differs")
	}

	plain := filepath.Join(dir, "plain")
	if err = os.WriteFile(plain, []byte("plain text"), 0o644); err != nil {
		t.Fatalf("os.WriteFile error %s", err)
	}
	err = DecompressFile(filepath.Join(dir, "x"), plain)
	if !errors.Is(err, ErrHeader) {
		t.Fatalf("DecompressFile of plain file returned %v", err)
	}
	if _, err = IsCompressedFile(filepath.Join(dir, "missing")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("IsCompressedFile of missing file returned %v", err)
	}
}
