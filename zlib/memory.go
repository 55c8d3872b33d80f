// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// Version is the version of the package.
const Version = "1.0.0"

// CompressLevel compresses p with the given level and returns the zlib
// stream.
func CompressLevel(p []byte, level int) ([]byte, error) {
	out, _, err := CompressWithChecksum(p, level)
	return out, err
}

// Compress compresses p with the default level.
func Compress(p []byte) ([]byte, error) {
	return CompressLevel(p, DefaultCompression)
}

// CompressWithChecksum compresses p and returns the zlib stream together
// with the Adler-32 checksum of p.
func CompressWithChecksum(p []byte, level int) (out []byte, sum uint32, err error) {
	var buf bytes.Buffer
	buf.Grow(len(p)/2 + 64)
	sum, err = CompressTo(&buf, p, level)
	if err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), sum, nil
}

// CompressTo writes the zlib stream for p to w and returns the
// checksum of p.
func CompressTo(w io.Writer, p []byte, level int) (sum uint32, err error) {
	z, err := NewWriterLevel(w, level)
	if err != nil {
		return 0, err
	}
	if _, err = z.Write(p); err != nil {
		return 0, err
	}
	if err = z.Close(); err != nil {
		return 0, err
	}
	return z.Checksum(), nil
}

// Decompress decompresses the zlib stream p.
func Decompress(p []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := DecompressTo(&buf, p); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressTo writes the decompressed zlib stream p to w.
func DecompressTo(w io.Writer, p []byte) error {
	f, err := NewInflater(MaxWindowBits)
	if err != nil {
		return err
	}
	var out [defaultBufferSize]byte
	for {
		nd, ns, err := f.Inflate(out[:], p)
		p = p[ns:]
		if nd > 0 {
			if _, werr := w.Write(out[:nd]); werr != nil {
				return werr
			}
		}
		switch err {
		case ErrShortDst:
			continue
		case ErrShortSrc:
			return io.ErrUnexpectedEOF
		case io.EOF:
			return nil
		}
		return err
	}
}

// IsCompressedHeader reports whether the two bytes are the header of a
// zlib stream with the default window size and without preset
// dictionary.
func IsCompressedHeader(b0, b1 byte) bool {
	return validHeader(b0, b1)
}

// IsCompressed reports whether p starts with a zlib header.
func IsCompressed(p []byte) bool {
	return len(p) >= headerLen && validHeader(p[0], p[1])
}

// Sniff reads the first two bytes of r and reports whether they are a
// zlib header. The returned reader provides the complete data of r
// including the bytes sniffed.
func Sniff(r io.Reader) (compressed bool, rr io.Reader, err error) {
	var hdr [headerLen]byte
	n, err := io.ReadFull(r, hdr[:])
	rr = io.MultiReader(bytes.NewReader(hdr[:n]), r)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return false, rr, nil
	default:
		return false, rr, err
	}
	return validHeader(hdr[0], hdr[1]), rr, nil
}

// IsCompressedFile reports whether the file starts with a zlib header.
func IsCompressedFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	ok, _, err := Sniff(f)
	return ok, err
}

// CompressFile compresses the file src into the file dst and returns the
// checksum of the data.
func CompressFile(dst, src string, level int) (sum uint32, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(out)
	z, err := NewWriterLevel(bw, level)
	if err != nil {
		return 0, err
	}
	if _, err = io.Copy(z, in); err != nil {
		return 0, fmt.Errorf("zlib: compress %s: %w", src, err)
	}
	if err = z.Close(); err != nil {
		return 0, err
	}
	if err = bw.Flush(); err != nil {
		return 0, err
	}
	return z.Checksum(), nil
}

// DecompressFile decompresses the file src into the file dst.
func DecompressFile(dst, src string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	z, err := NewReader(in)
	if err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(out)
	if _, err = io.Copy(bw, z); err != nil {
		return fmt.Errorf("zlib: decompress %s: %w", src, err)
	}
	return bw.Flush()
}
