// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ulikunitz/zlib/zlib"
	"github.com/zeebo/blake3"
)

// fileInfo describes a compressed file.
type fileInfo struct {
	name         string
	compressed   int64
	uncompressed int64
	adler        uint32
	blake3       [32]byte
}

// ratio returns the space saving in percent.
func (fi *fileInfo) ratio() float64 {
	if fi.uncompressed == 0 {
		return 0
	}
	return 100 * (1 - float64(fi.compressed)/float64(fi.uncompressed))
}

// countReader counts the bytes read.
type countReader struct {
	r io.Reader
	n int64
}

func (c *countReader) Read(p []byte) (n int, err error) {
	n, err = c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// inspect decompresses the stream of r and collects the information.
func inspect(name string, r io.Reader) (fi *fileInfo, err error) {
	cr := &countReader{r: r}
	z, err := zlib.NewReader(bufio.NewReader(cr))
	if err != nil {
		return nil, err
	}
	h := blake3.New()
	n, err := io.Copy(h, z)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	fi = &fileInfo{
		name:         name,
		compressed:   cr.n,
		uncompressed: n,
		adler:        z.Checksum(),
	}
	copy(fi.blake3[:], h.Sum(nil))
	return fi, nil
}

func inspectFile(path string) (*fileInfo, error) {
	if path == "-" {
		return inspect("(stdin)", os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return inspect(path, f)
}

// listFiles prints the information for the compressed files. The
// compressed size includes the data read beyond the end of the stream.
func listFiles(w io.Writer, paths []string) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "compressed\tuncompressed\tratio\tadler32\t"+
		"blake3\tname\t\n")
	var err error
	for _, path := range paths {
		fi, ferr := inspectFile(path)
		if ferr != nil {
			printErr(ferr)
			err = ferr
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%.1f%%\t%08x\t%x\t%s\t\n",
			fi.compressed, fi.uncompressed, fi.ratio(), fi.adler,
			fi.blake3[:8], fi.name)
	}
	if ferr := tw.Flush(); err == nil {
		err = ferr
	}
	return err
}
