// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

/*
Package zlib supports the compression and decompression of zlib streams
as described in RFC 1950 and RFC 1951.

The Deflater and the Inflater work on buffers provided by the caller
and never block. They return ErrShortSrc or ErrShortDst if they need more
input or more output space. The Writer and Reader types wrap them for
use with the io package and the functions Compress and Decompress work
on byte slices.

Usage:

	w, err := zlib.NewWriter(f)

	r, err := zlib.NewReader(f)

	data, err := zlib.Compress(p)
*/
package zlib
