// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

/*
Package hash provides rolling hashes.

Rolling hashes are used to maintain the positions of n-byte sequences in
the window of the DEFLATE compressor. The hash value for the sequence
starting at position i+1 is computed from the value for position i by
removing the oldest byte and adding the youngest byte.

The package currently provides the shift-xor hash used by zlib. Because
the hash value is masked after every shift, the oldest byte drops out of
the value after n additions and RemoveOldest doesn't have to do anything.
*/
package hash
