// SPDX-FileCopyrightText: © 2014 Ulrich Kunitz
//
// SPDX-License-Identifier: BSD-3-Clause

package zlib

// outWindow is the circular output buffer of the inflater. It keeps the
// history required for back references and the output that has not yet
// been copied to the caller.
type outWindow struct {
	buf []byte
	// write position
	pos int
	// number of valid history bytes
	filled int
	// number of bytes not yet copied out
	pending int
}

// init sets the window size and clears the window. The buffer is reused
// if it has enough capacity.
func (w *outWindow) init(size int) {
	if cap(w.buf) < size {
		w.buf = make([]byte, size)
	}
	w.buf = w.buf[:size]
	w.pos = 0
	w.filled = 0
	w.pending = 0
}

// avail returns the space available for new output.
func (w *outWindow) avail() int {
	return len(w.buf) - w.pending
}

func (w *outWindow) advance(n int) {
	w.pos += n
	if w.pos == len(w.buf) {
		w.pos = 0
	}
	w.pending += n
	w.filled += n
	if w.filled > len(w.buf) {
		w.filled = len(w.buf)
	}
}

// writeByte appends a single byte. There must be space available.
func (w *outWindow) writeByte(c byte) {
	w.buf[w.pos] = c
	w.advance(1)
}

// write appends as much of p as space is available and returns the
// number of bytes written.
func (w *outWindow) write(p []byte) int {
	if a := w.avail(); len(p) > a {
		p = p[:a]
	}
	n := 0
	for n < len(p) {
		k := copy(w.buf[w.pos:], p[n:])
		w.advance(k)
		n += k
	}
	return n
}

// copyMatch copies n bytes from dist bytes back to the current
// position, as far as space is available. It returns the number of
// bytes copied. The distance must not exceed the history.
func (w *outWindow) copyMatch(dist, n int) int {
	if a := w.avail(); n > a {
		n = a
	}
	src := w.pos - dist
	if src < 0 {
		src += len(w.buf)
	}
	for k := n; k > 0; {
		// Source and destination of a single copy must not
		// overlap and must not cross the end of the buffer.
		run := k
		if run > dist {
			run = dist
		}
		if r := len(w.buf) - src; run > r {
			run = r
		}
		if r := len(w.buf) - w.pos; run > r {
			run = r
		}
		copy(w.buf[w.pos:w.pos+run], w.buf[src:src+run])
		w.advance(run)
		src += run
		if src == len(w.buf) {
			src = 0
		}
		k -= run
	}
	return n
}

// read copies pending output to p and returns the number of bytes
// copied.
func (w *outWindow) read(p []byte) int {
	n := 0
	for n < len(p) && w.pending > 0 {
		start := w.pos - w.pending
		if start < 0 {
			start += len(w.buf)
		}
		end := start + w.pending
		if end > len(w.buf) {
			end = len(w.buf)
		}
		k := copy(p[n:], w.buf[start:end])
		w.pending -= k
		n += k
	}
	return n
}

// setHistory puts the dictionary into the window as history. Only the
// last bytes that fit into the window are used.
func (w *outWindow) setHistory(dict []byte) {
	if len(dict) > len(w.buf) {
		dict = dict[len(dict)-len(w.buf):]
	}
	for len(dict) > 0 {
		k := copy(w.buf[w.pos:], dict)
		w.pos += k
		if w.pos == len(w.buf) {
			w.pos = 0
		}
		w.filled += k
		dict = dict[k:]
	}
	if w.filled > len(w.buf) {
		w.filled = len(w.buf)
	}
}
