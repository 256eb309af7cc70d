// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

// ring is a fixed-capacity circular byte buffer with free-running
// head/tail counters. Capacity is a power of 2 so positions reduce to
// a mask. Not safe for concurrent use: callers hold the owning
// coordinator's lock.
type ring struct {
	buf  []byte
	mask uint64
	head uint64 // next byte to read
	tail uint64 // next byte to write
}

func newRing(capacity int) ring {
	n := uint64(roundToPow2(capacity))
	return ring{buf: make([]byte, n), mask: n - 1}
}

func (r *ring) cap() int    { return len(r.buf) }
func (r *ring) len() int    { return int(r.tail - r.head) }
func (r *ring) free() int   { return r.cap() - r.len() }
func (r *ring) empty() bool { return r.head == r.tail }
func (r *ring) full() bool  { return r.len() == r.cap() }

func (r *ring) writeByte(b byte) {
	r.buf[r.tail&r.mask] = b
	r.tail++
}

// write copies as much of src as fits and returns the count.
func (r *ring) write(src []byte) int {
	n := min(r.free(), len(src))
	if n == 0 {
		return 0
	}
	start := int(r.tail & r.mask)
	first := copy(r.buf[start:], src[:n])
	if first < n {
		copy(r.buf, src[first:n])
	}
	r.tail += uint64(n)
	return n
}

// read copies up to len(dst) buffered bytes into dst, oldest first,
// and returns the count.
func (r *ring) read(dst []byte) int {
	n := min(r.len(), len(dst))
	if n == 0 {
		return 0
	}
	start := int(r.head & r.mask)
	first := copy(dst[:n], r.buf[start:])
	if first < n {
		copy(dst[first:n], r.buf)
	}
	r.head += uint64(n)
	return n
}

// roundToPow2 rounds n up to the next power of 2.
func roundToPow2(n int) int {
	if n < 2 {
		return 2
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return n + 1
}
