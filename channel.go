// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"context"
	"sync"

	"code.hybscloud.com/spin"
)

var _ Pipe = (*Channel)(nil)

// Channel is a fixed-capacity circular byte buffer shared between
// producers and consumers under one mutex.
//
// Producers block while the buffer is full, consumers block while it
// is empty; every state change broadcast-wakes the relevant waiters
// and each waiter re-checks its own predicate. Blocked callers on
// either side are served in strict arrival order through a ticket
// line, so consumed bytes appear in exact submission order and a
// Submit call's bytes stay contiguous even when the call blocks
// midway.
type Channel struct {
	mu       sync.Mutex
	notFull  sync.Cond // space freed, or line moved; submitters re-check
	notEmpty sync.Cond // data buffered, or line moved; consumers re-check
	ring     ring
	submitQ  line
	consumeQ line
	closed   bool
	stats    channelCounters
}

// NewChannel creates a Channel.
// Capacity rounds up to the next power of 2. Panics if capacity < 2.
func NewChannel(capacity int) *Channel {
	if capacity < 2 {
		panic("bbq: capacity must be >= 2")
	}
	c := &Channel{ring: newRing(capacity)}
	c.notFull.L = &c.mu
	c.notEmpty.L = &c.mu
	c.submitQ.cond = &c.notFull
	c.consumeQ.cond = &c.notEmpty
	return c
}

// Submit transfers p into the buffer, blocking while it is full.
// It returns the number of bytes accepted. On cancellation it returns
// ErrInterrupted together with the prefix count already buffered; on
// Close it returns ErrClosed the same way.
func (c *Channel) Submit(ctx context.Context, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) <= c.Cap() {
		sw := spin.Wait{}
		for range spinTries {
			n, err := c.TrySubmit(p)
			if !IsWouldBlock(err) {
				return n, err
			}
			sw.Once()
		}
	}
	return c.submitSlow(ctx, p)
}

func (c *Channel) submitSlow(ctx context.Context, p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.submitQ.join()
	defer c.submitQ.leave(id)

	var w *cancelWatch
	defer func() { w.stop() }()

	for n < len(p) {
		for !c.submitQ.front(id) || c.ring.full() {
			if c.closed {
				return n, ErrClosed
			}
			if cancelled(ctx) {
				c.stats.interrupts.Add(1)
				return n, ErrInterrupted
			}
			if w == nil {
				w = watchCancel(ctx, &c.mu, &c.notFull)
			}
			c.notFull.Wait()
		}
		if c.closed {
			return n, ErrClosed
		}
		m := c.ring.write(p[n:])
		n += m
		c.stats.bytesSubmitted.Add(uint64(m))
		c.notEmpty.Broadcast()
	}
	return n, nil
}

// TrySubmit transfers p without blocking. The transfer is
// all-or-nothing: it fails with ErrWouldBlock unless the whole slice
// fits right now and no earlier submitter is waiting in line.
func (c *Channel) TrySubmit(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	if !c.submitQ.empty() || c.ring.free() < len(p) {
		return 0, ErrWouldBlock
	}
	n := c.ring.write(p)
	c.stats.bytesSubmitted.Add(uint64(n))
	c.notEmpty.Broadcast()
	return n, nil
}

// Consume fills p with buffered bytes, blocking while the buffer is
// empty. It returns min(len(p), buffered) bytes as soon as any data is
// available; it never waits for len(p) bytes to accumulate. After
// Close, remaining bytes are drained before ErrClosed is reported.
func (c *Channel) Consume(ctx context.Context, p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	sw := spin.Wait{}
	for range spinTries {
		n, err := c.TryConsume(p)
		if !IsWouldBlock(err) {
			return n, err
		}
		sw.Once()
	}
	return c.consumeSlow(ctx, p)
}

func (c *Channel) consumeSlow(ctx context.Context, p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.consumeQ.join()
	defer c.consumeQ.leave(id)

	var w *cancelWatch
	defer func() { w.stop() }()

	for !c.consumeQ.front(id) || c.ring.empty() {
		if c.closed && c.ring.empty() {
			return 0, ErrClosed
		}
		if cancelled(ctx) {
			c.stats.interrupts.Add(1)
			return 0, ErrInterrupted
		}
		if w == nil {
			w = watchCancel(ctx, &c.mu, &c.notEmpty)
		}
		c.notEmpty.Wait()
	}
	n := c.ring.read(p)
	c.stats.bytesConsumed.Add(uint64(n))
	c.notFull.Broadcast()
	return n, nil
}

// TryConsume fills p without blocking. Returns ErrWouldBlock while no
// byte is buffered, and ErrClosed once closed and drained.
func (c *Channel) TryConsume(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ring.empty() {
		if c.closed {
			return 0, ErrClosed
		}
		return 0, ErrWouldBlock
	}
	if !c.consumeQ.empty() {
		// Earlier consumers are in line; do not overtake them.
		return 0, ErrWouldBlock
	}
	n := c.ring.read(p)
	c.stats.bytesConsumed.Add(uint64(n))
	c.notFull.Broadcast()
	return n, nil
}

// Close shuts the channel down. All blocked callers wake: submitters
// fail with ErrClosed, consumers drain buffered bytes first. Close is
// idempotent.
func (c *Channel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.notFull.Broadcast()
	c.notEmpty.Broadcast()
	return nil
}

// Len returns the number of buffered bytes.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ring.len()
}

// Cap returns the buffer capacity.
func (c *Channel) Cap() int {
	return c.ring.cap()
}

// Stats returns a snapshot of the channel counters and gauges.
func (c *Channel) Stats() ChannelStats {
	c.mu.Lock()
	buffered := c.ring.len()
	submitters := c.submitQ.len()
	consumers := c.consumeQ.len()
	c.mu.Unlock()
	return ChannelStats{
		BytesSubmitted:    c.stats.bytesSubmitted.Load(),
		BytesConsumed:     c.stats.bytesConsumed.Load(),
		Interrupts:        c.stats.interrupts.Load(),
		Buffered:          buffered,
		BlockedSubmitters: submitters,
		BlockedConsumers:  consumers,
	}
}
