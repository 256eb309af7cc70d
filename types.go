// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import "context"

// Pipe is the combined producer-consumer interface shared by Channel
// and Assembler. The device-facing I/O layer programs against Pipe and
// stays agnostic of which coordinator is active.
type Pipe interface {
	Producer
	Consumer
	Cap() int
	Close() error
}

// Producer is the interface for submitting bytes.
type Producer interface {
	// Submit transfers p into the coordinator, blocking while it
	// cannot accept more input. It returns the number of bytes
	// accepted; on ErrInterrupted or ErrClosed that count covers the
	// prefix transferred before the wait ended.
	//
	// Cancellation of ctx is observed while blocked and reported as
	// ErrInterrupted.
	Submit(ctx context.Context, p []byte) (int, error)

	// TrySubmit transfers p without blocking. The transfer is
	// all-or-nothing: either every byte of p is accepted in one
	// atomic step, or nothing is and ErrWouldBlock is returned.
	// Returns ErrClosed after Close.
	TrySubmit(p []byte) (int, error)
}

// Consumer is the interface for receiving bytes.
type Consumer interface {
	// Consume fills p with available bytes, blocking until the
	// coordinator can release data. It never waits for len(p) bytes
	// to accumulate: it returns as soon as a releasable unit exists.
	//
	// Cancellation of ctx is observed while blocked and reported as
	// ErrInterrupted.
	Consume(ctx context.Context, p []byte) (int, error)

	// TryConsume fills p without blocking. Returns ErrWouldBlock when
	// nothing is releasable right now, and ErrClosed once the
	// coordinator is closed and drained.
	TryConsume(p []byte) (int, error)
}
