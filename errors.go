// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a Try operation cannot proceed immediately.
//
// For TrySubmit: the buffer is full, or the reagent quota for the next
// molecule is already met (backpressure).
// For TryConsume: no byte, or no complete molecule, is releasable yet.
//
// ErrWouldBlock is a control flow signal, not a failure. This is an
// alias for [iox.ErrWouldBlock] for ecosystem consistency.
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInterrupted indicates a blocking wait was cancelled through the
// caller's context. The operation is recoverable: internal state is
// consistent and the call may be retried with a live context.
var ErrInterrupted = errors.New("bbq: wait interrupted")

// ErrClosed indicates the instance was shut down with Close.
// Submissions fail immediately; consumers receive ErrClosed once the
// remaining buffered data has been drained.
var ErrClosed = errors.New("bbq: closed")

// ErrInvalidInput indicates a malformed transfer request from the I/O
// boundary, such as a molecule destination shorter than MoleculeSize.
// It is never produced by internal state transitions.
var ErrInvalidInput = errors.New("bbq: invalid input")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a
// failure). Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsInterrupted reports whether err indicates a cancelled blocking wait.
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// IsClosed reports whether err indicates the instance was shut down.
func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
