// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bbq provides blocking bounded queues for byte streams.
//
// The package offers two coordinators built on the same mutex and
// condition-variable protocol:
//
//   - Channel: a fixed-capacity circular byte buffer shared between
//     producers and consumers.
//   - Assembler: a rendezvous coordinator that releases bytes in fixed
//     2:1 proportions — two hydrogen submissions bond with one oxygen
//     request to form a molecule.
//
// # Quick Start
//
// Channel moves bytes from writers to readers with backpressure:
//
//	ch := bbq.NewChannel(1024)
//
//	// Producer: blocks while the buffer is full.
//	n, err := ch.Submit(ctx, []byte("payload"))
//
//	// Consumer: blocks until at least one byte is buffered.
//	buf := make([]byte, 64)
//	n, err = ch.Consume(ctx, buf)
//
// Assembler releases nothing until a full molecule is present:
//
//	a := bbq.NewAssembler(8)
//
//	_ = a.SubmitHydrogen(ctx, 'H')
//	_ = a.SubmitHydrogen(ctx, 'H')
//
//	buf := make([]byte, bbq.MoleculeSize)
//	n, err := a.RequestMolecule(ctx, buf) // returns both bytes, in order
//
// # Blocking and Cancellation
//
// Submit, Consume, SubmitHydrogen and RequestMolecule block until they
// can make progress. A blocked call parks on a condition variable,
// releasing the instance lock atomically while suspended. Cancellation
// is delivered through the context: when ctx fires while a call is
// blocked, the call returns [ErrInterrupted] together with whatever
// prefix it already transferred. Internal counters stay consistent and
// other waiters are never stranded by a cancelled call.
//
// Waits are unbounded; use context deadlines when a timeout is needed.
//
// # Non-Blocking Operations
//
// Every blocking operation has a Try form that never parks:
//
//	if _, err := ch.TrySubmit(p); bbq.IsWouldBlock(err) {
//	    // buffer full - handle backpressure
//	}
//
// Try forms return [ErrWouldBlock] (sourced from
// [code.hybscloud.com/iox] for ecosystem consistency) when the
// operation cannot proceed immediately. TrySubmit is all-or-nothing:
// either the whole slice is buffered in one atomic step or nothing is.
//
// # FIFO Ordering
//
// Consumed bytes appear in exact submission order. Blocked callers are
// served through an explicit ticket line rather than condition-variable
// wake order, so the guarantee holds under any scheduler: submissions
// complete first-come first-served, and one Submit call's bytes are
// never interleaved with another's even when the call blocks midway.
//
// # Molecule Assembly
//
// Assembler tracks two reagent counts. Hydrogen submissions buffer one
// byte each but stall once a full un-bonded pair is waiting, so one
// reagent never overproduces beyond what the next molecule needs.
// An oxygen request registers its intent and blocks until two hydrogen
// bytes are available, then both counters are adjusted and the bytes
// handed over in a single atomic step under the lock. Exactly two
// hydrogen submissions are spent per successful request.
//
// # Error Handling
//
// Operations return errors, never panic (constructors excepted):
//
//	bbq.IsWouldBlock(err)   // Try form cannot proceed right now
//	bbq.IsInterrupted(err)  // blocking wait cancelled via context
//	bbq.IsClosed(err)       // instance was shut down
//
// [ErrInvalidInput] reports a malformed transfer request from the I/O
// boundary, such as a molecule destination shorter than
// [MoleculeSize]. After any error return the instance remains usable.
//
// # Shutdown
//
// Close wakes every blocked caller. Submissions fail with [ErrClosed]
// afterwards, while consumers may still drain bytes already buffered
// (a complete hydrogen pair can still bond after close). Close is
// idempotent and safe to call concurrently with in-flight operations.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for statistics counters, and
// [code.hybscloud.com/spin] for CPU pause on the pre-wait fast path.
package bbq
