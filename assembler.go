// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"context"
	"sync"

	"code.hybscloud.com/spin"
)

const (
	// HydrogenPerMolecule is the number of hydrogen submissions bound
	// into one molecule.
	HydrogenPerMolecule = 2

	// MoleculeSize is the payload size of one molecule in bytes. Each
	// hydrogen submission carries one byte; the oxygen request carries
	// none.
	MoleculeSize = HydrogenPerMolecule
)

var _ Pipe = (*Assembler)(nil)

// Assembler is a rendezvous coordinator enforcing a 2:1 composition
// rule: two hydrogen submissions bond with one oxygen request to form
// a molecule, released to the requester as one atomic unit.
//
// Hydrogen bytes buffer in submission order and molecules replay them
// in that order, never interleaved. A hydrogen submission stalls while
// a full un-bonded pair is already waiting, so one reagent never
// overproduces beyond what the next molecule needs. An oxygen request
// registers its intent and blocks until a pair is available; bonding
// adjusts both reagent counters and hands the bytes over in a single
// step under the lock.
//
// Blocked callers on both sides are served in arrival order through a
// ticket line.
type Assembler struct {
	mu       sync.Mutex
	bondable sync.Cond // hydrogen arrived; oxygen requesters re-check
	vacant   sync.Cond // hydrogen spent or space freed; submitters re-check
	ring     ring
	hydrogen int // bytes buffered, not yet bound
	oxygen   int // requests registered, not yet satisfied
	submitQ  line
	requestQ line
	closed   bool
	stats    assemblerCounters
}

// NewAssembler creates an Assembler.
// Capacity rounds up to the next power of 2. Panics if capacity < 2
// (the buffer must hold at least one molecule).
func NewAssembler(capacity int) *Assembler {
	if capacity < 2 {
		panic("bbq: capacity must be >= 2")
	}
	a := &Assembler{ring: newRing(capacity)}
	a.bondable.L = &a.mu
	a.vacant.L = &a.mu
	a.submitQ.cond = &a.vacant
	a.requestQ.cond = &a.bondable
	return a
}

// SubmitHydrogen contributes one hydrogen byte, blocking while the
// quota for the next molecule is already met or the buffer is full.
// Returns ErrInterrupted on cancellation and ErrClosed after Close.
func (a *Assembler) SubmitHydrogen(ctx context.Context, b byte) error {
	sw := spin.Wait{}
	for range spinTries {
		err := a.TrySubmitHydrogen(b)
		if !IsWouldBlock(err) {
			return err
		}
		sw.Once()
	}
	return a.submitHydrogenSlow(ctx, b)
}

func (a *Assembler) submitHydrogenSlow(ctx context.Context, b byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	id := a.submitQ.join()
	defer a.submitQ.leave(id)

	var w *cancelWatch
	defer func() { w.stop() }()

	for !a.submitQ.front(id) || a.hydrogen >= HydrogenPerMolecule || a.ring.full() {
		if a.closed {
			return ErrClosed
		}
		if cancelled(ctx) {
			a.stats.interrupts.Add(1)
			return ErrInterrupted
		}
		if w == nil {
			w = watchCancel(ctx, &a.mu, &a.vacant)
		}
		a.vacant.Wait()
	}
	if a.closed {
		return ErrClosed
	}
	a.ring.writeByte(b)
	a.hydrogen++
	a.stats.hydrogenSubmitted.Add(1)
	a.bondable.Broadcast()
	return nil
}

// TrySubmitHydrogen contributes one hydrogen byte without blocking.
// Returns ErrWouldBlock while the quota for the next molecule is met,
// the buffer is full, or earlier submitters are waiting in line.
func (a *Assembler) TrySubmitHydrogen(b byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrClosed
	}
	if !a.submitQ.empty() || a.hydrogen >= HydrogenPerMolecule || a.ring.full() {
		return ErrWouldBlock
	}
	a.ring.writeByte(b)
	a.hydrogen++
	a.stats.hydrogenSubmitted.Add(1)
	a.bondable.Broadcast()
	return nil
}

// RequestMolecule registers an oxygen request and blocks until a full
// hydrogen pair is available, then copies the pair into p in
// submission order. Exactly HydrogenPerMolecule hydrogen submissions
// are spent per successful request; the bonding decision and both
// counter adjustments happen as one atomic step under the lock.
//
// p must hold at least MoleculeSize bytes or the request fails with
// ErrInvalidInput. Returns ErrInterrupted on cancellation; a cancelled
// request withdraws its registration. After Close a buffered complete
// pair may still bond, otherwise ErrClosed is returned.
func (a *Assembler) RequestMolecule(ctx context.Context, p []byte) (int, error) {
	if len(p) < MoleculeSize {
		return 0, ErrInvalidInput
	}
	sw := spin.Wait{}
	for range spinTries {
		n, err := a.TryRequestMolecule(p)
		if !IsWouldBlock(err) {
			return n, err
		}
		sw.Once()
	}
	return a.requestMoleculeSlow(ctx, p)
}

func (a *Assembler) requestMoleculeSlow(ctx context.Context, p []byte) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.oxygen++
	id := a.requestQ.join()
	defer a.requestQ.leave(id)

	var w *cancelWatch
	defer func() { w.stop() }()

	for !a.requestQ.front(id) || a.hydrogen < HydrogenPerMolecule {
		if a.closed && a.hydrogen < HydrogenPerMolecule {
			a.oxygen--
			return 0, ErrClosed
		}
		if cancelled(ctx) {
			a.oxygen--
			a.stats.interrupts.Add(1)
			return 0, ErrInterrupted
		}
		if w == nil {
			w = watchCancel(ctx, &a.mu, &a.bondable)
		}
		a.bondable.Wait()
	}
	n := a.bondLocked(p)
	return n, nil
}

// TryRequestMolecule forms a molecule without blocking. Returns
// ErrWouldBlock while no full hydrogen pair is buffered or earlier
// requesters are waiting in line.
func (a *Assembler) TryRequestMolecule(p []byte) (int, error) {
	if len(p) < MoleculeSize {
		return 0, ErrInvalidInput
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.requestQ.empty() || a.hydrogen < HydrogenPerMolecule {
		if a.closed && a.hydrogen < HydrogenPerMolecule {
			return 0, ErrClosed
		}
		return 0, ErrWouldBlock
	}
	a.oxygen++
	n := a.bondLocked(p)
	return n, nil
}

// bondLocked forms one molecule: it replays the two oldest hydrogen
// bytes into p and spends both reagents. Callers hold the lock and
// have verified hydrogen >= HydrogenPerMolecule and oxygen >= 1.
func (a *Assembler) bondLocked(p []byte) int {
	n := a.ring.read(p[:MoleculeSize])
	a.hydrogen -= HydrogenPerMolecule
	a.oxygen--
	a.stats.molecules.Add(1)
	a.vacant.Broadcast()
	return n
}

// Submit feeds every byte of p as a hydrogen submission, in order.
// It adapts the Assembler to the Pipe interface for the device write
// path. On error the returned count is the prefix already submitted.
func (a *Assembler) Submit(ctx context.Context, p []byte) (int, error) {
	for i := range p {
		if err := a.SubmitHydrogen(ctx, p[i]); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// TrySubmit feeds p as hydrogen submissions without blocking,
// all-or-nothing: it fails with ErrWouldBlock unless every byte fits
// under the molecule quota right now. A slice longer than
// HydrogenPerMolecule can never fit at once in any state, so it is a
// malformed request rejected with ErrInvalidInput rather than a
// retryable would-block; use Submit for larger chunks.
func (a *Assembler) TrySubmit(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if len(p) > HydrogenPerMolecule {
		return 0, ErrInvalidInput
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return 0, ErrClosed
	}
	if !a.submitQ.empty() ||
		len(p) > HydrogenPerMolecule-a.hydrogen ||
		len(p) > a.ring.free() {
		return 0, ErrWouldBlock
	}
	n := a.ring.write(p)
	a.hydrogen += n
	a.stats.hydrogenSubmitted.Add(uint64(n))
	a.bondable.Broadcast()
	return n, nil
}

// Consume adapts RequestMolecule to the Pipe interface.
func (a *Assembler) Consume(ctx context.Context, p []byte) (int, error) {
	return a.RequestMolecule(ctx, p)
}

// TryConsume adapts TryRequestMolecule to the Pipe interface.
func (a *Assembler) TryConsume(p []byte) (int, error) {
	return a.TryRequestMolecule(p)
}

// Close shuts the assembler down. All blocked callers wake: hydrogen
// submitters fail with ErrClosed; a requester may still bond a
// complete buffered pair, after which requests fail with ErrClosed.
// Close is idempotent.
func (a *Assembler) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	a.bondable.Broadcast()
	a.vacant.Broadcast()
	return nil
}

// Hydrogen returns the number of buffered hydrogen bytes not yet
// bound into a molecule.
func (a *Assembler) Hydrogen() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.hydrogen
}

// PendingRequests returns the number of registered oxygen requests
// not yet satisfied.
func (a *Assembler) PendingRequests() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.oxygen
}

// Cap returns the hydrogen buffer capacity.
func (a *Assembler) Cap() int {
	return a.ring.cap()
}

// Stats returns a snapshot of the assembler counters and gauges.
func (a *Assembler) Stats() AssemblerStats {
	a.mu.Lock()
	hydrogen := a.hydrogen
	oxygen := a.oxygen
	submitters := a.submitQ.len()
	a.mu.Unlock()
	return AssemblerStats{
		HydrogenSubmitted: a.stats.hydrogenSubmitted.Load(),
		Molecules:         a.stats.molecules.Load(),
		Interrupts:        a.stats.interrupts.Load(),
		Hydrogen:          hydrogen,
		PendingRequests:   oxygen,
		BlockedSubmitters: submitters,
	}
}
