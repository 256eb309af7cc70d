// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq

import (
	"context"
	"sync"
)

// spinTries is the number of non-blocking attempts a blocking
// operation makes, with a CPU relax in between, before parking on the
// condition variable.
const spinTries = 4

// line orders blocked callers first-come first-served. Condition
// variables do not guarantee wake order, so each blocking call takes a
// ticket and only the line front may proceed. All methods require the
// owning coordinator's lock.
//
// A caller that gives up (cancellation, close) leaves from any
// position; leave broadcasts so the next front re-checks its turn.
type line struct {
	cond *sync.Cond
	ids  []uint64
	next uint64
}

func (l *line) join() uint64 {
	id := l.next
	l.next++
	l.ids = append(l.ids, id)
	return id
}

func (l *line) front(id uint64) bool {
	return len(l.ids) > 0 && l.ids[0] == id
}

func (l *line) empty() bool { return len(l.ids) == 0 }

func (l *line) len() int { return len(l.ids) }

func (l *line) leave(id uint64) {
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
	l.cond.Broadcast()
}

// cancelWatch forwards context cancellation to parked waiters.
// sync.Cond has no native context support, so a watcher goroutine
// broadcasts when ctx fires. Taking the lock before broadcasting
// closes the window between a waiter's predicate check and its Wait.
type cancelWatch struct {
	done chan struct{}
}

// watchCancel starts a watcher for ctx, or returns nil when ctx can
// never fire. Blocking operations start one lazily on first wait and
// must stop it on every exit path.
func watchCancel(ctx context.Context, mu *sync.Mutex, cond *sync.Cond) *cancelWatch {
	if ctx == nil || ctx.Done() == nil {
		return nil
	}
	w := &cancelWatch{done: make(chan struct{})}
	go func() {
		select {
		case <-ctx.Done():
			mu.Lock()
			cond.Broadcast()
			mu.Unlock()
		case <-w.done:
		}
	}()
	return w
}

func (w *cancelWatch) stop() {
	if w != nil {
		close(w.done)
	}
}

// cancelled reports whether ctx carries a cancellation to observe.
func cancelled(ctx context.Context) bool {
	return ctx != nil && ctx.Err() != nil
}
