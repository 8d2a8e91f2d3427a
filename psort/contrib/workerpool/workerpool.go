// Copyright 2025 The go-psort Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, reusable worker pool for
// fork-join parallelism. A Pool is created once and shared by every sort in
// the process, so recursive sorts do not pay a goroutine spawn per split.
//
// Work is only ever handed to a worker that is idle at that moment; when all
// workers are busy the caller runs the work itself. Forked work therefore
// never waits in a queue behind the goroutine that is waiting for it, and
// arbitrarily nested Fork calls cannot deadlock.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	pool.Fork(
//	    func() { sortLeft() },
//	    func() { sortRight() },
//	)
//	mergeHalves()
//
// A nil *Pool is valid and runs everything on the calling goroutine.
package workerpool

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

// Pool is a persistent worker pool that can be reused across many parallel
// operations. Workers are spawned once at creation and reused.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool

	_        cpu.CacheLinePad
	handoffs atomic.Int64
	_        cpu.CacheLinePad
	inline   atomic.Int64
	_        cpu.CacheLinePad
}

// workItem represents a single unit of work handed to a worker.
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// Stats counts how forked work was executed since the pool was created.
type Stats struct {
	// HandedOff is the number of tasks run by a pool worker.
	HandedOff int64
	// Inline is the number of tasks run by the goroutine that forked them
	// because no worker was idle.
	Inline int64
}

// PanicError carries a panic out of a forked task. Fork re-panics with a
// *PanicError in the goroutine that called it, once both tasks are done.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("workerpool: task panicked: %v", e.Value)
}

// New creates a new worker pool with the specified number of workers.
// Workers are spawned immediately and persist until Close is called.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		// Unbuffered: a send only succeeds if a worker is waiting for work.
		workC: make(chan workItem),
	}

	// Spawn persistent workers
	for j := 0; j < numWorkers; j++ {
		go p.worker()
	}

	return p
}

// worker is the main loop for each persistent worker goroutine.
func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	if p == nil {
		return 0
	}
	return p.numWorkers
}

// Close shuts down the worker pool. Work already handed off completes.
// Calling Close multiple times is safe.
func (p *Pool) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Stats returns the handoff counters.
func (p *Pool) Stats() Stats {
	if p == nil {
		return Stats{}
	}
	return Stats{HandedOff: p.handoffs.Load(), Inline: p.inline.Load()}
}

// tryHandoff gives item to an idle worker. It reports false, without
// blocking, when there is none or the pool is closed.
func (p *Pool) tryHandoff(item workItem) (ok bool) {
	if p == nil || p.closed.Load() {
		return false
	}
	// Close may race with the check above.
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	select {
	case p.workC <- item:
		p.handoffs.Add(1)
		return true
	default:
		p.inline.Add(1)
		return false
	}
}

// Fork runs a and b, concurrently when a worker is idle, and returns when both
// have finished. b always runs on the calling goroutine.
//
// If either task panics, Fork still waits for the other one and then panics
// with a *PanicError holding the first panic observed.
func (p *Pool) Fork(a, b func()) {
	var (
		wg     sync.WaitGroup
		caught atomic.Pointer[PanicError]
	)
	ga := guard(a, &caught)

	wg.Add(1)
	if !p.tryHandoff(workItem{fn: ga, barrier: &wg}) {
		ga()
		wg.Done()
	}
	guard(b, &caught)()
	wg.Wait()

	if pe := caught.Load(); pe != nil {
		panic(pe)
	}
}

// guard wraps fn so that a panic is recorded in caught instead of unwinding
// the worker. Panics that are already *PanicError are recorded as is, so
// nested forks keep the original stack.
func guard(fn func(), caught *atomic.Pointer[PanicError]) func() {
	return func() {
		defer func() {
			if r := recover(); r != nil {
				pe, ok := r.(*PanicError)
				if !ok {
					pe = &PanicError{Value: r, Stack: debug.Stack()}
				}
				caught.CompareAndSwap(nil, pe)
			}
		}()
		fn()
	}
}

// ParallelFor executes fn for each index in [0, n) using the worker pool.
// Each worker processes a contiguous range of indices; chunks that find no
// idle worker run on the calling goroutine.
// Blocks until all work completes. Panics are propagated as in Fork.
//
// fn receives (start, end) indices where work should process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p == nil || p.closed.Load() {
		fn(0, n)
		return
	}

	// Determine number of chunks (don't use more chunks than items)
	workers := min(p.numWorkers, n)

	// For very small n, just run sequentially
	if workers == 1 {
		fn(0, n)
		return
	}

	// Calculate chunk size (ensure all items are covered)
	chunkSize := (n + workers - 1) / workers

	var (
		wg     sync.WaitGroup
		caught atomic.Pointer[PanicError]
	)

	for i := 0; i < workers; i++ {
		start := i * chunkSize
		end := min(start+chunkSize, n)
		if start >= n {
			break
		}

		wg.Add(1)
		item := workItem{
			fn:      guard(func() { fn(start, end) }, &caught),
			barrier: &wg,
		}
		if !p.tryHandoff(item) {
			item.fn()
			wg.Done()
		}
	}

	wg.Wait()

	if pe := caught.Load(); pe != nil {
		panic(pe)
	}
}
