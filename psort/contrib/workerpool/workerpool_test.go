// Copyright 2025 The go-psort Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import (
	"errors"
	"runtime"
	"sync/atomic"
	"testing"
)

func TestNew(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	if pool.NumWorkers() != 4 {
		t.Errorf("NumWorkers() = %d, want 4", pool.NumWorkers())
	}
}

func TestNewDefault(t *testing.T) {
	pool := New(0)
	defer pool.Close()

	if pool.NumWorkers() != runtime.GOMAXPROCS(0) {
		t.Errorf("NumWorkers() = %d, want %d", pool.NumWorkers(), runtime.GOMAXPROCS(0))
	}
}

func TestFork(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var a, b bool
	pool.Fork(func() { a = true }, func() { b = true })

	if !a || !b {
		t.Errorf("Fork ran a=%v b=%v, want both", a, b)
	}
	st := pool.Stats()
	if st.HandedOff+st.Inline != 1 {
		t.Errorf("Stats() = %+v, want exactly one forked task accounted", st)
	}
}

// fib forks recursively far deeper than the pool is wide.
func fib(p *Pool, n int) int {
	if n < 2 {
		return n
	}
	var x, y int
	p.Fork(func() { x = fib(p, n-1) }, func() { y = fib(p, n-2) })
	return x + y
}

func TestForkNestedDoesNotDeadlock(t *testing.T) {
	pool := New(2)
	defer pool.Close()

	if got := fib(pool, 20); got != 6765 {
		t.Errorf("fib(20) = %d, want 6765", got)
	}
}

func TestForkNilPool(t *testing.T) {
	var pool *Pool

	if got := fib(pool, 15); got != 610 {
		t.Errorf("fib(15) on nil pool = %d, want 610", got)
	}
	if pool.NumWorkers() != 0 {
		t.Errorf("nil pool NumWorkers() = %d, want 0", pool.NumWorkers())
	}
	if st := pool.Stats(); st != (Stats{}) {
		t.Errorf("nil pool Stats() = %+v, want zero", st)
	}
}

func TestForkPanicWaitsForSibling(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	boom := errors.New("boom")
	var siblingDone atomic.Bool

	defer func() {
		r := recover()
		pe, ok := r.(*PanicError)
		if !ok {
			t.Fatalf("recovered %T(%v), want *PanicError", r, r)
		}
		if pe.Value != boom {
			t.Errorf("PanicError.Value = %v, want %v", pe.Value, boom)
		}
		if len(pe.Stack) == 0 {
			t.Error("PanicError.Stack is empty")
		}
		if !siblingDone.Load() {
			t.Error("Fork propagated the panic before the sibling finished")
		}
	}()

	pool.Fork(
		func() {
			for i := 0; i < 1000; i++ {
				runtime.Gosched()
			}
			siblingDone.Store(true)
		},
		func() { panic(boom) },
	)
	t.Fatal("Fork did not panic")
}

func TestForkNestedPanicKeepsOrigin(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	defer func() {
		pe, ok := recover().(*PanicError)
		if !ok {
			t.Fatal("want *PanicError")
		}
		if pe.Value != "deep" {
			t.Errorf("PanicError.Value = %v, want deep", pe.Value)
		}
	}()

	pool.Fork(
		func() {
			pool.Fork(func() {}, func() { panic("deep") })
		},
		func() {},
	)
}

func TestParallelFor(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	n := 100
	results := make([]int, n)

	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	pool := New(8)
	defer pool.Close()

	// Test with n smaller than workers
	n := 3
	var count atomic.Int32

	pool.ParallelFor(n, func(start, end int) {
		count.Add(int32(end - start))
	})

	if count.Load() != int32(n) {
		t.Errorf("count = %d, want %d", count.Load(), n)
	}
}

func TestParallelForZeroN(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	var called bool
	pool.ParallelFor(0, func(start, end int) {
		called = true
	})

	if called {
		t.Error("ParallelFor with n=0 should not call fn")
	}
}

func TestParallelForPanic(t *testing.T) {
	pool := New(4)
	defer pool.Close()

	defer func() {
		if _, ok := recover().(*PanicError); !ok {
			t.Error("want *PanicError from ParallelFor")
		}
	}()

	pool.ParallelFor(100, func(start, end int) {
		if start == 0 {
			panic("first chunk")
		}
	})
}

func TestCloseMultipleTimes(t *testing.T) {
	pool := New(4)
	pool.Close()
	pool.Close() // Should not panic
}

func TestClosedPoolFallback(t *testing.T) {
	pool := New(4)
	pool.Close()

	n := 100
	results := make([]int, n)

	// Should still work (sequential fallback)
	pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			results[i] = i * 2
		}
	})

	for i := 0; i < n; i++ {
		if results[i] != i*2 {
			t.Errorf("results[%d] = %d, want %d", i, results[i], i*2)
		}
	}

	if got := fib(pool, 10); got != 55 {
		t.Errorf("fib(10) on closed pool = %d, want 55", got)
	}
	if st := pool.Stats(); st.HandedOff != 0 {
		t.Errorf("closed pool handed off %d tasks", st.HandedOff)
	}
}

func BenchmarkParallelFor(b *testing.B) {
	pool := New(0) // Use GOMAXPROCS
	defer pool.Close()

	n := 1000

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.ParallelFor(n, func(start, end int) {
			// Simulate work
			for j := start; j < end; j++ {
				_ = j * j
			}
		})
	}
}

func BenchmarkFork(b *testing.B) {
	pool := New(0)
	defer pool.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		fib(pool, 12)
	}
}
