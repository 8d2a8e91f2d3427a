// Copyright 2025 go-psort Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package mergesort is a parallel, stable merge sort for slices and lists.
//
// A range longer than psort.ParallelThreshold is split in half, both halves
// are sorted concurrently on a worker pool, and the sorted halves are merged
// (itself in parallel for long merges). Shorter ranges are sorted on the
// calling goroutine with insertion sort or the standard library stable sort.
//
// Every sort needs one scratch buffer as long as the range being sorted. The
// two buffers swap roles at every level of the recursion, so no level copies
// its input before merging.
//
// All functions take the pool to run on first; a nil pool sorts on the
// calling goroutine. SharedPool returns a process-wide pool.
//
// # Example Usage
//
//	people := []Person{...}
//	err := mergesort.Sort(mergesort.SharedPool(), people, psort.By(func(p Person) string {
//	    return p.Name
//	}))
//
// # Errors
//
// Invalid ranges return psort.ErrInvalidRange before any work starts. A
// panicking comparator is reported as a *psort.ComparatorError once every
// concurrent task of the sort has stopped; the contents of the buffers are
// then unspecified.
package mergesort

import (
	"runtime/debug"
	"sync"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-psort/psort"
	"github.com/ajroetker/go-psort/psort/contrib/container"
	"github.com/ajroetker/go-psort/psort/contrib/workerpool"
)

var (
	sharedOnce sync.Once
	shared     *workerpool.Pool
)

// SharedPool returns the process-wide pool, creating it on first use with
// psort.Workers() workers. It returns nil when PSORT_SEQUENTIAL is set.
// The shared pool is never closed.
func SharedPool() *workerpool.Pool {
	sharedOnce.Do(func() {
		if psort.SequentialEnv() {
			return
		}
		shared = workerpool.New(psort.Workers())
	})
	return shared
}

// Sorted returns a sorted copy of src. src is not modified.
func Sorted[T any](pool *workerpool.Pool, src []T, cmp psort.Comparator[T]) ([]T, error) {
	return SortedRange(pool, src, 0, len(src), cmp)
}

// SortedRange returns a sorted copy of src[startIndex:startIndex+length].
// src is not modified.
func SortedRange[T any](pool *workerpool.Pool, src []T, startIndex, length int, cmp psort.Comparator[T]) ([]T, error) {
	if err := psort.CheckRange(len(src), startIndex, length); err != nil {
		return nil, err
	}
	work, err := allocate[T](length)
	if err != nil {
		return nil, err
	}
	dst, err := allocate[T](length)
	if err != nil {
		return nil, err
	}
	container.ParallelCopy(pool, work, src[startIndex:startIndex+length])

	if err := run(pool, work, dst, toDst, cmp); err != nil {
		return nil, err
	}
	return dst, nil
}

// Sort sorts src in place.
func Sort[T any](pool *workerpool.Pool, src []T, cmp psort.Comparator[T]) error {
	return SortRange(pool, src, 0, len(src), cmp)
}

// SortRange sorts src[startIndex:startIndex+length] in place, leaving the
// rest of src untouched.
func SortRange[T any](pool *workerpool.Pool, src []T, startIndex, length int, cmp psort.Comparator[T]) error {
	if err := psort.CheckRange(len(src), startIndex, length); err != nil {
		return err
	}
	scratch, err := allocate[T](length)
	if err != nil {
		return err
	}
	return run(pool, src[startIndex:startIndex+length], scratch, toSrc, cmp)
}

// SortOrdered sorts data in place in natural order on the shared pool.
func SortOrdered[T psort.Ordered](data []T) error {
	return Sort(SharedPool(), data, psort.Natural[T]())
}

// SortedOrdered returns a copy of data sorted in natural order, using the
// shared pool.
func SortedOrdered[T psort.Ordered](data []T) ([]T, error) {
	return Sorted(SharedPool(), data, psort.Natural[T]())
}

// run takes the threshold snapshot for one sort and converts a panic from
// any of its tasks into a *psort.ComparatorError.
func run[T any](pool *workerpool.Pool, src, dst []T, dir direction, cmp psort.Comparator[T]) (err error) {
	if len(src) == 0 {
		return nil
	}
	th := psort.CurrentThresholds()

	defer func() {
		if r := recover(); r != nil {
			err = comparatorError(r)
		}
	}()
	sortInner(pool, src, dst, dir, cmp, th)
	return nil
}

func comparatorError(r any) error {
	if pe, ok := r.(*workerpool.PanicError); ok {
		return &psort.ComparatorError{Value: pe.Value, Stack: pe.Stack}
	}
	return &psort.ComparatorError{Value: r, Stack: debug.Stack()}
}

// allocate returns a buffer of n elements, or psort.ErrAllocation if the
// runtime refuses the size.
func allocate[T any](n int) (buf []T, err error) {
	defer func() {
		if r := recover(); r != nil {
			buf, err = nil, errors.Wrapf(psort.ErrAllocation, "%d elements: %v", n, r)
		}
	}()
	return make([]T, n), nil
}
