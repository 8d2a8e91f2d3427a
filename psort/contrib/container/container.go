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

// Package container converts list-like containers to flat slices and back,
// so that the slice sorts can be applied to them.
//
// Copies longer than ParallelCopyThreshold are split across a worker pool.
package container

import (
	"os"
	"strconv"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/ajroetker/go-psort/psort"
	"github.com/ajroetker/go-psort/psort/contrib/workerpool"
)

// DefaultParallelCopyThreshold is the element count below which copies run
// on the calling goroutine.
const DefaultParallelCopyThreshold = 16 * 1024

// EnvCopyThreshold overrides DefaultParallelCopyThreshold at init.
const EnvCopyThreshold = "PSORT_COPY_THRESHOLD"

var parallelCopyThreshold atomic.Int64

func init() {
	parallelCopyThreshold.Store(DefaultParallelCopyThreshold)
	if v, err := strconv.Atoi(os.Getenv(EnvCopyThreshold)); err == nil && v >= 0 {
		parallelCopyThreshold.Store(int64(v))
	}
}

// ParallelCopyThreshold returns the current parallel copy threshold.
func ParallelCopyThreshold() int {
	return int(parallelCopyThreshold.Load())
}

// SetParallelCopyThreshold changes the parallel copy threshold.
func SetParallelCopyThreshold(n int) error {
	if n < 0 {
		return errors.Wrapf(psort.ErrInvalidThreshold, "copy threshold %d", n)
	}
	parallelCopyThreshold.Store(int64(n))
	return nil
}

// Sequence is an indexable container of fixed length.
// Distinct indices may be read and written concurrently.
type Sequence[T any] interface {
	Len() int
	At(i int) T
	Set(i int, v T)
}

// List is a growable, slice-backed Sequence.
type List[T any] struct {
	items []T
}

// NewList returns an empty list with room for capacity elements.
func NewList[T any](capacity int) *List[T] {
	return &List[T]{items: make([]T, 0, capacity)}
}

// FromSlice returns a list holding a copy of items.
func FromSlice[T any](items []T) *List[T] {
	return &List[T]{items: append([]T(nil), items...)}
}

// WrapSlice returns a list backed by items, without copying.
func WrapSlice[T any](items []T) *List[T] {
	return &List[T]{items: items}
}

// Len returns the number of elements in the list.
func (l *List[T]) Len() int { return len(l.items) }

// At returns element i.
func (l *List[T]) At(i int) T { return l.items[i] }

// Set replaces element i.
func (l *List[T]) Set(i int, v T) { l.items[i] = v }

// Append adds elements to the end of the list.
func (l *List[T]) Append(v ...T) { l.items = append(l.items, v...) }

// Slice returns the backing slice. It is only valid until the next Append.
func (l *List[T]) Slice() []T { return l.items }

// ToSlice copies seq[start:start+length] into a new slice.
func ToSlice[T any](pool *workerpool.Pool, seq Sequence[T], start, length int) ([]T, error) {
	if err := psort.CheckRange(seq.Len(), start, length); err != nil {
		return nil, err
	}
	out := make([]T, length)
	if l, ok := seq.(*List[T]); ok {
		parallelCopy(pool, out, l.items[start:start+length])
		return out, nil
	}
	forChunks(pool, length, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			out[i] = seq.At(start + i)
		}
	})
	return out, nil
}

// CopyFromSlice writes src into seq starting at index start.
func CopyFromSlice[T any](pool *workerpool.Pool, seq Sequence[T], start int, src []T) error {
	if err := psort.CheckRange(seq.Len(), start, len(src)); err != nil {
		return err
	}
	if l, ok := seq.(*List[T]); ok {
		parallelCopy(pool, l.items[start:start+len(src)], src)
		return nil
	}
	forChunks(pool, len(src), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			seq.Set(start+i, src[i])
		}
	})
	return nil
}

// ParallelCopy copies src into dst (which must be at least as long),
// splitting the work across pool above the parallel copy threshold.
func ParallelCopy[T any](pool *workerpool.Pool, dst, src []T) {
	parallelCopy(pool, dst[:len(src)], src)
}

func parallelCopy[T any](pool *workerpool.Pool, dst, src []T) {
	forChunks(pool, len(src), func(lo, hi int) {
		copy(dst[lo:hi], src[lo:hi])
	})
}

// forChunks runs fn over [0, n) in parallel chunks, or in one call when n is
// under the threshold.
func forChunks(pool *workerpool.Pool, n int, fn func(lo, hi int)) {
	if n == 0 {
		return
	}
	if pool == nil || n < ParallelCopyThreshold() {
		fn(0, n)
		return
	}
	pool.ParallelFor(n, fn)
}
