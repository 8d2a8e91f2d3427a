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

// Package merge merges two sorted runs into a destination buffer, splitting
// large merges into concurrent sub-merges on a worker pool.
//
// The merge is stable: when an element of the left run compares equal to an
// element of the right run, the left one is written first.
package merge

import (
	"slices"
	"sort"

	"github.com/ajroetker/go-psort/psort"
	"github.com/ajroetker/go-psort/psort/contrib/workerpool"
)

// Merge writes the stable merge of the sorted runs left and right into dst.
// len(dst) must equal len(left)+len(right), and dst must not overlap either run.
//
// When pool is non-nil and the merged length exceeds threshold, the longer run
// is split at its midpoint, the matching split point of the shorter run is
// found by binary search, and the two halves are merged concurrently into
// disjoint parts of dst.
func Merge[T any](pool *workerpool.Pool, left, right, dst []T, cmp psort.Comparator[T], threshold int) {
	n1, n2 := len(left), len(right)
	if len(dst) != n1+n2 {
		panic("merge: destination length does not match the two runs")
	}
	if pool == nil || n1+n2 <= threshold {
		MergeSequential(left, right, dst, cmp)
		return
	}

	if n1 >= n2 {
		q1 := n1 / 2
		x := left[q1]
		// Right elements equal to x belong after it.
		q2 := lowerBound(right, x, cmp)
		q3 := q1 + q2
		dst[q3] = x
		pool.Fork(
			func() { Merge(pool, left[:q1], right[:q2], dst[:q3], cmp, threshold) },
			func() { Merge(pool, left[q1+1:], right[q2:], dst[q3+1:], cmp, threshold) },
		)
		return
	}

	q2 := n2 / 2
	x := right[q2]
	// Left elements equal to x belong before it.
	q1 := upperBound(left, x, cmp)
	q3 := q1 + q2
	dst[q3] = x
	pool.Fork(
		func() { Merge(pool, left[:q1], right[:q2], dst[:q3], cmp, threshold) },
		func() { Merge(pool, left[q1:], right[q2+1:], dst[q3+1:], cmp, threshold) },
	)
}

// MergeSequential is the two-pointer merge used below the parallel threshold.
func MergeSequential[T any](left, right, dst []T, cmp psort.Comparator[T]) {
	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if cmp(right[j], left[i]) < 0 {
			dst[k] = right[j]
			j++
		} else {
			dst[k] = left[i]
			i++
		}
		k++
	}
	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}

// lowerBound returns the index of the first element of run not less than x.
func lowerBound[T any](run []T, x T, cmp psort.Comparator[T]) int {
	i, _ := slices.BinarySearchFunc(run, x, cmp)
	return i
}

// upperBound returns the index of the first element of run greater than x.
func upperBound[T any](run []T, x T, cmp psort.Comparator[T]) int {
	return sort.Search(len(run), func(i int) bool {
		return cmp(run[i], x) > 0
	})
}
