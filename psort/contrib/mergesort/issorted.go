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

package mergesort

import (
	"github.com/exascience/pargo/speculative"

	"github.com/ajroetker/go-psort/psort"
)

// minSortedGrain bounds the work per goroutine in IsSorted.
const minSortedGrain = 4 * 1024

// IsSorted reports whether data is in non-decreasing order according to cmp.
// Long slices are checked in parallel, and the check stops early once any
// part is found out of order.
func IsSorted[T any](data []T, cmp psort.Comparator[T]) bool {
	if len(data) < 2 {
		return true
	}
	grain := max(psort.ParallelThreshold(), minSortedGrain)

	// check tests the pairs (i-1, i) for i in [lo, hi).
	var check func(lo, hi int) bool
	check = func(lo, hi int) bool {
		if hi-lo <= grain {
			for i := lo; i < hi; i++ {
				if cmp(data[i], data[i-1]) < 0 {
					return false
				}
			}
			return true
		}
		mid := lo + (hi-lo)/2
		return speculative.And(
			func() bool { return check(lo, mid) },
			func() bool { return check(mid, hi) },
		)
	}
	return check(1, len(data))
}
