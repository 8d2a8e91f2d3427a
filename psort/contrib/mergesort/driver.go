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
	"github.com/ajroetker/go-psort/psort"
	"github.com/ajroetker/go-psort/psort/contrib/merge"
	"github.com/ajroetker/go-psort/psort/contrib/sequential"
	"github.com/ajroetker/go-psort/psort/contrib/workerpool"
)

// direction names the buffer a call must leave its sorted result in.
type direction bool

const (
	toSrc direction = false
	toDst direction = true
)

// flip returns the direction handed to the two halves of a split. The halves
// sort into the buffer their parent merges from, so the parent's merge lands
// in the buffer it promised to its own caller without an extra copy.
func (d direction) flip() direction {
	return !d
}

func (d direction) String() string {
	if d == toDst {
		return "dst"
	}
	return "src"
}

// onSplit, when set, observes every parallel split. Tests only.
var onSplit func(n int, parent, child direction)

// sortInner sorts src (len(src) == len(dst) >= 1) and leaves the result in
// dst when dir is toDst, in src otherwise. The other buffer is scratch.
func sortInner[T any](pool *workerpool.Pool, src, dst []T, dir direction, cmp psort.Comparator[T], th psort.Thresholds) {
	n := len(src)

	if n == 1 {
		if dir == toDst {
			dst[0] = src[0]
		}
		return
	}

	if n <= th.Insertion {
		sequential.InsertionSortFunc(src, cmp)
		if dir == toDst {
			copy(dst, src)
		}
		return
	}

	if n <= th.Parallel {
		sequential.StableSortFunc(src, cmp)
		if dir == toDst {
			copy(dst, src)
		}
		return
	}

	// Inclusive bounds [0, m-1] and [m, n-1]; the left half takes the odd element.
	m := (n-1)/2 + 1
	child := dir.flip()
	if onSplit != nil {
		onSplit(n, dir, child)
	}

	pool.Fork(
		func() { sortInner(pool, src[:m], dst[:m], child, cmp, th) },
		func() { sortInner(pool, src[m:], dst[m:], child, cmp, th) },
	)

	if dir == toDst {
		merge.Merge(pool, src[:m], src[m:], dst, cmp, th.MergeParallel)
	} else {
		merge.Merge(pool, dst[:m], dst[m:], src, cmp, th.MergeParallel)
	}
}
