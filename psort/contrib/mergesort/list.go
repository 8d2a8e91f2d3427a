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
	"github.com/ajroetker/go-psort/psort/contrib/container"
	"github.com/ajroetker/go-psort/psort/contrib/workerpool"
)

// SortedList returns a new list holding the elements of src in sorted order.
// src is not modified.
func SortedList[T any](pool *workerpool.Pool, src container.Sequence[T], cmp psort.Comparator[T]) (*container.List[T], error) {
	return SortedListRange(pool, src, 0, src.Len(), cmp)
}

// SortedListRange returns a new list holding src[startIndex:startIndex+length]
// in sorted order. src is not modified.
func SortedListRange[T any](pool *workerpool.Pool, src container.Sequence[T], startIndex, length int, cmp psort.Comparator[T]) (*container.List[T], error) {
	work, err := container.ToSlice(pool, src, startIndex, length)
	if err != nil {
		return nil, err
	}
	if err := Sort(pool, work, cmp); err != nil {
		return nil, err
	}
	return container.WrapSlice(work), nil
}

// SortList sorts seq in place.
func SortList[T any](pool *workerpool.Pool, seq container.Sequence[T], cmp psort.Comparator[T]) error {
	return SortListRange(pool, seq, 0, seq.Len(), cmp)
}

// SortListRange sorts seq[startIndex:startIndex+length] in place, leaving the
// rest of seq untouched.
func SortListRange[T any](pool *workerpool.Pool, seq container.Sequence[T], startIndex, length int, cmp psort.Comparator[T]) error {
	if l, ok := seq.(*container.List[T]); ok {
		return SortRange(pool, l.Slice(), startIndex, length, cmp)
	}

	work, err := container.ToSlice(pool, seq, startIndex, length)
	if err != nil {
		return err
	}
	if err := Sort(pool, work, cmp); err != nil {
		return err
	}
	return container.CopyFromSlice(pool, seq, startIndex, work)
}
