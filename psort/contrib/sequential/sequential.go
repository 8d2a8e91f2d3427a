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

// Package sequential provides the single-goroutine sorts used as base cases
// by the parallel sorts. Both sorts are stable: elements that compare equal
// keep their relative order.
package sequential

import (
	"slices"

	"github.com/ajroetker/go-psort/psort"
)

// InsertionSortFunc sorts data in place with insertion sort.
// Quadratic, but the fastest option for a handful of elements.
func InsertionSortFunc[T any](data []T, cmp psort.Comparator[T]) {
	for i := 1; i < len(data); i++ {
		key := data[i]
		j := i - 1
		// Strictly greater keeps equal elements in input order.
		for j >= 0 && cmp(data[j], key) > 0 {
			data[j+1] = data[j]
			j--
		}
		data[j+1] = key
	}
}

// StableSortFunc sorts data in place with the general purpose stable sort of
// the standard library.
func StableSortFunc[T any](data []T, cmp psort.Comparator[T]) {
	slices.SortStableFunc(data, cmp)
}

// Sort sorts data in place, using insertion sort when len(data) is at most
// insertionThreshold and StableSortFunc otherwise.
func Sort[T any](data []T, cmp psort.Comparator[T], insertionThreshold int) {
	if len(data) <= 1 {
		return
	}
	if len(data) <= insertionThreshold {
		InsertionSortFunc(data, cmp)
		return
	}
	StableSortFunc(data, cmp)
}

// IsSortedFunc reports whether data is in non-decreasing order according to cmp.
func IsSortedFunc[T any](data []T, cmp psort.Comparator[T]) bool {
	for i := 1; i < len(data); i++ {
		if cmp(data[i], data[i-1]) < 0 {
			return false
		}
	}
	return true
}
