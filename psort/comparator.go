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

package psort

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Ordered is the set of types with a natural order.
type Ordered = constraints.Ordered

// Comparator reports the order of a and b: negative when a sorts before b,
// zero when they are equal and positive when a sorts after b.
// It must describe a strict weak ordering.
type Comparator[T any] func(a, b T) int

// Natural returns the comparator for the natural order of T.
// For floating point types NaNs sort before every other value.
func Natural[T Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Reverse returns a comparator that orders the opposite way to c.
func Reverse[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// By returns a comparator ordering values by the natural order of a key.
func By[T any, K Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}
