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
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-psort/psort"
	"github.com/ajroetker/go-psort/psort/contrib/container"
)

// recordSeq is a Sequence that is not a *container.List.
type recordSeq []record

func (s recordSeq) Len() int            { return len(s) }
func (s recordSeq) At(i int) record     { return s[i] }
func (s recordSeq) Set(i int, v record) { s[i] = v }

func TestSortedList(t *testing.T) {
	withThresholds(t, 4, 32, 32)
	pool := testPool(t)
	rng := rand.New(rand.NewSource(11))
	in := randomRecords(rng, 2000, 30)

	for _, seq := range []container.Sequence[record]{container.FromSlice(in), recordSeq(slices.Clone(in))} {
		got, err := SortedList(pool, seq, byKey)
		require.NoError(t, err)
		if diff := cmp.Diff(reference(in), got.Slice()); diff != "" {
			t.Errorf("SortedList(%T) mismatch (-want +got):\n%s", seq, diff)
		}
		assert.Equal(t, in[0], seq.At(0), "SortedList must not modify its input")
	}
}

func TestSortedListRange(t *testing.T) {
	pool := testPool(t)
	l := container.FromSlice([]int{9, 1, 8, 2, 7})

	got, err := SortedListRange[int](pool, l, 1, 3, psort.Natural[int]())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 8}, got.Slice())
	assert.Equal(t, []int{9, 1, 8, 2, 7}, l.Slice())
}

func TestSortList(t *testing.T) {
	withThresholds(t, 4, 32, 32)
	pool := testPool(t)
	rng := rand.New(rand.NewSource(12))
	in := randomRecords(rng, 3000, 30)

	l := container.FromSlice(in)
	require.NoError(t, SortList[record](pool, l, byKey))
	assert.Equal(t, reference(in), l.Slice())

	seq := recordSeq(slices.Clone(in))
	require.NoError(t, SortList[record](pool, seq, byKey))
	assert.Equal(t, reference(in), []record(seq))
}

func TestSortListRange(t *testing.T) {
	pool := testPool(t)

	l := container.FromSlice([]int{9, 1, 8, 2, 7})
	require.NoError(t, SortListRange[int](pool, l, 1, 3, psort.Natural[int]()))
	assert.Equal(t, []int{9, 1, 2, 8, 7}, l.Slice())

	seq := recordSeq{{9, "a"}, {1, "b"}, {8, "c"}, {2, "d"}, {7, "e"}}
	require.NoError(t, SortListRange[record](pool, seq, 1, 3, byKey))
	assert.Equal(t, recordSeq{{9, "a"}, {1, "b"}, {2, "d"}, {8, "c"}, {7, "e"}}, seq)
}
