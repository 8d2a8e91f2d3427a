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

// Package psort holds the pieces shared by the parallel sorting packages:
// the process-wide thresholds, the Comparator type and the error values.
//
// The sorting itself lives in the contrib subpackages:
//
//   - contrib/mergesort: parallel merge sort for slices and lists
//   - contrib/merge: stable (parallel) merge of two sorted runs
//   - contrib/sequential: insertion sort and stable sort base cases
//   - contrib/container: list <-> slice conversion with parallel bulk copy
//   - contrib/workerpool: the shared worker pool and its fork-join primitive
//
// # Configuration
//
// Three thresholds steer every sort. They are process-wide, can be changed at
// any time with the Set* functions, and are initialised from the environment:
//
//	PSORT_PARALLEL_THRESHOLD   ranges longer than this are split (default 8192)
//	PSORT_INSERTION_THRESHOLD  ranges this short use insertion sort (default 16)
//	PSORT_MERGE_THRESHOLD      merges longer than this are split (default 8192)
//	PSORT_WORKERS              size of the shared pool (default GOMAXPROCS)
//	PSORT_SEQUENTIAL           disable the shared pool entirely
//
// # Example Usage
//
//	import (
//	    "github.com/ajroetker/go-psort/psort"
//	    "github.com/ajroetker/go-psort/psort/contrib/mergesort"
//	)
//
//	func SortScores(scores []float64) error {
//	    return mergesort.Sort(mergesort.SharedPool(), scores, psort.Natural[float64]())
//	}
package psort
