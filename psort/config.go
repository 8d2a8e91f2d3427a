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
	"os"
	"runtime"
	"strconv"
	"sync/atomic"

	"github.com/pkg/errors"
)

// Default values for the process-wide tunables.
const (
	// DefaultParallelThreshold: ranges longer than this are split and sorted
	// in parallel, shorter ones use the sequential library sort.
	DefaultParallelThreshold = 8 * 1024

	// DefaultInsertionThreshold: ranges this long or shorter use insertion sort.
	DefaultInsertionThreshold = 16

	// DefaultMergeParallelThreshold: merges producing more elements than this
	// are split into two concurrent sub-merges.
	DefaultMergeParallelThreshold = 8 * 1024
)

// Environment variables read once at init.
const (
	EnvParallelThreshold  = "PSORT_PARALLEL_THRESHOLD"
	EnvInsertionThreshold = "PSORT_INSERTION_THRESHOLD"
	EnvMergeThreshold     = "PSORT_MERGE_THRESHOLD"
	EnvWorkers            = "PSORT_WORKERS"
	EnvSequential         = "PSORT_SEQUENTIAL"
)

var (
	parallelThreshold      atomic.Int64
	insertionThreshold     atomic.Int64
	mergeParallelThreshold atomic.Int64
)

func init() {
	ResetDefaults()
	if v, ok := intEnv(EnvParallelThreshold); ok {
		parallelThreshold.Store(int64(v))
	}
	if v, ok := intEnv(EnvInsertionThreshold); ok {
		insertionThreshold.Store(int64(v))
	}
	if v, ok := intEnv(EnvMergeThreshold); ok {
		mergeParallelThreshold.Store(int64(v))
	}
}

// Thresholds is a snapshot of the tunables, taken once per sort call so that
// a concurrent Set* does not change the strategy half way through a sort.
type Thresholds struct {
	Insertion     int
	Parallel      int
	MergeParallel int
}

// CurrentThresholds returns the thresholds in effect right now.
func CurrentThresholds() Thresholds {
	return Thresholds{
		Insertion:     InsertionThreshold(),
		Parallel:      ParallelThreshold(),
		MergeParallel: MergeParallelThreshold(),
	}
}

// ParallelThreshold returns the length above which ranges are split in parallel.
func ParallelThreshold() int {
	return int(parallelThreshold.Load())
}

// SetParallelThreshold changes the parallel splitting threshold for all
// subsequent sort calls.
func SetParallelThreshold(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidThreshold, "parallel threshold %d", n)
	}
	parallelThreshold.Store(int64(n))
	return nil
}

// InsertionThreshold returns the length at or below which insertion sort is used.
func InsertionThreshold() int {
	return int(insertionThreshold.Load())
}

// SetInsertionThreshold changes the insertion sort threshold for all
// subsequent sort calls.
func SetInsertionThreshold(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidThreshold, "insertion threshold %d", n)
	}
	insertionThreshold.Store(int64(n))
	return nil
}

// MergeParallelThreshold returns the merged length above which a merge is
// itself split into concurrent sub-merges.
func MergeParallelThreshold() int {
	return int(mergeParallelThreshold.Load())
}

// SetMergeParallelThreshold changes the merge splitting threshold.
func SetMergeParallelThreshold(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrInvalidThreshold, "merge threshold %d", n)
	}
	mergeParallelThreshold.Store(int64(n))
	return nil
}

// ResetDefaults restores every tunable to its compiled-in default, ignoring
// the environment.
func ResetDefaults() {
	parallelThreshold.Store(DefaultParallelThreshold)
	insertionThreshold.Store(DefaultInsertionThreshold)
	mergeParallelThreshold.Store(DefaultMergeParallelThreshold)
}

// Workers returns the number of workers the shared pool should have:
// PSORT_WORKERS if set to a positive integer, GOMAXPROCS otherwise.
func Workers() int {
	if v, ok := intEnv(EnvWorkers); ok && v > 0 {
		return v
	}
	return runtime.GOMAXPROCS(0)
}

// SequentialEnv checks if the PSORT_SEQUENTIAL environment variable is set.
// When set, the shared pool is disabled and every sort runs on the calling
// goroutine. This is useful for testing and debugging.
func SequentialEnv() bool {
	val := os.Getenv(EnvSequential)
	if val == "" {
		return false
	}
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

// intEnv parses a non-negative integer environment variable.
// Unset or malformed values report ok=false.
func intEnv(name string) (int, bool) {
	val := os.Getenv(name)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
