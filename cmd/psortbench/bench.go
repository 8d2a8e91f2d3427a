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

package main

import (
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-psort/psort"
	"github.com/ajroetker/go-psort/psort/contrib/container"
	"github.com/ajroetker/go-psort/psort/contrib/mergesort"
	"github.com/ajroetker/go-psort/psort/contrib/workerpool"
)

const (
	kindSlice = "slice"
	kindList  = "list"
)

type options struct {
	Size               int
	Seed               int64
	Kind               string
	Runs               int
	Workers            int
	Sequential         bool
	ParallelThreshold  int
	InsertionThreshold int
	MergeThreshold     int
	LogLevel           string
}

func defaultOptions() options {
	return options{
		Size:     16 * 1024 * 1024,
		Seed:     5,
		Kind:     kindSlice,
		Runs:     1,
		Workers:  psort.Workers(),
		LogLevel: "info",
	}
}

// apply validates the options and pushes the thresholds that were given on
// the command line into the process-wide configuration.
func (o *options) apply(fs *pflag.FlagSet) error {
	if o.Size < 0 {
		return errors.Errorf("size must be non-negative, got %d", o.Size)
	}
	if o.Runs < 1 {
		return errors.Errorf("runs must be at least 1, got %d", o.Runs)
	}
	if o.Kind != kindSlice && o.Kind != kindList {
		return errors.Errorf("unknown kind %q (want %s or %s)", o.Kind, kindSlice, kindList)
	}
	setters := []struct {
		flag  string
		value int
		set   func(int) error
	}{
		{"parallel-threshold", o.ParallelThreshold, psort.SetParallelThreshold},
		{"insertion-threshold", o.InsertionThreshold, psort.SetInsertionThreshold},
		{"merge-threshold", o.MergeThreshold, psort.SetMergeParallelThreshold},
	}
	for _, s := range setters {
		if fs != nil && !fs.Changed(s.flag) {
			continue
		}
		if err := s.set(s.value); err != nil {
			return errors.Wrapf(err, "--%s", s.flag)
		}
	}
	return nil
}

// result is the outcome of one benchmark.
type result struct {
	Equal    bool
	Merge    time.Duration
	Stdlib   time.Duration
	Stats    workerpool.Stats
	Workers  int
	Elements int
}

// Speedup is how many times faster the merge sort was.
func (r result) Speedup() float64 {
	if r.Merge == 0 {
		return 0
	}
	return float64(r.Stdlib) / float64(r.Merge)
}

func runBench(w io.Writer, o options) error {
	logrus.WithFields(logrus.Fields{
		"cpus":   runtime.NumCPU(),
		"avx2":   cpu.X86.HasAVX2,
		"asimd":  cpu.ARM64.HasASIMD,
		"thresh": psort.CurrentThresholds(),
	}).Debug("host")

	var pool *workerpool.Pool
	if !o.Sequential {
		pool = workerpool.New(o.Workers)
		defer pool.Close()
	}

	res, err := bench(pool, o)
	if err != nil {
		return err
	}
	report(w, o, res)
	if !res.Equal {
		return errors.New("sorting results did not compare")
	}
	return nil
}

// bench fills random data, sorts it with mergesort and with slices.Sort,
// and compares the results. The best of o.Runs timings is kept for each.
func bench(pool *workerpool.Pool, o options) (result, error) {
	rng := rand.New(rand.NewSource(o.Seed))
	input := make([]uint32, o.Size)
	for i := range input {
		input[i] = uint32(rng.Int31())
	}
	logrus.WithField("elements", humanize.Comma(int64(o.Size))).Info("input generated")

	res := result{Workers: pool.NumWorkers(), Elements: o.Size}
	cmp := psort.Natural[uint32]()
	var sorted []uint32

	for run := 0; run < o.Runs; run++ {
		var (
			elapsed time.Duration
			err     error
		)
		switch o.Kind {
		case kindList:
			l := container.FromSlice(input)
			start := time.Now()
			err = mergesort.SortList[uint32](pool, l, cmp)
			elapsed = time.Since(start)
			sorted = l.Slice()
		default:
			data := slices.Clone(input)
			start := time.Now()
			err = mergesort.Sort(pool, data, cmp)
			elapsed = time.Since(start)
			sorted = data
		}
		if err != nil {
			return res, errors.Wrap(err, "merge sort")
		}
		if run == 0 || elapsed < res.Merge {
			res.Merge = elapsed
		}
		logrus.WithFields(logrus.Fields{"run": run, "elapsed": elapsed}).Debug("merge sort")
	}

	var reference []uint32
	for run := 0; run < o.Runs; run++ {
		reference = slices.Clone(input)
		start := time.Now()
		slices.Sort(reference)
		elapsed := time.Since(start)
		if run == 0 || elapsed < res.Stdlib {
			res.Stdlib = elapsed
		}
		logrus.WithFields(logrus.Fields{"run": run, "elapsed": elapsed}).Debug("stdlib sort")
	}

	res.Equal = slices.Equal(sorted, reference) && mergesort.IsSorted(sorted, cmp)
	res.Stats = pool.Stats()
	return res, nil
}

func report(w io.Writer, o options, r result) {
	if r.Equal {
		color.New(color.FgGreen).Fprintln(w, "Sorting results are equal")
	} else {
		color.New(color.FgRed, color.Bold).Fprintln(w, "Sorting results did not compare!")
	}
	fmt.Fprintf(w, "Go %s of %s elements: slices.Sort %.3f sec, merge sort %.3f sec, speedup %.2f\n",
		o.Kind, humanize.Comma(int64(r.Elements)),
		r.Stdlib.Seconds(), r.Merge.Seconds(), r.Speedup())
	fmt.Fprintf(w, "workers %d, tasks handed off %s, run inline %s, scratch %s\n",
		r.Workers, humanize.Comma(r.Stats.HandedOff), humanize.Comma(r.Stats.Inline),
		humanize.IBytes(uint64(r.Elements)*4))
}
