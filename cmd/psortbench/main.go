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

// Command psortbench measures the parallel merge sort against the standard
// library sort on random data and checks that both produce the same result.
//
// Usage:
//
//	psortbench --size 16777216 --kind slice
//	psortbench --size 1000000 --kind list --runs 5 --workers 8
//	psortbench --parallel-threshold 1024 --insertion-threshold 32
//
// Thresholds not given on the command line keep their values from the
// PSORT_* environment variables.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajroetker/go-psort/psort"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		logrus.WithError(err).Error("psortbench failed")
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := defaultOptions()

	cmd := &cobra.Command{
		Use:           "psortbench",
		Short:         "Compare the parallel merge sort with the standard library sort",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(opts.LogLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(level)
			logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

			if err := opts.apply(cmd.Flags()); err != nil {
				return err
			}
			return runBench(cmd.OutOrStdout(), opts)
		},
	}
	addFlags(cmd.Flags(), &opts)
	return cmd
}

func addFlags(fs *pflag.FlagSet, opts *options) {
	fs.IntVar(&opts.Size, "size", opts.Size, "number of elements to sort")
	fs.Int64Var(&opts.Seed, "seed", opts.Seed, "random seed for the input")
	fs.StringVar(&opts.Kind, "kind", opts.Kind, "container to sort: slice or list")
	fs.IntVar(&opts.Runs, "runs", opts.Runs, "number of timed runs; the best one is reported")
	fs.IntVar(&opts.Workers, "workers", opts.Workers, "worker pool size (0 = GOMAXPROCS)")
	fs.BoolVar(&opts.Sequential, "sequential", opts.Sequential, "sort without a worker pool")
	fs.IntVar(&opts.ParallelThreshold, "parallel-threshold", psort.ParallelThreshold(), "split ranges longer than this in parallel")
	fs.IntVar(&opts.InsertionThreshold, "insertion-threshold", psort.InsertionThreshold(), "insertion sort ranges this short")
	fs.IntVar(&opts.MergeThreshold, "merge-threshold", psort.MergeParallelThreshold(), "split merges longer than this in parallel")
	fs.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "log level (debug, info, warn, error)")
}
