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
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajroetker/go-psort/psort"
)

func init() {
	color.NoColor = true
}

func TestRunBench(t *testing.T) {
	t.Cleanup(psort.ResetDefaults)

	for _, kind := range []string{kindSlice, kindList} {
		for _, sequential := range []bool{false, true} {
			var out bytes.Buffer
			cmd := newRootCommand()
			cmd.SetOut(&out)
			args := []string{"--size", "50000", "--kind", kind, "--runs", "2", "--parallel-threshold", "512", "--log-level", "warn"}
			if sequential {
				args = append(args, "--sequential")
			}
			cmd.SetArgs(args)

			require.NoError(t, cmd.Execute(), "kind=%s sequential=%v", kind, sequential)
			assert.Contains(t, out.String(), "Sorting results are equal")
			assert.Contains(t, out.String(), "50,000 elements")
			assert.Equal(t, 512, psort.ParallelThreshold())
		}
	}
}

func TestBenchCounts(t *testing.T) {
	o := defaultOptions()
	o.Size = 1000
	o.Sequential = true

	res, err := bench(nil, o)
	require.NoError(t, err)
	assert.True(t, res.Equal)
	assert.Equal(t, 1000, res.Elements)
	assert.Zero(t, res.Workers)
}

func TestInvalidOptions(t *testing.T) {
	cases := [][]string{
		{"--kind", "tree"},
		{"--runs", "0"},
		{"--size", "-1"},
		{"--parallel-threshold", "-3"},
		{"--log-level", "loud"},
	}
	for _, args := range cases {
		cmd := newRootCommand()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetArgs(args)
		assert.Error(t, cmd.Execute(), "args %v", args)
	}
}

func TestSpeedup(t *testing.T) {
	assert.Zero(t, result{}.Speedup())
	assert.InDelta(t, 2.0, result{Merge: 5, Stdlib: 10}.Speedup(), 1e-9)
}
