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
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidRange is returned when a start index or length falls outside
	// the container being sorted. No work is started.
	ErrInvalidRange = errors.New("psort: range out of bounds")

	// ErrAllocation is returned when the scratch buffer for a sort cannot be
	// allocated.
	ErrAllocation = errors.New("psort: cannot allocate scratch buffer")

	// ErrInvalidThreshold is returned by the threshold setters for negative values.
	ErrInvalidThreshold = errors.New("psort: threshold must be non-negative")
)

// ComparatorError reports that a comparator panicked while a sort was running.
// The contents of the buffers involved in that sort are unspecified.
type ComparatorError struct {
	// Value is the value passed to panic.
	Value any
	// Stack is the stack of the goroutine that panicked.
	Stack []byte
}

func (e *ComparatorError) Error() string {
	return fmt.Sprintf("psort: comparator panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *ComparatorError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// CheckRange validates a [start, start+length) range against a container of
// size n.
func CheckRange(n, start, length int) error {
	if start < 0 || length < 0 || start > n || length > n-start {
		return errors.Wrapf(ErrInvalidRange, "start=%d length=%d size=%d", start, length, n)
	}
	return nil
}
