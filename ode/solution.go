// SPDX-License-Identifier: MIT

package ode

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn indicates a column name not present in Solution.Names.
var ErrUnknownColumn = errors.New("ode: unknown column")

// Solution holds the state sampled at the requested output times.
// States[i] is the state at Times[i]; every row has the same length.
type Solution struct {
	Times  []float64
	States [][]float64

	// Names optionally labels the state columns.
	Names []string

	// Steps counts accepted integration steps.
	Steps int
}

// Len returns the number of sampled rows.
func (s *Solution) Len() int { return len(s.Times) }

// Dim returns the state dimension, 0 for an empty solution.
func (s *Solution) Dim() int {
	if len(s.States) == 0 {
		return 0
	}

	return len(s.States[0])
}

// Column copies state component j across all rows.
// Panics if j is out of range, like slice indexing.
func (s *Solution) Column(j int) []float64 {
	out := make([]float64, len(s.States))
	for i, row := range s.States {
		out[i] = row[j]
	}

	return out
}

// ColumnByName copies the column labelled name.
func (s *Solution) ColumnByName(name string) ([]float64, error) {
	for j, n := range s.Names {
		if n == name {
			return s.Column(j), nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
}

// Final returns a copy of the last state row, nil for an empty solution.
func (s *Solution) Final() []float64 {
	if len(s.States) == 0 {
		return nil
	}
	last := s.States[len(s.States)-1]
	out := make([]float64, len(last))
	copy(out, last)

	return out
}

// Concat appends the rows of parts in order into a new Solution.
// Boundary rows are kept as-is, so a time shared by two segments appears twice.
// Names are taken from the first part that has them.
func Concat(parts ...*Solution) *Solution {
	out := &Solution{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		if out.Names == nil && p.Names != nil {
			out.Names = append([]string(nil), p.Names...)
		}
		out.Times = append(out.Times, p.Times...)
		for _, row := range p.States {
			out.States = append(out.States, append([]float64(nil), row...))
		}
		out.Steps += p.Steps
	}

	return out
}
