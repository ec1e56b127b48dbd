// Package array provides the integer sequence helpers used to decide whether a
// sequence of timestamps is evenly spaced.
package array

import (
	"cmp"
	"errors"
	"slices"

	"gonum.org/v1/gonum/floats"
)

var ErrZeroUnit = errors.New("unit must be non-zero")

// Diff returns the consecutive differences values[i+1]-values[i].
func Diff(values []int64) []int64 {
	if len(values) < 2 {
		return []int64{}
	}
	out := make([]int64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// UniqueDeltas returns the sorted distinct consecutive differences of values. A
// result of length 1 means the sequence is evenly spaced.
func UniqueDeltas(values []int64) []int64 {
	return Unique(Diff(values))
}

// Unique returns the sorted distinct elements of values without modifying the input.
func Unique[T cmp.Ordered](values []T) []T {
	out := slices.Clone(values)
	if out == nil {
		out = []T{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Ratios divides every value by unit using floating point division.
func Ratios(values []int64, unit int64) ([]float64, error) {
	if unit == 0 {
		return nil, ErrZeroUnit
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v) / float64(unit)
	}
	return out, nil
}

// FloorDivide divides every value by unit rounding towards negative infinity.
func FloorDivide(values []int64, unit int64) ([]int64, error) {
	if unit == 0 {
		return nil, ErrZeroUnit
	}
	out := make([]int64, len(values))
	for i, v := range values {
		q := v / unit
		if (v%unit != 0) && ((v < 0) != (unit < 0)) {
			q--
		}
		out[i] = q
	}
	return out, nil
}

// CumSum returns the running totals of values.
func CumSum(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	return floats.CumSum(out, values)
}

// EqualFloats reports whether a and b hold exactly the same values.
func EqualFloats(a, b []float64) bool {
	return floats.Equal(a, b)
}

// IsMonotonicIncreasing reports whether values never decrease.
func IsMonotonicIncreasing(values []int64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return false
		}
	}
	return true
}

// IsMonotonicDecreasing reports whether values never increase.
func IsMonotonicDecreasing(values []int64) bool {
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			return false
		}
	}
	return true
}

func IsUnique[T comparable](values []T) bool {
	seen := make(map[T]struct{}, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}
