package gatesim

import "github.com/pkg/errors"

// VectorResult is the outcome of applying a single TestVector.
type VectorResult struct {
	Vector     TestVector
	Mismatches []VectorMismatch
}

// Passed reports whether every expected output matched.
func (r VectorResult) Passed() bool { return len(r.Mismatches) == 0 }

// Result is the outcome of running a full vector sequence against a
// circuit.
type Result struct {
	Vectors []VectorResult
}

// Passed reports whether every vector in the run passed.
func (r Result) Passed() bool {
	for _, v := range r.Vectors {
		if !v.Passed() {
			return false
		}
	}
	return true
}

// Run applies each vector in order to c: reset, drive inputs, propagate
// once, compare outputs (spec §4.6). VectorMismatch is never fatal — the
// runner always processes every vector and returns the cumulative result.
// Run itself only fails, with ErrNotReady, if c is nil or c.Validate fails.
func Run(c *Circuit, vectors []TestVector) (Result, error) {
	if c == nil {
		return Result{}, errors.Wrap(ErrNotReady, "nil circuit")
	}
	if err := c.Validate(); err != nil {
		return Result{}, errors.Wrap(ErrNotReady, err.Error())
	}

	res := Result{Vectors: make([]VectorResult, 0, len(vectors))}
	for _, v := range vectors {
		res.Vectors = append(res.Vectors, runOne(c, v))
	}
	return res, nil
}

func runOne(c *Circuit, v TestVector) VectorResult {
	c.Reset()
	for name, level := range v.Inputs {
		c.SetSignal(name, level)
	}
	c.Propagate()

	var mismatches []VectorMismatch
	for name, expected := range v.Expected {
		got := c.GetSignal(name)
		if got != expected {
			mismatches = append(mismatches, VectorMismatch{
				Signal:   name,
				Expected: expected,
				Got:      got,
			})
		}
	}
	return VectorResult{Vector: v, Mismatches: mismatches}
}
