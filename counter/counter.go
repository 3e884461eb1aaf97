// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package counter provides the value source for the display demo: a bounded
// accumulator that moves a fixed step at a time and wraps from its maximum
// back to its minimum.
package counter

import "fmt"

// Counter is a wrapping fixed-step accumulator. It has no notion of time;
// the caller decides how often Advance runs. Counter is not safe for
// concurrent use.
type Counter struct {
	min, max, step float64
	value          float64
}

// New returns a Counter starting at min. step must be positive and max must
// exceed min.
func New(min, max, step float64) (*Counter, error) {
	if step <= 0 {
		return nil, fmt.Errorf("counter: invalid step %v", step)
	}
	if max <= min {
		return nil, fmt.Errorf("counter: empty range [%v, %v]", min, max)
	}
	return &Counter{min: min, max: max, step: step, value: min}, nil
}

// Advance moves the counter one step. Stepping past max wraps straight to
// min with no intermediate value skipped or repeated.
func (c *Counter) Advance() {
	c.value += c.step
	if c.value > c.max {
		c.value = c.min
	}
}

// Value returns the current value.
func (c *Counter) Value() float64 {
	return c.value
}

func (c *Counter) String() string {
	return fmt.Sprintf("counter{%v in [%v, %v] by %v}", c.value, c.min, c.max, c.step)
}
