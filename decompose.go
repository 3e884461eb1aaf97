// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import "math"

// Step is one element of a refresh cycle: the glyph to show and whether its
// decimal point is lit. Steps are ordered least-significant-digit first, so
// the first step always lands on the rightmost physical slot. A negative
// value contributes a final Minus step with the decimal point off.
type Step struct {
	Glyph int
	DP    bool
}

// Decompose splits v into the render steps of one refresh cycle.
//
// The fractional part is scaled to Scale digits and truncated, never
// rounded. The integer part always contributes at least one digit, and when
// Scale > 0 the first integer digit carries the decimal point. Values
// outside (MinValue, MaxValue) return nil, as do negative values whose sign
// cannot fit next to the mandatory digits: both render as a fully blanked
// cycle, not an error. At most Digits steps are ever emitted.
//
// Decompose is pure; the same value always yields the same steps.
func (d *Dev) Decompose(v float64) []Step {
	if math.IsNaN(v) || v <= d.min || v >= d.max {
		return nil
	}
	neg := v < 0
	if neg {
		v = -v
	}

	scale := int64(1)
	for i := 0; i < d.scale; i++ {
		scale *= 10
	}
	total := int64(v * float64(scale)) // truncates
	intPart := total / scale
	frac := total % scale

	steps := make([]Step, 0, d.digits)
	for i := 0; i < d.scale; i++ {
		steps = append(steps, Step{Glyph: int(frac % 10)})
		frac /= 10
	}
	first := true
	for {
		steps = append(steps, Step{Glyph: int(intPart % 10), DP: first && d.scale > 0})
		first = false
		intPart /= 10
		if intPart == 0 {
			break
		}
	}
	if neg {
		steps = append(steps, Step{Glyph: Minus})
	}
	if len(steps) > d.digits {
		// The sign found no free slot. This only happens when every slot
		// is claimed by fractional digits plus the mandatory integer
		// digit; such values blank like any other overflow.
		return nil
	}
	return steps
}

// MinValue returns the exclusive lower bound of the displayable range. The
// sign consumes one digit slot, so one fewer integer digit fits than on the
// positive side.
func (d *Dev) MinValue() float64 {
	return d.min
}

// MaxValue returns the exclusive upper bound of the displayable range.
func (d *Dev) MaxValue() float64 {
	return d.max
}
