// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package counter

import "testing"

func TestStartsAtMin(t *testing.T) {
	c, err := New(-1, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c.Value() != -1 {
		t.Errorf("Value() = %v, want -1", c.Value())
	}
}

func TestAdvance(t *testing.T) {
	c, err := New(-1, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	// Walk one full wrap and a bit: every value from min to max exactly
	// once, then straight back to min.
	want := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, -1, 0}
	for i, w := range want {
		c.Advance()
		if got := c.Value(); got != w {
			t.Fatalf("step %d: Value() = %v, want %v", i+1, got, w)
		}
	}
}

func TestAdvanceHalfStepBelowMax(t *testing.T) {
	// The last in-range value need not hit max exactly; the first step
	// beyond max still wraps.
	c, err := New(0, 2.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 0, 1}
	for i, w := range want {
		c.Advance()
		if got := c.Value(); got != w {
			t.Fatalf("step %d: Value() = %v, want %v", i+1, got, w)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(0, 10, 0); err == nil {
		t.Error("New() with zero step did not fail")
	}
	if _, err := New(0, 10, -1); err == nil {
		t.Error("New() with negative step did not fail")
	}
	if _, err := New(10, 10, 1); err == nil {
		t.Error("New() with empty range did not fail")
	}
}
