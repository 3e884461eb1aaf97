// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// recordPort records every line operation as a formatted string so tests
// can verify the exact drive sequence, including the blanking between
// digits.
type recordPort struct {
	ops    []string
	halted bool
}

func (p *recordPort) SetSegments(mask SegmentMask, dp bool) error {
	p.ops = append(p.ops, fmt.Sprintf("seg=%02x dp=%v", byte(mask), dp))
	return nil
}

func (p *recordPort) SetDigit(pos int, active bool) error {
	p.ops = append(p.ops, fmt.Sprintf("digit=%d active=%v", pos, active))
	return nil
}

func (p *recordPort) Halt() error {
	p.halted = true
	return nil
}

// recordClock records sleep durations instead of blocking.
type recordClock struct {
	sleeps []time.Duration
}

func (c *recordClock) Sleep(d time.Duration) {
	c.sleeps = append(c.sleeps, d)
}

func (c *recordClock) total() time.Duration {
	var sum time.Duration
	for _, d := range c.sleeps {
		sum += d
	}
	return sum
}

const testDwell = 2 * time.Millisecond

func recordingDev(t *testing.T) (*Dev, *recordPort, *recordClock) {
	t.Helper()
	port := &recordPort{}
	clk := &recordClock{}
	dev, err := New(port, &Opts{Digits: 4, Scale: 1, Dwell: testDwell, Clock: clk})
	if err != nil {
		t.Fatal(err)
	}
	return dev, port, clk
}

// blankOps is the drive sequence that extinguishes the whole display.
func blankOps() []string {
	return []string{
		"digit=1 active=false",
		"digit=2 active=false",
		"digit=3 active=false",
		"digit=4 active=false",
		"seg=00 dp=false",
	}
}

func TestRefresh(t *testing.T) {
	dev, port, clk := recordingDev(t)
	if err := dev.Refresh(12.3); err != nil {
		t.Fatal(err)
	}

	// Three steps, right-to-left: 3 on slot 4, 2. on slot 3, 1 on slot 2,
	// then a blank remainder worth one dwell.
	var expected []string
	expected = append(expected, blankOps()...)
	expected = append(expected, "seg=4f dp=false", "digit=4 active=true")
	expected = append(expected, blankOps()...)
	expected = append(expected, "seg=5b dp=true", "digit=3 active=true")
	expected = append(expected, blankOps()...)
	expected = append(expected, "seg=06 dp=false", "digit=2 active=true")
	expected = append(expected, blankOps()...)

	if diff := cmp.Diff(port.ops, expected); diff != "" {
		t.Errorf("Refresh(12.3) drive sequence difference (-got +want):\n%s", diff)
	}
	wantSleeps := []time.Duration{testDwell, testDwell, testDwell, testDwell}
	if diff := cmp.Diff(clk.sleeps, wantSleeps); diff != "" {
		t.Errorf("Refresh(12.3) sleep sequence difference (-got +want):\n%s", diff)
	}
}

func TestRefreshSign(t *testing.T) {
	dev, port, clk := recordingDev(t)
	if err := dev.Refresh(-3.4); err != nil {
		t.Fatal(err)
	}

	// The sign lands immediately left of the most significant digit and
	// its decimal point stays off.
	var expected []string
	expected = append(expected, blankOps()...)
	expected = append(expected, "seg=66 dp=false", "digit=4 active=true")
	expected = append(expected, blankOps()...)
	expected = append(expected, "seg=4f dp=true", "digit=3 active=true")
	expected = append(expected, blankOps()...)
	expected = append(expected, "seg=40 dp=false", "digit=2 active=true")
	expected = append(expected, blankOps()...)

	if diff := cmp.Diff(port.ops, expected); diff != "" {
		t.Errorf("Refresh(-3.4) drive sequence difference (-got +want):\n%s", diff)
	}
	wantSleeps := []time.Duration{testDwell, testDwell, testDwell, testDwell}
	if diff := cmp.Diff(clk.sleeps, wantSleeps); diff != "" {
		t.Errorf("Refresh(-3.4) sleep sequence difference (-got +want):\n%s", diff)
	}
}

func TestRefreshOutOfRange(t *testing.T) {
	dev, port, clk := recordingDev(t)
	if err := dev.Refresh(1000.0); err != nil {
		t.Fatal(err)
	}

	// Blank cycle: no digit lit, still the full cycle duration.
	if diff := cmp.Diff(port.ops, blankOps()); diff != "" {
		t.Errorf("Refresh(1000) drive sequence difference (-got +want):\n%s", diff)
	}
	if diff := cmp.Diff(clk.sleeps, []time.Duration{4 * testDwell}); diff != "" {
		t.Errorf("Refresh(1000) sleep sequence difference (-got +want):\n%s", diff)
	}
}

func TestRefreshSignWithoutSlot(t *testing.T) {
	// With Scale == Digits-1 a negative value has no slot left for its
	// sign; the cycle blanks instead of addressing a slot that does not
	// exist, and still lasts the full duration.
	port := &recordPort{}
	clk := &recordClock{}
	dev, err := New(port, &Opts{Digits: 4, Scale: 3, Dwell: testDwell, Clock: clk})
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.Refresh(-0.5); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(port.ops, blankOps()); diff != "" {
		t.Errorf("Refresh(-0.5) drive sequence difference (-got +want):\n%s", diff)
	}
	for _, op := range port.ops {
		if strings.HasPrefix(op, "digit=0 ") {
			t.Errorf("drive sequence addressed slot 0: %q", op)
		}
	}
	if diff := cmp.Diff(clk.sleeps, []time.Duration{4 * testDwell}); diff != "" {
		t.Errorf("Refresh(-0.5) sleep sequence difference (-got +want):\n%s", diff)
	}
}

func TestRefreshConstantDuration(t *testing.T) {
	// Every cycle lasts exactly Digits*Dwell no matter how many digit
	// slots the value needs.
	for _, v := range []float64{0, 7.5, 12.3, -3.4, 999.9, -99.9, 1000.0, -100.0} {
		dev, _, clk := recordingDev(t)
		if err := dev.Refresh(v); err != nil {
			t.Fatal(err)
		}
		if total := clk.total(); total != 4*testDwell {
			t.Errorf("Refresh(%v) cycle lasted %v, want %v", v, total, 4*testDwell)
		}
	}
}

func TestRefreshNoGhosting(t *testing.T) {
	// A select line may only be asserted right after a full blank followed
	// by a coherent segment pattern.
	dev, port, _ := recordingDev(t)
	if err := dev.Refresh(-42.7); err != nil {
		t.Fatal(err)
	}
	for i, op := range port.ops {
		if !strings.HasSuffix(op, "active=true") {
			continue
		}
		if i < 6 {
			t.Fatalf("select asserted too early at op %d: %q", i, op)
		}
		if got := port.ops[i-6 : i-1]; cmp.Diff(got, blankOps()) != "" {
			t.Errorf("op %d: select %q not preceded by a full blank: %v", i, op, got)
		}
	}
}

func TestHalt(t *testing.T) {
	dev, port, _ := recordingDev(t)
	if err := dev.Halt(); err != nil {
		t.Fatal(err)
	}
	if !port.halted {
		t.Error("Halt() did not halt the port")
	}
	if diff := cmp.Diff(port.ops, blankOps()); diff != "" {
		t.Errorf("Halt() drive sequence difference (-got +want):\n%s", diff)
	}
}

func TestNewErrors(t *testing.T) {
	clk := &recordClock{}
	for _, tc := range []struct {
		name string
		port Port
		opts *Opts
	}{
		{"nil port", nil, nil},
		{"negative digits", &recordPort{}, &Opts{Digits: -1, Clock: clk}},
		{"scale too large", &recordPort{}, &Opts{Digits: 4, Scale: 4, Clock: clk}},
		{"negative scale", &recordPort{}, &Opts{Digits: 4, Scale: -1, Clock: clk}},
		{"negative dwell", &recordPort{}, &Opts{Digits: 4, Scale: 1, Dwell: -time.Millisecond, Clock: clk}},
	} {
		if _, err := New(tc.port, tc.opts); err == nil {
			t.Errorf("New() with %s did not fail", tc.name)
		}
	}
}

func TestString(t *testing.T) {
	dev, _, _ := recordingDev(t)
	if s := dev.String(); len(s) == 0 {
		t.Error("empty String()")
	}
}
