// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package rpiosink implements a sevseg.Port over raw Broadcom GPIO numbers
// using go-rpio, for Raspberry Pi deployments that do not run the periph
// host drivers. The pins are driven through /dev/gpiomem, so the usual
// permission requirements of go-rpio apply.
package rpiosink

import (
	"errors"
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"

	"github.com/clacktronics/sevseg"
)

// Opts describes the wiring polarity, matching sevseg.GPIOOpts.
type Opts struct {
	// ActiveLowDigits is set when a select line sinks the digit's common
	// cathode, so driving the line low lights the digit.
	ActiveLowDigits bool
	// ActiveLowSegments is set for common-anode modules.
	ActiveLowSegments bool

	_ struct{}
}

// Dev is a sevseg.Port over memory-mapped Pi GPIO lines.
type Dev struct {
	segs   [8]rpio.Pin
	digits []rpio.Pin
	opts   Opts
}

// New opens the GPIO range and claims the segment and digit lines as
// outputs, driven inactive. segPins are BCM numbers in A..G order with the
// decimal point last; digitPins leftmost first.
func New(segPins [8]int, digitPins []int, opts *Opts) (*Dev, error) {
	if len(digitPins) == 0 {
		return nil, errors.New("rpiosink: no digit-select pins")
	}
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpiosink: failed to open rpio: %w", err)
	}
	d := &Dev{digits: make([]rpio.Pin, len(digitPins))}
	if opts != nil {
		d.opts = *opts
	}
	for i, n := range segPins {
		d.segs[i] = rpio.Pin(n)
		d.segs[i].Output()
	}
	for i, n := range digitPins {
		d.digits[i] = rpio.Pin(n)
		d.digits[i].Output()
	}
	d.allOff()
	return d, nil
}

// SetSegments implements sevseg.Port.
func (d *Dev) SetSegments(mask sevseg.SegmentMask, dp bool) error {
	for i := 0; i < 7; i++ {
		d.drive(d.segs[i], mask&(1<<i) != 0, d.opts.ActiveLowSegments)
	}
	d.drive(d.segs[7], dp, d.opts.ActiveLowSegments)
	return nil
}

// SetDigit implements sevseg.Port.
func (d *Dev) SetDigit(pos int, active bool) error {
	if pos < 1 || pos > len(d.digits) {
		return fmt.Errorf("rpiosink: digit position %d out of range [1, %d]", pos, len(d.digits))
	}
	d.drive(d.digits[pos-1], active, d.opts.ActiveLowDigits)
	return nil
}

// Halt implements sevseg.Port. It drives every line inactive and unmaps the
// GPIO range, so it must run last among all go-rpio users in the process.
func (d *Dev) Halt() error {
	d.allOff()
	return rpio.Close()
}

func (d *Dev) String() string {
	return fmt.Sprintf("rpiosink.Dev{digits:%d}", len(d.digits))
}

func (d *Dev) allOff() {
	for pos := 1; pos <= len(d.digits); pos++ {
		_ = d.SetDigit(pos, false)
	}
	_ = d.SetSegments(sevseg.Blank, false)
}

func (d *Dev) drive(p rpio.Pin, on, activeLow bool) {
	if on != activeLow {
		p.High()
	} else {
		p.Low()
	}
}

var _ sevseg.Port = &Dev{}
