// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// GPIOOpts describes the polarity of a display wired straight to GPIO
// lines. Polarity depends on whether the module is common-cathode or
// common-anode and on whether the select lines sink or source the common
// current.
type GPIOOpts struct {
	// ActiveLowDigits is set when a select line sinks the digit's common
	// cathode, so driving the line low lights the digit.
	ActiveLowDigits bool
	// ActiveLowSegments is set for common-anode modules where a low
	// segment line lights the segment.
	ActiveLowSegments bool

	_ struct{}
}

// GPIO is a Port over raw GPIO lines.
type GPIO struct {
	segs   [8]gpio.PinOut
	digits []gpio.PinOut
	opts   GPIOOpts
}

// NewGPIO returns a Port over raw GPIO lines, with every line driven to its
// inactive level. segs are the segment lines in A..G order with the decimal
// point last. digits are the select lines, leftmost first; their count sets
// the number of digit slots.
func NewGPIO(segs [8]gpio.PinOut, digits []gpio.PinOut, opts *GPIOOpts) (*GPIO, error) {
	if len(digits) == 0 {
		return nil, errors.New("sevseg: no digit-select lines")
	}
	for i, p := range segs {
		if p == nil {
			return nil, fmt.Errorf("sevseg: nil segment line %d", i)
		}
	}
	for i, p := range digits {
		if p == nil {
			return nil, fmt.Errorf("sevseg: nil digit-select line %d", i)
		}
	}
	g := &GPIO{segs: segs, opts: GPIOOpts{}}
	if opts != nil {
		g.opts = *opts
	}
	g.digits = make([]gpio.PinOut, len(digits))
	copy(g.digits, digits)
	if err := g.allOff(); err != nil {
		return nil, err
	}
	return g, nil
}

// SetSegments implements Port.
func (g *GPIO) SetSegments(mask SegmentMask, dp bool) error {
	for i := 0; i < 7; i++ {
		on := mask&(1<<i) != 0
		if err := g.segs[i].Out(g.segLevel(on)); err != nil {
			return err
		}
	}
	return g.segs[7].Out(g.segLevel(dp))
}

// SetDigit implements Port.
func (g *GPIO) SetDigit(pos int, active bool) error {
	if pos < 1 || pos > len(g.digits) {
		return fmt.Errorf("sevseg: digit position %d out of range [1, %d]", pos, len(g.digits))
	}
	return g.digits[pos-1].Out(g.digitLevel(active))
}

// Halt implements Port. It drives every line inactive and halts the pins.
func (g *GPIO) Halt() error {
	err := g.allOff()
	for _, p := range g.segs {
		if e := p.Halt(); err == nil {
			err = e
		}
	}
	for _, p := range g.digits {
		if e := p.Halt(); err == nil {
			err = e
		}
	}
	return err
}

func (g *GPIO) String() string {
	return fmt.Sprintf("sevseg.GPIO{digits:%d}", len(g.digits))
}

func (g *GPIO) allOff() error {
	for pos := 1; pos <= len(g.digits); pos++ {
		if err := g.SetDigit(pos, false); err != nil {
			return err
		}
	}
	return g.SetSegments(Blank, false)
}

func (g *GPIO) segLevel(on bool) gpio.Level {
	if g.opts.ActiveLowSegments {
		return gpio.Level(!on)
	}
	return gpio.Level(on)
}

func (g *GPIO) digitLevel(on bool) gpio.Level {
	if g.opts.ActiveLowDigits {
		return gpio.Level(!on)
	}
	return gpio.Level(on)
}

var _ Port = &GPIO{}
