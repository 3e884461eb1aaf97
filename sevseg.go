// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.
//
// Package sevseg drives bare multiplexed seven-segment LED modules: the
// kind wired straight to GPIO lines with one select line per digit and
// eight shared segment lines, and no controller chip in between. The driver
// lights one digit at a time and cycles fast enough that persistence of
// vision fuses the flashes into a stable multi-digit readout.
//
// Every refresh cycle lasts exactly Digits*Dwell regardless of how many
// digit slots the value needs, so small values do not refresh faster and
// appear brighter than values that fill the display.
package sevseg

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3"
)

// Clock is the sleep source pacing the refresh cycle. It is satisfied by
// clockwork.Clock, so tests can swap in a fake and run without real delays.
type Clock interface {
	Sleep(d time.Duration)
}

// DefaultDwell keeps a four digit display at a flicker-free 125Hz refresh.
const DefaultDwell = 2 * time.Millisecond

// Opts holds the build-time configuration of a display. The zero value of
// each field selects its default.
type Opts struct {
	// Digits is the number of physical digit slots. Defaults to 4.
	Digits int
	// Scale is the number of fractional digits shown. It must leave room
	// for at least one integer digit. Zero shows integers only; passing a
	// nil *Opts to New selects one fractional digit.
	Scale int
	// Dwell is how long one digit stays lit during a refresh cycle. The
	// refresh rate is 1/(Digits*Dwell) and raising Dwell trades flicker
	// for brightness. Defaults to DefaultDwell.
	Dwell time.Duration
	// Clock paces the cycle. Defaults to the wall clock.
	Clock Clock

	_ struct{}
}

// Dev is a multiplexed seven-segment display driver on top of a Port.
//
// Dev is not safe for concurrent use: the segment and select lines are a
// single shared resource and the driver owns them exclusively, so all
// rendering happens on one goroutine and timing comes from blocking sleeps.
type Dev struct {
	port   Port
	clk    Clock
	digits int
	scale  int
	dwell  time.Duration

	// Exclusive range bounds. A value at or beyond a bound blanks the
	// whole cycle.
	min, max float64
}

// New returns a driver for the display behind p.
func New(p Port, opts *Opts) (*Dev, error) {
	if p == nil {
		return nil, errors.New("sevseg: nil port")
	}
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Digits == 0 {
		o.Digits = 4
	}
	if o.Digits < 0 {
		return nil, fmt.Errorf("sevseg: invalid digit count %d", o.Digits)
	}
	if o.Scale == 0 && opts == nil {
		o.Scale = 1
	}
	if o.Scale < 0 || o.Scale >= o.Digits {
		return nil, fmt.Errorf("sevseg: scale %d leaves no integer digit on a %d digit display", o.Scale, o.Digits)
	}
	if o.Dwell == 0 {
		o.Dwell = DefaultDwell
	}
	if o.Dwell < 0 {
		return nil, fmt.Errorf("sevseg: invalid dwell time %v", o.Dwell)
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	div := math.Pow(10, float64(o.Scale))
	return &Dev{
		port:   p,
		clk:    o.Clock,
		digits: o.Digits,
		scale:  o.Scale,
		dwell:  o.Dwell,
		min:    -math.Pow(10, float64(o.Digits-1)) / div,
		max:    math.Pow(10, float64(o.Digits)) / div,
	}, nil
}

// Refresh renders v for exactly one cycle of Digits*Dwell.
//
// Steps are placed right-to-left: the least significant digit always lands
// on the rightmost slot and the sign, if any, lands immediately left of the
// most significant digit. The display is blanked before every select change
// so a pattern can never bleed onto the wrong digit while the lines settle,
// and the cycle ends blanked with the remaining dwell budget slept off.
//
// Refresh blocks for the full cycle. The only errors are port I/O errors;
// an out-of-range v is not an error, it renders as a blank cycle of the
// same duration.
func (d *Dev) Refresh(v float64) error {
	steps := d.Decompose(v)
	pos := d.digits
	for _, s := range steps {
		if err := d.blank(); err != nil {
			return err
		}
		if err := d.port.SetSegments(Encode(s.Glyph), s.DP); err != nil {
			return err
		}
		if err := d.port.SetDigit(pos, true); err != nil {
			return err
		}
		d.clk.Sleep(d.dwell)
		pos--
	}
	if err := d.blank(); err != nil {
		return err
	}
	d.clk.Sleep(time.Duration(d.digits-len(steps)) * d.dwell)
	return nil
}

// blank deasserts every select line and clears the segment lines. This is
// the safe state between digits: no select may be active while the segment
// lines change.
func (d *Dev) blank() error {
	for pos := 1; pos <= d.digits; pos++ {
		if err := d.port.SetDigit(pos, false); err != nil {
			return err
		}
	}
	return d.port.SetSegments(Blank, false)
}

// Dwell returns the configured per-digit dwell time.
func (d *Dev) Dwell() time.Duration {
	return d.dwell
}

// Digits returns the number of physical digit slots.
func (d *Dev) Digits() int {
	return d.digits
}

// Scale returns the number of fractional digits shown.
func (d *Dev) Scale() int {
	return d.scale
}

func (d *Dev) String() string {
	return fmt.Sprintf("sevseg.Dev{digits:%d, scale:%d}", d.digits, d.scale)
}

// Halt implements conn.Resource. It blanks the display and halts the port.
func (d *Dev) Halt() error {
	if err := d.blank(); err != nil {
		return err
	}
	return d.port.Halt()
}

var _ conn.Resource = &Dev{}
