// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termsink implements a sevseg.Port that renders the readout to the
// terminal (stdout) using ANSI color codes.
//
// Useful while you are waiting for your four digit LED module to come by
// mail: each digit cell keeps showing the last pattern that was latched
// into it, standing in for the persistence of vision that fuses the real
// display's flashes.
package termsink

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/clacktronics/sevseg"
)

// Opts represents the options available for this sink.
type Opts struct {
	// Digits is the number of digit cells drawn. Defaults to 4.
	Digits int
	// Writer overrides the default colorable stdout. Handy in tests.
	Writer io.Writer
	// Palette picks the ANSI palette. Defaults to ansi256.Default.
	Palette *ansi256.Palette

	_ struct{}
}

// cell is the latched state of one digit slot.
type cell struct {
	mask sevseg.SegmentMask
	dp   bool
}

// Dev is an N digit seven-segment module emulator that outputs to the
// console. It implements sevseg.Port.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette

	cur   sevseg.SegmentMask
	curDP bool
	cells []cell
	drawn bool
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	o := Opts{}
	if opts != nil {
		o = *opts
	}
	if o.Digits <= 0 {
		o.Digits = 4
	}
	if o.Writer == nil {
		o.Writer = colorable.NewColorableStdout()
	}
	p := o.Palette
	if p == nil {
		p = ansi256.Default
	}
	return &Dev{
		w:       o.Writer,
		palette: *p,
		cells:   make([]cell, o.Digits),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("TermSink{digits:%d}", len(d.cells))
}

// SetSegments implements sevseg.Port. The pattern only becomes visible once
// a digit-select latches it into a slot.
func (d *Dev) SetSegments(mask sevseg.SegmentMask, dp bool) error {
	d.cur = mask
	d.curDP = dp
	return nil
}

// SetDigit implements sevseg.Port. Asserting a select latches the current
// segment pattern into that slot and redraws; deasserting leaves the slot's
// afterglow alone.
func (d *Dev) SetDigit(pos int, active bool) error {
	if pos < 1 || pos > len(d.cells) {
		return fmt.Errorf("termsink: digit position %d out of range [1, %d]", pos, len(d.cells))
	}
	if !active {
		return nil
	}
	d.cells[pos-1] = cell{mask: d.cur, dp: d.curDP}
	return d.refresh()
}

// Halt implements sevseg.Port.
//
// It resets the terminal attributes so the shell is not corrupted.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\n\033[0m"))
	return err
}

var (
	litColor = color.NRGBA{R: 0xff, G: 0x30, B: 0x00, A: 255}
	offColor = color.NRGBA{R: 0x28, G: 0x08, B: 0x00, A: 255}
)

// grid maps the cell onto a 5x3 block raster: three horizontal bars two
// blocks wide, four vertical bars one block tall, the decimal point in the
// bottom right corner and a gap column between cells.
func (c cell) grid() [rows][cols]bool {
	var g [rows][cols]bool
	set := func(seg sevseg.SegmentMask, pts ...[2]int) {
		if c.mask&seg == 0 {
			return
		}
		for _, p := range pts {
			g[p[1]][p[0]] = true
		}
	}
	set(sevseg.SegA, [2]int{1, 0}, [2]int{2, 0})
	set(sevseg.SegF, [2]int{0, 1})
	set(sevseg.SegG, [2]int{1, 1}, [2]int{2, 1})
	set(sevseg.SegB, [2]int{3, 1})
	set(sevseg.SegE, [2]int{0, 2})
	set(sevseg.SegD, [2]int{1, 2}, [2]int{2, 2})
	set(sevseg.SegC, [2]int{3, 2})
	if c.dp {
		g[2][4] = true
	}
	return g
}

const (
	rows = 3
	cols = 5
)

func (d *Dev) refresh() error {
	// This code is designed to minimize the amount of memory allocated
	// per call.
	d.buf.Reset()
	if d.drawn {
		// Redraw over the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA", rows)
	}
	for row := 0; row < rows; row++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for _, c := range d.cells {
			g := c.grid()
			for col := 0; col < cols; col++ {
				if g[row][col] {
					_, _ = io.WriteString(&d.buf, d.palette.Block(litColor))
				} else {
					_, _ = io.WriteString(&d.buf, d.palette.Block(offColor))
				}
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.drawn = true
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ sevseg.Port = &Dev{}
var _ fmt.Stringer = &Dev{}
