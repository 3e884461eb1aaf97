// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pngsink implements a sevseg.Port that renders the readout into an
// image and serves the current frame as PNG over an embedded HTTP handler.
//
// The primary use case is the development of display animations on a host
// machine: point a browser at the handler and reload to see the latched
// frame. Like a real module seen by a human eye, each digit cell keeps
// showing the last pattern latched into it.
package pngsink

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/fogleman/gg"

	"github.com/clacktronics/sevseg"
)

// Options for pngsink devices.
type Options struct {
	// Digits is the number of digit cells drawn. Defaults to 4.
	Digits int
	// Width and height of the rendered frame. Default to 120 per digit by
	// 200.
	Width, Height int

	_ struct{}
}

// cell is the latched state of one digit slot.
type cell struct {
	mask sevseg.SegmentMask
	dp   bool
}

// Display renders latched digit cells and serves them over HTTP. It
// implements sevseg.Port and http.Handler.
type Display struct {
	width, height int

	mu    sync.Mutex
	cur   sevseg.SegmentMask
	curDP bool
	cells []cell
	// frame caches the encoded PNG; nil after any cell changed.
	frame []byte
}

var _ sevseg.Port = (*Display)(nil)
var _ http.Handler = (*Display)(nil)

// New creates a new pngsink device instance.
func New(opt *Options) *Display {
	o := Options{}
	if opt != nil {
		o = *opt
	}
	if o.Digits <= 0 {
		o.Digits = 4
	}
	if o.Width <= 0 {
		o.Width = 120 * o.Digits
	}
	if o.Height <= 0 {
		o.Height = 200
	}
	return &Display{
		width:  o.Width,
		height: o.Height,
		cells:  make([]cell, o.Digits),
	}
}

// String returns the name of the device.
func (d *Display) String() string {
	return "PNGSink"
}

// SetSegments implements sevseg.Port.
func (d *Display) SetSegments(mask sevseg.SegmentMask, dp bool) error {
	d.mu.Lock()
	d.cur = mask
	d.curDP = dp
	d.mu.Unlock()
	return nil
}

// SetDigit implements sevseg.Port. Asserting a select latches the current
// segment pattern into the slot and invalidates the cached frame.
func (d *Display) SetDigit(pos int, active bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if pos < 1 || pos > len(d.cells) {
		return fmt.Errorf("pngsink: digit position %d out of range [1, %d]", pos, len(d.cells))
	}
	if !active {
		return nil
	}
	latched := cell{mask: d.cur, dp: d.curDP}
	if d.cells[pos-1] != latched {
		d.cells[pos-1] = latched
		d.frame = nil
	}
	return nil
}

// Halt implements sevseg.Port. It blanks every cell; clients see an empty
// display on their next request.
func (d *Display) Halt() error {
	d.mu.Lock()
	for i := range d.cells {
		d.cells[i] = cell{}
	}
	d.frame = nil
	d.mu.Unlock()
	return nil
}

// ServeHTTP handles HTTP GET requests with a PNG snapshot of the current
// frame.
func (d *Display) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.Body.Close(); err != nil {
		log.Printf("Closing request body failed: %v", err)
	}
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	frame, err := d.grabFrame()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(frame); err != nil {
		log.Printf("Writing frame failed: %v", err)
	}
}

func (d *Display) grabFrame() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		encoded, err := d.renderLocked()
		if err != nil {
			return nil, err
		}
		d.frame = encoded
	}
	return d.frame, nil
}

var (
	litRGB = [3]float64{1.0, 0.25, 0.05}
	offRGB = [3]float64{0.13, 0.03, 0.01}
)

// renderLocked draws the latched cells and encodes the frame.
func (d *Display) renderLocked() ([]byte, error) {
	dc := gg.NewContext(d.width, d.height)
	dc.SetRGB(0.04, 0.04, 0.04)
	dc.Clear()

	cw := float64(d.width) / float64(len(d.cells))
	h := float64(d.height)
	dc.SetLineWidth(h / 14)
	dc.SetLineCapRound()

	for i, c := range d.cells {
		d.drawCell(dc, float64(i)*cw, cw, h, c)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawCell strokes the seven segment bars and the decimal point of one
// cell, dim when unlit so the frame reads like a real LED module.
func (d *Display) drawCell(dc *gg.Context, left, cw, h float64, c cell) {
	m := h / 8
	x0 := left + m
	x1 := left + cw - 2.5*m
	y0 := m
	ym := h / 2
	y1 := h - m

	lines := []struct {
		seg            sevseg.SegmentMask
		ax, ay, bx, by float64
	}{
		{sevseg.SegA, x0, y0, x1, y0},
		{sevseg.SegB, x1, y0, x1, ym},
		{sevseg.SegC, x1, ym, x1, y1},
		{sevseg.SegD, x0, y1, x1, y1},
		{sevseg.SegE, x0, ym, x0, y1},
		{sevseg.SegF, x0, y0, x0, ym},
		{sevseg.SegG, x0, ym, x1, ym},
	}
	for _, l := range lines {
		setSegColor(dc, c.mask&l.seg != 0)
		dc.DrawLine(l.ax, l.ay, l.bx, l.by)
		dc.Stroke()
	}
	setSegColor(dc, c.dp)
	dc.DrawCircle(left+cw-m, y1, h/22)
	dc.Fill()
}

func setSegColor(dc *gg.Context, lit bool) {
	rgb := offRGB
	if lit {
		rgb = litRGB
	}
	dc.SetRGB(rgb[0], rgb[1], rgb[2])
}
