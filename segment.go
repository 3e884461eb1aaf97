// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

// SegmentMask holds the on/off state of the seven segments making up one
// digit cell. Bit 0 is segment A (the top bar) and the bits follow the usual
// A..G order, so a zero glyph encodes as 0x3f and the minus sign as 0x40.
// The decimal point is not packed into the mask; it travels as a separate
// bool wherever a mask does.
type SegmentMask byte

const (
	SegA SegmentMask = 1 << iota // top
	SegB                         // top right
	SegC                         // bottom right
	SegD                         // bottom
	SegE                         // bottom left
	SegF                         // top left
	SegG                         // middle
)

// Blank is the all-off pattern.
const Blank SegmentMask = 0

// Minus is the glyph value for the minus sign. The other valid glyphs are
// the digits 0-9 themselves.
const Minus = 10

// digitMasks holds the canonical patterns for the decimal digits.
var digitMasks = [10]SegmentMask{
	0x3f, // 0
	0x06, // 1
	0x5b, // 2
	0x4f, // 3
	0x66, // 4
	0x6d, // 5
	0x7d, // 6
	0x07, // 7
	0x7f, // 8
	0x6f, // 9
}

// Encode returns the segment pattern for a glyph. Valid glyphs are the
// digits 0-9 and Minus. Anything else encodes as Blank, so a bad glyph shows
// up as an empty digit cell rather than garbled segments.
func Encode(glyph int) SegmentMask {
	switch {
	case glyph >= 0 && glyph <= 9:
		return digitMasks[glyph]
	case glyph == Minus:
		return SegG
	}
	return Blank
}
