// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg

// Port is the hardware the driver renders to: eight shared segment lines
// (seven segments plus the decimal point) and one select line per digit
// cell. Only the digit whose select line is active responds to the segment
// lines.
//
// Implementations must guarantee that an inactive select line leaves its
// digit dark no matter what the segment lines carry, and that all lines
// start out inactive.
type Port interface {
	// SetSegments drives the shared segment lines.
	SetSegments(mask SegmentMask, dp bool) error
	// SetDigit drives one digit-select line. pos is in [1, digits] with
	// position 1 leftmost.
	SetDigit(pos int, active bool) error
	// Halt leaves every line in its non-conducting state and releases any
	// underlying resources.
	Halt() error
}
