// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termsink_test

import (
	"log"

	"github.com/clacktronics/sevseg"
	"github.com/clacktronics/sevseg/termsink"
)

// Renders a counter in the terminal instead of on real hardware.
func Example() {
	dev, err := sevseg.New(termsink.New(nil), nil)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	for v := -99.9; v < dev.MaxValue(); v += 0.1 {
		if err := dev.Refresh(v); err != nil {
			log.Fatal(err)
		}
	}
}
