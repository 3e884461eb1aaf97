// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sevseg_test

import (
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/clacktronics/sevseg"
)

// Drives a common-cathode 4 digit module wired straight to the Pi's header
// and counts up in tenths forever.
func Example() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	segNames := []string{"GPIO2", "GPIO3", "GPIO4", "GPIO17", "GPIO27", "GPIO22", "GPIO10", "GPIO9"}
	digitNames := []string{"GPIO5", "GPIO6", "GPIO13", "GPIO19"}

	var segs [8]gpio.PinOut
	for i, name := range segNames {
		if segs[i] = gpioreg.ByName(name); segs[i] == nil {
			log.Fatalf("no pin named %s", name)
		}
	}
	digits := make([]gpio.PinOut, len(digitNames))
	for i, name := range digitNames {
		if digits[i] = gpioreg.ByName(name); digits[i] == nil {
			log.Fatalf("no pin named %s", name)
		}
	}

	// The select transistors sink the digit commons, so select is active
	// low.
	port, err := sevseg.NewGPIO(segs, digits, &sevseg.GPIOOpts{ActiveLowDigits: true})
	if err != nil {
		log.Fatal(err)
	}
	dev, err := sevseg.New(port, nil)
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Halt()

	v := 0.0
	last := time.Now()
	for {
		if err := dev.Refresh(v); err != nil {
			log.Fatal(err)
		}
		if now := time.Now(); now.Sub(last) >= 200*time.Millisecond {
			last = now
			if v += 0.1; v >= dev.MaxValue() {
				v = dev.MinValue() + 0.1
			}
		}
	}
}
