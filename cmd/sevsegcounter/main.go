// Copyright 2025 The SevSeg Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sevsegcounter free-runs a signed decimal counter on a multiplexed four
// digit seven-segment display. The counter advances a fixed step per
// interval and wraps from the top of the displayable range back to the
// bottom; the display refreshes continuously in between.
//
// The -sink flag picks the output: a real module on periph GPIO lines or
// raw go-rpio pins, an ANSI emulation on the terminal, or a PNG frame
// served over HTTP.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/clacktronics/sevseg"
	"github.com/clacktronics/sevseg/counter"
	"github.com/clacktronics/sevseg/pngsink"
	"github.com/clacktronics/sevseg/rpiosink"
	"github.com/clacktronics/sevseg/termsink"
)

var (
	sink     = flag.String("sink", "term", "display sink: gpio, rpio, term or png")
	dwell    = flag.Duration("dwell", sevseg.DefaultDwell, "per-digit dwell time; refresh rate is 1/(digits*dwell)")
	interval = flag.Duration("interval", 200*time.Millisecond, "time between counter increments")
	step     = flag.Float64("step", 0.1, "counter increment per interval")
	digits   = flag.Int("digits", 4, "number of digit slots")
	scale    = flag.Int("scale", 1, "number of fractional digits")

	segPins   = flag.String("seg-pins", "GPIO2,GPIO3,GPIO4,GPIO17,GPIO27,GPIO22,GPIO10,GPIO9", "8 segment lines in A..G,DP order (pin names for gpio, BCM numbers for rpio)")
	digitPins = flag.String("digit-pins", "GPIO5,GPIO6,GPIO13,GPIO19", "digit-select lines, leftmost first")
	lowDigits = flag.Bool("active-low-digits", true, "digit-select lines sink the common cathode")
	lowSegs   = flag.Bool("active-low-segments", false, "segment lines are active low (common anode)")

	listen = flag.String("listen", "localhost:8080", "address for the png sink")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	port, err := openSink()
	if err != nil {
		return err
	}

	dev, err := sevseg.New(port, &sevseg.Opts{Digits: *digits, Scale: *scale, Dwell: *dwell})
	if err != nil {
		return err
	}

	// Count over every displayable value at the configured precision. The
	// driver's bounds are exclusive; the counter's are inclusive.
	prec := math.Pow(10, -float64(*scale))
	cnt, err := counter.New(dev.MinValue()+prec, dev.MaxValue()-prec, *step)
	if err != nil {
		return err
	}

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)

	clk := clockwork.NewRealClock()
	ticker := clk.NewTicker(*interval)
	defer ticker.Stop()

	log.Printf("counting on %s every %v by %v", dev, *interval, *step)
	for {
		select {
		case <-exit:
			// Blank on the way out so someone looking at the display
			// can tell the program exited rather than hung.
			log.Printf("exiting")
			return dev.Halt()
		case <-ticker.Chan():
			cnt.Advance()
		default:
		}
		if err := dev.Refresh(cnt.Value()); err != nil {
			return err
		}
	}
}

func openSink() (sevseg.Port, error) {
	switch *sink {
	case "term":
		return termsink.New(&termsink.Opts{Digits: *digits}), nil

	case "png":
		d := pngsink.New(&pngsink.Options{Digits: *digits})
		go func() {
			log.Fatal(http.ListenAndServe(*listen, d))
		}()
		log.Printf("serving display frames on http://%s", *listen)
		return d, nil

	case "gpio":
		if _, err := host.Init(); err != nil {
			return nil, err
		}
		var segs [8]gpio.PinOut
		segNames := splitList(*segPins)
		if len(segNames) != len(segs) {
			return nil, fmt.Errorf("need %d segment lines, got %d", len(segs), len(segNames))
		}
		for i, name := range segNames {
			if segs[i] = gpioreg.ByName(name); segs[i] == nil {
				return nil, fmt.Errorf("no pin named %s", name)
			}
		}
		var sel []gpio.PinOut
		for _, name := range splitList(*digitPins) {
			p := gpioreg.ByName(name)
			if p == nil {
				return nil, fmt.Errorf("no pin named %s", name)
			}
			sel = append(sel, p)
		}
		return sevseg.NewGPIO(segs, sel, &sevseg.GPIOOpts{
			ActiveLowDigits:   *lowDigits,
			ActiveLowSegments: *lowSegs,
		})

	case "rpio":
		var segs [8]int
		segNums, err := parseBCM(*segPins)
		if err != nil {
			return nil, err
		}
		if len(segNums) != len(segs) {
			return nil, fmt.Errorf("need %d segment lines, got %d", len(segs), len(segNums))
		}
		copy(segs[:], segNums)
		sel, err := parseBCM(*digitPins)
		if err != nil {
			return nil, err
		}
		return rpiosink.New(segs, sel, &rpiosink.Opts{
			ActiveLowDigits:   *lowDigits,
			ActiveLowSegments: *lowSegs,
		})
	}
	return nil, errors.New("unknown sink, expected gpio, rpio, term or png")
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseBCM(s string) ([]int, error) {
	var out []int
	for _, f := range splitList(s) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad BCM pin number %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}
