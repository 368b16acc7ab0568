// Copyright 2026 The alucore authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Command alucore runs a stimulus script against the datapath engine and
// traces the observable pins tick by tick.
//
// Usage:
//
//	alucore [-w bits] [-k bits] [-v] [script]
//
// Without a script argument a built-in demo sequence is run.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/seqlab/alucore"
	"github.com/seqlab/alucore/script"
)

// demo loads two fixed operand patterns, steers S0 -> S4 -> EmitResult and
// drains the result.
const demo = `
reset
start
load 0xA 0x3 x16
op 2   # S0 -> S4
op 1   # S4 -> EmitResult
tick x16
`

func main() {
	w := flag.Int("w", alucore.DefaultW, "wide register width in bits")
	k := flag.Int("k", alucore.DefaultK, "lane width in bits")
	verbose := flag.Bool("v", false, "trace every tick, not just valid output")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	steps, err := loadScript(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	e, err := alucore.New(alucore.Config{W: *w, K: *k})
	if err != nil {
		log.Fatal(err)
	}

	var result uint64
	var lane uint
	tick := 0
	for _, st := range steps {
		for i := 0; i < st.Repeat; i++ {
			o := e.Tick(st.In)
			fields := log.Fields{
				"tick":  tick,
				"state": alucore.State(o.Code),
				"valid": o.Valid,
			}
			if o.Valid {
				fields["out"] = fmt.Sprintf("%#x", o.Out)
				// reassemble the emitted lanes host-side
				result |= o.Out << (lane % e.Lanes() * e.LaneWidth())
				lane++
				log.WithFields(fields).Info("emit")
			} else {
				log.WithFields(fields).Debug("tick")
			}
			tick++
		}
	}

	log.WithFields(log.Fields{
		"ticks":  tick,
		"result": fmt.Sprintf("%#x", result),
		"state":  e.State(),
	}).Info("done")
}

func loadScript(path string) ([]script.Step, error) {
	if path == "" {
		return script.Parse(strings.NewReader(demo))
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return script.Parse(f)
}
