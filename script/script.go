// Copyright 2026 The alucore authors.
// Licensed under the MIT license. See license text in the LICENSE file.

// Package script parses line-oriented stimulus scripts that drive an
// alucore engine one tick per step.
//
// Each non-empty line is one command, optionally followed by a repeat
// suffix "xN". "#" starts a comment running to the end of the line.
//
//	reset            assert reset for one tick
//	start            one Idle tick with the start pulse high
//	load <a> <b>     one CollectOperands tick with input-enable and lanes
//	op <n>           one tick with the given 2-bit opcode
//	tick             one tick with all inputs low
//
// Numbers accept decimal, 0x and 0b notation.
package script

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/seqlab/alucore"
)

// A Step is one scripted stimulus, applied for Repeat consecutive ticks.
//
type Step struct {
	In     alucore.Inputs
	Repeat int
	Line   int // 1-based source line, for diagnostics
}

// Parse reads a stimulus script from r.
//
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		repeat := 1
		if last := fields[len(fields)-1]; len(last) > 1 && last[0] == 'x' {
			n, err := strconv.Atoi(last[1:])
			if err != nil || n < 1 {
				return nil, errors.Errorf("line %d: bad repeat count %q", line, last)
			}
			repeat = n
			fields = fields[:len(fields)-1]
		}

		st := Step{Repeat: repeat, Line: line}
		var err error
		switch cmd := fields[0]; cmd {
		case "reset":
			err = wantArgs(fields, 0)
			st.In.Reset = true
		case "start":
			err = wantArgs(fields, 0)
			st.In.Start = true
		case "tick":
			err = wantArgs(fields, 0)
		case "load":
			if err = wantArgs(fields, 2); err == nil {
				st.In.Enable = true
				st.In.A, err = parseNum(fields[1], 64)
				if err == nil {
					st.In.B, err = parseNum(fields[2], 64)
				}
			}
		case "op":
			if err = wantArgs(fields, 1); err == nil {
				var v uint64
				v, err = parseNum(fields[1], 2)
				st.In.Opcode = uint8(v)
			}
		default:
			err = errors.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		steps = append(steps, st)
	}
	return steps, errors.Wrap(sc.Err(), "read script")
}

// Ticks returns the total number of clock ticks steps describes.
//
func Ticks(steps []Step) int {
	n := 0
	for _, st := range steps {
		n += st.Repeat
	}
	return n
}

func wantArgs(fields []string, n int) error {
	if len(fields) != n+1 {
		return errors.Errorf("%s takes %d argument(s), got %d", fields[0], n, len(fields)-1)
	}
	return nil
}

func parseNum(s string, bits int) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, bits)
	return v, errors.Wrapf(err, "bad number %q", s)
}
