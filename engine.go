// Copyright 2026 The alucore authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package alucore

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Default width parameters of the composed design.
const (
	DefaultW = 64 // wide register width
	DefaultK = 4  // operand/result lane width
)

// Config holds the width parameters of the datapath. Both are fixed at
// construction time. The zero value selects the defaults (W=64, K=4).
//
type Config struct {
	W int // wide register width in bits, 0 < W <= 64, even
	K int // lane width in bits; must divide W into a power-of-two lane count
}

// Inputs is one tick's worth of input pins, sampled on the clock edge.
//
// Reset is active-high here. The reference hardware asserts reset low and
// asynchronously; the model samples it once per tick ahead of the edge
// (reset-then-tick), which is observably equivalent in a single clock
// domain.
//
type Inputs struct {
	Reset  bool   // force Idle and clear the register file
	Start  bool   // start pulse, sampled only in Idle
	Enable bool   // input-enable pulse, sampled only in CollectOperands
	A, B   uint64 // K-bit operand lanes
	Opcode uint8  // 2-bit next-state selector, combinational
}

// Outputs are the combinational output pins as observed during one clock
// period, i.e. driven by the current register values. Out carries a K-bit
// accumulator lane and is zero whenever Valid is false.
//
type Outputs struct {
	Out   uint64 // K-bit result lane
	Valid bool   // true iff the engine is in EmitResult
	Code  uint8  // 4-bit state code, see State.Code
}

// Engine is the clocked FSM-plus-datapath core. It exclusively owns its
// register file; the only mutator is Tick and the only way to observe the
// registers is through Outputs and the probe methods.
//
type Engine struct {
	bank
	k     uint   // lane width in bits
	lanes uint   // W/K, power of two
	lmask uint64 // K low bits set

	state State
	a, b  uint64 // operand registers
	acc   uint64 // previous-result register
	cnt   uint   // load/emit lane counter, wraps at lanes
}

// New returns an engine with the given width parameters, reset to Idle.
//
func New(cfg Config) (*Engine, error) {
	w, k := cfg.W, cfg.K
	if w == 0 {
		w = DefaultW
	}
	if k == 0 {
		k = DefaultK
	}
	switch {
	case w < 2 || w > 64:
		return nil, errors.Errorf("register width W=%d out of range [2, 64]", w)
	case w%2 != 0:
		return nil, errors.Errorf("register width W=%d must be even", w)
	case k <= 0 || k >= w:
		return nil, errors.Errorf("lane width K=%d out of range [1, W-1]", k)
	case w%k != 0:
		return nil, errors.Errorf("lane width K=%d does not divide W=%d", k, w)
	}
	lanes := w / k
	if bits.OnesCount(uint(lanes)) != 1 {
		// the lane counter wraps like its fixed-width hardware counterpart
		return nil, errors.Errorf("lane count W/K=%d must be a power of two", lanes)
	}
	e := &Engine{
		bank:  newBank(uint(w)),
		k:     uint(k),
		lanes: uint(lanes),
		lmask: ^uint64(0) >> (64 - uint(k)),
	}
	e.reset()
	return e, nil
}

func (e *Engine) reset() {
	e.state = Idle
	e.a, e.b, e.acc = 0, 0, 0
	e.cnt = 0
}

// Tick advances the engine by one clock edge and returns the outputs as
// observed during that cycle, i.e. before the edge updates the registers.
// All register updates commit atomically; combinational reads never see the
// same edge's pending values.
//
func (e *Engine) Tick(in Inputs) Outputs {
	if in.Reset {
		e.reset()
		return e.Observe()
	}
	out := e.Observe()

	switch e.state {
	case Idle:
		e.a, e.b = 0, 0
		e.cnt = 0
		if in.Start {
			e.state = CollectOperands
		}

	case CollectOperands:
		// Holds forever if Enable is withheld. Accepted liveness gap:
		// there is no timeout, only reset.
		if in.Enable {
			off := e.cnt * e.k
			e.a |= (in.A & e.lmask) << off
			e.b |= (in.B & e.lmask) << off
			if e.cnt == e.lanes-1 {
				e.state = S0
			}
			e.cnt = (e.cnt + 1) & (e.lanes - 1)
		}

	case EmitResult:
		// The counter advances every tick, with no enable gating.
		if e.cnt == e.lanes-1 {
			e.state = Idle
		}
		e.cnt = (e.cnt + 1) & (e.lanes - 1)

	default:
		// Compute states latch the *current* state's transform, even on
		// the tick that leaves the ring.
		e.acc = e.apply(e.state, e.a, e.b, e.acc)
		e.state = NextState(e.state, in.Opcode)
	}
	return out
}

// Observe returns the combinational outputs for the current register values
// without advancing the clock.
//
func (e *Engine) Observe() Outputs {
	o := Outputs{Code: e.state.Code()}
	if e.state == EmitResult {
		o.Valid = true
		o.Out = (e.acc >> (e.cnt * e.k)) & e.lmask
	}
	return o
}

// Transform evaluates the transform bank function of compute state s on
// (a, b, prev) without touching the register file. It panics if s is not a
// compute state.
//
func (e *Engine) Transform(s State, a, b, prev uint64) uint64 {
	return e.apply(s, a&e.mask, b&e.mask, prev&e.mask)
}

// Register file probes.

// State returns the current controller state.
func (e *Engine) State() State { return e.state }

// Accumulator returns the W-bit previous-result register.
func (e *Engine) Accumulator() uint64 { return e.acc }

// OperandA returns the W-bit operand register A.
func (e *Engine) OperandA() uint64 { return e.a }

// OperandB returns the W-bit operand register B.
func (e *Engine) OperandB() uint64 { return e.b }

// Counter returns the load/emit lane counter.
func (e *Engine) Counter() uint { return e.cnt }

// Lanes returns the lane count W/K.
func (e *Engine) Lanes() uint { return e.lanes }

// LaneWidth returns the lane width K in bits.
func (e *Engine) LaneWidth() uint { return e.k }

// Width returns the wide register width W in bits.
func (e *Engine) Width() uint { return e.w }
