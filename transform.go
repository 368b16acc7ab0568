// Copyright 2026 The alucore authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package alucore

// bank is the transform bank: eight pure combinational functions of
// (a, b, prev), one per compute state. It carries no state of its own, only
// the width parameters needed to mask results to W bits. The controller
// selects which result to latch into the accumulator.
type bank struct {
	w      uint   // register width in bits
	mask   uint64 // W low bits set
	loMask uint64 // W/2 low bits set
}

func newBank(w uint) bank {
	mask := ^uint64(0) >> (64 - w)
	return bank{w: w, mask: mask, loMask: mask >> (w / 2)}
}

// apply evaluates the transform selected by compute state s. Operands and
// prev must already be masked to W bits.
func (k bank) apply(s State, a, b, prev uint64) uint64 {
	switch s {
	case S0:
		return (a & b) | prev
	case S1:
		return ((a ^ b) + prev) & k.mask
	case S2:
		return absDiff(a, b) ^ prev
	case S3:
		// concatenation: high half from prev, low half from min(a, b)
		return (prev &^ k.loMask) | (umin(a, b) & k.loMask)
	case S4:
		return (umax(a, b) + (prev << 1)) & k.mask
	case S5:
		return k.satAdd(a, b) & prev
	case S6:
		// carry-free average: (a AND b) + ((a XOR b) >> 1)
		return ((a & b) + ((a ^ b) >> 1)) | prev
	case S7:
		return k.rotl1(a) ^ b ^ prev
	}
	panic("not a compute state: " + s.String())
}

// satAdd adds a and b, clamping to all-ones on carry-out of bit W-1.
func (k bank) satAdd(a, b uint64) uint64 {
	sum := a + b
	if sum < a || sum&^k.mask != 0 {
		return k.mask
	}
	return sum
}

// rotl1 rotates a left by one within W bits.
func (k bank) rotl1(a uint64) uint64 {
	return (a<<1 | a>>(k.w-1)) & k.mask
}

func absDiff(a, b uint64) uint64 {
	if a >= b {
		return a - b
	}
	return b - a
}

func umin(a, b uint64) uint64 {
	if a < b {
		return a
	}
	return b
}

func umax(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
