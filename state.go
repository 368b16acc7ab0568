// Copyright 2026 The alucore authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package alucore

// A State is one of the eleven controller states. Exactly one is current at
// any tick. The declaration order doubles as the 4-bit wire encoding exposed
// on the state-code output: S0..S7 = 0..7, Idle = 8, CollectOperands = 9,
// EmitResult = 10.
//
type State uint8

// Controller states.
//
const (
	S0 State = iota // compute: (a AND b) OR prev
	S1              // compute: (a XOR b) + prev
	S2              // compute: |a - b| XOR prev
	S3              // compute: prev high half, min(a, b) low half
	S4              // compute: max(a, b) + (prev << 1)
	S5              // compute: sat(a + b) AND prev
	S6              // compute: avg(a, b) OR prev
	S7              // compute: rotl1(a) XOR b XOR prev

	Idle            // waiting for a start pulse
	CollectOperands // loading operand lanes
	EmitResult      // streaming accumulator lanes out

	numStates
)

var stateNames = [numStates]string{
	"S0", "S1", "S2", "S3", "S4", "S5", "S6", "S7",
	"Idle", "CollectOperands", "EmitResult",
}

func (s State) String() string {
	if s >= numStates {
		return "State(invalid)"
	}
	return stateNames[s]
}

// Code returns the 4-bit numeric encoding of s as driven on the state-code
// output.
//
func (s State) Code() uint8 { return uint8(s) }

// IsCompute reports whether s is one of the eight compute states S0..S7.
//
func (s State) IsCompute() bool { return s <= S7 }

// computeEdges is the opcode-steered part of the transition table, indexed
// by [state][opcode]. Every compute state keeps at least one self-edge and,
// except S0, at least one edge back to a lower-numbered state. S4 is the
// only exit from the ring into EmitResult.
//
// S3 self-loops on both opcode 1 and 3, and S7 on both 2 and 3. These
// duplicate rows are part of the device's observable contract; do not
// "simplify" them.
var computeEdges = [8][4]State{
	S0: {S0, S0, S4, S1},
	S1: {S0, S1, S5, S2},
	S2: {S1, S2, S6, S3},
	S3: {S2, S3, S7, S3},
	S4: {S4, EmitResult, S4, S5},
	S5: {S4, S1, S5, S6},
	S6: {S5, S2, S6, S7},
	S7: {S6, S3, S7, S7},
}

// NextState returns the successor of s for the given opcode. The function is
// pure and total: the opcode is reduced to its low 2 bits, and states whose
// exits do not depend on the opcode (Idle, CollectOperands, EmitResult)
// return their self-edge. The start-pulse and lane-counter conditions that
// leave those states are register-driven and applied by the engine, not by
// the table.
//
func NextState(s State, opcode uint8) State {
	if s.IsCompute() {
		return computeEdges[s][opcode&3]
	}
	return s
}
