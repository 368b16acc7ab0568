// Copyright 2026 The alucore authors.
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package alucore is a cycle-accurate software model of a small FSM-driven
serial ALU datapath.

The engine owns a fixed register file (state register, two wide operand
registers, an accumulator and a lane counter) and advances it once per call
to Tick. A run collects two W-bit operands K bits at a time, walks an
opcode-steered ring of eight compute states that thread a result through the
accumulator, and finally streams the accumulator back out in the same K-bit
lanes.

The model is single-threaded and fully deterministic: the same sequence of
Inputs always yields the same sequence of Outputs and the same register
trace. There is no I/O, no allocation after construction and no error path
at run time; the only way to abort an in-flight sequence is the reset input.
*/
package alucore
