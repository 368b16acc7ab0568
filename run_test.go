// Copyright 2026 The alucore authors.
// Licensed under the MIT license. See license text in the LICENSE file.

package alucore_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/seqlab/alucore"
)

// End-to-end behaviour of one complete run: collect, a steered walk through
// the compute ring, emit, and return to Idle.
var _ = Describe("a full run", func() {
	var (
		e    *alucore.Engine
		a, b uint64
	)

	const laneA, laneB = 0xC, 0xA

	BeforeEach(func() {
		var err error
		e, err = alucore.New(alucore.Config{})
		Expect(err).NotTo(HaveOccurred())

		e.Tick(alucore.Inputs{Reset: true})

		// start pulse arms the load phase on the next tick
		out := e.Tick(alucore.Inputs{Start: true})
		Expect(out.Code).To(Equal(alucore.Idle.Code()))
		Expect(e.State()).To(Equal(alucore.CollectOperands))

		a, b = 0, 0
		for i := uint(0); i < e.Lanes(); i++ {
			e.Tick(alucore.Inputs{Enable: true, A: laneA, B: laneB})
			a |= laneA << (i * e.LaneWidth())
			b |= laneB << (i * e.LaneWidth())
		}
	})

	It("enters S0 the cycle after the last lane", func() {
		Expect(e.State()).To(Equal(alucore.S0))
		Expect(e.OperandA()).To(Equal(a))
		Expect(e.OperandB()).To(Equal(b))
		Expect(e.Counter()).To(BeZero())
	})

	It("walks the ring under opcode steering, threading the accumulator", func() {
		// S0 --3--> S1 --3--> S2 --0--> S1, each tick latching the
		// function of the state it leaves.
		var acc uint64
		for _, step := range []struct {
			from alucore.State
			op   uint8
			to   alucore.State
		}{
			{alucore.S0, 3, alucore.S1},
			{alucore.S1, 3, alucore.S2},
			{alucore.S2, 0, alucore.S1},
		} {
			Expect(e.State()).To(Equal(step.from))
			out := e.Tick(alucore.Inputs{Opcode: step.op})
			Expect(out.Code).To(Equal(step.from.Code()))
			Expect(out.Valid).To(BeFalse())
			Expect(e.State()).To(Equal(step.to))

			acc = e.Transform(step.from, a, b, acc)
			Expect(e.Accumulator()).To(Equal(acc), "after %v", step.from)
		}
	})

	It("reaches EmitResult through S4 and streams the result", func() {
		// S0 --3--> S1 --2--> S5 --0--> S4 --1--> EmitResult
		for _, op := range []uint8{3, 2, 0} {
			e.Tick(alucore.Inputs{Opcode: op})
		}
		Expect(e.State()).To(Equal(alucore.S4))

		e.Tick(alucore.Inputs{Opcode: 1})
		Expect(e.State()).To(Equal(alucore.EmitResult))
		acc := e.Accumulator()

		var result uint64
		for i := uint(0); i < e.Lanes(); i++ {
			out := e.Tick(alucore.Inputs{})
			Expect(out.Valid).To(BeTrue(), "lane %d", i)
			Expect(out.Code).To(Equal(alucore.EmitResult.Code()))
			result |= out.Out << (i * e.LaneWidth())
		}
		Expect(result).To(Equal(acc))
		Expect(e.State()).To(Equal(alucore.Idle))

		// back in Idle the valid flag drops and the lane is forced to zero
		out := e.Tick(alucore.Inputs{})
		Expect(out.Valid).To(BeFalse())
		Expect(out.Out).To(BeZero())
	})
})
