package gatesim_test

import (
	"testing"

	gs "github.com/74series/gatesim"
)

func newPoweredDFF(t *testing.T) gs.IC {
	t.Helper()
	ic, err := gs.NewIC(gs.Part74HC74)
	if err != nil {
		t.Fatal(err)
	}
	ic.SetPower(true)
	return ic
}

// setFlop1 drives D, CLK, PRĒ, CLR̄ on the first flop (pins 2,3,4,1).
func setFlop1(ic gs.IC, d, clk, pren, clrn gs.LogicLevel) {
	ic.SetPin(4, pren)
	ic.SetPin(1, clrn)
	ic.SetPin(2, d)
	ic.SetPin(3, clk)
}

func TestDFFRisingEdgeCapturesD(t *testing.T) {
	ic := newPoweredDFF(t)
	setFlop1(ic, gs.LOW, gs.LOW, gs.HIGH, gs.HIGH)
	if got := ic.GetPin(5); got != gs.LOW {
		t.Fatalf("initial Q = %v, want LOW", got)
	}

	for _, d := range []gs.LogicLevel{gs.LOW, gs.HIGH} {
		// fall back to LOW first so the next SetPin(HIGH) is a rising edge
		setFlop1(ic, d, gs.LOW, gs.HIGH, gs.HIGH)
		setFlop1(ic, d, gs.HIGH, gs.HIGH, gs.HIGH)
		if got := ic.GetPin(5); got != d {
			t.Fatalf("Q after edge with D=%v = %v, want %v", d, got, d)
		}
		if got := ic.GetPin(6); got != gs.Not(d) {
			t.Fatalf("Qn after edge with D=%v = %v, want %v", d, got, gs.Not(d))
		}
	}
}

func TestDFFNoNewEdgeHoldsQ(t *testing.T) {
	ic := newPoweredDFF(t)
	setFlop1(ic, gs.HIGH, gs.LOW, gs.HIGH, gs.HIGH)
	setFlop1(ic, gs.HIGH, gs.HIGH, gs.HIGH, gs.HIGH)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("Q after edge = %v, want HIGH", got)
	}
	// D changes to LOW but CLK stays HIGH: no new edge, Q must not change.
	ic.SetPin(2, gs.LOW)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("Q with no new edge = %v, want HIGH (unchanged)", got)
	}
}

func TestDFFFloatingDOnEdgeLeavesQUnchanged(t *testing.T) {
	ic := newPoweredDFF(t)
	setFlop1(ic, gs.HIGH, gs.LOW, gs.HIGH, gs.HIGH)
	setFlop1(ic, gs.HIGH, gs.HIGH, gs.HIGH, gs.HIGH)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("setup Q = %v, want HIGH", got)
	}
	setFlop1(ic, gs.FLOATING, gs.LOW, gs.HIGH, gs.HIGH)
	setFlop1(ic, gs.FLOATING, gs.HIGH, gs.HIGH, gs.HIGH)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("Q after FLOATING-D edge = %v, want HIGH (unchanged)", got)
	}
}

func TestDFFAsyncPresetDominates(t *testing.T) {
	ic := newPoweredDFF(t)
	setFlop1(ic, gs.LOW, gs.LOW, gs.HIGH, gs.HIGH)
	ic.SetPin(4, gs.LOW) // PRĒ asserted
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("Q with PREn asserted = %v, want HIGH", got)
	}
	if got := ic.GetPin(6); got != gs.LOW {
		t.Fatalf("Qn with PREn asserted = %v, want LOW", got)
	}
	// clocking while PREn stays asserted must not change Q.
	ic.SetPin(3, gs.HIGH)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("Q after clocking under PREn = %v, want HIGH", got)
	}
}

func TestDFFAsyncClearDominates(t *testing.T) {
	ic := newPoweredDFF(t)
	setFlop1(ic, gs.HIGH, gs.LOW, gs.HIGH, gs.HIGH)
	setFlop1(ic, gs.HIGH, gs.HIGH, gs.HIGH, gs.HIGH)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("setup Q = %v, want HIGH", got)
	}
	// D=1, CLK=1, PRE=1, CLRn=0: clear dominates regardless of prior state.
	ic.SetPin(1, gs.LOW)
	if got := ic.GetPin(5); got != gs.LOW {
		t.Fatalf("Q with CLRn asserted = %v, want LOW", got)
	}
}

func TestDFFBothAsyncAssertedLeavesQUnchanged(t *testing.T) {
	ic := newPoweredDFF(t)
	setFlop1(ic, gs.HIGH, gs.LOW, gs.HIGH, gs.HIGH)
	setFlop1(ic, gs.HIGH, gs.HIGH, gs.HIGH, gs.HIGH)
	before := ic.GetPin(5)
	ic.SetPin(4, gs.LOW) // PREn asserted
	ic.SetPin(1, gs.LOW) // CLRn also asserted: baseline policy is "unchanged"
	if got := ic.GetPin(5); got != before {
		t.Fatalf("Q with both async asserted = %v, want unchanged %v", got, before)
	}
}

func TestDFFUnassignedAsyncInputsDefaultHigh(t *testing.T) {
	ic, err := gs.NewIC(gs.Part74HC74)
	if err != nil {
		t.Fatal(err)
	}
	ic.SetPower(true)
	// PREn/CLRn never driven: should default HIGH, flop free-running.
	ic.SetPin(3, gs.LOW)
	ic.SetPin(2, gs.HIGH)
	ic.SetPin(3, gs.HIGH)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("Q with unassigned PREn/CLRn = %v, want HIGH", got)
	}
}

func TestDFFQnComplementsQ(t *testing.T) {
	ic := newPoweredDFF(t)
	for _, d := range []gs.LogicLevel{gs.LOW, gs.HIGH, gs.LOW, gs.HIGH} {
		setFlop1(ic, d, gs.LOW, gs.HIGH, gs.HIGH)
		setFlop1(ic, d, gs.HIGH, gs.HIGH, gs.HIGH)
		q, qn := ic.GetPin(5), ic.GetPin(6)
		if qn != gs.Not(q) {
			t.Fatalf("Qn = %v, want complement of Q = %v", qn, q)
		}
	}
}

func TestDFFPowerOffFloatsOutputsPreservesState(t *testing.T) {
	ic := newPoweredDFF(t)
	setFlop1(ic, gs.HIGH, gs.LOW, gs.HIGH, gs.HIGH)
	setFlop1(ic, gs.HIGH, gs.HIGH, gs.HIGH, gs.HIGH)
	ic.SetPower(false)
	if got := ic.GetPin(5); got != gs.FLOATING {
		t.Fatalf("Q pin while powered off = %v, want FLOATING", got)
	}
	ic.SetPower(true)
	if got := ic.GetPin(5); got != gs.HIGH {
		t.Fatalf("Q pin restored after power-on = %v, want HIGH (preserved)", got)
	}
}

func TestDFFSecondFlopIndependent(t *testing.T) {
	ic := newPoweredDFF(t)
	// flop 2 pins: CLRn=13, D=12, CLK=11, PREn=10, Q=9, Qn=8
	ic.SetPin(10, gs.HIGH)
	ic.SetPin(13, gs.HIGH)
	ic.SetPin(12, gs.HIGH)
	ic.SetPin(11, gs.LOW)
	ic.SetPin(11, gs.HIGH)
	if got := ic.GetPin(9); got != gs.HIGH {
		t.Fatalf("flop2 Q = %v, want HIGH", got)
	}
	// flop 1 should be untouched (never driven, stays at power-on default LOW).
	if got := ic.GetPin(5); got != gs.LOW {
		t.Fatalf("flop1 Q = %v, want LOW (untouched)", got)
	}
}
