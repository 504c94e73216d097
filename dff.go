package gatesim

// flopPins is the static pin layout of one half of a 74HC74 (spec §3).
type flopPins struct {
	clrn, d, clk, pren, q, qn int
}

var dffFlops = [2]flopPins{
	{clrn: 1, d: 2, clk: 3, pren: 4, q: 5, qn: 6},
	{clrn: 13, d: 12, clk: 11, pren: 10, q: 9, qn: 8},
}

// flopState is the internal sequential state of one flop: the stored Q
// level and the remembered previous CLK level used for edge detection
// (spec §4.3).
type flopState struct {
	q       LogicLevel
	prevClk LogicLevel
}

// dff74HC74 is the behavioral model for the dual positive-edge D flip-flop.
// It is the only stateful catalog part.
type dff74HC74 struct {
	part    PartNumber
	entry   catalogEntry
	pins    [15]LogicLevel
	powered bool
	flops   [2]flopState
}

func newDFF(part PartNumber, entry catalogEntry) *dff74HC74 {
	d := &dff74HC74{part: part, entry: entry}
	for i := range d.pins {
		d.pins[i] = FLOATING
	}
	for i := range d.flops {
		d.flops[i] = flopState{q: LOW, prevClk: LOW}
	}
	return d
}

func (d *dff74HC74) role(pin int) PinRole {
	if pin < 1 || pin > 14 {
		return roleUnused
	}
	return d.entry.pins[pin]
}

func (d *dff74HC74) SetPin(pin int, level LogicLevel) {
	role := d.role(pin)
	if role == roleUnused {
		invalidPin(d.part, pin)
	}
	d.pins[pin] = level
	if role == roleInput && d.powered {
		d.evaluate()
	}
}

func (d *dff74HC74) GetPin(pin int) LogicLevel {
	if pin < 1 || pin > 14 {
		invalidPin(d.part, pin)
	}
	return d.pins[pin]
}

func (d *dff74HC74) SetPower(on bool) {
	d.powered = on
	if on {
		d.pins[d.entry.vcc] = HIGH
		d.pins[d.entry.gnd] = LOW
		d.evaluate()
	} else {
		for _, fp := range dffFlops {
			d.pins[fp.q] = FLOATING
			d.pins[fp.qn] = FLOATING
		}
	}
}

func (d *dff74HC74) IsPowered() bool        { return d.powered }
func (d *dff74HC74) PropagationDelay() int  { return d.entry.delayNS }
func (d *dff74HC74) PartNumber() PartNumber { return d.part }

// pinOrDefault reads a pin that defaults to HIGH when unassigned (PRĒ/CLR̄
// are active-low asynchronous inputs; leaving them unassigned must not
// spuriously assert them). FLOATING here is treated as "not connected",
// which for these two control lines means "deasserted".
func (d *dff74HC74) pinOrDefault(pin int) LogicLevel {
	if d.pins[pin] == FLOATING {
		return HIGH
	}
	return d.pins[pin]
}

// evaluate runs the per-flop evaluation order from spec §4.3 for both
// flops, independently.
func (d *dff74HC74) evaluate() {
	for i, fp := range dffFlops {
		st := &d.flops[i]

		pren := d.pinOrDefault(fp.pren)
		clrn := d.pinOrDefault(fp.clrn)
		clk := d.pins[fp.clk]

		switch {
		case pren == LOW && clrn == HIGH:
			st.q = HIGH
		case clrn == LOW && pren == HIGH:
			st.q = LOW
		case pren == LOW && clrn == LOW:
			// Both asserted: electrically undefined. Baseline policy is
			// "neither dominates" — Q unchanged (spec §4.3, §9).
		default:
			// Asynchronous inputs deasserted: normal clocked behavior.
			if st.prevClk == LOW && clk == HIGH {
				dval := d.pins[fp.d]
				if dval != FLOATING {
					st.q = dval
				}
			}
		}

		d.pins[fp.q] = st.q
		d.pins[fp.qn] = Not(st.q)

		// Remembered CLK always tracks the current read, even FLOATING (spec
		// §4.3 step 4): a glitch through FLOATING is not treated as an edge.
		st.prevClk = clk
	}
}
