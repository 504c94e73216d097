package gatesim

// Propagate resolves the combinational portion of the circuit to a fixed
// point (spec §4.5). It repeats up to IterationCap drive/sample passes:
//
//  1. snapshot every signal's level.
//  2. drive phase: for every instance, for every assigned pin that is not a
//     declared output pin and not a power pin, push the bound signal's
//     level into the IC via SetPin.
//  3. sample phase: for every instance, for every assigned output pin, pull
//     the IC's pin level back onto the bound signal if it is not FLOATING.
//  4. stop if no signal changed level during the pass.
//
// Drive precedes sample for the whole circuit within a pass; this is what
// lets a single call observe a 74HC74 clock edge that transitioned since
// the previous call (spec §4.5).
func (c *Circuit) Propagate() {
	limit := c.IterationCap
	if limit <= 0 {
		limit = DefaultIterationCap
	}

	for pass := 0; pass < limit; pass++ {
		before := c.snapshot()

		for _, in := range c.insts {
			var clockPins []int
			for pin, sidx := range in.pins {
				if c.isOutputPin(in, pin) || c.isPowerPin(in, pin) {
					continue
				}
				if c.isClockPin(in, pin) {
					clockPins = append(clockPins, pin)
					continue
				}
				in.model.SetPin(pin, c.sigs[sidx].Level)
			}
			// Clock pins are driven last so an edge is always evaluated against
			// every other pin's final value for this pass, not a value that
			// happens to be driven later in map iteration order.
			for _, pin := range clockPins {
				in.model.SetPin(pin, c.sigs[in.pins[pin]].Level)
			}
		}

		for _, in := range c.insts {
			for pin, sidx := range in.pins {
				if !c.isOutputPin(in, pin) {
					continue
				}
				level := in.model.GetPin(pin)
				if level != FLOATING {
					c.sigs[sidx].Level = level
				}
			}
		}

		if c.unchanged(before) {
			return
		}
	}
}

func (c *Circuit) isOutputPin(in *instance, pin int) bool {
	entry, ok := catalog[in.part]
	if !ok {
		return false
	}
	return entry.pins[pin] == roleOutput
}

func (c *Circuit) isPowerPin(in *instance, pin int) bool {
	entry, ok := catalog[in.part]
	if !ok {
		return false
	}
	return entry.pins[pin] == rolePower
}

func (c *Circuit) isClockPin(in *instance, pin int) bool {
	entry, ok := catalog[in.part]
	if !ok {
		return false
	}
	for _, p := range entry.clockPins {
		if p == pin {
			return true
		}
	}
	return false
}

func (c *Circuit) snapshot() []LogicLevel {
	s := make([]LogicLevel, len(c.sigs))
	for i, sig := range c.sigs {
		s[i] = sig.Level
	}
	return s
}

func (c *Circuit) unchanged(before []LogicLevel) bool {
	for i, sig := range c.sigs {
		if sig.Level != before[i] {
			return false
		}
	}
	return true
}
