package gatesim

import "github.com/pkg/errors"

// IC is the uniform behavioral contract every catalog part exposes (spec
// §4.2). The propagation engine drives and samples ICs exclusively through
// this interface; each part enforces its own pin-role table internally.
type IC interface {
	// SetPin stores level at pin. If pin is a declared input and the IC is
	// powered, this triggers a re-evaluation of all output pins. Pin numbers
	// outside 1..14, or not declared for this part, are a programmer error
	// and cause a panic wrapping ErrInvalidPin.
	SetPin(pin int, level LogicLevel)
	// GetPin returns the stored level at pin; unassigned pins read FLOATING.
	GetPin(pin int) LogicLevel
	// SetPower toggles power. Powering on forces VCC/GND and re-evaluates
	// outputs; powering off drives every declared output to FLOATING.
	SetPower(on bool)
	// IsPowered reports the current power state.
	IsPowered() bool
	// PropagationDelay returns the part's constant delay metadata, in ns.
	PropagationDelay() int
	// PartNumber returns the catalog part number of this instance.
	PartNumber() PartNumber
}

// NewIC constructs a fresh, powered-off behavioral model for part. It
// returns ErrUnknownPart if part is not in the catalog.
func NewIC(part PartNumber) (IC, error) {
	entry, err := entryFor(part)
	if err != nil {
		return nil, err
	}
	if part == Part74HC74 {
		return newDFF(part, entry), nil
	}
	return newCombinational(part, entry), nil
}

// invalidPin panics with a wrapped ErrInvalidPin. An invalid pin number is a
// programmer error per spec §4.2, not a recoverable condition.
func invalidPin(part PartNumber, pin int) {
	panic(errors.Wrapf(ErrInvalidPin, "%s pin %d", part, pin))
}

// combinational is the IC model shared by every non-sequential catalog part
// (74HC08/32/00/86/02/04): a fixed set of independent 1- or 2-input gates,
// each a pure function of its input pins, re-evaluated in full whenever an
// input pin changes while powered or power is switched on; switching power
// off floats the outputs without evaluating.
type combinational struct {
	part    PartNumber
	entry   catalogEntry
	pins    [15]LogicLevel
	powered bool
	fn      func(a, b LogicLevel) LogicLevel // nil for 74HC04; evaluate applies Not to 1-input gates
}

func newCombinational(part PartNumber, entry catalogEntry) *combinational {
	c := &combinational{part: part, entry: entry, fn: gateFuncFor(part)}
	for i := range c.pins {
		c.pins[i] = FLOATING
	}
	return c
}

// gateFuncFor returns the two-input ternary function implemented by part's
// gates. 74HC04 gates are single-input, so it returns nil for that part and
// evaluate special-cases NOT instead of routing it through fn.
func gateFuncFor(part PartNumber) func(a, b LogicLevel) LogicLevel {
	switch part {
	case Part74HC08:
		return And
	case Part74HC32:
		return Or
	case Part74HC00:
		return Nand
	case Part74HC86:
		return Xor
	case Part74HC02:
		return Nor
	default:
		return nil
	}
}

func (c *combinational) role(pin int) PinRole {
	if pin < 1 || pin > 14 {
		return roleUnused
	}
	return c.entry.pins[pin]
}

func (c *combinational) SetPin(pin int, level LogicLevel) {
	role := c.role(pin)
	if role == roleUnused {
		invalidPin(c.part, pin)
	}
	c.pins[pin] = level
	if role == roleInput && c.powered {
		c.evaluate()
	}
}

func (c *combinational) GetPin(pin int) LogicLevel {
	if pin < 1 || pin > 14 {
		invalidPin(c.part, pin)
	}
	return c.pins[pin]
}

func (c *combinational) SetPower(on bool) {
	c.powered = on
	if on {
		c.pins[c.entry.vcc] = HIGH
		c.pins[c.entry.gnd] = LOW
		c.evaluate()
	} else {
		for _, g := range c.entry.gates {
			c.pins[g.out] = FLOATING
		}
	}
}

func (c *combinational) IsPowered() bool        { return c.powered }
func (c *combinational) PropagationDelay() int  { return c.entry.delayNS }
func (c *combinational) PartNumber() PartNumber { return c.part }

// evaluate recomputes every output pin from its current inputs. Gates are
// independent; evaluation order does not matter (spec §4.2).
func (c *combinational) evaluate() {
	for _, g := range c.entry.gates {
		if g.in2 == 0 {
			// 74HC04 inverter: single input.
			c.pins[g.out] = Not(c.pins[g.in1])
			continue
		}
		c.pins[g.out] = c.fn(c.pins[g.in1], c.pins[g.in2])
	}
}
