package gatesim

import (
	"strconv"

	"github.com/pkg/errors"
)

// instance is a concrete occurrence of a catalog part in the circuit. Pin
// assignments store the signal index rather than a reference, sidestepping
// aliasing concerns during the drive/sample phases (spec §9).
type instance struct {
	id    string
	part  PartNumber
	pkg   string
	model IC
	pins  map[int]int // pin number -> signal index
}

// DefaultIterationCap is the propagation engine's fixed-point iteration
// limit (spec §4.5, §9). Circuit.IterationCap defaults to this value.
const DefaultIterationCap = 8

// Circuit is the in-memory circuit graph: named signals, named component
// instances, and the pin assignments between them. The Circuit exclusively
// owns its signals and instances for the lifetime of a loaded circuit
// (spec §9) — nothing else holds a reference into sigs/insts.
type Circuit struct {
	sigs    []Signal
	sigIdx  map[string]int
	insts   []*instance
	instIdx map[string]int

	vccIdx, gndIdx int

	// IterationCap bounds the number of drive/sample passes Propagate will
	// run before giving up (spec §4.5). Zero means DefaultIterationCap.
	IterationCap int
}

// NewCircuit returns an empty circuit graph with the reserved VCC/GND
// signals already created.
func NewCircuit() *Circuit {
	c := &Circuit{
		sigIdx:  make(map[string]int),
		instIdx: make(map[string]int),
	}
	c.vccIdx = c.internSignal("VCC")
	c.gndIdx = c.internSignal("GND")
	c.sigs[c.vccIdx].Level = HIGH
	c.sigs[c.gndIdx].Level = LOW
	return c
}

func (c *Circuit) internSignal(name string) int {
	if idx, ok := c.sigIdx[name]; ok {
		return idx
	}
	idx := len(c.sigs)
	c.sigs = append(c.sigs, Signal{Name: name, Level: FLOATING})
	c.sigIdx[name] = idx
	return idx
}

// CreateSignal declares a signal with the given direction flags. It is
// idempotent on name: the first creation of a given name wins, and later
// calls only ever add direction flags (a signal discovered as an output
// after already being marked an input becomes both, per spec §3).
func (c *Circuit) CreateSignal(name string, isInput, isOutput bool) {
	idx := c.internSignal(name)
	if isInput {
		c.sigs[idx].isInput = true
	}
	if isOutput {
		c.sigs[idx].isOutput = true
	}
}

// AddComponent instantiates part as instance id. Fails with ErrUnknownPart
// if part is not in the catalog, or ErrDuplicateInstance if id is reused.
func (c *Circuit) AddComponent(id string, part PartNumber, pkg string) error {
	if _, ok := c.instIdx[id]; ok {
		return errors.Wrap(ErrDuplicateInstance, id)
	}
	model, err := NewIC(part)
	if err != nil {
		return err
	}
	// ICs are powered by default; spec's power-cycle scenario is an
	// explicit toggle away from this normal operating state.
	model.SetPower(true)
	inst := &instance{id: id, part: part, pkg: pkg, model: model, pins: make(map[int]int)}
	c.instIdx[id] = len(c.insts)
	c.insts = append(c.insts, inst)
	return nil
}

// Connect records that pin pinNum of instance id is bound to signal. The
// pin number is given as text since netlist dialects carry it that way; it
// must parse as an integer in 1..14. The signal is auto-created as internal
// if not already known. Fails with ErrUnknownInstance if id does not exist.
func (c *Circuit) Connect(id string, pinNumberText string, signal string) error {
	iidx, ok := c.instIdx[id]
	if !ok {
		return errors.Wrap(ErrUnknownInstance, id)
	}
	pin, err := strconv.Atoi(pinNumberText)
	if err != nil {
		return errors.Wrapf(ErrInvalidPin, "%s: pin %q is not a number", id, pinNumberText)
	}
	if pin < 1 || pin > 14 {
		return errors.Wrapf(ErrInvalidPin, "%s: pin %d out of range", id, pin)
	}
	sidx := c.internSignal(signal)
	c.insts[iidx].pins[pin] = sidx
	return nil
}

// SetSignal sets the current level of a named signal directly. Used by the
// stimulus runner to apply vector inputs and by tests. Unknown signal names
// are silently created as internal, mirroring Connect's auto-create rule;
// Validate does not check signal names, so a misspelled name is not reported.
func (c *Circuit) SetSignal(name string, level LogicLevel) {
	idx := c.internSignal(name)
	c.sigs[idx].Level = level
}

// GetSignal returns the current level of a named signal, or FLOATING if the
// signal does not exist.
func (c *Circuit) GetSignal(name string) LogicLevel {
	idx, ok := c.sigIdx[name]
	if !ok {
		return FLOATING
	}
	return c.sigs[idx].Level
}

// Signals returns the names of every signal in the graph, in creation order.
func (c *Circuit) Signals() []string {
	names := make([]string, len(c.sigs))
	for i, s := range c.sigs {
		names[i] = s.Name
	}
	return names
}

// SignalDirection returns the classification of a named signal.
func (c *Circuit) SignalDirection(name string) Direction {
	idx, ok := c.sigIdx[name]
	if !ok {
		return DirInternal
	}
	return c.sigs[idx].Direction()
}

// HasInstance reports whether id names a component instance in the circuit.
func (c *Circuit) HasInstance(id string) bool {
	_, ok := c.instIdx[id]
	return ok
}

// Instances returns the ids of every component instance, in creation order.
func (c *Circuit) Instances() []string {
	ids := make([]string, len(c.insts))
	for i, in := range c.insts {
		ids[i] = in.id
	}
	return ids
}

// SetPower toggles the power state of a single instance (spec §4.2, used by
// end-to-end power-cycle scenarios). Fails with ErrUnknownInstance if id
// does not exist.
func (c *Circuit) SetPower(id string, on bool) error {
	iidx, ok := c.instIdx[id]
	if !ok {
		return errors.Wrap(ErrUnknownInstance, id)
	}
	c.setInstancePower(c.insts[iidx], on)
	return nil
}

// SetAllPower toggles the power state of every instance in the circuit.
func (c *Circuit) SetAllPower(on bool) {
	for _, in := range c.insts {
		c.setInstancePower(in, on)
	}
}

// setInstancePower toggles power on in's model and, when powering off, also
// floats the circuit signals bound to in's declared output pins (spec §8
// scenario 6). Propagate's sample phase only ever overwrites a signal from a
// non-FLOATING pin reading, so without this the signal would keep its last
// driven value even though the IC itself has gone floating.
func (c *Circuit) setInstancePower(in *instance, on bool) {
	in.model.SetPower(on)
	if on {
		return
	}
	for pin, sidx := range in.pins {
		if c.isOutputPin(in, pin) {
			c.sigs[sidx].Level = FLOATING
		}
	}
}

// Validate checks that every instance's part number is in the catalog
// (guaranteed already by AddComponent, re-checked here for graphs built by
// other means) and that every assigned pin is in 1..14.
func (c *Circuit) Validate() error {
	for _, in := range c.insts {
		if !isKnownPart(in.part) {
			return errors.Wrap(ErrUnknownPart, in.id+": "+string(in.part))
		}
		for pin := range in.pins {
			if pin < 1 || pin > 14 {
				return errors.Wrapf(ErrInvalidPin, "%s: pin %d out of range", in.id, pin)
			}
		}
	}
	return nil
}

// Reset drives every non-power signal to FLOATING and re-asserts VCC/GND,
// per spec §4.6 (called by the runner between vectors).
func (c *Circuit) Reset() {
	for i := range c.sigs {
		c.sigs[i].Level = FLOATING
	}
	c.sigs[c.vccIdx].Level = HIGH
	c.sigs[c.gndIdx].Level = LOW
}
