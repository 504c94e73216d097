package gatesim

import "github.com/pkg/errors"

// PartNumber identifies a catalog IC.
type PartNumber string

// The fixed catalog of supported 74-series parts.
const (
	Part74HC08 PartNumber = "74HC08" // quad AND
	Part74HC32 PartNumber = "74HC32" // quad OR
	Part74HC00 PartNumber = "74HC00" // quad NAND
	Part74HC86 PartNumber = "74HC86" // quad XOR
	Part74HC02 PartNumber = "74HC02" // quad NOR
	Part74HC04 PartNumber = "74HC04" // hex NOT
	Part74HC74 PartNumber = "74HC74" // dual positive-edge D flip-flop
)

// PinRole classifies a pin number on a catalog part.
type PinRole int

const (
	roleUnused PinRole = iota
	roleInput
	roleOutput
	rolePower // VCC or GND
)

// pinTable maps every pin 1..14 of a part to its role. Unassigned indices
// (roleUnused) are not part of the part's declared interface.
type pinTable [15]PinRole // index 0 unused, pins are 1..14

// gateSpec describes one 2-input (or 1-input for NOT) function block wired
// to a pair of input pins and one output pin within a quad/hex gate part.
type gateSpec struct {
	in1, in2 int // in2 == 0 for a 1-input (NOT) gate
	out      int
}

// catalogEntry is the static, per-part metadata consulted by NewIC and by
// the propagation engine.
type catalogEntry struct {
	pins      pinTable
	gates     []gateSpec // empty for the 74HC74, which has bespoke logic
	vcc, gnd  int
	delayNS   int
	clockPins []int // pins the propagation engine must drive last within a pass
}

var catalog = map[PartNumber]catalogEntry{
	Part74HC08: quadGateEntry(8),
	Part74HC32: quadGateEntry(8),
	Part74HC00: quadGateEntry(8),
	Part74HC86: quadGateEntry(8),
	Part74HC02: quadNorGateEntry(8),
	Part74HC04: hexInverterEntry(8),
	Part74HC74: dffEntry(15),
}

// quadGateEntry builds the pin table shared by 74HC08/32/00/86: outputs on
// 3,6,8,11, inputs on 1,2,4,5,9,10,12,13, VCC=14, GND=7.
func quadGateEntry(delayNS int) catalogEntry {
	e := catalogEntry{vcc: 14, gnd: 7, delayNS: delayNS}
	outs := [4]int{3, 6, 8, 11}
	ins := [4][2]int{{1, 2}, {4, 5}, {9, 10}, {12, 13}}
	for i, o := range outs {
		e.pins[o] = roleOutput
		e.pins[ins[i][0]] = roleInput
		e.pins[ins[i][1]] = roleInput
		e.gates = append(e.gates, gateSpec{in1: ins[i][0], in2: ins[i][1], out: o})
	}
	e.pins[e.vcc] = rolePower
	e.pins[e.gnd] = rolePower
	return e
}

// quadNorGateEntry builds the 74HC02 pin table: outputs on 1,4,10,13, inputs
// on 2,3,5,6,8,9,11,12, VCC=14, GND=7.
func quadNorGateEntry(delayNS int) catalogEntry {
	e := catalogEntry{vcc: 14, gnd: 7, delayNS: delayNS}
	outs := [4]int{1, 4, 10, 13}
	ins := [4][2]int{{2, 3}, {5, 6}, {8, 9}, {11, 12}}
	for i, o := range outs {
		e.pins[o] = roleOutput
		e.pins[ins[i][0]] = roleInput
		e.pins[ins[i][1]] = roleInput
		e.gates = append(e.gates, gateSpec{in1: ins[i][0], in2: ins[i][1], out: o})
	}
	e.pins[e.vcc] = rolePower
	e.pins[e.gnd] = rolePower
	return e
}

// hexInverterEntry builds the 74HC04 pin table: outputs on 2,4,6,8,10,12,
// inputs on 1,3,5,9,11,13, VCC=14, GND=7.
func hexInverterEntry(delayNS int) catalogEntry {
	e := catalogEntry{vcc: 14, gnd: 7, delayNS: delayNS}
	invIn := [6]int{1, 3, 5, 9, 11, 13}
	invOut := [6]int{2, 4, 6, 8, 10, 12}
	for i := range invIn {
		e.pins[invIn[i]] = roleInput
		e.pins[invOut[i]] = roleOutput
		e.gates = append(e.gates, gateSpec{in1: invIn[i], out: invOut[i]})
	}
	e.pins[e.vcc] = rolePower
	e.pins[e.gnd] = rolePower
	return e
}

// dffEntry builds the 74HC74 pin table. Roles only; sequential behavior
// lives in dff.go.
func dffEntry(delayNS int) catalogEntry {
	e := catalogEntry{vcc: 14, gnd: 7, delayNS: delayNS}
	// flop 1: CLRn=1, D=2, CLK=3, PREn=4, Q=5, Qn=6
	// flop 2: Qn=8, Q=9, PREn=10, CLK=11, D=12, CLRn=13
	for _, p := range []int{1, 2, 3, 4, 10, 11, 12, 13} {
		e.pins[p] = roleInput
	}
	for _, p := range []int{5, 6, 8, 9} {
		e.pins[p] = roleOutput
	}
	e.pins[e.vcc] = rolePower
	e.pins[e.gnd] = rolePower
	// CLK (pins 3 and 11) must be the last pins the propagation engine
	// drives within a pass: the edge check reads D at the moment CLK is
	// applied, so every other driven pin has to already hold its new
	// value first.
	e.clockPins = []int{3, 11}
	return e
}

// isKnownPart reports whether p is in the catalog.
func isKnownPart(p PartNumber) bool {
	_, ok := catalog[p]
	return ok
}

// entryFor looks up a part's catalog entry, wrapping ErrUnknownPart with the
// offending part number when absent.
func entryFor(p PartNumber) (catalogEntry, error) {
	e, ok := catalog[p]
	if !ok {
		return catalogEntry{}, errors.Wrap(ErrUnknownPart, string(p))
	}
	return e, nil
}
