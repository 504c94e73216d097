package netlist

import (
	"strings"

	"github.com/74series/gatesim"
	"github.com/pkg/errors"
)

// ParseKiCad parses the KiCad s-expression netlist dialect (spec §6):
// a (components ...) block of (comp (ref X) ... (value P) ...) entries and
// a (nets ...) block of (net ... (name "S") (node (ref R) (pin N)) ...)
// entries.
//
// Only refs whose value begins with "74" are instantiated as ICs; other
// refs are recorded as external pin sources/sinks ("JIN_*" marks a signal
// as a circuit input, "JOUT_*" as a circuit output) but are not
// instantiated. VCC and GND are always created if not already present.
func ParseKiCad(path string, data []byte) (*gatesim.Circuit, error) {
	root, err := parseSexp(string(data))
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
			return nil, pe
		}
		return nil, err
	}

	c := gatesim.NewCircuit()

	// externalRefs maps a non-IC ref (e.g. "JIN_A") to the external pin
	// role it implies ("in" or "out"), used while walking nets.
	externalRefs := make(map[string]string)

	for _, block := range findAll(root, "components") {
		for _, comp := range block.children("comp") {
			ref, ok := comp.child("ref")
			if !ok {
				return nil, &ParseError{File: path, Line: comp.Line, Msg: "comp missing ref"}
			}
			refName := ref.arg()
			value, ok := comp.child("value")
			if !ok {
				return nil, &ParseError{File: path, Line: comp.Line, Msg: "comp " + refName + " missing value"}
			}
			part := value.arg()
			pkgNode, _ := comp.child("footprint")
			pkg := pkgNode.arg()

			if strings.HasPrefix(part, "74") {
				if err := c.AddComponent(refName, gatesim.PartNumber(part), pkg); err != nil {
					return nil, errors.Wrapf(err, "%s:%d", path, comp.Line)
				}
				continue
			}
			switch {
			case strings.HasPrefix(refName, "JIN_"):
				externalRefs[refName] = "in"
			case strings.HasPrefix(refName, "JOUT_"):
				externalRefs[refName] = "out"
			}
		}
	}

	for _, block := range findAll(root, "nets") {
		for _, net := range block.children("net") {
			nameNode, ok := net.child("name")
			if !ok {
				continue
			}
			signal := nameNode.arg()
			if signal == "" {
				continue
			}
			for _, node := range net.children("node") {
				refNode, ok := node.child("ref")
				if !ok {
					continue
				}
				ref := refNode.arg()
				pinNode, ok := node.child("pin")
				if !ok {
					continue
				}
				pin := pinNode.arg()

				if role, ok := externalRefs[ref]; ok {
					c.CreateSignal(signal, role == "in", role == "out")
					continue
				}
				if c.HasInstance(ref) {
					if err := c.Connect(ref, pin, signal); err != nil {
						return nil, errors.Wrapf(err, "%s:%d", path, node.Line)
					}
				}
			}
		}
	}

	c.CreateSignal("VCC", false, false)
	c.CreateSignal("GND", false, false)

	return c, nil
}
