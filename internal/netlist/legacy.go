package netlist

import (
	"strings"

	"github.com/74series/gatesim"
	"github.com/pkg/errors"
)

// ParseLegacy parses the legacy JSON-like netlist dialect (spec §6, §9): a
// flat format recognizing the keys "module_name", "inputs" (list of
// {"name": ...}), "outputs" (same), and "ic_instances" (list of
// {"instance_id": ..., "part_number": ..., "package": ..., "pin_assignments":
// {pin: signal, ...}}).
//
// Parsing is a small recursive-descent scanner, tolerant of whitespace and
// of unquoted identifiers, rather than a strict JSON parser — the format is
// JSON-*like*, not valid JSON, so encoding/json cannot be used directly. No
// nested structure beyond the keys above is recognized; anything else is
// ignored rather than rejected (spec §9: malformed/unrecognized input is
// accepted silently by design).
func ParseLegacy(path string, data []byte) (*gatesim.Circuit, error) {
	p := &legacyParser{src: string(data), line: 1}
	val, err := p.parseValue()
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.File = path
			return nil, pe
		}
		return nil, err
	}

	root, ok := val.(map[string]interface{})
	if !ok {
		return nil, &ParseError{File: path, Msg: "top-level value is not an object"}
	}

	c := gatesim.NewCircuit()

	for _, name := range namesOf(root["inputs"]) {
		c.CreateSignal(name, true, false)
	}
	for _, name := range namesOf(root["outputs"]) {
		c.CreateSignal(name, false, true)
	}

	instances, _ := root["ic_instances"].([]interface{})
	for _, raw := range instances {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		id, _ := obj["instance_id"].(string)
		part, _ := obj["part_number"].(string)
		pkg, _ := obj["package"].(string)
		if id == "" || part == "" {
			continue
		}
		if err := c.AddComponent(id, gatesim.PartNumber(part), pkg); err != nil {
			return nil, errors.Wrapf(err, "%s: instance %s", path, id)
		}
		assignments, _ := obj["pin_assignments"].(map[string]interface{})
		for pinText, sigRaw := range assignments {
			sig, _ := sigRaw.(string)
			if sig == "" {
				continue
			}
			if err := c.Connect(id, pinText, sig); err != nil {
				return nil, errors.Wrapf(err, "%s: instance %s", path, id)
			}
		}
	}

	c.CreateSignal("VCC", false, false)
	c.CreateSignal("GND", false, false)

	return c, nil
}

// namesOf extracts the "name" field from a list of {"name": ...} objects.
func namesOf(v interface{}) []string {
	list, _ := v.([]interface{})
	var out []string
	for _, raw := range list {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if name, ok := obj["name"].(string); ok && name != "" {
			out = append(out, name)
		}
	}
	return out
}

// legacyParser is a tolerant recursive-descent scanner for the legacy
// dialect: objects, arrays, quoted strings, and bare identifiers/numbers as
// scalar values, whitespace and commas ignored between elements.
type legacyParser struct {
	src  string
	pos  int
	line int
}

func (p *legacyParser) skipSpace() {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case c == '\n':
			p.line++
			p.pos++
		case c == ' ' || c == '\t' || c == '\r' || c == ',':
			p.pos++
		default:
			return
		}
	}
}

func (p *legacyParser) parseValue() (interface{}, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, &ParseError{Line: p.line, Msg: "unexpected end of input"}
	}
	switch p.src[p.pos] {
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case '"':
		return p.parseString()
	default:
		return p.parseScalar(), nil
	}
}

func (p *legacyParser) parseObject() (map[string]interface{}, error) {
	obj := make(map[string]interface{})
	p.pos++ // consume '{'
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, &ParseError{Line: p.line, Msg: "unterminated object"}
		}
		if p.src[p.pos] == '}' {
			p.pos++
			return obj, nil
		}
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ':' {
			p.pos++
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		obj[key] = val
	}
}

func (p *legacyParser) parseKey() (string, error) {
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == '"' {
		s, err := p.parseString()
		return s, err
	}
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != ':' {
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos]), nil
}

func (p *legacyParser) parseArray() ([]interface{}, error) {
	var arr []interface{}
	p.pos++ // consume '['
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, &ParseError{Line: p.line, Msg: "unterminated array"}
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
}

func (p *legacyParser) parseString() (string, error) {
	line := p.line
	p.pos++ // consume opening quote
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		if p.src[p.pos] == '\\' {
			p.pos++
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", &ParseError{Line: line, Msg: "unterminated string"}
	}
	s := p.src[start:p.pos]
	p.pos++ // consume closing quote
	return s, nil
}

// parseScalar reads an unquoted value token up to the next structural
// character and returns it as a string (e.g. module_name: half_adder).
// Unquoted object keys, including bare pin numbers, are read by parseKey;
// the legacy dialect has no recognized boolean or numeric value, and pin
// numbers are converted by Circuit.Connect with strconv.
func (p *legacyParser) parseScalar() string {
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ',', '}', ']', '\n', '\r':
			return strings.TrimSpace(p.src[start:p.pos])
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:p.pos])
}
