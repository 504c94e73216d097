// Package vectorfile reads the line-oriented test-vector file format (spec
// §6): blank lines and "#…" comments are ignored, a "[description]" line
// opens a new vector, and subsequent "signal = value" lines add assignments
// to it, classified as input or expected-output by consulting the netlist's
// declared signal direction (falling back to a documented name heuristic
// when the direction is unknown).
package vectorfile

import (
	"bufio"
	"strconv"
	"strings"

	"github.com/74series/gatesim"
)

// ParseError describes a malformed vector file with line context (spec §7).
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return e.File + ":" + strconv.Itoa(e.Line) + ": " + e.Msg
}

// DirectionOf reports a signal's direction, used to classify assignments.
// It is satisfied by *gatesim.Circuit.
type DirectionOf interface {
	SignalDirection(name string) gatesim.Direction
}

// Load reads a test-vector file, classifying each assignment as input or
// expected-output via dir (normally a loaded *gatesim.Circuit). When dir
// reports DirInternal (signal direction unknown to the netlist), the
// heuristic in classify is used; assignments that cannot be classified
// either way are ignored (spec §6).
func Load(path string, data []byte, dir DirectionOf) ([]gatesim.TestVector, error) {
	var vectors []gatesim.TestVector
	var cur *gatesim.TestVector

	sc := bufio.NewScanner(strings.NewReader(string(data)))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			vectors = appendCur(vectors, cur)
			v := gatesim.TestVector{
				Description: strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"),
				Inputs:      make(map[string]gatesim.LogicLevel),
				Expected:    make(map[string]gatesim.LogicLevel),
			}
			cur = &v
			continue
		}
		eq := strings.IndexByte(line, '=')
		if eq < 0 {
			return nil, &ParseError{File: path, Line: lineNo, Msg: "expected 'signal = value'"}
		}
		name := strings.TrimSpace(line[:eq])
		valText := strings.TrimSpace(line[eq+1:])
		level := parseValue(valText)

		if cur == nil {
			v := gatesim.TestVector{Inputs: make(map[string]gatesim.LogicLevel), Expected: make(map[string]gatesim.LogicLevel)}
			cur = &v
		}

		switch classify(name, dir) {
		case gatesim.DirInput:
			cur.Inputs[name] = level
		case gatesim.DirOutput:
			cur.Expected[name] = level
		default:
			// unclassifiable assignment: ignored per spec §6.
		}
	}
	vectors = appendCur(vectors, cur)

	if err := sc.Err(); err != nil {
		return nil, &ParseError{File: path, Line: lineNo, Msg: err.Error()}
	}
	return vectors, nil
}

func appendCur(vectors []gatesim.TestVector, cur *gatesim.TestVector) []gatesim.TestVector {
	if cur == nil {
		return vectors
	}
	return append(vectors, *cur)
}

// parseValue recognizes 0/LOW/low -> LOW, 1/HIGH/high -> HIGH, anything
// else -> FLOATING (spec §6).
func parseValue(s string) gatesim.LogicLevel {
	switch s {
	case "0", "LOW", "low":
		return gatesim.LOW
	case "1", "HIGH", "high":
		return gatesim.HIGH
	default:
		return gatesim.FLOATING
	}
}

// classify determines whether name is an input or an expected-output
// assignment. It first consults the netlist's declared direction; if that
// comes back DirInternal (meaning the signal's direction is unknown, e.g.
// the name never appeared in the netlist), it falls back to the documented
// name heuristic (spec §6).
func classify(name string, dir DirectionOf) gatesim.Direction {
	if dir != nil {
		if d := dir.SignalDirection(name); d != gatesim.DirInternal {
			return d
		}
	}
	return heuristicDirection(name)
}

// heuristicDirection implements the documented fallback: names containing
// "_in", or equal to "a", "b", "cin", "sel", or starting with "a_"/"b_" are
// inputs; "cout", "sum", "y", "out", names ending in "_out"/"_sel", or names
// starting with "sum_" are outputs. Anything else is unclassifiable
// (DirInternal).
func heuristicDirection(name string) gatesim.Direction {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "_in"),
		lower == "a", lower == "b", lower == "cin", lower == "sel",
		strings.HasPrefix(lower, "a_"), strings.HasPrefix(lower, "b_"):
		return gatesim.DirInput
	case lower == "cout", lower == "sum", lower == "y", lower == "out",
		strings.HasSuffix(lower, "_out"), strings.HasSuffix(lower, "_sel"),
		strings.HasPrefix(lower, "sum_"):
		return gatesim.DirOutput
	default:
		return gatesim.DirInternal
	}
}
