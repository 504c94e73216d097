// Package netlist parses the two netlist dialects supported by gatesim (spec
// §6) into a *gatesim.Circuit: the KiCad s-expression flavor (.net files)
// and a legacy JSON-like flavor (any other extension). Both parsers are
// hand-rolled scanners, in the same idiom as the teacher repository's
// internal lexer, rather than a generic grammar library — see
// SPEC_FULL.md §6 for why no pack dependency fits this concern.
package netlist

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/74series/gatesim"
)

// ParseError describes a malformed netlist with file and location context
// (spec §7).
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return e.File + ":" + strconv.Itoa(e.Line) + ": " + e.Msg
	}
	return e.File + ": " + e.Msg
}

// Load reads the netlist at path and builds a *gatesim.Circuit. Dialect is
// selected by extension: ".net" is parsed as KiCad s-expression, anything
// else as the legacy JSON-like format (spec §6).
func Load(path string, data []byte) (*gatesim.Circuit, error) {
	if strings.EqualFold(filepath.Ext(path), ".net") {
		return ParseKiCad(path, data)
	}
	return ParseLegacy(path, data)
}
