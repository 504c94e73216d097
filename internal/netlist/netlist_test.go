package netlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/74series/gatesim/internal/netlist"
)

func TestLoadDispatchesByExtension(t *testing.T) {
	kicad := []byte(`(export (components (comp (ref U1) (value 74HC08) (footprint DIP14))) (nets (net (name "VCC") (node (ref U1) (pin 14)))))`)
	c, err := netlist.Load("board.net", kicad)
	require.NoError(t, err)
	assert.NotNil(t, c)

	legacy := []byte(`{"inputs": [], "outputs": [], "ic_instances": []}`)
	c2, err := netlist.Load("board.txt", legacy)
	require.NoError(t, err)
	assert.NotNil(t, c2)
}

func TestParseErrorFormatting(t *testing.T) {
	withLine := &netlist.ParseError{File: "a.net", Line: 3, Msg: "bad token"}
	assert.Equal(t, "a.net:3: bad token", withLine.Error())

	noLine := &netlist.ParseError{File: "a.net", Msg: "top-level value is not an object"}
	assert.Equal(t, "a.net: top-level value is not an object", noLine.Error())
}
