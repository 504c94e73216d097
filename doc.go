/*
Package gatesim is a gate-level functional simulator for small digital
circuits built from a fixed catalog of 74-series ICs: quad 2-input
AND/OR/NAND/NOR/XOR gates, a hex inverter, and a dual positive-edge D
flip-flop with asynchronous preset/clear.

It builds an in-memory circuit from a pre-parsed netlist, applies a
sequence of test vectors, propagates values to a fixed point on each
vector, and reports per-vector pass/fail.

The netlist and test-vector file formats, the command-line surface, and
logging are external collaborators; see the internal/netlist,
internal/vectorfile and cmd/gatesim packages. This package is the core:
the ternary signal algebra, the IC behavioral models, the circuit graph
and the propagation engine.
*/
package gatesim
