// Package core defines the valve primitives shared by every other package:
// two-letter valve names, dense name-keyed tables, valve records, the raw
// tunnel Graph, and the line parser that builds it.
//
// Names and tables:
//
//   - Name is two uppercase ASCII letters. It maps onto an index in
//     [0, MaxName) via Index and back via NameFromIndex.
//   - NameMap[T] is a fixed-capacity table backed by an array of MaxName
//     slots. It has value semantics: assigning a NameMap copies it, which is
//     how search states clone their opened-valve sets.
//   - NameSet is the presence-only NameMap[struct{}].
//
// Input grammar (one record per line, exact whitespace and punctuation):
//
//	Valve AA has flow rate=0; tunnels lead to valves DD, II, BB
//	Valve HH has flow rate=22; tunnel leads to valve GG
//
// Parse rejects any line that does not match the grammar or leaves trailing
// characters, returning a *ParseError that matches ErrMalformedLine.
//
// Errors:
//
//	ErrInvalidName     - a name is not exactly two letters in 'A'..'Z'.
//	ErrMalformedLine   - a record does not match the grammar.
//	ErrDuplicateValve  - two records define the same name.
package core
