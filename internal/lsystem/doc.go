// Package lsystem provides the Lindenmayer-system engine behind lfractal.
//
// The package is organized as a strict pipeline:
//
//   - [Grammar]: mutable registry of symbols, functions, rules, axiom and angle
//   - [Expand]: rewrites the axiom into a [Sequence] under a length cap
//   - [Simulator]: dry run over a sequence that yields its [BoundingBox]
//   - [Renderer]: replays a sequence onto a [Surface], centered on the box
//   - [System]: immutable snapshot of a grammar that runs all of the above
//
// # Example
//
//	g := lsystem.NewGrammar()
//	g.DefineSymbol("F", "draw", "F+F-F")
//	g.DefineTerminal("+", "right")
//	g.DefineTerminal("-", "left")
//	g.SetAxiom("F")
//	g.SetAngle(90)
//	sys, _ := g.Snapshot()
//	res, _ := sys.Draw(ctx, surface, lsystem.DefaultDrawConfig())
//
// # Thread Safety
//
// A [Grammar] is NOT thread-safe and must not be edited while a draw is in
// flight. Take a [System] with [Grammar.Snapshot] and draw from that; a System
// never changes after it is created. Cancel a render through its context.
package lsystem
