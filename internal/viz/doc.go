// Package viz renders fractals in the terminal.
//
//   - [Canvas]: braille dot canvas; [Canvas.Plot] fits recorded turtle
//     segments to it
//   - [Viewer]: bubbletea model that redraws a fractal as its depth changes
//   - lipgloss styles and color themes
//
// # Key Bindings
//
//	+/-  Change the number of rewriting rounds
//	C    Cancel the draw in progress
//	R    Redraw
//	T    Cycle color themes
//	?    Show help
//	Q    Quit
package viz
