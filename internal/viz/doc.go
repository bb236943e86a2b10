// Package viz renders simulations in the terminal.
//
// Drawing happens on a [Canvas] of braille cells, each holding a 2x4 grid
// of dots. [Model] is a Bubble Tea program that steps a simulation every
// frame and draws the bodies with short trails next to an energy plot.
// [MoonModel] animates lunar phases on the same canvas.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	+/-   - Double/halve steps per frame
//	R     - Restart from the initial bodies
//	Q     - Quit
package viz
