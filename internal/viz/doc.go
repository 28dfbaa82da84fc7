// Package viz is the terminal front end of orbitsim.
//
// It is built on Bubble Tea:
//
//   - [App]: scenario menu and custom-input form, then the live view
//   - [Live]: steps a [sim.Loop] once per tick and shows the orbit
//   - [CanvasRenderer]: a [sim.Renderer] drawing onto a braille [Canvas]
//
// # Key Bindings
//
//	1/2/3 - Earth, Test Spacecraft, Custom Input
//	j/k   - Navigate the menu
//	Space - Pause/Resume
//	Q     - Stop the run and quit
package viz
