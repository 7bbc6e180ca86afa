// Package viz is the terminal frontend. It renders the scene onto a braille
// canvas and drives it from a Bubble Tea event loop:
//
//   - [Canvas]: braille sub-pixel grid with per-cell colour and text labels
//   - [Projector]: world to canvas projection through the scene camera
//   - [Model]: the Bubble Tea model, with mouse picking and speed sliders
//   - dark and light themes matching the window frontend
//
// # Key Bindings
//
//	Space - Pause/Resume orbits
//	T     - Toggle light/dark theme
//	R     - Fly back to the home view
//	Enter - Fly to the selected planet
//	←/→   - Adjust the selected planet's speed
//	?     - Show help
//
// Mouse tracking must be enabled with all-motion reporting so hover works
// without a button held.
package viz
