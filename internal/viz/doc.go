// Package viz renders an interactive bubble sort session in the terminal.
//
// The package implements the TUI using the Bubble Tea framework:
//
//   - [Model]: bars colored by element state, the pseudocode listing with the
//     current line highlighted, and a stats panel with a swap count graph
//   - [Run]: wires a Model to a terminal program and its scheduler
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Start/Pause/Resume sorting
//	N     - New random array
//	R     - Reset to the initial array
//	←/→   - Fewer/more bars
//	↑/↓   - Faster/slower
//	T     - Cycle color themes
//	E     - Toggle the algorithm explanation
//	?     - Toggle full help
//	Q     - Quit
package viz
