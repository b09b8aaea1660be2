// Package viz renders a running cart simulation in the terminal.
//
// [Model] is a Bubble Tea program that steps a [sim.Engine] on a timer and
// draws the track with carts and wrecks overlaid, next to a stats panel and
// an asciigraph plot of active carts per tick.
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	N     - Advance a single tick while paused
//	R     - Restart from the initial map
//	[]    - Step back and forward through recorded ticks
//	?     - Show help overlay
//	Q     - Quit
package viz
