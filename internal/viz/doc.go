// Package viz draws trajectories in the terminal.
//
//   - [Canvas]: braille grid with 2x4 sub-pixels per cell
//   - [Camera] and [RenderTrajectory]: perspective projection of a 3-D trail
//   - [PlotAxes] and [PhasePortrait]: static plots of a finished run
//   - [LiveModel]: Bubble Tea model that integrates and renders in real time
//
// # Key Bindings (live view)
//
//	Space     - Pause/Resume
//	R         - Reset seed and parameters
//	Tab, ↑/↓  - Select and tune σ, ρ, β by ±5%
//	x/y/z     - Rotate camera (shift to reverse)
//	+/-       - Zoom
//	F         - Fit camera to the current trail
package viz
