// Package analysis characterises a finished trajectory.
//
//   - [ComputeBounds], [Centroid]: geometry of the attractor
//   - [LyapunovExponent]: largest exponent via trajectory separation
//   - [PoincareSection], [LobeSwitches]: plane crossings and wing changes
//   - [DominantFrequency]: strongest spectral line of one coordinate
//   - [BifurcationDiagram]: coordinate maxima over a parameter sweep
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(f, integ, x0, 0.01, 1000, 20000, 1e-8)
//	if lambda > 0 {
//	    // System is chaotic
//	}
//
// For the classical parameters the estimate is close to 0.9.
package analysis
