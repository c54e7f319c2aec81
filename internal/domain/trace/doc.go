// Package trace provides the append-only step recorder every verbose algorithm
// writes its intermediate computations into.
//
// A step is appended exactly once, in the order the algorithm performs it, and
// is never touched again. Step types that hold mutable state (grids, big
// integers, points) implement Cloner so the recorder stores a snapshot taken at
// append time rather than a reference to state the algorithm keeps mutating.
package trace
