// Package export writes orbit trajectories as CSV and SVG, and renders scene
// snapshots as SVG (from a braille canvas) or PNG.
package export
