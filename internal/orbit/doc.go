// Package orbit advances bodies on circular orbits in the XZ plane.
//
// Each [Body] carries an angle, an orbit distance and an angular speed in
// radians per tick. [System.Tick] adds speed*dt to every angle and derives the
// Cartesian position
//
//	(distance*cos(angle), 0, distance*sin(angle))
//
// A body with zero distance sits at the origin and never moves; the sun is
// modelled that way.
//
// # Thread Safety
//
// A System is owned by a single event loop and is NOT safe for concurrent use.
package orbit
