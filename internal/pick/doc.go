// Package pick maps pointer positions to bodies in the scene: pointer to
// normalized device coordinates, a ray through the camera, nearest sphere hit,
// and hover tracking for tooltips.
package pick
