// Package scene is the controller both frontends drive. It owns the orbiting
// bodies, the camera with its transition and orbit controls, picking and
// hover state, the pause flag and the theme.
//
// A frontend calls Frame once per rendered frame and StepTransition once per
// frame for the generation returned by Click, ZoomTo or ResetCamera, until it
// reports false. Steps for a superseded generation are ignored.
package scene
