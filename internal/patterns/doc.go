// Package patterns loads wheel settings (cam patterns plus optional start
// positions) from CUE or YAML files.
//
// A file holds one or more named settings:
//
//	setting: TRAINING: {
//		description: "practice key"
//		chi: ["++.+...+", ...]   // five Chi wheels
//		psi: [[0, 1, 1, 0], ...] // five Psi wheels
//		mu:  ["+..+..", ...]     // motor wheels
//		positions: {chi: [3, 17, 2, 19, 5]}
//	}
//
// Cam patterns may be written as lists of 0/1 or as dot/cross strings.
// CUE files are unified with an embedded schema before anything is read, so
// structural mistakes come back with file positions. YAML files use the same
// shape. Every setting is built into a machine during Load, so a File that
// loads cleanly only holds usable settings.
package patterns
