// Package rotor implements the pinwheels of the Lorenz SZ40 and the two ways
// they are grouped inside the machine.
//
// A Rotor is a circular sequence of cams, each raised (1) or lowered (0),
// with one active position. A RotorSet steps all of its rotors together and
// packs their active bits into one integer, first rotor most significant.
// A MotorSet steps its rotors in a staggered cascade where each rotor only
// advances when its predecessor shows a raised cam.
//
// Sets own their rotors. Passing the same *Rotor to two sets, or twice to one
// set, breaks the stepping invariants and is rejected where it can be seen.
//
// Nothing in this package is safe for concurrent use. Machines are cheap;
// build one per goroutine.
package rotor
