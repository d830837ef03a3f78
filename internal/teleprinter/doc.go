// Package teleprinter converts between text and five-bit ITA2 ("Baudot")
// code points.
//
// The default alphabet is the shiftless variant used at Bletchley Park, where
// the figure and letter shifts, space, carriage return and line feed are
// written with the digits and symbols 3, 4, 8, 9, / and +. Index i of the
// alphabet is the character for code point i.
//
// Dots and crosses are the Bletchley notation for a single impulse: '.' for a
// 0 (no hole) and '+' for a 1 (hole). Cam patterns are usually written this
// way too.
package teleprinter
