// Package machine composes rotor groups into a Lorenz SZ40.
//
// The SZ40 has twelve wheels: five Chi wheels that step every cycle, five
// Psi wheels that step only when the motor allows it, and two Mu (motor)
// wheels stepped in a staggered cascade. The key for a character is the Chi
// state XOR the Psi state, and the machine adds it (XOR) to the character.
//
// Because the key depends only on wheel positions, a message is decrypted by
// feeding the ciphertext through a machine set up with the same wheels and
// start positions.
//
// Machine is not safe for concurrent use. Independent machines share nothing
// and may run in parallel.
package machine
