// Package testutil holds fixtures shared by tests across packages.
//
// The wheel patterns here were generated once from a seeded random source
// with the historical SZ40 wheel lengths and roughly balanced cams. The Chi
// and Mu cams were then pinned wherever the published ZMUG results read them:
// Chi from 3,17,2,19,5 shows 7,27,17,4,..., Mu from 57,28 shows
// 1,1,0,0,1,1,1,1,... and Mu from 21,18 lands on 8,3 after 1024 steps. They
// are not a historical key.
package testutil

import "github.com/roach88/lorenz/internal/teleprinter"

// Chi, Psi and Mu are the fixture cam patterns in dot/cross notation.
var (
	Chi = []string{
		"++..++...++.++..+..+...++....+.+.++++..+.",
		"++.+.+.++..+......+...++..++...",
		".++..++...++...++++.+.+.+..+.",
		"+.+.+..++.+.+.+.++.++..+.+",
		"...+++++...+.+++....+.+",
	}
	Psi = []string{
		".+.+.++..+++++++..+..+.+..++.+++.+...++..+.",
		"+...+.++.+++++....+.+...+.+..+++++..+..+..+..++",
		"++++++++...+.+..+.+.+..++..+++....++++....+.+.....+",
		".++...++++.++.++......+.+++.......++++..+++...++.+++.",
		"..++...+++..+++.++..+..+....++....++.+++++.+...+.++++.+.+..",
	}
	Mu = []string{
		"+..+.++..+.++.++..++....+++++.+....+...++..+++++..+..+....+++",
		"...+..++++...+++++.++.++.++++..++.++.",
	}
)

// Bits converts dot/cross rows to cam bits. It panics on malformed input
// since fixtures are fixed at compile time.
func Bits(rows []string) [][]int {
	out := make([][]int, len(rows))
	for i, row := range rows {
		bits, err := teleprinter.Binarify(row)
		if err != nil {
			panic(err)
		}
		out[i] = bits
	}
	return out
}
