package machine

import "github.com/roach88/lorenz/internal/rotor"

// Group names a wheel group.
type Group string

const (
	GroupChi Group = "chi"
	GroupPsi Group = "psi"
	GroupMu  Group = "mu"
)

// Groups lists the wheel groups in the order they are reported.
var Groups = []Group{GroupChi, GroupPsi, GroupMu}

// Wheels holds the cam patterns for each wheel group.
type Wheels struct {
	Chi []rotor.Pattern `json:"chi" yaml:"chi"`
	Psi []rotor.Pattern `json:"psi" yaml:"psi"`
	Mu  []rotor.Pattern `json:"mu" yaml:"mu"`
}

// Positions holds one integer per wheel for each group. It is used both for
// start positions and for snapshots of the current positions.
type Positions struct {
	Chi []int `json:"chi" yaml:"chi"`
	Psi []int `json:"psi" yaml:"psi"`
	Mu  []int `json:"mu" yaml:"mu"`
}

// Get returns the slice for g.
func (p Positions) Get(g Group) []int {
	switch g {
	case GroupChi:
		return p.Chi
	case GroupPsi:
		return p.Psi
	case GroupMu:
		return p.Mu
	}
	return nil
}

// Equal reports whether p and o hold the same values.
func (p Positions) Equal(o Positions) bool {
	for _, g := range Groups {
		a, b := p.Get(g), o.Get(g)
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
	}
	return true
}
