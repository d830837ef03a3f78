package rotor

// group holds the rotors shared by RotorSet and MotorSet along with the
// introspection methods both expose.
type group struct {
	rotors []*Rotor
	start  []int
}

// fromRotors adopts pre-built rotors. Positions are whatever the rotors
// already hold, and Reset returns to them.
func fromRotors(rotors []*Rotor) (group, error) {
	seen := make(map[*Rotor]int, len(rotors))
	for i, r := range rotors {
		if r == nil {
			return group{}, atRotor(newConfigError(ErrCodeNilRotor, "rotor is nil"), i)
		}
		if j, dup := seen[r]; dup {
			return group{}, atRotor(newConfigError(ErrCodeSharedRotor, "rotor already used at index %d", j), i)
		}
		seen[r] = i
	}
	owned := make([]*Rotor, len(rotors))
	copy(owned, rotors)
	g := group{rotors: owned}
	g.start = g.Positions()
	return g, nil
}

// fromPatterns builds fresh rotors. A nil positions slice starts every rotor
// at 0.
func fromPatterns(patterns []Pattern, positions []int) (group, error) {
	if positions == nil {
		positions = make([]int, len(patterns))
	}
	if len(positions) != len(patterns) {
		return group{}, newConfigError(ErrCodePositionCount,
			"mismatched rotors and positions (%d rotors, %d positions)", len(patterns), len(positions))
	}

	rotors := make([]*Rotor, len(patterns))
	for i, p := range patterns {
		r, err := NewRotor(p, positions[i])
		if err != nil {
			return group{}, atRotor(err, i)
		}
		rotors[i] = r
	}
	start := make([]int, len(positions))
	copy(start, positions)
	return group{rotors: rotors, start: start}, nil
}

// Len returns the number of rotors.
func (g *group) Len() int {
	return len(g.rotors)
}

// Sizes returns the cam count of each rotor, in order.
func (g *group) Sizes() []int {
	sizes := make([]int, len(g.rotors))
	for i, r := range g.rotors {
		sizes[i] = r.Len()
	}
	return sizes
}

// Positions returns the active position of each rotor, in order.
func (g *group) Positions() []int {
	pos := make([]int, len(g.rotors))
	for i, r := range g.rotors {
		pos[i] = r.Position()
	}
	return pos
}

// Rotor returns the rotor at index i.
func (g *group) Rotor(i int) *Rotor {
	return g.rotors[i]
}

// Reset returns every rotor to where it stood when the set was built.
func (g *group) Reset() {
	for i, r := range g.rotors {
		r.position = g.start[i]
	}
}
