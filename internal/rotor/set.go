package rotor

// RotorSet is a group of rotors that always step together. The Chi and Psi
// wheels are RotorSets.
type RotorSet struct {
	group
}

// NewRotorSet adopts pre-built rotors, which keep their current positions.
// Reset returns them to those positions, not to the ones the rotors were
// built with. The set takes ownership; callers must not step the rotors
// directly.
func NewRotorSet(rotors ...*Rotor) (*RotorSet, error) {
	g, err := fromRotors(rotors)
	if err != nil {
		return nil, err
	}
	return &RotorSet{group: g}, nil
}

// NewRotorSetFromPatterns builds one rotor per pattern. positions may be nil,
// in which case every rotor starts at 0; otherwise it must have one entry per
// pattern.
func NewRotorSetFromPatterns(patterns []Pattern, positions []int) (*RotorSet, error) {
	g, err := fromPatterns(patterns, positions)
	if err != nil {
		return nil, err
	}
	return &RotorSet{group: g}, nil
}

// Step advances every rotor one position.
func (s *RotorSet) Step() {
	for _, r := range s.rotors {
		r.Step()
	}
}

// Backstep moves every rotor back one position.
func (s *RotorSet) Backstep() {
	for _, r := range s.rotors {
		r.Backstep()
	}
}

// State packs the active bit of each rotor into an integer, first rotor in
// the most significant bit. For n rotors the result lies in [0, 2^n).
func (s *RotorSet) State() int {
	state := 0
	for _, r := range s.rotors {
		state = state<<1 | r.State()
	}
	return state
}
