package rotor

// MotorSet is a group of rotors stepped in a staggered cascade. The first
// rotor always advances; rotor i advances only when rotor i-1 shows a raised
// cam. The Mu (motor) wheels are a MotorSet.
type MotorSet struct {
	group
}

// NewMotorSet adopts pre-built rotors, which keep their current positions.
// Reset returns them to those positions. At least one rotor is required.
func NewMotorSet(rotors ...*Rotor) (*MotorSet, error) {
	g, err := fromRotors(rotors)
	if err != nil {
		return nil, err
	}
	return newMotorSet(g)
}

// NewMotorSetFromPatterns builds one rotor per pattern, with the same
// positions contract as NewRotorSetFromPatterns.
func NewMotorSetFromPatterns(patterns []Pattern, positions []int) (*MotorSet, error) {
	g, err := fromPatterns(patterns, positions)
	if err != nil {
		return nil, err
	}
	return newMotorSet(g)
}

func newMotorSet(g group) (*MotorSet, error) {
	if len(g.rotors) == 0 {
		return nil, newConfigError(ErrCodeNoRotors, "motor set needs at least one rotor")
	}
	return &MotorSet{group: g}, nil
}

// Step advances the cascade once.
//
// Rotors are visited from last to first so each gating rotor is read before
// it moves in this cycle.
func (m *MotorSet) Step() {
	for i := len(m.rotors) - 1; i > 0; i-- {
		if m.rotors[i-1].State() == 1 {
			m.rotors[i].Step()
		}
	}
	m.rotors[0].Step()
}

// Backstep undoes exactly one Step.
//
// Walking forward, a rotor is moved back when the gate is open, and the gate
// for the next rotor is the bit this rotor shows after moving. That bit is the
// one its successor saw during the forward step.
func (m *MotorSet) Backstep() {
	gate := true
	for _, r := range m.rotors {
		if gate {
			r.Backstep()
		}
		gate = r.State() == 1
	}
}

// State returns the active bit of the last rotor, the signal that decides
// whether the Psi wheels move.
func (m *MotorSet) State() int {
	return m.rotors[len(m.rotors)-1].State()
}
