package machine

import (
	"fmt"

	"github.com/roach88/lorenz/internal/rotor"
)

// Width is the number of impulses in a teleprinter character, and so the
// most wheels a Chi or Psi group may have.
const Width = 5

// SymbolLimit is one past the largest symbol Feed accepts.
const SymbolLimit = 1 << Width

// Machine is a Lorenz SZ40.
type Machine struct {
	chi *rotor.RotorSet
	psi *rotor.RotorSet
	mu  *rotor.MotorSet
}

// New builds a machine from cam patterns. positions may be nil, in which case
// every wheel starts at 0; a nil slice for a single group does the same for
// that group.
func New(wheels Wheels, positions *Positions) (*Machine, error) {
	var start Positions
	if positions != nil {
		start = *positions
	}

	if err := checkWidth(GroupChi, len(wheels.Chi)); err != nil {
		return nil, err
	}
	if err := checkWidth(GroupPsi, len(wheels.Psi)); err != nil {
		return nil, err
	}

	chi, err := rotor.NewRotorSetFromPatterns(wheels.Chi, start.Chi)
	if err != nil {
		return nil, &GroupError{Group: GroupChi, Err: err}
	}
	psi, err := rotor.NewRotorSetFromPatterns(wheels.Psi, start.Psi)
	if err != nil {
		return nil, &GroupError{Group: GroupPsi, Err: err}
	}
	mu, err := rotor.NewMotorSetFromPatterns(wheels.Mu, start.Mu)
	if err != nil {
		return nil, &GroupError{Group: GroupMu, Err: err}
	}

	return &Machine{chi: chi, psi: psi, mu: mu}, nil
}

// wheelGroup is the part of RotorSet and MotorSet NewFromSets inspects.
type wheelGroup interface {
	Len() int
	Rotor(i int) *rotor.Rotor
}

// NewFromSets builds a machine from groups the caller has already assembled.
// The machine takes ownership of all three. No rotor may appear in more than
// one group.
func NewFromSets(chi, psi *rotor.RotorSet, mu *rotor.MotorSet) (*Machine, error) {
	for _, g := range []struct {
		group Group
		isNil bool
	}{
		{GroupChi, chi == nil},
		{GroupPsi, psi == nil},
		{GroupMu, mu == nil},
	} {
		if g.isNil {
			return nil, &GroupError{Group: g.group, Err: &rotor.ConfigError{
				Code:    rotor.ErrCodeNilRotor,
				Rotor:   -1,
				Message: "wheel group is nil",
			}}
		}
	}

	if err := checkWidth(GroupChi, chi.Len()); err != nil {
		return nil, err
	}
	if err := checkWidth(GroupPsi, psi.Len()); err != nil {
		return nil, err
	}

	owner := make(map[*rotor.Rotor]Group)
	for _, g := range []struct {
		group Group
		set   wheelGroup
	}{
		{GroupChi, chi},
		{GroupPsi, psi},
		{GroupMu, mu},
	} {
		for i := 0; i < g.set.Len(); i++ {
			r := g.set.Rotor(i)
			if prev, dup := owner[r]; dup {
				return nil, &GroupError{Group: g.group, Err: &rotor.ConfigError{
					Code:    rotor.ErrCodeSharedRotor,
					Rotor:   i,
					Message: fmt.Sprintf("rotor already used by the %s wheels", prev),
				}}
			}
			owner[r] = g.group
		}
	}

	return &Machine{chi: chi, psi: psi, mu: mu}, nil
}

// checkWidth rejects a Chi or Psi group whose state would not fit in a
// character.
func checkWidth(g Group, n int) error {
	if n <= Width {
		return nil
	}
	return &GroupError{Group: g, Err: &rotor.ConfigError{
		Code:    rotor.ErrCodeTooManyRotors,
		Rotor:   -1,
		Message: fmt.Sprintf("%d wheels, at most %d", n, Width),
	}}
}

// Step advances the machine one cycle.
//
// The motor is read before anything moves: if it shows a cross the Psi wheels
// step. Then the motor and the Chi wheels step unconditionally.
func (m *Machine) Step() {
	if m.mu.State() == 1 {
		m.psi.Step()
	}
	m.mu.Step()
	m.chi.Step()
}

// Backstep undoes exactly one Step. After the motor moves back it shows the
// bit Step read, which decides whether the Psi wheels move back.
func (m *Machine) Backstep() {
	m.chi.Backstep()
	m.mu.Backstep()
	if m.mu.State() == 1 {
		m.psi.Backstep()
	}
}

// State returns the key for the current positions.
func (m *Machine) State() int {
	return m.chi.State() ^ m.psi.State()
}

// Feed adds the key to each symbol of stream, stepping after every symbol,
// and returns the result. Encryption and decryption are the same operation.
//
// Every symbol must lie in [0, 32). The stream is checked before anything
// moves, so on error no output is returned and the machine is unchanged.
func (m *Machine) Feed(stream []int) ([]int, error) {
	for i, s := range stream {
		if s < 0 || s >= SymbolLimit {
			return nil, &SymbolError{Index: i, Value: s}
		}
	}

	out := make([]int, len(stream))
	for i, s := range stream {
		out[i] = s ^ m.State()
		m.Step()
	}
	return out, nil
}

// Keystream returns the next n keys, stepping after each.
func (m *Machine) Keystream(n int) []int {
	if n < 0 {
		n = 0
	}
	keys := make([]int, n)
	for i := range keys {
		keys[i] = m.State()
		m.Step()
	}
	return keys
}

// MotorState returns the bit the motor currently shows.
func (m *Machine) MotorState() int {
	return m.mu.State()
}

// Reset returns every wheel to its start position.
func (m *Machine) Reset() {
	m.chi.Reset()
	m.psi.Reset()
	m.mu.Reset()
}

// Positions returns a snapshot of the current wheel positions.
func (m *Machine) Positions() Positions {
	return Positions{
		Chi: m.chi.Positions(),
		Psi: m.psi.Positions(),
		Mu:  m.mu.Positions(),
	}
}

// Sizes returns the cam count of every wheel, grouped like Positions.
func (m *Machine) Sizes() Positions {
	return Positions{
		Chi: m.chi.Sizes(),
		Psi: m.psi.Sizes(),
		Mu:  m.mu.Sizes(),
	}
}
