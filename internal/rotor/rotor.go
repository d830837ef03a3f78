package rotor

// Pattern is the cam layout of one rotor, read clockwise from position 0.
// Values must be 0 (lowered) or 1 (raised).
type Pattern []int

// Rotor is a single pinwheel.
type Rotor struct {
	pins     []int
	position int
	start    int
}

// NewRotor builds a rotor from a cam pattern and a start position.
//
// The pattern is copied, so later changes to pins do not affect the rotor.
// position must lie in [0, len(pins)).
func NewRotor(pins Pattern, position int) (*Rotor, error) {
	if len(pins) == 0 {
		return nil, newConfigError(ErrCodeEmptyPattern, "rotor needs at least one cam")
	}
	for i, bit := range pins {
		if bit != 0 && bit != 1 {
			return nil, newConfigError(ErrCodeNonBinaryCam, "cam %d has non-binary value %d", i, bit)
		}
	}
	if position < 0 || position >= len(pins) {
		return nil, newConfigError(ErrCodeBadPosition, "start position %d outside [0, %d)", position, len(pins))
	}

	cp := make([]int, len(pins))
	copy(cp, pins)
	return &Rotor{pins: cp, position: position, start: position}, nil
}

// Step advances the rotor one position.
func (r *Rotor) Step() {
	r.position = (r.position + 1) % len(r.pins)
}

// Backstep moves the rotor back one position. It undoes exactly one Step.
func (r *Rotor) Backstep() {
	r.position = (r.position - 1 + len(r.pins)) % len(r.pins)
}

// State returns the cam at the active position.
func (r *Rotor) State() int {
	return r.pins[r.position]
}

// Position returns the active position.
func (r *Rotor) Position() int {
	return r.position
}

// Len returns the number of cams.
func (r *Rotor) Len() int {
	return len(r.pins)
}

// Reset returns the rotor to the position it was built with.
func (r *Rotor) Reset() {
	r.position = r.start
}

// Pins returns a copy of the cam pattern.
func (r *Rotor) Pins() Pattern {
	cp := make(Pattern, len(r.pins))
	copy(cp, r.pins)
	return cp
}
