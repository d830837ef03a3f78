package patterns

import (
	"github.com/roach88/lorenz/internal/canonical"
	"github.com/roach88/lorenz/internal/machine"
)

// Setting is one named wheel setting from a file.
type Setting struct {
	Name        string
	Description string
	Wheels      machine.Wheels

	// Positions are the start positions written in the file, or nil.
	Positions *machine.Positions
}

// Machine builds a machine from the setting. Positions from override replace
// the file's start positions group by group; a nil group in override keeps
// the file's value.
func (s *Setting) Machine(override *machine.Positions) (*machine.Machine, error) {
	m, err := machine.New(s.Wheels, s.startPositions(override))
	if err != nil {
		return nil, &LoadError{
			Code:    ErrCodeBadWheels,
			Message: err.Error(),
			Setting: s.Name,
			Err:     err,
		}
	}
	return m, nil
}

func (s *Setting) startPositions(override *machine.Positions) *machine.Positions {
	var start machine.Positions
	if s.Positions != nil {
		start = *s.Positions
	}
	if override != nil {
		if override.Chi != nil {
			start.Chi = override.Chi
		}
		if override.Psi != nil {
			start.Psi = override.Psi
		}
		if override.Mu != nil {
			start.Mu = override.Mu
		}
	}
	return &start
}

// Fingerprint identifies the cam patterns, independent of file format,
// pattern notation and start positions. Two stations with the same
// fingerprint hold the same wheels.
func (s *Setting) Fingerprint() (string, error) {
	return canonical.Hash(canonical.DomainSetting, map[string]any{
		"chi": s.Wheels.Chi,
		"psi": s.Wheels.Psi,
		"mu":  s.Wheels.Mu,
	})
}
