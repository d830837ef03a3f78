package rotor

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is matched by every error returned while building a
// Rotor, RotorSet or MotorSet.
var ErrInvalidConfiguration = errors.New("rotor: invalid configuration")

// ConfigErrorCode categorizes construction failures.
type ConfigErrorCode string

const (
	// ErrCodeEmptyPattern indicates a rotor with no cams.
	ErrCodeEmptyPattern ConfigErrorCode = "EMPTY_PATTERN"

	// ErrCodeNonBinaryCam indicates a cam value other than 0 or 1.
	ErrCodeNonBinaryCam ConfigErrorCode = "NON_BINARY_CAM"

	// ErrCodeBadPosition indicates a start position outside [0, len).
	ErrCodeBadPosition ConfigErrorCode = "BAD_POSITION"

	// ErrCodePositionCount indicates len(positions) != len(rotors).
	ErrCodePositionCount ConfigErrorCode = "POSITION_COUNT"

	// ErrCodeNilRotor indicates a nil *Rotor passed to a set.
	ErrCodeNilRotor ConfigErrorCode = "NIL_ROTOR"

	// ErrCodeSharedRotor indicates the same *Rotor passed twice to a set or
	// to two groups of one machine.
	ErrCodeSharedRotor ConfigErrorCode = "SHARED_ROTOR"

	// ErrCodeNoRotors indicates a MotorSet with nothing to report state from.
	ErrCodeNoRotors ConfigErrorCode = "NO_ROTORS"

	// ErrCodeTooManyRotors indicates a group wider than the code it keys.
	ErrCodeTooManyRotors ConfigErrorCode = "TOO_MANY_ROTORS"
)

// ConfigError describes why a rotor or rotor group could not be built.
type ConfigError struct {
	// Code identifies the error category.
	Code ConfigErrorCode

	// Rotor is the index of the offending rotor within its set, or -1 when
	// the error concerns the set as a whole or a standalone rotor.
	Rotor int

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Rotor >= 0 {
		return fmt.Sprintf("%s: %s (rotor=%d)", e.Code, e.Message, e.Rotor)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func newConfigError(code ConfigErrorCode, format string, args ...any) *ConfigError {
	return &ConfigError{Code: code, Rotor: -1, Message: fmt.Sprintf(format, args...)}
}

// atRotor returns a copy of err tagged with the rotor index i.
func atRotor(err error, i int) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		tagged := *ce
		tagged.Rotor = i
		return &tagged
	}
	return err
}
