package patterns

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes shared with the CLI's JSON envelope.
const (
	ErrCodeGeneric      = "E001"
	ErrCodeLoadFailed   = "E004"
	ErrCodeNotFound     = "E005"
	ErrCodeSchema       = "E006"
	ErrCodeNoSettings   = "E008"
	ErrCodeUnknown      = "E009"
	ErrCodeBadFormat    = "E010"
	ErrCodeBadWheels    = "E011"
	ErrCodeBadPositions = "E012"
)

// LoadError describes a failure to load or use a setting file.
type LoadError struct {
	Code    string
	Message string

	// Setting names the setting involved, when there is one.
	Setting string

	// Pos is the CUE position, when available.
	Pos token.Pos

	Err error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Setting != "" {
		msg = fmt.Sprintf("setting %s: %s", e.Setting, msg)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// Unwrap returns the underlying error, for example a rotor.ConfigError.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// fromCUE converts a CUE error into a LoadError carrying the first position.
func fromCUE(code string, err error) *LoadError {
	le := &LoadError{Code: code, Message: err.Error(), Err: err}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return le
	}
	first := errs[0]
	le.Message = first.Error()
	// Prefer a position in the user's file over one in the embedded schema.
	for _, pos := range errors.Positions(first) {
		if !le.Pos.IsValid() || le.Pos.Filename() == schemaFilename {
			le.Pos = pos
		}
	}
	return le
}
