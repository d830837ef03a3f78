package patterns

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/rotor"
	"github.com/roach88/lorenz/internal/teleprinter"
)

// Format identifies a setting file encoding.
type Format string

const (
	FormatCUE  Format = "cue"
	FormatYAML Format = "yaml"
)

// File is a loaded setting file.
type File struct {
	Path     string
	Format   Format
	Settings []*Setting
}

// FormatOf picks a Format from the file extension.
func FormatOf(path string) (Format, error) {
	switch filepath.Ext(path) {
	case ".cue":
		return FormatCUE, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", &LoadError{
		Code:    ErrCodeBadFormat,
		Message: fmt.Sprintf("unsupported setting file %s: want .cue, .yaml or .yml", path),
	}
}

// Load reads a setting file, choosing the decoder from the extension.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("setting file not found: %s", path), Err: err}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}

	var f *File
	switch format {
	case FormatCUE:
		f, err = ParseCUE(path, data)
	case FormatYAML:
		f, err = ParseYAML(data)
	}
	if err != nil {
		return nil, err
	}
	f.Path = path
	return f, nil
}

// ParseCUE decodes CUE source. filename is only used in error positions.
func ParseCUE(filename string, data []byte) (*File, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename(schemaFilename))
	if err := schema.Err(); err != nil {
		return nil, fromCUE(ErrCodeGeneric, err)
	}

	src := ctx.CompileBytes(data, cue.Filename(filename))
	if err := src.Err(); err != nil {
		return nil, fromCUE(ErrCodeLoadFailed, err)
	}

	value := schema.Unify(src)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}

	settingsVal := value.LookupPath(cue.ParsePath("setting"))
	if !settingsVal.Exists() {
		return nil, &LoadError{Code: ErrCodeNoSettings, Message: "no settings found", Pos: src.Pos()}
	}

	iter, err := settingsVal.Fields()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}

	f := &File{Path: filename, Format: FormatCUE}
	for iter.Next() {
		s, err := settingFromCUE(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		f.Settings = append(f.Settings, s)
	}
	return f, f.check()
}

func settingFromCUE(name string, v cue.Value) (*Setting, error) {
	s := &Setting{Name: name}

	if d := v.LookupPath(cue.ParsePath("description")); d.Exists() {
		desc, err := d.String()
		if err != nil {
			return nil, fromCUE(ErrCodeSchema, err)
		}
		s.Description = desc
	}

	groups := []struct {
		label string
		dst   *[]rotor.Pattern
	}{
		{"chi", &s.Wheels.Chi},
		{"psi", &s.Wheels.Psi},
		{"mu", &s.Wheels.Mu},
	}
	for _, g := range groups {
		patterns, err := cuePatterns(v.LookupPath(cue.ParsePath(g.label)))
		if err != nil {
			return nil, withSetting(err, name)
		}
		*g.dst = patterns
	}

	if p := v.LookupPath(cue.ParsePath("positions")); p.Exists() {
		var pos machine.Positions
		starts := []struct {
			label string
			dst   *[]int
		}{
			{"chi", &pos.Chi},
			{"psi", &pos.Psi},
			{"mu", &pos.Mu},
		}
		for _, st := range starts {
			sv := p.LookupPath(cue.ParsePath(st.label))
			if !sv.Exists() {
				continue
			}
			ints, err := cueInts(sv)
			if err != nil {
				return nil, withSetting(err, name)
			}
			*st.dst = ints
		}
		s.Positions = &pos
	}

	return s, nil
}

// cuePatterns reads a list whose elements are 0/1 lists or dot/cross strings.
func cuePatterns(v cue.Value) ([]rotor.Pattern, error) {
	list, err := v.List()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}

	var out []rotor.Pattern
	for list.Next() {
		elem := list.Value()
		if elem.Kind() == cue.StringKind {
			str, err := elem.String()
			if err != nil {
				return nil, fromCUE(ErrCodeSchema, err)
			}
			bits, err := teleprinter.Binarify(str)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error(), Pos: elem.Pos(), Err: err}
			}
			out = append(out, bits)
			continue
		}
		bits, err := cueInts(elem)
		if err != nil {
			return nil, err
		}
		out = append(out, bits)
	}
	return out, nil
}

func cueInts(v cue.Value) ([]int, error) {
	list, err := v.List()
	if err != nil {
		return nil, fromCUE(ErrCodeSchema, err)
	}
	out := []int{}
	for list.Next() {
		n, err := list.Value().Int64()
		if err != nil {
			return nil, fromCUE(ErrCodeSchema, err)
		}
		out = append(out, int(n))
	}
	return out, nil
}

func withSetting(err error, name string) error {
	if le, ok := err.(*LoadError); ok {
		le.Setting = name
		return le
	}
	return err
}

// check builds a machine for every setting so rotor-level problems surface
// at load time.
func (f *File) check() error {
	if len(f.Settings) == 0 {
		return &LoadError{Code: ErrCodeNoSettings, Message: "no settings found"}
	}
	for _, s := range f.Settings {
		if _, err := s.Machine(nil); err != nil {
			return err
		}
	}
	return nil
}

// Names returns the setting names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Settings))
	for i, s := range f.Settings {
		names[i] = s.Name
	}
	return names
}

// Setting returns the named setting. An empty name selects the only setting
// of a single-setting file.
func (f *File) Setting(name string) (*Setting, error) {
	if name == "" {
		if len(f.Settings) == 1 {
			return f.Settings[0], nil
		}
		return nil, &LoadError{
			Code:    ErrCodeUnknown,
			Message: fmt.Sprintf("file holds %d settings, choose one of %v", len(f.Settings), f.Names()),
		}
	}

	idx := slices.IndexFunc(f.Settings, func(s *Setting) bool { return s.Name == name })
	if idx < 0 {
		return nil, &LoadError{
			Code:    ErrCodeUnknown,
			Message: fmt.Sprintf("unknown setting %q, have %v", name, f.Names()),
		}
	}
	return f.Settings[idx], nil
}
