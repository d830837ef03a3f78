package patterns

import (
	"bytes"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/lorenz/internal/machine"
	"github.com/roach88/lorenz/internal/rotor"
	"github.com/roach88/lorenz/internal/teleprinter"
)

type yamlFile struct {
	Setting map[string]yamlSetting `yaml:"setting"`
}

type yamlSetting struct {
	Description string             `yaml:"description"`
	Chi         []yamlPins         `yaml:"chi"`
	Psi         []yamlPins         `yaml:"psi"`
	Mu          []yamlPins         `yaml:"mu"`
	Positions   *machine.Positions `yaml:"positions"`
}

// yamlPins accepts either a 0/1 sequence or a dot/cross string.
type yamlPins rotor.Pattern

func (p *yamlPins) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		bits, err := teleprinter.Binarify(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*p = bits
		return nil
	case yaml.SequenceNode:
		var bits []int
		if err := node.Decode(&bits); err != nil {
			return err
		}
		*p = bits
		return nil
	}
	return fmt.Errorf("line %d: cam pattern must be a list or a dot/cross string", node.Line)
}

// ParseYAML decodes YAML source. Unknown fields are rejected.
func ParseYAML(data []byte) (*File, error) {
	var raw yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: fmt.Sprintf("parsing YAML: %v", err), Err: err}
	}

	// YAML mappings are unordered once decoded; sort for stable output.
	names := make([]string, 0, len(raw.Setting))
	for name := range raw.Setting {
		names = append(names, name)
	}
	sort.Strings(names)

	f := &File{Format: FormatYAML}
	for _, name := range names {
		rs := raw.Setting[name]
		if len(rs.Mu) == 0 {
			return nil, &LoadError{Code: ErrCodeSchema, Message: "mu needs at least one wheel", Setting: name}
		}
		f.Settings = append(f.Settings, &Setting{
			Name:        name,
			Description: rs.Description,
			Wheels: machine.Wheels{
				Chi: toPatterns(rs.Chi),
				Psi: toPatterns(rs.Psi),
				Mu:  toPatterns(rs.Mu),
			},
			Positions: rs.Positions,
		})
	}
	return f, f.check()
}

func toPatterns(in []yamlPins) []rotor.Pattern {
	out := make([]rotor.Pattern, len(in))
	for i, p := range in {
		out[i] = rotor.Pattern(p)
	}
	return out
}
