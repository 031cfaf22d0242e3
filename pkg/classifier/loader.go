package classifier

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"digital.vasic.sweepbot/pkg/entry"
)

// ruleFile is the on-disk structure for extra rules (YAML or
// JSON).
type ruleFile struct {
	Version string     `yaml:"version"`
	Rules   []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Name       string   `yaml:"name"`
	Tag        string   `yaml:"tag"`
	Kind       string   `yaml:"kind"`
	Workflow   string   `yaml:"workflow"`
	Template   string   `yaml:"template"`
	MethodType string   `yaml:"method_type"`
	Configs    []string `yaml:"configs"`
}

// LoadRulesFromFile reads extra rules from a YAML or JSON file.
// Omitted predicates default to "lacks" for workflow and
// method_type, "is_empty" for template and "lacks" for configs.
func LoadRulesFromFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read rules file %s: %w", path, err,
		)
	}
	return loadRulesFromBytes(data, path)
}

// LoadRulesFromDir loads every .yaml, .yml and .json rule file in
// dir in lexical order. It does not recurse.
func LoadRulesFromDir(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read directory %s: %w", dir, err,
		)
	}

	var out []Entry
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(f.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		p := filepath.Join(dir, f.Name())
		entries, err := LoadRulesFromFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", p, err)
		}
		out = append(out, entries...)
	}
	return out, nil
}

func loadRulesFromBytes(data []byte, source string) ([]Entry, error) {
	var file ruleFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(
			"failed to parse rules from %s: %w", source, err,
		)
	}

	out := make([]Entry, 0, len(file.Rules))
	for i, spec := range file.Rules {
		e, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf(
				"rule %d (%s) from %s: %w", i, spec.Name, source, err,
			)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s ruleSpec) build() (Entry, error) {
	if s.Tag == "" {
		return Entry{}, fmt.Errorf("missing tag")
	}
	kind, err := ParseKind(s.Kind)
	if err != nil {
		return Entry{}, err
	}
	if len(s.Configs) > entry.ConfigSlots {
		return Entry{}, fmt.Errorf(
			"%d config predicates, at most %d allowed",
			len(s.Configs), entry.ConfigSlots,
		)
	}

	workflow, err := parseOr(s.Workflow, Lacks)
	if err != nil {
		return Entry{}, fmt.Errorf("workflow: %w", err)
	}
	template, err := parseOr(s.Template, IsEmpty)
	if err != nil {
		return Entry{}, fmt.Errorf("template: %w", err)
	}
	methodType, err := parseOr(s.MethodType, Lacks)
	if err != nil {
		return Entry{}, fmt.Errorf("method_type: %w", err)
	}

	var cfg configs
	for i := range cfg {
		cfg[i] = Lacks
		if i < len(s.Configs) {
			if cfg[i], err = parseOr(s.Configs[i], Lacks); err != nil {
				return Entry{}, fmt.Errorf("config%d: %w", i+1, err)
			}
		}
	}

	name := s.Name
	if name == "" {
		name = s.Tag
	}
	return Entry{
		Name: name,
		Rule: NewRule(s.Tag, workflow, template, methodType, cfg),
		Kind: kind,
	}, nil
}

func parseOr(s string, fallback Arg) (Arg, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	return ParseArg(s)
}
