package spec

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CommandDef is the raw, unvalidated shape of a command node as it
// appears in a spec document. Nested commands, flags and arguments keep
// their source order; the model builder relies on that.
type CommandDef struct {
	Name        string       `yaml:"name"`
	Aliases     []string     `yaml:"aliases,omitempty"`
	Help        string       `yaml:"help,omitempty"`
	Description string       `yaml:"description,omitempty"`
	Hidden      bool         `yaml:"hidden,omitempty"`
	BeforeHook  string       `yaml:"before_hook,omitempty"`
	AfterHook   string       `yaml:"after_hook,omitempty"`
	Include     []string     `yaml:"include,omitempty"`
	Flags       []FlagDef    `yaml:"flags,omitempty"`
	Args        []ArgDef     `yaml:"args,omitempty"`
	Commands    []CommandDef `yaml:"commands,omitempty"`
}

// FlagDef is the raw shape of a flag declaration
type FlagDef struct {
	Short    []string     `yaml:"short,omitempty"`
	Long     []string     `yaml:"long,omitempty"`
	Negates  []string     `yaml:"negates,omitempty"`
	Arity    string       `yaml:"arity,omitempty"` // none (default), one, many
	Global   bool         `yaml:"global,omitempty"`
	Required bool         `yaml:"required,omitempty"`
	Default  string       `yaml:"default,omitempty"`
	Hidden   bool         `yaml:"hidden,omitempty"`
	Help     string       `yaml:"help,omitempty"`
	Complete *CompleteDef `yaml:"complete,omitempty"`
}

// ArgDef is the raw shape of a positional argument declaration
type ArgDef struct {
	Name     string       `yaml:"name"`
	Arity    string       `yaml:"arity,omitempty"` // one (default), optional, variadic
	Default  string       `yaml:"default,omitempty"`
	Help     string       `yaml:"help,omitempty"`
	Complete *CompleteDef `yaml:"complete,omitempty"`
}

// CompleteDef declares how completion candidates for a value are
// produced. Exactly one of the fields may be set; the builder rejects
// anything else.
type CompleteDef struct {
	Choices []ChoiceDef `yaml:"choices,omitempty"`
	Files   string      `yaml:"files,omitempty"`
	Run     string      `yaml:"run,omitempty"`
}

// ChoiceDef is a single static completion value. In the document it is
// either a bare scalar or a mapping with value/description/weight.
type ChoiceDef struct {
	Value       string `yaml:"value"`
	Description string `yaml:"description,omitempty"`
	Weight      int    `yaml:"weight,omitempty"`
}

// UnmarshalYAML accepts both the scalar and the mapping form of a choice
func (c *ChoiceDef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Value = node.Value
		return nil
	}

	type plain ChoiceDef
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Value == "" {
		return fmt.Errorf("line %d: choice mapping requires a value", node.Line)
	}
	*c = ChoiceDef(p)
	return nil
}

// Document is a fully loaded spec: the merged root command definition
// plus the set of files it was assembled from (root first, includes in
// resolution order). Files is what the cache hashes to detect changes.
type Document struct {
	Root  CommandDef
	Files []string
}
