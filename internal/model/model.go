package model

// The command model is an arena: Command nodes live in a single slice
// and refer to each other by index. Global-flag inheritance is resolved
// at build time into each node's effective flag set, so lookups never
// walk ancestors. The model is immutable once Build returns and may be
// read concurrently without coordination.

// FlagArity describes how many values a flag consumes
type FlagArity int

const (
	// FlagNone is a presence-only (boolean) flag
	FlagNone FlagArity = iota
	// FlagOne takes exactly one value
	FlagOne
	// FlagMany may be repeated, each occurrence taking one value
	FlagMany
)

// String returns the spec-format spelling of the arity
func (a FlagArity) String() string {
	switch a {
	case FlagOne:
		return "one"
	case FlagMany:
		return "many"
	default:
		return "none"
	}
}

// ArgArity describes how many tokens a positional argument consumes
type ArgArity int

const (
	// ArgOne is a required, exactly-one argument
	ArgOne ArgArity = iota
	// ArgOptional may be omitted
	ArgOptional
	// ArgVariadic absorbs all remaining tokens; at most one per command
	// and it must be positionally last
	ArgVariadic
)

// String returns the spec-format spelling of the arity
func (a ArgArity) String() string {
	switch a {
	case ArgOptional:
		return "optional"
	case ArgVariadic:
		return "variadic"
	default:
		return "one"
	}
}

// ProviderKind tags the completion-provider variant
type ProviderKind int

const (
	// ProviderNone yields no candidates (free-form value)
	ProviderNone ProviderKind = iota
	// ProviderChoices enumerates literal candidates
	ProviderChoices
	// ProviderFiles lists filesystem entries, optionally glob-filtered
	ProviderFiles
	// ProviderExec runs a helper command whose stdout lines become candidates
	ProviderExec
)

// Choice is one static completion value
type Choice struct {
	Value       string
	Description string
	Weight      int
}

// Provider is the tagged completion-provider variant. Pattern applies to
// ProviderFiles, Run to ProviderExec, Choices to ProviderChoices.
type Provider struct {
	Kind    ProviderKind
	Choices []Choice
	Pattern string
	Run     string
}

// Dynamic reports whether candidates depend on the environment at
// completion time. Static emitters cannot inline these providers and
// must reference the runtime word completer instead.
func (p Provider) Dynamic() bool {
	return p.Kind == ProviderFiles || p.Kind == ProviderExec
}

// Flag is one flag of a command's effective flag set
type Flag struct {
	Short     []string
	Long      []string
	Negates   []string
	Arity     FlagArity
	Provider  Provider
	Required  bool
	Default   string
	Help      string
	Global    bool
	Hidden    bool
	Inherited bool
}

// TakesValue reports whether the flag consumes a following token
func (f *Flag) TakesValue() bool {
	return f.Arity != FlagNone
}

// Triggers returns every form that invokes the flag: short, long, and
// negation spellings, with their dashes.
func (f *Flag) Triggers() []string {
	triggers := make([]string, 0, len(f.Short)+len(f.Long)+len(f.Negates))
	for _, s := range f.Short {
		triggers = append(triggers, "-"+s)
	}
	for _, l := range f.Long {
		triggers = append(triggers, "--"+l)
	}
	for _, n := range f.Negates {
		triggers = append(triggers, "--"+n)
	}
	return triggers
}

// Arg is one positional argument of a command
type Arg struct {
	Name     string
	Arity    ArgArity
	Provider Provider
	Default  string
	Help     string
}

// Variadic reports whether the argument absorbs all remaining tokens
func (a *Arg) Variadic() bool {
	return a.Arity == ArgVariadic
}

// Required reports whether the argument must be supplied
func (a *Arg) Required() bool {
	return a.Arity == ArgOne
}

// Command is one node of the command tree
type Command struct {
	Name    string
	Aliases []string

	// Parent is the arena index of the parent node, -1 for the root.
	// Children holds arena indices in declaration order.
	Parent   int
	Children []int

	// Flags is the effective set: own flags plus inherited globals,
	// already merged by the builder.
	Flags []Flag
	Args  []Arg

	Help        string
	Description string
	Hidden      bool

	// Hook metadata is opaque to the compiler; it is carried through to
	// the declarative-runtime output only.
	BeforeHook string
	AfterHook  string

	// Path is the sequence of command names from the root, used in
	// diagnostics and doc headings.
	Path []string
}

// Matches reports whether token names this command (name or alias)
func (c *Command) Matches(token string) bool {
	if c.Name == token {
		return true
	}
	for _, a := range c.Aliases {
		if a == token {
			return true
		}
	}
	return false
}

// LookupFlag finds the flag invoked by trigger (with dashes) in the
// command's effective flag set
func (c *Command) LookupFlag(trigger string) *Flag {
	for i := range c.Flags {
		for _, t := range c.Flags[i].Triggers() {
			if t == trigger {
				return &c.Flags[i]
			}
		}
	}
	return nil
}

// Model is the complete, validated command tree
type Model struct {
	Commands []Command
	Root     int
}

// RootCommand returns the root node
func (m *Model) RootCommand() *Command {
	return &m.Commands[m.Root]
}

// At returns the node at arena index i
func (m *Model) At(i int) *Command {
	return &m.Commands[i]
}

// Walk visits every node depth-first in declaration order, starting at
// the root
func (m *Model) Walk(visit func(*Command)) {
	var rec func(int)
	rec = func(i int) {
		cmd := &m.Commands[i]
		visit(cmd)
		for _, child := range cmd.Children {
			rec(child)
		}
	}
	rec(m.Root)
}
