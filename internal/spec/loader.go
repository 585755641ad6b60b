package spec

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/clispec/internal/errors"
)

// Load reads the spec document at path and resolves its include
// directives. The returned Document is the single merged raw tree; any
// failure is a coded ParseError or IncludeError.
func Load(path string) (*Document, error) {
	l := &loader{visiting: map[string]bool{}}
	root, files, err := l.load(path)
	if err != nil {
		return nil, err
	}
	return &Document{Root: *root, Files: files}, nil
}

// Parse decodes an in-memory spec with no include resolution. Used for
// raw --spec input, where there is no document location to resolve
// includes against.
func Parse(name string, data []byte) (*Document, error) {
	root, err := decode(name, data)
	if err != nil {
		return nil, err
	}
	if len(root.Include) > 0 {
		return nil, errors.New(errors.ErrCodeIncludeRead, "include directives require a spec file, not inline spec input").
			WithSuggestion("Pass the spec with -f/--file so includes can be resolved relative to it")
	}
	return &Document{Root: *root}, nil
}

type loader struct {
	visiting map[string]bool
	stack    []string
}

func (l *loader) load(path string) (*CommandDef, []string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	if l.visiting[abs] {
		return nil, nil, errors.NewIncludeCycleError(append(l.stack, path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if len(l.stack) > 0 {
				return nil, nil, errors.NewIncludeNotFoundError(path, l.stack[len(l.stack)-1])
			}
			return nil, nil, errors.NewFileNotFoundError(path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeFileReadFailed, "read spec file "+path, err)
	}

	root, err := decode(path, data)
	if err != nil {
		return nil, nil, err
	}

	l.visiting[abs] = true
	l.stack = append(l.stack, path)
	defer func() {
		delete(l.visiting, abs)
		l.stack = l.stack[:len(l.stack)-1]
	}()

	files := []string{abs}
	if err := l.resolveIncludes(root, filepath.Dir(path), &files); err != nil {
		return nil, nil, err
	}
	return root, files, nil
}

// resolveIncludes merges every included document into the node carrying
// the directive, then recurses into child commands. Included flags,
// args and commands are appended after the node's own declarations, in
// directive order.
func (l *loader) resolveIncludes(def *CommandDef, dir string, files *[]string) error {
	for _, inc := range def.Include {
		included, incFiles, err := l.load(filepath.Join(dir, inc))
		if err != nil {
			return err
		}
		def.Flags = append(def.Flags, included.Flags...)
		def.Args = append(def.Args, included.Args...)
		def.Commands = append(def.Commands, included.Commands...)
		*files = append(*files, incFiles...)
	}
	def.Include = nil

	for i := range def.Commands {
		if err := l.resolveIncludes(&def.Commands[i], dir, files); err != nil {
			return err
		}
	}
	return nil
}

func decode(name string, data []byte) (*CommandDef, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var root CommandDef
	if err := dec.Decode(&root); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeParseEmpty, "spec document is empty: "+name)
		}
		return nil, errors.NewParseError(name, yamlErrorLine(err), err.Error())
	}
	return &root, nil
}

var yamlLineRe = regexp.MustCompile(`line (\d+)`)

// yamlErrorLine pulls the line number out of a yaml.v3 error message.
// The library reports locations only through the message text.
func yamlErrorLine(err error) int {
	m := yamlLineRe.FindStringSubmatch(err.Error())
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}
