package cmd

import (
	"github.com/felixgeelhaar/clispec/internal/model"
	"github.com/felixgeelhaar/clispec/internal/spec"
)

// specInput holds the shared spec-source flags: a file path or a raw
// inline spec, mirroring how every subcommand accepts its input.
type specInput struct {
	file string
	raw  string
}

// load reads the spec from whichever source was given and builds the
// command model. The model is immutable from here on; every emitter and
// resolver shares it read-only.
func (in *specInput) load() (*model.Model, error) {
	doc, err := in.document()
	if err != nil {
		return nil, err
	}
	return model.Build(doc)
}

// buildModel lowers a loaded document into the validated command model
func buildModel(doc *spec.Document) (*model.Model, error) {
	return model.Build(doc)
}

func (in *specInput) document() (*spec.Document, error) {
	if in.raw != "" {
		return spec.Parse("<spec>", []byte(in.raw))
	}
	doc, err := spec.Load(in.file)
	if err != nil {
		return nil, SpecLoadError(in.file, err)
	}
	return doc, nil
}
