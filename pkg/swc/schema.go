package swc

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	errUtils "github.com/cloudposse/tswig/errors"
)

const schemaURL = "swcrc.json"

//go:embed schema.json
var schemaJSON []byte

var (
	compiledSchema    *jsonschema.Schema
	compiledSchemaErr error
	compileSchemaOnce sync.Once
)

// schema compiles the embedded .swcrc schema once. The compiled schema is safe
// for concurrent validation.
func schema() (*jsonschema.Schema, error) {
	compileSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			compiledSchemaErr = err
			return
		}
		compiledSchema, compiledSchemaErr = compiler.Compile(schemaURL)
	})
	return compiledSchema, compiledSchemaErr
}

// Validate checks tree against the .swcrc schema. Only the keys tswig
// generates are constrained; anything else SWC accepts passes through.
func Validate(tree map[string]any) error {
	s, err := schema()
	if err != nil {
		return errUtils.Build(errUtils.ErrInvalidSWC).WithCause(err).Err()
	}

	// The validator wants JSON-decoded values, not the Go types overrides may carry.
	doc, err := toTree(tree)
	if err != nil {
		return errUtils.Build(errUtils.ErrInvalidSWC).WithCause(err).Err()
	}

	if err := s.Validate(doc); err != nil {
		return errUtils.Build(errUtils.ErrInvalidSWC).
			WithCause(err).
			WithHint("Check the overrides against https://swc.rs/docs/configuration/swcrc").
			Err()
	}
	return nil
}

// Validate checks the configuration against the .swcrc schema.
func (b *Builder) Validate() error {
	if err := Validate(b.tree); err != nil {
		b.log.Error("SWC configuration failed validation", "error", err)
		return err
	}
	b.log.Debug("SWC configuration is valid")
	return nil
}
