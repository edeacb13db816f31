package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/config-schema.json
var embeddedSchema []byte

const schemaURL = "https://siftly.dev/schemas/covid/config.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaInitErr  error
)

// Problem is one schema violation at a JSON pointer style path.
type Problem struct {
	Path    string
	Message string
}

type ValidationError struct {
	File     string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Path + ": " + p.Message
	}
	prefix := ErrInvalidConfig.Error()
	if e.File != "" {
		prefix += " " + e.File
	}
	return prefix + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// Schema returns the embedded config schema.
func Schema() []byte {
	return embeddedSchema
}

func getCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(embeddedSchema))
		if err != nil {
			schemaInitErr = fmt.Errorf("failed to parse embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaURL, doc); err != nil {
			schemaInitErr = fmt.Errorf("failed to add schema resource: %w", err)
			return
		}
		compiledSchema, err = compiler.Compile(schemaURL)
		if err != nil {
			schemaInitErr = fmt.Errorf("failed to compile schema: %w", err)
		}
	})
	return compiledSchema, schemaInitErr
}

// Validate checks a decoded YAML document against the schema. The document
// goes through JSON first so numbers and maps have the shapes the validator
// expects.
func Validate(doc any) error {
	schema, err := getCompiledSchema()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return &ValidationError{Problems: []Problem{{Path: "/", Message: err.Error()}}}
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(encoded))
	if err != nil {
		return &ValidationError{Problems: []Problem{{Path: "/", Message: err.Error()}}}
	}

	if err := schema.Validate(inst); err != nil {
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			return &ValidationError{Problems: convertValidationErrors(ve)}
		}
		return &ValidationError{Problems: []Problem{{Path: "/", Message: err.Error()}}}
	}
	return nil
}

// convertValidationErrors flattens the validator's cause tree into leaf
// problems.
func convertValidationErrors(err *jsonschema.ValidationError) []Problem {
	if len(err.Causes) == 0 {
		return []Problem{{Path: formatInstanceLocation(err.InstanceLocation), Message: err.Error()}}
	}
	var out []Problem
	for _, cause := range err.Causes {
		out = append(out, convertValidationErrors(cause)...)
	}
	return out
}

func formatInstanceLocation(loc []string) string {
	if len(loc) == 0 {
		return "/"
	}
	return "/" + strings.Join(loc, "/")
}
