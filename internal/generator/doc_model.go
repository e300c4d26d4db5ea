package generator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const docModelSchemaVersion = "v0.1.0"

//go:embed schema/parsed_docs.schema.json
var docModelSchema []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// DocModel is the persisted form of an example's ParsedDocs.
type DocModel struct {
	SchemaVersion string      `json:"schema_version"`
	Example       string      `json:"example"`
	GeneratedAt   string      `json:"generated_at,omitempty"`
	Docs          *ParsedDocs `json:"docs"`
}

// NewDocModel wraps docs for persistence.
func NewDocModel(exampleName string, docs *ParsedDocs) *DocModel {
	if docs == nil {
		docs = NewParsedDocs()
	}
	return &DocModel{
		SchemaVersion: docModelSchemaVersion,
		Example:       exampleName,
		GeneratedAt:   time.Now().UTC().Format(time.RFC3339),
		Docs:          docs,
	}
}

func LoadDocModel(path string) (*DocModel, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m DocModel
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func SaveDocModel(path string, model *DocModel) error {
	if err := validateDocModelWithSchema(model); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(path, b, 0644)
}

func validateDocModelWithSchema(model *DocModel) error {
	if model == nil {
		return fmt.Errorf("doc model is nil")
	}

	schema, err := loadCompiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile doc model schema: %w", err)
	}

	var v any
	raw, err := json.Marshal(model)
	if err != nil {
		return fmt.Errorf("failed to marshal doc model for schema validation: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("failed to normalize doc model for schema validation: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("doc model schema validation failed: %w", err)
	}
	return nil
}

func loadCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("parsed_docs.schema.json", bytes.NewReader(docModelSchema)); err != nil {
			compileErr = err
			return
		}
		compiledSchema, compileErr = compiler.Compile("parsed_docs.schema.json")
	})
	return compiledSchema, compileErr
}
