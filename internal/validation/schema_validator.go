// Package validation checks configuration documents against JSON schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrSchemaViolation is returned when a document does not satisfy its schema
var ErrSchemaViolation = errors.New("schema validation failed")

// SchemaValidator validates JSON data against JSON schemas
type SchemaValidator interface {
	ValidateFile(dataPath, schemaPath string) error
	ValidateBytes(data []byte, schemaPath string) error
}

type validator struct {
	mu       sync.Mutex
	compiler *jsonschema.Compiler
	schemas  map[string]*jsonschema.Schema
}

// NewSchemaValidator creates a validator that compiles each schema once
func NewSchemaValidator() SchemaValidator {
	return &validator{
		compiler: jsonschema.NewCompiler(),
		schemas:  make(map[string]*jsonschema.Schema),
	}
}

func (v *validator) ValidateFile(dataPath, schemaPath string) error {
	data, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf(ErrMsgReadDataFileFailed, dataPath, err)
	}
	return v.ValidateBytes(data, schemaPath)
}

func (v *validator) ValidateBytes(data []byte, schemaPath string) error {
	schema, err := v.schema(schemaPath)
	if err != nil {
		return fmt.Errorf(ErrMsgLoadSchemaFailed, schemaPath, err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf(ErrMsgParseDataFailed, err)
	}

	if err := schema.Validate(doc); err != nil {
		return describe(err)
	}
	return nil
}

// schema compiles schemaPath on first use
func (v *validator) schema(schemaPath string) (*jsonschema.Schema, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok := v.schemas[schemaPath]; ok {
		return s, nil
	}

	resolved, err := resolveSchemaPath(schemaPath)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadSchemaFailed, err)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf(ErrMsgParseSchemaFailed, err)
	}
	if err := v.compiler.AddResource(schemaPath, doc); err != nil {
		return nil, fmt.Errorf(ErrMsgAddSchemaFailed, err)
	}

	s, err := v.compiler.Compile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCompileSchemaFailed, err)
	}
	v.schemas[schemaPath] = s
	return s, nil
}

// describe flattens a validation error tree into one line per violation
func describe(err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %w", ErrSchemaViolation, err)
	}

	var lines []string
	collect(verr, &lines)
	return fmt.Errorf(ViolationSummaryFmt, ErrSchemaViolation, strings.Join(lines, "\n"))
}

func collect(err *jsonschema.ValidationError, lines *[]string) {
	if len(err.Causes) == 0 {
		*lines = append(*lines, violation(err))
		return
	}
	for _, cause := range err.Causes {
		collect(cause, lines)
	}
}

func violation(err *jsonschema.ValidationError) string {
	location := RootLocation
	if len(err.InstanceLocation) > 0 {
		location = "/" + strings.Join(err.InstanceLocation, "/")
	}

	if err.ErrorKind != nil {
		if path := err.ErrorKind.KeywordPath(); len(path) > 0 {
			return fmt.Sprintf(ViolationFmt, location, strings.Join(path, "."))
		}
	}
	return fmt.Sprintf(ViolationNoKeyword, location)
}

// resolveSchemaPath finds a relative schema path from the working directory
// or any parent up to the module root.
func resolveSchemaPath(schemaPath string) (string, error) {
	if filepath.IsAbs(schemaPath) {
		return schemaPath, nil
	}
	if _, err := os.Stat(schemaPath); err == nil {
		return schemaPath, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf(ErrMsgGetWorkingDirFailed, err)
	}

	for dir := cwd; ; {
		candidate := filepath.Join(dir, schemaPath)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return "", fmt.Errorf(ErrMsgSchemaNotFound, schemaPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf(ErrMsgSchemaNotFoundFromCwd, schemaPath, cwd)
}
